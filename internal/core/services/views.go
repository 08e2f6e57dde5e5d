package services

import (
	"sort"
	"strings"

	"github.com/photon-labs/glance/internal/core/domain"
)

// SortKey selects the gallery view ordering.
type SortKey string

// Available sort keys.
const (
	// SortByDate orders newest first.
	SortByDate SortKey = "date"

	// SortByName orders by file name ascending.
	SortByName SortKey = "name"

	// SortBySize orders largest first.
	SortBySize SortKey = "size"
)

// SortImages returns a sorted copy of the images. Unknown keys fall
// back to date order.
func SortImages(images []domain.Image, key SortKey) []domain.Image {
	out := make([]domain.Image, len(images))
	copy(out, images)

	switch key {
	case SortByName:
		sort.SliceStable(out, func(i, j int) bool {
			return strings.ToLower(out[i].FileName) < strings.ToLower(out[j].FileName)
		})
	case SortBySize:
		sort.SliceStable(out, func(i, j int) bool {
			return out[i].Size > out[j].Size
		})
	default:
		sort.SliceStable(out, func(i, j int) bool {
			return out[i].CreatedAt.After(out[j].CreatedAt)
		})
	}
	return out
}

// FilterByTag returns the images carrying the exact tag.
func FilterByTag(images []domain.Image, tag string) []domain.Image {
	if tag == "" {
		return images
	}
	var out []domain.Image
	for i := range images {
		for _, t := range images[i].Tags {
			if t == tag {
				out = append(out, images[i])
				break
			}
		}
	}
	return out
}
