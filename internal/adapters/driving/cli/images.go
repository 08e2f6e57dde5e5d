package cli

import (
	"errors"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/photon-labs/glance/internal/core/domain"
	"github.com/photon-labs/glance/internal/core/services"
)

var (
	imagesTag       string
	imagesSort      string
	imagesFavorites bool
)

var imagesCmd = &cobra.Command{
	Use:   "images",
	Short: "List gallery images",
	RunE:  runImagesList,
}

var imagesShowCmd = &cobra.Command{
	Use:   "show [image-id]",
	Short: "Show one image's details",
	Args:  cobra.ExactArgs(1),
	RunE:  runImagesShow,
}

var imagesRemoveCmd = &cobra.Command{
	Use:   "remove [image-id]",
	Short: "Remove an image and its annotations",
	Args:  cobra.ExactArgs(1),
	RunE:  runImagesRemove,
}

var imagesFavoriteCmd = &cobra.Command{
	Use:   "favorite [image-id]",
	Short: "Toggle an image's favorite flag",
	Args:  cobra.ExactArgs(1),
	RunE:  runImagesFavorite,
}

var tagsCmd = &cobra.Command{
	Use:   "tags",
	Short: "List all tags in the gallery",
	RunE:  runTags,
}

func init() {
	imagesCmd.Flags().StringVarP(&imagesTag, "tag", "t", "", "filter by exact tag")
	imagesCmd.Flags().StringVarP(&imagesSort, "sort", "s", "date", "sort order: date, name or size")
	imagesCmd.Flags().BoolVar(&imagesFavorites, "favorites", false, "only show favorites")
	imagesCmd.AddCommand(imagesShowCmd)
	imagesCmd.AddCommand(imagesRemoveCmd)
	imagesCmd.AddCommand(imagesFavoriteCmd)
	rootCmd.AddCommand(imagesCmd)
	rootCmd.AddCommand(tagsCmd)
}

func runImagesList(cmd *cobra.Command, _ []string) error {
	if galleryService == nil {
		return errors.New("gallery service not configured")
	}

	images := galleryService.Images()
	images = services.FilterByTag(images, imagesTag)

	if imagesFavorites {
		fav := make(map[string]bool)
		for _, id := range galleryService.Favorites() {
			fav[id] = true
		}
		filtered := images[:0:0]
		for _, img := range images {
			if fav[img.ID] {
				filtered = append(filtered, img)
			}
		}
		images = filtered
	}

	images = services.SortImages(images, services.SortKey(imagesSort))

	if len(images) == 0 {
		cmd.Println("No images.")
		return nil
	}
	printImageList(cmd, images)
	return nil
}

func runImagesShow(cmd *cobra.Command, args []string) error {
	if galleryService == nil {
		return errors.New("gallery service not configured")
	}

	img, err := galleryService.GetImage(args[0])
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return fmt.Errorf("no image with id %s", args[0])
		}
		return err
	}

	cmd.Printf("ID:       %s\n", img.ID)
	cmd.Printf("File:     %s\n", img.FileName)
	cmd.Printf("URI:      %s\n", img.URI)
	cmd.Printf("Created:  %s\n", img.CreatedAt.Format("2006-01-02 15:04"))
	if img.Width > 0 && img.Height > 0 {
		cmd.Printf("Size:     %dx%d (%d bytes)\n", img.Width, img.Height, img.Size)
	}
	if img.Caption != "" {
		cmd.Printf("Caption:  %s\n", img.Caption)
	}
	if len(img.Tags) > 0 {
		cmd.Printf("Tags:     %v\n", img.Tags)
	}
	if len(img.Metadata.People) > 0 {
		cmd.Printf("People:   %v\n", img.Metadata.People)
	}
	if len(img.Metadata.Objects) > 0 {
		cmd.Printf("Objects:  %v\n", img.Metadata.Objects)
	}
	if img.Metadata.TextContent != "" {
		cmd.Printf("Text:     %s\n", img.Metadata.TextContent)
	}
	return nil
}

func runImagesRemove(cmd *cobra.Command, args []string) error {
	if galleryService == nil {
		return errors.New("gallery service not configured")
	}

	galleryService.RemoveImage(cmd.Context(), args[0])
	cmd.Printf("Removed %s\n", args[0])
	return nil
}

func runImagesFavorite(cmd *cobra.Command, args []string) error {
	if galleryService == nil {
		return errors.New("gallery service not configured")
	}

	if err := galleryService.ToggleFavorite(cmd.Context(), args[0]); err != nil {
		return fmt.Errorf("failed to toggle favorite: %w", err)
	}
	cmd.Printf("Toggled favorite for %s\n", args[0])
	return nil
}

func runTags(cmd *cobra.Command, _ []string) error {
	if galleryService == nil {
		return errors.New("gallery service not configured")
	}

	tags := galleryService.AllTags()
	if len(tags) == 0 {
		cmd.Println("No tags.")
		return nil
	}
	for _, t := range tags {
		cmd.Printf("  %s\n", t)
	}
	return nil
}

// printImageList prints a compact one-line-per-image listing.
func printImageList(cmd *cobra.Command, images []domain.Image) {
	for _, img := range images {
		caption := img.Caption
		if caption == "" {
			caption = "(no caption)"
		}
		cmd.Printf("  %-24s %s  %s\n", img.FileName, img.CreatedAt.Format("2006-01-02"), caption)
	}
}
