package cli

import (
	"errors"
	"fmt"

	"github.com/spf13/cobra"
)

var albumsCmd = &cobra.Command{
	Use:   "albums",
	Short: "List albums",
	Long: `Lists device albums and user-created albums.
Device albums mirror the media library; user albums are created here
and survive across sessions.`,
	RunE: runAlbumsList,
}

var albumsCreateCmd = &cobra.Command{
	Use:   "create [title]",
	Short: "Create a user album",
	Args:  cobra.ExactArgs(1),
	RunE:  runAlbumsCreate,
}

var albumsShowCmd = &cobra.Command{
	Use:   "show [album-id]",
	Short: "List images in an album",
	Args:  cobra.ExactArgs(1),
	RunE:  runAlbumsShow,
}

func init() {
	albumsCmd.AddCommand(albumsCreateCmd)
	albumsCmd.AddCommand(albumsShowCmd)
	rootCmd.AddCommand(albumsCmd)
}

func runAlbumsList(cmd *cobra.Command, _ []string) error {
	if galleryService == nil {
		return errors.New("gallery service not configured")
	}

	albums := galleryService.Albums()
	if len(albums) == 0 {
		cmd.Println("No albums.")
		return nil
	}

	for _, album := range albums {
		kind := "user"
		if album.DeviceSourced {
			kind = "device"
		}
		cmd.Printf("  %-30s %4d images  [%s]  %s\n", album.Title, album.Count, kind, album.ID)
	}
	return nil
}

func runAlbumsCreate(cmd *cobra.Command, args []string) error {
	if galleryService == nil {
		return errors.New("gallery service not configured")
	}

	album, err := galleryService.CreateAlbum(cmd.Context(), args[0])
	if err != nil {
		return fmt.Errorf("failed to create album: %w", err)
	}

	cmd.Printf("Created album %q (%s)\n", album.Title, album.ID)
	return nil
}

func runAlbumsShow(cmd *cobra.Command, args []string) error {
	if galleryService == nil {
		return errors.New("gallery service not configured")
	}

	images := galleryService.ImagesInAlbum(args[0])
	if len(images) == 0 {
		cmd.Println("No images in this album.")
		return nil
	}

	printImageList(cmd, images)
	return nil
}
