package cli

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/spf13/cobra"

	configfile "github.com/photon-labs/glance/internal/adapters/driven/config/file"
	"github.com/photon-labs/glance/internal/core/domain"
	"github.com/photon-labs/glance/internal/core/ports/driving"
)

var scanWatch bool

var scanCmd = &cobra.Command{
	Use:   "scan",
	Short: "Scan the media library",
	Long: `Loads all assets and albums from the media library and merges them
with stored annotations. With --watch, keeps running and re-scans
whenever the library changes.`,
	RunE: runScan,
}

func init() {
	scanCmd.Flags().BoolVarP(&scanWatch, "watch", "w", false, "re-scan on library changes")
	rootCmd.AddCommand(scanCmd)
}

func runScan(cmd *cobra.Command, _ []string) error {
	if libraryService == nil {
		return errors.New("library service not configured")
	}

	ctx := cmd.Context()
	cmd.Println("Scanning media library...")

	// Pick up annotations written since startup before merging.
	if galleryService != nil {
		galleryService.Refresh(ctx)
	}

	if err := scanWithProgress(ctx, cmd, libraryService); err != nil {
		return fmt.Errorf("scan failed: %w", err)
	}

	status := libraryService.Status()
	cmd.Printf("Loaded %d assets in %d albums", status.AssetsLoaded, status.AlbumsLoaded)
	if status.ErrorCount > 0 {
		cmd.Printf(" (%d errors)", status.ErrorCount)
	}
	cmd.Println()

	watch := scanWatch
	if !watch && configStore != nil {
		watch = configStore.GetBool(configfile.KeyLibraryWatch)
	}
	if !watch {
		return nil
	}

	cmd.Println("Watching for changes. Press Ctrl+C to stop.")
	if err := libraryService.Watch(ctx); err != nil {
		if errors.Is(err, domain.ErrWatchUnsupported) {
			return errors.New("this media source does not support watching")
		}
		if errors.Is(err, context.Canceled) {
			return nil
		}
		return fmt.Errorf("watch failed: %w", err)
	}
	return nil
}

// scanWithProgress runs the scan while printing progress updates.
func scanWithProgress(ctx context.Context, cmd *cobra.Command, lib driving.LibraryService) error {
	errCh := make(chan error, 1)
	go func() {
		errCh <- lib.Scan(ctx)
	}()

	ticker := time.NewTicker(500 * time.Millisecond)
	defer ticker.Stop()

	lastCount := 0
	for {
		select {
		case err := <-errCh:
			return err
		case <-ticker.C:
			status := lib.Status()
			if status.AssetsLoaded > lastCount {
				cmd.Printf("\rLoading... %d assets", status.AssetsLoaded)
				lastCount = status.AssetsLoaded
			}
		}
	}
}
