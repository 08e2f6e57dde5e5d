package cli

import (
	"errors"
	"fmt"

	"github.com/spf13/cobra"
)

var ingestCmd = &cobra.Command{
	Use:   "ingest [asset...]",
	Short: "Analyse and add assets to the gallery",
	Long: `Runs AI analysis on each asset reference and commits the result to
the gallery. Assets are processed one at a time; a failed asset is
reported and skipped, never retried automatically.`,
	Args: cobra.MinimumNArgs(1),
	RunE: runIngest,
}

var ingestQueueCmd = &cobra.Command{
	Use:   "queue",
	Short: "Show the processing queue",
	Args:  cobra.NoArgs,
	RunE:  runIngestQueue,
}

func init() {
	ingestCmd.AddCommand(ingestQueueCmd)
	rootCmd.AddCommand(ingestCmd)
}

func runIngest(cmd *cobra.Command, args []string) error {
	if ingestService == nil {
		return errors.New("ingest service not configured")
	}

	failed := 0
	for _, ref := range args {
		cmd.Printf("Ingesting %s... ", ref)

		img, err := ingestService.Ingest(cmd.Context(), ref)
		if err != nil {
			cmd.Printf("FAILED: %v\n", err)
			failed++
			continue
		}

		cmd.Println("OK")
		if img.Caption != "" {
			cmd.Printf("  %s\n", img.Caption)
		}
		cmd.Printf("  id: %s\n", img.ID)
	}

	if failed > 0 {
		return fmt.Errorf("%d of %d assets failed", failed, len(args))
	}
	return nil
}

func runIngestQueue(cmd *cobra.Command, _ []string) error {
	if ingestService == nil {
		return errors.New("ingest service not configured")
	}

	queue := ingestService.Queue()
	if len(queue) == 0 {
		cmd.Println("Queue is empty.")
		return nil
	}

	for _, item := range queue {
		cmd.Printf("  %-10s %3d%%  %s", item.State, item.Progress, item.ID)
		if item.Message != "" {
			cmd.Printf("  (%s)", item.Message)
		}
		cmd.Println()
	}
	return nil
}
