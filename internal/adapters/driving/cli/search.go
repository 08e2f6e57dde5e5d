package cli

import (
	"encoding/json"
	"errors"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/photon-labs/glance/internal/core/domain"
)

var (
	searchLimit int
	searchJSON  bool
)

var searchCmd = &cobra.Command{
	Use:   "search [query]",
	Short: "Search the gallery",
	Long: `Ranks the gallery against a free-text query.
Matches captions, tags, extracted text, people, objects and file names,
with a semantic fallback for queries like "sunset" or "beach".`,
	Args: cobra.ExactArgs(1),
	RunE: runSearch,
}

var suggestCmd = &cobra.Command{
	Use:   "suggest [prefix]",
	Short: "Suggest tags for a partial query",
	Args:  cobra.MaximumNArgs(1),
	RunE:  runSuggest,
}

func init() {
	searchCmd.Flags().IntVarP(&searchLimit, "limit", "n", 0, "maximum number of results (0 = all)")
	searchCmd.Flags().BoolVar(&searchJSON, "json", false, "output results as JSON")
	searchCmd.AddCommand(suggestCmd)
	rootCmd.AddCommand(searchCmd)
}

func runSearch(cmd *cobra.Command, args []string) error {
	if searchService == nil {
		return errors.New("search service not configured")
	}

	results, err := searchService.Search(cmd.Context(), args[0])
	if err != nil {
		return fmt.Errorf("search failed: %w", err)
	}

	if searchLimit > 0 && len(results) > searchLimit {
		results = results[:searchLimit]
	}

	if searchJSON {
		return outputSearchJSON(cmd, results)
	}
	return outputSearchTable(cmd, results)
}

func outputSearchJSON(cmd *cobra.Command, results []domain.SearchResult) error {
	data, err := json.MarshalIndent(results, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to marshal results: %w", err)
	}
	cmd.Println(string(data))
	return nil
}

func outputSearchTable(cmd *cobra.Command, results []domain.SearchResult) error {
	if len(results) == 0 {
		cmd.Println("No results found.")
		return nil
	}

	cmd.Println("Results:")
	cmd.Println()
	for i := range results {
		name := results[i].Item.FileName
		if name == "" {
			name = results[i].Item.ID
		}

		cmd.Printf("  [%d] %s (%.2f, %s)\n", i+1, name, results[i].Score, results[i].MatchType)
		if results[i].Item.Caption != "" {
			cmd.Printf("      %s\n", results[i].Item.Caption)
		}
		cmd.Println()
	}

	return nil
}

func runSuggest(cmd *cobra.Command, args []string) error {
	if searchService == nil {
		return errors.New("search service not configured")
	}

	if len(args) == 0 || args[0] == "" {
		// No prefix: show recent and starter queries instead.
		if recent := searchService.RecentSearches(); len(recent) > 0 {
			cmd.Println("Recent:")
			for _, q := range recent {
				cmd.Printf("  %s\n", q)
			}
		}
		cmd.Println("Try:")
		for _, q := range searchService.SuggestedSearches() {
			cmd.Printf("  %s\n", q)
		}
		return nil
	}

	suggestions := searchService.Suggestions(args[0])
	if len(suggestions) == 0 {
		cmd.Println("No matching tags.")
		return nil
	}
	for _, s := range suggestions {
		cmd.Printf("  %s\n", s)
	}
	return nil
}
