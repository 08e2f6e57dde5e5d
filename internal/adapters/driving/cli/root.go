// Package cli provides the command-line interface for Glance.
// Commands are thin: they parse flags, call the driving ports, and
// format output. All wiring happens once in initServices.
package cli

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"

	aihttp "github.com/photon-labs/glance/internal/adapters/driven/ai/http"
	configfile "github.com/photon-labs/glance/internal/adapters/driven/config/file"
	"github.com/photon-labs/glance/internal/adapters/driven/media/filesystem"
	memstorage "github.com/photon-labs/glance/internal/adapters/driven/storage/memory"
	"github.com/photon-labs/glance/internal/adapters/driven/storage/sqlite"
	"github.com/photon-labs/glance/internal/core/ports/driven"
	"github.com/photon-labs/glance/internal/core/ports/driving"
	"github.com/photon-labs/glance/internal/core/services"
	"github.com/photon-labs/glance/internal/logger"
)

// version is set at build time via ldflags.
var version = "dev"

// Services used by commands. Set by initServices before any RunE fires;
// tests inject fakes directly.
var (
	galleryService driving.GalleryService
	searchService  driving.SearchService
	ingestService  driving.IngestService
	libraryService driving.LibraryService
	configStore    driven.ConfigStore
)

var (
	flagVerbose    bool
	flagConfigDir  string
	flagLibraryDir string
)

var rootCmd = &cobra.Command{
	Use:   "glance",
	Short: "AI-assisted photo gallery",
	Long: `Glance keeps a searchable photo gallery on top of your media library.
The library stays the source of truth for pixels; Glance stores only
AI annotations and ranks the collection against free-text queries.`,
	SilenceUsage:  true,
	SilenceErrors: true,
	PersistentPreRunE: func(cmd *cobra.Command, _ []string) error {
		logger.SetVerbose(flagVerbose)

		// Version never needs the full stack.
		if cmd.Name() == "version" {
			return nil
		}
		return initServices(cmd)
	},
}

// Execute runs the root command.
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

func init() {
	rootCmd.PersistentFlags().BoolVarP(&flagVerbose, "verbose", "v", false, "enable verbose logging")
	rootCmd.PersistentFlags().StringVar(&flagConfigDir, "config", "", "config directory (default ~/.glance)")
	rootCmd.PersistentFlags().StringVar(&flagLibraryDir, "library", "", "media library root (overrides config)")
}

// initServices builds the adapter stack and core services from config.
func initServices(cmd *cobra.Command) error {
	if galleryService != nil {
		return nil
	}

	cfg, err := configfile.NewConfigStore(flagConfigDir)
	if err != nil {
		return fmt.Errorf("load config: %w", err)
	}
	configStore = cfg

	store, err := buildMetadataStore(cfg)
	if err != nil {
		return fmt.Errorf("open metadata store: %w", err)
	}

	root := flagLibraryDir
	if root == "" {
		root = cfg.GetString(configfile.KeyLibraryRoot)
	}
	if root == "" {
		return fmt.Errorf("no media library configured: set %s in %s or pass --library",
			configfile.KeyLibraryRoot, cfg.Path())
	}
	media := filesystem.NewMediaSource(root)

	annotator := aihttp.NewAnnotator(aihttp.Config{
		BaseURL: cfg.GetString(configfile.KeyAnnotatorURL),
		Model:   cfg.GetString(configfile.KeyAnnotatorModel),
	})

	var galleryOpts []services.GalleryOption
	if n := cfg.GetInt(configfile.KeyAnnotationCap); n > 0 {
		galleryOpts = append(galleryOpts, services.WithAnnotationCap(n))
	}
	gallery := services.NewGallery(store, media, galleryOpts...)
	gallery.Load(cmd.Context())

	var libraryOpts []services.LibraryOption
	if n := cfg.GetInt(configfile.KeyLibraryPageSize); n > 0 {
		libraryOpts = append(libraryOpts, services.WithPageSize(n))
	}

	galleryService = gallery
	searchService = services.NewSearcher(gallery)
	ingestService = services.NewIngestor(annotator, gallery)
	libraryService = services.NewLibrary(media, gallery, libraryOpts...)

	logger.Debug("services initialised (library=%s, store=%s)",
		root, cfg.GetString(configfile.KeyStorageBackend))
	return nil
}

func buildMetadataStore(cfg driven.ConfigStore) (driven.MetadataStore, error) {
	switch backend := cfg.GetString(configfile.KeyStorageBackend); backend {
	case "memory":
		return memstorage.NewKVStore(), nil
	case "", "sqlite":
		dataDir := ""
		if flagConfigDir != "" {
			dataDir = filepath.Join(flagConfigDir, "data")
		}
		return sqlite.NewStore(dataDir)
	default:
		return nil, fmt.Errorf("unknown storage backend %q", backend)
	}
}
