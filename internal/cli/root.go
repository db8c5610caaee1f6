package cli

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"

	"bookbot/config"
	"bookbot/internal/adapter/bookindex"
	"bookbot/internal/adapter/cache"
	"bookbot/internal/adapter/store"
	"bookbot/internal/book"
	"bookbot/internal/engine"
	"bookbot/internal/logger"
	"bookbot/internal/port"
)

var (
	cfgFile string
	dataDir string
	cfg     *config.Config
)

var rootCmd = &cobra.Command{
	Use:   "bookbot",
	Short: "Address book and notes assistant with built-in full-text search",
	Long: `bookbot keeps contacts and notes and makes them searchable through an
embedded inverted-index engine with TF-IDF ranking. Search indices persist
under the data directory; records are fed in via add commands or bulk
import.

Example usage:
  bookbot add-contact --firstname Alice --lastname Smith
  bookbot search contact -q alice
  bookbot stats contact`,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		var err error
		if cfgFile != "" {
			cfg, err = config.Load(cfgFile)
		} else {
			wd, werr := os.Getwd()
			if werr != nil {
				return fmt.Errorf("get working directory: %w", werr)
			}
			cfg, err = config.LoadFromDir(wd)
		}
		if err != nil {
			return fmt.Errorf("load config: %w", err)
		}
		if dataDir != "" {
			cfg.Storage.DataDir = dataDir
		}
		logger.Setup(cfg.Logging.Level, cfg.Logging.Format)
		return nil
	},
}

func Execute() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

func init() {
	rootCmd.PersistentFlags().StringVar(&cfgFile, "config", "", "config file (default is ./bookbot.yaml)")
	rootCmd.PersistentFlags().StringVarP(&dataDir, "data-dir", "d", "", "search index data directory")
}

// app wires the storage backend, engine, adapter and books together for
// one command invocation.
type app struct {
	cfg     *config.Config
	store   port.SnapshotStore
	engine  *engine.Engine
	adapter *bookindex.Adapter
	books   map[string]*book.Book
	ordered []*book.Book
}

func newApp() (*app, error) {
	var (
		st  port.SnapshotStore
		err error
	)
	switch cfg.Storage.Backend {
	case "bolt":
		if err := os.MkdirAll(cfg.Storage.DataDir, 0o755); err != nil {
			return nil, fmt.Errorf("create data dir: %w", err)
		}
		st, err = store.NewBoltStore(cfg.BoltDBPath())
	default:
		st, err = store.NewFileStore(cfg.Storage.DataDir)
	}
	if err != nil {
		return nil, fmt.Errorf("open index store: %w", err)
	}

	var qc *cache.QueryCache
	if cfg.Search.CacheEnabled {
		qc = cache.NewQueryCache(cfg.Search.CacheSize, cfg.Search.CacheTTL())
	}
	eng := engine.New(st, qc)
	adapter := bookindex.New(eng)

	a := &app{
		cfg:     cfg,
		store:   st,
		engine:  eng,
		adapter: adapter,
		books:   make(map[string]*book.Book),
	}
	for _, schema := range []*book.Schema{book.ContactSchema(), book.NoteSchema()} {
		b, err := book.New(schema, adapter)
		if err != nil {
			st.Close()
			return nil, err
		}
		a.books[schema.Name] = b
		a.ordered = append(a.ordered, b)
	}
	return a, nil
}

func (a *app) Close() {
	if err := a.store.Close(); err != nil {
		logger.WithComponent("cli").Error("close store failed", "error", err)
	}
}

func (a *app) book(name string) (*book.Book, error) {
	b, ok := a.books[name]
	if !ok {
		return nil, fmt.Errorf("unknown book %q (known: contact, note)", name)
	}
	return b, nil
}

func defaultImportRoot(args []string) (string, error) {
	if len(args) > 0 {
		return filepath.Abs(args[0])
	}
	return os.Getwd()
}
