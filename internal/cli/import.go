package cli

import (
	"fmt"
	"sync"

	"github.com/schollz/progressbar/v3"
	"github.com/spf13/cobra"

	"bookbot/internal/adapter/fs"
	"bookbot/internal/usecase"
)

var importCmd = &cobra.Command{
	Use:   "import [path]",
	Short: "Bulk-load records from JSON files",
	Long: `Import record batches from JSON files under the given directory
(default: current directory). Files are matched with the configured glob
patterns. Each file holds one batch:

  {"book": "contact", "records": [{"firstname": "Alice", "lastname": "Smith"}]}

Duplicate records are skipped.`,
	Args: cobra.MaximumNArgs(1),
	RunE: runImport,
}

func init() {
	rootCmd.AddCommand(importCmd)
}

func runImport(cmd *cobra.Command, args []string) error {
	root, err := defaultImportRoot(args)
	if err != nil {
		return err
	}

	a, err := newApp()
	if err != nil {
		return err
	}
	defer a.Close()

	walker := fs.NewWalker(a.cfg.Import.Includes, a.cfg.Import.Excludes)
	importUC := usecase.NewImportUseCase(walker, a.books)

	fmt.Printf("Scanning %s...\n", root)
	result, err := importUC.Import(root, newProgress("[cyan]Importing[reset]"))
	if err != nil {
		return err
	}

	fmt.Printf("\nImport complete:\n")
	fmt.Printf("  Files read:       %d\n", result.FilesRead)
	fmt.Printf("  Records imported: %d\n", result.RecordsImported)
	fmt.Printf("  Records skipped:  %d (duplicates)\n", result.RecordsSkipped)
	printWarnings(result.Errors)
	return nil
}

var reindexForce bool

var reindexCmd = &cobra.Command{
	Use:   "reindex",
	Short: "Rebuild search indices from live records",
	Long: `Drop and rebuild every book's search index from the records currently
held in memory. Records are not persisted between invocations, so a
standalone reindex starts from empty books and discards every indexed
document. A non-empty index is refused unless --force is given.`,
	RunE: runReindex,
}

func init() {
	rootCmd.AddCommand(reindexCmd)
	reindexCmd.Flags().BoolVar(&reindexForce, "force", false, "rebuild even when indices already hold documents")
}

func runReindex(cmd *cobra.Command, args []string) error {
	a, err := newApp()
	if err != nil {
		return err
	}
	defer a.Close()

	reindexUC := usecase.NewReindexUseCase(a.engine, a.adapter, a.ordered)
	result, err := reindexUC.Reindex(reindexForce, newProgress("[cyan]Reindexing[reset]"))
	if err != nil {
		return err
	}

	fmt.Printf("\nReindex complete:\n")
	fmt.Printf("  Indices rebuilt: %d\n", result.IndicesRebuilt)
	fmt.Printf("  Records indexed: %d\n", result.RecordsIndexed)
	printWarnings(result.Errors)
	return nil
}

// newProgress returns a ProgressCallback rendering a progress bar, lazily
// initialized once the total is known.
func newProgress(description string) usecase.ProgressCallback {
	var (
		mu          sync.Mutex
		bar         *progressbar.ProgressBar
		initialized bool
	)
	return func(processed, total int, current string) {
		mu.Lock()
		defer mu.Unlock()
		if !initialized {
			bar = progressbar.NewOptions(total,
				progressbar.OptionEnableColorCodes(true),
				progressbar.OptionShowCount(),
				progressbar.OptionSetWidth(40),
				progressbar.OptionSetDescription(description),
				progressbar.OptionOnCompletion(func() {
					fmt.Println()
				}),
			)
			initialized = true
		}
		bar.Set(processed)
	}
}

func printWarnings(errors []string) {
	if len(errors) == 0 {
		return
	}
	fmt.Printf("\nWarnings:\n")
	for _, e := range errors {
		fmt.Printf("  - %s\n", e)
	}
}
