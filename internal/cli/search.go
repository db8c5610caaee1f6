package cli

import (
	"encoding/json"
	"fmt"
	"sort"

	"github.com/spf13/cobra"
)

var (
	searchQuery string
	searchLimit int
	searchJSON  bool
)

var searchCmd = &cobra.Command{
	Use:   "search <book>",
	Short: "Search a book's records",
	Long: `Search a book's indexed documents with a free-text query. Results are
ranked by TF-IDF; any query token may match (OR semantics). Queries shorter
than three characters are rejected.

Examples:
  bookbot search contact -q alice
  bookbot search note -q "senior developer" --limit 5 --json`,
	Args: cobra.ExactArgs(1),
	RunE: runSearch,
}

func init() {
	rootCmd.AddCommand(searchCmd)
	searchCmd.Flags().StringVarP(&searchQuery, "query", "q", "", "search query (required)")
	searchCmd.Flags().IntVar(&searchLimit, "limit", 0, "maximum results (default from config)")
	searchCmd.Flags().BoolVar(&searchJSON, "json", false, "output as JSON")
	searchCmd.MarkFlagRequired("query")
}

func runSearch(cmd *cobra.Command, args []string) error {
	a, err := newApp()
	if err != nil {
		return err
	}
	defer a.Close()

	if _, err := a.book(args[0]); err != nil {
		return err
	}

	limit := a.cfg.Search.DefaultLimit
	if searchLimit > 0 {
		limit = searchLimit
	}

	docs, err := a.adapter.SearchRecords(args[0], searchQuery, nil, limit)
	if err != nil {
		return err
	}

	if searchJSON {
		output, _ := json.MarshalIndent(docs, "", "  ")
		fmt.Println(string(output))
		return nil
	}
	if len(docs) == 0 {
		fmt.Println("No results found.")
		return nil
	}
	fmt.Printf("Found %d result(s) for: %s\n\n", len(docs), searchQuery)
	for i, doc := range docs {
		fmt.Printf("--- [%d] %v ---\n", i+1, doc["id"])
		keys := make([]string, 0, len(doc))
		for key := range doc {
			keys = append(keys, key)
		}
		sort.Strings(keys)
		for _, key := range keys {
			if key == "id" || key == "_all" {
				continue
			}
			fmt.Printf("  %s: %v\n", key, doc[key])
		}
		fmt.Println()
	}
	return nil
}

var getCmd = &cobra.Command{
	Use:   "get <book> <id>",
	Short: "Fetch one document by ID",
	Args:  cobra.ExactArgs(2),
	RunE:  runGet,
}

func init() {
	rootCmd.AddCommand(getCmd)
}

func runGet(cmd *cobra.Command, args []string) error {
	a, err := newApp()
	if err != nil {
		return err
	}
	defer a.Close()

	if _, err := a.book(args[0]); err != nil {
		return err
	}
	doc, ok := a.engine.GetDocument(args[0], args[1])
	if !ok {
		fmt.Printf("No document %q in %s\n", args[1], args[0])
		return nil
	}
	output, _ := json.MarshalIndent(doc, "", "  ")
	fmt.Println(string(output))
	return nil
}
