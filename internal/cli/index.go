package cli

import (
	"fmt"

	"github.com/spf13/cobra"
)

var indicesCmd = &cobra.Command{
	Use:   "indices",
	Short: "List search indices",
	RunE: func(cmd *cobra.Command, args []string) error {
		a, err := newApp()
		if err != nil {
			return err
		}
		defer a.Close()

		names := a.engine.ListIndices()
		if len(names) == 0 {
			fmt.Println("No indices.")
			return nil
		}
		for _, name := range names {
			fmt.Println(name)
		}
		return nil
	},
}

var statsCmd = &cobra.Command{
	Use:   "stats <index>",
	Short: "Show index statistics",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		a, err := newApp()
		if err != nil {
			return err
		}
		defer a.Close()

		stats, err := a.engine.Stats(args[0])
		if err != nil {
			return err
		}
		fmt.Printf("Index:        %s\n", args[0])
		fmt.Printf("Documents:    %d\n", stats.DocumentCount)
		fmt.Printf("Unique terms: %d\n", stats.UniqueTerms)
		fmt.Printf("Mapped fields: %d\n", len(stats.Mapping))
		return nil
	},
}

var dropIndexCmd = &cobra.Command{
	Use:   "drop-index <index>",
	Short: "Delete an index in memory and on disk",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		a, err := newApp()
		if err != nil {
			return err
		}
		defer a.Close()

		if !a.engine.DeleteIndex(args[0]) {
			fmt.Printf("No such index: %s\n", args[0])
			return nil
		}
		fmt.Printf("Dropped index %s\n", args[0])
		return nil
	},
}

func init() {
	rootCmd.AddCommand(indicesCmd)
	rootCmd.AddCommand(statsCmd)
	rootCmd.AddCommand(dropIndexCmd)
}
