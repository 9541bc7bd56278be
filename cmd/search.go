package cmd

import (
	"fmt"

	"github.com/Crazytieguy/alignment-hive-sub001/internal"
	"github.com/spf13/cobra"
)

var searchCmd = &cobra.Command{
	Use:   "search <term>",
	Short: "Search extracted session summaries",
	Long:  `Search the local session index for sessions whose summary or id contains the given term.`,
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		index, err := openIndex()
		if err != nil {
			return fmt.Errorf("failed to open session index: %w", err)
		}
		defer index.Close()

		entries, err := index.Search(args[0])
		if err != nil {
			return err
		}
		if len(entries) == 0 {
			internal.PrintInfo(fmt.Sprintf("No sessions matching %q", args[0]))
			return nil
		}

		printIndexEntries(entries)
		return nil
	},
}

func init() {
	rootCmd.AddCommand(searchCmd)
}
