package cmd

import (
	"fmt"
	"os"
	"text/tabwriter"

	"github.com/Crazytieguy/alignment-hive-sub001/internal"
	"github.com/charmbracelet/lipgloss"
	"github.com/spf13/cobra"
)

var (
	headerStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("62"))

	idStyle = lipgloss.NewStyle().
		Foreground(lipgloss.Color("240")).
		Italic(true)

	countStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("42")).
			Bold(true)

	dateStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("243"))
)

var listCmd = &cobra.Command{
	Use:   "list",
	Short: "List extracted sessions",
	Long:  `List all extracted sessions recorded in the local session index.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		index, err := openIndex()
		if err != nil {
			return fmt.Errorf("failed to open session index: %w", err)
		}
		defer index.Close()

		entries, err := index.Sessions()
		if err != nil {
			return err
		}
		if len(entries) == 0 {
			internal.PrintInfo("No extracted sessions yet. Run 'hive-mind extract' first.")
			return nil
		}

		printIndexEntries(entries)
		return nil
	},
}

func printIndexEntries(entries []internal.IndexEntry) {
	w := tabwriter.NewWriter(os.Stdout, 0, 4, 2, ' ', 0)
	fmt.Fprintf(w, "%s\t%s\t%s\t%s\n",
		headerStyle.Render("SESSION"),
		headerStyle.Render("MESSAGES"),
		headerStyle.Render("EXTRACTED"),
		headerStyle.Render("SUMMARY"))

	for _, entry := range entries {
		summary := entry.Summary
		if len(summary) > 60 {
			summary = summary[:57] + "..."
		}
		fmt.Fprintf(w, "%s\t%s\t%s\t%s\n",
			idStyle.Render(entry.SessionID),
			countStyle.Render(fmt.Sprintf("%d", entry.MessageCount)),
			dateStyle.Render(entry.ExtractedAt.Format("2006-01-02 15:04")),
			summary)
	}
	w.Flush()
}

func init() {
	rootCmd.AddCommand(listCmd)
}
