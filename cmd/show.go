package cmd

import (
	"fmt"
	"os"

	"github.com/Crazytieguy/alignment-hive-sub001/internal"
	"github.com/charmbracelet/lipgloss"
	"github.com/spf13/cobra"
)

var (
	roleStyles = map[string]lipgloss.Style{
		"user":      lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("212")),
		"assistant": lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("42")),
	}
	metaStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("243"))
)

var showCmd = &cobra.Command{
	Use:   "show <session-id|path>",
	Short: "Show one extracted session",
	Long: `Render an extracted session file. The argument is a session id from
'hive-mind list', or a path to an extracted .jsonl file.`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		path, err := resolveExtractedPath(args[0])
		if err != nil {
			return err
		}

		header, err := internal.ReadHeader(path)
		if err != nil {
			return fmt.Errorf("failed to read extracted session: %w", err)
		}

		fmt.Println(metaStyle.Render(fmt.Sprintf("session %s · %d messages · extracted %s",
			header.SessionID, header.MessageCount, header.ExtractedAt)))
		if header.Summary != "" {
			fmt.Println(metaStyle.Render("summary: " + header.Summary))
		}
		fmt.Println()

		data, err := os.ReadFile(path)
		if err != nil {
			return err
		}

		first := true
		return internal.IterateLines(data, func(value any) error {
			if first {
				// Line 1 is the metadata header, already rendered.
				first = false
				return nil
			}
			entry, class := internal.Classify(value)
			if class != internal.ClassifyRetain {
				return nil
			}
			printEntry(entry)
			return nil
		})
	},
}

func printEntry(entry *internal.Entry) {
	switch entry.Type {
	case internal.EntryTypeUser, internal.EntryTypeAssistant:
		message, ok := entry.Message()
		if !ok {
			return
		}
		role, _ := message["role"].(string)
		style, ok := roleStyles[role]
		if !ok {
			style = metaStyle
		}
		text := internal.ContentText(message["content"])
		if text == "" {
			return
		}
		fmt.Printf("%s %s\n\n", style.Render(role+":"), text)
	case internal.EntryTypeSystem:
		if content, ok := entry.Fields["content"].(string); ok && content != "" {
			fmt.Printf("%s %s\n\n", metaStyle.Render("system:"), content)
		}
	}
}

// resolveExtractedPath maps a session id to its indexed output path, or
// passes an existing file path through.
func resolveExtractedPath(arg string) (string, error) {
	if _, err := os.Stat(arg); err == nil {
		return arg, nil
	}

	index, err := openIndex()
	if err != nil {
		return "", fmt.Errorf("failed to open session index: %w", err)
	}
	defer index.Close()

	entry, err := index.Get(arg)
	if err != nil {
		return "", err
	}
	if entry == nil {
		return "", fmt.Errorf("unknown session: %s", arg)
	}
	return entry.OutputPath, nil
}

func init() {
	rootCmd.AddCommand(showCmd)
}
