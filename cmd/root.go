package cmd

import (
	"fmt"
	"os"

	"github.com/Crazytieguy/alignment-hive-sub001/internal"
	"github.com/spf13/cobra"
)

var (
	verbose     bool
	projectsDir string
	outputDir   string
	version     string = "dev"
	commit      string = "unknown"
	date        string = "unknown"
)

// rootCmd represents the base command when called without any subcommands
var rootCmd = &cobra.Command{
	Use:   "hive-mind",
	Short: "Extract and share sanitized AI-assistant session logs",
	Long: `hive-mind extracts privacy-sanitized, retrieval-friendly copies of
Claude Code conversation logs for later search and sharing.

Large binary payloads are replaced with size metadata, tool results are
reduced to per-tool field allowlists, and low-value or sensitive fields are
stripped. Extraction is incremental: unchanged sessions are detected from the
output header alone and never re-processed.

Quick Start:
  hive-mind extract              # Extract sessions for the current project
  hive-mind list                 # List extracted sessions
  hive-mind search <term>        # Search extracted session summaries
  hive-mind show <session-id>    # View one extracted session
  hive-mind watch                # Re-extract continuously on change`,
	Version: fmt.Sprintf("%s (commit: %s, built: %s)", version, commit, date),
	PersistentPreRun: func(cmd *cobra.Command, args []string) {
		internal.SetVerbose(verbose)
	},
}

// Execute adds all child commands to the root command and sets flags appropriately.
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

func init() {
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "Enable verbose logging")
	rootCmd.PersistentFlags().StringVar(&projectsDir, "projects-dir", "", "Raw session directory (default: ~/.claude/projects/<encoded cwd>)")
	rootCmd.PersistentFlags().StringVar(&outputDir, "output-dir", "", "Extracted session directory (default: ./.hive-mind/sessions)")

	rootCmd.SetVersionTemplate(`{{printf "%s\n" .Version}}`)
}

// resolveDirs applies flag and config overrides to locate the raw and output
// directories for the current project.
func resolveDirs() (rawDir, outDir string, err error) {
	cfg, err := internal.LoadConfig()
	if err != nil {
		return "", "", err
	}

	workDir, err := os.Getwd()
	if err != nil {
		return "", "", err
	}

	rawDir = projectsDir
	if rawDir == "" {
		rawDir, err = internal.ProjectSessionsDir(cfg.ProjectsRoot, workDir)
		if err != nil {
			return "", "", err
		}
	}

	outDir = outputDir
	if outDir == "" {
		outDir = cfg.OutputDir
	}
	if outDir == "" {
		outDir = internal.DefaultOutputDir(workDir)
	}

	return rawDir, outDir, nil
}

// openIndex opens the session index at its configured location.
func openIndex() (*internal.Index, error) {
	cfg, err := internal.LoadConfig()
	if err != nil {
		return nil, err
	}
	path := cfg.IndexPath
	if path == "" {
		path, err = internal.DefaultIndexPath()
		if err != nil {
			return nil, err
		}
	}
	return internal.OpenIndex(path)
}
