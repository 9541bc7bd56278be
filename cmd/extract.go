package cmd

import (
	"fmt"

	"github.com/Crazytieguy/alignment-hive-sub001/internal"
	"github.com/spf13/cobra"
)

var extractCmd = &cobra.Command{
	Use:   "extract",
	Short: "Extract sanitized copies of the current project's sessions",
	Long: `Extract sanitized, retrieval-friendly copies of the current project's
raw session logs into the extracted-session directory.

Only sessions whose raw file changed since the last run are re-processed;
freshness is decided from each extracted file's metadata header. Sessions
without any assistant output are skipped. Individual failures never abort the
rest of the batch.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		rawDir, outDir, err := resolveDirs()
		if err != nil {
			return err
		}

		extractor, err := internal.NewExtractor()
		if err != nil {
			return fmt.Errorf("failed to resolve machine id: %w", err)
		}

		index, err := openIndex()
		if err != nil {
			internal.LogWarn("continuing without session index: %v", err)
			index = nil
		} else {
			defer index.Close()
		}

		result, err := extractor.ExtractAll(rawDir, outDir, index)
		if err != nil {
			return err
		}

		for _, failure := range result.Failures {
			internal.PrintWarning(fmt.Sprintf("session %s failed: %v", failure.SessionID, failure.Err))
		}
		if result.Failed > 0 {
			internal.PrintWarning(result.String())
		} else {
			internal.PrintSuccess(result.String())
		}
		return nil
	},
}

func init() {
	rootCmd.AddCommand(extractCmd)
}
