package cmd

import (
	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	m "github.com/vonacht/cd2ifier/internal/model"
)

var batchParallelFlag int

// batchCmd represents the batch command.
var batchCmd = newBatchCmd()

func newBatchCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "batch DIR",
		Short: "Convert every CD1 file in a directory",
		Long: `Convert every .json file directly under DIR to the CD2 schema.

Output names are derived from each source file; files that already carry
the .cd2 marker are skipped. Files are converted independently, each
through its own conversion run.`,
		Args: cobra.ExactArgs(1),
		RunE: func(_ *cobra.Command, args []string) error {
			parallel := viper.GetInt(batchParallelKey)

			results, err := workflow.ConvertDir(m.Path(args[0]), parallel, optionsFromConfig())
			if err != nil {
				return err
			}

			ui.DisplayResults(results...)

			return nil
		},
	}

	configureBatchFlags(cmd)

	return cmd
}

func init() {
	rootCmd.AddCommand(batchCmd)
}

func configureBatchFlags(cmd *cobra.Command) {
	// Package vars initialize before config.go's init seeds viper, so the
	// registered default comes from the constant, not a viper read.
	cmd.Flags().IntVarP(&batchParallelFlag, batchParallelFlagName, "p", defaultBatchParallel, "number of files converted in parallel")
	bindFlagToConfig(cmd.Flags().Lookup(batchParallelFlagName), batchParallelKey)
}
