// Package cmd provides the root command and CLI setup for cd2ifier.
package cmd

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"github.com/spf13/pflag"
	"github.com/spf13/viper"

	"github.com/vonacht/cd2ifier/internal/adapter"
	"github.com/vonacht/cd2ifier/internal/controller"
	"github.com/vonacht/cd2ifier/internal/domain"
	"github.com/vonacht/cd2ifier/internal/mapping"
	m "github.com/vonacht/cd2ifier/internal/model"
)

var mappingTable *mapping.Table
var documentIO adapter.DocumentIO
var workflow *domain.Workflow
var ui *controller.SummaryUI

// compactFlag selects whitespace-free output when set.
var compactFlag bool

// strictFlag promotes unknown input fields to fatal errors.
var strictFlag bool

// verboseFlag raises file logging to debug level.
var verboseFlag bool

const rootLongDescription = `cd2ifier converts Custom Difficulty (CD1) JSON files to the CD2 schema.

Old flat fields are regrouped into CD2's typed modules, removed concepts
are re-expressed as mutators, deprecated fields are dropped, and the
result is written deterministically next to the source file unless a
target path is given.`

// rootCmd represents the base command; converting a file is the tool's
// only job, so the root command does it directly.
var rootCmd = newRootCmd()

func newRootCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "cd2ifier SOURCE [TARGET]",
		Short: "Convert CD1 difficulty files to the CD2 schema",
		Long:  rootLongDescription,
		Args:  cobra.RangeArgs(1, 2),
		PersistentPreRun: func(_ *cobra.Command, _ []string) {
			configureLogger(viper.GetString(logFilenameKey), viper.GetBool(logVerboseKey))
		},
		RunE: func(_ *cobra.Command, args []string) error {
			source := m.Path(args[0])

			var target m.Path
			if len(args) == 2 {
				target = m.Path(args[1])
			}

			result, err := workflow.ConvertFile(source, target, optionsFromConfig())
			if err != nil {
				return err
			}

			ui.DisplayResults(result)

			return nil
		},
	}

	configureRootFlags(cmd)

	return cmd
}

func configureRootFlags(cmd *cobra.Command) {
	// Package vars initialize before config.go's init seeds viper, so the
	// registered defaults come from the constants, not viper reads.
	cmd.PersistentFlags().BoolVarP(&compactFlag, compactFlagName, "d", defaultCompact, "write the JSON in compact form")
	bindFlagToConfig(cmd.PersistentFlags().Lookup(compactFlagName), compactFlagName)

	cmd.PersistentFlags().BoolVar(&strictFlag, strictFlagName, defaultStrict, "fail on unknown fields instead of dropping them")
	bindFlagToConfig(cmd.PersistentFlags().Lookup(strictFlagName), strictFlagName)

	cmd.PersistentFlags().BoolVarP(&verboseFlag, "verbose", "v", defaultLogVerbose, "log at debug level")
	bindFlagToConfig(cmd.PersistentFlags().Lookup("verbose"), logVerboseKey)
}

// bindFlagToConfig wires a Cobra flag to a Viper key so config/env values feed the flag.
func bindFlagToConfig(flag *pflag.Flag, key string) {
	if flag == nil {
		cobra.CheckErr(fmt.Errorf("flag for config key %q not found", key))
		return
	}

	cobra.CheckErr(viper.BindPFlag(key, flag))
}

func optionsFromConfig() domain.Options {
	return domain.Options{
		Strict:  viper.GetBool(strictFlagName),
		Compact: viper.GetBool(compactFlagName),
	}
}

func init() {
	// Initialize shared dependencies.
	table, err := mapping.Load()
	cobra.CheckErr(err)

	mappingTable = table
	documentIO = adapter.NewLocalDocumentIO()
	workflow = domain.NewWorkflow(documentIO, domain.NewConverter(table))
	ui = controller.NewSummaryUI(rootCmd)
}

// Execute adds all child commands to the root command and sets flags appropriately.
// This is called by main.main(). It only needs to happen once to the rootCmd.
func Execute() {
	err := rootCmd.Execute()
	if err != nil {
		os.Exit(1)
	}
}
