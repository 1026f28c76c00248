package cmd

import (
	"runtime/debug"

	"github.com/spf13/cobra"
)

func newVersionCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Show the cd2ifier version and translation coverage",
		Long:  "Displays the cd2ifier build version, the Go version it was built with, and how many CD1 fields and pawn stats the embedded translation table covers.",
		Run: func(cmd *cobra.Command, _ []string) {
			if info, ok := debug.ReadBuildInfo(); ok && info.Main.Version != "" {
				cmd.Println("cd2ifier version\t", info.Main.Version)
				cmd.Println("go version\t", info.GoVersion)
			} else {
				cmd.Println("cd2ifier version\t unknown")
			}

			cmd.Printf("translation table\t %d fields, %d pawn stats\n",
				len(mappingTable.Mappings()), len(mappingTable.Stats()))
		},
	}
}

// versionCmd represents the version command.
var versionCmd = newVersionCmd()

func init() {
	rootCmd.AddCommand(versionCmd)
}
