package main

import (
	"fmt"

	nlopt "github.com/rochus-keller/LuaNLopt"
	"github.com/spf13/cobra"
)

var version = "0.1.0"

var versionCmd = &cobra.Command{
	Use:   "version",
	Short: "Print version information",
	Run: func(cmd *cobra.Command, args []string) {
		major, minor, bugfix := nlopt.Version()
		fmt.Printf("luanlopt version %s (NLopt %d.%d.%d)\n", version, major, minor, bugfix)
	},
}

func init() {
	rootCmd.AddCommand(versionCmd)
}
