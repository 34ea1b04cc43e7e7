package main

import (
	"fmt"
	"log/slog"

	"github.com/GeertJohan/go.linenoise"
	nlopt "github.com/rochus-keller/LuaNLopt"
	"github.com/spf13/cobra"
)

var replCmd = &cobra.Command{
	Use:   "repl",
	Short: "Interactive Lua prompt with the nlopt module loaded",
	Long: `Starts a line-edited Lua prompt. Lines starting with '=' print their
value, e.g. '=nlopt.version()'. Type exit to leave.`,
	RunE: runRepl,
}

func init() {
	rootCmd.AddCommand(replCmd)
}

func runRepl(cmd *cobra.Command, args []string) error {
	L := nlopt.NewState()
	defer L.Close()

	nlopt.SetCallbackErrorHandler(func(err error) {
		slog.Warn("error in optimization callback", "err", err)
	})
	defer nlopt.SetCallbackErrorHandler(nil)

	major, minor, bugfix := nlopt.Version()
	fmt.Printf("%s (NLopt %d.%d.%d)\n", nlopt.LibVersion, major, minor, bugfix)
	fmt.Println("type exit to leave...")
	for {
		str, err := linenoise.Line("> ")
		if err != nil {
			if err == linenoise.KillSignalError {
				return nil
			}
			return err
		}
		if len(str) == 0 {
			continue
		}
		if str == "exit" {
			return nil
		}
		linenoise.AddHistory(str)
		if str[0] == '=' {
			str = "print(" + str[1:] + ")"
		}
		if err := L.DoString(str); err != nil {
			fmt.Println(err)
		}
	}
}
