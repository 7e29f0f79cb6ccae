// Command graphwalk runs a YAML-described demo query against one of the
// example adapters (numbers, library) and prints the resulting rows as
// JSON. It exists to give the engine a runnable entry point outside the
// test suite, and to exercise github.com/spf13/cobra and gopkg.in/yaml.v3
// the way the teacher's graphql demo server exercises jaal itself.
//
// Grounded on termfx-morfx/demo/cmd/main.go's root-command-plus-subcommand
// shape (a cobra.Command tree with one "run" leaf), trimmed to this
// repo's single operation.
package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
)

func main() {
	root := &cobra.Command{
		Use:   "graphwalk",
		Short: "Run graph queries against the bundled example adapters",
	}

	runCmd := &cobra.Command{
		Use:   "run <bundle.yaml>",
		Short: "Compile and run the query described in a YAML bundle",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runBundle(args[0])
		},
	}
	root.AddCommand(runCmd)

	if err := root.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
