package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"calc/repl"
)

// rootEnv provides the environment for the root command.
type rootEnv struct {
	expr string
}

// getRootCmd returns the definition of the root command.
func getRootCmd() *cobra.Command {
	env := &rootEnv{}
	cmd := &cobra.Command{
		Use:   "calc [script]",
		Short: "An interactive command-line calculator.",
		Long: `
calc evaluates numeric expressions with variable binding and builtin
math functions. With no arguments it starts a REPL; with a script file
argument it evaluates the file one statement per line.`,
		Args:         cobra.MaximumNArgs(1),
		RunE:         env.runRootCmd,
		SilenceUsage: true,
	}

	cmd.Flags().StringVarP(&env.expr, "expr", "e", "", "Evaluate a single expression and exit")

	return cmd
}

// runRootCmd executes the root command.
func (r *rootEnv) runRootCmd(cmd *cobra.Command, args []string) error {
	session := repl.NewSession()

	if r.expr != "" {
		val, err := session.Eval(r.expr)
		if err != nil {
			return err
		}

		fmt.Fprintln(cmd.OutOrStdout(), repl.Format(val))

		return nil
	}

	if len(args) == 1 {
		return session.RunScript(args[0], cmd.OutOrStdout())
	}

	return session.Run(os.Stdin, cmd.OutOrStdout())
}

func main() {
	if err := getRootCmd().Execute(); err != nil {
		os.Exit(1)
	}
}
