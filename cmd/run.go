package cmd

import (
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/luthersystems/tinylisp/lisp"
	"github.com/spf13/cobra"
)

var (
	runExpression bool
	runPrint      bool
)

// runCmd represents the run command
var runCmd = &cobra.Command{
	Use:   "run [file...]",
	Short: "Run lisp code",
	Long:  `Run lisp code supplied on the command line or read from files.`,
	Args:  cobra.MinimumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		rt, err := newRuntime(cmd)
		if err != nil {
			return err
		}
		for _, arg := range args {
			err := runSource(cmd, rt, arg)
			if err != nil {
				printStack(cmd, err)
				return err
			}
		}
		return nil
	},
}

// runSource evaluates every expression in the source named by arg, which is
// program text when the expression flag is set and a file path otherwise.
func runSource(cmd *cobra.Command, rt *lisp.Runtime, arg string) error {
	name := arg
	var r io.Reader
	if runExpression {
		name = "<expression>"
		r = strings.NewReader(arg)
	} else {
		f, err := os.Open(arg)
		if err != nil {
			return err
		}
		defer f.Close()
		r = f
	}
	exprs, err := rt.Reader.ReadProgram(name, r)
	if err != nil {
		return err
	}
	for _, expr := range exprs {
		v, err := rt.Eval(expr, rt.Global)
		if err != nil {
			return err
		}
		if runPrint {
			fmt.Fprintln(cmd.OutOrStdout(), v)
		}
	}
	return nil
}

func init() {
	rootCmd.AddCommand(runCmd)

	// Here flags for the run command are defined
	runCmd.Flags().BoolVarP(&runExpression, "expression", "e", false,
		"Interpret arguments as lisp expressions")
	runCmd.Flags().BoolVarP(&runPrint, "print", "p", false,
		"Print expression values to stdout")
}
