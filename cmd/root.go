package cmd

import (
	"errors"
	"fmt"
	"log"
	"os"
	"strings"

	"github.com/luthersystems/tinylisp/lisp"
	"github.com/luthersystems/tinylisp/parser"
	"github.com/spf13/cobra"
)

var (
	rootMaxDepth    int
	rootReader      string
	rootVerbose     bool
	rootStack       bool
	rootSurplusArgs bool
)

// rootCmd represents the base command when called without any subcommands
var rootCmd = &cobra.Command{
	Use:   "tinylisp",
	Short: "A minimal lisp interpreter",
	Long: `A minimal lisp interpreter.

When called with arguments and no subcommand the arguments are joined into a
single expression which is evaluated and its value printed.  When called
without arguments an interactive session is started.`,
	Args:          cobra.ArbitraryArgs,
	SilenceUsage:  true,
	SilenceErrors: true,
	RunE: func(cmd *cobra.Command, args []string) error {
		if len(args) == 0 {
			return runRepl(cmd, replDefaults())
		}
		rt, err := newRuntime(cmd)
		if err != nil {
			return err
		}
		v, err := rt.EvalString(strings.Join(args, " "))
		if err != nil {
			printStack(cmd, err)
			return err
		}
		fmt.Fprintln(cmd.OutOrStdout(), v)
		return nil
	},
}

// Execute adds all child commands to the root command and sets flags
// appropriately.  This is called by main.main().  It only needs to happen
// once to the rootCmd.
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

// newRuntime returns a runtime configured by the persistent flags of the root
// command.  Program output is written to the command's output streams.
func newRuntime(cmd *cobra.Command) (*lisp.Runtime, error) {
	r, err := parser.NewReaderKind(rootReader)
	if err != nil {
		return nil, err
	}
	configs := []lisp.Config{
		lisp.WithReader(r),
		lisp.WithStdout(cmd.OutOrStdout()),
		lisp.WithStderr(cmd.ErrOrStderr()),
		lisp.WithMaxDepth(rootMaxDepth),
		lisp.WithSurplusArgs(rootSurplusArgs),
	}
	if rootVerbose {
		logger := log.New(cmd.ErrOrStderr(), "tinylisp: ", log.LstdFlags)
		configs = append(configs, lisp.WithLogger(logger))
	}
	return lisp.NewRuntime(configs...)
}

// printStack writes the call stack attached to err when the user asked for
// stack traces.
func printStack(cmd *cobra.Command, err error) {
	if !rootStack {
		return
	}
	var lerr *lisp.Error
	if errors.As(err, &lerr) && lerr.Stack != nil {
		lerr.Stack.DebugPrint(cmd.ErrOrStderr()) //nolint:errcheck
	}
}

func init() {
	rootCmd.PersistentFlags().IntVar(&rootMaxDepth, "max-depth", lisp.DefaultMaxDepth,
		"Maximum nesting depth of evaluation (0 disables the limit)")
	rootCmd.PersistentFlags().StringVar(&rootReader, "reader", parser.KindRD,
		fmt.Sprintf("Source reader implementation (%s or %s)", parser.KindRD, parser.KindParsec))
	rootCmd.PersistentFlags().BoolVarP(&rootVerbose, "verbose", "v", false,
		"Log runtime trace messages to stderr")
	rootCmd.PersistentFlags().BoolVar(&rootStack, "stack", false,
		"Print a stack trace when evaluation fails")
	rootCmd.PersistentFlags().BoolVar(&rootSurplusArgs, "ignore-surplus-args", false,
		"Let functions silently ignore arguments beyond their parameter list")
}
