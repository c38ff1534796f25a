package cmd

import (
	"github.com/luthersystems/tinylisp/repl"
	"github.com/spf13/cobra"
)

var (
	replPrompt      string
	replHistoryFile string
)

// replCmd represents the repl command
var replCmd = &cobra.Command{
	Use:   "repl",
	Short: "Start an interactive session",
	Long: `Start an interactive session.  Expressions are read from the terminal,
evaluated and their values printed.  Enter exit or quit, or close the input
stream, to end the session.`,
	Args: cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		config := replDefaults()
		config.Prompt = replPrompt
		config.HistoryFile = replHistoryFile
		return runRepl(cmd, config)
	},
}

func replDefaults() repl.Config {
	return repl.Config{Prompt: repl.DefaultPrompt}
}

func runRepl(cmd *cobra.Command, config repl.Config) error {
	rt, err := newRuntime(cmd)
	if err != nil {
		return err
	}
	config.PrintStack = rootStack
	return repl.RunRepl(rt, config)
}

func init() {
	rootCmd.AddCommand(replCmd)

	replCmd.Flags().StringVar(&replPrompt, "prompt", repl.DefaultPrompt,
		"Prompt shown when no expression is pending")
	replCmd.Flags().StringVar(&replHistoryFile, "history", "",
		"File used to persist input history")
}
