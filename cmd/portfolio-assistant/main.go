package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
)

var version = "dev"

var noColor bool

var rootCmd = &cobra.Command{
	Use:   "portfolio-assistant",
	Short: "AI chat assistant backend for a personal portfolio site",
	Long: `portfolio-assistant answers visitor questions about the site owner's
background, skills, and projects, grounded in an editable knowledge base.

Run 'portfolio-assistant start' to serve the chat API, or 'portfolio-assistant
chat "your question"' to ask a running server from the terminal.`,
	Version:       version,
	SilenceUsage:  true,
	SilenceErrors: true,
}

func init() {
	rootCmd.PersistentFlags().BoolVar(&noColor, "no-color", false, "disable colored output")
	rootCmd.AddCommand(startCmd)
	rootCmd.AddCommand(stopCmd)
	rootCmd.AddCommand(statusCmd)
	rootCmd.AddCommand(chatCmd)
	rootCmd.AddCommand(seedCmd)
	rootCmd.AddCommand(ingestCmd)
	rootCmd.AddCommand(contextCmd)
	rootCmd.AddCommand(interactionsCmd)
	rootCmd.AddCommand(configCmd)
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "error: %v\n", err)
		os.Exit(1)
	}
}
