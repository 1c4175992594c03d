package main

import (
	"fmt"
	"os"

	"github.com/jkantola/smalltalk/cmd/cli/importer"
	"github.com/joho/godotenv"
	"github.com/spf13/cobra"
)

func init() {
	// The .env file is optional, deployments configure the environment directly.
	_ = godotenv.Load()
	rootCmd.AddGroup(importer.Group)
	rootCmd.AddCommand(importer.Personas)
	rootCmd.AddCommand(importer.Targets)
}

var rootCmd = &cobra.Command{
	Use:  "smalltalk-cli",
	Long: `Command line utilities for Smalltalk https://github.com/jkantola/smalltalk`,
}

func Execute() {
	if err := rootCmd.Execute(); err != nil {
		_, _ = fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func main() {
	Execute()
}
