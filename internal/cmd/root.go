package cmd

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
)

var rootCmd = &cobra.Command{
	Use:   "repocreator",
	Short: "A CLI tool to create and configure GitHub organization repositories",
	Long: `Repocreator automates the setup of new GitHub organization repositories.
It creates the repository, assigns teams or code owners, creates labels,
optionally registers a Cloud Build webhook, protects the default branch,
and seeds starter files - either interactively, from a YAML file, or
through a minimal web form.`,
}

func Execute() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Println(err)
		os.Exit(1)
	}
}

func init() {
	rootCmd.AddCommand(createCmd)
	rootCmd.AddCommand(serveCmd)
	rootCmd.AddCommand(initCmd)
}
