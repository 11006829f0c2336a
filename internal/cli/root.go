// Package cli wires the ghkey commands together.
package cli

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
)

// cfgFile holds the --config flag value.
var cfgFile string

var rootCmd = &cobra.Command{
	Use:   "ghkey",
	Short: "Set up SSH authentication to GitHub on this Mac",
	Long: `ghkey performs the one-time setup for SSH access to GitHub:

  - verifies the Xcode Command Line Tools are installed
  - generates a per-device Ed25519 key named after this machine
  - loads the key into the macOS keychain via ssh-add
  - adds a Host stanza to ~/.ssh/config
  - prints the public key for you to register on GitHub

Running ghkey with no arguments starts the interactive setup wizard.`,
	SilenceUsage:  true,
	SilenceErrors: true,
	RunE: func(cmd *cobra.Command, args []string) error {
		return runSetup()
	},
}

func init() {
	rootCmd.PersistentFlags().StringVar(&cfgFile, "config", "",
		"config file (default ~/.config/ghkey/config.yaml)")
}

// Execute runs the root command. Any error exits with status 1; the
// structured error text carries the what/why/how-to-fix sections.
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
