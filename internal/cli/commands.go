package cli

import (
	"os"

	"github.com/spf13/cobra"

	"github.com/stokesdev/ghkey/internal/config"
	"github.com/stokesdev/ghkey/internal/errors"
)

var (
	doctorJSON      bool
	configInitForce bool
)

// setupCmd is an explicit alias for the default wizard.
var setupCmd = &cobra.Command{
	Use:   "setup",
	Short: "Run the interactive setup wizard",
	Long: `Run the interactive setup wizard.

This is the same as running ghkey with no arguments: it checks the
toolchain, generates the per-device key, registers it with the keychain,
and updates ~/.ssh/config.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		return runSetup()
	},
}

// showCmd prints the public key and follow-up instructions again.
var showCmd = &cobra.Command{
	Use:   "show",
	Short: "Print this machine's public key and registration steps",
	Long: `Print the public key generated for this machine, its fingerprint,
and the manual steps to register it with GitHub.

Useful when you closed the terminal before copying the key.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		return runShow()
	},
}

// doctorCmd diagnoses the local SSH setup.
var doctorCmd = &cobra.Command{
	Use:   "doctor",
	Short: "Diagnose the local SSH setup",
	Long: `Run read-only diagnostic checks:

  - operating system support
  - Xcode Command Line Tools and ssh-keygen
  - ~/.ssh permissions and the per-device key pair
  - the Host stanza in ~/.ssh/config
  - whether the key is loaded in the SSH agent

Examples:
  ghkey doctor
  ghkey doctor --json`,
	RunE: func(cmd *cobra.Command, args []string) error {
		return runDoctor()
	},
}

// configCmd groups configuration helpers.
var configCmd = &cobra.Command{
	Use:   "config",
	Short: "Manage the ghkey configuration file",
}

// configInitCmd writes the default config file.
var configInitCmd = &cobra.Command{
	Use:   "init",
	Short: "Write the default configuration file",
	Long: `Write the default configuration to ~/.config/ghkey/config.yaml
(or the path given with --config) so it can be edited.

Examples:
  ghkey config init
  ghkey config init --force`,
	RunE: func(cmd *cobra.Command, args []string) error {
		path := cfgFile
		if path == "" {
			path = config.DefaultPath()
		}
		if err := config.WriteDefault(path, configInitForce); err != nil {
			return err
		}
		cmd.Printf("Wrote %s\n", path)
		return nil
	},
}

// completionCmd generates shell completion scripts.
var completionCmd = &cobra.Command{
	Use:   "completion [bash|zsh|fish|powershell]",
	Short: "Generate shell completion script",
	Long: `Generate shell completion scripts for ghkey.

Examples:
  # Zsh
  ghkey completion zsh > "${fpath[1]}/_ghkey"

  # Bash
  ghkey completion bash > /etc/bash_completion.d/ghkey`,
	ValidArgs: []string{"bash", "zsh", "fish", "powershell"},
	Args:      cobra.MatchAll(cobra.ExactArgs(1), cobra.OnlyValidArgs),
	RunE: func(cmd *cobra.Command, args []string) error {
		switch args[0] {
		case "bash":
			return rootCmd.GenBashCompletion(os.Stdout)
		case "zsh":
			return rootCmd.GenZshCompletion(os.Stdout)
		case "fish":
			return rootCmd.GenFishCompletion(os.Stdout, true)
		case "powershell":
			return rootCmd.GenPowerShellCompletion(os.Stdout)
		default:
			return errors.New(errors.ErrExec,
				"Unknown shell: "+args[0],
				"Supported shells: bash, zsh, fish, powershell")
		}
	},
}

func init() {
	doctorCmd.Flags().BoolVar(&doctorJSON, "json", false, "output in JSON format")
	configInitCmd.Flags().BoolVarP(&configInitForce, "force", "f", false, "overwrite existing config")

	configCmd.AddCommand(configInitCmd)

	rootCmd.AddCommand(setupCmd)
	rootCmd.AddCommand(showCmd)
	rootCmd.AddCommand(doctorCmd)
	rootCmd.AddCommand(configCmd)
	rootCmd.AddCommand(completionCmd)
}
