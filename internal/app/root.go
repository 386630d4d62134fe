// Package app wires the kernelctl subcommands: kernel and driver
// listings, the mutating operations, and the recorded history.
package app

import (
	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"
)

var (
	privilegeCmd string
	dbPath       string
	verbose      bool
	showOutput   bool

	// RootCmd is the root command for kernelctl
	RootCmd = &cobra.Command{
		Use:   "kernelctl",
		Short: "Manage Linux kernels and Mesa driver variants via pacman",
		Long: `kernelctl installs, removes, and switches Linux kernels and Mesa
graphics-driver variants through pacman, with live progress inferred
from pacman's own output.

Mutating commands run pacman through a privilege helper (pkexec by
default) and record a full transcript of every operation for later
auditing with 'kernelctl history'.

Examples:
  # List installed kernels
  kernelctl list

  # Show kernels offered by the repositories
  kernelctl available

  # Install a kernel (headers are paired automatically)
  kernelctl install linux-lts

  # Switch the Mesa driver variant
  kernelctl drivers
  kernelctl apply tkg-git

  # Full system update
  kernelctl update

  # Review past operations
  kernelctl history`,
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRun: func(cmd *cobra.Command, args []string) {
			if verbose {
				logrus.SetLevel(logrus.DebugLevel)
			} else {
				logrus.SetLevel(logrus.WarnLevel)
			}
		},
	}
)

func init() {
	RootCmd.PersistentFlags().StringVar(&privilegeCmd, "privilege-cmd", "pkexec", "privilege elevation command prefixed to pacman mutations")
	RootCmd.PersistentFlags().StringVar(&dbPath, "db", "", "history database path (default: ~/.config/kernelctl/history.db)")
	RootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "enable debug logging")
	RootCmd.PersistentFlags().BoolVar(&showOutput, "show-output", true, "print the raw pacman transcript during operations")

	RootCmd.SuggestionsMinimumDistance = 2

	RootCmd.AddCommand(listCmd)
	RootCmd.AddCommand(availableCmd)
	RootCmd.AddCommand(installCmd)
	RootCmd.AddCommand(removeCmd)
	RootCmd.AddCommand(updateCmd)
	RootCmd.AddCommand(driversCmd)
	RootCmd.AddCommand(applyCmd)
	RootCmd.AddCommand(pkgCmd)
	RootCmd.AddCommand(searchCmd)
	RootCmd.AddCommand(historyCmd)
	RootCmd.AddCommand(settingsCmd)
}

// Execute runs the root command
func Execute() error {
	return RootCmd.Execute()
}
