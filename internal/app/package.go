package app

import (
	"strings"

	"github.com/spf13/cobra"

	"github.com/communitybig/kernelctl/internal/pacman"
	"github.com/communitybig/kernelctl/internal/runner"
)

var pkgCmd = &cobra.Command{
	Use:   "pkg",
	Short: "Install or remove a single package",
	Long: `Install or remove an arbitrary package through the same privileged
runner the kernel commands use. No headers pairing or conflict handling
is applied; for kernels use 'kernelctl install/remove', for Mesa driver
variants use 'kernelctl apply'.`,
}

var pkgInstallCmd = &cobra.Command{
	Use:   "install <package>",
	Short: "Install a package via 'pacman -S --noconfirm'",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		name := args[0]
		mgr := pacman.NewManager(pacman.New(), runner.New(), privilegeCmd)
		desc := strings.Join([]string{privilegeCmd, "pacman", "-S", "--noconfirm", name}, " ")
		return runOperation("install-package", desc, func(sink runner.Sink) runner.Operation {
			return mgr.Install(name, sink)
		})
	},
}

var pkgRemoveCmd = &cobra.Command{
	Use:   "remove <package>",
	Short: "Remove a package via 'pacman -R --noconfirm'",
	Long: `Remove a single package. Removing a package that is not installed
succeeds without doing anything.`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		name := args[0]
		mgr := pacman.NewManager(pacman.New(), runner.New(), privilegeCmd)
		desc := strings.Join([]string{privilegeCmd, "pacman", "-R", "--noconfirm", name}, " ")
		return runOperation("remove-package", desc, func(sink runner.Sink) runner.Operation {
			return mgr.Remove(name, sink)
		})
	},
}

func init() {
	pkgCmd.AddCommand(pkgInstallCmd)
	pkgCmd.AddCommand(pkgRemoveCmd)
}
