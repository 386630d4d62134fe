package app

import (
	"strings"

	"github.com/spf13/cobra"

	"github.com/communitybig/kernelctl/internal/runner"
)

var updateCmd = &cobra.Command{
	Use:   "update",
	Short: "Update the whole system (pacman -Syu)",
	RunE: func(cmd *cobra.Command, args []string) error {
		mgr := newKernelManager()
		desc := strings.Join([]string{privilegeCmd, "pacman", "-Syu", "--noconfirm"}, " ")
		return runOperation("update-system", desc, func(sink runner.Sink) runner.Operation {
			return mgr.UpdateSystem(sink)
		})
	},
}
