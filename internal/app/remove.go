package app

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/communitybig/kernelctl/internal/kernel"
	"github.com/communitybig/kernelctl/internal/runner"
)

var removeCmd = &cobra.Command{
	Use:   "remove <kernel>",
	Short: "Remove a kernel and its headers",
	Long: `Remove a kernel package and its headers package via
'pacman -R --noconfirm'. Packages that are not installed are skipped;
removing a kernel that is entirely absent succeeds without doing
anything.`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		name := args[0]
		if !kernel.DefaultRules().IsKernel(name) {
			return fmt.Errorf("unknown kernel package: %s", name)
		}

		mgr := newKernelManager()
		desc := strings.Join([]string{privilegeCmd, "pacman", "-R", "--noconfirm", name}, " ")
		return runOperation("remove-kernel", desc, func(sink runner.Sink) runner.Operation {
			return mgr.Remove(name, sink)
		})
	},
}
