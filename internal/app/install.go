package app

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/communitybig/kernelctl/internal/kernel"
	"github.com/communitybig/kernelctl/internal/runner"
)

var installCmd = &cobra.Command{
	Use:   "install <kernel>",
	Short: "Install a kernel and its headers",
	Long: `Install a kernel package together with its headers package via
'pacman -S --noconfirm'. The kernel name must match a known kernel
package pattern (linux61, linux-lts, linux-xanmod, ...).`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		name := args[0]
		if !kernel.DefaultRules().IsKernel(name) {
			return fmt.Errorf("unknown kernel package: %s", name)
		}

		mgr := newKernelManager()
		desc := strings.Join([]string{privilegeCmd, "pacman", "-S", "--noconfirm", name, name + "-headers"}, " ")
		return runOperation("install-kernel", desc, func(sink runner.Sink) runner.Operation {
			return mgr.Install(name, sink)
		})
	},
}
