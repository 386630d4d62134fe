package app

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/communitybig/kernelctl/internal/output"
	"github.com/communitybig/kernelctl/internal/runner"
)

var driversCmd = &cobra.Command{
	Use:   "drivers",
	Short: "List Mesa driver variants and show which one is active",
	RunE: func(cmd *cobra.Command, args []string) error {
		mgr := newDriverManager()
		fmt.Print(output.RenderDriverTable(mgr.Drivers(), mgr.Active()))
		return nil
	},
}

var applyCmd = &cobra.Command{
	Use:   "apply <driver-id>",
	Short: "Switch to a Mesa driver variant",
	Long: `Switch the Mesa driver variant. Installed packages conflicting with the
chosen variant are removed first; if that removal fails, the variant's
packages are not installed and the switch fails as a whole.`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		id := args[0]
		mgr := newDriverManager()
		d, ok := mgr.Find(id)
		if !ok {
			return fmt.Errorf("unknown driver variant: %s (see 'kernelctl drivers')", id)
		}

		desc := strings.Join(append([]string{privilegeCmd, "pacman", "-S", "--noconfirm"}, d.Packages...), " ")
		return runOperation("apply-driver", desc, func(sink runner.Sink) runner.Operation {
			return mgr.Apply(id, sink)
		})
	},
}
