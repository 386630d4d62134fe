package app

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/communitybig/kernelctl/internal/output"
)

var listCmd = &cobra.Command{
	Use:   "list",
	Short: "List installed kernels",
	RunE: func(cmd *cobra.Command, args []string) error {
		mgr := newKernelManager()
		kernels, err := mgr.Installed()
		if err != nil {
			return fmt.Errorf("failed to list installed kernels: %w", err)
		}
		fmt.Print(output.RenderKernelTable(kernels))
		return nil
	},
}

var availableCmd = &cobra.Command{
	Use:   "available",
	Short: "List kernels offered by the repositories",
	RunE: func(cmd *cobra.Command, args []string) error {
		mgr := newKernelManager()
		kernels, err := mgr.Available()
		if err != nil {
			return fmt.Errorf("failed to list available kernels: %w", err)
		}
		fmt.Print(output.RenderKernelTable(kernels))
		return nil
	},
}
