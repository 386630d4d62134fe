package app

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/communitybig/kernelctl/internal/output"
	"github.com/communitybig/kernelctl/internal/pacman"
)

var searchCmd = &cobra.Command{
	Use:   "search <pattern>",
	Short: "Search the repositories (pacman -Ss)",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		records, err := pacman.New().Search(args[0])
		if err != nil {
			return fmt.Errorf("search failed: %w", err)
		}
		fmt.Print(output.RenderPackageTable(records))
		return nil
	},
}
