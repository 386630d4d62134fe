package app

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/communitybig/kernelctl/internal/config"
)

var settingsCmd = &cobra.Command{
	Use:   "settings",
	Short: "Adjust kernelctl settings",
}

var settingsWarningCmd = &cobra.Command{
	Use:   "warning <on|off>",
	Short: "Toggle the pre-operation caution notice",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		var enabled bool
		switch args[0] {
		case "on":
			enabled = true
		case "off":
			enabled = false
		default:
			return fmt.Errorf("expected 'on' or 'off', got %q", args[0])
		}

		path, err := config.SettingsPath()
		if err != nil {
			return fmt.Errorf("failed to locate settings file: %w", err)
		}
		settings := config.LoadSettings(path)
		settings.Set("show_operation_warning", enabled)
		if err := settings.Save(); err != nil {
			return fmt.Errorf("failed to save settings: %w", err)
		}
		fmt.Printf("Operation warning turned %s.\n", args[0])
		return nil
	},
}

func init() {
	settingsCmd.AddCommand(settingsWarningCmd)
}
