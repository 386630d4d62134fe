package app

import (
	"fmt"
	"strconv"

	"github.com/spf13/cobra"

	"github.com/communitybig/kernelctl/internal/output"
	"github.com/communitybig/kernelctl/internal/store"
)

var historyLast int

var historyCmd = &cobra.Command{
	Use:   "history [operation-id]",
	Short: "Show recorded operations, or one operation's transcript",
	Long: `Without arguments, list recent package operations. With an operation id,
print that operation's full raw pacman transcript.`,
	Args: cobra.MaximumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		path, err := getDBPath()
		if err != nil {
			return err
		}
		db, err := store.New(path)
		if err != nil {
			return fmt.Errorf("failed to open history database: %w", err)
		}
		defer db.Close()
		if err := db.CreateSchema(); err != nil {
			return fmt.Errorf("failed to prepare history database: %w", err)
		}

		if len(args) == 1 {
			id, err := strconv.ParseInt(args[0], 10, 64)
			if err != nil {
				return fmt.Errorf("invalid operation id: %s", args[0])
			}
			lines, err := db.Transcript(id)
			if err != nil {
				return err
			}
			if len(lines) == 0 {
				fmt.Println("No transcript recorded for this operation.")
				return nil
			}
			for _, line := range lines {
				fmt.Println(line)
			}
			return nil
		}

		ops, err := db.ListOperations(historyLast)
		if err != nil {
			return err
		}
		fmt.Print(output.RenderHistoryTable(ops))
		return nil
	},
}

func init() {
	historyCmd.Flags().IntVar(&historyLast, "last", 20, "number of operations to list")
}
