package cmd

import (
	"fmt"
	"io"
	"time"

	"github.com/spf13/cobra"
	"github.com/svetlyi/gdrivepath/contracts"
	"github.com/svetlyi/gdrivepath/journal"
)

var (
	historyLimit int
	historyPath  string
)

var cmdHistory = &cobra.Command{
	Use:   "history",
	Short: "Show what was uploaded, downloaded and created",
	Long: `Show the newest journal events. With --path, show every event of one
remote path, oldest first.`,
	Args: cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		events, err := historyEvents(history, historyPath, historyLimit)
		if err != nil {
			return err
		}
		printEvents(cmd.OutOrStdout(), events)
		return nil
	},
}

func historyEvents(j journal.Journal, remotePath string, limit int) ([]contracts.Event, error) {
	if remotePath != "" {
		return j.ByRemotePath(remotePath)
	}
	return j.Last(limit)
}

func printEvents(w io.Writer, events []contracts.Event) {
	for _, e := range events {
		fmt.Fprintf(
			w,
			"%s\t%s\t%s\t%s\n",
			e.Time.Local().Format(time.DateTime),
			e.Action,
			e.RemotePath,
			e.LocalPath,
		)
	}
}

func init() {
	cmdHistory.Flags().IntVarP(&historyLimit, "limit", "n", 20, "How many events to show")
	cmdHistory.Flags().StringVarP(&historyPath, "path", "p", "", "Show all events of this remote path")
	rootCmd.AddCommand(cmdHistory)
}
