package main

import (
	"fmt"
	"path/filepath"

	"github.com/jedib0t/go-pretty/v6/table"
	"github.com/jedib0t/go-pretty/v6/text"
	"github.com/spf13/cobra"

	"curator/internal/config"
	"curator/internal/queue"
)

func newQueueCommand(configFlag *string) *cobra.Command {
	queueCmd := &cobra.Command{
		Use:   "queue",
		Short: "Inspect and manage the processing queue",
	}
	queueCmd.AddCommand(newQueueListCommand(configFlag))
	queueCmd.AddCommand(newQueueClearCommand(configFlag))
	return queueCmd
}

func openStore(configFlag *string) (*queue.Store, error) {
	cfg, _, _, err := config.Load(*configFlag)
	if err != nil {
		return nil, err
	}
	if err := cfg.EnsureDirectories(); err != nil {
		return nil, err
	}
	return queue.Open(cfg)
}

func newQueueListCommand(configFlag *string) *cobra.Command {
	return &cobra.Command{
		Use:   "list",
		Short: "List queued files and their status",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			store, err := openStore(configFlag)
			if err != nil {
				return err
			}
			defer store.Close()

			items, err := store.List(cmd.Context())
			if err != nil {
				return err
			}
			out := cmd.OutOrStdout()
			if len(items) == 0 {
				fmt.Fprintln(out, "Queue is empty.")
				return nil
			}

			fmt.Fprintln(out, renderQueueTable(items))
			return nil
		},
	}
}

// renderQueueTable lays out queue items for the terminal. The detail column
// shows where a completed file landed, or why processing stopped.
func renderQueueTable(items []*queue.Item) string {
	tw := table.NewWriter()
	tw.SetStyle(table.StyleRounded)
	tw.AppendHeader(table.Row{"ID", "File", "Status", "Type", "Category", "Detail"})
	for _, item := range items {
		detail := item.FinalPath
		if detail == "" {
			detail = item.ErrorMessage
		}
		tw.AppendRow(table.Row{
			item.ID,
			filepath.Base(item.SourcePath),
			string(item.Status),
			item.TypeLabel,
			item.Category,
			detail,
		})
	}
	tw.SetColumnConfigs([]table.ColumnConfig{
		{Number: 1, Align: text.AlignRight, AlignHeader: text.AlignLeft},
	})
	return tw.Render()
}

func newQueueClearCommand(configFlag *string) *cobra.Command {
	var all bool

	cmd := &cobra.Command{
		Use:   "clear",
		Short: "Remove finished entries from the queue",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			store, err := openStore(configFlag)
			if err != nil {
				return err
			}
			defer store.Close()

			var removed int64
			if all {
				removed, err = store.Clear(cmd.Context())
			} else {
				removed, err = store.ClearCompleted(cmd.Context())
			}
			if err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Removed %d queue entries.\n", removed)
			return nil
		},
	}
	cmd.Flags().BoolVar(&all, "all", false, "Remove every entry, including unprocessed ones")
	return cmd
}
