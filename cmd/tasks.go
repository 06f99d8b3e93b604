package main

import (
	"fmt"
	"text/tabwriter"
	"time"

	"github.com/spf13/cobra"

	"github.com/autobrand/crm-cli/internal/model"
	"github.com/autobrand/crm-cli/internal/pipeline"
)

var tasksCmd = &cobra.Command{
	Use:   "tasks",
	Short: "Manage tasks",
}

var (
	taskStatusFilter string
	taskTypeFilter   string
)

var tasksListCmd = &cobra.Command{
	Use:   "list",
	Short: "List tasks, overdue first",
	RunE: func(cmd *cobra.Command, _ []string) error {
		return readWorkspace(cmd.Context(), func(ws *model.Workspace) error {
			now := time.Now()
			w := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 4, 2, ' ', 0)
			fmt.Fprintln(w, "ID\tTITLE\tTYPE\tSTATUS\tDUE")
			for _, t := range ws.Tasks {
				if taskStatusFilter != "" && string(t.Status) != taskStatusFilter {
					continue
				}
				if taskTypeFilter != "" && string(t.Type) != taskTypeFilter {
					continue
				}
				due := t.DueDate.Format("2006-01-02")
				if t.Status == model.TaskPending && t.DueDate.Before(now) {
					due = "OVERDUE " + due
				}
				fmt.Fprintf(w, "%s\t%s\t%s\t%s\t%s\n", t.ID, t.Title, t.Type, t.Status, due)
			}
			return w.Flush()
		})
	},
}

var taskInput model.TaskInput

var tasksAddCmd = &cobra.Command{
	Use:   "add",
	Short: "Add a task",
	RunE: func(cmd *cobra.Command, _ []string) error {
		return withWorkspace(cmd.Context(), func(ws *model.Workspace) error {
			task, err := pipeline.New(ws).AddTask(taskInput)
			if err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Added task %s due %s\n", task.Title, task.DueDate.Format("2006-01-02"))
			return nil
		})
	},
}

var taskID string

var tasksDoneCmd = &cobra.Command{
	Use:   "done",
	Short: "Toggle a task between pending and completed",
	RunE: func(cmd *cobra.Command, _ []string) error {
		return withWorkspace(cmd.Context(), func(ws *model.Workspace) error {
			task, err := pipeline.New(ws).ToggleTask(taskID)
			if err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Task %s is now %s\n", task.Title, task.Status)
			return nil
		})
	},
}

var tasksRmCmd = &cobra.Command{
	Use:   "rm",
	Short: "Delete a task",
	RunE: func(cmd *cobra.Command, _ []string) error {
		return withWorkspace(cmd.Context(), func(ws *model.Workspace) error {
			return pipeline.New(ws).DeleteTask(taskID)
		})
	},
}

func init() {
	tasksListCmd.Flags().StringVar(&taskStatusFilter, "status", "", "filter by status (pending|completed)")
	tasksListCmd.Flags().StringVar(&taskTypeFilter, "type", "", "filter by type")

	tasksAddCmd.Flags().StringVar(&taskInput.Title, "title", "", "task title (required)")
	tasksAddCmd.Flags().StringVar(&taskInput.Type, "type", "follow-up", "task type")
	tasksAddCmd.Flags().StringVar(&taskInput.DueDate, "due", "", "due date YYYY-MM-DD (required)")
	tasksAddCmd.Flags().StringVar(&taskInput.RelatedTo, "related", "", "related lead or client id")
	_ = tasksAddCmd.MarkFlagRequired("title")
	_ = tasksAddCmd.MarkFlagRequired("due")

	tasksDoneCmd.Flags().StringVar(&taskID, "id", "", "task id (required)")
	_ = tasksDoneCmd.MarkFlagRequired("id")
	tasksRmCmd.Flags().StringVar(&taskID, "id", "", "task id (required)")
	_ = tasksRmCmd.MarkFlagRequired("id")

	tasksCmd.AddCommand(tasksListCmd, tasksAddCmd, tasksDoneCmd, tasksRmCmd)
	rootCmd.AddCommand(tasksCmd)
}
