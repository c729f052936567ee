package cli

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/a1mart/tasker/internal/core"
	"github.com/a1mart/tasker/pkg/models"
	"github.com/spf13/cobra"
)

var taskCmd = &cobra.Command{
	Use:   "task",
	Short: "Manage tasks on the remote service",
}

var (
	taskListStatuses  []string
	taskListAssignees []string
	taskListQuery     string
)

var taskListCmd = &cobra.Command{
	Use:   "list",
	Short: "List tasks, optionally filtered by status, assignee, or text",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		if err := App.Syncer.SyncAll(cmd.Context()); err != nil {
			return err
		}

		filter := core.TaskFilter{Query: taskListQuery, Assignees: taskListAssignees}
		for _, label := range taskListStatuses {
			status, err := models.ParseTaskStatus(strings.ToUpper(label))
			if err != nil {
				return err
			}
			filter.Statuses = append(filter.Statuses, status)
		}

		snap := App.Store.Snapshot()
		tasks := core.FilterTasks(snap.Tasks, filter)
		if len(tasks) == 0 {
			fmt.Println("No tasks found.")
			return nil
		}

		printTaskTable(tasks, snap.Users)
		if snap.Analytics != nil {
			a := snap.Analytics
			fmt.Printf("\n%d tasks total, %.1f%% complete (%d done, %d in progress, %d todo)\n",
				a.TotalTasks, a.CompletionRate, a.CompletedTasks, a.InProgressTasks, a.TodoTasks)
		}
		return nil
	},
}

var taskShowCmd = &cobra.Command{
	Use:   "show <id>",
	Short: "Show one task in full",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		resp, err := App.Client.GetTask(cmd.Context(), args[0])
		if err != nil {
			return err
		}
		if !resp.Found {
			return fmt.Errorf("no task with id %s", args[0])
		}

		t := resp.Task
		fmt.Printf("ID:          %s\n", t.ID)
		fmt.Printf("Title:       %s\n", t.Title)
		fmt.Printf("Status:      %s\n", t.Status)
		fmt.Printf("Priority:    %s\n", t.Priority)
		fmt.Printf("Assigned to: %s\n", assigneeLabel(t.AssignedTo))
		if len(t.Tags) > 0 {
			fmt.Printf("Tags:        %s\n", strings.Join(t.Tags, ", "))
		}
		if t.DueDate != nil {
			fmt.Printf("Due:         %s\n", t.DueDate.Format(time.RFC3339))
		}
		fmt.Printf("Created:     %s\n", t.CreatedAt.Format(time.RFC3339))
		fmt.Printf("Updated:     %s\n", t.UpdatedAt.Format(time.RFC3339))
		if t.Metrics != nil {
			fmt.Printf("Progress:    %.0f%%\n", t.Metrics.CompletionPercentage)
		}
		if t.Description != "" {
			fmt.Printf("\n%s\n", t.Description)
		}
		return nil
	},
}

var (
	taskCreateDescription string
	taskCreatePriority    string
	taskCreateAssignee    string
	taskCreateTags        []string
	taskCreateDue         string
)

var taskCreateCmd = &cobra.Command{
	Use:   "create <title>",
	Short: "Create a new task",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		priority, err := models.ParseTaskPriority(strings.ToUpper(taskCreatePriority))
		if err != nil {
			return err
		}

		in := core.CreateTaskInput{
			Title:       args[0],
			Description: taskCreateDescription,
			Priority:    priority,
			AssignedTo:  taskCreateAssignee,
			Tags:        taskCreateTags,
		}
		if taskCreateDue != "" {
			due, err := time.Parse("2006-01-02", taskCreateDue)
			if err != nil {
				return fmt.Errorf("parsing --due: %w", err)
			}
			in.DueDate = &due
		}

		if err := mutate(cmd.Context(), func(ctx context.Context) error {
			return App.Mutations.CreateTask(ctx, in)
		}); err != nil {
			return err
		}
		fmt.Println("Task created.")
		return nil
	},
}

var (
	taskUpdateTitle       string
	taskUpdateDescription string
	taskUpdateStatus      string
	taskUpdatePriority    string
	taskUpdateAssignee    string
	taskUpdateTags        []string
)

var taskUpdateCmd = &cobra.Command{
	Use:   "update <id>",
	Short: "Update fields of a task; only flags you pass are sent",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		var upd core.TaskUpdate
		if cmd.Flags().Changed("title") {
			upd.Title = &taskUpdateTitle
		}
		if cmd.Flags().Changed("description") {
			upd.Description = &taskUpdateDescription
		}
		if cmd.Flags().Changed("status") {
			status, err := models.ParseTaskStatus(strings.ToUpper(taskUpdateStatus))
			if err != nil {
				return err
			}
			upd.Status = &status
		}
		if cmd.Flags().Changed("priority") {
			priority, err := models.ParseTaskPriority(strings.ToUpper(taskUpdatePriority))
			if err != nil {
				return err
			}
			upd.Priority = &priority
		}
		if cmd.Flags().Changed("assignee") {
			upd.AssignedTo = &taskUpdateAssignee
		}
		if cmd.Flags().Changed("tags") {
			upd.Tags = taskUpdateTags
		}

		if err := mutate(cmd.Context(), func(ctx context.Context) error {
			return App.Mutations.UpdateTask(ctx, args[0], upd)
		}); err != nil {
			return err
		}
		fmt.Println("Task updated.")
		return nil
	},
}

var taskDoneCmd = &cobra.Command{
	Use:   "done <id>",
	Short: "Mark a task as done",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		done := models.TaskStatusDone
		if err := mutate(cmd.Context(), func(ctx context.Context) error {
			return App.Mutations.UpdateTask(ctx, args[0], core.TaskUpdate{Status: &done})
		}); err != nil {
			return err
		}
		fmt.Println("Task marked as done.")
		return nil
	},
}

var taskDeleteYes bool

var taskDeleteCmd = &cobra.Command{
	Use:   "delete <id>",
	Short: "Delete a task",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		if !taskDeleteYes && !confirm(fmt.Sprintf("Delete task %s?", args[0])) {
			fmt.Println("Aborted.")
			return nil
		}
		if err := mutate(cmd.Context(), func(ctx context.Context) error {
			return App.Mutations.DeleteTask(ctx, args[0])
		}); err != nil {
			return err
		}
		fmt.Println("Task deleted.")
		return nil
	},
}

// mutate runs one write after probing connectivity, so a dead service is
// reported as a connection problem before any mutation is attempted.
func mutate(ctx context.Context, op func(context.Context) error) error {
	if App.Monitor.Check(ctx) != core.StateConnected {
		return fmt.Errorf("%s", App.Store.Snapshot().ConnectionErr)
	}
	return op(ctx)
}

// confirm asks the user a yes/no question on stdin.
func confirm(prompt string) bool {
	fmt.Printf("%s [y/N] ", prompt)
	var answer string
	fmt.Scanln(&answer)
	answer = strings.ToLower(strings.TrimSpace(answer))
	return answer == "y" || answer == "yes"
}

func assigneeLabel(username string) string {
	if username == "" {
		return "(unassigned)"
	}
	return username
}

func printTaskTable(tasks []models.Task, users []models.User) {
	fmt.Printf("%-36s %-12s %-9s %-16s %s\n", "ID", "STATUS", "PRIORITY", "ASSIGNEE", "TITLE")
	for _, t := range tasks {
		assignee := assigneeLabel(t.AssignedTo)
		if u := core.ResolveAssignee(users, t.AssignedTo); u != nil {
			assignee = u.FullName
		}
		fmt.Printf("%-36s %-12s %-9s %-16s %s\n", t.ID, t.Status, t.Priority, assignee, t.Title)
	}
}

func init() {
	taskListCmd.Flags().StringSliceVar(&taskListStatuses, "status", nil, "filter by status (repeatable, e.g. TODO)")
	taskListCmd.Flags().StringSliceVar(&taskListAssignees, "assignee", nil, "filter by assignee username ('unassigned' matches tasks without one)")
	taskListCmd.Flags().StringVar(&taskListQuery, "query", "", "filter by free text over title and description")

	taskCreateCmd.Flags().StringVarP(&taskCreateDescription, "description", "d", "", "task description")
	taskCreateCmd.Flags().StringVarP(&taskCreatePriority, "priority", "p", "MEDIUM", "task priority (LOW, MEDIUM, HIGH, CRITICAL)")
	taskCreateCmd.Flags().StringVarP(&taskCreateAssignee, "assignee", "a", "", "assignee username")
	taskCreateCmd.Flags().StringSliceVarP(&taskCreateTags, "tag", "t", nil, "tag (repeatable)")
	taskCreateCmd.Flags().StringVar(&taskCreateDue, "due", "", "due date (YYYY-MM-DD)")

	taskUpdateCmd.Flags().StringVar(&taskUpdateTitle, "title", "", "new title")
	taskUpdateCmd.Flags().StringVar(&taskUpdateDescription, "description", "", "new description")
	taskUpdateCmd.Flags().StringVar(&taskUpdateStatus, "status", "", "new status")
	taskUpdateCmd.Flags().StringVar(&taskUpdatePriority, "priority", "", "new priority")
	taskUpdateCmd.Flags().StringVar(&taskUpdateAssignee, "assignee", "", "new assignee username (empty unassigns)")
	taskUpdateCmd.Flags().StringSliceVar(&taskUpdateTags, "tags", nil, "replacement tag list")

	taskDeleteCmd.Flags().BoolVarP(&taskDeleteYes, "yes", "y", false, "skip the confirmation prompt")

	taskCmd.AddCommand(taskListCmd, taskShowCmd, taskCreateCmd, taskUpdateCmd, taskDoneCmd, taskDeleteCmd)
	rootCmd.AddCommand(taskCmd)
}
