package commands

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/spf13/cobra"

	"github.com/focustache/focustache/internal/db"
	"github.com/focustache/focustache/internal/parser"
)

var taskCmd = &cobra.Command{
	Use:   "task",
	Short: "Manage tasks",
}

var taskAddCmd = &cobra.Command{
	Use:   "add [task line]",
	Short: "Add a task using natural syntax",
	Long: `Add a task. Metadata can be embedded in the task line:

  focustache task add "Read chapter 4 INFO-2010 #reading +high due:3 days"`,
	Args: cobra.MinimumNArgs(1),
	Run: withDB(func(cmd *cobra.Command, args []string) {
		parsed := parser.ParseTaskLine(strings.Join(args, " "))
		for _, e := range parsed.Errors {
			fmt.Printf("⚠️  %s\n", e)
		}
		if parsed.Title == "" {
			fmt.Println("❌ Task title is required")
			return
		}

		user, err := db.GetOrCreateLocalUser(db.DB)
		if err != nil {
			fmt.Printf("Error: %v\n", err)
			return
		}

		task, err := db.CreateTask(db.DB, db.CreateTaskRequest{
			UserID:   user.ID,
			Title:    parsed.Title,
			Course:   parsed.Course,
			Tags:     parsed.Tags,
			Priority: parsed.Priority,
			DueDate:  parsed.DueDate,
		})
		if err != nil {
			fmt.Printf("Error: %v\n", err)
			return
		}

		fmt.Printf("✅ New task \"%s\" added - ID: %d\n", task.Title, task.ID)
		if task.Due != nil {
			fmt.Printf("   %s\n", parser.FormatDueDate(task.Due))
		}
	}),
}

var taskListCmd = &cobra.Command{
	Use:   "list",
	Short: "List tasks",
	Run: withDB(func(cmd *cobra.Command, args []string) {
		user, err := db.GetOrCreateLocalUser(db.DB)
		if err != nil {
			fmt.Printf("Error: %v\n", err)
			return
		}

		tasks, err := db.GetTasks(db.DB, user.ID)
		if err != nil {
			fmt.Printf("Error: %v\n", err)
			return
		}
		if len(tasks) == 0 {
			fmt.Println("No tasks yet. Add one with 'focustache task add'.")
			return
		}

		for _, task := range tasks {
			icon := "○"
			switch task.Status {
			case "in-progress":
				icon = "◐"
			case "done":
				icon = "✅"
			case "archived":
				icon = "▪"
			}
			line := fmt.Sprintf("%s #%d %s", icon, task.ID, task.Title)
			if task.Course != "" {
				line += fmt.Sprintf(" [%s]", task.Course)
			}
			if task.TimeSpentSeconds > 0 {
				line += fmt.Sprintf(" (%s focused)", formatSeconds(task.TimeSpentSeconds))
			}
			if task.Due != nil {
				line += "  " + parser.FormatDueDate(task.Due)
			}
			fmt.Println(line)
		}
	}),
}

var taskDoneCmd = &cobra.Command{
	Use:   "done [task-id]",
	Short: "Mark a task as completed",
	Args:  cobra.ExactArgs(1),
	Run: withDB(func(cmd *cobra.Command, args []string) {
		taskID, err := strconv.ParseUint(args[0], 10, 32)
		if err != nil {
			fmt.Printf("Error: invalid task ID '%s'\n", args[0])
			return
		}

		user, err := db.GetOrCreateLocalUser(db.DB)
		if err != nil {
			fmt.Printf("Error: %v\n", err)
			return
		}

		task, err := db.MarkTaskDone(db.DB, uint(taskID), user.ID)
		if err != nil {
			fmt.Printf("Error: %v\n", err)
			return
		}
		fmt.Printf("✅ Task #%d \"%s\" completed\n", task.ID, task.Title)
	}),
}

// formatSeconds formats a second count in a human-readable way
func formatSeconds(seconds int) string {
	if seconds >= 3600 {
		return fmt.Sprintf("%.1fh", float64(seconds)/3600)
	} else if seconds >= 60 {
		return fmt.Sprintf("%dm", seconds/60)
	}
	return fmt.Sprintf("%ds", seconds)
}

func init() {
	taskCmd.AddCommand(taskAddCmd)
	taskCmd.AddCommand(taskListCmd)
	taskCmd.AddCommand(taskDoneCmd)
}
