package cli

import (
	"fmt"
	"io"
	"strings"

	"github.com/fatih/color"

	"todoapp/backend/internal/models"
)

var (
	doneMark    = color.New(color.FgGreen).SprintFunc()
	pendingMark = color.New(color.FgYellow).SprintFunc()
	dim         = color.New(color.Faint).SprintFunc()
	bold        = color.New(color.Bold).SprintFunc()
	errorText   = color.New(color.FgRed, color.Bold).SprintFunc()
)

const timeLayout = "2006-01-02 15:04"

func checkbox(done bool) string {
	if done {
		return doneMark("[x]")
	}
	return pendingMark("[ ]")
}

func printTaskLine(w io.Writer, t models.Task) {
	fmt.Fprintf(w, "%s %s %s\n", checkbox(t.IsCompleted), dim(fmt.Sprintf("#%-4d", t.ID)), t.Title)
}

func printTaskList(w io.Writer, tasks []models.Task) {
	if len(tasks) == 0 {
		fmt.Fprintln(w, dim("No tasks."))
		return
	}
	for _, t := range tasks {
		printTaskLine(w, t)
	}
}

func printTaskDetail(w io.Writer, t models.Task) {
	fmt.Fprintf(w, "%s %s\n", checkbox(t.IsCompleted), bold(t.Title))
	fmt.Fprintf(w, "  id:      %d\n", t.ID)
	if t.Description != nil && strings.TrimSpace(*t.Description) != "" {
		fmt.Fprintf(w, "  note:    %s\n", *t.Description)
	}
	fmt.Fprintf(w, "  created: %s\n", t.CreatedAt.Local().Format(timeLayout))
	fmt.Fprintf(w, "  updated: %s\n", t.UpdatedAt.Local().Format(timeLayout))
}

func printStatistics(w io.Writer, s models.TaskStatistics) {
	fmt.Fprintf(w, "total:     %d\n", s.TotalTasks)
	fmt.Fprintf(w, "completed: %s\n", doneMark(s.CompletedTasks))
	fmt.Fprintf(w, "pending:   %s\n", pendingMark(s.PendingTasks))
}

// PrintError はエラーを赤で出力します。
func PrintError(w io.Writer, err error) {
	fmt.Fprintf(w, "%s %v\n", errorText("error:"), err)
}
