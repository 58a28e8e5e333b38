package printer

import (
	"fmt"
	"io"
	"text/tabwriter"

	"github.com/charmbracelet/lipgloss"

	"github.com/slok/tasktracker/internal/model"
)

// TablePrinter prints tasks in a table format.
type TablePrinter struct {
	writer   io.Writer
	renderer *lipgloss.Renderer
	noColor  bool
}

// NewTablePrinter creates a new table printer. Statuses are colored when
// the writer is a terminal, unless noColor is set.
func NewTablePrinter(w io.Writer, noColor bool) *TablePrinter {
	return &TablePrinter{
		writer:   w,
		renderer: lipgloss.NewRenderer(w),
		noColor:  noColor,
	}
}

// PrintTasks prints tasks in a table format.
func (t *TablePrinter) PrintTasks(tasks []model.Task) error {
	if len(tasks) == 0 {
		return nil
	}

	tw := tabwriter.NewWriter(t.writer, 0, 0, 2, ' ', 0)
	defer tw.Flush()

	// Print header.
	fmt.Fprintln(tw, "ID\tTITLE\tDESCRIPTION\tSTATUS")

	// Print rows. Status goes last so color codes don't break alignment.
	for _, task := range tasks {
		fmt.Fprintf(tw, "%d\t%s\t%s\t%s\n", task.ID, task.Title, task.Description, t.status(task.Status))
	}

	return nil
}

func (t *TablePrinter) status(s model.TaskStatus) string {
	if t.noColor {
		return string(s)
	}

	var color lipgloss.Color
	switch s {
	case model.TaskStatusDone:
		color = lipgloss.Color("2")
	case model.TaskStatusInProgress:
		color = lipgloss.Color("3")
	default:
		color = lipgloss.Color("8")
	}

	return t.renderer.NewStyle().Foreground(color).Render(string(s))
}

// PrintMessage prints a simple text message.
func (t *TablePrinter) PrintMessage(msg string) error {
	fmt.Fprintln(t.writer, msg)
	return nil
}
