package printer

import (
	"fmt"
	"io"

	"github.com/slok/tasktracker/internal/model"
)

// TextPrinter prints one task per line.
type TextPrinter struct {
	writer io.Writer
}

// NewTextPrinter creates a new text printer.
func NewTextPrinter(w io.Writer) *TextPrinter {
	return &TextPrinter{writer: w}
}

// PrintTasks prints each task as `ID: <id>, Title: <title>, Description: <description>, Status: <status>`.
func (t *TextPrinter) PrintTasks(tasks []model.Task) error {
	for _, task := range tasks {
		_, err := fmt.Fprintf(t.writer, "ID: %d, Title: %s, Description: %s, Status: %s\n", task.ID, task.Title, task.Description, task.Status)
		if err != nil {
			return err
		}
	}
	return nil
}

// PrintMessage prints a simple text message.
func (t *TextPrinter) PrintMessage(msg string) error {
	_, err := fmt.Fprintln(t.writer, msg)
	return err
}
