package commands

import (
	"context"
	"fmt"

	"github.com/alecthomas/kingpin/v2"

	"github.com/slok/tasktracker/internal/app/update"
	"github.com/slok/tasktracker/internal/model"
	"github.com/slok/tasktracker/internal/printer"
)

type UpdateCommand struct {
	Cmd     *kingpin.CmdClause
	rootCmd *RootCommand

	id             int
	title          string
	titleSet       bool
	description    string
	descriptionSet bool
	status         string
}

// NewUpdateCommand returns the update command.
func NewUpdateCommand(rootCmd *RootCommand, app *kingpin.Application) *UpdateCommand {
	c := &UpdateCommand{rootCmd: rootCmd}

	c.Cmd = app.Command("update", "Update an existing task.")
	c.Cmd.Arg("id", "Task ID.").Required().IntVar(&c.id)
	c.Cmd.Flag("title", "New task title.").IsSetByUser(&c.titleSet).StringVar(&c.title)
	c.Cmd.Flag("description", "New task description.").IsSetByUser(&c.descriptionSet).StringVar(&c.description)
	c.Cmd.Flag("status", "New task status (not done, in progress, done).").EnumVar(&c.status, statusValues()...)

	return c
}

func (c UpdateCommand) Name() string { return c.Cmd.FullCommand() }

func (c UpdateCommand) Run(ctx context.Context) error {
	logger := c.rootCmd.Logger

	req := update.Request{ID: c.id}
	if c.titleSet {
		req.Title = &c.title
	}
	if c.descriptionSet {
		req.Description = &c.description
	}
	if c.status != "" {
		status, err := model.ParseTaskStatus(c.status)
		if err != nil {
			return fmt.Errorf("invalid status: %w", err)
		}
		req.Status = &status
	}

	repo, closeRepo, err := newRepository(ctx, c.rootCmd)
	if err != nil {
		return fmt.Errorf("could not create repository: %w", err)
	}
	defer closeRepo()

	svc, err := update.NewService(update.ServiceConfig{
		Repository: repo,
		Logger:     logger,
	})
	if err != nil {
		return fmt.Errorf("could not create service: %w", err)
	}

	res, err := svc.Run(ctx, req)
	if err != nil {
		return fmt.Errorf("could not update task: %w", err)
	}

	msg := fmt.Sprintf("Task %d updated.", c.id)
	if !res.Found {
		msg = fmt.Sprintf("Task %d not found.", c.id)
	}

	p := printer.NewTextPrinter(c.rootCmd.Stdout)
	if err := p.PrintMessage(msg); err != nil {
		return fmt.Errorf("could not print message: %w", err)
	}

	return nil
}

func statusValues() []string {
	statuses := model.TaskStatuses()
	values := make([]string, 0, len(statuses))
	for _, s := range statuses {
		values = append(values, string(s))
	}
	return values
}
