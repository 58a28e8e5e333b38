package commands

import (
	"context"
	"io"

	"github.com/alecthomas/kingpin/v2"
	"k8s.io/client-go/util/homedir"

	"github.com/slok/tasktracker/internal/log"
	"github.com/slok/tasktracker/internal/model"
)

const (
	// LoggerTypeDefault is the logger default type.
	LoggerTypeDefault = "default"
	// LoggerTypeJSON is the logger json type.
	LoggerTypeJSON = "json"
)

// Command represents an application command, all commands that want to be executed
// should implement and setup on main.
type Command interface {
	Name() string
	Run(ctx context.Context) error
}

// RootCommand represents the root command configuration and global configuration
// for all the commands.
type RootCommand struct {
	// Global flags.
	Debug      bool
	NoLog      bool
	NoColor    bool
	LoggerType string
	ConfigPath string
	Storage    string
	TasksFile  string
	DBPath     string
	Recover    bool
	RecoverSet bool

	// HomeDir is used to resolve the default paths.
	HomeDir string

	// Global instances.
	Stdin  io.Reader
	Stdout io.Writer
	Stderr io.Writer
	Logger log.Logger
}

// NewRootCommand initializes the main root configuration.
func NewRootCommand(app *kingpin.Application) *RootCommand {
	c := &RootCommand{HomeDir: homedir.HomeDir()}

	app.Flag("debug", "Enable debug mode.").BoolVar(&c.Debug)
	app.Flag("no-log", "Disable logger.").BoolVar(&c.NoLog)
	app.Flag("no-color", "Disable logger and output color.").BoolVar(&c.NoColor)
	app.Flag("logger", "Selects the logger type.").Default(LoggerTypeDefault).EnumVar(&c.LoggerType, LoggerTypeDefault, LoggerTypeJSON)

	// Storage flags have no kingpin defaults so the config file can fill them.
	app.Flag("config", "Path to the tracker configuration file (YAML or TOML).").Envar("TASKTRACKER_CONFIG").StringVar(&c.ConfigPath)
	app.Flag("storage", "Storage backend (json, sqlite, memory).").Envar("TASKTRACKER_STORAGE").EnumVar(&c.Storage,
		string(model.StorageTypeJSON), string(model.StorageTypeSQLite), string(model.StorageTypeMemory))
	app.Flag("file", "Path to the JSON task file.").Envar("TASKTRACKER_FILE").StringVar(&c.TasksFile)
	app.Flag("db-path", "Path to the SQLite database file.").Envar("TASKTRACKER_DB_PATH").StringVar(&c.DBPath)
	app.Flag("recover", "Set a corrupt task file aside and start with no tasks instead of failing.").IsSetByUser(&c.RecoverSet).BoolVar(&c.Recover)

	return c
}
