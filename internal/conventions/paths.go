package conventions

import (
	"fmt"
	"path/filepath"
)

const (
	// DefaultDataDir is the default tracker data directory name (relative to home).
	DefaultDataDir = ".tasktracker"
	// TasksFile is the filename of the JSON task document.
	TasksFile = "tasks.json"
	// DBFile is the filename of the SQLite database.
	DBFile = "tasks.db"
	// ConfigFile is the filename of the optional tracker configuration.
	ConfigFile = "config.yaml"

	// CorruptSuffix is appended (followed by a unique ID) to a corrupt task file set aside.
	CorruptSuffix = ".corrupt-"
)

// DataDir returns the tracker data directory inside a home directory.
func DataDir(homeDir string) string {
	return filepath.Join(homeDir, DefaultDataDir)
}

// TasksFilePath returns the default task document path.
func TasksFilePath(homeDir string) string {
	return filepath.Join(DataDir(homeDir), TasksFile)
}

// DBFilePath returns the default SQLite database path.
func DBFilePath(homeDir string) string {
	return filepath.Join(DataDir(homeDir), DBFile)
}

// ConfigFilePath returns the default configuration file path.
func ConfigFilePath(homeDir string) string {
	return filepath.Join(DataDir(homeDir), ConfigFile)
}

// QuarantinePath returns the path a corrupt task file is moved to.
func QuarantinePath(path, id string) string {
	return fmt.Sprintf("%s%s%s", path, CorruptSuffix, id)
}
