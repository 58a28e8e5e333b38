package model

// StorageType is the backend used to persist the task list.
type StorageType string

const (
	StorageTypeJSON   StorageType = "json"
	StorageTypeSQLite StorageType = "sqlite"
	StorageTypeMemory StorageType = "memory"
)

// TrackerConfig is the user configuration of the tracker.
// Empty fields mean "not set".
type TrackerConfig struct {
	Storage        StorageType
	TasksFile      string
	DBPath         string
	RecoverCorrupt *bool
}
