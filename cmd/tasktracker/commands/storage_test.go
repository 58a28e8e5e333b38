package commands

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/slok/tasktracker/internal/log"
	"github.com/slok/tasktracker/internal/model"
)

func TestResolveStorageConfig(t *testing.T) {
	tests := map[string]struct {
		configFile string // Written in the home data dir when set.
		root       func(home string) RootCommand
		expCfg     func(home string) StorageConfig
		expErr     bool
	}{
		"Without flags or config file defaults should be used.": {
			root: func(home string) RootCommand { return RootCommand{} },
			expCfg: func(home string) StorageConfig {
				return StorageConfig{
					Storage:   model.StorageTypeJSON,
					TasksFile: filepath.Join(home, ".tasktracker", "tasks.json"),
					DBPath:    filepath.Join(home, ".tasktracker", "tasks.db"),
				}
			},
		},
		"The default config file should override defaults.": {
			configFile: "storage: sqlite\ndb_path: /var/lib/tasks.db\nrecover_corrupt: true\n",
			root:       func(home string) RootCommand { return RootCommand{} },
			expCfg: func(home string) StorageConfig {
				return StorageConfig{
					Storage:        model.StorageTypeSQLite,
					TasksFile:      filepath.Join(home, ".tasktracker", "tasks.json"),
					DBPath:         "/var/lib/tasks.db",
					RecoverCorrupt: true,
				}
			},
		},
		"Flags should override the config file.": {
			configFile: "storage: sqlite\ntasks_file: /from/config.json\n",
			root: func(home string) RootCommand {
				return RootCommand{Storage: "json", TasksFile: "/from/flag.json", Recover: true}
			},
			expCfg: func(home string) StorageConfig {
				return StorageConfig{
					Storage:        model.StorageTypeJSON,
					TasksFile:      "/from/flag.json",
					DBPath:         filepath.Join(home, ".tasktracker", "tasks.db"),
					RecoverCorrupt: true,
				}
			},
		},
		"Disabling recovery with a flag should override the config file.": {
			configFile: "recover_corrupt: true\n",
			root: func(home string) RootCommand {
				return RootCommand{Recover: false, RecoverSet: true}
			},
			expCfg: func(home string) StorageConfig {
				return StorageConfig{
					Storage:        model.StorageTypeJSON,
					TasksFile:      filepath.Join(home, ".tasktracker", "tasks.json"),
					DBPath:         filepath.Join(home, ".tasktracker", "tasks.db"),
					RecoverCorrupt: false,
				}
			},
		},
		"A missing explicit config file should fail.": {
			root: func(home string) RootCommand {
				return RootCommand{ConfigPath: filepath.Join(home, "missing.yaml")}
			},
			expErr: true,
		},
		"An invalid config file should fail.": {
			configFile: "storage: mongo\n",
			root:       func(home string) RootCommand { return RootCommand{} },
			expErr:     true,
		},
	}

	for name, test := range tests {
		t.Run(name, func(t *testing.T) {
			home := t.TempDir()
			if test.configFile != "" {
				dir := filepath.Join(home, ".tasktracker")
				require.NoError(t, os.MkdirAll(dir, 0755))
				require.NoError(t, os.WriteFile(filepath.Join(dir, "config.yaml"), []byte(test.configFile), 0644))
			}

			root := test.root(home)
			root.HomeDir = home
			root.Logger = log.Noop

			cfg, err := root.ResolveStorageConfig(context.Background())
			if test.expErr {
				assert.Error(t, err)
				return
			}

			require.NoError(t, err)
			assert.Equal(t, test.expCfg(home), *cfg)
		})
	}
}

func TestResolveStorageConfigExplicitTOML(t *testing.T) {
	dir := t.TempDir()
	cfgPath := filepath.Join(dir, "tracker.toml")
	require.NoError(t, os.WriteFile(cfgPath, []byte("tasks_file = \"/toml/tasks.json\"\n"), 0644))

	root := RootCommand{ConfigPath: cfgPath, HomeDir: dir, Logger: log.Noop}
	cfg, err := root.ResolveStorageConfig(context.Background())
	require.NoError(t, err)
	assert.Equal(t, "/toml/tasks.json", cfg.TasksFile)
	assert.Equal(t, model.StorageTypeJSON, cfg.Storage)
}
