// Package lib provides a Go SDK for managing tasktracker tasks programmatically.
//
// It uses the same storage and rules as the tasktracker CLI, so applications
// can read and change the task list without shelling out to the binary.
//
// # Quick Start
//
//	client, err := lib.New(ctx, lib.Config{})
//	if err != nil {
//	    log.Fatal(err)
//	}
//	defer client.Close()
//
//	task, _ := client.AddTask(ctx, "Buy milk", "2%")
//	client.UpdateTask(ctx, task.ID, lib.UpdateTaskOpts{Status: lib.Ptr(lib.TaskStatusInProgress)})
//	tasks, _ := client.ListTasks(ctx, nil)
//	client.DeleteTask(ctx, task.ID)
//
// # Storage
//
// Tasks are stored in a JSON document by default (~/.tasktracker/tasks.json).
// Set [Config].Storage to select another backend:
//
//   - [StorageJSON]: JSON document rewritten atomically on every change.
//   - [StorageSQLite]: SQLite database.
//   - [StorageMemory]: In-memory list that lives as long as the client. Use it
//     for unit testing.
//
// # Error Handling
//
// All methods return errors that can be inspected with [errors.Is]:
//
//   - [ErrNotFound]: No task has the requested ID.
//   - [ErrNotValid]: Invalid input (e.g. an unknown status).
//   - [ErrCorrupt]: The stored data can't be read as a task list. Set
//     [Config].RecoverCorrupt to start over instead.
//
// Unlike the CLI, [Client.UpdateTask] and [Client.DeleteTask] report a missing
// task with [ErrNotFound].
package lib
