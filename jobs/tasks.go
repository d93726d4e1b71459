package jobs

import (
	"encoding/json"

	"github.com/hibiken/asynq"
)

const (
	// QueueDefault is the default queue name for background jobs.
	QueueDefault = "default"
	// TaskDirectoryRefresh invalidates cached display identities.
	TaskDirectoryRefresh = "users:directory:refresh"
)

// DirectoryRefreshPayload describes why a refresh was requested.
type DirectoryRefreshPayload struct {
	Reason string `json:"reason"`
}

// NewDirectoryRefreshTask constructs a directory refresh task.
func NewDirectoryRefreshTask(reason string) (*asynq.Task, error) {
	data, err := json.Marshal(DirectoryRefreshPayload{Reason: reason})
	if err != nil {
		return nil, err
	}
	return asynq.NewTask(TaskDirectoryRefresh, data), nil
}
