package contracts

import "time"

type Action string

const (
	ActionCreated       Action = "created"
	ActionOverwritten   Action = "overwritten"
	ActionSkipped       Action = "skipped"
	ActionDownloaded    Action = "downloaded"
	ActionFolderCreated Action = "folder_created"
)

// Event describes one thing the synchronizer did (or decided not to do).
type Event struct {
	Time       time.Time
	Action     Action
	RemotePath string
	FileID     string
	LocalPath  string
	Hash       string
}

// Reporter receives events. Journal and logging are reporters.
type Reporter interface {
	Report(e Event) error
}
