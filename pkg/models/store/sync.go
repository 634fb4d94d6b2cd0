package store

import "time"

type SyncRun struct {
	ID         string
	Profile    string
	StartedAt  time.Time
	FinishedAt *time.Time
	Imported   int64
	Error      *string
}
