package domain

import "time"

// TaskStatus is the lifecycle state of a download task.
type TaskStatus string

const (
	TaskPending     TaskStatus = "pending"
	TaskDownloading TaskStatus = "downloading"
	TaskSucceeded   TaskStatus = "succeeded"
	TaskFailed      TaskStatus = "failed"
	TaskCancelled   TaskStatus = "cancelled"
)

// IsTerminal reports whether the task has finished, one way or another.
func (s TaskStatus) IsTerminal() bool {
	switch s {
	case TaskSucceeded, TaskFailed, TaskCancelled:
		return true
	}
	return false
}

// DownloadTask tracks one in-flight download. At most one task per URL may
// exist at a time; a task is discarded once it reaches a terminal status.
type DownloadTask struct {
	ID        string     // Unique task identifier
	URL       string     // Media URL being fetched
	Progress  float64    // Fraction in [0,1], non-decreasing for a given task
	Status    TaskStatus // Current lifecycle state
	StartedAt time.Time
}
