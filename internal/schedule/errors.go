package schedule

import "fmt"

// ErrorKind identifies a schedule failure.
type ErrorKind int

const (
	KindDuplicateTaskID ErrorKind = iota + 1
	KindNaNTime
	KindOverlapsExisting
	KindTaskNotFound
)

// Error is returned by Schedule operations. Errors compare by value and
// errors.Is matches on Kind alone, so callers can test against the sentinels
// below while still reading the task ids from the returned value.
type Error struct {
	Kind ErrorKind
	// TaskID is the task the operation was called with.
	TaskID string
	// ExistingID is the conflicting placement for KindOverlapsExisting.
	ExistingID string
}

var (
	ErrDuplicateTaskID  = Error{Kind: KindDuplicateTaskID}
	ErrNaNTime          = Error{Kind: KindNaNTime}
	ErrOverlapsExisting = Error{Kind: KindOverlapsExisting}
	ErrTaskNotFound     = Error{Kind: KindTaskNotFound}
)

func (e Error) Error() string {
	switch e.Kind {
	case KindDuplicateTaskID:
		return fmt.Sprintf("task id %q already exists in schedule", e.TaskID)
	case KindNaNTime:
		return "time value cannot be NaN"
	case KindOverlapsExisting:
		return fmt.Sprintf("task %q overlaps with existing task %q", e.TaskID, e.ExistingID)
	case KindTaskNotFound:
		return fmt.Sprintf("task id %q not found in schedule", e.TaskID)
	default:
		return fmt.Sprintf("schedule error %d", int(e.Kind))
	}
}

func (e Error) Is(target error) bool {
	t, ok := target.(Error)
	return ok && t.Kind == e.Kind
}
