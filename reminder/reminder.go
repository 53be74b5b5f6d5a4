// Package reminder holds reminders found in text files and the operations
// the watcher and the TUI apply to them.
package reminder

import (
	"fmt"
	"sort"
	"time"

	"github.com/google/uuid"
)

// Status represents the current state of a reminder
type Status int

const (
	Pending      Status = iota // Waiting for trigger time
	Triggered                  // Time reached, needs acknowledgment
	Acknowledged               // User dismissed, show crossed out
)

func (s Status) String() string {
	switch s {
	case Pending:
		return "pending"
	case Triggered:
		return "TRIGGERED"
	case Acknowledged:
		return "done"
	default:
		return "unknown"
	}
}

// namespace scopes reminder IDs so they never collide with other SHA-1 UUIDs.
var namespace = uuid.NewSHA1(uuid.NameSpaceURL, []byte("go_dateparse/reminder"))

// Reminder is one utterance resolved to a point in time.
type Reminder struct {
	ID          uuid.UUID
	DateTime    time.Time
	Description string
	Tags        []string
	Lang        string
	Utterance   string
	SourceFile  string
	LineNumber  int
	Status      Status
}

// NewID derives a stable ID from where a reminder was written and what it
// says, so re-parsing an unchanged file yields the same IDs.
func NewID(sourceFile string, line int, utterance string) uuid.UUID {
	return uuid.NewSHA1(namespace, []byte(fmt.Sprintf("%s:%d:%s", sourceFile, line, utterance)))
}

// IsDue reports whether the reminder's time has passed at now.
func (r *Reminder) IsDue(now time.Time) bool {
	return !now.Before(r.DateTime)
}

// Snooze moves the reminder to now+d and makes it pending again.
func (r *Reminder) Snooze(now time.Time, d time.Duration) {
	r.DateTime = now.Add(d)
	r.Status = Pending
}

// SortByDateTime sorts reminders by time; equal times keep file order.
func SortByDateTime(reminders []*Reminder) {
	sort.SliceStable(reminders, func(i, j int) bool {
		return reminders[i].DateTime.Before(reminders[j].DateTime)
	})
}

// MergeFromFile replaces the reminders of sourceFile with fresh ones. A fresh
// reminder whose ID was already known keeps its status, so acknowledging a
// reminder survives edits elsewhere in the file.
func MergeFromFile(existing []*Reminder, sourceFile string, fresh []*Reminder) []*Reminder {
	known := make(map[uuid.UUID]Status)
	merged := make([]*Reminder, 0, len(existing)+len(fresh))
	for _, r := range existing {
		if r.SourceFile == sourceFile {
			known[r.ID] = r.Status
			continue
		}
		merged = append(merged, r)
	}
	for _, r := range fresh {
		if status, ok := known[r.ID]; ok {
			r.Status = status
		}
		merged = append(merged, r)
	}
	return merged
}

// Trigger marks every pending reminder due at now as triggered and reports
// whether anything changed.
func Trigger(reminders []*Reminder, now time.Time) bool {
	changed := false
	for _, r := range reminders {
		if r.Status == Pending && r.IsDue(now) {
			r.Status = Triggered
			changed = true
		}
	}
	return changed
}
