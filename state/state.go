// Package state persists reminder status and the playground history between
// runs as a JSON file under ~/.go_dateparse.
package state

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sync"
	"time"

	"github.com/google/uuid"

	"go_dateparse/reminder"
)

const (
	stateFileName = "state.json"
	maxHistory    = 50
)

// savedReminder is the JSON-serializable form of a reminder
type savedReminder struct {
	ID          uuid.UUID `json:"id"`
	DateTime    time.Time `json:"datetime"`
	Description string    `json:"description"`
	SourceFile  string    `json:"source_file"`
	Status      int       `json:"status"`
}

// HistoryEntry is one utterance typed into the playground.
type HistoryEntry struct {
	Text string    `json:"text"`
	Lang string    `json:"lang"`
	At   time.Time `json:"at"`
}

type file struct {
	Reminders []savedReminder `json:"reminders"`
	History   []HistoryEntry  `json:"history"`
}

// Store reads and writes the state file. Methods are safe for concurrent use.
type Store struct {
	path string
	mu   sync.Mutex
}

// NewStore keeps its state file in dir.
func NewStore(dir string) *Store {
	return &Store{path: filepath.Join(dir, stateFileName)}
}

// DefaultDir returns ~/.go_dateparse.
func DefaultDir() (string, error) {
	homeDir, err := os.UserHomeDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(homeDir, ".go_dateparse"), nil
}

// Path returns the location of the state file.
func (s *Store) Path() string {
	return s.path
}

func (s *Store) read() (file, error) {
	var f file
	data, err := os.ReadFile(s.path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return f, nil // No state file yet, that's OK
		}
		return f, err
	}
	if err := json.Unmarshal(data, &f); err != nil {
		return f, fmt.Errorf("decoding %s: %w", s.path, err)
	}
	return f, nil
}

func (s *Store) write(f file) error {
	if err := os.MkdirAll(filepath.Dir(s.path), 0o755); err != nil {
		return err
	}
	data, err := json.MarshalIndent(f, "", "  ")
	if err != nil {
		return err
	}
	tmp := s.path + ".tmp"
	if err := os.WriteFile(tmp, data, 0o644); err != nil {
		return err
	}
	return os.Rename(tmp, s.path)
}

// SaveReminders records the status of reminders, replacing what was saved.
func (s *Store) SaveReminders(reminders []*reminder.Reminder) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	f, err := s.read()
	if err != nil {
		return err
	}
	f.Reminders = make([]savedReminder, len(reminders))
	for i, r := range reminders {
		f.Reminders[i] = savedReminder{
			ID:          r.ID,
			DateTime:    r.DateTime,
			Description: r.Description,
			SourceFile:  r.SourceFile,
			Status:      int(r.Status),
		}
	}
	return s.write(f)
}

// RestoreStatus copies saved statuses and snoozed times onto reminders with
// a matching ID.
func (s *Store) RestoreStatus(reminders []*reminder.Reminder) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	f, err := s.read()
	if err != nil {
		return err
	}
	saved := make(map[uuid.UUID]savedReminder, len(f.Reminders))
	for _, r := range f.Reminders {
		saved[r.ID] = r
	}
	for _, r := range reminders {
		if sr, ok := saved[r.ID]; ok {
			r.Status = reminder.Status(sr.Status)
			r.DateTime = sr.DateTime
		}
	}
	return nil
}

// AddHistory appends an utterance to the playground history, keeping the
// most recent entries.
func (s *Store) AddHistory(entry HistoryEntry) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	f, err := s.read()
	if err != nil {
		return err
	}
	f.History = append(f.History, entry)
	if len(f.History) > maxHistory {
		f.History = f.History[len(f.History)-maxHistory:]
	}
	return s.write(f)
}

// History returns the playground history, oldest first.
func (s *Store) History() ([]HistoryEntry, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	f, err := s.read()
	if err != nil {
		return nil, err
	}
	return f.History, nil
}
