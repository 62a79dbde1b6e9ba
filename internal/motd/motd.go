// Package motd provides the file-backed message-of-the-day store.
//
// The MOTD is a plain line-oriented text file: one message per line.
// Blank lines are filtered out on read but not specially prevented on
// write. All mutations go through a single in-process mutex; the file is
// only ever written by this server, so no cross-process locking is used.
package motd

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"sync"
)

// ErrLineOutOfRange is returned by Remove for an index outside [1, len].
var ErrLineOutOfRange = errors.New("motd: line number out of range")

// Store reads and mutates the MOTD file.
type Store struct {
	path string
	mu   sync.Mutex
}

// NewStore creates a store backed by the given file path. The file does
// not need to exist yet; a missing file reads as an empty MOTD.
func NewStore(path string) *Store {
	return &Store{path: path}
}

// Lines returns the current MOTD lines in order, with blank lines
// filtered out.
func (s *Store) Lines() ([]string, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.readLines()
}

// Append adds a line at the end of the MOTD.
func (s *Store) Append(line string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	lines, err := s.readLines()
	if err != nil {
		return err
	}
	return s.writeLines(append(lines, line))
}

// Remove deletes the line at the given 1-based index and returns its
// text. Indexes outside [1, len] return ErrLineOutOfRange and leave the
// store unchanged.
func (s *Store) Remove(n int) (string, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	lines, err := s.readLines()
	if err != nil {
		return "", err
	}
	if n < 1 || n > len(lines) {
		return "", ErrLineOutOfRange
	}

	removed := lines[n-1]
	lines = append(lines[:n-1], lines[n:]...)
	if err := s.writeLines(lines); err != nil {
		return "", err
	}
	return removed, nil
}

// Clear removes every MOTD line.
func (s *Store) Clear() error {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.writeLines(nil)
}

func (s *Store) readLines() ([]string, error) {
	data, err := os.ReadFile(s.path)
	if errors.Is(err, os.ErrNotExist) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("read motd file: %w", err)
	}

	var lines []string
	for _, line := range strings.Split(string(data), "\n") {
		if strings.TrimSpace(line) == "" {
			continue
		}
		lines = append(lines, line)
	}
	return lines, nil
}

func (s *Store) writeLines(lines []string) error {
	if err := os.MkdirAll(filepath.Dir(s.path), 0755); err != nil {
		return fmt.Errorf("create motd directory: %w", err)
	}

	var content string
	if len(lines) > 0 {
		content = strings.Join(lines, "\n") + "\n"
	}
	if err := os.WriteFile(s.path, []byte(content), 0644); err != nil {
		return fmt.Errorf("write motd file: %w", err)
	}
	return nil
}
