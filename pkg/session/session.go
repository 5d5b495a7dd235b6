package session

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"

	"github.com/dshills/aedificium/pkg/aedificium"
)

// State is one registered id's mock-server session: the problem it
// selected (if any), the hidden graph the judge is holding against it,
// and the running query count charged against /explore calls.
type State struct {
	ID          string                 `json:"id"`
	ProblemName string                 `json:"problemName"`
	Map         *aedificium.Aedificium `json:"map"`
	QueryCount  int                    `json:"queryCount"`
}

// Store persists State values as one JSON file per id under Dir.
type Store struct {
	Dir string
}

// NewStore returns a Store rooted at dir, creating it if necessary.
func NewStore(dir string) (*Store, error) {
	if err := os.MkdirAll(dir, 0755); err != nil {
		return nil, fmt.Errorf("session: creating directory %q: %w", dir, err)
	}
	return &Store{Dir: dir}, nil
}

func (s *Store) path(id string) string {
	return filepath.Join(s.Dir, id+".json")
}

// Save writes st to disk, overwriting any prior file for the same id.
func (s *Store) Save(st *State) error {
	data, err := json.MarshalIndent(st, "", "  ")
	if err != nil {
		return fmt.Errorf("session: encoding state for %q: %w", st.ID, err)
	}
	if err := os.WriteFile(s.path(st.ID), data, 0644); err != nil {
		return fmt.Errorf("session: writing state for %q: %w", st.ID, err)
	}
	return nil
}

// Load reads the persisted State for id, returning os.ErrNotExist
// (wrapped) if no session has ever been saved for it.
func (s *Store) Load(id string) (*State, error) {
	data, err := os.ReadFile(s.path(id))
	if err != nil {
		return nil, fmt.Errorf("session: loading state for %q: %w", id, err)
	}
	var st State
	if err := json.Unmarshal(data, &st); err != nil {
		return nil, fmt.Errorf("session: decoding state for %q: %w", id, err)
	}
	return &st, nil
}

// Delete removes any persisted state for id. Deleting a nonexistent file
// is not an error.
func (s *Store) Delete(id string) error {
	if err := os.Remove(s.path(id)); err != nil && !os.IsNotExist(err) {
		return fmt.Errorf("session: deleting state for %q: %w", id, err)
	}
	return nil
}
