// Package run persists the game-wide run state and bootstraps the mountain
// for each run.
package run

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sync"

	"gopkg.in/yaml.v3"
)

// State is the progress carried between runs. The mountain is rebuilt from
// Seed every time.
type State struct {
	Seed     string         `yaml:"seed"`
	Run      int            `yaml:"run"`
	Money    int            `yaml:"money"`
	Stamina  float64        `yaml:"stamina"`
	Upgrades map[string]int `yaml:"upgrades,omitempty"`
}

// NewState returns the state of a player who has never started a run.
func NewState() State {
	return State{Stamina: 1}
}

// Store loads and saves run state.
type Store interface {
	Load() (State, error)
	Save(State) error
}

// FileStore keeps the state in a YAML file.
type FileStore struct {
	Path string
}

// NewFileStore returns a store backed by path.
func NewFileStore(path string) *FileStore {
	return &FileStore{Path: path}
}

// Load reads the state file. A missing file yields a fresh state.
func (s *FileStore) Load() (State, error) {
	data, err := os.ReadFile(s.Path)
	if errors.Is(err, os.ErrNotExist) {
		return NewState(), nil
	}
	if err != nil {
		return State{}, fmt.Errorf("read state: %w", err)
	}
	st := NewState()
	if err := yaml.Unmarshal(data, &st); err != nil {
		return State{}, fmt.Errorf("parse state: %w", err)
	}
	return st, nil
}

// Save writes the state file, creating its directory when needed.
func (s *FileStore) Save(st State) error {
	data, err := yaml.Marshal(&st)
	if err != nil {
		return fmt.Errorf("marshal state: %w", err)
	}
	dir := filepath.Dir(s.Path)
	if dir != "." && dir != "" {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return fmt.Errorf("create state directory: %w", err)
		}
	}
	if err := os.WriteFile(s.Path, data, 0o644); err != nil {
		return fmt.Errorf("write state: %w", err)
	}
	return nil
}

// MemoryStore keeps the state in memory.
type MemoryStore struct {
	mu    sync.Mutex
	state State
	saved bool
}

// NewMemoryStore returns a store holding st.
func NewMemoryStore(st State) *MemoryStore {
	return &MemoryStore{state: cloneState(st), saved: true}
}

func (s *MemoryStore) Load() (State, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if !s.saved {
		return NewState(), nil
	}
	return cloneState(s.state), nil
}

func (s *MemoryStore) Save(st State) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.state = cloneState(st)
	s.saved = true
	return nil
}

func cloneState(st State) State {
	if st.Upgrades != nil {
		upgrades := make(map[string]int, len(st.Upgrades))
		for k, v := range st.Upgrades {
			upgrades[k] = v
		}
		st.Upgrades = upgrades
	}
	return st
}
