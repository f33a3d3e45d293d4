package session

import (
	"encoding/json"
	"errors"
	"os"
	"path/filepath"
)

// State is everything skydesk persists locally: the bearer token and the
// operator's theme preference. Logout wipes the whole file.
type State struct {
	Token string `json:"token,omitempty"`
	Theme string `json:"theme,omitempty"`
}

type Store struct {
	Path string
}

func (s Store) Load() (State, error) {
	var st State
	b, err := os.ReadFile(s.Path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return st, nil
		}
		return st, err
	}
	if err := json.Unmarshal(b, &st); err != nil {
		return st, err
	}
	return st, nil
}

func (s Store) Save(st State) error {
	if err := os.MkdirAll(filepath.Dir(s.Path), 0o755); err != nil {
		return err
	}
	b, err := json.MarshalIndent(st, "", "  ")
	if err != nil {
		return err
	}
	b = append(b, '\n')
	return os.WriteFile(s.Path, b, 0o600)
}

func (s Store) Clear() error {
	err := os.Remove(s.Path)
	if err != nil && !errors.Is(err, os.ErrNotExist) {
		return err
	}
	return nil
}
