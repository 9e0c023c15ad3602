package store

import (
	"encoding/json"
	"errors"
	"os"
	"path/filepath"
	"strings"
)

const pickerStateFileName = "picker_state.json"

// PickerState remembers the last confirmed value per picker kind so the next
// session opens on it.
//
// It is best effort: callers should tolerate missing/invalid data.
type PickerState struct {
	Version int `json:"version"`

	// Last maps a picker kind (region|date|time|single) to its last value:
	// a region code, a 2006-01-02 date, a 15:04 time or an item id.
	Last map[string]string `json:"last,omitempty"`
}

func (st *PickerState) LastValue(kind string) string {
	if st == nil {
		return ""
	}
	return st.Last[kind]
}

func (st *PickerState) Remember(kind, value string) {
	if st.Last == nil {
		st.Last = map[string]string{}
	}
	st.Last[kind] = value
}

func (s Store) pickerStatePath() string {
	return filepath.Join(s.Dir, pickerStateFileName)
}

func (s Store) LoadPickerState() (*PickerState, error) {
	if strings.TrimSpace(s.Dir) == "" {
		return &PickerState{Version: 1}, nil
	}
	b, err := os.ReadFile(s.pickerStatePath())
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return &PickerState{Version: 1}, nil
		}
		return nil, err
	}
	var st PickerState
	if err := json.Unmarshal(b, &st); err != nil {
		// Best-effort; if corrupted, treat as missing.
		return &PickerState{Version: 1}, nil
	}
	if st.Version == 0 {
		st.Version = 1
	}
	return &st, nil
}

func (s Store) SavePickerState(st *PickerState) error {
	if st == nil || strings.TrimSpace(s.Dir) == "" {
		return nil
	}
	if err := s.Ensure(); err != nil {
		return err
	}
	if st.Version == 0 {
		st.Version = 1
	}
	b, err := json.MarshalIndent(st, "", "  ")
	if err != nil {
		return err
	}
	return atomicWriteFile(s.Dir, "picker_state.json.*.tmp", s.pickerStatePath(), b, 0o644)
}

func atomicWriteFile(dir, tmpPattern, path string, b []byte, perm os.FileMode) error {
	f, err := os.CreateTemp(dir, tmpPattern)
	if err != nil {
		return err
	}
	tmp := f.Name()
	defer func() { _ = os.Remove(tmp) }()
	if _, err := f.Write(b); err != nil {
		_ = f.Close()
		return err
	}
	if err := f.Close(); err != nil {
		return err
	}
	_ = os.Chmod(tmp, perm)
	return os.Rename(tmp, path)
}
