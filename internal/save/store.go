// Package save persists player progress as a flat JSON document. Unknown
// fields in an existing file are ignored on load and missing fields take the
// fresh-progress defaults, so the layout can grow across versions.
package save

import (
	"encoding/json"
	"fmt"
	"os"
	"time"

	"github.com/redshift-arcade/ascent/internal/game"
)

const formatVersion = 1

type saveFile struct {
	FormatVersion int            `json:"format_version"`
	SavedAt       time.Time      `json:"saved_at"`
	Progress      *game.Progress `json:"progress"`
}

// Store reads and writes one save file.
type Store struct {
	path string
}

func NewStore(path string) *Store {
	return &Store{path: path}
}

func (s *Store) Path() string { return s.path }

// Load restores the saved progress. A missing file is not an error; it
// returns (nil, nil) and the caller starts fresh.
func (s *Store) Load() (*game.Progress, error) {
	data, err := os.ReadFile(s.path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, nil
		}
		return nil, fmt.Errorf("read save: %w", err)
	}

	// Unmarshal over a fresh record so absent fields keep their defaults.
	progress := game.NewProgress()
	file := saveFile{Progress: progress}
	if err := json.Unmarshal(data, &file); err != nil {
		return nil, fmt.Errorf("decode save: %w", err)
	}
	if file.Progress == nil {
		return nil, nil
	}
	file.Progress.Normalize()
	return file.Progress, nil
}

// Save writes the progress record to disk.
func (s *Store) Save(p *game.Progress) error {
	if p == nil {
		return fmt.Errorf("save: nil progress")
	}
	payload := saveFile{
		FormatVersion: formatVersion,
		SavedAt:       p.LastSaveTime,
		Progress:      p,
	}
	data, err := json.MarshalIndent(payload, "", "  ")
	if err != nil {
		return fmt.Errorf("encode save: %w", err)
	}
	if err := os.WriteFile(s.path, data, 0o600); err != nil {
		return fmt.Errorf("write save: %w", err)
	}
	return nil
}
