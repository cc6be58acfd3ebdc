package store

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"

	"github.com/ARK-Community/AutoBillTracker/internal/model"
)

// billsKey is the single named key the collection lives under. The document
// carries no schema version; additions must stay backward-compatible.
const billsKey = "bills"

// JSONStore persists the collection as one JSON document file:
//
//	{"bills": [ ... ]}
type JSONStore struct {
	path string
}

// OpenJSON returns a JSON store at the given path. The file is created on
// first save.
func OpenJSON(path string) *JSONStore {
	return &JSONStore{path: path}
}

// Load reads the whole collection. A missing file is an empty collection,
// not an error.
func (s *JSONStore) Load() ([]model.Bill, error) {
	data, err := os.ReadFile(s.path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, nil
		}
		return nil, fmt.Errorf("reading bill store: %w", err)
	}

	var doc map[string]json.RawMessage
	if err := json.Unmarshal(data, &doc); err != nil {
		return nil, fmt.Errorf("parsing bill store: %w", err)
	}

	raw, ok := doc[billsKey]
	if !ok {
		return nil, nil
	}
	var bills []model.Bill
	if err := json.Unmarshal(raw, &bills); err != nil {
		return nil, fmt.Errorf("parsing bill store: %w", err)
	}
	return bills, nil
}

// Save replaces the stored collection. The document is written to a temp
// file and renamed so a crash mid-write cannot leave a torn store.
func (s *JSONStore) Save(bills []model.Bill) error {
	if bills == nil {
		bills = []model.Bill{}
	}
	data, err := json.MarshalIndent(map[string][]model.Bill{billsKey: bills}, "", "  ")
	if err != nil {
		return fmt.Errorf("encoding bill store: %w", err)
	}

	dir := filepath.Dir(s.path)
	if err := os.MkdirAll(dir, 0o750); err != nil {
		return fmt.Errorf("creating store dir: %w", err)
	}

	tmp, err := os.CreateTemp(dir, ".bills-*.json")
	if err != nil {
		return fmt.Errorf("writing bill store: %w", err)
	}
	tmpName := tmp.Name()
	if _, err := tmp.Write(data); err != nil {
		_ = tmp.Close()
		_ = os.Remove(tmpName)
		return fmt.Errorf("writing bill store: %w", err)
	}
	if err := tmp.Close(); err != nil {
		_ = os.Remove(tmpName)
		return fmt.Errorf("writing bill store: %w", err)
	}
	if err := os.Rename(tmpName, s.path); err != nil {
		_ = os.Remove(tmpName)
		return fmt.Errorf("writing bill store: %w", err)
	}
	return nil
}

// Close is a no-op for the file-backed store.
func (s *JSONStore) Close() error {
	return nil
}
