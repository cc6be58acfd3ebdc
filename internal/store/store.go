// Package store persists the bill collection. Two backends share one
// contract: Load returns the whole collection in insertion order, Save
// replaces it wholesale. The ledger stays the single owner; backends never
// mutate bills.
package store

import (
	"fmt"

	"github.com/ARK-Community/AutoBillTracker/internal/config"
	"github.com/ARK-Community/AutoBillTracker/internal/model"
)

// Backend is the persistence contract consumed by the commands and the
// daemon.
type Backend interface {
	Load() ([]model.Bill, error)
	Save(bills []model.Bill) error
	Close() error
}

// Open returns the backend selected by the config.
func Open(cfg config.Config) (Backend, error) {
	switch cfg.Storage.Backend {
	case config.BackendSQLite:
		return OpenSQLite(cfg.StorePath())
	case config.BackendJSON, "":
		return OpenJSON(cfg.StorePath()), nil
	default:
		return nil, fmt.Errorf("unknown storage backend %q", cfg.Storage.Backend)
	}
}
