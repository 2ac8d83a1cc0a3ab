package database

import (
	"errors"
	"fmt"

	"github.com/inovacc/upstream/internal/model"
)

// Driver names accepted by Open.
const (
	DriverBolt   = "bolt"
	DriverSQLite = "sqlite"
)

// ErrUnknownDriver is returned by Open for an unsupported driver name.
var ErrUnknownDriver = errors.New("unknown storage driver")

// Store defines the settings persistence used by the app.
type Store interface {
	Ping() error
	// Load returns the stored record, or an empty record if none was saved.
	Load() (model.Record, error)
	// Save merges fragment into the stored record.
	Save(fragment model.Record) error
	// Delete removes the record. Only the uninstall path calls this.
	Delete() error
	Close() error
}

// Open opens the store for driver at path. An empty driver selects bolt.
func Open(driver, path string) (Store, error) {
	switch driver {
	case "", DriverBolt:
		return NewBolt(path)
	case DriverSQLite:
		return NewSQLite(path)
	default:
		return nil, fmt.Errorf("%w: %q", ErrUnknownDriver, driver)
	}
}

// DefaultFileName returns the database file name used for driver when no
// explicit path is configured.
func DefaultFileName(driver string) string {
	if driver == DriverSQLite {
		return "upstream.sqlite"
	}

	return "upstream.bolt"
}
