package database

import (
	"context"
	"fmt"
)

// Supported store drivers.
const (
	DriverSQLite = "sqlite"
	DriverMongo  = "mongo"
)

// Config selects and configures a backend.
type Config struct {
	// Driver is DriverSQLite or DriverMongo.
	Driver string

	// Dir is the SQLite data directory.
	Dir string

	// Mongo configures the MongoDB backend.
	Mongo MongoOptions
}

// OpenStore opens the backend named by cfg.Driver.
func OpenStore(ctx context.Context, cfg Config) (Store, error) {
	switch cfg.Driver {
	case DriverSQLite, "":
		db, err := Open(cfg.Dir, DefaultOptions())
		if err != nil {
			return nil, err
		}
		return db, nil
	case DriverMongo:
		store, err := OpenMongo(ctx, cfg.Mongo)
		if err != nil {
			return nil, err
		}
		return store, nil
	default:
		return nil, fmt.Errorf("unknown store driver %q", cfg.Driver)
	}
}

var (
	_ Store = (*TransmissionDB)(nil)
	_ Store = (*MongoStore)(nil)
)
