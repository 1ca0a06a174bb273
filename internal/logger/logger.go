// Package logger holds the process-wide Zap logger shared by the ledger
// API, the migration command, and the posting engine.
package logger

import (
	"sync"

	"go.uber.org/zap"
)

var (
	sugar *zap.SugaredLogger
	once  sync.Once
)

// Init builds the global logger for the given environment. "production"
// gets the JSON encoder; everything else gets the console encoder so
// local posting runs stay readable.
func Init(env string) {
	once.Do(func() {
		var base *zap.Logger
		var err error

		if env == "production" {
			base, err = zap.NewProduction()
		} else {
			base, err = zap.NewDevelopment()
		}

		if err != nil {
			base = zap.NewNop()
		}

		sugar = base.Named("ledger").Sugar()
	})
}

// Get returns the global sugared logger, initializing a development
// logger if Init was never called. Tests rely on this path.
func Get() *zap.SugaredLogger {
	if sugar == nil {
		Init("development")
	}
	return sugar
}

// Sync flushes any buffered log entries. Call this before application exit.
func Sync() {
	if sugar != nil {
		_ = sugar.Sync()
	}
}
