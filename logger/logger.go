package logger

import (
	"go.uber.org/zap"
)

// L is the shared sugared logger. It defaults to a no-op logger so that
// packages can log safely before Init is called (and in tests).
var L = zap.NewNop().Sugar()

// Init builds the process-wide logger. Development mode enables console
// encoding and debug level; production uses JSON.
func Init(env string) error {
	var (
		base *zap.Logger
		err  error
	)
	if env == "development" {
		base, err = zap.NewDevelopment()
	} else {
		base, err = zap.NewProduction()
	}
	if err != nil {
		return err
	}
	L = base.Sugar()
	return nil
}

// Sync flushes any buffered log entries.
func Sync() {
	_ = L.Sync()
}
