// Package cli holds setup shared by the tileset command line tools.
package cli

import (
	"os"
	"time"

	"github.com/rs/zerolog"

	"github.com/voidshard/tileset"
)

// Logger returns a console logger at the given level ("debug", "info", ...)
// and hands it to the tileset library. Unknown levels fall back to info.
func Logger(tool, level string) zerolog.Logger {
	lvl, err := zerolog.ParseLevel(level)
	if err != nil || level == "" {
		lvl = zerolog.InfoLevel
	}

	l := zerolog.New(zerolog.ConsoleWriter{Out: os.Stderr, TimeFormat: time.Kitchen}).
		Level(lvl).
		With().
		Timestamp().
		Str("tool", tool).
		Logger()

	tileset.SetLogger(l)
	return l
}

// FileExists checks if file exists
func FileExists(filename string) bool {
	info, err := os.Stat(filename)
	if os.IsNotExist(err) {
		return false
	}
	return err == nil && !info.IsDir()
}
