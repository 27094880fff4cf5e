package tileset

import (
	"github.com/rs/zerolog"
)

// logger is used by the library for debug output. Silent unless set.
var logger = zerolog.Nop()

// SetLogger sets the logger used by this package.
func SetLogger(l zerolog.Logger) {
	logger = l.With().Str("component", "tileset").Logger()
}
