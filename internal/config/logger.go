package config

import (
	"io"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
)

// InitLogger sends the global zerolog logger to w in console format. Only
// warnings and errors are shown unless debug is set.
func InitLogger(w io.Writer, debug bool) {
	log.Logger = log.Output(zerolog.ConsoleWriter{
		Out:        w,
		TimeFormat: "2006-01-02 15:04:05",
	})

	if debug {
		zerolog.SetGlobalLevel(zerolog.DebugLevel)
		log.Debug().Msg("debug logging enabled")
		return
	}
	zerolog.SetGlobalLevel(zerolog.WarnLevel)
}
