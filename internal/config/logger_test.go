package config

import (
	"bytes"
	"testing"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
	"github.com/stretchr/testify/assert"
)

func TestInitLoggerLevels(t *testing.T) {
	t.Cleanup(func() { zerolog.SetGlobalLevel(zerolog.TraceLevel) })

	var buf bytes.Buffer
	InitLogger(&buf, false)
	log.Info().Msg("quiet")
	log.Warn().Msg("loud")
	assert.NotContains(t, buf.String(), "quiet")
	assert.Contains(t, buf.String(), "loud")

	buf.Reset()
	InitLogger(&buf, true)
	log.Debug().Msg("details")
	assert.Contains(t, buf.String(), "details")
}
