package testlog

import (
	"testing"

	"github.com/rs/zerolog/log"

	"github.com/lucasvr/synthetic-mine-maker/internal/logging"
)

func Start(t *testing.T) {
	t.Helper()
	logging.ConfigureTests()
	log.Info().Msgf("test=%s", t.Name())
}
