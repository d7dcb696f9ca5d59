package observability

import (
	"os"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"

	"github.com/lucasvr/synthetic-mine-maker/internal/logging"
)

func InitLogger(app string) zerolog.Logger {
	logging.ConfigureRuntime()
	logger := logging.New(os.Stderr, logging.Active()).With().Str("app", app).Logger()
	log.Logger = logger
	return logger
}
