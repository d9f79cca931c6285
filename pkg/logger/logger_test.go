package logger_test

import (
	"bytes"
	"testing"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"

	"github.com/tu-usuario/catering-pro/pkg/logger"
)

// El campo fijo "service" sale en cada línea cuando se configura; sin él la
// línea no lo lleva.
func TestNew_CampoServicio(t *testing.T) {
	var buf bytes.Buffer
	l := logger.New(logger.Config{Env: "production", Service: "catering-pro"})
	zl := l.Zerolog().Output(&buf)
	zl.Info().Msg("hola")
	assert.Contains(t, buf.String(), `"service":"catering-pro"`)

	buf.Reset()
	anon := logger.New(logger.Config{Env: "production"})
	azl := anon.Zerolog().Output(&buf)
	azl.Info().Msg("hola")
	assert.NotContains(t, buf.String(), `"service"`)
}

// Sin nivel explícito manda LOG_LEVEL; un Level explícito gana al entorno y
// los valores desconocidos caen en info.
func TestNew_NivelDeLog(t *testing.T) {
	t.Setenv("LOG_LEVEL", "")
	assert.Equal(t, zerolog.InfoLevel, logger.New(logger.Config{}).Zerolog().GetLevel())

	t.Setenv("LOG_LEVEL", "debug")
	assert.Equal(t, zerolog.DebugLevel, logger.New(logger.Config{}).Zerolog().GetLevel())
	assert.Equal(t, zerolog.WarnLevel, logger.New(logger.Config{Level: "warn"}).Zerolog().GetLevel())

	t.Setenv("LOG_LEVEL", "ruidoso")
	assert.Equal(t, zerolog.InfoLevel, logger.New(logger.Config{}).Zerolog().GetLevel())
}
