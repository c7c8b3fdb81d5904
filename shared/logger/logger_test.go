package logger_test

import (
	"bytes"
	"encoding/json"
	"errors"
	"hotel/config"
	"hotel/shared/logger"
	"testing"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func restore(t *testing.T) {
	t.Helper()

	original := log.Logger
	level := zerolog.GlobalLevel()

	t.Cleanup(func() {
		log.Logger = original
		zerolog.SetGlobalLevel(level)
	})
}

func TestInitLogger_ProductionWritesJSON(t *testing.T) {
	restore(t)

	var buf bytes.Buffer
	logger.InitLoggerWithOutput("production", &buf)
	buf.Reset()

	log.Info().Str("booking", "b-1").Msg("booking created")

	var line map[string]any
	require.NoError(t, json.Unmarshal(buf.Bytes(), &line))
	assert.Equal(t, "booking created", line["message"])
	assert.Equal(t, "b-1", line["booking"])
	assert.Equal(t, "info", line["level"])
}

func TestInitLogger_DevelopmentWritesConsole(t *testing.T) {
	restore(t)

	var buf bytes.Buffer
	logger.InitLoggerWithOutput("development", &buf)
	buf.Reset()

	log.Info().Msg("room updated")

	assert.Contains(t, buf.String(), "room updated")
	assert.False(t, json.Valid(bytes.TrimSpace(buf.Bytes())))
}

func TestErrorWithStack(t *testing.T) {
	restore(t)

	var buf bytes.Buffer
	log.Logger = log.Output(&buf)

	logger.ErrorWithStack(errors.New("payment gateway timeout"))

	assert.Contains(t, buf.String(), "payment gateway timeout")
}

func TestSetLogLevel(t *testing.T) {
	restore(t)

	tests := []struct {
		input string
		want  zerolog.Level
	}{
		{input: "debug", want: zerolog.DebugLevel},
		{input: "warn", want: zerolog.WarnLevel},
		{input: "error", want: zerolog.ErrorLevel},
		{input: "", want: zerolog.InfoLevel},
		{input: "verbose", want: zerolog.InfoLevel},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			cfg := &config.Config{}
			cfg.Server.LogLevel = tt.input

			logger.SetLogLevel(cfg)

			assert.Equal(t, tt.want, zerolog.GlobalLevel())
		})
	}
}
