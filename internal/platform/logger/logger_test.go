package logger

import (
	"bytes"
	"encoding/json"
	"testing"

	log "github.com/sirupsen/logrus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSetupWithOutput(t *testing.T) {
	t.Cleanup(func() { Setup("info") })

	t.Run("writes JSON with fields", func(t *testing.T) {
		var buf bytes.Buffer
		SetupWithOutput("debug", &buf)

		log.WithField("listing_id", 7).Debug("bid placed")

		var entry map[string]any
		require.NoError(t, json.Unmarshal(buf.Bytes(), &entry))
		assert.Equal(t, "bid placed", entry["msg"])
		assert.Equal(t, "debug", entry["level"])
		assert.EqualValues(t, 7, entry["listing_id"])
		assert.NotEmpty(t, entry["time"])
	})

	t.Run("unknown level falls back to info", func(t *testing.T) {
		var buf bytes.Buffer
		SetupWithOutput("chatty", &buf)

		assert.Equal(t, log.InfoLevel, log.GetLevel())
		log.Debug("hidden")
		assert.Empty(t, buf.String())
	})
}
