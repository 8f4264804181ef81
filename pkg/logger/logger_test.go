package logger

import (
	"bytes"
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGetAndSetLoggerLevel(t *testing.T) {
	// Default should be INFO
	assert.Equal(t, GetLoggerLevel().String(), INFO.String())

	// It should be changeable
	assert.Nil(t, SetLoggerLevel(DEBUG.String()))
	assert.Equal(t, GetLoggerLevel().String(), DEBUG.String())
	assert.Nil(t, SetLoggerLevel(INFO.String()))
	assert.Equal(t, GetLoggerLevel().String(), INFO.String())

	assert.Error(t, SetLoggerLevel("LOUD"))
	assert.Equal(t, GetLoggerLevel().String(), INFO.String())
}

func TestOutput(t *testing.T) {
	var buf bytes.Buffer
	SetOutput(&buf)
	t.Cleanup(func() {
		_ = SetLoggerFormat(HUMAN)
		_ = SetLoggerLevel("INFO")
	})

	t.Run("Human", func(t *testing.T) {
		buf.Reset()
		require.NoError(t, SetLoggerFormat(HUMAN))
		Warning("could not read file: path=%q", "a.txt")
		assert.Equal(t, "[WARNING] could not read file: path=\"a.txt\"\n", buf.String())
	})

	t.Run("JSON", func(t *testing.T) {
		buf.Reset()
		require.NoError(t, SetLoggerFormat(JSON))
		Critical("scan failed: %s", "boom")

		var entry map[string]any
		require.NoError(t, json.Unmarshal(buf.Bytes(), &entry))
		assert.Equal(t, "fatal", entry["severity"])
		assert.Equal(t, "scan failed: boom", entry["message"])
		assert.NotEmpty(t, entry["time"])
	})

	t.Run("LevelFiltering", func(t *testing.T) {
		buf.Reset()
		require.NoError(t, SetLoggerFormat(HUMAN))
		require.NoError(t, SetLoggerLevel("ERROR"))
		Info("hidden")
		Debug("hidden")
		assert.Empty(t, buf.String())
		Error("shown")
		assert.Contains(t, buf.String(), "[ERROR] shown")
	})
}

func TestParseLoggerFormat(t *testing.T) {
	format, err := ParseLoggerFormat("json")
	assert.NoError(t, err)
	assert.Equal(t, JSON, format)

	_, err = ParseLoggerFormat("xml")
	assert.Error(t, err)
}
