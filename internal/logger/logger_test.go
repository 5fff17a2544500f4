package logger

import (
	"bytes"
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestJSONFormatAndLevel(t *testing.T) {
	var buf bytes.Buffer
	InitWriter(&buf, "warn", "json")

	Info("hidden")
	Warn("receipt skipped", "vendor", "d1")

	lines := bytes.Split(bytes.TrimSpace(buf.Bytes()), []byte("\n"))
	require.Len(t, lines, 1)

	var entry map[string]any
	require.NoError(t, json.Unmarshal(lines[0], &entry))
	assert.Equal(t, "receipt skipped", entry["msg"])
	assert.Equal(t, "d1", entry["vendor"])
}

func TestTextFormat(t *testing.T) {
	var buf bytes.Buffer
	InitWriter(&buf, "debug", "text")

	Debug("extracted", "items", 2)
	assert.Contains(t, buf.String(), "msg=extracted")
	assert.Contains(t, buf.String(), "items=2")
}
