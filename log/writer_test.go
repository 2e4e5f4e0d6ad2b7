package log

import (
	"bytes"
	"encoding/json"
	"errors"
	"math"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

func testEvent(component string, data Fields) *Event {
	return &Event{
		Time:      time.Date(2009, time.November, 10, 23, 0, 0, 0, time.UTC),
		Level:     Linfo,
		Component: component,
		Caller:    "me",
		Message:   "hello world",
		Data:      data,
	}
}

func TestJSONWriter(t *testing.T) {
	buffer := bytes.Buffer{}

	writer := NewJSONWriter(&buffer, Linfo)
	err := writer.Write(testEvent("test", Fields{"foo": "bar"}))
	require.NoError(t, err)

	require.Equal(t, `{"Time":"2009-11-10T23:00:00Z","Level":"INFO","Component":"test","Caller":"me","Message":"hello world","Data":{"caller":"me","component":"test","foo":"bar","message":"hello world","ts":"2009-11-10T23:00:00Z"}}`+"\n", buffer.String())
}

func TestJSONWriterFloats(t *testing.T) {
	buffer := bytes.Buffer{}

	writer := NewJSONWriter(&buffer, Linfo)
	err := writer.Write(testEvent("test", Fields{"a": 1e-05, "b": math.Inf(-1), "c": math.NaN(), "d": float32(42)}))
	require.NoError(t, err)

	require.Contains(t, buffer.String(), `"a":1e-05,"b":"-inf","c":"nan","caller":"me","component":"test","d":42,`)
}

func TestJSONWriterLines(t *testing.T) {
	buffer := bytes.Buffer{}

	logger := New("test").WithOutput(NewJSONWriter(&buffer, Ldebug))
	logger.Warn().WithError(errors.New("failed")).Log("first")
	logger.Debug().WithField("n", 1).Log("second")

	lines := strings.Split(strings.TrimSuffix(buffer.String(), "\n"), "\n")
	require.Len(t, lines, 2)

	entry := struct {
		Level   string
		Message string
		Data    map[string]any
	}{}

	require.NoError(t, json.Unmarshal([]byte(lines[0]), &entry))
	require.Equal(t, "WARN", entry.Level)
	require.Equal(t, "first", entry.Message)
	require.Equal(t, "failed", entry.Data["error"])

	require.NoError(t, json.Unmarshal([]byte(lines[1]), &entry))
	require.Equal(t, "DEBUG", entry.Level)
	require.Equal(t, float64(1), entry.Data["n"])
}

func TestJSONWriterKeepsEvent(t *testing.T) {
	buffer := bytes.Buffer{}

	e := testEvent("test", Fields{"pi": math.Pi})

	writer := NewJSONWriter(&buffer, Linfo)
	require.NoError(t, writer.Write(e))

	require.Equal(t, Fields{"pi": math.Pi}, e.Data)
}

func TestConsoleWriter(t *testing.T) {
	buffer := bytes.Buffer{}

	writer := NewConsoleWriter(&buffer, Linfo, false)
	err := writer.Write(testEvent("test", Fields{"foo": "bar", "pi": math.Pi, "ok": true, "n": 7}))
	require.NoError(t, err)

	require.Equal(t, `ts=2009-11-10T23:00:00Z level=INFO component="test" msg="hello world" foo="bar" n=7 ok=true pi=3.14159`+"\n", buffer.String())
}

func TestConsoleWriterColor(t *testing.T) {
	buffer := bytes.Buffer{}

	writer := NewConsoleWriter(&buffer, Linfo, true)
	err := writer.Write(testEvent("test", Fields{"error": "failed"}))
	require.NoError(t, err)

	require.Contains(t, buffer.String(), "\033[34mINFO\033[0m")
	require.Contains(t, buffer.String(), "\033[90merror=\033[0m\033[31m\"failed\"\033[0m")
}

func TestWriterLevel(t *testing.T) {
	buffer := bytes.Buffer{}

	writer := NewConsoleWriter(&buffer, Lwarn, false)

	e := testEvent("test", nil)
	require.NoError(t, writer.Write(e))
	require.Equal(t, 0, buffer.Len())

	e.Level = Lsilent
	require.NoError(t, writer.Write(e))
	require.Equal(t, 0, buffer.Len())
}
