package log

import (
	"fmt"
	"math"
	"sort"
	"strconv"
	"time"

	"github.com/datarhei/gpoint"
	"github.com/datarhei/gpoint/encoding/json"
	"github.com/datarhei/gpoint/mem"
)

// Formatter turns an event into a single line without the line break.
type Formatter interface {
	Bytes(e *Event) []byte
}

type jsonFormatter struct{}

func NewJSONFormatter() Formatter {
	return &jsonFormatter{}
}

func (f *jsonFormatter) Bytes(e *Event) []byte {
	data := make(Fields, len(e.Data)+4)

	for key, value := range e.Data {
		switch val := value.(type) {
		case float32:
			data[key] = jsonFloat(float64(val))
		case float64:
			data[key] = jsonFloat(val)
		case error:
			data[key] = val.Error()
		default:
			data[key] = value
		}
	}

	data["ts"] = e.Time
	data["component"] = e.Component

	if len(e.Caller) != 0 {
		data["caller"] = e.Caller
	}

	if len(e.Message) != 0 {
		data["message"] = e.Message
	}

	line := *e
	line.Data = data

	b, err := json.Marshal(&line)
	if err != nil {
		b, _ = json.Marshal(map[string]string{"error": err.Error()})
	}

	return b
}

// jsonFloat returns a %g formatted number, or a string for the values
// JSON can't represent.
func jsonFloat(f float64) interface{} {
	if math.IsNaN(f) || math.IsInf(f, 0) {
		return gpoint.New(f).String()
	}

	n, _ := json.ToNumber(f, gpoint.DefaultPrecision)

	return n
}

const (
	colorReset = "\033[0m"
	colorRed   = "\033[31m"
	colorGray  = "\033[90m"
)

var levelColors = map[Level]string{
	Ldebug: "\033[35m",
	Linfo:  "\033[34m",
	Lwarn:  "\033[33m",
	Lerror: "\033[31m\033[5m",
}

type consoleFormatter struct {
	color bool
}

func NewConsoleFormatter(useColor bool) Formatter {
	return &consoleFormatter{
		color: useColor,
	}
}

func (f *consoleFormatter) Bytes(e *Event) []byte {
	buf := mem.Get()
	defer mem.Put(buf)

	level := e.Level.String()
	if c, ok := levelColors[e.Level]; ok && f.color {
		level = c + level + colorReset
	}

	f.writeKV(buf, "ts", e.Time.UTC().Format(time.RFC3339))
	f.writeKV(buf, "level", level)
	f.writeKV(buf, "component", strconv.Quote(e.Component))

	if len(e.Message) != 0 {
		f.writeKV(buf, "msg", strconv.Quote(e.Message))
	}

	keys := make([]string, 0, len(e.Data))
	for key := range e.Data {
		keys = append(keys, key)
	}

	sort.Strings(keys)

	for _, key := range keys {
		f.writeKV(buf, key, f.value(e.Data[key]))
	}

	return append([]byte(nil), buf.Bytes()...)
}

func (f *consoleFormatter) value(v interface{}) string {
	switch val := v.(type) {
	case bool:
		return strconv.FormatBool(val)
	case string:
		return strconv.Quote(val)
	case error:
		return strconv.Quote(val.Error())
	case float32:
		return gpoint.New(val).String()
	case float64:
		return gpoint.New(val).String()
	case fmt.Stringer:
		return strconv.Quote(val.String())
	}

	b, err := json.Marshal(v)
	if err != nil {
		return strconv.Quote(err.Error())
	}

	return string(b)
}

// writeKV writes " key=value", without the leading space for the first pair.
func (f *consoleFormatter) writeKV(buf *mem.Buffer, key, value string) {
	if buf.Len() != 0 {
		buf.WriteByte(' ')
	}

	if !f.color {
		buf.WriteString(key + "=" + value)
		return
	}

	if key == "error" {
		value = colorRed + value + colorReset
	}

	buf.WriteString(colorGray + key + "=" + colorReset + value)
}
