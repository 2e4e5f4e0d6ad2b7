// Package config implements types for handling the configuation for gprintf.
package config

import (
	"errors"
	"reflect"
	"strings"

	"github.com/datarhei/gpoint"
	"github.com/datarhei/gpoint/config/value"
	"github.com/datarhei/gpoint/config/vars"

	"github.com/go-playground/validator/v10"
)

// Data is the actual configuration data for gprintf
type Data struct {
	Directive string `json:"directive" validate:"required"`
	Bits      int    `json:"bits" validate:"oneof=32 64"`
	Log       struct {
		Level  string `json:"level" validate:"oneof=silent error warn info debug"`
		Format string `json:"format" validate:"oneof=console json"`
	} `json:"log"`
	Compare bool `json:"compare"`
}

// Config is a wrapper for Data
type Config struct {
	vars vars.Variables

	Data
}

// New returns a Config which is initialized with its default values
func New() *Config {
	data := &Config{}

	data.init()

	return data
}

func (d *Config) init() {
	d.vars.Register(value.NewDirective(&d.Directive, "%g"), "directive", "GPOINT_DIRECTIVE", "Conversion directive, e.g. %.3g or %+08G", true)
	d.vars.Register(value.NewInt(&d.Bits, 64), "bits", "GPOINT_BITS", "Parse the input as 32 or 64 bit floating point numbers", false)
	d.vars.Register(value.NewString(&d.Log.Level, "warn"), "log.level", "GPOINT_LOG_LEVEL", "Loglevel: silent, error, warn, info, debug", false)
	d.vars.Register(value.NewString(&d.Log.Format, "console"), "log.format", "GPOINT_LOG_FORMAT", "Format of the log lines: console, json", false)
	d.vars.Register(value.NewBool(&d.Compare, false), "compare", "GPOINT_COMPARE", "Compare each output with the C library's printf", false)
}

// Set sets the value with the given name from its string representation.
func (d *Config) Set(name, val string) error {
	return d.vars.Set(name, val)
}

// Merge merges the values of the known environment variables into the configuration
func (d *Config) Merge() {
	d.vars.Merge()
}

// Validate validates the current state of the Config for completeness and sanity. Errors are
// written to the log. Use resetLogs to indicate to reset the logs prior validation.
func (d *Config) Validate(resetLogs bool) {
	if resetLogs {
		d.vars.ResetLogs()
	}

	d.vars.Validate()

	err := structValidator.Struct(d.Data)
	if err == nil {
		return
	}

	var fieldErrors validator.ValidationErrors
	if !errors.As(err, &fieldErrors) {
		d.vars.Log("error", "directive", "%s", err.Error())
		return
	}

	for _, fe := range fieldErrors {
		// The namespace starts with the name of the struct, e.g. "Data.log.level"
		_, name, _ := strings.Cut(fe.Namespace(), ".")

		if len(fe.Param()) != 0 {
			d.vars.Log("error", name, "must be %s %s", fe.Tag(), fe.Param())
		} else {
			d.vars.Log("error", name, "must be %s", fe.Tag())
		}
	}
}

// Spec returns the parsed directive.
func (d *Config) Spec() (gpoint.Spec, error) {
	return gpoint.ParseSpec(d.Directive)
}

// Messages calls for each log entry the provided callback. The level has the values 'error', 'warn', or 'info'.
// The name is the name of the configuration value, e.g. 'log.level'. The message is the log message.
func (d *Config) Messages(logger func(level string, v vars.Variable, message string)) {
	d.vars.Messages(logger)
}

// HasErrors returns whether there are some error messages in the log.
func (d *Config) HasErrors() bool {
	return d.vars.HasErrors()
}

// Overrides returns a list of configuration value names that have been overriden by an environment variable.
func (d *Config) Overrides() []string {
	return d.vars.Overrides()
}

var structValidator = newValidator()

// newValidator returns a validator that reports fields by their JSON names, which
// are the same as the names of the variables.
func newValidator() *validator.Validate {
	v := validator.New()

	v.RegisterTagNameFunc(func(field reflect.StructField) string {
		name, _, _ := strings.Cut(field.Tag.Get("json"), ",")
		if name == "-" {
			return ""
		}

		return name
	})

	return v
}
