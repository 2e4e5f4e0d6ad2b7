// Package vars is a registry of named configuration values with their
// environment variables and the messages collected while setting and
// validating them.
package vars

import (
	"fmt"
	"os"

	"github.com/datarhei/gpoint/config/value"
)

type variable struct {
	value       value.Value // The actual value
	name        string      // A name for this value
	envName     string      // The environment variable that corresponds to this value
	description string      // A desriptions for this value
	required    bool        // Whether a non-empty value is required
	merged      bool        // Whether this value has been replaced by its corresponding environment variable
}

type Variable struct {
	Value       string
	Name        string
	EnvName     string
	Description string
	Merged      bool
}

type message struct {
	message  string   // The log message
	variable Variable // The config field this message refers to
	level    string   // The loglevel for this message
}

type Variables struct {
	vars []*variable
	logs []message
}

func (vs *Variables) Register(val value.Value, name, envName string, description string, required bool) {
	vs.vars = append(vs.vars, &variable{
		value:       val,
		name:        name,
		envName:     envName,
		description: description,
		required:    required,
	})
}

func (vs *Variables) Set(name, val string) error {
	v := vs.findVariable(name)
	if v == nil {
		return fmt.Errorf("variable %q not found", name)
	}

	return v.value.Set(val)
}

func (vs *Variables) Log(level, name string, format string, args ...interface{}) {
	v := vs.findVariable(name)
	if v == nil {
		return
	}

	l := message{
		message: fmt.Sprintf(format, args...),
		variable: Variable{
			Value:       v.value.String(),
			Name:        v.name,
			EnvName:     v.envName,
			Description: v.description,
			Merged:      v.merged,
		},
		level: level,
	}

	vs.logs = append(vs.logs, l)
}

// Merge sets the values from their environment variables, if present.
func (vs *Variables) Merge() {
	for _, v := range vs.vars {
		if len(v.envName) == 0 {
			continue
		}

		envval, ok := os.LookupEnv(v.envName)
		if !ok {
			continue
		}

		v.merged = true

		if err := v.value.Set(envval); err != nil {
			vs.Log("error", v.name, "invalid value %q from %s: %s", envval, v.envName, err.Error())
		}
	}
}

func (vs *Variables) Validate() {
	for _, v := range vs.vars {
		vs.Log("info", v.name, "%s", "")

		err := v.value.Validate()
		if err != nil {
			vs.Log("error", v.name, "%s", err.Error())
		}

		if v.required && v.value.IsEmpty() {
			vs.Log("error", v.name, "a value is required")
		}
	}
}

func (vs *Variables) ResetLogs() {
	vs.logs = nil
}

func (vs *Variables) Messages(logger func(level string, v Variable, message string)) {
	for _, l := range vs.logs {
		logger(l.level, l.variable, l.message)
	}
}

func (vs *Variables) HasErrors() bool {
	for _, l := range vs.logs {
		if l.level == "error" {
			return true
		}
	}

	return false
}

func (vs *Variables) Overrides() []string {
	overrides := []string{}

	for _, v := range vs.vars {
		if v.merged {
			overrides = append(overrides, v.name)
		}
	}

	return overrides
}

func (vs *Variables) findVariable(name string) *variable {
	for _, v := range vs.vars {
		if v.name == name {
			return v
		}
	}

	return nil
}
