package main

import (
	"errors"
	"flag"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"

	"github.com/datarhei/gpoint"
	"github.com/datarhei/gpoint/config"
	"github.com/datarhei/gpoint/config/vars"
	"github.com/datarhei/gpoint/internal/libc"
	"github.com/datarhei/gpoint/log"
	"github.com/datarhei/gpoint/mem"

	_ "github.com/joho/godotenv/autoload"
	"github.com/sergi/go-diff/diffmatchpatch"
)

func main() {
	os.Exit(run(os.Args[1:], os.Stdin, os.Stdout, os.Stderr))
}

// run executes gprintf and returns the exit code: 0 on success, 1 if an input
// couldn't be parsed or differs from the C library, 2 for usage errors.
func run(args []string, stdin io.Reader, stdout, stderr io.Writer) int {
	cfg := config.New()

	// Merging the defaults with the environment variables
	cfg.Merge()

	flags := flag.NewFlagSet("gprintf", flag.ContinueOnError)
	flags.SetOutput(stderr)
	flags.Usage = func() {
		fmt.Fprintf(flags.Output(), "Usage: gprintf [options] [values...]\n\nFormats the values, or whitespace separated values from stdin, like C's printf.\n\n")
		flags.PrintDefaults()
	}

	directive := flags.String("directive", cfg.Directive, "Conversion directive, e.g. %.3g or %+08G")
	bits := flags.Int("bits", cfg.Bits, "Parse the values as 32 or 64 bit floating point numbers")
	compare := flags.Bool("compare", cfg.Compare, "Compare each output with the C library's printf")
	loglevel := flags.String("loglevel", cfg.Log.Level, "Loglevel: silent, error, warn, info, debug")
	logformat := flags.String("logformat", cfg.Log.Format, "Format of the log lines on stderr: console, json")

	if err := flags.Parse(args); err != nil {
		if errors.Is(err, flag.ErrHelp) {
			return 0
		}

		return 2
	}

	cfg.Set("directive", *directive)
	cfg.Set("bits", strconv.Itoa(*bits))
	cfg.Set("compare", strconv.FormatBool(*compare))
	cfg.Set("log.level", *loglevel)
	cfg.Set("log.format", *logformat)

	// Keep the messages from merging the environment
	cfg.Validate(false)

	level, err := log.ParseLevel(cfg.Log.Level)
	if err != nil {
		level = log.Lwarn
	}

	var output log.Writer

	if cfg.Log.Format == "json" {
		output = log.NewJSONWriter(stderr, level)
	} else {
		output = log.NewConsoleWriter(stderr, level, true)
	}

	logger := log.New("gprintf").WithOutput(output)

	if cfg.HasErrors() {
		cfg.Messages(func(level string, v vars.Variable, message string) {
			if level == "error" {
				logger.Error().WithFields(log.Fields{
					"variable":    v.Name,
					"value":       v.Value,
					"env":         v.EnvName,
					"description": v.Description,
				}).Log(message)
			}
		})

		return 2
	}

	spec, err := cfg.Spec()
	if err != nil {
		logger.Error().WithError(err).Log("Invalid directive")
		return 2
	}

	if cfg.Compare && !libc.Available {
		logger.Error().WithError(libc.ErrUnavailable).Log("Comparing is not possible")
		return 2
	}

	logger.Debug().WithFields(log.Fields{
		"directive": spec.Directive(),
		"bits":      cfg.Bits,
		"compare":   cfg.Compare,
		"overrides": cfg.Overrides(),
	}).Log("Configuration loaded")

	inputs := flags.Args()
	if len(inputs) == 0 {
		buf := mem.Get()
		defer mem.Put(buf)

		if _, err := buf.ReadFrom(stdin); err != nil {
			logger.Error().WithError(err).Log("Reading from stdin failed")
			return 1
		}

		inputs = strings.Fields(buf.String())
	}

	p := &printer{
		spec:    spec,
		bits:    cfg.Bits,
		compare: cfg.Compare,
		logger:  logger,
		differ:  diffmatchpatch.New(),
	}

	exitcode := 0

	for _, input := range inputs {
		s, ok := p.print(input)
		if !ok {
			exitcode = 1
		}

		if len(s) != 0 {
			fmt.Fprintln(stdout, s)
		}
	}

	return exitcode
}

type printer struct {
	spec    gpoint.Spec
	bits    int
	compare bool
	logger  log.Logger
	differ  *diffmatchpatch.DiffMatchPatch
}

// print returns the formatted input and whether it has been parsed and
// matches the C library's output.
func (p *printer) print(input string) (string, bool) {
	logger := p.logger.WithField("input", input)

	v, err := strconv.ParseFloat(input, p.bits)
	if err != nil {
		if !errors.Is(err, strconv.ErrRange) {
			logger.Error().WithError(err).Log("Parsing the value failed")
			return "", false
		}

		logger.Warn().WithField("value", v).Log("Value is out of range")
	}

	s, err := p.spec.Format(v)
	if err != nil {
		logger.Error().WithError(err).Log("Formatting the value failed")
		return "", false
	}

	if !p.compare {
		return s, true
	}

	want, err := libc.Sprintf(p.spec.Directive(), v)
	if err != nil {
		logger.Error().WithError(err).Log("Formatting the value with the C library failed")
		return s, false
	}

	if want != s {
		logger.Warn().WithFields(log.Fields{
			"libc":   want,
			"gpoint": s,
			"diff":   p.diff(want, s),
		}).Log("Output differs from the C library")

		return s, false
	}

	logger.Debug().WithField("output", s).Log("Output matches the C library")

	return s, true
}

// diff returns the changes from a to b as "[-deleted-]{+inserted+}".
func (p *printer) diff(a, b string) string {
	diffs := p.differ.DiffMain(a, b, false)

	var sb strings.Builder

	for _, d := range diffs {
		switch d.Type {
		case diffmatchpatch.DiffDelete:
			sb.WriteString("[-" + d.Text + "-]")
		case diffmatchpatch.DiffInsert:
			sb.WriteString("{+" + d.Text + "+}")
		default:
			sb.WriteString(d.Text)
		}
	}

	return sb.String()
}
