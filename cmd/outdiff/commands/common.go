// Package commands provides the cobra command tree for the outdiff CLI.
package commands

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"os"
	"slices"
	"strings"

	"github.com/dustin/go-humanize"
	"github.com/erraggy/outdiff/diffconfig"
	"github.com/erraggy/outdiff/internal/cliutil"
	"github.com/fatih/color"
	"github.com/spf13/cobra"
	"go.yaml.in/yaml/v4"
)

// Output format constants
const (
	FormatText  = "text"
	FormatJSON  = "json"
	FormatYAML  = "yaml"
	FormatDelta = "delta"
)

// StdinFilePath is the special file path used to indicate reading from stdin.
const StdinFilePath = "-"

// Exit statuses, following diff(1).
const (
	ExitSame      = 0
	ExitDifferent = 1
	ExitError     = 2
)

// ErrDifferent is returned by a diff command whose inputs differ. It maps to
// ExitDifferent and is not printed.
var ErrDifferent = errors.New("inputs differ")

// Streams holds the standard streams a command reads and writes.
type Streams struct {
	In  io.Reader
	Out io.Writer
	Err io.Writer
}

// ValidateOutputFormat returns an error unless format is one of allowed.
func ValidateOutputFormat(format string, allowed ...string) error {
	if !slices.Contains(allowed, format) {
		return fmt.Errorf("invalid format '%s'. Valid formats: %s", format, strings.Join(allowed, ", "))
	}
	return nil
}

// OutputStructured writes data to w in the specified format (json or yaml).
func OutputStructured(w io.Writer, data any, format string) error {
	var out []byte
	var err error

	switch format {
	case FormatJSON:
		var buf bytes.Buffer
		enc := json.NewEncoder(&buf)
		enc.SetEscapeHTML(false)
		enc.SetIndent("", "  ")
		err = enc.Encode(data)
		out = buf.Bytes()
	case FormatYAML:
		out, err = yaml.Marshal(data)
	default:
		return fmt.Errorf("invalid format for structured output: %s", format)
	}
	if err != nil {
		return fmt.Errorf("marshaling to %s: %w", format, err)
	}

	cliutil.Writeln(w, strings.TrimSuffix(string(out), "\n"))
	return nil
}

// FormatInputPath returns a display-friendly name for an input path.
func FormatInputPath(path string) string {
	if path == StdinFilePath {
		return "<stdin>"
	}
	return path
}

// readInputs reads the two inputs of a diff. At most one may be stdin.
func readInputs(in io.Reader, oldPath, newPath string) (string, string, error) {
	if oldPath == StdinFilePath && newPath == StdinFilePath {
		return "", "", fmt.Errorf("only one input can be read from stdin")
	}
	oldData, err := readInput(in, oldPath)
	if err != nil {
		return "", "", err
	}
	newData, err := readInput(in, newPath)
	if err != nil {
		return "", "", err
	}
	return oldData, newData, nil
}

func readInput(in io.Reader, path string) (string, error) {
	if path == StdinFilePath {
		data, err := io.ReadAll(in)
		if err != nil {
			return "", fmt.Errorf("reading stdin: %w", err)
		}
		return string(data), nil
	}
	data, err := os.ReadFile(path) //nolint:gosec // G304: comparing user-named files is the command's purpose
	if err != nil {
		return "", fmt.Errorf("reading input: %w", err)
	}
	return string(data), nil
}

// describeInput renders "name (1.2 kB)" for headers.
func describeInput(path, data string) string {
	return fmt.Sprintf("%s (%s)", FormatInputPath(path), humanize.Bytes(uint64(len(data))))
}

// diffFlags are the comparison flags shared by the text and json commands.
type diffFlags struct {
	format            string
	configPath        string
	whitespace        string
	ignoreWhitespace  bool
	ignoreCase        bool
	noModify          bool
	fallbackThreshold int
}

func (f *diffFlags) register(cmd *cobra.Command) {
	fs := cmd.Flags()
	fs.StringVarP(&f.format, "format", "f", FormatText, "output format: text, json, or yaml")
	fs.StringVarP(&f.configPath, "config", "c", "", "YAML file with diff options")
	fs.StringVar(&f.whitespace, "whitespace", string(diffconfig.WhitespaceExact), "whitespace handling: exact, ignore_trailing, or ignore_all")
	fs.BoolVarP(&f.ignoreWhitespace, "ignore-whitespace", "w", false, "ignore all whitespace (same as --whitespace ignore_all)")
	fs.BoolVarP(&f.ignoreCase, "ignore-case", "i", false, "compare case-insensitively")
	fs.BoolVar(&f.noModify, "no-modify", false, "report replacements as a removal plus an addition")
	fs.IntVar(&f.fallbackThreshold, "fallback-threshold", diffconfig.DefaultFallbackThreshold, "input size above which a faster, possibly non-minimal alignment is used (0 disables)")
}

// options layers the configuration sources: config file, then OUTDIFF_*
// environment variables, then flags given on the command line.
func (f *diffFlags) options(cmd *cobra.Command) ([]diffconfig.Option, error) {
	var file diffconfig.File
	if f.configPath != "" {
		loaded, err := diffconfig.LoadFile(f.configPath)
		if err != nil {
			return nil, err
		}
		file = loaded
	}
	env, err := diffconfig.FromEnv(os.LookupEnv)
	if err != nil {
		return nil, err
	}
	opts := file.Merge(env).Options()

	fs := cmd.Flags()
	if fs.Changed("whitespace") {
		opts = append(opts, diffconfig.WithWhitespaceMode(diffconfig.WhitespaceMode(f.whitespace)))
	}
	if f.ignoreWhitespace {
		opts = append(opts, diffconfig.WithWhitespaceMode(diffconfig.WhitespaceIgnoreAll))
	}
	if fs.Changed("ignore-case") {
		opts = append(opts, diffconfig.WithCaseSensitive(!f.ignoreCase))
	}
	if fs.Changed("no-modify") {
		opts = append(opts, diffconfig.WithDetectModifications(!f.noModify))
	}
	if fs.Changed("fallback-threshold") {
		opts = append(opts, diffconfig.WithFallbackThreshold(f.fallbackThreshold))
	}
	return opts, nil
}

// colorEnabled resolves the --color flag for out.
func colorEnabled(mode string, out io.Writer) (bool, error) {
	switch mode {
	case "always":
		return true, nil
	case "never":
		return false, nil
	case "auto", "":
		return out == os.Stdout && !color.NoColor, nil
	default:
		return false, fmt.Errorf("invalid color mode '%s'. Valid modes: auto, always, never", mode)
	}
}

// newConfig applies opts on top of the defaults and attaches logger.
func newConfig(opts []diffconfig.Option, logger diffconfig.Logger) (diffconfig.DiffConfig, error) {
	return diffconfig.New(append(opts, diffconfig.WithLogger(logger))...)
}
