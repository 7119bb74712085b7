package diffconfig

import (
	"fmt"
	"os"
	"slices"
	"strconv"
	"strings"

	"github.com/erraggy/outdiff/differrors"
	"go.yaml.in/yaml/v4"
)

// File is the on-disk form of a DiffConfig. Unset fields keep the value of
// the configuration the file is applied to.
type File struct {
	WhitespaceMode        *string `yaml:"whitespace_mode,omitempty"         json:"whitespace_mode,omitempty"`
	CaseSensitive         *bool   `yaml:"case_sensitive,omitempty"          json:"case_sensitive,omitempty"`
	DetectModifications   *bool   `yaml:"detect_modifications,omitempty"    json:"detect_modifications,omitempty"`
	ArrayDiffStrategy     *string `yaml:"array_diff_strategy,omitempty"     json:"array_diff_strategy,omitempty"`
	MaxDepth              *int    `yaml:"max_depth,omitempty"               json:"max_depth,omitempty"`
	SizeFallbackThreshold *int    `yaml:"size_fallback_threshold,omitempty" json:"size_fallback_threshold,omitempty"`
}

// fileKeys lists the recognised option names in a config file.
var fileKeys = []string{
	"whitespace_mode",
	"case_sensitive",
	"detect_modifications",
	"array_diff_strategy",
	"max_depth",
	"size_fallback_threshold",
}

// ParseYAML decodes a YAML config document. Unknown keys are rejected so
// that typos do not silently fall back to defaults.
func ParseYAML(data []byte) (File, error) {
	var raw map[string]any
	if err := yaml.Unmarshal(data, &raw); err != nil {
		return File{}, &differrors.ConfigError{Message: "invalid YAML", Cause: err}
	}
	for key := range raw {
		if !slices.Contains(fileKeys, key) {
			return File{}, &differrors.ConfigError{Option: key, Message: "unknown option"}
		}
	}

	var f File
	if err := yaml.Unmarshal(data, &f); err != nil {
		return File{}, &differrors.ConfigError{Message: "invalid option value", Cause: err}
	}
	return f, nil
}

// LoadFile reads and decodes a YAML config file.
func LoadFile(path string) (File, error) {
	data, err := os.ReadFile(path) //nolint:gosec // G304: path is user-provided config location
	if err != nil {
		return File{}, &differrors.ConfigError{Option: "config", Value: path, Message: "cannot read config file", Cause: err}
	}
	return ParseYAML(data)
}

// Options converts the set fields of f into options.
func (f File) Options() []Option {
	var opts []Option
	if f.WhitespaceMode != nil {
		opts = append(opts, WithWhitespaceMode(WhitespaceMode(*f.WhitespaceMode)))
	}
	if f.CaseSensitive != nil {
		opts = append(opts, WithCaseSensitive(*f.CaseSensitive))
	}
	if f.DetectModifications != nil {
		opts = append(opts, WithDetectModifications(*f.DetectModifications))
	}
	if f.ArrayDiffStrategy != nil {
		opts = append(opts, WithArrayStrategy(ArrayStrategy(*f.ArrayDiffStrategy)))
	}
	if f.MaxDepth != nil {
		opts = append(opts, WithMaxDepth(*f.MaxDepth))
	}
	if f.SizeFallbackThreshold != nil {
		opts = append(opts, WithFallbackThreshold(*f.SizeFallbackThreshold))
	}
	return opts
}

// EnvPrefix prefixes every environment variable read by FromEnv.
const EnvPrefix = "OUTDIFF_"

// FromEnv builds a File from OUTDIFF_* variables (OUTDIFF_WHITESPACE_MODE,
// OUTDIFF_MAX_DEPTH, ...). lookup is usually os.LookupEnv; it is a
// parameter so that nothing here reads process state implicitly.
func FromEnv(lookup func(string) (string, bool)) (File, error) {
	var f File
	for _, key := range fileKeys {
		name := EnvPrefix + strings.ToUpper(key)
		v, ok := lookup(name)
		if !ok || v == "" {
			continue
		}
		switch key {
		case "whitespace_mode":
			f.WhitespaceMode = &v
		case "array_diff_strategy":
			f.ArrayDiffStrategy = &v
		case "case_sensitive", "detect_modifications":
			b, err := strconv.ParseBool(v)
			if err != nil {
				return File{}, &differrors.ConfigError{Option: name, Value: v, Message: "expected a boolean", Cause: err}
			}
			if key == "case_sensitive" {
				f.CaseSensitive = &b
			} else {
				f.DetectModifications = &b
			}
		case "max_depth", "size_fallback_threshold":
			n, err := strconv.Atoi(v)
			if err != nil {
				return File{}, &differrors.ConfigError{Option: name, Value: v, Message: "expected an integer", Cause: err}
			}
			if key == "max_depth" {
				f.MaxDepth = &n
			} else {
				f.SizeFallbackThreshold = &n
			}
		default:
			return File{}, fmt.Errorf("diffconfig: unhandled key %q", key)
		}
	}
	return f, nil
}

// Merge returns f with every field set in other taking precedence.
func (f File) Merge(other File) File {
	if other.WhitespaceMode != nil {
		f.WhitespaceMode = other.WhitespaceMode
	}
	if other.CaseSensitive != nil {
		f.CaseSensitive = other.CaseSensitive
	}
	if other.DetectModifications != nil {
		f.DetectModifications = other.DetectModifications
	}
	if other.ArrayDiffStrategy != nil {
		f.ArrayDiffStrategy = other.ArrayDiffStrategy
	}
	if other.MaxDepth != nil {
		f.MaxDepth = other.MaxDepth
	}
	if other.SizeFallbackThreshold != nil {
		f.SizeFallbackThreshold = other.SizeFallbackThreshold
	}
	return f
}
