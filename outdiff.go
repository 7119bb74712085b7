package outdiff

import (
	"github.com/erraggy/outdiff/diffconfig"
	"github.com/erraggy/outdiff/jsondiff"
	"github.com/erraggy/outdiff/textdiff"
)

// DiffText compares two texts line by line. It fails only if an input is
// not valid UTF-8 or cfg is invalid.
func DiffText(oldText, newText string, cfg diffconfig.DiffConfig) (*textdiff.Result, error) {
	return textdiff.Diff(oldText, newText, cfg)
}

// DiffJSON compares two JSON documents structurally. It fails if an input is
// malformed, nests deeper than cfg.MaxDepth(), or cfg is invalid.
func DiffJSON(oldJSON, newJSON string, cfg diffconfig.DiffConfig) (*jsondiff.Result, error) {
	return jsondiff.Diff(oldJSON, newJSON, cfg)
}
