package textdiff

import "strings"

// Line is one comparable unit of text.
type Line struct {
	// Number is the 1-based line number in the source text
	Number int `json:"number" yaml:"number"`
	// Text is the line content without its terminator
	Text string `json:"text" yaml:"text"`
}

// Split breaks text into lines on "\n", dropping a "\r" that precedes the
// terminator. A final line without terminator is kept; a final terminator
// does not start an extra empty line. The empty string has no lines.
func Split(text string) []Line {
	if text == "" {
		return nil
	}
	lines := make([]Line, 0, strings.Count(text, "\n")+1)
	for n := 1; text != ""; n++ {
		var line string
		if i := strings.IndexByte(text, '\n'); i >= 0 {
			line, text = text[:i], text[i+1:]
		} else {
			line, text = text, ""
		}
		lines = append(lines, Line{Number: n, Text: strings.TrimSuffix(line, "\r")})
	}
	return lines
}
