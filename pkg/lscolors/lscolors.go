// Package lscolors parses the LS_COLORS environment variable into a
// structured style table.
//
// The LS_COLORS format is a colon-separated list of `pattern=code`
// pairs, where the code is a semicolon-separated ANSI sequence like
// `01;34`. Parsing is total: malformed entries are dropped and never
// surface as errors.
package lscolors

import (
	"strings"

	"github.com/jmcomets/fd/pkg/logging"
)

var log = logging.GetLogger("lscolors")

// Color is one of the eight named terminal foreground colors.
type Color uint8

const (
	Black Color = iota
	Red
	Green
	Yellow
	Blue
	Magenta
	Cyan
	White
)

// String returns the color name
func (c Color) String() string {
	switch c {
	case Black:
		return "black"
	case Red:
		return "red"
	case Green:
		return "green"
	case Yellow:
		return "yellow"
	case Blue:
		return "blue"
	case Magenta:
		return "magenta"
	case Cyan:
		return "cyan"
	default:
		return "white"
	}
}

// Decoration is a text decoration applied alongside a color.
type Decoration uint8

const (
	Normal Decoration = iota
	Bold
	Italic
	Underline
)

// String returns the decoration name
func (d Decoration) String() string {
	switch d {
	case Bold:
		return "bold"
	case Italic:
		return "italic"
	case Underline:
		return "underline"
	default:
		return "normal"
	}
}

// Style pairs a foreground color with a text decoration. A Style is
// always fully determined; there is no partial or unset state.
type Style struct {
	Color      Color
	Decoration Decoration
}

// lsCodes is the set of two-letter codes LS_COLORS may carry. Only
// di/ln/ex map to table fields; the rest are accepted and ignored so
// that a stock dircolors database parses cleanly.
var lsCodes = []string{
	"no", "fi", "rs", "di", "ln", "or", "mi", "pi",
	"so", "bd", "cd", "do", "ex", "lc", "rc", "ec",
	"su", "sg", "st", "ow", "tw", "ca", "mh", "cl",
}

// LsColors defines how different file system entries are styled.
// It is constructed once and read-only afterwards.
type LsColors struct {
	// Style for directories
	Directory Style

	// Style for symbolic links
	Symlink Style

	// Style for executable files
	Executable Style

	// Styles for specific file extensions (keys carry no leading dot)
	Extensions map[string]Style

	// Styles for exact filenames
	Filenames map[string]Style
}

// Default returns the style table used when LS_COLORS is absent.
func Default() *LsColors {
	return &LsColors{
		Directory:  Style{Blue, Bold},
		Symlink:    Style{Cyan, Normal},
		Executable: Style{Red, Bold},
		Extensions: map[string]Style{},
		Filenames:  map[string]Style{},
	}
}

// Parse builds an LsColors table from an LS_COLORS specification
// string. It never fails: entries that cannot be understood are
// skipped, and the empty string yields the default table.
func Parse(spec string) *LsColors {
	table := Default()
	for _, entry := range strings.Split(spec, ":") {
		table.addEntry(entry)
	}
	return table
}

// parseDecoration maps a single token to a text decoration.
func parseDecoration(token string) (Decoration, bool) {
	switch token {
	case "0", "00":
		return Normal, true
	case "1", "01":
		return Bold, true
	case "3", "03":
		return Italic, true
	case "4", "04":
		return Underline, true
	}
	return Normal, false
}

// parseColor maps a color numeral to one of the eight named colors.
// Unknown numerals fall back to White rather than failing.
func parseColor(token string) Color {
	switch token {
	case "30":
		return Black
	case "31":
		return Red
	case "32":
		return Green
	case "33":
		return Yellow
	case "34":
		return Blue
	case "35":
		return Magenta
	case "36":
		return Cyan
	}
	return White
}

// parseStyle parses an ANSI code sequence like `01;34` into a Style.
// The decoration token may precede or follow the color token.
// Indexed-color sequences (`38;5;N`) are recognized but rejected.
func parseStyle(code string) (Style, bool) {
	tokens := strings.Split(code, ";")
	if len(tokens) == 0 || tokens[0] == "" {
		return Style{}, false
	}

	decoration, haveDecoration := parseDecoration(tokens[0])

	// The color token is the first token, unless that token was a
	// decoration, in which case the color follows it.
	colorIdx := 0
	if haveDecoration {
		colorIdx = 1
	}

	// 256-color sequences are not supported
	if len(tokens) > colorIdx+1 && tokens[colorIdx] == "38" && tokens[colorIdx+1] == "5" {
		return Style{}, false
	}

	color := White
	if colorIdx < len(tokens) {
		color = parseColor(tokens[colorIdx])
	}

	if !haveDecoration {
		// The decoration may appear anywhere in the sequence, e.g. `34;01`
		for _, token := range tokens {
			if d, ok := parseDecoration(token); ok {
				decoration = d
				haveDecoration = true
				break
			}
		}
	}

	if !haveDecoration {
		decoration = Normal
	}

	return Style{Color: color, Decoration: decoration}, true
}

// addEntry processes a single `pattern=code` entry. Later entries win
// over earlier ones for the same key.
func (l *LsColors) addEntry(input string) {
	parts := strings.Split(strings.TrimSpace(input), "=")
	if len(parts) != 2 || parts[0] == "" || parts[1] == "" {
		return
	}
	pattern, code := parts[0], parts[1]

	style, ok := parseStyle(code)
	if !ok {
		log.Trace().Str("entry", input).Msg("Dropping entry with unparseable style code")
		return
	}

	for _, known := range lsCodes {
		if known == pattern {
			switch pattern {
			case "di":
				l.Directory = style
			case "ln":
				l.Symlink = style
			case "ex":
				l.Executable = style
			}
			// Recognized codes without a table field are no-ops
			return
		}
	}

	switch {
	case strings.HasPrefix(pattern, "*."):
		l.Extensions[pattern[2:]] = style
	case strings.HasPrefix(pattern, "*"):
		l.Filenames[pattern[1:]] = style
	default:
		log.Trace().Str("entry", input).Msg("Dropping entry with unknown pattern")
	}
}
