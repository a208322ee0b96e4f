// Package render resolves per-path styles against an LsColors table
// and assembles colorized output lines, one styled component at a time.
package render

import (
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/muesli/termenv"

	"github.com/jmcomets/fd/pkg/lscolors"
	"github.com/jmcomets/fd/pkg/logging"
)

var log = logging.GetLogger("render")

// ansiOut pins the ANSI profile so painted styles do not depend on
// whether the process's stdout happens to be a terminal; capability
// detection happens in pkg/ui before a renderer is ever constructed.
var ansiOut = termenv.NewOutput(io.Discard, termenv.WithProfile(termenv.ANSI))

// Metadata carries the file-kind facts style resolution depends on.
type Metadata struct {
	IsSymlink    bool
	IsDir        bool
	IsExecutable bool
}

// Lookup queries the filesystem for a path's metadata. Any lookup
// failure (permission denied, broken symlink target) degrades to
// all-false predicates; styling errors are never propagated.
func Lookup(path string) Metadata {
	var meta Metadata

	if info, err := os.Lstat(path); err == nil {
		meta.IsSymlink = info.Mode()&os.ModeSymlink != 0
	}

	// Stat follows symlinks, so a link to a directory reports IsDir.
	// The symlink predicate still dominates during resolution.
	if info, err := os.Stat(path); err == nil {
		meta.IsDir = info.IsDir()
		meta.IsExecutable = !info.IsDir() && info.Mode().Perm()&0111 != 0
	} else {
		log.Trace().Str("path", path).Err(err).Msg("Metadata lookup failed, rendering unstyled")
	}

	return meta
}

// Resolve returns the style applicable to a path. Type-based styles
// (symlink, directory, executable) always dominate name-based styles.
// The second return value reports whether any style applies; callers
// render unstyled text when it is false.
func Resolve(table *lscolors.LsColors, path string, meta Metadata) (lscolors.Style, bool) {
	switch {
	case meta.IsSymlink:
		return table.Symlink, true
	case meta.IsDir:
		return table.Directory, true
	case meta.IsExecutable:
		return table.Executable, true
	}

	name := filepath.Base(path)
	if style, ok := table.Filenames[name]; ok {
		return style, ok
	}

	if ext := extensionOf(name); ext != "" {
		if style, ok := table.Extensions[ext]; ok {
			return style, ok
		}
	}

	return lscolors.Style{}, false
}

// extensionOf returns the extension of a filename without the leading
// dot. Dotfiles like ".gitignore" have no extension.
func extensionOf(name string) string {
	ext := filepath.Ext(name)
	if ext == "" || ext == name {
		return ""
	}
	return strings.TrimPrefix(ext, ".")
}

// MatchSpan is the half-open [Start, End) byte range of a pattern
// match within the searched string.
type MatchSpan struct {
	Start int
	End   int
}

// Renderer composes styled path strings from an LsColors table.
type Renderer struct {
	colors *lscolors.LsColors
}

// New creates a renderer for the given style table.
func New(colors *lscolors.LsColors) *Renderer {
	return &Renderer{colors: colors}
}

// Render decomposes path into components, resolves a style for each
// component from its cumulative sub-path, and joins the styled
// components with a directory-styled separator.
//
// The match span is carried through for future highlight support but
// applies no differential styling today.
func (r *Renderer) Render(path string, span MatchSpan) string {
	components := splitComponents(path)

	var b strings.Builder
	cumulative := ""
	for i, component := range components {
		cumulative = appendComponent(cumulative, component)

		meta := Lookup(cumulative)
		if style, ok := Resolve(r.colors, cumulative, meta); ok {
			b.WriteString(paint(component, style))
		} else {
			b.WriteString(component)
		}

		// Separators render in the directory style. The root component
		// already ends in a separator, so none is added after it.
		if i < len(components)-1 && component != string(filepath.Separator) {
			b.WriteString(paint(string(filepath.Separator), r.colors.Directory))
		}
	}

	return b.String()
}

// splitComponents decomposes a path into its ordered components: an
// optional root marker, then the named segments. `.` and `..` segments
// are kept literally.
func splitComponents(path string) []string {
	var components []string

	rest := path
	if vol := filepath.VolumeName(path); vol != "" {
		components = append(components, vol)
		rest = path[len(vol):]
	}

	if strings.HasPrefix(rest, string(filepath.Separator)) {
		components = append(components, string(filepath.Separator))
	}

	for _, segment := range strings.Split(rest, string(filepath.Separator)) {
		if segment == "" {
			continue
		}
		components = append(components, segment)
	}

	return components
}

// appendComponent extends a cumulative sub-path with the next component.
func appendComponent(cumulative, component string) string {
	switch {
	case cumulative == "":
		return component
	case strings.HasSuffix(cumulative, string(filepath.Separator)):
		return cumulative + component
	default:
		return cumulative + string(filepath.Separator) + component
	}
}

// paint wraps text in the ANSI escape sequence for the given style.
func paint(text string, style lscolors.Style) string {
	s := ansiOut.String(text).Foreground(ansiColor(style.Color))

	switch style.Decoration {
	case lscolors.Bold:
		s = s.Bold()
	case lscolors.Italic:
		s = s.Italic()
	case lscolors.Underline:
		s = s.Underline()
	}

	return s.String()
}

// ansiColor maps a named color to its termenv ANSI color.
func ansiColor(c lscolors.Color) termenv.Color {
	switch c {
	case lscolors.Black:
		return termenv.ANSIBlack
	case lscolors.Red:
		return termenv.ANSIRed
	case lscolors.Green:
		return termenv.ANSIGreen
	case lscolors.Yellow:
		return termenv.ANSIYellow
	case lscolors.Blue:
		return termenv.ANSIBlue
	case lscolors.Magenta:
		return termenv.ANSIMagenta
	case lscolors.Cyan:
		return termenv.ANSICyan
	default:
		return termenv.ANSIWhite
	}
}
