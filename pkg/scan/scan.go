// Package scan wires the directory walker, the compiled search
// pattern and the path renderer into the output pipeline: one line per
// matching entry, written to a single buffered sink.
package scan

import (
	"io"
	"io/fs"
	"path/filepath"
	"regexp"
	"unicode"

	"github.com/jmcomets/fd/pkg/errors"
	"github.com/jmcomets/fd/pkg/logging"
	"github.com/jmcomets/fd/pkg/lscolors"
	"github.com/jmcomets/fd/pkg/render"
	"github.com/jmcomets/fd/pkg/walk"
)

var log = logging.GetLogger("scan")

// Options configures a scan run.
type Options struct {
	// Match case-sensitively
	CaseSensitive bool

	// Match against the full relative path instead of the basename
	SearchFullPath bool

	// Include hidden files and directories
	IncludeHidden bool

	// Respect .gitignore / .ignore files
	ReadIgnoreFiles bool

	// Follow symlinked directories
	FollowSymlinks bool

	// Separate results with a null byte instead of a newline
	NullSeparator bool

	// Display absolute instead of relative paths
	Absolute bool

	// Maximum traversal depth (0 = unlimited)
	MaxDepth int

	// Style table for colorized output, or nil to print raw paths
	Colors *lscolors.LsColors
}

// SmartCase reports whether matching should be case-sensitive: either
// the flag is set, or the pattern contains an uppercase rune.
func SmartCase(pattern string, caseSensitiveFlag bool) bool {
	if caseSensitiveFlag {
		return true
	}
	for _, r := range pattern {
		if unicode.IsUpper(r) {
			return true
		}
	}
	return false
}

// CompilePattern compiles the search pattern, honoring the
// case-sensitivity decision.
func CompilePattern(pattern string, caseSensitive bool) (*regexp.Regexp, error) {
	if !caseSensitive {
		pattern = "(?i)" + pattern
	}
	re, err := regexp.Compile(pattern)
	if err != nil {
		return nil, errors.Wrapf(err, errors.ErrBadPattern, "invalid search pattern")
	}
	return re, nil
}

// Pipeline runs the scan: walk, match, render, write.
type Pipeline struct {
	opts     Options
	renderer *render.Renderer
}

// New creates a pipeline. A renderer is only set up when a style table
// was provided.
func New(opts Options) *Pipeline {
	p := &Pipeline{opts: opts}
	if opts.Colors != nil {
		p.renderer = render.New(opts.Colors)
	}
	return p
}

// Run scans root and writes one line per entry matching pattern.
// Display paths are computed relative to base (or kept absolute).
// Zero matches is not an error.
func (p *Pipeline) Run(root, base string, pattern *regexp.Regexp, w io.Writer) error {
	separator := "\n"
	if p.opts.NullSeparator {
		separator = "\x00"
	}

	walkOpts := walk.Options{
		IncludeHidden:   p.opts.IncludeHidden,
		ReadIgnoreFiles: p.opts.ReadIgnoreFiles,
		FollowSymlinks:  p.opts.FollowSymlinks,
		MaxDepth:        p.opts.MaxDepth,
	}

	matched := 0
	err := walk.Walk(root, walkOpts, func(path string, d fs.DirEntry) error {
		rel, err := filepath.Rel(base, path)
		if err != nil {
			// Every walked entry must be expressible relative to the
			// display base; failure here is an invariant violation,
			// not a per-entry condition.
			return errors.Wrapf(err, errors.ErrRelativePath,
				"could not get relative path for directory entry %q", path)
		}

		searchStr := rel
		if !p.opts.SearchFullPath {
			searchStr = filepath.Base(rel)
		}

		loc := pattern.FindStringIndex(searchStr)
		if loc == nil {
			return nil
		}
		matched++

		display := rel
		if p.opts.Absolute {
			display = path
		}

		line := display
		if p.renderer != nil {
			line = p.renderer.Render(display, render.MatchSpan{Start: loc[0], End: loc[1]})
		}

		if _, err := io.WriteString(w, line+separator); err != nil {
			return errors.Wrap(err, errors.ErrWrite, "failed writing search result")
		}
		return nil
	})
	if err != nil {
		return err
	}

	log.Debug().Int("matches", matched).Str("root", root).Msg("Scan complete")
	return nil
}
