// Package walk implements the recursive directory traversal feeding
// the scan pipeline: hidden-file filtering, VCS ignore rules, optional
// symlink following and a maximum depth.
package walk

import (
	"io/fs"
	"os"
	"path/filepath"
	"strings"

	gitignore "github.com/sabhiram/go-gitignore"

	"github.com/jmcomets/fd/pkg/logging"
)

var log = logging.GetLogger("walk")

// ignoreFileNames are the per-directory ignore files consulted during
// traversal, in precedence order.
var ignoreFileNames = []string{".gitignore", ".ignore"}

// Options controls the traversal.
type Options struct {
	// Include hidden files and directories (leading dot)
	IncludeHidden bool

	// Respect .gitignore / .ignore files found during traversal
	ReadIgnoreFiles bool

	// Descend into symlinked directories
	FollowSymlinks bool

	// Maximum traversal depth; entries directly under the root are at
	// depth 1. Zero or negative means unlimited.
	MaxDepth int
}

// WalkFunc is invoked for every entry that passes the filters. The
// root itself is never reported. Returning a non-nil error aborts the
// traversal and is returned from Walk.
type WalkFunc func(path string, d fs.DirEntry) error

// ignoreScope is a compiled ignore file anchored at the directory it
// was found in; candidate paths are matched relative to that anchor.
type ignoreScope struct {
	dir     string
	matcher *gitignore.GitIgnore
}

type walker struct {
	opts    Options
	fn      WalkFunc
	visited map[string]struct{}
}

// Walk traverses the tree rooted at root, calling fn for each entry
// that passes the hidden and ignore filters. Unreadable directories
// and other per-entry failures are skipped, never fatal.
func Walk(root string, opts Options, fn WalkFunc) error {
	w := &walker{
		opts:    opts,
		fn:      fn,
		visited: map[string]struct{}{},
	}

	if real, err := filepath.EvalSymlinks(root); err == nil {
		w.visited[real] = struct{}{}
	}

	return w.walkDir(root, 1, nil)
}

func (w *walker) walkDir(dir string, depth int, scopes []ignoreScope) error {
	if w.opts.ReadIgnoreFiles {
		scopes = append(scopes, w.loadIgnoreFiles(dir)...)
	}

	entries, err := os.ReadDir(dir)
	if err != nil {
		log.Debug().Str("dir", dir).Err(err).Msg("Skipping unreadable directory")
		return nil
	}

	for _, entry := range entries {
		name := entry.Name()

		if !w.opts.IncludeHidden && strings.HasPrefix(name, ".") {
			continue
		}

		path := filepath.Join(dir, name)

		if w.opts.ReadIgnoreFiles {
			if entry.IsDir() && name == ".git" {
				continue
			}
			if w.isIgnored(path, scopes) {
				log.Trace().Str("path", path).Msg("Entry excluded by ignore rules")
				continue
			}
		}

		if err := w.fn(path, entry); err != nil {
			return err
		}

		if w.opts.MaxDepth > 0 && depth >= w.opts.MaxDepth {
			continue
		}

		if w.shouldDescend(path, entry) {
			if err := w.walkDir(path, depth+1, scopes); err != nil {
				return err
			}
		}
	}

	return nil
}

// shouldDescend reports whether traversal continues into path. Plain
// directories always descend; symlinked directories descend only when
// symlink following is enabled, guarded against traversal loops.
func (w *walker) shouldDescend(path string, entry fs.DirEntry) bool {
	if entry.IsDir() {
		return true
	}

	if entry.Type()&fs.ModeSymlink == 0 || !w.opts.FollowSymlinks {
		return false
	}

	info, err := os.Stat(path)
	if err != nil || !info.IsDir() {
		return false
	}

	real, err := filepath.EvalSymlinks(path)
	if err != nil {
		return false
	}
	if _, seen := w.visited[real]; seen {
		log.Debug().Str("path", path).Str("target", real).Msg("Skipping symlink cycle")
		return false
	}
	w.visited[real] = struct{}{}

	return true
}

// loadIgnoreFiles compiles the ignore files present in dir.
func (w *walker) loadIgnoreFiles(dir string) []ignoreScope {
	var scopes []ignoreScope
	for _, name := range ignoreFileNames {
		path := filepath.Join(dir, name)
		if _, err := os.Stat(path); err != nil {
			continue
		}
		matcher, err := gitignore.CompileIgnoreFile(path)
		if err != nil {
			log.Debug().Str("path", path).Err(err).Msg("Skipping unparseable ignore file")
			continue
		}
		scopes = append(scopes, ignoreScope{dir: dir, matcher: matcher})
	}
	return scopes
}

// isIgnored matches a path against every ignore scope on the current
// directory chain, relative to each scope's anchor directory.
func (w *walker) isIgnored(path string, scopes []ignoreScope) bool {
	for _, scope := range scopes {
		rel, err := filepath.Rel(scope.dir, path)
		if err != nil {
			continue
		}
		if scope.matcher.MatchesPath(filepath.ToSlash(rel)) {
			return true
		}
	}
	return false
}
