package dyntest

import (
	"errors"
	"iter"
	"path/filepath"
	"sort"
	"strings"
	"sync"

	"github.com/bmatcuk/doublestar/v4"
	"github.com/boyter/gocodewalker"
	"github.com/karrick/godirwalk"
	"go.uber.org/zap"
)

// GlobOptions tune glob discovery.
type GlobOptions struct {
	// RespectIgnoreFiles skips files excluded by .gitignore and .ignore
	// files as well as hidden files. Symbolic links are not followed in
	// this mode and matches are collected before the first is yielded.
	RespectIgnoreFiles bool
}

// Glob finds files under the root directory whose relative path matches
// pattern. See GlobIn.
func (t *DynTester) Glob(pattern string) iter.Seq2[Name, string] {
	return t.GlobIn(".", pattern)
}

// GlobIn finds files under base (relative to the root directory) whose path
// relative to base matches pattern, yielding a name derived with PathName
// and the absolute path of each.
//
// Matching is case-insensitive and `*` does not cross a `/`; use `**/` to
// match any number of directories, including none. Symbolic links are
// followed and entries are visited in lexical order per directory.
//
// The walk happens while ranging over the result; breaking out of the loop
// stops it. A malformed pattern panics with a *PatternError as soon as GlobIn
// is called; an unreadable entry panics with a *WalkError during the walk.
func (t *DynTester) GlobIn(base, pattern string) iter.Seq2[Name, string] {
	return t.GlobInWith(base, pattern, GlobOptions{})
}

// GlobInWith is GlobIn with options.
func (t *DynTester) GlobInWith(base, pattern string, opts GlobOptions) iter.Seq2[Name, string] {
	m := mustCompileGlob(pattern)
	dir := t.Resolve(base)
	logger := t.logger.With(zap.String("base", dir), zap.String("pattern", pattern))

	if opts.RespectIgnoreFiles {
		return func(yield func(Name, string) bool) {
			for _, rel := range walkIgnoreAware(dir, m) {
				logger.Debug("discovered", zap.String("path", rel))

				if !yield(PathName(rel), filepath.Join(dir, rel)) {
					return
				}
			}
		}
	}

	return func(yield func(Name, string) bool) {
		err := godirwalk.Walk(dir, &godirwalk.Options{
			FollowSymbolicLinks: true,
			Callback: func(osPathname string, de *godirwalk.Dirent) error {
				isDir, err := de.IsDirOrSymlinkToDir()
				if err != nil {
					return err
				}

				if isDir {
					return nil
				}

				rel, err := filepath.Rel(dir, osPathname)
				if err != nil {
					return err
				}

				if !m.match(rel) {
					return nil
				}

				logger.Debug("discovered", zap.String("path", rel))

				if !yield(PathName(rel), osPathname) {
					return errStopWalk
				}

				return nil
			},
		})
		if err != nil && !errors.Is(err, errStopWalk) {
			panic(&WalkError{Base: dir, Err: err})
		}
	}
}

// errStopWalk ends a walk early when the consumer stops ranging.
var errStopWalk = errors.New("dyntest: stop walk")

// globMatcher matches slash-separated relative paths case-insensitively.
type globMatcher struct {
	pattern string
}

func mustCompileGlob(pattern string) globMatcher {
	lower := strings.ToLower(pattern)
	if !doublestar.ValidatePattern(lower) {
		panic(&PatternError{Pattern: pattern})
	}

	return globMatcher{pattern: lower}
}

func (m globMatcher) match(rel string) bool {
	ok, err := doublestar.Match(m.pattern, strings.ToLower(filepath.ToSlash(rel)))

	return err == nil && ok
}

// walkIgnoreAware collects matching paths relative to dir using an
// ignore-file aware walker, sorted lexically.
func walkIgnoreAware(dir string, m globMatcher) []string {
	queue := make(chan *gocodewalker.File, 100)
	walker := gocodewalker.NewFileWalker(dir, queue)

	var (
		mu      sync.Mutex
		walkErr error
	)

	walker.SetErrorHandler(func(e error) bool {
		mu.Lock()
		defer mu.Unlock()

		if walkErr == nil {
			walkErr = e
		}

		return false
	})

	var (
		matches []string
		wg      sync.WaitGroup
	)

	wg.Add(1)

	go func() {
		defer wg.Done()

		for f := range queue {
			rel, err := filepath.Rel(dir, f.Location)
			if err == nil && m.match(rel) {
				matches = append(matches, rel)
			}
		}
	}()

	if err := walker.Start(); err != nil {
		panic(&WalkError{Base: dir, Err: err})
	}

	wg.Wait()

	if walkErr != nil {
		panic(&WalkError{Base: dir, Err: walkErr})
	}

	sort.Strings(matches)

	return matches
}
