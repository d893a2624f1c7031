package dyntest

import (
	"path"
	"path/filepath"
	"strings"

	"github.com/rlch/dyntest/runner"
)

// Delimiter joins group names and the leaf name of a test.
const Delimiter = runner.Delimiter

// Name is a test name, or a fragment of one. String constants convert to
// Name implicitly; use Name(s) for string values and PathName for paths.
type Name string

// PathName derives a name from a relative file path: the extension is
// dropped and each path component becomes one name segment.
//
//	PathName("cases/parse/empty.json") == "cases::parse::empty"
func PathName(rel string) Name {
	p := filepath.ToSlash(rel)

	dir, file := path.Split(p)
	if ext := path.Ext(file); ext != "" && ext != file {
		file = strings.TrimSuffix(file, ext)
	}

	segments := make([]string, 0, strings.Count(dir, "/")+1)

	for _, s := range strings.Split(dir+file, "/") {
		if s == "" || s == "." {
			continue
		}

		segments = append(segments, s)
	}

	return Name(strings.Join(segments, Delimiter))
}

func (n Name) String() string {
	return string(n)
}
