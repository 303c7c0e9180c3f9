package extract

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
)

// Naming controls where outputs are written.
type Naming struct {
	// Dir replaces the source directory when set.
	Dir string
	// Basename maps the default output path to a file name inside Dir.
	// Defaults to filepath.Base; ignored when Dir is empty.
	Basename  func(path string) string
	Overwrite bool
}

// pathPlanner assigns output paths for one batch.
type pathPlanner struct {
	source    string
	naming    Naming
	collected map[string]struct{}
}

func newPathPlanner(source string, naming Naming) *pathPlanner {
	return &pathPlanner{source: source, naming: naming, collected: make(map[string]struct{})}
}

// next returns the output path for a stream, or skip=true when overwriting
// is disabled and the file already exists.
func (p *pathPlanner) next(suffix, ext string) (path string, skip bool) {
	path = stripExt(p.source) + "." + suffix + "." + ext
	if p.naming.Dir != "" {
		basename := p.naming.Basename
		if basename == nil {
			basename = filepath.Base
		}
		path = filepath.Join(p.naming.Dir, basename(path))
	}
	if _, taken := p.collected[path]; taken {
		stem := stripExt(path)
		for n := len(p.collected); ; n++ {
			candidate := fmt.Sprintf("%s.%02d.%s", stem, n, ext)
			if _, taken := p.collected[candidate]; !taken {
				path = candidate
				break
			}
		}
	}
	if !p.naming.Overwrite && isFile(path) {
		return path, true
	}
	p.collected[path] = struct{}{}
	return path, false
}

func stripExt(path string) string {
	return strings.TrimSuffix(path, filepath.Ext(path))
}

func isFile(path string) bool {
	info, err := os.Stat(path)
	return err == nil && info.Mode().IsRegular()
}
