package convert

import (
	"fmt"
	"os"
	"path/filepath"
	"sort"
)

// ExpandPaths resolves command-line arguments to area files. Directories
// contribute their entries matching pattern, sorted; files are kept as given.
//
// Postcondition: Returns at least one path, or a non-nil error.
func ExpandPaths(args []string, pattern string) ([]string, error) {
	var out []string
	for _, arg := range args {
		info, err := os.Stat(arg)
		if err != nil {
			return nil, fmt.Errorf("stat %s: %w", arg, err)
		}
		if !info.IsDir() {
			out = append(out, arg)
			continue
		}
		matches, err := filepath.Glob(filepath.Join(arg, pattern))
		if err != nil {
			return nil, fmt.Errorf("matching %q in %s: %w", pattern, arg, err)
		}
		sort.Strings(matches)
		out = append(out, matches...)
	}
	if len(out) == 0 {
		return nil, fmt.Errorf("no area files found")
	}
	return out, nil
}
