package runlog

import (
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/gotag/gotag/internal/gerr"
)

// ResolvePrefix selects one run-log file under logFolder by filename
// prefix. The literal prefix "latest" (case-insensitive) selects the file
// with the newest modification time in the folder (file creation time is
// not read); any other prefix must match
// exactly one "<uuid>.json" file, otherwise ResolvePrefix fails,
// enumerating every match found.
func ResolvePrefix(logFolder, prefix string) (string, error) {
	entries, err := os.ReadDir(logFolder)
	if err != nil {
		return "", gerr.NewNotFound("run log folder", logFolder)
	}

	type fileInfo struct {
		name    string
		modTime int64
	}
	var files []fileInfo
	for _, e := range entries {
		if e.IsDir() {
			continue
		}
		info, err := e.Info()
		if err != nil {
			continue
		}
		files = append(files, fileInfo{name: e.Name(), modTime: info.ModTime().UnixNano()})
	}

	if strings.EqualFold(prefix, "latest") {
		if len(files) == 0 {
			return "", gerr.NewNotFound("run", fmt.Sprintf("no runs found in %q", logFolder))
		}
		sort.Slice(files, func(i, j int) bool { return files[i].modTime < files[j].modTime })
		return filepath.Join(logFolder, files[len(files)-1].name), nil
	}

	var matches []string
	for _, f := range files {
		if strings.HasPrefix(f.name, prefix) {
			matches = append(matches, f.name)
		}
	}
	sort.Strings(matches)

	switch len(matches) {
	case 0:
		return "", gerr.NewNotFound("run", fmt.Sprintf("no runs found with prefix %q", prefix))
	case 1:
		return filepath.Join(logFolder, matches[0]), nil
	default:
		var lines []string
		for _, m := range matches {
			lines = append(lines, "  "+filepath.Join(logFolder, m))
		}
		return "", gerr.NewInvalidInput("run", fmt.Sprintf(
			"multiple runs found with prefix %q:\n%s", prefix, strings.Join(lines, "\n")), nil)
	}
}
