// pkg/compress/gitignore.go
package compress

import (
	"os"
	"path/filepath"
	"strings"

	ignore "github.com/sabhiram/go-gitignore"
)

// ignoreSet matches paths against the .gitignore files of a directory tree.
// The tree is pre-scanned once; each .gitignore applies to paths below its
// own directory, checked from the root down.
type ignoreSet struct {
	matchers map[string]*ignore.GitIgnore // key: dir path relative to root ("" = root)
}

// loadIgnoreSet compiles every .gitignore found under baseDir.
// Returns nil when the tree has none, so callers can skip filtering entirely.
func loadIgnoreSet(baseDir string) (*ignoreSet, error) {
	set := &ignoreSet{matchers: make(map[string]*ignore.GitIgnore)}

	err := filepath.Walk(filepath.Clean(baseDir), func(path string, info os.FileInfo, err error) error {
		if err != nil || info.IsDir() || filepath.Base(path) != ".gitignore" {
			return nil
		}
		relDir, relErr := filepath.Rel(baseDir, filepath.Dir(path))
		if relErr != nil {
			return nil
		}
		if relDir == "." {
			relDir = ""
		}
		matcher, compileErr := ignore.CompileIgnoreFile(path)
		if compileErr != nil {
			// Malformed .gitignore files are skipped, matching git's leniency
			return nil
		}
		set.matchers[filepath.ToSlash(relDir)] = matcher
		return nil
	})
	if err != nil {
		return nil, err
	}

	if len(set.matchers) == 0 {
		return nil, nil
	}
	return set, nil
}

// Match reports whether the file at relPath (relative to the root) is ignored
func (s *ignoreSet) Match(relPath string) bool {
	if s == nil {
		return false
	}
	relPath = filepath.ToSlash(relPath)

	for _, dir := range ancestorDirs(relPath) {
		matcher, ok := s.matchers[dir]
		if !ok {
			continue
		}
		pathToCheck := relPath
		if dir != "" {
			pathToCheck = strings.TrimPrefix(relPath, dir+"/")
		}
		if matcher.MatchesPath(pathToCheck) {
			return true
		}
	}
	return false
}

// MatchDir reports whether a whole directory subtree can be pruned.
// Only explicit directory patterns ("build/") prune; file patterns that happen
// to match a directory name ("*.log") do not.
func (s *ignoreSet) MatchDir(relPath string) bool {
	if s == nil {
		return false
	}
	return s.Match(relPath+"/") && !s.Match(relPath)
}

// ancestorDirs lists the directories from the root to the path's parent.
// For "a/b/c.jpg" it returns ["", "a", "a/b"].
func ancestorDirs(relPath string) []string {
	dirs := []string{""}
	parent := filepath.ToSlash(filepath.Dir(relPath))
	if parent == "." || parent == "" {
		return dirs
	}
	current := ""
	for _, part := range strings.Split(parent, "/") {
		if part == "" {
			continue
		}
		if current == "" {
			current = part
		} else {
			current += "/" + part
		}
		dirs = append(dirs, current)
	}
	return dirs
}
