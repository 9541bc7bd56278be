package internal

import (
	"os"
	"path/filepath"
)

// HiveDir returns the per-user hive-mind state directory (~/.hive-mind).
func HiveDir() (string, error) {
	home, err := os.UserHomeDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(home, ".hive-mind"), nil
}

// DefaultIndexPath returns the default location of the session index.
func DefaultIndexPath() (string, error) {
	hiveDir, err := HiveDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(hiveDir, "index.db"), nil
}

// EncodeProjectPath converts a working directory path into the encoded
// directory name used under the projects root: every character outside
// [A-Za-z0-9-] becomes '-'. /Users/me/my.project -> -Users-me-my-project.
func EncodeProjectPath(dir string) string {
	encoded := make([]byte, len(dir))
	for i := 0; i < len(dir); i++ {
		c := dir[i]
		switch {
		case c >= 'a' && c <= 'z', c >= 'A' && c <= 'Z', c >= '0' && c <= '9', c == '-':
			encoded[i] = c
		default:
			encoded[i] = '-'
		}
	}
	return string(encoded)
}

// ProjectSessionsDir returns the raw session log directory for workDir under
// the projects root (~/.claude/projects by default).
func ProjectSessionsDir(projectsRoot, workDir string) (string, error) {
	if projectsRoot == "" {
		home, err := os.UserHomeDir()
		if err != nil {
			return "", err
		}
		projectsRoot = filepath.Join(home, ".claude", "projects")
	}
	return filepath.Join(projectsRoot, EncodeProjectPath(workDir)), nil
}

// DefaultOutputDir returns where extracted sessions for workDir are written.
func DefaultOutputDir(workDir string) string {
	return filepath.Join(workDir, ".hive-mind", "sessions")
}
