package scanner

import (
	"io/fs"
	"path/filepath"
)

const maxFiles = 10000

// skipDirs are never descended into.
var skipDirs = map[string]bool{
	".git":         true,
	"node_modules": true,
	"vendor":       true,
	".venv":        true,
	"__pycache__":  true,
	"dist":         true,
	"build":        true,
	"target":       true,
	".next":        true,
	"out":          true,
	"cache":        true,
}

// Scanner analyzes a project directory to detect its characteristics.
type Scanner struct {
	rootDir string
}

// New creates a new Scanner for the given root directory.
func New(rootDir string) *Scanner {
	return &Scanner{rootDir: rootDir}
}

// Scan analyzes the project and returns detected information.
func (s *Scanner) Scan() (*ProjectInfo, error) {
	info := &ProjectInfo{
		Name: filepath.Base(s.rootDir),
	}

	extCounts := make(map[string]int)
	fileCount := 0

	err := filepath.WalkDir(s.rootDir, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return nil
		}
		if d.IsDir() {
			if path != s.rootDir && skipDirs[d.Name()] {
				return filepath.SkipDir
			}
			return nil
		}

		if fileCount >= maxFiles {
			return filepath.SkipAll
		}
		fileCount++

		if ext := filepath.Ext(path); ext != "" {
			extCounts[ext]++
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	info.Languages, info.SourceFiles = detectLanguages(extCounts)
	info.BuildSystem, info.BuildCommands, info.TestCommands, info.LintCommands = detectBuildSystem(s.rootDir)
	info.Structure = detectStructure(s.rootDir)
	info.Frameworks, info.Dependencies = detectFrameworks(s.rootDir)

	return info, nil
}
