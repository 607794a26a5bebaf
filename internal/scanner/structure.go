package scanner

import (
	"os"
	"path/filepath"
	"strings"
)

var sourceDirNames = map[string]bool{
	"src":        true,
	"lib":        true,
	"pkg":        true,
	"internal":   true,
	"app":        true,
	"cmd":        true,
	"core":       true,
	"contracts":  true,
	"programs":   true,
	"components": true,
}

var testDirNames = map[string]bool{
	"test":        true,
	"tests":       true,
	"spec":        true,
	"specs":       true,
	"__tests__":   true,
	"testdata":    true,
	"e2e":         true,
	"integration": true,
}

var docDirNames = map[string]bool{
	"docs":          true,
	"doc":           true,
	"documentation": true,
}

var configPatterns = []string{
	".promptctl.yaml",
	".promptctl.yml",
	".promptctl-presets.yaml",
	"go.mod",
	"Cargo.toml",
	"package.json",
	"tsconfig.json",
	"foundry.toml",
	"hardhat.config.*",
	"program.json",
	".golangci.yml",
	".golangci.yaml",
	"rustfmt.toml",
	".eslintrc*",
	"docker-compose.yml",
	"docker-compose.yaml",
	"Dockerfile",
}

// entryPointCandidates are checked relative to the project root.
var entryPointCandidates = []string{
	"main.go",
	"src/main.rs",
	"src/lib.rs",
	"src/main.leo",
	"index.ts",
	"src/index.ts",
	"src/main.ts",
	"index.js",
	"src/index.js",
	"main.py",
}

// detectStructure analyzes the project directory layout.
func detectStructure(rootDir string) ProjectStructure {
	structure := ProjectStructure{}

	entries, err := os.ReadDir(rootDir)
	if err != nil {
		return structure
	}

	for _, entry := range entries {
		name := entry.Name()
		if !entry.IsDir() {
			for _, pattern := range configPatterns {
				if matched, _ := filepath.Match(pattern, name); matched {
					structure.ConfigFiles = append(structure.ConfigFiles, name)
					break
				}
			}
			continue
		}
		if strings.HasPrefix(name, ".") {
			continue
		}
		switch {
		case sourceDirNames[name]:
			structure.SourceDirs = append(structure.SourceDirs, name)
		case testDirNames[name]:
			structure.TestDirs = append(structure.TestDirs, name)
		case docDirNames[name]:
			structure.DocDirs = append(structure.DocDirs, name)
		}
	}

	structure.EntryPoints = detectEntryPoints(rootDir)
	structure.HasDocker = fileExists(filepath.Join(rootDir, "Dockerfile")) ||
		fileExists(filepath.Join(rootDir, "docker-compose.yml")) ||
		fileExists(filepath.Join(rootDir, "docker-compose.yaml"))
	structure.HasCI, structure.CISystem = detectCI(rootDir)

	return structure
}

func detectEntryPoints(rootDir string) []string {
	var entryPoints []string

	cmdDir := filepath.Join(rootDir, "cmd")
	if entries, err := os.ReadDir(cmdDir); err == nil {
		for _, entry := range entries {
			if entry.IsDir() && fileExists(filepath.Join(cmdDir, entry.Name(), "main.go")) {
				entryPoints = append(entryPoints, "cmd/"+entry.Name()+"/main.go")
			}
		}
	}

	for _, candidate := range entryPointCandidates {
		if fileExists(filepath.Join(rootDir, filepath.FromSlash(candidate))) {
			entryPoints = append(entryPoints, candidate)
		}
	}
	return entryPoints
}

func detectCI(rootDir string) (hasCI bool, ciSystem string) {
	checks := []struct {
		path   string
		system string
	}{
		{".github/workflows", "github-actions"},
		{".gitlab-ci.yml", "gitlab-ci"},
		{".circleci/config.yml", "circleci"},
		{".travis.yml", "travis-ci"},
		{"Jenkinsfile", "jenkins"},
	}
	for _, c := range checks {
		if fileExists(filepath.Join(rootDir, filepath.FromSlash(c.path))) {
			return true, c.system
		}
	}
	return false, ""
}

func fileExists(path string) bool {
	_, err := os.Stat(path)
	return err == nil
}
