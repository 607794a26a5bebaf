package scanner

import (
	"bufio"
	"encoding/json"
	"os"
	"path/filepath"
	"regexp"
	"slices"
	"strings"
)

// buildSystem holds the detected build tool and its commands.
type buildSystem struct {
	name  string
	build []string
	test  []string
	lint  []string
}

// detectBuildSystem detects the build system and associated commands. The
// first matching manifest wins; a Makefile overrides individual commands.
func detectBuildSystem(rootDir string) (name string, buildCmds, testCmds, lintCmds []string) {
	var bs buildSystem
	switch {
	case fileExists(filepath.Join(rootDir, "go.mod")):
		bs = buildSystem{"go", []string{"go build ./..."}, []string{"go test ./..."}, []string{"go vet ./..."}}
		if fileExists(filepath.Join(rootDir, ".golangci.yml")) || fileExists(filepath.Join(rootDir, ".golangci.yaml")) {
			bs.lint = []string{"golangci-lint run"}
		}
	case fileExists(filepath.Join(rootDir, "Cargo.toml")):
		bs = buildSystem{"cargo", []string{"cargo build"}, []string{"cargo test"}, []string{"cargo clippy -- -D warnings"}}
	case fileExists(filepath.Join(rootDir, "foundry.toml")):
		bs = buildSystem{"foundry", []string{"forge build"}, []string{"forge test"}, []string{"forge fmt --check"}}
	case fileExists(filepath.Join(rootDir, "program.json")):
		bs = buildSystem{"leo", []string{"leo build"}, []string{"leo test"}, nil}
	case fileExists(filepath.Join(rootDir, "package.json")):
		bs = detectNodeBuild(rootDir)
	case fileExists(filepath.Join(rootDir, "pyproject.toml")):
		bs = buildSystem{"pip", []string{"pip install -e ."}, []string{"pytest"}, []string{"ruff check ."}}
	case fileExists(filepath.Join(rootDir, "Makefile")):
		bs = buildSystem{name: "make"}
	default:
		return "", nil, nil, nil
	}

	if fileExists(filepath.Join(rootDir, "Makefile")) {
		applyMakeTargets(&bs, parseMakefileTargets(rootDir))
	}
	return bs.name, bs.build, bs.test, bs.lint
}

func detectNodeBuild(rootDir string) buildSystem {
	bs := buildSystem{name: "npm"}

	data, err := os.ReadFile(filepath.Join(rootDir, "package.json"))
	if err != nil {
		return bs
	}
	var pkg struct {
		Scripts map[string]string `json:"scripts"`
	}
	if err := json.Unmarshal(data, &pkg); err != nil {
		return bs
	}

	switch {
	case fileExists(filepath.Join(rootDir, "pnpm-lock.yaml")):
		bs.name = "pnpm"
	case fileExists(filepath.Join(rootDir, "yarn.lock")):
		bs.name = "yarn"
	case fileExists(filepath.Join(rootDir, "bun.lockb")):
		bs.name = "bun"
	}
	runner := bs.name
	if runner == "npm" {
		runner = "npm run"
	}

	pick := func(candidates ...string) []string {
		for _, c := range candidates {
			if _, ok := pkg.Scripts[c]; ok {
				return []string{runner + " " + c}
			}
		}
		return nil
	}
	bs.build = pick("build", "compile")
	bs.test = pick("test", "test:unit", "vitest", "jest")
	bs.lint = pick("lint", "eslint", "check")
	return bs
}

func applyMakeTargets(bs *buildSystem, targets []string) {
	first := func(candidates ...string) []string {
		for _, c := range candidates {
			if slices.Contains(targets, c) {
				return []string{"make " + c}
			}
		}
		return nil
	}
	if cmd := first("build", "all"); cmd != nil {
		bs.build = cmd
	}
	if cmd := first("test", "check"); cmd != nil {
		bs.test = cmd
	}
	if cmd := first("lint", "vet"); cmd != nil {
		bs.lint = cmd
	}
}

var makeTargetRegex = regexp.MustCompile(`^([a-zA-Z_][a-zA-Z0-9_-]*):`)

func parseMakefileTargets(rootDir string) []string {
	f, err := os.Open(filepath.Join(rootDir, "Makefile"))
	if err != nil {
		return nil
	}
	defer f.Close()

	var targets []string
	sc := bufio.NewScanner(f)
	for sc.Scan() {
		if m := makeTargetRegex.FindStringSubmatch(sc.Text()); len(m) > 1 && !strings.HasPrefix(m[1], ".") {
			targets = append(targets, m[1])
		}
	}
	return targets
}
