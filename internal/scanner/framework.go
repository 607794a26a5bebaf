package scanner

import (
	"encoding/json"
	"os"
	"path/filepath"
	"regexp"
	"sort"
	"strings"
)

// frameworkPattern maps a manifest substring to a framework tag.
type frameworkPattern struct {
	tag     string
	pattern string
}

var goFrameworks = []frameworkPattern{
	{"gin", "github.com/gin-gonic/gin"},
	{"echo", "github.com/labstack/echo"},
	{"fiber", "github.com/gofiber/fiber"},
	{"chi", "github.com/go-chi/chi"},
	{"gorilla", "github.com/gorilla/mux"},
	{"cobra", "github.com/spf13/cobra"},
	{"urfave-cli", "github.com/urfave/cli"},
	{"gorm", "gorm.io/gorm"},
	{"sqlx", "github.com/jmoiron/sqlx"},
	{"ent", "entgo.io/ent"},
	{"testify", "github.com/stretchr/testify"},
}

var rustFrameworks = []frameworkPattern{
	{"tokio", "tokio"},
	{"async-std", "async-std"},
	{"axum", "axum"},
	{"actix-web", "actix-web"},
	{"rocket", "rocket"},
	{"warp", "warp"},
	{"hyper", "hyper"},
	{"clap", "clap"},
	{"serde", "serde"},
	{"sqlx", "sqlx"},
	{"diesel", "diesel"},
	{"sea-orm", "sea-orm"},
}

// nodeFrameworks are matched against exact dependency names.
var nodeFrameworks = map[string]string{
	"next":                    "next",
	"react":                   "react",
	"vue":                     "vue",
	"nuxt":                    "nuxt",
	"svelte":                  "svelte",
	"@sveltejs/kit":           "sveltekit",
	"express":                 "express",
	"fastify":                 "fastify",
	"@nestjs/core":            "nestjs",
	"hono":                    "hono",
	"prisma":                  "prisma",
	"drizzle-orm":             "drizzle",
	"jest":                    "jest",
	"vitest":                  "vitest",
	"mocha":                   "mocha",
	"hardhat":                 "hardhat",
	"@angular/core":           "angular",
	"@openzeppelin/contracts": "openzeppelin",
}

var pythonFrameworks = []frameworkPattern{
	{"django", "django"},
	{"flask", "flask"},
	{"fastapi", "fastapi"},
	{"pytest", "pytest"},
	{"sqlalchemy", "sqlalchemy"},
	{"pydantic", "pydantic"},
}

var goRequireRegex = regexp.MustCompile(`(?m)^\s*(?:require\s+)?([a-z0-9.\-]+\.[a-z]+/[^\s]+)\s+v[0-9]`)

// detectFrameworks checks every ecosystem manifest in the project root and
// returns the sorted framework tags plus the raw dependency list.
func detectFrameworks(rootDir string) (frameworks []string, dependencies []string) {
	tags := make(map[string]bool)

	if data, err := os.ReadFile(filepath.Join(rootDir, "go.mod")); err == nil {
		content := string(data)
		matchPatterns(content, goFrameworks, tags)
		for _, m := range goRequireRegex.FindAllStringSubmatch(content, -1) {
			dependencies = append(dependencies, m[1])
		}
	}

	if data, err := os.ReadFile(filepath.Join(rootDir, "Cargo.toml")); err == nil {
		matchPatterns(cargoDependencies(string(data)), rustFrameworks, tags)
	}

	if deps := packageDependencies(rootDir); len(deps) > 0 {
		for _, dep := range deps {
			if tag, ok := nodeFrameworks[dep]; ok {
				tags[tag] = true
			}
		}
		dependencies = append(dependencies, deps...)
	}

	var pyContent strings.Builder
	for _, f := range []string{"pyproject.toml", "requirements.txt", "setup.py", "Pipfile"} {
		if data, err := os.ReadFile(filepath.Join(rootDir, f)); err == nil {
			pyContent.Write(data)
			pyContent.WriteByte('\n')
		}
	}
	if pyContent.Len() > 0 {
		matchPatterns(strings.ToLower(pyContent.String()), pythonFrameworks, tags)
	}

	if fileExists(filepath.Join(rootDir, "foundry.toml")) {
		tags["foundry"] = true
	}
	if matches, _ := filepath.Glob(filepath.Join(rootDir, "hardhat.config.*")); len(matches) > 0 {
		tags["hardhat"] = true
	}
	if fileExists(filepath.Join(rootDir, "program.json")) {
		tags["aleo"] = true
	}

	for tag := range tags {
		frameworks = append(frameworks, tag)
	}
	sort.Strings(frameworks)
	return frameworks, dependencies
}

func matchPatterns(content string, patterns []frameworkPattern, tags map[string]bool) {
	for _, fw := range patterns {
		if strings.Contains(content, fw.pattern) {
			tags[fw.tag] = true
		}
	}
}

// cargoDependencies returns the dependency table sections of a Cargo.toml so
// package metadata like the crate name does not produce false matches.
func cargoDependencies(manifest string) string {
	var b strings.Builder
	inDeps := false
	for _, line := range strings.Split(manifest, "\n") {
		trimmed := strings.TrimSpace(line)
		if strings.HasPrefix(trimmed, "[") {
			inDeps = strings.Contains(trimmed, "dependencies")
			continue
		}
		if inDeps {
			b.WriteString(trimmed)
			b.WriteByte('\n')
		}
	}
	return b.String()
}

func packageDependencies(rootDir string) []string {
	data, err := os.ReadFile(filepath.Join(rootDir, "package.json"))
	if err != nil {
		return nil
	}

	var pkg struct {
		Dependencies    map[string]string `json:"dependencies"`
		DevDependencies map[string]string `json:"devDependencies"`
	}
	if err := json.Unmarshal(data, &pkg); err != nil {
		return nil
	}

	seen := make(map[string]bool)
	var deps []string
	for _, m := range []map[string]string{pkg.Dependencies, pkg.DevDependencies} {
		for dep := range m {
			if !seen[dep] {
				seen[dep] = true
				deps = append(deps, dep)
			}
		}
	}
	sort.Strings(deps)
	return deps
}
