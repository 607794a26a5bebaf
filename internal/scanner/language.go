package scanner

import (
	"sort"
)

type languageDef struct {
	name       string
	key        string
	extensions []string
}

// knownLanguages maps extensions to languages. Keys match skillset keys
// where a built-in skillset exists.
var knownLanguages = []languageDef{
	{"Go", "go", []string{".go"}},
	{"Rust", "rust", []string{".rs"}},
	{"TypeScript", "typescript", []string{".ts", ".tsx", ".mts", ".cts"}},
	{"JavaScript", "javascript", []string{".js", ".jsx", ".mjs", ".cjs"}},
	{"Solidity", "solidity", []string{".sol"}},
	{"Leo", "leo", []string{".leo"}},
	{"Python", "python", []string{".py"}},
	{"Java", "java", []string{".java"}},
	{"Kotlin", "kotlin", []string{".kt"}},
	{"Ruby", "ruby", []string{".rb"}},
	{"PHP", "php", []string{".php"}},
	{"C", "c", []string{".c", ".h"}},
	{"C++", "cpp", []string{".cpp", ".cc", ".hpp"}},
	{"C#", "csharp", []string{".cs"}},
	{"Swift", "swift", []string{".swift"}},
	{"Scala", "scala", []string{".scala"}},
	{"Elixir", "elixir", []string{".ex", ".exs"}},
	{"Haskell", "haskell", []string{".hs"}},
	{"Lua", "lua", []string{".lua"}},
	{"Shell", "shell", []string{".sh", ".bash", ".zsh"}},
}

var extensionIndex = func() map[string]languageDef {
	m := make(map[string]languageDef)
	for _, l := range knownLanguages {
		for _, ext := range l.extensions {
			m[ext] = l
		}
	}
	return m
}()

// LanguageForExtension returns the language key for a file extension.
func LanguageForExtension(ext string) (string, bool) {
	l, ok := extensionIndex[ext]
	return l.key, ok
}

// detectLanguages aggregates extension counts by language and returns the
// languages sorted by file count plus the total number of source files.
func detectLanguages(extCounts map[string]int) ([]LanguageInfo, int) {
	byKey := make(map[string]*LanguageInfo)
	total := 0

	for ext, count := range extCounts {
		def, ok := extensionIndex[ext]
		if !ok {
			continue
		}
		li, ok := byKey[def.key]
		if !ok {
			li = &LanguageInfo{Name: def.name, Key: def.key}
			byKey[def.key] = li
		}
		li.FileCount += count
		li.Extensions = append(li.Extensions, ext)
		total += count
	}

	if total == 0 {
		return nil, 0
	}

	languages := make([]LanguageInfo, 0, len(byKey))
	for _, li := range byKey {
		li.Percentage = float64(li.FileCount) / float64(total) * 100
		sort.Strings(li.Extensions)
		languages = append(languages, *li)
	}

	// Ties break by key so output is stable across map iteration order.
	sort.Slice(languages, func(i, j int) bool {
		if languages[i].FileCount != languages[j].FileCount {
			return languages[i].FileCount > languages[j].FileCount
		}
		return languages[i].Key < languages[j].Key
	})

	var result []LanguageInfo
	for i, lang := range languages {
		if i >= 5 && lang.Percentage < 5 {
			break
		}
		result = append(result, lang)
	}
	return result, total
}
