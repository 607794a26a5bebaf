package compose

import (
	"bytes"
	"strings"
	"text/template"

	"github.com/debendraoli/promptctl/internal/scanner"
)

const projectContextTemplate = `
{{- if .Languages}}
- **Languages:** {{range $i, $l := .Languages}}{{if $i}}, {{end}}{{$l.Name}} ({{printf "%.0f" $l.Percentage}}%){{end}}
{{- end}}
{{- if .Frameworks}}
- **Frameworks:** {{join .Frameworks ", "}}
{{- end}}
{{- if .BuildSystem}}
- **Build system:** {{.BuildSystem}}
{{- end}}
{{- if .Structure.SourceDirs}}
- **Source directories:** {{code .Structure.SourceDirs}}
{{- end}}
{{- if .Structure.TestDirs}}
- **Test directories:** {{code .Structure.TestDirs}}
{{- end}}
{{- if .Structure.EntryPoints}}
- **Entry points:** {{code .Structure.EntryPoints}}
{{- end}}
{{- if .BuildCommands}}
- **Build:** {{code .BuildCommands}}
{{- end}}
{{- if .TestCommands}}
- **Test:** {{code .TestCommands}}
{{- end}}
{{- if .LintCommands}}
- **Lint:** {{code .LintCommands}}
{{- end}}
{{- if .Structure.HasCI}}
- **CI:** {{.Structure.CISystem}}
{{- end}}
{{- if .Structure.HasDocker}}
- **Docker:** yes
{{- end}}
`

var projectContext = template.Must(template.New("context").Funcs(template.FuncMap{
	"join": strings.Join,
	"code": func(items []string) string {
		quoted := make([]string, len(items))
		for i, it := range items {
			quoted[i] = "`" + it + "`"
		}
		return strings.Join(quoted, ", ")
	},
}).Parse(projectContextTemplate))

// ProjectContext renders scan facts as a markdown bullet list. It returns an
// empty string when nothing was detected.
func ProjectContext(info *scanner.ProjectInfo) (string, error) {
	if info == nil {
		return "", nil
	}
	var buf bytes.Buffer
	if err := projectContext.Execute(&buf, info); err != nil {
		return "", err
	}
	return strings.TrimSpace(buf.String()), nil
}
