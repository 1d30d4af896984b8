package prompts

import (
	"bytes"
	_ "embed"
	"sort"
	"strings"
	"text/template"
)

//go:embed classifier.txt
var ClassifierPrompt string

//go:embed summarize.txt
var SummarizePrompt string

type ClassifierPromptData struct {
	Apps []string
}

// GenerateClassifierPrompt renders baseTemplate with the sorted list of known
// application names.
func GenerateClassifierPrompt(baseTemplate string, apps []string) (string, error) {
	names := append([]string(nil), apps...)
	sort.Strings(names)

	tmpl, err := template.New("classifier").
		Funcs(template.FuncMap{"join": strings.Join}).
		Parse(baseTemplate)
	if err != nil {
		return "", err
	}

	var buf bytes.Buffer
	if err := tmpl.Execute(&buf, ClassifierPromptData{Apps: names}); err != nil {
		return "", err
	}

	return strings.TrimSpace(buf.String()), nil
}
