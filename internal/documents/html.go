package documents

import (
	"html/template"
	"strings"
)

var previewTmpl = template.Must(template.New("preview").Parse(`<!doctype html>
<html>
<head>
<meta charset="utf-8">
<title>{{.Title}}</title>
<style>
body { font-family: Georgia, serif; max-width: 48rem; margin: 2rem auto; padding: 0 1rem; color: #1f2430; line-height: 1.6; }
h1 { font-size: 1.25rem; border-bottom: 1px solid #d7dae0; padding-bottom: .5rem; }
p { margin: .75rem 0; }
</style>
</head>
<body>
<h1>{{.Title}}</h1>
{{range .Paragraphs}}<p>{{.}}</p>
{{end}}</body>
</html>
`))

func renderPreview(title, body string) (string, error) {
	var paragraphs []string
	for _, line := range strings.Split(body, "\n") {
		if trimmed := strings.TrimSpace(line); trimmed != "" {
			paragraphs = append(paragraphs, trimmed)
		}
	}

	var sb strings.Builder
	err := previewTmpl.Execute(&sb, struct {
		Title      string
		Paragraphs []string
	}{Title: title, Paragraphs: paragraphs})
	if err != nil {
		return "", err
	}
	return sb.String(), nil
}
