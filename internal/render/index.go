package render

import (
	"bytes"
	"html/template"
)

var indexTemplate = template.Must(template.New("index").Parse(`<!DOCTYPE html>
<html lang="en">
<head>
<meta charset="utf-8">
<title>Documentation</title>
<link rel="stylesheet" href="assets/chroma.css">
</head>
<body>
<main>
<h1>Documentation</h1>
<ul>
{{- range .Pages}}
<li><a href="{{.Slug}}">{{.Title}}</a>
{{- if .Sections}}
<ul>
{{- range .Sections}}
<li>{{.}}</li>
{{- end}}
</ul>
{{- end}}
</li>
{{- end}}
</ul>
</main>
</body>
</html>
`))

// RenderIndex produces the site index page. Pages must already be sorted by
// slug so re-renders are byte-identical.
func RenderIndex(pages []Page) ([]byte, error) {
	var out bytes.Buffer
	err := indexTemplate.Execute(&out, struct{ Pages []Page }{Pages: pages})
	if err != nil {
		return nil, err
	}
	return out.Bytes(), nil
}
