// Package export renders the journal as a single HTML page, treating each
// entry as Markdown.
package export

import (
	"bytes"
	"context"
	"errors"
	"html/template"
	"io"
	"sort"

	"github.com/yuin/goldmark"
	"github.com/yuin/goldmark/extension"
	ghhtml "github.com/yuin/goldmark/renderer/html"

	"tableflip.dev/diary/pkg/datekey"
	"tableflip.dev/diary/pkg/store"
)

var page = template.Must(template.New("diary").Parse(`<!DOCTYPE html>
<html>
<head>
<meta charset="utf-8">
<title>{{ .Title }}</title>
</head>
<body>
<h1>{{ .Title }}</h1>
{{- range .Days }}
<article id="{{ .Date }}">
<h2>{{ .Date }}</h2>
{{ .Body }}
</article>
{{- end }}
</body>
</html>
`))

type pageData struct {
	Title string
	Days  []dayData
}

type dayData struct {
	Date datekey.Key
	Body template.HTML
}

// Export writes every entry between From and To (inclusive, either may be
// empty) to Out. Entries are ordered oldest first unless Newest is set.
type Export struct {
	Title  string
	From   datekey.Key
	To     datekey.Key
	Newest bool
	Store  *store.Store
	Out    io.Writer
}

func (e *Export) Do(_ context.Context) error {
	if e.Store == nil {
		return errors.New("export: no store configured")
	}
	entries, err := e.Store.Entries()
	if err != nil {
		return err
	}
	if e.Newest {
		sort.Slice(entries, func(i, j int) bool { return entries[i].Date > entries[j].Date })
	}

	md := goldmark.New(
		goldmark.WithExtensions(
			extension.GFM,
			extension.Typographer,
		),
		goldmark.WithRendererOptions(
			ghhtml.WithHardWraps(),
		),
	)

	data := pageData{Title: e.Title}
	if data.Title == "" {
		data.Title = "Diary"
	}
	for _, entry := range entries {
		if e.From != "" && entry.Date < e.From {
			continue
		}
		if e.To != "" && entry.Date > e.To {
			continue
		}
		var buf bytes.Buffer
		if err := md.Convert([]byte(entry.Text), &buf); err != nil {
			return err
		}
		data.Days = append(data.Days, dayData{Date: entry.Date, Body: template.HTML(buf.String())})
	}
	return page.Execute(e.Out, data)
}
