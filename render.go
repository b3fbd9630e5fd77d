package main

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"strings"
	"text/template"

	"github.com/aktagon/tldr/tldr"
	"github.com/jedib0t/go-pretty/v6/table"
	"github.com/mattn/go-runewidth"
	"gopkg.in/yaml.v3"
)

var templateFuncs = template.FuncMap{
	"trim": strings.TrimSpace,
	"inc":  func(i int) int { return i + 1 },
}

func renderJSON(w io.Writer, newsletter *tldr.Newsletter) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(newsletter)
}

func renderYAML(w io.Writer, newsletter *tldr.Newsletter) error {
	enc := yaml.NewEncoder(w)
	enc.SetIndent(2)
	if err := enc.Encode(newsletter); err != nil {
		return err
	}
	return enc.Close()
}

func renderTable(w io.Writer, newsletter *tldr.Newsletter, settings TableSettings) error {
	t := table.NewWriter()
	t.SetTitle("%s\n%s", oneLine(newsletter.Title), oneLine(newsletter.Subtitle))
	t.AppendHeader(table.Row{"#", "Title", "Description", "URL"})

	for i, article := range newsletter.Articles {
		t.AppendRow(table.Row{
			i + 1,
			truncate(article.Title, settings.TitleWidth),
			truncate(article.Description, settings.DescriptionWidth),
			article.URL,
		})
	}

	t.AppendFooter(table.Row{"", fmt.Sprintf("%d articles", len(newsletter.Articles)), newsletter.Category, newsletter.Date.String()})
	t.SetStyle(table.StyleRounded)

	_, err := fmt.Fprintln(w, t.Render())
	return err
}

func renderMarkdown(w io.Writer, newsletter *tldr.Newsletter, templateText string) error {
	tmpl, err := template.New("newsletter").Funcs(templateFuncs).Parse(templateText)
	if err != nil {
		return fmt.Errorf("parsing template: %w", err)
	}

	var buf bytes.Buffer
	if err := tmpl.Execute(&buf, newsletter); err != nil {
		return fmt.Errorf("executing template: %w", err)
	}

	_, err = w.Write(buf.Bytes())
	return err
}

// oneLine collapses the whitespace scraped text carries over from the markup
func oneLine(s string) string {
	return strings.Join(strings.Fields(s), " ")
}

// truncate shortens s to width terminal cells
func truncate(s string, width int) string {
	return runewidth.Truncate(oneLine(s), width, "…")
}
