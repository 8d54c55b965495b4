package export

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"html/template"
	"sort"
	"strings"

	"github.com/forPelevin/ytdigest/internal/types"
)

type Format string

const (
	Markdown Format = "markdown"
	HTML     Format = "html"
	Text     Format = "text"
	JSON     Format = "json"
)

var ErrUnknownFormat = errors.New("unknown export format")

var extensions = map[Format]string{
	Markdown: ".md",
	HTML:     ".html",
	Text:     ".txt",
	JSON:     ".json",
}

// Formats lists the supported formats in a stable order.
func Formats() []string {
	out := make([]string, 0, len(extensions))
	for f := range extensions {
		out = append(out, string(f))
	}
	sort.Strings(out)
	return out
}

func Extension(f Format) (string, error) {
	ext, ok := extensions[f]
	if !ok {
		return "", fmt.Errorf("%w: %q", ErrUnknownFormat, f)
	}
	return ext, nil
}

func Render(f Format, r types.Result) ([]byte, error) {
	switch f {
	case Markdown:
		return []byte(renderMarkdown(r)), nil
	case Text:
		return []byte(renderText(r)), nil
	case HTML:
		return renderHTML(r)
	case JSON:
		b, err := json.MarshalIndent(r, "", "  ")
		if err != nil {
			return nil, fmt.Errorf("marshal result: %w", err)
		}
		return append(b, '\n'), nil
	default:
		return nil, fmt.Errorf("%w: %q", ErrUnknownFormat, f)
	}
}

func renderMarkdown(r types.Result) string {
	var b strings.Builder
	fmt.Fprintf(&b, "# %s\n\n", r.Title)
	fmt.Fprintf(&b, "- Video: https://www.youtube.com/watch?v=%s\n", r.VideoID)
	fmt.Fprintf(&b, "- Duration: %s\n", r.Duration)
	fmt.Fprintf(&b, "- Detail level: %s\n", r.DetailLevel)
	if r.ProcessingCost != nil {
		fmt.Fprintf(&b, "- Estimated cost: %s (%d tokens)\n", r.ProcessingCost.EstimatedCost, r.ProcessingCost.Tokens)
	}
	if r.Language != "" {
		fmt.Fprintf(&b, "- Language: %s", r.Language)
		if r.TranslatedFrom != "" {
			fmt.Fprintf(&b, " (translated from %s)", r.TranslatedFrom)
		}
		b.WriteString("\n")
	}
	if r.ConfidenceScore > 0 {
		fmt.Fprintf(&b, "- Confidence: %d%%\n", r.ConfidenceScore)
	}
	if r.Degraded {
		b.WriteString("\n> Note: this is demonstration data; the analysis service was unavailable.\n")
	}

	if r.Summary != "" {
		fmt.Fprintf(&b, "\n## Summary\n\n%s\n", r.Summary)
	}
	if len(r.KeyTakeaways) > 0 {
		b.WriteString("\n## Key Takeaways\n\n")
		for _, k := range r.KeyTakeaways {
			fmt.Fprintf(&b, "- %s\n", k)
		}
	}
	if len(r.Topics) > 0 {
		b.WriteString("\n## Topics\n\n")
		for _, t := range r.Topics {
			fmt.Fprintf(&b, "### %s (%d%%)\n\n", t.Title, t.CoverageValue())
			if t.Timestamps != "" {
				fmt.Fprintf(&b, "_%s_\n\n", t.Timestamps)
			}
			fmt.Fprintf(&b, "%s\n\n", t.Description)
		}
	}
	if len(r.KeyPoints) > 0 {
		b.WriteString("\n## Key Points\n\n")
		for _, k := range r.KeyPoints {
			b.WriteString("- ")
			if k.Timestamp != "" {
				fmt.Fprintf(&b, "**[%s]** ", k.Timestamp)
			}
			b.WriteString(k.Content)
			b.WriteString("\n")
		}
	}
	if len(r.WordCloudData) > 0 {
		b.WriteString("\n## Word Cloud\n\n| Word | Weight |\n|------|--------|\n")
		for _, w := range r.WordCloudData {
			fmt.Fprintf(&b, "| %s | %d |\n", w.Text, w.Value)
		}
	}
	if len(r.Transcript) > 0 {
		b.WriteString("\n## Transcript\n\n")
		for _, s := range r.Transcript {
			fmt.Fprintf(&b, "**%s** %s\n\n", s.Timestamp, s.Text)
		}
	}
	return b.String()
}

func renderText(r types.Result) string {
	var b strings.Builder
	b.WriteString(r.Title)
	b.WriteString("\n")
	b.WriteString(strings.Repeat("=", len([]rune(r.Title))))
	b.WriteString("\n\n")
	fmt.Fprintf(&b, "Video:    %s\n", r.VideoID)
	fmt.Fprintf(&b, "Duration: %s\n", r.Duration)
	if r.ProcessingCost != nil {
		fmt.Fprintf(&b, "Cost:     %s (%d tokens)\n", r.ProcessingCost.EstimatedCost, r.ProcessingCost.Tokens)
	}
	if r.Degraded {
		b.WriteString("Source:   demonstration data\n")
	}
	if r.Summary != "" {
		fmt.Fprintf(&b, "\nSUMMARY\n%s\n", r.Summary)
	}
	if len(r.KeyTakeaways) > 0 {
		b.WriteString("\nKEY TAKEAWAYS\n")
		for i, k := range r.KeyTakeaways {
			fmt.Fprintf(&b, "%d. %s\n", i+1, k)
		}
	}
	if len(r.Topics) > 0 {
		b.WriteString("\nTOPICS\n")
		for _, t := range r.Topics {
			fmt.Fprintf(&b, "* %s [%d%%]: %s\n", t.Title, t.CoverageValue(), t.Description)
		}
	}
	if len(r.KeyPoints) > 0 {
		b.WriteString("\nKEY POINTS\n")
		for _, k := range r.KeyPoints {
			if k.Timestamp != "" {
				fmt.Fprintf(&b, "* [%s] %s\n", k.Timestamp, k.Content)
				continue
			}
			fmt.Fprintf(&b, "* %s\n", k.Content)
		}
	}
	if len(r.Transcript) > 0 {
		b.WriteString("\nTRANSCRIPT\n")
		for _, s := range r.Transcript {
			fmt.Fprintf(&b, "%s  %s\n", s.Timestamp, s.Text)
		}
	}
	return b.String()
}

var htmlTmpl = template.Must(template.New("result").Parse(`<!DOCTYPE html>
<html lang="en">
<head>
<meta charset="utf-8">
<title>{{.Title}}</title>
</head>
<body>
<h1>{{.Title}}</h1>
<p><a href="https://www.youtube.com/watch?v={{.VideoID}}">Watch on YouTube</a> &middot; {{.Duration}} &middot; {{.DetailLevel}}{{with .ProcessingCost}} &middot; {{.EstimatedCost}} ({{.Tokens}} tokens){{end}}</p>
{{- if .Degraded}}
<p class="notice">Demonstration data: the analysis service was unavailable.</p>
{{- end}}
{{- if .Summary}}
<h2>Summary</h2>
<p>{{.Summary}}</p>
{{- end}}
{{- if .KeyTakeaways}}
<h2>Key Takeaways</h2>
<ul>
{{- range .KeyTakeaways}}
<li>{{.}}</li>
{{- end}}
</ul>
{{- end}}
{{- if .Topics}}
<h2>Topics</h2>
{{- range .Topics}}
<h3>{{.Title}} <small>{{.CoverageValue}}%</small></h3>
<p>{{.Description}}</p>
{{- end}}
{{- end}}
{{- if .KeyPoints}}
<h2>Key Points</h2>
<ul>
{{- range .KeyPoints}}
<li>{{if .Timestamp}}<strong>{{.Timestamp}}</strong> {{end}}{{.Content}}</li>
{{- end}}
</ul>
{{- end}}
{{- if .WordCloudData}}
<h2>Word Cloud</h2>
<p>
{{- range .WordCloudData}}
<span data-weight="{{.Value}}">{{.Text}}</span>
{{- end}}
</p>
{{- end}}
{{- if .Transcript}}
<h2>Transcript</h2>
{{- range .Transcript}}
<p><strong>{{.Timestamp}}</strong> {{.Text}}</p>
{{- end}}
{{- end}}
</body>
</html>
`))

func renderHTML(r types.Result) ([]byte, error) {
	var buf bytes.Buffer
	if err := htmlTmpl.Execute(&buf, r); err != nil {
		return nil, fmt.Errorf("render html: %w", err)
	}
	return buf.Bytes(), nil
}
