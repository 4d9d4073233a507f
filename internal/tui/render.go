package tui

import (
	"bytes"
	"encoding/json"
	"fmt"
	"strings"

	"github.com/h0rv/sdq/internal/domain"
	"github.com/muesli/reflow/wordwrap"
)

const (
	defaultWidth = 80
	minWidth     = 20
)

// RenderResult renders a fetch result as styled text wrapped to width.
// A non-positive width uses 80 columns.
func RenderResult(r domain.Result, width int) string {
	if width <= 0 {
		width = defaultWidth
	}
	if width < minWidth {
		width = minWidth
	}

	if !r.OK() {
		return renderFailure(r.Failure, width)
	}

	q := r.Queue
	var b strings.Builder
	b.WriteString(TitleStyle.Render(wordwrap.String(q.Name, width)))
	b.WriteString("\n")
	writeField(&b, "Service desk", q.ServiceDeskID)
	writeField(&b, "Queue ID", q.QueueID)
	b.WriteString("\n")

	b.WriteString(LabelStyle.Render("JQL"))
	b.WriteString("\n")
	jql := q.JQL
	if jql == "" {
		jql = "(empty)"
	}
	// 4 = border + padding on each side
	b.WriteString(JQLStyle.Render(wordwrap.String(jql, width-4)))
	b.WriteString("\n")

	writeList(&b, "Issue types", q.IssueTypes, width)
	writeList(&b, "Columns", q.Columns, width)

	return strings.TrimRight(b.String(), "\n")
}

func renderFailure(f *domain.Failure, width int) string {
	if f == nil {
		return ErrorStyle.Render("Error: unknown failure")
	}
	s := ErrorStyle.Render(wordwrap.String("Error: "+f.Message, width))
	if f.Details != "" {
		s += "\n" + HintStyle.Render(wordwrap.String(f.Details, width))
	}
	return s
}

func writeField(b *strings.Builder, label, value string) {
	fmt.Fprintf(b, "%s %s\n", LabelStyle.Render(label+":"), ValueStyle.Render(value))
}

func writeList(b *strings.Builder, label string, items []json.RawMessage, width int) {
	b.WriteString("\n")
	b.WriteString(LabelStyle.Render(fmt.Sprintf("%s (%d)", label, len(items))))
	b.WriteString("\n")
	for _, item := range items {
		b.WriteString(ValueStyle.Render(wordwrap.String("  • "+describe(item), width)))
		b.WriteString("\n")
	}
}

// describe turns a raw upstream element into a short label: strings are
// unquoted, objects show their name (or id), anything else is compacted JSON.
func describe(raw json.RawMessage) string {
	var s string
	if err := json.Unmarshal(raw, &s); err == nil {
		return s
	}

	var obj map[string]any
	if err := json.Unmarshal(raw, &obj); err == nil {
		for _, k := range []string{"name", "label", "fieldId", "id"} {
			if v, ok := obj[k]; ok {
				if str, ok := v.(string); ok && str != "" {
					return str
				}
			}
		}
	}

	var buf bytes.Buffer
	if err := json.Compact(&buf, raw); err != nil {
		return string(raw)
	}
	return buf.String()
}
