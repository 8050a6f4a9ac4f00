package tui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/glamour"

	"github.com/jeanpaul/unifind/internal/model"
)

// universityMarkdown describes u for the detail pane.
func universityMarkdown(u model.University) string {
	var b strings.Builder
	fmt.Fprintf(&b, "# %s\n\n", u.Name)
	fmt.Fprintf(&b, "**Country:** %s (%s)\n\n", u.Country, u.AlphaTwoCode)
	if u.StateProvince != nil && *u.StateProvince != "" {
		fmt.Fprintf(&b, "**State/Province:** %s\n\n", *u.StateProvince)
	}

	b.WriteString("## Web pages\n\n")
	if len(u.WebPages) == 0 {
		b.WriteString("_none listed, this university cannot be favorited_\n\n")
	}
	for _, p := range u.WebPages {
		fmt.Fprintf(&b, "- %s\n", p)
	}

	if len(u.Domains) > 0 {
		b.WriteString("\n## Domains\n\n")
		for _, d := range u.Domains {
			fmt.Fprintf(&b, "- %s\n", d)
		}
	}
	return b.String()
}

func newRenderer(width int) *glamour.TermRenderer {
	if width < 20 {
		width = 20
	}
	r, err := glamour.NewTermRenderer(
		glamour.WithAutoStyle(),
		glamour.WithWordWrap(width),
	)
	if err != nil {
		return nil
	}
	return r
}

func renderDetail(r *glamour.TermRenderer, u model.University) string {
	md := universityMarkdown(u)
	if r == nil {
		return md
	}
	out, err := r.Render(md)
	if err != nil {
		return md
	}
	return strings.TrimRight(out, "\n")
}
