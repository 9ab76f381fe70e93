package summary

import (
	"fmt"
	"html"
	"strings"
)

const levelIndent = "    "

// displayText resolves what a cell shows: label text for the label
// column, otherwise the stored cell or the row's missing symbol.
func displayText(r Row, col string) string {
	if col == "label" {
		return r.Label
	}
	if v := r.Cells[col]; v != "" {
		return v
	}
	if sym, ok := r.MissingSymbol[col]; ok {
		return sym
	}
	return ""
}

func indented(rt RowType) bool {
	return rt == RowLevel || rt == RowMissing
}

// Markdown renders the table as a pipe table, with level rows indented
// and bolding via asterisks.
func (t *Table) Markdown() string {
	var b strings.Builder
	if t.Title != "" {
		title := t.Title
		if t.Theme.TitleWeight == "bold" {
			title = "**" + title + "**"
		}
		b.WriteString(title + "\n\n")
	}

	b.WriteString("|")
	for _, c := range t.Columns {
		h := c.Header
		if h != "" && t.Theme.HeaderWeight == "bold" {
			h = "**" + h + "**"
		}
		fmt.Fprintf(&b, " %s |", escapePipes(h))
	}
	b.WriteString("\n|")
	for range t.Columns {
		b.WriteString("---|")
	}
	b.WriteString("\n")

	for _, r := range t.Rows {
		b.WriteString("|")
		for _, c := range t.Columns {
			text := displayText(r, c.Name)
			if c.Name == "label" {
				if r.Bold && text != "" {
					text = "**" + text + "**"
				}
				if indented(r.RowType) {
					text = levelIndent + text
				}
			}
			fmt.Fprintf(&b, " %s |", escapePipes(text))
		}
		b.WriteString("\n")
	}

	for _, fn := range t.Footnotes {
		b.WriteString("\n" + fn + "\n")
	}
	return b.String()
}

// HTML renders the table as a self-contained fragment. Styling is
// scoped to the table's unique id, so multiple tables with different
// themes coexist on one page.
func (t *Table) HTML() string {
	id := "tbl-" + t.ID
	th := t.Theme

	var b strings.Builder
	fmt.Fprintf(&b, "<div id=%q class=\"summary-table\">\n", id)
	b.WriteString("<style>\n")
	fmt.Fprintf(&b, "#%s table { border-collapse: collapse; font-size: %dpx; }\n", id, th.FontSize)
	if th.TopBorder {
		fmt.Fprintf(&b, "#%s table { border-top: 2px solid #d3d3d3; }\n", id)
	}
	if th.BottomBorder {
		fmt.Fprintf(&b, "#%s table { border-bottom: 2px solid #d3d3d3; }\n", id)
	}
	fmt.Fprintf(&b, "#%s caption { font-weight: %s; padding: %dpx 6px; caption-side: top; text-align: left; }\n", id, weightOrNormal(th.TitleWeight), th.HeaderPadding)
	fmt.Fprintf(&b, "#%s th { font-weight: %s; padding: %dpx 6px; text-align: left; border-bottom: 1px solid #d3d3d3; }\n", id, weightOrNormal(th.HeaderWeight), th.HeaderPadding)
	fmt.Fprintf(&b, "#%s td { padding: %dpx 6px; }\n", id, th.DataRowPadding)
	fmt.Fprintf(&b, "#%s td.indent { padding-left: 2em; }\n", id)
	fmt.Fprintf(&b, "#%s tfoot td { padding: %dpx 6px; font-size: smaller; border-top: 1px solid #d3d3d3; }\n", id, th.FooterPadding)
	b.WriteString("</style>\n<table>\n")

	if t.Title != "" {
		fmt.Fprintf(&b, "<caption>%s</caption>\n", html.EscapeString(t.Title))
	}

	b.WriteString("<thead><tr>")
	for _, c := range t.Columns {
		fmt.Fprintf(&b, "<th>%s</th>", html.EscapeString(c.Header))
	}
	b.WriteString("</tr></thead>\n<tbody>\n")

	for _, r := range t.Rows {
		fmt.Fprintf(&b, "<tr class=\"row-%s\">", r.RowType)
		for _, c := range t.Columns {
			text := html.EscapeString(displayText(r, c.Name))
			if c.Name == "label" {
				if r.Bold && text != "" {
					text = "<strong>" + text + "</strong>"
				}
				class := "label"
				if indented(r.RowType) {
					class = "label indent"
				}
				fmt.Fprintf(&b, "<td class=%q>%s</td>", class, text)
				continue
			}
			fmt.Fprintf(&b, "<td>%s</td>", text)
		}
		b.WriteString("</tr>\n")
	}
	b.WriteString("</tbody>\n")

	if len(t.Footnotes) > 0 {
		b.WriteString("<tfoot>\n")
		for _, fn := range t.Footnotes {
			fmt.Fprintf(&b, "<tr><td colspan=\"%d\">%s</td></tr>\n", len(t.Columns), html.EscapeString(fn))
		}
		b.WriteString("</tfoot>\n")
	}
	b.WriteString("</table>\n</div>\n")
	return b.String()
}

// Text renders the table as an aligned plain-text grid.
func (t *Table) Text() string {
	texts := make([][]string, 0, len(t.Rows)+1)
	header := make([]string, len(t.Columns))
	for i, c := range t.Columns {
		header[i] = c.Header
	}
	texts = append(texts, header)
	for _, r := range t.Rows {
		row := make([]string, len(t.Columns))
		for i, c := range t.Columns {
			text := displayText(r, c.Name)
			if c.Name == "label" && indented(r.RowType) {
				text = levelIndent + text
			}
			row[i] = text
		}
		texts = append(texts, row)
	}

	widths := make([]int, len(t.Columns))
	for _, row := range texts {
		for i, cell := range row {
			if len(cell) > widths[i] {
				widths[i] = len(cell)
			}
		}
	}

	var b strings.Builder
	if t.Title != "" {
		b.WriteString(t.Title + "\n\n")
	}
	writeRow := func(row []string) {
		for i, cell := range row {
			if i > 0 {
				b.WriteString("  ")
			}
			fmt.Fprintf(&b, "%-*s", widths[i], cell)
		}
		b.WriteString("\n")
	}
	writeRow(texts[0])
	for i, w := range widths {
		if i > 0 {
			b.WriteString("  ")
		}
		b.WriteString(strings.Repeat("-", w))
	}
	b.WriteString("\n")
	for _, row := range texts[1:] {
		writeRow(row)
	}
	for _, fn := range t.Footnotes {
		b.WriteString("\n" + fn + "\n")
	}
	return b.String()
}

func escapePipes(s string) string {
	return strings.ReplaceAll(s, "|", "\\|")
}

func weightOrNormal(w string) string {
	if w == "" {
		return "normal"
	}
	return w
}
