package templates

import (
	"context"
	"fmt"
	"io"
	"strings"

	"github.com/JonMunkholm/tab2sql/internal/core"
	"github.com/a-h/templ"
)

// PreviewData is the result of a conversion shown to the user.
type PreviewData struct {
	Result  *core.ParseResult
	SQL     string
	Table   string
	MaxRows int // rows shown in the table; 0 shows all
	Form    FormOptions
}

// Preview renders inferred columns, the first rows and the generated script.
func Preview(data PreviewData) templ.Component {
	return page("Preview "+data.Table, templ.ComponentFunc(func(ctx context.Context, w io.Writer) error {
		if err := previewTable(data).Render(ctx, w); err != nil {
			return err
		}
		if _, err := fmt.Fprintf(w, "<h2>SQL</h2>\n<pre>%s</pre>\n", templ.EscapeString(data.SQL)); err != nil {
			return err
		}
		return Form(data.Form).Render(ctx, w)
	}))
}

func previewTable(data PreviewData) templ.Component {
	return templ.ComponentFunc(func(ctx context.Context, w io.Writer) error {
		rows := data.Result.Rows
		shown := len(rows)
		if data.MaxRows > 0 && shown > data.MaxRows {
			shown = data.MaxRows
		}

		var b strings.Builder
		fmt.Fprintf(&b, "<h2>%s</h2>\n<p>%d columns, %d rows", templ.EscapeString(data.Table), len(data.Result.Columns), len(rows))
		if shown < len(rows) {
			fmt.Fprintf(&b, " (first %d shown)", shown)
		}
		b.WriteString("</p>\n<table>\n<thead><tr>")
		for _, col := range data.Result.Columns {
			fmt.Fprintf(&b, "<th>%s<small>%s</small></th>", templ.EscapeString(col.Name), col.Type.SQLType())
		}
		b.WriteString("</tr></thead>\n<tbody>\n")
		for _, row := range rows[:shown] {
			b.WriteString("<tr>")
			for _, col := range data.Result.Columns {
				b.WriteString(cell(row[col.Name]))
			}
			b.WriteString("</tr>\n")
		}
		b.WriteString("</tbody>\n</table>\n")

		_, err := io.WriteString(w, b.String())
		return err
	})
}

func cell(v core.Value) string {
	if v.IsNull() {
		return `<td class="null">NULL</td>`
	}
	return "<td>" + templ.EscapeString(v.String()) + "</td>"
}
