package templates

import (
	"context"
	"fmt"
	"io"

	"github.com/a-h/templ"
)

// FormOptions pre-fills the conversion form.
type FormOptions struct {
	FirstLineHeaders           bool
	ConvertNullSentinel        bool
	ConvertEmptyStringSentinel bool
	Table                      string
	Text                       string
}

// Index renders the conversion form.
func Index(opts FormOptions) templ.Component {
	return page("tab2sql", Form(opts))
}

// Form renders the paste/upload form posting to /preview.
func Form(opts FormOptions) templ.Component {
	return templ.ComponentFunc(func(ctx context.Context, w io.Writer) error {
		_, err := fmt.Fprintf(w, `<form method="post" action="/preview" enctype="multipart/form-data">
<p><label>Table <input type="text" name="table" value="%s"></label></p>
<p><textarea name="text" placeholder="Paste tab-delimited text">%s</textarea></p>
<p><label>or upload a file <input type="file" name="file"></label></p>
<p>
%s
%s
%s
</p>
<p><button type="submit">Preview SQL</button></p>
</form>
`,
			templ.EscapeString(opts.Table),
			templ.EscapeString(opts.Text),
			checkbox("headers", "First line holds column names", opts.FirstLineHeaders),
			checkbox("null", "Convert NULL to null", opts.ConvertNullSentinel),
			checkbox("emptystring", "Convert EMPTYSTRING to empty text", opts.ConvertEmptyStringSentinel),
		)
		return err
	})
}

// checkbox renders a hidden "false" ahead of the box so an unchecked box
// still submits a value. The handler reads the last value.
func checkbox(name, label string, checked bool) string {
	attr := ""
	if checked {
		attr = " checked"
	}
	return fmt.Sprintf(`<input type="hidden" name="%[1]s" value="false"><label><input type="checkbox" name="%[1]s" value="true"%[2]s> %[3]s</label><br>`,
		name, attr, templ.EscapeString(label))
}
