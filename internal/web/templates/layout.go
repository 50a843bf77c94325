// Package templates renders the HTML pages of the web UI as templ components.
package templates

import (
	"context"
	"fmt"
	"io"

	"github.com/a-h/templ"
)

const style = `body{font-family:system-ui,sans-serif;margin:2rem auto;max-width:72rem;color:#1f2937}
textarea{width:100%;min-height:14rem;font-family:monospace}
table{border-collapse:collapse;margin:1rem 0}
th,td{border:1px solid #d1d5db;padding:.25rem .5rem;text-align:left;font-family:monospace}
th small{display:block;color:#6b7280;font-weight:normal}
pre{background:#f3f4f6;padding:1rem;overflow:auto}
.alert{border:1px solid #f87171;background:#fef2f2;padding:.75rem 1rem;margin:1rem 0}
.alert code{color:#6b7280}
.null{color:#9ca3af}`

// page wraps body in the shared HTML document.
func page(title string, body templ.Component) templ.Component {
	return templ.ComponentFunc(func(ctx context.Context, w io.Writer) error {
		_, err := fmt.Fprintf(w, `<!DOCTYPE html>
<html lang="en">
<head>
<meta charset="utf-8">
<title>%s</title>
<style>%s</style>
</head>
<body>
<h1><a href="/">tab2sql</a></h1>
`, templ.EscapeString(title), style)
		if err != nil {
			return err
		}
		if err := body.Render(ctx, w); err != nil {
			return err
		}
		_, err = io.WriteString(w, "</body>\n</html>\n")
		return err
	})
}

// ErrorAlert renders an error box with the user message, action and code.
func ErrorAlert(message, action, code string) templ.Component {
	return templ.ComponentFunc(func(ctx context.Context, w io.Writer) error {
		_, err := fmt.Fprintf(w, `<div class="alert" role="alert"><strong>%s</strong>`, templ.EscapeString(message))
		if err != nil {
			return err
		}
		if action != "" {
			if _, err := fmt.Fprintf(w, `<p>%s</p>`, templ.EscapeString(action)); err != nil {
				return err
			}
		}
		_, err = fmt.Fprintf(w, `<code>%s</code></div>
`, templ.EscapeString(code))
		return err
	})
}

// ErrorPage renders ErrorAlert as a full page.
func ErrorPage(message, action, code string) templ.Component {
	return page("Error", ErrorAlert(message, action, code))
}
