// Package views renders the wall page and the htmx fragments swapped into it.
package views

import (
	"context"
	"embed"
	"html/template"
	"net/http"
	"strings"

	"github.com/a-h/templ"
	"github.com/gin-gonic/gin/render"
)

// Fragment routes referenced by the page.
const (
	QuoteFragmentPath = "/fragments/quote"
	MemeFragmentPath  = "/fragments/meme"
)

// HeaderHTMXRequest is set by htmx on every request it issues.
const HeaderHTMXRequest = "HX-Request"

const contentTypeHTML = "text/html; charset=utf-8"

//go:embed templates/*.html
var files embed.FS

var templates = template.Must(template.ParseFS(files, "templates/*.html"))

// Script is an external script. A non-empty Integrity adds subresource
// integrity and an anonymous crossorigin attribute to the tag.
type Script struct {
	Src       string
	Integrity string
}

type pageData struct {
	Title     string
	HTMX      Script
	QuotePath string
	MemePath  string
}

// Page is the full document: the #quotes container loads one quote on page
// load and the #give-trump button replaces #trump-pic with the latest meme.
func Page(title string, htmx Script) templ.Component {
	return templ.FromGoHTML(templates.Lookup("page"), pageData{
		Title:     title,
		HTMX:      htmx,
		QuotePath: QuoteFragmentPath,
		MemePath:  MemeFragmentPath,
	})
}

// QuoteFragment renders one quote as a paragraph.
func QuoteFragment(text string) templ.Component {
	return templ.FromGoHTML(templates.Lookup("quote"), text)
}

// MemeFragment renders the comparison heading and the meme image.
func MemeFragment(url string) templ.Component {
	return templ.FromGoHTML(templates.Lookup("meme"), url)
}

// IsHTMXRequest reports whether r was issued by htmx.
func IsHTMXRequest(r *http.Request) bool {
	if r == nil {
		return false
	}

	return strings.EqualFold(r.Header.Get(HeaderHTMXRequest), "true")
}

// Component adapts a templ.Component to gin's render.Render.
type Component struct {
	ctx       context.Context //nolint:containedctx // carried into Render by gin
	component templ.Component
}

// Render binds component to ctx for use with gin.Context.Render.
func Render(ctx context.Context, component templ.Component) render.Render {
	return Component{ctx: ctx, component: component}
}

// Render writes the component to w.
func (c Component) Render(w http.ResponseWriter) error {
	c.WriteContentType(w)

	return c.component.Render(c.ctx, w)
}

// WriteContentType sets the HTML content type.
func (c Component) WriteContentType(w http.ResponseWriter) {
	header := w.Header()
	if val := header["Content-Type"]; len(val) == 0 {
		header["Content-Type"] = []string{contentTypeHTML}
	}
}
