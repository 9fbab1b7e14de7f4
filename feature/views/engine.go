package views

import (
	"github.com/gofiber/template/html/v2"
)

// Extension is the file extension of view templates.
const Extension = ".html"

// NewEngine creates the template engine for the views directory.
// With reload set, templates are re-read on every render.
func NewEngine(dir string, reload bool) *html.Engine {
	engine := html.New(dir, Extension)
	engine.Reload(reload)
	return engine
}
