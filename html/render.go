package html

import (
	"fmt"
	"html/template"
	"io"

	"github.com/labstack/echo/v4"
)

type Template struct {
	Templates *template.Template
}

func (t *Template) Render(w io.Writer, name string, data interface{}, c echo.Context) error {
	return t.Templates.ExecuteTemplate(w, name, data)
}

// NewRenderer loads the page templates with the helper FuncMap.
func NewRenderer() *Template {
	return &Template{
		Templates: template.Must(template.New("").Funcs(TemplateFuncs()).ParseGlob("html/templates/*.html")),
	}
}

// TemplateFuncs returns helpers used by the page templates.
func TemplateFuncs() template.FuncMap {
	return template.FuncMap{
		"add": func(a, b int) int { return a + b },
		"sub": func(a, b int) int { return a - b },
		"price": func(v float64) string {
			return fmt.Sprintf("€%.2f", v)
		},
	}
}
