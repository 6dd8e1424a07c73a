package views

import (
	"embed"
	"errors"
	"html/template"
	"io"
	"io/fs"

	"surfsup-api/internal/modules/climate/types"
)

//go:embed templates/*.html
var viewsFS embed.FS

var routesTmpl *template.Template

// loadTemplatesFromFS parses every *.html file under dir of fsys.
func loadTemplatesFromFS(fsys fs.FS, dir string) error {
	sub, err := fs.Sub(fsys, dir)
	if err != nil {
		return err
	}
	routesTmpl, err = template.ParseFS(sub, "*.html")
	return err
}

// LoadTemplates loads the embedded templates. Call during startup before
// serving requests; if it returns an error, do not start the server.
func LoadTemplates() error {
	return loadTemplatesFromFS(viewsFS, "templates")
}

type RoutesData struct {
	Routes []types.Route
}

func RenderRoutes(w io.Writer, data *RoutesData) error {
	if routesTmpl == nil {
		return errors.New("routes template not loaded: call views.LoadTemplates during startup")
	}
	return routesTmpl.ExecuteTemplate(w, "routes.html", data)
}
