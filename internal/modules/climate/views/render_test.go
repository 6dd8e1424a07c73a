package views

import (
	"bytes"
	"strings"
	"testing"
	"testing/fstest"

	"surfsup-api/internal/modules/climate/types"
)

func TestLoadTemplates_success(t *testing.T) {
	if err := LoadTemplates(); err != nil {
		t.Fatalf("LoadTemplates() = %v; want nil", err)
	}
	if routesTmpl == nil {
		t.Fatal("LoadTemplates() left routesTmpl nil")
	}
}

func TestLoadTemplates_failure_sub(t *testing.T) {
	// No "templates" directory; ParseFS finds nothing to parse.
	err := loadTemplatesFromFS(fstest.MapFS{}, "templates")
	if err == nil {
		t.Fatal("loadTemplatesFromFS(emptyFS) = nil; want error")
	}
}

func TestLoadTemplates_failure_parse(t *testing.T) {
	badFS := fstest.MapFS{
		"templates/routes.html": {Data: []byte("{{ .")},
	}
	if err := loadTemplatesFromFS(badFS, "templates"); err == nil {
		t.Fatal("loadTemplatesFromFS(badFS) = nil; want error")
	}
}

func TestRenderRoutes_notLoaded(t *testing.T) {
	prev := routesTmpl
	routesTmpl = nil
	t.Cleanup(func() { routesTmpl = prev })

	var buf bytes.Buffer
	err := RenderRoutes(&buf, &RoutesData{})
	if err == nil {
		t.Fatal("RenderRoutes() = nil; want error when templates not loaded")
	}
	if !strings.Contains(err.Error(), "not loaded") {
		t.Errorf("err = %q; want message containing \"not loaded\"", err.Error())
	}
}

func TestRenderRoutes_emptyData(t *testing.T) {
	if err := LoadTemplates(); err != nil {
		t.Fatalf("LoadTemplates(): %v", err)
	}

	var buf bytes.Buffer
	if err := RenderRoutes(&buf, &RoutesData{}); err != nil {
		t.Fatalf("RenderRoutes(empty) = %v; want nil", err)
	}
	if !strings.HasPrefix(buf.String(), "Available Routes:<br/>") {
		t.Errorf("output = %q; want heading", buf.String())
	}
}

func TestRenderRoutes_withData(t *testing.T) {
	if err := LoadTemplates(); err != nil {
		t.Fatalf("LoadTemplates(): %v", err)
	}

	data := &RoutesData{Routes: []types.Route{
		{Description: "Look at a list of the stations", Path: "/api/v1.0/stations"},
		{Description: "Dates <between>", Path: "/api/v1.0/start/end"},
	}}

	var buf bytes.Buffer
	if err := RenderRoutes(&buf, data); err != nil {
		t.Fatalf("RenderRoutes(data) = %v; want nil", err)
	}
	out := buf.String()
	if !strings.Contains(out, `Look at a list of the stations: <a href="/api/v1.0/stations">/api/v1.0/stations</a> <br/>`) {
		t.Errorf("output missing stations route; got %q", out)
	}
	if !strings.Contains(out, "Dates &lt;between&gt;") {
		t.Errorf("description not escaped; got %q", out)
	}
}
