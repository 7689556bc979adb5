package main

import (
	"bytes"
	"embed"
	"fmt"
	"os"
	"text/template"

	"github.com/otelwasm/jsbridge/bridge"
)

//go:embed templates/*.gotmpl
var templates embed.FS

const errorsTemplate = "errors.js.gotmpl"

// Generator renders the errors module the bridge evaluates at startup.
type Generator struct {
	BaseClass   string
	DefaultName string
	Kinds       []bridge.Kind
}

// NewGenerator returns a generator for every kind the bridge can raise.
func NewGenerator() *Generator {
	return &Generator{
		BaseClass:   bridge.BaseClassName,
		DefaultName: bridge.KindNone.String(),
		Kinds:       bridge.Kinds(),
	}
}

func (g *Generator) Render() ([]byte, error) {
	tmpl, err := template.ParseFS(templates, "templates/"+errorsTemplate)
	if err != nil {
		return nil, fmt.Errorf("failed to parse template %s: %w", errorsTemplate, err)
	}

	var buf bytes.Buffer
	err = tmpl.ExecuteTemplate(&buf, errorsTemplate, g)
	if err != nil {
		return nil, fmt.Errorf("failed to execute template %s: %w", errorsTemplate, err)
	}
	return buf.Bytes(), nil
}

func (g *Generator) Write(dst string) error {
	out, err := g.Render()
	if err != nil {
		return err
	}

	if dst == "-" {
		_, err = os.Stdout.Write(out)
		return err
	}
	err = os.WriteFile(dst, out, 0o644)
	if err != nil {
		return fmt.Errorf("failed to write %s: %w", dst, err)
	}
	return nil
}

// UpToDate reports whether dst already holds the rendered module.
func (g *Generator) UpToDate(dst string) (bool, error) {
	if dst == "-" {
		return false, fmt.Errorf("-check needs an output file")
	}
	want, err := g.Render()
	if err != nil {
		return false, err
	}
	got, err := os.ReadFile(dst)
	if err != nil {
		return false, fmt.Errorf("failed to read %s: %w", dst, err)
	}
	return bytes.Equal(want, got), nil
}
