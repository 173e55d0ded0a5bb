package vanilla

import (
	"context"
	"fmt"
	"io/fs"
	"os"

	theme "github.com/goliatone/go-theme"

	"github.com/goliatone/go-formbind/pkg/control"
	"github.com/goliatone/go-formbind/pkg/form"
	rendertemplate "github.com/goliatone/go-formbind/pkg/render/template"
	gotemplate "github.com/goliatone/go-formbind/pkg/render/template/gotemplate"
	"github.com/goliatone/go-formbind/pkg/stream"
)

// Form is the slice of the form engine the renderer reads. Any *form.Form[T]
// satisfies it.
type Form interface {
	Keys() []string
	Control(key string) (control.Control, bool)
	ValidationStream() *stream.Source[form.Validation]
}

// Option customises the renderer configuration.
type Option func(*config)

type config struct {
	templateFS       fs.FS
	templateRenderer rendertemplate.TemplateRenderer
	theme            *theme.RendererConfig
	chrome           ChromeClasses
	labels           map[string]string
	help             map[string]string
}

// WithTemplatesFS supplies an alternate template bundle via fs.FS.
func WithTemplatesFS(files fs.FS) Option {
	return func(cfg *config) {
		if files != nil {
			cfg.templateFS = files
		}
	}
}

// WithTemplatesDir loads templates from a directory on disk.
func WithTemplatesDir(path string) Option {
	return func(cfg *config) {
		if path == "" {
			return
		}
		cfg.templateFS = os.DirFS(path)
	}
}

// WithTemplateRenderer injects a custom template renderer implementation.
func WithTemplateRenderer(renderer rendertemplate.TemplateRenderer) Option {
	return func(cfg *config) {
		if renderer != nil {
			cfg.templateRenderer = renderer
		}
	}
}

// WithTheme wires a go-theme renderer config into the template context so the
// chrome can pick up tokens and CSS variables.
func WithTheme(cfg *theme.RendererConfig) Option {
	return func(c *config) {
		c.theme = cfg
	}
}

// WithChromeClasses overrides the semantic chrome classes applied per render.
func WithChromeClasses(classes ChromeClasses) Option {
	return func(cfg *config) {
		cfg.chrome = classes
	}
}

// WithLabels sets the label markup per field key. Markup is sanitized before
// rendering; fields without an entry get a label derived from the key.
func WithLabels(labels map[string]string) Option {
	return func(cfg *config) {
		cfg.labels = labels
	}
}

// WithHelp sets the help markup per field key.
func WithHelp(help map[string]string) Option {
	return func(cfg *config) {
		cfg.help = help
	}
}

// Renderer produces a static HTML snapshot of a bound form: every field with
// its current value, required flag, and the validation text the last Validate
// wrote to the controls.
type Renderer struct {
	templates rendertemplate.TemplateRenderer
	theme     themeContext
	chrome    ChromeClasses
	labels    map[string]string
	help      map[string]string
}

// New constructs the vanilla renderer applying any provided options.
func New(options ...Option) (*Renderer, error) {
	cfg := config{templateFS: TemplatesFS()}
	for _, opt := range options {
		if opt == nil {
			continue
		}
		opt(&cfg)
	}

	if cfg.templateFS == nil {
		cfg.templateFS = TemplatesFS()
	}

	renderer := cfg.templateRenderer
	if renderer == nil {
		engine, err := gotemplate.New(
			gotemplate.WithFS(cfg.templateFS),
			gotemplate.WithExtension(".tmpl"),
		)
		if err != nil {
			return nil, fmt.Errorf("vanilla renderer: configure template renderer: %w", err)
		}
		renderer = engine
	}

	return &Renderer{
		templates: renderer,
		theme:     buildThemeContext(cfg.theme),
		chrome:    cfg.chrome.withDefaults(),
		labels:    cfg.labels,
		help:      cfg.help,
	}, nil
}

// Name reports the renderer identifier.
func (r *Renderer) Name() string {
	return "vanilla"
}

// ContentType reports the payload type produced by Render.
func (r *Renderer) ContentType() string {
	return "text/html; charset=utf-8"
}

// Render snapshots the form into HTML. Hidden fields are emitted with the
// hidden attribute so a client can toggle them without a re-render.
func (r *Renderer) Render(ctx context.Context, f Form) ([]byte, error) {
	if f == nil {
		return nil, fmt.Errorf("vanilla renderer: form is nil")
	}
	if ctx != nil {
		if err := ctx.Err(); err != nil {
			return nil, err
		}
	}
	if r.templates == nil {
		return nil, fmt.Errorf("vanilla renderer: template renderer is nil")
	}

	snapshot := f.ValidationStream().Value()

	fields := make([]fieldView, 0, len(f.Keys()))
	for _, key := range f.Keys() {
		ctrl, ok := f.Control(key)
		if !ok {
			continue
		}
		fields = append(fields, buildFieldView(key, ctrl, snapshot.Fields[key], r.labels, r.help))
	}

	result, err := r.templates.RenderTemplate("templates/form.tmpl", map[string]any{
		"fields": fields,
		"chrome": r.chrome,
		"theme":  r.theme,
		"summary": map[string]any{
			"validated":       snapshot.Validated,
			"invalid":         snapshot.Invalid,
			"valid_message":   snapshot.ValidMessage,
			"invalid_message": snapshot.InvalidMessage,
		},
	})
	if err != nil {
		return nil, fmt.Errorf("vanilla renderer: render template: %w", err)
	}
	return []byte(result), nil
}
