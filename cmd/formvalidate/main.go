package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
	"time"

	gotemplatepkg "github.com/goliatone/go-template"
	"gopkg.in/yaml.v3"

	"github.com/goliatone/go-formvalidate"
	"github.com/goliatone/go-formvalidate/pkg/catalog"
	"github.com/goliatone/go-formvalidate/pkg/forms"
	"github.com/goliatone/go-formvalidate/pkg/messages"
	pkgopenapi "github.com/goliatone/go-formvalidate/pkg/openapi"
	"github.com/goliatone/go-formvalidate/pkg/prompt"
	"github.com/goliatone/go-formvalidate/pkg/render"
	"github.com/goliatone/go-formvalidate/pkg/render/template/gotemplate"
	"github.com/goliatone/go-formvalidate/pkg/validation"
)

const (
	exitValid   = 0
	exitInvalid = 1
	exitError   = 2
)

type options struct {
	source      string
	schema      string
	values      string
	catalogDir  string
	config      string
	locale      string
	engine      string
	logLevel    string
	timeout     time.Duration
	interactive bool
	list        bool
}

func main() {
	os.Exit(run(context.Background(), os.Args[1:], os.Stdin, os.Stdout, os.Stderr, nil))
}

// run executes the command and returns the exit status. driver overrides the
// terminal prompt driver when non-nil.
func run(ctx context.Context, args []string, stdin io.Reader, stdout, stderr io.Writer, driver prompt.Driver) int {
	flags := flag.NewFlagSet("formvalidate", flag.ContinueOnError)
	flags.SetOutput(stderr)
	flags.Usage = func() {
		fmt.Fprintf(flags.Output(), "Usage: %s -source openapi.yaml -schema Name [-values values.yaml | -interactive]\n", filepath.Base(os.Args[0]))
		fmt.Fprintf(flags.Output(), "\nValidate values against an OpenAPI component schema and print the first message per field.\n\n")
		flags.PrintDefaults()
	}

	var opts options
	flags.StringVar(&opts.source, "source", "", "OpenAPI document path or URL")
	flags.StringVar(&opts.schema, "schema", "", "component schema to build the form from")
	flags.StringVar(&opts.values, "values", "", "JSON or YAML values file (- for stdin)")
	flags.StringVar(&opts.catalogDir, "catalog", "", "directory of JSON/YAML message catalogues layered over the built-in one")
	flags.StringVar(&opts.config, "config", "", "YAML display configuration (display, locale)")
	flags.StringVar(&opts.locale, "locale", "", "message locale, overrides the configuration file")
	flags.StringVar(&opts.engine, "engine", "pongo2", "message template engine: pongo2 or go-template")
	flags.StringVar(&opts.logLevel, "log-level", "warn", "log level: debug, info, warn, error")
	flags.DurationVar(&opts.timeout, "timeout", 10*time.Second, "timeout for remote documents")
	flags.BoolVar(&opts.interactive, "interactive", false, "prompt for every field")
	flags.BoolVar(&opts.list, "list", false, "list the component schemas and exit")
	if err := flags.Parse(args); err != nil {
		if errors.Is(err, flag.ErrHelp) {
			return exitValid
		}
		return exitError
	}

	logger, err := newLogger(stderr, opts.logLevel)
	if err != nil {
		fmt.Fprintf(stderr, "formvalidate: %v\n", err)
		return exitError
	}

	code, err := execute(ctx, opts, stdin, stdout, logger, driver)
	if err != nil {
		logger.Error("formvalidate failed", "error", err)
		fmt.Fprintf(stderr, "formvalidate: %v\n", err)
		return exitError
	}
	return code
}

func execute(ctx context.Context, opts options, stdin io.Reader, stdout io.Writer, logger *slog.Logger, driver prompt.Driver) (int, error) {
	src, err := pkgopenapi.ParseSource(opts.source)
	if err != nil {
		return exitError, err
	}
	loader := formvalidate.NewLoader(pkgopenapi.WithHTTPFallback(opts.timeout))
	doc, err := loader.Load(ctx, src)
	if err != nil {
		return exitError, err
	}
	logger.Debug("document loaded", "location", doc.Location(), "bytes", len(doc.Raw()))

	if opts.list {
		names, err := pkgopenapi.SchemaNames(ctx, doc)
		if err != nil {
			return exitError, err
		}
		for _, name := range names {
			fmt.Fprintln(stdout, name)
		}
		return exitValid, nil
	}

	values, err := readValues(opts.values, stdin)
	if err != nil {
		return exitError, err
	}
	group, err := pkgopenapi.BuildForm(ctx, doc, opts.schema, pkgopenapi.WithValues(values))
	if err != nil {
		return exitError, err
	}

	cfg, cat, err := loadConfig(opts, logger)
	if err != nil {
		return exitError, err
	}
	form, err := formvalidate.Attach(group, &cfg)
	if err != nil {
		return exitError, err
	}
	defer form.Close()
	logger.Debug("form built", "schema", opts.schema, "fields", len(form.Messages.Controls()))

	if opts.interactive {
		if driver == nil {
			driver = prompt.NewSurveyDriver()
		}
		describe := func(selected *validation.ValidationError) string {
			return describeError(cfg, cat, selected)
		}
		if err := prompt.Fill(ctx, driver, group, prompt.WithMessages(describe)); err != nil {
			return exitError, err
		}
	}

	msgs, err := form.Submit()
	if err != nil {
		return exitError, err
	}
	for _, msg := range msgs {
		fmt.Fprintf(stdout, "%s: %s\n", msg.Path, msg.Text)
	}
	// Arrays and groups carry their own failures (minItems, required lists)
	// which the message component does not cover.
	forms.Walk(group, func(path string, control forms.Control) bool {
		if _, leaf := control.(*forms.FormControl); leaf || path == "" {
			return true
		}
		if selected := validation.FirstError(control); selected != nil {
			fmt.Fprintf(stdout, "%s: %s\n", path, describeError(cfg, cat, selected))
		}
		return true
	})

	if !group.Valid() {
		logger.Info("form invalid", "messages", len(msgs))
		return exitInvalid, nil
	}
	fmt.Fprintln(stdout, "valid")
	return exitValid, nil
}

func loadConfig(opts options, logger *slog.Logger) (messages.Config, *catalog.Catalog, error) {
	cfg := messages.DefaultConfig()
	if opts.config != "" {
		data, err := os.ReadFile(opts.config)
		if err != nil {
			return cfg, nil, fmt.Errorf("read config: %w", err)
		}
		if cfg, err = messages.LoadConfig(data); err != nil {
			return cfg, nil, err
		}
	}
	if opts.locale != "" {
		cfg.Locale = opts.locale
	}

	cat, err := formvalidate.DefaultCatalog()
	if err != nil {
		return cfg, nil, err
	}
	if opts.catalogDir != "" {
		if err := cat.MergeFS(os.DirFS(opts.catalogDir)); err != nil {
			return cfg, nil, err
		}
	}
	cfg.Locale = cat.Match(cfg.Locale)

	renderOptions := []render.Option{
		render.WithTranslator(cat),
		render.WithOutput(render.OutputText),
	}
	switch strings.TrimSpace(opts.engine) {
	case "", "pongo2":
	case "go-template":
		engine, err := gotemplate.NewNative(gotemplatepkg.WithTemplateFunc(render.TemplateI18nFuncs(cat, render.TemplateI18nConfig{})))
		if err != nil {
			return cfg, nil, err
		}
		renderOptions = append(renderOptions, render.WithEngine(engine))
	default:
		return cfg, nil, fmt.Errorf("unknown template engine %q", opts.engine)
	}
	renderer, err := render.NewMessageRenderer(renderOptions...)
	if err != nil {
		return cfg, nil, err
	}
	cfg.Catalog = cat
	cfg.Renderer = renderer
	cfg.Logger = logger
	return cfg, cat, nil
}

// describeError renders a failure the way the message component would for a
// failure without a custom message.
func describeError(cfg messages.Config, cat *catalog.Catalog, selected *validation.ValidationError) string {
	if selected.HasMessage() {
		return selected.Message()
	}
	tpl, ok := cat.Template(cfg.Locale, selected.Key)
	if !ok {
		return selected.Key
	}
	data := make(map[string]any, len(selected.Payload)+1)
	for key, value := range selected.Payload {
		data[key] = value
	}
	data["key"] = selected.Key
	text, err := cfg.Renderer.RenderMessage(cfg.Locale, tpl, data)
	if err != nil {
		cfg.Logger.Warn("render message", "key", selected.Key, "error", err)
		return selected.Key
	}
	return text
}

func readValues(path string, stdin io.Reader) (map[string]any, error) {
	path = strings.TrimSpace(path)
	if path == "" {
		return nil, nil
	}
	var (
		data []byte
		err  error
	)
	if path == "-" {
		data, err = io.ReadAll(stdin)
	} else {
		data, err = os.ReadFile(path)
	}
	if err != nil {
		return nil, fmt.Errorf("read values: %w", err)
	}
	// YAML is a superset of JSON, so one decoder covers both.
	var values map[string]any
	if err := yaml.Unmarshal(data, &values); err != nil {
		return nil, fmt.Errorf("parse values: %w", err)
	}
	return values, nil
}

func newLogger(w io.Writer, level string) (*slog.Logger, error) {
	var lvl slog.Level
	if err := lvl.UnmarshalText([]byte(strings.TrimSpace(level))); err != nil {
		return nil, fmt.Errorf("invalid log level %q", level)
	}
	return slog.New(slog.NewTextHandler(w, &slog.HandlerOptions{Level: lvl})), nil
}
