package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"log"
	"net/url"
	"os"
	"os/signal"
	"strings"

	"github.com/goliatone/go-formcheck/internal/config"
	"github.com/goliatone/go-formcheck/pkg/formdef"
	"github.com/goliatone/go-formcheck/pkg/i18n"
	"github.com/goliatone/go-formcheck/pkg/model"
	"github.com/goliatone/go-formcheck/pkg/openapi"
	"github.com/goliatone/go-formcheck/pkg/orchestrator"
	"github.com/goliatone/go-formcheck/pkg/render"
	"github.com/goliatone/go-formcheck/pkg/renderers/tui"
	"github.com/goliatone/go-formcheck/pkg/renderers/vanilla"
	"github.com/goliatone/go-formcheck/pkg/session"
	"github.com/goliatone/go-formcheck/pkg/validation"
)

func main() {
	log.SetFlags(0)
	log.SetPrefix("formcheck: ")

	cfg, err := config.Load()
	if err != nil {
		log.Fatal(err)
	}

	formID := flag.String("form", cfg.Form, "form id (or operation id with -openapi)")
	defsDir := flag.String("defs", cfg.DefsDir, "directory of extra form definitions (JSON or YAML)")
	openAPI := flag.String("openapi", cfg.OpenAPI, "OpenAPI document path or URL to build the form from")
	operation := flag.String("operation", "", "operation id inside -openapi (defaults to -form)")
	presets := flag.String("presets", cfg.Presets, "YAML/JSON preset overrides keyed by form id")
	localesDir := flag.String("locales", cfg.LocalesDir, "directory containing locales/*.yaml message catalogs")
	rendererName := flag.String("renderer", cfg.Renderer, "renderer to use: tui or html")
	format := flag.String("format", cfg.Format, "tui output format: json, form or pretty")
	values := flag.String("values", "", "prefilled values as a query string, e.g. 'email=a@b.co&name=Ada'")
	serverErrors := flag.String("errors", "", "server errors as a query string keyed by field path")
	locale := flag.String("locale", cfg.Locale, "message locale or Accept-Language value")
	output := flag.String("output", "", "output file (stdout if empty)")
	list := flag.Bool("list", false, "list available forms and exit")
	check := flag.Bool("check", false, "report configuration issues for the available forms and exit")
	cascade := flag.Bool("cascade", cfg.Cascade, "revalidate dependent fields (confirmPassword) when their source changes")
	clearOnChange := flag.Bool("clear-on-change", cfg.ClearOnChange, "clear a field's feedback while it is edited")
	maxAttempts := flag.Int("max-attempts", cfg.MaxAttempts, "tui: give up after this many invalid answers per field (0 = unlimited)")
	flag.Parse()

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	bundle, err := loadBundle(*localesDir)
	if err != nil {
		log.Fatal(err)
	}
	validator := validation.New(validation.WithTranslator(bundle))

	store, err := loadStore(*defsDir)
	if err != nil {
		log.Fatal(err)
	}

	var source *openapi.Source
	if *openAPI != "" {
		src, err := parseSource(*openAPI)
		if err != nil {
			log.Fatal(err)
		}
		source = &src
	}
	importer := openapi.NewImporter(openapi.WithHTTPFallback(cfg.HTTPTimeout))

	if *list || *check {
		forms, err := availableForms(ctx, store, importer, source)
		if err != nil {
			log.Fatal(err)
		}
		if *list {
			for _, form := range forms {
				fmt.Printf("%s\t%s\n", form.ID, strings.Join(form.Names(), ","))
			}
			return
		}
		if reportIssues(forms) {
			os.Exit(1)
		}
		return
	}

	var sessionOptions []session.Option
	if *cascade {
		sessionOptions = append(sessionOptions, session.WithCascade())
	}
	if *clearOnChange {
		sessionOptions = append(sessionOptions, session.WithClearOnChange())
	}

	outputFormat, ok := tui.ParseOutputFormat(*format)
	if !ok {
		log.Fatalf("unsupported format %q", *format)
	}
	registry, err := buildRegistry(validator, outputFormat, *maxAttempts, sessionOptions)
	if err != nil {
		log.Fatal(err)
	}

	options := []orchestrator.Option{
		orchestrator.WithFormStore(store),
		orchestrator.WithImporter(importer),
		orchestrator.WithRegistry(registry),
		orchestrator.WithBundle(bundle),
		orchestrator.WithValidator(validator),
		orchestrator.WithSessionOptions(sessionOptions...),
		orchestrator.WithDecorators(model.LabelDecorator(nil)),
	}
	if *presets != "" {
		data, err := os.ReadFile(*presets)
		if err != nil {
			log.Fatalf("read presets: %v", err)
		}
		transformer, err := orchestrator.NewPresetTransformer(data)
		if err != nil {
			log.Fatal(err)
		}
		options = append(options, orchestrator.WithTransformer(transformer))
	}
	orch := orchestrator.New(options...)

	prefilled, err := parseQuery(*values)
	if err != nil {
		log.Fatalf("parse -values: %v", err)
	}
	payload, err := url.ParseQuery(*serverErrors)
	if err != nil {
		log.Fatalf("parse -errors: %v", err)
	}

	id := *formID
	if source != nil && *operation != "" {
		id = *operation
	}
	out, err := orch.Generate(ctx, orchestrator.Request{
		FormID:       id,
		Source:       source,
		Renderer:     *rendererName,
		Locale:       *locale,
		Values:       prefilled,
		ValidateAll:  len(prefilled) > 0 && *rendererName == vanilla.Name,
		ServerErrors: payload,
	})
	if errors.Is(err, tui.ErrAborted) || errors.Is(err, context.Canceled) {
		log.Fatal("aborted")
	}
	if err != nil {
		log.Fatal(err)
	}

	if *output != "" {
		if err := os.WriteFile(*output, out, 0o644); err != nil {
			log.Fatalf("write output: %v", err)
		}
		fmt.Printf("Form written to %s\n", *output)
		return
	}
	fmt.Println(string(out))
}

func loadBundle(dir string) (*i18n.Bundle, error) {
	if dir == "" {
		return i18n.Default(), nil
	}
	return i18n.LoadFromFS(os.DirFS(dir))
}

func loadStore(dir string) (*formdef.Store, error) {
	store, err := formdef.Builtin()
	if err != nil {
		return nil, err
	}
	if dir == "" {
		return store, nil
	}
	extra, err := formdef.LoadFS(os.DirFS(dir))
	if err != nil {
		return nil, err
	}
	if err := store.Merge(extra); err != nil {
		return nil, err
	}
	return store, nil
}

func buildRegistry(validator *validation.Validator, format tui.OutputFormat, maxAttempts int, sessionOptions []session.Option) (*render.Registry, error) {
	html, err := vanilla.New()
	if err != nil {
		return nil, err
	}
	terminal, err := tui.New(
		tui.WithValidator(validator),
		tui.WithOutputFormat(format),
		tui.WithMaxAttempts(maxAttempts),
		tui.WithSessionOptions(sessionOptions...),
	)
	if err != nil {
		return nil, err
	}
	return render.NewRegistryWith(html, terminal)
}

func availableForms(ctx context.Context, store *formdef.Store, importer *openapi.Importer, source *openapi.Source) ([]model.FormModel, error) {
	if source != nil {
		catalog, err := importer.Load(ctx, *source)
		if err != nil {
			return nil, err
		}
		return catalog.Forms()
	}
	forms := make([]model.FormModel, 0, len(store.IDs()))
	for _, id := range store.IDs() {
		form, _ := store.Form(id)
		forms = append(forms, form)
	}
	return forms, nil
}

func reportIssues(forms []model.FormModel) bool {
	found := false
	for _, form := range forms {
		for _, issue := range validation.CheckForm(form) {
			found = true
			fmt.Fprintf(os.Stderr, "%s: %v\n", form.ID, issue)
		}
	}
	return found
}

func parseSource(raw string) (openapi.Source, error) {
	path := strings.TrimSpace(raw)
	if strings.HasPrefix(path, "http://") || strings.HasPrefix(path, "https://") {
		return openapi.SourceFromURL(path)
	}
	return openapi.SourceFromFile(path), nil
}

func parseQuery(raw string) (map[string]string, error) {
	if strings.TrimSpace(raw) == "" {
		return nil, nil
	}
	parsed, err := url.ParseQuery(raw)
	if err != nil {
		return nil, err
	}
	out := make(map[string]string, len(parsed))
	for key, values := range parsed {
		if len(values) > 0 {
			out[key] = values[0]
		}
	}
	return out, nil
}
