package i18n

import (
	"embed"
	"errors"
	"fmt"
	"io/fs"
	"sort"
	"strings"

	"golang.org/x/text/language"
	"golang.org/x/text/message"
	"golang.org/x/text/message/catalog"
	"gopkg.in/yaml.v3"
)

// BaseLocale is the fallback locale every bundle must define.
const BaseLocale = "en"

// ErrMissingMessage is returned by Translate when no locale defines the key.
var ErrMissingMessage = errors.New("i18n: message not found")

//go:embed locales/*.yaml
var embeddedLocales embed.FS

var defaultBundle = mustLoadEmbedded()

// LocaleCatalog is one locale's message formats keyed by message code.
type LocaleCatalog struct {
	Locale   string            `yaml:"locale"`
	Messages map[string]string `yaml:"messages"`
}

// Bundle holds message catalogs for a set of locales and resolves requested
// locales to the closest supported one.
type Bundle struct {
	messages map[string]map[string]string
	names    []string
	tags     []language.Tag
	matcher  language.Matcher
	catalog  *catalog.Builder
}

// Default returns the bundle built from the embedded catalogs.
func Default() *Bundle {
	return defaultBundle
}

// LoadEmbedded loads the catalogs shipped with the package.
func LoadEmbedded() (*Bundle, error) {
	return LoadFromFS(embeddedLocales)
}

// LoadFromFS loads every locales/*.yaml file in fsys.
func LoadFromFS(fsys fs.FS) (*Bundle, error) {
	if fsys == nil {
		return nil, errors.New("i18n: filesystem is required")
	}
	paths, err := fs.Glob(fsys, "locales/*.yaml")
	if err != nil {
		return nil, fmt.Errorf("i18n: glob catalogs: %w", err)
	}
	if len(paths) == 0 {
		return nil, errors.New("i18n: no catalog files found")
	}
	sort.Strings(paths)

	files := make([]LocaleCatalog, 0, len(paths))
	for _, path := range paths {
		data, err := fs.ReadFile(fsys, path)
		if err != nil {
			return nil, fmt.Errorf("i18n: read %s: %w", path, err)
		}
		var file LocaleCatalog
		if err := yaml.Unmarshal(data, &file); err != nil {
			return nil, fmt.Errorf("i18n: parse %s: %w", path, err)
		}
		file.Locale = strings.TrimSpace(file.Locale)
		if file.Locale == "" {
			return nil, fmt.Errorf("i18n: %s: locale is required", path)
		}
		files = append(files, file)
	}
	return NewBundle(files...)
}

// NewBundle builds a bundle from already parsed catalogs. Use Messages to
// build the input from plain maps.
func NewBundle(files ...LocaleCatalog) (*Bundle, error) {
	b := &Bundle{
		messages: make(map[string]map[string]string),
		catalog:  catalog.NewBuilder(catalog.Fallback(language.Make(BaseLocale))),
	}

	for _, file := range files {
		if _, exists := b.messages[file.Locale]; exists {
			return nil, fmt.Errorf("i18n: locale %q defined more than once", file.Locale)
		}
		tag, err := language.Parse(file.Locale)
		if err != nil {
			return nil, fmt.Errorf("i18n: parse locale %q: %w", file.Locale, err)
		}

		messages := make(map[string]string, len(file.Messages))
		for key, value := range file.Messages {
			key = strings.TrimSpace(key)
			if key == "" {
				return nil, fmt.Errorf("i18n: locale %q has a blank message key", file.Locale)
			}
			messages[key] = value
			if err := b.catalog.SetString(tag, key, value); err != nil {
				return nil, fmt.Errorf("i18n: register %s/%s: %w", file.Locale, key, err)
			}
		}
		b.messages[file.Locale] = messages
	}

	if _, ok := b.messages[BaseLocale]; !ok {
		return nil, fmt.Errorf("i18n: base locale %s is not defined", BaseLocale)
	}

	// The matcher falls back to its first tag, so the base locale leads.
	b.names = append(b.names, BaseLocale)
	for name := range b.messages {
		if name != BaseLocale {
			b.names = append(b.names, name)
		}
	}
	sort.Strings(b.names[1:])
	for _, name := range b.names {
		b.tags = append(b.tags, language.MustParse(name))
	}
	b.matcher = language.NewMatcher(b.tags)
	return b, nil
}

// Messages wraps a locale and its messages for NewBundle.
func Messages(locale string, messages map[string]string) LocaleCatalog {
	return LocaleCatalog{Locale: strings.TrimSpace(locale), Messages: messages}
}

// Locales returns the supported locales, base locale first.
func (b *Bundle) Locales() []string {
	if b == nil {
		return nil
	}
	return append([]string(nil), b.names...)
}

// Match resolves a requested locale (for example "es-MX" or an
// Accept-Language header value) to the closest supported locale.
func (b *Bundle) Match(requested string) string {
	if b == nil || len(b.names) == 0 {
		return BaseLocale
	}
	requested = strings.TrimSpace(requested)
	if requested == "" {
		return BaseLocale
	}
	wanted, _, err := language.ParseAcceptLanguage(requested)
	if err != nil || len(wanted) == 0 {
		return BaseLocale
	}
	_, idx, confidence := b.matcher.Match(wanted...)
	if confidence == language.No || idx < 0 || idx >= len(b.names) {
		return BaseLocale
	}
	return b.names[idx]
}

// Message returns the raw message format for key, falling back to the base
// locale.
func (b *Bundle) Message(locale, key string) (string, bool) {
	if b == nil {
		return "", false
	}
	name := b.Match(locale)
	if value, ok := b.messages[name][key]; ok {
		return value, true
	}
	value, ok := b.messages[BaseLocale][key]
	return value, ok
}

// Translate implements validation.Translator and render.Translator.
func (b *Bundle) Translate(locale, key string, args ...any) (string, error) {
	if b == nil {
		return "", ErrMissingMessage
	}
	key = strings.TrimSpace(key)
	format, ok := b.Message(locale, key)
	if !ok {
		return "", fmt.Errorf("%w: %s", ErrMissingMessage, key)
	}

	name := b.Match(locale)
	if _, defined := b.messages[name][key]; !defined {
		name = BaseLocale
	}
	printer := message.NewPrinter(language.MustParse(name), message.Catalog(b.catalog))
	if !strings.Contains(format, "%") {
		return printer.Sprintf(key), nil
	}
	return printer.Sprintf(key, args...), nil
}

func mustLoadEmbedded() *Bundle {
	bundle, err := LoadEmbedded()
	if err != nil {
		panic(err)
	}
	return bundle
}
