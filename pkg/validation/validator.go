package validation

import (
	"regexp"
	"strings"
	"unicode/utf8"

	"github.com/goliatone/go-formcheck/pkg/model"
)

// Validator applies baseline constraints and the rule table to field values.
// It holds no state that changes after construction, so one instance can be
// shared by any number of sessions.
type Validator struct {
	rules      map[string]Rule
	overridden map[string]struct{}
	translator Translator
}

// Option configures a Validator.
type Option func(*Validator)

// WithRule registers or replaces the rule for a field name or kind.
func WithRule(key string, rule Rule) Option {
	return func(v *Validator) {
		key = strings.TrimSpace(key)
		if key == "" {
			return
		}
		if rule == nil {
			delete(v.rules, key)
		} else {
			v.rules[key] = rule
		}
		v.overridden[key] = struct{}{}
	}
}

// WithTranslator localises failure messages for Context.Locale.
func WithTranslator(t Translator) Option {
	return func(v *Validator) {
		v.translator = t
	}
}

// WithoutBuiltins drops the built-in rule table. Baseline constraints still
// apply.
func WithoutBuiltins() Option {
	return func(v *Validator) {
		for key := range v.rules {
			delete(v.rules, key)
			v.overridden[key] = struct{}{}
		}
	}
}

// New constructs a Validator seeded with BuiltinRules.
func New(options ...Option) *Validator {
	v := &Validator{
		rules:      BuiltinRules(),
		overridden: make(map[string]struct{}),
	}
	for _, opt := range options {
		if opt == nil {
			continue
		}
		opt(v)
	}
	return v
}

var defaultValidator = New()

// Default returns the shared validator with the built-in rules.
func Default() *Validator {
	return defaultValidator
}

// Validate runs the default validator for a field identified only by name.
func Validate(name, value string, ctx Context) Result {
	return defaultValidator.Validate(name, value, ctx)
}

// Validate validates a value for a field known only by name. The name doubles
// as the kind tag, so "email" gets the email rule and unknown names pass.
func (v *Validator) Validate(name, value string, ctx Context) Result {
	return v.ValidateField(model.Field{Name: name, Kind: model.FieldKind(name)}, value, ctx)
}

// ValidateField validates value against the field's baseline constraints and
// then the rule resolved for its name or kind. The first failure wins.
func (v *Validator) ValidateField(field model.Field, value string, ctx Context) Result {
	value = trimValue(value)

	if result := baseline(field, value); !result.Valid {
		return v.localize(result, ctx)
	}

	rule := v.ruleFor(field)
	if rule == nil {
		return Pass()
	}

	return v.localize(rule(value, LookupFunc(ctx.related)), ctx)
}

// HasRule reports whether a rule is registered for key.
func (v *Validator) HasRule(key string) bool {
	_, ok := v.rules[key]
	return ok
}

func (v *Validator) ruleFor(field model.Field) Rule {
	key := field.Name
	rule, ok := v.rules[key]
	if !ok {
		key = string(field.Kind)
		rule, ok = v.rules[key]
	}
	if !ok {
		return nil
	}

	if key == string(model.FieldKindConfirmPassword) && !v.isOverridden(key) {
		if target := field.RelatedField(); target != "" && target != model.DefaultPasswordField {
			return ConfirmRule(target)
		}
	}
	return rule
}

func (v *Validator) isOverridden(key string) bool {
	_, ok := v.overridden[key]
	return ok
}

func (v *Validator) localize(result Result, ctx Context) Result {
	if result.Valid {
		return Pass()
	}
	return Localize(result, ctx.Locale, v.translator)
}

func baseline(field model.Field, value string) Result {
	if value == "" {
		if field.Required {
			return Fail(CodeRequired)
		}
		return Pass()
	}

	length := utf8.RuneCountInString(value)
	if field.MinLength > 0 && length < field.MinLength {
		return Fail(CodeMinLength, field.MinLength)
	}
	if field.MaxLength > 0 && length > field.MaxLength {
		return Fail(CodeMaxLength, field.MaxLength)
	}

	if expr := compilePattern(field.Pattern); expr != nil && !expr.MatchString(value) {
		if msg := strings.TrimSpace(field.PatternMessage); msg != "" {
			return Invalid(CodePatternCustom, msg)
		}
		return Fail(CodePattern)
	}
	return Pass()
}

// compilePattern anchors the expression the way the HTML pattern attribute
// does. Invalid expressions are ignored here and reported by CheckForm.
func compilePattern(pattern string) *regexp.Regexp {
	pattern = strings.TrimSpace(pattern)
	if pattern == "" {
		return nil
	}
	expr, err := regexp.Compile("^(?:" + pattern + ")$")
	if err != nil {
		return nil
	}
	return expr
}

func trimValue(value string) string {
	return strings.TrimSpace(value)
}
