package validation

import (
	"regexp"
	"unicode/utf8"

	"github.com/goliatone/go-formcheck/pkg/model"
)

// Rule validates a trimmed value. related resolves sibling field values for
// dependent rules and is never nil.
type Rule func(value string, related Lookup) Result

const (
	minPasswordLength = 8
	minNameLength     = 2
)

var (
	emailPattern = regexp.MustCompile(`^[^\s@]+@[^\s@]+\.[^\s@]+$`)
	lowerPattern = regexp.MustCompile(`[a-z]`)
	upperPattern = regexp.MustCompile(`[A-Z]`)
	digitPattern = regexp.MustCompile(`\d`)
	namePattern  = regexp.MustCompile(`^[a-zA-Z\s]+$`)
	phonePattern = regexp.MustCompile(`^\+?[\d\s\-\(\)]+$`)
)

// BuiltinRules returns a fresh copy of the built-in rule table keyed by field
// kind. Field names equal to a kind (for example "email") resolve to the same
// rule.
func BuiltinRules() map[string]Rule {
	return map[string]Rule{
		string(model.FieldKindEmail):           EmailRule,
		string(model.FieldKindPassword):        PasswordRule,
		string(model.FieldKindConfirmPassword): ConfirmRule(model.DefaultPasswordField),
		string(model.FieldKindName):            NameRule,
		string(model.FieldKindPhone):           PhoneRule,
	}
}

// EmailRule checks a local@domain.tld shape.
func EmailRule(value string, _ Lookup) Result {
	if !emailPattern.MatchString(value) {
		return Fail(CodeEmail)
	}
	return Pass()
}

// PasswordRule checks length, lowercase, uppercase and digit in that order.
func PasswordRule(value string, _ Lookup) Result {
	switch {
	case utf8.RuneCountInString(value) < minPasswordLength:
		return Fail(CodePasswordLength, minPasswordLength)
	case !lowerPattern.MatchString(value):
		return Fail(CodePasswordLower)
	case !upperPattern.MatchString(value):
		return Fail(CodePasswordUpper)
	case !digitPattern.MatchString(value):
		return Fail(CodePasswordDigit)
	}
	return Pass()
}

// ConfirmRule returns a rule requiring the value to equal the field named
// target. The target value is compared as submitted, untrimmed. A missing
// target passes.
func ConfirmRule(target string) Rule {
	return func(value string, related Lookup) Result {
		other, ok := related.Value(target)
		if !ok {
			return Pass()
		}
		if value != other {
			return Fail(CodePasswordMatch)
		}
		return Pass()
	}
}

// NameRule checks a minimum length, then letters and spaces only.
func NameRule(value string, _ Lookup) Result {
	if utf8.RuneCountInString(value) < minNameLength {
		return Fail(CodeNameLength, minNameLength)
	}
	if !namePattern.MatchString(value) {
		return Fail(CodeNamePattern)
	}
	return Pass()
}

// PhoneRule accepts digits, spaces, dashes, parentheses and a leading plus.
func PhoneRule(value string, _ Lookup) Result {
	if !phonePattern.MatchString(value) {
		return Fail(CodePhone)
	}
	return Pass()
}

// PatternRule builds a rule from a regular expression, a message code and the
// message used when no translation exists. It is the usual way to register
// project specific kinds such as postal codes.
func PatternRule(expr *regexp.Regexp, code, message string) Rule {
	return func(value string, _ Lookup) Result {
		if expr == nil || expr.MatchString(value) {
			return Pass()
		}
		return Invalid(code, message)
	}
}
