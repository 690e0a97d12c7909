package validation

// Result is the outcome of validating one field value. Message is empty when
// Valid is true. Code is a stable message key used for localisation; Args
// carries the values interpolated into the message.
type Result struct {
	Valid   bool   `json:"isValid"`
	Message string `json:"message,omitempty"`
	Code    string `json:"code,omitempty"`
	Args    []any  `json:"args,omitempty"`
}

// Pass is the result every successful rule returns.
func Pass() Result {
	return Result{Valid: true}
}

// Fail builds an invalid result from a message code, using the default
// English message for that code.
func Fail(code string, args ...any) Result {
	return Result{
		Valid:   false,
		Message: DefaultMessage(code, args...),
		Code:    code,
		Args:    args,
	}
}

// Invalid builds an invalid result with an explicit message.
func Invalid(code, message string) Result {
	return Result{Valid: false, Message: message, Code: code}
}

// Lookup resolves the current value of another field on the same form.
type Lookup interface {
	Value(name string) (string, bool)
}

// Values is a Lookup backed by a plain map.
type Values map[string]string

// Value implements Lookup.
func (v Values) Value(name string) (string, bool) {
	if v == nil {
		return "", false
	}
	value, ok := v[name]
	return value, ok
}

// LookupFunc adapts a function into a Lookup.
type LookupFunc func(name string) (string, bool)

// Value implements Lookup.
func (fn LookupFunc) Value(name string) (string, bool) {
	if fn == nil {
		return "", false
	}
	return fn(name)
}

// Context carries the inputs a rule may need besides the value itself.
type Context struct {
	// Related resolves sibling field values for dependent rules.
	Related Lookup
	// Locale selects the message language when the validator has a
	// Translator. Empty keeps the default English messages.
	Locale string
}

func (c Context) related(name string) (string, bool) {
	if c.Related == nil || name == "" {
		return "", false
	}
	return c.Related.Value(name)
}
