package session

import (
	"sort"

	"github.com/goliatone/go-formcheck/pkg/model"
	"github.com/goliatone/go-formcheck/pkg/validation"
)

// Status is the lifecycle state of one field. StatusPending marks a touched
// field whose result was cleared by a change under WithClearOnChange.
type Status string

const (
	StatusUntouched Status = "untouched"
	StatusPending   Status = "pending"
	StatusValid     Status = "valid"
	StatusInvalid   Status = "invalid"
)

// EventKind identifies a UI interaction.
type EventKind string

const (
	EventChange EventKind = "change"
	EventBlur   EventKind = "blur"
)

// Event is a UI interaction reported by the presentation layer.
type Event struct {
	Kind  EventKind `json:"kind"`
	Name  string    `json:"name"`
	Value string    `json:"value,omitempty"`
}

// Session tracks values, touched flags and results for one form.
type Session struct {
	form          model.FormModel
	validator     *validation.Validator
	locale        string
	cascade       bool
	clearOnChange bool

	initial map[string]string
	values  map[string]string
	touched map[string]bool
	results map[string]validation.Result
	order   []string

	lastChanged []string
}

// New creates a session for form. Values start from the field defaults with
// WithInitialValues applied on top.
func New(form model.FormModel, options ...Option) *Session {
	s := &Session{
		form:      form,
		validator: validation.Default(),
		initial:   form.InitialValues(),
	}
	for _, opt := range options {
		if opt == nil {
			continue
		}
		opt(s)
	}
	s.Reset()
	return s
}

// Form returns the form definition the session was built with.
func (s *Session) Form() model.FormModel {
	return s.form
}

// Locale returns the message locale.
func (s *Session) Locale() string {
	return s.locale
}

// OnChange records a new value. A touched field is revalidated (or cleared
// with WithClearOnChange); the returned bool reports whether a fresh result
// was computed for name.
func (s *Session) OnChange(name, value string) (validation.Result, bool) {
	s.lastChanged = nil
	s.track(name)
	s.values[name] = value

	var (
		result   validation.Result
		computed bool
	)
	if s.touched[name] {
		if s.clearOnChange {
			delete(s.results, name)
			s.lastChanged = append(s.lastChanged, name)
		} else {
			result = s.validate(name)
			computed = true
		}
	}

	s.revalidateDependents(name)
	return result, computed
}

// OnBlur marks the field touched and validates it.
func (s *Session) OnBlur(name string) validation.Result {
	s.lastChanged = nil
	s.track(name)
	s.touched[name] = true
	result := s.validate(name)
	s.revalidateDependents(name)
	return result
}

// Handle dispatches an event. Unknown kinds are a permissive pass that leaves
// the session untouched.
func (s *Session) Handle(event Event) (validation.Result, bool) {
	switch event.Kind {
	case EventChange:
		return s.OnChange(event.Name, event.Value)
	case EventBlur:
		return s.OnBlur(event.Name), true
	default:
		s.lastChanged = nil
		return validation.Pass(), false
	}
}

// ValidateAll validates and touches every known field and reports whether all
// of them are valid.
func (s *Session) ValidateAll() bool {
	s.lastChanged = nil
	valid := true
	for _, name := range s.order {
		s.touched[name] = true
		if result := s.validate(name); !result.Valid {
			valid = false
		}
	}
	return valid
}

// Reset restores initial values and clears results and touched flags.
func (s *Session) Reset() {
	s.values = cloneValues(s.initial)
	s.touched = make(map[string]bool)
	s.results = make(map[string]validation.Result)
	s.lastChanged = nil
	s.order = s.order[:0]
	for _, field := range s.form.Fields {
		if field.Name != "" {
			s.track(field.Name)
		}
	}
	extra := make([]string, 0, len(s.initial))
	for name := range s.initial {
		extra = append(extra, name)
	}
	sort.Strings(extra)
	for _, name := range extra {
		s.track(name)
	}
}

// Valid reports whether every known field has a result and all results are
// valid. Fields that were never validated make the form undetermined, so call
// ValidateAll before gating a submission on this.
func (s *Session) Valid() bool {
	if !s.Determined() {
		return false
	}
	for _, name := range s.order {
		if !s.results[name].Valid {
			return false
		}
	}
	return true
}

// Determined reports whether every known field has a result.
func (s *Session) Determined() bool {
	for _, name := range s.order {
		if _, ok := s.results[name]; !ok {
			return false
		}
	}
	return true
}

// Value implements validation.Lookup over the current values.
func (s *Session) Value(name string) (string, bool) {
	value, ok := s.values[name]
	return value, ok
}

// Values returns a copy of the current values.
func (s *Session) Values() map[string]string {
	return cloneValues(s.values)
}

// Fields returns the known field names: form fields in declaration order,
// then any extra names in the order they were first seen.
func (s *Session) Fields() []string {
	return append([]string(nil), s.order...)
}

// Result returns the last computed result for name.
func (s *Session) Result(name string) (validation.Result, bool) {
	result, ok := s.results[name]
	return result, ok
}

// Results returns a copy of every computed result.
func (s *Session) Results() map[string]validation.Result {
	out := make(map[string]validation.Result, len(s.results))
	for name, result := range s.results {
		out[name] = result
	}
	return out
}

// Errors returns the messages of invalid fields keyed by name.
func (s *Session) Errors() map[string]string {
	out := make(map[string]string)
	for name, result := range s.results {
		if !result.Valid {
			out[name] = result.Message
		}
	}
	return out
}

// HasErrors reports whether any computed result is invalid.
func (s *Session) HasErrors() bool {
	for _, result := range s.results {
		if !result.Valid {
			return true
		}
	}
	return false
}

// Touched reports whether name has been blurred or validated.
func (s *Session) Touched(name string) bool {
	return s.touched[name]
}

// TouchedFields returns a copy of the touched map.
func (s *Session) TouchedFields() map[string]bool {
	out := make(map[string]bool, len(s.touched))
	for name, touched := range s.touched {
		out[name] = touched
	}
	return out
}

// Status reports the lifecycle state of name.
func (s *Session) Status(name string) Status {
	result, ok := s.results[name]
	switch {
	case ok && result.Valid:
		return StatusValid
	case ok:
		return StatusInvalid
	case s.touched[name]:
		return StatusPending
	default:
		return StatusUntouched
	}
}

// Dependents lists known fields whose related field is name.
func (s *Session) Dependents(name string) []string {
	var out []string
	for _, candidate := range s.order {
		if candidate == name {
			continue
		}
		if s.fieldFor(candidate).RelatedField() == name {
			out = append(out, candidate)
		}
	}
	return out
}

// LastChanged lists the fields whose result changed during the last call,
// including dependents revalidated by WithCascade.
func (s *Session) LastChanged() []string {
	return append([]string(nil), s.lastChanged...)
}

// ApplyFieldErrors records externally produced messages (for example a
// server response already mapped to field names) as invalid results. The
// first message per field wins. Messages for unknown fields are returned so
// callers can show them at form level.
func (s *Session) ApplyFieldErrors(fields map[string][]string) []string {
	s.lastChanged = nil
	names := make([]string, 0, len(fields))
	for name := range fields {
		names = append(names, name)
	}
	sort.Strings(names)

	var unmapped []string
	for _, name := range names {
		messages := fields[name]
		if len(messages) == 0 {
			continue
		}
		if !s.known(name) {
			unmapped = append(unmapped, messages...)
			continue
		}
		s.touched[name] = true
		s.results[name] = validation.Invalid(validation.CodeServer, messages[0])
		s.lastChanged = append(s.lastChanged, name)
	}
	return unmapped
}

func (s *Session) validate(name string) validation.Result {
	result := s.validator.ValidateField(s.fieldFor(name), s.values[name], validation.Context{
		Related: s,
		Locale:  s.locale,
	})
	s.results[name] = result
	s.lastChanged = append(s.lastChanged, name)
	return result
}

func (s *Session) revalidateDependents(name string) {
	if !s.cascade {
		return
	}
	for _, dependent := range s.Dependents(name) {
		if !s.touched[dependent] {
			continue
		}
		s.validate(dependent)
	}
}

func (s *Session) fieldFor(name string) model.Field {
	if field, ok := s.form.Field(name); ok {
		return field
	}
	return model.Field{Name: name, Kind: model.FieldKind(name)}
}

func (s *Session) known(name string) bool {
	for _, candidate := range s.order {
		if candidate == name {
			return true
		}
	}
	return false
}

func (s *Session) track(name string) {
	if s.known(name) {
		return
	}
	s.order = append(s.order, name)
	if _, ok := s.values[name]; !ok {
		s.values[name] = ""
	}
}

func cloneValues(src map[string]string) map[string]string {
	out := make(map[string]string, len(src))
	for name, value := range src {
		out[name] = value
	}
	return out
}
