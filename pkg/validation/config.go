package validation

import (
	"fmt"
	"regexp"
	"strings"

	"github.com/goliatone/go-formcheck/pkg/model"
)

// ConfigIssue describes a problem with a form definition that validation
// would otherwise paper over, such as a dependent field pointing at a field
// the form does not define.
type ConfigIssue struct {
	Field   string `json:"field,omitempty"`
	Code    string `json:"code"`
	Message string `json:"message"`
}

func (i ConfigIssue) Error() string {
	if i.Field == "" {
		return i.Message
	}
	return fmt.Sprintf("%s: %s", i.Field, i.Message)
}

// CheckForm inspects a form definition. It never changes how fields validate;
// a confirmPassword field whose related field is missing still passes at
// validation time.
func CheckForm(form model.FormModel) []ConfigIssue {
	var issues []ConfigIssue
	seen := make(map[string]struct{}, len(form.Fields))

	for idx, field := range form.Fields {
		name := strings.TrimSpace(field.Name)
		if name == "" {
			issues = append(issues, ConfigIssue{
				Code:    CodeEmptyFieldName,
				Message: fmt.Sprintf("field at index %d has no name", idx),
			})
			continue
		}
		if _, exists := seen[name]; exists {
			issues = append(issues, ConfigIssue{
				Field:   name,
				Code:    CodeDuplicateField,
				Message: "field name is defined more than once",
			})
		}
		seen[name] = struct{}{}

		if pattern := strings.TrimSpace(field.Pattern); pattern != "" {
			if _, err := regexp.Compile(pattern); err != nil {
				issues = append(issues, ConfigIssue{
					Field:   name,
					Code:    CodeInvalidPattern,
					Message: fmt.Sprintf("pattern does not compile: %v", err),
				})
			}
		}

		if field.MinLength > 0 && field.MaxLength > 0 && field.MinLength > field.MaxLength {
			issues = append(issues, ConfigIssue{
				Field:   name,
				Code:    CodeLengthBounds,
				Message: fmt.Sprintf("minLength %d exceeds maxLength %d", field.MinLength, field.MaxLength),
			})
		}
	}

	for _, field := range form.Fields {
		related := field.RelatedField()
		if related == "" {
			continue
		}
		if _, ok := form.Field(related); !ok {
			issues = append(issues, ConfigIssue{
				Field:   field.Name,
				Code:    CodeMissingRelated,
				Message: fmt.Sprintf("related field %q is not defined on the form", related),
			})
		}
	}

	return issues
}
