package model

// Decorator enriches a form model after it has been loaded or imported, for
// example to apply labels or inject extra fields.
type Decorator interface {
	Decorate(*FormModel) error
}

// DecoratorFunc adapts a function into a Decorator.
type DecoratorFunc func(*FormModel) error

// Decorate calls the underlying function.
func (fn DecoratorFunc) Decorate(form *FormModel) error {
	return fn(form)
}

// ApplyDecorators runs decorators in order and stops at the first error.
func ApplyDecorators(form *FormModel, decorators ...Decorator) error {
	for _, decorator := range decorators {
		if decorator == nil {
			continue
		}
		if err := decorator.Decorate(form); err != nil {
			return err
		}
	}
	return nil
}

// LabelDecorator fills in missing labels using labeler (DefaultLabeler when
// nil).
func LabelDecorator(labeler func(string) string) Decorator {
	if labeler == nil {
		labeler = DefaultLabeler
	}
	return DecoratorFunc(func(form *FormModel) error {
		for i := range form.Fields {
			if form.Fields[i].Label == "" {
				form.Fields[i].Label = labeler(form.Fields[i].Name)
			}
		}
		return nil
	})
}
