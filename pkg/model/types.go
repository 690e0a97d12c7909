package model

import internalmodel "github.com/goliatone/go-formcheck/internal/model"

// FieldKind re-exports the internal FieldKind enumeration.
type FieldKind = internalmodel.FieldKind

const (
	FieldKindText            = internalmodel.FieldKindText
	FieldKindEmail           = internalmodel.FieldKindEmail
	FieldKindPassword        = internalmodel.FieldKindPassword
	FieldKindConfirmPassword = internalmodel.FieldKindConfirmPassword
	FieldKindName            = internalmodel.FieldKindName
	FieldKindPhone           = internalmodel.FieldKindPhone
)

// DefaultPasswordField is the field confirmPassword reads by default.
const DefaultPasswordField = internalmodel.DefaultPasswordField

type Field = internalmodel.Field
type FormModel = internalmodel.FormModel

// DefaultLabeler derives a human label from a field name.
func DefaultLabeler(name string) string {
	return internalmodel.DefaultLabeler(name)
}
