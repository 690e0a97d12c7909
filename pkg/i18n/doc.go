// Package i18n ships the message catalogs used to localise validation
// messages and form labels. Catalogs are YAML files (locale + messages) that
// are registered with golang.org/x/text so requested locales such as "es-MX"
// resolve to the closest supported catalog and printf style arguments are
// formatted per locale. A Bundle satisfies validation.Translator.
package i18n
