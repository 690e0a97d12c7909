package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/goliatone/go-formcheck/pkg/formdef"
	"github.com/goliatone/go-formcheck/pkg/model"
	"github.com/goliatone/go-formcheck/pkg/openapi"
	"github.com/goliatone/go-formcheck/pkg/validation"
)

const extensionPrefix = "x-formcheck-"

type violation struct {
	file     string
	location string
	message  string
}

func main() {
	flag.Usage = func() {
		fmt.Fprintf(flag.CommandLine.Output(), "Usage: %s [paths...]\n", filepath.Base(os.Args[0]))
		fmt.Fprintf(flag.CommandLine.Output(), "\nLint form definitions and OpenAPI documents for formcheck configuration issues.\n")
	}
	flag.Parse()

	paths := flag.Args()
	if len(paths) == 0 {
		flag.Usage()
		os.Exit(2)
	}

	ctx := context.Background()
	importer := openapi.NewImporter()

	var violations []violation
	for _, path := range paths {
		linted, err := lintFile(ctx, importer, path)
		if err != nil {
			fmt.Fprintf(os.Stderr, "lint %s: %v\n", path, err)
			os.Exit(1)
		}
		violations = append(violations, linted...)
	}

	if len(violations) > 0 {
		sort.Slice(violations, func(i, j int) bool {
			if violations[i].file == violations[j].file {
				if violations[i].location == violations[j].location {
					return violations[i].message < violations[j].message
				}
				return violations[i].location < violations[j].location
			}
			return violations[i].file < violations[j].file
		})
		for _, v := range violations {
			fmt.Fprintf(os.Stderr, "%s: %s -> %s\n", v.file, v.location, v.message)
		}
		os.Exit(1)
	}
}

func lintFile(ctx context.Context, importer *openapi.Importer, path string) ([]violation, error) {
	raw, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read file: %w", err)
	}
	if !isOpenAPI(raw) {
		forms, err := formdef.Parse(raw, path)
		if err != nil {
			return nil, err
		}
		var result []violation
		for _, form := range forms {
			result = append(result, lintForm(path, form)...)
		}
		return result, nil
	}

	catalog, err := importer.ParseBytes(ctx, raw)
	if err != nil {
		return nil, fmt.Errorf("parse operations: %w", err)
	}

	var result []violation
	for _, id := range catalog.OperationIDs() {
		op, _ := catalog.Operation(id)
		if !op.RequestBody.HasProperties() {
			continue
		}
		base := "operation." + id + ".requestBody"
		result = append(result, lintExtensions(path, base, op.RequestBody.Extensions, true)...)

		names := make([]string, 0, len(op.RequestBody.Properties))
		for name := range op.RequestBody.Properties {
			names = append(names, name)
		}
		sort.Strings(names)
		for _, name := range names {
			property := op.RequestBody.Properties[name]
			result = append(result, lintExtensions(path, base+".properties."+name, property.Extensions, false)...)
		}

		form, err := catalog.Form(id)
		if err != nil {
			continue
		}
		result = append(result, lintForm(path, form)...)
	}
	return result, nil
}

func lintForm(file string, form model.FormModel) []violation {
	var result []violation
	for _, issue := range validation.CheckForm(form) {
		result = append(result, violation{
			file:     file,
			location: formLocation(form.ID, issue.Field),
			message:  issue.Message,
		})
	}
	validator := validation.Default()
	for _, field := range form.Fields {
		if field.Kind == "" || field.Kind == model.FieldKindText || validator.HasRule(string(field.Kind)) {
			continue
		}
		result = append(result, violation{
			file:     file,
			location: formLocation(form.ID, field.Name),
			message:  fmt.Sprintf("unknown kind %q has no rule and validates as plain text", field.Kind),
		})
	}
	return result
}

func lintExtensions(file, location string, extensions map[string]any, body bool) []violation {
	keys := make([]string, 0, len(extensions))
	for key := range extensions {
		if strings.HasPrefix(key, extensionPrefix) {
			keys = append(keys, key)
		}
	}
	sort.Strings(keys)

	var result []violation
	report := func(message string) {
		result = append(result, violation{file: file, location: location, message: message})
	}
	for _, key := range keys {
		value := extensions[key]
		switch key {
		case openapi.KindExtension, openapi.RelatedExtension:
			if body {
				report(fmt.Sprintf("%s belongs on a property, not the request body", key))
			} else if _, ok := value.(string); !ok {
				report(fmt.Sprintf("%s must be a string, found %T", key, value))
			}
		case openapi.MetadataExtension:
			if _, ok := value.(map[string]any); !ok {
				report(fmt.Sprintf("%s must be an object, found %T", key, value))
			}
		case openapi.OrderExtension:
			if !body {
				report(fmt.Sprintf("%s belongs on the request body schema", key))
			} else if _, ok := value.([]any); !ok {
				report(fmt.Sprintf("%s must be an array, found %T", key, value))
			}
		default:
			report(fmt.Sprintf("unsupported extension %s", key))
		}
	}
	return result
}

func isOpenAPI(raw []byte) bool {
	var probe map[string]any
	if err := yaml.Unmarshal(raw, &probe); err != nil {
		return false
	}
	_, ok := probe["openapi"]
	return ok
}

func formLocation(formID, field string) string {
	if field == "" {
		return "form." + formID
	}
	return "form." + formID + ".fields." + field
}
