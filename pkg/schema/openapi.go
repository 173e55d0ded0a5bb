package schema

import (
	"context"
	"errors"
	"fmt"
	"sort"
	"strings"

	"github.com/getkin/kin-openapi/openapi3"

	"github.com/goliatone/go-formbind/pkg/control"
)

// PlanForOperation loads an OpenAPI document (JSON or YAML) and derives the
// binding plan for the named operation's request body. Nested objects and
// arrays are not representable as flat bindings and are skipped; binary
// string/array properties map to file-list controls.
func PlanForOperation(ctx context.Context, document []byte, operationID string) (Plan, error) {
	if err := ctx.Err(); err != nil {
		return Plan{}, err
	}
	if len(document) == 0 {
		return Plan{}, errors.New("schema: document payload is empty")
	}
	trimmed := strings.TrimSpace(operationID)
	if trimmed == "" {
		return Plan{}, errors.New("schema: operation id is required")
	}

	loader := &openapi3.Loader{Context: ctx}
	spec, err := loader.LoadFromData(document)
	if err != nil {
		return Plan{}, fmt.Errorf("schema: load document: %w", err)
	}

	operation := findOperation(spec, trimmed)
	if operation == nil {
		return Plan{}, fmt.Errorf("schema: operation %q not found", trimmed)
	}

	body := requestBodySchema(operation)
	if body == nil {
		return Plan{}, fmt.Errorf("schema: operation %q has no request body schema", trimmed)
	}

	return PlanForSchema(trimmed, body)
}

// PlanForDocument derives the binding plan from a wrapped document, tagging
// load failures with the document's origin.
func PlanForDocument(ctx context.Context, doc Document, operationID string) (Plan, error) {
	plan, err := PlanForOperation(ctx, doc.Raw(), operationID)
	if err != nil && doc.Location() != "" {
		return Plan{}, fmt.Errorf("%w (document %s)", err, doc.Location())
	}
	return plan, err
}

// PlanForSchema derives a binding plan from an object schema directly,
// bypassing document loading.
func PlanForSchema(operationID string, src *openapi3.Schema) (Plan, error) {
	if src == nil {
		return Plan{}, errors.New("schema: schema is required")
	}

	requiredSet := make(map[string]struct{}, len(src.Required))
	for _, name := range src.Required {
		requiredSet[name] = struct{}{}
	}

	names := make([]string, 0, len(src.Properties))
	for name := range src.Properties {
		names = append(names, name)
	}
	sort.Strings(names)

	plan := Plan{OperationID: operationID}
	for _, name := range names {
		ref := src.Properties[name]
		if ref == nil || ref.Value == nil {
			continue
		}
		_, required := requiredSet[name]
		spec, ok := fieldFromProperty(name, ref.Value, required)
		if !ok {
			continue
		}
		plan.Fields = append(plan.Fields, spec)
	}
	return plan, nil
}

func findOperation(spec *openapi3.T, operationID string) *openapi3.Operation {
	if spec.Paths == nil {
		return nil
	}
	for _, item := range spec.Paths.Map() {
		if item == nil {
			continue
		}
		for _, candidate := range item.Operations() {
			if candidate != nil && candidate.OperationID == operationID {
				return candidate
			}
		}
	}
	return nil
}

func requestBodySchema(operation *openapi3.Operation) *openapi3.Schema {
	if operation.RequestBody == nil || operation.RequestBody.Value == nil {
		return nil
	}
	content := operation.RequestBody.Value.Content
	if len(content) == 0 {
		return nil
	}
	media, ok := content["application/json"]
	if !ok {
		for _, candidate := range content {
			media = candidate
			break
		}
	}
	if media == nil || media.Schema == nil {
		return nil
	}
	return media.Schema.Value
}

func fieldFromProperty(name string, src *openapi3.Schema, required bool) (FieldSpec, bool) {
	kind, ok := kindForSchema(src)
	if !ok {
		return FieldSpec{}, false
	}

	spec := FieldSpec{
		Name:        name,
		Kind:        kind,
		Required:    required,
		Label:       labelFor(name, src.Title),
		Description: src.Description,
		Format:      src.Format,
	}
	spec.Constraints = constraintsFor(src)
	return spec, true
}

func kindForSchema(src *openapi3.Schema) (control.Kind, bool) {
	switch firstType(src.Type) {
	case "string":
		switch src.Format {
		case "date":
			return control.KindDate, true
		case "date-time":
			return control.KindDateTime, true
		case "time":
			return control.KindTime, true
		case "binary", "byte":
			return control.KindFileList, true
		default:
			return control.KindString, true
		}
	case "boolean":
		if src.Nullable {
			return control.KindTriState, true
		}
		return control.KindBoolean, true
	case "integer":
		return control.KindInteger, true
	case "number":
		return control.KindNumber, true
	case "array":
		if src.Items != nil && src.Items.Value != nil {
			if format := src.Items.Value.Format; format == "binary" || format == "byte" {
				return control.KindFileList, true
			}
		}
		return "", false
	default:
		return "", false
	}
}

func constraintsFor(src *openapi3.Schema) Constraints {
	c := Constraints{Pattern: src.Pattern}
	if src.MinLength != 0 {
		value := int(src.MinLength)
		c.MinLength = &value
	}
	if src.MaxLength != nil {
		value := int(*src.MaxLength)
		c.MaxLength = &value
	}
	if src.Min != nil {
		value := *src.Min
		c.Minimum = &value
	}
	if src.Max != nil {
		value := *src.Max
		c.Maximum = &value
	}
	for _, candidate := range src.Enum {
		if text, ok := candidate.(string); ok {
			c.Enum = append(c.Enum, text)
		}
	}
	return c
}

func firstType(types *openapi3.Types) string {
	if types == nil {
		return ""
	}
	values := types.Slice()
	if len(values) == 0 {
		return ""
	}
	return values[0]
}

// labelFor falls back to a title-cased field name when the schema carries no
// explicit title, splitting snake_case and kebab-case words.
func labelFor(name, title string) string {
	if trimmed := strings.TrimSpace(title); trimmed != "" {
		return trimmed
	}
	words := strings.FieldsFunc(name, func(r rune) bool {
		return r == '_' || r == '-'
	})
	for i, word := range words {
		if word == "" {
			continue
		}
		words[i] = strings.ToUpper(word[:1]) + word[1:]
	}
	return strings.Join(words, " ")
}
