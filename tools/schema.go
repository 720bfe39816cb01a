package tools

import (
	"fmt"
	"sort"
	"strings"

	"github.com/mitchellh/mapstructure"
)

// InputSchema renders params as a JSON-schema object.
func InputSchema(params []Param) map[string]any {
	properties, required := SchemaProperties(params)
	return map[string]any{
		"type":       "object",
		"properties": properties,
		"required":   required,
	}
}

// SchemaProperties returns the properties and required list of the
// JSON-schema object for params.
func SchemaProperties(params []Param) (map[string]any, []string) {
	properties := make(map[string]any, len(params))
	required := []string{}

	for _, p := range params {
		prop := map[string]any{"type": p.Type}
		if p.Type == "" {
			prop["type"] = "string"
		}
		if p.Description != "" {
			prop["description"] = p.Description
		}
		if p.Default != nil {
			prop["default"] = p.Default
		}
		properties[p.Name] = prop
		if p.Required {
			required = append(required, p.Name)
		}
	}
	return properties, required
}

// ParamsFromSchema rebuilds params from the properties and required list of
// a tool's JSON-schema input. Params are sorted by name; required ones first.
func ParamsFromSchema(properties map[string]any, required []string) []Param {
	isRequired := make(map[string]bool, len(required))
	for _, name := range required {
		isRequired[name] = true
	}

	params := make([]Param, 0, len(properties))
	for name, raw := range properties {
		p := Param{Name: name, Type: "string", Required: isRequired[name]}
		if prop, ok := raw.(map[string]any); ok {
			if typ, ok := prop["type"].(string); ok && typ != "" {
				p.Type = typ
			}
			if desc, ok := prop["description"].(string); ok {
				p.Description = desc
			}
			p.Default = prop["default"]
		}
		params = append(params, p)
	}

	sort.Slice(params, func(i, j int) bool {
		if params[i].Required != params[j].Required {
			return params[i].Required
		}
		return params[i].Name < params[j].Name
	})
	return params
}

// Describe renders the capability description followed by an argument
// summary the model can follow.
func Describe(c Capability) string {
	if len(c.Params) == 0 {
		return c.Description
	}

	args := make([]string, 0, len(c.Params))
	for _, p := range c.Params {
		var attrs []string
		attrs = append(attrs, p.Type)
		if p.Required {
			attrs = append(attrs, "required")
		} else if p.Default != nil {
			attrs = append(attrs, fmt.Sprintf("optional, default: %v", p.Default))
		} else {
			attrs = append(attrs, "optional")
		}
		arg := fmt.Sprintf("%s (%s)", p.Name, strings.Join(attrs, ", "))
		if p.Description != "" {
			arg += " " + p.Description
		}
		args = append(args, arg)
	}
	return fmt.Sprintf("%s Arguments: %s.", strings.TrimSpace(c.Description), strings.Join(args, "; "))
}

// DecodeArgs decodes free-form tool arguments into out, matching the json
// tags of its fields. Numbers arriving as float64 or strings are accepted
// for integer fields.
func DecodeArgs(args map[string]any, out any) error {
	decoder, err := mapstructure.NewDecoder(&mapstructure.DecoderConfig{
		TagName:          "json",
		Result:           out,
		WeaklyTypedInput: true,
	})
	if err != nil {
		return err
	}
	if err := decoder.Decode(args); err != nil {
		return fmt.Errorf("failed to parse arguments: %w", err)
	}
	return nil
}
