// Package templates builds test cases from named, parameterized scenarios
// without calling a model.
package templates

import (
	"fmt"
	"sort"
	"strings"

	"github.com/agusespa/testsmith/internal/types"
)

type Info struct {
	Name        string `json:"name"`
	Description string `json:"description"`
	Category    string `json:"category"`
}

// Params are the template inputs. "type" selects the variant; every other
// key has a default.
type Params map[string]any

type Template interface {
	Info() Info
	Render(params Params) types.TestCase
}

type UnknownTemplateError struct {
	Name string
}

func (e *UnknownTemplateError) Error() string {
	return fmt.Sprintf("template '%s' not found", e.Name)
}

var registry = map[string]Template{
	"auth": authTemplate{},
	"form": formTemplate{},
	"list": listTemplate{},
	"crud": crudTemplate{},
}

func Get(name string) (Template, error) {
	t, ok := registry[strings.TrimSpace(name)]
	if !ok {
		return nil, &UnknownTemplateError{Name: name}
	}
	return t, nil
}

func Render(name string, params Params) (types.TestCase, error) {
	t, err := Get(name)
	if err != nil {
		return types.TestCase{}, err
	}
	if params == nil {
		params = Params{}
	}
	return t.Render(params), nil
}

// List returns the metadata of every template, sorted by name.
func List() []Info {
	out := make([]Info, 0, len(registry))
	for _, t := range registry {
		out = append(out, t.Info())
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Name < out[j].Name })
	return out
}

func (p Params) variant() string {
	return p.str("type", "")
}

// str returns the value for key, or fallback when the key is absent or null.
// Non-string values are formatted as text.
func (p Params) str(key, fallback string) string {
	v, ok := p[key]
	if !ok || v == nil {
		return fallback
	}
	switch val := v.(type) {
	case string:
		return val
	case float64:
		if val == float64(int64(val)) {
			return fmt.Sprintf("%d", int64(val))
		}
		return fmt.Sprintf("%g", val)
	default:
		return fmt.Sprint(val)
	}
}

type FormField struct {
	Name     string `json:"name"`
	Value    string `json:"value"`
	Required bool   `json:"required"`
}

// fields accepts []FormField or the decoded JSON shape []any of objects.
func (p Params) fields() []FormField {
	switch v := p["fields"].(type) {
	case []FormField:
		return v
	case []map[string]any:
		out := make([]FormField, 0, len(v))
		for _, m := range v {
			out = append(out, fieldFromMap(m))
		}
		return out
	case []any:
		out := make([]FormField, 0, len(v))
		for _, item := range v {
			if m, ok := item.(map[string]any); ok {
				out = append(out, fieldFromMap(m))
			}
		}
		return out
	default:
		return nil
	}
}

func fieldFromMap(m map[string]any) FormField {
	f := FormField{Name: Params(m).str("name", "field"), Value: Params(m).str("value", "test value")}
	if r, ok := m["required"].(bool); ok {
		f.Required = r
	}
	return f
}
