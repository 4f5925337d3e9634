// Package out renders the output envelope in json or plain mode and applies
// the optional --select field projection.
package out

import (
	"encoding/json"
	"fmt"
	"io"
	"sort"
	"strings"

	"github.com/swapsage/swapsage-cli/internal/config"
	"github.com/swapsage/swapsage-cli/internal/model"
)

func Render(w io.Writer, env model.Envelope, settings config.Settings) error {
	data := env.Data
	if len(settings.SelectFields) > 0 {
		data = project(data, settings.SelectFields)
	}

	if settings.ResultsOnly {
		if settings.OutputMode == "json" {
			return encodeJSON(w, data)
		}
		return renderPlain(w, data)
	}

	if settings.OutputMode == "json" {
		env.Data = data
		return encodeJSON(w, env)
	}

	plain := map[string]any{
		"success":  env.Success,
		"data":     data,
		"warnings": env.Warnings,
		"meta":     env.Meta,
	}
	if env.Error != nil {
		plain["error"] = env.Error
	}
	return renderPlain(w, plain)
}

func encodeJSON(w io.Writer, v any) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}

// project keeps only the named top-level fields of an object, or of each
// element of a list of objects. Non-object data passes through untouched.
func project(data any, fields []string) any {
	switch v := toGeneric(data).(type) {
	case map[string]any:
		return projectMap(v, fields)
	case []any:
		out := make([]any, 0, len(v))
		for _, item := range v {
			if m, ok := item.(map[string]any); ok {
				out = append(out, projectMap(m, fields))
				continue
			}
			out = append(out, item)
		}
		return out
	default:
		return data
	}
}

func projectMap(m map[string]any, fields []string) map[string]any {
	out := make(map[string]any, len(fields))
	for _, field := range fields {
		if value, ok := m[field]; ok {
			out[field] = value
		}
	}
	return out
}

// toGeneric round-trips typed structs through JSON so projection and plain
// rendering operate on the same field names the JSON output uses.
func toGeneric(data any) any {
	switch data.(type) {
	case map[string]any, []any, nil:
		return data
	}
	buf, err := json.Marshal(data)
	if err != nil {
		return data
	}
	var generic any
	if err := json.Unmarshal(buf, &generic); err != nil {
		return data
	}
	return generic
}

func renderPlain(w io.Writer, data any) error {
	switch v := toGeneric(data).(type) {
	case nil:
		_, err := fmt.Fprintln(w, "null")
		return err
	case []any:
		for _, item := range v {
			if err := renderPlainLine(w, item); err != nil {
				return err
			}
		}
		return nil
	default:
		return renderPlainLine(w, v)
	}
}

func renderPlainLine(w io.Writer, item any) error {
	m, ok := item.(map[string]any)
	if !ok {
		_, err := fmt.Fprintln(w, formatScalar(item))
		return err
	}
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	parts := make([]string, 0, len(keys))
	for _, k := range keys {
		parts = append(parts, fmt.Sprintf("%s=%s", k, formatScalar(m[k])))
	}
	_, err := fmt.Fprintln(w, strings.Join(parts, " "))
	return err
}

func formatScalar(v any) string {
	switch t := v.(type) {
	case nil:
		return "null"
	case string:
		return t
	case float64:
		return strings.TrimRight(strings.TrimRight(fmt.Sprintf("%.6f", t), "0"), ".")
	case bool:
		return fmt.Sprintf("%t", t)
	default:
		buf, err := json.Marshal(t)
		if err != nil {
			return fmt.Sprintf("%v", t)
		}
		return string(buf)
	}
}
