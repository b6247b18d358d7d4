package normalize

import (
	"encoding/json"
	"strconv"

	"github.com/ahmednasr/autoguide-ai/server/internal/models"
)

const (
	TitlePrefix       = "Guide: "
	DefaultDifficulty = "Medium"
	DefaultQty        = 1
)

// Normalize coerces raw into a StructuredGuide:
//
//   - title: raw.title if a string, else "Guide: " + fallbackTitle
//   - vehicle: passed through, nil when absent
//   - difficulty: raw.difficulty if a string, else "Medium"
//   - warnings, notes, sourcesUsed: string elements of the array, else empty
//   - tools, parts, steps: element-wise coercion, else empty
//
// Anything that is not a JSON object yields the all-defaults result.
func Normalize(raw any, fallbackTitle string) models.StructuredGuide {
	obj := asObject(raw)

	out := models.StructuredGuide{
		Title:       TitlePrefix + fallbackTitle,
		Vehicle:     obj["vehicle"],
		Difficulty:  DefaultDifficulty,
		Warnings:    stringList(obj["warnings"]),
		Tools:       tools(obj["tools"]),
		Parts:       parts(obj["parts"]),
		Steps:       steps(obj["steps"]),
		Notes:       stringList(obj["notes"]),
		SourcesUsed: stringList(obj["sourcesUsed"]),
	}
	if s, ok := obj["title"].(string); ok {
		out.Title = s
	}
	if s, ok := obj["difficulty"].(string); ok {
		out.Difficulty = s
	}
	return out
}

func tools(v any) []models.Tool {
	items, _ := v.([]any)
	out := make([]models.Tool, 0, len(items))
	for _, it := range items {
		o := asObject(it)
		out = append(out, models.Tool{
			Name:  str(o["name"]),
			Notes: str(o["notes"]),
		})
	}
	return out
}

func parts(v any) []models.Part {
	items, _ := v.([]any)
	out := make([]models.Part, 0, len(items))
	for _, it := range items {
		o := asObject(it)
		qty, ok := number(o["qty"])
		if !ok {
			qty = DefaultQty
		}
		out = append(out, models.Part{
			Name:  str(o["name"]),
			Qty:   qty,
			Notes: str(o["notes"]),
		})
	}
	return out
}

func steps(v any) []models.Step {
	items, _ := v.([]any)
	out := make([]models.Step, 0, len(items))
	for i, it := range items {
		o := asObject(it)
		n := i + 1
		if f, ok := number(o["step"]); ok {
			n = int(f)
		}
		out = append(out, models.Step{
			Step: n,
			Text: str(o["text"]),
			Tips: stringList(o["tips"]),
		})
	}
	return out
}

// stringList keeps string elements, renders numbers and bools as text and
// drops everything else.
func stringList(v any) []string {
	items, _ := v.([]any)
	out := make([]string, 0, len(items))
	for _, it := range items {
		switch x := it.(type) {
		case string:
			out = append(out, x)
		case bool:
			out = append(out, strconv.FormatBool(x))
		default:
			if f, ok := number(x); ok {
				out = append(out, strconv.FormatFloat(f, 'f', -1, 64))
			}
		}
	}
	return out
}

func str(v any) string {
	s, _ := v.(string)
	return s
}

func number(v any) (float64, bool) {
	switch x := v.(type) {
	case float64:
		return x, true
	case float32:
		return float64(x), true
	case int:
		return float64(x), true
	case int32:
		return float64(x), true
	case int64:
		return float64(x), true
	case json.Number:
		f, err := x.Float64()
		return f, err == nil
	}
	return 0, false
}

// asObject returns v as a JSON object. Typed values (a StructuredGuide being
// normalized again, for instance) go through a JSON round trip first.
func asObject(v any) map[string]any {
	switch x := v.(type) {
	case nil:
		return map[string]any{}
	case map[string]any:
		return x
	case []any, string, bool, float64, json.Number:
		return map[string]any{}
	}
	b, err := json.Marshal(v)
	if err != nil {
		return map[string]any{}
	}
	var m map[string]any
	if err := json.Unmarshal(b, &m); err != nil || m == nil {
		return map[string]any{}
	}
	return m
}
