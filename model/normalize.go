package model

import (
	"encoding/json"
	"strings"

	"github.com/tidwall/gjson"
)

// NutritionSeparator joins flattened nutrition entries
const NutritionSeparator = " • "

// The backend has shipped two naming schemes for the narrative fields (plus
// camelCase spellings from the web client). First non-empty match wins.
var (
	nameKeys        = []string{"name", "ingredient"}
	severityKeys    = []string{"severity", "risk_level"}
	whatItIsKeys    = []string{"what_it_is", "why_it_matters", "whatItIs", "whyItMatters"}
	whyItIsUsedKeys = []string{"why_it_is_used", "who_might_care", "whyItIsUsed", "whoMightCare"}
	tradeoffsKeys   = []string{"tradeoffs", "trade_offs", "tradeOffs"}
	uncertaintyKeys = []string{"uncertainty", "confidence_uncertainty", "confidenceUncertainty"}

	greetingKeys   = []string{"greeting"}
	conclusionKeys = []string{"overall_conclusion", "overallConclusion"}
	nutritionKeys  = []string{"overall_nutrition", "overall_nutrition_per_100g", "overallNutrition"}
)

// Normalize maps an arbitrary backend JSON payload onto the canonical AIPayload.
// It never fails: malformed or partial input degrades to empty fields.
func Normalize(raw []byte) AIPayload {
	out := AIPayload{Ingredients: []IngredientFinding{}}
	if !gjson.ValidBytes(raw) {
		return out
	}

	root := gjson.ParseBytes(raw)
	if !root.IsObject() {
		return out
	}

	out.Greeting = firstString(root, greetingKeys)
	out.OverallConclusion = firstString(root, conclusionKeys)
	out.OverallNutrition = resolveNutrition(root)

	ingredients := root.Get("ingredients")
	if ingredients.IsArray() {
		ingredients.ForEach(func(_, entry gjson.Result) bool {
			if finding, ok := normalizeFinding(entry); ok {
				out.Ingredients = append(out.Ingredients, finding)
			}
			return true
		})
	}

	return out
}

// NormalizeValue normalizes an already-decoded value (e.g. map[string]any)
func NormalizeValue(v any) AIPayload {
	raw, err := json.Marshal(v)
	if err != nil {
		return AIPayload{Ingredients: []IngredientFinding{}}
	}
	return Normalize(raw)
}

// IsValidJSON reports whether raw parses as a JSON document
func IsValidJSON(raw []byte) bool {
	return gjson.ValidBytes(raw)
}

func normalizeFinding(entry gjson.Result) (IngredientFinding, bool) {
	// A bare string is treated as an ingredient name with no narrative
	if entry.Type == gjson.String {
		name := strings.TrimSpace(entry.Str)
		return IngredientFinding{Name: name}, name != ""
	}
	if !entry.IsObject() {
		return IngredientFinding{}, false
	}

	f := IngredientFinding{
		Name:        firstString(entry, nameKeys),
		Severity:    ParseSeverity(firstString(entry, severityKeys)),
		WhatItIs:    firstString(entry, whatItIsKeys),
		WhyItIsUsed: firstString(entry, whyItIsUsedKeys),
		Tradeoffs:   firstString(entry, tradeoffsKeys),
		Uncertainty: firstString(entry, uncertaintyKeys),
	}
	return f, f.Name != ""
}

// firstString returns the first key in keys that holds a non-empty scalar
func firstString(obj gjson.Result, keys []string) string {
	for _, key := range keys {
		if s := scalarString(obj.Get(gjson.Escape(key))); s != "" {
			return s
		}
	}
	return ""
}

func scalarString(v gjson.Result) string {
	switch v.Type {
	case gjson.String:
		return strings.TrimSpace(v.Str)
	case gjson.Number, gjson.True, gjson.False:
		return v.Raw
	default:
		return ""
	}
}

func resolveNutrition(root gjson.Result) string {
	for _, key := range nutritionKeys {
		v := root.Get(gjson.Escape(key))
		switch {
		case v.IsObject():
			if s := flattenNutrition(v); s != "" {
				return s
			}
		default:
			if s := scalarString(v); s != "" {
				return s
			}
		}
	}
	return ""
}

// flattenNutrition renders {"sugar_g": 12} as "sugar g: 12", preserving key order
func flattenNutrition(obj gjson.Result) string {
	var parts []string
	obj.ForEach(func(key, value gjson.Result) bool {
		label := strings.TrimSpace(strings.ReplaceAll(key.String(), "_", " "))
		var val string
		if value.Type == gjson.String {
			val = value.Str
		} else {
			val = value.Raw
		}
		// Trimmed so the flattened string survives a second Normalize unchanged
		part := label + ":"
		if val = strings.TrimSpace(val); val != "" {
			part += " " + val
		}
		parts = append(parts, part)
		return true
	})
	return strings.TrimSpace(strings.Join(parts, NutritionSeparator))
}

type canonicalFinding struct {
	Name        string `json:"name"`
	Severity    string `json:"severity,omitempty"`
	WhatItIs    string `json:"what_it_is"`
	WhyItIsUsed string `json:"why_it_is_used"`
	Tradeoffs   string `json:"tradeoffs"`
	Uncertainty string `json:"uncertainty"`
}

type canonicalPayload struct {
	Greeting          string             `json:"greeting,omitempty"`
	Ingredients       []canonicalFinding `json:"ingredients"`
	OverallNutrition  string             `json:"overall_nutrition,omitempty"`
	OverallConclusion string             `json:"overall_conclusion,omitempty"`
}

// MarshalCanonical encodes p in the wire shape Normalize reads back unchanged
func MarshalCanonical(p AIPayload) ([]byte, error) {
	c := canonicalPayload{
		Greeting:          p.Greeting,
		Ingredients:       make([]canonicalFinding, 0, len(p.Ingredients)),
		OverallNutrition:  p.OverallNutrition,
		OverallConclusion: p.OverallConclusion,
	}
	for _, f := range p.Ingredients {
		c.Ingredients = append(c.Ingredients, canonicalFinding{
			Name:        f.Name,
			Severity:    string(f.Severity),
			WhatItIs:    f.WhatItIs,
			WhyItIsUsed: f.WhyItIsUsed,
			Tradeoffs:   f.Tradeoffs,
			Uncertainty: f.Uncertainty,
		})
	}
	return json.Marshal(c)
}
