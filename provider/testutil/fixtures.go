package testutil

// ReasoningResponseV2 uses the current field names of the reasoning service
const ReasoningResponseV2 = `{
  "greeting": "Here's what's in your snack.",
  "ingredients": [
    {
      "name": "Sugar",
      "severity": "HIGH",
      "what_it_is": "A simple carbohydrate.",
      "why_it_is_used": "Sweetness and browning.",
      "tradeoffs": "Adds calories without fibre.",
      "uncertainty": "Effects depend on total daily intake."
    },
    {
      "name": "Salt",
      "severity": "medium",
      "what_it_is": "Sodium chloride.",
      "why_it_is_used": "Flavour and preservation.",
      "tradeoffs": "High sodium intake raises blood pressure.",
      "uncertainty": "Individual sensitivity varies."
    }
  ],
  "overall_nutrition_per_100g": {"sugar_g": 12, "sodium_mg": 5},
  "overall_conclusion": "Fine as an occasional treat."
}`

// ReasoningResponseV1 uses the older narrative field names
const ReasoningResponseV1 = `{
  "ingredients": [
    {
      "name": "Maltodextrin",
      "severity": "Low",
      "why_it_matters": "A starch-derived thickener.",
      "who_might_care": "People watching blood sugar.",
      "tradeoffs": "High glycaemic index.",
      "confidence_uncertainty": "Generally recognised as safe."
    }
  ],
  "overall_nutrition": "Mostly carbohydrate.",
  "overall_conclusion": "Low concern for most people."
}`

// SampleIngredients is a typical typed submission
const SampleIngredients = "sugar, salt, maltodextrin"
