package model

import "testing"

func TestSearchFindings(t *testing.T) {
	messages := []Message{
		NewUserMessage("sugar, sodium benzoate"),
		NewAIMessage(AIPayload{Ingredients: []IngredientFinding{{Name: "Sugar"}, {Name: "Sodium Benzoate"}}}),
		NewUserMessage("and salt?"),
		NewAIMessage(AIPayload{Ingredients: []IngredientFinding{{Name: "Salt"}}}),
	}

	all := SearchFindings(messages, "")
	if len(all) != 3 {
		t.Fatalf("empty query: got %d matches, want 3", len(all))
	}
	if all[2].MessageIndex != 3 || all[2].FindingIndex != 0 {
		t.Errorf("unexpected location for Salt: %+v", all[2])
	}

	matches := SearchFindings(messages, "benz")
	if len(matches) != 1 {
		t.Fatalf("query benz: got %d matches, want 1", len(matches))
	}
	if matches[0].Finding.Name != "Sodium Benzoate" || matches[0].MessageIndex != 1 || matches[0].FindingIndex != 1 {
		t.Errorf("unexpected match: %+v", matches[0])
	}

	if got := SearchFindings(messages, "xyzzy"); len(got) != 0 {
		t.Errorf("query xyzzy: got %d matches, want 0", len(got))
	}
}

func TestSearchFindings_NoAIMessages(t *testing.T) {
	if got := SearchFindings([]Message{NewUserMessage("hi")}, ""); len(got) != 0 {
		t.Errorf("got %d matches, want 0", len(got))
	}
}
