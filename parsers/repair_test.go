package parsers

import (
	"encoding/json"
	"reflect"
	"testing"

	"resumeforge/models"
)

func mustParse(t *testing.T, data []byte) map[string]any {
	t.Helper()
	var m map[string]any
	if err := json.Unmarshal(data, &m); err != nil {
		t.Fatalf("repaired output is not valid JSON: %v", err)
	}
	return m
}

func TestRepairJSON_ValidInput(t *testing.T) {
	input := `{"name": "Ada", "skills": ["Go", "SQL"]}`

	out, err := RepairJSON(input)
	if err != nil {
		t.Fatalf("repair failed: %v", err)
	}
	got := mustParse(t, out)
	if got["name"] != "Ada" {
		t.Errorf("expected name 'Ada', got %v", got["name"])
	}
}

func TestRepairJSON_RoundTrip(t *testing.T) {
	original := map[string]any{
		"personal": map[string]any{"name": "Ada Lovelace"},
		"skills":   []any{"Go", "PostgreSQL"},
		"score":    float64(87),
	}
	serialized, err := json.Marshal(original)
	if err != nil {
		t.Fatal(err)
	}

	wrappers := []struct {
		name  string
		input string
	}{
		{"code fence with tag", "```json\n" + string(serialized) + "\n```"},
		{"bare code fence", "```\n" + string(serialized) + "\n```"},
		{"leading prose", "Here is the extracted data:\n" + string(serialized)},
		{"trailing prose", string(serialized) + "\nLet me know if you need anything else."},
		{"fence and prose", "Sure!\n```json\n" + string(serialized) + "\n```\nDone."},
	}

	for _, tc := range wrappers {
		t.Run(tc.name, func(t *testing.T) {
			out, err := RepairJSON(tc.input)
			if err != nil {
				t.Fatalf("repair failed: %v", err)
			}
			if got := mustParse(t, out); !reflect.DeepEqual(got, original) {
				t.Errorf("round trip mismatch:\n got %v\nwant %v", got, original)
			}
		})
	}
}

func TestRepairJSON_TruncatedArray(t *testing.T) {
	// A completion cut off by the token ceiling mid-array.
	input := `{"experiences": [{"title": "Engineer"}, {"title": "Intern"}`

	out, err := RepairJSON(input)
	if err != nil {
		t.Fatalf("repair failed: %v", err)
	}
	got := mustParse(t, out)
	exps, ok := got["experiences"].([]any)
	if !ok {
		t.Fatalf("expected experiences array, got %T", got["experiences"])
	}
	if len(exps) != 2 {
		t.Errorf("expected 2 recovered entries, got %d", len(exps))
	}
}

func TestRepairJSON_TruncationRecovery(t *testing.T) {
	original := map[string]any{
		"personal":    map[string]any{"name": "Ada", "bio": "Mathematician"},
		"experiences": []any{map[string]any{"title": "Analyst", "company": "Babbage & Co"}},
		"skills":      []any{"Go", "SQL", "Redis"},
	}
	serialized, err := json.Marshal(original)
	if err != nil {
		t.Fatal(err)
	}

	// Truncate at every point after the first complete top-level key.
	// Repair must recover a subset of the original keys or fail typed;
	// it must never invent keys.
	firstKeyEnd := 0
	for i := range serialized {
		if serialized[i] == ',' {
			firstKeyEnd = i
			break
		}
	}
	if firstKeyEnd == 0 {
		t.Fatal("fixture has no top-level comma")
	}

	for cut := firstKeyEnd; cut <= len(serialized); cut++ {
		out, err := RepairJSON(string(serialized[:cut]))
		if err != nil {
			if models.KindOf(err) != models.KindMalformedResponse {
				t.Fatalf("cut=%d: unexpected error kind %q", cut, models.KindOf(err))
			}
			continue
		}
		got := mustParse(t, out)
		for key := range got {
			if _, ok := original[key]; !ok {
				t.Errorf("cut=%d: repaired output invented key %q", cut, key)
			}
		}
	}
}

func TestRepairJSON_Unrepairable(t *testing.T) {
	inputs := []struct {
		name  string
		input string
	}{
		{"empty", ""},
		{"prose only", "I could not process that resume, sorry."},
		{"no closer", `{"name": "Ada`},
		{"cut inside string", `{"name": "Ada}`},
	}

	for _, tc := range inputs {
		t.Run(tc.name, func(t *testing.T) {
			_, err := RepairJSON(tc.input)
			if err == nil {
				t.Fatal("expected error for unrepairable input")
			}
			if models.KindOf(err) != models.KindMalformedResponse {
				t.Errorf("expected malformed_response kind, got %q", models.KindOf(err))
			}
		})
	}
}

func TestRepairJSON_DiagnosticsStayInternal(t *testing.T) {
	_, err := RepairJSON("the model rambled instead of answering")
	if err == nil {
		t.Fatal("expected error")
	}
	var pe *models.PipelineError
	if !asPipelineError(err, &pe) {
		t.Fatal("expected a pipeline error")
	}
	// The user message must not leak the completion text.
	if pe.UserMessage() == pe.Error() {
		t.Error("user message must differ from the internal diagnostic")
	}
}

func asPipelineError(err error, target **models.PipelineError) bool {
	pe, ok := err.(*models.PipelineError)
	if ok {
		*target = pe
	}
	return ok
}
