package translate

import "testing"

func TestFirstJSONObject(t *testing.T) {
	cases := []struct {
		name  string
		in    string
		want  string
		found bool
	}{
		{"bare object", `{"a": 1}`, `{"a": 1}`, true},
		{"prose around", `Sure! Here it is: {"a": 1} Hope that helps.`, `{"a": 1}`, true},
		{"nested braces", `{"a": {"b": 2}}`, `{"a": {"b": 2}}`, true},
		{"brace inside string", `{"a": "}"}`, `{"a": "}"}`, true},
		{"escaped quote inside string", `{"a": "say \"}\" loud"}`, `{"a": "say \"}\" loud"}`, true},
		{"unbalanced", `{"a": 1`, "", false},
		{"no object", "no json here", "", false},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			got, found := firstJSONObject(tc.in)
			if found != tc.found || got != tc.want {
				t.Errorf("firstJSONObject(%q) = (%q, %v), want (%q, %v)", tc.in, got, found, tc.want, tc.found)
			}
		})
	}
}

func TestDecodeBulkResponseStrict(t *testing.T) {
	raw := `{"translations": {"en": {"title": "Title", "body": "Body"}}}`

	parsed, ok := decodeBulkResponse(raw)
	if !ok {
		t.Fatal("expected a parsable response")
	}
	if tr := parsed["en"]; tr.Title != "Title" || tr.Body != "Body" {
		t.Errorf("unexpected translation: %+v", tr)
	}
}

func TestDecodeBulkResponseFenced(t *testing.T) {
	raw := "Here are the translations:\n```json\n" +
		`{"translations": {"de": {"title": "Titel", "body": "Text"}}}` +
		"\n```"

	parsed, ok := decodeBulkResponse(raw)
	if !ok {
		t.Fatal("expected the fenced object to be recovered")
	}
	if tr := parsed["de"]; tr.Title != "Titel" || tr.Body != "Text" {
		t.Errorf("unexpected translation: %+v", tr)
	}
}

func TestDecodeBulkResponseRejectsGarbage(t *testing.T) {
	for _, raw := range []string{
		"no json at all",
		`{"something_else": true}`,
		`[1, 2, 3]`,
	} {
		if _, ok := decodeBulkResponse(raw); ok {
			t.Errorf("decodeBulkResponse(%q) = ok, want failure", raw)
		}
	}
}
