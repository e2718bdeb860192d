package models

import (
	"encoding/json"
	"testing"
)

func TestDocument_SearchBlob(t *testing.T) {
	doc := &Document{URL: "a", Title: "Red Fox", Keywords: "animal"}
	want := "a\nRed Fox\n\nanimal"
	if got := doc.SearchBlob(); got != want {
		t.Errorf("SearchBlob() = %q, want %q", got, want)
	}

	empty := &Document{}
	if got := empty.SearchBlob(); got != "\n\n\n" {
		t.Errorf("SearchBlob() of empty document = %q", got)
	}
}

func TestDocument_MarshalJSON(t *testing.T) {
	doc := Document{
		URL:   "https://example.com",
		Title: "Example",
		Extra: map[string]interface{}{"price": 3.5, "title": "ignored"},
	}

	data, err := json.Marshal(doc)
	if err != nil {
		t.Fatalf("Marshal: %v", err)
	}

	var got map[string]interface{}
	if err := json.Unmarshal(data, &got); err != nil {
		t.Fatalf("Unmarshal: %v", err)
	}
	if got["title"] != "Example" {
		t.Errorf("title = %v, want Example", got["title"])
	}
	if got["price"] != 3.5 {
		t.Errorf("price = %v, want 3.5", got["price"])
	}
	if _, ok := got["description"]; ok {
		t.Error("empty description should be omitted")
	}
}

func TestDocument_Get(t *testing.T) {
	doc := &Document{Title: "T", Extra: map[string]interface{}{"id": 7}}

	if v, ok := doc.Get("title"); !ok || v != "T" {
		t.Errorf("Get(title) = %v, %v", v, ok)
	}
	if v, ok := doc.Get("id"); !ok || v != 7 {
		t.Errorf("Get(id) = %v, %v", v, ok)
	}
	if _, ok := doc.Get("missing"); ok {
		t.Error("Get(missing) should report false")
	}
}
