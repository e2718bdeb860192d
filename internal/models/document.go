// Package models defines core data structures for documents, queries, and search results.
package models

import (
	"encoding/json"
	"strings"
)

// Searchable field names, in search blob order.
const (
	FieldURL         = "url"
	FieldTitle       = "title"
	FieldDescription = "description"
	FieldKeywords    = "keywords"
)

// SearchFields lists the fields that make up a document's search blob.
var SearchFields = []string{FieldURL, FieldTitle, FieldDescription, FieldKeywords}

// Document is one searchable record.
type Document struct {
	URL         string `json:"url" db:"url"`
	Title       string `json:"title" db:"title"`
	Description string `json:"description,omitempty" db:"description"`
	Keywords    string `json:"keywords,omitempty" db:"keywords"`
	// Extra holds the record's other columns, untouched.
	Extra map[string]interface{} `json:"-" db:"-"`
}

// SearchBlob returns the text queries are matched against: url, title,
// description and keywords joined by newlines. Missing fields are empty.
func (d *Document) SearchBlob() string {
	return strings.Join([]string{d.URL, d.Title, d.Description, d.Keywords}, "\n")
}

// Get returns a field by name. The four search fields take precedence over Extra.
func (d *Document) Get(name string) (interface{}, bool) {
	switch name {
	case FieldURL:
		return d.URL, true
	case FieldTitle:
		return d.Title, true
	case FieldDescription:
		return d.Description, true
	case FieldKeywords:
		return d.Keywords, true
	}
	v, ok := d.Extra[name]
	return v, ok
}

// MarshalJSON writes the document as a flat object with Extra columns next
// to the search fields.
func (d Document) MarshalJSON() ([]byte, error) {
	out := make(map[string]interface{}, len(d.Extra)+4)
	for k, v := range d.Extra {
		out[k] = v
	}
	out[FieldURL] = d.URL
	out[FieldTitle] = d.Title
	if d.Description != "" {
		out[FieldDescription] = d.Description
	}
	if d.Keywords != "" {
		out[FieldKeywords] = d.Keywords
	}
	return json.Marshal(out)
}
