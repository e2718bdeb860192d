// Package records reads searchable records and settings from JSON, CSV,
// Excel and SQLite files and turns them into documents.
package records

import (
	"fmt"
	"math"
	"math/big"
	"strconv"
	"strings"

	"github.com/hyperjump/lupa/internal/models"
)

// Record is one row of a record source, keyed by column name.
type Record map[string]interface{}

// Normalize turns records into documents. Keys matching a search field
// case-insensitively are lowercased; records without a title or a url are
// dropped. It returns the documents and the number of dropped records.
func Normalize(recs []Record) ([]*models.Document, int) {
	docs := make([]*models.Document, 0, len(recs))
	dropped := 0
	for _, rec := range recs {
		doc, ok := toDocument(rec)
		if !ok {
			dropped++
			continue
		}
		docs = append(docs, doc)
	}
	return docs, dropped
}

func toDocument(rec Record) (*models.Document, bool) {
	fields := make(map[string]interface{}, 4)
	extra := make(map[string]interface{})

	for key, value := range rec {
		lower := strings.ToLower(key)
		if !isSearchField(lower) {
			extra[key] = value
			continue
		}
		// An exact lowercase key beats other spellings of the same field.
		if _, exists := fields[lower]; exists && key != lower {
			continue
		}
		fields[lower] = value
	}

	if !truthy(fields[models.FieldTitle]) || !truthy(fields[models.FieldURL]) {
		return nil, false
	}

	doc := &models.Document{
		URL:         Stringify(fields[models.FieldURL]),
		Title:       Stringify(fields[models.FieldTitle]),
		Description: Stringify(fields[models.FieldDescription]),
		Keywords:    Stringify(fields[models.FieldKeywords]),
	}
	if len(extra) > 0 {
		doc.Extra = extra
	}
	return doc, true
}

func isSearchField(name string) bool {
	for _, f := range models.SearchFields {
		if name == f {
			return true
		}
	}
	return false
}

// truthy reports whether v would count as a present value: not nil, not
// false, not zero and not an empty string.
func truthy(v interface{}) bool {
	switch t := v.(type) {
	case nil:
		return false
	case bool:
		return t
	case string:
		return t != ""
	case float64:
		return t != 0 && !math.IsNaN(t)
	case int64:
		return t != 0
	case int:
		return t != 0
	case *big.Int:
		return t.Sign() != 0
	default:
		return true
	}
}

// Stringify renders a cell value as text. Nil is the empty string.
func Stringify(v interface{}) string {
	switch t := v.(type) {
	case nil:
		return ""
	case string:
		return t
	case []byte:
		return string(t)
	case bool:
		return strconv.FormatBool(t)
	case float64:
		return strconv.FormatFloat(t, 'f', -1, 64)
	case int64:
		return strconv.FormatInt(t, 10)
	case int:
		return strconv.Itoa(t)
	case *big.Int:
		return t.String()
	default:
		return fmt.Sprint(t)
	}
}
