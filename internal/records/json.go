package records

import (
	"encoding/json"
	"fmt"
	"sort"
)

// decodeJSON accepts three shapes: a list of objects, a list of rows whose
// first row is the header, or a single object whose entries become
// name/value records.
func decodeJSON(content []byte) ([]Record, error) {
	var raw interface{}
	if err := json.Unmarshal(content, &raw); err != nil {
		return nil, fmt.Errorf("parse JSON: %w", err)
	}

	switch v := raw.(type) {
	case []interface{}:
		return fromList(v)
	case map[string]interface{}:
		return nameValueRecords(v), nil
	default:
		return nil, &InvalidRecordsError{Reason: fmt.Sprintf("expected a list or an object, got %T", raw)}
	}
}

func fromList(items []interface{}) ([]Record, error) {
	if len(items) == 0 {
		return []Record{}, nil
	}

	if header, ok := items[0].([]interface{}); ok {
		names := make([]string, len(header))
		for i, h := range header {
			names[i] = Stringify(h)
		}
		recs := make([]Record, 0, len(items)-1)
		for n, item := range items[1:] {
			row, ok := item.([]interface{})
			if !ok {
				return nil, &InvalidRecordsError{Reason: fmt.Sprintf("row %d is not a list", n+1)}
			}
			recs = append(recs, rowRecord(names, row))
		}
		return recs, nil
	}

	recs := make([]Record, 0, len(items))
	for n, item := range items {
		obj, ok := item.(map[string]interface{})
		if !ok {
			return nil, &InvalidRecordsError{Reason: fmt.Sprintf("item %d is not an object", n)}
		}
		recs = append(recs, Record(obj))
	}
	return recs, nil
}

// rowRecord zips a header with a row. Missing cells are nil.
func rowRecord(header []string, row []interface{}) Record {
	rec := make(Record, len(header))
	for i, name := range header {
		if i < len(row) {
			rec[name] = row[i]
		} else {
			rec[name] = nil
		}
	}
	return rec
}

// nameValueRecords turns an object into {name, value} records, sorted by name.
func nameValueRecords(obj map[string]interface{}) []Record {
	names := make([]string, 0, len(obj))
	for name := range obj {
		names = append(names, name)
	}
	sort.Strings(names)

	recs := make([]Record, 0, len(names))
	for _, name := range names {
		recs = append(recs, Record{"name": name, "value": obj[name]})
	}
	return recs
}
