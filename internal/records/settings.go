package records

import (
	"errors"
	"fmt"
	"math"
	"math/big"
	"strings"

	"github.com/hyperjump/lupa/internal/config"
)

// Setting names understood by ApplySettings.
const (
	SettingMatchWordStart   = "matchWordStart"
	SettingMatchWordEnd     = "matchWordEnd"
	SettingPerPage          = "perPage"
	SettingPaginationLength = "paginationLength"
)

// SettingsFromRecords reduces {name, value} records to a settings map. The
// name and value keys match case-insensitively. Records missing either key
// are ignored; later records override earlier ones.
func SettingsFromRecords(recs []Record) map[string]interface{} {
	settings := make(map[string]interface{})
	for _, rec := range recs {
		var name, value interface{}
		var hasName, hasValue bool
		for key, v := range rec {
			switch strings.ToLower(key) {
			case "name":
				if !hasName || key == "name" {
					name, hasName = v, true
				}
			case "value":
				if !hasValue || key == "value" {
					value, hasValue = v, true
				}
			}
		}
		if hasName && hasValue {
			settings[Stringify(name)] = value
		}
	}
	return settings
}

// ParseSetting splits a "name=value" pair and infers the value's type.
func ParseSetting(pair string) (string, interface{}, error) {
	name, value, ok := strings.Cut(pair, "=")
	name = strings.TrimSpace(name)
	if !ok || name == "" {
		return "", nil, fmt.Errorf("invalid setting %q: expected name=value", pair)
	}
	return name, Infer(value, true), nil
}

// ApplySettings copies recognised settings onto cfg. Names are matched
// ignoring case, dashes and underscores, so "per_page" sets perPage. Values
// of the wrong type are skipped and reported in the returned error.
func ApplySettings(settings map[string]interface{}, cfg *config.SearchConfig) error {
	var errs []error
	for key, value := range settings {
		switch settingKey(key) {
		case settingKey(SettingMatchWordStart):
			b, ok := toBool(value)
			if !ok {
				errs = append(errs, fmt.Errorf("setting %s: expected a boolean, got %v", key, value))
				continue
			}
			cfg.MatchWordStart = &b
		case settingKey(SettingMatchWordEnd):
			b, ok := toBool(value)
			if !ok {
				errs = append(errs, fmt.Errorf("setting %s: expected a boolean, got %v", key, value))
				continue
			}
			cfg.MatchWordEnd = &b
		case settingKey(SettingPerPage):
			n, ok := toPositiveInt(value)
			if !ok {
				errs = append(errs, fmt.Errorf("setting %s: expected a positive integer, got %v", key, value))
				continue
			}
			cfg.PerPage = n
		case settingKey(SettingPaginationLength):
			n, ok := toPositiveInt(value)
			if !ok {
				errs = append(errs, fmt.Errorf("setting %s: expected a positive integer, got %v", key, value))
				continue
			}
			cfg.PaginationLength = n
		}
	}
	return errors.Join(errs...)
}

func settingKey(name string) string {
	return strings.NewReplacer("_", "", "-", "").Replace(strings.ToLower(name))
}

func toBool(v interface{}) (bool, bool) {
	switch t := v.(type) {
	case bool:
		return t, true
	case float64:
		return t != 0, true
	case string:
		b, ok := Infer(t, true).(bool)
		return b, ok
	default:
		return false, false
	}
}

func toPositiveInt(v interface{}) (int, bool) {
	switch t := v.(type) {
	case float64:
		if t < 1 || t != math.Trunc(t) || t > math.MaxInt32 {
			return 0, false
		}
		return int(t), true
	case int:
		return t, t > 0
	case int64:
		return int(t), t > 0 && t <= math.MaxInt32
	case *big.Int:
		if !t.IsInt64() {
			return 0, false
		}
		return toPositiveInt(t.Int64())
	case string:
		inferred := Infer(t, false)
		if _, isString := inferred.(string); isString {
			return 0, false
		}
		return toPositiveInt(inferred)
	default:
		return 0, false
	}
}
