package tools

import (
	"strings"
	"time"

	"github.com/shopspring/decimal"

	"github.com/cloud-ru/mcp-recouvrement-go/internal/calculations"
)

// Accepted date layouts: ISO first, then the French day-first form.
var dateLayouts = []string{"2006-01-02", "02/01/2006"}

var amountCleaner = strings.NewReplacer(" ", "", "\u00a0", "", "\u202f", "", ",", ".")

func invalid(field, format string, args ...interface{}) error {
	return calculations.NewValidationError(field, format, args...)
}

// present reports whether params carries a non-empty value for name.
func present(params map[string]interface{}, name string) bool {
	v, ok := params[name]
	if !ok || v == nil {
		return false
	}
	if s, isString := v.(string); isString && strings.TrimSpace(s) == "" {
		return false
	}
	return true
}

// parseAmount converts a JSON number or a numeric string. Strings may use a
// decimal comma and digit-group spaces ("1 500 000,50").
func parseAmount(field string, v interface{}) (float64, error) {
	switch n := v.(type) {
	case float64:
		return n, nil
	case float32:
		return float64(n), nil
	case int:
		return float64(n), nil
	case int64:
		return float64(n), nil
	case string:
		d, err := decimal.NewFromString(amountCleaner.Replace(strings.TrimSpace(n)))
		if err != nil {
			return 0, invalid(field, "%q is not a number", n)
		}
		return d.InexactFloat64(), nil
	}
	return 0, invalid(field, "unsupported value of type %T", v)
}

// numberParam reads a required number.
func numberParam(params map[string]interface{}, name string) (float64, error) {
	if !present(params, name) {
		return 0, invalid(name, "is required")
	}
	return parseAmount(name, params[name])
}

// optionalNumberParam reads a number defaulting to 0 when absent.
func optionalNumberParam(params map[string]interface{}, name string) (float64, error) {
	if !present(params, name) {
		return 0, nil
	}
	return parseAmount(name, params[name])
}

// stringParam reads an optional string.
func stringParam(params map[string]interface{}, name string) (string, error) {
	v, ok := params[name]
	if !ok || v == nil {
		return "", nil
	}
	s, ok := v.(string)
	if !ok {
		return "", invalid(name, "must be a string")
	}
	return strings.TrimSpace(s), nil
}

// boolParam reads an optional boolean. Strings "true"/"false", "oui"/"non" are accepted.
func boolParam(params map[string]interface{}, name string, def bool) (bool, error) {
	if !present(params, name) {
		return def, nil
	}
	switch b := params[name].(type) {
	case bool:
		return b, nil
	case string:
		switch strings.ToLower(strings.TrimSpace(b)) {
		case "true", "1", "oui", "yes":
			return true, nil
		case "false", "0", "non", "no":
			return false, nil
		}
	}
	return false, invalid(name, "must be a boolean")
}

// dateParam reads a calendar date. The zero time is returned when the date is absent.
func dateParam(params map[string]interface{}, name string) (time.Time, error) {
	if !present(params, name) {
		return time.Time{}, nil
	}
	s, ok := params[name].(string)
	if !ok {
		return time.Time{}, invalid(name, "must be a date string")
	}
	s = strings.TrimSpace(s)
	for _, layout := range dateLayouts {
		if t, err := time.Parse(layout, s); err == nil {
			return t, nil
		}
	}
	return time.Time{}, invalid(name, "%q is not a date (expected YYYY-MM-DD)", s)
}

// objectParam reads an optional nested object.
func objectParam(params map[string]interface{}, name string) (map[string]interface{}, bool, error) {
	v, ok := params[name]
	if !ok || v == nil {
		return nil, false, nil
	}
	m, ok := v.(map[string]interface{})
	if !ok {
		return nil, false, invalid(name, "must be an object")
	}
	return m, true, nil
}

// actsParam reads procedural acts given either as {"id": ...} catalogue
// references or as free {"label": ..., "amount": ...} lines.
func actsParam(params map[string]interface{}, calc *calculations.Calculator) ([]calculations.ProcedureAct, error) {
	v, ok := params["acts"]
	if !ok || v == nil {
		return nil, nil
	}
	items, ok := v.([]interface{})
	if !ok {
		return nil, invalid("acts", "must be a list")
	}

	acts := make([]calculations.ProcedureAct, 0, len(items))
	for i, item := range items {
		m, ok := item.(map[string]interface{})
		if !ok {
			return nil, invalid("acts", "act %d must be an object", i+1)
		}

		id, err := stringParam(m, "id")
		if err != nil {
			return nil, err
		}
		if id != "" {
			act, err := calc.CatalogAct(id)
			if err != nil {
				return nil, err
			}
			acts = append(acts, act)
			continue
		}

		label, err := stringParam(m, "label")
		if err != nil {
			return nil, err
		}
		amount, err := numberParam(m, "amount")
		if err != nil {
			return nil, invalid("acts", "act %d: %v", i+1, err)
		}
		acts = append(acts, calculations.ProcedureAct{Label: label, Amount: amount})
	}
	return acts, nil
}
