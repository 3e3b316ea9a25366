package models

import (
	"bytes"
	"encoding/json"
	"math"
	"math/big"
	"regexp"
	"strconv"
	"strings"
)

// DecodeValue decodes one JSON value with numbers kept as json.Number.
// Empty or invalid input decodes to nil.
func DecodeValue(raw json.RawMessage) any {
	if len(raw) == 0 {
		return nil
	}
	dec := json.NewDecoder(bytes.NewReader(raw))
	dec.UseNumber()
	var v any
	if err := dec.Decode(&v); err != nil {
		return nil
	}
	return v
}

// Truthy treats null, false, 0, NaN and "" as absent.
func Truthy(v any) bool {
	switch x := v.(type) {
	case nil:
		return false
	case bool:
		return x
	case string:
		return x != ""
	case json.Number:
		f, err := x.Float64()
		return err == nil && f != 0
	default:
		return true
	}
}

// CoerceString renders scalars by their literal and composites as compact JSON.
func CoerceString(v any) string {
	switch x := v.(type) {
	case nil:
		return ""
	case string:
		return x
	case bool:
		return strconv.FormatBool(x)
	case json.Number:
		return x.String()
	default:
		b, err := json.Marshal(x)
		if err != nil {
			return ""
		}
		return string(b)
	}
}

// CoerceNumber follows JavaScript's Number(): numeric strings (including
// 0x/0o/0b integers) parse, true is 1, an array converts through its
// comma-joined text, and anything else is 0. NaN and infinities become 0.
func CoerceNumber(v any) float64 {
	var f float64
	switch x := v.(type) {
	case bool:
		if x {
			f = 1
		}
	case json.Number:
		n, err := x.Float64()
		if err != nil {
			return 0
		}
		f = n
	case string:
		f = parseNumber(x)
	case []any:
		f = parseNumber(arrayText(x))
	default:
		return 0
	}
	if math.IsNaN(f) || math.IsInf(f, 0) {
		return 0
	}
	return f
}

// CoerceTags maps absent values to an empty list, scalars to a one-element
// list and arrays element-wise through CoerceString.
func CoerceTags(v any) []string {
	if list, ok := v.([]any); ok {
		tags := make([]string, 0, len(list))
		for _, item := range list {
			tags = append(tags, CoerceString(item))
		}
		return tags
	}
	if Truthy(v) {
		return []string{CoerceString(v)}
	}
	return []string{}
}

var decimalLiteral = regexp.MustCompile(`^[+-]?(\d+\.?\d*|\.\d+)([eE][+-]?\d+)?$`)

func parseNumber(s string) float64 {
	s = strings.TrimSpace(s)
	if s == "" {
		return 0
	}

	if len(s) > 2 && s[0] == '0' {
		base := 0
		switch s[1] {
		case 'x', 'X':
			base = 16
		case 'o', 'O':
			base = 8
		case 'b', 'B':
			base = 2
		}
		if base != 0 {
			digits := s[2:]
			if digits[0] == '+' || digits[0] == '-' {
				return 0
			}
			n, ok := new(big.Int).SetString(digits, base)
			if !ok {
				return 0
			}
			f, _ := new(big.Float).SetInt(n).Float64()
			return f
		}
	}

	if !decimalLiteral.MatchString(s) {
		return 0
	}
	f, err := strconv.ParseFloat(s, 64)
	if err != nil {
		return 0
	}
	return f
}

// arrayText is Array.prototype.toString: elements joined by commas, with
// null rendered empty.
func arrayText(list []any) string {
	parts := make([]string, len(list))
	for i, item := range list {
		switch x := item.(type) {
		case nil:
		case []any:
			parts[i] = arrayText(x)
		case map[string]any:
			parts[i] = "[object Object]"
		default:
			parts[i] = CoerceString(x)
		}
	}
	return strings.Join(parts, ",")
}
