package validators

import (
	"fmt"
	"reflect"
	"regexp"
	"strconv"
	"strings"
	"unicode/utf8"

	"github.com/goliatone/go-formstate/pkg/form"
)

// Canonical rule identifiers.
const (
	RuleRequired  = "required"
	RuleMin       = "min"
	RuleMax       = "max"
	RuleMinLength = "minLength"
	RuleMaxLength = "maxLength"
	RulePattern   = "pattern"
	RuleOneOf     = "oneOf"
	RuleTag       = "tag"
	RuleEmail     = "email"
	RuleURL       = "url"
	RuleNoMarkup  = "noMarkup"
)

// Required rejects nil, blank strings, and empty slices or maps.
func Required() form.Validator {
	return func(value any, _ form.Snapshot) any {
		if isEmpty(value) {
			return "Required"
		}
		return nil
	}
}

// MinLength rejects strings (counted in runes) or collections shorter than n.
func MinLength(n int) form.Validator {
	return func(value any, _ form.Snapshot) any {
		length, ok := lengthOf(value)
		if !ok || length == 0 {
			return nil
		}
		if length < n {
			return fmt.Sprintf("Must be at least %d characters", n)
		}
		return nil
	}
}

// MaxLength rejects strings (counted in runes) or collections longer than n.
func MaxLength(n int) form.Validator {
	return func(value any, _ form.Snapshot) any {
		length, ok := lengthOf(value)
		if !ok {
			return nil
		}
		if length > n {
			return fmt.Sprintf("Must be at most %d characters", n)
		}
		return nil
	}
}

// Min rejects numbers (or numeric strings) below limit.
func Min(limit float64) form.Validator {
	return func(value any, _ form.Snapshot) any {
		number, ok := numberOf(value)
		if !ok {
			return nil
		}
		if number < limit {
			return fmt.Sprintf("Must be at least %s", formatNumber(limit))
		}
		return nil
	}
}

// Max rejects numbers (or numeric strings) above limit.
func Max(limit float64) form.Validator {
	return func(value any, _ form.Snapshot) any {
		number, ok := numberOf(value)
		if !ok {
			return nil
		}
		if number > limit {
			return fmt.Sprintf("Must be at most %s", formatNumber(limit))
		}
		return nil
	}
}

// Pattern compiles expr and rejects non-empty strings that do not match it.
func Pattern(expr string) (form.Validator, error) {
	re, err := regexp.Compile(expr)
	if err != nil {
		return nil, fmt.Errorf("validators: compile pattern %q: %w", expr, err)
	}
	return func(value any, _ form.Snapshot) any {
		s, ok := value.(string)
		if !ok || s == "" {
			return nil
		}
		if !re.MatchString(s) {
			return "Invalid format"
		}
		return nil
	}, nil
}

// MustPattern is Pattern that panics on an invalid expression.
func MustPattern(expr string) form.Validator {
	v, err := Pattern(expr)
	if err != nil {
		panic(err)
	}
	return v
}

// OneOf rejects non-empty values whose string form is not among allowed.
func OneOf(allowed ...any) form.Validator {
	set := make(map[string]struct{}, len(allowed))
	labels := make([]string, 0, len(allowed))
	for _, option := range allowed {
		key := fmt.Sprint(option)
		set[key] = struct{}{}
		labels = append(labels, key)
	}
	return func(value any, _ form.Snapshot) any {
		if isEmpty(value) {
			return nil
		}
		if _, ok := set[fmt.Sprint(value)]; !ok {
			return "Must be one of " + strings.Join(labels, ", ")
		}
		return nil
	}
}

// Message replaces the error payload reported by v with msg.
func Message(v form.Validator, msg any) form.Validator {
	if v == nil {
		return nil
	}
	return func(value any, snap form.Snapshot) any {
		if err := v(value, snap); err != nil {
			return msg
		}
		return nil
	}
}

// AfterSubmit only reports v's errors once the form has been submitted, for
// rules that should stay quiet until the first submit attempt.
func AfterSubmit(v form.Validator) form.Validator {
	if v == nil {
		return nil
	}
	return func(value any, snap form.Snapshot) any {
		if !snap.HasSubmitted {
			return nil
		}
		return v(value, snap)
	}
}

func isEmpty(value any) bool {
	if value == nil {
		return true
	}
	if s, ok := value.(string); ok {
		return strings.TrimSpace(s) == ""
	}
	rv := reflect.ValueOf(value)
	switch rv.Kind() {
	case reflect.Slice, reflect.Map, reflect.Array:
		return rv.Len() == 0
	case reflect.Pointer, reflect.Interface:
		return rv.IsNil()
	}
	return false
}

func lengthOf(value any) (int, bool) {
	if value == nil {
		return 0, false
	}
	if s, ok := value.(string); ok {
		return utf8.RuneCountInString(s), true
	}
	rv := reflect.ValueOf(value)
	switch rv.Kind() {
	case reflect.Slice, reflect.Map, reflect.Array:
		return rv.Len(), true
	}
	return 0, false
}

func numberOf(value any) (float64, bool) {
	switch v := value.(type) {
	case int:
		return float64(v), true
	case int8:
		return float64(v), true
	case int16:
		return float64(v), true
	case int32:
		return float64(v), true
	case int64:
		return float64(v), true
	case uint:
		return float64(v), true
	case uint8:
		return float64(v), true
	case uint16:
		return float64(v), true
	case uint32:
		return float64(v), true
	case uint64:
		return float64(v), true
	case float32:
		return float64(v), true
	case float64:
		return v, true
	case string:
		trimmed := strings.TrimSpace(v)
		if trimmed == "" {
			return 0, false
		}
		f, err := strconv.ParseFloat(trimmed, 64)
		if err != nil {
			return 0, false
		}
		return f, true
	}
	return 0, false
}

func formatNumber(f float64) string {
	return strconv.FormatFloat(f, 'f', -1, 64)
}
