package validators

import (
	"errors"
	"fmt"
	"sort"
	"strconv"
	"strings"
	"sync"

	"github.com/goliatone/go-formstate/pkg/form"
)

// ErrUnknownRule is returned by Lookup for unregistered rule names.
var ErrUnknownRule = errors.New("validators: unknown rule")

// Factory builds a validator from string parameters. Numeric bounds and
// lengths read Params["value"]; patterns read Params["pattern"].
type Factory func(params map[string]string) (form.Validator, error)

var (
	registryMu sync.RWMutex
	registry   = map[string]Factory{
		RuleRequired:  func(map[string]string) (form.Validator, error) { return Required(), nil },
		RuleMinLength: intFactory(MinLength),
		RuleMaxLength: intFactory(MaxLength),
		RuleMin:       floatFactory(Min),
		RuleMax:       floatFactory(Max),
		RulePattern: func(params map[string]string) (form.Validator, error) {
			expr, ok := params["pattern"]
			if !ok {
				expr = params["value"]
			}
			if expr == "" {
				return nil, errors.New("validators: pattern rule requires a pattern")
			}
			return Pattern(expr)
		},
		RuleOneOf: func(params map[string]string) (form.Validator, error) {
			raw := strings.TrimSpace(params["values"])
			if raw == "" {
				return nil, errors.New("validators: oneOf rule requires values")
			}
			parts := strings.Split(raw, ",")
			allowed := make([]any, 0, len(parts))
			for _, part := range parts {
				allowed = append(allowed, strings.TrimSpace(part))
			}
			return OneOf(allowed...), nil
		},
		RuleTag: func(params map[string]string) (form.Validator, error) {
			tag := strings.TrimSpace(params["tag"])
			if tag == "" {
				tag = strings.TrimSpace(params["value"])
			}
			if tag == "" {
				return nil, errors.New("validators: tag rule requires a tag")
			}
			return Tag(tag), nil
		},
		RuleEmail:    func(map[string]string) (form.Validator, error) { return Email(), nil },
		RuleURL:      func(map[string]string) (form.Validator, error) { return URL(), nil },
		RuleNoMarkup: func(map[string]string) (form.Validator, error) { return NoMarkup(), nil },
	}
)

// Register adds or replaces a named rule.
func Register(name string, factory Factory) {
	name = strings.TrimSpace(name)
	if name == "" || factory == nil {
		return
	}
	registryMu.Lock()
	defer registryMu.Unlock()
	registry[name] = factory
}

// Lookup builds the validator registered under name.
func Lookup(name string, params map[string]string) (form.Validator, error) {
	registryMu.RLock()
	factory, ok := registry[strings.TrimSpace(name)]
	registryMu.RUnlock()
	if !ok {
		return nil, fmt.Errorf("%w: %q", ErrUnknownRule, name)
	}
	v, err := factory(params)
	if err != nil {
		return nil, fmt.Errorf("validators: rule %q: %w", name, err)
	}
	return v, nil
}

// Rules lists registered rule names in sorted order.
func Rules() []string {
	registryMu.RLock()
	defer registryMu.RUnlock()
	names := make([]string, 0, len(registry))
	for name := range registry {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

func intFactory(build func(int) form.Validator) Factory {
	return func(params map[string]string) (form.Validator, error) {
		n, err := strconv.Atoi(strings.TrimSpace(params["value"]))
		if err != nil {
			return nil, fmt.Errorf("invalid integer %q", params["value"])
		}
		return build(n), nil
	}
}

func floatFactory(build func(float64) form.Validator) Factory {
	return func(params map[string]string) (form.Validator, error) {
		f, err := strconv.ParseFloat(strings.TrimSpace(params["value"]), 64)
		if err != nil {
			return nil, fmt.Errorf("invalid number %q", params["value"])
		}
		return build(f), nil
	}
}
