package validators

import (
	"fmt"
	"strings"
	"sync"

	"github.com/go-playground/validator/v10"

	"github.com/goliatone/go-formstate/pkg/form"
)

var (
	tagValidatorOnce sync.Once
	tagValidator     *validator.Validate
)

func tagEngine() *validator.Validate {
	tagValidatorOnce.Do(func() {
		tagValidator = validator.New()
	})
	return tagValidator
}

// Tag checks the value against a go-playground validator tag such as "email",
// "url", or "alphanum". Empty values pass unless the tag itself requires them.
// A value of a kind the tag cannot check is reported as invalid.
func Tag(tag string) form.Validator {
	tag = strings.TrimSpace(tag)
	if tag == "" {
		return nil
	}
	expr := tag
	if !strings.Contains(tag, "required") {
		expr = "omitempty," + tag
	}
	return func(value any, _ form.Snapshot) any {
		if value == nil {
			return nil
		}
		if err := checkTag(value, expr); err != nil {
			return "Invalid " + tagLabel(tag)
		}
		return nil
	}
}

// checkTag runs expr against value. Several string-only tags (url, uri and
// friends) panic on other kinds; that is reported as a failed check.
func checkTag(value any, expr string) (err error) {
	if _, ok := value.(string); ok {
		return tagEngine().Var(value, expr)
	}
	defer func() {
		if r := recover(); r != nil {
			err = fmt.Errorf("validators: tag %q on %T: %v", expr, value, r)
		}
	}()
	return tagEngine().Var(value, expr)
}

// Email accepts RFC 5322 addresses.
func Email() form.Validator {
	return Message(Tag("email"), "Invalid email address")
}

// URL accepts absolute URLs.
func URL() form.Validator {
	return Message(Tag("url"), "Invalid URL")
}

func tagLabel(tag string) string {
	name := tag
	if idx := strings.IndexAny(name, ",="); idx >= 0 {
		name = name[:idx]
	}
	return name
}
