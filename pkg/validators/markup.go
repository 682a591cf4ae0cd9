package validators

import (
	"html"
	"strings"
	"sync"

	"github.com/microcosm-cc/bluemonday"

	"github.com/goliatone/go-formstate/pkg/form"
)

var (
	markupPolicyOnce sync.Once
	markupPolicy     *bluemonday.Policy
)

func markupSanitizer() *bluemonday.Policy {
	markupPolicyOnce.Do(func() {
		markupPolicy = bluemonday.StrictPolicy()
	})
	return markupPolicy
}

// NoMarkup rejects strings that carry HTML elements.
func NoMarkup() form.Validator {
	return func(value any, _ form.Snapshot) any {
		s, ok := value.(string)
		if !ok || strings.TrimSpace(s) == "" {
			return nil
		}
		cleaned := html.UnescapeString(markupSanitizer().Sanitize(s))
		if cleaned != s {
			return "Markup is not allowed"
		}
		return nil
	}
}
