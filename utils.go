package cjsontools

import (
	"fmt"
	"strings"
)

// replace substitutes {name}-style placeholders in template with the
// stringified value from params. The CLI (cmd/cjsontools) formats its
// diagnostics with its own copy of this helper, since this one is
// unexported.
func replace(template string, params map[string]interface{}) string {
	for key, value := range params {
		placeholder := "{" + key + "}"
		template = strings.ReplaceAll(template, placeholder, fmt.Sprint(value))
	}
	return template
}
