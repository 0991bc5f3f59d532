package http

import (
	"fmt"
	"net/url"
	"strings"

	"github.com/hopinc/hop-go/pkg/hop"
)

// ResolvePath substitutes every ":name" placeholder in template with the
// matching value from params and returns the resolved path together with
// the params the template did not consume (callers merge those into the
// query string). A placeholder with no value fails before any network I/O;
// sending a malformed URL is never an option.
//
// Placeholder values are escaped as single path segments, so the resolved
// URL's segments parse back to the original values exactly.
func ResolvePath(template string, params map[string]string) (string, map[string]string, error) {
	segments := strings.Split(template, "/")
	used := make(map[string]bool, len(segments))

	for i, segment := range segments {
		if !strings.HasPrefix(segment, ":") {
			continue
		}

		name := segment[1:]

		value, ok := params[name]
		if !ok || value == "" {
			return "", nil, fmt.Errorf("%w: %s in %s", hop.ErrMissingPathParam, name, template)
		}

		segments[i] = url.PathEscape(value)
		used[name] = true
	}

	remaining := make(map[string]string, len(params))

	for key, value := range params {
		if !used[key] {
			remaining[key] = value
		}
	}

	return strings.Join(segments, "/"), remaining, nil
}
