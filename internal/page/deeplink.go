package page

import (
	"net/url"
	"strings"

	"github.com/rotisserie/eris"

	"github.com/sells-group/millionaires/internal/query"
)

// DirectoryPath is the site path of the directory page.
const DirectoryPath = "/directory/"

// ParseDeepLink reads the state, city, and q parameters.
func ParseDeepLink(v url.Values) query.DeepLink {
	return query.DeepLink{
		State: v.Get("state"),
		City:  v.Get("city"),
		Query: v.Get("q"),
	}
}

// ParseDeepLinkURL reads the deep link parameters of a page URL. Both
// absolute URLs and bare query strings are accepted.
func ParseDeepLinkURL(raw string) (query.DeepLink, error) {
	if raw == "" {
		return query.DeepLink{}, nil
	}
	if strings.HasPrefix(raw, "?") {
		raw = DirectoryPath + raw
	}
	u, err := url.Parse(raw)
	if err != nil {
		return query.DeepLink{}, eris.Wrapf(err, "page: parse link %q", raw)
	}
	return ParseDeepLink(u.Query()), nil
}

// DirectoryURL returns the directory link for a state and optional city.
// Empty values are omitted, and a nil city links to the whole state.
func DirectoryURL(state string, city *string) string {
	cityValue := ""
	if city != nil {
		cityValue = *city
	}
	q := buildQuery([][2]string{{"state", state}, {"city", cityValue}})
	if q == "" {
		return DirectoryPath
	}
	return DirectoryPath + "?" + q
}

// buildQuery encodes non-empty pairs in the given order.
func buildQuery(pairs [][2]string) string {
	var parts []string
	for _, p := range pairs {
		if p[1] == "" {
			continue
		}
		parts = append(parts, url.QueryEscape(p[0])+"="+url.QueryEscape(p[1]))
	}
	return strings.Join(parts, "&")
}
