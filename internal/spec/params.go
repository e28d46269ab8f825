package spec

import "regexp"

var paramPattern = regexp.MustCompile(`<([^>]+)>`)

// ExtractPathParams pulls Django-style converter segments out of a URL, in
// left-to-right order. "<uuid:event_id>" yields {event_id uuid}; a bare
// "<pk>" defaults to type "str".
func ExtractPathParams(url string) []PathParam {
	params := []PathParam{}

	for _, match := range paramPattern.FindAllStringSubmatch(url, -1) {
		inner := match[1]
		paramType := "str"
		name := inner
		for i := 0; i < len(inner); i++ {
			if inner[i] == ':' {
				paramType = inner[:i]
				name = inner[i+1:]
				break
			}
		}
		params = append(params, PathParam{Name: name, Type: paramType})
	}

	return params
}
