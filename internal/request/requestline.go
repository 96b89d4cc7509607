package request

import (
	"strings"
)

// Method is the request method token as understood by this server
type Method string

const (
	MethodGet     Method = "GET"
	MethodPost    Method = "POST"
	MethodUnknown Method = "UNKNOWN"
)

// ParseMethod maps a method token onto the supported set. Anything
// other than GET or POST is MethodUnknown.
func ParseMethod(token string) Method {
	switch token {
	case "GET":
		return MethodGet
	case "POST":
		return MethodPost
	default:
		return MethodUnknown
	}
}

// parseRequestLine parses: METHOD PATH [VERSION]
// ok is false when the line has no path token.
func parseRequestLine(line string) (Method, string, bool) {
	fields := strings.Fields(line)
	if len(fields) < 2 {
		return MethodUnknown, "", false
	}
	return ParseMethod(fields[0]), fields[1], true
}

// splitPath splits target on "/" and drops the first component, which
// is empty for every origin-form target. Empty components produced by
// doubled or trailing slashes are kept.
func splitPath(target string) []string {
	parts := strings.Split(target, "/")
	return parts[1:]
}
