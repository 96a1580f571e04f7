package jsonschema

import (
	"net/netip"
	"regexp"
)

// FormatFunc checks a value against a named format. Returning false makes
// the enclosing format rule fail with a FormatError. Format checks receive
// the raw value; the built-in formats only constrain strings and accept
// everything else, consistent with how the string keywords treat non-string
// values.
type FormatFunc func(v any) bool

// Full-string dotted quad, each octet 0-255.
var ipv4Pattern = regexp.MustCompile(
	`^(25[0-5]|2[0-4][0-9]|[01]?[0-9][0-9]?)(\.(25[0-5]|2[0-4][0-9]|[01]?[0-9][0-9]?)){3}$`)

func isIPv4(v any) bool {
	str, ok := v.(string)
	if !ok {
		return true
	}
	return ipv4Pattern.MatchString(str)
}

func isIPv6(v any) bool {
	str, ok := v.(string)
	if !ok {
		return true
	}
	addr, err := netip.ParseAddr(str)
	return err == nil && addr.Is6()
}

// defaultFormats builds the fixed registry every Schema starts from.
// Additional formats are registered per Schema via WithFormat.
func defaultFormats() map[string]FormatFunc {
	return map[string]FormatFunc{
		"ipv4": isIPv4,
		"ipv6": isIPv6,
	}
}
