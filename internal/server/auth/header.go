package auth

import "strings"

// bearerPrefix is the only accepted authorization scheme. Tokens travel in
// the Authorization header; no cookie or query-parameter transport exists.
const bearerPrefix = "Bearer "

// TokenFromHeader extracts the raw token from an Authorization header value.
// The value must be exactly the "Bearer " prefix followed by the token; any
// other shape (missing prefix, different scheme, empty value) yields "".
func TokenFromHeader(headerValue string) string {
	if !strings.HasPrefix(headerValue, bearerPrefix) {
		return ""
	}
	return headerValue[len(bearerPrefix):]
}
