// Package signature implements AWS Signature version 2 as used by MWS:
// an HMAC-SHA256 over the request method, host, path and canonical query
// string. Parameter values arrive already percent-encoded; the signer
// never re-encodes them, only orders them.
package signature

import (
	"crypto/hmac"
	"crypto/sha256"
	"encoding/base64"
	"sort"
	"strings"
)

// Method and version constants injected into every signed request.
const (
	SignatureMethod  = "HmacSHA256"
	SignatureVersion = "2"
)

// CanonicalQuery joins the parameter map as key=value pairs in strict
// lexicographic key order. The result is used both as the URL query and
// as the last line of the string to sign, so key order independence of
// the signature follows directly.
func CanonicalQuery(params map[string]string) string {
	keys := make([]string, 0, len(params))
	for k := range params {
		keys = append(keys, k)
	}
	sort.Strings(keys)

	var b strings.Builder
	for i, k := range keys {
		if i > 0 {
			b.WriteByte('&')
		}
		b.WriteString(k)
		b.WriteByte('=')
		b.WriteString(params[k])
	}
	return b.String()
}

// StringToSign builds the four-line signing input: HTTP method, lowercased
// host, path and canonical query, joined by single newlines.
func StringToSign(method, host, path, canonicalQuery string) string {
	return strings.Join([]string{
		strings.ToUpper(method),
		strings.ToLower(host),
		path,
		canonicalQuery,
	}, "\n")
}

// Sign computes the base64 HMAC-SHA256 signature for a request. The
// caller percent-encodes the result before appending it to the URL as the
// Signature parameter.
func Sign(method, host, path string, params map[string]string, secret string) string {
	mac := hmac.New(sha256.New, []byte(secret))
	mac.Write([]byte(StringToSign(method, host, path, CanonicalQuery(params))))
	return base64.StdEncoding.EncodeToString(mac.Sum(nil))
}
