// Package params converts structured operation arguments into the flat
// dotted-path query parameters MWS expects on the wire. Lists become
// 1-based enumerations (Prefix.1, Prefix.2, ...), nested mappings extend
// the dotted path, and every leaf is percent-encoded with the RFC 3986
// unreserved set before signing.
package params

import (
	"fmt"
	"reflect"
	"strconv"
	"strings"
	"time"
)

// TimestampFormat renders timestamps the way MWS requires: ISO-8601 UTC
// with no sub-second precision. The encoded form has ':' escaped to %3A.
const TimestampFormat = "2006-01-02T15:04:05"

// Mapper is implemented by datatype models that render themselves as a
// parameter mapping. EnumerateKeyedParam and FlatParamDict expand Mappers
// in place of literal maps.
type Mapper interface {
	ParamMap() map[string]any
}

// ValueError reports an argument that cannot be turned into a wire
// parameter. Key names the offending parameter path.
type ValueError struct {
	Key    string
	Reason string
}

func (e *ValueError) Error() string {
	if e.Key == "" {
		return fmt.Sprintf("invalid parameter value: %s", e.Reason)
	}
	return fmt.Sprintf("invalid value for parameter %q: %s", e.Key, e.Reason)
}

// Escape percent-encodes s for an MWS query string. The safe set is
// exactly the RFC 3986 unreserved characters: letters, digits and -_.~.
// Strings already made of only safe characters pass through unchanged.
func Escape(s string) string {
	var b strings.Builder
	b.Grow(len(s))
	for i := 0; i < len(s); i++ {
		c := s[i]
		if isUnreserved(c) {
			b.WriteByte(c)
			continue
		}
		b.WriteByte('%')
		b.WriteByte(upperhex[c>>4])
		b.WriteByte(upperhex[c&0xf])
	}
	return b.String()
}

const upperhex = "0123456789ABCDEF"

func isUnreserved(c byte) bool {
	return 'a' <= c && c <= 'z' || 'A' <= c && c <= 'Z' || '0' <= c && c <= '9' ||
		c == '-' || c == '_' || c == '.' || c == '~'
}

// CleanValue renders a scalar argument as its encoded wire string.
// Booleans become the lowercase JSON literals, timestamps the ISO-8601
// form with ':' escaped, everything else is stringified and escaped.
// Containers must have been flattened first; passing one is an error.
func CleanValue(v any) (string, error) {
	switch val := v.(type) {
	case nil:
		return "", nil
	case bool:
		return strconv.FormatBool(val), nil
	case string:
		return Escape(val), nil
	case time.Time:
		return Escape(val.UTC().Format(TimestampFormat)), nil
	case int:
		return strconv.Itoa(val), nil
	case int32:
		return strconv.FormatInt(int64(val), 10), nil
	case int64:
		return strconv.FormatInt(val, 10), nil
	case float64:
		return Escape(strconv.FormatFloat(val, 'f', -1, 64)), nil
	case float32:
		return Escape(strconv.FormatFloat(float64(val), 'f', -1, 32)), nil
	case fmt.Stringer:
		return Escape(val.String()), nil
	}
	if isContainer(v) {
		return "", &ValueError{Reason: fmt.Sprintf("container %T left in leaf position, flatten it first", v)}
	}
	return Escape(fmt.Sprint(v)), nil
}

// CleanParams applies CleanValue to every entry of a flat parameter map.
// Entries whose value is nil or the empty string are dropped, so optional
// arguments can be passed through unconditionally. The returned error
// names the offending key.
func CleanParams(in map[string]any) (map[string]string, error) {
	out := make(map[string]string, len(in))
	for key, raw := range in {
		if raw == nil {
			continue
		}
		if s, ok := raw.(string); ok && s == "" {
			continue
		}
		cleaned, err := CleanValue(raw)
		if err != nil {
			var verr *ValueError
			if ve, ok := err.(*ValueError); ok {
				verr = ve
			} else {
				verr = &ValueError{Reason: err.Error()}
			}
			verr.Key = key
			return nil, verr
		}
		if cleaned == "" {
			continue
		}
		out[key] = cleaned
	}
	return out, nil
}

// EnumerateParam expands a list argument into Prefix.1..Prefix.N entries.
// A missing trailing '.' on the prefix is supplied. A single non-sequence
// value is treated as a one-element list. Nil values inside the list are
// skipped, and an empty or all-nil list yields no entries at all.
func EnumerateParam(prefix string, values any) map[string]any {
	out := map[string]any{}
	if values == nil {
		return out
	}
	if !strings.HasSuffix(prefix, ".") {
		prefix += "."
	}
	n := 1
	for _, v := range asList(values) {
		if v == nil {
			continue
		}
		if s, ok := v.(string); ok && s == "" {
			continue
		}
		out[prefix+strconv.Itoa(n)] = v
		n++
	}
	return out
}

// EnumerateKeyedParam expands a list of mappings into Prefix.N.Field
// entries. Elements may be literal maps or Mapper models; anything else
// is an input error reported before any request is sent.
func EnumerateKeyedParam(prefix string, values any) (map[string]any, error) {
	out := map[string]any{}
	if values == nil {
		return out, nil
	}
	if !strings.HasSuffix(prefix, ".") {
		prefix += "."
	}
	n := 0
	for _, v := range asList(values) {
		if v == nil {
			continue
		}
		fields, ok := asMap(v)
		if !ok {
			return nil, &ValueError{
				Key:    prefix + strconv.Itoa(n+1),
				Reason: fmt.Sprintf("expected a mapping, got %T", v),
			}
		}
		n++
		for field, fv := range fields {
			out[prefix+strconv.Itoa(n)+"."+field] = fv
		}
	}
	return out, nil
}

// DictKeyedParam flattens one mapping level, producing Prefix.Key for
// each pair.
func DictKeyedParam(prefix string, mapping map[string]any) map[string]any {
	out := make(map[string]any, len(mapping))
	if !strings.HasSuffix(prefix, ".") {
		prefix += "."
	}
	for key, v := range mapping {
		out[prefix+key] = v
	}
	return out
}

// FlatParamDict is the recursive generalization of the helpers above.
// Strings and scalars terminate the recursion at the current prefix,
// mappings extend the path with their keys, and non-string sequences
// extend it with 1-based indices. A bare scalar needs a non-empty prefix
// to land under.
func FlatParamDict(value any, prefix string) (map[string]any, error) {
	out := map[string]any{}
	if err := flattenInto(out, value, prefix); err != nil {
		return nil, err
	}
	return out, nil
}

func flattenInto(out map[string]any, value any, prefix string) error {
	if fields, ok := asMap(value); ok {
		for key, v := range fields {
			next := key
			if prefix != "" {
				next = prefix + "." + key
			}
			if err := flattenInto(out, v, next); err != nil {
				return err
			}
		}
		return nil
	}
	if isSequence(value) {
		for i, v := range asList(value) {
			next := strconv.Itoa(i + 1)
			if prefix != "" {
				next = prefix + "." + next
			}
			if err := flattenInto(out, v, next); err != nil {
				return err
			}
		}
		return nil
	}
	if prefix == "" {
		return &ValueError{Reason: fmt.Sprintf("cannot flatten bare %T without a prefix", value)}
	}
	out[prefix] = value
	return nil
}

// Merge combines parameter maps left to right; later maps win on key
// collisions.
func Merge(maps ...map[string]any) map[string]any {
	out := map[string]any{}
	for _, m := range maps {
		for k, v := range m {
			out[k] = v
		}
	}
	return out
}

// falseyStrings are the spellings facades accept as boolean false, on top
// of the usual zero values.
var falseyStrings = map[string]bool{
	"no": true, "n": true, "none": true, "off": true, "false": true, "0": true,
}

// ToBool coerces loosely-typed flag arguments. The common negative
// spellings map to false regardless of case; everything else follows Go
// zero-value truthiness.
func ToBool(v any) bool {
	switch val := v.(type) {
	case nil:
		return false
	case bool:
		return val
	case string:
		if falseyStrings[strings.ToLower(strings.TrimSpace(val))] {
			return false
		}
		return val != ""
	case int:
		return val != 0
	case int64:
		return val != 0
	case float64:
		return val != 0
	}
	rv := reflect.ValueOf(v)
	switch rv.Kind() {
	case reflect.Slice, reflect.Map, reflect.Array:
		return rv.Len() > 0
	}
	return true
}

// asList normalizes a value to a []any. Non-sequence values become a
// one-element list; strings count as scalars, not sequences.
func asList(values any) []any {
	if values == nil {
		return nil
	}
	if list, ok := values.([]any); ok {
		return list
	}
	if list, ok := values.([]string); ok {
		out := make([]any, len(list))
		for i, s := range list {
			out[i] = s
		}
		return out
	}
	rv := reflect.ValueOf(values)
	switch rv.Kind() {
	case reflect.Slice, reflect.Array:
		out := make([]any, rv.Len())
		for i := 0; i < rv.Len(); i++ {
			out[i] = rv.Index(i).Interface()
		}
		return out
	}
	return []any{values}
}

// asMap normalizes a value to a map[string]any, expanding Mapper models.
func asMap(v any) (map[string]any, bool) {
	switch val := v.(type) {
	case map[string]any:
		return val, true
	case map[string]string:
		out := make(map[string]any, len(val))
		for k, s := range val {
			out[k] = s
		}
		return out, true
	case Mapper:
		return val.ParamMap(), true
	}
	return nil, false
}

// isSequence reports whether v expands as a list. Strings and byte
// slices stay scalars.
func isSequence(v any) bool {
	switch v.(type) {
	case nil, string, []byte, time.Time:
		return false
	}
	rv := reflect.ValueOf(v)
	return rv.Kind() == reflect.Slice || rv.Kind() == reflect.Array
}

// isContainer reports whether v is a mapping or sequence that should have
// been flattened before reaching CleanValue.
func isContainer(v any) bool {
	if _, ok := asMap(v); ok {
		return true
	}
	return isSequence(v)
}
