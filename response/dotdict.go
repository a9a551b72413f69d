// Package response wraps raw MWS HTTP responses: it validates content
// integrity, decodes the body, parses XML payloads into a navigable tree
// and falls back to the raw bytes for flat-file payloads such as reports.
package response

import (
	"strings"

	json "github.com/goccy/go-json"
)

// DotDict is one parsed XML element. Child elements appear under their
// tag name, attributes under "@name" keys and mixed-content text under
// "#text". Repeated sibling tags collapse into a []any under the shared
// tag; a lone sibling stays a plain node. Callers treat the tree as
// read-only.
type DotDict map[string]any

// Get looks up a dotted path such as "Orders.Order.AmazonOrderId" and
// returns the node, or nil when any step is missing. At each step a plain
// key takes precedence; failing that the "@key" attribute and then the
// "#key" text variant are tried, so attributes and text nodes are
// reachable without their prefixes. A numeric step indexes into a
// repeated-sibling list (1-based, matching the wire convention).
func (d DotDict) Get(path string) any {
	var node any = d
	for _, step := range strings.Split(path, ".") {
		switch cur := node.(type) {
		case DotDict:
			node = cur.lookup(step)
		case []any:
			idx := listIndex(step, len(cur))
			if idx < 0 {
				return nil
			}
			node = cur[idx]
		default:
			return nil
		}
		if node == nil {
			return nil
		}
	}
	return node
}

// GetDefault is Get with a fallback for missing paths.
func (d DotDict) GetDefault(path string, def any) any {
	if v := d.Get(path); v != nil {
		return v
	}
	return def
}

// GetString returns the text content at path, descending into "#text"
// for elements that carry attributes, or "" when absent.
func (d DotDict) GetString(path string) string {
	return Text(d.Get(path))
}

// GetDict returns the node at path as a DotDict, or nil when the node is
// absent or scalar.
func (d DotDict) GetDict(path string) DotDict {
	dict, _ := d.Get(path).(DotDict)
	return dict
}

// All returns the node at path normalized to a slice. Schemas that allow
// repeated siblings produce a plain node when only one is present; All
// hides that asymmetry so range loops work for one or many. A missing
// path yields an empty slice.
func (d DotDict) All(path string) []any {
	return AsList(d.Get(path))
}

// JSON renders the subtree as JSON, mainly for debugging and CLI output.
func (d DotDict) JSON() ([]byte, error) {
	return json.Marshal(map[string]any(d))
}

// lookup resolves one path step with the attribute and text fallbacks.
func (d DotDict) lookup(key string) any {
	if v, ok := d[key]; ok {
		return v
	}
	if v, ok := d["@"+key]; ok {
		return v
	}
	if v, ok := d["#"+key]; ok {
		return v
	}
	return nil
}

// AsList normalizes any node to a slice: lists pass through, nil becomes
// empty, and a single node yields itself once.
func AsList(node any) []any {
	switch v := node.(type) {
	case nil:
		return nil
	case []any:
		return v
	default:
		return []any{v}
	}
}

// Text extracts the string content of a node: scalars return themselves,
// elements return their "#text" child, anything else returns "".
func Text(node any) string {
	switch v := node.(type) {
	case string:
		return v
	case DotDict:
		if t, ok := v["#text"].(string); ok {
			return t
		}
	}
	return ""
}

func listIndex(step string, length int) int {
	idx := 0
	for _, c := range step {
		if c < '0' || c > '9' {
			return -1
		}
		idx = idx*10 + int(c-'0')
	}
	idx-- // wire enumeration is 1-based
	if idx < 0 || idx >= length {
		return -1
	}
	return idx
}
