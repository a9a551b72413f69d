package response

import (
	"bytes"
	"crypto/md5"
	"encoding/base64"
	"encoding/xml"
	"fmt"
	"io"
	"mime"
	"net/http"
	"strings"
	"unicode/utf8"
)

// DefaultEncoding is assumed for response bodies that declare no charset.
// Amazon documents ISO-8859-1 as the MWS default; guessing from content
// is deliberately avoided.
const DefaultEncoding = "ISO-8859-1"

// IntegrityError reports a Content-MD5 mismatch between the response
// header and the received body. It is always a hard failure.
type IntegrityError struct {
	Declared string
	Computed string
}

func (e *IntegrityError) Error() string {
	return fmt.Sprintf("content MD5 mismatch: header declared %s, body hashes to %s", e.Declared, e.Computed)
}

// Response is the wrapped result of one MWS call. Original always holds
// the raw body bytes; the parsed tree is populated only when the body is
// well-formed XML. For flat-file payloads (reports, ZIP, PDF) Parsed
// returns the decoded text instead.
type Response struct {
	StatusCode int
	Header     http.Header
	Original   []byte
	Encoding   string

	tree        DotDict
	resultKey   string
	forceLeaves bool
}

// Option adjusts how a received body is parsed.
type Option func(*Response)

// ForceTextLeaves keeps every XML leaf element as a node with a "#text"
// entry instead of collapsing it to a bare string, so leaf text and
// mixed-content text are addressed uniformly.
func ForceTextLeaves() Option {
	return func(r *Response) { r.forceLeaves = true }
}

// New validates and parses a received body. The resultKey selects which
// child of the response root Parsed presents, typically
// "{Action}Result"; pass "" to present the whole root. Only an integrity
// failure is an error here: a body that is not XML still produces a
// usable Response.
func New(status int, header http.Header, body []byte, resultKey string, opts ...Option) (*Response, error) {
	if declared := strings.TrimSpace(header.Get("Content-MD5")); declared != "" {
		sum := md5.Sum(body)
		computed := base64.StdEncoding.EncodeToString(sum[:])
		if computed != declared {
			return nil, &IntegrityError{Declared: declared, Computed: computed}
		}
	}

	r := &Response{
		StatusCode: status,
		Header:     header,
		Original:   body,
		Encoding:   encodingOf(header),
		resultKey:  resultKey,
	}
	for _, opt := range opts {
		opt(r)
	}
	if tree, err := parseXML(body, r.forceLeaves); err == nil {
		r.tree = tree
	}
	return r, nil
}

// IsXML reports whether the body parsed as XML.
func (r *Response) IsXML() bool {
	return r.tree != nil
}

// Tree returns the full parsed tree, keyed by the root element name, or
// nil for non-XML bodies.
func (r *Response) Tree() DotDict {
	return r.tree
}

// Root returns the contents of the root element, conventionally
// {Action}Response.
func (r *Response) Root() DotDict {
	for _, v := range r.tree {
		if dict, ok := v.(DotDict); ok {
			return dict
		}
	}
	return nil
}

// Parsed returns the primary payload view: the result-key subtree when
// present, the response root otherwise, the decoded text for flat-file
// bodies, or the untouched raw bytes for binary downloads such as ZIP
// and PDF.
func (r *Response) Parsed() any {
	root := r.Root()
	if root == nil {
		if r.textual() {
			return r.Text()
		}
		return r.Original
	}
	if r.resultKey != "" {
		if sub := root.Get(r.resultKey); sub != nil {
			return sub
		}
	}
	return root
}

// ParsedDict is Parsed narrowed to a DotDict, nil when the payload is
// scalar or non-XML.
func (r *Response) ParsedDict() DotDict {
	dict, _ := r.Parsed().(DotDict)
	return dict
}

// Metadata returns the ResponseMetadata subtree when present.
func (r *Response) Metadata() DotDict {
	return r.Root().GetDict("ResponseMetadata")
}

// RequestID returns the service-assigned request identifier, or "".
func (r *Response) RequestID() string {
	if meta := r.Metadata(); meta != nil {
		return meta.GetString("RequestId")
	}
	return ""
}

// textual reports whether a non-XML body is character data. The declared
// media type decides; without one the body bytes are sniffed, so report
// flat files decode while ZIP and PDF payloads must not be transcoded.
func (r *Response) textual() bool {
	ct := r.Header.Get("Content-Type")
	if ct == "" {
		ct = http.DetectContentType(r.Original)
	}
	mt, _, err := mime.ParseMediaType(ct)
	if err != nil {
		return true
	}
	return strings.HasPrefix(mt, "text/") || strings.HasSuffix(mt, "xml") || strings.HasSuffix(mt, "json")
}

// Text decodes the raw body using the response encoding.
func (r *Response) Text() string {
	if isLatin1(r.Encoding) {
		var b strings.Builder
		b.Grow(len(r.Original))
		for _, c := range r.Original {
			b.WriteRune(rune(c))
		}
		return b.String()
	}
	return string(r.Original)
}

// ParseXML decodes an XML document into a DotDict tree keyed by the root
// element name. Namespaces are stripped from element and attribute names,
// attributes land under "@name", and mixed-content text under "#text".
func ParseXML(data []byte) (DotDict, error) {
	return parseXML(data, false)
}

func parseXML(data []byte, forceLeaves bool) (DotDict, error) {
	dec := xml.NewDecoder(bytes.NewReader(data))
	dec.CharsetReader = charsetReader
	for {
		tok, err := dec.Token()
		if err != nil {
			return nil, fmt.Errorf("no XML root element: %w", err)
		}
		start, ok := tok.(xml.StartElement)
		if !ok {
			continue
		}
		node, err := parseElement(dec, start, forceLeaves)
		if err != nil {
			return nil, err
		}
		return DotDict{start.Name.Local: node}, nil
	}
}

// parseElement consumes tokens until the matching end element. Leaf
// elements collapse to their trimmed text (nil when empty) unless
// forceLeaves keeps them as "#text" nodes; elements with attributes or
// children stay DotDicts.
func parseElement(dec *xml.Decoder, start xml.StartElement, forceLeaves bool) (any, error) {
	node := DotDict{}
	for _, attr := range start.Attr {
		if attr.Name.Space == "xmlns" || attr.Name.Local == "xmlns" {
			continue
		}
		node["@"+attr.Name.Local] = attr.Value
	}

	var text strings.Builder
	for {
		tok, err := dec.Token()
		if err != nil {
			return nil, fmt.Errorf("malformed XML inside <%s>: %w", start.Name.Local, err)
		}
		switch t := tok.(type) {
		case xml.StartElement:
			child, err := parseElement(dec, t, forceLeaves)
			if err != nil {
				return nil, err
			}
			addChild(node, t.Name.Local, child)
		case xml.CharData:
			text.Write(t)
		case xml.EndElement:
			trimmed := strings.TrimSpace(text.String())
			if len(node) == 0 {
				if trimmed == "" {
					return nil, nil
				}
				if forceLeaves {
					return DotDict{"#text": trimmed}, nil
				}
				return trimmed, nil
			}
			if trimmed != "" {
				node["#text"] = trimmed
			}
			return node, nil
		}
	}
}

// addChild inserts a child node, collapsing repeated sibling tags into a
// list. The first sibling stays a plain node until a second one arrives.
func addChild(node DotDict, tag string, child any) {
	existing, ok := node[tag]
	if !ok {
		node[tag] = child
		return
	}
	if list, isList := existing.([]any); isList {
		node[tag] = append(list, child)
		return
	}
	node[tag] = []any{existing, child}
}

// encodingOf extracts the charset from the Content-Type header, falling
// back to the documented MWS default.
func encodingOf(header http.Header) string {
	if ct := header.Get("Content-Type"); ct != "" {
		if _, ps, err := mime.ParseMediaType(ct); err == nil {
			if cs := ps["charset"]; cs != "" {
				return cs
			}
		}
	}
	return DefaultEncoding
}

func isLatin1(encoding string) bool {
	switch strings.ToLower(encoding) {
	case "iso-8859-1", "iso8859-1", "latin1", "latin-1", "windows-1252", "cp1252":
		return true
	}
	return false
}

// charsetReader lets the XML decoder handle the encodings MWS actually
// emits. Windows-1252 is decoded as Latin-1, which covers the byte range
// the service uses.
func charsetReader(charset string, input io.Reader) (io.Reader, error) {
	switch strings.ToLower(charset) {
	case "utf-8", "us-ascii", "ascii":
		return input, nil
	}
	if isLatin1(charset) {
		return &latin1Reader{r: input}, nil
	}
	return nil, fmt.Errorf("unsupported XML charset %q", charset)
}

// latin1Reader transcodes ISO-8859-1 bytes to UTF-8 on the fly.
type latin1Reader struct {
	r    io.Reader
	pend []byte
}

func (l *latin1Reader) Read(p []byte) (int, error) {
	n := 0
	for len(l.pend) > 0 && n < len(p) {
		p[n] = l.pend[0]
		l.pend = l.pend[1:]
		n++
	}
	if n == len(p) {
		return n, nil
	}

	raw := make([]byte, len(p)-n)
	m, err := l.r.Read(raw)
	for _, b := range raw[:m] {
		var enc [utf8.UTFMax]byte
		size := utf8.EncodeRune(enc[:], rune(b))
		for i := 0; i < size; i++ {
			if n < len(p) {
				p[n] = enc[i]
				n++
			} else {
				l.pend = append(l.pend, enc[i])
			}
		}
	}
	if n > 0 && err == io.EOF {
		err = nil
	}
	return n, err
}
