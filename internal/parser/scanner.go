package parser

import (
	"bytes"
	"encoding/xml"
	"fmt"
	"io"
	"unicode/utf8"
)

type eventKind uint8

const (
	eventOpen eventKind = iota
	eventClose
	eventText
	eventEOF
)

// tag is a scoped handle over one element-open: its local name and
// attributes. A tag is lent to a builder callback for the duration of one
// nested parse and must not be retained past the callback's return.
type tag struct {
	name  string
	attrs []xml.Attr
}

// attr scans the attribute list once and returns the named value.
func (t tag) attr(name string) (string, bool) {
	for _, a := range t.attrs {
		if a.Name.Local == name {
			return a.Value, true
		}
	}
	return "", false
}

func (t tag) requiredAttr(name string) (string, error) {
	v, ok := t.attr(name)
	if !ok {
		return "", wrapError(KindAttributeNotFound, fmt.Errorf("attribute %q on <%s>", name, t.name))
	}
	return v, nil
}

// scanner adapts the pull tokenizer to the four-event vocabulary the
// combinators consume. Self-closing elements arrive as an open immediately
// followed by a close, and text payloads are trimmed of surrounding
// whitespace. The scanner owns one scratch buffer reused for every text
// payload in the document; its contents are only valid until the next call
// to next, so callers that keep text take a copy via text().
type scanner struct {
	dec     *xml.Decoder
	scratch []byte
}

func newScanner(r io.Reader) *scanner {
	dec := xml.NewDecoder(r)
	dec.Strict = true
	return &scanner{dec: dec, scratch: make([]byte, 0, 4096)}
}

// next advances to the next meaningful event. Whitespace-only text nodes,
// comments, directives and processing instructions are dropped.
func (s *scanner) next() (eventKind, tag, error) {
	for {
		tok, err := s.dec.Token()
		if err == io.EOF {
			return eventEOF, tag{}, nil
		}
		if err != nil {
			return 0, tag{}, wrapError(KindXML, err)
		}
		switch t := tok.(type) {
		case xml.StartElement:
			return eventOpen, tag{name: t.Name.Local, attrs: t.Attr}, nil
		case xml.EndElement:
			return eventClose, tag{}, nil
		case xml.CharData:
			trimmed := bytes.TrimSpace(t)
			if len(trimmed) == 0 {
				continue
			}
			if !utf8.Valid(trimmed) {
				return 0, tag{}, newError(KindTextEncoding)
			}
			s.scratch = append(s.scratch[:0], trimmed...)
			return eventText, tag{}, nil
		default:
			// comments, directives, processing instructions
		}
	}
}

// text copies the current text payload out of the scratch buffer.
func (s *scanner) text() string {
	return string(s.scratch)
}
