package domain

import (
	"bytes"
	"encoding/json"
	"strings"

	m "github.com/vonacht/cd2ifier/internal/model"
)

// prettyIndent matches the 4-space indentation the CD2 community files use.
const prettyIndent = "    "

// Serialize renders a CD2 document as JSON text. Pretty and compact mode
// carry identical data; only whitespace differs. Key order is whatever the
// assembler produced (fixed per table) and numbers are emitted as their
// stored literals, so repeated serialization is byte-identical.
func Serialize(doc m.CD2Document, compact bool) ([]byte, error) {
	root := doc.Root

	if doc.DescriptionTail != "" && compact {
		// Compact output cannot carry raw line breaks, so the tail is
		// folded back into the description string with proper escaping.
		root = foldDescriptionTail(root, doc.DescriptionTail)
	}

	var buf bytes.Buffer

	renderValue(&buf, root, 0, compact)

	if doc.DescriptionTail != "" && !compact {
		return []byte(RecoverMultilines(buf.String(), doc.DescriptionTail)), nil
	}

	return buf.Bytes(), nil
}

func foldDescriptionTail(root m.Value, tail string) m.Value {
	path := []string{m.ModuleDifficultySetting, "Description"}

	head, _ := root.GetPath(path...)

	return root.WithPath(path, m.String(head.StringVal()+"\n"+tail))
}

func renderValue(buf *bytes.Buffer, v m.Value, depth int, compact bool) {
	switch v.Kind() {
	case m.KindNull:
		buf.WriteString("null")
	case m.KindBool:
		if v.BoolVal() {
			buf.WriteString("true")
		} else {
			buf.WriteString("false")
		}
	case m.KindNumber:
		buf.WriteString(v.NumberVal().String())
	case m.KindString:
		writeQuoted(buf, v.StringVal())
	case m.KindArray:
		renderArray(buf, v, depth, compact)
	case m.KindObject:
		renderObject(buf, v, depth, compact)
	}
}

func renderArray(buf *bytes.Buffer, v m.Value, depth int, compact bool) {
	elems := v.Elems()
	if len(elems) == 0 {
		buf.WriteString("[]")
		return
	}

	buf.WriteByte('[')

	for i, elem := range elems {
		if i > 0 {
			buf.WriteByte(',')
		}

		newline(buf, depth+1, compact)
		renderValue(buf, elem, depth+1, compact)
	}

	newline(buf, depth, compact)
	buf.WriteByte(']')
}

func renderObject(buf *bytes.Buffer, v m.Value, depth int, compact bool) {
	fields := v.Fields()
	if len(fields) == 0 {
		buf.WriteString("{}")
		return
	}

	buf.WriteByte('{')

	for i, f := range fields {
		if i > 0 {
			buf.WriteByte(',')
		}

		newline(buf, depth+1, compact)
		writeQuoted(buf, f.Name)
		buf.WriteByte(':')

		if !compact {
			buf.WriteByte(' ')
		}

		renderValue(buf, f.Value, depth+1, compact)
	}

	newline(buf, depth, compact)
	buf.WriteByte('}')
}

func newline(buf *bytes.Buffer, depth int, compact bool) {
	if compact {
		return
	}

	buf.WriteByte('\n')

	for i := 0; i < depth; i++ {
		buf.WriteString(prettyIndent)
	}
}

// writeQuoted emits a JSON string without HTML escaping, which would
// mangle description text.
func writeQuoted(buf *bytes.Buffer, s string) {
	var tmp bytes.Buffer

	enc := json.NewEncoder(&tmp)
	enc.SetEscapeHTML(false)

	// Encoding a plain string cannot fail.
	_ = enc.Encode(s)

	buf.WriteString(strings.TrimRight(tmp.String(), "\n"))
}
