package ladder

import (
	"bytes"
	"cmp"
	"encoding/json"
	"fmt"
	"slices"
	"strconv"

	"golang.org/x/text/unicode/norm"
)

// SortRungs returns a copy of rungs ordered by level, then left column.
func SortRungs(rungs []Rung) []Rung {
	out := slices.Clone(rungs)
	slices.SortFunc(out, func(a, b Rung) int {
		if c := cmp.Compare(a.Level, b.Level); c != 0 {
			return c
		}
		return cmp.Compare(a.LeftColumn, b.LeftColumn)
	})
	return out
}

// MarshalCanonical produces the canonical JSON form of l used for hashing.
//
// Differences from json.Marshal:
//  1. Object keys are sorted; no insignificant whitespace.
//  2. Rungs are sorted by (level, leftColumn), so rung order is irrelevant.
//  3. Labels are NFC normalized and not HTML escaped.
//  4. Top labels are excluded; they stay editable after generation.
//
// Output shape:
//
//	{"bottom":[...],"columns":N,"levels":M,"rungs":[{"leftColumn":L,"level":Y},...]}
func MarshalCanonical(l Ladder) ([]byte, error) {
	var buf bytes.Buffer

	buf.WriteString(`{"bottom":[`)
	for i, s := range l.Bottom {
		if i > 0 {
			buf.WriteByte(',')
		}
		enc, err := marshalCanonicalString(s)
		if err != nil {
			return nil, fmt.Errorf("bottom[%d]: %w", i, err)
		}
		buf.Write(enc)
	}
	buf.WriteString(`],"columns":`)
	buf.WriteString(strconv.Itoa(l.Columns))
	buf.WriteString(`,"levels":`)
	buf.WriteString(strconv.Itoa(l.Levels))
	buf.WriteString(`,"rungs":[`)
	for i, r := range SortRungs(l.Rungs) {
		if i > 0 {
			buf.WriteByte(',')
		}
		buf.WriteString(`{"leftColumn":`)
		buf.WriteString(strconv.Itoa(r.LeftColumn))
		buf.WriteString(`,"level":`)
		buf.WriteString(strconv.Itoa(r.Level))
		buf.WriteByte('}')
	}
	buf.WriteString(`]}`)

	return buf.Bytes(), nil
}

// marshalCanonicalString encodes s as a JSON string after NFC normalization,
// without the HTML escaping json.Marshal applies to < > &.
func marshalCanonicalString(s string) ([]byte, error) {
	var buf bytes.Buffer
	enc := json.NewEncoder(&buf)
	enc.SetEscapeHTML(false)
	if err := enc.Encode(norm.NFC.String(s)); err != nil {
		return nil, err
	}
	return bytes.TrimSuffix(buf.Bytes(), []byte("\n")), nil
}
