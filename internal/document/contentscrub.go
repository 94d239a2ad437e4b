// Copyright Amazon.com, Inc. or its affiliates. All Rights Reserved.
// SPDX-License-Identifier: Apache-2.0

package document

import "strings"

// stringByte is one decoded byte of a content-stream string operand,
// mapped back to the raw content bytes that produced it.
type stringByte struct {
	b     byte
	spans [][2]int
	hex   bool
	paren bool // balanced paren inside a literal string; left alone so the string stays well-formed
}

// scrubContent blanks every occurrence of the literals inside the
// string operands of a decoded content stream, in place of the glyph
// codes, without changing any operand length. Text split across show
// operators is matched by joining the string operands in stream order;
// a second pass ignores space glyphs so kerning-spaced runs still
// match. Returns the scrubbed content and whether anything changed.
//
// This handles simple byte-encoded fonts. Multi-byte CID text can slip
// through; the verification rescan is what catches those cases.
func scrubContent(content []byte, literals []string) ([]byte, bool) {
	sbs := decodeStrings(content)
	if len(sbs) == 0 {
		return content, false
	}
	decoded := make([]byte, len(sbs))
	for i, sb := range sbs {
		decoded[i] = sb.b
	}
	text := string(decoded)

	out := append([]byte(nil), content...)
	changed := false
	blank := func(from, to int) {
		for _, sb := range sbs[from:to] {
			if sb.paren {
				continue
			}
			if sb.hex {
				// Rewrite the digit pair to 0x20.
				digits := []byte{'2', '0'}
				di := 0
				for _, sp := range sb.spans {
					for p := sp[0]; p < sp[1] && di < len(digits); p++ {
						out[p] = digits[di]
						di++
					}
				}
			} else {
				for _, sp := range sb.spans {
					for p := sp[0]; p < sp[1]; p++ {
						out[p] = ' '
					}
				}
			}
			changed = true
		}
	}

	for _, lit := range literals {
		if lit == "" {
			continue
		}
		for start := 0; ; {
			idx := strings.Index(text[start:], lit)
			if idx < 0 {
				break
			}
			blank(start+idx, start+idx+len(lit))
			start += idx + len(lit)
		}
	}

	// Space-insensitive pass: spacing in the source may be layout
	// offsets rather than space glyphs, and the other way around.
	squashed, backmap := squashSpaces(text)
	for _, lit := range literals {
		squashedLit := strings.Map(dropSpaceRune, lit)
		if squashedLit == "" {
			continue
		}
		for start := 0; ; {
			idx := strings.Index(squashed[start:], squashedLit)
			if idx < 0 {
				break
			}
			for i := start + idx; i < start+idx+len(squashedLit); i++ {
				blank(backmap[i], backmap[i]+1)
			}
			start += idx + len(squashedLit)
		}
	}

	return out, changed
}

func dropSpaceRune(r rune) rune {
	if r == ' ' || r == '\n' || r == '\r' || r == '\t' {
		return -1
	}
	return r
}

// squashSpaces removes whitespace bytes and maps each surviving byte
// back to its original index.
func squashSpaces(text string) (string, []int) {
	var b strings.Builder
	backmap := make([]int, 0, len(text))
	for i := 0; i < len(text); i++ {
		switch text[i] {
		case ' ', '\n', '\r', '\t':
			continue
		}
		b.WriteByte(text[i])
		backmap = append(backmap, i)
	}
	return b.String(), backmap
}

// decodeStrings walks the content stream and decodes every literal and
// hex string operand, recording where each decoded byte lives.
func decodeStrings(content []byte) []stringByte {
	var out []stringByte
	for i := 0; i < len(content); {
		switch content[i] {
		case '(':
			i = decodeLiteralString(content, i, &out)
		case '<':
			if i+1 < len(content) && content[i+1] == '<' {
				i += 2
				continue
			}
			i = decodeHexString(content, i, &out)
		case '%':
			for i < len(content) && content[i] != '\n' && content[i] != '\r' {
				i++
			}
		default:
			i++
		}
	}
	return out
}

// decodeLiteralString decodes a (...) string starting at the opening
// paren and returns the index just past its close.
func decodeLiteralString(content []byte, start int, out *[]stringByte) int {
	depth := 1
	i := start + 1
	for i < len(content) {
		c := content[i]
		switch {
		case c == '\\':
			if i+1 >= len(content) {
				return i + 1
			}
			next := content[i+1]
			switch {
			case next == 'n', next == 'r', next == 't', next == 'b', next == 'f':
				esc := map[byte]byte{'n': '\n', 'r': '\r', 't': '\t', 'b': '\b', 'f': '\f'}
				*out = append(*out, stringByte{b: esc[next], spans: [][2]int{{i, i + 2}}})
				i += 2
			case next == '(' || next == ')' || next == '\\':
				*out = append(*out, stringByte{b: next, spans: [][2]int{{i, i + 2}}})
				i += 2
			case next >= '0' && next <= '7':
				j := i + 1
				var v int
				for j < len(content) && j < i+4 && content[j] >= '0' && content[j] <= '7' {
					v = v*8 + int(content[j]-'0')
					j++
				}
				*out = append(*out, stringByte{b: byte(v), spans: [][2]int{{i, j}}})
				i = j
			case next == '\r' || next == '\n':
				// Line continuation decodes to nothing.
				i += 2
				if next == '\r' && i < len(content) && content[i] == '\n' {
					i++
				}
			default:
				*out = append(*out, stringByte{b: next, spans: [][2]int{{i, i + 2}}})
				i += 2
			}
		case c == '(':
			depth++
			*out = append(*out, stringByte{b: '(', spans: [][2]int{{i, i + 1}}, paren: true})
			i++
		case c == ')':
			depth--
			if depth == 0 {
				return i + 1
			}
			*out = append(*out, stringByte{b: ')', spans: [][2]int{{i, i + 1}}, paren: true})
			i++
		case c == '\r' || c == '\n':
			*out = append(*out, stringByte{b: '\n', spans: [][2]int{{i, i + 1}}})
			if c == '\r' && i+1 < len(content) && content[i+1] == '\n' {
				i++
			}
			i++
		default:
			*out = append(*out, stringByte{b: c, spans: [][2]int{{i, i + 1}}})
			i++
		}
	}
	return i
}

// decodeHexString decodes a <...> string starting at the opening angle
// bracket and returns the index just past its close.
func decodeHexString(content []byte, start int, out *[]stringByte) int {
	i := start + 1
	var (
		pending    int
		hasPending bool
		pendingPos int
	)
	emit := func(v byte, spans [][2]int) {
		*out = append(*out, stringByte{b: v, spans: spans, hex: true})
	}
	for i < len(content) {
		c := content[i]
		if c == '>' {
			if hasPending {
				// Odd digit count: the spec pads with a trailing zero.
				emit(byte(pending<<4), [][2]int{{pendingPos, pendingPos + 1}})
			}
			return i + 1
		}
		v, ok := hexVal(c)
		if !ok {
			i++
			continue
		}
		if !hasPending {
			pending, pendingPos, hasPending = v, i, true
		} else {
			emit(byte(pending<<4|v), [][2]int{{pendingPos, pendingPos + 1}, {i, i + 1}})
			hasPending = false
		}
		i++
	}
	return i
}

func hexVal(c byte) (int, bool) {
	switch {
	case c >= '0' && c <= '9':
		return int(c - '0'), true
	case c >= 'a' && c <= 'f':
		return int(c-'a') + 10, true
	case c >= 'A' && c <= 'F':
		return int(c-'A') + 10, true
	}
	return 0, false
}
