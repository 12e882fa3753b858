// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package bibtex reads and writes BibTeX files. The parser handles the
// common entry shape (@type{key, field = value, ...}) with braced, quoted,
// and bare values, nested braces included; @comment, @preamble, and
// @string blocks are skipped. Field order is preserved for round-tripping.
package bibtex

import (
	"fmt"
	"os"
	"strings"
	"unicode"

	"github.com/pdiddy/bibcheck/pkg/types"
)

// ParseFile reads and parses a .bib file.
func ParseFile(path string) ([]*types.Entry, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading %s: %w", path, err)
	}
	entries, err := Parse(string(data))
	if err != nil {
		return nil, fmt.Errorf("parsing %s: %w", path, err)
	}
	return entries, nil
}

// Parse parses BibTeX source into entries in file order.
func Parse(src string) ([]*types.Entry, error) {
	p := &parser{src: []rune(src)}
	var entries []*types.Entry

	for {
		if !p.seekTo('@') {
			return entries, nil
		}
		p.pos++ // consume '@'

		entryType := strings.ToLower(p.readWord())
		if entryType == "" {
			return nil, p.errorf("expected entry type after @")
		}

		p.skipSpace()
		open := p.peek()
		if open != '{' && open != '(' {
			return nil, p.errorf("expected { after @%s", entryType)
		}

		switch entryType {
		case "comment", "preamble", "string":
			if err := p.skipBalanced(); err != nil {
				return nil, err
			}
			continue
		}

		entry, err := p.parseEntry(entryType)
		if err != nil {
			return nil, err
		}
		entries = append(entries, entry)
	}
}

type parser struct {
	src []rune
	pos int
}

func (p *parser) errorf(format string, args ...any) error {
	return fmt.Errorf("bibtex: line %d: %s", p.lineAt(p.pos), fmt.Sprintf(format, args...))
}

func (p *parser) lineAt(pos int) int {
	line := 1
	for i := 0; i < pos && i < len(p.src); i++ {
		if p.src[i] == '\n' {
			line++
		}
	}
	return line
}

func (p *parser) peek() rune {
	if p.pos >= len(p.src) {
		return 0
	}
	return p.src[p.pos]
}

// seekTo advances to the next occurrence of r, returning false at EOF.
func (p *parser) seekTo(r rune) bool {
	for p.pos < len(p.src) {
		if p.src[p.pos] == r {
			return true
		}
		p.pos++
	}
	return false
}

func (p *parser) skipSpace() {
	for p.pos < len(p.src) && unicode.IsSpace(p.src[p.pos]) {
		p.pos++
	}
}

// readWord reads a run of letters (an entry type or field name).
func (p *parser) readWord() string {
	start := p.pos
	for p.pos < len(p.src) && (unicode.IsLetter(p.src[p.pos]) || unicode.IsDigit(p.src[p.pos]) || p.src[p.pos] == '-' || p.src[p.pos] == '_') {
		p.pos++
	}
	return string(p.src[start:p.pos])
}

// skipBalanced consumes a brace- or paren-delimited block, nesting included.
func (p *parser) skipBalanced() error {
	open := p.peek()
	closing := '}'
	if open == '(' {
		closing = ')'
	}
	depth := 0
	for p.pos < len(p.src) {
		switch p.src[p.pos] {
		case open:
			depth++
		case closing:
			depth--
			if depth == 0 {
				p.pos++
				return nil
			}
		}
		p.pos++
	}
	return p.errorf("unterminated block")
}

// parseEntry parses the body of @type{key, fields...}. The opening brace
// is the current rune.
func (p *parser) parseEntry(entryType string) (*types.Entry, error) {
	p.pos++ // consume '{'
	p.skipSpace()

	key := p.readUntilAny(",}")
	key = strings.TrimSpace(key)
	if key == "" {
		return nil, p.errorf("@%s entry has no citation key", entryType)
	}

	entry := types.NewEntry(entryType, key)

	for {
		p.skipSpace()
		switch p.peek() {
		case '}':
			p.pos++
			return entry, nil
		case ',':
			p.pos++
			continue
		case 0:
			return nil, p.errorf("unterminated entry %q", key)
		}

		name := strings.ToLower(p.readWord())
		if name == "" {
			return nil, p.errorf("expected field name in entry %q", key)
		}

		p.skipSpace()
		if p.peek() != '=' {
			return nil, p.errorf("expected = after field %q in entry %q", name, key)
		}
		p.pos++

		value, err := p.parseValue(key, name)
		if err != nil {
			return nil, err
		}
		entry.Set(name, value)
	}
}

// readUntilAny reads runes until one of the stop characters, without
// consuming the stop character.
func (p *parser) readUntilAny(stops string) string {
	start := p.pos
	for p.pos < len(p.src) && !strings.ContainsRune(stops, p.src[p.pos]) {
		p.pos++
	}
	return string(p.src[start:p.pos])
}

// parseValue reads one field value: a braced group (nesting allowed), a
// quoted string, or a bare token. Concatenations with # are joined.
func (p *parser) parseValue(key, name string) (string, error) {
	var parts []string
	for {
		p.skipSpace()
		switch p.peek() {
		case '{':
			v, err := p.readBraced(key, name)
			if err != nil {
				return "", err
			}
			parts = append(parts, v)
		case '"':
			v, err := p.readQuoted(key, name)
			if err != nil {
				return "", err
			}
			parts = append(parts, v)
		default:
			parts = append(parts, strings.TrimSpace(p.readUntilAny(",}#")))
		}

		p.skipSpace()
		if p.peek() == '#' {
			p.pos++
			continue
		}
		return collapseSpace(strings.Join(parts, "")), nil
	}
}

// readBraced reads a {...} group, keeping inner braces, and returns the
// contents without the outer pair.
func (p *parser) readBraced(key, name string) (string, error) {
	p.pos++ // consume '{'
	start := p.pos
	depth := 1
	for p.pos < len(p.src) {
		switch p.src[p.pos] {
		case '{':
			depth++
		case '}':
			depth--
			if depth == 0 {
				v := string(p.src[start:p.pos])
				p.pos++
				return v, nil
			}
		}
		p.pos++
	}
	return "", p.errorf("unterminated braced value for %s in entry %q", name, key)
}

// readQuoted reads a "..." value. Braces inside quotes protect quote
// characters per BibTeX convention.
func (p *parser) readQuoted(key, name string) (string, error) {
	p.pos++ // consume '"'
	start := p.pos
	depth := 0
	for p.pos < len(p.src) {
		switch p.src[p.pos] {
		case '{':
			depth++
		case '}':
			depth--
		case '"':
			if depth == 0 {
				v := string(p.src[start:p.pos])
				p.pos++
				return v, nil
			}
		}
		p.pos++
	}
	return "", p.errorf("unterminated quoted value for %s in entry %q", name, key)
}

// collapseSpace normalizes internal whitespace runs (values often span
// wrapped lines in hand-edited files).
func collapseSpace(s string) string {
	return strings.Join(strings.Fields(s), " ")
}
