package parsers

import (
	"strconv"
	"strings"
	"unicode/utf8"

	"github.com/Kryft-Studios/parsee/extraction"
	"github.com/Kryft-Studios/parsee/internal/frontend"
)

// maxRawValue bounds the raw text captured for initializers so a large
// inline object or embedded blob does not dominate the output.
const maxRawValue = 256

// rawText returns the trimmed source text of an initializer, truncated to
// at most maxRawValue bytes. The cut backs off to a rune boundary so the
// result is always valid UTF-8.
func rawText(node frontend.Node) string {
	text := node.TrimmedText()
	if len(text) <= maxRawValue {
		return text
	}
	cut := maxRawValue
	for cut > 0 && !utf8.RuneStart(text[cut]) {
		cut--
	}
	return text[:cut]
}

// parseLiteral maps an initializer expression to a JSON-ready value.
// Simple literals become native values (string, float64, bool, nil); any
// other expression falls back to its truncated raw text so the output
// never loses the initializer entirely.
func parseLiteral(node frontend.Node) *extraction.Value {
	if !node.Valid() {
		return nil
	}
	switch node.Kind() {
	case "string":
		return extraction.NewValue(stringContent(node))
	case "template_string":
		if !node.HasChild("template_substitution") {
			text := node.TrimmedText()
			return extraction.NewValue(strings.Trim(text, "`"))
		}
	case "number":
		if f, ok := parseNumber(node.TrimmedText()); ok {
			return extraction.NewValue(f)
		}
	case "true":
		return extraction.NewValue(true)
	case "false":
		return extraction.NewValue(false)
	case "null":
		return extraction.NewValue(nil)
	case "unary_expression":
		// Negative numeric literals parse as a unary minus.
		if f, ok := parseNumber(node.TrimmedText()); ok {
			return extraction.NewValue(f)
		}
	}
	return extraction.NewValue(rawText(node))
}

// stringContent resolves the content of a string literal, unescaping
// escape sequences where possible.
func stringContent(node frontend.Node) string {
	var b strings.Builder
	for _, child := range node.NamedChildren() {
		switch child.Kind() {
		case "string_fragment":
			b.WriteString(child.Text())
		case "escape_sequence":
			if unescaped, err := strconv.Unquote(`"` + child.Text() + `"`); err == nil {
				b.WriteString(unescaped)
			} else {
				b.WriteString(child.Text())
			}
		}
	}
	return b.String()
}

// parseNumber handles the numeric literal forms the grammar admits:
// decimal, float, exponent, hex, octal, binary, and separators.
func parseNumber(text string) (float64, bool) {
	text = strings.ReplaceAll(text, "_", "")
	if f, err := strconv.ParseFloat(text, 64); err == nil {
		return f, true
	}
	// ParseInt with base 0 covers 0x, 0o, and 0b prefixes.
	negative := strings.HasPrefix(text, "-")
	if i, err := strconv.ParseInt(strings.TrimPrefix(text, "-"), 0, 64); err == nil {
		if negative {
			i = -i
		}
		return float64(i), true
	}
	return 0, false
}
