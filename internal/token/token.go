// Package token splits a raw input line into argument tokens and
// `>`/`>>` redirection-operator tokens, respecting single and double
// quoting, per spec.md section 4.A.
package token

import (
	"strings"

	"github.com/zsh0/zsh0/internal/shellerr"
)

// Background is the token Split produces for a trailing unquoted `&`,
// recovered per SPEC_FULL.md section 6.A (spec.md's open question #2):
// the tokenizer must emit a distinct token for the background marker so
// the redirect classifier and dispatcher can strip it before building
// argv.
const Background = "&"

// Split tokenizes a raw line. Quoted spans (including their quote
// characters) are single tokens. The first unquoted `>` splits the
// line into left/operator/right and recurses on the right; an empty
// right is a parse error, as is an unterminated quote. A trailing
// unquoted `&` becomes its own
// Background token.
func Split(line string) ([]string, error) {
	trimmed := strings.TrimRight(line, " \t")
	if bg := strings.TrimRight(trimmed, " \t"); strings.HasSuffix(bg, "&") && !endsInsideQuote(bg[:len(bg)-1]) {
		rest := strings.TrimRight(bg[:len(bg)-1], " \t")
		toks, err := split(rest)
		if err != nil {
			return nil, err
		}
		return append(toks, Background), nil
	}

	return split(trimmed)
}

// endsInsideQuote reports whether s has an unterminated quote at its
// end, so a trailing `&` inside quotes is not mistaken for the
// background marker.
func endsInsideQuote(s string) bool {
	var q rune
	for _, c := range s {
		if q != 0 {
			if c == q {
				q = 0
			}
			continue
		}
		if c == '"' || c == '\'' {
			q = c
		}
	}
	return q != 0
}

func split(input string) ([]string, error) {
	left, op, right, ok := splitAtFirstOperator(input)
	if !ok {
		return splitPart(input)
	}

	if right == "" {
		return nil, shellerr.ParseError()
	}

	leftToks, err := split(left)
	if err != nil {
		return nil, err
	}

	rightToks, err := split(right)
	if err != nil {
		return nil, err
	}

	result := make([]string, 0, len(leftToks)+1+len(rightToks))
	result = append(result, leftToks...)
	result = append(result, op)
	result = append(result, rightToks...)
	return result, nil
}

// splitAtFirstOperator finds the first unquoted `>`, classifying it as
// `>>` when doubled, and returns the text before/after it.
func splitAtFirstOperator(input string) (left, op, right string, ok bool) {
	var quote rune
	runes := []rune(input)

	for i, c := range runes {
		switch {
		case c == '"' || c == '\'':
			if quote == c {
				quote = 0
			} else if quote == 0 {
				quote = c
			}
		case c == '>' && quote == 0:
			if i+1 < len(runes) && runes[i+1] == '>' {
				return string(runes[:i]), ">>", string(runes[i+2:]), true
			}
			return string(runes[:i]), ">", string(runes[i+1:]), true
		}
	}

	return "", "", "", false
}

// splitPart tokenizes a quote/operator-free-or-quoted segment: runs of
// non-whitespace are one token each, quoted spans are one token
// including their quotes, and whitespace is discarded.
func splitPart(input string) ([]string, error) {
	var result []string
	var current strings.Builder
	insideQuotes := false
	var quoteChar rune

	for _, c := range input {
		switch {
		case insideQuotes:
			current.WriteRune(c)
			if c == quoteChar {
				insideQuotes = false
				result = append(result, current.String())
				current.Reset()
			}
		case c == '>':
			return nil, shellerr.ParseError()
		case c == '"' || c == '\'':
			if current.Len() > 0 {
				result = append(result, current.String())
				current.Reset()
			}
			insideQuotes = true
			quoteChar = c
			current.WriteRune(c)
		case c == ' ' || c == '\t' || c == '\n' || c == '\r':
			if current.Len() > 0 {
				result = append(result, current.String())
				current.Reset()
			}
		default:
			current.WriteRune(c)
		}
	}

	if insideQuotes {
		return nil, shellerr.ParseError()
	}

	if current.Len() > 0 {
		result = append(result, current.String())
	}

	return result, nil
}
