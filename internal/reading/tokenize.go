package reading

import (
	"strings"
	"unicode"
	"unicode/utf8"
)

// Token is a slice of sentence text. Whitespace runs are kept as their own
// tokens so joining every Text reproduces the sentence exactly.
type Token struct {
	Text        string
	Space       bool
	Hoverable   bool
	Translation string
}

// Tokenize splits text into alternating word and whitespace tokens. A word is
// hoverable when the vocabulary knows it and eligible is true.
func Tokenize(text string, vocab *VocabularyIndex, eligible bool) []Token {
	var tokens []Token

	start := 0
	for start < len(text) {
		r, _ := utf8.DecodeRuneInString(text[start:])
		space := unicode.IsSpace(r)

		end := start
		for end < len(text) {
			r, size := utf8.DecodeRuneInString(text[end:])
			if unicode.IsSpace(r) != space {
				break
			}
			end += size
		}

		tok := Token{Text: text[start:end], Space: space}
		if !space {
			if tr, ok := vocab.Lookup(tok.Text); ok {
				tok.Translation = tr
				tok.Hoverable = eligible
			}
		}
		tokens = append(tokens, tok)
		start = end
	}

	return tokens
}

// Join concatenates token text.
func Join(tokens []Token) string {
	var b strings.Builder
	for _, t := range tokens {
		b.WriteString(t.Text)
	}
	return b.String()
}

// Words returns only the non-whitespace tokens.
func Words(tokens []Token) []Token {
	out := make([]Token, 0, len(tokens))
	for _, t := range tokens {
		if !t.Space {
			out = append(out, t)
		}
	}
	return out
}
