// Package tokenizer splits text at word boundaries.
//
// A word is a maximal run of letters, digits, combining marks and '_'.
// Every other rune is a token of its own, so joining the texts of the
// returned tokens gives back the (valid UTF-8) input unchanged.
package tokenizer

import (
	"unicode"

	"text2phenotype.com/ukstem/types"
)

const (
	apostrophe      = '\''
	rightSingleQuot = '’'
)

func isWordRune(r rune) bool {
	return r == '_' || unicode.IsLetter(r) || unicode.IsNumber(r) || unicode.IsMark(r)
}

// isInnerApostrophe reports whether runes[i] is an apostrophe between two
// letters, as in "пам'ять".
func isInnerApostrophe(runes []rune, i int) bool {
	if runes[i] != apostrophe && runes[i] != rightSingleQuot {
		return false
	}
	return i > 0 && i+1 < len(runes) && unicode.IsLetter(runes[i-1]) && unicode.IsLetter(runes[i+1])
}

// Tokenize returns the tokens of text with rune offsets.
func Tokenize(text string) []types.Token {
	if len(text) == 0 {
		return nil
	}
	runes := []rune(text)

	tokens := make([]types.Token, 0, len(runes)/4+1)
	for begin := 0; begin < len(runes); {
		end := begin + 1
		word := isWordRune(runes[begin])
		if word {
			for end < len(runes) && (isWordRune(runes[end]) || isInnerApostrophe(runes, end)) {
				end++
			}
		}
		tokens = append(tokens, createToken(runes[begin:end], int32(begin), int32(end), word))
		begin = end
	}
	return tokens
}

func createToken(runes []rune, begin int32, end int32, isWord bool) types.Token {
	token := types.Token{
		Span: types.Span{
			Begin: begin,
			End:   end,
			Text:  string(runes),
		},
		IsWord: isWord,
	}
	return token
}
