package stemmer

import (
	"strings"
	"unicode/utf8"

	"golang.org/x/text/unicode/norm"
)

// legacyReplacer drops apostrophes and maps letterforms borrowed from
// Russian orthography onto their Ukrainian equivalents.
var legacyReplacer = strings.NewReplacer(
	"'", "",
	"’", "", // ’ right single quotation mark
	"ʼ", "", // ʼ modifier letter apostrophe
	"ё", "е",
	"ъ", "ї",
)

// Normalize composes, lowercases and cleans a raw token before analysis.
// Applying it to an already normalized token returns the token unchanged.
func Normalize(word string) string {
	word = compose(word)
	word = strings.ToLower(word)
	return legacyReplacer.Replace(word)
}

// compose returns the NFC form of word, or word itself when composition
// would lengthen it (singleton decompositions such as U+0344).
func compose(word string) string {
	if norm.NFC.IsNormalString(word) {
		return word
	}
	composed := norm.NFC.String(word)
	if utf8.RuneCountInString(composed) > utf8.RuneCountInString(word) {
		return word
	}
	return composed
}
