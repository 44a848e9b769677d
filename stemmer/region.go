package stemmer

import "unicode/utf8"

// SplitRegion cuts a normalized token right after its first vowel.
// head keeps the prefix up to and including that vowel; rv is the rest,
// the only part the rule cascade may shorten. ok is false when the token
// has no vowel at all.
func SplitRegion(word string) (head string, rv string, ok bool) {
	for i, r := range word {
		if isVowel(r) {
			cut := i + utf8.RuneLen(r)
			return word[:cut], word[cut:], true
		}
	}
	return word, "", false
}
