package stemmer

import "strings"

const vowels = "аеиоуюяіїє"

// pattern is an ordered list of end-anchored suffix alternatives.
// The first candidate the word ends with is the one removed, so every table
// is written longest first.
type pattern struct {
	name       string
	candidates []string
}

func newPattern(name string, candidates ...string) pattern {
	return pattern{name: name, candidates: candidates}
}

// match returns the candidate that word ends with, if any.
func (p pattern) match(word string) (string, bool) {
	for _, c := range p.candidates {
		if strings.HasSuffix(word, c) {
			return c, true
		}
	}
	return "", false
}

// strip removes the matched candidate from the end of word.
func (p pattern) strip(word string) (string, bool) {
	suffix, ok := p.match(word)
	if !ok {
		return word, false
	}
	return word[:len(word)-len(suffix)], true
}

// candidateList returns a copy of the suffix list in match order.
func (p pattern) candidateList() []string {
	out := make([]string, len(p.candidates))
	copy(out, p.candidates)
	return out
}

var (
	perfectiveGerund = newPattern("perfective_gerund",
		"ившись",
		"ивши", "ывши",
		"ив", "ыв",
	)

	reflexive = newPattern("reflexive",
		"ся", "сь", "си",
	)

	adjective = newPattern("adjective",
		"ими", "ова", "ове", "йми", "іми", "ого", "ому",
		"ій", "ий", "ів", "їй", "єє", "еє", "ім", "ем", "им", "их", "іх", "ою", "ої",
		"а", "е", "є", "я", "у", "ю",
	)

	participle = newPattern("participle",
		"ого", "ому", "йми",
		"ий", "им", "ім", "ій", "ою", "их",
		"а", "у", "і",
	)

	verb = newPattern("verb",
		"ать", "ять", "али", "учи", "ячи", "вши", "ати", "яти",
		"сь", "ся", "ив", "ав", "ши", "ме",
		"у", "ю", "е", "є",
	)

	noun = newPattern("noun",
		"ями", "ами", "иям", "ием", "иях", "ові", "еві",
		"ев", "ов", "еи", "ей", "ой", "ий", "ям", "ем", "ам", "ом", "ах", "ях",
		"ию", "ью", "ия", "ья", "ею", "єю", "ою", "єм", "ів", "їв",
		"а", "е", "и", "й", "о", "у", "ы", "ь", "ю", "я", "і", "ї", "є",
	)

	// single trailing vowel removed unconditionally in step 2
	trailingVowel = newPattern("trailing_vowel", "и")

	derivationalSuffix = newPattern("derivational", "ость")
	softSign           = newPattern("soft_sign", "ь")
	superlative        = newPattern("superlative", "ейше", "ейш")
	doubledN           = newPattern("doubled_n", "нн")
)

// patterns lists the category tables in the order step 1 consults them.
func patterns() []pattern {
	return []pattern{perfectiveGerund, reflexive, adjective, participle, verb, noun}
}

func isVowel(r rune) bool {
	return strings.ContainsRune(vowels, r)
}
