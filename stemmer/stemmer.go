// Package stemmer reduces Ukrainian word forms to approximate stems with a
// Porter-style cascade of suffix-stripping rules.
//
// All state of a call lives on the stack, and the suffix tables are never
// written after package initialization, so Stem is safe for concurrent use.
package stemmer

import (
	"strings"
	"unicode/utf8"
)

// Outcome names the branch step 1 took.
type Outcome int

const (
	OutcomeNone Outcome = iota
	OutcomePerfectiveGerund
	OutcomeAdjective
	OutcomeAdjectiveParticiple
	OutcomeVerb
	OutcomeNoun
)

func (o Outcome) String() string {
	switch o {
	case OutcomePerfectiveGerund:
		return "perfective_gerund"
	case OutcomeAdjective:
		return "adjective"
	case OutcomeAdjectiveParticiple:
		return "adjective_participle"
	case OutcomeVerb:
		return "verb"
	case OutcomeNoun:
		return "noun"
	default:
		return "none"
	}
}

// Trace records which rule of each step removed something.
type Trace struct {
	Category      Outcome
	Reflexive     bool
	TrailingVowel bool
	Derivational  bool
	SoftSign      bool
	Superlative   bool
	DoubledN      bool
}

// Analysis is the full result of stemming one token.
type Analysis struct {
	// Normalized is the token after Normalize.
	Normalized string
	// Head is the prefix up to and including the first vowel.
	Head string
	// Region is the RV region before any rule ran.
	Region string
	// Stem is Head followed by the reduced region.
	Stem string
	// HasVowel is false when the token was passed through untouched.
	HasVowel bool
	Trace    Trace
}

// Stem returns the stem of word. It is total: any string, including the
// empty one, yields a result and never panics.
func Stem(word string) string {
	return Analyze(word).Stem
}

// Analyze stems word and reports the intermediate values.
func Analyze(word string) Analysis {
	normalized := Normalize(word)
	head, rv, ok := SplitRegion(normalized)
	if !ok {
		return Analysis{Normalized: normalized, Head: normalized, Stem: normalized}
	}

	reduced, trace := reduce(rv)
	return Analysis{
		Normalized: normalized,
		Head:       head,
		Region:     rv,
		Stem:       head + reduced,
		HasVowel:   true,
		Trace:      trace,
	}
}

// reduce runs the four steps over rv in order. Each step sees the output of
// the previous one.
func reduce(rv string) (string, Trace) {
	var trace Trace

	rv, trace.Category, trace.Reflexive = resolveCategory(rv)

	rv, trace.TrailingVowel = trailingVowel.strip(rv)

	if hasDerivationalShape(rv) {
		rv, trace.Derivational = derivationalSuffix.strip(rv)
	}

	rv, trace.SoftSign = softSign.strip(rv)
	if trace.SoftSign {
		rv, trace.Superlative = superlative.strip(rv)
		if trimmed, ok := doubledN.strip(rv); ok {
			rv = trimmed + "н"
			trace.DoubledN = true
		}
	}
	return rv, trace
}

// resolveCategory is step 1. A perfective gerund ends the step. Otherwise a
// reflexive suffix is dropped without affecting the branch, then adjective
// (optionally followed by participle), verb and noun are tried in turn.
func resolveCategory(rv string) (string, Outcome, bool) {
	if stripped, ok := perfectiveGerund.strip(rv); ok {
		return stripped, OutcomePerfectiveGerund, false
	}

	rv, refl := reflexive.strip(rv)

	if stripped, ok := adjective.strip(rv); ok {
		if further, ok := participle.strip(stripped); ok {
			return further, OutcomeAdjectiveParticiple, refl
		}
		return stripped, OutcomeAdjective, refl
	}
	if stripped, ok := verb.strip(rv); ok {
		return stripped, OutcomeVerb, refl
	}
	if stripped, ok := noun.strip(rv); ok {
		return stripped, OutcomeNoun, refl
	}
	return rv, OutcomeNone, refl
}

// hasDerivationalShape reports whether rv ends in "ость" or "ост" and the
// part before "ст" holds at least two consonant-to-vowel transitions.
func hasDerivationalShape(rv string) bool {
	var body string
	switch {
	case strings.HasSuffix(rv, "ость"):
		body = rv[:len(rv)-len("сть")]
	case strings.HasSuffix(rv, "ост"):
		body = rv[:len(rv)-len("ст")]
	default:
		return false
	}

	transitions := 0
	prevConsonant := false
	for len(body) > 0 {
		r, size := utf8.DecodeRuneInString(body)
		body = body[size:]
		vowel := isVowel(r)
		if vowel && prevConsonant {
			transitions++
			if transitions == 2 {
				return true
			}
		}
		prevConsonant = !vowel
	}
	return false
}
