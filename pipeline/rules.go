package pipeline

import (
	"fmt"

	"text2phenotype.com/ukstem/stemmer"
	"text2phenotype.com/ukstem/types"
	"text2phenotype.com/ukstem/utils"
)

// stemRules holds the per-configuration exceptions to stemming.
type stemRules struct {
	protected map[string]bool
	minLength int32
}

func newStemRules(cfg types.Configuration) (stemRules, error) {
	rules := stemRules{minLength: int32(cfg.Params.MinLength)}

	wordsPath := cfg.ProtectedWordsPath()
	if wordsPath == "" {
		return rules, nil
	}
	protected, err := utils.ReadSet(wordsPath, stemmer.Normalize)
	if err != nil {
		return rules, fmt.Errorf("config %q: read protected words: %w", cfg.Name, err)
	}
	rules.protected = protected
	return rules, nil
}

// keepsWord reports whether a word token is only normalized.
func (rules stemRules) keepsWord(token types.Token) bool {
	return token.Len() < rules.minLength || rules.protected[token.Normalized]
}

// stemOf returns the replacement text for token and the step-1 outcome
// behind it, empty when no stemming took place.
func (rules stemRules) stemOf(token types.Token) (string, string) {
	switch {
	case !token.IsWord:
		return token.Text, ""
	case rules.keepsWord(token):
		return token.Normalized, ""
	default:
		return token.Stem, token.Outcome
	}
}
