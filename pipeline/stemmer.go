package pipeline

import (
	"sync"

	"text2phenotype.com/ukstem/types"
)

type Stemmer func(in <-chan types.Segment) <-chan types.Segment

// NewStemmer fills Normalized, Stem and Outcome of every word token.
func NewStemmer(cache *stemCache) Stemmer {
	return func(in <-chan types.Segment) <-chan types.Segment {
		out := make(chan types.Segment)

		go func() {
			defer close(out)
			var wg sync.WaitGroup
			for seg := range in {
				wg.Add(1)
				go func(seg types.Segment) {
					defer wg.Done()
					for i := range seg.Tokens {
						token := &seg.Tokens[i]
						if !token.IsWord {
							continue
						}
						entry := cache.analyze(token.Text)
						token.Normalized = entry.normalized
						token.Stem = entry.stem
						token.Outcome = entry.outcome.String()
					}
					out <- seg
				}(seg)
			}

			wg.Wait()
		}()

		return out
	}
}
