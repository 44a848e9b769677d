package pipeline

import (
	"sync"

	"text2phenotype.com/ukstem/tokenizer"
	"text2phenotype.com/ukstem/types"
)

type Tokenizer func(in <-chan types.Segment) <-chan types.Segment

func NewTokenizer() Tokenizer {
	return func(in <-chan types.Segment) <-chan types.Segment {
		out := make(chan types.Segment)

		go func() {
			defer close(out)
			var wg sync.WaitGroup
			for seg := range in {
				wg.Add(1)
				go func(seg types.Segment) {
					defer wg.Done()
					tokens := tokenizer.Tokenize(seg.Text)
					for i := range tokens {
						tokens[i] = tokens[i].Shift(seg.Begin)
					}
					seg.Tokens = tokens
					out <- seg
				}(seg)
			}

			wg.Wait()
		}()

		return out
	}
}
