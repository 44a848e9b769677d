package pipeline

import (
	"sort"
	"strings"

	"text2phenotype.com/ukstem/types"
)

type ResultBuilder func(in <-chan types.Segment, cfg types.Configuration, rules stemRules, request Request) <-chan Result

// collectTokens drains in and returns the tokens in text order.
func collectTokens(in <-chan types.Segment) []types.Token {
	var segments []types.Segment
	size := 0
	for seg := range in {
		segments = append(segments, seg)
		size += len(seg.Tokens)
	}
	sort.Slice(segments, func(i, j int) bool {
		return types.SpanSortFunction(&segments[i].Span, &segments[j].Span)
	})

	tokens := make([]types.Token, 0, size)
	for _, seg := range segments {
		tokens = append(tokens, seg.Tokens...)
	}
	return tokens
}

func NewStemTextResult() ResultBuilder {
	return func(in <-chan types.Segment, cfg types.Configuration, rules stemRules, request Request) <-chan Result {
		out := make(chan Result)

		go func() {
			defer close(out)
			var sb strings.Builder
			for _, token := range collectTokens(in) {
				stem, _ := rules.stemOf(token)
				sb.WriteString(stem)
			}

			var response types.StemTextResponse
			response.DocId = request.Tid
			response.Text = sb.String()

			out <- Result{
				ConfigName: cfg.Name,
				Data:       response,
			}
		}()
		return out
	}
}

func NewStemTokensResult() ResultBuilder {
	return func(in <-chan types.Segment, cfg types.Configuration, rules stemRules, request Request) <-chan Result {
		out := make(chan Result)
		skipPunctuation := cfg.CheckFeature(types.SkipPunctuation)
		withTrace := cfg.CheckFeature(types.Trace)

		go func() {
			defer close(out)
			tokens := collectTokens(in)

			var response types.StemTokensResponse
			response.DocId = request.Tid
			response.Tokens = make([]types.TokenResponse, 0, len(tokens))
			for _, token := range tokens {
				if skipPunctuation && !token.IsWord {
					continue
				}
				stem, outcome := rules.stemOf(token)
				item := types.TokenResponse{
					Text:   token.Text,
					Stem:   stem,
					Begin:  token.Begin,
					End:    token.End,
					IsWord: token.IsWord,
				}
				if withTrace {
					item.Outcome = outcome
				}
				response.Tokens = append(response.Tokens, item)
			}

			out <- Result{
				ConfigName: cfg.Name,
				Data:       response,
			}
		}()
		return out
	}
}
