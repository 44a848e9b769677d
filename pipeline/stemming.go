package pipeline

import (
	"encoding/json"
	"fmt"
	"strings"

	"text2phenotype.com/ukstem/logger"
	"text2phenotype.com/ukstem/stemmer"
	"text2phenotype.com/ukstem/tokenizer"
	"text2phenotype.com/ukstem/types"
)

const DefaultCacheSize = 100000

type StemmingParams struct {
	Configurations []types.Configuration `json:"configurations"`
	// CacheSize bounds the shared stem cache; zero disables it.
	CacheSize int `json:"cache_size"`
}

func NewStemming(params StemmingParams) (Pipeline, error) {
	stemLogger := logger.NewLogger("Stemming pipeline")
	errLogger := stemLogger.With().Caller().Logger()
	stemLogger.Info().
		Interface("params", params).
		Msg("Starting stemming pipeline (see parameters in 'params' field)")

	rules := make([]stemRules, len(params.Configurations))
	builders := make([]ResultBuilder, len(params.Configurations))
	for i, cfg := range params.Configurations {
		if err := cfg.Validate(); err != nil {
			errLogger.Err(err).Interface("configuration", cfg).Msg("Invalid configuration")
			return nil, err
		}
		r, err := newStemRules(cfg)
		if err != nil {
			errLogger.Err(err).
				Str("protected_words", cfg.ProtectedWordsPath()).
				Msg("Failed to load stemming rules")
			return nil, err
		}
		rules[i] = r

		switch cfg.Pipeline {
		case types.StemTextPipeline:
			builders[i] = NewStemTextResult()
		case types.StemTokensPipeline:
			builders[i] = NewStemTokensResult()
		}
	}

	cache, err := newStemCache(params.CacheSize)
	if err != nil {
		errLogger.Err(err).Int("cache_size", params.CacheSize).Msg("Failed to create stem cache")
		return nil, fmt.Errorf("stem cache: %w", err)
	}

	segmenter := NewSegmenter()
	tokenizerStage := NewTokenizer()
	stemmerStage := NewStemmer(cache)
	splitter := NewSegmentChannelSplitter(len(params.Configurations))

	return func(request Request) <-chan string {
		responseChan := make(chan string, 1)
		pplnLog := stemLogger.With().Str("tid", request.Tid).Logger()
		pplnLog.Info().Msg("Started stemming pipeline")

		go func() {
			defer close(responseChan)
			in := make(chan string)

			seg := segmenter(in)
			tok := tokenizerStage(seg)
			stem := stemmerStage(tok)
			split := splitter(stem)

			resultChannel := make(chan Result)
			for i, cfg := range params.Configurations {
				connect(builders[i](split[i], cfg, rules[i], request), resultChannel)
			}

			in <- request.Text
			close(in)

			response := make(map[string]interface{}, len(params.Configurations))
			for i := 0; i < len(params.Configurations); i++ {
				res := <-resultChannel
				pplnLog.Debug().
					Str("config_name", res.ConfigName).
					Msg("Finished pipeline for configuration")
				response[res.ConfigName] = res.Data
			}

			buf, err := json.Marshal(response)
			if err != nil {
				pplnLog.Err(err).Caller().Msg("Failed to marshall response")
				return
			}
			pplnLog.Info().Msg("Finished stemming pipeline")
			responseChan <- string(buf)
		}()

		return responseChan
	}, nil
}

func connect(from <-chan Result, to chan<- Result) {
	go func() {
		for v := range from {
			to <- v
		}
	}()
}

// StemText stems every word of text and leaves all other characters as they
// are. It bypasses the pipeline and its cache.
func StemText(text string) string {
	var sb strings.Builder
	sb.Grow(len(text))
	for _, token := range tokenizer.Tokenize(text) {
		if token.IsWord {
			sb.WriteString(stemmer.Stem(token.Text))
		} else {
			sb.WriteString(token.Text)
		}
	}
	return sb.String()
}
