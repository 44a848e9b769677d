package pipeline

import (
	lru "github.com/hashicorp/golang-lru/v2"
	"text2phenotype.com/ukstem/stemmer"
	"text2phenotype.com/ukstem/utils"
)

const cacheShards = 16

type stemEntry struct {
	normalized string
	stem       string
	outcome    stemmer.Outcome
}

// stemCache memoizes Analyze results per raw word form. Words are spread
// over independently locked shards by their murmur3 hash.
type stemCache struct {
	shards []*lru.Cache[string, stemEntry]
}

// newStemCache returns a cache holding about size entries. A size of zero
// disables caching.
func newStemCache(size int) (*stemCache, error) {
	if size <= 0 {
		return &stemCache{}, nil
	}
	perShard := size / cacheShards
	if perShard < 1 {
		perShard = 1
	}
	cache := &stemCache{shards: make([]*lru.Cache[string, stemEntry], cacheShards)}
	for i := range cache.shards {
		shard, err := lru.New[string, stemEntry](perShard)
		if err != nil {
			return nil, err
		}
		cache.shards[i] = shard
	}
	return cache, nil
}

func (cache *stemCache) analyze(word string) stemEntry {
	if len(cache.shards) == 0 {
		return analyzeWord(word)
	}
	shard := cache.shards[utils.HashString(word)%uint64(len(cache.shards))]
	if entry, ok := shard.Get(word); ok {
		return entry
	}
	entry := analyzeWord(word)
	shard.Add(word, entry)
	return entry
}

func (cache *stemCache) len() int {
	n := 0
	for _, shard := range cache.shards {
		n += shard.Len()
	}
	return n
}

func analyzeWord(word string) stemEntry {
	analysis := stemmer.Analyze(word)
	return stemEntry{
		normalized: analysis.Normalized,
		stem:       analysis.Stem,
		outcome:    analysis.Trace.Category,
	}
}
