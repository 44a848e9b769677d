package pipeline

import (
	"strings"
	"unicode/utf8"

	"text2phenotype.com/ukstem/types"
)

// NewSegmenter cuts every incoming text into lines. Each segment keeps its
// trailing newline, so segments tile the text without gaps.
func NewSegmenter() func(in <-chan string) <-chan types.Segment {
	return func(in <-chan string) <-chan types.Segment {
		out := make(chan types.Segment)

		go func() {
			defer close(out)
			for text := range in {
				var offset int32
				for _, line := range strings.SplitAfter(text, "\n") {
					if line == "" {
						continue
					}
					size := int32(utf8.RuneCountInString(line))
					out <- types.Segment{
						Span: types.Span{
							Begin: offset,
							End:   offset + size,
							Text:  line,
						},
					}
					offset += size
				}
			}
		}()

		return out
	}
}
