package pipeline

import (
	"sync"

	"text2phenotype.com/ukstem/types"
)

// NewSegmentChannelSplitter copies every segment to n output channels.
// Receivers share the token slices and must not modify them.
func NewSegmentChannelSplitter(n int) func(in <-chan types.Segment) []chan types.Segment {

	return func(in <-chan types.Segment) []chan types.Segment {
		outs := make([]chan types.Segment, n)
		// init channels
		for i := 0; i < n; i++ {
			outs[i] = make(chan types.Segment)
		}

		go func() {
			defer closeAllChannels(outs)
			var wg sync.WaitGroup

			for seg := range in {
				wg.Add(1)
				go func(seg types.Segment) {
					defer wg.Done()
					for _, out := range outs {
						out <- seg
					}
				}(seg)
			}

			wg.Wait()
		}()
		return outs
	}
}

func closeAllChannels(outs []chan types.Segment) {
	for _, out := range outs {
		close(out)
	}
}
