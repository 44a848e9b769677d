package types

// Span is a half-open [Begin, End) range of rune offsets into the request text.
type Span struct {
	Begin int32
	End   int32
	Text  string
}

func (span Span) Len() int32 {
	return span.End - span.Begin
}

func SpanSortFunction(spanA *Span, spanB *Span) bool {
	if spanA.Begin == spanB.Begin {
		return spanA.End < spanB.End
	}
	return spanA.Begin < spanB.Begin
}
