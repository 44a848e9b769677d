package types

type Token struct {
	Span
	IsWord bool

	// filled by the stemmer stage for word tokens
	Normalized string
	Stem       string
	Outcome    string
}

// Shift moves the token by offset runes.
func (token Token) Shift(offset int32) Token {
	token.Begin += offset
	token.End += offset
	return token
}

// Segment is a line of the request text, newline included, with its tokens.
type Segment struct {
	Span
	Tokens []Token
}
