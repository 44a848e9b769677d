package types

type BaseResponse struct {
	DocId string `json:"doc_id"`
}

type StemTextResponse struct {
	BaseResponse
	Text string `json:"text"`
}

type TokenResponse struct {
	Text    string `json:"text"`
	Stem    string `json:"stem"`
	Begin   int32  `json:"begin"`
	End     int32  `json:"end"`
	IsWord  bool   `json:"is_word"`
	Outcome string `json:"outcome,omitempty"`
}

type StemTokensResponse struct {
	BaseResponse
	Tokens []TokenResponse `json:"tokens"`
}

type WordResponse struct {
	Word string `json:"word"`
	Stem string `json:"stem"`
}
