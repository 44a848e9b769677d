package pipeline

type Request struct {
	Text string `json:"text"`
	Tid  string `json:"tid"`
}

// Pipeline runs one request and sends a single JSON document, keyed by
// configuration name, on the returned channel.
type Pipeline func(request Request) <-chan string

type Result struct {
	ConfigName string
	Data       interface{}
}
