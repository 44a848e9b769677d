package api

import (
	"net/http"

	"github.com/rs/zerolog"
	"text2phenotype.com/ukstem/logger"
)

const (
	RequestInfoFieldsKey = "request_info"
	requestIDHeader      = "X-Request-Id"
)

var apiLogger = logger.NewLogger("API")

type requestInfo struct {
	Method     string `json:"method"`
	URL        string `json:"url"`
	RemoteAddr string `json:"remote_addr,omitempty"`
	RequestID  string `json:"request_id,omitempty"`
}

// requestTid names the pipeline run for r: the caller's request id when
// one was sent.
func requestTid(r *http.Request) string {
	if id := r.Header.Get(requestIDHeader); id != "" {
		return id
	}
	return apiTid
}

func makeRequestLogger(r *http.Request) zerolog.Logger {
	info := requestInfo{
		Method:     r.Method,
		URL:        r.URL.String(),
		RemoteAddr: r.RemoteAddr,
		RequestID:  r.Header.Get(requestIDHeader),
	}
	return apiLogger.With().Interface(RequestInfoFieldsKey, info).Logger()
}
