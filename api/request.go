package api

import (
	"encoding/json"
	"io"
	"net/http"

	"text2phenotype.com/ukstem/pipeline"
	"text2phenotype.com/ukstem/stemmer"
	"text2phenotype.com/ukstem/types"
)

const apiTid = "api_request"

type Request struct {
	Pipeline pipeline.Pipeline
}

// Routes registers the handlers on mux.
func (req *Request) Routes(mux *http.ServeMux) {
	mux.HandleFunc("/", req.ProcessData)
	mux.HandleFunc("/stem", req.StemWord)
}

// ProcessData runs the request body through the pipeline.
func (req *Request) ProcessData(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/json")

	logger := makeRequestLogger(r)

	if r.Method != http.MethodPost {
		logger.Err(nil).Int("status", http.StatusMethodNotAllowed).Msg("Only 'POST' method is allowed here")
		http.Error(w, "", http.StatusMethodNotAllowed)
		return
	}

	msg, err := io.ReadAll(r.Body)
	if err != nil {
		logger.Err(err).Int("status", http.StatusBadRequest).Msg("Could not read request body")
		http.Error(w, "", http.StatusBadRequest)
		return
	}

	request := pipeline.Request{
		Tid:  requestTid(r),
		Text: string(msg),
	}
	logger.Info().Str("tid", request.Tid).Msg("Starting pipeline for request from API")
	resp, ok := <-req.Pipeline(request)
	if !ok {
		logger.Error().Int("status", http.StatusInternalServerError).Msg("Pipeline returned no response")
		http.Error(w, "", http.StatusInternalServerError)
		return
	}
	_, _ = w.Write([]byte(resp))
	logger.Info().Int("status", http.StatusOK).Msg("Finished processing request")
}

// StemWord answers GET /stem?word=<w> with the stem of a single word.
func (req *Request) StemWord(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/json")

	logger := makeRequestLogger(r)

	if r.Method != http.MethodGet {
		logger.Err(nil).Int("status", http.StatusMethodNotAllowed).Msg("Only 'GET' method is allowed here")
		http.Error(w, "", http.StatusMethodNotAllowed)
		return
	}

	words, ok := r.URL.Query()["word"]
	if !ok || len(words) == 0 {
		logger.Err(nil).Int("status", http.StatusBadRequest).Msg("Missing 'word' query parameter")
		http.Error(w, "missing 'word' query parameter", http.StatusBadRequest)
		return
	}

	response := types.WordResponse{
		Word: words[0],
		Stem: stemmer.Stem(words[0]),
	}
	if err := json.NewEncoder(w).Encode(response); err != nil {
		logger.Err(err).Msg("Failed to write response")
		return
	}
	logger.Debug().Int("status", http.StatusOK).Msg("Stemmed word")
}
