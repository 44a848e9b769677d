package api

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"net/url"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"text2phenotype.com/ukstem/pipeline"
	"text2phenotype.com/ukstem/types"
)

func newTestServer(t *testing.T, ppln pipeline.Pipeline) *httptest.Server {
	t.Helper()
	mux := http.NewServeMux()
	(&Request{Pipeline: ppln}).Routes(mux)
	server := httptest.NewServer(mux)
	t.Cleanup(server.Close)
	return server
}

func newStemmingPipeline(t *testing.T) pipeline.Pipeline {
	t.Helper()
	ppln, err := pipeline.NewStemming(pipeline.StemmingParams{
		CacheSize:      pipeline.DefaultCacheSize,
		Configurations: []types.Configuration{{Name: "text", Pipeline: types.StemTextPipeline}},
	})
	require.NoError(t, err)
	return ppln
}

func TestProcessData(t *testing.T) {
	server := newTestServer(t, newStemmingPipeline(t))

	resp, err := http.Post(server.URL, "text/plain", strings.NewReader("Зберігайте спокій, друзі."))
	require.NoError(t, err)
	defer resp.Body.Close()
	require.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Equal(t, "application/json", resp.Header.Get("Content-Type"))

	var body map[string]types.StemTextResponse
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&body))
	assert.Equal(t, apiTid, body["text"].DocId)
	assert.Equal(t, "зберігайт спок, друз.", body["text"].Text)
}

func TestProcessDataRequestID(t *testing.T) {
	server := newTestServer(t, newStemmingPipeline(t))

	req, err := http.NewRequest(http.MethodPost, server.URL, strings.NewReader("друзі"))
	require.NoError(t, err)
	req.Header.Set("X-Request-Id", "req-42")
	resp, err := http.DefaultClient.Do(req)
	require.NoError(t, err)
	defer resp.Body.Close()

	var body map[string]types.StemTextResponse
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&body))
	assert.Equal(t, "req-42", body["text"].DocId)
	assert.Equal(t, "друз", body["text"].Text)
}

func TestProcessDataMethodNotAllowed(t *testing.T) {
	server := newTestServer(t, newStemmingPipeline(t))

	resp, err := http.Get(server.URL)
	require.NoError(t, err)
	defer resp.Body.Close()
	assert.Equal(t, http.StatusMethodNotAllowed, resp.StatusCode)
}

func TestProcessDataPipelineFailure(t *testing.T) {
	closed := func(pipeline.Request) <-chan string {
		ch := make(chan string)
		close(ch)
		return ch
	}
	server := newTestServer(t, closed)

	resp, err := http.Post(server.URL, "text/plain", strings.NewReader("текст"))
	require.NoError(t, err)
	defer resp.Body.Close()
	assert.Equal(t, http.StatusInternalServerError, resp.StatusCode)
}

func TestStemWord(t *testing.T) {
	server := newTestServer(t, newStemmingPipeline(t))

	tests := []struct {
		word string
		stem string
	}{
		{"зробивши", "зроб"},
		{"Книгами", "книг"},
		{"пам'ять", "пам"},
		{"", ""},
	}
	for _, tt := range tests {
		resp, err := http.Get(server.URL + "/stem?word=" + url.QueryEscape(tt.word))
		require.NoError(t, err)
		require.Equal(t, http.StatusOK, resp.StatusCode, tt.word)

		var body types.WordResponse
		require.NoError(t, json.NewDecoder(resp.Body).Decode(&body))
		resp.Body.Close()
		assert.Equal(t, types.WordResponse{Word: tt.word, Stem: tt.stem}, body)
	}
}

func TestStemWordMissingParameter(t *testing.T) {
	server := newTestServer(t, newStemmingPipeline(t))

	resp, err := http.Get(server.URL + "/stem")
	require.NoError(t, err)
	defer resp.Body.Close()
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)

	resp, err = http.Post(server.URL+"/stem?word=слово", "text/plain", nil)
	require.NoError(t, err)
	defer resp.Body.Close()
	assert.Equal(t, http.StatusMethodNotAllowed, resp.StatusCode)
}
