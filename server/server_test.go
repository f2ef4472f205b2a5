package server

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"auto_wp_page_publisher/batch"
	"auto_wp_page_publisher/generator"
	"auto_wp_page_publisher/publisher"
)

func newTestServer(t *testing.T) *httptest.Server {
	t.Helper()
	agent, err := generator.NewAgent(generator.MockLLM{})
	require.NoError(t, err)
	srv, err := New(agent, publisher.Config{}, nil)
	require.NoError(t, err)
	ts := httptest.NewServer(srv.Routes())
	t.Cleanup(ts.Close)
	return ts
}

func postBatch(t *testing.T, ts *httptest.Server, body string) *http.Response {
	t.Helper()
	resp, err := http.Post(ts.URL+"/api/batches", "application/json", strings.NewReader(body))
	require.NoError(t, err)
	return resp
}

func TestBatchLifecycle(t *testing.T) {
	ts := newTestServer(t)

	resp := postBatch(t, ts, `{
		"keywords": ["gardens", "patios"],
		"message": "Write about {{keyword}} for {{enterprise}}",
		"enterprise": "Acme",
		"template": "preset"
	}`)
	defer resp.Body.Close()
	require.Equal(t, http.StatusOK, resp.StatusCode)

	var created batchCreateResp
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&created))
	require.NotEmpty(t, created.BatchID)

	// The mock LLM answers instantly; poll until the run settles.
	var status batchStatusResp
	deadline := time.Now().Add(5 * time.Second)
	for {
		r, err := http.Get(ts.URL + "/api/batches/" + created.BatchID)
		require.NoError(t, err)
		require.NoError(t, json.NewDecoder(r.Body).Decode(&status))
		r.Body.Close()
		done := status.Status.State == batch.StateCompleted && len(status.Outcomes) == 2
		if done || time.Now().After(deadline) {
			break
		}
		time.Sleep(10 * time.Millisecond)
	}

	require.Equal(t, batch.StateCompleted, status.Status.State)
	assert.InDelta(t, 100, status.Status.Progress, 0.001)
	require.Len(t, status.Outcomes, 2)
	assert.Equal(t, "gardens", status.Outcomes[0].Keyword)
	assert.Equal(t, "patios", status.Outcomes[1].Keyword)
	assert.Equal(t, "Sample Post", status.Outcomes[0].Title)
	assert.Empty(t, status.Outcomes[0].Error)
}

func TestBatchCreateRejectsEmptyKeywords(t *testing.T) {
	ts := newTestServer(t)

	resp := postBatch(t, ts, `{"keywords": [], "message": "x"}`)
	defer resp.Body.Close()
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
}

func TestBatchCreateRejectsBadTemplate(t *testing.T) {
	ts := newTestServer(t)

	resp := postBatch(t, ts, `{"keywords": ["a"], "message": "x", "template": {"title": "no content"}}`)
	defer resp.Body.Close()
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
}

func TestBatchCreateRejectsNonPost(t *testing.T) {
	ts := newTestServer(t)

	resp, err := http.Get(ts.URL + "/api/batches")
	require.NoError(t, err)
	defer resp.Body.Close()
	assert.Equal(t, http.StatusMethodNotAllowed, resp.StatusCode)
}

func TestBatchStatusUnknownID(t *testing.T) {
	ts := newTestServer(t)

	resp, err := http.Get(ts.URL + "/api/batches/no-such-id")
	require.NoError(t, err)
	defer resp.Body.Close()
	assert.Equal(t, http.StatusNotFound, resp.StatusCode)
}
