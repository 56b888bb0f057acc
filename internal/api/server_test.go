package api

import (
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/charmbracelet/log"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/matzehuels/molgraph/pkg/cache"
	"github.com/matzehuels/molgraph/pkg/pipeline"
	"github.com/matzehuels/molgraph/pkg/storage"
)

func newTestServer(t *testing.T) *httptest.Server {
	t.Helper()
	logger := log.NewWithOptions(io.Discard, log.Options{})
	runner := pipeline.NewRunner(nil, cache.NewNullCache(), nil, logger)
	srv := New(runner, storage.NewMemoryStore(), logger, Config{
		MaxBodyBytes: 1024,
		Defaults:     pipeline.Options{Layout: "neato", Hydrogens: true},
	})
	ts := httptest.NewServer(srv.Routes())
	t.Cleanup(ts.Close)
	return ts
}

func post(t *testing.T, ts *httptest.Server, body string) (*http.Response, []byte) {
	t.Helper()
	resp, err := http.Post(ts.URL+"/v1/parse", "application/json", strings.NewReader(body))
	require.NoError(t, err)
	defer resp.Body.Close()
	data, err := io.ReadAll(resp.Body)
	require.NoError(t, err)
	return resp, data
}

func get(t *testing.T, url string) (*http.Response, []byte) {
	t.Helper()
	resp, err := http.Get(url)
	require.NoError(t, err)
	defer resp.Body.Close()
	data, err := io.ReadAll(resp.Body)
	require.NoError(t, err)
	return resp, data
}

func TestHealth(t *testing.T) {
	ts := newTestServer(t)
	resp, body := get(t, ts.URL+"/healthz")

	assert.Equal(t, http.StatusOK, resp.StatusCode)
	assert.NotEmpty(t, resp.Header.Get(requestIDHeader))

	var h healthResponse
	require.NoError(t, json.Unmarshal(body, &h))
	assert.Equal(t, "ok", h.Status)
	assert.NotEmpty(t, h.Build.Version)
}

func TestParseAndFetch(t *testing.T) {
	ts := newTestServer(t)

	resp, body := post(t, ts, `{"notation": "C=O", "formats": ["json", "dot"]}`)
	require.Equal(t, http.StatusOK, resp.StatusCode, string(body))

	var pr parseResponse
	require.NoError(t, json.Unmarshal(body, &pr))
	assert.Equal(t, "CH2O", pr.Formula)
	assert.Equal(t, 4, pr.AtomCount)
	assert.Equal(t, 3, pr.EdgeCount)
	assert.Len(t, pr.Molecule.Atoms, 4)
	assert.Contains(t, pr.Artifacts["dot"], "graph M {")
	assert.NotContains(t, pr.Artifacts, "json")
	require.True(t, storage.ValidID(pr.ID))

	// same molecule maps to the same id
	_, body = post(t, ts, `{"notation": "C=O"}`)
	var again parseResponse
	require.NoError(t, json.Unmarshal(body, &again))
	assert.Equal(t, pr.ID, again.ID)

	resp, body = get(t, ts.URL+"/v1/molecules/"+pr.ID)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	var mr moleculeResponse
	require.NoError(t, json.Unmarshal(body, &mr))
	assert.Equal(t, "C=O", mr.Notation)
	assert.Equal(t, "double", mr.Molecule.Edges[2].Order)

	resp, body = get(t, ts.URL+"/v1/molecules/"+pr.ID+"?format=dot")
	require.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Equal(t, "text/vnd.graphviz; charset=utf-8", resp.Header.Get("Content-Type"))
	assert.Contains(t, string(body), `0 -- 3 [color="black:invis:black"];`)
}

func TestParseErrorPosition(t *testing.T) {
	ts := newTestServer(t)

	resp, body := post(t, ts, `{"notation": "CCQ"}`)
	require.Equal(t, http.StatusBadRequest, resp.StatusCode)

	var eb errorBody
	require.NoError(t, json.Unmarshal(body, &eb))
	require.NotNil(t, eb.Position)
	assert.Equal(t, 2, *eb.Position)

	_, body = post(t, ts, `{"notation": "C1C1"}`)
	eb = errorBody{}
	require.NoError(t, json.Unmarshal(body, &eb))
	assert.Nil(t, eb.Position)
}

func TestParseOptionsOverrideDefaults(t *testing.T) {
	ts := newTestServer(t)

	_, body := post(t, ts, `{"notation": "C1CC1", "parse": {"ring_bonds_consume_valence": true}}`)
	var pr parseResponse
	require.NoError(t, json.Unmarshal(body, &pr))
	assert.Equal(t, "C3H6", pr.Formula)

	_, body = post(t, ts, `{"notation": "C1CC1"}`)
	require.NoError(t, json.Unmarshal(body, &pr))
	assert.Equal(t, "C3H8", pr.Formula)
}

func TestParseErrors(t *testing.T) {
	ts := newTestServer(t)

	tests := []struct {
		name   string
		body   string
		status int
		code   string
	}{
		{"unknown element", `{"notation": "CQ"}`, http.StatusBadRequest, "UNKNOWN_ELEMENT"},
		{"open ring", `{"notation": "C1CC"}`, http.StatusBadRequest, "MALFORMED_RING_CLOSURE"},
		{"duplicate bond", `{"notation": "C1C1"}`, http.StatusBadRequest, "CONFLICTING_BOND"},
		{"unbalanced", `{"notation": "C(C"}`, http.StatusBadRequest, "MALFORMED_BRANCH"},
		{"empty", `{"notation": ""}`, http.StatusBadRequest, "INVALID_INPUT"},
		{"bad json", `{"notation":`, http.StatusBadRequest, "INVALID_INPUT"},
		{"unknown field", `{"smiles": "C"}`, http.StatusBadRequest, "INVALID_INPUT"},
		{"bad format", `{"notation": "C", "formats": ["png"]}`, http.StatusBadRequest, "INVALID_INPUT"},
		{"too large", `{"notation": "` + strings.Repeat("C", 2000) + `"}`, http.StatusRequestEntityTooLarge, "INVALID_INPUT"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			resp, body := post(t, ts, tt.body)
			assert.Equal(t, tt.status, resp.StatusCode, string(body))

			var eb errorBody
			require.NoError(t, json.Unmarshal(body, &eb))
			assert.Equal(t, tt.code, string(eb.Code))
			assert.NotEmpty(t, eb.Message)
		})
	}
}

func TestGetMoleculeErrors(t *testing.T) {
	ts := newTestServer(t)

	resp, _ := get(t, ts.URL+"/v1/molecules/not-a-uuid")
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)

	resp, _ = get(t, ts.URL+"/v1/molecules/6ba7b810-9dad-11d1-80b4-00c04fd430c8")
	assert.Equal(t, http.StatusNotFound, resp.StatusCode)

	resp, _ = get(t, ts.URL+"/nowhere")
	assert.Equal(t, http.StatusNotFound, resp.StatusCode)
}

func TestRequestIDPropagates(t *testing.T) {
	ts := newTestServer(t)

	req, err := http.NewRequest(http.MethodGet, ts.URL+"/healthz", nil)
	require.NoError(t, err)
	req.Header.Set(requestIDHeader, "abc-123")
	resp, err := http.DefaultClient.Do(req)
	require.NoError(t, err)
	resp.Body.Close()

	assert.Equal(t, "abc-123", resp.Header.Get(requestIDHeader))
}
