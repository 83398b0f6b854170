//go:build e2e
// +build e2e

package e2e_test

import (
	"bytes"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"net/url"
	"os"
	"testing"

	"github.com/jsphweid/incipitdex/catalog"
	"github.com/jsphweid/incipitdex/cmd"
	"github.com/jsphweid/incipitdex/model"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var server *httptest.Server

func TestMain(m *testing.M) {
	// a stand-in search service that echoes the query back as a record
	catalogSrv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		json.NewEncoder(w).Encode(map[string]interface{}{
			"results": []map[string]interface{}{
				{"id": 101, "title": "Echo " + r.URL.Query().Get("mode"), "marc_031_p": r.URL.Query().Get("pae")},
			},
		})
	}))
	cmd.SetCatalog(catalog.NewHTTPSearcher(catalogSrv.URL), nil)
	server = httptest.NewServer(cmd.NewRouter())

	exitVal := m.Run()

	server.Close()
	catalogSrv.Close()
	os.Exit(exitVal)
}

func post(t *testing.T, path string, body interface{}) *http.Response {
	data, err := json.Marshal(body)
	require.NoError(t, err)
	resp, err := http.Post(server.URL+path, "application/json", bytes.NewReader(data))
	require.NoError(t, err)
	return resp
}

func TestEditThenSearchE2E(t *testing.T) {
	assert := assert.New(t)

	resp := post(t, "/sessions", model.SessionRequestBody{PAE: "%G-2 $bBE @3/4"})
	require.Equal(t, http.StatusCreated, resp.StatusCode)
	var st model.SessionState
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&st))
	resp.Body.Close()

	for _, tok := range []string{"Eb'8.", "D'16", "C'4", "/", "G4"} {
		resp = post(t, "/sessions/"+st.ID+"/commands", model.CommandRequestBody{Type: "insert", Token: tok})
		require.Equal(t, http.StatusOK, resp.StatusCode)
		require.NoError(t, json.NewDecoder(resp.Body).Decode(&st))
		resp.Body.Close()
	}
	assert.Equal("%G-2 $bBE @3/4 Eb'8. D'16 C'4 / G4", st.PAE)
	require.Len(t, st.Events, 5)
	assert.Equal(model.Note{Step: model.E, Octave: 5, Duration: 8, Accidental: model.Flat, Dotted: true}, st.Events[0])
	assert.Equal(model.Bar{Kind: model.SingleBar}, st.Events[3])

	resp, err := http.Get(server.URL + "/sessions/" + st.ID + "/render?format=pdf")
	require.NoError(t, err)
	pdf, _ := io.ReadAll(resp.Body)
	resp.Body.Close()
	assert.True(bytes.HasPrefix(pdf, []byte("%PDF")))

	q := url.Values{"mode": {"similar"}, "threshold": {"0,5"}, "pae": {st.Body}}
	resp, err = http.Get(server.URL + "/search?" + q.Encode())
	require.NoError(t, err)
	defer resp.Body.Close()
	require.Equal(t, http.StatusOK, resp.StatusCode)

	var works []model.Work
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&works))
	require.Len(t, works, 1)
	assert.Equal(model.WorkID("101"), works[0].ID)
	assert.Equal("Echo similar", works[0].Title)
	assert.Equal(st.Body, works[0].PAE)
}
