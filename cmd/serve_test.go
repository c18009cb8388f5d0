package cmd

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/gorilla/websocket"
	"github.com/jsphweid/ctransposer/db"
	"github.com/jsphweid/ctransposer/file"
	"github.com/jsphweid/ctransposer/model"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func post(t *testing.T, handler http.HandlerFunc, path string, body any) *httptest.ResponseRecorder {
	t.Helper()
	data, err := json.Marshal(body)
	require.NoError(t, err)
	req := httptest.NewRequest(http.MethodPost, path, bytes.NewReader(data))
	w := httptest.NewRecorder()
	handler(w, req)
	return w
}

func TestHandleTranspose(t *testing.T) {
	w := post(t, HandleTranspose, "/transpose", model.TransposeRequest{
		Name:      "song",
		Text:      "Am  C\nla la\n",
		Semitones: 2,
	})

	assert := assert.New(t)
	require.Equal(t, http.StatusOK, w.Code)
	var res model.TransposeResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &res))
	assert.Equal(model.TransposeResponse{
		Text:             "Bm  D\nla la\n",
		Semitones:        2,
		DifficultyBefore: 0,
		DifficultyAfter:  2,
		Chords:           2,
		Digest:           file.Digest([]string{"Am  C", "la la"}),
	}, res)
}

func TestHandleTransposeFlatsAndWarnings(t *testing.T) {
	w := post(t, HandleTranspose, "/transpose", model.TransposeRequest{
		Text:      "E#  C  G",
		Semitones: 1,
		Flats:     true,
	})

	require.Equal(t, http.StatusOK, w.Code)
	var res model.TransposeResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &res))
	assert.Equal(t, "E#  Db Ab", res.Text)
	if assert.Len(t, res.Warnings, 1) {
		assert.Contains(t, res.Warnings[0], "line 1 column 1")
	}
}

func TestHandleTransposeAuto(t *testing.T) {
	w := post(t, HandleTranspose, "/transpose", model.TransposeRequest{Text: "G#m   E    B    F#", Auto: true})

	require.Equal(t, http.StatusOK, w.Code)
	var res model.TransposeResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &res))
	assert.Equal(t, -4, res.Semitones)
	assert.Equal(t, "Em    C    G    D ", res.Text)
}

func TestHandleTransposeBadRequests(t *testing.T) {
	req := httptest.NewRequest(http.MethodPost, "/transpose", strings.NewReader("{nope"))
	w := httptest.NewRecorder()
	HandleTranspose(w, req)
	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Contains(t, w.Body.String(), `"detail"`)

	w = post(t, HandleTranspose, "/transpose", model.TransposeRequest{Semitones: 1})
	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestHandleTransposeRecords(t *testing.T) {
	ctx := context.Background()
	store, err := db.OpenSQLite(ctx, filepath.Join(t.TempDir(), "reports.db"))
	require.NoError(t, err)
	defer store.Close()
	reportStore = store
	t.Cleanup(func() { reportStore = nil })

	w := post(t, HandleTranspose, "/transpose", model.TransposeRequest{Name: "song", Text: "Am  C", Semitones: -1})
	require.Equal(t, http.StatusOK, w.Code)

	reports, err := store.GetReports(ctx, file.Digest([]string{"Am  C"}))
	require.NoError(t, err)
	require.Len(t, reports, 1)
	assert.Equal(t, -1, reports[0].Semitones)
	assert.Equal(t, "song", reports[0].Name)
	assert.Equal(t, 2, reports[0].Chords)
}

func TestHandleKeys(t *testing.T) {
	w := post(t, HandleKeys, "/keys", model.KeysRequest{Text: "G#m   E    B    F#"})

	require.Equal(t, http.StatusOK, w.Code)
	var res model.KeysResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &res))
	assert.Equal(t, model.KeyScore{Semitones: -4, Difficulty: 0}, res.Easiest)
	assert.Len(t, res.Keys, 12)

	w = post(t, HandleKeys, "/keys", model.KeysRequest{Text: "no chords here"})
	assert.Equal(t, http.StatusUnprocessableEntity, w.Code)
}

func TestRouter(t *testing.T) {
	srv := httptest.NewServer(NewRouter())
	defer srv.Close()

	resp, err := http.Post(srv.URL+"/keys", "application/json", strings.NewReader(`{"text":"C G"}`))
	require.NoError(t, err)
	defer resp.Body.Close()
	assert.Equal(t, http.StatusOK, resp.StatusCode)
	assert.NotEmpty(t, resp.Header.Get("X-Request-ID"))

	resp, err = http.Get(srv.URL + "/transpose")
	require.NoError(t, err)
	resp.Body.Close()
	assert.Equal(t, http.StatusMethodNotAllowed, resp.StatusCode)
}

func dialLive(t *testing.T) *websocket.Conn {
	t.Helper()
	old := liveDebounce
	liveDebounce = 10 * time.Millisecond
	t.Cleanup(func() { liveDebounce = old })

	srv := httptest.NewServer(NewRouter())
	t.Cleanup(srv.Close)

	conn, _, err := websocket.DefaultDialer.Dial("ws"+strings.TrimPrefix(srv.URL, "http")+"/live", nil)
	require.NoError(t, err)
	t.Cleanup(func() { conn.Close() })
	require.NoError(t, conn.SetReadDeadline(time.Now().Add(5*time.Second)))
	return conn
}

func TestLiveTransposesLatestText(t *testing.T) {
	conn := dialLive(t)

	require.NoError(t, conn.WriteJSON(model.TransposeRequest{Text: "C G", Semitones: 1}))
	require.NoError(t, conn.WriteJSON(model.TransposeRequest{Text: "C G", Semitones: 2}))

	var res model.TransposeResponse
	for res.Semitones != 2 {
		require.NoError(t, conn.ReadJSON(&res))
	}
	assert.Equal(t, "D A", res.Text)
	assert.Equal(t, 2, res.Chords)
}

func TestLiveReportsBadMessages(t *testing.T) {
	conn := dialLive(t)

	require.NoError(t, conn.WriteMessage(websocket.TextMessage, []byte("nope")))
	var res model.ErrorResponse
	require.NoError(t, conn.ReadJSON(&res))
	assert.Contains(t, res.Error, "Could not read message")
}
