package server

import (
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/abhisek/quizbank/internal/bank"
	"github.com/abhisek/quizbank/internal/corpus"
	"github.com/abhisek/quizbank/internal/metrics"
	"github.com/abhisek/quizbank/internal/store"
)

func newTestServer(t *testing.T) (*httptest.Server, *bank.Engine) {
	t.Helper()
	repo, err := store.NewFileSnapshotRepo(t.TempDir())
	require.NoError(t, err)

	policy := bank.DefaultPolicy()
	policy.GenerateRate = 0
	engine := bank.NewEngine(repo, nil, corpus.Static(), bank.WithPolicy(policy))
	require.NoError(t, engine.Load(context.Background(), "kid"))
	t.Cleanup(engine.Wait)

	srv := httptest.NewServer(New(engine, metrics.New(), zerolog.Nop(), 3).Handler())
	t.Cleanup(srv.Close)
	return srv, engine
}

func post(t *testing.T, url, body string) *http.Response {
	t.Helper()
	resp, err := http.Post(url, "application/json", strings.NewReader(body))
	require.NoError(t, err)
	t.Cleanup(func() { resp.Body.Close() })
	return resp
}

func TestHealthz(t *testing.T) {
	srv, _ := newTestServer(t)
	resp, err := http.Get(srv.URL + "/healthz")
	require.NoError(t, err)
	defer resp.Body.Close()

	var body map[string]string
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&body))
	assert.Equal(t, "ok", body["status"])
	assert.Equal(t, "kid", body["profile"])
}

func TestDraw_SeedsEmptyBank(t *testing.T) {
	srv, engine := newTestServer(t)

	resp := post(t, srv.URL+"/v1/subjects/math/draw", `{"difficulty": 2, "count": 3}`)
	require.Equal(t, http.StatusOK, resp.StatusCode)

	var body drawResponse
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&body))
	assert.Equal(t, engine.Policy().MinReady, body.Seeded)
	require.Len(t, body.Questions, 3)
	for _, q := range body.Questions {
		assert.Len(t, q.Options, 4)
		assert.NotEmpty(t, q.ID)
		assert.Equal(t, string(bank.SourceCorpus), q.Source)
	}
}

func TestDraw_DefaultsToQuizSize(t *testing.T) {
	srv, engine := newTestServer(t)

	resp := post(t, srv.URL+"/v1/subjects/science/draw", "")
	require.Equal(t, http.StatusOK, resp.StatusCode)

	var body drawResponse
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&body))
	assert.Len(t, body.Questions, engine.Policy().QuizSize)
}

func TestDraw_BadRequests(t *testing.T) {
	srv, _ := newTestServer(t)

	assert.Equal(t, http.StatusNotFound, post(t, srv.URL+"/v1/subjects/art/draw", "{}").StatusCode)
	assert.Equal(t, http.StatusBadRequest, post(t, srv.URL+"/v1/subjects/math/draw", "{nope").StatusCode)
	assert.Equal(t, http.StatusBadRequest, post(t, srv.URL+"/v1/subjects/math/draw", `{"colour": 1}`).StatusCode)

	resp, err := http.Get(srv.URL + "/v1/subjects/math/draw")
	require.NoError(t, err)
	resp.Body.Close()
	assert.Equal(t, http.StatusMethodNotAllowed, resp.StatusCode)
}

func TestResults_CreditsAndReplenishes(t *testing.T) {
	srv, engine := newTestServer(t)

	resp := post(t, srv.URL+"/v1/subjects/reading/draw", `{"count": 2}`)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	var drawn drawResponse
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&drawn))
	require.Len(t, drawn.Questions, 2)
	engine.Wait()

	answers, err := json.Marshal(map[string]any{
		"difficulty": 2,
		"answers": []answerDTO{
			{ID: drawn.Questions[0].ID, Text: drawn.Questions[0].Text, Correct: true},
			{ID: drawn.Questions[1].ID, Text: drawn.Questions[1].Text, Correct: false},
		},
	})
	require.NoError(t, err)

	resp = post(t, srv.URL+"/v1/subjects/reading/results", string(answers))
	require.Equal(t, http.StatusOK, resp.StatusCode)
	var body resultsResponse
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&body))
	assert.Equal(t, 1, body.Credited)
	assert.True(t, body.Replenishing)

	engine.Wait()
	for _, q := range engine.Questions("reading") {
		if q.ID == drawn.Questions[0].ID {
			assert.Equal(t, 1, q.TimesCorrect)
		}
	}

	assert.Equal(t, http.StatusBadRequest, post(t, srv.URL+"/v1/subjects/reading/results", `{"answers": []}`).StatusCode)
}

func TestStats(t *testing.T) {
	srv, _ := newTestServer(t)
	post(t, srv.URL+"/v1/subjects/math/draw", "{}")

	resp, err := http.Get(srv.URL + "/v1/stats")
	require.NoError(t, err)
	defer resp.Body.Close()

	var body struct {
		Profile  string     `json:"profile"`
		Subjects []statsDTO `json:"subjects"`
	}
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&body))
	assert.Equal(t, "kid", body.Profile)
	require.Len(t, body.Subjects, 4)
	assert.True(t, body.Subjects[0].Ready)
	assert.False(t, body.Subjects[1].Ready)
}

func TestMetricsEndpoint(t *testing.T) {
	srv, _ := newTestServer(t)
	post(t, srv.URL+"/v1/subjects/math/draw", "{}")

	resp, err := http.Get(srv.URL + "/metrics")
	require.NoError(t, err)
	defer resp.Body.Close()
	require.Equal(t, http.StatusOK, resp.StatusCode)

	var sb strings.Builder
	_, err = io.Copy(&sb, resp.Body)
	require.NoError(t, err)
	assert.Contains(t, sb.String(), `quizbank_draws_total{result="served",subject="math"} 1`)
}
