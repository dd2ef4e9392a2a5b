package rest

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"smashduel/internal/domain"
)

func TestRandomQuestions(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/api/questions/smash/random", r.URL.Path)
		assert.Equal(t, "2", r.URL.Query().Get("count"))
		assert.Equal(t, "SMASH_B", r.URL.Query().Get("roundType"))
		assert.Equal(t, "Bearer tok", r.Header.Get("Authorization"))

		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(`{
			"success": true,
			"data": [
				{"id": "q1", "text": "Capitale de la France ?", "answer": "Paris", "difficulty": "EASY"},
				{"id": "q2", "text": "Annee de la Revolution ?", "answer": "1789", "difficulty": "MEDIUM"}
			]
		}`))
	}))
	defer srv.Close()

	client := New(srv.URL, "tok", zerolog.Nop())
	pool, err := client.RandomQuestions(context.Background(), domain.VariantSmashB, 2)
	require.NoError(t, err)

	require.Len(t, pool, 2)
	assert.Equal(t, "q1", pool[0].ID)
	assert.Equal(t, "Paris", pool[0].ExpectedAnswer)
	assert.Equal(t, domain.DifficultyMedium, pool[1].Difficulty)
}

func TestRandomQuestionsEmptyResult(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`{"success": true, "data": []}`))
	}))
	defer srv.Close()

	client := New(srv.URL, "", zerolog.Nop())
	pool, err := client.RandomQuestions(context.Background(), domain.VariantSmashA, 10)
	require.NoError(t, err)
	assert.Empty(t, pool)
}

func TestAPIErrorIsSurfaced(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusNotFound)
		w.Write([]byte(`{"success": false, "error": {"code": "MATCH_NOT_FOUND", "message": "no such match"}}`))
	}))
	defer srv.Close()

	client := New(srv.URL, "", zerolog.Nop())
	_, err := client.Match(context.Background(), "nope")
	require.Error(t, err)

	code, ok := IsAPIError(err)
	require.True(t, ok, "expected an api error, got %v", err)
	assert.Equal(t, "MATCH_NOT_FOUND", code)
	assert.Contains(t, err.Error(), "no such match")
}

func TestNon2xxWithoutErrorBody(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusInternalServerError)
		w.Write([]byte(`{"success": false}`))
	}))
	defer srv.Close()

	client := New(srv.URL, "", zerolog.Nop())
	_, err := client.RandomQuestions(context.Background(), domain.VariantSmashB, 10)
	require.Error(t, err)
	_, ok := IsAPIError(err)
	assert.False(t, ok)
}

func TestMatch(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/api/matches/m1", r.URL.Path)
		w.Write([]byte(`{
			"success": true,
			"data": {"id": "m1", "code": "ABCD", "status": "IN_PROGRESS", "scoreTeamA": 10, "scoreTeamB": 5, "currentRoundType": "SMASH_B"}
		}`))
	}))
	defer srv.Close()

	client := New(srv.URL, "", zerolog.Nop())
	info, err := client.Match(context.Background(), "m1")
	require.NoError(t, err)

	assert.Equal(t, "ABCD", info.Code)
	assert.Equal(t, 10, info.ScoreTeamA)
	assert.Equal(t, 5, info.ScoreTeamB)
	assert.Equal(t, "SMASH_B", info.CurrentRoundType)
}

func TestBaseURLTrailingSlash(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/api/questions/smash/random", r.URL.Path)
		w.Write([]byte(`{"success": true, "data": []}`))
	}))
	defer srv.Close()

	client := New(srv.URL+"/", "", zerolog.Nop())
	_, err := client.RandomQuestions(context.Background(), domain.VariantSmashA, 1)
	assert.NoError(t, err)
}
