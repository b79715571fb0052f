// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package handlers

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/danielhkuo/quickly-vote/db"
	"github.com/danielhkuo/quickly-vote/election"
	"github.com/danielhkuo/quickly-vote/models"
	"github.com/danielhkuo/quickly-vote/testutil"
)

func TestGetOptions(t *testing.T) {
	e := testutil.NewTestElection(t, "Alpha", "Beta", "Gamma", "Delta")
	handler := NewResultsHandler(e, nil)

	req := httptest.NewRequest("GET", "/options", nil)
	w := httptest.NewRecorder()
	handler.GetOptions(w, req)

	require.Equal(t, http.StatusOK, w.Code)

	var resp models.OptionsResponse
	require.NoError(t, json.NewDecoder(w.Body).Decode(&resp))
	assert.Equal(t, []string{"Alpha", "Beta", "Gamma", "Delta"}, resp.Options)
}

func TestGetResults_Open(t *testing.T) {
	e := testutil.NewTestElection(t)
	handler := NewResultsHandler(e, nil)

	_, err := e.RecordVote("alice", 0)
	require.NoError(t, err)
	_, err = e.RecordVote("bob", 0)
	require.NoError(t, err)
	_, err = e.RecordVote("carol", 2)
	require.NoError(t, err)
	require.NoError(t, e.RegisterVoterIfAbsent("dave"))

	req := httptest.NewRequest("GET", "/results", nil)
	w := httptest.NewRecorder()
	handler.GetResults(w, req)

	require.Equal(t, http.StatusOK, w.Code)

	var resp models.ResultsResponse
	require.NoError(t, json.NewDecoder(w.Body).Decode(&resp))
	assert.Equal(t, models.StatusOpen, resp.Status)
	assert.Equal(t, 3, resp.TotalVotes)
	assert.Equal(t, 4, resp.RegisteredVoters)
	assert.Nil(t, resp.SnapshotID)
	require.Len(t, resp.Options, 3)
	assert.Equal(t, "Red", resp.Options[0].Name)
	assert.Equal(t, 2, resp.Options[0].Votes)
	assert.InDelta(t, 66.67, resp.Options[0].Percentage, 0.01)
	assert.Equal(t, 0.0, resp.Options[1].Percentage)
}

func TestGetResults_Closed(t *testing.T) {
	e := testutil.NewTestElection(t)
	handler := NewResultsHandler(e, nil)

	_, err := e.RecordVote("alice", 1)
	require.NoError(t, err)
	_, snap, err := e.Close(context.Background())
	require.NoError(t, err)

	req := httptest.NewRequest("GET", "/results", nil)
	w := httptest.NewRecorder()
	handler.GetResults(w, req)

	var resp models.ResultsResponse
	require.NoError(t, json.NewDecoder(w.Body).Decode(&resp))
	assert.Equal(t, models.StatusClosed, resp.Status)
	require.NotNil(t, resp.SnapshotID)
	assert.Equal(t, snap.ID, *resp.SnapshotID)
	assert.Equal(t, 1, resp.TotalVotes)
	assert.Equal(t, 100.0, resp.Options[1].Percentage)
}

func TestGetSnapshot(t *testing.T) {
	store := db.NewSnapshotStore(testutil.SetupTestDB(t))
	e := testutil.NewTestElectionWithConfig(t, election.Config{Publishers: []election.Publisher{store}})

	mux := http.NewServeMux()
	handler := NewResultsHandler(e, store)
	mux.HandleFunc("GET /snapshots/{id}", handler.GetSnapshot)

	_, err := e.RecordVote("alice", 2)
	require.NoError(t, err)
	_, snap, err := e.Close(context.Background())
	require.NoError(t, err)

	t.Run("found", func(t *testing.T) {
		req := httptest.NewRequest("GET", "/snapshots/"+snap.ID, nil)
		w := httptest.NewRecorder()
		mux.ServeHTTP(w, req)

		require.Equal(t, http.StatusOK, w.Code)

		var got models.ResultSnapshot
		require.NoError(t, json.NewDecoder(w.Body).Decode(&got))
		assert.Equal(t, snap.ID, got.ID)
		assert.Equal(t, 1, got.TotalVotes)
		assert.Equal(t, "Blue", got.Options[2].Name)
		assert.Equal(t, 1, got.Options[2].Votes)
	})

	t.Run("not found", func(t *testing.T) {
		req := httptest.NewRequest("GET", "/snapshots/nope", nil)
		w := httptest.NewRecorder()
		mux.ServeHTTP(w, req)

		assert.Equal(t, http.StatusNotFound, w.Code)
	})
}

func TestGetSnapshot_NoStore(t *testing.T) {
	e := testutil.NewTestElection(t)

	mux := http.NewServeMux()
	mux.HandleFunc("GET /snapshots/{id}", NewResultsHandler(e, nil).GetSnapshot)

	req := httptest.NewRequest("GET", "/snapshots/anything", nil)
	w := httptest.NewRecorder()
	mux.ServeHTTP(w, req)
	assert.Equal(t, http.StatusNotFound, w.Code)

	_, snap, err := e.Close(context.Background())
	require.NoError(t, err)

	req = httptest.NewRequest("GET", "/snapshots/"+snap.ID, nil)
	w = httptest.NewRecorder()
	mux.ServeHTTP(w, req)
	assert.Equal(t, http.StatusOK, w.Code)
}
