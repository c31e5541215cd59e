package granite

import (
	"context"
	"encoding/json"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/finbuddy/finance-advisor/internal/domain/advisor"
)

func testLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

func newTagsServer(t *testing.T, models ...string) *httptest.Server {
	t.Helper()
	return httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		require.Equal(t, "/api/tags", r.URL.Path)
		var tags tagsResponse
		for _, m := range models {
			tags.Models = append(tags.Models, struct {
				Name string `json:"name"`
			}{Name: m})
		}
		require.NoError(t, json.NewEncoder(w).Encode(tags))
	}))
}

func TestInitializeAcceptsKnownModel(t *testing.T) {
	server := newTagsServer(t, "granite3.3:2b")
	defer server.Close()

	client := NewClient(Config{BaseURL: server.URL, Model: "granite3.3:2b"}, testLogger())
	require.True(t, client.Initialize(context.Background()))
}

func TestInitializeMatchesModelPrefix(t *testing.T) {
	server := newTagsServer(t, "granite3.3:2b-instruct-q4")
	defer server.Close()

	client := NewClient(Config{BaseURL: server.URL, Model: "granite3.3:2b"}, testLogger())
	require.True(t, client.Initialize(context.Background()))
}

func TestInitializeRejectsMissingModel(t *testing.T) {
	server := newTagsServer(t, "llama3:8b")
	defer server.Close()

	client := NewClient(Config{BaseURL: server.URL, Model: "granite3.3:2b"}, testLogger())
	require.False(t, client.Initialize(context.Background()))
}

func TestInitializeServerDown(t *testing.T) {
	server := newTagsServer(t)
	server.Close()

	client := NewClient(Config{BaseURL: server.URL}, testLogger())
	require.False(t, client.Initialize(context.Background()))
	require.False(t, client.Ping(context.Background()))
}

func TestRespondReturnsTrimmedText(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		require.Equal(t, "/api/generate", r.URL.Path)

		var req generateRequest
		require.NoError(t, json.NewDecoder(r.Body).Decode(&req))
		require.Equal(t, "granite3.3:2b", req.Model)
		require.False(t, req.Stream)
		require.Contains(t, req.Prompt, "how do i budget")
		require.Contains(t, req.Prompt, "$4000")

		require.NoError(t, json.NewEncoder(w).Encode(generateResponse{Response: "  start with the 50/30/20 rule  ", Done: true}))
	}))
	defer server.Close()

	client := NewClient(Config{BaseURL: server.URL}, testLogger())
	reply, err := client.Respond(context.Background(), "how do i budget", advisor.UserContext{Income: 4000})
	require.NoError(t, err)
	require.Equal(t, "start with the 50/30/20 rule", reply)
}

func TestRespondRejectsEmptyCompletion(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		require.NoError(t, json.NewEncoder(w).Encode(generateResponse{Response: "  ", Done: true}))
	}))
	defer server.Close()

	client := NewClient(Config{BaseURL: server.URL}, testLogger())
	_, err := client.Respond(context.Background(), "hello", advisor.UserContext{})
	require.Error(t, err)
}

func TestRespondSurfacesServerErrors(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "model overloaded", http.StatusInternalServerError)
	}))
	defer server.Close()

	client := NewClient(Config{BaseURL: server.URL}, testLogger())
	_, err := client.Respond(context.Background(), "hello", advisor.UserContext{})
	require.Error(t, err)
	require.Contains(t, err.Error(), "status=500")
}
