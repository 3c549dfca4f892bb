// Copyright (c) 2026 The VoteTrackerPlus Developers.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package testutil

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"testing"

	"github.com/TrustTheVote-Project/VTP-spring-demo/backend"
	"github.com/TrustTheVote-Project/VTP-spring-demo/cliparse"
	"github.com/TrustTheVote-Project/VTP-spring-demo/mockdata"
	"github.com/TrustTheVote-Project/VTP-spring-demo/models"
	"github.com/TrustTheVote-Project/VTP-spring-demo/ops"
	"github.com/TrustTheVote-Project/VTP-spring-demo/workspace"
)

// MockDataDir points at the checked-in mock fixtures relative to a
// package directory.
const MockDataDir = "../mock-data"

// GetTestConfig returns a standard test configuration. Pass mock=true
// for fixture mode, mock=false for a live gateway.
func GetTestConfig(mock bool) cliparse.Config {
	return cliparse.Config{
		Port:        cliparse.DefaultPort,
		MockMode:    mock,
		MockDataDir: MockDataDir,
		Verbosity:   cliparse.DefaultVerbosity,
		Address:     cliparse.DefaultAddress,
		OpTimeout:   cliparse.DefaultOpTimeout,
	}
}

// LoadMockData loads the checked-in mock fixtures.
func LoadMockData(t *testing.T) *mockdata.Provider {
	t.Helper()

	provider, err := mockdata.Load(MockDataDir)
	if err != nil {
		t.Fatalf("Failed to load mock fixtures: %v", err)
	}
	return provider
}

// NewMockGateway builds a gateway in fixture mode backed by the
// checked-in mock data.
func NewMockGateway(t *testing.T) *backend.Gateway {
	t.Helper()

	gw, err := backend.New(GetTestConfig(true), nil, nil, LoadMockData(t))
	if err != nil {
		t.Fatalf("Failed to build mock gateway: %v", err)
	}
	return gw
}

// WriteBallotDefinition writes a two-contest ballot definition into a
// temp directory and returns its path.
func WriteBallotDefinition(t *testing.T) string {
	t.Helper()

	blank := models.BlankBallot{
		BallotNode:   "GGO-alias",
		BallotSubdir: "GGOs/states/Massachusetts/GGOs/towns/Concord",
		Contests: []models.Contest{
			{
				UID:           "0000",
				Name:          "Board of Selectmen",
				Tally:         models.TallyPlurality,
				MaxSelections: 1,
				Choices: []models.Choice{
					{Name: "Alice Winthrop"},
					{Name: "Ben Oakes"},
				},
			},
			{
				UID:           "0001",
				Name:          "Town Moderator",
				Tally:         models.TallyPlurality,
				MaxSelections: 1,
				Choices: []models.Choice{
					{Name: "Clara Finch"},
					{Name: "Dev Patel"},
				},
			},
		},
	}

	raw, err := json.MarshalIndent(blank, "", "  ")
	if err != nil {
		t.Fatalf("Failed to encode ballot definition: %v", err)
	}

	path := filepath.Join(t.TempDir(), "ballot-definition.json")
	if err := os.WriteFile(path, raw, 0o644); err != nil {
		t.Fatalf("Failed to write ballot definition: %v", err)
	}
	return path
}

// NewLiveGateway builds a live-mode gateway over a fresh workspace
// root and a real invoker.
func NewLiveGateway(t *testing.T) *backend.Gateway {
	t.Helper()

	cfg := GetTestConfig(false)
	cfg.ElectionDataDir = t.TempDir()
	cfg.BallotDefinition = WriteBallotDefinition(t)

	dir, err := workspace.NewDirectory(cfg.ElectionDataDir)
	if err != nil {
		t.Fatalf("Failed to create workspace directory: %v", err)
	}

	gw, err := backend.New(cfg, dir, ops.NewInvoker(dir, cfg), nil)
	if err != nil {
		t.Fatalf("Failed to build live gateway: %v", err)
	}
	return gw
}

// CastTestBallot returns a cast ballot matching WriteBallotDefinition.
func CastTestBallot() models.CastBallot {
	return models.CastBallot{
		Contests: []models.CastContest{
			{UID: "0000", Name: "Board of Selectmen", Selection: []string{"Alice Winthrop"}},
			{UID: "0001", Name: "Town Moderator", Selection: []string{"Dev Patel"}},
		},
	}
}

// MakeRequest creates an HTTP test request
func MakeRequest(method, path string, body interface{}, headers map[string]string) *http.Request {
	var req *http.Request
	if body != nil {
		jsonBody, _ := json.Marshal(body)
		req = httptest.NewRequest(method, path, bytes.NewReader(jsonBody))
		req.Header.Set("Content-Type", "application/json")
	} else {
		req = httptest.NewRequest(method, path, nil)
	}

	for k, v := range headers {
		req.Header.Set(k, v)
	}

	return req
}

// AssertStatus checks that the response has the expected status code
func AssertStatus(t *testing.T, w *httptest.ResponseRecorder, expected int) {
	t.Helper()
	if w.Code != expected {
		t.Errorf("Expected status %d, got %d. Body: %s", expected, w.Code, w.Body.String())
	}
}

// AssertJSON decodes the response body into the provided struct
func AssertJSON(t *testing.T, w *httptest.ResponseRecorder, v interface{}) {
	t.Helper()
	if err := json.NewDecoder(w.Body).Decode(v); err != nil {
		t.Fatalf("Failed to decode JSON response: %v", err)
	}
}
