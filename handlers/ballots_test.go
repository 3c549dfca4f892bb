package handlers

import (
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/TrustTheVote-Project/VTP-spring-demo/mockdata"
	"github.com/TrustTheVote-Project/VTP-spring-demo/models"
	"github.com/TrustTheVote-Project/VTP-spring-demo/testutil"
)

func TestCastBallotMockMode(t *testing.T) {
	handler := NewBallotHandler(testutil.NewMockGateway(t))

	ballot := testutil.CastTestBallot()
	req := testutil.MakeRequest("POST", "/sessions/anything/cast-ballot", ballot, nil)
	req.SetPathValue("guid", "anything")
	w := httptest.NewRecorder()

	handler.CastBallot(w, req)

	testutil.AssertStatus(t, w, http.StatusCreated)

	var check models.BallotCheck
	testutil.AssertJSON(t, w, &check)
	if check.VoterIndex != mockdata.MockVoterIndex {
		t.Errorf("Expected fixture voter index %d, got %d", mockdata.MockVoterIndex, check.VoterIndex)
	}
	if len(check.Receipts) <= check.VoterIndex {
		t.Errorf("Fixture check has %d rows, index %d out of range", len(check.Receipts), check.VoterIndex)
	}
}

func TestBallotLifecycle(t *testing.T) {
	sessions := NewSessionHandler(testutil.NewLiveGateway(t))
	handler := &BallotHandler{gw: sessions.gw}

	guid := issueSession(t, sessions)

	// Cast
	req := testutil.MakeRequest("POST", "/sessions/"+guid+"/cast-ballot", testutil.CastTestBallot(), nil)
	req.SetPathValue("guid", guid)
	w := httptest.NewRecorder()

	handler.CastBallot(w, req)
	testutil.AssertStatus(t, w, http.StatusCreated)

	var check models.BallotCheck
	testutil.AssertJSON(t, w, &check)
	if check.VoterIndex < 1 || check.VoterIndex >= len(check.Receipts) {
		t.Fatalf("Voter index %d out of range for %d rows", check.VoterIndex, len(check.Receipts))
	}

	// Verify
	req = testutil.MakeRequest("POST", "/sessions/"+guid+"/verify-ballot-check", check, nil)
	req.SetPathValue("guid", guid)
	w = httptest.NewRecorder()

	handler.VerifyBallotCheck(w, req)
	testutil.AssertStatus(t, w, http.StatusOK)

	var verify models.VerifyBallotCheckResponse
	testutil.AssertJSON(t, w, &verify)
	if !strings.Contains(verify.VerifyLog, "verified") {
		t.Errorf("Expected verify log to report verification, got: %s", verify.VerifyLog)
	}

	// Tally
	req = testutil.MakeRequest("POST", "/sessions/"+guid+"/tally", models.TallyRequest{}, nil)
	req.SetPathValue("guid", guid)
	w = httptest.NewRecorder()

	handler.Tally(w, req)
	testutil.AssertStatus(t, w, http.StatusOK)

	var tally models.TallyContestsResponse
	testutil.AssertJSON(t, w, &tally)
	if !strings.Contains(tally.TallyLog, "Winner") {
		t.Errorf("Expected tally log to name winners, got: %s", tally.TallyLog)
	}
}

func TestCastBallotTwiceConflicts(t *testing.T) {
	sessions := NewSessionHandler(testutil.NewLiveGateway(t))
	handler := &BallotHandler{gw: sessions.gw}

	guid := issueSession(t, sessions)

	cast := func() *httptest.ResponseRecorder {
		req := testutil.MakeRequest("POST", "/sessions/"+guid+"/cast-ballot", testutil.CastTestBallot(), nil)
		req.SetPathValue("guid", guid)
		w := httptest.NewRecorder()
		handler.CastBallot(w, req)
		return w
	}

	testutil.AssertStatus(t, cast(), http.StatusCreated)
	testutil.AssertStatus(t, cast(), http.StatusConflict)
}

func TestShiftedVoterIndexRejected(t *testing.T) {
	sessions := NewSessionHandler(testutil.NewLiveGateway(t))
	handler := &BallotHandler{gw: sessions.gw}

	guid := issueSession(t, sessions)

	req := testutil.MakeRequest("POST", "/sessions/"+guid+"/cast-ballot", testutil.CastTestBallot(), nil)
	req.SetPathValue("guid", guid)
	w := httptest.NewRecorder()

	handler.CastBallot(w, req)
	testutil.AssertStatus(t, w, http.StatusCreated)

	var check models.BallotCheck
	testutil.AssertJSON(t, w, &check)

	// An off-by-one index points at a pre-cast row, not the voter's.
	shifted := check
	if shifted.VoterIndex > 1 {
		shifted.VoterIndex--
	} else {
		shifted.VoterIndex++
	}

	req = testutil.MakeRequest("POST", "/sessions/"+guid+"/verify-ballot-check", shifted, nil)
	req.SetPathValue("guid", guid)
	w = httptest.NewRecorder()

	handler.VerifyBallotCheck(w, req)
	testutil.AssertStatus(t, w, http.StatusBadRequest)
}

func TestVerifyAndTallyMockMode(t *testing.T) {
	handler := NewBallotHandler(testutil.NewMockGateway(t))

	t.Run("verify returns the fixture log", func(t *testing.T) {
		// In fixture mode the submitted check is ignored entirely.
		req := testutil.MakeRequest("POST", "/sessions/x/verify-ballot-check", models.BallotCheck{}, nil)
		req.SetPathValue("guid", "x")
		w := httptest.NewRecorder()

		handler.VerifyBallotCheck(w, req)
		testutil.AssertStatus(t, w, http.StatusOK)

		var resp models.VerifyBallotCheckResponse
		testutil.AssertJSON(t, w, &resp)
		if resp.VerifyLog != mockdata.MockVerifyBallotReceiptLog {
			t.Errorf("Expected %q, got %q", mockdata.MockVerifyBallotReceiptLog, resp.VerifyLog)
		}
	})

	t.Run("tally returns the fixture log", func(t *testing.T) {
		req := testutil.MakeRequest("POST", "/sessions/x/tally", models.TallyRequest{}, nil)
		req.SetPathValue("guid", "x")
		w := httptest.NewRecorder()

		handler.Tally(w, req)
		testutil.AssertStatus(t, w, http.StatusOK)

		var resp models.TallyContestsResponse
		testutil.AssertJSON(t, w, &resp)
		if resp.TallyLog != mockdata.MockTallyContestsLog {
			t.Errorf("Expected %q, got %q", mockdata.MockTallyContestsLog, resp.TallyLog)
		}
	})
}

func TestBallotEndpointsRejectBadJSON(t *testing.T) {
	handler := NewBallotHandler(testutil.NewMockGateway(t))

	endpoints := []struct {
		name  string
		serve func(w http.ResponseWriter, r *http.Request)
	}{
		{"cast-ballot", handler.CastBallot},
		{"verify-ballot-check", handler.VerifyBallotCheck},
		{"tally", handler.Tally},
	}

	for _, ep := range endpoints {
		t.Run(ep.name, func(t *testing.T) {
			req := httptest.NewRequest("POST", "/sessions/x/"+ep.name, strings.NewReader("{not json"))
			req.SetPathValue("guid", "x")
			req.Header.Set("Content-Type", "application/json")
			w := httptest.NewRecorder()

			ep.serve(w, req)
			testutil.AssertStatus(t, w, http.StatusBadRequest)
		})
	}
}
