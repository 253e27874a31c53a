package demosession

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"funnelzip-demo/internal/common/logger"
	"funnelzip-demo/internal/demo/fixtures"
	"funnelzip-demo/internal/demo/sequencer"
	"funnelzip-demo/internal/models"

	"github.com/go-chi/chi/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// ==========================
// Helpers
// ==========================

func newTestServer(t *testing.T, mutate func(*Config)) (*Handler, *httptest.Server) {
	t.Helper()
	cfg := DefaultConfig()
	cfg.TickInterval = time.Millisecond
	if mutate != nil {
		mutate(cfg)
	}
	h := NewHandler(cfg, fixtures.Default(), nil, logger.NewTestLogger(t))
	r := chi.NewRouter()
	h.Register(r)
	srv := httptest.NewServer(r)
	t.Cleanup(func() {
		srv.Close()
		h.Store().CloseAll()
	})
	return h, srv
}

func do(t *testing.T, method, url string, body interface{}) *http.Response {
	t.Helper()
	var buf bytes.Buffer
	if body != nil {
		require.NoError(t, json.NewEncoder(&buf).Encode(body))
	}
	req, err := http.NewRequest(method, url, &buf)
	require.NoError(t, err)
	req.Header.Set("Content-Type", "application/json")
	resp, err := http.DefaultClient.Do(req)
	require.NoError(t, err)
	return resp
}

func decode(t *testing.T, resp *http.Response, v interface{}) {
	t.Helper()
	defer resp.Body.Close()
	require.NoError(t, json.NewDecoder(resp.Body).Decode(v))
}

func errorCode(t *testing.T, resp *http.Response) string {
	t.Helper()
	var body struct {
		Error struct {
			Code string `json:"code"`
		} `json:"error"`
	}
	decode(t, resp, &body)
	return body.Error.Code
}

func createSession(t *testing.T, base string) SessionOutput {
	t.Helper()
	resp := do(t, http.MethodPost, base+Route, nil)
	require.Equal(t, http.StatusCreated, resp.StatusCode)
	var out SessionOutput
	decode(t, resp, &out)
	require.NotEmpty(t, out.SessionID)
	return out
}

func sessionURL(base, id string) string {
	return base + Route + "/" + id
}

func waitForResults(t *testing.T, base, id string) SessionOutput {
	t.Helper()
	resp := do(t, http.MethodPost, sessionURL(base, id)+"/advance", nil)
	var adv AdvanceOutput
	decode(t, resp, &adv)
	require.True(t, adv.Advanced)
	require.Equal(t, models.StepScanning, adv.Step)

	require.Eventually(t, func() bool {
		var out SessionOutput
		decode(t, do(t, http.MethodGet, sessionURL(base, id), nil), &out)
		return out.Progress.Complete
	}, 5*time.Second, 10*time.Millisecond)

	resp = do(t, http.MethodPost, sessionURL(base, id)+"/advance", nil)
	decode(t, resp, &adv)
	require.True(t, adv.Advanced)
	require.Equal(t, models.StepResults, adv.Step)
	return adv.SessionOutput
}

// ==========================
// Session lifecycle
// ==========================

func TestCreate_StartsOnInputWithFirstSample(t *testing.T) {
	_, srv := newTestServer(t, nil)

	out := createSession(t, srv.URL)
	assert.Equal(t, models.StepInput, out.Step)
	assert.Equal(t, 1, out.StepNumber)
	assert.Equal(t, 0, out.Selection.SampleIndex)
	assert.True(t, out.SelectionValid)
}

func TestCreate_SessionLimit(t *testing.T) {
	_, srv := newTestServer(t, func(c *Config) { c.MaxSessions = 1 })

	createSession(t, srv.URL)
	resp := do(t, http.MethodPost, srv.URL+Route, nil)
	assert.Equal(t, http.StatusTooManyRequests, resp.StatusCode)
	assert.Equal(t, "SESSION_LIMIT_REACHED", errorCode(t, resp))
}

func TestGet_UnknownSession(t *testing.T) {
	_, srv := newTestServer(t, nil)

	resp := do(t, http.MethodGet, sessionURL(srv.URL, "missing"), nil)
	assert.Equal(t, http.StatusNotFound, resp.StatusCode)
	assert.Equal(t, "SESSION_NOT_FOUND", errorCode(t, resp))
}

func TestDelete_ClosesSession(t *testing.T) {
	h, srv := newTestServer(t, nil)
	out := createSession(t, srv.URL)

	resp := do(t, http.MethodDelete, sessionURL(srv.URL, out.SessionID), nil)
	resp.Body.Close()
	assert.Equal(t, http.StatusNoContent, resp.StatusCode)
	assert.Equal(t, 0, h.Store().Len())

	resp = do(t, http.MethodGet, sessionURL(srv.URL, out.SessionID), nil)
	resp.Body.Close()
	assert.Equal(t, http.StatusNotFound, resp.StatusCode)
}

func TestStore_SweepExpiresIdleSessions(t *testing.T) {
	h, srv := newTestServer(t, nil)
	createSession(t, srv.URL)

	now := time.Now()
	h.store.now = func() time.Time { return now.Add(time.Hour) }

	assert.Equal(t, 1, h.Store().Sweep())
	assert.Equal(t, 0, h.Store().Len())
}

// ==========================
// Input step
// ==========================

func TestSelection_SampleOnlyAppliesDefaults(t *testing.T) {
	_, srv := newTestServer(t, nil)
	out := createSession(t, srv.URL)

	idx := 1
	resp := do(t, http.MethodPut, sessionURL(srv.URL, out.SessionID)+"/selection", SelectionInput{SampleIndex: &idx})
	require.Equal(t, http.StatusOK, resp.StatusCode)
	decode(t, resp, &out)

	assert.Equal(t, 1, out.Selection.SampleIndex)
	assert.Equal(t, []string{"google", "amazon"}, out.Selection.PlatformIDs)
}

func TestSelection_ExplicitPlatforms(t *testing.T) {
	_, srv := newTestServer(t, nil)
	out := createSession(t, srv.URL)

	idx := 0
	resp := do(t, http.MethodPut, sessionURL(srv.URL, out.SessionID)+"/selection",
		SelectionInput{SampleIndex: &idx, PlatformIDs: []string{"ebay"}})
	require.Equal(t, http.StatusOK, resp.StatusCode)
	decode(t, resp, &out)
	assert.Equal(t, []string{"ebay"}, out.Selection.PlatformIDs)
}

func TestSelection_RepeatedPlatformsStoredOnce(t *testing.T) {
	_, srv := newTestServer(t, nil)
	out := createSession(t, srv.URL)
	base := sessionURL(srv.URL, out.SessionID)

	idx := 0
	resp := do(t, http.MethodPut, base+"/selection",
		SelectionInput{SampleIndex: &idx, PlatformIDs: []string{"google", "google", "amazon"}})
	require.Equal(t, http.StatusOK, resp.StatusCode)
	decode(t, resp, &out)
	assert.Equal(t, []string{"google", "amazon"}, out.Selection.PlatformIDs)

	decode(t, do(t, http.MethodPost, base+"/platforms/google/toggle", nil), &out)
	assert.Equal(t, []string{"amazon"}, out.Selection.PlatformIDs)
}

func TestSelection_Rejections(t *testing.T) {
	_, srv := newTestServer(t, nil)
	out := createSession(t, srv.URL)
	url := sessionURL(srv.URL, out.SessionID) + "/selection"
	bad := 9

	tests := []struct {
		name   string
		body   interface{}
		status int
	}{
		{"missing sample", map[string]interface{}{"platformIds": []string{"google"}}, http.StatusUnprocessableEntity},
		{"sample out of range", SelectionInput{SampleIndex: &bad}, http.StatusUnprocessableEntity},
		{"unknown field", map[string]interface{}{"sampleIndex": 0, "extra": true}, http.StatusBadRequest},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			resp := do(t, http.MethodPut, url, tt.body)
			resp.Body.Close()
			assert.Equal(t, tt.status, resp.StatusCode)
		})
	}
}

func TestTogglePlatform(t *testing.T) {
	_, srv := newTestServer(t, nil)
	out := createSession(t, srv.URL)
	url := sessionURL(srv.URL, out.SessionID) + "/platforms/tiktok/toggle"

	decode(t, do(t, http.MethodPost, url, nil), &out)
	assert.Contains(t, out.Selection.PlatformIDs, "tiktok")

	decode(t, do(t, http.MethodPost, url, nil), &out)
	assert.NotContains(t, out.Selection.PlatformIDs, "tiktok")

	resp := do(t, http.MethodPost, sessionURL(srv.URL, out.SessionID)+"/platforms/myspace/toggle", nil)
	resp.Body.Close()
	assert.Equal(t, http.StatusUnprocessableEntity, resp.StatusCode)
}

func TestAdvance_InvalidSelectionDoesNotMove(t *testing.T) {
	_, srv := newTestServer(t, nil)
	out := createSession(t, srv.URL)

	idx := 0
	resp := do(t, http.MethodPut, sessionURL(srv.URL, out.SessionID)+"/selection",
		SelectionInput{SampleIndex: &idx, PlatformIDs: []string{}})
	require.Equal(t, http.StatusOK, resp.StatusCode)
	decode(t, resp, &out)
	assert.False(t, out.SelectionValid)

	var adv AdvanceOutput
	decode(t, do(t, http.MethodPost, sessionURL(srv.URL, out.SessionID)+"/advance", nil), &adv)
	assert.False(t, adv.Advanced)
	assert.Equal(t, models.StepInput, adv.Step)
}

// ==========================
// Results step
// ==========================

func TestFullFlow_ScanResultsRestart(t *testing.T) {
	_, srv := newTestServer(t, nil)
	out := createSession(t, srv.URL)

	res := waitForResults(t, srv.URL, out.SessionID)
	assert.Equal(t, 3, res.StepNumber)
	assert.Equal(t, 100, res.Progress.Percent)

	decode(t, do(t, http.MethodPost, sessionURL(srv.URL, out.SessionID)+"/restart", nil), &out)
	assert.Equal(t, models.StepInput, out.Step)
	assert.Equal(t, 0, out.Progress.Percent)
	assert.Equal(t, models.NoSample, out.Selection.SampleIndex)
	assert.False(t, out.SelectionValid)
}

func TestToggleSection(t *testing.T) {
	_, srv := newTestServer(t, nil)
	out := createSession(t, srv.URL)
	url := sessionURL(srv.URL, out.SessionID) + "/sections/" + sequencer.SectionCriticalIssues + "/toggle"

	resp := do(t, http.MethodPost, url, nil)
	resp.Body.Close()
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)

	waitForResults(t, srv.URL, out.SessionID)

	var tog ToggleOutput
	decode(t, do(t, http.MethodPost, url, nil), &tog)
	assert.True(t, tog.Expanded)
	assert.Equal(t, []string{sequencer.SectionCriticalIssues}, tog.Results.ExpandedSections)

	decode(t, do(t, http.MethodPost, url, nil), &tog)
	assert.False(t, tog.Expanded)

	resp = do(t, http.MethodPost, sessionURL(srv.URL, out.SessionID)+"/sections/pricing/toggle", nil)
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
	assert.Equal(t, "UNKNOWN_SECTION", errorCode(t, resp))
}

func TestDemoRequest_OpenSubmitRedirects(t *testing.T) {
	_, srv := newTestServer(t, nil)
	out := createSession(t, srv.URL)
	waitForResults(t, srv.URL, out.SessionID)
	url := sessionURL(srv.URL, out.SessionID) + "/demo-request"

	var red RedirectOutput
	decode(t, do(t, http.MethodPost, url, DemoRequestInput{Action: "open"}), &red)
	assert.True(t, red.Results.DemoRequestOpen)
	assert.Empty(t, red.Redirect)

	decode(t, do(t, http.MethodPost, url, DemoRequestInput{Action: "submit", Email: "a+b@brand.com"}), &red)
	assert.Equal(t, "/contact?email=a%2Bb%40brand.com", red.Redirect)
	assert.False(t, red.Results.DemoRequestOpen)
}

func TestDemoRequest_UnknownAction(t *testing.T) {
	_, srv := newTestServer(t, nil)
	out := createSession(t, srv.URL)

	resp := do(t, http.MethodPost, sessionURL(srv.URL, out.SessionID)+"/demo-request", DemoRequestInput{Action: "cancel"})
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
	assert.Equal(t, "INVALID_REQUEST", errorCode(t, resp))
}

func TestHome_ReturnsRedirect(t *testing.T) {
	_, srv := newTestServer(t, nil)
	out := createSession(t, srv.URL)

	var red RedirectOutput
	decode(t, do(t, http.MethodPost, sessionURL(srv.URL, out.SessionID)+"/home", nil), &red)
	assert.Equal(t, "/", red.Redirect)
}
