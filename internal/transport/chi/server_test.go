package chi

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"go.uber.org/zap"

	"github.com/kailas-cloud/regexboard/internal/db/memory"
	"github.com/kailas-cloud/regexboard/internal/domain"
	docrepo "github.com/kailas-cloud/regexboard/internal/repository/document"
	patrepo "github.com/kailas-cloud/regexboard/internal/repository/pattern"
	"github.com/kailas-cloud/regexboard/internal/usecase/approval"
	dashboarduc "github.com/kailas-cloud/regexboard/internal/usecase/dashboard"
	docuc "github.com/kailas-cloud/regexboard/internal/usecase/document"
	healthuc "github.com/kailas-cloud/regexboard/internal/usecase/health"
	"github.com/kailas-cloud/regexboard/internal/usecase/matching"
	patuc "github.com/kailas-cloud/regexboard/internal/usecase/pattern"
)

type fixedFiller string

func (f fixedFiller) Sentences(int) string { return string(f) }

type testEnv struct {
	handler http.Handler
	store   *memory.Store
}

func newTestEnv(t *testing.T, text string, apiKeys ...string) *testEnv {
	t.Helper()
	store := memory.NewStore()

	patterns := patuc.New(patrepo.New(store, ""))
	docs := docuc.New(docrepo.New(store, ""), fixedFiller(text))
	engine := matching.New(matching.DefaultTimeout, zap.NewNop())
	dash := dashboarduc.New(patterns, docs, engine, approval.New(docs))
	srv := NewServer(dash, patterns, healthuc.New(store), zap.NewNop())

	return &testEnv{handler: NewRouter(srv, zap.NewNop(), apiKeys), store: store}
}

func (e *testEnv) do(t *testing.T, method, path string, body any) *httptest.ResponseRecorder {
	t.Helper()
	var buf bytes.Buffer
	if body != nil {
		if s, ok := body.(string); ok {
			buf.WriteString(s)
		} else if err := json.NewEncoder(&buf).Encode(body); err != nil {
			t.Fatalf("encode: %v", err)
		}
	}
	req := httptest.NewRequest(method, path, &buf)
	rr := httptest.NewRecorder()
	e.handler.ServeHTTP(rr, req)
	return rr
}

func decode[T any](t *testing.T, rr *httptest.ResponseRecorder) T {
	t.Helper()
	var v T
	if err := json.NewDecoder(rr.Body).Decode(&v); err != nil {
		t.Fatalf("decode: %v (body %q)", err, rr.Body.String())
	}
	return v
}

func TestCreatePattern_201(t *testing.T) {
	env := newTestEnv(t, "hello world hello")

	rr := env.do(t, http.MethodPost, "/api/v1/patterns", PatternRequest{Regex: "/hello/"})
	if rr.Code != http.StatusCreated {
		t.Fatalf("status: got %d, body %s", rr.Code, rr.Body.String())
	}
	if ct := rr.Header().Get("Content-Type"); ct != "application/json" {
		t.Errorf("content type: %q", ct)
	}
	st := decode[StateResponse](t, rr)
	if len(st.Patterns) != 1 || st.Patterns[0].Regex != "/hello/" {
		t.Fatalf("patterns: %+v", st.Patterns)
	}
	if len(st.Document.Matches) != 1 || st.Document.Matches[0].MatchedText != "hello" {
		t.Errorf("matches: %+v", st.Document.Matches)
	}
	if st.Document.Text != "hello world hello" {
		t.Errorf("text: %q", st.Document.Text)
	}
}

func TestCreatePattern_Invalid400(t *testing.T) {
	env := newTestEnv(t, "x")

	rr := env.do(t, http.MethodPost, "/api/v1/patterns", PatternRequest{Regex: "/invalid"})
	if rr.Code != http.StatusBadRequest {
		t.Fatalf("status: got %d", rr.Code)
	}
	body := decode[ErrorResponse](t, rr)
	if body.Code != ErrorCodeValidationFailed || body.Message != domain.InvalidPatternMessage {
		t.Errorf("unexpected error body: %+v", body)
	}
}

func TestCreatePattern_BadBody(t *testing.T) {
	env := newTestEnv(t, "x")

	rr := env.do(t, http.MethodPost, "/api/v1/patterns", "{not json")
	if rr.Code != http.StatusBadRequest {
		t.Fatalf("status: got %d", rr.Code)
	}
	if body := decode[ErrorResponse](t, rr); body.Code != ErrorCodeBadRequest {
		t.Errorf("code: %q", body.Code)
	}
}

func TestUpdatePattern(t *testing.T) {
	env := newTestEnv(t, "hello world")
	created := decode[StateResponse](t, env.do(t, http.MethodPost, "/api/v1/patterns", PatternRequest{Regex: "/hello/"}))
	id := created.Patterns[0].ID

	rr := env.do(t, http.MethodPut, "/api/v1/patterns/"+id, PatternRequest{Regex: "/world/"})
	if rr.Code != http.StatusOK {
		t.Fatalf("status: got %d, body %s", rr.Code, rr.Body.String())
	}
	st := decode[StateResponse](t, rr)
	if st.Patterns[0].ID != id || st.Patterns[0].Regex != "/world/" {
		t.Errorf("patterns: %+v", st.Patterns)
	}
	if len(st.Document.Matches) != 1 || st.Document.Matches[0].MatchedText != "world" {
		t.Errorf("matches: %+v", st.Document.Matches)
	}
}

func TestUpdatePattern_NotFound404(t *testing.T) {
	env := newTestEnv(t, "x")

	rr := env.do(t, http.MethodPut, "/api/v1/patterns/missing", PatternRequest{Regex: "/x/"})
	if rr.Code != http.StatusNotFound {
		t.Fatalf("status: got %d", rr.Code)
	}
	if body := decode[ErrorResponse](t, rr); body.Code != ErrorCodePatternNotFound {
		t.Errorf("code: %q", body.Code)
	}
}

func TestDeletePattern(t *testing.T) {
	env := newTestEnv(t, "hello")
	created := decode[StateResponse](t, env.do(t, http.MethodPost, "/api/v1/patterns", PatternRequest{Regex: "/hello/"}))

	rr := env.do(t, http.MethodDelete, "/api/v1/patterns/"+created.Patterns[0].ID, nil)
	if rr.Code != http.StatusOK {
		t.Fatalf("status: got %d", rr.Code)
	}
	st := decode[StateResponse](t, rr)
	if len(st.Patterns) != 0 || len(st.Document.Matches) != 0 {
		t.Errorf("expected empty state, got %+v", st)
	}

	if rr := env.do(t, http.MethodDelete, "/api/v1/patterns/unknown", nil); rr.Code != http.StatusOK {
		t.Errorf("unknown id: got %d, want 200", rr.Code)
	}
}

func TestApproveAndView(t *testing.T) {
	env := newTestEnv(t, "hello world")
	created := decode[StateResponse](t, env.do(t, http.MethodPost, "/api/v1/patterns", PatternRequest{Regex: "/hello|world/"}))
	id := created.Patterns[0].ID

	rr := env.do(t, http.MethodPost, "/api/v1/matches/approve", ApproveRequest{PatternID: id, MatchedText: "world"})
	if rr.Code != http.StatusOK {
		t.Fatalf("approve: got %d", rr.Code)
	}
	list := decode[MatchListResponse](t, rr)
	if len(list.Items) != 2 || list.Items[0].Approved || !list.Items[1].Approved {
		t.Errorf("approve result: %+v", list.Items)
	}

	rr = env.do(t, http.MethodGet, "/api/v1/view?mode=approval&pattern="+id, nil)
	if rr.Code != http.StatusOK {
		t.Fatalf("view: got %d", rr.Code)
	}
	v := decode[ViewResponse](t, rr)
	if v.Mode != "approval" || v.Selected == nil || v.Selected.ID != id {
		t.Fatalf("view: %+v", v)
	}
	if v.Counts.Pending != 1 || v.Counts.Approved != 1 {
		t.Errorf("counts: %+v", v.Counts)
	}
}

func TestApprove_UnknownIsSilent(t *testing.T) {
	env := newTestEnv(t, "hello")
	env.do(t, http.MethodPost, "/api/v1/patterns", PatternRequest{Regex: "/hello/"})

	rr := env.do(t, http.MethodPost, "/api/v1/matches/approve", ApproveRequest{PatternID: "nope", MatchedText: "hello"})
	if rr.Code != http.StatusOK {
		t.Fatalf("status: got %d", rr.Code)
	}
	if list := decode[MatchListResponse](t, rr); len(list.Items) != 1 || list.Items[0].Approved {
		t.Errorf("unexpected matches: %+v", list.Items)
	}
}

func TestView_DefaultAndInvalidMode(t *testing.T) {
	env := newTestEnv(t, "x")

	rr := env.do(t, http.MethodGet, "/api/v1/view", nil)
	if rr.Code != http.StatusOK {
		t.Fatalf("status: got %d", rr.Code)
	}
	if v := decode[ViewResponse](t, rr); v.Mode != "approval" {
		t.Errorf("default mode: %q", v.Mode)
	}

	rr = env.do(t, http.MethodGet, "/api/v1/view?mode=review", nil)
	if rr.Code != http.StatusBadRequest {
		t.Fatalf("status: got %d", rr.Code)
	}
	if body := decode[ErrorResponse](t, rr); body.Code != ErrorCodeInvalidMode {
		t.Errorf("code: %q", body.Code)
	}
}

func TestListMatches_FilterByPattern(t *testing.T) {
	env := newTestEnv(t, "hello world")
	env.do(t, http.MethodPost, "/api/v1/patterns", PatternRequest{Regex: "/hello/"})
	st := decode[StateResponse](t, env.do(t, http.MethodPost, "/api/v1/patterns", PatternRequest{Regex: "/world/"}))

	all := decode[MatchListResponse](t, env.do(t, http.MethodGet, "/api/v1/matches", nil))
	if len(all.Items) != 2 {
		t.Errorf("expected 2 matches, got %d", len(all.Items))
	}

	one := decode[MatchListResponse](t, env.do(t, http.MethodGet, "/api/v1/matches?pattern="+st.Patterns[1].ID, nil))
	if len(one.Items) != 1 || one.Items[0].MatchedText != "world" {
		t.Errorf("filtered: %+v", one.Items)
	}
}

func TestRecompute(t *testing.T) {
	env := newTestEnv(t, "abc")
	if err := env.store.Set(t.Context(), "regex-store", []byte(`[{"id":"p1","regex":"/c/"}]`)); err != nil {
		t.Fatalf("set: %v", err)
	}

	rr := env.do(t, http.MethodPost, "/api/v1/matches/recompute", nil)
	if rr.Code != http.StatusOK {
		t.Fatalf("status: got %d", rr.Code)
	}
	if st := decode[StateResponse](t, rr); len(st.Document.Matches) != 1 {
		t.Errorf("matches: %+v", st.Document.Matches)
	}
}

func TestRegenerateDocument(t *testing.T) {
	env := newTestEnv(t, "abc abc")
	created := decode[StateResponse](t, env.do(t, http.MethodPost, "/api/v1/patterns", PatternRequest{Regex: "/abc/"}))
	id := created.Patterns[0].ID
	env.do(t, http.MethodPost, "/api/v1/matches/approve", ApproveRequest{PatternID: id, MatchedText: "abc"})

	rr := env.do(t, http.MethodPost, "/api/v1/document/regenerate", nil)
	if rr.Code != http.StatusOK {
		t.Fatalf("status: got %d", rr.Code)
	}
	st := decode[StateResponse](t, rr)
	if len(st.Document.Matches) != 1 || st.Document.Matches[0].Approved {
		t.Errorf("expected one unapproved match, got %+v", st.Document.Matches)
	}
}

func TestCorruptState500(t *testing.T) {
	env := newTestEnv(t, "x")
	if err := env.store.Set(t.Context(), "regex-store", []byte(`{broken`)); err != nil {
		t.Fatalf("set: %v", err)
	}

	rr := env.do(t, http.MethodGet, "/api/v1/patterns", nil)
	if rr.Code != http.StatusInternalServerError {
		t.Fatalf("status: got %d", rr.Code)
	}
	body := decode[ErrorResponse](t, rr)
	if body.Code != ErrorCodeInternalError || strings.Contains(body.Message, "broken") {
		t.Errorf("unexpected body: %+v", body)
	}
}

func TestHealth(t *testing.T) {
	env := newTestEnv(t, "x")

	rr := env.do(t, http.MethodGet, "/health", nil)
	if rr.Code != http.StatusOK {
		t.Fatalf("status: got %d", rr.Code)
	}
	if h := decode[HealthResponse](t, rr); h.Status != "ok" || h.Checks["store"] != "ok" {
		t.Errorf("health: %+v", h)
	}

	env.store.Close()
	if rr := env.do(t, http.MethodGet, "/health", nil); rr.Code != http.StatusServiceUnavailable {
		t.Errorf("closed store: got %d, want 503", rr.Code)
	}
}

func TestRouter_RequestIDAndAuth(t *testing.T) {
	env := newTestEnv(t, "x", "secret")

	rr := env.do(t, http.MethodGet, "/health", nil)
	if rr.Header().Get("X-Request-ID") == "" {
		t.Error("expected X-Request-ID header")
	}
	if rr := env.do(t, http.MethodGet, "/api/v1/patterns", nil); rr.Code != http.StatusUnauthorized {
		t.Errorf("expected 401, got %d", rr.Code)
	}
}

func TestRouter_NotFound(t *testing.T) {
	env := newTestEnv(t, "x")

	rr := env.do(t, http.MethodGet, "/api/v1/nothing", nil)
	if rr.Code != http.StatusNotFound {
		t.Fatalf("status: got %d", rr.Code)
	}
	decode[ErrorResponse](t, rr)
}

func TestJSONRecoverer(t *testing.T) {
	h := jsonRecoverer(zap.NewNop())(http.HandlerFunc(func(http.ResponseWriter, *http.Request) {
		panic("boom")
	}))
	rr := httptest.NewRecorder()
	h.ServeHTTP(rr, httptest.NewRequest(http.MethodGet, "/", http.NoBody))

	if rr.Code != http.StatusInternalServerError {
		t.Fatalf("status: got %d", rr.Code)
	}
	if body := decode[ErrorResponse](t, rr); body.Code != ErrorCodeInternalError {
		t.Errorf("code: %q", body.Code)
	}
}
