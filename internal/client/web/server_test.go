package web

import (
	"context"
	"net"
	"net/http"
	"net/http/httptest"
	"net/url"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/dmitrijs2005/cvboard/internal/client/ui"
	"github.com/dmitrijs2005/cvboard/internal/common"
	"github.com/dmitrijs2005/cvboard/internal/logging"
	"github.com/dmitrijs2005/cvboard/internal/models"
	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func init() {
	gin.SetMode(gin.TestMode)
}

type fakeRecords struct {
	mu      sync.Mutex
	records []models.Record
	addErr  error
	calls   int
}

func (f *fakeRecords) AddRecord(ctx context.Context, name string, q, s []string) (models.Record, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.calls++
	if f.addErr != nil {
		return models.Record{}, f.addErr
	}
	r := models.Record{Name: name, Qualifications: q, Skills: s, PostedAt: 1_700_000_000_000_000_000}
	f.records = append(f.records, r)
	return r, nil
}

func (f *fakeRecords) ListRecords(ctx context.Context) ([]models.Record, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.calls++
	return append([]models.Record(nil), f.records...), nil
}

func (f *fakeRecords) DeleteAllRecords(ctx context.Context) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.calls++
	f.records = nil
	return nil
}

func newTestServer(f *fakeRecords) *Server {
	return NewServer("127.0.0.1:0", f, logging.Nop(), ui.WithLocation(time.UTC))
}

func get(t *testing.T, s *Server) string {
	t.Helper()
	rec := httptest.NewRecorder()
	s.Handler().ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/", nil))
	require.Equal(t, http.StatusOK, rec.Code)
	return rec.Body.String()
}

func post(t *testing.T, s *Server, path string, form url.Values) string {
	t.Helper()
	req := httptest.NewRequest(http.MethodPost, path, strings.NewReader(form.Encode()))
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	rec := httptest.NewRecorder()
	s.Handler().ServeHTTP(rec, req)
	require.Equal(t, http.StatusOK, rec.Code)
	return rec.Body.String()
}

func TestPage_RendersElementIDs(t *testing.T) {
	body := get(t, newTestServer(&fakeRecords{}))

	for _, id := range []string{
		"job-form", "skillsDropdown", "skills", "title", "description",
		"addJobButton", "viewStudentsButton", "searchSkillButton",
		"skillDropdown", "deleteRecordsButton", "jobs", "students",
	} {
		assert.Contains(t, body, `id="`+id+`"`)
	}
	assert.Contains(t, body, `<option value="Machine Learning">`)
}

func TestPage_LoadListsRecordsAndSkills(t *testing.T) {
	f := &fakeRecords{records: []models.Record{
		{Name: "Ada", Qualifications: []string{"BSc"}, Skills: []string{"Rust", "Go"}, PostedAt: 1_700_000_000_000_000_000},
	}}
	body := get(t, newTestServer(f))

	assert.Contains(t, body, "<li>Ada - Degrees: BSc - Skills: Rust, Go (Posted at: 11/14/2023, 10:13:20 PM)</li>")
	search := body[strings.Index(body, `id="skillDropdown"`):]
	assert.Less(t, strings.Index(search, `value="Go"`), strings.Index(search, `value="Rust"`))
}

func TestPage_AddAndDuplicateAlert(t *testing.T) {
	f := &fakeRecords{}
	s := newTestServer(f)
	form := url.Values{"title": {"Ada"}, "description": {"BSc"}, "skills": {"Go"}}

	body := post(t, s, "/add", form)
	assert.Contains(t, body, "<li>Ada - Degrees: BSc - Skills: Go")
	assert.NotContains(t, body, `role="alert"`)

	f.addErr = common.ErrDuplicate
	body = post(t, s, "/add", form)
	assert.Contains(t, body, `<div role="alert">You have already added a CV.</div>`)

	body = get(t, s)
	assert.NotContains(t, body, `role="alert"`, "alerts are shown once")
}

func TestPage_ValidationFailureMakesNoCall(t *testing.T) {
	f := &fakeRecords{}
	s := newTestServer(f)

	body := post(t, s, "/add", url.Values{"title": {"Ada"}, "description": {""}, "skills": {"Go"}})
	assert.Zero(t, f.calls)
	assert.NotContains(t, body, `role="alert"`)
	assert.Contains(t, body, `value="Ada"`, "typed values survive")
}

func TestPage_PlainSubmitOnlyKeepsValues(t *testing.T) {
	f := &fakeRecords{}
	s := newTestServer(f)

	body := post(t, s, "/", url.Values{"title": {"Ada"}, "description": {"BSc"}, "skills": {"Go"}})
	assert.Zero(t, f.calls)
	assert.Contains(t, body, `id="title" name="title" value="Ada"`)
}

func TestPage_DefaultButtonIsPlainSubmit(t *testing.T) {
	f := &fakeRecords{}
	s := newTestServer(f)
	body := get(t, s)

	first := strings.Index(body, `type="submit"`)
	require.NotEqual(t, -1, first)
	tag := body[first:]
	tag = tag[:strings.Index(tag, ">")]
	assert.Contains(t, tag, `formaction="/"`, "Enter in a field must not trigger an action")
	assert.Less(t, first, strings.Index(body, `id="title"`))

	body = post(t, s, "/", url.Values{"title": {"Ada"}, "skills": {"Go"}, "preset": {"HTML"}})
	assert.Zero(t, f.calls)
	assert.Contains(t, body, `id="skills" name="skills" value="Go"`)
}

func TestPage_SelectSkillAppendsOnce(t *testing.T) {
	s := newTestServer(&fakeRecords{})

	body := post(t, s, "/select-skill", url.Values{"skills": {"Go"}, "preset": {"SQL"}})
	assert.Contains(t, body, `id="skills" name="skills" value="Go, SQL"`)

	body = post(t, s, "/select-skill", url.Values{"skills": {"Go, SQL"}, "preset": {"SQL"}})
	assert.Contains(t, body, `id="skills" name="skills" value="Go, SQL"`)
}

func TestPage_SearchViewDelete(t *testing.T) {
	f := &fakeRecords{records: []models.Record{
		{Name: "A", Skills: []string{"Rust"}},
		{Name: "B", Skills: []string{"Go"}},
	}}
	s := newTestServer(f)

	body := post(t, s, "/search", url.Values{"search": {"Go"}})
	students := body[strings.Index(body, `id="students"`):]
	assert.Contains(t, students, "<li>B - ")
	assert.NotContains(t, students, "<li>A - ")

	body = post(t, s, "/view", nil)
	jobs := body[strings.Index(body, `id="jobs"`):strings.Index(body, `id="students"`)]
	assert.Contains(t, jobs, "<li>A - ")
	assert.Contains(t, jobs, "<li>B - ")

	body = post(t, s, "/delete", nil)
	jobs = body[strings.Index(body, `id="jobs"`):strings.Index(body, `id="students"`)]
	assert.NotContains(t, jobs, "<li>")
}

func TestPage_ConcurrentRequestsAreSerialized(t *testing.T) {
	f := &fakeRecords{}
	s := newTestServer(f)

	var wg sync.WaitGroup
	for i := 0; i < 20; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			rec := httptest.NewRecorder()
			req := httptest.NewRequest(http.MethodPost, "/select-skill", strings.NewReader("preset=Go"))
			req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
			s.Handler().ServeHTTP(rec, req)
		}()
	}
	wg.Wait()

	assert.Equal(t, "Go", s.binder.Form().Skills)
}

func TestServe_StopsOnContextCancel(t *testing.T) {
	s := newTestServer(&fakeRecords{})
	lis, err := net.Listen("tcp", "127.0.0.1:0")
	require.NoError(t, err)

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan error, 1)
	go func() { done <- s.Serve(ctx, lis) }()

	resp, err := http.Get("http://" + lis.Addr().String() + "/")
	require.NoError(t, err)
	_ = resp.Body.Close()
	assert.Equal(t, http.StatusOK, resp.StatusCode)

	cancel()
	select {
	case err := <-done:
		require.NoError(t, err)
	case <-time.After(2 * time.Second):
		t.Fatal("server did not stop after context cancel")
	}
}

func TestRun_ReturnsErrorOnBadAddress(t *testing.T) {
	s := NewServer("127.0.0.1:99999", &fakeRecords{}, logging.Nop())
	assert.Error(t, s.Run(context.Background()))
}
