package health_test

import (
	"net/http"
	"net/http/httptest"
	"sync"
	"testing"
	"time"

	"github.com/nbrandt/linkstash/internal/health"
	"github.com/nbrandt/linkstash/internal/model"
)

func TestChecker_Check(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		switch r.URL.Path {
		case "/ok":
			w.WriteHeader(http.StatusOK)
		case "/gone":
			w.WriteHeader(http.StatusGone)
		case "/missing":
			w.WriteHeader(http.StatusNotFound)
		case "/flaky":
			w.WriteHeader(http.StatusInternalServerError)
		}
	}))
	defer server.Close()

	bookmarks := []model.Bookmark{
		{ID: "1", URL: server.URL + "/ok"},
		{ID: "2", URL: server.URL + "/gone"},
		{ID: "3", URL: server.URL + "/missing"},
		{ID: "4", URL: server.URL + "/flaky"},
	}

	checker := health.NewChecker(2, 5*time.Second, nil)
	report := checker.Check(bookmarks, nil)

	if len(report.Healthy) != 1 {
		t.Errorf("expected 1 healthy, got %d", len(report.Healthy))
	}
	if len(report.Dead) != 2 {
		t.Errorf("expected 2 dead (404 and 410), got %d", len(report.Dead))
	}
	// Server errors may be temporary, so they are not declared dead
	if len(report.Unreachable) != 1 {
		t.Errorf("expected 1 unreachable, got %d", len(report.Unreachable))
	}
	if len(report.Unreachable) == 1 && report.Unreachable[0].StatusCode != http.StatusInternalServerError {
		t.Errorf("unexpected unreachable entry: %+v", report.Unreachable[0])
	}
}

func TestChecker_HeadFallsBackToGet(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.Method == http.MethodHead {
			w.WriteHeader(http.StatusMethodNotAllowed)
			return
		}
		w.WriteHeader(http.StatusOK)
	}))
	defer server.Close()

	checker := health.NewChecker(1, 5*time.Second, nil)
	report := checker.Check([]model.Bookmark{{ID: "1", URL: server.URL}}, nil)

	// 405 on HEAD is not a transport error, so no GET retry happens and
	// the link lands in unreachable rather than dead
	if len(report.Dead) != 0 {
		t.Errorf("405 must not be declared dead: %+v", report.Dead)
	}
}

func TestChecker_ConnectionRefused(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {}))
	server.Close() // refuse connections from here on

	checker := health.NewChecker(1, 2*time.Second, nil)
	report := checker.Check([]model.Bookmark{{ID: "1", URL: server.URL}}, nil)

	if len(report.Unreachable) != 1 {
		t.Fatalf("expected 1 unreachable, got %+v", report)
	}
	if report.Unreachable[0].Error != "Connection refused" {
		t.Errorf("expected normalized error, got %q", report.Unreachable[0].Error)
	}
}

func TestChecker_ExcludedDomainNotDead(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusNotFound)
	}))
	defer server.Close()

	// Exclude the test server's own host, including the port
	host := server.URL[len("http://"):]
	checker := health.NewChecker(1, 5*time.Second, []string{host})
	report := checker.Check([]model.Bookmark{{ID: "1", URL: server.URL}}, nil)

	if len(report.Dead) != 0 {
		t.Errorf("excluded domain must not be declared dead: %+v", report.Dead)
	}
	if len(report.Unreachable) != 1 {
		t.Fatalf("expected 1 unreachable, got %+v", report)
	}
}

func TestChecker_ProgressCallback(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {}))
	defer server.Close()

	bookmarks := []model.Bookmark{
		{ID: "1", URL: server.URL},
		{ID: "2", URL: server.URL + "/a"},
		{ID: "3", URL: server.URL + "/b"},
	}

	var mu sync.Mutex
	var calls []int
	checker := health.NewChecker(2, 5*time.Second, nil)
	checker.Check(bookmarks, func(completed, total int) {
		mu.Lock()
		calls = append(calls, completed)
		mu.Unlock()
		if total != 3 {
			t.Errorf("expected total 3, got %d", total)
		}
	})

	if len(calls) != 3 {
		t.Fatalf("expected 3 progress calls, got %d", len(calls))
	}
	// Completed counts are monotonically increasing under the mutex
	for i, c := range calls {
		if c != i+1 {
			t.Errorf("expected call %d to report %d, got %d", i, i+1, c)
		}
	}
}

func TestChecker_EmptyInput(t *testing.T) {
	checker := health.NewChecker(4, time.Second, nil)
	report := checker.Check(nil, nil)
	if len(report.Healthy)+len(report.Dead)+len(report.Unreachable) != 0 {
		t.Errorf("expected empty report, got %+v", report)
	}
}
