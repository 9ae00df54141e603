package testkit

import (
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"strings"
	"testing"
)

// Run executes a single scenario file against handler as a subtest.
func Run(t *testing.T, handler http.Handler, scenarioPath string) {
	t.Helper()

	s, err := LoadScenario(scenarioPath)
	if err != nil {
		t.Fatalf("testkit: load scenario %q: %v", scenarioPath, err)
	}
	t.Run(s.Name, func(t *testing.T) {
		runScenario(t, handler, s)
	})
}

// RunDir runs every *.json scenario in dir as a subtest. Files named
// *_res.json are expected bodies, not scenarios, and are skipped.
func RunDir(t *testing.T, handler http.Handler, dir string) {
	t.Helper()

	entries, err := filepath.Glob(filepath.Join(dir, "*.json"))
	if err != nil {
		t.Fatalf("testkit: glob %q: %v", dir, err)
	}

	ran := 0
	for _, path := range entries {
		if strings.HasSuffix(path, "_res.json") {
			continue
		}
		s, err := LoadScenario(path)
		if err != nil {
			t.Errorf("testkit: load %q: %v", path, err)
			continue
		}
		ran++
		t.Run(s.Name, func(t *testing.T) {
			runScenario(t, handler, s)
		})
	}
	if ran == 0 {
		t.Fatalf("testkit: no scenario files found in %q", dir)
	}
}

func runScenario(t *testing.T, handler http.Handler, s *Scenario) {
	t.Helper()

	req := httptest.NewRequest(strings.ToUpper(s.RequestMethod), s.RequestURL, nil)
	req.Header.Set("Accept", "application/json")
	for k, v := range s.Headers {
		req.Header.Set(k, v)
	}

	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, req)

	AssertStatusCode(t, s, rec.Code)
	AssertHeaders(t, s, rec.Header())

	if p := s.ResponseBodyPath(); p != "" {
		expected, err := os.ReadFile(p)
		if err != nil {
			t.Errorf("[%s] read response file %q: %v", s.Name, p, err)
			return
		}
		AssertJSONBody(t, s, expected, rec.Body.Bytes())
	}
}
