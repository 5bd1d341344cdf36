package module_test

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/wayfare-app/wayfare/pkg/module"
)

func echoPath() http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(r.URL.Path))
	})
}

func TestNew(t *testing.T) {
	t.Run("valid prefix", func(t *testing.T) {
		m := module.New("/api", echoPath())
		if m.Prefix() != "/api" {
			t.Errorf("prefix = %q, want /api", m.Prefix())
		}
	})

	invalid := []struct {
		name   string
		prefix string
	}{
		{"empty prefix", ""},
		{"missing leading slash", "api"},
		{"multi-level prefix", "/api/v1"},
	}

	for _, tc := range invalid {
		t.Run(tc.name, func(t *testing.T) {
			defer func() {
				if recover() == nil {
					t.Errorf("New(%q) did not panic", tc.prefix)
				}
			}()
			module.New(tc.prefix, echoPath())
		})
	}
}

func TestServe(t *testing.T) {
	t.Run("strips prefix", func(t *testing.T) {
		m := module.New("/api", echoPath())

		rec := httptest.NewRecorder()
		m.Serve(rec, httptest.NewRequest("GET", "/api/journeys", nil))

		if rec.Body.String() != "/journeys" {
			t.Errorf("inner path = %q, want /journeys", rec.Body.String())
		}
	})

	t.Run("bare prefix maps to root", func(t *testing.T) {
		m := module.New("/api", echoPath())

		rec := httptest.NewRecorder()
		m.Serve(rec, httptest.NewRequest("GET", "/api", nil))

		if rec.Body.String() != "/" {
			t.Errorf("inner path = %q, want /", rec.Body.String())
		}
	})

	t.Run("original request untouched", func(t *testing.T) {
		m := module.New("/api", echoPath())

		req := httptest.NewRequest("GET", "/api/journeys", nil)
		m.Serve(httptest.NewRecorder(), req)

		if req.URL.Path != "/api/journeys" {
			t.Errorf("original path = %q, mutated by Serve", req.URL.Path)
		}
	})
}

func TestUse(t *testing.T) {
	m := module.New("/api", echoPath())

	var order []string
	mw := func(name string) func(http.Handler) http.Handler {
		return func(next http.Handler) http.Handler {
			return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				order = append(order, name)
				next.ServeHTTP(w, r)
			})
		}
	}

	m.Use(mw("first"))
	m.Use(mw("second"))

	m.Serve(httptest.NewRecorder(), httptest.NewRequest("GET", "/api/journeys", nil))

	if len(order) != 2 || order[0] != "first" || order[1] != "second" {
		t.Errorf("middleware order = %v, want [first second]", order)
	}
}

func TestRouter(t *testing.T) {
	t.Run("dispatches to mounted module", func(t *testing.T) {
		router := module.NewRouter()
		router.Mount(module.New("/api", echoPath()))

		rec := httptest.NewRecorder()
		router.ServeHTTP(rec, httptest.NewRequest("GET", "/api/journeys", nil))

		if rec.Body.String() != "/journeys" {
			t.Errorf("body = %q, want /journeys", rec.Body.String())
		}
	})

	t.Run("trailing slash normalized", func(t *testing.T) {
		router := module.NewRouter()
		router.Mount(module.New("/api", echoPath()))

		rec := httptest.NewRecorder()
		router.ServeHTTP(rec, httptest.NewRequest("GET", "/api/journeys/", nil))

		if rec.Body.String() != "/journeys" {
			t.Errorf("body = %q, want /journeys", rec.Body.String())
		}
	})

	t.Run("falls back to native mux", func(t *testing.T) {
		router := module.NewRouter()
		router.Mount(module.New("/api", echoPath()))
		router.HandleNative("GET /healthz", func(w http.ResponseWriter, r *http.Request) {
			w.Write([]byte("ok"))
		})

		rec := httptest.NewRecorder()
		router.ServeHTTP(rec, httptest.NewRequest("GET", "/healthz", nil))

		if rec.Body.String() != "ok" {
			t.Errorf("body = %q, want ok", rec.Body.String())
		}
	})

	t.Run("unmatched path returns 404", func(t *testing.T) {
		router := module.NewRouter()
		router.Mount(module.New("/api", echoPath()))

		rec := httptest.NewRecorder()
		router.ServeHTTP(rec, httptest.NewRequest("GET", "/missing", nil))

		if rec.Code != http.StatusNotFound {
			t.Errorf("status = %d, want 404", rec.Code)
		}
	})
}
