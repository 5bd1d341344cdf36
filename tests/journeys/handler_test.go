package journeys_test

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/google/uuid"

	"github.com/wayfare-app/wayfare/internal/journeys"
	"github.com/wayfare-app/wayfare/pkg/pagination"
)

type mockSystem struct {
	listFn           func(ctx context.Context, page pagination.PageRequest, filters journeys.Filters) (*pagination.PageResult[journeys.Journey], error)
	findFn           func(ctx context.Context, id uuid.UUID) (*journeys.Journey, error)
	createFn         func(ctx context.Context, cmd journeys.CreateCommand) (*journeys.Journey, error)
	listInProgressFn func(ctx context.Context) ([]journeys.Journey, error)
}

func (m *mockSystem) Handler() *journeys.Handler {
	return journeys.NewHandler(
		m,
		slog.New(slog.NewTextHandler(io.Discard, nil)),
		pagination.Config{DefaultPageSize: 20, MaxPageSize: 100},
	)
}

func (m *mockSystem) List(ctx context.Context, page pagination.PageRequest, filters journeys.Filters) (*pagination.PageResult[journeys.Journey], error) {
	return m.listFn(ctx, page, filters)
}

func (m *mockSystem) Find(ctx context.Context, id uuid.UUID) (*journeys.Journey, error) {
	return m.findFn(ctx, id)
}

func (m *mockSystem) Create(ctx context.Context, cmd journeys.CreateCommand) (*journeys.Journey, error) {
	return m.createFn(ctx, cmd)
}

func (m *mockSystem) ListInProgress(ctx context.Context) ([]journeys.Journey, error) {
	return m.listInProgressFn(ctx)
}

func (m *mockSystem) ApplyGeneratedTimeline(ctx context.Context, id uuid.UUID, timeline []journeys.ProcessStep) error {
	return nil
}

func (m *mockSystem) SetTimelineStatus(ctx context.Context, id uuid.UUID, status string) error {
	return nil
}

func setupMux(h *journeys.Handler) *http.ServeMux {
	mux := http.NewServeMux()
	group := h.Routes()
	for _, route := range group.Routes {
		pattern := route.Method + " " + group.Prefix + route.Pattern
		mux.HandleFunc(pattern, route.Handler)
	}
	return mux
}

func sampleJourney() journeys.Journey {
	return journeys.Journey{
		ID:                 uuid.MustParse("550e8400-e29b-41d4-a716-446655440000"),
		UserID:             "user-1",
		OriginCountry:      "India",
		DestinationCountry: "Germany",
		Nationality:        "Indian",
		Purpose:            "Work",
		Status:             journeys.StatusPending,
		Timeline:           []journeys.ProcessStep{},
		CreatedAt:          time.Now().Truncate(time.Second),
	}
}

func TestHandlerList(t *testing.T) {
	j := sampleJourney()

	t.Run("returns paginated list", func(t *testing.T) {
		sys := &mockSystem{
			listFn: func(_ context.Context, _ pagination.PageRequest, _ journeys.Filters) (*pagination.PageResult[journeys.Journey], error) {
				result := pagination.NewPageResult([]journeys.Journey{j}, 1, 1, 20)
				return &result, nil
			},
		}
		mux := setupMux(sys.Handler())

		rec := httptest.NewRecorder()
		req := httptest.NewRequest("GET", "/journeys", nil)
		mux.ServeHTTP(rec, req)

		if rec.Code != http.StatusOK {
			t.Fatalf("status = %d, want 200", rec.Code)
		}

		var result pagination.PageResult[journeys.Journey]
		if err := json.NewDecoder(rec.Body).Decode(&result); err != nil {
			t.Fatalf("decode: %v", err)
		}
		if result.Total != 1 {
			t.Errorf("total = %d, want 1", result.Total)
		}
		if result.Data[0].ID != j.ID {
			t.Errorf("id = %v, want %v", result.Data[0].ID, j.ID)
		}
	})

	t.Run("passes query filters", func(t *testing.T) {
		var captured journeys.Filters
		sys := &mockSystem{
			listFn: func(_ context.Context, _ pagination.PageRequest, f journeys.Filters) (*pagination.PageResult[journeys.Journey], error) {
				captured = f
				result := pagination.NewPageResult([]journeys.Journey{}, 0, 1, 20)
				return &result, nil
			},
		}
		mux := setupMux(sys.Handler())

		rec := httptest.NewRecorder()
		req := httptest.NewRequest("GET", "/journeys?user_id=user-1&status=IN_PROGRESS", nil)
		mux.ServeHTTP(rec, req)

		if rec.Code != http.StatusOK {
			t.Fatalf("status = %d, want 200", rec.Code)
		}
		if captured.UserID == nil || *captured.UserID != "user-1" {
			t.Errorf("user filter = %v, want user-1", captured.UserID)
		}
		if captured.Status == nil || *captured.Status != "IN_PROGRESS" {
			t.Errorf("status filter = %v, want IN_PROGRESS", captured.Status)
		}
	})
}

func TestHandlerFind(t *testing.T) {
	j := sampleJourney()

	t.Run("returns journey by id", func(t *testing.T) {
		sys := &mockSystem{
			findFn: func(_ context.Context, id uuid.UUID) (*journeys.Journey, error) {
				if id != j.ID {
					return nil, journeys.ErrNotFound
				}
				return &j, nil
			},
		}
		mux := setupMux(sys.Handler())

		rec := httptest.NewRecorder()
		req := httptest.NewRequest("GET", "/journeys/"+j.ID.String(), nil)
		mux.ServeHTTP(rec, req)

		if rec.Code != http.StatusOK {
			t.Fatalf("status = %d, want 200", rec.Code)
		}

		var got journeys.Journey
		if err := json.NewDecoder(rec.Body).Decode(&got); err != nil {
			t.Fatalf("decode: %v", err)
		}
		if got.ID != j.ID {
			t.Errorf("id = %v, want %v", got.ID, j.ID)
		}
	})

	t.Run("invalid uuid returns 400", func(t *testing.T) {
		sys := &mockSystem{}
		mux := setupMux(sys.Handler())

		rec := httptest.NewRecorder()
		req := httptest.NewRequest("GET", "/journeys/not-a-uuid", nil)
		mux.ServeHTTP(rec, req)

		if rec.Code != http.StatusBadRequest {
			t.Errorf("status = %d, want 400", rec.Code)
		}
	})

	t.Run("not found returns 404", func(t *testing.T) {
		sys := &mockSystem{
			findFn: func(_ context.Context, _ uuid.UUID) (*journeys.Journey, error) {
				return nil, journeys.ErrNotFound
			},
		}
		mux := setupMux(sys.Handler())

		rec := httptest.NewRecorder()
		req := httptest.NewRequest("GET", "/journeys/"+uuid.New().String(), nil)
		mux.ServeHTTP(rec, req)

		if rec.Code != http.StatusNotFound {
			t.Errorf("status = %d, want 404", rec.Code)
		}
	})
}

func TestHandlerCreate(t *testing.T) {
	j := sampleJourney()

	t.Run("creates journey", func(t *testing.T) {
		var captured journeys.CreateCommand
		sys := &mockSystem{
			createFn: func(_ context.Context, cmd journeys.CreateCommand) (*journeys.Journey, error) {
				captured = cmd
				return &j, nil
			},
		}
		mux := setupMux(sys.Handler())

		body, _ := json.Marshal(validCommand())

		rec := httptest.NewRecorder()
		req := httptest.NewRequest("POST", "/journeys", bytes.NewReader(body))
		req.Header.Set("Content-Type", "application/json")
		mux.ServeHTTP(rec, req)

		if rec.Code != http.StatusCreated {
			t.Fatalf("status = %d, want 201", rec.Code)
		}
		if captured.UserID != "user-1" {
			t.Errorf("userId = %q, want user-1", captured.UserID)
		}
		if captured.DestinationCountry != "Germany" {
			t.Errorf("destinationCountry = %q, want Germany", captured.DestinationCountry)
		}

		var got journeys.Journey
		if err := json.NewDecoder(rec.Body).Decode(&got); err != nil {
			t.Fatalf("decode: %v", err)
		}
		if got.Status != journeys.StatusPending {
			t.Errorf("status = %q, want PENDING", got.Status)
		}
	})

	t.Run("missing field returns 400", func(t *testing.T) {
		sys := &mockSystem{
			createFn: func(_ context.Context, cmd journeys.CreateCommand) (*journeys.Journey, error) {
				if err := cmd.Validate(); err != nil {
					return nil, err
				}
				return &j, nil
			},
		}
		mux := setupMux(sys.Handler())

		body, _ := json.Marshal(journeys.CreateCommand{UserID: "user-1"})

		rec := httptest.NewRecorder()
		req := httptest.NewRequest("POST", "/journeys", bytes.NewReader(body))
		req.Header.Set("Content-Type", "application/json")
		mux.ServeHTTP(rec, req)

		if rec.Code != http.StatusBadRequest {
			t.Errorf("status = %d, want 400", rec.Code)
		}
	})

	t.Run("invalid json returns 400", func(t *testing.T) {
		sys := &mockSystem{}
		mux := setupMux(sys.Handler())

		rec := httptest.NewRecorder()
		req := httptest.NewRequest("POST", "/journeys", bytes.NewReader([]byte("not json")))
		req.Header.Set("Content-Type", "application/json")
		mux.ServeHTTP(rec, req)

		if rec.Code != http.StatusBadRequest {
			t.Errorf("status = %d, want 400", rec.Code)
		}
	})
}

func TestHandlerSearch(t *testing.T) {
	t.Run("normalizes pagination", func(t *testing.T) {
		var capturedPage pagination.PageRequest
		sys := &mockSystem{
			listFn: func(_ context.Context, page pagination.PageRequest, _ journeys.Filters) (*pagination.PageResult[journeys.Journey], error) {
				capturedPage = page
				result := pagination.NewPageResult([]journeys.Journey{}, 0, page.Page, page.PageSize)
				return &result, nil
			},
		}
		mux := setupMux(sys.Handler())

		body, _ := json.Marshal(journeys.SearchRequest{})

		rec := httptest.NewRecorder()
		req := httptest.NewRequest("POST", "/journeys/search", bytes.NewReader(body))
		req.Header.Set("Content-Type", "application/json")
		mux.ServeHTTP(rec, req)

		if rec.Code != http.StatusOK {
			t.Fatalf("status = %d, want 200", rec.Code)
		}
		if capturedPage.Page != 1 {
			t.Errorf("page = %d, want 1 (normalized)", capturedPage.Page)
		}
		if capturedPage.PageSize != 20 {
			t.Errorf("page_size = %d, want 20 (default)", capturedPage.PageSize)
		}
	})
}
