package documents_test

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"log/slog"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/google/uuid"

	"github.com/wayfare-app/wayfare/internal/documents"
	"github.com/wayfare-app/wayfare/pkg/pagination"
)

const testMaxUpload = 1 << 20

type mockSystem struct {
	uploadFn        func(ctx context.Context, cmd documents.UploadCommand) (*documents.ParsedDocument, error)
	createParsedFn  func(ctx context.Context, rec documents.ParsedRecord) (*documents.ParsedDocument, error)
	listFn          func(ctx context.Context, page pagination.PageRequest, filters documents.Filters) (*pagination.PageResult[documents.ParsedDocument], error)
	findFn          func(ctx context.Context, id uuid.UUID) (*documents.ParsedDocument, error)
	listByJourneyFn func(ctx context.Context, journeyID uuid.UUID) ([]documents.ParsedDocument, error)
}

func (m *mockSystem) Handler(maxUploadSize int64, trigger documents.GenerateTrigger) *documents.Handler {
	return documents.NewHandler(
		m,
		slog.New(slog.NewTextHandler(io.Discard, nil)),
		pagination.Config{DefaultPageSize: 20, MaxPageSize: 100},
		maxUploadSize,
		trigger,
	)
}

func (m *mockSystem) Upload(ctx context.Context, cmd documents.UploadCommand) (*documents.ParsedDocument, error) {
	return m.uploadFn(ctx, cmd)
}

func (m *mockSystem) CreateParsed(ctx context.Context, rec documents.ParsedRecord) (*documents.ParsedDocument, error) {
	return m.createParsedFn(ctx, rec)
}

func (m *mockSystem) List(ctx context.Context, page pagination.PageRequest, filters documents.Filters) (*pagination.PageResult[documents.ParsedDocument], error) {
	return m.listFn(ctx, page, filters)
}

func (m *mockSystem) Find(ctx context.Context, id uuid.UUID) (*documents.ParsedDocument, error) {
	return m.findFn(ctx, id)
}

func (m *mockSystem) ListByJourney(ctx context.Context, journeyID uuid.UUID) ([]documents.ParsedDocument, error) {
	return m.listByJourneyFn(ctx, journeyID)
}

func setupMux(h *documents.Handler) *http.ServeMux {
	mux := http.NewServeMux()
	group := h.Routes()
	for _, route := range group.Routes {
		pattern := route.Method + " " + group.Prefix + route.Pattern
		mux.HandleFunc(pattern, route.Handler)
	}
	return mux
}

func sampleParsed() documents.ParsedDocument {
	return documents.ParsedDocument{
		ID:           uuid.MustParse("880e8400-e29b-41d4-a716-446655440000"),
		JourneyID:    uuid.MustParse("550e8400-e29b-41d4-a716-446655440000"),
		SourceURI:    "https://store.example.com/documents/journeys/550e8400/visa.pdf",
		DocumentType: "VISA_APPLICATION",
		LLMSummary:   "Visa application form with processing estimate.",
		ExtractedTimelines: []documents.ExtractedTimeline{
			{ProcessType: "VISA_APPLICATION", Description: "Processing time", Unit: "weeks"},
		},
		ProcessedAt: time.Now().Truncate(time.Second),
	}
}

func multipartUpload(t *testing.T, journeyID, filename string, content []byte) (*bytes.Buffer, string) {
	t.Helper()

	var buf bytes.Buffer
	writer := multipart.NewWriter(&buf)

	if journeyID != "" {
		if err := writer.WriteField("journeyId", journeyID); err != nil {
			t.Fatalf("write field: %v", err)
		}
	}
	if filename != "" {
		part, err := writer.CreateFormFile("document", filename)
		if err != nil {
			t.Fatalf("create form file: %v", err)
		}
		if _, err := part.Write(content); err != nil {
			t.Fatalf("write file: %v", err)
		}
	}
	if err := writer.Close(); err != nil {
		t.Fatalf("close writer: %v", err)
	}

	return &buf, writer.FormDataContentType()
}

func TestHandlerUpload(t *testing.T) {
	pd := sampleParsed()

	t.Run("uploads document and fires trigger", func(t *testing.T) {
		var captured documents.UploadCommand
		var triggered uuid.UUID
		sys := &mockSystem{
			uploadFn: func(_ context.Context, cmd documents.UploadCommand) (*documents.ParsedDocument, error) {
				captured = cmd
				return &pd, nil
			},
		}
		mux := setupMux(sys.Handler(testMaxUpload, func(id uuid.UUID) { triggered = id }))

		body, contentType := multipartUpload(t, pd.JourneyID.String(), "visa.txt", []byte("visa application details"))

		rec := httptest.NewRecorder()
		req := httptest.NewRequest("POST", "/documents", body)
		req.Header.Set("Content-Type", contentType)
		mux.ServeHTTP(rec, req)

		if rec.Code != http.StatusCreated {
			t.Fatalf("status = %d, want 201", rec.Code)
		}
		if captured.JourneyID != pd.JourneyID {
			t.Errorf("journeyId = %v, want %v", captured.JourneyID, pd.JourneyID)
		}
		if captured.Filename != "visa.txt" {
			t.Errorf("filename = %q, want visa.txt", captured.Filename)
		}
		if string(captured.Data) != "visa application details" {
			t.Errorf("data = %q", captured.Data)
		}
		if captured.PageCount != nil {
			t.Errorf("page count should be nil for non-PDF uploads")
		}
		if triggered != pd.JourneyID {
			t.Errorf("trigger journey = %v, want %v", triggered, pd.JourneyID)
		}
	})

	t.Run("missing journeyId returns 400", func(t *testing.T) {
		sys := &mockSystem{}
		mux := setupMux(sys.Handler(testMaxUpload, nil))

		body, contentType := multipartUpload(t, "", "visa.txt", []byte("content"))

		rec := httptest.NewRecorder()
		req := httptest.NewRequest("POST", "/documents", body)
		req.Header.Set("Content-Type", contentType)
		mux.ServeHTTP(rec, req)

		if rec.Code != http.StatusBadRequest {
			t.Errorf("status = %d, want 400", rec.Code)
		}
	})

	t.Run("missing file returns 400", func(t *testing.T) {
		sys := &mockSystem{}
		mux := setupMux(sys.Handler(testMaxUpload, nil))

		body, contentType := multipartUpload(t, uuid.New().String(), "", nil)

		rec := httptest.NewRecorder()
		req := httptest.NewRequest("POST", "/documents", body)
		req.Header.Set("Content-Type", contentType)
		mux.ServeHTTP(rec, req)

		if rec.Code != http.StatusBadRequest {
			t.Errorf("status = %d, want 400", rec.Code)
		}
	})

	t.Run("unknown journey returns 404", func(t *testing.T) {
		sys := &mockSystem{
			uploadFn: func(_ context.Context, _ documents.UploadCommand) (*documents.ParsedDocument, error) {
				return nil, documents.ErrJourneyMissing
			},
		}
		mux := setupMux(sys.Handler(testMaxUpload, nil))

		body, contentType := multipartUpload(t, uuid.New().String(), "visa.txt", []byte("content"))

		rec := httptest.NewRecorder()
		req := httptest.NewRequest("POST", "/documents", body)
		req.Header.Set("Content-Type", contentType)
		mux.ServeHTTP(rec, req)

		if rec.Code != http.StatusNotFound {
			t.Errorf("status = %d, want 404", rec.Code)
		}
	})

	t.Run("extraction failure returns 502", func(t *testing.T) {
		sys := &mockSystem{
			uploadFn: func(_ context.Context, _ documents.UploadCommand) (*documents.ParsedDocument, error) {
				return nil, documents.ErrExtraction
			},
		}
		mux := setupMux(sys.Handler(testMaxUpload, nil))

		body, contentType := multipartUpload(t, uuid.New().String(), "visa.txt", []byte("content"))

		rec := httptest.NewRecorder()
		req := httptest.NewRequest("POST", "/documents", body)
		req.Header.Set("Content-Type", contentType)
		mux.ServeHTTP(rec, req)

		if rec.Code != http.StatusBadGateway {
			t.Errorf("status = %d, want 502", rec.Code)
		}
	})
}

func TestHandlerCreateParsed(t *testing.T) {
	pd := sampleParsed()

	t.Run("registers parsed document and fires trigger", func(t *testing.T) {
		var captured documents.ParsedRecord
		var triggered uuid.UUID
		sys := &mockSystem{
			createParsedFn: func(_ context.Context, rec documents.ParsedRecord) (*documents.ParsedDocument, error) {
				captured = rec
				return &pd, nil
			},
		}
		mux := setupMux(sys.Handler(testMaxUpload, func(id uuid.UUID) { triggered = id }))

		body, _ := json.Marshal(documents.ParsedRecord{
			JourneyID:    pd.JourneyID.String(),
			SourceURI:    pd.SourceURI,
			DocumentType: "VISA_APPLICATION",
			ExtractedTimelines: []documents.ExtractedTimeline{
				{ProcessType: "VISA_APPLICATION"},
			},
		})

		rec := httptest.NewRecorder()
		req := httptest.NewRequest("POST", "/documents/parsed", bytes.NewReader(body))
		req.Header.Set("Content-Type", "application/json")
		mux.ServeHTTP(rec, req)

		if rec.Code != http.StatusCreated {
			t.Fatalf("status = %d, want 201", rec.Code)
		}
		if captured.JourneyID != pd.JourneyID.String() {
			t.Errorf("journeyId = %q, want %q", captured.JourneyID, pd.JourneyID)
		}
		if triggered != pd.JourneyID {
			t.Errorf("trigger journey = %v, want %v", triggered, pd.JourneyID)
		}
	})

	t.Run("invalid json returns 400", func(t *testing.T) {
		sys := &mockSystem{}
		mux := setupMux(sys.Handler(testMaxUpload, nil))

		rec := httptest.NewRecorder()
		req := httptest.NewRequest("POST", "/documents/parsed", bytes.NewReader([]byte("not json")))
		req.Header.Set("Content-Type", "application/json")
		mux.ServeHTTP(rec, req)

		if rec.Code != http.StatusBadRequest {
			t.Errorf("status = %d, want 400", rec.Code)
		}
	})

	t.Run("invalid journey id returns 400", func(t *testing.T) {
		sys := &mockSystem{
			createParsedFn: func(_ context.Context, _ documents.ParsedRecord) (*documents.ParsedDocument, error) {
				return nil, documents.ErrInvalidFile
			},
		}
		mux := setupMux(sys.Handler(testMaxUpload, nil))

		body, _ := json.Marshal(documents.ParsedRecord{JourneyID: "not-a-uuid"})

		rec := httptest.NewRecorder()
		req := httptest.NewRequest("POST", "/documents/parsed", bytes.NewReader(body))
		req.Header.Set("Content-Type", "application/json")
		mux.ServeHTTP(rec, req)

		if rec.Code != http.StatusBadRequest {
			t.Errorf("status = %d, want 400", rec.Code)
		}
	})
}

func TestHandlerFind(t *testing.T) {
	pd := sampleParsed()

	t.Run("returns parsed document by id", func(t *testing.T) {
		sys := &mockSystem{
			findFn: func(_ context.Context, id uuid.UUID) (*documents.ParsedDocument, error) {
				if id != pd.ID {
					return nil, documents.ErrNotFound
				}
				return &pd, nil
			},
		}
		mux := setupMux(sys.Handler(testMaxUpload, nil))

		rec := httptest.NewRecorder()
		req := httptest.NewRequest("GET", "/documents/"+pd.ID.String(), nil)
		mux.ServeHTTP(rec, req)

		if rec.Code != http.StatusOK {
			t.Fatalf("status = %d, want 200", rec.Code)
		}

		var got documents.ParsedDocument
		if err := json.NewDecoder(rec.Body).Decode(&got); err != nil {
			t.Fatalf("decode: %v", err)
		}
		if got.ID != pd.ID {
			t.Errorf("id = %v, want %v", got.ID, pd.ID)
		}
		if len(got.ExtractedTimelines) != 1 {
			t.Errorf("extracted timelines = %d, want 1", len(got.ExtractedTimelines))
		}
	})

	t.Run("invalid uuid returns 400", func(t *testing.T) {
		sys := &mockSystem{}
		mux := setupMux(sys.Handler(testMaxUpload, nil))

		rec := httptest.NewRecorder()
		req := httptest.NewRequest("GET", "/documents/not-a-uuid", nil)
		mux.ServeHTTP(rec, req)

		if rec.Code != http.StatusBadRequest {
			t.Errorf("status = %d, want 400", rec.Code)
		}
	})
}
