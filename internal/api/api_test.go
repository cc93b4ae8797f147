package api

import (
	"bytes"
	"context"
	"encoding/json"
	"log/slog"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gopkg.in/yaml.v3"

	"github.com/dgallion1/docoutline/internal/config"
	"github.com/dgallion1/docoutline/internal/doctree"
	"github.com/dgallion1/docoutline/internal/heading"
	"github.com/dgallion1/docoutline/internal/outline"
	"github.com/dgallion1/docoutline/internal/parser"
	"github.com/dgallion1/docoutline/internal/pipeline"
)

const (
	testKey  = "secret"
	reportMD = "# Annual Report\n\n## 1. Introduction\n\nthis is the body of the report and it goes on for a while.\n"
)

func newTestServer(t *testing.T, maxUpload int64) (*Server, *pipeline.Orchestrator) {
	t.Helper()
	log := slog.New(slog.DiscardHandler)
	cfg := config.Config{
		OutlineAPIKey:  testKey,
		OutputFormat:   "json",
		WorkerCount:    1,
		MaxQueueSize:   4,
		MaxUploadBytes: maxUpload,
		JobTTL:         time.Hour,
	}
	w := pipeline.NewWorker(outline.NewExtractor(heading.DefaultConfig(), log), parser.Options{}, pipeline.NewStats(time.Hour), log)
	orch := pipeline.NewOrchestrator(cfg, w, log)
	orch.Start(context.Background())
	t.Cleanup(orch.Stop)
	return NewServer(orch, log, cfg), orch
}

type part struct {
	field, name, body string
}

func multipartRequest(t *testing.T, path string, fields map[string]string, parts ...part) *http.Request {
	t.Helper()
	var buf bytes.Buffer
	mw := multipart.NewWriter(&buf)
	for k, v := range fields {
		require.NoError(t, mw.WriteField(k, v))
	}
	for _, p := range parts {
		fw, err := mw.CreateFormFile(p.field, p.name)
		require.NoError(t, err)
		_, err = fw.Write([]byte(p.body))
		require.NoError(t, err)
	}
	require.NoError(t, mw.Close())

	req := httptest.NewRequest(http.MethodPost, path, &buf)
	req.Header.Set("Content-Type", mw.FormDataContentType())
	req.Header.Set("Authorization", "Bearer "+testKey)
	return req
}

func serve(s *Server, req *http.Request) *httptest.ResponseRecorder {
	rec := httptest.NewRecorder()
	s.ServeHTTP(rec, req)
	return rec
}

func TestHealthIsPublic(t *testing.T) {
	s, _ := newTestServer(t, 1<<20)
	rec := serve(s, httptest.NewRequest(http.MethodGet, "/health", nil))
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.JSONEq(t, `{"status":"ok"}`, rec.Body.String())
}

func TestAuthRequired(t *testing.T) {
	s, _ := newTestServer(t, 1<<20)

	rec := serve(s, httptest.NewRequest(http.MethodGet, "/api/stats", nil))
	assert.Equal(t, http.StatusUnauthorized, rec.Code)

	req := httptest.NewRequest(http.MethodGet, "/api/stats", nil)
	req.Header.Set("Authorization", "Bearer wrong")
	rec = serve(s, req)
	assert.Equal(t, http.StatusUnauthorized, rec.Code)
}

func TestOutlineJSON(t *testing.T) {
	s, _ := newTestServer(t, 1<<20)
	rec := serve(s, multipartRequest(t, "/api/outline", nil, part{"file", "report.md", reportMD}))

	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())
	assert.Equal(t, "application/json", rec.Header().Get("Content-Type"))
	assert.Equal(t, string(outline.StatusOK), rec.Header().Get("X-Outline-Status"))

	var res doctree.Result
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &res))
	assert.Equal(t, "Annual Report", res.Title)
	assert.Equal(t, []doctree.HeadingEntry{{Level: doctree.H1, Text: "1. Introduction", Page: 1}}, res.Outline)
}

func TestOutlineYAMLFormat(t *testing.T) {
	s, _ := newTestServer(t, 1<<20)
	rec := serve(s, multipartRequest(t, "/api/outline", map[string]string{"format": "yaml"}, part{"file", "report.md", reportMD}))

	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())
	var res doctree.Result
	require.NoError(t, yaml.Unmarshal(rec.Body.Bytes(), &res))
	assert.Equal(t, "Annual Report", res.Title)
}

func TestOutlineDegradedDocument(t *testing.T) {
	s, _ := newTestServer(t, 1<<20)
	rec := serve(s, multipartRequest(t, "/api/outline", nil, part{"file", "broken.docx", "not a zip"}))

	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, string(outline.StatusParseFailed), rec.Header().Get("X-Outline-Status"))
	assert.Contains(t, rec.Body.String(), doctree.TitleParseError)
}

func TestOutlineRejectsBadRequests(t *testing.T) {
	s, _ := newTestServer(t, 64)

	tests := []struct {
		name   string
		fields map[string]string
		parts  []part
		code   int
	}{
		{"missing file", nil, nil, http.StatusBadRequest},
		{"unsupported type", nil, []part{{"file", "table.csv", "a,b"}}, http.StatusBadRequest},
		{"unknown format", map[string]string{"format": "xml"}, []part{{"file", "a.md", "# A"}}, http.StatusBadRequest},
		{"too large", nil, []part{{"file", "big.txt", string(bytes.Repeat([]byte("x"), 100))}}, http.StatusRequestEntityTooLarge},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rec := serve(s, multipartRequest(t, "/api/outline", tt.fields, tt.parts...))
			assert.Equal(t, tt.code, rec.Code, rec.Body.String())
		})
	}
}

func TestJobLifecycle(t *testing.T) {
	s, _ := newTestServer(t, 1<<20)
	rec := serve(s, multipartRequest(t, "/api/jobs", nil,
		part{"files", "report.md", reportMD},
		part{"files", "notes.txt", "Plain notes\nmore text here\n"},
	))
	require.Equal(t, http.StatusAccepted, rec.Code, rec.Body.String())

	var accepted struct {
		JobID   string `json:"job_id"`
		Files   int    `json:"files"`
		PollURL string `json:"poll_url"`
	}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &accepted))
	assert.Equal(t, 2, accepted.Files)
	assert.Equal(t, "/api/jobs/"+accepted.JobID, accepted.PollURL)

	var snap pipeline.JobSnapshot
	require.Eventually(t, func() bool {
		req := httptest.NewRequest(http.MethodGet, accepted.PollURL, nil)
		req.Header.Set("Authorization", "Bearer "+testKey)
		rec := serve(s, req)
		if rec.Code != http.StatusOK {
			return false
		}
		snap = pipeline.JobSnapshot{}
		return json.Unmarshal(rec.Body.Bytes(), &snap) == nil && snap.Phase == "done"
	}, 5*time.Second, 10*time.Millisecond)

	assert.Equal(t, pipeline.StatusCompleted, snap.Status)
	require.Len(t, snap.Results, 2)
	assert.Equal(t, "Annual Report", snap.Results[0].Result.Title)
}

func TestJobRejectsUnsupportedFile(t *testing.T) {
	s, orch := newTestServer(t, 1<<20)
	rec := serve(s, multipartRequest(t, "/api/jobs", nil,
		part{"files", "report.md", reportMD},
		part{"files", "table.csv", "a,b"},
	))
	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Contains(t, rec.Body.String(), "table.csv")
	assert.Equal(t, 0, orch.QueueDepth())
}

func TestJobNotFound(t *testing.T) {
	s, _ := newTestServer(t, 1<<20)
	req := httptest.NewRequest(http.MethodGet, "/api/jobs/nope", nil)
	req.Header.Set("Authorization", "Bearer "+testKey)
	rec := serve(s, req)
	assert.Equal(t, http.StatusNotFound, rec.Code)
}

func TestStats(t *testing.T) {
	s, _ := newTestServer(t, 1<<20)
	serve(s, multipartRequest(t, "/api/outline", nil, part{"file", "report.md", reportMD}))

	req := httptest.NewRequest(http.MethodGet, "/api/stats", nil)
	req.Header.Set("Authorization", "Bearer "+testKey)
	rec := serve(s, req)
	require.Equal(t, http.StatusOK, rec.Code)

	var body struct {
		QueueDepth int                    `json:"queue_depth"`
		Extraction pipeline.StatsSnapshot `json:"extraction"`
	}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	assert.Equal(t, 1, body.Extraction.Documents)
	assert.Equal(t, 1, body.Extraction.ByStatus[outline.StatusOK])
}

func TestSanitizeFilename(t *testing.T) {
	tests := map[string]string{
		"report.pdf":          "report.pdf",
		"../../etc/passwd":    "passwd",
		`C:\Users\a\doc.docx`: "doc.docx",
		"":                    "unnamed",
		"a..b.md":             "a_b.md",
	}
	for in, want := range tests {
		assert.Equal(t, want, sanitizeFilename(in), in)
	}
}
