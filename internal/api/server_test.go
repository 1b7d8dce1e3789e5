package api

import (
	"bytes"
	"encoding/base64"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mrw-bin/nordic-subtitles-qc-package/internal/config"
	"github.com/mrw-bin/nordic-subtitles-qc-package/internal/logging"
	"github.com/mrw-bin/nordic-subtitles-qc-package/internal/profile"
)

const sampleSRT = "1\n00:00:01,000 --> 00:00:01,500\nA line that is far too long for any Nordic broadcaster to accept on air\n\n"

func newTestServer(t *testing.T) *Server {
	t.Helper()
	catalog, err := profile.LoadCatalog()
	require.NoError(t, err)
	return NewServer(config.Default(), logging.NewNop(), catalog)
}

func postJSON(t *testing.T, srv *Server, path string, payload any) *httptest.ResponseRecorder {
	t.Helper()
	body, err := json.Marshal(payload)
	require.NoError(t, err)
	req := httptest.NewRequest(http.MethodPost, path, bytes.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	rec := httptest.NewRecorder()
	srv.Handler().ServeHTTP(rec, req)
	return rec
}

func TestHealthz(t *testing.T) {
	srv := newTestServer(t)
	req := httptest.NewRequest(http.MethodGet, "/healthz", nil)
	rec := httptest.NewRecorder()
	srv.Handler().ServeHTTP(rec, req)

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), `"status":"ok"`)
}

func TestProfilesEndpoint(t *testing.T) {
	srv := newTestServer(t)
	req := httptest.NewRequest(http.MethodGet, "/v1/profiles", nil)
	rec := httptest.NewRecorder()
	srv.Handler().ServeHTTP(rec, req)

	require.Equal(t, http.StatusOK, rec.Code)

	var resp struct {
		Version  string `json:"version"`
		Profiles []struct {
			Name string `json:"name"`
		} `json:"profiles"`
	}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	assert.NotEmpty(t, resp.Version)
	assert.Len(t, resp.Profiles, 6)

	names := make([]string, len(resp.Profiles))
	for i, p := range resp.Profiles {
		names[i] = p.Name
	}
	assert.Contains(t, names, "Netflix-SV")
	assert.Contains(t, names, "Yle-FI (sv)")
}

func TestRunHappyPath(t *testing.T) {
	srv := newTestServer(t)
	rec := postJSON(t, srv, "/v1/qc/run", map[string]string{
		"content":  sampleSRT,
		"filename": "episode.srt",
		"profile":  "Netflix-SV",
	})

	require.Equal(t, http.StatusOK, rec.Code)

	var resp struct {
		Issues []struct {
			Type     string `json:"type"`
			Severity string `json:"severity"`
		} `json:"issues"`
		Metrics struct {
			Count int `json:"count"`
		} `json:"metrics"`
		Preview string `json:"preview"`
	}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	assert.Equal(t, 1, resp.Metrics.Count)
	assert.NotEmpty(t, resp.Preview)

	types := make([]string, len(resp.Issues))
	for i, issue := range resp.Issues {
		types[i] = issue.Type
	}
	assert.Contains(t, types, "cpl-exceeded")
	assert.Contains(t, types, "cps-high")
}

func TestRunAcceptsBase64(t *testing.T) {
	srv := newTestServer(t)
	rec := postJSON(t, srv, "/v1/qc/run", map[string]string{
		"contentBase64": base64.StdEncoding.EncodeToString([]byte(sampleSRT)),
		"filename":      "episode.srt",
	})
	assert.Equal(t, http.StatusOK, rec.Code)
}

func TestRunCleanDocumentHasEmptyIssueArray(t *testing.T) {
	srv := newTestServer(t)
	rec := postJSON(t, srv, "/v1/qc/run", map[string]string{
		"content":  "1\n00:00:01,000 --> 00:00:04,000\nHej!\n\n",
		"filename": "clean.srt",
	})

	require.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), `"issues":[]`)
}

func TestRunHTMLReport(t *testing.T) {
	srv := newTestServer(t)
	rec := postJSON(t, srv, "/v1/qc/run?report=html", map[string]string{
		"content":  sampleSRT,
		"filename": "episode.srt",
		"profile":  "SVT-SE",
	})

	require.Equal(t, http.StatusOK, rec.Code)

	var resp struct {
		ReportHTML string `json:"reportHtml"`
	}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	assert.Contains(t, resp.ReportHTML, "<!doctype html>")
	assert.Contains(t, resp.ReportHTML, "SVT-SE")
}

func TestRunUnknownProfile(t *testing.T) {
	srv := newTestServer(t)
	rec := postJSON(t, srv, "/v1/qc/run", map[string]string{
		"content":  sampleSRT,
		"filename": "episode.srt",
		"profile":  "BBC-EN",
	})

	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Contains(t, rec.Body.String(), "BBC-EN")
}

func TestRunRejectsPAC(t *testing.T) {
	srv := newTestServer(t)
	rec := postJSON(t, srv, "/v1/qc/run", map[string]string{
		"content":  "binary payload",
		"filename": "captions.pac",
	})

	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Contains(t, rec.Body.String(), "convert to SRT/VTT/TTML")
}

func TestRunRejectsMissingContent(t *testing.T) {
	srv := newTestServer(t)
	rec := postJSON(t, srv, "/v1/qc/run", map[string]string{
		"filename": "episode.srt",
	})
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestRunRejectsInvalidJSON(t *testing.T) {
	srv := newTestServer(t)
	req := httptest.NewRequest(http.MethodPost, "/v1/qc/run", strings.NewReader("{not json"))
	rec := httptest.NewRecorder()
	srv.Handler().ServeHTTP(rec, req)

	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Contains(t, rec.Body.String(), "invalid JSON body")
}

func TestRunRejectsOversizedBody(t *testing.T) {
	cfg := config.Default()
	cfg.MaxBodyBytes = 64
	catalog, err := profile.LoadCatalog()
	require.NoError(t, err)
	srv := NewServer(cfg, logging.NewNop(), catalog)

	rec := postJSON(t, srv, "/v1/qc/run", map[string]string{
		"content":  strings.Repeat("x", 200),
		"filename": "episode.srt",
	})
	assert.Equal(t, http.StatusRequestEntityTooLarge, rec.Code)
}

func TestFixSafeOnly(t *testing.T) {
	srv := newTestServer(t)
	rec := postJSON(t, srv, "/v1/qc/fix", map[string]string{
		"content":  sampleSRT,
		"filename": "episode.srt",
		"profile":  "Netflix-SV",
		"fixMode":  "safe-only",
	})

	require.Equal(t, http.StatusOK, rec.Code)

	var resp struct {
		Changes []struct {
			Index   int      `json:"index"`
			Applied []string `json:"applied"`
		} `json:"changes"`
		FixedText string `json:"fixedText"`
	}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	require.Len(t, resp.Changes, 1)
	assert.Contains(t, resp.Changes[0].Applied, "wrap-cpl")
	assert.Contains(t, resp.Changes[0].Applied, "duration-min")
	assert.Contains(t, resp.FixedText, "-->")

	// reflow split the long line in two
	lines := strings.Split(strings.TrimSpace(resp.FixedText), "\n")
	require.Len(t, lines, 4)
}

func TestFixNoneDoesNotMutate(t *testing.T) {
	srv := newTestServer(t)
	for _, mode := range []string{"none", "assisted-with-approval", ""} {
		payload := map[string]string{
			"content":  sampleSRT,
			"filename": "episode.srt",
		}
		if mode != "" {
			payload["fixMode"] = mode
		}
		rec := postJSON(t, srv, "/v1/qc/fix", payload)

		require.Equal(t, http.StatusOK, rec.Code, "mode %q", mode)
		assert.NotContains(t, rec.Body.String(), `"fixedText"`, "mode %q", mode)
		assert.NotContains(t, rec.Body.String(), `"changes"`, "mode %q", mode)
	}
}

func TestFixUnknownMode(t *testing.T) {
	srv := newTestServer(t)
	rec := postJSON(t, srv, "/v1/qc/fix", map[string]string{
		"content":  sampleSRT,
		"filename": "episode.srt",
		"fixMode":  "yolo",
	})

	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Contains(t, rec.Body.String(), "unknown fixMode")
}

func TestRequestIDEchoed(t *testing.T) {
	srv := newTestServer(t)

	req := httptest.NewRequest(http.MethodGet, "/healthz", nil)
	rec := httptest.NewRecorder()
	srv.Handler().ServeHTTP(rec, req)
	assert.NotEmpty(t, rec.Header().Get("X-Request-Id"))

	req = httptest.NewRequest(http.MethodGet, "/healthz", nil)
	req.Header.Set("X-Request-Id", "abc-123")
	rec = httptest.NewRecorder()
	srv.Handler().ServeHTTP(rec, req)
	assert.Equal(t, "abc-123", rec.Header().Get("X-Request-Id"))
}

func TestErrorResponseCarriesRequestID(t *testing.T) {
	srv := newTestServer(t)
	rec := postJSON(t, srv, "/v1/qc/run", map[string]string{
		"filename": "episode.srt",
	})

	require.Equal(t, http.StatusBadRequest, rec.Code)

	var resp struct {
		RequestID string `json:"requestId"`
	}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	assert.NotEmpty(t, resp.RequestID)
}
