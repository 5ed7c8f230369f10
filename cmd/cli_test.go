package cmd

import (
	"bytes"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func setupCLIEnv(t *testing.T, serverURL string) {
	t.Helper()
	t.Setenv("HOME", t.TempDir())
	t.Setenv("SAI_API_URL", serverURL)
	t.Setenv("SAI_TOKEN", "")
	t.Setenv("SAI_DEBUG", "")
}

func executeCLI(t *testing.T, stdin string, args ...string) (string, string, error) {
	t.Helper()

	root := newRootCmd()
	var stdout, stderr bytes.Buffer
	root.SetOut(&stdout)
	root.SetErr(&stderr)
	if stdin != "" {
		root.SetIn(strings.NewReader(stdin))
	}
	root.SetArgs(args)

	err := root.Execute()
	return stdout.String(), stderr.String(), err
}

func writeJSON(t *testing.T, w http.ResponseWriter, status int, payload any) {
	t.Helper()
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	require.NoError(t, json.NewEncoder(w).Encode(payload))
}

// newBackend serves the endpoints the happy-path flows touch and records
// the bearer tokens it saw.
func newBackend(t *testing.T) (*httptest.Server, *[]string) {
	t.Helper()

	var tokens []string
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		tokens = append(tokens, r.Header.Get("Authorization"))

		switch {
		case r.Method == http.MethodPost && r.URL.Path == "/api/auth/login":
			writeJSON(t, w, http.StatusOK, map[string]any{"access_token": "tok-123"})
		case r.Method == http.MethodGet && r.URL.Path == "/api/auth/me":
			writeJSON(t, w, http.StatusOK, map[string]any{"name": "Ana", "email": "ana@example.com"})
		case r.Method == http.MethodPost && r.URL.Path == "/api/resumir-texto":
			writeJSON(t, w, http.StatusOK, map[string]any{
				"id": 7, "resumo": "resumo curto", "created_at": "2026-03-02T10:00:00Z",
			})
		case r.Method == http.MethodGet && r.URL.Path == "/api/historico":
			writeJSON(t, w, http.StatusOK, map[string]any{
				"items": []map[string]any{
					{"id": 7, "original_text": "texto longo", "summary_text": "resumo curto", "created_at": "2026-03-02T10:00:00Z"},
				},
				"total": 1,
			})
		case r.Method == http.MethodDelete && strings.HasPrefix(r.URL.Path, "/api/historico/"):
			writeJSON(t, w, http.StatusOK, map[string]any{"detail": "ok"})
		case r.Method == http.MethodGet && r.URL.Path == "/api/historico/export":
			w.Header().Set("Content-Type", "text/csv")
			_, _ = fmt.Fprint(w, "id,resumo\n7,resumo curto\n")
		case r.Method == http.MethodGet && r.URL.Path == "/api/health/":
			writeJSON(t, w, http.StatusOK, map[string]any{"status": "healthy", "service": "summarize-api", "version": "1.0.0"})
		default:
			writeJSON(t, w, http.StatusNotFound, map[string]any{"detail": "not found"})
		}
	}))
	t.Cleanup(server.Close)

	return server, &tokens
}

func TestVersionCommand(t *testing.T) {
	setupCLIEnv(t, "http://localhost:1")

	stdout, _, err := executeCLI(t, "", "version")
	require.NoError(t, err)
	assert.Equal(t, "dev\n", stdout)
}

func TestLoginStoresTokenAndWhoamiUsesIt(t *testing.T) {
	server, tokens := newBackend(t)
	setupCLIEnv(t, server.URL)

	stdout, _, err := executeCLI(t, "", "auth", "login", "--email", "ana@example.com", "--password", "segredo1")
	require.NoError(t, err)
	assert.Contains(t, stdout, "Signed in.")

	stdout, _, err = executeCLI(t, "", "auth", "whoami")
	require.NoError(t, err)
	assert.Contains(t, stdout, "Ana <ana@example.com>")
	assert.Contains(t, *tokens, "Bearer tok-123")
}

func TestLoginRejectsBadCredentials(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		writeJSON(t, w, http.StatusUnauthorized, map[string]any{"detail": "invalid credentials"})
	}))
	t.Cleanup(server.Close)
	setupCLIEnv(t, server.URL)

	_, _, err := executeCLI(t, "", "auth", "login", "--email", "ana@example.com", "--password", "errada")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "incorrect email or password")
}

func TestSummarizePrintsResultFromFlag(t *testing.T) {
	server, _ := newBackend(t)
	setupCLIEnv(t, server.URL)

	stdout, stderr, err := executeCLI(t, "", "summarize", "--plain", "--text", "texto longo para resumir")
	require.NoError(t, err)
	assert.Contains(t, stdout, "resumo curto")
	assert.NotContains(t, stderr, "not saved")
}

func TestSummarizeReadsStdin(t *testing.T) {
	server, _ := newBackend(t)
	setupCLIEnv(t, server.URL)

	stdout, _, err := executeCLI(t, "texto vindo do stdin", "summarize", "--plain")
	require.NoError(t, err)
	assert.Contains(t, stdout, "resumo curto")
}

func TestSummarizeDegradedBackendWarnsNotSaved(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path == "/api/health/fallback" {
			writeJSON(t, w, http.StatusOK, map[string]any{
				"message":       "Service degraded, summary not saved",
				"fallback_data": map[string]any{},
			})
			return
		}
		writeJSON(t, w, http.StatusInternalServerError, map[string]any{"detail": "boom"})
	}))
	t.Cleanup(server.Close)
	setupCLIEnv(t, server.URL)

	_, stderr, err := executeCLI(t, "", "summarize", "--plain", "--text", "qualquer texto")
	require.NoError(t, err)
	assert.Contains(t, stderr, "Service degraded, summary not saved")
}

func TestHistoryListJSON(t *testing.T) {
	server, _ := newBackend(t)
	setupCLIEnv(t, server.URL)

	stdout, _, err := executeCLI(t, "", "history", "list", "--json")
	require.NoError(t, err)

	var page struct {
		Items []struct {
			ID int64 `json:"id"`
		} `json:"items"`
		Total int `json:"total"`
		Page  int `json:"page"`
	}
	require.NoError(t, json.Unmarshal([]byte(stdout), &page))
	assert.Equal(t, 1, page.Total)
	assert.Equal(t, 1, page.Page)
	require.Len(t, page.Items, 1)
	assert.Equal(t, int64(7), page.Items[0].ID)
}

func TestHistoryListRendered(t *testing.T) {
	server, _ := newBackend(t)
	setupCLIEnv(t, server.URL)

	stdout, _, err := executeCLI(t, "", "history", "list")
	require.NoError(t, err)
	assert.Contains(t, stdout, "Summary History")
	assert.Contains(t, stdout, "resumo curto")
	assert.Contains(t, stdout, "page 1 of 1")
}

func TestHistoryListRejectsUnknownPageSize(t *testing.T) {
	server, _ := newBackend(t)
	setupCLIEnv(t, server.URL)

	_, _, err := executeCLI(t, "", "history", "list", "--page-size", "17")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "page size")
}

func TestHistoryDelete(t *testing.T) {
	server, _ := newBackend(t)
	setupCLIEnv(t, server.URL)

	stdout, _, err := executeCLI(t, "", "history", "delete", "7")
	require.NoError(t, err)
	assert.Contains(t, stdout, "Deleted summary #7.")
}

func TestHistoryExportToFile(t *testing.T) {
	server, _ := newBackend(t)
	setupCLIEnv(t, server.URL)

	outPath := filepath.Join(t.TempDir(), "export.csv")
	_, stderr, err := executeCLI(t, "", "history", "export", "--out", outPath)
	require.NoError(t, err)
	assert.Contains(t, stderr, "Exported history to")

	data, err := os.ReadFile(outPath)
	require.NoError(t, err)
	assert.Contains(t, string(data), "resumo curto")
}

func TestHealthCommand(t *testing.T) {
	server, _ := newBackend(t)
	setupCLIEnv(t, server.URL)

	stdout, _, err := executeCLI(t, "", "health")
	require.NoError(t, err)
	assert.Contains(t, stdout, "healthy summarize-api 1.0.0")
}

func TestConfigSetAndShow(t *testing.T) {
	server, _ := newBackend(t)
	setupCLIEnv(t, server.URL)

	stdout, _, err := executeCLI(t, "", "config", "set", "--page-size", "25")
	require.NoError(t, err)
	assert.Contains(t, stdout, "Preferences saved.")

	stdout, _, err = executeCLI(t, "", "config", "show")
	require.NoError(t, err)
	assert.Contains(t, stdout, "page-size: 25")
}

func TestConfigSetRejectsUnknownPageSize(t *testing.T) {
	server, _ := newBackend(t)
	setupCLIEnv(t, server.URL)

	_, _, err := executeCLI(t, "", "config", "set", "--page-size", "13")
	require.Error(t, err)
}

func TestEnvTokenOverridesStoredSession(t *testing.T) {
	server, tokens := newBackend(t)
	setupCLIEnv(t, server.URL)
	t.Setenv("SAI_TOKEN", "env-token")

	_, _, err := executeCLI(t, "", "auth", "whoami")
	require.NoError(t, err)
	assert.Contains(t, *tokens, "Bearer env-token")
}
