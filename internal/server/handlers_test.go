package server

import (
	"bytes"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/khanglvm/skillhub/internal/config"
	"github.com/khanglvm/skillhub/internal/learning"
	"github.com/khanglvm/skillhub/internal/skills"
	"github.com/khanglvm/skillhub/internal/storage"
)

func newTestServer(t *testing.T) (*httptest.Server, *learning.Store) {
	t.Helper()
	root := t.TempDir()

	cfg := &config.Config{
		RootDir:         root,
		LearningDir:     filepath.Join(root, "learning"),
		SkillsDir:       filepath.Join(root, "cursor", "skills"),
		SkillsCursorDir: filepath.Join(root, "cursor", "skills-cursor"),
		PendingReminder: 5,
	}
	require.NoError(t, cfg.EnsureLayout())

	store := learning.NewStore(root, cfg.LearningDir, cfg.Collections())
	catalog := skills.NewCatalog(root, []skills.Collection{
		{Name: config.TargetSkills, Dir: cfg.SkillsDir},
		{Name: config.TargetSkillsCursor, Dir: cfg.SkillsCursorDir},
	})
	actions := storage.Open(cfg.ActionDBPath())
	t.Cleanup(func() { actions.Close() })

	srv := New(cfg, store, catalog, actions, zap.NewNop())
	ts := httptest.NewServer(srv.Routes())
	t.Cleanup(ts.Close)
	return ts, store
}

func getJSON(t *testing.T, ts *httptest.Server, path string) (int, map[string]interface{}) {
	t.Helper()
	resp, err := http.Get(ts.URL + path)
	require.NoError(t, err)
	defer resp.Body.Close()

	var body map[string]interface{}
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&body))
	return resp.StatusCode, body
}

func postJSON(t *testing.T, ts *httptest.Server, path string, payload interface{}) (int, map[string]interface{}) {
	t.Helper()
	raw, err := json.Marshal(payload)
	require.NoError(t, err)

	resp, err := http.Post(ts.URL+path, "application/json", bytes.NewReader(raw))
	require.NoError(t, err)
	defer resp.Body.Close()

	var body map[string]interface{}
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&body))
	return resp.StatusCode, body
}

func data(t *testing.T, body map[string]interface{}) map[string]interface{} {
	t.Helper()
	require.Equal(t, true, body["ok"], "expected ok envelope, got %v", body)
	d, ok := body["data"].(map[string]interface{})
	require.True(t, ok)
	return d
}

func TestDashboardEndpoint(t *testing.T) {
	ts, store := newTestServer(t)

	for i := 0; i < 3; i++ {
		_, err := store.Record(learning.SourceManual, fmt.Sprintf("lesson %d", i), "details")
		require.NoError(t, err)
	}

	code, body := getJSON(t, ts, "/api/dashboard")
	require.Equal(t, http.StatusOK, code)
	d := data(t, body)

	assert.Equal(t, float64(3), d["total"])
	counts := d["counts"].(map[string]interface{})
	assert.Equal(t, float64(3), counts["pending"])
	assert.Len(t, d["all"], 3)
}

func TestDashboardLimit(t *testing.T) {
	ts, store := newTestServer(t)

	for i := 0; i < 4; i++ {
		_, err := store.Record(learning.SourceManual, fmt.Sprintf("lesson %d", i), "details")
		require.NoError(t, err)
	}

	code, body := getJSON(t, ts, "/api/dashboard?limit=2")
	require.Equal(t, http.StatusOK, code)
	d := data(t, body)

	// Counts cover everything even when the entry list is capped.
	assert.Equal(t, float64(4), d["total"])
	assert.Len(t, d["all"], 2)
}

func TestDashboardRejectsBadLimit(t *testing.T) {
	ts, _ := newTestServer(t)

	code, body := getJSON(t, ts, "/api/dashboard?limit=zero")
	assert.Equal(t, http.StatusBadRequest, code)
	assert.Equal(t, false, body["ok"])
	assert.Contains(t, body["error"], "limit")
}

func TestReviewEndpoint(t *testing.T) {
	ts, store := newTestServer(t)

	res, err := store.Record(learning.SourceGenerated, "Prefer context deadlines", "unbounded waits hang shutdown")
	require.NoError(t, err)

	code, body := postJSON(t, ts, "/api/review", map[string]string{
		"source":      "generated",
		"fingerprint": res.Entry.Fingerprint,
		"status":      "approved",
	})
	require.Equal(t, http.StatusOK, code)
	d := data(t, body)
	assert.Equal(t, "approved", d["status"])
	assert.Equal(t, "approved", d["displayStatus"])

	// The action log captured the review.
	code, body = getJSON(t, ts, "/api/logs")
	require.Equal(t, http.StatusOK, code)
	d = data(t, body)
	assert.Equal(t, float64(1), d["total"])
}

func TestReviewUnknownFingerprintIs404(t *testing.T) {
	ts, _ := newTestServer(t)

	code, body := postJSON(t, ts, "/api/review", map[string]string{
		"source":      "manual",
		"fingerprint": "deadbeef",
		"status":      "approved",
	})
	assert.Equal(t, http.StatusNotFound, code)
	assert.Equal(t, false, body["ok"])
}

func TestReviewRejectedWithoutReasonIs400(t *testing.T) {
	ts, store := newTestServer(t)

	res, err := store.Record(learning.SourceManual, "lesson", "details")
	require.NoError(t, err)

	code, _ := postJSON(t, ts, "/api/review", map[string]string{
		"source":      "manual",
		"fingerprint": res.Entry.Fingerprint,
		"status":      "rejected",
	})
	assert.Equal(t, http.StatusBadRequest, code)
}

func TestPromoteEndpoint(t *testing.T) {
	ts, store := newTestServer(t)

	res, err := store.Record(learning.SourceManual, "Batch writes", "fewer fsyncs under load")
	require.NoError(t, err)

	code, body := postJSON(t, ts, "/api/promote", map[string]string{
		"source":      "manual",
		"fingerprint": res.Entry.Fingerprint,
		"slug":        "batch-writes",
		"description": "Batch writes to cut fsync overhead",
		"target":      "skills",
	})
	require.Equal(t, http.StatusOK, code)
	d := data(t, body)
	assert.Equal(t, filepath.ToSlash(filepath.Join("cursor", "skills", "batch-writes", "SKILL.md")), d["skillPath"])

	// The descriptor now shows up in the catalog.
	code, body = getJSON(t, ts, "/api/skills")
	require.Equal(t, http.StatusOK, code)
	d = data(t, body)
	assert.Equal(t, float64(1), d["total"])
}

func TestPromoteConflictIs409(t *testing.T) {
	ts, store := newTestServer(t)

	res, err := store.Record(learning.SourceManual, "lesson", "details")
	require.NoError(t, err)

	code, _ := postJSON(t, ts, "/api/promote", map[string]string{
		"source":      "manual",
		"fingerprint": res.Entry.Fingerprint,
		"slug":        "taken",
		"description": "d",
		"target":      "skills",
	})
	require.Equal(t, http.StatusOK, code)

	res2, err := store.Record(learning.SourceManual, "another", "details")
	require.NoError(t, err)

	code, body := postJSON(t, ts, "/api/promote", map[string]string{
		"source":      "manual",
		"fingerprint": res2.Entry.Fingerprint,
		"slug":        "taken",
		"description": "d",
		"target":      "skills",
	})
	assert.Equal(t, http.StatusConflict, code)
	assert.Equal(t, false, body["ok"])
}

func TestSkillEndpointReadsDescriptor(t *testing.T) {
	ts, store := newTestServer(t)

	res, err := store.Record(learning.SourceManual, "lesson", "details")
	require.NoError(t, err)
	skillPath, err := store.Promote(learning.SourceManual, res.Entry.Fingerprint, "lesson", "A lesson", "skills")
	require.NoError(t, err)

	code, body := getJSON(t, ts, "/api/skill?path="+skillPath)
	require.Equal(t, http.StatusOK, code)
	d := data(t, body)
	assert.Contains(t, d["content"], "name: lesson")
}

func TestSkillEndpointMissingIs404(t *testing.T) {
	ts, _ := newTestServer(t)

	code, body := getJSON(t, ts, "/api/skill?path=cursor/skills/no-such-skill/SKILL.md")
	assert.Equal(t, http.StatusNotFound, code)
	assert.Equal(t, false, body["ok"])
}

func TestSkillEndpointRequiresPath(t *testing.T) {
	ts, _ := newTestServer(t)

	code, _ := getJSON(t, ts, "/api/skill")
	assert.Equal(t, http.StatusBadRequest, code)
}

func TestSearchEndpoint(t *testing.T) {
	ts, store := newTestServer(t)

	_, err := store.Record(learning.SourceManual, "Use exponential backoff", "retries without backoff stampede the upstream")
	require.NoError(t, err)
	_, err = store.Record(learning.SourceManual, "Pin dependency versions", "floating versions break reproducible builds")
	require.NoError(t, err)

	code, body := getJSON(t, ts, "/api/search?query=backoff")
	require.Equal(t, http.StatusOK, code)
	d := data(t, body)
	assert.Equal(t, float64(1), d["total"])
}

func TestSearchRequiresQuery(t *testing.T) {
	ts, _ := newTestServer(t)

	code, _ := getJSON(t, ts, "/api/search")
	assert.Equal(t, http.StatusBadRequest, code)
}

func TestAppendLogEndpoint(t *testing.T) {
	ts, _ := newTestServer(t)

	code, body := postJSON(t, ts, "/api/log", map[string]string{
		"type":  "note",
		"title": "manual touch-up",
	})
	require.Equal(t, http.StatusOK, code)
	data(t, body)

	code, body = getJSON(t, ts, "/api/logs?limit=10")
	require.Equal(t, http.StatusOK, code)
	d := data(t, body)
	assert.Equal(t, float64(1), d["total"])
}

func TestAppendLogKeepsSkillPath(t *testing.T) {
	ts, _ := newTestServer(t)

	code, _ := postJSON(t, ts, "/api/log", map[string]string{
		"type":      "promote",
		"title":     "batch-writes",
		"source":    "manual",
		"status":    "promoted",
		"skillPath": "cursor/skills/batch-writes/SKILL.md",
	})
	require.Equal(t, http.StatusOK, code)

	code, body := getJSON(t, ts, "/api/logs?limit=1")
	require.Equal(t, http.StatusOK, code)
	d := data(t, body)
	items := d["items"].([]interface{})
	require.Len(t, items, 1)
	rec := items[0].(map[string]interface{})
	assert.Equal(t, "cursor/skills/batch-writes/SKILL.md", rec["skillPath"])
}

func TestAppendLogRequiresType(t *testing.T) {
	ts, _ := newTestServer(t)

	code, _ := postJSON(t, ts, "/api/log", map[string]string{"title": "no type"})
	assert.Equal(t, http.StatusBadRequest, code)
}

func TestUIRoot(t *testing.T) {
	ts, _ := newTestServer(t)

	resp, err := http.Get(ts.URL + "/")
	require.NoError(t, err)
	defer resp.Body.Close()

	require.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Contains(t, resp.Header.Get("Content-Type"), "text/html")
}

func TestUnknownPathIs404(t *testing.T) {
	ts, _ := newTestServer(t)

	resp, err := http.Get(ts.URL + "/nope")
	require.NoError(t, err)
	resp.Body.Close()
	assert.Equal(t, http.StatusNotFound, resp.StatusCode)
}

func TestInternalErrorIs500(t *testing.T) {
	root := t.TempDir()
	cfg := &config.Config{
		RootDir:         root,
		LearningDir:     filepath.Join(root, "learning"),
		SkillsDir:       filepath.Join(root, "cursor", "skills"),
		SkillsCursorDir: filepath.Join(root, "cursor", "skills-cursor"),
	}
	require.NoError(t, cfg.EnsureLayout())

	// A directory where the manual log should be makes Load fail.
	require.NoError(t, os.RemoveAll(filepath.Join(cfg.LearningDir, "manual")))
	require.NoError(t, os.MkdirAll(filepath.Join(cfg.LearningDir, "manual", "entries.md"), 0755))

	store := learning.NewStore(root, cfg.LearningDir, cfg.Collections())
	srv := New(cfg, store, skills.NewCatalog(root, nil), storage.Open(cfg.ActionDBPath()), zap.NewNop())
	ts := httptest.NewServer(srv.Routes())
	defer ts.Close()

	code, body := getJSON(t, ts, "/api/dashboard")
	assert.Equal(t, http.StatusInternalServerError, code)
	assert.Equal(t, false, body["ok"])
}
