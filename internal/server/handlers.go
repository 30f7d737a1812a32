package server

import (
	"encoding/json"
	"net/http"
	"strconv"

	"go.uber.org/zap"

	"github.com/khanglvm/skillhub/internal/learning"
	"github.com/khanglvm/skillhub/internal/search"
	"github.com/khanglvm/skillhub/internal/storage"
)

const (
	defaultDashboardLimit = 20
	defaultLogLimit       = 100
	defaultSearchLimit    = 25
)

// entryView decorates an entry with its resolved display status so the UI
// never re-implements the legacy fallback.
type entryView struct {
	*learning.Entry
	DisplayStatus learning.Status `json:"displayStatus"`
}

func viewEntries(entries []*learning.Entry) []entryView {
	views := make([]entryView, len(entries))
	for i, e := range entries {
		views[i] = entryView{Entry: e, DisplayStatus: e.DisplayStatus()}
	}
	return views
}

// parseLimit reads an optional positive integer query parameter.
func parseLimit(r *http.Request, name string, fallback int) (int, error) {
	raw := r.URL.Query().Get(name)
	if raw == "" {
		return fallback, nil
	}
	n, err := strconv.Atoi(raw)
	if err != nil || n < 1 {
		return 0, &learning.ValidationError{Message: name + " must be a positive integer"}
	}
	return n, nil
}

func (s *Server) fail(w http.ResponseWriter, r *http.Request, err error) {
	status := statusFor(err)
	if status == http.StatusInternalServerError {
		s.logger.Error("request failed",
			zap.String("path", r.URL.Path),
			zap.Error(err),
		)
	}
	writeError(w, status, err.Error())
}

func (s *Server) handleDashboard(w http.ResponseWriter, r *http.Request) {
	limit, err := parseLimit(r, "limit", defaultDashboardLimit)
	if err != nil {
		s.fail(w, r, err)
		return
	}

	overview, err := s.store.Overview(limit)
	if err != nil {
		s.fail(w, r, err)
		return
	}

	writeOK(w, map[string]interface{}{
		"counts": overview.Counts,
		"total":  overview.Counts.Total(),
		"all":    viewEntries(overview.All),
	})
}

func (s *Server) handleSkills(w http.ResponseWriter, r *http.Request) {
	query := r.URL.Query().Get("query")
	list, err := s.catalog.List(query)
	if err != nil {
		s.fail(w, r, err)
		return
	}
	writeOK(w, map[string]interface{}{
		"total": len(list),
		"items": list,
	})
}

func (s *Server) handleSkill(w http.ResponseWriter, r *http.Request) {
	path := r.URL.Query().Get("path")
	if path == "" {
		s.fail(w, r, &learning.ValidationError{Message: "path is required"})
		return
	}
	content, err := s.catalog.Read(path)
	if err != nil {
		s.fail(w, r, err)
		return
	}
	writeOK(w, map[string]string{
		"path":    path,
		"content": content,
	})
}

func (s *Server) handleSearch(w http.ResponseWriter, r *http.Request) {
	query := r.URL.Query().Get("query")
	if query == "" {
		s.fail(w, r, &learning.ValidationError{Message: "query is required"})
		return
	}
	limit, err := parseLimit(r, "limit", defaultSearchLimit)
	if err != nil {
		s.fail(w, r, err)
		return
	}

	entries, err := s.store.Union()
	if err != nil {
		s.fail(w, r, err)
		return
	}
	idx, err := search.NewIndex(entries)
	if err != nil {
		s.fail(w, r, err)
		return
	}
	defer idx.Close()

	results, err := idx.Search(query, limit)
	if err != nil {
		s.fail(w, r, err)
		return
	}
	writeOK(w, map[string]interface{}{
		"total": len(results),
		"items": results,
	})
}

func (s *Server) handleLogs(w http.ResponseWriter, r *http.Request) {
	limit, err := parseLimit(r, "limit", defaultLogLimit)
	if err != nil {
		s.fail(w, r, err)
		return
	}
	records, err := s.actions.Recent(limit)
	if err != nil {
		s.fail(w, r, err)
		return
	}
	writeOK(w, map[string]interface{}{
		"total": len(records),
		"items": records,
	})
}

type reviewRequest struct {
	Source      string `json:"source"`
	Fingerprint string `json:"fingerprint"`
	Status      string `json:"status"`
	Reason      string `json:"reason"`
}

func (s *Server) handleReview(w http.ResponseWriter, r *http.Request) {
	var req reviewRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		s.fail(w, r, &learning.ValidationError{Message: "invalid JSON body: " + err.Error()})
		return
	}
	source, err := learning.ParseSource(req.Source)
	if err != nil {
		s.fail(w, r, err)
		return
	}
	status, err := learning.ParseStatus(req.Status)
	if err != nil {
		s.fail(w, r, err)
		return
	}

	s.writeMu.Lock()
	entry, err := s.store.Review(source, req.Fingerprint, status, req.Reason)
	s.writeMu.Unlock()
	if err != nil {
		s.fail(w, r, err)
		return
	}

	s.actions.Append(storage.ActionRecord{
		Type:   storage.ActionReview,
		Title:  entry.Title,
		Source: string(entry.Source),
		Status: string(entry.Status),
		Reason: entry.ReviewNote,
	})

	writeOK(w, entryView{Entry: entry, DisplayStatus: entry.DisplayStatus()})
}

type promoteRequest struct {
	Source      string `json:"source"`
	Fingerprint string `json:"fingerprint"`
	Slug        string `json:"slug"`
	Description string `json:"description"`
	Target      string `json:"target"`
}

func (s *Server) handlePromote(w http.ResponseWriter, r *http.Request) {
	var req promoteRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		s.fail(w, r, &learning.ValidationError{Message: "invalid JSON body: " + err.Error()})
		return
	}
	source, err := learning.ParseSource(req.Source)
	if err != nil {
		s.fail(w, r, err)
		return
	}

	s.writeMu.Lock()
	skillPath, err := s.store.Promote(source, req.Fingerprint, req.Slug, req.Description, req.Target)
	s.writeMu.Unlock()
	if err != nil {
		s.fail(w, r, err)
		return
	}

	s.actions.Append(storage.ActionRecord{
		Type:      storage.ActionPromote,
		Title:     req.Slug,
		Source:    req.Source,
		Status:    string(learning.StatusPromoted),
		SkillPath: skillPath,
	})

	writeOK(w, map[string]string{
		"skillPath": skillPath,
	})
}

type appendLogRequest struct {
	Type      string `json:"type"`
	Title     string `json:"title"`
	Source    string `json:"source"`
	Status    string `json:"status"`
	Reason    string `json:"reason"`
	SkillPath string `json:"skillPath"`
}

// handleAppendLog lets external tools record their own actions alongside
// review and promote history.
func (s *Server) handleAppendLog(w http.ResponseWriter, r *http.Request) {
	var req appendLogRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		s.fail(w, r, &learning.ValidationError{Message: "invalid JSON body: " + err.Error()})
		return
	}
	if req.Type == "" {
		s.fail(w, r, &learning.ValidationError{Message: "type is required"})
		return
	}
	if err := s.actions.Append(storage.ActionRecord{
		Type:      req.Type,
		Title:     req.Title,
		Source:    req.Source,
		Status:    req.Status,
		Reason:    req.Reason,
		SkillPath: req.SkillPath,
	}); err != nil {
		s.fail(w, r, err)
		return
	}
	writeOK(w, map[string]bool{"logged": true})
}
