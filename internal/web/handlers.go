package web

import (
	"encoding/json"
	"net/http"

	"sheetfeed/internal/sheet"
	"sheetfeed/internal/store"
)

// handleTimeline serves the stored timeline entries. ?valid=true filters out
// invalid rows. Without a store it falls back to the cached result, so the
// endpoint works in database-less deployments too.
func (s *Server) handleTimeline(w http.ResponseWriter, r *http.Request) {
	onlyValid := r.URL.Query().Get("valid") == "true"

	if s.entries != nil {
		entries, err := s.entries.Entries(r.Context(), onlyValid)
		if err != nil {
			writeError(w, r, http.StatusInternalServerError, "failed to load timeline entries")
			return
		}
		if entries == nil {
			entries = []store.Entry{}
		}
		writeJSON(w, http.StatusOK, map[string]interface{}{"entries": entries})
		return
	}

	result, loadID, ok := s.service.LastResult()
	if !ok {
		writeError(w, r, http.StatusServiceUnavailable, "no load has completed yet")
		return
	}
	entries := make([]store.Entry, 0, len(result.Rows))
	for _, row := range result.Rows {
		if onlyValid && !row.Valid {
			continue
		}
		entries = append(entries, store.Entry{
			LoadID:   loadID,
			RowNum:   row.Num,
			Valid:    row.Valid,
			Values:   row.Values,
			Errors:   len(row.Errors),
			Warnings: len(row.Warnings),
		})
	}
	writeJSON(w, http.StatusOK, map[string]interface{}{"entries": entries})
}

// handleResult serves the full ProcessingResult of the latest load.
func (s *Server) handleResult(w http.ResponseWriter, r *http.Request) {
	result, loadID, ok := s.service.LastResult()
	if !ok {
		writeError(w, r, http.StatusServiceUnavailable, "no load has completed yet")
		return
	}
	writeJSON(w, http.StatusOK, map[string]interface{}{
		"loadId": loadID,
		"result": result,
	})
}

// handleReport serves the text summary report for the latest load.
func (s *Server) handleReport(w http.ResponseWriter, r *http.Request) {
	result, _, ok := s.service.LastResult()
	if !ok {
		writeError(w, r, http.StatusServiceUnavailable, "no load has completed yet")
		return
	}
	w.Header().Set("Content-Type", "text/plain; charset=utf-8")
	w.WriteHeader(http.StatusOK)
	w.Write([]byte(sheet.GenerateSummaryReport(result)))
}

// handleRefresh triggers a load now and returns its result. The load itself
// never fails; Success reflects whether the sheet processed cleanly.
func (s *Server) handleRefresh(w http.ResponseWriter, r *http.Request) {
	result := s.service.Refresh(r.Context())
	status := http.StatusOK
	if !result.Success {
		status = http.StatusUnprocessableEntity
	}
	writeJSON(w, status, result)
}

// configRequest is the JSON body for partial configuration updates. Only
// the pieces expressible over the wire are accepted; field specs carry
// validator functions and are configured in code.
type configRequest struct {
	SheetURL   *string `json:"sheetUrl"`
	Validation *struct {
		StrictMode         *bool `json:"strictMode"`
		LogMissingOptional *bool `json:"logMissingOptional"`
		ValidateURLs       *bool `json:"validateUrls"`
		ValidateYears      *bool `json:"validateYears"`
	} `json:"validation"`
	Debug *bool `json:"debug"`
}

// handleConfigUpdate merges a partial configuration change into the
// processor. Unnamed settings keep their current values.
func (s *Server) handleConfigUpdate(w http.ResponseWriter, r *http.Request) {
	var req configRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, r, http.StatusBadRequest, "invalid JSON body")
		return
	}

	update := sheet.ConfigUpdate{
		SheetURL: req.SheetURL,
		Debug:    req.Debug,
	}
	if req.Validation != nil {
		update.Validation = &sheet.ValidationUpdate{
			StrictMode:         req.Validation.StrictMode,
			LogMissingOptional: req.Validation.LogMissingOptional,
			ValidateURLs:       req.Validation.ValidateURLs,
			ValidateYears:      req.Validation.ValidateYears,
		}
	}

	s.service.UpdateConfig(update)
	writeJSON(w, http.StatusOK, map[string]string{"status": "updated"})
}

// fieldView is the JSON shape of one FieldSpec. Validators are functions and
// are reported as a presence flag only.
type fieldView struct {
	Name         string   `json:"name"`
	Aliases      []string `json:"aliases"`
	Required     bool     `json:"required"`
	Description  string   `json:"description,omitempty"`
	OutputName   string   `json:"outputName"`
	HasValidator bool     `json:"hasValidator"`
}

// handleFields serves the current field table.
func (s *Server) handleFields(w http.ResponseWriter, r *http.Request) {
	specs := s.service.FieldSpecs()
	views := make([]fieldView, 0, len(specs))
	for _, spec := range specs {
		views = append(views, fieldView{
			Name:         spec.Name,
			Aliases:      spec.Aliases,
			Required:     spec.Required,
			Description:  spec.Description,
			OutputName:   spec.Output(),
			HasValidator: spec.Validator != nil,
		})
	}
	writeJSON(w, http.StatusOK, map[string]interface{}{"fields": views})
}

// handleHealth reports liveness and, when a store is configured, database
// connectivity and the last persisted load.
func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	resp := map[string]interface{}{"status": "ok"}

	if s.entries != nil {
		if err := s.entries.Ping(r.Context()); err != nil {
			resp["status"] = "degraded"
			resp["database"] = "unreachable"
			writeJSON(w, http.StatusServiceUnavailable, resp)
			return
		}
		resp["database"] = "ok"
		if info, ok, err := s.entries.LastLoad(r.Context()); err == nil && ok {
			resp["lastLoad"] = info
		}
	}

	writeJSON(w, http.StatusOK, resp)
}
