package server

import (
	"encoding/json"
	"io"
	"net/http"

	"github.com/jonathan/job-autofill/internal/agent"
	"github.com/jonathan/job-autofill/internal/dom"
	"github.com/jonathan/job-autofill/internal/types"
)

// pageRequest attaches a page to a form operation: either raw HTML analyzed
// synthetically, or a URL opened in a headless browser session.
type pageRequest struct {
	URL  string `json:"url"`
	HTML string `json:"html"`
}

// attach builds the Document for a request. The caller must invoke the
// returned cleanup func.
func (s *Server) attach(r *http.Request) (dom.Document, func(), error) {
	var req pageRequest
	if err := readJSON(r, &req); err != nil {
		return nil, nil, err
	}

	if req.HTML != "" {
		page, err := dom.NewPage(req.HTML)
		if err != nil {
			return nil, nil, &agent.Error{Code: agent.CodePageNotLoaded, Message: "could not parse page HTML", Cause: err}
		}
		return page, func() {}, nil
	}

	if req.URL == "" {
		return nil, nil, &agent.Error{Code: agent.CodePageNotLoaded, Message: "request needs a url or html field"}
	}

	opts := dom.DefaultBrowserOptions()
	opts.Headless = s.headless
	opts.Verbose = s.verbose
	browser, err := dom.NewBrowser(r.Context(), req.URL, opts)
	if err != nil {
		return nil, nil, &agent.Error{Code: agent.CodePageNotLoaded, Message: "could not open page", Cause: err}
	}
	return browser, browser.Close, nil
}

func readJSON(r *http.Request, dst any) error {
	body, err := io.ReadAll(io.LimitReader(r.Body, 16<<20))
	if err != nil {
		return err
	}
	return json.Unmarshal(body, dst)
}

// handleGetProfile returns the saved profile, or null when none exists.
func (s *Server) handleGetProfile(w http.ResponseWriter, r *http.Request) {
	profile, err := s.agent.Profile(r.Context())
	if err != nil {
		s.agentError(w, err)
		return
	}
	s.jsonResponse(w, http.StatusOK, types.ProfileResponse{Success: true, Profile: profile})
}

// handleSaveProfile validates and persists the request body as the profile.
func (s *Server) handleSaveProfile(w http.ResponseWriter, r *http.Request) {
	body, err := io.ReadAll(io.LimitReader(r.Body, 4<<20))
	if err != nil {
		s.badRequest(w, "could not read request body")
		return
	}

	profile, err := s.agent.SaveProfile(r.Context(), body)
	if err != nil {
		s.agentError(w, err)
		return
	}
	s.jsonResponse(w, http.StatusOK, types.ProfileResponse{Success: true, Profile: profile})
}

// handleClearProfile deletes the saved profile.
func (s *Server) handleClearProfile(w http.ResponseWriter, r *http.Request) {
	if err := s.agent.ClearProfile(r.Context()); err != nil {
		s.agentError(w, err)
		return
	}
	s.jsonResponse(w, http.StatusOK, map[string]bool{"success": true})
}

// handleHasProfile reports whether a profile is saved.
func (s *Server) handleHasProfile(w http.ResponseWriter, r *http.Request) {
	has, err := s.agent.HasProfile(r.Context())
	if err != nil {
		s.agentError(w, err)
		return
	}
	s.jsonResponse(w, http.StatusOK, types.HasProfileResponse{Success: true, HasProfile: has})
}

// handleCheckForms returns the quick form summary for a page.
func (s *Server) handleCheckForms(w http.ResponseWriter, r *http.Request) {
	doc, cleanup, err := s.attach(r)
	if err != nil {
		s.agentError(w, err)
		return
	}
	defer cleanup()

	resp, err := s.agent.CheckForms(r.Context(), doc)
	if err != nil {
		s.agentError(w, err)
		return
	}
	s.jsonResponse(w, http.StatusOK, resp)
}

// handleAnalyzeForms returns the full analysis of a page's best form.
func (s *Server) handleAnalyzeForms(w http.ResponseWriter, r *http.Request) {
	doc, cleanup, err := s.attach(r)
	if err != nil {
		s.agentError(w, err)
		return
	}
	defer cleanup()

	resp, err := s.agent.AnalyzeForms(r.Context(), doc)
	if err != nil {
		s.agentError(w, err)
		return
	}
	s.jsonResponse(w, http.StatusOK, resp)
}

// handleFillForm fills the page's best form with the saved profile.
func (s *Server) handleFillForm(w http.ResponseWriter, r *http.Request) {
	doc, cleanup, err := s.attach(r)
	if err != nil {
		s.agentError(w, err)
		return
	}
	defer cleanup()

	resp, err := s.agent.FillForm(r.Context(), doc)
	if err != nil {
		s.agentError(w, err)
		return
	}
	s.jsonResponse(w, http.StatusOK, resp)
}

// handleHighlightFields colors the page's fields by classification
// confidence.
func (s *Server) handleHighlightFields(w http.ResponseWriter, r *http.Request) {
	doc, cleanup, err := s.attach(r)
	if err != nil {
		s.agentError(w, err)
		return
	}
	defer cleanup()

	resp, err := s.agent.HighlightFields(r.Context(), doc)
	if err != nil {
		s.agentError(w, err)
		return
	}
	s.jsonResponse(w, http.StatusOK, resp)
}
