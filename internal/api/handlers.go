package api

import (
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"

	"github.com/uxforge/refit/internal/agent"
	"github.com/uxforge/refit/internal/dialect"
	"github.com/uxforge/refit/internal/export"
	"github.com/uxforge/refit/internal/pipeline"
	"github.com/uxforge/refit/internal/requirements"
	"github.com/uxforge/refit/internal/session"
	"github.com/uxforge/refit/internal/speech"
)

type analyzeRequest struct {
	SessionID   string `json:"session_id,omitempty"`
	MeetingText string `json:"meeting_text"`
	FocusArea   string `json:"focus_area,omitempty"`
}

type improveRequest struct {
	SessionID    string          `json:"session_id,omitempty"`
	Requirements json.RawMessage `json:"requirements,omitempty"`
	CurrentCode  string          `json:"current_code"`
	Language     string          `json:"language,omitempty"`
	FocusArea    string          `json:"focus_area,omitempty"`
}

type summarizeRequest struct {
	SessionID   string `json:"session_id,omitempty"`
	MeetingText string `json:"meeting_text,omitempty"`
}

type askRequest struct {
	SessionID string `json:"session_id,omitempty"`
	Question  string `json:"question"`
}

func (s *Server) createSession(w http.ResponseWriter, r *http.Request) {
	sess := session.New()
	if err := s.sessions.Save(r.Context(), sess); err != nil {
		s.logger.Error("failed to save session", "error", err)
		writeError(w, http.StatusInternalServerError, "failed to create session")
		return
	}
	writeJSON(w, http.StatusCreated, sess)
}

func (s *Server) getSession(w http.ResponseWriter, r *http.Request) {
	sess, ok := s.loadSession(w, r, chi.URLParam(r, "id"))
	if !ok {
		return
	}
	writeJSON(w, http.StatusOK, sess)
}

func (s *Server) deleteSession(w http.ResponseWriter, r *http.Request) {
	id, err := uuid.Parse(chi.URLParam(r, "id"))
	if err != nil {
		writeError(w, http.StatusBadRequest, "invalid session id")
		return
	}
	if err := s.sessions.Delete(r.Context(), id); err != nil {
		s.logger.Error("failed to delete session", "session_id", id, "error", err)
		writeError(w, http.StatusInternalServerError, "failed to delete session")
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

// analyze runs meeting analysis. The pipeline reports its own failures
// inside the response body, so the HTTP status is 200 either way.
func (s *Server) analyze(w http.ResponseWriter, r *http.Request) {
	var req analyzeRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid JSON: "+err.Error())
		return
	}

	resp := s.pipe.Analyze(r.Context(), req.MeetingText, req.FocusArea)

	s.updateSession(r, req.SessionID, func(sess *session.Session) {
		sess.Transcript = req.MeetingText
		sess.FocusArea = req.FocusArea
		sess.Analysis = &resp
	})
	writeJSON(w, http.StatusOK, resp)
}

func (s *Server) improve(w http.ResponseWriter, r *http.Request) {
	var req improveRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid JSON: "+err.Error())
		return
	}

	parsed := s.resolveRequirements(r, req)

	d := dialect.Detect(req.CurrentCode)
	if pinned, ok := dialect.Parse(req.Language); ok {
		d = pinned
	}

	resp := s.pipe.Improve(r.Context(), parsed, req.CurrentCode, d, req.FocusArea)

	s.updateSession(r, req.SessionID, func(sess *session.Session) {
		sess.Dialect = d
		sess.Improvement = &resp
	})
	writeJSON(w, http.StatusOK, resp)
}

// resolveRequirements accepts requirements as a JSON object, a string,
// or nothing at all, falling back to the session's stored analysis.
func (s *Server) resolveRequirements(r *http.Request, req improveRequest) requirements.Parsed {
	if len(req.Requirements) > 0 {
		var obj map[string]any
		if err := json.Unmarshal(req.Requirements, &obj); err == nil {
			return requirements.FromObject(obj)
		}
		var text string
		if err := json.Unmarshal(req.Requirements, &text); err == nil {
			return requirements.Classify(text)
		}
		return requirements.Classify(string(req.Requirements))
	}

	if req.SessionID != "" {
		if id, err := uuid.Parse(req.SessionID); err == nil {
			if sess, err := s.sessions.Get(r.Context(), id); err == nil &&
				sess.Analysis != nil && sess.Analysis.Data != nil {
				return requirements.FromObject(sess.Analysis.Data)
			}
		}
	}
	return requirements.Parsed{}
}

func (s *Server) summarize(w http.ResponseWriter, r *http.Request) {
	var req summarizeRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid JSON: "+err.Error())
		return
	}

	text := req.MeetingText
	if text == "" && req.SessionID != "" {
		if id, err := uuid.Parse(req.SessionID); err == nil {
			if sess, err := s.sessions.Get(r.Context(), id); err == nil {
				text = sess.Transcript
			}
		}
	}

	resp := s.pipe.Summarize(r.Context(), text)

	if resp.Success {
		s.updateSession(r, req.SessionID, func(sess *session.Session) {
			sess.Summary = resp.Raw
		})
	}
	writeJSON(w, http.StatusOK, resp)
}

func (s *Server) ask(w http.ResponseWriter, r *http.Request) {
	var req askRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid JSON: "+err.Error())
		return
	}
	if strings.TrimSpace(req.Question) == "" {
		writeError(w, http.StatusBadRequest, "question is required")
		return
	}

	result := s.assistant.Ask(r.Context(), req.Question)

	if result.State == agent.StateAnswered {
		s.updateSession(r, req.SessionID, func(sess *session.Session) {
			sess.Answers = append(sess.Answers, session.Answer{
				Question:       req.Question,
				Answer:         result.Answer,
				Tools:          result.Tools,
				CeilingLimited: result.CeilingLimited,
				AskedAt:        time.Now().UTC(),
			})
		})
	}
	writeJSON(w, http.StatusOK, result)
}

func (s *Server) transcribe(w http.ResponseWriter, r *http.Request) {
	if s.transcriber == nil {
		writeError(w, http.StatusServiceUnavailable, "transcription is not configured")
		return
	}

	audio, err := io.ReadAll(io.LimitReader(r.Body, MaxUploadSize+1))
	if err != nil {
		writeError(w, http.StatusBadRequest, "failed to read audio")
		return
	}

	info, err := speech.ValidateWAV(audio)
	if err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}

	transcript, err := s.transcriber.Transcribe(r.Context(), audio)
	if err != nil {
		s.logger.Error("transcription failed", "error", err)
		writeError(w, http.StatusBadGateway, "transcription failed: "+err.Error())
		return
	}

	s.updateSession(r, r.URL.Query().Get("session_id"), func(sess *session.Session) {
		sess.Transcript = transcript
	})

	writeJSON(w, http.StatusOK, map[string]any{
		"transcript":    transcript,
		"quality_score": info.QualityScore(),
		"remediation":   info.Remediation(),
	})
}

func (s *Server) exportArtifact(w http.ResponseWriter, r *http.Request) {
	sess, ok := s.loadSession(w, r, chi.URLParam(r, "id"))
	if !ok {
		return
	}

	switch chi.URLParam(r, "artifact") {
	case "analysis.json":
		if !hasAnalysis(sess) {
			writeError(w, http.StatusNotFound, "no analysis in session")
			return
		}
		data, err := export.AnalysisJSON(pipeline.DecodeRequirementSet(sess.Analysis.Data))
		if err != nil {
			writeError(w, http.StatusInternalServerError, "failed to render analysis")
			return
		}
		writeAttachment(w, export.AnalysisJSONName, "application/json", data)

	case "analysis.md":
		if !hasAnalysis(sess) {
			writeError(w, http.StatusNotFound, "no analysis in session")
			return
		}
		md := export.AnalysisMarkdown(pipeline.DecodeRequirementSet(sess.Analysis.Data))
		writeAttachment(w, export.AnalysisMarkdownName, "text/markdown", []byte(md))

	case "code":
		if !hasImprovement(sess) {
			writeError(w, http.StatusNotFound, "no improvement in session")
			return
		}
		ir := pipeline.DecodeImprovementResult(sess.Improvement.Data)
		writeAttachment(w, export.ImprovedCodeName(sess.Dialect), "text/plain; charset=utf-8", []byte(ir.ImprovedCode))

	case "report.md":
		if !hasImprovement(sess) {
			writeError(w, http.StatusNotFound, "no improvement in session")
			return
		}
		ir := pipeline.DecodeImprovementResult(sess.Improvement.Data)
		md := export.ImprovementReport(ir, sess.Dialect)
		writeAttachment(w, export.ImprovementReportName, "text/markdown", []byte(md))

	case "transcript.txt":
		if sess.Transcript == "" {
			writeError(w, http.StatusNotFound, "no transcript in session")
			return
		}
		writeAttachment(w, export.TranscriptName, "text/plain; charset=utf-8", []byte(sess.Transcript))

	case "summary.md":
		if sess.Summary == "" {
			writeError(w, http.StatusNotFound, "no summary in session")
			return
		}
		writeAttachment(w, export.SummaryName, "text/markdown", []byte(export.SummaryMarkdown(sess.Summary)))

	case "answer.md":
		if len(sess.Answers) == 0 {
			writeError(w, http.StatusNotFound, "no answers in session")
			return
		}
		last := sess.Answers[len(sess.Answers)-1]
		md := export.AnswerMarkdown(last.Question, last.Answer, last.Tools)
		writeAttachment(w, export.AnswerName, "text/markdown", []byte(md))

	default:
		writeError(w, http.StatusNotFound, "unknown artifact")
	}
}

func hasAnalysis(sess *session.Session) bool {
	return sess.Analysis != nil && sess.Analysis.Data != nil
}

func hasImprovement(sess *session.Session) bool {
	return sess.Improvement != nil && sess.Improvement.Data != nil
}

func (s *Server) loadSession(w http.ResponseWriter, r *http.Request, rawID string) (*session.Session, bool) {
	id, err := uuid.Parse(rawID)
	if err != nil {
		writeError(w, http.StatusBadRequest, "invalid session id")
		return nil, false
	}
	sess, err := s.sessions.Get(r.Context(), id)
	if errors.Is(err, session.ErrNotFound) {
		writeError(w, http.StatusNotFound, "session not found")
		return nil, false
	}
	if err != nil {
		s.logger.Error("failed to load session", "session_id", id, "error", err)
		writeError(w, http.StatusInternalServerError, "failed to load session")
		return nil, false
	}
	return sess, true
}

// updateSession applies fn to the named session, if one was named and
// still exists. Session updates never fail the request.
func (s *Server) updateSession(r *http.Request, rawID string, fn func(*session.Session)) {
	if rawID == "" {
		return
	}
	id, err := uuid.Parse(rawID)
	if err != nil {
		return
	}
	sess, err := s.sessions.Get(r.Context(), id)
	if err != nil {
		return
	}
	fn(sess)
	if err := s.sessions.Save(r.Context(), sess); err != nil {
		s.logger.Warn("failed to update session", "session_id", id, "error", err)
	}
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(v)
}

func writeError(w http.ResponseWriter, status int, msg string) {
	writeJSON(w, status, map[string]string{"error": msg})
}

func writeAttachment(w http.ResponseWriter, filename, contentType string, data []byte) {
	w.Header().Set("Content-Type", contentType)
	w.Header().Set("Content-Disposition", `attachment; filename="`+filename+`"`)
	w.WriteHeader(http.StatusOK)
	w.Write(data)
}
