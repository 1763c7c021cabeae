package http

import (
	"bytes"
	"encoding/base64"
	"errors"
	"fmt"
	"html/template"
	"log/slog"
	"net/http"
	"slices"
	"strconv"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/google/uuid"

	"dialoguebuilder/internal/catalog"
	"dialoguebuilder/internal/dialogue"
	"dialoguebuilder/internal/storage"
)

const (
	sessionCookie   = "session"
	defaultLanguage = "en-US"
	maxChars        = 3000
)

// Server wires HTTP routing for the dialogue builder.
type Server struct {
	logger    *slog.Logger
	catalog   *catalog.Catalog
	sessions  *storage.SessionStore
	assembler *dialogue.Assembler
	templates *template.Template
	staticFS  http.FileSystem
}

// NewServer constructs a chi router implementing http.Handler.
func NewServer(logger *slog.Logger, cat *catalog.Catalog, sessions *storage.SessionStore, assembler *dialogue.Assembler, templates *template.Template, staticFS http.FileSystem) http.Handler {
	srv := &Server{
		logger:    logger,
		catalog:   cat,
		sessions:  sessions,
		assembler: assembler,
		templates: templates,
		staticFS:  staticFS,
	}

	r := chi.NewRouter()
	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)
	r.Use(middleware.Logger)
	r.Use(middleware.Recoverer)

	r.Handle("/static/*", http.StripPrefix("/static/", http.FileServer(srv.staticFS)))

	r.Get("/", srv.handleIndex)
	r.Post("/", srv.handleUpdate)
	r.Post("/turns", srv.handleAddTurn)
	r.Post("/turns/{index}/remove", srv.handleRemoveTurn)
	r.Post("/generate", srv.handleGenerate)
	r.Get("/download", srv.handleDownload)
	r.Post("/reset", srv.handleReset)

	return r
}

func (s *Server) handleIndex(w http.ResponseWriter, r *http.Request) {
	sess := s.getSession(w, r)
	sess.Lock()
	defer sess.Unlock()
	s.renderIndex(w, sess, "", "")
}

// handleUpdate applies global setting and per-speaker edits, then
// re-renders. Used by the auto-submitting selectors.
func (s *Server) handleUpdate(w http.ResponseWriter, r *http.Request) {
	sess := s.getSession(w, r)
	sess.Lock()
	defer sess.Unlock()

	if !s.applyForm(w, r, sess) {
		return
	}
	http.Redirect(w, r, "/", http.StatusSeeOther)
}

func (s *Server) handleAddTurn(w http.ResponseWriter, r *http.Request) {
	sess := s.getSession(w, r)
	sess.Lock()
	defer sess.Unlock()

	if !s.applyForm(w, r, sess) {
		return
	}

	voices := s.filteredVoices(sess)
	if err := sess.AddTurn(catalog.VoiceIDs(voices)); err != nil {
		s.renderIndex(w, sess, "", err.Error())
		return
	}
	http.Redirect(w, r, "/", http.StatusSeeOther)
}

func (s *Server) handleRemoveTurn(w http.ResponseWriter, r *http.Request) {
	sess := s.getSession(w, r)
	sess.Lock()
	defer sess.Unlock()

	if !s.applyForm(w, r, sess) {
		return
	}

	index, err := strconv.Atoi(chi.URLParam(r, "index"))
	if err != nil {
		s.clientError(w, http.StatusBadRequest, "invalid speaker index")
		return
	}
	sess.RemoveTurn(index)
	http.Redirect(w, r, "/", http.StatusSeeOther)
}

// handleGenerate runs assembly while holding the session lock, so
// concurrent edits to the same session wait for the run to finish.
func (s *Server) handleGenerate(w http.ResponseWriter, r *http.Request) {
	sess := s.getSession(w, r)
	sess.Lock()
	defer sess.Unlock()

	if !s.applyForm(w, r, sess) {
		return
	}

	sess.Artifact = nil

	artifact, err := s.assembler.Assemble(r.Context(), sess.SnapshotTurns(), sess.Settings)
	if err != nil {
		var synthErr *dialogue.SynthesisError
		switch {
		case errors.Is(err, dialogue.ErrEmptyDialogue):
			s.renderIndex(w, sess, "No dialogue to synthesise.", "")
		case errors.As(err, &synthErr):
			s.renderIndex(w, sess, "", fmt.Sprintf("Synthesis failed with voice %q. Fix that speaker and try again.", synthErr.VoiceID))
		default:
			s.serverError(w, err)
		}
		return
	}

	sess.Artifact = &artifact
	s.renderIndex(w, sess, "", "")
}

func (s *Server) handleDownload(w http.ResponseWriter, r *http.Request) {
	sess := s.getSession(w, r)

	// An artifact is never mutated after it is stored, so holding the
	// pointer outside the lock is safe.
	sess.Lock()
	artifact := sess.Artifact
	sess.Unlock()

	if artifact == nil {
		s.clientError(w, http.StatusNotFound, "no generated dialogue yet")
		return
	}

	w.Header().Set("Content-Type", artifact.ContentType)
	w.Header().Set("Content-Disposition", fmt.Sprintf("attachment; filename=%s", artifact.FileName))
	w.Write(artifact.Data)
}

// handleReset discards the caller's session entirely; the next request
// starts over with freshly seeded speakers.
func (s *Server) handleReset(w http.ResponseWriter, r *http.Request) {
	if cookie, err := r.Cookie(sessionCookie); err == nil {
		if id, err := uuid.Parse(cookie.Value); err == nil {
			s.sessions.Delete(id)
		}
	}

	http.SetCookie(w, &http.Cookie{
		Name:     sessionCookie,
		Value:    "",
		Path:     "/",
		MaxAge:   -1,
		HttpOnly: true,
		SameSite: http.SameSiteLaxMode,
	})
	http.Redirect(w, r, "/", http.StatusSeeOther)
}

// getSession loads the caller's session, creating and seeding a fresh one
// when the cookie is missing or stale.
func (s *Server) getSession(w http.ResponseWriter, r *http.Request) *dialogue.Session {
	if cookie, err := r.Cookie(sessionCookie); err == nil {
		if id, err := uuid.Parse(cookie.Value); err == nil {
			if sess := s.sessions.Get(id); sess != nil {
				return sess
			}
		}
	}

	settings := dialogue.Settings{
		Engine:       dialogue.Engines[0],
		SampleRate:   s.sampleRates()[0],
		LanguageCode: s.defaultLanguage(),
	}
	voices := s.catalog.Filter(settings.LanguageCode, settings.Engine)
	sess := dialogue.NewSession(settings, catalog.VoiceIDs(voices))
	s.sessions.Put(sess)

	http.SetCookie(w, &http.Cookie{
		Name:     sessionCookie,
		Value:    sess.ID.String(),
		Path:     "/",
		HttpOnly: true,
		SameSite: http.SameSiteLaxMode,
	})
	return sess
}

func (s *Server) defaultLanguage() string {
	languages := s.catalog.Languages()
	if slices.Contains(languages, defaultLanguage) {
		return defaultLanguage
	}
	if len(languages) > 0 {
		return languages[0]
	}
	return defaultLanguage
}

// applyForm parses the posted form into the session: global settings
// first, then every speaker's voice, lines, and pause. Voices invalidated
// by a filter change are silently reset to the first valid voice. Caller
// holds the session lock.
func (s *Server) applyForm(w http.ResponseWriter, r *http.Request, sess *dialogue.Session) bool {
	if err := r.ParseForm(); err != nil {
		s.clientError(w, http.StatusBadRequest, "invalid form data")
		return false
	}

	if engine := dialogue.Engine(r.FormValue("engine")); slices.Contains(dialogue.Engines, engine) {
		sess.Settings.Engine = engine
	}
	if rate, err := strconv.Atoi(r.FormValue("sample_rate")); err == nil {
		if slices.Contains(s.sampleRates(), dialogue.SampleRate(rate)) {
			sess.Settings.SampleRate = dialogue.SampleRate(rate)
		}
	}
	if lang := r.FormValue("language"); slices.Contains(s.catalog.Languages(), lang) {
		sess.Settings.LanguageCode = lang
	}

	for i := range sess.Turns {
		if v := r.FormValue(fmt.Sprintf("voice_%d", i)); v != "" {
			sess.Turns[i].VoiceID = v
		}
		if _, ok := r.Form[fmt.Sprintf("lines_%d", i)]; ok {
			sess.Turns[i].RawText = r.FormValue(fmt.Sprintf("lines_%d", i))
		}
		if ms, err := strconv.Atoi(r.FormValue(fmt.Sprintf("pause_%d", i))); err == nil {
			sess.Turns[i].PauseAfter = dialogue.ClampPause(time.Duration(ms) * time.Millisecond)
		}
	}

	sess.EnsureVoices(catalog.VoiceIDs(s.filteredVoices(sess)))
	return true
}

func (s *Server) filteredVoices(sess *dialogue.Session) []catalog.Voice {
	return s.catalog.Filter(sess.Settings.LanguageCode, sess.Settings.Engine)
}

// sampleRates lists the rates valid for the configured concatenation
// strategy's provider format.
func (s *Server) sampleRates() []dialogue.SampleRate {
	return dialogue.SampleRatesFor(s.assembler.Format())
}

func (s *Server) renderIndex(w http.ResponseWriter, sess *dialogue.Session, notice, errMsg string) {
	voices := s.filteredVoices(sess)

	payload := map[string]any{
		"Engines":     dialogue.Engines,
		"SampleRates": s.sampleRates(),
		"Languages":   s.catalog.Languages(),
		"Settings":    sess.Settings,
		"Voices":      voices,
		"Turns":       sess.Turns,
		"NoVoices":    len(voices) == 0,
		"MaxChars":    maxChars,
		"CanAddTurn":  len(sess.Turns) < dialogue.MaxTurns,
		"Notice":      notice,
		"Error":       errMsg,
	}

	if sess.Artifact != nil {
		payload["Artifact"] = map[string]any{
			"DataURL":  template.URL("data:" + sess.Artifact.ContentType + ";base64," + base64.StdEncoding.EncodeToString(sess.Artifact.Data)),
			"FileName": sess.Artifact.FileName,
		}
	}

	s.renderPage(w, "Dialogue Builder", "index.html", payload)
}

type pageView struct {
	Title string
	Body  template.HTML
}

func (s *Server) renderPage(w http.ResponseWriter, title, contentTemplate string, payload any) {
	var body bytes.Buffer
	if err := s.templates.ExecuteTemplate(&body, contentTemplate, payload); err != nil {
		s.logger.Error("render template failed", slog.String("template", contentTemplate), slog.String("error", err.Error()))
		http.Error(w, "template error", http.StatusInternalServerError)
		return
	}

	data := pageView{
		Title: title,
		Body:  template.HTML(body.String()),
	}

	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	if err := s.templates.ExecuteTemplate(w, "base.html", data); err != nil {
		s.logger.Error("render template failed", slog.String("template", "base.html"), slog.String("error", err.Error()))
		http.Error(w, "template error", http.StatusInternalServerError)
	}
}

func (s *Server) serverError(w http.ResponseWriter, err error) {
	s.logger.Error("request error", slog.String("error", err.Error()))
	http.Error(w, "internal server error", http.StatusInternalServerError)
}

func (s *Server) clientError(w http.ResponseWriter, status int, msg string) {
	http.Error(w, msg, status)
}
