// Package server exposes the active profile's bank over HTTP.
package server

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"time"

	"github.com/rs/zerolog"

	"github.com/abhisek/quizbank/internal/bank"
	"github.com/abhisek/quizbank/internal/logging"
	"github.com/abhisek/quizbank/internal/metrics"
	"github.com/abhisek/quizbank/internal/problemgen"
)

const maxBodyBytes = 64 << 10

// Server serves draws, results and stats for one bank engine.
type Server struct {
	engine     *bank.Engine
	metrics    *metrics.Metrics
	logger     zerolog.Logger
	gradeLevel int
}

// New builds a Server. gradeLevel is used when a request omits one.
func New(engine *bank.Engine, m *metrics.Metrics, logger zerolog.Logger, gradeLevel int) *Server {
	return &Server{
		engine:     engine,
		metrics:    m,
		logger:     logger.With().Str("component", "server").Logger(),
		gradeLevel: problemgen.ClampGrade(gradeLevel),
	}
}

// Handler returns the routed handler with request logging applied.
func (s *Server) Handler() http.Handler {
	mux := http.NewServeMux()

	mux.HandleFunc("GET /healthz", func(w http.ResponseWriter, r *http.Request) {
		writeJSON(w, http.StatusOK, map[string]any{"status": "ok", "profile": s.engine.ProfileID()})
	})
	mux.Handle("GET /metrics", s.metrics.Handler())

	mux.HandleFunc("POST /v1/subjects/{subject}/draw", s.handleDraw)
	mux.HandleFunc("POST /v1/subjects/{subject}/results", s.handleResults)
	mux.HandleFunc("GET /v1/stats", s.handleStats)

	return s.withLogging(mux)
}

// NewHTTPServer wraps handler in an http.Server with conservative timeouts.
func NewHTTPServer(addr string, handler http.Handler) *http.Server {
	return &http.Server{
		Addr:              addr,
		Handler:           handler,
		ReadHeaderTimeout: 5 * time.Second,
		ReadTimeout:       10 * time.Second,
		WriteTimeout:      30 * time.Second,
	}
}

type drawRequest struct {
	Difficulty int  `json:"difficulty"`
	Count      int  `json:"count"`
	GradeLevel *int `json:"grade_level"`
}

type questionDTO struct {
	ID           string   `json:"id"`
	Text         string   `json:"text"`
	Options      []string `json:"options"`
	CorrectIndex int      `json:"correct_index"`
	Explanation  string   `json:"explanation,omitempty"`
	Difficulty   int      `json:"difficulty"`
	Source       string   `json:"source"`
}

type drawResponse struct {
	Subject   problemgen.Subject `json:"subject"`
	Seeded    int                `json:"seeded,omitempty"`
	Questions []questionDTO      `json:"questions"`
}

func (s *Server) handleDraw(w http.ResponseWriter, r *http.Request) {
	subject, ok := s.subject(w, r)
	if !ok {
		return
	}

	req := drawRequest{Difficulty: 2}
	if err := decodeBody(r, &req); err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}
	if req.Count <= 0 {
		req.Count = s.engine.Policy().QuizSize
	}
	grade := s.grade(req.GradeLevel)
	difficulty := problemgen.ClampDifficulty(req.Difficulty)

	resp := drawResponse{Subject: subject}
	if s.engine.NeedsSeeding(subject) {
		resp.Seeded = s.engine.QuickSeed(subject)
		s.engine.EnrichWithAI(subject, difficulty, grade)
	}

	drawn := s.engine.Draw(subject, difficulty, req.Count)
	if drawn == nil {
		writeError(w, http.StatusServiceUnavailable, fmt.Sprintf("%s bank is not ready yet", subject))
		return
	}

	resp.Questions = make([]questionDTO, len(drawn))
	for i, q := range drawn {
		resp.Questions[i] = questionDTO{
			ID:           q.ID,
			Text:         q.Text,
			Options:      q.Options,
			CorrectIndex: q.CorrectIndex,
			Explanation:  q.Explanation,
			Difficulty:   q.Difficulty,
			Source:       string(q.Source),
		}
	}
	writeJSON(w, http.StatusOK, resp)
}

type answerDTO struct {
	ID      string `json:"id"`
	Text    string `json:"text"`
	Correct bool   `json:"correct"`
}

type resultsRequest struct {
	Difficulty int         `json:"difficulty"`
	GradeLevel *int        `json:"grade_level"`
	Answers    []answerDTO `json:"answers"`
}

type resultsResponse struct {
	Credited     int  `json:"credited"`
	Replenishing bool `json:"replenishing"`
}

func (s *Server) handleResults(w http.ResponseWriter, r *http.Request) {
	subject, ok := s.subject(w, r)
	if !ok {
		return
	}

	var req resultsRequest
	if err := decodeBody(r, &req); err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}
	if len(req.Answers) == 0 {
		writeError(w, http.StatusBadRequest, "answers must not be empty")
		return
	}

	drawn := make([]bank.BankedQuestion, len(req.Answers))
	correct := make([]bool, len(req.Answers))
	for i, a := range req.Answers {
		drawn[i] = bank.BankedQuestion{ID: a.ID, Question: problemgen.Question{Text: a.Text}}
		correct[i] = a.Correct
	}

	credited := s.engine.RecordResults(subject, drawn, correct)
	started := s.engine.Replenish(subject, problemgen.ClampDifficulty(req.Difficulty), s.grade(req.GradeLevel), correct)
	writeJSON(w, http.StatusOK, resultsResponse{Credited: credited, Replenishing: started})
}

type statsDTO struct {
	Subject         problemgen.Subject  `json:"subject"`
	Size            int                 `json:"size"`
	Mastered        int                 `json:"mastered"`
	Ready           bool                `json:"ready"`
	Replenishing    bool                `json:"replenishing"`
	ByDifficulty    map[int]int         `json:"by_difficulty"`
	BySource        map[bank.Source]int `json:"by_source"`
	LastReplenished *time.Time          `json:"last_replenished,omitempty"`
}

func (s *Server) handleStats(w http.ResponseWriter, r *http.Request) {
	policy := s.engine.Policy()
	stats := s.engine.Stats()
	out := make([]statsDTO, len(stats))
	for i, st := range stats {
		out[i] = statsDTO{
			Subject:      st.Subject,
			Size:         st.Size,
			Mastered:     st.Mastered,
			Ready:        st.Ready(policy),
			Replenishing: st.Replenishing,
			ByDifficulty: st.ByDifficulty,
			BySource:     st.BySource,
		}
		if !st.LastReplenished.IsZero() {
			t := st.LastReplenished
			out[i].LastReplenished = &t
		}
	}
	writeJSON(w, http.StatusOK, map[string]any{"profile": s.engine.ProfileID(), "subjects": out})
}

func (s *Server) subject(w http.ResponseWriter, r *http.Request) (problemgen.Subject, bool) {
	subject, err := problemgen.ParseSubject(r.PathValue("subject"))
	if err != nil {
		writeError(w, http.StatusNotFound, err.Error())
		return "", false
	}
	return subject, true
}

func (s *Server) grade(g *int) int {
	if g == nil {
		return s.gradeLevel
	}
	return problemgen.ClampGrade(*g)
}

// decodeBody decodes a JSON body into v. An empty body leaves v as is.
func decodeBody(r *http.Request, v any) error {
	dec := json.NewDecoder(io.LimitReader(r.Body, maxBodyBytes))
	dec.DisallowUnknownFields()
	if err := dec.Decode(v); err != nil && !errors.Is(err, io.EOF) {
		return fmt.Errorf("invalid request body: %w", err)
	}
	return nil
}

func writeJSON(w http.ResponseWriter, status int, payload any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(payload); err != nil {
		http.Error(w, "failed to encode response", http.StatusInternalServerError)
	}
}

func writeError(w http.ResponseWriter, status int, msg string) {
	writeJSON(w, status, map[string]string{"error": msg})
}

type statusRecorder struct {
	http.ResponseWriter
	status int
}

func (r *statusRecorder) WriteHeader(code int) {
	r.status = code
	r.ResponseWriter.WriteHeader(code)
}

func (s *Server) withLogging(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		rec := &statusRecorder{ResponseWriter: w, status: http.StatusOK}
		next.ServeHTTP(rec, r.WithContext(logging.IntoContext(r.Context(), s.logger)))
		s.logger.Debug().
			Str("method", r.Method).
			Str("path", r.URL.Path).
			Int("status", rec.status).
			Dur("took", time.Since(start)).
			Msg("request")
	})
}
