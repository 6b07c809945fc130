package cmd

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strconv"
	"sync"
	"time"

	"github.com/bep/debounce"
	"github.com/google/uuid"
	"github.com/gorilla/mux"
	"github.com/rs/cors"
	"github.com/scorefall/scorefall-ink/constants"
	"github.com/scorefall/scorefall-ink/engrave"
	"github.com/scorefall/scorefall-ink/glyph"
	"github.com/scorefall/scorefall-ink/model"
	"github.com/scorefall/scorefall-ink/render"
	"github.com/scorefall/scorefall-ink/scof"
	"github.com/scorefall/scorefall-ink/score"
	"github.com/scorefall/scorefall-ink/util"
)

// session is one live editing session. Edits reassemble the score
// immediately but relayout is debounced so a burst of keystrokes costs one
// layout pass.
type session struct {
	mu       sync.Mutex
	file     *scof.File
	score    *score.Score
	lines    []engrave.Line
	relayout func(func())
}

type server struct {
	mu        sync.Mutex
	sessions  map[string]*session
	metrics   *glyph.Metrics
	pageWidth float64
}

// NewRouter builds the HTTP API. Split out from serve so tests can mount
// it on httptest.
func NewRouter() http.Handler {
	s := &server{
		sessions:  make(map[string]*session),
		metrics:   glyph.DefaultMetrics(),
		pageWidth: constants.GetPageWidth(),
	}
	router := mux.NewRouter().StrictSlash(true)
	router.HandleFunc("/score", s.handleList).Methods("GET")
	router.HandleFunc("/score", s.handleCreate).Methods("POST")
	router.HandleFunc("/score/{id}/bar/{bar}/chan/{chn}", s.handleUpdateChan).Methods("PUT")
	router.HandleFunc("/score/{id}/layout", s.handleLayout).Methods("GET")
	router.HandleFunc("/score/{id}/svg", s.handleSVG).Methods("GET")
	return cors.Default().Handler(router)
}

func writeBarErrors(w http.ResponseWriter, errs []score.BarError) {
	body := make([]model.BarErrorBody, 0, len(errs))
	for _, e := range errs {
		body = append(body, model.BarErrorBody{Bar: e.Bar, Chan: e.Chan, Message: e.Err.Error()})
	}
	w.WriteHeader(http.StatusBadRequest)
	json.NewEncoder(w).Encode(body)
}

func (s *server) handleCreate(w http.ResponseWriter, r *http.Request) {
	reqBody, err := io.ReadAll(r.Body)
	if err != nil {
		http.Error(w, "Could not read request body", 400)
		return
	}

	f, err := scof.Load(bytes.NewReader(reqBody), int64(len(reqBody)))
	if err != nil {
		http.Error(w, "Not a scof container: "+err.Error(), 400)
		return
	}

	sc, errs := score.Assemble(f.Sigs, f.Bars)
	if len(errs) > 0 {
		writeBarErrors(w, errs)
		return
	}

	lines, err := engrave.Layout(sc, s.metrics, s.pageWidth, engrave.DefaultOptions())
	if err != nil {
		http.Error(w, err.Error(), 422)
		return
	}

	id := uuid.NewString()
	sess := &session{
		file:     f,
		score:    sc,
		lines:    lines,
		relayout: debounce.New(100 * time.Millisecond),
	}
	s.mu.Lock()
	s.sessions[id] = sess
	s.mu.Unlock()

	json.NewEncoder(w).Encode(model.CreateScoreResponse{ID: id})
}

func (s *server) handleList(w http.ResponseWriter, r *http.Request) {
	s.mu.Lock()
	ids := util.SortedKeys(s.sessions)
	s.mu.Unlock()
	json.NewEncoder(w).Encode(ids)
}

func (s *server) getSession(id string) *session {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.sessions[id]
}

func (s *server) handleUpdateChan(w http.ResponseWriter, r *http.Request) {
	vars := mux.Vars(r)
	sess := s.getSession(vars["id"])
	if sess == nil {
		http.Error(w, "No such score", 404)
		return
	}
	bar, err1 := strconv.Atoi(vars["bar"])
	chn, err2 := strconv.Atoi(vars["chn"])
	if err1 != nil || err2 != nil {
		http.Error(w, "Bad bar or chan number", 400)
		return
	}

	var input model.UpdateChanRequestBody
	if err := json.NewDecoder(r.Body).Decode(&input); err != nil {
		http.Error(w, "Could not unmarshal request body: "+err.Error(), 400)
		return
	}

	sess.mu.Lock()
	defer sess.mu.Unlock()
	if bar < 0 || bar >= len(sess.file.Bars) {
		http.Error(w, "No such bar", 404)
		return
	}
	if chn < 0 || chn >= len(sess.file.Bars[bar].Chans) {
		http.Error(w, "No such chan", 404)
		return
	}

	prev := sess.file.Bars[bar].Chans[chn]
	sess.file.Bars[bar].Chans[chn].Notes = input.Notes
	if input.Lyric != "" {
		sess.file.Bars[bar].Chans[chn].Lyric = input.Lyric
	}

	sc, errs := score.Assemble(sess.file.Sigs, sess.file.Bars)
	if len(errs) > 0 {
		// Reject the edit, keep the last good score.
		sess.file.Bars[bar].Chans[chn] = prev
		writeBarErrors(w, errs)
		return
	}
	sess.score = sc

	sess.relayout(func() {
		sess.mu.Lock()
		defer sess.mu.Unlock()
		lines, err := engrave.Layout(sess.score, s.metrics, s.pageWidth, engrave.DefaultOptions())
		if err != nil {
			fmt.Printf("Relayout failed: %v\n", err)
			return
		}
		sess.lines = lines
	})
	w.WriteHeader(http.StatusNoContent)
}

func (s *server) handleLayout(w http.ResponseWriter, r *http.Request) {
	sess := s.getSession(mux.Vars(r)["id"])
	if sess == nil {
		http.Error(w, "No such score", 404)
		return
	}
	sess.mu.Lock()
	defer sess.mu.Unlock()
	json.NewEncoder(w).Encode(sess.lines)
}

func (s *server) handleSVG(w http.ResponseWriter, r *http.Request) {
	sess := s.getSession(mux.Vars(r)["id"])
	if sess == nil {
		http.Error(w, "No such score", 404)
		return
	}
	sess.mu.Lock()
	defer sess.mu.Unlock()
	w.Header().Set("Content-Type", "image/svg+xml")
	io.WriteString(w, render.Render(sess.score, sess.lines, s.metrics, s.pageWidth))
}
