package http

import (
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"sync"
	"time"

	"github.com/aretw0/walkthrough"
	"github.com/aretw0/walkthrough/api"
	"github.com/aretw0/walkthrough/internal/logging"
	"github.com/aretw0/walkthrough/internal/runtime"
	"github.com/aretw0/walkthrough/pkg/adapters/memory"
	"github.com/aretw0/walkthrough/pkg/catalog"
	"github.com/aretw0/walkthrough/pkg/domain"
	"github.com/aretw0/walkthrough/pkg/ports"
	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// Defaults for server-driven tours.
const (
	DefaultTourTTL  = 30 * time.Minute
	DefaultMaxTours = 10000
)

// errTooManyTours is returned when the tour registry is full.
var errTooManyTours = errors.New("too many tours in progress")

// Server exposes step catalogs, seen flags and server-driven tours over HTTP.
// A server-driven tour runs against a recording surface; every response carries
// the commands the browser must apply, in order. Tours idle for longer than the
// tour TTL are evicted.
type Server struct {
	catalog  *catalog.Catalog
	seen     ports.SeenStore
	seenKey  string
	seenTTL  time.Duration
	hooks    domain.LifecycleHooks
	logger   *slog.Logger
	gatherer prometheus.Gatherer
	tourTTL  time.Duration
	maxTours int
	now      func() time.Time

	mu    sync.Mutex
	tours map[string]*session
}

type session struct {
	// mu keeps an advance and the drain of its commands together.
	mu       sync.Mutex
	tour     *walkthrough.Tour
	surface  *memory.Surface
	blocker  *memory.Blocker
	lastSeen time.Time // guarded by Server.mu
}

// Option configures the Server.
type Option func(*Server)

// WithCatalog replaces the built-in catalog.
func WithCatalog(c *catalog.Catalog) Option {
	return func(s *Server) { s.catalog = c }
}

// WithSeenFlag sets the base key and expiry of the seen flag. Per-user keys are "<key>:<user>".
func WithSeenFlag(key string, ttl time.Duration) Option {
	return func(s *Server) {
		if key != "" {
			s.seenKey = key
		}
		if ttl > 0 {
			s.seenTTL = ttl
		}
	}
}

// WithLifecycleHooks attaches hooks to every tour the server creates.
func WithLifecycleHooks(hooks domain.LifecycleHooks) Option {
	return func(s *Server) { s.hooks = hooks }
}

// WithLogger sets the request logger.
func WithLogger(logger *slog.Logger) Option {
	return func(s *Server) { s.logger = logger }
}

// WithMetrics serves the gatherer on /metrics.
func WithMetrics(g prometheus.Gatherer) Option {
	return func(s *Server) { s.gatherer = g }
}

// WithTourTTL sets how long a tour may stay idle before it is evicted.
func WithTourTTL(ttl time.Duration) Option {
	return func(s *Server) {
		if ttl > 0 {
			s.tourTTL = ttl
		}
	}
}

// WithMaxTours caps the number of tours in progress. New tours beyond it get 503.
func WithMaxTours(n int) Option {
	return func(s *Server) {
		if n > 0 {
			s.maxTours = n
		}
	}
}

// WithClock overrides the time source used for tour eviction.
func WithClock(now func() time.Time) Option {
	return func(s *Server) { s.now = now }
}

// NewServer creates a server persisting flags in seen.
func NewServer(seen ports.SeenStore, opts ...Option) *Server {
	s := &Server{
		catalog:  catalog.Default(),
		seen:     seen,
		seenKey:  runtime.DefaultSeenKey,
		seenTTL:  runtime.DefaultSeenTTL,
		logger:   logging.NewNop(),
		tourTTL:  DefaultTourTTL,
		maxTours: DefaultMaxTours,
		now:      time.Now,
		tours:    make(map[string]*session),
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Handler builds the chi router. Requests are validated against api.Spec.
func (s *Server) Handler() (http.Handler, error) {
	validate, err := newValidator(api.Spec)
	if err != nil {
		return nil, err
	}

	r := chi.NewRouter()
	r.Use(validate)

	r.Get("/openapi.yaml", serveSpec)
	r.Get("/swagger", serveSwagger)
	r.Get("/healthz", s.GetHealth)
	r.Route("/v1", func(r chi.Router) {
		r.Get("/steps", s.ListSteps)
		r.Get("/seen/{user}", s.GetSeen)
		r.Put("/seen/{user}", s.MarkSeen)
		r.Delete("/seen/{user}", s.ResetSeen)
		r.Post("/tours", s.CreateTour)
		r.Post("/tours/{id}/advance", s.AdvanceTour)
	})
	if s.gatherer != nil {
		r.Handle("/metrics", promhttp.HandlerFor(s.gatherer, promhttp.HandlerOpts{}))
	}

	return enableCORS(r), nil
}

func enableCORS(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Access-Control-Allow-Origin", "*")
		w.Header().Set("Access-Control-Allow-Methods", "GET, POST, PUT, DELETE, OPTIONS")
		w.Header().Set("Access-Control-Allow-Headers", "Content-Type")
		if r.Method == "OPTIONS" {
			w.WriteHeader(http.StatusOK)
			return
		}
		next.ServeHTTP(w, r)
	})
}

// TourRequest is the body of POST /v1/tours.
type TourRequest struct {
	User      string          `json:"user"`
	Mode      string          `json:"mode"`
	Targets   []domain.Target `json:"targets"`
	Autostart bool            `json:"autostart"`
}

// TourResponse describes a server-driven tour after a transition.
type TourResponse struct {
	ID        string           `json:"id,omitempty"`
	Started   bool             `json:"started"`
	State     domain.State     `json:"state"`
	UIBlocked bool             `json:"ui_blocked"`
	Commands  []domain.Command `json:"commands"`
}

// GetHealth handles GET /healthz.
func (s *Server) GetHealth(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, s.logger, http.StatusOK, map[string]string{
		"status":  "ok",
		"version": walkthrough.Version,
	})
}

// ListSteps handles GET /v1/steps?mode=.
func (s *Server) ListSteps(w http.ResponseWriter, r *http.Request) {
	mode, err := bindMode(r)
	if err != nil {
		s.fail(w, "ListSteps", err)
		return
	}
	steps, err := s.catalog.Build(mode)
	if err != nil {
		s.fail(w, "ListSteps", err)
		return
	}
	writeJSON(w, s.logger, http.StatusOK, map[string]any{
		"mode":  mode,
		"steps": steps,
	})
}

// GetSeen handles GET /v1/seen/{user}.
func (s *Server) GetSeen(w http.ResponseWriter, r *http.Request) {
	user, err := bindPath(r, "user")
	if err != nil {
		s.fail(w, "GetSeen", err)
		return
	}
	seen, err := s.seen.Seen(r.Context(), s.userKey(user))
	if err != nil {
		s.fail(w, "GetSeen", err)
		return
	}
	writeJSON(w, s.logger, http.StatusOK, map[string]bool{"seen": seen})
}

// MarkSeen handles PUT /v1/seen/{user}. It also sets the flag as a browser cookie.
func (s *Server) MarkSeen(w http.ResponseWriter, r *http.Request) {
	user, err := bindPath(r, "user")
	if err != nil {
		s.fail(w, "MarkSeen", err)
		return
	}
	if err := s.seen.MarkSeen(r.Context(), s.userKey(user), s.seenTTL); err != nil {
		s.fail(w, "MarkSeen", err)
		return
	}
	http.SetCookie(w, &http.Cookie{
		Name:    s.seenKey,
		Value:   "true",
		Path:    "/",
		MaxAge:  int(s.seenTTL.Seconds()),
		Expires: time.Now().Add(s.seenTTL),
	})
	writeJSON(w, s.logger, http.StatusOK, map[string]bool{"seen": true})
}

// ResetSeen handles DELETE /v1/seen/{user}.
func (s *Server) ResetSeen(w http.ResponseWriter, r *http.Request) {
	user, err := bindPath(r, "user")
	if err != nil {
		s.fail(w, "ResetSeen", err)
		return
	}
	if err := s.seen.Forget(r.Context(), s.userKey(user)); err != nil {
		s.fail(w, "ResetSeen", err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

// CreateTour handles POST /v1/tours.
func (s *Server) CreateTour(w http.ResponseWriter, r *http.Request) {
	var body TourRequest
	if err := json.NewDecoder(r.Body).Decode(&body); err != nil {
		http.Error(w, "Invalid request body", http.StatusBadRequest)
		s.logger.Warn("CreateTour: Invalid request body", "error", err)
		return
	}
	if body.Mode == "" {
		s.fail(w, "CreateTour", fmt.Errorf("%w: mode is required", errInvalidRequest))
		return
	}
	mode := domain.Mode(body.Mode)

	s.mu.Lock()
	s.sweepLocked()
	full := len(s.tours) >= s.maxTours
	s.mu.Unlock()
	if full {
		s.fail(w, "CreateTour", errTooManyTours)
		return
	}

	sess := &session{
		surface: memory.NewSurface(body.Targets...),
		blocker: memory.NewBlocker(),
	}
	sess.mu.Lock()
	defer sess.mu.Unlock()

	key := s.seenKey
	if body.User != "" {
		key = s.userKey(body.User)
	}

	tour, err := walkthrough.New(mode, sess.surface,
		walkthrough.WithCatalog(s.catalog),
		walkthrough.WithBlocker(sess.blocker),
		walkthrough.WithSeenStore(s.seen),
		walkthrough.WithSeenFlag(key, s.seenTTL),
		walkthrough.WithLifecycleHooks(s.hooks),
		walkthrough.WithLogger(s.logger),
	)
	if err != nil {
		s.fail(w, "CreateTour", err)
		return
	}
	sess.tour = tour

	started := true
	if body.Autostart {
		started, err = tour.AutoStart(r.Context())
	} else {
		_, err = tour.Start(r.Context(), false)
	}
	if err != nil {
		s.fail(w, "CreateTour", err)
		return
	}

	var id string
	if started && !tour.State().Finished() {
		id = uuid.NewString()
		s.mu.Lock()
		sess.lastSeen = s.now()
		s.tours[id] = sess
		s.mu.Unlock()
	}
	s.logger.Debug("Tour created", "id", id, "mode", mode, "started", started)

	writeJSON(w, s.logger, http.StatusCreated, sess.response(id, started))
}

// AdvanceTour handles POST /v1/tours/{id}/advance.
func (s *Server) AdvanceTour(w http.ResponseWriter, r *http.Request) {
	id, err := bindPath(r, "id")
	if err != nil {
		s.fail(w, "AdvanceTour", err)
		return
	}

	sess, ok := s.lookup(id)
	if !ok {
		s.fail(w, "AdvanceTour", domain.ErrTourNotFound)
		return
	}

	sess.mu.Lock()
	defer sess.mu.Unlock()

	state, err := sess.tour.Advance(r.Context())
	if err != nil {
		s.fail(w, "AdvanceTour", err)
		return
	}

	if state.Finished() {
		s.mu.Lock()
		delete(s.tours, id)
		s.mu.Unlock()
		s.logger.Debug("Tour finished", "id", id)
	}

	writeJSON(w, s.logger, http.StatusOK, sess.response(id, true))
}

// lookup returns a live tour and refreshes its idle timer. Expired tours are evicted.
func (s *Server) lookup(id string) (*session, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()

	sess, ok := s.tours[id]
	if !ok {
		return nil, false
	}
	now := s.now()
	if now.Sub(sess.lastSeen) > s.tourTTL {
		delete(s.tours, id)
		s.logger.Debug("Tour expired", "id", id)
		return nil, false
	}
	sess.lastSeen = now
	return sess, true
}

// sweepLocked evicts idle tours. Callers hold s.mu.
func (s *Server) sweepLocked() {
	now := s.now()
	for id, sess := range s.tours {
		if now.Sub(sess.lastSeen) > s.tourTTL {
			delete(s.tours, id)
			s.logger.Debug("Tour expired", "id", id)
		}
	}
}

// Tours returns the number of tours still in progress.
func (s *Server) Tours() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.tours)
}

func (s *session) response(id string, started bool) TourResponse {
	cmds := s.surface.Drain()
	if cmds == nil {
		cmds = []domain.Command{}
	}
	return TourResponse{
		ID:        id,
		Started:   started,
		State:     s.tour.State(),
		UIBlocked: s.blocker.Blocked(),
		Commands:  cmds,
	}
}

func (s *Server) userKey(user string) string {
	return s.seenKey + ":" + user
}

func (s *Server) fail(w http.ResponseWriter, op string, err error) {
	status := http.StatusInternalServerError
	switch {
	case errors.Is(err, domain.ErrUnknownMode), errors.Is(err, domain.ErrMissingVariant), errors.Is(err, errInvalidRequest):
		status = http.StatusBadRequest
	case errors.Is(err, domain.ErrTourNotFound):
		status = http.StatusNotFound
	case errors.Is(err, domain.ErrAlreadyStarted):
		status = http.StatusConflict
	case errors.Is(err, errTooManyTours):
		status = http.StatusServiceUnavailable
	}
	if status == http.StatusInternalServerError {
		s.logger.Error(op+" failed", "error", err)
	} else {
		s.logger.Warn(op+" rejected", "error", err)
	}
	writeJSON(w, s.logger, status, map[string]string{"error": err.Error()})
}

func writeJSON(w http.ResponseWriter, logger *slog.Logger, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil && logger != nil {
		logger.Error("Response encode failed", "error", err)
	}
}
