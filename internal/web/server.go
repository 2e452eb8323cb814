package web

import (
	"context"
	"embed"
	"fmt"
	"io/fs"
	"math"
	"net/http"
	"sync"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"
	"golang.org/x/time/rate"

	"github.com/intelligrit/salesmap/internal/config"
	"github.com/intelligrit/salesmap/internal/geo"
	"github.com/intelligrit/salesmap/internal/geometry"
	"github.com/intelligrit/salesmap/internal/metrics"
	"github.com/intelligrit/salesmap/internal/selection"
	"github.com/intelligrit/salesmap/internal/store"
	"github.com/intelligrit/salesmap/internal/view"
)

//go:embed all:static
var staticFS embed.FS

// CookieName holds the id of the browser's mounted view.
const CookieName = "salesmap_view"

// MaxViews bounds the mounted views; the least recently used is unmounted
// when a new browser arrives.
const MaxViews = 256

// Server serves the interactive map web app and API. Every browser gets its
// own mounted view so hover and selection never leak between visitors.
type Server struct {
	Config  *config.Config
	Store   *store.Store
	Index   *geo.Index
	Map     *geometry.Map
	Logger  *zap.Logger
	Metrics *metrics.Metrics

	limit rate.Limit
	burst int

	mu    sync.Mutex
	views map[string]*session
}

type session struct {
	// limiter is per browser so one busy page cannot throttle the others.
	limiter *rate.Limiter

	mu       sync.Mutex
	view     *view.View
	version  uint64
	lastSeen time.Time
}

// New builds a server. Logger and Metrics may be nil.
func New(cfg *config.Config, st *store.Store, idx *geo.Index, m *geometry.Map, log *zap.Logger, met *metrics.Metrics) *Server {
	if log == nil {
		log = zap.NewNop()
	}
	if met == nil {
		met = metrics.New()
	}
	limit, burst := rate.Inf, 1
	if eps := cfg.Server.EventsPerSecond; eps > 0 {
		limit, burst = rate.Limit(eps), int(math.Ceil(eps))
	}
	return &Server{
		Config:  cfg,
		Store:   st,
		Index:   idx,
		Map:     m,
		Logger:  log,
		Metrics: met,
		limit:   limit,
		burst:   burst,
		views:   make(map[string]*session),
	}
}

// Handler returns the routed HTTP handler.
func (s *Server) Handler() (http.Handler, error) {
	mux := http.NewServeMux()

	// API endpoints
	mux.HandleFunc("GET /api/map.svg", s.handleMap)
	mux.HandleFunc("POST /api/events", s.throttle(s.handleEvents))
	mux.HandleFunc("GET /api/tooltip", s.handleTooltip)
	mux.HandleFunc("GET /api/legend", s.handleLegend)
	mux.HandleFunc("GET /api/labels", s.handleLabels)
	mux.HandleFunc("GET /api/dataset", s.handleDataset)
	mux.HandleFunc("POST /api/dataset/refresh", s.handleRefresh)
	mux.HandleFunc("GET /api/zones", s.handleZones)
	mux.Handle("GET /metrics", s.Metrics.Handler())

	// Static files
	staticSub, err := fs.Sub(staticFS, "static")
	if err != nil {
		return nil, fmt.Errorf("creating sub filesystem: %w", err)
	}
	mux.Handle("GET /", http.FileServer(http.FS(staticSub)))

	return s.logRequests(mux), nil
}

// Close unmounts every view.
func (s *Server) Close() {
	s.mu.Lock()
	closed := make([]*session, 0, len(s.views))
	for id, sess := range s.views {
		closed = append(closed, sess)
		delete(s.views, id)
	}
	s.Metrics.ViewsActive.Set(0)
	s.mu.Unlock()

	for _, sess := range closed {
		sess.unmount()
	}
}

// Views returns the number of mounted views.
func (s *Server) Views() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.views)
}

// withView runs fn against the caller's view, mounting one if the browser has
// none yet. The view is brought up to the store's current dataset first.
func (s *Server) withView(w http.ResponseWriter, r *http.Request, fn func(v *view.View)) {
	sess, ok := r.Context().Value(sessionKey{}).(*session)
	if !ok {
		sess = s.session(w, r)
	}
	sess.mu.Lock()
	defer sess.mu.Unlock()

	snap := s.Store.Snapshot()
	if snap.Version != sess.version {
		sess.view.SetDataset(snap.Dataset)
		sess.version = snap.Version
	}
	fn(sess.view)
}

// session finds or mounts the caller's session. An evicted session is
// unmounted in the background so a busy view never stalls other browsers.
func (s *Server) session(w http.ResponseWriter, r *http.Request) *session {
	s.mu.Lock()

	now := time.Now()
	if c, err := r.Cookie(CookieName); err == nil {
		if sess, ok := s.views[c.Value]; ok {
			sess.lastSeen = now
			s.mu.Unlock()
			return sess
		}
	}

	var evicted *session
	if len(s.views) >= MaxViews {
		evicted = s.evictLocked()
	}

	id := uuid.NewString()
	snap := s.Store.Snapshot()
	sess := &session{
		limiter:  rate.NewLimiter(s.limit, s.burst),
		view:     s.mount(snap),
		version:  snap.Version,
		lastSeen: now,
	}
	s.views[id] = sess
	s.Metrics.ViewsActive.Set(float64(len(s.views)))
	s.mu.Unlock()

	if evicted != nil {
		go evicted.unmount()
	}
	http.SetCookie(w, &http.Cookie{
		Name:     CookieName,
		Value:    id,
		Path:     "/",
		HttpOnly: true,
		SameSite: http.SameSiteLaxMode,
	})
	s.Logger.Debug("mounted view", zap.String("view", id))
	return sess
}

// evictLocked removes the least recently seen session and returns it for the
// caller to unmount once s.mu is released.
func (s *Server) evictLocked() *session {
	var oldest string
	var at time.Time
	for id, sess := range s.views {
		if oldest == "" || sess.lastSeen.Before(at) {
			oldest, at = id, sess.lastSeen
		}
	}
	if oldest == "" {
		return nil
	}
	sess := s.views[oldest]
	delete(s.views, oldest)
	s.Logger.Debug("evicted idle view", zap.String("view", oldest))
	return sess
}

// sessionKey carries a session already resolved by middleware.
type sessionKey struct{}

func (sess *session) unmount() {
	sess.mu.Lock()
	defer sess.mu.Unlock()
	sess.view.Unmount()
}

func (s *Server) mount(snap store.Snapshot) *view.View {
	cfg := s.Config
	mode, err := selection.ParseMode(cfg.Map.InitialMode)
	if err != nil {
		mode = selection.ModeRegion
	}
	return view.Mount(view.Options{
		Index:        s.Index,
		Map:          s.Map,
		Dataset:      snap.Dataset,
		Dark:         cfg.Map.Dark,
		Mode:         mode,
		Selection:    selection.Options{ClearOnModeSwitch: cfg.Map.ClearOnModeSwitch},
		Emphasis:     cfg.EmphasisFor,
		LabelOffsets: cfg.LabelOffsets(),
		LabelDelay:   cfg.Labels.Delay,
		ShowLabels:   cfg.Map.ShowLabels,
		Logger:       s.Logger,
		Metrics:      s.Metrics,
	})
}

// throttle rejects a browser's events beyond the configured rate with 429.
// Each view has its own budget.
func (s *Server) throttle(next http.HandlerFunc) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		sess := s.session(w, r)
		if !sess.limiter.Allow() {
			s.Metrics.ThrottledTotal.Inc()
			http.Error(w, "too many events", http.StatusTooManyRequests)
			return
		}
		next(w, r.WithContext(context.WithValue(r.Context(), sessionKey{}, sess)))
	}
}

func (s *Server) logRequests(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		next.ServeHTTP(w, r)
		s.Logger.Debug("request",
			zap.String("method", r.Method),
			zap.String("path", r.URL.Path),
			zap.Duration("elapsed", time.Since(start)))
	})
}
