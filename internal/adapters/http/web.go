package web

import (
	"context"
	"crypto/rand"
	"log/slog"
	"net/http"
	"time"

	"github.com/ftebtw/dsdc-sub000/internal/adapters/http/middleware"
	"github.com/ftebtw/dsdc-sub000/internal/adapters/http/perf"
	attendanceStore "github.com/ftebtw/dsdc-sub000/internal/adapters/storage/attendance"
	calendarStore "github.com/ftebtw/dsdc-sub000/internal/adapters/storage/calendar"
	coachStore "github.com/ftebtw/dsdc-sub000/internal/adapters/storage/coach"
	privateSessionStore "github.com/ftebtw/dsdc-sub000/internal/adapters/storage/privatesession"
	profileStore "github.com/ftebtw/dsdc-sub000/internal/adapters/storage/profile"
	scheduleStore "github.com/ftebtw/dsdc-sub000/internal/adapters/storage/schedule"
	termStore "github.com/ftebtw/dsdc-sub000/internal/adapters/storage/term"
	"github.com/ftebtw/dsdc-sub000/internal/domain/timezone"
)

// Stores holds all storage dependencies.
type Stores struct {
	ClassStore          scheduleStore.Store
	CheckInStore        attendanceStore.Store
	PrivateSessionStore privateSessionStore.Store
	CoachStore          coachStore.Store
	ProfileStore        profileStore.Store
	TermStore           termStore.Store
	EventStore          calendarStore.Store
}

// Options configures the handler chain. Zero values are usable in development.
type Options struct {
	CSRFKey        []byte                          // 32 bytes; random per boot when empty
	SecureCookies  bool                            // production only
	TrustedOrigins []string                        // extra origins allowed to post forms
	RatePerMinute  int                             // per client IP; zero means 120
	SlowRequest    time.Duration                   // zero means middleware.DefaultSlowRequest
	Converter      timezone.Converter              // nil means timezone.Standard
	Health         func(ctx context.Context) error // nil reports healthy
	Now            func() time.Time                // nil means time.Now
}

// server carries the dependencies every handler reads.
type server struct {
	stores    *Stores
	collector *perf.Collector
	conv      timezone.Converter
	health    func(ctx context.Context) error
	now       func() time.Time
}

// NewMux wires HTTP handlers for the app.
// PRE: s has every store set
// POST: the returned handler applies Timing -> RateLimit -> CSRF -> SecurityHeaders -> routes;
// background work started here stops when ctx is done
func NewMux(ctx context.Context, s *Stores, collector *perf.Collector, opts Options) http.Handler {
	srv := &server{
		stores:    s,
		collector: collector,
		conv:      opts.Converter,
		health:    opts.Health,
		now:       opts.Now,
	}
	if srv.conv == nil {
		srv.conv = timezone.Standard
	}
	if srv.now == nil {
		srv.now = time.Now
	}

	mux := http.NewServeMux()
	srv.registerRoutes(mux)

	csrfKey := opts.CSRFKey
	if len(csrfKey) == 0 {
		csrfKey = make([]byte, 32)
		if _, err := rand.Read(csrfKey); err != nil {
			panic("failed to generate CSRF key: " + err.Error())
		}
		slog.Warn("csrf_key_random", "detail", "form tokens will not survive a restart; set DSDC_CSRF_KEY")
	}
	rate := opts.RatePerMinute
	if rate <= 0 {
		rate = 120
	}
	limiter := middleware.NewRateLimiter(rate, time.Minute)
	go limiter.Run(ctx)

	return middleware.Chain(mux,
		middleware.Route,
		middleware.SecurityHeaders,
		middleware.CSRF(csrfKey, middleware.CSRFOptions{Secure: opts.SecureCookies, TrustedOrigins: opts.TrustedOrigins}),
		middleware.RateLimit(limiter),
		middleware.Timing(collector, opts.SlowRequest),
	)
}
