package main

import (
	"context"
	"errors"
	"log"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/ftebtw/dsdc-sub000/internal/adapters/email"
	web "github.com/ftebtw/dsdc-sub000/internal/adapters/http"
	"github.com/ftebtw/dsdc-sub000/internal/adapters/http/perf"
	"github.com/ftebtw/dsdc-sub000/internal/adapters/storage"
	attendanceStore "github.com/ftebtw/dsdc-sub000/internal/adapters/storage/attendance"
	calendarStore "github.com/ftebtw/dsdc-sub000/internal/adapters/storage/calendar"
	coachStore "github.com/ftebtw/dsdc-sub000/internal/adapters/storage/coach"
	privateSessionStore "github.com/ftebtw/dsdc-sub000/internal/adapters/storage/privatesession"
	profileStore "github.com/ftebtw/dsdc-sub000/internal/adapters/storage/profile"
	scheduleStore "github.com/ftebtw/dsdc-sub000/internal/adapters/storage/schedule"
	termStore "github.com/ftebtw/dsdc-sub000/internal/adapters/storage/term"
	"github.com/ftebtw/dsdc-sub000/internal/application/projections"
	"github.com/ftebtw/dsdc-sub000/internal/config"
	"github.com/ftebtw/dsdc-sub000/internal/domain/timezone"
)

// version is set at build time via -ldflags "-X main.version=..."
var version = "dev"

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("invalid configuration: %v", err)
	}
	slog.SetDefault(slog.New(slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{Level: cfg.SlogLevel()})))

	if _, err := time.LoadLocation(cfg.DefaultTimezone); err != nil {
		log.Fatalf("DSDC_DEFAULT_TIMEZONE %q is not a known zone: %v", cfg.DefaultTimezone, err)
	}
	conv := timezone.Zones{Fallback: cfg.DefaultTimezone}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	dialect, err := storage.ParseDialect(cfg.DBDriver)
	if err != nil {
		log.Fatalf("invalid database driver: %v", err)
	}
	db, err := storage.Open(ctx, dialect, cfg.DatabaseURL)
	if err != nil {
		log.Fatalf("failed to open database: %v", err)
	}
	defer db.Close()
	if err := storage.InitDB(ctx, db, dialect); err != nil {
		log.Fatalf("failed to initialize schema: %v", err)
	}
	log.Printf("Database initialized (%s)", dialect)

	// Performance instrumentation: wrap DB with timing, create collector
	collector := perf.NewCollector(perf.DefaultRingSize)
	timedDB := storage.NewTimedDB(db, dialect, collector, cfg.SlowQuery)

	stores := &web.Stores{
		ClassStore:          scheduleStore.NewSQLStore(timedDB),
		CheckInStore:        attendanceStore.NewSQLStore(timedDB),
		PrivateSessionStore: privateSessionStore.NewSQLStore(timedDB),
		CoachStore:          coachStore.NewSQLStore(timedDB),
		ProfileStore:        profileStore.NewSQLStore(timedDB),
		TermStore:           termStore.NewSQLStore(timedDB),
		EventStore:          calendarStore.NewSQLStore(timedDB),
	}

	var sender email.Sender
	if cfg.ResendKey != "" {
		sender = email.NewResendSender(cfg.ResendKey, cfg.EmailFrom, cfg.EmailReplyTo)
		log.Println("Email sender configured (Resend)")
	} else {
		sender = email.NewNoopSender()
		if cfg.IsProduction() {
			log.Println("WARNING: DSDC_RESEND_KEY is not set; payroll reports will not be delivered")
		} else {
			log.Println("Email sender configured (noop; set DSDC_RESEND_KEY for real delivery)")
		}
	}

	if len(cfg.ReportTo) > 0 {
		reports, err := newReportScheduler(cfg.ReportCron, reportJob{
			Recipients:      cfg.ReportTo,
			CoachStatements: cfg.ReportToCoach,
			Dataset: projections.GetPayrollDatasetDeps{
				CoachStore:          stores.CoachStore,
				CheckInStore:        stores.CheckInStore,
				PrivateSessionStore: stores.PrivateSessionStore,
				ClassStore:          stores.ClassStore,
				ProfileStore:        stores.ProfileStore,
				Converter:           conv,
			},
			Sender: sender,
			Now:    time.Now,
		})
		if err != nil {
			log.Fatalf("invalid DSDC_REPORT_CRON: %v", err)
		}
		reports.Start()
		defer func() { <-reports.Stop().Done() }()
		log.Printf("Payroll report scheduled (%q) for %d recipients", cfg.ReportCron, len(cfg.ReportTo))
	}

	handler := web.NewMux(ctx, stores, collector, web.Options{
		CSRFKey:       []byte(cfg.CSRFKey),
		SecureCookies: cfg.IsProduction(),
		RatePerMinute: cfg.RateLimit,
		SlowRequest:   cfg.SlowRequest,
		Converter:     conv,
		Health:        timedDB.Ping,
	})
	srv := &http.Server{
		Addr:              cfg.Addr,
		Handler:           handler,
		ReadHeaderTimeout: 5 * time.Second,
		ReadTimeout:       15 * time.Second,
		WriteTimeout:      60 * time.Second,
		IdleTimeout:       2 * time.Minute,
	}

	go func() {
		<-ctx.Done()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 15*time.Second)
		defer cancel()
		if err := srv.Shutdown(shutdownCtx); err != nil {
			slog.Error("shutdown_failed", "error", err)
		}
	}()

	log.Printf("DSDC %s starting on %s (env=%s, db=%s)", version, cfg.Addr, cfg.Env, dialect)
	if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
		log.Fatalf("Server failed: %v", err)
	}
	log.Println("Server stopped")
}
