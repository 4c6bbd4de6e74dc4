package main

import (
	"context"
	"database/sql"
	"log"
	"net/http"
	"os"

	_ "modernc.org/sqlite"

	emailPkg "steeple/internal/adapters/email"
	web "steeple/internal/adapters/http"
	"steeple/internal/adapters/storage"
	attendanceStore "steeple/internal/adapters/storage/attendance"
	feedbackStore "steeple/internal/adapters/storage/feedback"
	kpiStore "steeple/internal/adapters/storage/kpi"
	programmeStore "steeple/internal/adapters/storage/programme"
	reminderStore "steeple/internal/adapters/storage/reminder"
	resourceStore "steeple/internal/adapters/storage/resource"
	taxonomyStore "steeple/internal/adapters/storage/taxonomy"
	templateStore "steeple/internal/adapters/storage/template"
	"steeple/internal/application/orchestrators"
)

// version is set at build time via -ldflags "-X main.version=..."
var version = "dev"

func main() {
	// Initialize database with WAL mode, foreign keys, and busy timeout
	dbPath := envOrDefault("STEEPLE_DB", "steeple.db")
	dsn := dbPath + "?_pragma=journal_mode(WAL)&_pragma=busy_timeout(5000)&_pragma=foreign_keys(ON)&_pragma=synchronous(NORMAL)"
	db, err := sql.Open("sqlite", dsn)
	if err != nil {
		log.Fatalf("failed to open database: %v", err)
	}
	defer db.Close()

	// Connection pool settings for WAL mode
	db.SetMaxOpenConns(25)
	db.SetMaxIdleConns(25)

	if err := db.Ping(); err != nil {
		log.Fatalf("database unreachable: %v", err)
	}

	if err := storage.InitDB(db); err != nil {
		log.Fatalf("failed to initialize database: %v", err)
	}
	log.Println("Database initialized successfully!")

	progStore := programmeStore.NewSQLiteStore(db)
	catStore := taxonomyStore.NewCategorySQLiteStore(db)
	tagStore := taxonomyStore.NewTagSQLiteStore(db)
	stores := &web.Stores{
		ProgrammeStore:  progStore,
		AttendanceStore: attendanceStore.NewSQLiteStore(db),
		ResourceStore:   resourceStore.NewSQLiteStore(db),
		ReminderStore:   reminderStore.NewSQLiteStore(db),
		KPIStore:        kpiStore.NewSQLiteStore(db),
		FeedbackStore:   feedbackStore.NewSQLiteStore(db),
		TemplateStore:   templateStore.NewSQLiteStore(db),
		CategoryStore:   catStore,
		TagStore:        tagStore,
		TagLinkStore:    taxonomyStore.NewTagLinkSQLiteStore(db),
	}

	// Seed starter data for development only
	if os.Getenv("STEEPLE_ENV") != "production" {
		seedDeps := orchestrators.SeedDeps{
			ProgrammeStore: progStore,
			CategoryStore:  catStore,
			TagStore:       tagStore,
		}
		if err := orchestrators.ExecuteSeed(context.Background(), seedDeps); err != nil {
			log.Fatalf("failed to seed data: %v", err)
		}
		log.Println("Seed data loaded (dev mode)")
	}

	// Configure email sender for reminder delivery
	resendKey := os.Getenv("STEEPLE_RESEND_KEY")
	emailFrom := envOrDefault("STEEPLE_RESEND_FROM", "Steeple <noreply@steeple.church>")
	if resendKey != "" {
		web.SetEmailSender(emailPkg.NewResendSender(resendKey, emailFrom), emailFrom)
		log.Println("Email sender configured (Resend)")
	} else {
		web.SetEmailSender(emailPkg.NewNoopSender(), emailFrom)
		if os.Getenv("STEEPLE_ENV") == "production" {
			log.Println("WARNING: STEEPLE_RESEND_KEY is not set — email delivery is DISABLED in production")
		} else {
			log.Println("Email sender configured (noop — set STEEPLE_RESEND_KEY for real delivery)")
		}
	}

	mux := web.NewMux("static", stores)

	addr := envOrDefault("STEEPLE_ADDR", ":8080")
	log.Printf("Steeple %s starting on %s (env=%s)", version, addr, envOrDefault("STEEPLE_ENV", "development"))

	if err := http.ListenAndServe(addr, mux); err != nil {
		log.Fatalf("Server failed: %v", err)
	}
}

func envOrDefault(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}
