package web

import (
	"crypto/rand"
	"encoding/hex"
	"log"
	"net/http"
	"os"
	"time"

	"steeple/internal/adapters/email"
	"steeple/internal/adapters/http/middleware"
	attendanceStore "steeple/internal/adapters/storage/attendance"
	feedbackStore "steeple/internal/adapters/storage/feedback"
	kpiStore "steeple/internal/adapters/storage/kpi"
	programmeStore "steeple/internal/adapters/storage/programme"
	reminderStore "steeple/internal/adapters/storage/reminder"
	resourceStore "steeple/internal/adapters/storage/resource"
	taxonomyStore "steeple/internal/adapters/storage/taxonomy"
	templateStore "steeple/internal/adapters/storage/template"
)

// Stores holds all storage dependencies.
type Stores struct {
	ProgrammeStore  programmeStore.Store
	AttendanceStore attendanceStore.Store
	ResourceStore   resourceStore.Store
	ReminderStore   reminderStore.Store
	KPIStore        kpiStore.Store
	FeedbackStore   feedbackStore.Store
	TemplateStore   templateStore.Store
	CategoryStore   taxonomyStore.CategoryStore
	TagStore        taxonomyStore.TagStore
	TagLinkStore    taxonomyStore.TagLinkStore
}

// loadCSRFKey reads the CSRF secret from STEEPLE_CSRF_KEY (hex-encoded, 32 bytes).
// In production, the key MUST be set. In development, a random key is generated per startup.
func loadCSRFKey() []byte {
	if keyHex := os.Getenv("STEEPLE_CSRF_KEY"); keyHex != "" {
		key, err := hex.DecodeString(keyHex)
		if err != nil || len(key) != 32 {
			log.Fatal("STEEPLE_CSRF_KEY must be 64 hex characters (32 bytes)")
		}
		return key
	}
	if os.Getenv("STEEPLE_ENV") == "production" {
		log.Fatal("STEEPLE_CSRF_KEY is required in production")
	}
	key := make([]byte, 32)
	if _, err := rand.Read(key); err != nil {
		log.Fatalf("failed to generate CSRF key: %v", err)
	}
	log.Println("WARNING: using random CSRF key (tokens won't survive restart). Set STEEPLE_CSRF_KEY for production.")
	return key
}

// Global stores instance (set by NewMux)
var stores *Stores

// RateLimitPerSecond controls the per-IP rate limit. Tests can increase this.
var RateLimitPerSecond = 10

// Global email sender instance (set by SetEmailSender)
var emailSender email.Sender

// Email configuration
var emailFromAddress string

// SetEmailSender sets the global email sender used for reminder delivery.
func SetEmailSender(sender email.Sender, from string) {
	emailSender = sender
	emailFromAddress = from
}

// NewMux wires HTTP handlers for the app.
func NewMux(staticDir string, s *Stores) http.Handler {
	stores = s

	mux := http.NewServeMux()
	mux.Handle("/", http.FileServer(http.Dir(staticDir)))
	registerRoutes(mux)

	// CSRF key: 32-byte hex-encoded secret from env var
	csrfKey := loadCSRFKey()

	// Rate limiter: configurable requests per second per IP
	limiter := middleware.NewRateLimiter(RateLimitPerSecond, time.Second)

	// Apply middleware: SecurityHeaders -> CSRF -> RateLimit -> Mux
	return middleware.Chain(mux,
		middleware.SecurityHeaders,
		middleware.CSRF(csrfKey),
		middleware.RateLimit(limiter),
	)
}
