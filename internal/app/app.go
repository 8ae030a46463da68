package app

import (
	"log"
	"net/http"

	"uni-marketplace/config"
	"uni-marketplace/internal/handler"
	"uni-marketplace/internal/marketclient"
	"uni-marketplace/internal/middleware"
	"uni-marketplace/internal/service"
	"uni-marketplace/internal/store"
	"uni-marketplace/pkg/datetime"
	"uni-marketplace/pkg/email"
	"uni-marketplace/pkg/ratelimit"
	"uni-marketplace/pkg/security"

	"github.com/gorilla/csrf"
	"github.com/gorilla/mux"
	"github.com/gorilla/sessions"
)

type Application struct {
	Router           *mux.Router
	Config           *config.Config
	AuthHandler      *handler.AuthHandler
	HomeHandler      *handler.HomeHandler
	ListingHandler   *handler.ListingHandler
	ProfileHandler   *handler.ProfileHandler
	DashboardHandler *handler.DashboardHandler
	AuthMiddleware   *middleware.AuthMiddleware
}

func New(cfg *config.Config) (*Application, error) {
	market := marketclient.New(cfg.APIBaseURL)
	otpStore := store.NewOTPStore()
	otpGenerator := security.NewOTPGenerator()
	limiter := ratelimit.NewLimiter()
	dateFormatter := datetime.NewFormatter()

	emailService, err := newEmailService(cfg)
	if err != nil {
		log.Printf("Warning: Email service initialization failed: %v", err)
		log.Println("Authentication will not work without email service")
	}

	authService := service.NewAuthService(
		otpStore, market, emailService, otpGenerator, limiter,
		cfg.EmailDomain, cfg.OTPTTL,
	)

	sessionStore := sessions.NewCookieStore([]byte(cfg.SessionSecret))
	sessionStore.Options = &sessions.Options{
		Path:     "/",
		MaxAge:   86400 * 7,
		HttpOnly: true,
		Secure:   cfg.IsProduction(),
		SameSite: http.SameSiteLaxMode,
	}

	authMiddleware := middleware.NewAuthMiddleware(sessionStore)

	const templatesDir = "templates"
	authHandler := handler.NewAuthHandler(authService, authMiddleware, cfg.EmailDomain, templatesDir)
	homeHandler := handler.NewHomeHandler(market, authMiddleware, dateFormatter, templatesDir)
	listingHandler := handler.NewListingHandler(market, authMiddleware, dateFormatter, templatesDir)
	profileHandler := handler.NewProfileHandler(market, authMiddleware, dateFormatter, templatesDir)
	dashboardHandler := handler.NewDashboardHandler(market, authMiddleware, dateFormatter, templatesDir)

	app := &Application{
		Router:           mux.NewRouter(),
		Config:           cfg,
		AuthHandler:      authHandler,
		HomeHandler:      homeHandler,
		ListingHandler:   listingHandler,
		ProfileHandler:   profileHandler,
		DashboardHandler: dashboardHandler,
		AuthMiddleware:   authMiddleware,
	}

	app.setupMiddleware()
	app.setupRoutes()

	return app, nil
}

func newEmailService(cfg *config.Config) (email.Service, error) {
	switch cfg.EmailProvider {
	case "resend":
		return email.NewResendService(cfg.ResendAPIKey, cfg.EmailFrom)
	case "sendgrid":
		return email.NewSendGridService(cfg.SendGridAPIKey, cfg.EmailFrom)
	default:
		return email.NewSMTPService(cfg.SMTPHost, cfg.SMTPPort, cfg.SMTPUsername, cfg.SMTPPassword, cfg.EmailFrom)
	}
}

func (a *Application) setupMiddleware() {
	a.Router.Use(securityHeadersMiddleware())

	if a.Config.IsProduction() {
		log.Printf("CSRF Configuration - Production mode enabled")
		csrfOptions := []csrf.Option{
			csrf.Secure(true),
			csrf.HttpOnly(true),
			csrf.Path("/"),
			csrf.SameSite(csrf.SameSiteLaxMode),
		}
		if a.Config.AppURL != "" {
			csrfOptions = append(csrfOptions, csrf.TrustedOrigins([]string{a.Config.AppURL}))
			log.Printf("CSRF Configuration - Trusted Origin: %s", a.Config.AppURL)
		}
		csrfMiddleware := csrf.Protect([]byte(a.Config.CSRFSecret), csrfOptions...)
		a.Router.Use(csrfMiddleware)
	} else {
		log.Printf("CSRF Configuration - Disabled in development mode")
	}
}

func securityHeadersMiddleware() func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			w.Header().Set("X-Frame-Options", "DENY")
			w.Header().Set("X-Content-Type-Options", "nosniff")
			w.Header().Set("Referrer-Policy", "strict-origin-when-cross-origin")
			w.Header().Set("Content-Security-Policy", "default-src 'self'; script-src 'self'; style-src 'self' 'unsafe-inline'; img-src 'self' data: https:;")

			next.ServeHTTP(w, r)
		})
	}
}

func (a *Application) setupRoutes() {
	a.Router.HandleFunc("/", a.redirectToLogin).Methods("GET")
	a.Router.HandleFunc("/login", a.AuthHandler.Login).Methods("GET", "POST")
	a.Router.HandleFunc("/logout", a.AuthHandler.Logout).Methods("GET")

	protected := a.Router.PathPrefix("/").Subrouter()
	protected.Use(a.AuthMiddleware.RequireAuth)

	protected.HandleFunc("/home", a.HomeHandler.View).Methods("GET")
	protected.HandleFunc("/marketplace", a.ListingHandler.Marketplace).Methods("GET")
	protected.HandleFunc("/marketplace/create", a.ListingHandler.CreateMarketplace).Methods("POST")
	protected.HandleFunc("/currency", a.ListingHandler.Currency).Methods("GET")
	protected.HandleFunc("/currency/create", a.ListingHandler.CreateCurrency).Methods("POST")
	protected.HandleFunc("/subleasing", a.ListingHandler.Subleasing).Methods("GET")
	protected.HandleFunc("/subleasing/create", a.ListingHandler.CreateSubleasing).Methods("POST")
	protected.HandleFunc("/profile", a.ProfileHandler.View).Methods("GET")
	protected.HandleFunc("/profile", a.ProfileHandler.Save).Methods("POST")
	protected.HandleFunc("/dashboard", a.DashboardHandler.View).Methods("GET")
	protected.HandleFunc("/dashboard/listing", a.DashboardHandler.Mutate).Methods("POST")

	a.Router.PathPrefix("/static/").Handler(
		http.StripPrefix("/static/", http.FileServer(http.Dir("static"))),
	)
}

func (a *Application) redirectToLogin(w http.ResponseWriter, r *http.Request) {
	http.Redirect(w, r, "/login", http.StatusFound)
}
