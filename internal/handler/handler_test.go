package handler

import (
	"encoding/json"
	"io"
	"net/http"
	"net/http/cookiejar"
	"net/http/httptest"
	"net/url"
	"regexp"
	"sync"
	"testing"
	"time"

	"uni-marketplace/internal/domain"
	"uni-marketplace/internal/marketclient"
	"uni-marketplace/internal/middleware"
	"uni-marketplace/internal/service"
	"uni-marketplace/internal/store"
	"uni-marketplace/pkg/datetime"
	"uni-marketplace/pkg/ratelimit"
	"uni-marketplace/pkg/security"

	"github.com/google/uuid"
	"github.com/gorilla/mux"
	"github.com/gorilla/sessions"
	"github.com/stretchr/testify/require"
)

// capturingEmailService records outgoing mail so tests can read the code out
// of the body the way a user would.
type capturingEmailService struct {
	mu   sync.Mutex
	sent []string
}

func (s *capturingEmailService) SendEmail(to, subject, body string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.sent = append(s.sent, body)
	return nil
}

func (s *capturingEmailService) lastCode(t *testing.T) string {
	t.Helper()
	s.mu.Lock()
	defer s.mu.Unlock()
	require.NotEmpty(t, s.sent)
	code := regexp.MustCompile(`\d{6}`).FindString(s.sent[len(s.sent)-1])
	require.NotEmpty(t, code)
	return code
}

// fakeBackend is an in-memory marketplace API serving the endpoints the web
// front talks to.
type fakeBackend struct {
	mu          sync.Mutex
	users       []domain.User
	profiles    map[string]domain.UserProfile
	marketplace []domain.MarketplaceListing
	currency    []domain.CurrencyExchangeRequest
	subleasing  []domain.SubleasingRequest

	updates []domain.ListingUpdate
	deleted []string
	sold    []string
}

func newFakeBackend() *fakeBackend {
	return &fakeBackend{profiles: make(map[string]domain.UserProfile)}
}

func (b *fakeBackend) router() *mux.Router {
	r := mux.NewRouter()

	r.HandleFunc("/api/saveUser", func(w http.ResponseWriter, req *http.Request) {
		var user domain.User
		json.NewDecoder(req.Body).Decode(&user)
		user.ID = uuid.NewString()
		b.mu.Lock()
		b.users = append(b.users, user)
		b.mu.Unlock()
		json.NewEncoder(w).Encode(map[string]string{"userID": user.ID})
	}).Methods("POST")

	r.HandleFunc("/api/users", func(w http.ResponseWriter, req *http.Request) {
		b.mu.Lock()
		defer b.mu.Unlock()
		json.NewEncoder(w).Encode(map[string]interface{}{"users": b.users})
	}).Methods("GET")

	r.HandleFunc("/api/getUserProfile/{id}", func(w http.ResponseWriter, req *http.Request) {
		b.mu.Lock()
		profile := b.profiles[mux.Vars(req)["id"]]
		b.mu.Unlock()
		json.NewEncoder(w).Encode(map[string]interface{}{"profile": profile})
	}).Methods("GET")

	r.HandleFunc("/api/updateUserProfile/{id}", func(w http.ResponseWriter, req *http.Request) {
		var profile domain.UserProfile
		json.NewDecoder(req.Body).Decode(&profile)
		b.mu.Lock()
		b.profiles[mux.Vars(req)["id"]] = profile
		b.mu.Unlock()
		json.NewEncoder(w).Encode(map[string]string{"message": "Profile updated successfully"})
	}).Methods("POST")

	r.HandleFunc("/api/getMarketplaceListings", func(w http.ResponseWriter, req *http.Request) {
		b.mu.Lock()
		defer b.mu.Unlock()
		json.NewEncoder(w).Encode(map[string]interface{}{"listings": b.marketplace, "listing_count": len(b.marketplace)})
	}).Methods("GET")

	r.HandleFunc("/api/postMarketplaceListing", func(w http.ResponseWriter, req *http.Request) {
		var listing domain.MarketplaceListing
		json.NewDecoder(req.Body).Decode(&listing)
		listing.ID = uuid.NewString()
		b.mu.Lock()
		b.marketplace = append(b.marketplace, listing)
		b.mu.Unlock()
		json.NewEncoder(w).Encode(listing)
	}).Methods("POST")

	r.HandleFunc("/api/getCurrencyExchangeListings", func(w http.ResponseWriter, req *http.Request) {
		b.mu.Lock()
		defer b.mu.Unlock()
		json.NewEncoder(w).Encode(map[string]interface{}{"listings": b.currency, "listing_count": len(b.currency)})
	}).Methods("GET")

	r.HandleFunc("/api/postCurrencyListing", func(w http.ResponseWriter, req *http.Request) {
		var request domain.CurrencyExchangeRequest
		json.NewDecoder(req.Body).Decode(&request)
		request.ID = uuid.NewString()
		b.mu.Lock()
		b.currency = append(b.currency, request)
		b.mu.Unlock()
		json.NewEncoder(w).Encode(request)
	}).Methods("POST")

	r.HandleFunc("/api/getSubleasingRequests", func(w http.ResponseWriter, req *http.Request) {
		b.mu.Lock()
		defer b.mu.Unlock()
		json.NewEncoder(w).Encode(map[string]interface{}{"requests": b.subleasing, "request_count": len(b.subleasing)})
	}).Methods("GET")

	r.HandleFunc("/api/subleasing", func(w http.ResponseWriter, req *http.Request) {
		var request domain.SubleasingRequest
		json.NewDecoder(req.Body).Decode(&request)
		request.ID = uuid.NewString()
		b.mu.Lock()
		b.subleasing = append(b.subleasing, request)
		b.mu.Unlock()
		json.NewEncoder(w).Encode(request)
	}).Methods("POST")

	r.HandleFunc("/api/user/activities", func(w http.ResponseWriter, req *http.Request) {
		userID := req.URL.Query().Get("user_id")
		b.mu.Lock()
		defer b.mu.Unlock()
		activities := domain.UserActivities{}
		for _, l := range b.marketplace {
			if l.UserID == userID {
				activities.MarketplaceListings = append(activities.MarketplaceListings, l)
			}
		}
		for _, c := range b.currency {
			if c.UserID == userID {
				activities.CurrencyExchangeRequests = append(activities.CurrencyExchangeRequests, c)
			}
		}
		for _, s := range b.subleasing {
			if s.UserID == userID {
				activities.SubleasingRequests = append(activities.SubleasingRequests, s)
			}
		}
		json.NewEncoder(w).Encode(activities)
	}).Methods("GET")

	r.HandleFunc("/api/updateListing", func(w http.ResponseWriter, req *http.Request) {
		var update domain.ListingUpdate
		json.NewDecoder(req.Body).Decode(&update)
		b.mu.Lock()
		b.updates = append(b.updates, update)
		b.mu.Unlock()
		json.NewEncoder(w).Encode(map[string]string{"message": "Listing updated"})
	}).Methods("PUT")

	r.HandleFunc("/api/deleteListing/{id}", func(w http.ResponseWriter, req *http.Request) {
		b.mu.Lock()
		b.deleted = append(b.deleted, mux.Vars(req)["id"])
		b.mu.Unlock()
		json.NewEncoder(w).Encode(map[string]string{"message": "Listing deleted"})
	}).Methods("DELETE")

	r.HandleFunc("/api/markAsSold", func(w http.ResponseWriter, req *http.Request) {
		var body map[string]string
		json.NewDecoder(req.Body).Decode(&body)
		b.mu.Lock()
		b.sold = append(b.sold, body["id"])
		b.mu.Unlock()
		json.NewEncoder(w).Encode(map[string]string{"message": "Marked as sold"})
	}).Methods("POST")

	return r
}

// webFixture stands up the whole web front against a fake backend and drives
// it through a cookie-aware HTTP client, the way a browser would.
type webFixture struct {
	backend *fakeBackend
	emails  *capturingEmailService
	client  *http.Client
	baseURL string
}

func newWebFixture(t *testing.T) *webFixture {
	t.Helper()

	backend := newFakeBackend()
	backendServer := httptest.NewServer(backend.router())
	t.Cleanup(backendServer.Close)

	market := marketclient.New(backendServer.URL)
	emails := &capturingEmailService{}
	authService := service.NewAuthService(
		store.NewOTPStore(),
		market,
		emails,
		security.NewOTPGenerator(),
		ratelimit.NewLimiter(),
		"ufl.edu",
		10*time.Minute,
	)

	sessionStore := sessions.NewCookieStore([]byte("test-session-secret"))
	sessionStore.Options = &sessions.Options{Path: "/", MaxAge: 3600, HttpOnly: true}
	authMiddleware := middleware.NewAuthMiddleware(sessionStore)
	dateFormatter := datetime.NewFormatter()

	const templatesDir = "../../templates"
	authHandler := NewAuthHandler(authService, authMiddleware, "ufl.edu", templatesDir)
	homeHandler := NewHomeHandler(market, authMiddleware, dateFormatter, templatesDir)
	listingHandler := NewListingHandler(market, authMiddleware, dateFormatter, templatesDir)
	profileHandler := NewProfileHandler(market, authMiddleware, dateFormatter, templatesDir)
	dashboardHandler := NewDashboardHandler(market, authMiddleware, dateFormatter, templatesDir)

	router := mux.NewRouter()
	router.HandleFunc("/login", authHandler.Login).Methods("GET", "POST")
	router.HandleFunc("/logout", authHandler.Logout).Methods("GET")

	protected := router.PathPrefix("/").Subrouter()
	protected.Use(authMiddleware.RequireAuth)
	protected.HandleFunc("/home", homeHandler.View).Methods("GET")
	protected.HandleFunc("/marketplace", listingHandler.Marketplace).Methods("GET")
	protected.HandleFunc("/marketplace/create", listingHandler.CreateMarketplace).Methods("POST")
	protected.HandleFunc("/currency", listingHandler.Currency).Methods("GET")
	protected.HandleFunc("/currency/create", listingHandler.CreateCurrency).Methods("POST")
	protected.HandleFunc("/subleasing", listingHandler.Subleasing).Methods("GET")
	protected.HandleFunc("/subleasing/create", listingHandler.CreateSubleasing).Methods("POST")
	protected.HandleFunc("/profile", profileHandler.View).Methods("GET")
	protected.HandleFunc("/profile", profileHandler.Save).Methods("POST")
	protected.HandleFunc("/dashboard", dashboardHandler.View).Methods("GET")
	protected.HandleFunc("/dashboard/listing", dashboardHandler.Mutate).Methods("POST")

	webServer := httptest.NewServer(router)
	t.Cleanup(webServer.Close)

	jar, err := cookiejar.New(nil)
	require.NoError(t, err)

	return &webFixture{
		backend: backend,
		emails:  emails,
		client:  &http.Client{Jar: jar},
		baseURL: webServer.URL,
	}
}

func (f *webFixture) get(t *testing.T, path string) (*http.Response, string) {
	t.Helper()
	resp, err := f.client.Get(f.baseURL + path)
	require.NoError(t, err)
	return resp, readBody(t, resp)
}

func (f *webFixture) postForm(t *testing.T, path string, form url.Values) (*http.Response, string) {
	t.Helper()
	resp, err := f.client.PostForm(f.baseURL+path, form)
	require.NoError(t, err)
	return resp, readBody(t, resp)
}

func readBody(t *testing.T, resp *http.Response) string {
	t.Helper()
	defer resp.Body.Close()
	body, err := io.ReadAll(resp.Body)
	require.NoError(t, err)
	return string(body)
}

// login walks the full OTP flow for the given address and returns the
// backend-issued user ID.
func (f *webFixture) login(t *testing.T, email string) string {
	t.Helper()

	_, body := f.postForm(t, "/login", url.Values{"email": {email}})
	require.Contains(t, body, "An OTP has been sent to your email.")

	code := f.emails.lastCode(t)
	resp, body := f.postForm(t, "/login", url.Values{"email": {email}, "otp": {code}})
	require.Equal(t, "/home", resp.Request.URL.Path, "verify should land on /home, got body: %s", body)

	f.backend.mu.Lock()
	defer f.backend.mu.Unlock()
	require.NotEmpty(t, f.backend.users)
	return f.backend.users[len(f.backend.users)-1].ID
}

// lastURL is a convenience for asserting where a redirect chain ended.
func lastURL(resp *http.Response) *url.URL {
	return resp.Request.URL
}
