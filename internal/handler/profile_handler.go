package handler

import (
	"html/template"
	"log"
	"net/http"
	"strings"

	"uni-marketplace/internal/domain"
	"uni-marketplace/internal/marketclient"
	"uni-marketplace/internal/middleware"
	"uni-marketplace/pkg/datetime"

	"github.com/gorilla/csrf"
)

type ProfileHandler struct {
	market          *marketclient.Client
	authMiddleware  *middleware.AuthMiddleware
	profileTemplate *template.Template
}

func NewProfileHandler(
	market *marketclient.Client,
	authMiddleware *middleware.AuthMiddleware,
	dateFormatter *datetime.Formatter,
	templatesDir string,
) *ProfileHandler {
	funcs := templateFuncs(dateFormatter)

	return &ProfileHandler{
		market:          market,
		authMiddleware:  authMiddleware,
		profileTemplate: mustParseTemplate(templatesDir, "profile.html", funcs),
	}
}

type profilePage struct {
	Email     string
	Profile   *domain.UserProfile
	Saved     bool
	Error     string
	CSRFField template.HTML
}

func (h *ProfileHandler) View(w http.ResponseWriter, r *http.Request) {
	userID, _ := h.authMiddleware.GetUserID(r)
	email, _ := h.authMiddleware.GetUserEmail(r)

	page := profilePage{
		Email:     email,
		Profile:   &domain.UserProfile{},
		Saved:     r.URL.Query().Get("saved") == "1",
		CSRFField: csrf.TemplateField(r),
	}

	// Without a user id there is nothing to fetch; the form holds defaults.
	if userID != "" {
		profile, err := h.market.UserProfile(r.Context(), userID)
		if err != nil {
			log.Printf("Error fetching profile for user %s: %v", userID, err)
		} else {
			page.Profile = profile
		}
	}

	h.profileTemplate.Execute(w, page)
}

func (h *ProfileHandler) Save(w http.ResponseWriter, r *http.Request) {
	userID, ok := h.authMiddleware.GetUserID(r)
	if !ok {
		http.Redirect(w, r, "/login", http.StatusFound)
		return
	}
	email, _ := h.authMiddleware.GetUserEmail(r)

	if err := r.ParseForm(); err != nil {
		http.Error(w, "Invalid form data", http.StatusBadRequest)
		return
	}

	profile := domain.UserProfile{
		Name:           r.FormValue("name"),
		PreferredEmail: r.FormValue("preferred_email"),
		Preferences:    splitPreferences(r.FormValue("preferences")),
		Location: domain.Location{
			City:    r.FormValue("city"),
			State:   r.FormValue("state"),
			Country: r.FormValue("country"),
		},
	}

	updated, err := h.market.UpdateUserProfile(r.Context(), userID, profile)
	if err != nil {
		log.Printf("Error updating profile for user %s: %v", userID, err)
		h.profileTemplate.Execute(w, profilePage{
			Email:     email,
			Profile:   &profile,
			Error:     "Failed to save profile.",
			CSRFField: csrf.TemplateField(r),
		})
		return
	}

	log.Printf("Profile updated for user %s (%s)", userID, updated.Name)
	http.Redirect(w, r, "/profile?saved=1", http.StatusFound)
}

// splitPreferences turns the comma-separated free-text field into a list,
// dropping empty entries.
func splitPreferences(raw string) []string {
	var preferences []string
	for _, pref := range strings.Split(raw, ",") {
		if trimmed := strings.TrimSpace(pref); trimmed != "" {
			preferences = append(preferences, trimmed)
		}
	}
	return preferences
}
