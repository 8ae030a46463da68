package handler

import (
	"html/template"
	"log"
	"net/http"
	"strconv"

	"uni-marketplace/internal/domain"
	"uni-marketplace/internal/marketclient"
	"uni-marketplace/internal/middleware"
	"uni-marketplace/pkg/datetime"

	"github.com/gorilla/csrf"
)

// DashboardHandler serves the user-activity view: everything the current
// user has posted across all three listing kinds, with per-row edit, delete
// and mark-as-sold actions.
type DashboardHandler struct {
	market            *marketclient.Client
	authMiddleware    *middleware.AuthMiddleware
	dashboardTemplate *template.Template
}

func NewDashboardHandler(
	market *marketclient.Client,
	authMiddleware *middleware.AuthMiddleware,
	dateFormatter *datetime.Formatter,
	templatesDir string,
) *DashboardHandler {
	funcs := templateFuncs(dateFormatter)

	return &DashboardHandler{
		market:            market,
		authMiddleware:    authMiddleware,
		dashboardTemplate: mustParseTemplate(templatesDir, "dashboard.html", funcs),
	}
}

func (h *DashboardHandler) View(w http.ResponseWriter, r *http.Request) {
	userID, ok := h.authMiddleware.GetUserID(r)
	if !ok {
		http.Redirect(w, r, "/login", http.StatusFound)
		return
	}

	pageData := struct {
		Activities *domain.UserActivities
		Error      string
		Done       string
		Failed     string
		CSRFField  template.HTML
	}{
		Activities: &domain.UserActivities{},
		Done:       r.URL.Query().Get("done"),
		Failed:     r.URL.Query().Get("failed"),
		CSRFField:  csrf.TemplateField(r),
	}

	activities, err := h.market.UserActivities(r.Context(), userID)
	if err != nil {
		log.Printf("Error fetching activities for user %s: %v", userID, err)
		pageData.Error = "Failed to load your activities."
	} else {
		pageData.Activities = activities
	}

	h.dashboardTemplate.Execute(w, pageData)
}

// Mutate applies exactly one of the edit dialog's actions to the selected
// item: save, delete, or mark as sold.
func (h *DashboardHandler) Mutate(w http.ResponseWriter, r *http.Request) {
	if _, ok := h.authMiddleware.GetUserID(r); !ok {
		http.Redirect(w, r, "/login", http.StatusFound)
		return
	}

	if err := r.ParseForm(); err != nil {
		http.Error(w, "Invalid form data", http.StatusBadRequest)
		return
	}

	action := r.FormValue("action")
	id := r.FormValue("id")
	if id == "" {
		http.Error(w, "Missing listing ID", http.StatusBadRequest)
		return
	}

	var err error
	switch action {
	case "save":
		update := domain.ListingUpdate{
			ID:        id,
			Title:     r.FormValue("title"),
			Condition: r.FormValue("condition"),
			Category:  r.FormValue("category"),
		}
		if raw := r.FormValue("price"); raw != "" {
			if price, parseErr := strconv.ParseFloat(raw, 64); parseErr == nil {
				update.Price = price
			} else {
				log.Printf("Error parsing price %q in edit dialog: %v", raw, parseErr)
			}
		}
		err = h.market.UpdateListing(r.Context(), update)
	case "delete":
		err = h.market.DeleteListing(r.Context(), id)
	case "sold":
		err = h.market.MarkAsSold(r.Context(), id)
	default:
		http.Error(w, "Unknown action", http.StatusBadRequest)
		return
	}

	if err != nil {
		log.Printf("Dashboard action %q failed for listing %s: %v", action, id, err)
		http.Redirect(w, r, "/dashboard?failed="+action, http.StatusFound)
		return
	}

	http.Redirect(w, r, "/dashboard?done="+action, http.StatusFound)
}
