package handler

import (
	"html/template"
	"log"
	"net/http"

	"uni-marketplace/internal/domain"
	"uni-marketplace/internal/marketclient"
	"uni-marketplace/internal/middleware"
	"uni-marketplace/pkg/datetime"
)

// HomeHandler renders the Home tab: the registered-users table.
type HomeHandler struct {
	market         *marketclient.Client
	authMiddleware *middleware.AuthMiddleware
	homeTemplate   *template.Template
}

func NewHomeHandler(
	market *marketclient.Client,
	authMiddleware *middleware.AuthMiddleware,
	dateFormatter *datetime.Formatter,
	templatesDir string,
) *HomeHandler {
	funcs := templateFuncs(dateFormatter)

	return &HomeHandler{
		market:         market,
		authMiddleware: authMiddleware,
		homeTemplate:   mustParseTemplate(templatesDir, "home.html", funcs),
	}
}

func (h *HomeHandler) View(w http.ResponseWriter, r *http.Request) {
	email, _ := h.authMiddleware.GetUserEmail(r)

	pageData := struct {
		Email string
		Users []domain.User
		Error string
	}{
		Email: email,
	}

	users, err := h.market.Users(r.Context())
	if err != nil {
		log.Printf("Error fetching users: %v", err)
		pageData.Error = "Failed to load registered users."
	} else {
		pageData.Users = users
	}

	h.homeTemplate.Execute(w, pageData)
}
