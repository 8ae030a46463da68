package handler

import (
	"fmt"
	"html/template"
	"log"
	"net/http"

	"uni-marketplace/internal/domain"
	"uni-marketplace/internal/middleware"
	"uni-marketplace/internal/service"
	"uni-marketplace/pkg/datetime"

	"github.com/gorilla/csrf"
)

type AuthHandler struct {
	authService    *service.AuthService
	authMiddleware *middleware.AuthMiddleware
	emailDomain    string
	loginTemplate  *template.Template
}

func NewAuthHandler(
	authService *service.AuthService,
	authMiddleware *middleware.AuthMiddleware,
	emailDomain string,
	templatesDir string,
) *AuthHandler {
	funcs := templateFuncs(datetime.NewFormatter())

	return &AuthHandler{
		authService:    authService,
		authMiddleware: authMiddleware,
		emailDomain:    emailDomain,
		loginTemplate:  mustParseTemplate(templatesDir, "login.html", funcs),
	}
}

func (h *AuthHandler) Login(w http.ResponseWriter, r *http.Request) {
	if r.Method == "GET" {
		h.showLoginPage(w, r, nil)
		return
	}

	if r.Method == "POST" {
		h.handleLoginPost(w, r)
		return
	}

	http.Error(w, "Method not allowed", http.StatusMethodNotAllowed)
}

func (h *AuthHandler) showLoginPage(w http.ResponseWriter, r *http.Request, data map[string]string) {
	if data == nil {
		data = make(map[string]string)
	}
	if data["Step"] == "" {
		data["Step"] = "email"
	}

	templateData := map[string]interface{}{
		"Step":        data["Step"],
		"Email":       data["Email"],
		"Message":     data["Message"],
		"Error":       data["Error"],
		"EmailDomain": h.emailDomain,
		"csrfField":   csrf.TemplateField(r),
	}

	h.loginTemplate.Execute(w, templateData)
}

func (h *AuthHandler) handleLoginPost(w http.ResponseWriter, r *http.Request) {
	if err := r.ParseForm(); err != nil {
		http.Error(w, "Invalid form data", http.StatusBadRequest)
		return
	}

	email := r.FormValue("email")
	otp := r.FormValue("otp")

	if otp == "" {
		h.handleSendOTP(w, r, email)
	} else {
		h.handleVerifyOTP(w, r, email, otp)
	}
}

func (h *AuthHandler) handleSendOTP(w http.ResponseWriter, r *http.Request, email string) {
	err := h.authService.SendOTP(r.Context(), email)
	if err != nil {
		log.Printf("Error sending OTP to %s: %v", email, err)

		message := "Failed to send OTP. Please try again."
		switch err {
		case domain.ErrInvalidEmail:
			message = fmt.Sprintf("Please enter a valid @%s email address.", h.emailDomain)
		case domain.ErrTooManyRequests:
			message = "Too many codes requested. Please wait a few minutes and try again."
		}

		h.showLoginPage(w, r, map[string]string{
			"Step":  "email",
			"Email": email,
			"Error": message,
		})
		return
	}

	h.showLoginPage(w, r, map[string]string{
		"Step":    "code",
		"Email":   email,
		"Message": "An OTP has been sent to your email.",
	})
}

func (h *AuthHandler) handleVerifyOTP(w http.ResponseWriter, r *http.Request, email, otp string) {
	userID, err := h.authService.VerifyOTP(r.Context(), email, otp)
	if err != nil {
		log.Printf("OTP verification failed for %s: %v", email, err)

		step := "code"
		message := "Failed to save user details. Please try again."
		switch err {
		case domain.ErrInvalidOTP:
			message = "Invalid OTP. Please try again."
		case domain.ErrOTPExpired:
			step = "email"
			message = "Your OTP has expired. Please request a new one."
		case domain.ErrTooManyRequests:
			message = "Too many attempts. Please wait a few minutes and try again."
		}

		h.showLoginPage(w, r, map[string]string{
			"Step":  step,
			"Email": email,
			"Error": message,
		})
		return
	}

	if err := h.authMiddleware.SetUserSession(w, r, userID, email); err != nil {
		log.Printf("Failed to set session for user %s: %v", userID, err)
		http.Error(w, "Internal server error", http.StatusInternalServerError)
		return
	}

	log.Printf("User %s logged in successfully", email)
	http.Redirect(w, r, "/home", http.StatusFound)
}

func (h *AuthHandler) Logout(w http.ResponseWriter, r *http.Request) {
	if err := h.authMiddleware.ClearSession(w, r); err != nil {
		log.Printf("Error clearing session: %v", err)
	}
	http.Redirect(w, r, "/login", http.StatusFound)
}
