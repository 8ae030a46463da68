package middleware

import (
	"net/http"

	"github.com/gorilla/sessions"
)

// AuthMiddleware wraps the session cookie that carries the login flag and the
// backend-issued user identifier. It is the only writer of that state: the
// OTP flow sets it and logout clears it.
type AuthMiddleware struct {
	store *sessions.CookieStore
}

func NewAuthMiddleware(store *sessions.CookieStore) *AuthMiddleware {
	return &AuthMiddleware{
		store: store,
	}
}

func (m *AuthMiddleware) RequireAuth(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		session, err := m.store.Get(r, "session")
		if err != nil {
			http.Redirect(w, r, "/login", http.StatusFound)
			return
		}

		auth, ok := session.Values["authenticated"].(bool)
		if !ok || !auth {
			http.Redirect(w, r, "/login", http.StatusFound)
			return
		}

		next.ServeHTTP(w, r)
	})
}

func (m *AuthMiddleware) GetUserID(r *http.Request) (string, bool) {
	session, err := m.store.Get(r, "session")
	if err != nil {
		return "", false
	}

	userID, ok := session.Values["user_id"].(string)
	if !ok || userID == "" {
		return "", false
	}
	return userID, true
}

func (m *AuthMiddleware) GetUserEmail(r *http.Request) (string, bool) {
	session, err := m.store.Get(r, "session")
	if err != nil {
		return "", false
	}

	email, ok := session.Values["email"].(string)
	return email, ok
}

func (m *AuthMiddleware) SetUserSession(w http.ResponseWriter, r *http.Request, userID, email string) error {
	session, err := m.store.Get(r, "session")
	if err != nil {
		return err
	}

	session.Values["authenticated"] = true
	session.Values["user_id"] = userID
	session.Values["email"] = email

	return session.Save(r, w)
}

func (m *AuthMiddleware) ClearSession(w http.ResponseWriter, r *http.Request) error {
	session, err := m.store.Get(r, "session")
	if err != nil {
		return err
	}

	session.Values["authenticated"] = false
	delete(session.Values, "user_id")
	delete(session.Values, "email")

	return session.Save(r, w)
}
