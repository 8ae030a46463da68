package handler

import (
	"net/url"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestProfileSaveAndReload(t *testing.T) {
	fx := newWebFixture(t)
	userID := fx.login(t, "student@ufl.edu")

	resp, _ := fx.postForm(t, "/profile", url.Values{
		"name":            {"Albert Gator"},
		"preferred_email": {"albert@gmail.com"},
		"preferences":     {"books, bikes"},
		"city":            {"Gainesville"},
		"state":           {"FL"},
		"country":         {"USA"},
	})

	assert.Equal(t, "/profile", lastURL(resp).Path)
	assert.Equal(t, "saved=1", lastURL(resp).RawQuery)

	saved, ok := fx.backend.profiles[userID]
	require.True(t, ok, "profile is stored under the session's user ID")
	assert.Equal(t, "Albert Gator", saved.Name)
	assert.Equal(t, "albert@gmail.com", saved.PreferredEmail)
	assert.Equal(t, []string{"books", "bikes"}, saved.Preferences, "comma-separated input becomes a trimmed list")
	assert.Equal(t, "Gainesville", saved.Location.City)

	// Reloading the page shows the stored values.
	_, body := fx.get(t, "/profile")
	assert.Contains(t, body, "Albert Gator")
	assert.Contains(t, body, "books, bikes")
	assert.Contains(t, body, "Profile saved successfully!")
}

func TestProfileViewShowsLoginEmail(t *testing.T) {
	fx := newWebFixture(t)
	fx.login(t, "student@ufl.edu")

	_, body := fx.get(t, "/profile")
	assert.Contains(t, body, "student@ufl.edu")
}
