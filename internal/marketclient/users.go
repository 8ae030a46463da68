package marketclient

import (
	"context"
	"net/url"
	"time"

	"uni-marketplace/internal/domain"
)

// SaveUser creates the user on first login and updates last_login on every
// later one. The backend returns the opaque identifier that scopes all
// listing ownership.
func (c *Client) SaveUser(ctx context.Context, email string, lastLogin time.Time) (string, error) {
	payload := domain.User{Email: email, LastLogin: lastLogin}

	var resp struct {
		UserID string `json:"userID"`
	}
	if err := c.post(ctx, "/api/saveUser", payload, &resp); err != nil {
		return "", err
	}
	return resp.UserID, nil
}

func (c *Client) Users(ctx context.Context) ([]domain.User, error) {
	return listResource[domain.User](ctx, c, "/api/users", "users")
}

func (c *Client) UserProfile(ctx context.Context, userID string) (*domain.UserProfile, error) {
	var envelope struct {
		Profile domain.UserProfile `json:"profile"`
	}
	if err := c.get(ctx, "/api/getUserProfile/"+url.PathEscape(userID), &envelope); err != nil {
		return nil, err
	}
	return &envelope.Profile, nil
}

// UpdateUserProfile saves the profile and returns the state the backend
// acknowledged. Older backend builds reply with only a confirmation message,
// so the submitted profile stands in when no profile comes back.
func (c *Client) UpdateUserProfile(ctx context.Context, userID string, profile domain.UserProfile) (*domain.UserProfile, error) {
	var resp struct {
		Profile *domain.UserProfile `json:"profile"`
	}
	if err := c.post(ctx, "/api/updateUserProfile/"+url.PathEscape(userID), profile, &resp); err != nil {
		return nil, err
	}
	if resp.Profile != nil {
		return resp.Profile, nil
	}
	return &profile, nil
}

func (c *Client) UserActivities(ctx context.Context, userID string) (*domain.UserActivities, error) {
	var activities domain.UserActivities
	if err := c.get(ctx, "/api/user/activities?user_id="+url.QueryEscape(userID), &activities); err != nil {
		return nil, err
	}
	return &activities, nil
}
