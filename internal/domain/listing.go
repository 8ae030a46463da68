package domain

import "time"

const MaxListingPictures = 3

type MarketplaceListing struct {
	ID          string    `json:"id,omitempty"`
	UserID      string    `json:"user_id"`
	Title       string    `json:"title"`
	Description string    `json:"description"`
	Price       float64   `json:"price"`
	Category    string    `json:"category"`
	Condition   string    `json:"condition"`
	Location    Location  `json:"location"`
	Pictures    []string  `json:"pictures,omitempty"`
	DatePosted  time.Time `json:"date_posted"`
	Status      string    `json:"status,omitempty"`
}

func (l *MarketplaceListing) Validate() error {
	if l.Title == "" {
		return ErrInvalidListingTitle
	}
	if l.Price <= 0 {
		return ErrInvalidListingPrice
	}
	if l.UserID == "" {
		return ErrInvalidUserID
	}
	if len(l.Pictures) > MaxListingPictures {
		return ErrTooManyPictures
	}
	return nil
}

type CurrencyExchangeRequest struct {
	ID           string    `json:"id,omitempty"`
	UserID       string    `json:"user_id"`
	Amount       float64   `json:"amount"`
	FromCurrency string    `json:"from_currency"`
	ToCurrency   string    `json:"to_currency"`
	RequestDate  time.Time `json:"request_date"`
	Status       string    `json:"status,omitempty"`
}

func (r *CurrencyExchangeRequest) Validate() error {
	if r.Amount <= 0 {
		return ErrInvalidAmount
	}
	if r.FromCurrency == "" || r.ToCurrency == "" {
		return ErrInvalidCurrency
	}
	if r.UserID == "" {
		return ErrInvalidUserID
	}
	return nil
}

type LeasePeriod struct {
	StartDate time.Time `json:"start_date"`
	EndDate   time.Time `json:"end_date"`
}

type SubleasingRequest struct {
	ID          string      `json:"id,omitempty"`
	UserID      string      `json:"user_id"`
	Title       string      `json:"title"`
	Description string      `json:"description"`
	Rent        float64     `json:"rent"`
	Location    Location    `json:"location"`
	Period      LeasePeriod `json:"period"`
	Pictures    []string    `json:"pictures,omitempty"`
	DatePosted  time.Time   `json:"date_posted"`
	Status      string      `json:"status,omitempty"`
}

func (s *SubleasingRequest) Validate() error {
	if s.Title == "" {
		return ErrInvalidListingTitle
	}
	if s.Rent <= 0 {
		return ErrInvalidRent
	}
	if s.UserID == "" {
		return ErrInvalidUserID
	}
	if !s.Period.EndDate.After(s.Period.StartDate) {
		return ErrInvalidLeasePeriod
	}
	if len(s.Pictures) > MaxListingPictures {
		return ErrTooManyPictures
	}
	return nil
}

// UserActivities aggregates everything a user has posted, as returned by the
// backend's activities endpoint. The subleasing key is camelCase on the wire
// while the other two are snake_case; the backend has always sent it that way.
type UserActivities struct {
	MarketplaceListings      []MarketplaceListing      `json:"marketplace_listings"`
	CurrencyExchangeRequests []CurrencyExchangeRequest `json:"currency_exchange_requests"`
	SubleasingRequests       []SubleasingRequest       `json:"subleasingRequests"`
}

// ListingUpdate is the payload for the dashboard's edit dialog. It carries
// the fields the dialog exposes; the backend merges it into the stored
// record by ID.
type ListingUpdate struct {
	ID        string  `json:"id"`
	Title     string  `json:"title,omitempty"`
	Price     float64 `json:"price,omitempty"`
	Condition string  `json:"condition,omitempty"`
	Category  string  `json:"category,omitempty"`
}

func (u *ListingUpdate) Validate() error {
	if u.ID == "" {
		return ErrInvalidListingID
	}
	return nil
}
