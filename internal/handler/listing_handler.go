package handler

import (
	"html/template"
	"log"
	"net/http"
	"net/url"
	"strconv"
	"time"

	"uni-marketplace/internal/domain"
	"uni-marketplace/internal/marketclient"
	"uni-marketplace/internal/middleware"
	"uni-marketplace/pkg/datetime"

	"github.com/gorilla/csrf"
)

// ListingHandler serves the three listing tabs. The tabs differ only in
// field set; fetching and creating go through the same generic client core,
// and each page template receives the same listingPage shape.
type ListingHandler struct {
	market              *marketclient.Client
	authMiddleware      *middleware.AuthMiddleware
	dateFormatter       *datetime.Formatter
	marketplaceTemplate *template.Template
	currencyTemplate    *template.Template
	subleasingTemplate  *template.Template
}

func NewListingHandler(
	market *marketclient.Client,
	authMiddleware *middleware.AuthMiddleware,
	dateFormatter *datetime.Formatter,
	templatesDir string,
) *ListingHandler {
	funcs := templateFuncs(dateFormatter)

	return &ListingHandler{
		market:              market,
		authMiddleware:      authMiddleware,
		dateFormatter:       dateFormatter,
		marketplaceTemplate: mustParseTemplate(templatesDir, "marketplace.html", funcs),
		currencyTemplate:    mustParseTemplate(templatesDir, "currency.html", funcs),
		subleasingTemplate:  mustParseTemplate(templatesDir, "subleasing.html", funcs),
	}
}

// listingPage is the view state every listing tab renders: the fetched items
// or a terminal error for this visit, plus the create-form modal state. The
// draft survives a failed create so the user doesn't retype it.
type listingPage struct {
	Items     interface{}
	Error     string
	FormOpen  bool
	Created   bool
	Draft     url.Values
	CSRFField template.HTML
}

func newListingPage(r *http.Request) listingPage {
	return listingPage{
		FormOpen:  r.URL.Query().Get("form") == "1",
		Created:   r.URL.Query().Get("created") == "1",
		Draft:     url.Values{},
		CSRFField: csrf.TemplateField(r),
	}
}

func (h *ListingHandler) Marketplace(w http.ResponseWriter, r *http.Request) {
	page := newListingPage(r)

	items, err := h.market.MarketplaceListings(r.Context())
	if err != nil {
		log.Printf("Error fetching marketplace listings: %v", err)
		page.Error = "Failed to load listings."
	} else {
		page.Items = items
	}

	h.marketplaceTemplate.Execute(w, page)
}

func (h *ListingHandler) CreateMarketplace(w http.ResponseWriter, r *http.Request) {
	userID, ok := h.authMiddleware.GetUserID(r)
	if !ok {
		http.Redirect(w, r, "/login", http.StatusFound)
		return
	}

	if err := r.ParseForm(); err != nil {
		http.Error(w, "Invalid form data", http.StatusBadRequest)
		return
	}

	price, err := strconv.ParseFloat(r.FormValue("price"), 64)
	if err != nil {
		log.Printf("Error parsing listing price %q: %v", r.FormValue("price"), err)
		h.rerenderMarketplace(w, r)
		return
	}

	listing := domain.MarketplaceListing{
		UserID:      userID,
		Title:       r.FormValue("title"),
		Description: r.FormValue("description"),
		Price:       price,
		Category:    r.FormValue("category"),
		Condition:   r.FormValue("condition"),
		Location:    locationFromForm(r),
		Pictures:    picturesFromForm(r),
		DatePosted:  time.Now().UTC(),
	}

	if err := listing.Validate(); err != nil {
		log.Printf("Invalid marketplace listing: %v", err)
		h.rerenderMarketplace(w, r)
		return
	}

	if err := h.market.CreateMarketplaceListing(r.Context(), listing); err != nil {
		log.Printf("Error creating marketplace listing: %v", err)
		h.rerenderMarketplace(w, r)
		return
	}

	http.Redirect(w, r, "/marketplace?created=1", http.StatusFound)
}

func (h *ListingHandler) rerenderMarketplace(w http.ResponseWriter, r *http.Request) {
	page := failedCreatePage(r)
	if items, err := h.market.MarketplaceListings(r.Context()); err == nil {
		page.Items = items
	}
	h.marketplaceTemplate.Execute(w, page)
}

func (h *ListingHandler) Currency(w http.ResponseWriter, r *http.Request) {
	page := newListingPage(r)

	items, err := h.market.CurrencyExchangeListings(r.Context())
	if err != nil {
		log.Printf("Error fetching currency exchange listings: %v", err)
		page.Error = "Failed to load listings."
	} else {
		page.Items = items
	}

	h.currencyTemplate.Execute(w, page)
}

func (h *ListingHandler) CreateCurrency(w http.ResponseWriter, r *http.Request) {
	userID, ok := h.authMiddleware.GetUserID(r)
	if !ok {
		http.Redirect(w, r, "/login", http.StatusFound)
		return
	}

	if err := r.ParseForm(); err != nil {
		http.Error(w, "Invalid form data", http.StatusBadRequest)
		return
	}

	amount, err := strconv.ParseFloat(r.FormValue("amount"), 64)
	if err != nil {
		log.Printf("Error parsing exchange amount %q: %v", r.FormValue("amount"), err)
		h.rerenderCurrency(w, r)
		return
	}

	request := domain.CurrencyExchangeRequest{
		UserID:       userID,
		Amount:       amount,
		FromCurrency: r.FormValue("from_currency"),
		ToCurrency:   r.FormValue("to_currency"),
		RequestDate:  time.Now().UTC(),
	}

	if err := request.Validate(); err != nil {
		log.Printf("Invalid currency exchange request: %v", err)
		h.rerenderCurrency(w, r)
		return
	}

	if err := h.market.CreateCurrencyExchangeRequest(r.Context(), request); err != nil {
		log.Printf("Error creating currency exchange request: %v", err)
		h.rerenderCurrency(w, r)
		return
	}

	http.Redirect(w, r, "/currency?created=1", http.StatusFound)
}

func (h *ListingHandler) rerenderCurrency(w http.ResponseWriter, r *http.Request) {
	page := failedCreatePage(r)
	if items, err := h.market.CurrencyExchangeListings(r.Context()); err == nil {
		page.Items = items
	}
	h.currencyTemplate.Execute(w, page)
}

func (h *ListingHandler) Subleasing(w http.ResponseWriter, r *http.Request) {
	page := newListingPage(r)

	items, err := h.market.SubleasingRequests(r.Context())
	if err != nil {
		log.Printf("Error fetching subleasing requests: %v", err)
		page.Error = "Failed to load listings."
	} else {
		page.Items = items
	}

	h.subleasingTemplate.Execute(w, page)
}

func (h *ListingHandler) CreateSubleasing(w http.ResponseWriter, r *http.Request) {
	userID, ok := h.authMiddleware.GetUserID(r)
	if !ok {
		http.Redirect(w, r, "/login", http.StatusFound)
		return
	}

	if err := r.ParseForm(); err != nil {
		http.Error(w, "Invalid form data", http.StatusBadRequest)
		return
	}

	rent, err := strconv.ParseFloat(r.FormValue("rent"), 64)
	if err != nil {
		log.Printf("Error parsing rent %q: %v", r.FormValue("rent"), err)
		h.rerenderSubleasing(w, r)
		return
	}

	startDate, err := h.dateFormatter.ParseDateInput(r.FormValue("start_date"))
	if err != nil {
		log.Printf("Error parsing lease start date %q: %v", r.FormValue("start_date"), err)
		h.rerenderSubleasing(w, r)
		return
	}
	endDate, err := h.dateFormatter.ParseDateInput(r.FormValue("end_date"))
	if err != nil {
		log.Printf("Error parsing lease end date %q: %v", r.FormValue("end_date"), err)
		h.rerenderSubleasing(w, r)
		return
	}

	request := domain.SubleasingRequest{
		UserID:      userID,
		Title:       r.FormValue("title"),
		Description: r.FormValue("description"),
		Rent:        rent,
		Location:    locationFromForm(r),
		Period:      domain.LeasePeriod{StartDate: startDate, EndDate: endDate},
		Pictures:    picturesFromForm(r),
		DatePosted:  time.Now().UTC(),
	}

	if err := request.Validate(); err != nil {
		log.Printf("Invalid subleasing request: %v", err)
		h.rerenderSubleasing(w, r)
		return
	}

	if err := h.market.CreateSubleasingRequest(r.Context(), request); err != nil {
		log.Printf("Error creating subleasing request: %v", err)
		h.rerenderSubleasing(w, r)
		return
	}

	http.Redirect(w, r, "/subleasing?created=1", http.StatusFound)
}

func (h *ListingHandler) rerenderSubleasing(w http.ResponseWriter, r *http.Request) {
	page := failedCreatePage(r)
	if items, err := h.market.SubleasingRequests(r.Context()); err == nil {
		page.Items = items
	}
	h.subleasingTemplate.Execute(w, page)
}

// failedCreatePage keeps the modal open with the submitted draft after a
// create that didn't go through.
func failedCreatePage(r *http.Request) listingPage {
	return listingPage{
		FormOpen:  true,
		Draft:     r.PostForm,
		CSRFField: csrf.TemplateField(r),
	}
}

func locationFromForm(r *http.Request) domain.Location {
	return domain.Location{
		City:    r.FormValue("city"),
		State:   r.FormValue("state"),
		Country: r.FormValue("country"),
	}
}

func picturesFromForm(r *http.Request) []string {
	var pictures []string
	for _, name := range []string{"picture1", "picture2", "picture3"} {
		if url := r.FormValue(name); url != "" {
			pictures = append(pictures, url)
		}
	}
	return pictures
}
