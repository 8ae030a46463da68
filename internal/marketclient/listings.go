package marketclient

import (
	"context"
	"net/url"

	"uni-marketplace/internal/domain"
)

func (c *Client) MarketplaceListings(ctx context.Context) ([]domain.MarketplaceListing, error) {
	return listResource[domain.MarketplaceListing](ctx, c, "/api/getMarketplaceListings", "listings")
}

func (c *Client) CreateMarketplaceListing(ctx context.Context, listing domain.MarketplaceListing) error {
	return createResource(ctx, c, "/api/postMarketplaceListing", listing)
}

// CurrencyExchangeListings is used for both the initial load and the
// post-create refresh. The frontend this replaces refreshed from a
// differently named endpoint; that was a bug, not a contract.
func (c *Client) CurrencyExchangeListings(ctx context.Context) ([]domain.CurrencyExchangeRequest, error) {
	return listResource[domain.CurrencyExchangeRequest](ctx, c, "/api/getCurrencyExchangeListings", "listings")
}

func (c *Client) CreateCurrencyExchangeRequest(ctx context.Context, request domain.CurrencyExchangeRequest) error {
	return createResource(ctx, c, "/api/postCurrencyListing", request)
}

func (c *Client) SubleasingRequests(ctx context.Context) ([]domain.SubleasingRequest, error) {
	return listResource[domain.SubleasingRequest](ctx, c, "/api/getSubleasingRequests", "requests")
}

func (c *Client) CreateSubleasingRequest(ctx context.Context, request domain.SubleasingRequest) error {
	return createResource(ctx, c, "/api/subleasing", request)
}

func (c *Client) UpdateListing(ctx context.Context, update domain.ListingUpdate) error {
	return c.put(ctx, "/api/updateListing", update)
}

func (c *Client) DeleteListing(ctx context.Context, id string) error {
	return c.delete(ctx, "/api/deleteListing/"+url.PathEscape(id))
}

func (c *Client) MarkAsSold(ctx context.Context, id string) error {
	return c.post(ctx, "/api/markAsSold", map[string]string{"id": id}, nil)
}
