package marketclient

import (
	"context"
	"encoding/json"
	"fmt"
)

// The three listing kinds share one endpoint shape: a GET returning the
// items under an envelope key, and a POST taking the full record. The typed
// methods in listings.go are thin fronts over these two functions.
func listResource[T any](ctx context.Context, c *Client, path, envelopeKey string) ([]T, error) {
	var envelope map[string]json.RawMessage
	if err := c.get(ctx, path, &envelope); err != nil {
		return nil, err
	}

	raw, ok := envelope[envelopeKey]
	if !ok {
		return nil, nil
	}

	var items []T
	if err := json.Unmarshal(raw, &items); err != nil {
		return nil, fmt.Errorf("failed to decode %q from %s: %w", envelopeKey, path, err)
	}
	return items, nil
}

func createResource[T any](ctx context.Context, c *Client, path string, record T) error {
	return c.post(ctx, path, record, nil)
}
