package attribution

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"time"

	"adforge/internal/core/domain"
)

// Errors the sync layer can branch on.
var (
	ErrRateLimited    = errors.New("attribution provider rate limited")
	ErrBadCredentials = errors.New("attribution provider rejected credentials")
)

// adSetQuery is the aggregate daily ad-set query sent to the provider's SQL
// endpoint.
const adSetQuery = `
    SELECT
      event_date,
      adset_id,
      adset_name,
      channel,
      SUM(spend) as spend,
      SUM(orders_quantity) as pixel_purchases,
      SUM(order_revenue) as pixel_revenue,
      SUM(clicks) as clicks,
      SUM(impressions) as impressions
    FROM pixel_joined_tvf
    WHERE event_date BETWEEN @startDate AND @endDate
    GROUP BY event_date, adset_id, adset_name, channel
    ORDER BY event_date DESC
`

// Client pulls attributed daily ad-set rows from the attribution provider.
// It implements port.MetricsProvider.
type Client struct {
	baseURL string
	apiKey  string
	shopID  string
	http    *http.Client
}

// NewClient builds a client for the given account.
func NewClient(baseURL, apiKey, shopID string, timeout time.Duration) *Client {
	if timeout <= 0 {
		timeout = 30 * time.Second
	}
	return &Client{
		baseURL: baseURL,
		apiKey:  apiKey,
		shopID:  shopID,
		http:    &http.Client{Timeout: timeout},
	}
}

// FetchAdSetRows runs the aggregate query for [from, to] (ISO dates) and
// returns the raw daily rows.
func (c *Client) FetchAdSetRows(ctx context.Context, from, to string) ([]domain.ChannelRow, error) {
	if c.apiKey == "" || c.shopID == "" {
		return nil, errors.New("attribution provider not configured")
	}

	body, err := json.Marshal(map[string]any{
		"shopId": c.shopID,
		"query":  adSetQuery,
		"period": map[string]string{"startDate": from, "endDate": to},
	})
	if err != nil {
		return nil, err
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+"/orcabase/api/sql", bytes.NewReader(body))
	if err != nil {
		return nil, err
	}
	req.Header.Set("Accept", "application/json")
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("x-api-key", c.apiKey)

	resp, err := c.http.Do(req)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	switch resp.StatusCode {
	case http.StatusTooManyRequests:
		return nil, ErrRateLimited
	case http.StatusForbidden:
		return nil, ErrBadCredentials
	}
	if resp.StatusCode != http.StatusOK {
		snippet, _ := io.ReadAll(io.LimitReader(resp.Body, 512))
		return nil, fmt.Errorf("attribution provider returned %d: %s", resp.StatusCode, snippet)
	}

	return decodeRows(resp.Body)
}

// wireRow tolerates the provider's loose typing: ids arrive as strings or
// numbers depending on the channel.
type wireRow struct {
	EventDate   string  `json:"event_date"`
	AdSetID     flexID  `json:"adset_id"`
	AdSetName   string  `json:"adset_name"`
	Channel     string  `json:"channel"`
	Spend       float64 `json:"spend"`
	Purchases   float64 `json:"pixel_purchases"`
	Revenue     float64 `json:"pixel_revenue"`
	Clicks      int64   `json:"clicks"`
	Impressions int64   `json:"impressions"`
}

type flexID string

func (f *flexID) UnmarshalJSON(b []byte) error {
	var s string
	if err := json.Unmarshal(b, &s); err == nil {
		*f = flexID(s)
		return nil
	}
	var n json.Number
	if err := json.Unmarshal(b, &n); err != nil {
		return err
	}
	*f = flexID(n.String())
	return nil
}

func decodeRows(r io.Reader) ([]domain.ChannelRow, error) {
	raw, err := io.ReadAll(r)
	if err != nil {
		return nil, err
	}

	// The endpoint answers with either a bare array or {"rows": [...]}.
	var wire []wireRow
	if err := json.Unmarshal(raw, &wire); err != nil {
		var wrapped struct {
			Rows []wireRow `json:"rows"`
			Data []wireRow `json:"data"`
		}
		if err := json.Unmarshal(raw, &wrapped); err != nil {
			return nil, fmt.Errorf("malformed attribution response: %w", err)
		}
		wire = wrapped.Rows
		if wire == nil {
			wire = wrapped.Data
		}
	}

	rows := make([]domain.ChannelRow, 0, len(wire))
	for _, w := range wire {
		rows = append(rows, domain.ChannelRow{
			Date:        w.EventDate,
			AdSetID:     string(w.AdSetID),
			AdSetName:   w.AdSetName,
			Channel:     w.Channel,
			Spend:       w.Spend,
			Purchases:   int(w.Purchases),
			Revenue:     w.Revenue,
			Clicks:      w.Clicks,
			Impressions: w.Impressions,
		})
	}
	return rows, nil
}
