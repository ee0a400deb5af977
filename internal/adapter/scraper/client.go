package scraper

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"adforge/internal/core/domain"
)

// Client drives an actor-based comment scraping service: start a run for a
// video URL, poll until it finishes, fetch the dataset. It implements
// port.CommentScraper.
type Client struct {
	baseURL      string
	token        string
	actorID      string
	pollInterval time.Duration
	maxWait      time.Duration
	http         *http.Client
}

// NewClient builds a scraper client.
func NewClient(baseURL, token, actorID string, pollInterval, maxWait time.Duration) *Client {
	if pollInterval <= 0 {
		pollInterval = 5 * time.Second
	}
	if maxWait <= 0 {
		maxWait = 2 * time.Minute
	}
	return &Client{
		baseURL:      baseURL,
		token:        token,
		actorID:      actorID,
		pollInterval: pollInterval,
		maxWait:      maxWait,
		http:         &http.Client{Timeout: 30 * time.Second},
	}
}

// Scrape runs the actor for videoURL and returns normalised comments.
// Sentiment is assigned by keyword matching; the caller may reclassify
// later. Cancelling ctx abandons the run.
func (c *Client) Scrape(ctx context.Context, videoURL string, maxComments int) ([]domain.Comment, error) {
	if c.token == "" {
		return nil, errors.New("comment scraper not configured")
	}
	if strings.TrimSpace(videoURL) == "" {
		return nil, errors.New("video URL is required")
	}
	if maxComments <= 0 {
		maxComments = 100
	}

	runID, err := c.startRun(ctx, videoURL, maxComments)
	if err != nil {
		return nil, err
	}

	deadline := time.Now().Add(c.maxWait)
	for time.Now().Before(deadline) {
		select {
		case <-ctx.Done():
			return nil, ctx.Err()
		case <-time.After(c.pollInterval):
		}

		status, datasetID, err := c.runStatus(ctx, runID)
		if err != nil {
			continue // transient poll failures are retried until the deadline
		}
		switch status {
		case "SUCCEEDED":
			if datasetID == "" {
				return nil, errors.New("scrape run succeeded but produced no dataset")
			}
			return c.fetchDataset(ctx, datasetID)
		case "FAILED", "ABORTED", "TIMED-OUT":
			return nil, fmt.Errorf("scrape run %s", strings.ToLower(status))
		}
	}
	return nil, errors.New("scrape run timed out")
}

func (c *Client) startRun(ctx context.Context, videoURL string, maxComments int) (string, error) {
	body, err := json.Marshal(map[string]any{
		"postURLs":             []string{strings.TrimSpace(videoURL)},
		"commentsPerPost":      maxComments,
		"maxRepliesPerComment": 0,
	})
	if err != nil {
		return "", err
	}
	url := fmt.Sprintf("%s/v2/acts/%s/runs?token=%s", c.baseURL, c.actorID, c.token)
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, url, bytes.NewReader(body))
	if err != nil {
		return "", err
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.http.Do(req)
	if err != nil {
		return "", err
	}
	defer resp.Body.Close()

	if resp.StatusCode == http.StatusUnauthorized {
		return "", errors.New("scraper rejected credentials")
	}
	if resp.StatusCode >= 300 {
		snippet, _ := io.ReadAll(io.LimitReader(resp.Body, 512))
		return "", fmt.Errorf("scraper returned %d: %s", resp.StatusCode, snippet)
	}

	var wire struct {
		Data struct {
			ID string `json:"id"`
		} `json:"data"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&wire); err != nil {
		return "", fmt.Errorf("malformed scraper response: %w", err)
	}
	if wire.Data.ID == "" {
		return "", errors.New("scraper did not return a run id")
	}
	return wire.Data.ID, nil
}

func (c *Client) runStatus(ctx context.Context, runID string) (status, datasetID string, err error) {
	url := fmt.Sprintf("%s/v2/actor-runs/%s?token=%s", c.baseURL, runID, c.token)
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return "", "", err
	}
	resp, err := c.http.Do(req)
	if err != nil {
		return "", "", err
	}
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusOK {
		return "", "", fmt.Errorf("status poll returned %d", resp.StatusCode)
	}
	var wire struct {
		Data struct {
			Status           string `json:"status"`
			DefaultDatasetID string `json:"defaultDatasetId"`
		} `json:"data"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&wire); err != nil {
		return "", "", err
	}
	return wire.Data.Status, wire.Data.DefaultDatasetID, nil
}

func (c *Client) fetchDataset(ctx context.Context, datasetID string) ([]domain.Comment, error) {
	url := fmt.Sprintf("%s/v2/datasets/%s/items?token=%s&format=json", c.baseURL, datasetID, c.token)
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return nil, err
	}
	resp, err := c.http.Do(req)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("dataset fetch returned %d", resp.StatusCode)
	}

	var items []struct {
		Text    string `json:"text"`
		Comment string `json:"comment"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&items); err != nil {
		return nil, fmt.Errorf("malformed dataset: %w", err)
	}

	out := make([]domain.Comment, 0, len(items))
	for _, item := range items {
		text := strings.TrimSpace(item.Text)
		if text == "" {
			text = strings.TrimSpace(item.Comment)
		}
		if text == "" {
			continue
		}
		out = append(out, domain.Comment{
			Text:      text,
			Sentiment: keywordSentiment(text),
		})
	}
	return out, nil
}

var (
	negativeWords = []string{
		"scam", "fake", "waste", "trash", "don't buy", "doesn't work",
		"terrible", "awful", "horrible", "worst", "rip off", "ripoff",
		"fraud", "lie", "liar", "garbage",
	}
	positiveWords = []string{
		"works", "love", "amazing", "great", "ordered", "bought",
		"recommend", "best", "results", "helped", "thank",
	}
)

// keywordSentiment is a coarse fallback classifier. Negative cues win over
// positive ones.
func keywordSentiment(text string) domain.Sentiment {
	t := strings.ToLower(text)
	for _, w := range negativeWords {
		if strings.Contains(t, w) {
			return domain.SentimentNegative
		}
	}
	for _, w := range positiveWords {
		if strings.Contains(t, w) {
			return domain.SentimentPositive
		}
	}
	return domain.SentimentNeutral
}
