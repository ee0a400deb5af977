package insight

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

	"adforge/internal/core/port"
)

// Client calls a messages-style generative API with a serialized creative
// snapshot and parses the strict-JSON verdict it returns. It implements
// port.AnalysisProvider.
type Client struct {
	baseURL   string
	apiKey    string
	model     string
	maxTokens int
	http      *http.Client
}

// NewClient builds an analysis client.
func NewClient(baseURL, apiKey, model string, maxTokens int, timeout time.Duration) *Client {
	if maxTokens <= 0 {
		maxTokens = 1000
	}
	if timeout <= 0 {
		timeout = 60 * time.Second
	}
	return &Client{
		baseURL:   baseURL,
		apiKey:    apiKey,
		model:     model,
		maxTokens: maxTokens,
		http:      &http.Client{Timeout: timeout},
	}
}

// Analyze sends the snapshot and decodes the provider's JSON verdict.
func (c *Client) Analyze(ctx context.Context, req port.AnalysisRequest) (*port.AnalysisResult, error) {
	if c.apiKey == "" {
		return nil, errors.New("analysis provider not configured")
	}

	payload, err := json.Marshal(map[string]any{
		"model":      c.model,
		"max_tokens": c.maxTokens,
		"messages": []map[string]string{
			{"role": "user", "content": buildPrompt(req)},
		},
	})
	if err != nil {
		return nil, err
	}

	httpReq, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+"/v1/messages", bytes.NewReader(payload))
	if err != nil {
		return nil, err
	}
	httpReq.Header.Set("Content-Type", "application/json")
	httpReq.Header.Set("x-api-key", c.apiKey)

	resp, err := c.http.Do(httpReq)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		snippet, _ := io.ReadAll(io.LimitReader(resp.Body, 512))
		return nil, fmt.Errorf("analysis provider returned %d: %s", resp.StatusCode, snippet)
	}

	var wire struct {
		Content []struct {
			Text string `json:"text"`
		} `json:"content"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&wire); err != nil {
		return nil, fmt.Errorf("malformed analysis response: %w", err)
	}
	var text strings.Builder
	for _, block := range wire.Content {
		text.WriteString(block.Text)
	}

	var result port.AnalysisResult
	if err := json.Unmarshal([]byte(stripFences(text.String())), &result); err != nil {
		return nil, fmt.Errorf("analysis verdict is not valid JSON: %w", err)
	}
	return &result, nil
}

// buildPrompt serializes one creative's snapshot: brief, CPA trend, totals,
// every comment with its suppressed flag, and the iteration history. The
// response contract is strict JSON so the verdict can be parsed without
// heuristics.
func buildPrompt(req port.AnalysisRequest) string {
	var b strings.Builder
	fmt.Fprintf(&b, "You are an expert direct response advertising analyst. Analyze this ad's performance data and audience comments (including suppressed negatives the platform auto-hid, which carry critical market intelligence).\n\n")
	fmt.Fprintf(&b, "AD: %q (%s)\nBRIEF: %s\n", req.Name, req.Type, req.Brief)
	fmt.Fprintf(&b, "Thresholds: green <= $%.2f, yellow <= $%.2f, red above\n", req.Thresholds.Green, req.Thresholds.Yellow)

	if len(req.Metrics) > 0 {
		latest := req.Metrics[len(req.Metrics)-1]
		fmt.Fprintf(&b, "LATEST DAY: CPA $%.2f | Spend $%.2f | Conv %d | CTR %.1f%% | CPM $%.2f\n",
			latest.CPA, latest.Spend, latest.Conversions, latest.CTR, latest.CPM)
		trend := make([]string, 0, len(req.Metrics))
		for _, m := range req.Metrics {
			trend = append(trend, fmt.Sprintf("$%.2f", m.CPA))
		}
		fmt.Fprintf(&b, "CPA TREND: %s\n", strings.Join(trend, " -> "))
	} else {
		b.WriteString("METRICS: none logged yet\n")
	}

	fmt.Fprintf(&b, "\nCOMMENTS (%d total):\n", len(req.Comments))
	for _, cm := range req.Comments {
		suffix := ""
		if cm.Suppressed {
			suffix = " [SUPPRESSED BY PLATFORM]"
		}
		fmt.Fprintf(&b, "%q [%s]%s\n", cm.Text, cm.Sentiment, suffix)
	}

	if len(req.IterationHistory) > 0 {
		b.WriteString("\nITERATION HISTORY:\n")
		for _, it := range req.IterationHistory {
			fmt.Fprintf(&b, "Iter %d: %s\n", it.Number, it.Reason)
		}
	}

	b.WriteString(`
Respond ONLY in JSON, no markdown fences or backticks:
{"summary":"2-3 sentence assessment","findings":[{"type":"positive|negative|warning|action","text":"specific finding"}],"nextIterationPlan":"specific plan if losing, or empty if winning","suggestedLearnings":[{"type":"hook_pattern|proof_structure|angle_theme|pacing|visual_style|objection_handling","text":"learning to capture"}]}`)
	return b.String()
}

func stripFences(s string) string {
	s = strings.ReplaceAll(s, "```json", "")
	s = strings.ReplaceAll(s, "```", "")
	return strings.TrimSpace(s)
}
