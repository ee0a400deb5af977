package usecase

import (
	"context"
	"io"
	"log/slog"
	"sync"

	"github.com/google/uuid"

	"adforge/internal/core/domain"
	"adforge/internal/core/port"
)

func testLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

// memCreativeRepo is an in-memory port.CreativeRepository preserving
// insertion order like the SQL implementation's created_at ordering.
type memCreativeRepo struct {
	mu    sync.Mutex
	order []uuid.UUID
	items map[uuid.UUID]domain.Creative
	saves int
}

func newMemCreativeRepo(creatives ...domain.Creative) *memCreativeRepo {
	r := &memCreativeRepo{items: make(map[uuid.UUID]domain.Creative)}
	for _, c := range creatives {
		r.order = append(r.order, c.ID)
		r.items[c.ID] = c
	}
	return r
}

func (r *memCreativeRepo) Get(_ context.Context, id uuid.UUID) (*domain.Creative, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	c, ok := r.items[id]
	if !ok {
		return nil, port.ErrNotFound
	}
	clone := c.Clone()
	return &clone, nil
}

func (r *memCreativeRepo) List(_ context.Context) ([]domain.Creative, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	out := make([]domain.Creative, 0, len(r.order))
	for _, id := range r.order {
		c := r.items[id]
		out = append(out, c.Clone())
	}
	return out, nil
}

func (r *memCreativeRepo) Save(_ context.Context, c *domain.Creative) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.items[c.ID]; !ok {
		r.order = append(r.order, c.ID)
	}
	r.items[c.ID] = c.Clone()
	r.saves++
	return nil
}

func (r *memCreativeRepo) Count(_ context.Context) (int64, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	return int64(len(r.items)), nil
}

// memThresholdRepo is an in-memory port.ThresholdRepository.
type memThresholdRepo struct {
	th domain.Thresholds
}

func (r *memThresholdRepo) Get(context.Context) (domain.Thresholds, error) { return r.th, nil }

func (r *memThresholdRepo) Put(_ context.Context, th domain.Thresholds) error {
	r.th = th
	return nil
}

// recordingNotifier captures published texts.
type recordingNotifier struct {
	mu    sync.Mutex
	texts []string
}

func (n *recordingNotifier) Publish(_ context.Context, text string) {
	n.mu.Lock()
	defer n.mu.Unlock()
	n.texts = append(n.texts, text)
}

func (n *recordingNotifier) Recent(context.Context, int64) ([]port.Notification, error) {
	return nil, nil
}

// stubMetricsProvider returns fixed rows or an error.
type stubMetricsProvider struct {
	rows []domain.ChannelRow
	err  error
}

func (p *stubMetricsProvider) FetchAdSetRows(context.Context, string, string) ([]domain.ChannelRow, error) {
	return p.rows, p.err
}

// stubAnalysisProvider returns a fixed result or an error.
type stubAnalysisProvider struct {
	res *port.AnalysisResult
	err error
}

func (p *stubAnalysisProvider) Analyze(context.Context, port.AnalysisRequest) (*port.AnalysisResult, error) {
	return p.res, p.err
}

// stubScraper returns fixed comments or an error.
type stubScraper struct {
	comments []domain.Comment
	err      error
}

func (s *stubScraper) Scrape(context.Context, string, int) ([]domain.Comment, error) {
	return s.comments, s.err
}
