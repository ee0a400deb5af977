package usecase

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"

	"adforge/internal/core/domain"
	"adforge/internal/core/engine"
	"adforge/internal/core/port"
)

// Pipeline implements port.PipelineUseCase: it loads the creative collection
// into an engine snapshot, applies commands through the pure transition
// function, and persists whatever the command touched. The engine stays
// storage-free; this is the single writer the concurrency model assumes.
type Pipeline struct {
	creatives  port.CreativeRepository
	thresholds port.ThresholdRepository

	// orderValue is the assumed per-conversion revenue used to derive ROAS
	// for manual metric sequences. maxIterations is the iteration cap
	// stamped onto new creatives.
	orderValue    float64
	maxIterations int
}

// NewPipeline wires the pipeline usecase over its repositories.
func NewPipeline(creatives port.CreativeRepository, thresholds port.ThresholdRepository, orderValue float64, maxIterations int) *Pipeline {
	if orderValue <= 0 {
		orderValue = engine.AssumedOrderValue
	}
	if maxIterations <= 0 {
		maxIterations = engine.DefaultMaxIterations
	}
	return &Pipeline{creatives: creatives, thresholds: thresholds, orderValue: orderValue, maxIterations: maxIterations}
}

// Execute dispatches one engine command and persists the result. Gate and
// policy rejections come back in ActionResult.Denied with the stored state
// unchanged.
func (p *Pipeline) Execute(ctx context.Context, cmd engine.Command) (*port.ActionResult, error) {
	th, err := p.thresholds.Get(ctx)
	if err != nil {
		return nil, fmt.Errorf("load thresholds: %w", err)
	}
	creatives, err := p.creatives.List(ctx)
	if err != nil {
		return nil, fmt.Errorf("load creatives: %w", err)
	}

	if create, ok := cmd.(engine.CreateCreative); ok && create.MaxIterations <= 0 {
		create.MaxIterations = p.maxIterations
		cmd = create
	}

	next, out, err := engine.Apply(engine.Snapshot{Creatives: creatives}, cmd, th, time.Now().UTC())
	if err != nil {
		return nil, err
	}
	if out.Denied != "" {
		return &port.ActionResult{Denied: out.Denied}, nil
	}

	res := &port.ActionResult{}
	for _, id := range out.Touched {
		c, ok := next.Find(id)
		if !ok {
			return nil, fmt.Errorf("touched creative %s missing from snapshot", id)
		}
		if err := p.creatives.Save(ctx, c); err != nil {
			return nil, fmt.Errorf("save creative %s: %w", id, err)
		}
	}

	primary := out.Created
	if primary == nil && len(out.Touched) > 0 {
		primary, _ = next.Find(out.Touched[0])
	}
	if primary != nil {
		res.Creative = p.view(primary, th)
	}
	return res, nil
}

// List returns a decorated view of the whole collection.
func (p *Pipeline) List(ctx context.Context) ([]port.CreativeView, error) {
	th, err := p.thresholds.Get(ctx)
	if err != nil {
		return nil, fmt.Errorf("load thresholds: %w", err)
	}
	creatives, err := p.creatives.List(ctx)
	if err != nil {
		return nil, fmt.Errorf("load creatives: %w", err)
	}
	views := make([]port.CreativeView, 0, len(creatives))
	for i := range creatives {
		views = append(views, *p.view(&creatives[i], th))
	}
	return views, nil
}

// Get returns one decorated creative.
func (p *Pipeline) Get(ctx context.Context, id uuid.UUID) (*port.CreativeView, error) {
	th, err := p.thresholds.Get(ctx)
	if err != nil {
		return nil, fmt.Errorf("load thresholds: %w", err)
	}
	c, err := p.creatives.Get(ctx, id)
	if err != nil {
		return nil, err
	}
	return p.view(c, th), nil
}

// Thresholds returns the current cutoffs.
func (p *Pipeline) Thresholds(ctx context.Context) (domain.Thresholds, error) {
	return p.thresholds.Get(ctx)
}

// SetThresholds replaces the process-wide cutoffs. Classification is never
// cached, so every live creative reclassifies on the next read.
func (p *Pipeline) SetThresholds(ctx context.Context, th domain.Thresholds) error {
	if th.Green <= 0 || th.Yellow <= 0 {
		return fmt.Errorf("%w: thresholds must be positive", engine.ErrInvalidInput)
	}
	return p.thresholds.Put(ctx, th)
}

func (p *Pipeline) view(c *domain.Creative, th domain.Thresholds) *port.CreativeView {
	v := &port.CreativeView{
		Creative:      c.Clone(),
		Tier:          engine.ClassifyCreative(c, th),
		GreenStreak:   engine.GreenStreak(c, th),
		Winner:        engine.IsWinner(c, th),
		Totals:        engine.Summarize(c.Metrics, p.orderValue),
		IterateDenied: engine.CanIterate(c, th),
		KillDenied:    engine.CanKill(c, th),
	}
	if best, ok := engine.BestChannel(c); ok {
		v.BestChannel = best
	}
	return v
}
