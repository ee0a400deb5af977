package db

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgxpool"

	"adforge/internal/adapter/postgres"
	"adforge/internal/core/domain"
)

// Seed inserts a small demo pipeline: a live winner with a variant child,
// a creative mid-production, and a losing live creative with one iteration
// behind it.
func Seed(ctx context.Context, pool *pgxpool.Pool) error {
	repo := postgres.NewCreativeRepository(pool)
	now := time.Now().UTC()

	winner := domain.Creative{
		ID:             uuid.New(),
		Name:           "Hook Test - Pain Point Open",
		Type:           "VSL",
		Stage:          domain.StageLive,
		Editor:         "Maya",
		Brief:          "Open on the pain point, agitate for 5s, cut to product demo.",
		Notes:          "Scaling on Meta since week 2.",
		MaxIterations:  3,
		BriefApproved:  true,
		DraftSubmitted: true,
		FinalApproved:  true,
		Metrics: []domain.MetricRecord{
			{Date: day(now, -6), CPA: 20.00, Spend: 240, Conversions: 12, CTR: 1.1, CPM: 9.80},
			{Date: day(now, -5), CPA: 14.00, Spend: 280, Conversions: 20, CTR: 1.4, CPM: 9.20},
			{Date: day(now, -4), CPA: 12.00, Spend: 300, Conversions: 25, CTR: 1.6, CPM: 8.90},
			{Date: day(now, -3), CPA: 10.00, Spend: 310, Conversions: 31, CTR: 1.8, CPM: 8.40},
			{Date: day(now, -2), CPA: 9.00, Spend: 315, Conversions: 35, CTR: 1.9, CPM: 8.10},
			{Date: day(now, -1), CPA: 11.00, Spend: 330, Conversions: 30, CTR: 1.7, CPM: 8.60},
		},
		ChannelAdSets: map[domain.Channel]string{
			domain.ChannelMeta: "238476102938471",
		},
		Learnings: []domain.Learning{
			{ID: uuid.New(), Type: "hook_pattern", Text: "Pain-first opens outperform curiosity opens for this offer."},
		},
		CreatedAt: now.AddDate(0, 0, -21),
		UpdatedAt: now,
	}

	variant := domain.Creative{
		ID:            uuid.New(),
		Name:          "Hook Test - Social Proof Open",
		Type:          "VSL",
		Stage:         domain.StageDrafting,
		Editor:        "Maya",
		Brief:         "Same body as the pain-point winner, open on the 4.8-star review wall instead.",
		Notes:         "Variation of Hook Test - Pain Point Open",
		MaxIterations: 3,
		BriefApproved: true,
		ParentID:      &winner.ID,
		CreatedAt:     now.AddDate(0, 0, -2),
		UpdatedAt:     now,
	}
	winner.ChildIDs = []uuid.UUID{variant.ID}

	inProgress := domain.Creative{
		ID:             uuid.New(),
		Name:           "UGC Testimonial - Sarah",
		Type:           "UGC",
		Stage:          domain.StageInProgress,
		Editor:         "Devon",
		Deadline:       day(now, 7),
		Brief:          "Raw phone-shot testimonial, 30s cut, captions burned in.",
		MaxIterations:  3,
		BriefApproved:  true,
		DraftSubmitted: true,
		Drafts: []domain.Draft{
			{ID: uuid.New(), Name: "sarah-testimonial-v1.mp4", Version: 1, Status: domain.DraftInReview, SubmittedAt: now.AddDate(0, 0, -1)},
		},
		CreatedAt: now.AddDate(0, 0, -9),
		UpdatedAt: now,
	}

	loser := domain.Creative{
		ID:             uuid.New(),
		Name:           "Founder Story Ad",
		Type:           "Image Ad",
		Stage:          domain.StageLive,
		Editor:         "Devon",
		Brief:          "Founder-to-camera origin story with product reveal at the end.",
		Notes:          "Iteration 1 - Hook too slow, front-load the reveal",
		Iterations:     1,
		MaxIterations:  3,
		BriefApproved:  true,
		DraftSubmitted: true,
		FinalApproved:  true,
		IterationLog: []domain.IterationEntry{
			{Number: 1, Reason: "Hook too slow, front-load the reveal", At: now.AddDate(0, 0, -10)},
		},
		Metrics: []domain.MetricRecord{
			{Date: day(now, -3), CPA: 26.00, Spend: 130, Conversions: 5, CTR: 0.7, CPM: 11.30},
			{Date: day(now, -2), CPA: 31.00, Spend: 155, Conversions: 5, CTR: 0.6, CPM: 11.90},
			{Date: day(now, -1), CPA: 29.00, Spend: 145, Conversions: 5, CTR: 0.6, CPM: 11.50},
		},
		CreatedAt: now.AddDate(0, 0, -30),
		UpdatedAt: now,
	}

	for _, c := range []domain.Creative{winner, variant, inProgress, loser} {
		c := c
		if err := repo.Save(ctx, &c); err != nil {
			return err
		}
	}
	return nil
}

func day(now time.Time, offset int) string {
	return now.AddDate(0, 0, offset).Format("2006-01-02")
}
