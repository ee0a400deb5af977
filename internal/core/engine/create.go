package engine

import (
	"time"

	"github.com/google/uuid"

	"adforge/internal/core/domain"
)

// DefaultMaxIterations caps how often a red creative can be reworked before
// kill eligibility opens.
const DefaultMaxIterations = 3

// NewCreative builds a fresh creative in the drafting stage with all gate
// flags down and empty collaboration state.
func NewCreative(name, adType, editor, deadline, brief, notes string, maxIter int, now time.Time) domain.Creative {
	if maxIter <= 0 {
		maxIter = DefaultMaxIterations
	}
	return domain.Creative{
		ID:            uuid.New(),
		Name:          name,
		Type:          adType,
		Stage:         domain.StageDrafting,
		Editor:        editor,
		Deadline:      deadline,
		Brief:         brief,
		Notes:         notes,
		MaxIterations: maxIter,
		CreatedAt:     now,
		UpdatedAt:     now,
	}
}

// NewVariant builds a creative derived from a winning parent. The variant
// starts in drafting with brief-approved already set and carries the
// parent's id for lineage. Registering the child id on the parent is the
// command layer's job.
func NewVariant(parent *domain.Creative, name, brief, adType string, now time.Time) domain.Creative {
	if adType == "" {
		adType = parent.Type
	}
	v := NewCreative(name, adType, "", "", brief, "Variation of "+parent.Name, parent.MaxIterations, now)
	pid := parent.ID
	v.ParentID = &pid
	v.BriefApproved = true
	return v
}
