package engine

import "adforge/internal/core/domain"

// Gate reasons reported to the caller when a stage move is rejected. They
// are values, never errors: a blocked move is an expected business outcome.
const (
	ReasonArchived        = "archived creatives cannot change stage"
	ReasonUseKill         = "creatives are archived through kill, not a stage move"
	ReasonUnknownStage    = "unknown target stage"
	ReasonNonAdjacent     = "stages can only be advanced one at a time"
	ReasonBriefUnapproved = "brief must be approved before moving to in-progress"
	ReasonNoEditor        = "an editor must be assigned before moving to in-progress"
	ReasonNoDraft         = "a draft must be submitted before moving to review"
	ReasonFinalUnapproved = "final version must be approved before going live"
	ReasonOpenRevisions   = "unresolved revision requests must be resolved before going live"
)

// CanTransition validates a stage move and returns "" when it is allowed or
// the first violated precondition's reason otherwise. It never mutates the
// creative; on success the caller applies the change.
//
// Moving backward (or to the current stage) is always free. Forward moves
// must be adjacent and each adjacent pair has its own rules:
//
//	drafting → in-progress: brief approved and an editor assigned
//	in-progress → review:   draft-submitted flag set, or at least one draft
//	review → live:          final approved and no open revision request
func CanTransition(c *domain.Creative, from, to domain.Stage) string {
	if from == domain.StageArchived {
		return ReasonArchived
	}
	if to == domain.StageArchived {
		return ReasonUseKill
	}
	fromIdx, toIdx := from.Index(), to.Index()
	if fromIdx < 0 || toIdx < 0 {
		return ReasonUnknownStage
	}
	if toIdx <= fromIdx {
		return ""
	}
	if toIdx > fromIdx+1 {
		return ReasonNonAdjacent
	}

	switch {
	case from == domain.StageDrafting && to == domain.StageInProgress:
		if !c.BriefApproved {
			return ReasonBriefUnapproved
		}
		if c.Editor == "" {
			return ReasonNoEditor
		}
	case from == domain.StageInProgress && to == domain.StageReview:
		// The flag and the draft list can disagree; either satisfies the rule.
		if !c.DraftSubmitted && len(c.Drafts) == 0 {
			return ReasonNoDraft
		}
	case from == domain.StageReview && to == domain.StageLive:
		if !c.FinalApproved {
			return ReasonFinalUnapproved
		}
		for _, r := range c.RevisionRequests {
			if !r.Resolved {
				return ReasonOpenRevisions
			}
		}
	}
	return ""
}
