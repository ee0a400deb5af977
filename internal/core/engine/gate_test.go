package engine

import (
	"testing"

	"github.com/stretchr/testify/require"

	"adforge/internal/core/domain"
)

func TestGateForwardWalk(t *testing.T) {
	c := &domain.Creative{Stage: domain.StageDrafting}

	require.Equal(t, ReasonBriefUnapproved, CanTransition(c, domain.StageDrafting, domain.StageInProgress))
	c.BriefApproved = true
	require.Equal(t, ReasonNoEditor, CanTransition(c, domain.StageDrafting, domain.StageInProgress))
	c.Editor = "Maya"
	require.Empty(t, CanTransition(c, domain.StageDrafting, domain.StageInProgress))
	c.Stage = domain.StageInProgress

	require.Equal(t, ReasonNoDraft, CanTransition(c, domain.StageInProgress, domain.StageReview))
	c.DraftSubmitted = true
	require.Empty(t, CanTransition(c, domain.StageInProgress, domain.StageReview))
	c.Stage = domain.StageReview

	require.Equal(t, ReasonFinalUnapproved, CanTransition(c, domain.StageReview, domain.StageLive))
	c.FinalApproved = true
	c.RevisionRequests = []domain.RevisionRequest{{Text: "tighten the hook"}}
	require.Equal(t, ReasonOpenRevisions, CanTransition(c, domain.StageReview, domain.StageLive))
	c.RevisionRequests[0].Resolved = true
	require.Empty(t, CanTransition(c, domain.StageReview, domain.StageLive))
}

func TestGateDraftListSatisfiesReview(t *testing.T) {
	// The flag and the draft list can disagree; either one opens review.
	c := &domain.Creative{
		Stage:  domain.StageInProgress,
		Drafts: []domain.Draft{{Name: "v1"}},
	}
	require.Empty(t, CanTransition(c, domain.StageInProgress, domain.StageReview))
}

func TestGateBackwardAndSelfAreFree(t *testing.T) {
	c := &domain.Creative{Stage: domain.StageLive}
	require.Empty(t, CanTransition(c, domain.StageLive, domain.StageDrafting))
	require.Empty(t, CanTransition(c, domain.StageLive, domain.StageReview))
	require.Empty(t, CanTransition(c, domain.StageLive, domain.StageLive))
}

func TestGateNonAdjacentForward(t *testing.T) {
	c := &domain.Creative{Stage: domain.StageDrafting, BriefApproved: true, Editor: "Maya", FinalApproved: true}
	require.Equal(t, ReasonNonAdjacent, CanTransition(c, domain.StageDrafting, domain.StageReview))
	require.Equal(t, ReasonNonAdjacent, CanTransition(c, domain.StageDrafting, domain.StageLive))
}

func TestGateArchived(t *testing.T) {
	c := &domain.Creative{Stage: domain.StageArchived}
	require.Equal(t, ReasonArchived, CanTransition(c, domain.StageArchived, domain.StageDrafting))

	live := &domain.Creative{Stage: domain.StageLive}
	require.Equal(t, ReasonUseKill, CanTransition(live, domain.StageLive, domain.StageArchived))
}
