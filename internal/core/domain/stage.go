package domain

// Stage is a creative's position in the production pipeline. The forward
// order is Drafting → InProgress → Review → Live. Archived is terminal: it
// sits outside the forward order and cannot be left once entered.
type Stage string

const (
	StageDrafting   Stage = "drafting"
	StageInProgress Stage = "in-progress"
	StageReview     Stage = "review"
	StageLive       Stage = "live"
	StageArchived   Stage = "archived"
)

// StageOrder lists the forward stages in pipeline order. Archived is not
// part of the forward order.
var StageOrder = []Stage{StageDrafting, StageInProgress, StageReview, StageLive}

// Index returns the position of s in the forward order, or -1 for archived
// and unknown values.
func (s Stage) Index() int {
	for i, st := range StageOrder {
		if st == s {
			return i
		}
	}
	return -1
}

// Valid reports whether s is one of the defined stages, archived included.
func (s Stage) Valid() bool {
	return s == StageArchived || s.Index() >= 0
}
