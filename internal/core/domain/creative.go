package domain

import (
	"time"

	"github.com/google/uuid"
)

// DraftStatus is the review state of a submitted draft.
type DraftStatus string

const (
	DraftInReview          DraftStatus = "in-review"
	DraftApproved          DraftStatus = "approved"
	DraftRevisionRequested DraftStatus = "revision-requested"
)

// Sentiment tags an audience comment.
type Sentiment string

const (
	SentimentPositive Sentiment = "positive"
	SentimentNegative Sentiment = "negative"
	SentimentNeutral  Sentiment = "neutral"
)

// LearningTypes are the insight categories a learning can be filed under.
var LearningTypes = []string{
	"hook_pattern", "proof_structure", "angle_theme",
	"pacing", "visual_style", "objection_handling",
}

// Draft is one versioned deliverable submitted for review.
type Draft struct {
	ID          uuid.UUID   `json:"id"`
	Name        string      `json:"name"`
	Version     int         `json:"version"`
	Status      DraftStatus `json:"status"`
	SubmittedAt time.Time   `json:"submittedAt"`
}

// RevisionRequest is an open or resolved review item. Any unresolved request
// blocks the move to Live.
type RevisionRequest struct {
	ID        uuid.UUID `json:"id"`
	From      string    `json:"from"`
	Text      string    `json:"text"`
	Resolved  bool      `json:"resolved"`
	CreatedAt time.Time `json:"createdAt"`
}

// Comment is an audience comment. Suppressed marks comments the ad platform
// auto-hid; those often carry the sharpest objections.
type Comment struct {
	ID         uuid.UUID `json:"id"`
	Text       string    `json:"text"`
	Sentiment  Sentiment `json:"sentiment"`
	Suppressed bool      `json:"suppressed"`
}

// Finding is one typed observation inside an analysis.
type Finding struct {
	Type string `json:"type"` // positive, negative, warning, action
	Text string `json:"text"`
}

// Analysis is the stored result of one analysis-provider run. Failed runs
// are kept too, with an error summary and no findings.
type Analysis struct {
	ID                uuid.UUID `json:"id"`
	Summary           string    `json:"summary"`
	Findings          []Finding `json:"findings"`
	NextIterationPlan string    `json:"nextIterationPlan,omitempty"`
	Failed            bool      `json:"failed,omitempty"`
	CreatedAt         time.Time `json:"createdAt"`
}

// Learning is a reusable insight snippet captured from a creative.
type Learning struct {
	ID   uuid.UUID `json:"id"`
	Type string    `json:"type"`
	Text string    `json:"text"`
}

// Message is one entry in a creative's discussion thread.
type Message struct {
	From string    `json:"from"`
	Text string    `json:"text"`
	At   time.Time `json:"at"`
}

// IterationEntry records one past iteration of a losing creative.
type IterationEntry struct {
	Number int       `json:"number"`
	Reason string    `json:"reason"`
	At     time.Time `json:"at"`
}

// EventNote is a per-creative notification log entry (sync results, scrape
// results and similar).
type EventNote struct {
	Text string    `json:"text"`
	At   time.Time `json:"at"`
}

// Creative is a unit of advertising content moving through the lifecycle.
// It is only ever "destroyed" logically, by archiving.
type Creative struct {
	ID       uuid.UUID `json:"id"`
	Name     string    `json:"name"`
	Type     string    `json:"type"` // e.g. VSL, UGC, Image Ad
	Stage    Stage     `json:"stage"`
	Editor   string    `json:"editor"`
	Deadline string    `json:"deadline,omitempty"` // ISO date, empty when unset
	Brief    string    `json:"brief"`
	Notes    string    `json:"notes"`

	Iterations    int              `json:"iterations"`
	MaxIterations int              `json:"maxIterations"`
	IterationLog  []IterationEntry `json:"iterationLog"`

	BriefApproved  bool `json:"briefApproved"`
	DraftSubmitted bool `json:"draftSubmitted"`
	FinalApproved  bool `json:"finalApproved"`

	Drafts           []Draft           `json:"drafts"`
	RevisionRequests []RevisionRequest `json:"revisionRequests"`

	// Metrics is the manually logged daily sequence that drives
	// classification. ChannelMetrics holds per-channel sequences attached by
	// sync; ChannelAdSets maps channels to configured external ad-set ids.
	// ChannelLinkEmpty marks channels whose configured id matched no rows on
	// the last sync ("linked but no data", distinct from never linked).
	Metrics          []MetricRecord             `json:"metrics"`
	ChannelMetrics   map[Channel][]MetricRecord `json:"channelMetrics,omitempty"`
	ChannelAdSets    map[Channel]string         `json:"channelAdSets,omitempty"`
	ChannelLinkEmpty map[Channel]bool           `json:"channelLinkEmpty,omitempty"`

	Comments  []Comment   `json:"comments"`
	Analyses  []Analysis  `json:"analyses"`
	Learnings []Learning  `json:"learnings"`
	Thread    []Message   `json:"thread"`
	Events    []EventNote `json:"events"`

	ParentID *uuid.UUID  `json:"parentId,omitempty"`
	ChildIDs []uuid.UUID `json:"childIds,omitempty"`

	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}

// LatestMetric returns the last record of the manual sequence, or nil when
// none have been logged.
func (c *Creative) LatestMetric() *MetricRecord {
	if len(c.Metrics) == 0 {
		return nil
	}
	return &c.Metrics[len(c.Metrics)-1]
}

// HasAnyAdSet reports whether at least one channel has a configured ad-set
// id. When true, name-based metric matching is disabled for this creative.
func (c *Creative) HasAnyAdSet() bool {
	for _, id := range c.ChannelAdSets {
		if id != "" {
			return true
		}
	}
	return false
}

// Clone returns a deep copy of c so snapshot transitions never alias the
// slices and maps of the input state.
func (c *Creative) Clone() Creative {
	out := *c
	out.IterationLog = append([]IterationEntry(nil), c.IterationLog...)
	out.Drafts = append([]Draft(nil), c.Drafts...)
	out.RevisionRequests = append([]RevisionRequest(nil), c.RevisionRequests...)
	out.Metrics = append([]MetricRecord(nil), c.Metrics...)
	out.Comments = append([]Comment(nil), c.Comments...)
	out.Learnings = append([]Learning(nil), c.Learnings...)
	out.Thread = append([]Message(nil), c.Thread...)
	out.Events = append([]EventNote(nil), c.Events...)
	out.ChildIDs = append([]uuid.UUID(nil), c.ChildIDs...)

	out.Analyses = make([]Analysis, len(c.Analyses))
	for i, a := range c.Analyses {
		a.Findings = append([]Finding(nil), a.Findings...)
		out.Analyses[i] = a
	}
	if c.ChannelMetrics != nil {
		out.ChannelMetrics = make(map[Channel][]MetricRecord, len(c.ChannelMetrics))
		for ch, recs := range c.ChannelMetrics {
			out.ChannelMetrics[ch] = append([]MetricRecord(nil), recs...)
		}
	}
	if c.ChannelAdSets != nil {
		out.ChannelAdSets = make(map[Channel]string, len(c.ChannelAdSets))
		for ch, id := range c.ChannelAdSets {
			out.ChannelAdSets[ch] = id
		}
	}
	if c.ChannelLinkEmpty != nil {
		out.ChannelLinkEmpty = make(map[Channel]bool, len(c.ChannelLinkEmpty))
		for ch, v := range c.ChannelLinkEmpty {
			out.ChannelLinkEmpty[ch] = v
		}
	}
	if c.ParentID != nil {
		pid := *c.ParentID
		out.ParentID = &pid
	}
	return out
}
