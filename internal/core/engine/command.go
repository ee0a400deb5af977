package engine

import (
	"time"

	"github.com/google/uuid"

	"adforge/internal/core/domain"
)

// Command is one atomic engine action. Commands are processed by Apply,
// which never mutates the snapshot it is given: callers can keep old
// snapshots for replay or undo.
type Command interface{ isCommand() }

type (
	// CreateCreative adds a fresh creative in the drafting stage.
	CreateCreative struct {
		Name, Type, Editor, Deadline, Brief, Notes string

		MaxIterations int
	}
	// CreateVariant branches a new creative off a live, green parent.
	CreateVariant struct {
		ParentID          uuid.UUID
		Name, Brief, Type string
	}
	// MoveStage asks the stage gate to move a creative.
	MoveStage struct {
		ID uuid.UUID
		To domain.Stage
	}
	// UpdateDetails edits free-form fields; nil pointers leave a field
	// untouched.
	UpdateDetails struct {
		ID                             uuid.UUID
		Brief, Notes, Editor, Deadline *string
	}
	// ToggleFlag flips one of the three gate booleans.
	ToggleFlag struct {
		ID   uuid.UUID
		Flag string // brief-approved, draft-submitted, final-approved
	}
	// AppendMetric appends one day to the manual metric sequence.
	AppendMetric struct {
		ID     uuid.UUID
		Record domain.MetricRecord
	}
	// SetChannelMetrics replaces a channel's sequence wholesale. An empty
	// sequence on a channel with a configured ad-set id records the "linked
	// but no data" state.
	SetChannelMetrics struct {
		ID      uuid.UUID
		Channel domain.Channel
		Records []domain.MetricRecord
	}
	// SetChannelAdSet configures (or clears) the external ad-set id for one
	// channel.
	SetChannelAdSet struct {
		ID      uuid.UUID
		Channel domain.Channel
		AdSetID string
	}
	// AppendComment records an audience comment.
	AppendComment struct {
		ID      uuid.UUID
		Comment domain.Comment
	}
	// RemoveComment deletes a comment; removing an unknown id is a no-op so
	// re-delivery stays idempotent.
	RemoveComment struct {
		ID        uuid.UUID
		CommentID uuid.UUID
	}
	// AppendAnalysis stores an analysis-provider result, failed ones
	// included.
	AppendAnalysis struct {
		ID       uuid.UUID
		Analysis domain.Analysis
	}
	// AppendLearning captures an insight snippet.
	AppendLearning struct {
		ID       uuid.UUID
		Learning domain.Learning
	}
	// RemoveLearning deletes a learning; unknown ids are a no-op.
	RemoveLearning struct {
		ID         uuid.UUID
		LearningID uuid.UUID
	}
	// SubmitDraft files a new draft version for review and sets the
	// draft-submitted flag.
	SubmitDraft struct {
		ID   uuid.UUID
		Name string
	}
	// ApproveDraft marks one draft approved and sets the final-approved
	// flag.
	ApproveDraft struct {
		ID      uuid.UUID
		DraftID uuid.UUID
	}
	// RequestRevision opens a review item that blocks the move to live.
	RequestRevision struct {
		ID         uuid.UUID
		From, Text string
	}
	// ResolveRevision closes a review item.
	ResolveRevision struct {
		ID         uuid.UUID
		RevisionID uuid.UUID
	}
	// AppendMessage adds to the discussion thread.
	AppendMessage struct {
		ID         uuid.UUID
		From, Text string
	}
	// AppendEvent adds a per-creative notification log entry.
	AppendEvent struct {
		ID   uuid.UUID
		Text string
	}
	// Iterate sends a red creative back to drafting for rework.
	Iterate struct {
		ID     uuid.UUID
		Reason string
	}
	// Kill archives a creative once kill eligibility holds.
	Kill struct {
		ID uuid.UUID
	}
)

func (CreateCreative) isCommand()    {}
func (CreateVariant) isCommand()     {}
func (MoveStage) isCommand()         {}
func (UpdateDetails) isCommand()     {}
func (ToggleFlag) isCommand()        {}
func (AppendMetric) isCommand()      {}
func (SetChannelMetrics) isCommand() {}
func (SetChannelAdSet) isCommand()   {}
func (AppendComment) isCommand()     {}
func (RemoveComment) isCommand()     {}
func (AppendAnalysis) isCommand()    {}
func (AppendLearning) isCommand()    {}
func (RemoveLearning) isCommand()    {}
func (SubmitDraft) isCommand()       {}
func (ApproveDraft) isCommand()      {}
func (RequestRevision) isCommand()   {}
func (ResolveRevision) isCommand()   {}
func (AppendMessage) isCommand()     {}
func (AppendEvent) isCommand()       {}
func (Iterate) isCommand()           {}
func (Kill) isCommand()              {}

// Snapshot is an immutable view of the creative collection.
type Snapshot struct {
	Creatives []domain.Creative
}

// Find returns the creative with the given id, or false.
func (s Snapshot) Find(id uuid.UUID) (*domain.Creative, bool) {
	if i := s.index(id); i >= 0 {
		return &s.Creatives[i], true
	}
	return nil, false
}

func (s Snapshot) index(id uuid.UUID) int {
	for i := range s.Creatives {
		if s.Creatives[i].ID == id {
			return i
		}
	}
	return -1
}

// Outcome is the non-error result of applying a command. Denied carries the
// gate or policy reason when the command was rejected (the snapshot is then
// unchanged). Created is set when a command produced a new creative.
// Touched lists every creative the command changed, so callers know what to
// persist.
type Outcome struct {
	Denied  string
	Created *domain.Creative
	Touched []uuid.UUID
}

// Apply is the pure state-transition function: it maps (snapshot, command)
// to a new snapshot plus an outcome. Expected business rejections (gate
// violations, policy denials) come back in Outcome.Denied; errors are
// reserved for unknown ids and malformed input.
func Apply(s Snapshot, cmd Command, th domain.Thresholds, now time.Time) (Snapshot, Outcome, error) {
	switch c := cmd.(type) {
	case CreateCreative:
		if c.Name == "" {
			return s, Outcome{}, invalidInput("creative name is required")
		}
		created := NewCreative(c.Name, c.Type, c.Editor, c.Deadline, c.Brief, c.Notes, c.MaxIterations, now)
		next := Snapshot{Creatives: append(copyCreatives(s.Creatives), created)}
		return next, Outcome{Created: &created, Touched: []uuid.UUID{created.ID}}, nil

	case CreateVariant:
		if c.Name == "" {
			return s, Outcome{}, invalidInput("variant name is required")
		}
		pi := s.index(c.ParentID)
		if pi < 0 {
			return s, Outcome{}, ErrNotFound
		}
		parent := &s.Creatives[pi]
		if parent.Stage != domain.StageLive {
			return s, Outcome{Denied: ReasonParentNotLive}, nil
		}
		if ClassifyCreative(parent, th) != TierGreen {
			return s, Outcome{Denied: ReasonParentNotGreen}, nil
		}
		created := NewVariant(parent, c.Name, c.Brief, c.Type, now)
		creatives := copyCreatives(s.Creatives)
		p := creatives[pi].Clone()
		p.ChildIDs = append(p.ChildIDs, created.ID)
		p.UpdatedAt = now
		creatives[pi] = p
		next := Snapshot{Creatives: append(creatives, created)}
		return next, Outcome{Created: &created, Touched: []uuid.UUID{created.ID, parent.ID}}, nil

	case MoveStage:
		if !c.To.Valid() {
			return s, Outcome{}, invalidInput("unknown stage %q", c.To)
		}
		return mutate(s, c.ID, now, func(cr *domain.Creative) (string, error) {
			if reason := CanTransition(cr, cr.Stage, c.To); reason != "" {
				return reason, nil
			}
			cr.Stage = c.To
			return "", nil
		})

	case UpdateDetails:
		return mutate(s, c.ID, now, func(cr *domain.Creative) (string, error) {
			if c.Brief != nil {
				cr.Brief = *c.Brief
			}
			if c.Notes != nil {
				cr.Notes = *c.Notes
			}
			if c.Editor != nil {
				cr.Editor = *c.Editor
			}
			if c.Deadline != nil {
				cr.Deadline = *c.Deadline
			}
			return "", nil
		})

	case ToggleFlag:
		return mutate(s, c.ID, now, func(cr *domain.Creative) (string, error) {
			switch c.Flag {
			case "brief-approved":
				cr.BriefApproved = !cr.BriefApproved
			case "draft-submitted":
				cr.DraftSubmitted = !cr.DraftSubmitted
			case "final-approved":
				cr.FinalApproved = !cr.FinalApproved
			default:
				return "", invalidInput("unknown flag %q", c.Flag)
			}
			return "", nil
		})

	case AppendMetric:
		if err := validateMetric(c.Record); err != nil {
			return s, Outcome{}, err
		}
		return mutate(s, c.ID, now, func(cr *domain.Creative) (string, error) {
			cr.Metrics = append(cr.Metrics, c.Record)
			return "", nil
		})

	case SetChannelMetrics:
		if c.Channel.ExternalName() == "" {
			return s, Outcome{}, invalidInput("unknown channel %q", c.Channel)
		}
		return mutate(s, c.ID, now, func(cr *domain.Creative) (string, error) {
			if len(c.Records) == 0 {
				if cr.ChannelMetrics != nil {
					delete(cr.ChannelMetrics, c.Channel)
				}
				if cr.ChannelAdSets[c.Channel] != "" {
					if cr.ChannelLinkEmpty == nil {
						cr.ChannelLinkEmpty = make(map[domain.Channel]bool)
					}
					cr.ChannelLinkEmpty[c.Channel] = true
				}
				return "", nil
			}
			if cr.ChannelMetrics == nil {
				cr.ChannelMetrics = make(map[domain.Channel][]domain.MetricRecord)
			}
			cr.ChannelMetrics[c.Channel] = append([]domain.MetricRecord(nil), c.Records...)
			delete(cr.ChannelLinkEmpty, c.Channel)
			return "", nil
		})

	case SetChannelAdSet:
		if c.Channel.ExternalName() == "" {
			return s, Outcome{}, invalidInput("unknown channel %q", c.Channel)
		}
		return mutate(s, c.ID, now, func(cr *domain.Creative) (string, error) {
			if c.AdSetID == "" {
				delete(cr.ChannelAdSets, c.Channel)
				delete(cr.ChannelLinkEmpty, c.Channel)
				return "", nil
			}
			if cr.ChannelAdSets == nil {
				cr.ChannelAdSets = make(map[domain.Channel]string)
			}
			cr.ChannelAdSets[c.Channel] = c.AdSetID
			return "", nil
		})

	case AppendComment:
		if c.Comment.Text == "" {
			return s, Outcome{}, invalidInput("comment text is required")
		}
		return mutate(s, c.ID, now, func(cr *domain.Creative) (string, error) {
			cm := c.Comment
			if cm.ID == uuid.Nil {
				cm.ID = uuid.New()
			}
			if cm.Sentiment == "" {
				cm.Sentiment = domain.SentimentNeutral
			}
			cr.Comments = append(cr.Comments, cm)
			return "", nil
		})

	case RemoveComment:
		return mutate(s, c.ID, now, func(cr *domain.Creative) (string, error) {
			kept := cr.Comments[:0]
			for _, cm := range cr.Comments {
				if cm.ID != c.CommentID {
					kept = append(kept, cm)
				}
			}
			cr.Comments = kept
			return "", nil
		})

	case AppendAnalysis:
		return mutate(s, c.ID, now, func(cr *domain.Creative) (string, error) {
			a := c.Analysis
			if a.ID == uuid.Nil {
				a.ID = uuid.New()
			}
			if a.CreatedAt.IsZero() {
				a.CreatedAt = now
			}
			cr.Analyses = append(cr.Analyses, a)
			return "", nil
		})

	case AppendLearning:
		if c.Learning.Text == "" || c.Learning.Type == "" {
			return s, Outcome{}, invalidInput("learning type and text are required")
		}
		return mutate(s, c.ID, now, func(cr *domain.Creative) (string, error) {
			l := c.Learning
			if l.ID == uuid.Nil {
				l.ID = uuid.New()
			}
			cr.Learnings = append(cr.Learnings, l)
			return "", nil
		})

	case RemoveLearning:
		return mutate(s, c.ID, now, func(cr *domain.Creative) (string, error) {
			kept := cr.Learnings[:0]
			for _, l := range cr.Learnings {
				if l.ID != c.LearningID {
					kept = append(kept, l)
				}
			}
			cr.Learnings = kept
			return "", nil
		})

	case SubmitDraft:
		if c.Name == "" {
			return s, Outcome{}, invalidInput("draft name is required")
		}
		return mutate(s, c.ID, now, func(cr *domain.Creative) (string, error) {
			cr.Drafts = append(cr.Drafts, domain.Draft{
				ID:          uuid.New(),
				Name:        c.Name,
				Version:     len(cr.Drafts) + 1,
				Status:      domain.DraftInReview,
				SubmittedAt: now,
			})
			cr.DraftSubmitted = true
			return "", nil
		})

	case ApproveDraft:
		return mutate(s, c.ID, now, func(cr *domain.Creative) (string, error) {
			for i := range cr.Drafts {
				if cr.Drafts[i].ID == c.DraftID {
					cr.Drafts[i].Status = domain.DraftApproved
					cr.FinalApproved = true
					return "", nil
				}
			}
			return "", invalidInput("draft %s not found", c.DraftID)
		})

	case RequestRevision:
		if c.Text == "" {
			return s, Outcome{}, invalidInput("revision text is required")
		}
		return mutate(s, c.ID, now, func(cr *domain.Creative) (string, error) {
			cr.RevisionRequests = append(cr.RevisionRequests, domain.RevisionRequest{
				ID:        uuid.New(),
				From:      c.From,
				Text:      c.Text,
				CreatedAt: now,
			})
			return "", nil
		})

	case ResolveRevision:
		return mutate(s, c.ID, now, func(cr *domain.Creative) (string, error) {
			for i := range cr.RevisionRequests {
				if cr.RevisionRequests[i].ID == c.RevisionID {
					cr.RevisionRequests[i].Resolved = true
					return "", nil
				}
			}
			return "", invalidInput("revision request %s not found", c.RevisionID)
		})

	case AppendMessage:
		if c.Text == "" {
			return s, Outcome{}, invalidInput("message text is required")
		}
		return mutate(s, c.ID, now, func(cr *domain.Creative) (string, error) {
			cr.Thread = append(cr.Thread, domain.Message{From: c.From, Text: c.Text, At: now})
			return "", nil
		})

	case AppendEvent:
		return mutate(s, c.ID, now, func(cr *domain.Creative) (string, error) {
			cr.Events = append(cr.Events, domain.EventNote{Text: c.Text, At: now})
			return "", nil
		})

	case Iterate:
		reason := c.Reason
		if reason == "" {
			reason = "Based on metrics"
		}
		return mutate(s, c.ID, now, func(cr *domain.Creative) (string, error) {
			if denied := CanIterate(cr, th); denied != "" {
				return denied, nil
			}
			IterateCreative(cr, reason, now)
			return "", nil
		})

	case Kill:
		return mutate(s, c.ID, now, func(cr *domain.Creative) (string, error) {
			if denied := CanKill(cr, th); denied != "" {
				return denied, nil
			}
			KillCreative(cr)
			return "", nil
		})

	default:
		return s, Outcome{}, invalidInput("unknown command %T", cmd)
	}
}

// mutate locates the target creative, hands a clone to fn, and swaps the
// clone in when fn neither denies nor errors. The input snapshot is left
// untouched in every case.
func mutate(s Snapshot, id uuid.UUID, now time.Time, fn func(*domain.Creative) (string, error)) (Snapshot, Outcome, error) {
	i := s.index(id)
	if i < 0 {
		return s, Outcome{}, ErrNotFound
	}
	clone := s.Creatives[i].Clone()
	denied, err := fn(&clone)
	if err != nil {
		return s, Outcome{}, err
	}
	if denied != "" {
		return s, Outcome{Denied: denied}, nil
	}
	clone.UpdatedAt = now
	creatives := copyCreatives(s.Creatives)
	creatives[i] = clone
	return Snapshot{Creatives: creatives}, Outcome{Touched: []uuid.UUID{id}}, nil
}

func copyCreatives(in []domain.Creative) []domain.Creative {
	out := make([]domain.Creative, len(in))
	copy(out, in)
	return out
}

func validateMetric(r domain.MetricRecord) error {
	if r.Date == "" {
		return invalidInput("metric date is required")
	}
	if r.CPA <= 0 {
		return invalidInput("metric cpa is required and must be positive")
	}
	if r.Spend <= 0 {
		return invalidInput("metric spend is required and must be positive")
	}
	if r.Conversions < 0 || r.CTR < 0 || r.CPM < 0 {
		return invalidInput("metric fields must be non-negative")
	}
	return nil
}
