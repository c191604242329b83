package queue

import (
	"time"

	"github.com/google/uuid"
)

type ScoreInput struct {
	CategoryID uuid.UUID
	UserID     uuid.UUID
	JoinedAt   time.Time
	SaleStart  *time.Time
	Flagged    bool
}

// PriorityScorer decides an entry's priority_score at join time. Higher is served first.
type PriorityScorer interface {
	Score(in ScoreInput) int
}

// FIFOScorer gives every entry the same score so order is purely positional.
type FIFOScorer struct{}

func (FIFOScorer) Score(ScoreInput) int { return 0 }

type WeightedScorer struct {
	EarlyJoinBonus  int
	EarlyJoinWindow time.Duration
	FlaggedPenalty  int
}

func NewWeightedScorer(earlyJoinBonus int, earlyJoinWindow time.Duration, flaggedPenalty int) *WeightedScorer {
	return &WeightedScorer{
		EarlyJoinBonus:  earlyJoinBonus,
		EarlyJoinWindow: earlyJoinWindow,
		FlaggedPenalty:  flaggedPenalty,
	}
}

func (s *WeightedScorer) Score(in ScoreInput) int {
	score := 0
	if in.SaleStart != nil && s.EarlyJoinWindow > 0 {
		since := in.JoinedAt.Sub(*in.SaleStart)
		if since >= 0 && since < s.EarlyJoinWindow {
			score += s.EarlyJoinBonus
		}
	}
	if in.Flagged {
		score -= s.FlaggedPenalty
	}
	return score
}
