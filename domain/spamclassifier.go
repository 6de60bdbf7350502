// SPDX-License-Identifier: GPL-3.0-or-later

//go:generate mockgen -destination=mocks/spamclassifier.go -package=mocks . Scorer,Learner,ConcurrentLearner
package domain

import "context"

type LearnType string

const (
	LearnSpam = LearnType("spam")
	LearnHam  = LearnType("ham")
)

// SpamResult is what a scorer reports for one text. Probability is nil for
// label-only scorers.
type SpamResult struct {
	IsSpam      bool
	Probability *float64
	Score       float64
}

type Scorer interface {
	Score(ctx context.Context, text string) (*SpamResult, error)
}

// MessageScorer is implemented by scorers that look at real mail headers.
type MessageScorer interface {
	ScoreMessage(ctx context.Context, subject, sender, body string) (*SpamResult, error)
}

type Learner interface {
	Learn(ctx context.Context, learnType LearnType, rawMail []byte) error
}

type ConcurrentLearner interface {
	LearnAll(ctx context.Context, learnType LearnType, mails [][]byte, concurrency int) []error
}
