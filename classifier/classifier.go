// SPDX-License-Identifier: GPL-3.0-or-later
package classifier

import (
	"context"
	"fmt"
	"strings"

	"github.com/CrawX/go-imap-sweeper/domain"
	"github.com/CrawX/go-imap-sweeper/log"
	"github.com/CrawX/go-imap-sweeper/mail"

	"github.com/sirupsen/logrus"
)

const ReasonUnavailable = "Classifier unavailable"

// Artifact is either Unavailable or Available.
type Artifact interface {
	artifact()
}

// Unavailable means the classifier could not be loaded. Messages that pass the
// allow-list get the configured default verdict.
type Unavailable struct {
	Cause error
}

type Available struct {
	Name   string
	Scorer domain.Scorer
}

func (Unavailable) artifact() {}
func (Available) artifact()   {}

type Classification struct {
	Verdict     domain.Verdict
	Reason      string
	Probability *float64
}

type Classifier struct {
	allowList *AllowList
	artifact  Artifact

	configuration *configuration

	l *logrus.Logger
}

func NewClassifier(allowList *AllowList, artifact Artifact, configFunc ...ConfigFunc) (*Classifier, error) {
	config := &configuration{
		Threshold:          0.40,
		UnavailableVerdict: domain.Spam,
	}
	for _, f := range configFunc {
		err := f(config)
		if err != nil {
			return nil, fmt.Errorf("error applying configuration: %w", err)
		}
	}

	if allowList == nil {
		allowList = NewAllowList(nil, nil)
	}
	if artifact == nil {
		artifact = Unavailable{Cause: fmt.Errorf("no classifier configured")}
	}

	c := &Classifier{
		allowList:     allowList,
		artifact:      artifact,
		configuration: config,
		l:             log.Logger(log.LOG_CLASSIFIER),
	}

	switch a := artifact.(type) {
	case Unavailable:
		c.l.WithFields(logrus.Fields{"error": fmt.Errorf("%w: %v", domain.ErrClassificationUnavailable, a.Cause), "default": config.UnavailableVerdict}).Warn("Classifier unavailable, only the allow-list is used")
	case Available:
		c.l.WithFields(logrus.Fields{"classifier": a.Name, "threshold": config.Threshold, "allowlist": allowList.Len()}).Debug("Classifier ready")
	}

	return c, nil
}

func (c *Classifier) Available() bool {
	_, ok := c.artifact.(Available)
	return ok
}

func (c *Classifier) Classify(ctx context.Context, subject, sender string) Classification {
	return c.ClassifyWithBody(ctx, subject, sender, "")
}

// ClassifyWithBody scores subject and body together; the allow-list only looks at
// subject and sender.
func (c *Classifier) ClassifyWithBody(ctx context.Context, subject, sender, body string) Classification {
	if reason, ok := c.allowList.Match(subject, sender); ok {
		return Classification{Verdict: domain.Safe, Reason: reason}
	}

	switch a := c.artifact.(type) {
	case Available:
		result, err := score(ctx, a.Scorer, subject, sender, body)
		if err != nil {
			c.l.WithFields(logrus.Fields{"subject": mail.ShortSubject(subject), "error": err}).Warn("Could not score message, using default verdict")
			return Classification{
				Verdict: c.configuration.UnavailableVerdict,
				Reason:  fmt.Sprintf("%s: %v", ReasonUnavailable, err),
			}
		}

		return c.decide(result)
	case Unavailable:
		return Classification{Verdict: c.configuration.UnavailableVerdict, Reason: ReasonUnavailable}
	}

	panic(fmt.Sprintf("unknown classifier artifact %T", c.artifact))
}

func score(ctx context.Context, scorer domain.Scorer, subject, sender, body string) (*domain.SpamResult, error) {
	if ms, ok := scorer.(domain.MessageScorer); ok {
		return ms.ScoreMessage(ctx, subject, sender, body)
	}

	text := strings.ToLower(subject)
	if len(body) > 0 {
		text = text + " " + strings.ToLower(body)
	}
	return scorer.Score(ctx, text)
}

func (c *Classifier) decide(result *domain.SpamResult) Classification {
	if result.Probability != nil {
		p := *result.Probability
		verdict := domain.Safe
		if p >= c.configuration.Threshold {
			verdict = domain.Spam
		}
		return Classification{
			Verdict:     verdict,
			Reason:      fmt.Sprintf("Model: p=%.2f, threshold %.2f", p, c.configuration.Threshold),
			Probability: result.Probability,
		}
	}

	if result.IsSpam {
		return Classification{Verdict: domain.Spam, Reason: fmt.Sprintf("Model: spam (score %.1f)", result.Score)}
	}
	return Classification{Verdict: domain.Safe, Reason: fmt.Sprintf("Model: not spam (score %.1f)", result.Score)}
}
