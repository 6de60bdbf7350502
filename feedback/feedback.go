// SPDX-License-Identifier: GPL-3.0-or-later
package feedback

import (
	"context"
	"fmt"
	"time"

	"github.com/CrawX/go-imap-sweeper/domain"
	"github.com/CrawX/go-imap-sweeper/log"
	"github.com/CrawX/go-imap-sweeper/mail"

	"github.com/sirupsen/logrus"
)

const (
	BatchSize        = 50
	LearnConcurrency = 8
)

// Worker feeds user corrections to the learner in the background.
type Worker struct {
	history  domain.History
	learner  domain.ConcurrentLearner
	interval time.Duration

	l *logrus.Logger
}

func NewWorker(history domain.History, learner domain.ConcurrentLearner, interval time.Duration) *Worker {
	return &Worker{
		history:  history,
		learner:  learner,
		interval: interval,
		l:        log.Logger(log.LOG_FEEDBACK),
	}
}

// Run drains the queue every interval until ctx ends.
func (w *Worker) Run(ctx context.Context) {
	ticker := time.NewTicker(w.interval)
	defer ticker.Stop()

	w.l.WithFields(logrus.Fields{"interval": w.interval}).Debug("Feedback worker started")
	for {
		select {
		case <-ctx.Done():
			w.l.Debug("Feedback worker stopped")
			return
		case <-ticker.C:
			learned, err := w.Drain(ctx)
			if err != nil {
				w.l.WithFields(logrus.Fields{"error": err}).Warn("Could not learn feedback")
				continue
			}
			if learned > 0 {
				w.l.WithFields(logrus.Fields{"learned": learned}).Info("Learned feedback")
			}
		}
	}
}

type pendingMail struct {
	id  int64
	raw []byte
}

// Drain learns one batch of pending feedback and marks the entries that were learned.
func (w *Worker) Drain(ctx context.Context) (int, error) {
	pending, err := w.history.PendingFeedback(BatchSize)
	if err != nil {
		return 0, fmt.Errorf("could not load pending feedback: %w", err)
	}

	byLabel := map[domain.LearnType][]pendingMail{}
	for _, entry := range pending {
		raw, err := mail.Synthesize(entry.Subject, entry.Sender, "")
		if err != nil {
			w.l.WithFields(logrus.Fields{"id": entry.Id, "error": err}).Warn("Could not build mail for feedback, skipping")
			continue
		}
		byLabel[entry.Label] = append(byLabel[entry.Label], pendingMail{id: entry.Id, raw: raw})
	}

	learned := []int64{}
	for _, label := range []domain.LearnType{domain.LearnSpam, domain.LearnHam} {
		mails := byLabel[label]
		if len(mails) == 0 {
			continue
		}

		raws := make([][]byte, len(mails))
		for i, m := range mails {
			raws[i] = m.raw
		}

		results := w.learner.LearnAll(ctx, label, raws, LearnConcurrency)
		for i, result := range results {
			if result != nil {
				w.l.WithFields(logrus.Fields{"id": mails[i].id, "learntype": label, "error": result}).Warn("Could not learn feedback mail")
				continue
			}
			learned = append(learned, mails[i].id)
		}
	}

	err = w.history.MarkLearned(learned)
	if err != nil {
		return 0, fmt.Errorf("could not mark feedback learned: %w", err)
	}

	return len(learned), nil
}
