// SPDX-License-Identifier: GPL-3.0-or-later
package classifier

import (
	"context"

	"github.com/CrawX/go-imap-sweeper/domain"

	"golang.org/x/sync/errgroup"
)

// GoRoutineLearner fans Learn calls out over at most concurrency goroutines and retries
// every failed mail once.
type GoRoutineLearner struct {
	domain.Learner
}

func (grl *GoRoutineLearner) LearnAll(ctx context.Context, learnType domain.LearnType, mails [][]byte, concurrency int) []error {
	results := make([]error, len(mails))

	g := &errgroup.Group{}
	g.SetLimit(concurrency)
	for i := 0; i < len(mails); i++ {
		index := i
		g.Go(func() error {
			if err := ctx.Err(); err != nil {
				results[index] = err
				return nil
			}
			results[index] = grl.Learn(ctx, learnType, mails[index])
			if results[index] != nil {
				results[index] = grl.Learn(ctx, learnType, mails[index])
			}
			return nil
		})
	}
	_ = g.Wait()

	return results
}
