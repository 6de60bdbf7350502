// SPDX-License-Identifier: GPL-3.0-or-later
package classifier

import (
	"fmt"

	"github.com/CrawX/go-imap-sweeper/domain"
)

type ConfigFunc func(c *configuration) error

func Threshold(threshold float64) ConfigFunc {
	return func(c *configuration) error {
		if threshold <= 0 || threshold >= 1 {
			return fmt.Errorf("Threshold must be between 0 and 1")
		}

		c.Threshold = threshold
		return nil
	}
}

func UnavailableVerdict(verdict domain.Verdict) ConfigFunc {
	return func(c *configuration) error {
		if verdict != domain.Safe && verdict != domain.Spam {
			return fmt.Errorf("unsupported verdict %v", verdict)
		}

		c.UnavailableVerdict = verdict
		return nil
	}
}

type configuration struct {
	Threshold          float64
	UnavailableVerdict domain.Verdict
}
