// SPDX-License-Identifier: GPL-3.0-or-later
package reconciler

import (
	"fmt"

	"github.com/CrawX/go-imap-sweeper/domain"
)

type ConfigFunc func(c *configuration) error

func DryRun() ConfigFunc {
	return func(c *configuration) error {
		c.DryRun = true

		return nil
	}
}

// ScanBody additionally fetches the text body of every listed mail and classifies on subject and body.
func ScanBody() ConfigFunc {
	return func(c *configuration) error {
		c.ScanBody = true

		return nil
	}
}

func UnseenOnly() ConfigFunc {
	return func(c *configuration) error {
		c.UnseenOnly = true

		return nil
	}
}

// PreferMove moves mail by mail. Without MOVE support each mail is copied and flagged, the final purge removes them.
func PreferMove() ConfigFunc {
	return func(c *configuration) error {
		c.PreferMove = true

		return nil
	}
}

func WithHistory(history domain.History) ConfigFunc {
	return func(c *configuration) error {
		if history == nil {
			return fmt.Errorf("History cannot be null")
		}

		c.History = history
		return nil
	}
}

type configuration struct {
	DryRun     bool
	ScanBody   bool
	UnseenOnly bool
	PreferMove bool

	History domain.History
}
