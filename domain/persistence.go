// SPDX-License-Identifier: GPL-3.0-or-later

//go:generate mockgen -destination=mocks/persistence.go -package=mocks . History
package domain

import "time"

type ScanEntry struct {
	Folder  string
	Uid     uint32
	Subject string
	Sender  string
	Verdict Verdict
	Reason  string
}

type MutationEntry struct {
	Folder      string
	Destination string
	Uid         uint32
	Ok          bool
	Error       string
}

type FeedbackEntry struct {
	Id        int64
	Subject   string
	Sender    string
	Label     LearnType
	CreatedAt time.Time
}

type History interface {
	Close() error
	SaveScan(entries []ScanEntry) error
	SaveMutations(entries []MutationEntry) error
	EnqueueFeedback(subject, sender string, label LearnType) error
	PendingFeedback(limit int) ([]*FeedbackEntry, error)
	MarkLearned(ids []int64) error
}
