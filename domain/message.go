// SPDX-License-Identifier: GPL-3.0-or-later
package domain

import "strings"

type Verdict int

const (
	Safe = Verdict(0)
	Spam = Verdict(1)
)

func (v Verdict) String() string {
	switch v {
	case Safe:
		return "safe"
	case Spam:
		return "spam"
	}
	return "unknown"
}

// ParseVerdict accepts the names produced by Verdict.String, case-insensitive.
func ParseVerdict(s string) (Verdict, bool) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "safe":
		return Safe, true
	case "spam":
		return Spam, true
	}
	return Safe, false
}

// MessageRecord is one row of a scan. It is only valid until the next mutation of its folder.
type MessageRecord struct {
	Uid      uint32
	Subject  string
	Sender   string
	Verdict  Verdict
	Reason   string
	Selected bool
}

func NewMessageRecord(uid uint32, subject, sender string, verdict Verdict, reason string) MessageRecord {
	return MessageRecord{
		Uid:      uid,
		Subject:  subject,
		Sender:   sender,
		Verdict:  verdict,
		Reason:   reason,
		Selected: verdict == Spam,
	}
}

func SelectedUids(records []MessageRecord) []uint32 {
	uids := []uint32{}
	for _, r := range records {
		if r.Selected {
			uids = append(uids, r.Uid)
		}
	}
	return uids
}
