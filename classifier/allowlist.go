// SPDX-License-Identifier: GPL-3.0-or-later
package classifier

import (
	"fmt"
	"strings"
)

// AllowList holds trusted sender and subject substrings. It is never modified after
// NewAllowList, so one value can be shared freely.
type AllowList struct {
	senders  []string
	keywords []string
}

func NewAllowList(senders, keywords []string) *AllowList {
	return &AllowList{
		senders:  normalize(senders),
		keywords: normalize(keywords),
	}
}

// Match reports the first trusted sender found in sender, then the first trusted
// keyword found in subject. Both inputs are matched case-insensitively.
func (a *AllowList) Match(subject, sender string) (string, bool) {
	sender = strings.ToLower(sender)
	for _, s := range a.senders {
		if strings.Contains(sender, s) {
			return fmt.Sprintf("Trusted Sender: %s", s), true
		}
	}

	subject = strings.ToLower(subject)
	for _, k := range a.keywords {
		if strings.Contains(subject, k) {
			return fmt.Sprintf("Keyword: %s", k), true
		}
	}

	return "", false
}

func (a *AllowList) Len() int {
	return len(a.senders) + len(a.keywords)
}

func normalize(in []string) []string {
	out := make([]string, 0, len(in))
	for _, v := range in {
		v = strings.ToLower(strings.TrimSpace(v))
		// an empty entry would match every message
		if len(v) == 0 {
			continue
		}
		out = append(out, v)
	}
	return out
}
