// SPDX-License-Identifier: GPL-3.0-or-later
package imapconnection

import (
	"fmt"

	"github.com/emersion/go-imap"
)

// collectExpunged drains an expunge response channel while the command runs.
func collectExpunged(run func(ch chan uint32) error) (int, error) {
	out := make(chan uint32)
	done := make(chan error, 1)
	go func() {
		done <- run(out)
	}()

	expunged := 0
	for range out {
		expunged++
	}

	return expunged, <-done
}

type uidPlusDeleter struct {
	imapConn uidExpunger
}

func (u *uidPlusDeleter) purge(uids []uint32) (int, error) {
	seqset := &imap.SeqSet{}
	seqset.AddNum(uids...)

	expunged, err := collectExpunged(func(ch chan uint32) error {
		return u.imapConn.UidExpunge(seqset, ch)
	})
	if err != nil {
		return expunged, fmt.Errorf("could not expunge mails: %w", err)
	}

	return expunged, nil
}

func (u *uidPlusDeleter) purgeReady(uids []uint32) (error, error) {
	// UID EXPUNGE only touches the given uids and is therefore always ready
	return nil, nil
}

type compatibilityDeleter struct {
	imapConn searchingExpunger
}

func (c *compatibilityDeleter) purge(uids []uint32) (int, error) {
	notPurgeReadyReason, err := c.purgeReady(uids)
	if err != nil {
		return 0, fmt.Errorf("could not check for purge readiness: %w", err)
	}

	if notPurgeReadyReason != nil {
		return 0, fmt.Errorf("folder is not ready for purge: %w", notPurgeReadyReason)
	}

	expunged, err := collectExpunged(c.imapConn.Expunge)
	if err != nil {
		return expunged, fmt.Errorf("could not expunge mails: %w", err)
	}

	return expunged, nil
}

var ItemsWithDeletedFlagPresent = fmt.Errorf("folder has other items with delete flag set")

func (c *compatibilityDeleter) purgeReady(uids []uint32) (error, error) {
	// A plain EXPUNGE removes everything carrying the deleted flag, so only the uids about to be purged may have it.
	criteria := imap.NewSearchCriteria()
	criteria.WithFlags = []string{imap.DeletedFlag}
	flagged, err := c.imapConn.UidSearch(criteria)
	if err != nil {
		return nil, fmt.Errorf("could not search for deleted in folder: %w", err)
	}

	wanted := make(map[uint32]struct{}, len(uids))
	for _, uid := range uids {
		wanted[uid] = struct{}{}
	}

	for _, uid := range flagged {
		if _, ok := wanted[uid]; !ok {
			return ItemsWithDeletedFlagPresent, nil
		}
	}

	return nil, nil
}
