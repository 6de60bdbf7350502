// SPDX-License-Identifier: GPL-3.0-or-later
package imapconnection

import (
	"fmt"

	"github.com/emersion/go-imap"
)

func singleUid(uid uint32) *imap.SeqSet {
	seqset := &imap.SeqSet{}
	seqset.AddNum(uid)
	return seqset
}

type moveMover struct {
	moveClient moveClient
}

func (m *moveMover) move(uid uint32, folder string) error {
	err := m.moveClient.UidMove(singleUid(uid), folder)
	if err != nil {
		return fmt.Errorf("could not move mail: %w", err)
	}

	return nil
}

// compatibilityMover copies and flags the source. The flagged source stays until the next purge.
type compatibilityMover struct {
	imapConn copyAndFlagClient
}

func (c *compatibilityMover) move(uid uint32, folder string) error {
	err := c.imapConn.UidCopy(singleUid(uid), folder)
	if err != nil {
		return fmt.Errorf("could not copy mail: %w", err)
	}

	_, err = c.imapConn.flagDeleted([]uint32{uid})
	if err != nil {
		return fmt.Errorf("could not flag copied mail: %w", err)
	}

	return nil
}
