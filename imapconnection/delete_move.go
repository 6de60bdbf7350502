// SPDX-License-Identifier: GPL-3.0-or-later
package imapconnection

import "github.com/emersion/go-imap"

//go:generate mockgen -destination=delete_move_mocks_test.go -package=imapconnection -source delete_move.go

// Consolidated file for the purge and move strategies and the client subsets they use so gomock can generate mocks
// properly. Unexported interfaces do not allow for reflection mode but source-mode fails if there are embedded
// interfaces spread over multiple source files.

type deleter interface {
	purge(uids []uint32) (int, error)
	purgeReady(uids []uint32) (error, error)
}

type mover interface {
	move(uid uint32, folder string) error
}

type deletedFlagger interface {
	flagDeleted(uids []uint32) (*imap.SeqSet, error)
}

type uidExpunger interface {
	UidExpunge(seqSet *imap.SeqSet, ch chan uint32) error
}

type searchingExpunger interface {
	Expunge(ch chan uint32) error
	UidSearch(criteria *imap.SearchCriteria) ([]uint32, error)
}

type moveClient interface {
	UidMove(seqset *imap.SeqSet, dest string) error
}

type copyAndFlagClient interface {
	deletedFlagger
	UidCopy(seqset *imap.SeqSet, dest string) error
}
