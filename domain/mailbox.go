// SPDX-License-Identifier: GPL-3.0-or-later

//go:generate mockgen -destination=mocks/mailbox.go -package=mocks . MailboxConnector,MailboxSession
package domain

import "context"

type Credentials struct {
	User   string
	Secret string
}

type HeaderInfo struct {
	Uid     uint32
	Subject string
	Sender  string
}

type MailboxConnector interface {
	Open(ctx context.Context, creds Credentials) (MailboxSession, error)
}

// MailboxSession is an authenticated connection. Uids are only meaningful for the
// currently selected folder and become invalid after Purge.
type MailboxSession interface {
	Select(ctx context.Context, folder string, readOnly bool) error
	SearchAll(ctx context.Context, unseenOnly bool) ([]uint32, error)
	FetchHeaders(ctx context.Context, uid uint32) (*HeaderInfo, error)
	FetchText(ctx context.Context, uid uint32) (string, error)
	Copy(ctx context.Context, uid uint32, folder string) error
	MoveSupported() bool
	// Move without MOVE support copies and flags the mail \Deleted, it is gone after the next Purge.
	Move(ctx context.Context, uid uint32, folder string) error
	MarkDeleted(ctx context.Context, uids []uint32) error
	Purge(ctx context.Context, uids []uint32) (int, error)
	Close() error
}
