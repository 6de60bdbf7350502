// SPDX-License-Identifier: GPL-3.0-or-later
package imapconnection

import (
	"errors"
	"testing"

	"github.com/emersion/go-imap"
	"github.com/golang/mock/gomock"
	"github.com/stretchr/testify/assert"
)

func TestMoveMover_Move(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	conn := NewMockmoveClient(ctrl)
	mover := moveMover{conn}

	conn.EXPECT().
		UidMove(gomock.Eq(singleUid(4)), gomock.Eq("dest")).
		Return(nil)

	err := mover.move(u32(4), "dest")
	assert.NoError(t, err)
}

func TestMoveMover_MoveFails(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	conn := NewMockmoveClient(ctrl)
	mover := moveMover{conn}

	conn.EXPECT().
		UidMove(gomock.Any(), gomock.Any()).
		Return(errors.New("NO [TRYCREATE] no such mailbox"))

	err := mover.move(u32(4), "dest")
	assert.EqualError(t, err, "could not move mail: NO [TRYCREATE] no such mailbox")
}

func TestCompatibilityMover_Move(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	conn := NewMockcopyAndFlagClient(ctrl)
	mover := compatibilityMover{conn}

	seqset := &imap.SeqSet{}
	seqset.AddNum(u32(4))
	gomock.InOrder(
		conn.EXPECT().
			UidCopy(gomock.Eq(seqset), "dest").
			Return(nil),
		conn.EXPECT().
			flagDeleted(u32a(4)).
			Return(seqset, nil),
	)

	err := mover.move(u32(4), "dest")
	assert.NoError(t, err)
}

func TestCompatibilityMover_CopyFailsDoesNotFlag(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	conn := NewMockcopyAndFlagClient(ctrl)
	mover := compatibilityMover{conn}

	conn.EXPECT().
		UidCopy(gomock.Any(), "dest").
		Return(errors.New("NO quota"))

	err := mover.move(u32(4), "dest")
	assert.EqualError(t, err, "could not copy mail: NO quota")
}
