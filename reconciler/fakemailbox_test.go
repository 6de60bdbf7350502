// SPDX-License-Identifier: GPL-3.0-or-later
package reconciler

import (
	"context"
	"errors"
	"fmt"
	"sort"
	"sync"

	"github.com/CrawX/go-imap-sweeper/domain"
)

const (
	testSecret = "hunter2"
	inbox      = "INBOX"
	spamFolder = "Spam"
)

var testCreds = domain.Credentials{User: "user@example.org", Secret: testSecret}

type fakeMessage struct {
	uid     uint32
	subject string
	sender  string
	body    string
	deleted bool
	broken  bool
}

// fakeMailbox is an in-memory mail server with per-folder ascending uids.
type fakeMailbox struct {
	mu            sync.Mutex
	folders       map[string][]*fakeMessage
	nextUid       map[string]uint32
	moveSupported bool
	opens         int
	// called after every successful copy or move
	afterCopy func()
}

func newFakeMailbox(folders ...string) *fakeMailbox {
	box := &fakeMailbox{
		folders: map[string][]*fakeMessage{},
		nextUid: map[string]uint32{},
	}
	for _, f := range folders {
		box.folders[f] = []*fakeMessage{}
		box.nextUid[f] = 1
	}
	return box
}

func (f *fakeMailbox) add(folder, subject, sender string) uint32 {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.addLocked(folder, &fakeMessage{subject: subject, sender: sender})
}

func (f *fakeMailbox) addLocked(folder string, msg *fakeMessage) uint32 {
	uid := f.nextUid[folder]
	f.nextUid[folder]++
	msg.uid = uid
	f.folders[folder] = append(f.folders[folder], msg)
	return uid
}

func (f *fakeMailbox) breakMessage(folder string, uid uint32) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.find(folder, uid).broken = true
}

// remove simulates another client expunging a mail.
func (f *fakeMailbox) remove(folder string, uid uint32) {
	f.mu.Lock()
	defer f.mu.Unlock()
	kept := []*fakeMessage{}
	for _, m := range f.folders[folder] {
		if m.uid != uid {
			kept = append(kept, m)
		}
	}
	f.folders[folder] = kept
}

func (f *fakeMailbox) subjects(folder string) []string {
	f.mu.Lock()
	defer f.mu.Unlock()
	subjects := []string{}
	for _, m := range f.folders[folder] {
		subjects = append(subjects, m.subject)
	}
	sort.Strings(subjects)
	return subjects
}

func (f *fakeMailbox) flagged(folder string) []uint32 {
	f.mu.Lock()
	defer f.mu.Unlock()
	uids := []uint32{}
	for _, m := range f.folders[folder] {
		if m.deleted {
			uids = append(uids, m.uid)
		}
	}
	return uids
}

func (f *fakeMailbox) find(folder string, uid uint32) *fakeMessage {
	for _, m := range f.folders[folder] {
		if m.uid == uid {
			return m
		}
	}
	return nil
}

func (f *fakeMailbox) Open(ctx context.Context, creds domain.Credentials) (domain.MailboxSession, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if creds.Secret != testSecret {
		return nil, fmt.Errorf("could not login: %w", domain.ErrAuthenticationFailed)
	}
	f.opens++
	return &fakeSession{box: f}, nil
}

type fakeSession struct {
	box      *fakeMailbox
	folder   string
	readOnly bool
}

func (s *fakeSession) Select(ctx context.Context, folder string, readOnly bool) error {
	s.box.mu.Lock()
	defer s.box.mu.Unlock()
	if _, ok := s.box.folders[folder]; !ok {
		return fmt.Errorf("no folder %s: %w", folder, domain.ErrFolderNotFound)
	}
	s.folder = folder
	s.readOnly = readOnly
	return nil
}

func (s *fakeSession) SearchAll(ctx context.Context, unseenOnly bool) ([]uint32, error) {
	s.box.mu.Lock()
	defer s.box.mu.Unlock()
	uids := []uint32{}
	for _, m := range s.box.folders[s.folder] {
		uids = append(uids, m.uid)
	}
	return uids, nil
}

func (s *fakeSession) FetchHeaders(ctx context.Context, uid uint32) (*domain.HeaderInfo, error) {
	s.box.mu.Lock()
	defer s.box.mu.Unlock()
	m := s.box.find(s.folder, uid)
	if m == nil {
		return nil, fmt.Errorf("%w: %w", domain.ErrMessageFetchFailed, domain.ErrIdentifierNotFound)
	}
	if m.broken {
		return nil, fmt.Errorf("%w: malformed header", domain.ErrMessageFetchFailed)
	}
	return &domain.HeaderInfo{Uid: uid, Subject: m.subject, Sender: m.sender}, nil
}

func (s *fakeSession) FetchText(ctx context.Context, uid uint32) (string, error) {
	s.box.mu.Lock()
	defer s.box.mu.Unlock()
	m := s.box.find(s.folder, uid)
	if m == nil {
		return "", fmt.Errorf("%w: %w", domain.ErrMessageFetchFailed, domain.ErrIdentifierNotFound)
	}
	return m.body, nil
}

func (s *fakeSession) Copy(ctx context.Context, uid uint32, folder string) error {
	s.box.mu.Lock()
	defer s.box.mu.Unlock()
	if _, ok := s.box.folders[folder]; !ok {
		return fmt.Errorf("no folder %s: %w", folder, domain.ErrFolderNotFound)
	}
	m := s.box.find(s.folder, uid)
	if m == nil {
		return fmt.Errorf("%w: %w", domain.ErrMutationPartialFailure, domain.ErrIdentifierNotFound)
	}
	s.box.addLocked(folder, &fakeMessage{subject: m.subject, sender: m.sender, body: m.body})
	if s.box.afterCopy != nil {
		s.box.afterCopy()
	}
	return nil
}

func (s *fakeSession) MoveSupported() bool {
	return s.box.moveSupported
}

func (s *fakeSession) Move(ctx context.Context, uid uint32, folder string) error {
	err := s.Copy(ctx, uid, folder)
	if err != nil {
		return err
	}
	if !s.box.moveSupported {
		return s.MarkDeleted(ctx, []uint32{uid})
	}
	s.box.remove(s.folder, uid)
	return nil
}

func (s *fakeSession) MarkDeleted(ctx context.Context, uids []uint32) error {
	s.box.mu.Lock()
	defer s.box.mu.Unlock()
	if s.readOnly {
		return errors.New("folder is read-only")
	}
	for _, uid := range uids {
		if m := s.box.find(s.folder, uid); m != nil {
			m.deleted = true
		}
	}
	return nil
}

func (s *fakeSession) Purge(ctx context.Context, uids []uint32) (int, error) {
	s.box.mu.Lock()
	defer s.box.mu.Unlock()
	wanted := map[uint32]bool{}
	for _, uid := range uids {
		wanted[uid] = true
	}
	kept := []*fakeMessage{}
	purged := 0
	for _, m := range s.box.folders[s.folder] {
		if m.deleted && wanted[m.uid] {
			purged++
			continue
		}
		kept = append(kept, m)
	}
	s.box.folders[s.folder] = kept
	return purged, nil
}

func (s *fakeSession) Close() error {
	return nil
}
