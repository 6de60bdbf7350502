// SPDX-License-Identifier: GPL-3.0-or-later
package session

//go:generate mockgen -destination=session_mocks_test.go -package=session -source session.go
import (
	"context"
	"errors"
	"fmt"
	"sync"

	"github.com/CrawX/go-imap-sweeper/domain"
	"github.com/CrawX/go-imap-sweeper/log"
	"github.com/CrawX/go-imap-sweeper/mail"
	"github.com/CrawX/go-imap-sweeper/reconciler"

	"github.com/sirupsen/logrus"
)

type State int

const (
	LoggedOut = State(iota)
	Authenticating
	Listing
	Reviewing
	Mutating
)

func (s State) String() string {
	switch s {
	case LoggedOut:
		return "logged out"
	case Authenticating:
		return "authenticating"
	case Listing:
		return "listing"
	case Reviewing:
		return "reviewing"
	case Mutating:
		return "mutating"
	}
	return "unknown"
}

var (
	ErrNotLoggedIn     = errors.New("not logged in")
	ErrAlreadyLoggedIn = errors.New("already logged in")
	ErrNothingToReview = errors.New("no scan to review")
	ErrNotConfirmed    = errors.New("mutation was not confirmed")
	ErrUnknownUid      = errors.New("uid is not part of the scan")
)

type Reconciler interface {
	List(ctx context.Context, creds domain.Credentials, folder string, limit int) ([]domain.MessageRecord, error)
	Apply(ctx context.Context, creds domain.Credentials, records []domain.MessageRecord, source, destination string) (*reconciler.ApplyResult, error)
}

// Session is the state of one interactive user. Credentials are kept in memory only and dropped on Logout.
type Session struct {
	connector  domain.MailboxConnector
	reconciler Reconciler
	history    domain.History

	mu      sync.Mutex
	state   State
	creds   *domain.Credentials
	folder  string
	records []domain.MessageRecord

	l *logrus.Logger
}

// NewSession creates a logged out session. history may be nil, overrides are then not queued for learning.
func NewSession(connector domain.MailboxConnector, reconciler Reconciler, history domain.History) *Session {
	return &Session{
		connector:  connector,
		reconciler: reconciler,
		history:    history,
		state:      LoggedOut,
		l:          log.Logger(log.LOG_SESSION),
	}
}

func (s *Session) State() State {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.state
}

func (s *Session) Folder() string {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.folder
}

// Records returns a copy of the current batch.
func (s *Session) Records() []domain.MessageRecord {
	s.mu.Lock()
	defer s.mu.Unlock()
	return append([]domain.MessageRecord(nil), s.records...)
}

// Login verifies the credentials with a short-lived connection.
func (s *Session) Login(ctx context.Context, user, secret string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.state != LoggedOut {
		return ErrAlreadyLoggedIn
	}

	s.state = Authenticating
	creds := domain.Credentials{User: user, Secret: secret}
	mailbox, err := s.connector.Open(ctx, creds)
	if err != nil {
		s.state = LoggedOut
		return fmt.Errorf("could not login as %s: %w", user, err)
	}

	err = mailbox.Close()
	if err != nil {
		s.l.WithFields(logrus.Fields{"error": err}).Warn("Could not close login check session")
	}

	s.creds = &creds
	s.records = nil
	s.state = Listing
	s.l.WithFields(logrus.Fields{"user": user}).Info("Logged in")
	return nil
}

// Scan replaces the current batch. On failure the previous batch stays untouched.
func (s *Session) Scan(ctx context.Context, folder string, limit int) ([]domain.MessageRecord, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.creds == nil {
		return nil, ErrNotLoggedIn
	}

	records, err := s.reconciler.List(ctx, *s.creds, folder, limit)
	if err != nil {
		return nil, fmt.Errorf("could not scan %s: %w", folder, err)
	}

	s.folder = folder
	s.records = records
	s.state = Reviewing
	return append([]domain.MessageRecord(nil), records...), nil
}

// SetSelected overrides the selection of one record. Overrides only become learning feedback once the batch is
// applied.
func (s *Session) SetSelected(uid uint32, selected bool) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.state != Reviewing {
		return ErrNothingToReview
	}

	for i := range s.records {
		if s.records[i].Uid == uid {
			s.records[i].Selected = selected
			return nil
		}
	}

	return fmt.Errorf("%w: %d", ErrUnknownUid, uid)
}

// feedbackLabel returns the label a record teaches the learner when its final selection contradicts the verdict.
func feedbackLabel(record domain.MessageRecord) (domain.LearnType, bool) {
	switch {
	case record.Selected && record.Verdict == domain.Safe:
		return domain.LearnSpam, true
	case !record.Selected && record.Verdict == domain.Spam:
		return domain.LearnHam, true
	}
	return "", false
}

func (s *Session) enqueueFeedback() {
	if s.history == nil {
		return
	}

	for _, record := range s.records {
		label, ok := feedbackLabel(record)
		if !ok {
			continue
		}

		err := s.history.EnqueueFeedback(record.Subject, record.Sender, label)
		if err != nil {
			s.l.WithFields(logrus.Fields{"subject": mail.ShortSubject(record.Subject), "error": err}).Warn("Could not queue feedback")
			continue
		}

		s.l.WithFields(logrus.Fields{"subject": mail.ShortSubject(record.Subject), "learntype": label}).Debug("Queued feedback")
	}
}

// Apply mutates the selected records of the current batch. Empty destination deletes forever. Once the mutation was
// attempted the overrides are queued as feedback and the batch is cleared, a new Scan is needed to continue. When
// the mailbox could not be reached the batch stays for another attempt.
func (s *Session) Apply(ctx context.Context, destination string, confirmed bool) (*reconciler.ApplyResult, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.creds == nil {
		return nil, ErrNotLoggedIn
	}
	if s.state != Reviewing {
		return nil, ErrNothingToReview
	}
	if !confirmed {
		return nil, ErrNotConfirmed
	}

	s.state = Mutating
	result, err := s.reconciler.Apply(ctx, *s.creds, s.records, s.folder, destination)
	if result == nil {
		s.state = Reviewing
		if err == nil {
			err = errors.New("reconciler returned no result")
		}
		return nil, fmt.Errorf("could not apply selection: %w", err)
	}

	s.enqueueFeedback()
	s.records = nil
	s.state = Listing
	if err != nil {
		return result, fmt.Errorf("could not apply selection: %w", err)
	}

	return result, nil
}

func (s *Session) Logout() {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.creds = nil
	s.records = nil
	s.folder = ""
	s.state = LoggedOut
	s.l.Info("Logged out")
}
