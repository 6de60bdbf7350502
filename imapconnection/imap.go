// SPDX-License-Identifier: GPL-3.0-or-later
package imapconnection

import (
	"context"
	"crypto/tls"
	"errors"
	"fmt"
	"io"
	"net"
	"strings"
	"time"

	"github.com/CrawX/go-imap-sweeper/domain"
	"github.com/CrawX/go-imap-sweeper/log"
	"github.com/CrawX/go-imap-sweeper/mail"

	"github.com/emersion/go-imap"
	"github.com/emersion/go-imap-uidplus"
	"github.com/emersion/go-imap/client"
	"github.com/sirupsen/logrus"
)

type Connector struct {
	server         string
	connectTimeout time.Duration
	commandTimeout time.Duration

	l *logrus.Logger
}

func NewConnector(server string, connectTimeout, commandTimeout time.Duration) *Connector {
	return &Connector{
		server:         server,
		connectTimeout: connectTimeout,
		commandTimeout: commandTimeout,
		l:              log.Logger(log.LOG_IMAP),
	}
}

// dial connects, runs the TLS handshake and waits for the server greeting. All of it is bounded by connectTimeout
// and ctx, the deadline is cleared again once the greeting arrived.
func (co *Connector) dial(ctx context.Context) (*client.Client, error) {
	dialer := &net.Dialer{Timeout: co.connectTimeout}
	rawConn, err := dialer.DialContext(ctx, "tcp", co.server)
	if err != nil {
		return nil, err
	}

	if co.connectTimeout > 0 {
		err = rawConn.SetDeadline(time.Now().Add(co.connectTimeout))
		if err != nil {
			_ = rawConn.Close()
			return nil, err
		}
	}

	stop := context.AfterFunc(ctx, func() {
		_ = rawConn.Close()
	})

	serverName, _, _ := net.SplitHostPort(co.server)
	tlsConn := tls.Client(rawConn, &tls.Config{ServerName: serverName})
	imapClient, err := func() (*client.Client, error) {
		err := tlsConn.HandshakeContext(ctx)
		if err != nil {
			return nil, err
		}
		return client.New(tlsConn)
	}()
	if !stop() {
		_ = rawConn.Close()
		return nil, ctx.Err()
	}
	if err != nil {
		_ = rawConn.Close()
		return nil, err
	}

	err = tlsConn.SetDeadline(time.Time{})
	if err != nil {
		_ = rawConn.Close()
		return nil, err
	}

	return imapClient, nil
}

// Open dials the server, authenticates and checks the capabilities used for moving and purging. Credentials are only
// held for the duration of this call.
func (co *Connector) Open(ctx context.Context, creds domain.Credentials) (domain.MailboxSession, error) {
	imapClient, err := co.dial(ctx)
	if err != nil {
		return nil, fmt.Errorf("could not dial to imap: %w: %w", domain.ErrConnectionFailed, err)
	}
	imapClient.Timeout = co.commandTimeout

	err = imapClient.Login(creds.User, creds.Secret)
	if err != nil {
		_ = imapClient.Terminate()
		if isConnectionError(err) {
			return nil, fmt.Errorf("could not login to imap: %w: %w", domain.ErrConnectionFailed, err)
		}
		return nil, fmt.Errorf("could not login to imap: %w: %w", domain.ErrAuthenticationFailed, err)
	}

	uidPlusClient := uidplus.NewClient(imapClient)
	uidPlusSupported, err := uidPlusClient.SupportUidPlus()
	if err != nil {
		_ = imapClient.Logout()
		return nil, fmt.Errorf("could not check for UIDPLUS support: %w: %w", domain.ErrConnectionFailed, err)
	}

	moveSupported, err := imapClient.Support("MOVE")
	if err != nil {
		_ = imapClient.Logout()
		return nil, fmt.Errorf("could not check for MOVE support: %w: %w", domain.ErrConnectionFailed, err)
	}

	conn := &ImapConnection{
		connection:    imapClient,
		moveSupported: moveSupported,
		l:             co.l,
	}

	baseLogger := conn.l.WithFields(logrus.Fields{"server": co.server})
	baseLogger.Debug("Logged in to server")

	if uidPlusSupported {
		baseLogger.Debug("UIDPLUS supported on server, using UID EXPUNGE for purge")
		conn.mailDeleter = &uidPlusDeleter{
			imapConn: uidPlusClient,
		}
	} else {
		baseLogger.Info("UIDPLUS not supported on server, falling back to plain EXPUNGE for purge")
		conn.mailDeleter = &compatibilityDeleter{
			imapConn: imapClient,
		}
	}

	if moveSupported {
		baseLogger.Debug("MOVE supported on server")
		conn.mailMover = &moveMover{
			moveClient: imapClient,
		}
	} else {
		baseLogger.Info("MOVE not supported on server, falling back to copy&flag")
		conn.mailMover = &compatibilityMover{
			imapConn: conn,
		}
	}

	return conn, nil
}

type ImapConnection struct {
	connection    *client.Client
	mailDeleter   deleter
	mailMover     mover
	moveSupported bool

	selectedFolder string

	l *logrus.Logger
}

func isConnectionError(err error) bool {
	var netErr net.Error
	if errors.As(err, &netErr) {
		return true
	}
	if errors.Is(err, io.EOF) || errors.Is(err, io.ErrUnexpectedEOF) || errors.Is(err, net.ErrClosed) {
		return true
	}

	msg := strings.ToLower(err.Error())
	return strings.Contains(msg, "connection closed") || strings.Contains(msg, "timeout")
}

// classify maps a failed command onto the connection failure kind when the transport broke and onto fallback otherwise.
func classify(err error, fallback error) error {
	if isConnectionError(err) {
		return fmt.Errorf("%w: %w", domain.ErrConnectionFailed, err)
	}
	return fmt.Errorf("%w: %w", fallback, err)
}

// run executes a blocking command and tears the connection down when ctx ends first.
func (ic *ImapConnection) run(ctx context.Context, command func() error) error {
	err := ctx.Err()
	if err != nil {
		return err
	}

	stop := make(chan struct{})
	defer close(stop)
	go func() {
		select {
		case <-ctx.Done():
			_ = ic.connection.Terminate()
		case <-stop:
		}
	}()

	err = command()
	if err != nil && ctx.Err() != nil {
		return ctx.Err()
	}

	return err
}

func (ic *ImapConnection) Select(ctx context.Context, folder string, readOnly bool) error {
	err := ic.run(ctx, func() error {
		_, err := ic.connection.Select(folder, readOnly)
		return err
	})
	if err != nil {
		if errors.Is(err, ctx.Err()) {
			return err
		}
		return fmt.Errorf("could not select folder %s: %w", folder, classify(err, domain.ErrFolderNotFound))
	}

	ic.selectedFolder = folder
	ic.l.WithFields(logrus.Fields{"folder": folder, "readonly": readOnly}).Debug("Selected folder")
	return nil
}

func (ic *ImapConnection) SearchAll(ctx context.Context, unseenOnly bool) ([]uint32, error) {
	criteria := imap.NewSearchCriteria()
	if unseenOnly {
		criteria.WithoutFlags = []string{imap.SeenFlag}
	}

	var uids []uint32
	err := ic.run(ctx, func() error {
		var err error
		uids, err = ic.connection.UidSearch(criteria)
		return err
	})
	if err != nil {
		if errors.Is(err, ctx.Err()) {
			return nil, err
		}
		return nil, fmt.Errorf("could not list folder: %w", classify(err, domain.ErrMessageFetchFailed))
	}

	return uids, nil
}

// fetchSection fetches a single body section of one message by uid.
func (ic *ImapConnection) fetchSection(ctx context.Context, uid uint32, section *imap.BodySectionName) ([]byte, error) {
	seqset := singleUid(uid)
	fetchItems := []imap.FetchItem{section.FetchItem()}

	var raw []byte
	found := false
	err := ic.run(ctx, func() error {
		out := make(chan *imap.Message, 1)
		done := make(chan error, 1)
		go func() {
			done <- ic.connection.UidFetch(seqset, fetchItems, out)
		}()

		var readErr error
		for msg := range out {
			if msg.Uid != uid {
				continue
			}
			r := msg.GetBody(section)
			if r == nil {
				continue
			}
			found = true
			raw, readErr = io.ReadAll(r)
		}

		err := <-done
		if err != nil {
			return err
		}
		return readErr
	})
	if err != nil {
		if errors.Is(err, ctx.Err()) {
			return nil, err
		}
		return nil, fmt.Errorf("could not fetch mail %d: %w", uid, classify(err, domain.ErrMessageFetchFailed))
	}

	if !found {
		return nil, fmt.Errorf("could not fetch mail %d: %w: %w", uid, domain.ErrMessageFetchFailed, domain.ErrIdentifierNotFound)
	}

	return raw, nil
}

func (ic *ImapConnection) FetchHeaders(ctx context.Context, uid uint32) (*domain.HeaderInfo, error) {
	section := &imap.BodySectionName{
		BodyPartName: imap.BodyPartName{
			Specifier: imap.HeaderSpecifier,
			Fields: []string{
				"From",
				"Subject",
			},
		},
		Peek: true,
	}

	rawHeaders, err := ic.fetchSection(ctx, uid, section)
	if err != nil {
		return nil, err
	}

	subject, sender, err := mail.HeaderInfos(rawHeaders)
	if err != nil {
		return nil, fmt.Errorf("could not parse mail header infos: %w: %w", domain.ErrMessageFetchFailed, err)
	}

	return &domain.HeaderInfo{
		Uid:     uid,
		Subject: subject,
		Sender:  sender,
	}, nil
}

func (ic *ImapConnection) FetchText(ctx context.Context, uid uint32) (string, error) {
	fullBodySection := &imap.BodySectionName{
		Peek: true,
	}

	rawMail, err := ic.fetchSection(ctx, uid, fullBodySection)
	if err != nil {
		return "", err
	}

	text, err := mail.ExtractText(rawMail)
	if err != nil {
		return "", fmt.Errorf("could not extract mail text: %w: %w", domain.ErrMessageFetchFailed, err)
	}

	return text, nil
}

func (ic *ImapConnection) Copy(ctx context.Context, uid uint32, folder string) error {
	err := ic.run(ctx, func() error {
		return ic.UidCopy(singleUid(uid), folder)
	})
	if err != nil {
		if errors.Is(err, ctx.Err()) {
			return err
		}
		return fmt.Errorf("could not copy mail %d to %s: %w", uid, folder, classify(err, domain.ErrMutationPartialFailure))
	}

	return nil
}

func (ic *ImapConnection) MoveSupported() bool {
	return ic.moveSupported
}

func (ic *ImapConnection) Move(ctx context.Context, uid uint32, folder string) error {
	err := ic.run(ctx, func() error {
		return ic.mailMover.move(uid, folder)
	})
	if err != nil {
		if errors.Is(err, ctx.Err()) {
			return err
		}
		return fmt.Errorf("could not move mail %d to %s: %w", uid, folder, classify(err, domain.ErrMutationPartialFailure))
	}

	return nil
}

func (ic *ImapConnection) MarkDeleted(ctx context.Context, uids []uint32) error {
	if len(uids) == 0 {
		return nil
	}

	err := ic.run(ctx, func() error {
		_, err := ic.flagDeleted(uids)
		return err
	})
	if err != nil {
		if errors.Is(err, ctx.Err()) {
			return err
		}
		return classify(err, domain.ErrMutationPartialFailure)
	}

	return nil
}

func (ic *ImapConnection) Purge(ctx context.Context, uids []uint32) (int, error) {
	if len(uids) == 0 {
		return 0, nil
	}

	purged := 0
	err := ic.run(ctx, func() error {
		var err error
		purged, err = ic.mailDeleter.purge(uids)
		return err
	})
	if err != nil {
		if errors.Is(err, ctx.Err()) {
			return purged, err
		}
		return purged, classify(err, domain.ErrMutationPartialFailure)
	}

	ic.l.WithFields(logrus.Fields{"folder": ic.selectedFolder, "purged": purged}).Debug("Purged mails")
	return purged, nil
}

func (ic *ImapConnection) Close() error {
	err := ic.connection.Logout()
	if err != nil && !errors.Is(err, client.ErrAlreadyLoggedOut) {
		return fmt.Errorf("could not logout: %w", err)
	}

	return nil
}

func (ic *ImapConnection) UidCopy(seqset *imap.SeqSet, dest string) error {
	return ic.connection.UidCopy(seqset, dest)
}

func (ic *ImapConnection) flagDeleted(uids []uint32) (*imap.SeqSet, error) {
	seqset := &imap.SeqSet{}
	seqset.AddNum(uids...)
	err := ic.connection.UidStore(seqset, imap.FormatFlagsOp(imap.AddFlags, true), []interface{}{imap.DeletedFlag}, nil)
	if err != nil {
		return nil, fmt.Errorf("could not set delete flag: %w", err)
	}

	return seqset, nil
}
