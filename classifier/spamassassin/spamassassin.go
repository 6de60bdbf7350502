// SPDX-License-Identifier: GPL-3.0-or-later
package spamassassin

import (
	"bytes"
	"context"
	"fmt"
	"net"
	"time"

	"github.com/CrawX/go-imap-sweeper/domain"
	"github.com/CrawX/go-imap-sweeper/mail"

	"github.com/teamwork/spamc"
)

const SpamAssassinTimeout = 20 * time.Second

// spamd is the part of the spamc client in use.
type spamd interface {
	check(ctx context.Context, rawMail []byte) (bool, float64, error)
	tell(ctx context.Context, rawMail []byte, header spamc.Header) error
}

type spamcClient struct {
	client *spamc.Client
}

func (c *spamcClient) check(ctx context.Context, rawMail []byte) (bool, float64, error) {
	out, err := c.client.Process(ctx, bytes.NewReader(rawMail), nil)
	if err != nil {
		return false, 0, err
	}

	err = out.Message.Close()
	if err != nil {
		return false, 0, fmt.Errorf("could not close response: %w", err)
	}

	return out.IsSpam, out.Score, nil
}

func (c *spamcClient) tell(ctx context.Context, rawMail []byte, header spamc.Header) error {
	_, err := c.client.Tell(ctx, bytes.NewReader(rawMail), header)
	return err
}

// SpamAssassin scores messages through spamd. It only reports a label and
// SpamAssassin's own score, never a probability.
type SpamAssassin struct {
	spamd spamd
}

func NewSpamassassin(ctx context.Context, host string) (*SpamAssassin, error) {
	client := spamc.New(host, &net.Dialer{
		Timeout: SpamAssassinTimeout,
	})
	err := client.Ping(ctx)
	if err != nil {
		return nil, fmt.Errorf("could not ping SpamAssassin: %w", err)
	}

	return &SpamAssassin{spamd: &spamcClient{client: client}}, nil
}

func (sa *SpamAssassin) Score(ctx context.Context, text string) (*domain.SpamResult, error) {
	return sa.ScoreMessage(ctx, "", "", text)
}

// ScoreMessage lets spamd see subject and sender as real headers.
func (sa *SpamAssassin) ScoreMessage(ctx context.Context, subject, sender, body string) (*domain.SpamResult, error) {
	rawMail, err := mail.Synthesize(subject, sender, body)
	if err != nil {
		return nil, fmt.Errorf("could not build message for SpamAssassin: %w", err)
	}

	isSpam, score, err := sa.spamd.check(ctx, rawMail)
	if err != nil {
		return nil, fmt.Errorf("could not check SpamAssassin: %w", err)
	}

	return &domain.SpamResult{
		IsSpam: isSpam,
		Score:  score,
	}, nil
}

func (sa *SpamAssassin) Learn(ctx context.Context, learnType domain.LearnType, rawMail []byte) error {
	header := spamc.Header{}.Set("Set", "local")
	switch learnType {
	case domain.LearnSpam:
		header = header.Set("Message-class", "spam")
	case domain.LearnHam:
		header = header.Set("Message-class", "ham")
	default:
		return fmt.Errorf("unsupported learn type %v", learnType)
	}

	err := sa.spamd.tell(ctx, rawMail, header)
	if err != nil {
		return fmt.Errorf("could not learn SpamAssassin: %w", err)
	}
	return nil
}
