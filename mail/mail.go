// SPDX-License-Identifier: GPL-3.0-or-later
package mail

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"regexp"
	"strings"
	"time"

	_ "github.com/emersion/go-message/charset"
	"github.com/emersion/go-message/mail"
)

var tagRegexp = regexp.MustCompile(`<[^>]*>`)

// HeaderInfos returns the decoded Subject and the raw From header of a message or a
// bare header block. A Subject that cannot be decoded is returned as "" without error,
// only an unparsable header block is an error.
func HeaderInfos(rawMail []byte) (string, string, error) {
	header, err := readHeader(rawMail)
	if err != nil {
		return "", "", err
	}

	subject, err := header.Subject()
	if err != nil {
		subject = ""
	}

	return subject, header.Get("From"), nil
}

func readHeader(rawMail []byte) (*mail.Header, error) {
	raw := rawMail
	if !bytes.Contains(raw, []byte("\r\n\r\n")) && !bytes.Contains(raw, []byte("\n\n")) {
		// header-only fetches may lack the terminating blank line
		raw = append(append([]byte{}, raw...), '\r', '\n', '\r', '\n')
	}

	r, err := mail.CreateReader(bytes.NewReader(raw))
	if err != nil && r == nil {
		return nil, fmt.Errorf("could not parse mail header: %w", err)
	}
	defer r.Close()

	return &r.Header, nil
}

// ExtractText returns the first text/plain part of a message, falling back to tag-stripped
// text/html when no plain part exists.
func ExtractText(rawMail []byte) (string, error) {
	r, err := mail.CreateReader(bytes.NewReader(rawMail))
	if err != nil && r == nil {
		return "", fmt.Errorf("could not parse mail: %w", err)
	}
	defer r.Close()

	html := ""
	for {
		p, err := r.NextPart()
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			if len(html) > 0 {
				break
			}
			return "", fmt.Errorf("could not read mail part: %w", err)
		}

		h, ok := p.Header.(*mail.InlineHeader)
		if !ok {
			continue
		}

		contentType, _, _ := h.ContentType()
		switch {
		case strings.HasPrefix(contentType, "text/plain") || contentType == "":
			body, err := io.ReadAll(p.Body)
			if err != nil {
				return "", fmt.Errorf("could not read text part: %w", err)
			}
			return string(body), nil
		case strings.HasPrefix(contentType, "text/html") && len(html) == 0:
			body, err := io.ReadAll(p.Body)
			if err != nil {
				continue
			}
			html = tagRegexp.ReplaceAllString(string(body), " ")
		}
	}

	return strings.Join(strings.Fields(html), " "), nil
}

// Synthesize builds a minimal single-part message, used to hand user feedback to
// learners that expect whole mails.
func Synthesize(subject, sender, body string) ([]byte, error) {
	buffer := &bytes.Buffer{}

	header := mail.Header{}
	header.SetDate(time.Now())
	header.SetSubject(subject)
	if len(sender) > 0 {
		header.Set("From", sender)
	}
	header.SetAddressList("To", []*mail.Address{{Name: "go-imap-sweeper", Address: "go-imap-sweeper@localhost"}})
	header.SetContentType("text/plain", map[string]string{"charset": "utf-8"})

	w, err := mail.CreateSingleInlineWriter(buffer, header)
	if err != nil {
		return nil, fmt.Errorf("could not create mail writer: %w", err)
	}

	_, err = io.WriteString(w, body)
	if err != nil {
		return nil, fmt.Errorf("could not write body: %w", err)
	}

	err = w.Close()
	if err != nil {
		return nil, fmt.Errorf("could not close mail writer: %w", err)
	}

	return buffer.Bytes(), nil
}

// ShortSubject cuts subject after 30 characters.
func ShortSubject(subject string) string {
	runes := []rune(subject)
	if len(runes) > 30 {
		subject = string(runes[:30]) + "..."
	}
	return subject
}
