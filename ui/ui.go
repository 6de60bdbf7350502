// SPDX-License-Identifier: GPL-3.0-or-later
package ui

import (
	"context"
	"errors"
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/CrawX/go-imap-sweeper/domain"
	"github.com/CrawX/go-imap-sweeper/log"
	"github.com/CrawX/go-imap-sweeper/mail"
	"github.com/CrawX/go-imap-sweeper/session"

	"github.com/charmbracelet/huh"
	"github.com/sirupsen/logrus"
)

const (
	actionMove   = "move"
	actionDelete = "delete"
	actionRescan = "rescan"
	actionLogout = "logout"
	actionQuit   = "quit"
)

type Settings struct {
	User       string
	Folder     string
	SpamFolder string
	ScanLimit  int
	MinLimit   int
	MaxLimit   int
}

// UI drives a session with terminal forms. Every error is printed inline and the loop continues.
type UI struct {
	session  *session.Session
	settings Settings
	out      io.Writer

	l *logrus.Logger
}

func NewUI(s *session.Session, settings Settings, out io.Writer) *UI {
	return &UI{
		session:  s,
		settings: settings,
		out:      out,
		l:        log.Logger(log.LOG_MAIN),
	}
}

func (u *UI) println(s string) {
	if len(s) > 0 {
		fmt.Fprintln(u.out, s)
	}
}

// Run loops until the user quits or ctx ends.
func (u *UI) Run(ctx context.Context) error {
	for {
		if ctx.Err() != nil {
			return nil
		}

		var err error
		quit := false
		switch u.session.State() {
		case session.LoggedOut:
			err = u.login(ctx)
		case session.Listing:
			err = u.scan(ctx)
		case session.Reviewing:
			quit, err = u.review(ctx)
		default:
			return fmt.Errorf("unexpected session state %v", u.session.State())
		}

		if errors.Is(err, huh.ErrUserAborted) || quit {
			u.session.Logout()
			return nil
		}
		if err != nil {
			u.l.WithFields(logrus.Fields{"error": err}).Debug("Action failed")
			u.println(RenderError(err))
		}
	}
}

func (u *UI) login(ctx context.Context) error {
	user, secret := u.settings.User, ""
	err := LoginForm(&user, &secret).RunWithContext(ctx)
	if err != nil {
		return err
	}

	u.settings.User = user
	return u.session.Login(ctx, user, secret)
}

func (u *UI) scan(ctx context.Context) error {
	folder := u.settings.Folder
	limit := strconv.Itoa(u.settings.ScanLimit)
	err := ScanForm(&folder, &limit, u.settings.MinLimit, u.settings.MaxLimit).RunWithContext(ctx)
	if err != nil {
		return err
	}

	parsed, err := ParseLimit(limit, u.settings.MinLimit, u.settings.MaxLimit)
	if err != nil {
		return err
	}
	u.settings.Folder = folder
	u.settings.ScanLimit = parsed

	records, err := u.session.Scan(ctx, folder, parsed)
	if err != nil {
		return err
	}

	u.println(RenderRecords(records))
	return nil
}

func (u *UI) review(ctx context.Context) (bool, error) {
	records := u.session.Records()
	if len(records) > 0 {
		selected := domain.SelectedUids(records)
		err := ReviewForm(records, &selected).RunWithContext(ctx)
		if err != nil {
			return false, err
		}

		err = applySelection(u.session, records, selected)
		if err != nil {
			return false, err
		}
		records = u.session.Records()
		u.println(RenderRecords(records))
	}

	action := actionMove
	err := ActionForm(&action, u.settings.SpamFolder, len(domain.SelectedUids(records))).RunWithContext(ctx)
	if err != nil {
		return false, err
	}

	switch action {
	case actionQuit:
		return true, nil
	case actionLogout:
		u.session.Logout()
		return false, nil
	case actionRescan:
		return false, u.scan(ctx)
	}

	destination := u.settings.SpamFolder
	question := fmt.Sprintf("Move %d mails from %s to %s?", len(domain.SelectedUids(records)), u.session.Folder(), destination)
	if action == actionDelete {
		destination = ""
		question = fmt.Sprintf("Delete %d mails from %s forever? This cannot be undone.", len(domain.SelectedUids(records)), u.session.Folder())
	}

	confirmed := false
	err = ConfirmForm(&confirmed, question).RunWithContext(ctx)
	if err != nil {
		return false, err
	}
	if !confirmed {
		u.println(noteStyle.Render("Nothing changed."))
		return false, nil
	}

	result, err := u.session.Apply(ctx, destination, confirmed)
	u.println(RenderApplyResult(result, err))
	return false, nil
}

// applySelection pushes the uids chosen in the review form into the session.
func applySelection(s *session.Session, records []domain.MessageRecord, selected []uint32) error {
	chosen := make(map[uint32]bool, len(selected))
	for _, uid := range selected {
		chosen[uid] = true
	}

	for _, r := range records {
		err := s.SetSelected(r.Uid, chosen[r.Uid])
		if err != nil {
			return err
		}
	}

	return nil
}

func ParseLimit(value string, min, max int) (int, error) {
	limit, err := strconv.Atoi(strings.TrimSpace(value))
	if err != nil {
		return 0, fmt.Errorf("limit must be a number")
	}
	if limit < min || limit > max {
		return 0, fmt.Errorf("limit must be between %d and %d", min, max)
	}
	return limit, nil
}

func required(name string) func(string) error {
	return func(s string) error {
		if len(strings.TrimSpace(s)) == 0 {
			return fmt.Errorf("%s is required", name)
		}
		return nil
	}
}

func LoginForm(user, secret *string) *huh.Form {
	return huh.NewForm(
		huh.NewGroup(
			huh.NewInput().
				Title("User").
				Description("Mail address of the account").
				Value(user).
				Validate(required("User")),
			huh.NewInput().
				Title("App password").
				Description("Kept in memory until you log out").
				EchoMode(huh.EchoModePassword).
				Value(secret).
				Validate(required("Password")),
		),
	)
}

func ScanForm(folder, limit *string, min, max int) *huh.Form {
	return huh.NewForm(
		huh.NewGroup(
			huh.NewInput().
				Title("Folder").
				Value(folder).
				Validate(required("Folder")),
			huh.NewInput().
				Title("Mails to scan").
				Description(fmt.Sprintf("Newest mails first, %d to %d", min, max)).
				Value(limit).
				Validate(func(s string) error {
					_, err := ParseLimit(s, min, max)
					return err
				}),
		),
	)
}

func ReviewForm(records []domain.MessageRecord, selected *[]uint32) *huh.Form {
	options := make([]huh.Option[uint32], 0, len(records))
	for _, r := range records {
		label := fmt.Sprintf("[%s] %s (%s)", strings.ToUpper(r.Verdict.String()), mail.ShortSubject(r.Subject), shorten(r.Sender, maxSenderLength))
		options = append(options, huh.NewOption(label, r.Uid).Selected(r.Selected))
	}

	return huh.NewForm(
		huh.NewGroup(
			huh.NewMultiSelect[uint32]().
				Title("Mails to act on").
				Description("Spam is preselected, toggle with space").
				Options(options...).
				Value(selected),
		),
	)
}

func ActionForm(action *string, spamFolder string, selected int) *huh.Form {
	return huh.NewForm(
		huh.NewGroup(
			huh.NewSelect[string]().
				Title(fmt.Sprintf("%d mails selected", selected)).
				Options(
					huh.NewOption(fmt.Sprintf("Move to %s", spamFolder), actionMove),
					huh.NewOption("Delete forever", actionDelete),
					huh.NewOption("Scan again", actionRescan),
					huh.NewOption("Log out", actionLogout),
					huh.NewOption("Quit", actionQuit),
				).
				Value(action),
		),
	)
}

func ConfirmForm(confirmed *bool, question string) *huh.Form {
	return huh.NewForm(
		huh.NewGroup(
			huh.NewConfirm().
				Title(question).
				Affirmative("Yes").
				Negative("No").
				Value(confirmed),
		),
	)
}
