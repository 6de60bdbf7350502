// SPDX-License-Identifier: GPL-3.0-or-later
package ui

import (
	"errors"
	"fmt"
	"strings"

	"github.com/CrawX/go-imap-sweeper/domain"
	"github.com/CrawX/go-imap-sweeper/mail"
	"github.com/CrawX/go-imap-sweeper/reconciler"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/lipgloss/table"
)

var (
	colorSpam   = lipgloss.Color("#E06C75")
	colorSafe   = lipgloss.Color("#98C379")
	colorSubtle = lipgloss.Color("#5C6370")

	headerStyle = lipgloss.NewStyle().Bold(true).Padding(0, 1)
	cellStyle   = lipgloss.NewStyle().Padding(0, 1)
	errorStyle  = lipgloss.NewStyle().Bold(true).Foreground(colorSpam)
	okStyle     = lipgloss.NewStyle().Foreground(colorSafe)
	noteStyle   = lipgloss.NewStyle().Foreground(colorSubtle)
)

const maxSenderLength = 32

func shorten(s string, max int) string {
	runes := []rune(s)
	if len(runes) <= max {
		return s
	}
	return string(runes[:max-1]) + "…"
}

// RenderRecords draws the scan as a table, spam rows highlighted.
func RenderRecords(records []domain.MessageRecord) string {
	if len(records) == 0 {
		return noteStyle.Render("No mails found.")
	}

	rows := make([][]string, 0, len(records))
	for _, r := range records {
		selected := " "
		if r.Selected {
			selected = "x"
		}
		rows = append(rows, []string{
			selected,
			fmt.Sprintf("%d", r.Uid),
			strings.ToUpper(r.Verdict.String()),
			mail.ShortSubject(r.Subject),
			shorten(r.Sender, maxSenderLength),
			r.Reason,
		})
	}

	t := table.New().
		Border(lipgloss.RoundedBorder()).
		BorderStyle(lipgloss.NewStyle().Foreground(colorSubtle)).
		Headers("SEL", "UID", "VERDICT", "SUBJECT", "FROM", "REASON").
		Rows(rows...).
		StyleFunc(func(row, col int) lipgloss.Style {
			if row == table.HeaderRow {
				return headerStyle
			}
			if col == 2 && row >= 0 && row < len(records) {
				if records[row].Verdict == domain.Spam {
					return cellStyle.Foreground(colorSpam)
				}
				return cellStyle.Foreground(colorSafe)
			}
			return cellStyle
		})

	spam := len(domain.SelectedUids(records))
	summary := noteStyle.Render(fmt.Sprintf("%d mails, %d selected", len(records), spam))
	return lipgloss.JoinVertical(lipgloss.Left, t.String(), summary)
}

// RenderApplyResult describes the outcome of a mutation next to the action that caused it.
func RenderApplyResult(result *reconciler.ApplyResult, err error) string {
	if result == nil {
		return RenderError(err)
	}

	if result.DryRun {
		return noteStyle.Render(fmt.Sprintf("Dry-run: %d mails would have been changed.", result.Attempted))
	}

	lines := []string{okStyle.Render(fmt.Sprintf("%d of %d mails changed.", result.Succeeded, result.Attempted))}
	for _, f := range result.Failed {
		reason := f.Err.Error()
		if errors.Is(f.Err, domain.ErrIdentifierNotFound) {
			reason = "already gone"
		}
		lines = append(lines, errorStyle.Render(fmt.Sprintf("  mail %d failed: %s", f.Uid, reason)))
	}
	if len(result.Failed) > 0 {
		lines = append(lines, noteStyle.Render("Scan again to see the current state of the folder."))
	}

	return lipgloss.JoinVertical(lipgloss.Left, lines...)
}

// RenderError turns an error into a user facing line.
func RenderError(err error) string {
	if err == nil {
		return ""
	}

	hint := ""
	switch {
	case errors.Is(err, domain.ErrAuthenticationFailed):
		hint = "Check user and app password and try again."
	case errors.Is(err, domain.ErrConnectionFailed):
		hint = "Connection problem, try again."
	case errors.Is(err, domain.ErrFolderNotFound):
		hint = "Folder does not exist."
	}

	line := errorStyle.Render("Error: " + err.Error())
	if len(hint) == 0 {
		return line
	}
	return lipgloss.JoinVertical(lipgloss.Left, line, noteStyle.Render(hint))
}
