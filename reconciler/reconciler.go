// SPDX-License-Identifier: GPL-3.0-or-later
package reconciler

import (
	"context"
	"errors"
	"fmt"
	"sort"
	"time"

	"github.com/CrawX/go-imap-sweeper/classifier"
	"github.com/CrawX/go-imap-sweeper/domain"
	"github.com/CrawX/go-imap-sweeper/log"
	"github.com/CrawX/go-imap-sweeper/mail"

	"github.com/sirupsen/logrus"
)

type Classifier interface {
	ClassifyWithBody(ctx context.Context, subject, sender, body string) classifier.Classification
}

type ItemFailure struct {
	Uid uint32
	Err error
}

type ApplyResult struct {
	Attempted int
	Succeeded int
	Failed    []ItemFailure
	DryRun    bool
}

type Reconciler struct {
	connector  domain.MailboxConnector
	classifier Classifier

	configuration *configuration

	l *logrus.Logger
}

func NewReconciler(connector domain.MailboxConnector, classifier Classifier, configFunc ...ConfigFunc) (*Reconciler, error) {
	config := &configuration{}
	for _, f := range configFunc {
		err := f(config)
		if err != nil {
			return nil, fmt.Errorf("error applying configuration: %w", err)
		}
	}

	return &Reconciler{
		connector:     connector,
		classifier:    classifier,
		configuration: config,
		l:             log.Logger(log.LOG_RECONCILER),
	}, nil
}

// fetchResult carries either a header or the reason the mail is skipped.
type fetchResult struct {
	header *domain.HeaderInfo
	body   string
	err    error
}

func (r *Reconciler) closeSession(session domain.MailboxSession) {
	err := session.Close()
	if err != nil {
		r.l.WithFields(logrus.Fields{"error": err}).Warn("Could not close mailbox session")
	}
}

// List returns the newest limit mails of folder, classified and newest first. Mails that cannot be fetched are
// skipped.
func (r *Reconciler) List(ctx context.Context, creds domain.Credentials, folder string, limit int) ([]domain.MessageRecord, error) {
	if limit < 1 {
		return nil, fmt.Errorf("limit must be at least 1, got %d", limit)
	}

	start := time.Now()
	session, err := r.connector.Open(ctx, creds)
	if err != nil {
		return nil, fmt.Errorf("could not open mailbox session: %w", err)
	}
	defer r.closeSession(session)

	err = session.Select(ctx, folder, true)
	if err != nil {
		return nil, fmt.Errorf("could not select folder %s: %w", folder, err)
	}

	uids, err := session.SearchAll(ctx, r.configuration.UnseenOnly)
	if err != nil {
		return nil, fmt.Errorf("could not list uids in folder %s: %w", folder, err)
	}

	newest := newestUids(uids, limit)
	baseLogger := r.l.WithFields(logrus.Fields{"folder": folder, "mails": len(uids), "limit": limit})
	baseLogger.WithFields(logrus.Fields{"listing": len(newest)}).Debug("Listed all uids in folder")

	records := make([]domain.MessageRecord, 0, len(newest))
	scans := make([]domain.ScanEntry, 0, len(newest))
	for _, uid := range newest {
		err = ctx.Err()
		if err != nil {
			return nil, fmt.Errorf("listing cancelled: %w", err)
		}

		result := r.fetch(ctx, session, uid)
		if result.err != nil {
			baseLogger.WithFields(logrus.Fields{"uid": uid, "error": result.err}).Warn("Could not fetch mail, skipping")
			continue
		}

		classification := r.classifier.ClassifyWithBody(ctx, result.header.Subject, result.header.Sender, result.body)
		record := domain.NewMessageRecord(uid, result.header.Subject, result.header.Sender, classification.Verdict, classification.Reason)
		records = append(records, record)
		scans = append(scans, domain.ScanEntry{
			Folder:  folder,
			Uid:     uid,
			Subject: record.Subject,
			Sender:  record.Sender,
			Verdict: record.Verdict,
			Reason:  record.Reason,
		})

		baseLogger.WithFields(logrus.Fields{"subject": mail.ShortSubject(record.Subject), "verdict": record.Verdict, "reason": record.Reason}).Debug("Classified mail")
	}

	r.saveScan(scans)

	spam := len(domain.SelectedUids(records))
	baseLogger.WithFields(logrus.Fields{"duration": time.Since(start), "listed": len(records), "spam": spam}).Info("Listed folder")
	return records, nil
}

func (r *Reconciler) fetch(ctx context.Context, session domain.MailboxSession, uid uint32) fetchResult {
	header, err := session.FetchHeaders(ctx, uid)
	if err != nil {
		return fetchResult{err: err}
	}

	if !r.configuration.ScanBody {
		return fetchResult{header: header}
	}

	body, err := session.FetchText(ctx, uid)
	if err != nil {
		return fetchResult{err: err}
	}

	return fetchResult{header: header, body: body}
}

func (r *Reconciler) saveScan(scans []domain.ScanEntry) {
	if r.configuration.History == nil || len(scans) == 0 {
		return
	}

	err := r.configuration.History.SaveScan(scans)
	if err != nil {
		r.l.WithFields(logrus.Fields{"error": err}).Warn("Could not save scan history")
	}
}

// Apply moves the selected records from source to destination, or deletes them forever when destination is empty.
// Failures of single mails are collected in the result and reported as ErrMutationPartialFailure.
func (r *Reconciler) Apply(ctx context.Context, creds domain.Credentials, records []domain.MessageRecord, source, destination string) (*ApplyResult, error) {
	uids := uniqueUids(domain.SelectedUids(records))
	result := &ApplyResult{Attempted: len(uids)}
	if len(uids) == 0 {
		return result, nil
	}

	baseLogger := r.l.WithFields(logrus.Fields{"folder": source, "destination": destination, "selected": len(uids)})
	if r.configuration.DryRun {
		baseLogger.Info("Not moving or deleting mails due to dry-run")
		result.DryRun = true
		return result, nil
	}

	start := time.Now()
	session, err := r.connector.Open(ctx, creds)
	if err != nil {
		return nil, fmt.Errorf("could not open mailbox session: %w", err)
	}
	defer r.closeSession(session)

	err = session.Select(ctx, source, false)
	if err != nil {
		return nil, fmt.Errorf("could not select folder %s: %w", source, err)
	}

	present, err := session.SearchAll(ctx, false)
	if err != nil {
		return nil, fmt.Errorf("could not list uids in folder %s: %w", source, err)
	}
	existing := make(map[uint32]struct{}, len(present))
	for _, uid := range present {
		existing[uid] = struct{}{}
	}

	err = ctx.Err()
	if err != nil {
		return nil, fmt.Errorf("apply cancelled: %w", err)
	}

	fail := func(uid uint32, err error) {
		baseLogger.WithFields(logrus.Fields{"uid": uid, "error": err}).Warn("Could not mutate mail")
		result.Failed = append(result.Failed, ItemFailure{Uid: uid, Err: err})
	}

	useMove := len(destination) > 0 && r.configuration.PreferMove
	moveSupported := useMove && session.MoveSupported()
	// toFlag still needs the \Deleted flag, flagged already carries it from a move without MOVE support
	toFlag := []uint32{}
	flagged := []uint32{}
	for i, uid := range uids {
		err = ctx.Err()
		if err != nil {
			for _, rest := range uids[i:] {
				fail(rest, fmt.Errorf("mutation cancelled: %w", err))
			}
			break
		}

		if _, ok := existing[uid]; !ok {
			fail(uid, fmt.Errorf("mail %d is gone: %w", uid, domain.ErrIdentifierNotFound))
			continue
		}

		switch {
		case len(destination) == 0:
			toFlag = append(toFlag, uid)
		case useMove:
			err = session.Move(ctx, uid, destination)
			if err != nil {
				fail(uid, err)
				continue
			}
			if moveSupported {
				result.Succeeded++
			} else {
				flagged = append(flagged, uid)
			}
		default:
			err = session.Copy(ctx, uid, destination)
			if err != nil {
				fail(uid, err)
				continue
			}
			toFlag = append(toFlag, uid)
		}
	}

	result.Succeeded += r.purge(ctx, session, toFlag, flagged, fail)

	r.saveMutations(result, uids, source, destination)

	baseLogger.WithFields(logrus.Fields{"duration": time.Since(start), "succeeded": result.Succeeded, "failed": len(result.Failed)}).Info("Applied selection")
	if len(result.Failed) > 0 {
		return result, fmt.Errorf("%w: %d of %d mails failed", domain.ErrMutationPartialFailure, len(result.Failed), result.Attempted)
	}

	return result, nil
}

// purge flags toFlag and removes it together with the already flagged uids in one bulk operation. Nothing is
// flagged once ctx is cancelled, flagged mails are always purged so no \Deleted flag is left behind. It returns the
// number of removed mails and reports the others through fail.
func (r *Reconciler) purge(ctx context.Context, session domain.MailboxSession, toFlag, flagged []uint32, fail func(uint32, error)) int {
	if len(toFlag) > 0 {
		err := ctx.Err()
		if err != nil {
			err = fmt.Errorf("purge cancelled: %w", err)
		} else {
			err = session.MarkDeleted(ctx, toFlag)
			if err != nil {
				err = fmt.Errorf("could not flag mails as deleted: %w", err)
			}
		}
		if err != nil {
			for _, uid := range toFlag {
				fail(uid, err)
			}
			toFlag = nil
		}
	}

	uids := append(append([]uint32{}, flagged...), toFlag...)
	if len(uids) == 0 {
		return 0
	}

	purged, err := session.Purge(context.WithoutCancel(ctx), uids)
	if err != nil {
		err = fmt.Errorf("could not purge mails: %w", err)
		for _, uid := range uids {
			fail(uid, err)
		}
		return 0
	}

	if purged != len(uids) {
		r.l.WithFields(logrus.Fields{"expected": len(uids), "purged": purged}).Debug("Server reported a different number of purged mails")
	}

	return len(uids)
}

func (r *Reconciler) saveMutations(result *ApplyResult, uids []uint32, source, destination string) {
	if r.configuration.History == nil {
		return
	}

	failed := make(map[uint32]error, len(result.Failed))
	for _, f := range result.Failed {
		failed[f.Uid] = f.Err
	}

	entries := make([]domain.MutationEntry, 0, len(uids))
	for _, uid := range uids {
		entry := domain.MutationEntry{
			Folder:      source,
			Destination: destination,
			Uid:         uid,
			Ok:          true,
		}
		if err, ok := failed[uid]; ok {
			entry.Ok = false
			entry.Error = err.Error()
		}
		entries = append(entries, entry)
	}

	err := r.configuration.History.SaveMutations(entries)
	if err != nil {
		r.l.WithFields(logrus.Fields{"error": err}).Warn("Could not save mutation history")
	}
}

// IsPartialFailure reports whether err only describes failures of single mails.
func IsPartialFailure(err error) bool {
	return errors.Is(err, domain.ErrMutationPartialFailure)
}

// newestUids returns the limit highest uids, highest first.
func newestUids(uids []uint32, limit int) []uint32 {
	sorted := make([]uint32, len(uids))
	copy(sorted, uids)
	sort.Slice(sorted, func(i, j int) bool { return sorted[i] > sorted[j] })

	if len(sorted) > limit {
		sorted = sorted[:limit]
	}

	return sorted
}

func uniqueUids(uids []uint32) []uint32 {
	seen := make(map[uint32]struct{}, len(uids))
	unique := make([]uint32, 0, len(uids))
	for _, uid := range uids {
		if _, ok := seen[uid]; ok {
			continue
		}
		seen[uid] = struct{}{}
		unique = append(unique, uid)
	}

	return unique
}
