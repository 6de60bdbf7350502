// SPDX-License-Identifier: GPL-3.0-or-later
package persistence

import (
	"context"
	"embed"
	"fmt"
	"time"

	"github.com/CrawX/go-imap-sweeper/domain"
	"github.com/CrawX/go-imap-sweeper/log"

	"github.com/jmoiron/sqlx"
	_ "github.com/mattn/go-sqlite3"
	"github.com/rubenv/sql-migrate"
	"github.com/sirupsen/logrus"
)

//go:embed migrations/sql/*.sql
var migrationFiles embed.FS

type Persistence struct {
	db  *sqlx.DB
	now func() time.Time
	l   *logrus.Logger
}

func NewPersistence(datasource string) (*Persistence, error) {
	db, err := sqlx.Connect("sqlite3", datasource)
	if err != nil {
		return nil, fmt.Errorf("could not open db: %w", err)
	}
	db.SetMaxOpenConns(1)

	l := log.Logger(log.LOG_PERSISTENCE)
	l.WithField("file", datasource).Info("Connected")

	migrationSource := &migrate.EmbedFileSystemMigrationSource{
		FileSystem: migrationFiles,
		Root:       "migrations/sql",
	}

	_, err = db.Exec(`PRAGMA journal_mode=WAL`)
	if err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("could not set journal mode: %w", err)
	}
	_, err = db.Exec(`PRAGMA synchronous=normal`)
	if err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("could not set synchronous mode: %w", err)
	}

	appliedMigrations, err := migrate.Exec(db.DB, "sqlite3", migrationSource, migrate.Up)
	if err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("could not migrate to newest version: %w", err)
	}

	l.WithField("migrations", appliedMigrations).Debug("Executed migrations")

	return &Persistence{
		db:  db,
		now: func() time.Time { return time.Now().UTC() },
		l:   l,
	}, nil
}

func (p *Persistence) Close() error {
	err := p.db.Close()
	if err != nil {
		return fmt.Errorf("could not close db: %w", err)
	}
	p.l.Info("Disconnected")
	return nil
}

func (p *Persistence) SaveScan(entries []domain.ScanEntry) error {
	if len(entries) == 0 {
		return nil
	}

	scannedAt := p.now()
	err := p.inTx(
		"INSERT INTO scans(folder, uid, subject, sender, verdict, reason, scanned_at) VALUES(?, ?, ?, ?, ?, ?, ?)",
		len(entries),
		func(i int) []interface{} {
			e := entries[i]
			return []interface{}{e.Folder, e.Uid, e.Subject, e.Sender, int(e.Verdict), e.Reason, scannedAt}
		},
	)
	if err != nil {
		return fmt.Errorf("could not save scan: %w", err)
	}

	p.l.WithFields(logrus.Fields{"Count": len(entries)}).Debug("Persisted scan")
	return nil
}

func (p *Persistence) SaveMutations(entries []domain.MutationEntry) error {
	if len(entries) == 0 {
		return nil
	}

	appliedAt := p.now()
	err := p.inTx(
		"INSERT INTO mutations(folder, destination, uid, ok, error, applied_at) VALUES(?, ?, ?, ?, ?, ?)",
		len(entries),
		func(i int) []interface{} {
			e := entries[i]
			return []interface{}{e.Folder, e.Destination, e.Uid, e.Ok, e.Error, appliedAt}
		},
	)
	if err != nil {
		return fmt.Errorf("could not save mutations: %w", err)
	}

	p.l.WithFields(logrus.Fields{"Count": len(entries)}).Debug("Persisted mutations")
	return nil
}

func (p *Persistence) EnqueueFeedback(subject, sender string, label domain.LearnType) error {
	_, err := p.db.Exec(
		"INSERT INTO feedback(subject, sender, label, created_at) VALUES(?, ?, ?, ?)",
		subject, sender, string(label), p.now(),
	)
	if err != nil {
		return fmt.Errorf("could not enqueue feedback: %w", err)
	}

	p.l.WithFields(logrus.Fields{"Label": label}).Debug("Enqueued feedback")
	return nil
}

func (p *Persistence) PendingFeedback(limit int) ([]*domain.FeedbackEntry, error) {
	dbFeedback := []struct {
		Id        int64
		Subject   string
		Sender    string
		Label     string
		CreatedAt time.Time `db:"created_at"`
	}{}

	err := p.db.Select(
		&dbFeedback,
		`SELECT id, subject, sender, label, created_at FROM feedback WHERE learned_at IS NULL ORDER BY id LIMIT ?`,
		limit,
	)
	if err != nil {
		return nil, fmt.Errorf("could not query db: %w", err)
	}

	entries := []*domain.FeedbackEntry{}
	for _, f := range dbFeedback {
		entries = append(
			entries,
			&domain.FeedbackEntry{
				Id:        f.Id,
				Subject:   f.Subject,
				Sender:    f.Sender,
				Label:     domain.LearnType(f.Label),
				CreatedAt: f.CreatedAt,
			},
		)
	}

	return entries, nil
}

func (p *Persistence) MarkLearned(ids []int64) error {
	if len(ids) == 0 {
		return nil
	}

	qry, args, err := sqlx.In("UPDATE feedback SET learned_at = ? WHERE id IN (?)", p.now(), ids)
	if err != nil {
		return fmt.Errorf("could not replace IN in query: %w", err)
	}

	result, err := p.db.Exec(qry, args...)
	if err != nil {
		return fmt.Errorf("could not mark feedback learned: %w", err)
	}

	affected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("could not get num of affected rows: %w", err)
	}

	if affected != int64(len(ids)) {
		return fmt.Errorf("unexpected number of affected rows, expected %d got %d", len(ids), affected)
	}

	return nil
}

// inTx runs one prepared statement count times in a single transaction.
func (p *Persistence) inTx(query string, count int, args func(i int) []interface{}) error {
	tx, err := p.db.BeginTxx(context.TODO(), nil)
	if err != nil {
		return fmt.Errorf("could not start transaction: %w", err)
	}

	stmt, err := tx.Prepare(query)
	if err != nil {
		return txEnd(tx, fmt.Errorf("could not prepare statement: %w", err))
	}
	defer stmt.Close()

	for i := 0; i < count; i++ {
		_, err := stmt.Exec(args(i)...)
		if err != nil {
			return txEnd(tx, fmt.Errorf("could not insert row: %w", err))
		}
	}

	return txEnd(tx, nil)
}

func txEnd(tx *sqlx.Tx, err error) error {
	if err == nil {
		err = tx.Commit()
		if err != nil {
			return fmt.Errorf("could not commit tx: %w", err)
		}
	} else {
		rollbackErr := tx.Rollback()
		if rollbackErr != nil {
			errStr := err.Error()
			return fmt.Errorf("%s, could not rollback tx: %w", errStr, rollbackErr)
		} else {
			return err
		}
	}

	return nil
}
