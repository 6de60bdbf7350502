// SPDX-License-Identifier: GPL-3.0-or-later
package config

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/BurntSushi/toml"

	"github.com/CrawX/go-imap-sweeper/domain"
)

const (
	MinScanLimit = 1
	MaxScanLimit = 500
)

// Thresholds used by earlier deployments; DefaultThreshold is the middle one.
var HistoricThresholds = []float64{0.35, 0.40, 0.45}

const DefaultThreshold = 0.40

type Config struct {
	Database string

	ImapHost       string
	User           string
	ConnectTimeout time.Duration
	CommandTimeout time.Duration

	Folder     string
	SpamFolder string
	ScanLimit  int
	UnseenOnly bool
	ScanBody   bool
	PreferMove bool
	DryRun     bool

	TrustedSenders  []string
	TrustedKeywords []string

	Threshold          float64
	UnavailableVerdict string

	ModelFile string

	SpamassassinHost string

	RspamdController string
	RspamdPassword   string

	FeedbackInterval time.Duration

	Loglevel *string
}

func defaults() *Config {
	return &Config{
		Database:       "sweeper.db",
		ImapHost:       "imap.gmail.com:993",
		ConnectTimeout: 15 * time.Second,
		CommandTimeout: 60 * time.Second,
		Folder:         "INBOX",
		SpamFolder:     "[Gmail]/Spam",
		ScanLimit:      50,
		TrustedSenders: []string{
			"duet.ac.bd",
			"github.com",
			"google.com",
			"accounts.google.com",
			"microsoft.com",
			"linkedin.com",
			"kaggle.com",
			"hackerrank.com",
			"deeplearning.ai",
			"researchgate.net",
			"bkash.com",
			"facebookmail.com",
			"codeforces.com",
			"medium.com",
		},
		TrustedKeywords: []string{
			"submission",
			"verification code",
			"security alert",
			"single-use code",
			"deadline",
			"otp",
		},
		Threshold:          DefaultThreshold,
		UnavailableVerdict: domain.Spam.String(),
		ModelFile:          "model.json",
		FeedbackInterval:   5 * time.Minute,
	}
}

func ReadConfig(filename string) (*Config, error) {
	config := defaults()

	_, err := toml.DecodeFile(filename, config)
	if err != nil {
		return nil, fmt.Errorf("could not read config file: %w", err)
	}

	err = config.validate()
	if err != nil {
		return nil, err
	}

	return config, nil
}

// Verdict returns the parsed UnavailableVerdict. validate guarantees it parses.
func (c *Config) Verdict() domain.Verdict {
	v, _ := domain.ParseVerdict(c.UnavailableVerdict)
	return v
}

func (c *Config) validate() error {
	if err := validateNonEmptyStringField(c.Database, "Database name must not be empty, set to a filename for the sqlite database"); err != nil {
		return err
	}

	if err := validateNonEmptyStringField(c.ImapHost, "ImapHost must not be empty, set to host:port of the imap server"); err != nil {
		return err
	}

	if err := validateNonEmptyStringField(c.Folder, "Folder must not be empty, set to the folder to scan"); err != nil {
		return err
	}

	if err := validateNonEmptyStringField(c.SpamFolder, "SpamFolder must not be empty, set to the folder spam is moved to"); err != nil {
		return err
	}

	if c.ScanLimit < MinScanLimit || c.ScanLimit > MaxScanLimit {
		return fmt.Errorf("ScanLimit must be between %d and %d", MinScanLimit, MaxScanLimit)
	}

	if c.Threshold <= 0 || c.Threshold >= 1 {
		return errors.New("Threshold must be between 0 and 1 (exclusive)")
	}

	if _, ok := domain.ParseVerdict(c.UnavailableVerdict); !ok {
		return fmt.Errorf("UnavailableVerdict must be %q or %q", domain.Safe, domain.Spam)
	}

	if c.ConnectTimeout <= 0 || c.CommandTimeout <= 0 {
		return errors.New("ConnectTimeout and CommandTimeout must be positive")
	}

	spamassassinSet := len(strings.TrimSpace(c.SpamassassinHost)) > 0
	rspamdSet := len(strings.TrimSpace(c.RspamdController)) > 0
	if rspamdSet && spamassassinSet {
		return fmt.Errorf("SpamassassinHost and RspamdController cannot be set at the same time")
	}

	if rspamdSet {
		if err := validateNonEmptyStringField(c.RspamdPassword, "RspamdPassword must be set if RspamdController is set"); err != nil {
			return err
		}
	}

	return nil
}

func validateNonEmptyStringField(field string, err string) error {
	if len(strings.TrimSpace(field)) == 0 {
		return errors.New(err)
	}

	return nil
}
