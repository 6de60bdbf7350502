// SPDX-License-Identifier: GPL-3.0-or-later
package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/CrawX/go-imap-sweeper/domain"
)

func writeConfig(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "config.toml")
	require.NoError(t, os.WriteFile(path, []byte(content), 0600))
	return path
}

func TestReadConfigDefaults(t *testing.T) {
	cfg, err := ReadConfig(writeConfig(t, ``))
	require.NoError(t, err)

	assert.Equal(t, "imap.gmail.com:993", cfg.ImapHost)
	assert.Equal(t, "INBOX", cfg.Folder)
	assert.Equal(t, 50, cfg.ScanLimit)
	assert.Equal(t, 0.40, cfg.Threshold)
	assert.Equal(t, domain.Spam, cfg.Verdict())
	assert.Contains(t, cfg.TrustedSenders, "bkash.com")
	assert.Contains(t, cfg.TrustedSenders, "duet.ac.bd")
	assert.Len(t, cfg.TrustedSenders, 14)
	assert.Contains(t, cfg.TrustedKeywords, "verification code")
	assert.Nil(t, cfg.Loglevel)
}

func TestReadConfigOverrides(t *testing.T) {
	cfg, err := ReadConfig(writeConfig(t, `
ImapHost = "imap.example.org:993"
ScanLimit = 200
Threshold = 0.35
UnavailableVerdict = "safe"
ConnectTimeout = "5s"
TrustedSenders = ["example.org"]
TrustedKeywords = []
Loglevel = "debug"
`))
	require.NoError(t, err)

	assert.Equal(t, "imap.example.org:993", cfg.ImapHost)
	assert.Equal(t, 200, cfg.ScanLimit)
	assert.Equal(t, 0.35, cfg.Threshold)
	assert.Equal(t, domain.Safe, cfg.Verdict())
	assert.Equal(t, 5*time.Second, cfg.ConnectTimeout)
	assert.Equal(t, []string{"example.org"}, cfg.TrustedSenders)
	assert.Empty(t, cfg.TrustedKeywords)
	require.NotNil(t, cfg.Loglevel)
	assert.Equal(t, "debug", *cfg.Loglevel)
}

func TestReadConfigMissingFile(t *testing.T) {
	_, err := ReadConfig(filepath.Join(t.TempDir(), "nope.toml"))
	assert.Error(t, err)
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(c *Config)
		err    string
	}{
		{"ok", func(c *Config) {}, ""},
		{"database", func(c *Config) { c.Database = " " }, "Database name must not be empty, set to a filename for the sqlite database"},
		{"host", func(c *Config) { c.ImapHost = "" }, "ImapHost must not be empty, set to host:port of the imap server"},
		{"folder", func(c *Config) { c.Folder = "" }, "Folder must not be empty, set to the folder to scan"},
		{"spamfolder", func(c *Config) { c.SpamFolder = "" }, "SpamFolder must not be empty, set to the folder spam is moved to"},
		{"limitlow", func(c *Config) { c.ScanLimit = 0 }, "ScanLimit must be between 1 and 500"},
		{"limithigh", func(c *Config) { c.ScanLimit = 501 }, "ScanLimit must be between 1 and 500"},
		{"threshold", func(c *Config) { c.Threshold = 1 }, "Threshold must be between 0 and 1 (exclusive)"},
		{"verdict", func(c *Config) { c.UnavailableVerdict = "unknown" }, `UnavailableVerdict must be "safe" or "spam"`},
		{"timeout", func(c *Config) { c.CommandTimeout = 0 }, "ConnectTimeout and CommandTimeout must be positive"},
		{"bothclassifiers", func(c *Config) { c.SpamassassinHost = "a:783"; c.RspamdController = "http://b" }, "SpamassassinHost and RspamdController cannot be set at the same time"},
		{"rspamdpassword", func(c *Config) { c.RspamdController = "http://b" }, "RspamdPassword must be set if RspamdController is set"},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			cfg := defaults()
			tc.mutate(cfg)
			err := cfg.validate()
			if len(tc.err) == 0 {
				assert.NoError(t, err)
			} else {
				assert.EqualError(t, err, tc.err)
			}
		})
	}
}

func TestHistoricThresholdsAreValid(t *testing.T) {
	for _, th := range HistoricThresholds {
		cfg := defaults()
		cfg.Threshold = th
		assert.NoError(t, cfg.validate())
	}
	assert.Contains(t, HistoricThresholds, DefaultThreshold)
}
