// SPDX-License-Identifier: GPL-3.0-or-later
package main

import (
	"context"
	"os"
	"os/signal"
	"strings"

	"github.com/CrawX/go-imap-sweeper/classifier"
	"github.com/CrawX/go-imap-sweeper/classifier/model"
	"github.com/CrawX/go-imap-sweeper/classifier/rspamd"
	"github.com/CrawX/go-imap-sweeper/classifier/spamassassin"
	"github.com/CrawX/go-imap-sweeper/config"
	"github.com/CrawX/go-imap-sweeper/domain"
	"github.com/CrawX/go-imap-sweeper/feedback"
	"github.com/CrawX/go-imap-sweeper/imapconnection"
	"github.com/CrawX/go-imap-sweeper/log"
	"github.com/CrawX/go-imap-sweeper/persistence"
	"github.com/CrawX/go-imap-sweeper/reconciler"
	"github.com/CrawX/go-imap-sweeper/session"
	"github.com/CrawX/go-imap-sweeper/ui"

	"github.com/sirupsen/logrus"
	"github.com/spf13/pflag"
)

type learningScorer interface {
	domain.Scorer
	domain.Learner
}

// loadArtifact picks the first configured backend. Any failure leaves the classifier unavailable.
func loadArtifact(ctx context.Context, conf *config.Config, logger *logrus.Logger) (classifier.Artifact, domain.Learner) {
	var (
		scorer learningScorer
		name   string
		err    error
	)

	switch {
	case len(strings.TrimSpace(conf.SpamassassinHost)) > 0:
		name = "spamassassin"
		scorer, err = spamassassin.NewSpamassassin(ctx, conf.SpamassassinHost)
	case len(strings.TrimSpace(conf.RspamdController)) > 0:
		name = "rspamd"
		scorer, err = rspamd.NewRspamd(ctx, conf.RspamdController, conf.RspamdPassword)
	default:
		artifact, err := model.Load(conf.ModelFile)
		if err != nil {
			return classifier.Unavailable{Cause: err}, nil
		}
		logger.WithFields(logrus.Fields{"file": conf.ModelFile, "features": len(artifact.Vectorizer.Vocabulary)}).Info("Loaded local model")
		return classifier.Available{Name: "model", Scorer: artifact}, nil
	}

	if err != nil {
		return classifier.Unavailable{Cause: err}, nil
	}

	logger.WithFields(logrus.Fields{"classifier": name}).Info("Connected to classifier")
	return classifier.Available{Name: name, Scorer: scorer}, scorer
}

func main() {
	configFile := pflag.StringP("config", "c", "config.toml", "path to the toml config file")
	logFile := pflag.String("logfile", "", "write logs to this file instead of stderr")
	pflag.Parse()

	log.InitLogging("info")
	logger := log.Logger(log.LOG_MAIN)

	conf, err := config.ReadConfig(*configFile)
	if err != nil {
		logger.WithField("error", err).Fatal("Could not load config")
	}

	if conf.Loglevel != nil {
		log.SetLogLevel(*conf.Loglevel)
	}

	if len(*logFile) > 0 {
		f, err := os.OpenFile(*logFile, os.O_CREATE|os.O_APPEND|os.O_WRONLY, 0o600)
		if err != nil {
			logger.WithField("error", err).Fatal("Could not open log file")
		}
		defer f.Close()
		log.RedirectOutput(f)
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	p, err := persistence.NewPersistence(conf.Database)
	if err != nil {
		logger.WithField("error", err).Fatal("Could not connect to database")
	}
	defer p.Close()

	artifact, learner := loadArtifact(ctx, conf, logger)

	c, err := classifier.NewClassifier(
		classifier.NewAllowList(conf.TrustedSenders, conf.TrustedKeywords),
		artifact,
		classifier.Threshold(conf.Threshold),
		classifier.UnavailableVerdict(conf.Verdict()),
	)
	if err != nil {
		logger.WithField("error", err).Fatal("Could not create classifier")
	}

	configs := []reconciler.ConfigFunc{reconciler.WithHistory(p)}
	if conf.DryRun {
		logger.Warn("Not moving or deleting mails due to dry-run")
		configs = append(configs, reconciler.DryRun())
	}
	if conf.ScanBody {
		configs = append(configs, reconciler.ScanBody())
	}
	if conf.UnseenOnly {
		configs = append(configs, reconciler.UnseenOnly())
	}
	if conf.PreferMove {
		configs = append(configs, reconciler.PreferMove())
	}

	connector := imapconnection.NewConnector(conf.ImapHost, conf.ConnectTimeout, conf.CommandTimeout)
	rec, err := reconciler.NewReconciler(connector, c, configs...)
	if err != nil {
		logger.WithField("error", err).Fatal("Could not create reconciler")
	}

	if learner != nil {
		worker := feedback.NewWorker(p, &classifier.GoRoutineLearner{Learner: learner}, conf.FeedbackInterval)
		go worker.Run(ctx)
	} else {
		logger.Debug("No learning classifier configured, feedback is only recorded")
	}

	s := session.NewSession(connector, rec, p)
	app := ui.NewUI(s, ui.Settings{
		User:       conf.User,
		Folder:     conf.Folder,
		SpamFolder: conf.SpamFolder,
		ScanLimit:  conf.ScanLimit,
		MinLimit:   config.MinScanLimit,
		MaxLimit:   config.MaxScanLimit,
	}, os.Stdout)

	err = app.Run(ctx)
	if err != nil {
		logger.WithField("error", err).Error("Interactive session ended unexpectedly")
	}
}
