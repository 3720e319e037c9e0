package syncer

import (
	"context"
	"crypto/md5"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"go.uber.org/zap"

	"github.com/dowe-nwn/sheets2da/tda"
)

// Placeholder is the token left in unconfigured source URLs by the setup
// template.
const Placeholder = "YOUR_SHEET_ID"

// Extension is appended to the source name to form the output file name.
const Extension = ".2da"

// Source is one published worksheet tab, synced to one 2DA file named after
// it.
type Source struct {
	Name string
	URL  string
}

// Status classifies the per-source outcome of a sync pass.
type Status int

const (
	StatusUpdated Status = iota
	StatusUnchanged
	StatusSkipped
	StatusFailed
)

func (s Status) String() string {
	switch s {
	case StatusUpdated:
		return "updated"
	case StatusUnchanged:
		return "unchanged"
	case StatusSkipped:
		return "skipped"
	default:
		return "failed"
	}
}

// Outcome records what happened to a single source during a pass.
type Outcome struct {
	Source string
	Status Status
	Err    error
}

// Summary aggregates a full pass. Changed lists the sources whose output
// was (or, on a dry run, would have been) rewritten, in configured order.
type Summary struct {
	Outcomes []Outcome
	Changed  []string
}

// Options is the construction-time configuration for a Syncer. ForcedWidths
// maps source name to column name to minimum column width.
type Options struct {
	OutputDir    string
	Sources      []Source
	ForcedWidths map[string]map[string]int
}

// RunOptions are the per-pass directives. They are parameters rather than
// Syncer state so that concurrent test invocations cannot interfere.
type RunOptions struct {
	// DryRun previews changes without touching the output directory. The
	// checksum baseline still advances: a dry run counts as having seen the
	// content, so the next real pass reports it unchanged. Use Force to
	// re-sync for real after previewing.
	DryRun bool

	// Force discards the persisted state before the pass so that every
	// configured source is treated as changed.
	Force bool
}

// Syncer downloads each configured sheet and rewrites the matching 2DA file
// when the sheet content has changed since the last pass.
type Syncer struct {
	fetcher Fetcher
	store   StateStore
	log     *zap.SugaredLogger
	opts    Options
}

func New(fetcher Fetcher, store StateStore, log *zap.SugaredLogger, opts Options) *Syncer {
	return &Syncer{
		fetcher: fetcher,
		store:   store,
		log:     log,
		opts:    opts,
	}
}

// Run executes one full sync pass over all configured sources, in order.
// Individual source failures are recorded in the summary and never abort
// the pass.
func (s *Syncer) Run(ctx context.Context, run RunOptions) Summary {
	s.log.Infof("sync starting  (dry-run=%v force=%v)", run.DryRun, run.Force)
	s.log.Infof("output directory: %s", s.opts.OutputDir)
	s.log.Infof("sheets to sync: %d", len(s.opts.Sources))

	state := map[string]string{}
	if run.Force {
		s.log.Infof("force mode: discarding sync state")
	} else {
		state = s.store.Load()
	}

	summary := Summary{}

	for _, source := range s.opts.Sources {
		outcome := s.sync(ctx, source, state, run)

		summary.Outcomes = append(summary.Outcomes, outcome)
		if outcome.Status == StatusUpdated {
			summary.Changed = append(summary.Changed, source.Name)
		}
	}

	if err := s.store.Save(state); err != nil {
		s.log.Errorf("unable to save sync state (%v)", err)
	}

	if len(summary.Changed) > 0 {
		s.log.Infof("sync complete: %d file(s) updated: %s", len(summary.Changed), strings.Join(summary.Changed, ", "))
	} else {
		s.log.Infof("sync complete: no changes detected")
	}

	return summary
}

// Watch runs passes forever, sleeping interval between them. The only
// interruption point is the sleep - a pass in flight always completes.
func (s *Syncer) Watch(ctx context.Context, interval time.Duration, run RunOptions) {
	s.log.Infof("watch mode: checking every %v", interval)

	for {
		s.Run(ctx, run)

		// force applies to the first pass only
		run.Force = false

		select {
		case <-ctx.Done():
			return
		case <-time.After(interval):
		}
	}
}

func (s *Syncer) sync(ctx context.Context, source Source, state map[string]string, run RunOptions) Outcome {
	if source.URL == "" || strings.Contains(source.URL, Placeholder) {
		s.log.Infof("%s: skipped - %v", source.Name, ErrNotConfigured)
		return Outcome{Source: source.Name, Status: StatusSkipped, Err: ErrNotConfigured}
	}

	s.log.Debugf("checking %s%s ...", source.Name, Extension)

	text, err := s.fetcher.Fetch(ctx, source.URL)
	if err != nil {
		s.log.Errorf("%s: fetch failed (%v)", source.Name, err)
		return Outcome{Source: source.Name, Status: StatusFailed, Err: err}
	}

	sum := checksum(text)
	if state[source.Name] == sum {
		s.log.Infof("%s%s: unchanged (skipped)", source.Name, Extension)
		return Outcome{Source: source.Name, Status: StatusUnchanged}
	}

	table, err := tda.Convert(text, source.Name, tda.Options{
		ForcedWidths: s.opts.ForcedWidths[source.Name],
	})
	if err == nil && table == "" {
		err = fmt.Errorf("conversion produced empty output")
	}
	if err != nil {
		s.log.Errorf("%s: conversion failed (%v)", source.Name, err)
		return Outcome{Source: source.Name, Status: StatusFailed, Err: err}
	}

	file := filepath.Join(s.opts.OutputDir, source.Name+Extension)

	if run.DryRun {
		s.preview(file, table)
	} else if err := s.write(file, table); err != nil {
		s.log.Errorf("%s: write failed (%v)", source.Name, err)
		return Outcome{Source: source.Name, Status: StatusFailed, Err: err}
	} else {
		s.log.Infof("updated %s (%d lines)", file, strings.Count(table, "\n"))
	}

	state[source.Name] = sum

	return Outcome{Source: source.Name, Status: StatusUpdated}
}

// preview logs the first few lines of the table that a real pass would have
// written.
func (s *Syncer) preview(file string, table string) {
	s.log.Infof("dry run: would write %s", file)

	lines := strings.Split(strings.TrimRight(table, "\n"), "\n")
	if len(lines) > 10 {
		lines = lines[:10]
	}

	for _, line := range lines {
		s.log.Infof("| %s", line)
	}
}

// write lands the table at file via a sibling temp file and an atomic
// rename, so that a reader never observes a partially written 2DA.
func (s *Syncer) write(file string, table string) error {
	dir := filepath.Dir(file)
	if err := os.MkdirAll(dir, 0755); err != nil {
		return err
	}

	tmp, err := os.CreateTemp(dir, filepath.Base(file)+"-*")
	if err != nil {
		return err
	}

	if _, err := tmp.WriteString(table); err != nil {
		tmp.Close()
		os.Remove(tmp.Name())
		return err
	}

	if err := tmp.Close(); err != nil {
		os.Remove(tmp.Name())
		return err
	}

	return os.Rename(tmp.Name(), file)
}

// checksum digests the raw fetched text, before any parsing. The digest
// only gates re-conversion - it is never a security boundary.
func checksum(text string) string {
	return fmt.Sprintf("%x", md5.Sum([]byte(text)))
}
