// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package tally

import (
	"bufio"
	"context"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/dustin/go-humanize"

	"github.com/danielhkuo/quickly-vote/models"
)

const reportRule = "-------------------------------------------"

// WriteFinalReport writes the human-readable fixed-width result table
func WriteFinalReport(w io.Writer, snap models.ResultSnapshot) error {
	bw := bufio.NewWriter(w)

	fmt.Fprintln(bw, "===========================================")
	fmt.Fprintln(bw, "          FINAL ELECTION RESULTS")
	fmt.Fprintln(bw, "===========================================")
	fmt.Fprintln(bw)
	fmt.Fprintf(bw, "Closed at: %s\n", snap.ClosedAt.Format(time.DateTime))
	if !snap.OpenedAt.IsZero() {
		fmt.Fprintf(bw, "Voting open for: %s\n", strings.TrimSpace(humanize.RelTime(snap.OpenedAt, snap.ClosedAt, "", "")))
	}
	fmt.Fprintf(bw, "Snapshot: %s\n\n", snap.ID)

	fmt.Fprintf(bw, "Total votes: %s\n", humanize.Comma(int64(snap.TotalVotes)))
	fmt.Fprintf(bw, "Registered voters: %s\n\n", humanize.Comma(int64(snap.RegisteredVoters)))

	fmt.Fprintln(bw, reportRule)
	fmt.Fprintf(bw, "%-35s %5s %6s\n", "Option", "Votes", "%")
	fmt.Fprintln(bw, reportRule)
	for _, opt := range snap.Options {
		fmt.Fprintf(bw, "%-35s %5d %6.2f%%\n", opt.Name, opt.Votes, opt.Percentage)
	}
	fmt.Fprintln(bw, reportRule)

	return bw.Flush()
}

// ReportFile publishes the final report to a file, replacing any previous one
type ReportFile struct {
	Path string
}

func NewReportFile(path string) *ReportFile {
	return &ReportFile{Path: path}
}

func (f *ReportFile) Publish(_ context.Context, snap models.ResultSnapshot) error {
	if dir := filepath.Dir(f.Path); dir != "" {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return fmt.Errorf("failed to create report directory: %w", err)
		}
	}

	file, err := os.Create(f.Path)
	if err != nil {
		return fmt.Errorf("failed to create report file: %w", err)
	}

	if err := WriteFinalReport(file, snap); err != nil {
		file.Close()
		return fmt.Errorf("failed to write report: %w", err)
	}
	if err := file.Sync(); err != nil {
		file.Close()
		return fmt.Errorf("failed to sync report: %w", err)
	}
	return file.Close()
}

func (f *ReportFile) String() string {
	return "report:" + f.Path
}
