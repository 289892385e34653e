// Package audit appends a one-line record of each provisioning run to a
// local log file.
package audit

import (
	"fmt"
	"os"
	"strings"
	"time"
)

// Entry is one provisioning run record
type Entry struct {
	Time         time.Time
	Repository   string
	Organization string
	Category     string
	Region       string
	CodeOwners   []string
	Succeeded    bool
}

// Append writes the entry to the log file at path, creating the file when it
// does not exist.
func Append(path string, entry Entry) error {
	f, err := os.OpenFile(path, os.O_APPEND|os.O_CREATE|os.O_WRONLY, 0644)
	if err != nil {
		return fmt.Errorf("failed to open audit log: %w", err)
	}
	defer func() {
		_ = f.Close() // Ignore close errors
	}()

	outcome := "ok"
	if !entry.Succeeded {
		outcome = "failed"
	}

	ts := entry.Time
	if ts.IsZero() {
		ts = time.Now()
	}

	if _, err := fmt.Fprintf(f, "%s | %s | %s | %s | %s | %s | %s\n",
		ts.Format(time.RFC3339), entry.Repository, entry.Organization,
		entry.Category, entry.Region, strings.Join(entry.CodeOwners, ","), outcome); err != nil {
		return fmt.Errorf("failed to write audit log: %w", err)
	}

	return nil
}
