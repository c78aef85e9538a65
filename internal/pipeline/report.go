package pipeline

import (
	"time"

	"tourismfx/internal/exporter"
	"tourismfx/internal/normalize"
	"tourismfx/pkg/contracts/domain"
)

// FileIssue records why a raw file was skipped.
type FileIssue struct {
	File   string `json:"file"`
	Reason string `json:"reason"`
	Error  string `json:"error"`
}

// DomainReport summarizes the run of one domain.
type DomainReport struct {
	Domain     domain.Domain        `json:"domain"`
	Files      int                  `json:"files"`
	Processed  int                  `json:"processed"`
	Skipped    []FileIssue          `json:"skipped,omitempty"`
	Written    bool                 `json:"written"`
	OutputPath string               `json:"output_path,omitempty"`
	Rows       int                  `json:"rows"`
	Columns    int                  `json:"columns"`
	FirstDate  string               `json:"first_date,omitempty"`
	LastDate   string               `json:"last_date,omitempty"`
	Merge      normalize.MergeStats `json:"merge"`
	Unmapped   []string             `json:"unmapped,omitempty"`
	Mirrored   int                  `json:"mirrored,omitempty"`
	Warnings   []string             `json:"warnings,omitempty"`
	Err        error                `json:"-"`
	Duration   time.Duration        `json:"duration"`
}

// Failed reports whether the domain hit an error that prevented output.
func (r DomainReport) Failed() bool { return r.Err != nil }

// Report summarizes a pipeline run.
type Report struct {
	TraceID   string                    `json:"trace_id"`
	StartedAt time.Time                 `json:"started_at"`
	Duration  time.Duration             `json:"duration"`
	Organized int                       `json:"organized"`
	Domains   []DomainReport            `json:"domains"`
	Columnar  []exporter.ColumnarResult `json:"-"`
}

// Failed reports whether any domain or columnar export failed.
func (r *Report) Failed() bool {
	for _, d := range r.Domains {
		if d.Failed() {
			return true
		}
	}
	for _, c := range r.Columnar {
		if c.Err != nil {
			return true
		}
	}
	return false
}

// Domain returns the report of d.
func (r *Report) Domain(d domain.Domain) (DomainReport, bool) {
	for _, dr := range r.Domains {
		if dr.Domain == d {
			return dr, true
		}
	}
	return DomainReport{}, false
}
