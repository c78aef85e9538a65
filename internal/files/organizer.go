package files

import (
	"fmt"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"tourismfx/pkg/contracts/domain"
)

// Filename keywords, checked in this order: inbound, exchange, outbound.
var (
	inboundKeywords  = []string{"국적별", "입국", "방한"}
	exchangeKeywords = []string{"환율", "ExRate", "MonAvg"}
	outboundKeywords = []string{"Asia", "Europe", "Africa", "Oceania", "America", "국민", "해외"}
)

// Classify picks the domain of a raw file from its name. Pipeline outputs
// (cleaned_*, result_*) are never classified.
func Classify(name string) (domain.Domain, bool) {
	if strings.Contains(name, "cleaned_") || strings.HasPrefix(name, "result_") {
		return "", false
	}
	switch {
	case containsAny(name, inboundKeywords):
		return domain.DomainInbound, true
	case containsAny(name, exchangeKeywords):
		return domain.DomainExchange, true
	case containsAny(name, outboundKeywords):
		return domain.DomainOutbound, true
	}
	return "", false
}

func containsAny(s string, keywords []string) bool {
	for _, k := range keywords {
		if strings.Contains(s, k) {
			return true
		}
	}
	return false
}

// OrganizeResult lists what an Organize call did.
type OrganizeResult struct {
	Moved        map[domain.Domain][]string
	Unclassified []string
	Failed       map[string]error
}

// Count is the number of files moved.
func (r OrganizeResult) Count() int {
	n := 0
	for _, names := range r.Moved {
		n += len(names)
	}
	return n
}

// Organizer sorts files dropped into the raw root into the per-domain
// directories.
type Organizer struct {
	root    string
	targets map[domain.Domain]string
	logger  *slog.Logger
}

// NewOrganizer creates an organizer moving files from root into targets.
func NewOrganizer(root string, targets map[domain.Domain]string, logger *slog.Logger) *Organizer {
	if logger == nil {
		logger = slog.Default()
	}
	return &Organizer{
		root:    root,
		targets: targets,
		logger:  logger.With(slog.String("component", "organizer")),
	}
}

// Organize moves every classifiable data file directly under the root into
// its domain directory. A file already present at the destination is
// replaced. Failures are recorded per file and do not stop the run.
func (o *Organizer) Organize() (OrganizeResult, error) {
	result := OrganizeResult{
		Moved:  make(map[domain.Domain][]string),
		Failed: make(map[string]error),
	}
	for _, dir := range o.targets {
		if err := os.MkdirAll(dir, 0755); err != nil {
			return result, fmt.Errorf("failed to create directory %s: %w", dir, err)
		}
	}

	entries, err := os.ReadDir(o.root)
	if err != nil {
		return result, fmt.Errorf("failed to read directory %s: %w", o.root, err)
	}
	names := make([]string, 0, len(entries))
	for _, e := range entries {
		if !e.IsDir() && IsDataFile(e.Name()) {
			names = append(names, e.Name())
		}
	}
	sort.Strings(names)

	for _, name := range names {
		d, ok := Classify(name)
		target, known := o.targets[d]
		if !ok || !known {
			result.Unclassified = append(result.Unclassified, name)
			continue
		}
		src := filepath.Join(o.root, name)
		dst := filepath.Join(target, name)
		if err := MoveFile(src, dst); err != nil {
			o.logger.Warn("failed to move file",
				slog.String("file", name),
				slog.String("error", err.Error()))
			result.Failed[name] = err
			continue
		}
		o.logger.Info("file organized",
			slog.String("file", name),
			slog.String("domain", d.String()))
		result.Moved[d] = append(result.Moved[d], name)
	}

	if result.Count() == 0 {
		o.logger.Info("no new files to organize")
	}
	return result, nil
}

// MoveFile moves a file from source to destination
func MoveFile(src, dst string) error {
	if err := os.MkdirAll(filepath.Dir(dst), 0755); err != nil {
		return fmt.Errorf("failed to create destination directory: %w", err)
	}

	// Try rename first (atomic if on same filesystem)
	if err := os.Rename(src, dst); err == nil {
		return nil
	}

	// Fall back to copy and delete
	if err := copyFile(src, dst); err != nil {
		return err
	}
	return os.Remove(src)
}

func copyFile(src, dst string) error {
	srcFile, err := os.Open(src)
	if err != nil {
		return fmt.Errorf("failed to open source file: %w", err)
	}
	defer srcFile.Close()

	dstFile, err := os.Create(dst)
	if err != nil {
		return fmt.Errorf("failed to create destination file: %w", err)
	}
	defer dstFile.Close()

	if _, err := io.Copy(dstFile, srcFile); err != nil {
		return fmt.Errorf("failed to copy file content: %w", err)
	}
	return dstFile.Sync()
}
