package files

import (
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"time"
)

// FileInfo represents information about a discovered file
type FileInfo struct {
	Path    string
	Name    string
	Size    int64
	ModTime time.Time
}

// Extensions of raw spreadsheet files. Legacy .xls workbooks are listed so
// they can be organized and reported, even though they cannot be parsed.
var dataExtensions = map[string]bool{
	".csv":  true,
	".xls":  true,
	".xlsx": true,
	".xlsm": true,
}

// IsDataFile reports whether name looks like a raw spreadsheet.
func IsDataFile(name string) bool {
	if strings.HasPrefix(name, ".") || strings.HasPrefix(name, "~$") {
		return false
	}
	return dataExtensions[strings.ToLower(filepath.Ext(name))]
}

// Discovery provides file discovery operations
type Discovery struct {
	basePath string
}

// NewDiscovery creates a new file discovery instance
func NewDiscovery(basePath string) *Discovery {
	return &Discovery{basePath: basePath}
}

// FindDataFiles lists the raw spreadsheets of dir in lexicographic order of
// file name. Processing order decides which file wins a duplicate month, so
// it must not depend on modification times.
func (d *Discovery) FindDataFiles(dir string) ([]FileInfo, error) {
	fullPath := d.resolve(dir)

	entries, err := os.ReadDir(fullPath)
	if err != nil {
		return nil, fmt.Errorf("failed to read directory %s: %w", fullPath, err)
	}

	var files []FileInfo
	for _, entry := range entries {
		if entry.IsDir() || !IsDataFile(entry.Name()) {
			continue
		}
		info, err := entry.Info()
		if err != nil {
			continue
		}
		files = append(files, FileInfo{
			Path:    filepath.Join(fullPath, entry.Name()),
			Name:    entry.Name(),
			Size:    info.Size(),
			ModTime: info.ModTime(),
		})
	}

	sort.Slice(files, func(i, j int) bool {
		return files[i].Name < files[j].Name
	})
	return files, nil
}

// Stat describes a single file, reporting ok=false when it does not exist.
func (d *Discovery) Stat(path string) (FileInfo, bool, error) {
	fullPath := d.resolve(path)
	info, err := os.Stat(fullPath)
	if os.IsNotExist(err) {
		return FileInfo{}, false, nil
	}
	if err != nil {
		return FileInfo{}, false, err
	}
	return FileInfo{
		Path:    fullPath,
		Name:    info.Name(),
		Size:    info.Size(),
		ModTime: info.ModTime(),
	}, true, nil
}

func (d *Discovery) resolve(path string) string {
	if filepath.IsAbs(path) || d.basePath == "" {
		return path
	}
	return filepath.Join(d.basePath, path)
}
