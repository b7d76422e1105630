// Package importer turns bank statement exports into payments.
package importer

import (
	"errors"
	"fmt"
	"io"
	"io/fs"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/cleared-dev/payrecon/internal/model"
)

// Parser reads one bank's CSV export and returns its incoming credits as
// payments. Debits and other outflows are dropped.
type Parser interface {
	Parse(r io.Reader) ([]model.Payment, error)
	// Format is the name users pass to import --format.
	Format() string
}

// Registry maps export format names to parsers. Names are case-insensitive.
type Registry struct {
	parsers map[string]Parser
}

// InboxFile is a bank export waiting in the payments inbox.
type InboxFile struct {
	Name string
	Path string
	Size int64
}

// NewRegistry creates a registry with no formats.
func NewRegistry() *Registry {
	return &Registry{parsers: make(map[string]Parser)}
}

// Register makes p available under its format name. Registering the same
// format twice is a programming error and panics.
func (r *Registry) Register(p Parser) {
	format := strings.ToLower(p.Format())
	if _, taken := r.parsers[format]; taken {
		panic(fmt.Sprintf("importer: bank format %q registered twice", format))
	}
	r.parsers[format] = p
}

// Lookup returns the parser for a bank export format.
func (r *Registry) Lookup(format string) (Parser, error) {
	p, ok := r.parsers[strings.ToLower(strings.TrimSpace(format))]
	if !ok {
		return nil, fmt.Errorf("unknown bank export format %q (supported: %s)", format, strings.Join(r.Formats(), ", "))
	}
	return p, nil
}

// Formats lists the registered format names in sorted order.
func (r *Registry) Formats() []string {
	formats := make([]string, 0, len(r.parsers))
	for f := range r.parsers {
		formats = append(formats, f)
	}
	sort.Strings(formats)
	return formats
}

// DefaultRegistry returns the bank formats payrecon ships with.
func DefaultRegistry() *Registry {
	r := NewRegistry()
	r.Register(&ChaseParser{})
	return r
}

// ProcessedDir is the inbox subdirectory that receives imported files.
const ProcessedDir = "processed"

// ParseFile parses the file at path with p.
func ParseFile(p Parser, path string) ([]model.Payment, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("opening %s: %w", path, err)
	}
	defer f.Close()

	payments, err := p.Parse(f)
	if err != nil {
		return nil, fmt.Errorf("parsing %s: %w", path, err)
	}
	return payments, nil
}

// Scan returns CSV files directly inside inbox.
func Scan(inbox string) ([]InboxFile, error) {
	entries, err := os.ReadDir(inbox)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil, nil
		}
		return nil, fmt.Errorf("reading inbox: %w", err)
	}

	var files []InboxFile
	for _, e := range entries {
		if e.IsDir() {
			continue
		}
		if !strings.HasSuffix(strings.ToLower(e.Name()), ".csv") {
			continue
		}
		info, err := e.Info()
		if err != nil {
			return nil, fmt.Errorf("stat %s: %w", e.Name(), err)
		}
		files = append(files, InboxFile{
			Name: e.Name(),
			Path: filepath.Join(inbox, e.Name()),
			Size: info.Size(),
		})
	}
	return files, nil
}

// MarkProcessed moves a file from inbox to inbox/processed.
func MarkProcessed(inbox, fileName string) error {
	src := filepath.Join(inbox, fileName)
	dstDir := filepath.Join(inbox, ProcessedDir)

	if err := os.MkdirAll(dstDir, 0o755); err != nil {
		return fmt.Errorf("creating processed dir: %w", err)
	}

	dst := filepath.Join(dstDir, fileName)
	if err := os.Rename(src, dst); err != nil {
		return fmt.Errorf("moving %s to processed: %w", fileName, err)
	}
	return nil
}
