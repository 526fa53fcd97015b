package admin

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"

	publishcmd "github.com/vibecircle/journal/internal/commands/publish"
	"github.com/vibecircle/journal/internal/logging"
	"github.com/vibecircle/journal/internal/markdown"
	"github.com/vibecircle/journal/pkg/interfaces"
)

// Importer publishes markdown post files from a local directory. Files are
// processed in name order so repeated runs are deterministic.
type Importer struct {
	publisher *Publisher
	logger    interfaces.Logger
}

// NewImporter builds an importer over the given publisher.
func NewImporter(publisher *Publisher, logger interfaces.Logger) *Importer {
	if logger == nil {
		logger = logging.NoOp()
	}
	return &Importer{publisher: publisher, logger: logger}
}

// ImportDirectory parses and publishes every .md file directly under dir.
// A file that fails to parse is recorded and skipped; a publish failure
// aborts the run.
func (i *Importer) ImportDirectory(ctx context.Context, dir string, dryRun bool) (*publishcmd.ImportReport, error) {
	entries, err := os.ReadDir(dir)
	if err != nil {
		return nil, fmt.Errorf("admin: read import directory: %w", err)
	}

	names := make([]string, 0, len(entries))
	for _, entry := range entries {
		if entry.IsDir() || !strings.HasSuffix(entry.Name(), ".md") {
			continue
		}
		names = append(names, entry.Name())
	}
	sort.Strings(names)

	report := &publishcmd.ImportReport{}
	for _, name := range names {
		path := filepath.Join(dir, name)
		post, err := markdown.LoadPost(path)
		if err != nil {
			i.logger.Warn("import file skipped", "file", name, "error", err)
			report.Skipped = append(report.Skipped, name)
			report.Errors = append(report.Errors, err.Error())
			continue
		}
		if dryRun {
			report.Imported = append(report.Imported, name)
			continue
		}
		id, err := i.publisher.PublishImported(ctx, post)
		if err != nil {
			return report, fmt.Errorf("admin: publish %s: %w", name, err)
		}
		i.logger.Info("markdown post published", "file", name, "id", id)
		report.Imported = append(report.Imported, name)
	}
	return report, nil
}
