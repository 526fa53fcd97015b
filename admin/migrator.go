package admin

import (
	"context"
	"fmt"

	"github.com/vibecircle/journal/contentapi"
	publishcmd "github.com/vibecircle/journal/internal/commands/publish"
	"github.com/vibecircle/journal/internal/logging"
	"github.com/vibecircle/journal/pkg/interfaces"
	"github.com/vibecircle/journal/richtext"
)

// Migrator rewrites legacy plain-text post bodies into structured rich
// content, in place, through patch mutations. Already-structured posts are
// never touched.
type Migrator struct {
	reader *contentapi.Client
	writer *contentapi.WriteClient
	logger interfaces.Logger
}

// NewMigrator builds a migrator over the given clients.
func NewMigrator(reader *contentapi.Client, writer *contentapi.WriteClient, logger interfaces.Logger) *Migrator {
	if logger == nil {
		logger = logging.NoOp()
	}
	return &Migrator{reader: reader, writer: writer, logger: logger}
}

// MigrateLegacy converts every legacy body found upstream. With dryRun set
// it only reports what would change.
func (m *Migrator) MigrateLegacy(ctx context.Context, dryRun bool) (*publishcmd.MigrateReport, error) {
	docs, err := m.reader.Posts(ctx)
	if err != nil {
		return nil, fmt.Errorf("admin: load posts for migration: %w", err)
	}

	report := &publishcmd.MigrateReport{DryRun: dryRun}
	for _, doc := range docs {
		if doc.Body.IsStructured() || doc.Body.Legacy == "" {
			report.Skipped++
			continue
		}
		if doc.ID == "" {
			m.logger.Warn("legacy post without id skipped", "slug", doc.Slug)
			report.Skipped++
			continue
		}

		nodes := richtext.ParseLegacy(doc.Body.Legacy)
		if len(nodes) == 0 {
			report.Skipped++
			continue
		}

		if !dryRun {
			values, err := nodesToValues(nodes)
			if err != nil {
				return nil, err
			}
			if err := m.writer.Patch(ctx, doc.ID, map[string]any{"body": values}); err != nil {
				return nil, fmt.Errorf("admin: migrate %q: %w", doc.Slug, err)
			}
		}
		m.logger.Info("legacy body migrated", "slug", doc.Slug, "blocks", len(nodes), "dry_run", dryRun)
		report.Migrated++
	}
	return report, nil
}
