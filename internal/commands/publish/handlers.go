package publishcmd

import (
	"context"

	command "github.com/goliatone/go-command"

	"github.com/vibecircle/journal/internal/commands"
	"github.com/vibecircle/journal/internal/logging"
	"github.com/vibecircle/journal/pkg/interfaces"
)

const (
	importOperation  = "publish.import_directory"
	migrateOperation = "publish.migrate_legacy"
)

var (
	_ command.Commander[ImportDirectoryCommand] = (*ImportDirectoryHandler)(nil)
	_ command.Commander[MigrateLegacyCommand]   = (*MigrateLegacyHandler)(nil)
)

// ImportReport summarizes one markdown import run.
type ImportReport struct {
	Imported []string
	Skipped  []string
	Errors   []string
}

// DirectoryImporter publishes markdown post files from a directory.
type DirectoryImporter interface {
	ImportDirectory(ctx context.Context, dir string, dryRun bool) (*ImportReport, error)
}

// ImportDirectoryHandler runs markdown imports through the shared command
// foundation.
type ImportDirectoryHandler struct {
	inner *commands.Handler[ImportDirectoryCommand]
}

// NewImportDirectoryHandler binds a handler to the supplied importer.
func NewImportDirectoryHandler(importer DirectoryImporter, logger interfaces.Logger, opts ...commands.HandlerOption[ImportDirectoryCommand]) *ImportDirectoryHandler {
	baseLogger := logger
	if baseLogger == nil {
		baseLogger = logging.NoOp()
	}

	exec := func(ctx context.Context, msg ImportDirectoryCommand) error {
		report, err := importer.ImportDirectory(ctx, msg.Directory, msg.DryRun)
		if err != nil {
			return err
		}
		if report != nil {
			logging.WithFields(baseLogger, map[string]any{
				"imported_count": len(report.Imported),
				"skipped_count":  len(report.Skipped),
				"error_count":    len(report.Errors),
				"dry_run":        msg.DryRun,
			}).Info("publish.import_directory.completed")
		}
		return nil
	}

	handlerOpts := []commands.HandlerOption[ImportDirectoryCommand]{
		commands.WithLogger[ImportDirectoryCommand](baseLogger),
		commands.WithOperation[ImportDirectoryCommand](importOperation),
		commands.WithMessageFields(func(msg ImportDirectoryCommand) map[string]any {
			return map[string]any{"directory": msg.Directory}
		}),
	}
	handlerOpts = append(handlerOpts, opts...)

	return &ImportDirectoryHandler{inner: commands.NewHandler(exec, handlerOpts...)}
}

// Execute implements command.Commander.
func (h *ImportDirectoryHandler) Execute(ctx context.Context, msg ImportDirectoryCommand) error {
	return h.inner.Execute(ctx, msg)
}

// MigrateReport summarizes one legacy body migration run.
type MigrateReport struct {
	Migrated int
	Skipped  int
	DryRun   bool
}

// Migrator rewrites legacy plain-text bodies into structured content.
type Migrator interface {
	MigrateLegacy(ctx context.Context, dryRun bool) (*MigrateReport, error)
}

// MigrateLegacyHandler runs legacy migrations through the shared command
// foundation.
type MigrateLegacyHandler struct {
	inner *commands.Handler[MigrateLegacyCommand]
}

// NewMigrateLegacyHandler binds a handler to the supplied migrator.
func NewMigrateLegacyHandler(migrator Migrator, logger interfaces.Logger, opts ...commands.HandlerOption[MigrateLegacyCommand]) *MigrateLegacyHandler {
	baseLogger := logger
	if baseLogger == nil {
		baseLogger = logging.NoOp()
	}

	exec := func(ctx context.Context, msg MigrateLegacyCommand) error {
		report, err := migrator.MigrateLegacy(ctx, msg.DryRun)
		if err != nil {
			return err
		}
		if report != nil {
			logging.WithFields(baseLogger, map[string]any{
				"migrated_count": report.Migrated,
				"skipped_count":  report.Skipped,
				"dry_run":        report.DryRun,
			}).Info("publish.migrate_legacy.completed")
		}
		return nil
	}

	handlerOpts := []commands.HandlerOption[MigrateLegacyCommand]{
		commands.WithLogger[MigrateLegacyCommand](baseLogger),
		commands.WithOperation[MigrateLegacyCommand](migrateOperation),
	}
	handlerOpts = append(handlerOpts, opts...)

	return &MigrateLegacyHandler{inner: commands.NewHandler(exec, handlerOpts...)}
}

// Execute implements command.Commander.
func (h *MigrateLegacyHandler) Execute(ctx context.Context, msg MigrateLegacyCommand) error {
	return h.inner.Execute(ctx, msg)
}
