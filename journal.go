// Package journal is the top level facade over the VibeCircle Journal
// content pipeline: it wires the upstream content client, the local
// snapshot store, the normalization service, and the HTTP surface from a
// single Config.
package journal

import (
	"context"
	"fmt"
	"net/http"
	"strings"

	repocache "github.com/goliatone/go-repository-cache/cache"
	"github.com/uptrace/bun"

	"github.com/vibecircle/journal/admin"
	"github.com/vibecircle/journal/contentapi"
	"github.com/vibecircle/journal/internal/logging"
	"github.com/vibecircle/journal/internal/logging/gologger"
	"github.com/vibecircle/journal/pkg/interfaces"
	"github.com/vibecircle/journal/posts"
	"github.com/vibecircle/journal/routes"
	"github.com/vibecircle/journal/store"
)

// PostService exports the read service contract for consumers of the
// journal package.
type PostService = posts.Service

// Post exports the canonical post view model.
type Post = posts.Post

// Author exports the author view model.
type Author = posts.Author

// Module is the top level journal runtime facade.
type Module struct {
	cfg      Config
	provider interfaces.LoggerProvider

	reader   *contentapi.Client
	writer   *contentapi.WriteClient
	snapshot posts.Snapshot
	db       *bun.DB

	service   *posts.Service
	publisher *admin.Publisher
	api       *admin.API
	links     *routes.Links
}

// New constructs a journal module from the provided configuration.
func New(ctx context.Context, cfg Config) (*Module, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	m := &Module{cfg: cfg}
	if err := m.initLogging(); err != nil {
		return nil, err
	}
	if err := m.initContent(); err != nil {
		return nil, err
	}
	if err := m.initSnapshot(ctx); err != nil {
		return nil, err
	}

	m.service = posts.NewService(m.reader,
		posts.WithSnapshot(m.snapshot),
		posts.WithServiceLogger(logging.PostsLogger(m.provider)),
	)
	m.links = routes.New(cfg.Site.BaseURL)

	apiOpts := []admin.APIOption{
		admin.WithBasePath(cfg.Admin.BasePath),
		admin.WithReadService(m.service),
		admin.WithAPILogger(logging.AdminLogger(m.provider)),
	}
	if cfg.Admin.Enabled {
		apiOpts = append(apiOpts,
			admin.WithSecret(cfg.Admin.Secret),
			admin.WithPublisher(m.publisher),
		)
	}
	m.api = admin.NewAPI(apiOpts...)

	return m, nil
}

func (m *Module) initLogging() error {
	switch strings.ToLower(strings.TrimSpace(m.cfg.Logging.Provider)) {
	case "", "noop":
		return nil
	case "gologger", "console":
		provider, err := gologger.NewProvider(gologger.Config{
			Level:     m.cfg.Logging.Level,
			Format:    "console",
			AddSource: m.cfg.Logging.AddSource,
			Focus:     m.cfg.Logging.Focus,
		})
		if err != nil {
			return err
		}
		m.provider = provider
		return nil
	default:
		return fmt.Errorf("journal: unsupported logging provider %q", m.cfg.Logging.Provider)
	}
}

func (m *Module) initContent() error {
	clientCfg := contentapi.Config{
		BaseURL:    m.cfg.Content.BaseURL,
		ProjectID:  m.cfg.Content.ProjectID,
		Dataset:    m.cfg.Content.Dataset,
		APIVersion: m.cfg.Content.APIVersion,
		Token:      m.cfg.Content.Token,
		UseCDN:     m.cfg.Content.UseCDN,
	}

	reader, err := contentapi.New(clientCfg, contentapi.WithLogger(logging.ClientLogger(m.provider)))
	if err != nil {
		return err
	}
	m.reader = reader

	// The write path only needs a token; Admin.Enabled gates the HTTP
	// endpoints, not the CLI tooling built on the publisher.
	if clientCfg.Token == "" {
		return nil
	}
	writer, err := contentapi.NewWriter(clientCfg, contentapi.WithLogger(logging.ClientLogger(m.provider)))
	if err != nil {
		return err
	}
	m.writer = writer
	m.publisher = admin.NewPublisher(writer, admin.WithPublisherLogger(logging.AdminLogger(m.provider)))
	return nil
}

func (m *Module) initSnapshot(ctx context.Context) error {
	switch strings.ToLower(strings.TrimSpace(m.cfg.Store.Driver)) {
	case "memory":
		m.snapshot = store.NewMemoryStore()
		return nil
	case store.DriverSQLite, store.DriverPostgres, "":
		db, err := store.Open(m.cfg.Store.Driver, m.cfg.Store.DSN)
		if err != nil {
			return err
		}
		if err := store.EnsureSchema(ctx, db); err != nil {
			_ = db.Close()
			return err
		}
		m.db = db

		if !m.cfg.Store.Cache {
			m.snapshot = store.NewBunStore(db)
			return nil
		}
		cacheCfg := repocache.DefaultConfig()
		if m.cfg.Store.CacheTTL > 0 {
			cacheCfg.TTL = m.cfg.Store.CacheTTL
		}
		cacheSvc, err := repocache.NewCacheService(cacheCfg)
		if err != nil {
			_ = db.Close()
			return err
		}
		m.snapshot = store.NewBunStoreWithCache(db, cacheSvc, repocache.NewDefaultKeySerializer())
		return nil
	default:
		return fmt.Errorf("journal: unsupported store driver %q", m.cfg.Store.Driver)
	}
}

// Posts returns the read service.
func (m *Module) Posts() *PostService {
	return m.service
}

// Snapshot returns the local snapshot store.
func (m *Module) Snapshot() posts.Snapshot {
	return m.snapshot
}

// Publisher returns the write-path publisher, or nil when admin endpoints
// are disabled.
func (m *Module) Publisher() *admin.Publisher {
	return m.publisher
}

// Migrator builds a legacy-body migrator, or nil when admin endpoints are
// disabled.
func (m *Module) Migrator() *admin.Migrator {
	if m.writer == nil {
		return nil
	}
	return admin.NewMigrator(m.reader, m.writer, logging.AdminLogger(m.provider))
}

// Importer builds a markdown directory importer, or nil when admin
// endpoints are disabled.
func (m *Module) Importer() *admin.Importer {
	if m.publisher == nil {
		return nil
	}
	return admin.NewImporter(m.publisher, logging.AdminLogger(m.provider))
}

// Links returns the public URL builder.
func (m *Module) Links() *routes.Links {
	return m.links
}

// Handler returns the HTTP handler serving the read and admin endpoints.
func (m *Module) Handler() (http.Handler, error) {
	mux := http.NewServeMux()
	if err := m.api.Register(mux); err != nil {
		return nil, err
	}
	return mux, nil
}

// Close releases the snapshot database connection when one is open.
func (m *Module) Close() error {
	if m.db != nil {
		return m.db.Close()
	}
	return nil
}
