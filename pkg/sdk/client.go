package notedex

import (
	"context"
	"errors"
	"fmt"
	"time"

	"go.uber.org/zap"

	"github.com/kailas-cloud/notedex/internal/db"
	dbRedis "github.com/kailas-cloud/notedex/internal/db/redis"
	"github.com/kailas-cloud/notedex/internal/domain"
	domnote "github.com/kailas-cloud/notedex/internal/domain/note"
	domws "github.com/kailas-cloud/notedex/internal/domain/workspace"
	noterepo "github.com/kailas-cloud/notedex/internal/repository/note"
	workspacerepo "github.com/kailas-cloud/notedex/internal/repository/workspace"
	noteuc "github.com/kailas-cloud/notedex/internal/usecase/note"
	searchuc "github.com/kailas-cloud/notedex/internal/usecase/search"
	workspaceuc "github.com/kailas-cloud/notedex/internal/usecase/workspace"
)

const defaultReadinessTimeout = 10 * time.Second

// Internal interfaces so tests can substitute the wired services.
type workspaceUseCase interface {
	Create(ctx context.Context, ownerID, name string) (domws.Workspace, error)
	EnsurePersonal(ctx context.Context, userID string) (domws.Workspace, error)
	Get(ctx context.Context, userID, workspaceID string) (domws.Workspace, error)
	NoteCount(ctx context.Context, userID, workspaceID string) (int, error)
	MembershipStatus(ctx context.Context, userID, workspaceID string) (domws.Status, error)
	Invite(ctx context.Context, userID, workspaceID, targetID string) error
	Ban(ctx context.Context, userID, workspaceID, targetID string) error
	Leave(ctx context.Context, userID, workspaceID string) error
	Delete(ctx context.Context, userID, workspaceID string) error
}

type noteUseCase interface {
	Create(
		ctx context.Context, userID, workspaceID string,
		kind domnote.Kind, tags []string, fields []domnote.Field,
	) (domnote.Note, error)
	Get(ctx context.Context, userID, noteID string) (domnote.Note, error)
	Update(ctx context.Context, userID, noteID string, fields []domnote.Field) (domnote.Note, error)
	Delete(ctx context.Context, userID, noteID string) error
	Copy(ctx context.Context, userID, noteID, targetWorkspaceID string) (domnote.Note, error)
}

type searchUseCase interface {
	Search(ctx context.Context, userID string, req *searchuc.Request) ([]searchuc.Result, error)
}

// Client is the notedex SDK entry point.
type Client struct {
	store     db.Store
	wsSvc     workspaceUseCase
	noteSvc   noteUseCase
	searchSvc searchUseCase
	logger    *zap.Logger
}

// New creates a notedex Client and connects to the database.
// The provided context is used for the initial readiness check.
func New(ctx context.Context, opts ...Option) (*Client, error) {
	cfg := &clientConfig{}
	for _, o := range opts {
		o.apply(cfg)
	}
	if cfg.logger == nil {
		cfg.logger = zap.NewNop()
	}

	if len(cfg.addrs) == 0 {
		return nil, errors.New("notedex: database address required (use WithValkey or WithRedis)")
	}

	store, err := createStore(cfg)
	if err != nil {
		return nil, err
	}

	if err := store.WaitForReady(ctx, defaultReadinessTimeout); err != nil {
		store.Close()
		return nil, fmt.Errorf("notedex: database not ready: %w", err)
	}

	return wireClient(ctx, store, cfg)
}

func createStore(cfg *clientConfig) (db.Store, error) {
	switch cfg.driver {
	// Valkey speaks the Redis protocol; one rueidis store serves both.
	case "valkey", "redis":
		s, err := dbRedis.NewStore(dbRedis.Config{
			Addrs:    cfg.addrs,
			Password: cfg.password,
		})
		if err != nil {
			return nil, fmt.Errorf("notedex: create %s store: %w", cfg.driver, err)
		}
		return s, nil
	default:
		return nil, fmt.Errorf("notedex: unknown driver %q", cfg.driver)
	}
}

func wireClient(ctx context.Context, store db.Store, cfg *clientConfig) (*Client, error) {
	wsRepo := workspacerepo.New(store)
	noteRepo := noterepo.New(store)

	if err := noteRepo.EnsureIndex(ctx); err != nil {
		store.Close()
		return nil, fmt.Errorf("notedex: ensure note index: %w", err)
	}

	var emb domain.Embedder = noopEmbedder{}
	if cfg.embedder != nil {
		emb = &embedderAdapter{inner: cfg.embedder}
	}

	wsSvc := workspaceuc.New(wsRepo, noteRepo, cfg.notifier, cfg.logger)
	noteSvc := noteuc.New(noteRepo, wsRepo, emb, cfg.logger)
	searchSvc := searchuc.New(noteRepo, wsRepo, emb)

	return &Client{
		store:     store,
		wsSvc:     wsSvc,
		noteSvc:   noteSvc,
		searchSvc: searchSvc,
		logger:    cfg.logger,
	}, nil
}

// Close releases all resources.
func (c *Client) Close() {
	if c.store != nil {
		c.store.Close()
	}
}

// Ping checks database connectivity.
func (c *Client) Ping(ctx context.Context) error {
	if err := c.store.Ping(ctx); err != nil {
		return fmt.Errorf("ping: %w", err)
	}
	return nil
}

// Workspaces returns the workspace management service.
func (c *Client) Workspaces() *WorkspaceService {
	return &WorkspaceService{svc: c.wsSvc}
}

// Notes returns the note service.
func (c *Client) Notes() *NoteService {
	return &NoteService{svc: c.noteSvc}
}

// Search returns the retrieval service.
func (c *Client) Search() *SearchService {
	return &SearchService{svc: c.searchSvc}
}
