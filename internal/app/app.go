package app

import (
	"context"
	"fmt"
	"log"

	"dev-journal/internal/assistant"
	"dev-journal/internal/autosave"
	"dev-journal/internal/config"
	"dev-journal/internal/database"
	"dev-journal/internal/ghost"
	"dev-journal/internal/journal"
	"dev-journal/internal/llm"
	"dev-journal/internal/metrics"
	"dev-journal/internal/storage"
)

// Options are the surface-specific hooks used when building an App.
type Options struct {
	// IsDark is the environment's dark-appearance signal used for the default theme.
	IsDark storage.DarkDetector
	// OnStatus receives autosave indicator changes.
	OnStatus func(autosave.Status)
}

// App holds the application's dependencies.
type App struct {
	cfg          *config.Config
	db           *database.DB
	store        *storage.Adapter
	autosave     *autosave.Controller
	assistant    *assistant.Assistant
	metricsStore *metrics.Store
	ghostClient  ghost.Client
	llmCloser    llm.Closer
	session      *Session
}

// New wires storage, autosave, the assistant and a session from cfg and loads the
// saved week.
func New(ctx context.Context, cfg *config.Config, opts Options) (*App, error) {
	a := &App{cfg: cfg}

	var kv storage.KV
	switch cfg.Store {
	case config.StoreFile:
		fs, err := storage.NewFileStore(cfg.DataDir)
		if err != nil {
			return nil, fmt.Errorf("failed to open file store: %w", err)
		}
		kv = fs
	default:
		db, err := database.NewDB(cfg.DBPath)
		if err != nil {
			return nil, fmt.Errorf("failed to open database: %w", err)
		}
		a.db = db
		a.metricsStore = metrics.NewStore(db.SQL)
		kv = database.NewKVStore(db.SQL)
	}
	a.store = storage.NewAdapter(kv, opts.IsDark)

	textGen, closer, err := llm.NewFromConfig(ctx, cfg)
	if err != nil {
		a.closeDB()
		return nil, fmt.Errorf("failed to create text generator: %w", err)
	}
	a.llmCloser = closer
	// A nil *metrics.Store discards records.
	var recorder assistant.MetricsRecorder
	if a.metricsStore != nil {
		recorder = a.metricsStore
	}
	a.assistant = assistant.New(textGen, recorder)

	if cfg.GhostURL != "" && cfg.GhostAdminKey != "" {
		a.ghostClient = ghost.NewClient(cfg)
	}

	a.autosave = autosave.New(a.store, autosave.Options{OnStatus: opts.OnStatus})
	a.session = NewSession(a.store.LoadWeek(ctx), a.autosave, a.assistant)
	return a, nil
}

// Parts are prebuilt dependencies for NewWithParts.
type Parts struct {
	Config    *config.Config
	Store     *storage.Adapter
	Autosave  *autosave.Controller
	Assistant *assistant.Assistant
	Metrics   *metrics.Store
	Ghost     ghost.Client
	Week      journal.Week
}

// NewWithParts assembles an App without opening any database or provider.
func NewWithParts(p Parts) *App {
	return &App{
		cfg:          p.Config,
		store:        p.Store,
		autosave:     p.Autosave,
		assistant:    p.Assistant,
		metricsStore: p.Metrics,
		ghostClient:  p.Ghost,
		llmCloser:    noopCloser{},
		session:      NewSession(p.Week, p.Autosave, p.Assistant),
	}
}

func (a *App) Session() *Session               { return a.session }
func (a *App) Store() *storage.Adapter         { return a.store }
func (a *App) Autosave() *autosave.Controller  { return a.autosave }
func (a *App) Assistant() *assistant.Assistant { return a.assistant }
func (a *App) Metrics() *metrics.Store         { return a.metricsStore }
func (a *App) Config() *config.Config          { return a.cfg }

// SaveNow writes the current week immediately. One-shot commands use it instead of
// waiting for the autosave interval.
func (a *App) SaveNow(ctx context.Context) error {
	return a.store.SaveWeek(ctx, a.session.Week())
}

// Close tears the app down. A change still waiting for autosave is discarded unless
// FlushOnExit is configured.
func (a *App) Close(ctx context.Context) error {
	if a.cfg != nil && a.cfg.FlushOnExit {
		if _, err := a.autosave.Flush(ctx); err != nil {
			log.Printf("Warning: failed to flush pending changes: %v", err)
		}
	}
	a.autosave.Close()
	a.session.Close()
	if err := a.llmCloser.Close(); err != nil {
		log.Printf("Warning: failed to close text generator: %v", err)
	}
	return a.closeDB()
}

func (a *App) closeDB() error {
	if a.db == nil {
		return nil
	}
	return a.db.Close()
}

type noopCloser struct{}

func (noopCloser) Close() error { return nil }
