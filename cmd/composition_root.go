package cmd

import (
	"log/slog"
	"time"

	rd "github.com/redis/go-redis/v9"
	"gorm.io/gorm"

	inhttp "orderboard/internal/adapters/in/http"
	"orderboard/internal/adapters/out/journal"
	"orderboard/internal/adapters/out/memstore"
	"orderboard/internal/adapters/out/ordersapi"
	"orderboard/internal/adapters/out/redisstream"
	"orderboard/internal/core/application/notify"
	"orderboard/internal/core/application/sync"
	"orderboard/internal/core/application/usecases/commands"
	"orderboard/internal/core/application/usecases/queries"
	"orderboard/internal/jobs"
	"orderboard/internal/pkg/clock"
)

// CompositionRoot wires the board engine together: one store, one notifier,
// one sync engine, and factories for the handlers that sit on top of them.
type CompositionRoot struct {
	config   Config
	logger   *slog.Logger
	store    *memstore.Store
	notifier *notify.Notifier
	engine   *sync.Engine
	clk      clock.Clock
}

// NewCompositionRoot builds the object graph from config. The gorm database
// backs the pending-transition journal.
func NewCompositionRoot(config Config, db *gorm.DB, logger *slog.Logger) (CompositionRoot, error) {
	store := memstore.NewStore()
	notifier := notify.NewNotifier(100)
	clk := clock.NewSystem()

	// every effective store change surfaces on the notifications endpoint;
	// discarded upserts emit nothing
	store.Subscribe(func() {
		notifier.Publish(notify.Notification{
			Kind:       notify.BoardChanged,
			OccurredAt: clk.Now(),
		})
	})

	transitionJournal, err := journal.NewGormTransitionJournal(db)
	if err != nil {
		return CompositionRoot{}, err
	}

	gateway := ordersapi.NewClient(config.OrdersAPIBaseURL, config.VenueID, config.OrdersAPIToken)
	engine := sync.NewEngine(store, gateway, transitionJournal, notifier, clk, logger, sync.Config{})

	return CompositionRoot{
		config:   config,
		logger:   logger,
		store:    store,
		notifier: notifier,
		engine:   engine,
		clk:      clk,
	}, nil
}

// Engine returns the sync engine for startup recovery and the initial pull.
func (c *CompositionRoot) Engine() *sync.Engine {
	return c.engine
}

// Notifier returns the shared notifier.
func (c *CompositionRoot) Notifier() *notify.Notifier {
	return c.notifier
}

func (c *CompositionRoot) CreateProposeTransitionCommandHandler() commands.ProposeTransitionCommandHandler {
	return commands.NewProposeTransitionCommandHandler(c.store, c.engine, c.clk)
}

func (c *CompositionRoot) CreateGetBoardQueryHandler() *queries.GetBoardQueryHandler {
	return queries.NewGetBoardQueryHandler(c.store)
}

func (c *CompositionRoot) CreateGetOrderQueryHandler() queries.GetOrderQueryHandler {
	return queries.NewGetOrderQueryHandler(c.store)
}

// CreateHTTPServer assembles the inbound REST surface.
func (c *CompositionRoot) CreateHTTPServer() *inhttp.Server {
	return inhttp.NewServer(
		c.CreateProposeTransitionCommandHandler(),
		c.CreateGetBoardQueryHandler(),
		c.CreateGetOrderQueryHandler(),
		c.notifier,
	)
}

// CreateJobManager assembles the poll and prune jobs.
func (c *CompositionRoot) CreateJobManager() *jobs.JobManager {
	window := time.Duration(c.config.VisibleWindowMinutes) * time.Minute
	return jobs.NewJobManager(c.engine, c.config.PollSeconds, window, c.logger)
}

// CreateOrderStream returns the Redis push-channel subscriber, or nil when
// no Redis address is configured (the poll job alone keeps the board fresh).
func (c *CompositionRoot) CreateOrderStream() *redisstream.Subscriber {
	if c.config.RedisAddr == "" {
		return nil
	}
	client := rd.NewClient(&rd.Options{Addr: c.config.RedisAddr})
	return redisstream.NewSubscriber(client, c.config.VenueID, c.logger)
}
