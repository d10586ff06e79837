package cmd

import (
	"log/slog"
	"time"

	"github.com/redis/go-redis/v9"
	"gorm.io/gorm"

	wsin "orderflow/internal/adapters/in/ws"
	"orderflow/internal/adapters/out/broadcast"
	"orderflow/internal/adapters/out/collab"
	"orderflow/internal/adapters/out/postgres"
	"orderflow/internal/core/application/usecases/commands"
	"orderflow/internal/core/application/usecases/queries"
	"orderflow/internal/core/ports"
	"orderflow/internal/jobs"
)

const collaboratorTimeout = 5 * time.Second

// CompositionRoot wires adapters into use cases. Handlers are created per
// request shape; shared infrastructure (db, bus, clients) is built once.
type CompositionRoot struct {
	gormDB      *gorm.DB
	uowFactory  postgres.GormUnitOfWorkFactory
	broadcaster ports.Broadcaster
	logger      *slog.Logger

	catalogClient      ports.CatalogClient
	identityClient     ports.IdentityClient
	settlementClient   ports.SettlementClient
	notificationClient ports.NotificationClient
}

// NewCompositionRoot builds the object graph from config and an open
// database handle.
func NewCompositionRoot(config Config, gormDB *gorm.DB, logger *slog.Logger) (*CompositionRoot, error) {
	catalogClient, err := collab.NewHTTPCatalogClient(config.CatalogBaseURL, collaboratorTimeout)
	if err != nil {
		return nil, err
	}
	identityClient, err := collab.NewHTTPIdentityClient(config.IdentityBaseURL, collaboratorTimeout)
	if err != nil {
		return nil, err
	}
	settlementClient, err := collab.NewHTTPSettlementClient(config.SettlementBaseURL, collaboratorTimeout)
	if err != nil {
		return nil, err
	}
	notificationClient, err := collab.NewHTTPNotificationClient(config.NotificationBaseURL, collaboratorTimeout)
	if err != nil {
		return nil, err
	}

	var broadcaster ports.Broadcaster
	if config.RedisAddr != "" {
		broadcaster = broadcast.NewRedisBroadcaster(redis.NewClient(&redis.Options{Addr: config.RedisAddr}))
	} else {
		broadcaster = broadcast.NewInProcessBroadcaster()
	}

	return &CompositionRoot{
		gormDB:             gormDB,
		uowFactory:         *postgres.NewGormUnitOfWorkFactory(gormDB),
		broadcaster:        broadcaster,
		logger:             logger,
		catalogClient:      catalogClient,
		identityClient:     identityClient,
		settlementClient:   settlementClient,
		notificationClient: notificationClient,
	}, nil
}

func (c *CompositionRoot) CreateAddCartItemCommandHandler() commands.AddCartItemCommandHandler {
	var f commands.CartUoWFactory = FuncCartUoWFactory(func() commands.CartUoW {
		return c.uowFactory.Create()
	})
	return commands.NewAddCartItemCommandHandler(f, c.catalogClient)
}

func (c *CompositionRoot) CreateUpdateCartItemCommandHandler() commands.UpdateCartItemCommandHandler {
	var f commands.CartUoWFactory = FuncCartUoWFactory(func() commands.CartUoW {
		return c.uowFactory.Create()
	})
	return commands.NewUpdateCartItemCommandHandler(f)
}

func (c *CompositionRoot) CreateBulkUpdateCartCommandHandler() commands.BulkUpdateCartCommandHandler {
	var f commands.CartUoWFactory = FuncCartUoWFactory(func() commands.CartUoW {
		return c.uowFactory.Create()
	})
	return commands.NewBulkUpdateCartCommandHandler(f)
}

func (c *CompositionRoot) CreateResetCartCommandHandler() commands.ResetCartCommandHandler {
	var f commands.CartUoWFactory = FuncCartUoWFactory(func() commands.CartUoW {
		return c.uowFactory.Create()
	})
	return commands.NewResetCartCommandHandler(f)
}

func (c *CompositionRoot) CreateCheckoutCommandHandler() commands.CheckoutCommandHandler {
	var f commands.CheckoutUoWFactory = FuncCheckoutUoWFactory(func() commands.CheckoutUoW {
		return c.uowFactory.Create()
	})
	return commands.NewCheckoutCommandHandler(f, c.catalogClient, c.identityClient, c.broadcaster, c.logger)
}

func (c *CompositionRoot) CreateUpdateOrderStatusCommandHandler() commands.UpdateOrderStatusCommandHandler {
	var f commands.OrderUoWFactory = FuncOrderUoWFactory(func() commands.OrderUoW {
		return c.uowFactory.Create()
	})
	return commands.NewUpdateOrderStatusCommandHandler(f, c.broadcaster, c.logger)
}

func (c *CompositionRoot) CreateAssignDriverCommandHandler() commands.AssignDriverCommandHandler {
	var f commands.OrderUoWFactory = FuncOrderUoWFactory(func() commands.OrderUoW {
		return c.uowFactory.Create()
	})
	return commands.NewAssignDriverCommandHandler(f)
}

func (c *CompositionRoot) CreateUpdateDriverLocationCommandHandler() commands.UpdateDriverLocationCommandHandler {
	var f commands.OrderUoWFactory = FuncOrderUoWFactory(func() commands.OrderUoW {
		return c.uowFactory.Create()
	})
	return commands.NewUpdateDriverLocationCommandHandler(f, c.broadcaster, c.logger)
}

func (c *CompositionRoot) CreateDispatchOutboxCommandHandler() commands.DispatchOutboxCommandHandler {
	var f commands.OutboxUoWFactory = FuncOutboxUoWFactory(func() commands.OutboxUoW {
		return c.uowFactory.Create()
	})
	return commands.NewDispatchOutboxCommandHandler(f, c.settlementClient, c.notificationClient, c.logger)
}

func (c *CompositionRoot) CreateGetCartQueryHandler() queries.GetCartQueryHandler {
	return queries.NewGetCartQueryHandler(c.gormDB)
}

func (c *CompositionRoot) CreateGetOrderQueryHandler() queries.GetOrderQueryHandler {
	return queries.NewGetOrderQueryHandler(c.createOrderRepository())
}

func (c *CompositionRoot) CreateGetTrackingSnapshotQueryHandler() queries.GetTrackingSnapshotQueryHandler {
	return queries.NewGetTrackingSnapshotQueryHandler(c.createOrderRepository())
}

// CreateTrackingHub builds the WebSocket hub on the configured bus.
func (c *CompositionRoot) CreateTrackingHub() *wsin.Hub {
	return wsin.NewHub(c.broadcaster, c.logger)
}

// CreateTrackingHandler builds the WebSocket endpoint handler.
func (c *CompositionRoot) CreateTrackingHandler(secret []byte, hub *wsin.Hub) (*wsin.Handler, error) {
	gate, err := wsin.NewConnectionGate(secret)
	if err != nil {
		return nil, err
	}
	return wsin.NewHandler(gate, hub, c.createOrderRepository(), c.logger), nil
}

// CreateJobManager builds the background job manager.
func (c *CompositionRoot) CreateJobManager() *jobs.JobManager {
	return jobs.NewJobManager(c.CreateDispatchOutboxCommandHandler(), c.logger)
}

// createOrderRepository builds a read-side repository. Without Begin the
// unit of work reads straight from the pool, which is all queries need.
func (c *CompositionRoot) createOrderRepository() ports.OrderRepository {
	uow := c.uowFactory.Create()
	return uow.OrderRepository()
}

type FuncCartUoWFactory func() commands.CartUoW

func (f FuncCartUoWFactory) Create() commands.CartUoW {
	return f()
}

type FuncOrderUoWFactory func() commands.OrderUoW

func (f FuncOrderUoWFactory) Create() commands.OrderUoW {
	return f()
}

type FuncCheckoutUoWFactory func() commands.CheckoutUoW

func (f FuncCheckoutUoWFactory) Create() commands.CheckoutUoW {
	return f()
}

type FuncOutboxUoWFactory func() commands.OutboxUoW

func (f FuncOutboxUoWFactory) Create() commands.OutboxUoW {
	return f()
}
