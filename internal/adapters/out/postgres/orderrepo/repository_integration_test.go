package orderrepo_test

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/suite"
	"github.com/testcontainers/testcontainers-go"
	"github.com/testcontainers/testcontainers-go/modules/postgres"
	"github.com/testcontainers/testcontainers-go/wait"
	postgresdriver "gorm.io/driver/postgres"
	"gorm.io/gorm"

	"orderflow/internal/adapters/out/postgres/orderrepo"
	"orderflow/internal/core/domain/model/kernel"
	"orderflow/internal/core/domain/model/order"
	"orderflow/internal/pkg/errs"
)

// MockAggregateTracker is a mock implementation of aggregateTracker interface.
type MockAggregateTracker struct {
	mock.Mock
}

func (m *MockAggregateTracker) TrackAggregate(id kernel.UUID, aggregate interface{}) {
	m.Called(id, aggregate)
}

// OrderRepositoryIntegrationTestSuite provides integration tests for
// OrderRepository using PostgreSQL containers.
type OrderRepositoryIntegrationTestSuite struct {
	suite.Suite
	container  *postgres.PostgresContainer
	db         *gorm.DB
	repository *orderrepo.GormOrderRepository
	tracker    *MockAggregateTracker
}

func (suite *OrderRepositoryIntegrationTestSuite) SetupSuite() {
	ctx := context.Background()

	container, err := postgres.Run(ctx,
		"postgres:15-alpine",
		postgres.WithDatabase("testdb"),
		postgres.WithUsername("testuser"),
		postgres.WithPassword("testpass"),
		testcontainers.WithWaitStrategy(
			wait.ForLog("database system is ready to accept connections").
				WithOccurrence(2).
				WithStartupTimeout(30*time.Second),
		),
	)
	suite.Require().NoError(err)
	suite.container = container

	connStr, err := container.ConnectionString(ctx, "sslmode=disable")
	suite.Require().NoError(err)

	db, err := gorm.Open(postgresdriver.Open(connStr), &gorm.Config{})
	suite.Require().NoError(err)
	suite.db = db

	suite.Require().NoError(db.AutoMigrate(&orderrepo.OrderDTO{}, &orderrepo.DaySequenceDTO{}))
}

func (suite *OrderRepositoryIntegrationTestSuite) SetupTest() {
	suite.Require().NoError(suite.db.Exec("TRUNCATE TABLE orders, order_day_sequences").Error)

	suite.tracker = new(MockAggregateTracker)
	suite.repository = orderrepo.NewGormOrderRepository(suite.db, suite.tracker)
}

func (suite *OrderRepositoryIntegrationTestSuite) TearDownSuite() {
	if suite.container != nil {
		suite.Require().NoError(suite.container.Terminate(context.Background()))
	}
}

func (suite *OrderRepositoryIntegrationTestSuite) createTestOrder(businessID string) *order.Order {
	customer, err := order.NewCustomer("cust-1", "Ada Lovelace", "ada@example.com", "+15550100")
	suite.Require().NoError(err)

	item, err := order.NewItem("dish-1", "Pad Thai", "Large", 5.00, 2)
	suite.Require().NoError(err)

	placedAt := time.Now().UTC().Truncate(time.Millisecond)
	segment, err := order.NewSegment("rest-1", "Thai Garden", []order.Item{item},
		10.00, 1.00, 2.99, placedAt, "cust-1")
	suite.Require().NoError(err)

	destination, err := kernel.NewGeoPoint(13.75, 100.50)
	suite.Require().NoError(err)
	address, err := order.NewAddress("1 Main St", "Bangkok", "10100", &destination)
	suite.Require().NoError(err)

	aggregate, err := order.NewOrder(
		kernel.NewUUID(), businessID, customer, order.Delivery, &address, segment, placedAt,
	)
	suite.Require().NoError(err)
	return aggregate
}

func (suite *OrderRepositoryIntegrationTestSuite) TestAddAndGetByBusinessID() {
	ctx := context.Background()
	testOrder := suite.createTestOrder("ORD-20260115-0001")

	suite.tracker.On("TrackAggregate", testOrder.ID(), testOrder).Once()
	suite.Require().NoError(suite.repository.Add(ctx, testOrder))

	loaded, err := suite.repository.GetByBusinessID(ctx, "ORD-20260115-0001")
	suite.Require().NoError(err)

	suite.True(loaded.ID().IsEqual(testOrder.ID()))
	suite.Equal(order.Placed, loaded.Status())
	suite.InDelta(13.99, loaded.TotalAmount(), 1e-9)
	suite.Equal(int64(1), loaded.Version())
	suite.Require().NotNil(loaded.Address())
	suite.Equal("1 Main St", loaded.Address().Street)
	suite.Require().NotNil(loaded.Address().Location)
	suite.InDelta(13.75, loaded.Address().Location.Lat(), 1e-9)
	suite.Require().Len(loaded.Segment().History(), 1)
	suite.Equal(order.Placed, loaded.Segment().History()[0].Status())

	suite.tracker.AssertExpectations(suite.T())
}

func (suite *OrderRepositoryIntegrationTestSuite) TestGetByBusinessID_NotFound() {
	_, err := suite.repository.GetByBusinessID(context.Background(), "ORD-20260115-9999")
	suite.ErrorIs(err, errs.ErrObjectNotFound)
}

func (suite *OrderRepositoryIntegrationTestSuite) TestUpdate_BumpsVersion() {
	ctx := context.Background()
	testOrder := suite.createTestOrder("ORD-20260115-0002")

	suite.tracker.On("TrackAggregate", testOrder.ID(), testOrder).Twice()
	suite.Require().NoError(suite.repository.Add(ctx, testOrder))

	now := time.Now().UTC()
	suite.Require().NoError(testOrder.UpdateStatus(order.Preparing, "rest-1", "", now, 15))
	suite.Require().NoError(suite.repository.Update(ctx, testOrder))

	loaded, err := suite.repository.GetByBusinessID(ctx, "ORD-20260115-0002")
	suite.Require().NoError(err)

	suite.Equal(order.Preparing, loaded.Status())
	suite.Equal(int64(2), loaded.Version())
	suite.Require().Len(loaded.Segment().History(), 2)
	suite.Require().NotNil(loaded.Segment().EstimatedReadyTime())
}

func (suite *OrderRepositoryIntegrationTestSuite) TestUpdate_StaleVersionConflicts() {
	ctx := context.Background()
	testOrder := suite.createTestOrder("ORD-20260115-0003")

	suite.tracker.On("TrackAggregate", testOrder.ID(), mock.Anything).Times(2)
	suite.Require().NoError(suite.repository.Add(ctx, testOrder))

	// Two readers load the same version.
	first, err := suite.repository.GetByBusinessID(ctx, "ORD-20260115-0003")
	suite.Require().NoError(err)
	second, err := suite.repository.GetByBusinessID(ctx, "ORD-20260115-0003")
	suite.Require().NoError(err)

	now := time.Now().UTC()
	suite.Require().NoError(first.UpdateStatus(order.Preparing, "rest-1", "", now, 0))
	suite.Require().NoError(suite.repository.Update(ctx, first))

	// The slower writer loses instead of silently overwriting.
	suite.Require().NoError(second.UpdateStatus(order.Cancelled, "cust-1", "", now, 0))
	err = suite.repository.Update(ctx, second)
	suite.ErrorIs(err, errs.ErrVersionConflict)

	loaded, err := suite.repository.GetByBusinessID(ctx, "ORD-20260115-0003")
	suite.Require().NoError(err)
	suite.Equal(order.Preparing, loaded.Status())
}

func (suite *OrderRepositoryIntegrationTestSuite) TestDriverAssignmentRoundTrip() {
	ctx := context.Background()
	testOrder := suite.createTestOrder("ORD-20260115-0004")

	suite.tracker.On("TrackAggregate", testOrder.ID(), mock.Anything).Times(2)
	suite.Require().NoError(suite.repository.Add(ctx, testOrder))

	now := time.Now().UTC().Truncate(time.Millisecond)
	suite.Require().NoError(testOrder.UpdateStatus(order.Preparing, "rest-1", "", now, 20))

	driver, err := order.NewDriverInfo("drv-1", "Kai", "+15550111", "bike")
	suite.Require().NoError(err)
	suite.Require().NoError(testOrder.AssignDriver(driver, now))
	suite.Require().NoError(testOrder.UpdateStatus(order.ReadyForPickup, "rest-1", "", now, 0))
	suite.Require().NoError(testOrder.UpdateStatus(order.OutForDelivery, "drv-1", "", now, 0))

	position, err := kernel.NewGeoPoint(13.70, 100.40)
	suite.Require().NoError(err)
	suite.Require().NoError(testOrder.UpdateDriverLocation(position, "drv-1", now))

	suite.Require().NoError(suite.repository.Update(ctx, testOrder))

	loaded, err := suite.repository.GetByBusinessID(ctx, "ORD-20260115-0004")
	suite.Require().NoError(err)

	assignment := loaded.Segment().Assignment()
	suite.Require().NotNil(assignment)
	suite.Equal("drv-1", assignment.Driver().ID)
	suite.Require().NotNil(assignment.Location())
	suite.InDelta(13.70, assignment.Location().Lat(), 1e-9)
	suite.Equal(order.OutForDelivery, loaded.Status())
}

func (suite *OrderRepositoryIntegrationTestSuite) TestNextDaySequence() {
	ctx := context.Background()
	day := time.Date(2026, 1, 15, 10, 30, 0, 0, time.UTC)

	first, err := suite.repository.NextDaySequence(ctx, day)
	suite.Require().NoError(err)
	suite.Equal(int64(1), first)

	second, err := suite.repository.NextDaySequence(ctx, day)
	suite.Require().NoError(err)
	suite.Equal(int64(2), second)

	// A different day starts its own sequence.
	other, err := suite.repository.NextDaySequence(ctx, day.AddDate(0, 0, 1))
	suite.Require().NoError(err)
	suite.Equal(int64(1), other)
}

func TestOrderRepositoryIntegrationTestSuite(t *testing.T) {
	suite.Run(t, new(OrderRepositoryIntegrationTestSuite))
}
