package outboxrepo_test

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/suite"
	"github.com/testcontainers/testcontainers-go"
	"github.com/testcontainers/testcontainers-go/modules/postgres"
	"github.com/testcontainers/testcontainers-go/wait"
	postgresdriver "gorm.io/driver/postgres"
	"gorm.io/gorm"

	"orderflow/internal/adapters/out/postgres/outboxrepo"
	"orderflow/internal/core/domain/model/outbox"
)

// OutboxRepositoryIntegrationTestSuite provides integration tests for
// OutboxRepository using PostgreSQL containers.
type OutboxRepositoryIntegrationTestSuite struct {
	suite.Suite
	container  *postgres.PostgresContainer
	db         *gorm.DB
	repository *outboxrepo.GormOutboxRepository
}

func (suite *OutboxRepositoryIntegrationTestSuite) SetupSuite() {
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

	suite.Require().NoError(db.AutoMigrate(&outboxrepo.MessageDTO{}))
}

func (suite *OutboxRepositoryIntegrationTestSuite) SetupTest() {
	suite.Require().NoError(suite.db.Exec("TRUNCATE TABLE outbox_messages").Error)
	suite.repository = outboxrepo.NewGormOutboxRepository(suite.db)
}

func (suite *OutboxRepositoryIntegrationTestSuite) TearDownSuite() {
	if suite.container != nil {
		suite.Require().NoError(suite.container.Terminate(context.Background()))
	}
}

func (suite *OutboxRepositoryIntegrationTestSuite) TestAddAndGetDue() {
	ctx := context.Background()
	now := time.Now().UTC().Truncate(time.Millisecond)

	message, err := outbox.NewMessage(outbox.KindSettlement, []byte(`{"fee":2.0}`), now)
	suite.Require().NoError(err)
	suite.Require().NoError(suite.repository.Add(ctx, message))

	due, err := suite.repository.GetDue(ctx, now, 10)
	suite.Require().NoError(err)

	suite.Require().Len(due, 1)
	suite.True(due[0].ID().IsEqual(message.ID()))
	suite.Equal(outbox.KindSettlement, due[0].Kind())
	suite.JSONEq(`{"fee":2.0}`, string(due[0].Payload()))
}

func (suite *OutboxRepositoryIntegrationTestSuite) TestGetDue_SkipsDispatchedAndFuture() {
	ctx := context.Background()
	now := time.Now().UTC().Truncate(time.Millisecond)

	dispatched, err := outbox.NewMessage(outbox.KindNotification, []byte(`{"a":1}`), now)
	suite.Require().NoError(err)
	dispatched.MarkDispatched(now)
	suite.Require().NoError(suite.repository.Add(ctx, dispatched))

	backedOff, err := outbox.NewMessage(outbox.KindNotification, []byte(`{"b":2}`), now)
	suite.Require().NoError(err)
	backedOff.MarkFailed(now)
	suite.Require().NoError(suite.repository.Add(ctx, backedOff))

	pending, err := outbox.NewMessage(outbox.KindNotification, []byte(`{"c":3}`), now)
	suite.Require().NoError(err)
	suite.Require().NoError(suite.repository.Add(ctx, pending))

	due, err := suite.repository.GetDue(ctx, now, 10)
	suite.Require().NoError(err)

	suite.Require().Len(due, 1)
	suite.True(due[0].ID().IsEqual(pending.ID()))

	// The backed-off message becomes due once its retry time passes.
	due, err = suite.repository.GetDue(ctx, now.Add(time.Minute), 10)
	suite.Require().NoError(err)
	suite.Len(due, 2)
}

func (suite *OutboxRepositoryIntegrationTestSuite) TestUpdate_PersistsAttemptBookkeeping() {
	ctx := context.Background()
	now := time.Now().UTC().Truncate(time.Millisecond)

	message, err := outbox.NewMessage(outbox.KindSettlement, []byte(`{"fee":2.0}`), now)
	suite.Require().NoError(err)
	suite.Require().NoError(suite.repository.Add(ctx, message))

	message.MarkFailed(now)
	suite.Require().NoError(suite.repository.Update(ctx, message))

	due, err := suite.repository.GetDue(ctx, now, 10)
	suite.Require().NoError(err)
	suite.Empty(due)

	due, err = suite.repository.GetDue(ctx, now.Add(time.Minute), 10)
	suite.Require().NoError(err)
	suite.Require().Len(due, 1)
	suite.Equal(1, due[0].Attempts())
}

func TestOutboxRepositoryIntegrationTestSuite(t *testing.T) {
	suite.Run(t, new(OutboxRepositoryIntegrationTestSuite))
}
