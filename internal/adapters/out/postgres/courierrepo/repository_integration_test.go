package courierrepo_test

import (
	"context"
	"testing"
	"time"

	"dispatch/internal/adapters/out/postgres/courierrepo"
	"dispatch/internal/core/domain/model/courier"
	"dispatch/internal/core/domain/model/kernel"
	"dispatch/internal/pkg/errs"

	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/suite"
	"github.com/testcontainers/testcontainers-go"
	"github.com/testcontainers/testcontainers-go/modules/postgres"
	"github.com/testcontainers/testcontainers-go/wait"
	postgresdriver "gorm.io/driver/postgres"
	"gorm.io/gorm"
)

// MockAggregateTracker is a mock implementation of aggregateTracker interface.
type MockAggregateTracker struct {
	mock.Mock
}

func (m *MockAggregateTracker) TrackAggregate(id kernel.UUID, aggregate interface{}) {
	m.Called(id, aggregate)
}

// CourierRepositoryIntegrationTestSuite provides integration tests for CourierRepository
// using PostgreSQL containers to verify database persistence behavior.
type CourierRepositoryIntegrationTestSuite struct {
	suite.Suite
	container  *postgres.PostgresContainer
	db         *gorm.DB
	repository *courierrepo.GormCourierRepository
	tracker    *MockAggregateTracker
}

func (suite *CourierRepositoryIntegrationTestSuite) SetupSuite() {
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

	suite.Require().NoError(db.AutoMigrate(&courierrepo.CourierDTO{}))
}

func (suite *CourierRepositoryIntegrationTestSuite) SetupTest() {
	suite.Require().NoError(suite.db.Exec("TRUNCATE TABLE couriers").Error)

	suite.tracker = new(MockAggregateTracker)
	suite.repository = courierrepo.NewGormCourierRepository(suite.db, suite.tracker)
}

func (suite *CourierRepositoryIntegrationTestSuite) TearDownSuite() {
	if suite.container != nil {
		suite.Require().NoError(suite.container.Terminate(context.Background()))
	}
}

func (suite *CourierRepositoryIntegrationTestSuite) createTestCourier() *courier.Courier {
	c, err := courier.NewCourier(kernel.NewUUID(), "Ali Veli", "+90-555-0101", "34 ABC 123")
	suite.Require().NoError(err)
	return c
}

func (suite *CourierRepositoryIntegrationTestSuite) addCourier(c *courier.Courier) {
	suite.tracker.On("TrackAggregate", c.ID(), c).Once()
	suite.Require().NoError(suite.repository.Add(context.Background(), c))
}

func (suite *CourierRepositoryIntegrationTestSuite) TestAddAndGet_RoundTripWithoutLocation() {
	ctx := context.Background()
	c := suite.createTestCourier()
	suite.addCourier(c)

	retrieved, err := suite.repository.Get(ctx, c.ID())
	suite.Require().NoError(err)

	suite.True(retrieved.ID().IsEqual(c.ID()))
	suite.Equal("Ali Veli", retrieved.Name())
	suite.Equal("+90-555-0101", retrieved.Phone())
	suite.Equal("34 ABC 123", retrieved.VehicleNumber())
	suite.False(retrieved.IsAvailable())
	suite.Nil(retrieved.Location())

	suite.tracker.AssertExpectations(suite.T())
}

func (suite *CourierRepositoryIntegrationTestSuite) TestUpdate_PersistsAvailabilityAndLocation() {
	ctx := context.Background()
	c := suite.createTestCourier()
	suite.addCourier(c)

	c.SetAvailable()
	point, err := kernel.NewGeoPoint(41.02, 29.01)
	suite.Require().NoError(err)
	suite.Require().NoError(c.UpdateLocation(point))

	suite.tracker.On("TrackAggregate", c.ID(), c).Once()
	suite.Require().NoError(suite.repository.Update(ctx, c))

	retrieved, err := suite.repository.Get(ctx, c.ID())
	suite.Require().NoError(err)
	suite.True(retrieved.IsAvailable())
	suite.Require().NotNil(retrieved.Location())
	suite.InDelta(41.02, retrieved.Location().Lat(), 0.000001)
	suite.InDelta(29.01, retrieved.Location().Lng(), 0.000001)
}

func (suite *CourierRepositoryIntegrationTestSuite) TestUpdate_AvailabilityBackToFalse() {
	ctx := context.Background()
	c := suite.createTestCourier()
	c.SetAvailable()
	suite.addCourier(c)

	c.SetUnavailable()
	suite.tracker.On("TrackAggregate", c.ID(), c).Once()
	suite.Require().NoError(suite.repository.Update(ctx, c))

	retrieved, err := suite.repository.Get(ctx, c.ID())
	suite.Require().NoError(err)
	suite.False(retrieved.IsAvailable())
}

func (suite *CourierRepositoryIntegrationTestSuite) TestUpdate_NonExistentCourier_ReturnsNotFoundError() {
	err := suite.repository.Update(context.Background(), suite.createTestCourier())
	suite.Require().Error(err)

	var notFoundErr *errs.ObjectNotFoundError
	suite.Require().ErrorAs(err, &notFoundErr)
}

func (suite *CourierRepositoryIntegrationTestSuite) TestGet_NonExistentCourier_ReturnsNotFoundError() {
	retrieved, err := suite.repository.Get(context.Background(), kernel.NewUUID())
	suite.Nil(retrieved)
	suite.Require().Error(err)

	var notFoundErr *errs.ObjectNotFoundError
	suite.Require().ErrorAs(err, &notFoundErr)
}

func (suite *CourierRepositoryIntegrationTestSuite) TestGetAllAvailable_FiltersPool() {
	ctx := context.Background()

	available := suite.createTestCourier()
	available.SetAvailable()
	suite.addCourier(available)

	busy := suite.createTestCourier()
	suite.addCourier(busy)

	pool, err := suite.repository.GetAllAvailable(ctx)
	suite.Require().NoError(err)
	suite.Require().Len(pool, 1)
	suite.True(pool[0].ID().IsEqual(available.ID()))
}

func TestCourierRepositoryIntegrationTestSuite(t *testing.T) {
	suite.Run(t, new(CourierRepositoryIntegrationTestSuite))
}
