package orderrepo_test

import (
	"context"
	"testing"
	"time"

	"dispatch/internal/adapters/out/postgres/orderrepo"
	"dispatch/internal/core/domain/model/kernel"
	"dispatch/internal/core/domain/model/order"
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

// OrderRepositoryIntegrationTestSuite provides integration tests for OrderRepository
// using PostgreSQL containers to verify database persistence behavior.
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

	suite.Require().NoError(db.AutoMigrate(&orderrepo.OrderDTO{}, &orderrepo.OrderItemDTO{}))
}

func (suite *OrderRepositoryIntegrationTestSuite) SetupTest() {
	suite.Require().NoError(suite.db.Exec("TRUNCATE TABLE order_items, orders").Error)

	suite.tracker = new(MockAggregateTracker)
	suite.repository = orderrepo.NewGormOrderRepository(suite.db, suite.tracker)
}

func (suite *OrderRepositoryIntegrationTestSuite) TearDownSuite() {
	if suite.container != nil {
		suite.Require().NoError(suite.container.Terminate(context.Background()))
	}
}

func (suite *OrderRepositoryIntegrationTestSuite) createTestOrder() *order.Order {
	pizza, err := order.NewItem("Margherita", 11.50, 1)
	suite.Require().NoError(err)
	cola, err := order.NewItem("Cola", 2.00, 2)
	suite.Require().NoError(err)

	restaurant, err := kernel.NewGeoPoint(41.00, 29.00)
	suite.Require().NoError(err)
	delivery, err := kernel.NewGeoPoint(41.05, 29.05)
	suite.Require().NoError(err)

	testOrder, err := order.NewOrder(
		kernel.NewUUID(),
		kernel.NewUUID(),
		kernel.NewUUID(),
		[]order.Item{pizza, cola},
		order.CashOnDelivery,
		restaurant,
		delivery,
	)
	suite.Require().NoError(err)
	return testOrder
}

// createReadyOrder drives a fresh order to the ready status.
func (suite *OrderRepositoryIntegrationTestSuite) createReadyOrder() *order.Order {
	testOrder := suite.createTestOrder()
	suite.Require().NoError(testOrder.Confirm())
	suite.Require().NoError(testOrder.Accept(15))
	suite.Require().NoError(testOrder.StartPreparing())
	suite.Require().NoError(testOrder.MarkReady())
	return testOrder
}

func (suite *OrderRepositoryIntegrationTestSuite) addOrder(testOrder *order.Order) {
	suite.tracker.On("TrackAggregate", testOrder.ID(), testOrder).Once()
	suite.Require().NoError(suite.repository.Add(context.Background(), testOrder))
}

func (suite *OrderRepositoryIntegrationTestSuite) TestAdd_ValidOrder_Success() {
	testOrder := suite.createTestOrder()
	suite.addOrder(testOrder)

	var orderCount, itemCount int64
	suite.Require().NoError(suite.db.Model(&orderrepo.OrderDTO{}).Count(&orderCount).Error)
	suite.Require().NoError(suite.db.Model(&orderrepo.OrderItemDTO{}).Count(&itemCount).Error)
	suite.Equal(int64(1), orderCount)
	suite.Equal(int64(2), itemCount)

	suite.tracker.AssertExpectations(suite.T())
}

func (suite *OrderRepositoryIntegrationTestSuite) TestGet_ExistingOrder_RoundTrip() {
	ctx := context.Background()
	testOrder := suite.createTestOrder()
	suite.addOrder(testOrder)

	retrieved, err := suite.repository.Get(ctx, testOrder.ID())
	suite.Require().NoError(err)

	suite.True(retrieved.ID().IsEqual(testOrder.ID()))
	suite.True(retrieved.CustomerID().IsEqual(testOrder.CustomerID()))
	suite.True(retrieved.RestaurantID().IsEqual(testOrder.RestaurantID()))
	suite.Equal(order.Pending, retrieved.Status())
	suite.Equal(order.CashOnDelivery, retrieved.PaymentMethod())
	suite.Equal(order.Unpaid, retrieved.PaymentStatus())
	suite.InDelta(testOrder.TotalAmount(), retrieved.TotalAmount(), 0.001)
	suite.InDelta(order.DeliveryFee, retrieved.DeliveryFee(), 0.001)
	suite.Len(retrieved.Items(), 2)
	suite.Nil(retrieved.Courier())
	suite.Equal(0, retrieved.Version())
}

func (suite *OrderRepositoryIntegrationTestSuite) TestGet_NonExistentOrder_ReturnsNotFoundError() {
	retrieved, err := suite.repository.Get(context.Background(), kernel.NewUUID())

	suite.Nil(retrieved)
	suite.Require().Error(err)

	var notFoundErr *errs.ObjectNotFoundError
	suite.Require().ErrorAs(err, &notFoundErr)
}

func (suite *OrderRepositoryIntegrationTestSuite) TestUpdate_BumpsVersion() {
	ctx := context.Background()
	testOrder := suite.createTestOrder()
	suite.addOrder(testOrder)

	suite.Require().NoError(testOrder.Confirm())
	suite.tracker.On("TrackAggregate", testOrder.ID(), testOrder).Once()
	suite.Require().NoError(suite.repository.Update(ctx, testOrder))

	retrieved, err := suite.repository.Get(ctx, testOrder.ID())
	suite.Require().NoError(err)
	suite.Equal(order.Confirmed, retrieved.Status())
	suite.Equal(1, retrieved.Version())
}

func (suite *OrderRepositoryIntegrationTestSuite) TestUpdate_StaleVersion_ReturnsConflict() {
	ctx := context.Background()
	testOrder := suite.createTestOrder()
	suite.addOrder(testOrder)

	// two actors read the same row
	first, err := suite.repository.Get(ctx, testOrder.ID())
	suite.Require().NoError(err)
	second, err := suite.repository.Get(ctx, testOrder.ID())
	suite.Require().NoError(err)

	// the first write wins
	suite.Require().NoError(first.Confirm())
	suite.tracker.On("TrackAggregate", first.ID(), first).Once()
	suite.Require().NoError(suite.repository.Update(ctx, first))

	// the second write carries a stale version and loses
	suite.Require().NoError(second.Reject("kitchen closed"))
	err = suite.repository.Update(ctx, second)
	suite.Require().Error(err)

	var conflictErr *errs.VersionConflictError
	suite.Require().ErrorAs(err, &conflictErr)

	// the winner's state is intact
	retrieved, err := suite.repository.Get(ctx, testOrder.ID())
	suite.Require().NoError(err)
	suite.Equal(order.Confirmed, retrieved.Status())
}

func (suite *OrderRepositoryIntegrationTestSuite) TestUpdate_NonExistentOrder_ReturnsNotFoundError() {
	testOrder := suite.createTestOrder()

	err := suite.repository.Update(context.Background(), testOrder)
	suite.Require().Error(err)

	var notFoundErr *errs.ObjectNotFoundError
	suite.Require().ErrorAs(err, &notFoundErr)
}

func (suite *OrderRepositoryIntegrationTestSuite) TestGetUnassignedReady_FiltersCandidates() {
	ctx := context.Background()

	ready := suite.createReadyOrder()
	suite.addOrder(ready)

	pending := suite.createTestOrder()
	suite.addOrder(pending)

	carried := suite.createReadyOrder()
	suite.Require().NoError(carried.AssignCourier(kernel.NewUUID()))
	suite.addOrder(carried)

	candidates, err := suite.repository.GetUnassignedReady(ctx)
	suite.Require().NoError(err)
	suite.Require().Len(candidates, 1)
	suite.True(candidates[0].ID().IsEqual(ready.ID()))
	suite.Len(candidates[0].Items(), 2)
}

func (suite *OrderRepositoryIntegrationTestSuite) TestGetByCourier_ExcludesFinishedDeliveries() {
	ctx := context.Background()
	courierID := kernel.NewUUID()

	carrying := suite.createReadyOrder()
	suite.Require().NoError(carrying.AssignCourier(courierID))
	suite.addOrder(carrying)

	finished := suite.createReadyOrder()
	suite.Require().NoError(finished.AssignCourier(courierID))
	suite.Require().NoError(finished.Deliver())
	suite.addOrder(finished)

	otherCourier := suite.createReadyOrder()
	suite.Require().NoError(otherCourier.AssignCourier(kernel.NewUUID()))
	suite.addOrder(otherCourier)

	carried, err := suite.repository.GetByCourier(ctx, courierID)
	suite.Require().NoError(err)
	suite.Require().Len(carried, 1)
	suite.True(carried[0].ID().IsEqual(carrying.ID()))
}

func TestOrderRepositoryIntegrationTestSuite(t *testing.T) {
	suite.Run(t, new(OrderRepositoryIntegrationTestSuite))
}
