package mealrepo_test

import (
	"context"
	"sync"
	"testing"
	"time"

	"gharkakhana/internal/adapters/out/postgres/mealrepo"
	"gharkakhana/internal/core/domain/model/kernel"
	"gharkakhana/internal/core/domain/model/meal"
	"gharkakhana/internal/pkg/errs"

	"github.com/stretchr/testify/suite"
	"github.com/testcontainers/testcontainers-go"
	"github.com/testcontainers/testcontainers-go/modules/postgres"
	"github.com/testcontainers/testcontainers-go/wait"
	postgresdriver "gorm.io/driver/postgres"
	"gorm.io/gorm"
)

// noopTracker satisfies the aggregateTracker interface for tests that do
// not assert on tracking behavior.
type noopTracker struct{}

func (noopTracker) TrackAggregate(_ kernel.UUID, _ any) {}

// MealRepositoryIntegrationTestSuite provides integration tests for
// MealRepository using PostgreSQL containers, with a focus on the atomic
// inventory operations.
type MealRepositoryIntegrationTestSuite struct {
	suite.Suite
	container  *postgres.PostgresContainer
	db         *gorm.DB
	repository *mealrepo.GormMealRepository
}

func (suite *MealRepositoryIntegrationTestSuite) SetupSuite() {
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

	suite.Require().NoError(db.AutoMigrate(&mealrepo.MealDTO{}))
}

func (suite *MealRepositoryIntegrationTestSuite) SetupTest() {
	suite.Require().NoError(suite.db.Exec("TRUNCATE TABLE meals").Error)
	suite.repository = mealrepo.NewGormMealRepository(suite.db, noopTracker{})
}

func (suite *MealRepositoryIntegrationTestSuite) TearDownSuite() {
	if suite.container != nil {
		suite.Require().NoError(suite.container.Terminate(context.Background()))
	}
}

func (suite *MealRepositoryIntegrationTestSuite) createTestMeal(quantity int) *meal.Meal {
	price, err := kernel.NewMoneyFromString("12.50")
	suite.Require().NoError(err)
	start, err := kernel.NewTimeOfDay(17, 0)
	suite.Require().NoError(err)
	end, err := kernel.NewTimeOfDay(19, 0)
	suite.Require().NoError(err)
	window, err := kernel.NewPickupWindow(
		time.Date(2025, 3, 10, 0, 0, 0, 0, time.UTC), start, end)
	suite.Require().NoError(err)

	m, err := meal.NewMeal(kernel.NewUUID(), kernel.NewUUID(),
		"Paneer Tikka", "homestyle", price, quantity, window, "12 MG Road")
	suite.Require().NoError(err)
	m.Publish()
	return m
}

func (suite *MealRepositoryIntegrationTestSuite) TestAddAndGet_RoundTrip() {
	ctx := context.Background()
	original := suite.createTestMeal(5)

	suite.Require().NoError(suite.repository.Add(ctx, original))

	restored, err := suite.repository.Get(ctx, original.ID())
	suite.Require().NoError(err)
	suite.True(restored.IsEqual(original))
	suite.Equal(original.Name(), restored.Name())
	suite.True(restored.Price().IsEqual(original.Price()))
	suite.Equal(5, restored.AvailableQuantity())
	suite.Equal(0, restored.TotalOrders())
	suite.True(restored.IsPublished())
	suite.True(restored.IsActive())
	suite.Equal(original.PickupWindow().Date(), restored.PickupWindow().Date())
	suite.True(restored.PickupWindow().Start().IsEqual(original.PickupWindow().Start()))
	suite.True(restored.PickupWindow().End().IsEqual(original.PickupWindow().End()))
}

func (suite *MealRepositoryIntegrationTestSuite) TestGet_NotFound() {
	_, err := suite.repository.Get(context.Background(), kernel.NewUUID())
	suite.Require().Error(err)
	suite.ErrorIs(err, errs.ErrObjectNotFound)
}

func (suite *MealRepositoryIntegrationTestSuite) TestGetOrderable_UnpublishedMeal() {
	ctx := context.Background()
	m := suite.createTestMeal(5)
	m.Unpublish()
	suite.Require().NoError(suite.repository.Add(ctx, m))

	_, err := suite.repository.GetOrderable(ctx, m.ID())
	suite.Require().Error(err)
	suite.ErrorIs(err, meal.ErrMealNotOrderable)
}

func (suite *MealRepositoryIntegrationTestSuite) TestGetOrderable_SoldOutMeal() {
	ctx := context.Background()
	m := suite.createTestMeal(1)
	suite.Require().NoError(suite.repository.Add(ctx, m))
	suite.Require().NoError(suite.repository.ReserveQuantity(ctx, m.ID(), 1))

	_, err := suite.repository.GetOrderable(ctx, m.ID())
	suite.Require().Error(err)
	suite.ErrorIs(err, meal.ErrMealNotOrderable)
}

func (suite *MealRepositoryIntegrationTestSuite) TestReserveQuantity_DecrementsAndCounts() {
	ctx := context.Background()
	m := suite.createTestMeal(5)
	suite.Require().NoError(suite.repository.Add(ctx, m))

	suite.Require().NoError(suite.repository.ReserveQuantity(ctx, m.ID(), 3))

	restored, err := suite.repository.Get(ctx, m.ID())
	suite.Require().NoError(err)
	suite.Equal(2, restored.AvailableQuantity())
	suite.Equal(1, restored.TotalOrders())
}

func (suite *MealRepositoryIntegrationTestSuite) TestReserveQuantity_InsufficientInventory() {
	ctx := context.Background()
	m := suite.createTestMeal(2)
	suite.Require().NoError(suite.repository.Add(ctx, m))

	err := suite.repository.ReserveQuantity(ctx, m.ID(), 3)
	suite.Require().Error(err)
	suite.ErrorIs(err, meal.ErrInsufficientInventory)

	// failed reservation leaves inventory untouched
	restored, err := suite.repository.Get(ctx, m.ID())
	suite.Require().NoError(err)
	suite.Equal(2, restored.AvailableQuantity())
	suite.Equal(0, restored.TotalOrders())
}

func (suite *MealRepositoryIntegrationTestSuite) TestReserveQuantity_UnpublishedMeal() {
	ctx := context.Background()
	m := suite.createTestMeal(5)
	m.Unpublish()
	suite.Require().NoError(suite.repository.Add(ctx, m))

	err := suite.repository.ReserveQuantity(ctx, m.ID(), 1)
	suite.Require().Error(err)
	suite.ErrorIs(err, meal.ErrMealNotOrderable)
}

func (suite *MealRepositoryIntegrationTestSuite) TestReserveQuantity_MealNotFound() {
	err := suite.repository.ReserveQuantity(context.Background(), kernel.NewUUID(), 1)
	suite.Require().Error(err)
	suite.ErrorIs(err, errs.ErrObjectNotFound)
}

func (suite *MealRepositoryIntegrationTestSuite) TestReleaseQuantity_RestoresInventory() {
	ctx := context.Background()
	m := suite.createTestMeal(5)
	suite.Require().NoError(suite.repository.Add(ctx, m))
	suite.Require().NoError(suite.repository.ReserveQuantity(ctx, m.ID(), 4))

	suite.Require().NoError(suite.repository.ReleaseQuantity(ctx, m.ID(), 4))

	restored, err := suite.repository.Get(ctx, m.ID())
	suite.Require().NoError(err)
	suite.Equal(5, restored.AvailableQuantity())
	// the order counter is historical and is not decremented by a release
	suite.Equal(1, restored.TotalOrders())
}

func (suite *MealRepositoryIntegrationTestSuite) TestReleaseQuantity_MealNotFound() {
	err := suite.repository.ReleaseQuantity(context.Background(), kernel.NewUUID(), 1)
	suite.Require().Error(err)
	suite.ErrorIs(err, errs.ErrObjectNotFound)
}

// TestReserveQuantity_ConcurrentReservationsNeverOversell hammers one meal
// with concurrent reservations and verifies the conditional update keeps
// the sum of granted quantities within the initial stock.
func (suite *MealRepositoryIntegrationTestSuite) TestReserveQuantity_ConcurrentReservationsNeverOversell() {
	ctx := context.Background()
	const initialStock = 10
	const workers = 25

	m := suite.createTestMeal(initialStock)
	suite.Require().NoError(suite.repository.Add(ctx, m))

	var wg sync.WaitGroup
	granted := make(chan int, workers)

	for range workers {
		wg.Add(1)
		go func() {
			defer wg.Done()
			repo := mealrepo.NewGormMealRepository(suite.db, noopTracker{})
			if err := repo.ReserveQuantity(ctx, m.ID(), 2); err == nil {
				granted <- 2
			}
		}()
	}

	wg.Wait()
	close(granted)

	total := 0
	successes := 0
	for qty := range granted {
		total += qty
		successes++
	}

	suite.LessOrEqual(total, initialStock)

	restored, err := suite.repository.Get(ctx, m.ID())
	suite.Require().NoError(err)
	suite.Equal(initialStock-total, restored.AvailableQuantity())
	suite.Equal(successes, restored.TotalOrders())
	suite.GreaterOrEqual(restored.AvailableQuantity(), 0)
}

func TestMealRepositoryIntegrationTestSuite(t *testing.T) {
	suite.Run(t, new(MealRepositoryIntegrationTestSuite))
}
