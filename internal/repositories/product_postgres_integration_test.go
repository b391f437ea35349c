//go:build integration

package repositories_test

import (
	"context"
	"testing"
	"time"

	"catalog/internal/models"
	"catalog/internal/repositories"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/testcontainers/testcontainers-go"
	"github.com/testcontainers/testcontainers-go/modules/postgres"
	"github.com/testcontainers/testcontainers-go/wait"
	gormpostgres "gorm.io/driver/postgres"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

// setupPostgres starts a PostgreSQL container and returns a migrated GORM handle.
func setupPostgres(t *testing.T) *gorm.DB {
	t.Helper()

	ctx := context.Background()

	container, err := postgres.Run(ctx,
		"postgres:16-alpine",
		postgres.WithDatabase("catalog"),
		postgres.WithUsername("testuser"),
		postgres.WithPassword("testpass"),
		testcontainers.WithWaitStrategy(
			wait.ForLog("database system is ready to accept connections").
				WithOccurrence(2).
				WithStartupTimeout(30*time.Second)),
	)
	require.NoError(t, err, "failed to start postgres container")

	t.Cleanup(func() {
		if err := container.Terminate(ctx); err != nil {
			t.Logf("failed to terminate container: %v", err)
		}
	})

	dsn, err := container.ConnectionString(ctx, "sslmode=disable")
	require.NoError(t, err)

	db, err := gorm.Open(gormpostgres.Open(dsn), &gorm.Config{Logger: logger.Discard})
	require.NoError(t, err)
	require.NoError(t, db.AutoMigrate(&models.Product{}))

	return db
}

func TestGORMProductRepository_Postgres(t *testing.T) {
	if testing.Short() {
		t.Skip("skipping integration test in short mode")
	}

	db := setupPostgres(t)
	repo := repositories.NewGORMProductRepository(db)
	ctx := context.Background()

	seeded := seed(t, repo)

	t.Run("SearchRange", func(t *testing.T) {
		products, err := repo.SearchProducts(ctx, "iphone", floatPtr(500), floatPtr(1500))
		require.NoError(t, err)
		assert.Equal(t, []string{"Apple iPhone"}, names(products))

		products, err = repo.SearchProducts(ctx, "iphone", floatPtr(1000), nil)
		require.NoError(t, err)
		assert.Empty(t, products)
	})

	t.Run("DecimalPrecision", func(t *testing.T) {
		found, err := repo.FindByID(ctx, seeded[2].ID)
		require.NoError(t, err)
		require.NotNil(t, found)
		assert.Equal(t, "19.99", found.Price.Decimal.StringFixed(2))
	})

	t.Run("PriceIsNotRounded", func(t *testing.T) {
		for _, raw := range []string{"999.999", "123456789.125"} {
			product := models.Product{Name: "Precise " + raw, Price: price(raw)}
			require.NoError(t, repo.Save(ctx, &product))

			found, err := repo.FindByID(ctx, product.ID)
			require.NoError(t, err)
			require.NotNil(t, found)
			assert.True(t, found.Price.Decimal.Equal(product.Price.Decimal), "stored %s, got %s", raw, found.Price.Decimal)
		}
	})

	t.Run("SearchFoldsUnicodeCase", func(t *testing.T) {
		product := models.Product{Name: "ÄPFEL Saft"}
		require.NoError(t, repo.Save(ctx, &product))

		products, err := repo.SearchProducts(ctx, "äpfel", nil, nil)
		require.NoError(t, err)
		assert.Equal(t, []string{"ÄPFEL Saft"}, names(products))
	})

	t.Run("DeleteInsideTransaction", func(t *testing.T) {
		err := repo.WithinTransaction(ctx, func(tx repositories.ProductRepository) error {
			exists, err := tx.ExistsByID(ctx, seeded[1].ID)
			if err != nil || !exists {
				return err
			}
			return tx.DeleteByID(ctx, seeded[1].ID)
		})
		require.NoError(t, err)

		exists, err := repo.ExistsByID(ctx, seeded[1].ID)
		require.NoError(t, err)
		assert.False(t, exists)
	})
}
