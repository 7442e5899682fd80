package adapters

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"

	amenityentity "rental_backend/internal/feature/amenities/domain/entity"
	"rental_backend/internal/feature/places/domain/entity"
	reviewentity "rental_backend/internal/feature/reviews/domain/entity"
	userentity "rental_backend/internal/feature/users/domain/entity"
	"rental_backend/internal/shared/apperr"
)

// setupTestDB prepares an in-memory SQLite database with the full schema.
func setupTestDB(t *testing.T) *gorm.DB {
	t.Helper()

	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{TranslateError: true})
	require.NoError(t, err, "failed to initialize test database")

	err = db.AutoMigrate(&userentity.User{}, &amenityentity.Amenity{}, &entity.Place{}, &reviewentity.Review{})
	require.NoError(t, err, "failed to migrate tables")

	return db
}

func seedOwner(t *testing.T, db *gorm.DB) *userentity.User {
	t.Helper()
	owner, err := userentity.NewUser("Taro", "Yamada", "owner@example.com", false)
	require.NoError(t, err)
	owner.Password = "hashed_password"
	require.NoError(t, db.Create(owner).Error)
	return owner
}

func seedAmenity(t *testing.T, db *gorm.DB, name string) *amenityentity.Amenity {
	t.Helper()
	a, err := amenityentity.NewAmenity(name)
	require.NoError(t, err)
	require.NoError(t, db.Create(a).Error)
	return a
}

func seedPlace(t *testing.T, db *gorm.DB, repo *placePostgres, ownerID string, amenities ...amenityentity.Amenity) *entity.Place {
	t.Helper()
	p, err := entity.NewPlace("Cozy cabin", "A cabin in the woods", 120, 35.6, 139.7, ownerID)
	require.NoError(t, err)
	p.Amenities = amenities
	require.NoError(t, repo.Create(context.Background(), p))
	return p
}

func TestPlacePostgres_Create(t *testing.T) {
	t.Run("creates the place and join rows without touching the catalog", func(t *testing.T) {
		db := setupTestDB(t)
		repo := NewPlacePostgres(db)
		owner := seedOwner(t, db)
		wifi := seedAmenity(t, db, "Wi-Fi")

		place := seedPlace(t, db, repo, owner.ID, *wifi)

		assert.NotEmpty(t, place.ID)

		got, err := repo.FindByID(context.Background(), place.ID)
		require.NoError(t, err)
		require.Len(t, got.Amenities, 1)
		assert.Equal(t, wifi.ID, got.Amenities[0].ID)

		// The referenced catalog row must stay untouched.
		var stored amenityentity.Amenity
		require.NoError(t, db.First(&stored, "id = ?", wifi.ID).Error)
		assert.Equal(t, "Wi-Fi", stored.Name)
	})
}

func TestPlacePostgres_FindByID(t *testing.T) {
	db := setupTestDB(t)
	repo := NewPlacePostgres(db)
	owner := seedOwner(t, db)
	place := seedPlace(t, db, repo, owner.ID)

	t.Run("preloads the owner", func(t *testing.T) {
		got, err := repo.FindByID(context.Background(), place.ID)

		require.NoError(t, err)
		assert.Equal(t, owner.Email, got.Owner.Email)
	})

	t.Run("not found", func(t *testing.T) {
		_, err := repo.FindByID(context.Background(), "nope")

		assert.True(t, apperr.IsKind(err, apperr.KindNotFound))
	})
}

func TestPlacePostgres_ReplaceAmenities(t *testing.T) {
	db := setupTestDB(t)
	repo := NewPlacePostgres(db)
	owner := seedOwner(t, db)
	wifi := seedAmenity(t, db, "Wi-Fi")
	pool := seedAmenity(t, db, "Pool")
	place := seedPlace(t, db, repo, owner.ID, *wifi)

	t.Run("replaces, never merges", func(t *testing.T) {
		err := repo.ReplaceAmenities(context.Background(), place, []amenityentity.Amenity{*pool})
		require.NoError(t, err)

		got, err := repo.FindByID(context.Background(), place.ID)
		require.NoError(t, err)
		require.Len(t, got.Amenities, 1)
		assert.Equal(t, pool.ID, got.Amenities[0].ID)
	})

	t.Run("an empty set clears the join rows", func(t *testing.T) {
		err := repo.ReplaceAmenities(context.Background(), place, nil)
		require.NoError(t, err)

		got, err := repo.FindByID(context.Background(), place.ID)
		require.NoError(t, err)
		assert.Empty(t, got.Amenities)
	})
}

func TestPlacePostgres_Delete(t *testing.T) {
	t.Run("deletes the place and its reviews, spares the amenities", func(t *testing.T) {
		db := setupTestDB(t)
		repo := NewPlacePostgres(db)
		owner := seedOwner(t, db)
		wifi := seedAmenity(t, db, "Wi-Fi")
		place := seedPlace(t, db, repo, owner.ID, *wifi)

		review, err := reviewentity.NewReview("Great stay", 5, owner.ID, place.ID)
		require.NoError(t, err)
		require.NoError(t, db.Create(review).Error)

		require.NoError(t, repo.Delete(context.Background(), place.ID))

		_, err = repo.FindByID(context.Background(), place.ID)
		assert.True(t, apperr.IsKind(err, apperr.KindNotFound))

		var reviewCount int64
		require.NoError(t, db.Model(&reviewentity.Review{}).Where("place_id = ?", place.ID).Count(&reviewCount).Error)
		assert.Zero(t, reviewCount, "owned reviews must be cascade-deleted")

		var amenityCount int64
		require.NoError(t, db.Model(&amenityentity.Amenity{}).Count(&amenityCount).Error)
		assert.Equal(t, int64(1), amenityCount, "shared catalog entries must survive")

		var joinCount int64
		require.NoError(t, db.Table("place_amenities").Where("place_id = ?", place.ID).Count(&joinCount).Error)
		assert.Zero(t, joinCount, "join rows must be cleared")
	})

	t.Run("not found", func(t *testing.T) {
		db := setupTestDB(t)
		repo := NewPlacePostgres(db)

		err := repo.Delete(context.Background(), "nope")

		assert.True(t, apperr.IsKind(err, apperr.KindNotFound))
	})
}

func TestPlacePostgres_Update(t *testing.T) {
	db := setupTestDB(t)
	repo := NewPlacePostgres(db)
	owner := seedOwner(t, db)
	place := seedPlace(t, db, repo, owner.ID)

	place.Title = "Renovated cabin"
	require.NoError(t, repo.Update(context.Background(), place))

	got, err := repo.FindByID(context.Background(), place.ID)
	require.NoError(t, err)
	assert.Equal(t, "Renovated cabin", got.Title)
	assert.False(t, got.UpdatedAt.Before(got.CreatedAt))
}

func TestPlacePostgres_Update_NoFieldChanges(t *testing.T) {
	db := setupTestDB(t)
	repo := NewPlacePostgres(db)
	owner := seedOwner(t, db)
	place := seedPlace(t, db, repo, owner.ID)

	before, err := repo.FindByID(context.Background(), place.ID)
	require.NoError(t, err)
	prevUpdatedAt := before.UpdatedAt

	// Saving without changing any column must still advance UpdatedAt,
	// so an empty patch is observable to clients polling the timestamp.
	time.Sleep(10 * time.Millisecond)
	require.NoError(t, repo.Update(context.Background(), before))

	after, err := repo.FindByID(context.Background(), place.ID)
	require.NoError(t, err)
	assert.True(t, after.UpdatedAt.After(prevUpdatedAt), "UpdatedAt must strictly increase")
	assert.Equal(t, "Cozy cabin", after.Title)
}
