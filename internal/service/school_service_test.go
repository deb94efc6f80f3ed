package service

import (
	"context"
	"testing"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/stretchr/testify/require"
	"gorm.io/datatypes"

	"github.com/noah-isme/nido-go-api/internal/dto"
	"github.com/noah-isme/nido-go-api/internal/models"
	"github.com/noah-isme/nido-go-api/internal/repository"
)

func TestSchoolListServesCachedDirectory(t *testing.T) {
	db := setupServiceDB(t, &models.School{})
	svc := NewSchoolService(repository.NewSchoolRepository(db), testRedis(t), time.Minute, validator.New(), testLogger())

	school := models.School{Name: "Sunny Hill", Capacity: 40, Status: models.SchoolStatusActive}
	require.NoError(t, db.Create(&school).Error)

	first, err := svc.List(context.Background(), dto.SchoolListRequest{})
	require.NoError(t, err)
	require.False(t, first.CacheHit)
	require.Len(t, first.Items, 1)

	// A school added after the cache fill is invisible until the TTL expires.
	late := models.School{Name: "River Bend", Capacity: 20, Status: models.SchoolStatusActive}
	require.NoError(t, db.Create(&late).Error)

	second, err := svc.List(context.Background(), dto.SchoolListRequest{})
	require.NoError(t, err)
	require.True(t, second.CacheHit)
	require.Len(t, second.Items, 1)
}

func TestSchoolListWorksWithoutCache(t *testing.T) {
	db := setupServiceDB(t, &models.School{})
	svc := NewSchoolService(repository.NewSchoolRepository(db), nil, time.Minute, validator.New(), testLogger())

	school := models.School{Name: "Sunny Hill", Capacity: 40, Status: models.SchoolStatusActive}
	require.NoError(t, db.Create(&school).Error)

	result, err := svc.List(context.Background(), dto.SchoolListRequest{})
	require.NoError(t, err)
	require.Len(t, result.Items, 1)
	require.Equal(t, 1, result.Pagination.Page)
	require.Equal(t, 20, result.Pagination.PageSize)
}

func TestSchoolGetHidesInactive(t *testing.T) {
	db := setupServiceDB(t, &models.School{})
	svc := NewSchoolService(repository.NewSchoolRepository(db), nil, time.Minute, validator.New(), testLogger())

	school := models.School{Name: "Closed Door", Capacity: 10, Status: models.SchoolStatusInactive}
	require.NoError(t, db.Create(&school).Error)

	_, err := svc.Get(context.Background(), school.ID)
	require.ErrorIs(t, err, ErrSchoolNotFound)
}

func TestSchoolCreateNormalizesPrograms(t *testing.T) {
	db := setupServiceDB(t, &models.School{})
	svc := NewSchoolService(repository.NewSchoolRepository(db), nil, time.Minute, validator.New(), testLogger())

	created, err := svc.Create(context.Background(), dto.SchoolCreateRequest{
		Name:     "  Cedar Grove  ",
		Capacity: 60,
		Programs: []string{" Infant ", "", "Toddler"},
	})
	require.NoError(t, err)
	require.Equal(t, "Cedar Grove", created.Name)
	require.Equal(t, []string{"Infant", "Toddler"}, created.Programs)
	require.Equal(t, models.SchoolStatusActive, created.Status)
}

func TestSchoolUpdateAppliesPartialFields(t *testing.T) {
	db := setupServiceDB(t, &models.School{})
	svc := NewSchoolService(repository.NewSchoolRepository(db), nil, time.Minute, validator.New(), testLogger())

	school := models.School{
		Name:     "Cedar Grove",
		Capacity: 60,
		Programs: datatypes.NewJSONSlice([]string{"Infant"}),
		Status:   models.SchoolStatusActive,
	}
	require.NoError(t, db.Create(&school).Error)

	status := models.SchoolStatusInactive
	updated, err := svc.Update(context.Background(), school.ID, dto.SchoolUpdateRequest{Status: &status})
	require.NoError(t, err)
	require.Equal(t, models.SchoolStatusInactive, updated.Status)
	require.Equal(t, "Cedar Grove", updated.Name)
	require.Equal(t, []string{"Infant"}, updated.Programs)
}
