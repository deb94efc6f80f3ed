package service

import (
	"context"
	"testing"

	"github.com/go-playground/validator/v10"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"

	"github.com/noah-isme/nido-go-api/internal/dto"
	"github.com/noah-isme/nido-go-api/internal/models"
	"github.com/noah-isme/nido-go-api/internal/repository"
)

func newStudentFixture(t *testing.T) (StudentService, *gorm.DB) {
	t.Helper()

	db := setupServiceDB(t, &models.School{}, &models.Student{})
	svc := NewStudentService(
		repository.NewStudentRepository(db),
		repository.NewSchoolRepository(db),
		validator.New(),
		testLogger(),
	)

	return svc, db
}

func TestStudentCreateRequiresExistingSchool(t *testing.T) {
	svc, _ := newStudentFixture(t)

	_, err := svc.Create(context.Background(), dto.StudentCreateRequest{
		SchoolID:  404,
		FirstName: "Mia",
		LastName:  "Torres",
	})
	require.ErrorIs(t, err, ErrSchoolNotFound)
}

func TestStudentCreateParsesDateOfBirth(t *testing.T) {
	svc, db := newStudentFixture(t)

	school := models.School{Name: "Cedar Grove", Capacity: 40, Status: models.SchoolStatusActive}
	require.NoError(t, db.Create(&school).Error)

	student, err := svc.Create(context.Background(), dto.StudentCreateRequest{
		SchoolID:    school.ID,
		FirstName:   " Mia ",
		LastName:    "Torres",
		DateOfBirth: "2021-03-14",
		Program:     "toddler",
	})
	require.NoError(t, err)
	require.Equal(t, "Mia", student.FirstName)
	require.NotNil(t, student.DateOfBirth)
	require.Equal(t, "2021-03-14", student.DateOfBirth.Format(dateOnlyLayout))
}

func TestStudentUpdateAppliesPartialFields(t *testing.T) {
	svc, db := newStudentFixture(t)

	school := models.School{Name: "Cedar Grove", Capacity: 40, Status: models.SchoolStatusActive}
	require.NoError(t, db.Create(&school).Error)

	created, err := svc.Create(context.Background(), dto.StudentCreateRequest{
		SchoolID:  school.ID,
		FirstName: "Mia",
		LastName:  "Torres",
		Program:   "toddler",
	})
	require.NoError(t, err)

	program := "preschool"
	updated, err := svc.Update(context.Background(), created.ID, dto.StudentUpdateRequest{Program: &program})
	require.NoError(t, err)
	require.Equal(t, "preschool", updated.Program)
	require.Equal(t, "Mia", updated.FirstName)
}

func TestStudentDeleteMissingRecord(t *testing.T) {
	svc, _ := newStudentFixture(t)

	err := svc.Delete(context.Background(), 404)
	require.ErrorIs(t, err, ErrStudentNotFound)
}

func TestStudentListBySchoolPaginates(t *testing.T) {
	svc, db := newStudentFixture(t)

	school := models.School{Name: "Cedar Grove", Capacity: 40, Status: models.SchoolStatusActive}
	require.NoError(t, db.Create(&school).Error)

	names := []string{"Alvarez", "Brooks", "Chen"}
	for _, name := range names {
		student := models.Student{SchoolID: school.ID, FirstName: "Kid", LastName: name}
		require.NoError(t, db.Create(&student).Error)
	}

	result, err := svc.ListBySchool(context.Background(), school.ID, 1, 2)
	require.NoError(t, err)
	require.Len(t, result.Items, 2)
	require.Equal(t, "Alvarez", result.Items[0].LastName)
	require.Equal(t, int64(3), result.Pagination.TotalItems)
	require.Equal(t, 2, result.Pagination.TotalPages)
}
