package service

import (
	"context"
	"testing"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"

	"github.com/noah-isme/nido-go-api/internal/dto"
	"github.com/noah-isme/nido-go-api/internal/models"
	"github.com/noah-isme/nido-go-api/internal/repository"
)

func newIncidentFixture(t *testing.T) (IncidentService, *gorm.DB, *recordingPublisher) {
	t.Helper()

	db := setupServiceDB(t, &models.School{}, &models.IncidentReport{})
	events := &recordingPublisher{}
	svc := NewIncidentService(
		repository.NewIncidentRepository(db),
		repository.NewSchoolRepository(db),
		events,
		validator.New(),
		testLogger(),
	)

	return svc, db, events
}

func seedIncidentSchool(t *testing.T, db *gorm.DB) models.School {
	t.Helper()

	school := models.School{Name: "Cedar Grove", Capacity: 40, Status: models.SchoolStatusActive}
	require.NoError(t, db.Create(&school).Error)

	return school
}

func TestIncidentCreateSanitizesDescription(t *testing.T) {
	svc, db, events := newIncidentFixture(t)
	school := seedIncidentSchool(t, db)

	report, err := svc.Create(context.Background(), dto.IncidentCreateRequest{
		SchoolID:    school.ID,
		Type:        "injury",
		Severity:    "Low",
		Description: `<script>alert("x")</script>Scraped knee on the playground`,
		OccurredAt:  time.Now().UTC().Format(time.RFC3339),
		ReportedBy:  "Ms. Alvarez",
	})
	require.NoError(t, err)
	require.Equal(t, "Scraped knee on the playground", report.Description)
	require.Equal(t, "low", report.Severity)
	require.Equal(t, models.IncidentStatusOpen, report.Status)

	require.Equal(t, []string{"incident.reported"}, events.subjects)
}

func TestIncidentCreateRejectsEmptyDescriptionAfterSanitization(t *testing.T) {
	svc, db, events := newIncidentFixture(t)
	school := seedIncidentSchool(t, db)

	_, err := svc.Create(context.Background(), dto.IncidentCreateRequest{
		SchoolID:    school.ID,
		Type:        "injury",
		Severity:    "low",
		Description: `<script>alert("x")</script>`,
		OccurredAt:  time.Now().UTC().Format(time.RFC3339),
	})
	require.ErrorIs(t, err, ErrIncidentDescriptionEmpty)
	require.Empty(t, events.subjects)
}

func TestIncidentCreateRejectsBadTimestamp(t *testing.T) {
	svc, db, _ := newIncidentFixture(t)
	school := seedIncidentSchool(t, db)

	_, err := svc.Create(context.Background(), dto.IncidentCreateRequest{
		SchoolID:    school.ID,
		Type:        "injury",
		Severity:    "low",
		Description: "Fell during recess",
		OccurredAt:  "yesterday afternoon",
	})
	require.ErrorIs(t, err, ErrIncidentInvalidTime)
}

func TestIncidentCreateSchoolNotFound(t *testing.T) {
	svc, _, _ := newIncidentFixture(t)

	_, err := svc.Create(context.Background(), dto.IncidentCreateRequest{
		SchoolID:    404,
		Type:        "injury",
		Severity:    "low",
		Description: "Fell during recess",
		OccurredAt:  time.Now().UTC().Format(time.RFC3339),
	})
	require.ErrorIs(t, err, ErrSchoolNotFound)
}

func TestIncidentResolveIsIdempotent(t *testing.T) {
	svc, db, _ := newIncidentFixture(t)
	school := seedIncidentSchool(t, db)

	report, err := svc.Create(context.Background(), dto.IncidentCreateRequest{
		SchoolID:    school.ID,
		Type:        "injury",
		Severity:    "medium",
		Description: "Fell during recess",
		OccurredAt:  time.Now().UTC().Format(time.RFC3339),
	})
	require.NoError(t, err)

	resolved, err := svc.Resolve(context.Background(), report.ID)
	require.NoError(t, err)
	require.Equal(t, models.IncidentStatusResolved, resolved.Status)
	require.NotNil(t, resolved.ResolvedAt)

	again, err := svc.Resolve(context.Background(), report.ID)
	require.NoError(t, err)
	require.Equal(t, resolved.ResolvedAt.Unix(), again.ResolvedAt.Unix())
}

func TestIncidentListFiltersByStatus(t *testing.T) {
	svc, db, _ := newIncidentFixture(t)
	school := seedIncidentSchool(t, db)

	first, err := svc.Create(context.Background(), dto.IncidentCreateRequest{
		SchoolID:    school.ID,
		Type:        "injury",
		Severity:    "low",
		Description: "Fell during recess",
		OccurredAt:  time.Now().UTC().Format(time.RFC3339),
	})
	require.NoError(t, err)

	_, err = svc.Create(context.Background(), dto.IncidentCreateRequest{
		SchoolID:    school.ID,
		Type:        "illness",
		Severity:    "high",
		Description: "Fever spike after lunch",
		OccurredAt:  time.Now().UTC().Format(time.RFC3339),
	})
	require.NoError(t, err)

	_, err = svc.Resolve(context.Background(), first.ID)
	require.NoError(t, err)

	open, meta, err := svc.List(context.Background(), school.ID, models.IncidentStatusOpen, 1, 20)
	require.NoError(t, err)
	require.Len(t, open, 1)
	require.Equal(t, "illness", open[0].Type)
	require.Equal(t, int64(1), meta.TotalItems)
}
