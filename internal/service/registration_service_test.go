package service

import (
	"context"
	"fmt"
	"io"
	"strings"
	"testing"

	"github.com/alicebob/miniredis/v2"
	"github.com/go-playground/validator/v10"
	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/require"
	"gorm.io/datatypes"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"

	"github.com/noah-isme/nido-go-api/internal/dto"
	"github.com/noah-isme/nido-go-api/internal/models"
	"github.com/noah-isme/nido-go-api/internal/repository"
)

func testLogger() zerolog.Logger {
	return zerolog.New(io.Discard)
}

func setupServiceDB(t *testing.T, schemas ...interface{}) *gorm.DB {
	t.Helper()

	dsn := fmt.Sprintf("file:%s?mode=memory&cache=shared", strings.ReplaceAll(t.Name(), "/", "_"))
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{})
	require.NoError(t, err)
	require.NoError(t, db.AutoMigrate(schemas...))

	return db
}

func testRedis(t *testing.T) *redis.Client {
	t.Helper()

	server := miniredis.RunT(t)
	return redis.NewClient(&redis.Options{Addr: server.Addr()})
}

type recordingPublisher struct {
	subjects []string
}

func (p *recordingPublisher) Publish(_ context.Context, subject string, _ interface{}) error {
	p.subjects = append(p.subjects, subject)
	return nil
}

func newRegistrationFixture(t *testing.T) (RegistrationService, *gorm.DB, *recordingPublisher) {
	t.Helper()

	db := setupServiceDB(t,
		&models.School{}, &models.Lead{},
		&models.WaitlistEntry{}, &models.WaitlistCounter{},
		&models.Transaction{},
	)
	events := &recordingPublisher{}
	svc := NewRegistrationService(
		repository.NewSchoolRepository(db),
		repository.NewLeadRepository(db),
		repository.NewWaitlistRepository(db),
		repository.NewTransactionRepository(db),
		nil,
		events,
		validator.New(),
		testLogger(),
	)

	return svc, db, events
}

func TestCheckAvailabilitySplitsCapacityAcrossPrograms(t *testing.T) {
	svc, db, _ := newRegistrationFixture(t)

	school := models.School{
		Name:     "Sunny Hill",
		Capacity: 8,
		Programs: datatypes.NewJSONSlice([]string{"Infant", "Toddler"}),
		Status:   models.SchoolStatusActive,
	}
	require.NoError(t, db.Create(&school).Error)

	for i := 0; i < 5; i++ {
		lead := models.Lead{SchoolID: school.ID, Program: "infant", Status: models.LeadStatusEnrolled}
		require.NoError(t, db.Create(&lead).Error)
	}
	// A lead in another program must not count.
	other := models.Lead{SchoolID: school.ID, Program: "toddler", Status: models.LeadStatusEnrolled}
	require.NoError(t, db.Create(&other).Error)

	result, err := svc.CheckAvailability(context.Background(), school.ID, " Infant ")
	require.NoError(t, err)
	require.Equal(t, "infant", result.Program)
	require.Equal(t, 4, result.ProgramCapacity)
	require.Equal(t, int64(5), result.EnrolledCount)
	require.Equal(t, 0, result.AvailableSeats)
	require.False(t, result.HasAvailability)
}

func TestCheckAvailabilityDefaultsCapacityAndProgramCount(t *testing.T) {
	svc, db, _ := newRegistrationFixture(t)

	school := models.School{Name: "Open Meadow", Capacity: 0, Status: models.SchoolStatusActive}
	require.NoError(t, db.Create(&school).Error)

	result, err := svc.CheckAvailability(context.Background(), school.ID, "preschool")
	require.NoError(t, err)
	require.Equal(t, 100, result.ProgramCapacity)
	require.Equal(t, 100, result.AvailableSeats)
	require.True(t, result.HasAvailability)
}

func TestCheckAvailabilityCountsWaitlist(t *testing.T) {
	svc, db, _ := newRegistrationFixture(t)

	school := models.School{
		Name:     "River Bend",
		Capacity: 10,
		Programs: datatypes.NewJSONSlice([]string{"preschool"}),
		Status:   models.SchoolStatusActive,
	}
	require.NoError(t, db.Create(&school).Error)

	for i := 1; i <= 3; i++ {
		entry := models.WaitlistEntry{
			LeadID:   uint(i),
			SchoolID: school.ID,
			Program:  "preschool",
			Position: i,
			Status:   models.WaitlistStatusActive,
		}
		require.NoError(t, db.Create(&entry).Error)
	}

	result, err := svc.CheckAvailability(context.Background(), school.ID, "Preschool")
	require.NoError(t, err)
	require.Equal(t, int64(3), result.WaitlistCount)
}

func TestCheckAvailabilityRequiresProgram(t *testing.T) {
	svc, _, _ := newRegistrationFixture(t)

	_, err := svc.CheckAvailability(context.Background(), 1, "   ")
	require.ErrorIs(t, err, ErrProgramRequired)
}

func TestCheckAvailabilitySchoolNotFound(t *testing.T) {
	svc, _, _ := newRegistrationFixture(t)

	_, err := svc.CheckAvailability(context.Background(), 999, "infant")
	require.ErrorIs(t, err, ErrSchoolNotFound)
}

func TestCreateWaitlistEntryAssignsSequentialPositions(t *testing.T) {
	svc, db, events := newRegistrationFixture(t)

	school := models.School{Name: "Cedar Grove", Capacity: 10, Status: models.SchoolStatusActive}
	require.NoError(t, db.Create(&school).Error)

	leads := make([]models.Lead, 3)
	for i := range leads {
		leads[i] = models.Lead{SchoolID: school.ID, Program: "toddler", Status: models.LeadStatusNew}
		require.NoError(t, db.Create(&leads[i]).Error)
	}

	for i, lead := range leads {
		entry, err := svc.CreateWaitlistEntry(context.Background(), dto.WaitlistCreateRequest{
			LeadID:   lead.ID,
			SchoolID: school.ID,
			Program:  "Toddler",
		})
		require.NoError(t, err)
		require.Equal(t, i+1, entry.Position)
		require.Equal(t, "toddler", entry.Program)
		require.Equal(t, models.WaitlistStatusActive, entry.Status)
	}

	require.Len(t, events.subjects, 3)
	require.Equal(t, "waitlist.created", events.subjects[0])
}

func TestCreateWaitlistEntryIdempotentByLead(t *testing.T) {
	svc, db, events := newRegistrationFixture(t)

	school := models.School{Name: "Cedar Grove", Capacity: 10, Status: models.SchoolStatusActive}
	require.NoError(t, db.Create(&school).Error)

	first := models.Lead{SchoolID: school.ID, Program: "toddler", Status: models.LeadStatusNew}
	second := models.Lead{SchoolID: school.ID, Program: "toddler", Status: models.LeadStatusNew}
	require.NoError(t, db.Create(&first).Error)
	require.NoError(t, db.Create(&second).Error)

	payload := dto.WaitlistCreateRequest{LeadID: first.ID, SchoolID: school.ID, Program: "toddler"}

	created, err := svc.CreateWaitlistEntry(context.Background(), payload)
	require.NoError(t, err)
	require.Equal(t, 1, created.Position)

	// Resubmitting returns the original entry and does not advance the counter.
	repeated, err := svc.CreateWaitlistEntry(context.Background(), payload)
	require.NoError(t, err)
	require.Equal(t, created.ID, repeated.ID)
	require.Equal(t, 1, repeated.Position)

	next, err := svc.CreateWaitlistEntry(context.Background(), dto.WaitlistCreateRequest{
		LeadID:   second.ID,
		SchoolID: school.ID,
		Program:  "toddler",
	})
	require.NoError(t, err)
	require.Equal(t, 2, next.Position)

	require.Len(t, events.subjects, 2)
}

func TestCreateWaitlistEntryLeadNotFound(t *testing.T) {
	svc, _, _ := newRegistrationFixture(t)

	_, err := svc.CreateWaitlistEntry(context.Background(), dto.WaitlistCreateRequest{
		LeadID:   42,
		SchoolID: 1,
		Program:  "infant",
	})
	require.ErrorIs(t, err, ErrLeadNotFound)
}

func TestInitiateWaitlistPaymentCreatesPendingTransaction(t *testing.T) {
	svc, db, _ := newRegistrationFixture(t)

	school := models.School{Name: "Cedar Grove", Capacity: 10, Status: models.SchoolStatusActive}
	require.NoError(t, db.Create(&school).Error)
	lead := models.Lead{SchoolID: school.ID, Program: "toddler", Status: models.LeadStatusWaitlisted}
	require.NoError(t, db.Create(&lead).Error)

	session, err := svc.InitiateWaitlistPayment(context.Background(), dto.WaitlistPaymentRequest{
		LeadID:      lead.ID,
		SchoolID:    school.ID,
		Amount:      15000,
		Currency:    "USD",
		PaymentType: "waitlist_fee",
		Description: "waitlist deposit",
	})
	require.NoError(t, err)
	require.Equal(t, models.TransactionStatusPending, session.Status)
	require.Empty(t, session.RedirectURL)

	pending, err := repository.NewTransactionRepository(db).ListPendingByLead(context.Background(), lead.ID)
	require.NoError(t, err)
	require.Len(t, pending, 1)
	require.Equal(t, int64(15000), pending[0].Amount)
	require.Equal(t, "usd", pending[0].Currency)
	require.Equal(t, fmt.Sprintf("%d", school.ID), pending[0].Metadata["school_id"])
}

func TestInitiateWaitlistPaymentLeadNotFound(t *testing.T) {
	svc, _, _ := newRegistrationFixture(t)

	_, err := svc.InitiateWaitlistPayment(context.Background(), dto.WaitlistPaymentRequest{
		LeadID:      77,
		SchoolID:    1,
		Amount:      5000,
		Currency:    "usd",
		PaymentType: "waitlist_fee",
	})
	require.ErrorIs(t, err, ErrLeadNotFound)
}

func TestInitiateWaitlistPaymentRejectsInvalidAmount(t *testing.T) {
	svc, _, _ := newRegistrationFixture(t)

	_, err := svc.InitiateWaitlistPayment(context.Background(), dto.WaitlistPaymentRequest{
		LeadID:      1,
		SchoolID:    1,
		Amount:      0,
		Currency:    "usd",
		PaymentType: "waitlist_fee",
	})
	require.Error(t, err)
}
