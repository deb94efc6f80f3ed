package handler_test

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gofiber/fiber/v2"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/require"

	"github.com/noah-isme/nido-go-api/internal/dto"
	"github.com/noah-isme/nido-go-api/internal/handler"
	"github.com/noah-isme/nido-go-api/internal/service"
)

type mockRegistrationService struct {
	availability dto.AvailabilityResponse
	entry        dto.WaitlistEntryResponse
	session      dto.PaymentSessionResponse
	err          error

	lastProgram string
	lastPayload dto.WaitlistCreateRequest
}

func (m *mockRegistrationService) CheckAvailability(_ context.Context, _ uint, program string) (dto.AvailabilityResponse, error) {
	m.lastProgram = program
	if m.err != nil {
		return dto.AvailabilityResponse{}, m.err
	}
	return m.availability, nil
}

func (m *mockRegistrationService) CreateWaitlistEntry(_ context.Context, payload dto.WaitlistCreateRequest) (dto.WaitlistEntryResponse, error) {
	m.lastPayload = payload
	if m.err != nil {
		return dto.WaitlistEntryResponse{}, m.err
	}
	return m.entry, nil
}

func (m *mockRegistrationService) InitiateWaitlistPayment(_ context.Context, _ dto.WaitlistPaymentRequest) (dto.PaymentSessionResponse, error) {
	if m.err != nil {
		return dto.PaymentSessionResponse{}, m.err
	}
	return m.session, nil
}

func decodeResponse(t *testing.T, resp *http.Response, target interface{}) {
	t.Helper()

	body, err := io.ReadAll(resp.Body)
	require.NoError(t, err)
	require.NoError(t, resp.Body.Close())
	require.NoError(t, json.Unmarshal(body, target))
}

func newRegistrationApp(svc service.RegistrationService) *fiber.App {
	app := fiber.New()
	handler.NewRegistrationHandler(svc, zerolog.New(io.Discard)).Register(app.Group("/api/v1/registration"))
	return app
}

func TestRegistrationHandler_Availability(t *testing.T) {
	svc := &mockRegistrationService{availability: dto.AvailabilityResponse{
		SchoolID:        3,
		Program:         "infant",
		ProgramCapacity: 50,
		AvailableSeats:  12,
		HasAvailability: true,
	}}
	app := newRegistrationApp(svc)

	req := httptest.NewRequest(http.MethodGet, "/api/v1/registration/availability/3?program=Infant", nil)
	resp, err := app.Test(req)
	require.NoError(t, err)
	require.Equal(t, fiber.StatusOK, resp.StatusCode)

	var response struct {
		Success bool                     `json:"success"`
		Data    dto.AvailabilityResponse `json:"data"`
	}
	decodeResponse(t, resp, &response)
	require.True(t, response.Success)
	require.Equal(t, 12, response.Data.AvailableSeats)
	require.Equal(t, "Infant", svc.lastProgram)
}

func TestRegistrationHandler_AvailabilityErrors(t *testing.T) {
	cases := []struct {
		name       string
		err        error
		statusCode int
	}{
		{name: "program missing", err: service.ErrProgramRequired, statusCode: fiber.StatusBadRequest},
		{name: "school missing", err: service.ErrSchoolNotFound, statusCode: fiber.StatusNotFound},
		{name: "generic", err: errors.New("boom"), statusCode: fiber.StatusInternalServerError},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			app := newRegistrationApp(&mockRegistrationService{err: tc.err})

			req := httptest.NewRequest(http.MethodGet, "/api/v1/registration/availability/3?program=infant", nil)
			resp, err := app.Test(req)
			require.NoError(t, err)
			require.Equal(t, tc.statusCode, resp.StatusCode)
		})
	}
}

func TestRegistrationHandler_CreateWaitlistEntry(t *testing.T) {
	svc := &mockRegistrationService{entry: dto.WaitlistEntryResponse{ID: 9, LeadID: 5, Position: 2}}
	app := newRegistrationApp(svc)

	body, err := json.Marshal(dto.WaitlistCreateRequest{LeadID: 5, SchoolID: 3, Program: "infant"})
	require.NoError(t, err)

	req := httptest.NewRequest(http.MethodPost, "/api/v1/registration/waitlist", bytes.NewReader(body))
	req.Header.Set("Content-Type", "application/json")

	resp, err := app.Test(req)
	require.NoError(t, err)
	require.Equal(t, fiber.StatusCreated, resp.StatusCode)
	require.Equal(t, uint(5), svc.lastPayload.LeadID)

	var response struct {
		Data dto.WaitlistEntryResponse `json:"data"`
	}
	decodeResponse(t, resp, &response)
	require.Equal(t, 2, response.Data.Position)
}

func TestRegistrationHandler_WaitlistLeadNotFound(t *testing.T) {
	app := newRegistrationApp(&mockRegistrationService{err: service.ErrLeadNotFound})

	body, err := json.Marshal(dto.WaitlistCreateRequest{LeadID: 5, SchoolID: 3, Program: "infant"})
	require.NoError(t, err)

	req := httptest.NewRequest(http.MethodPost, "/api/v1/registration/waitlist", bytes.NewReader(body))
	req.Header.Set("Content-Type", "application/json")

	resp, err := app.Test(req)
	require.NoError(t, err)
	require.Equal(t, fiber.StatusNotFound, resp.StatusCode)
}

func TestRegistrationHandler_InitiatePayment(t *testing.T) {
	svc := &mockRegistrationService{session: dto.PaymentSessionResponse{TransactionID: 11, Status: "pending"}}
	app := newRegistrationApp(svc)

	body, err := json.Marshal(dto.WaitlistPaymentRequest{
		LeadID:      5,
		SchoolID:    3,
		Amount:      15000,
		Currency:    "usd",
		PaymentType: "waitlist_fee",
	})
	require.NoError(t, err)

	req := httptest.NewRequest(http.MethodPost, "/api/v1/registration/waitlist/payment", bytes.NewReader(body))
	req.Header.Set("Content-Type", "application/json")

	resp, err := app.Test(req)
	require.NoError(t, err)
	require.Equal(t, fiber.StatusCreated, resp.StatusCode)

	var response struct {
		Data dto.PaymentSessionResponse `json:"data"`
	}
	decodeResponse(t, resp, &response)
	require.Equal(t, uint(11), response.Data.TransactionID)
	require.Empty(t, response.Data.RedirectURL)
}
