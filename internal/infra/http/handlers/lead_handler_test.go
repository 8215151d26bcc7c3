package handlers

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/skylineestates/leaddesk/internal/entity"
	"github.com/skylineestates/leaddesk/internal/infra/queue"
	"github.com/skylineestates/leaddesk/internal/usecase"
)

// MockQueueProducer
type MockQueueProducer struct {
	mock.Mock
}

func (m *MockQueueProducer) PublishLeadCaptured(ctx context.Context, payload queue.LeadCapturedPayload) error {
	args := m.Called(ctx, payload)
	return args.Error(0)
}

func newLeadHandler(repo *MockLeadRepository, producer *MockQueueProducer) *LeadHandler {
	capture := usecase.NewCaptureLeadUseCase(repo, producer)
	return NewLeadHandler(repo, capture)
}

func captureRequest(t *testing.T, input usecase.CaptureLeadInput) *http.Request {
	t.Helper()
	body, err := json.Marshal(input)
	require.NoError(t, err)
	req := httptest.NewRequest("POST", "/api/leads/capture", bytes.NewReader(body))
	req.RemoteAddr = "203.0.113.7:1234"
	return req
}

func TestHandleCaptureSuccess(t *testing.T) {
	repo := new(MockLeadRepository)
	producer := new(MockQueueProducer)
	repo.On("Create", mock.Anything, mock.Anything).Return(nil)
	producer.On("PublishLeadCaptured", mock.Anything, mock.Anything).Return(nil)

	rec := httptest.NewRecorder()
	newLeadHandler(repo, producer).HandleCapture(rec, captureRequest(t, usecase.CaptureLeadInput{
		Name:    "Asha Rao",
		Phone:   "+91 98765 43210",
		Email:   "ASHA@X.COM",
		Message: "Interested in the Whitefield plot",
	}))

	require.Equal(t, http.StatusCreated, rec.Code)

	var lead entity.Lead
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &lead))
	assert.Equal(t, "asha@x.com", lead.Email)
	assert.Equal(t, "website", lead.Source)
	assert.Equal(t, "new", lead.Status)

	producer.AssertCalled(t, "PublishLeadCaptured", mock.Anything, mock.MatchedBy(func(p queue.LeadCapturedPayload) bool {
		return p.Name == "Asha Rao" && p.Source == "website"
	}))
}

func TestHandleCaptureValidation(t *testing.T) {
	repo := new(MockLeadRepository)
	producer := new(MockQueueProducer)
	h := newLeadHandler(repo, producer)

	cases := []usecase.CaptureLeadInput{
		{Name: "", Phone: "9876543210"},
		{Name: "Asha", Phone: ""},
		{Name: "Asha", Phone: "123"},
		{Name: "Asha", Phone: "9876543210", Email: "not-an-email"},
	}
	for _, input := range cases {
		rec := httptest.NewRecorder()
		h.HandleCapture(rec, captureRequest(t, input))
		assert.Equal(t, http.StatusBadRequest, rec.Code, "input %+v", input)
	}

	repo.AssertNotCalled(t, "Create", mock.Anything, mock.Anything)
}

func TestHandleCaptureQueueFailureStillSucceeds(t *testing.T) {
	repo := new(MockLeadRepository)
	producer := new(MockQueueProducer)
	repo.On("Create", mock.Anything, mock.Anything).Return(nil)
	producer.On("PublishLeadCaptured", mock.Anything, mock.Anything).Return(assert.AnError)

	rec := httptest.NewRecorder()
	newLeadHandler(repo, producer).HandleCapture(rec, captureRequest(t, usecase.CaptureLeadInput{
		Name:  "Asha Rao",
		Phone: "9876543210",
	}))

	// the lead is stored; a broken notification pipe is not the visitor's problem
	assert.Equal(t, http.StatusCreated, rec.Code)
}

func TestHandleCaptureRateLimit(t *testing.T) {
	repo := new(MockLeadRepository)
	producer := new(MockQueueProducer)
	repo.On("Create", mock.Anything, mock.Anything).Return(nil)
	producer.On("PublishLeadCaptured", mock.Anything, mock.Anything).Return(nil)

	h := newLeadHandler(repo, producer)
	input := usecase.CaptureLeadInput{Name: "Asha", Phone: "9876543210"}

	var lastCode int
	for i := 0; i < 11; i++ {
		rec := httptest.NewRecorder()
		h.HandleCapture(rec, captureRequest(t, input))
		lastCode = rec.Code
	}

	assert.Equal(t, http.StatusTooManyRequests, lastCode)
}

func TestHandleStats(t *testing.T) {
	repo := new(MockLeadRepository)
	repo.On("Stats", mock.Anything).Return(&entity.LeadStats{
		Total:          10,
		ByStatus:       map[string]int{"new": 7, "converted": 3},
		ConversionRate: 30.0,
		ThisMonth:      4,
	}, nil)

	rec := httptest.NewRecorder()
	newLeadHandler(repo, new(MockQueueProducer)).HandleStats(rec, httptest.NewRequest("GET", "/api/leads/stats", nil))

	require.Equal(t, http.StatusOK, rec.Code)

	var stats entity.LeadStats
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &stats))
	assert.Equal(t, 10, stats.Total)
	assert.Equal(t, 30.0, stats.ConversionRate)
}
