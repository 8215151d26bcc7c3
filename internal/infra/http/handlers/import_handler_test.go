package handlers

import (
	"bytes"
	"context"
	"encoding/json"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/skylineestates/leaddesk/internal/entity"
	"github.com/skylineestates/leaddesk/internal/infra/spreadsheet"
	"github.com/skylineestates/leaddesk/internal/usecase"
)

// MockLeadRepository
type MockLeadRepository struct {
	mock.Mock
}

func (m *MockLeadRepository) Create(ctx context.Context, lead *entity.Lead) error {
	args := m.Called(ctx, lead)
	return args.Error(0)
}

func (m *MockLeadRepository) List(ctx context.Context) ([]entity.Lead, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]entity.Lead), args.Error(1)
}

func (m *MockLeadRepository) FindByID(ctx context.Context, id string) (*entity.Lead, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*entity.Lead), args.Error(1)
}

func (m *MockLeadRepository) Update(ctx context.Context, lead *entity.Lead) error {
	args := m.Called(ctx, lead)
	return args.Error(0)
}

func (m *MockLeadRepository) Delete(ctx context.Context, id string) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}

func (m *MockLeadRepository) Stats(ctx context.Context) (*entity.LeadStats, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*entity.LeadStats), args.Error(1)
}

func multipartUpload(t *testing.T, filename, content string) (*bytes.Buffer, string) {
	t.Helper()
	var body bytes.Buffer
	w := multipart.NewWriter(&body)
	part, err := w.CreateFormFile("file", filename)
	require.NoError(t, err)
	_, err = part.Write([]byte(content))
	require.NoError(t, err)
	require.NoError(t, w.Close())
	return &body, w.FormDataContentType()
}

func newImportHandler(repo *MockLeadRepository) *ImportHandler {
	uc := usecase.NewImportLeadsUseCase(repo, spreadsheet.NewParser())
	return NewImportHandler(uc)
}

func TestHandlePreviewSuccess(t *testing.T) {
	repo := new(MockLeadRepository)
	repo.On("List", mock.Anything).Return([]entity.Lead{{Phone: "9876543210"}}, nil)

	file := strings.Join([]string{
		"Name,Phone,Email",
		"Asha Rao,9876543210,asha@x.com",
		"Ravi Kumar,9000000001,",
	}, "\n")
	body, contentType := multipartUpload(t, "leads.csv", file)

	req := httptest.NewRequest("POST", "/api/leads/import", body)
	req.Header.Set("Content-Type", contentType)
	rec := httptest.NewRecorder()

	newImportHandler(repo).HandlePreview(rec, req)

	require.Equal(t, http.StatusOK, rec.Code)

	var resp ImportPreviewResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	assert.Len(t, resp.Accepted, 1)
	assert.Len(t, resp.Duplicates, 1)
	assert.True(t, resp.NeedsResolution)

	// preview must not write anything
	repo.AssertNotCalled(t, "Create", mock.Anything, mock.Anything)
}

func TestHandlePreviewMissingColumns(t *testing.T) {
	repo := new(MockLeadRepository)

	body, contentType := multipartUpload(t, "leads.csv", "Budget,Location\n50L,Whitefield")
	req := httptest.NewRequest("POST", "/api/leads/import", body)
	req.Header.Set("Content-Type", contentType)
	rec := httptest.NewRecorder()

	newImportHandler(repo).HandlePreview(rec, req)

	require.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Contains(t, rec.Body.String(), "missing required columns")
	assert.Contains(t, rec.Body.String(), "Budget")
}

func TestHandlePreviewUnsupportedExtension(t *testing.T) {
	repo := new(MockLeadRepository)

	body, contentType := multipartUpload(t, "leads.pdf", "Name,Phone\nA,9876543210")
	req := httptest.NewRequest("POST", "/api/leads/import", body)
	req.Header.Set("Content-Type", contentType)
	rec := httptest.NewRecorder()

	newImportHandler(repo).HandlePreview(rec, req)

	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestHandleCommitImportAll(t *testing.T) {
	repo := new(MockLeadRepository)
	repo.On("Create", mock.Anything, mock.Anything).Return(nil)

	reqBody, _ := json.Marshal(ImportCommitRequest{
		Resolution: usecase.ResolutionImportAll,
		Accepted:   []entity.Lead{{Name: "A", Phone: "9000000001"}},
		Duplicates: []entity.Lead{{Name: "B", Phone: "9876543210"}},
	})

	req := httptest.NewRequest("POST", "/api/leads/import/commit", bytes.NewReader(reqBody))
	rec := httptest.NewRecorder()

	newImportHandler(repo).HandleCommit(rec, req)

	require.Equal(t, http.StatusOK, rec.Code)

	var resp ImportCommitResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	assert.Equal(t, 2, resp.Succeeded)
	assert.Equal(t, 0, resp.Failed)

	repo.AssertNumberOfCalls(t, "Create", 2)
}

func TestHandleCommitCancel(t *testing.T) {
	repo := new(MockLeadRepository)

	reqBody, _ := json.Marshal(ImportCommitRequest{
		Resolution: usecase.ResolutionCancel,
		Accepted:   []entity.Lead{{Name: "A", Phone: "9000000001"}},
	})

	req := httptest.NewRequest("POST", "/api/leads/import/commit", bytes.NewReader(reqBody))
	rec := httptest.NewRecorder()

	newImportHandler(repo).HandleCommit(rec, req)

	require.Equal(t, http.StatusOK, rec.Code)

	var resp ImportCommitResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	assert.True(t, resp.Cancelled)
	assert.Equal(t, 0, resp.Succeeded)

	repo.AssertNotCalled(t, "Create", mock.Anything, mock.Anything)
}

func TestHandleCommitSkipDuplicatesWithNothingAccepted(t *testing.T) {
	repo := new(MockLeadRepository)

	reqBody, _ := json.Marshal(ImportCommitRequest{
		Resolution: usecase.ResolutionSkipDuplicates,
		Duplicates: []entity.Lead{{Name: "B", Phone: "9876543210"}},
	})

	req := httptest.NewRequest("POST", "/api/leads/import/commit", bytes.NewReader(reqBody))
	rec := httptest.NewRecorder()

	newImportHandler(repo).HandleCommit(rec, req)

	assert.Equal(t, http.StatusBadRequest, rec.Code)
	repo.AssertNotCalled(t, "Create", mock.Anything, mock.Anything)
}
