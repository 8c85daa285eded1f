package http

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	apperrors "yap-backend/internal/common/errors"
	"yap-backend/internal/common/middleware"
	"yap-backend/internal/features/lesson/models"
)

const wallet = "0x52908400098527886e0f7030069857d2e4169ee7"

type mockLessonService struct {
	mock.Mock
}

func (m *mockLessonService) CompleteLesson(ctx context.Context, req models.CompleteLessonRequest) (*models.CompletionResponse, error) {
	args := m.Called(ctx, req)
	r, _ := args.Get(0).(*models.CompletionResponse)
	return r, args.Error(1)
}

func (m *mockLessonService) ListCompletions(ctx context.Context, walletAddress string) ([]models.Completion, error) {
	args := m.Called(ctx, walletAddress)
	r, _ := args.Get(0).([]models.Completion)
	return r, args.Error(1)
}

func (m *mockLessonService) Stats(ctx context.Context, walletAddress string) (*models.Stats, error) {
	args := m.Called(ctx, walletAddress)
	r, _ := args.Get(0).(*models.Stats)
	return r, args.Error(1)
}

func (m *mockLessonService) Streak(ctx context.Context, walletAddress string) (*models.Streak, error) {
	args := m.Called(ctx, walletAddress)
	r, _ := args.Get(0).(*models.Streak)
	return r, args.Error(1)
}

func newRouter(svc *mockLessonService) *gin.Engine {
	gin.SetMode(gin.TestMode)
	r := gin.New()
	r.Use(middleware.RequestID())
	h := NewLessonHandler(svc, zap.NewNop())
	h.RegisterRoutes(r.Group("/api/v1"))
	h.RegisterLegacyRoutes(r.Group("/api"))
	return r
}

func postJSON(router http.Handler, path, body string) *httptest.ResponseRecorder {
	rec := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodPost, path, strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	router.ServeHTTP(rec, req)
	return rec
}

func TestCompleteLesson(t *testing.T) {
	svc := new(mockLessonService)
	svc.On("CompleteLesson", mock.Anything, models.CompleteLessonRequest{WalletAddress: wallet, LessonID: "lesson-1"}).
		Return(&models.CompletionResponse{Success: true, TokensEarned: 1, TransactionReference: "0xabc", RewardStatus: "issued"}, nil)
	router := newRouter(svc)

	for _, path := range []string{"/api/v1/lessons/complete", "/api/complete-lesson"} {
		rec := postJSON(router, path, `{"walletAddress":"`+wallet+`","lessonId":"lesson-1"}`)

		require.Equal(t, http.StatusOK, rec.Code, path)
		var body map[string]interface{}
		require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
		assert.Equal(t, true, body["success"])
		assert.Equal(t, float64(1), body["tokensEarned"])
		assert.Equal(t, "0xabc", body["transactionReference"])
		assert.Equal(t, false, body["alreadyCompleted"])
	}
	svc.AssertNumberOfCalls(t, "CompleteLesson", 2)
}

func TestCompleteLesson_Errors(t *testing.T) {
	tests := []struct {
		name       string
		err        error
		wantStatus int
		wantCode   apperrors.ErrorCode
	}{
		{name: "invalid input", err: apperrors.NewValidationError("lessonId", "lesson id is required"), wantStatus: http.StatusBadRequest, wantCode: apperrors.ErrCodeInvalidInput},
		{name: "storage", err: apperrors.NewStorageError("record completion", assert.AnError), wantStatus: http.StatusServiceUnavailable, wantCode: apperrors.ErrCodeStorageUnavailable},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			svc := new(mockLessonService)
			svc.On("CompleteLesson", mock.Anything, mock.Anything).Return(nil, tt.err)

			rec := postJSON(newRouter(svc), "/api/v1/lessons/complete", `{"walletAddress":"`+wallet+`","lessonId":""}`)

			assert.Equal(t, tt.wantStatus, rec.Code)
			var body middleware.ErrorResponse
			require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
			assert.Equal(t, tt.wantCode, body.Error.Code)
		})
	}
}

func TestCompleteLesson_MalformedBody(t *testing.T) {
	svc := new(mockLessonService)

	rec := postJSON(newRouter(svc), "/api/v1/lessons/complete", `{"walletAddress":`)

	assert.Equal(t, http.StatusBadRequest, rec.Code)
	svc.AssertNotCalled(t, "CompleteLesson", mock.Anything, mock.Anything)
}

func TestProjections(t *testing.T) {
	svc := new(mockLessonService)
	svc.On("ListCompletions", mock.Anything, wallet).Return([]models.Completion{{LessonID: "lesson-1", TokensEarned: 1}}, nil)
	svc.On("Stats", mock.Anything, wallet).Return(&models.Stats{TotalLessons: 1, TotalTokens: 1}, nil)
	svc.On("Streak", mock.Anything, wallet).Return(&models.Streak{Streak: 3}, nil)
	router := newRouter(svc)

	tests := []struct {
		method string
		path   string
		want   string
	}{
		{http.MethodGet, "/api/v1/users/" + wallet + "/lessons", `"lessonId":"lesson-1"`},
		{http.MethodGet, "/api/user-lessons/" + wallet, `"lessonId":"lesson-1"`},
		{http.MethodGet, "/api/v1/users/" + wallet + "/stats", `{"totalLessons":1,"totalTokens":1}`},
		{http.MethodGet, "/api/user-stats/" + wallet, `{"totalLessons":1,"totalTokens":1}`},
		{http.MethodGet, "/api/v1/users/" + wallet + "/streak", `{"streak":3}`},
		{http.MethodPost, "/api/v1/users/" + wallet + "/streak", `{"streak":3}`},
		{http.MethodPost, "/api/user-stats/" + wallet + "/streak", `{"streak":3}`},
	}

	for _, tt := range tests {
		t.Run(tt.method+" "+tt.path, func(t *testing.T) {
			rec := httptest.NewRecorder()
			router.ServeHTTP(rec, httptest.NewRequest(tt.method, tt.path, nil))

			assert.Equal(t, http.StatusOK, rec.Code)
			assert.Contains(t, rec.Body.String(), tt.want)
		})
	}
}

func TestCompleteLesson_Guarded(t *testing.T) {
	svc := new(mockLessonService)
	gin.SetMode(gin.TestMode)
	r := gin.New()
	blocked := func(c *gin.Context) { c.AbortWithStatus(http.StatusTooManyRequests) }
	h := NewLessonHandler(svc, zap.NewNop())
	h.RegisterRoutes(r.Group("/api/v1"), blocked)
	h.RegisterLegacyRoutes(r.Group("/api"), blocked)

	for _, path := range []string{"/api/v1/lessons/complete", "/api/complete-lesson"} {
		rec := postJSON(r, path, `{}`)
		assert.Equal(t, http.StatusTooManyRequests, rec.Code, path)
	}
	svc.AssertNotCalled(t, "CompleteLesson", mock.Anything, mock.Anything)
}
