package handlers

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/golang/mock/gomock"
	"github.com/sbilibin2017/gw-user-service/internal/apperrors"
	"github.com/sbilibin2017/gw-user-service/internal/models"
	"github.com/sbilibin2017/gw-user-service/internal/services"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRegisterHandler_Success(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	mockSvc := NewMockRegisterer(ctrl)
	uploads := testUploads(t)

	var staged []string
	mockSvc.EXPECT().
		Register(gomock.Any(), gomock.Any()).
		DoAndReturn(func(_ context.Context, in services.RegisterInput) (*models.User, error) {
			assert.Equal(t, "Alice", in.FullName)
			assert.Equal(t, "alice@example.com", in.Email)
			assert.Equal(t, "alice", in.Username)
			assert.Equal(t, "pw123", in.Password)
			assert.Equal(t, uploads.TempDir, filepath.Dir(in.AvatarPath))
			assert.True(t, strings.HasSuffix(in.AvatarPath, ".png"))
			assert.NotEmpty(t, in.CoverImagePath)

			content, err := os.ReadFile(in.AvatarPath)
			assert.NoError(t, err)
			assert.Equal(t, "fake-image", string(content))

			staged = append(staged, in.AvatarPath, in.CoverImagePath)
			return testUser, nil
		})

	body, contentType := multipartBody(t,
		map[string]string{"fullName": "Alice", "email": "alice@example.com", "username": "alice", "password": "pw123"},
		map[string]string{"avatar": "me.png", "coverImage": "cover.jpg"},
	)
	req := httptest.NewRequest(http.MethodPost, "/register", body)
	req.Header.Set("Content-Type", contentType)
	rr := httptest.NewRecorder()

	NewRegisterHandler(mockSvc, uploads).ServeHTTP(rr, req)

	assert.Equal(t, http.StatusCreated, rr.Code)
	resp := decodeResponse(t, rr)
	assert.True(t, resp.Success)
	assert.Equal(t, "User registered successfully", resp.Message)
	data, ok := resp.Data.(map[string]any)
	require.True(t, ok)
	assert.Equal(t, "alice", data["username"])
	assert.NotContains(t, data, "password")
	assert.NotContains(t, data, "refreshToken")

	require.Len(t, staged, 2)
	for _, path := range staged {
		_, err := os.Stat(path)
		assert.True(t, errors.Is(err, os.ErrNotExist), "staged file %s must be removed", path)
	}
}

func TestRegisterHandler_Errors(t *testing.T) {
	tests := []struct {
		name         string
		contentType  string
		mockSetup    func(m *MockRegisterer)
		expectedCode int
		expectedMsg  string
	}{
		{
			name:         "not multipart",
			contentType:  "application/json",
			mockSetup:    func(m *MockRegisterer) {},
			expectedCode: http.StatusBadRequest,
			expectedMsg:  "invalid multipart form",
		},
		{
			name: "conflict",
			mockSetup: func(m *MockRegisterer) {
				m.EXPECT().Register(gomock.Any(), gomock.Any()).
					Return(nil, apperrors.Conflict("User with email or username already exists"))
			},
			expectedCode: http.StatusConflict,
			expectedMsg:  "User with email or username already exists",
		},
		{
			name: "upload error",
			mockSetup: func(m *MockRegisterer) {
				m.EXPECT().Register(gomock.Any(), gomock.Any()).
					Return(nil, apperrors.Upload("Error while uploading avatar", errors.New("s3 down")))
			},
			expectedCode: http.StatusBadRequest,
			expectedMsg:  "Error while uploading avatar",
		},
		{
			name: "internal error",
			mockSetup: func(m *MockRegisterer) {
				m.EXPECT().Register(gomock.Any(), gomock.Any()).Return(nil, errors.New("database error"))
			},
			expectedCode: http.StatusInternalServerError,
			expectedMsg:  "Internal server error",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ctrl := gomock.NewController(t)
			defer ctrl.Finish()

			mockSvc := NewMockRegisterer(ctrl)
			tt.mockSetup(mockSvc)

			body, contentType := multipartBody(t,
				map[string]string{"fullName": "Alice", "email": "a@x.com", "username": "alice", "password": "pw"},
				map[string]string{"avatar": "me.png"},
			)
			if tt.contentType != "" {
				contentType = tt.contentType
			}
			req := httptest.NewRequest(http.MethodPost, "/register", body)
			req.Header.Set("Content-Type", contentType)
			rr := httptest.NewRecorder()

			NewRegisterHandler(mockSvc, testUploads(t)).ServeHTTP(rr, req)

			assert.Equal(t, tt.expectedCode, rr.Code)
			resp := decodeResponse(t, rr)
			assert.False(t, resp.Success)
			assert.Nil(t, resp.Data)
			assert.Equal(t, tt.expectedMsg, resp.Message)
		})
	}
}

func TestRegisterHandler_TooLarge(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	mockSvc := NewMockRegisterer(ctrl)
	uploads := UploadConfig{TempDir: t.TempDir(), MaxBytes: 64}

	body, contentType := multipartBody(t,
		map[string]string{"fullName": strings.Repeat("A", 256)},
		map[string]string{"avatar": "me.png"},
	)
	req := httptest.NewRequest(http.MethodPost, "/register", body)
	req.Header.Set("Content-Type", contentType)
	rr := httptest.NewRecorder()

	NewRegisterHandler(mockSvc, uploads).ServeHTTP(rr, req)

	assert.Equal(t, http.StatusBadRequest, rr.Code)
}
