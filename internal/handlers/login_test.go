package handlers

import (
	"bytes"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/golang/mock/gomock"
	"github.com/sbilibin2017/gw-user-service/internal/apperrors"
	"github.com/sbilibin2017/gw-user-service/internal/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoginHandler(t *testing.T) {
	tests := []struct {
		name         string
		body         func(t *testing.T) *bytes.Buffer
		mockSetup    func(m *MockLoginer)
		expectedCode int
		expectedMsg  string
		wantCookies  bool
	}{
		{
			name: "success",
			body: func(t *testing.T) *bytes.Buffer {
				return jsonBody(t, models.LoginRequest{Username: "alice", Password: "pw123"})
			},
			mockSetup: func(m *MockLoginer) {
				m.EXPECT().Login(gomock.Any(), "alice", "", "pw123").
					Return(&models.Session{User: testUser, AccessToken: "ACCESS", RefreshToken: "REFRESH"}, nil)
			},
			expectedCode: http.StatusOK,
			expectedMsg:  "User logged in successfully",
			wantCookies:  true,
		},
		{
			name:         "invalid JSON",
			body:         func(t *testing.T) *bytes.Buffer { return bytes.NewBufferString("{invalid json}") },
			mockSetup:    func(m *MockLoginer) {},
			expectedCode: http.StatusBadRequest,
			expectedMsg:  "invalid request body",
		},
		{
			name: "wrong credentials",
			body: func(t *testing.T) *bytes.Buffer {
				return jsonBody(t, models.LoginRequest{Email: "alice@example.com", Password: "wrong"})
			},
			mockSetup: func(m *MockLoginer) {
				m.EXPECT().Login(gomock.Any(), "", "alice@example.com", "wrong").
					Return(nil, apperrors.Unauthorized("Invalid user credentials"))
			},
			expectedCode: http.StatusUnauthorized,
			expectedMsg:  "Invalid user credentials",
		},
		{
			name: "user does not exist",
			body: func(t *testing.T) *bytes.Buffer {
				return jsonBody(t, models.LoginRequest{Username: "ghost", Password: "pw"})
			},
			mockSetup: func(m *MockLoginer) {
				m.EXPECT().Login(gomock.Any(), "ghost", "", "pw").
					Return(nil, apperrors.NotFound("User does not exist"))
			},
			expectedCode: http.StatusNotFound,
			expectedMsg:  "User does not exist",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ctrl := gomock.NewController(t)
			defer ctrl.Finish()

			mockSvc := NewMockLoginer(ctrl)
			tt.mockSetup(mockSvc)

			req := httptest.NewRequest(http.MethodPost, "/login", tt.body(t))
			rr := httptest.NewRecorder()

			NewLoginHandler(mockSvc, CookieConfig{Secure: true}).ServeHTTP(rr, req)

			assert.Equal(t, tt.expectedCode, rr.Code)
			resp := decodeResponse(t, rr)
			assert.Equal(t, tt.expectedMsg, resp.Message)

			access := cookieByName(rr, "accessToken")
			refresh := cookieByName(rr, "refreshToken")
			if !tt.wantCookies {
				assert.Nil(t, access)
				assert.Nil(t, refresh)
				return
			}

			require.NotNil(t, access)
			require.NotNil(t, refresh)
			assert.Equal(t, "ACCESS", access.Value)
			assert.Equal(t, "REFRESH", refresh.Value)
			for _, c := range []*http.Cookie{access, refresh} {
				assert.True(t, c.HttpOnly)
				assert.True(t, c.Secure)
				assert.Equal(t, "/", c.Path)
			}
		})
	}
}
