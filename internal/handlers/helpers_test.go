package handlers

import (
	"bytes"
	"context"
	"encoding/json"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/google/uuid"
	"github.com/sbilibin2017/gw-user-service/internal/jwt"
	"github.com/sbilibin2017/gw-user-service/internal/models"
	"github.com/stretchr/testify/require"
)

var testUser = &models.User{UserID: uuid.New(), Username: "alice", Email: "alice@example.com", FullName: "Alice"}

func staticUser(user *models.User) UserGetter {
	return func(context.Context) *models.User { return user }
}

func staticClaims(claims *jwt.AccessClaims) ClaimsGetter {
	return func(context.Context) *jwt.AccessClaims { return claims }
}

func testUploads(t *testing.T) UploadConfig {
	return UploadConfig{TempDir: t.TempDir(), MaxBytes: 1 << 20}
}

// multipartBody builds a multipart form; files maps field name to file name.
func multipartBody(t *testing.T, fields, files map[string]string) (*bytes.Buffer, string) {
	t.Helper()
	body := &bytes.Buffer{}
	mw := multipart.NewWriter(body)
	for k, v := range fields {
		require.NoError(t, mw.WriteField(k, v))
	}
	for field, name := range files {
		fw, err := mw.CreateFormFile(field, name)
		require.NoError(t, err)
		_, err = fw.Write([]byte("fake-image"))
		require.NoError(t, err)
	}
	require.NoError(t, mw.Close())
	return body, mw.FormDataContentType()
}

func jsonBody(t *testing.T, v any) *bytes.Buffer {
	t.Helper()
	data, err := json.Marshal(v)
	require.NoError(t, err)
	return bytes.NewBuffer(data)
}

func decodeResponse(t *testing.T, rr *httptest.ResponseRecorder) models.APIResponse {
	t.Helper()
	var resp models.APIResponse
	require.NoError(t, json.Unmarshal(rr.Body.Bytes(), &resp))
	return resp
}

func cookieByName(rr *httptest.ResponseRecorder, name string) *http.Cookie {
	for _, c := range rr.Result().Cookies() {
		if c.Name == name {
			return c
		}
	}
	return nil
}
