package handlers

import (
	"context"
	"errors"
	"io"
	"net/http"
	"os"
	"path/filepath"
	"time"

	"github.com/sbilibin2017/gw-user-service/internal/apperrors"
	"github.com/sbilibin2017/gw-user-service/internal/jwt"
	"github.com/sbilibin2017/gw-user-service/internal/logger"
	"github.com/sbilibin2017/gw-user-service/internal/models"
	"github.com/sbilibin2017/gw-user-service/internal/responses"
)

// UserGetter returns the authenticated caller stored in the request context.
type UserGetter func(ctx context.Context) *models.User

// ClaimsGetter returns the access token claims stored in the request context.
type ClaimsGetter func(ctx context.Context) *jwt.AccessClaims

// CookieConfig controls the attributes of session cookies.
type CookieConfig struct {
	Secure bool
}

// UploadConfig controls where multipart uploads are staged.
type UploadConfig struct {
	TempDir  string
	MaxBytes int64
}

func (c CookieConfig) cookie(name, value string, maxAge int) *http.Cookie {
	return &http.Cookie{
		Name:     name,
		Value:    value,
		Path:     "/",
		MaxAge:   maxAge,
		HttpOnly: true,
		Secure:   c.Secure,
		SameSite: http.SameSiteLaxMode,
	}
}

func (c CookieConfig) setSession(w http.ResponseWriter, accessToken, refreshToken string) {
	http.SetCookie(w, c.cookie(jwt.AccessTokenCookie, accessToken, 0))
	http.SetCookie(w, c.cookie(jwt.RefreshTokenCookie, refreshToken, 0))
}

func (c CookieConfig) clearSession(w http.ResponseWriter) {
	expired := c.cookie(jwt.AccessTokenCookie, "", -1)
	expired.Expires = time.Unix(0, 0)
	http.SetCookie(w, expired)

	expired = c.cookie(jwt.RefreshTokenCookie, "", -1)
	expired.Expires = time.Unix(0, 0)
	http.SetCookie(w, expired)
}

// requireUser writes a 401 and returns false when the request has no authenticated caller.
func requireUser(w http.ResponseWriter, r *http.Request, userGetter UserGetter) (*models.User, bool) {
	user := userGetter(r.Context())
	if user == nil {
		responses.Error(w, apperrors.Unauthorized("Unauthorized request"))
		return nil, false
	}
	return user, true
}

// parseMultipart limits the body to maxBytes and parses it as a multipart form.
func parseMultipart(w http.ResponseWriter, r *http.Request, cfg UploadConfig) error {
	r.Body = http.MaxBytesReader(w, r.Body, cfg.MaxBytes)
	if err := r.ParseMultipartForm(cfg.MaxBytes); err != nil {
		logger.Log.Errorw("failed to parse multipart form", "error", err)
		var maxErr *http.MaxBytesError
		if errors.As(err, &maxErr) {
			return apperrors.BadRequest("Uploaded file is too large")
		}
		return apperrors.BadRequest("invalid multipart form")
	}
	return nil
}

// saveUpload stages the multipart file in field to cfg.TempDir and returns its path.
// A missing file yields an empty path and no error.
func saveUpload(r *http.Request, field string, cfg UploadConfig) (string, error) {
	src, header, err := r.FormFile(field)
	if errors.Is(err, http.ErrMissingFile) {
		return "", nil
	}
	if err != nil {
		return "", apperrors.BadRequest("invalid " + field + " file")
	}
	defer src.Close()

	if err := os.MkdirAll(cfg.TempDir, 0o755); err != nil {
		return "", apperrors.Internal("failed to prepare upload directory", err)
	}

	dst, err := os.CreateTemp(cfg.TempDir, "upload-*"+filepath.Ext(header.Filename))
	if err != nil {
		return "", apperrors.Internal("failed to stage upload", err)
	}
	defer dst.Close()

	if _, err := io.Copy(dst, src); err != nil {
		os.Remove(dst.Name())
		return "", apperrors.Internal("failed to stage upload", err)
	}

	return dst.Name(), nil
}

// removeUpload deletes a staged file the uploader did not consume.
func removeUpload(path string) {
	if path == "" {
		return
	}
	if err := os.Remove(path); err != nil && !errors.Is(err, os.ErrNotExist) {
		logger.Log.Warnw("failed to remove staged upload", "path", path, "error", err)
	}
}
