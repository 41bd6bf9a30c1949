package handlers

//go:generate mockgen -source=update_cover_image.go -destination=update_cover_image_mock.go -package=handlers

import (
	"context"
	"net/http"

	"github.com/google/uuid"
	"github.com/sbilibin2017/gw-user-service/internal/models"
	"github.com/sbilibin2017/gw-user-service/internal/responses"
)

// CoverImageUpdater defines the interface that the profile service must implement.
type CoverImageUpdater interface {
	UpdateCoverImage(ctx context.Context, userID uuid.UUID, localPath string) (*models.User, error)
}

// NewUpdateCoverImageHandler returns an HTTP handler that replaces the caller's cover image.
// @Summary Update cover image
// @Tags users
// @Accept multipart/form-data
// @Produce json
// @Param coverImage formData file true "Cover image"
// @Success 200 {object} models.APIResponse{data=models.User} "Cover image updated successfully"
// @Failure 400 {object} models.APIResponse "Cover image file is missing"
// @Router /users/update-cover-image [patch]
// @Security BearerAuth
func NewUpdateCoverImageHandler(svc CoverImageUpdater, userGetter UserGetter, uploads UploadConfig) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		user, ok := requireUser(w, r, userGetter)
		if !ok {
			return
		}

		if err := parseMultipart(w, r, uploads); err != nil {
			responses.Error(w, err)
			return
		}
		defer r.MultipartForm.RemoveAll()

		path, err := saveUpload(r, "coverImage", uploads)
		if err != nil {
			responses.Error(w, err)
			return
		}
		defer removeUpload(path)

		updated, err := svc.UpdateCoverImage(r.Context(), user.UserID, path)
		if err != nil {
			responses.Error(w, err)
			return
		}

		responses.JSON(w, http.StatusOK, updated, "Cover image updated successfully")
	}
}
