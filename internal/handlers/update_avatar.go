package handlers

//go:generate mockgen -source=update_avatar.go -destination=update_avatar_mock.go -package=handlers

import (
	"context"
	"net/http"

	"github.com/google/uuid"
	"github.com/sbilibin2017/gw-user-service/internal/models"
	"github.com/sbilibin2017/gw-user-service/internal/responses"
)

// AvatarUpdater defines the interface that the profile service must implement.
type AvatarUpdater interface {
	UpdateAvatar(ctx context.Context, userID uuid.UUID, localPath string) (*models.User, error)
}

// NewUpdateAvatarHandler returns an HTTP handler that replaces the caller's avatar.
// @Summary Update avatar
// @Tags users
// @Accept multipart/form-data
// @Produce json
// @Param avatar formData file true "Avatar image"
// @Success 200 {object} models.APIResponse{data=models.User} "Avatar image updated successfully"
// @Failure 400 {object} models.APIResponse "Avatar file is missing"
// @Router /users/update-avatar [patch]
// @Security BearerAuth
func NewUpdateAvatarHandler(svc AvatarUpdater, userGetter UserGetter, uploads UploadConfig) http.HandlerFunc {
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

		path, err := saveUpload(r, "avatar", uploads)
		if err != nil {
			responses.Error(w, err)
			return
		}
		defer removeUpload(path)

		updated, err := svc.UpdateAvatar(r.Context(), user.UserID, path)
		if err != nil {
			responses.Error(w, err)
			return
		}

		responses.JSON(w, http.StatusOK, updated, "Avatar image updated successfully")
	}
}
