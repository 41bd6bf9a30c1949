package handlers

//go:generate mockgen -source=register.go -destination=register_mock.go -package=handlers

import (
	"context"
	"net/http"

	"github.com/sbilibin2017/gw-user-service/internal/models"
	"github.com/sbilibin2017/gw-user-service/internal/responses"
	"github.com/sbilibin2017/gw-user-service/internal/services"
)

// Registerer defines the interface that the service must implement.
type Registerer interface {
	Register(ctx context.Context, in services.RegisterInput) (*models.User, error)
}

// NewRegisterHandler returns an HTTP handler for user registration.
// @Summary Register a new user
// @Description Creates a new user account with an avatar and an optional cover image. Username and email must be unique.
// @Tags users
// @Accept multipart/form-data
// @Produce json
// @Param fullName formData string true "Full name"
// @Param email formData string true "Email"
// @Param username formData string true "Username"
// @Param password formData string true "Password"
// @Param avatar formData file true "Avatar image"
// @Param coverImage formData file false "Cover image"
// @Success 201 {object} models.APIResponse{data=models.User} "User registered successfully"
// @Failure 400 {object} models.APIResponse "Missing fields, avatar or failed upload"
// @Failure 409 {object} models.APIResponse "User with email or username already exists"
// @Router /users/register [post]
func NewRegisterHandler(svc Registerer, uploads UploadConfig) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if err := parseMultipart(w, r, uploads); err != nil {
			responses.Error(w, err)
			return
		}
		defer r.MultipartForm.RemoveAll()

		avatarPath, err := saveUpload(r, "avatar", uploads)
		if err != nil {
			responses.Error(w, err)
			return
		}
		defer removeUpload(avatarPath)

		coverPath, err := saveUpload(r, "coverImage", uploads)
		if err != nil {
			responses.Error(w, err)
			return
		}
		defer removeUpload(coverPath)

		user, err := svc.Register(r.Context(), services.RegisterInput{
			FullName:       r.FormValue("fullName"),
			Email:          r.FormValue("email"),
			Username:       r.FormValue("username"),
			Password:       r.FormValue("password"),
			AvatarPath:     avatarPath,
			CoverImagePath: coverPath,
		})
		if err != nil {
			responses.Error(w, err)
			return
		}

		responses.JSON(w, http.StatusCreated, user, "User registered successfully")
	}
}
