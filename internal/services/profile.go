package services

//go:generate mockgen -source=profile.go -destination=profile_mock.go -package=services

import (
	"context"
	"errors"
	"strings"

	"github.com/google/uuid"
	"github.com/sbilibin2017/gw-user-service/internal/apperrors"
	"github.com/sbilibin2017/gw-user-service/internal/logger"
	"github.com/sbilibin2017/gw-user-service/internal/models"
	"github.com/sbilibin2017/gw-user-service/internal/repositories"
)

// ProfileReader reads aggregated profile data.
type ProfileReader interface {
	GetChannelProfile(ctx context.Context, username string, viewerID uuid.UUID) (*models.ChannelProfile, error)
	GetWatchHistory(ctx context.Context, userID uuid.UUID) ([]models.WatchedVideo, error)
}

// ProfileWriter mutates profile fields of a user.
type ProfileWriter interface {
	UpdateDetails(ctx context.Context, userID uuid.UUID, fullName, email string) (*models.UserDB, error)
	UpdateAvatar(ctx context.Context, userID uuid.UUID, avatarURL string) (*models.UserDB, error)
	UpdateCoverImage(ctx context.Context, userID uuid.UUID, coverImageURL string) (*models.UserDB, error)
}

// ProfileService serves channel profiles, watch history and profile updates.
type ProfileService struct {
	reader    ProfileReader
	writer    ProfileWriter
	uploader  MediaUploader
	publisher eventPublisher
}

// NewProfileService creates a new ProfileService.
func NewProfileService(reader ProfileReader, writer ProfileWriter, uploader MediaUploader, kafkaWriter KafkaWriter) *ProfileService {
	return &ProfileService{
		reader:    reader,
		writer:    writer,
		uploader:  uploader,
		publisher: eventPublisher{writer: kafkaWriter},
	}
}

// GetChannelProfile returns the public profile of username as seen by viewerID.
func (s *ProfileService) GetChannelProfile(ctx context.Context, username string, viewerID uuid.UUID) (*models.ChannelProfile, error) {
	username = normalize(username)
	if username == "" {
		return nil, apperrors.BadRequest("username is missing")
	}

	profile, err := s.reader.GetChannelProfile(ctx, username, viewerID)
	if err != nil {
		logger.Log.Errorw("failed to get channel profile", "username", username, "err", err)
		return nil, apperrors.Internal("failed to get channel profile", err)
	}
	if profile == nil {
		return nil, apperrors.NotFound("Channel does not exist")
	}

	return profile, nil
}

// GetWatchHistory returns the videos watched by userID, oldest first.
func (s *ProfileService) GetWatchHistory(ctx context.Context, userID uuid.UUID) ([]models.WatchedVideo, error) {
	videos, err := s.reader.GetWatchHistory(ctx, userID)
	if err != nil {
		logger.Log.Errorw("failed to get watch history", "userID", userID, "err", err)
		return nil, apperrors.Internal("failed to get watch history", err)
	}
	return videos, nil
}

// UpdateDetails sets the full name and email of userID.
func (s *ProfileService) UpdateDetails(ctx context.Context, userID uuid.UUID, fullName, email string) (*models.User, error) {
	fullName = strings.TrimSpace(fullName)
	email = normalize(email)
	if fullName == "" || email == "" {
		return nil, apperrors.BadRequest("All fields are required")
	}

	user, err := s.writer.UpdateDetails(ctx, userID, fullName, email)
	if err != nil {
		return nil, s.writeError("failed to update account details", userID, err)
	}

	s.publisher.publish(ctx, models.EventUserProfileUpdated, user.UserID, user.Username)
	return user.Sanitize(), nil
}

// UpdateAvatar uploads the file at localPath and makes it the avatar of userID.
func (s *ProfileService) UpdateAvatar(ctx context.Context, userID uuid.UUID, localPath string) (*models.User, error) {
	if localPath == "" {
		return nil, apperrors.BadRequest("Avatar file is missing")
	}

	url, err := s.uploader.Upload(ctx, localPath)
	if err != nil {
		logger.Log.Errorw("failed to upload avatar", "userID", userID, "err", err)
		return nil, apperrors.Upload("Error while uploading avatar", err)
	}

	user, err := s.writer.UpdateAvatar(ctx, userID, url)
	if err != nil {
		return nil, s.writeError("failed to update avatar", userID, err)
	}

	s.publisher.publish(ctx, models.EventUserProfileUpdated, user.UserID, user.Username)
	return user.Sanitize(), nil
}

// UpdateCoverImage uploads the file at localPath and makes it the cover image of userID.
func (s *ProfileService) UpdateCoverImage(ctx context.Context, userID uuid.UUID, localPath string) (*models.User, error) {
	if localPath == "" {
		return nil, apperrors.BadRequest("Cover image file is missing")
	}

	url, err := s.uploader.Upload(ctx, localPath)
	if err != nil {
		logger.Log.Errorw("failed to upload cover image", "userID", userID, "err", err)
		return nil, apperrors.Upload("Error while uploading cover image", err)
	}

	user, err := s.writer.UpdateCoverImage(ctx, userID, url)
	if err != nil {
		return nil, s.writeError("failed to update cover image", userID, err)
	}

	s.publisher.publish(ctx, models.EventUserProfileUpdated, user.UserID, user.Username)
	return user.Sanitize(), nil
}

func (s *ProfileService) writeError(msg string, userID uuid.UUID, err error) error {
	switch {
	case errors.Is(err, repositories.ErrUniqueViolation):
		return apperrors.Conflict("Email is already in use")
	case errors.Is(err, repositories.ErrUserNotFound):
		return apperrors.NotFound("User does not exist")
	default:
		logger.Log.Errorw(msg, "userID", userID, "err", err)
		return apperrors.Internal(msg, err)
	}
}
