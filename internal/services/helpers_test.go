package services_test

import (
	"crypto/sha256"
	"encoding/hex"
	"testing"

	"github.com/golang/mock/gomock"
	"github.com/sbilibin2017/gw-user-service/internal/apperrors"
	"github.com/sbilibin2017/gw-user-service/internal/services"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type authDeps struct {
	reader   *services.MockUserReader
	writer   *services.MockUserWriter
	tokens   *services.MockTokenIssuer
	hasher   *services.MockPasswordHasher
	denylist *services.MockTokenDenylist
	uploader *services.MockMediaUploader
	kafka    *services.MockKafkaWriter
}

func newAuthDeps(ctrl *gomock.Controller) *authDeps {
	d := &authDeps{
		reader:   services.NewMockUserReader(ctrl),
		writer:   services.NewMockUserWriter(ctrl),
		tokens:   services.NewMockTokenIssuer(ctrl),
		hasher:   services.NewMockPasswordHasher(ctrl),
		denylist: services.NewMockTokenDenylist(ctrl),
		uploader: services.NewMockMediaUploader(ctrl),
		kafka:    services.NewMockKafkaWriter(ctrl),
	}
	d.kafka.EXPECT().WriteMessages(gomock.Any(), gomock.Any()).Return(nil).AnyTimes()
	return d
}

func (d *authDeps) service() *services.AuthService {
	return services.NewAuthService(d.reader, d.writer, d.tokens, d.hasher, d.denylist, d.uploader, d.kafka)
}

func assertKind(t *testing.T, err error, kind apperrors.Kind) {
	t.Helper()
	appErr, ok := apperrors.As(err)
	require.True(t, ok, "expected *apperrors.Error, got %v", err)
	assert.Equal(t, kind, appErr.Kind)
}

// digestOf mirrors how refresh tokens are stored.
func digestOf(token string) string {
	sum := sha256.Sum256([]byte(token))
	return hex.EncodeToString(sum[:])
}

func ptr(s string) *string {
	return &s
}
