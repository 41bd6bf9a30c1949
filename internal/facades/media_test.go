package facades

import (
	"context"
	"errors"
	"io"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/service/s3"
	"github.com/golang/mock/gomock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeTempFile(t *testing.T, name, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), name)
	require.NoError(t, os.WriteFile(path, []byte(content), 0o600))
	return path
}

func TestMediaS3Facade_Upload_Success(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	client := NewMockS3PutObjectAPI(ctrl)
	facade := NewMediaS3Facade(client, "media", "http://cdn.local/")
	path := writeTempFile(t, "avatar.PNG", "image-bytes")

	var gotKey string
	client.EXPECT().
		PutObject(gomock.Any(), gomock.Any()).
		DoAndReturn(func(ctx context.Context, in *s3.PutObjectInput, _ ...func(*s3.Options)) (*s3.PutObjectOutput, error) {
			assert.Equal(t, "media", aws.ToString(in.Bucket))
			assert.Equal(t, "image/png", aws.ToString(in.ContentType))
			body, err := io.ReadAll(in.Body)
			assert.NoError(t, err)
			assert.Equal(t, "image-bytes", string(body))
			gotKey = aws.ToString(in.Key)
			return &s3.PutObjectOutput{}, nil
		})

	url, err := facade.Upload(context.Background(), path)
	assert.NoError(t, err)
	assert.True(t, strings.HasPrefix(gotKey, "media/"))
	assert.True(t, strings.HasSuffix(gotKey, ".png"))
	assert.Equal(t, "http://cdn.local/media/"+gotKey, url)

	_, statErr := os.Stat(path)
	assert.True(t, errors.Is(statErr, os.ErrNotExist), "temp file must be removed")
}

func TestMediaS3Facade_Upload_ClientError(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	client := NewMockS3PutObjectAPI(ctrl)
	facade := NewMediaS3Facade(client, "media", "http://cdn.local")
	path := writeTempFile(t, "avatar.jpg", "image-bytes")

	client.EXPECT().
		PutObject(gomock.Any(), gomock.Any()).
		Return(nil, errors.New("s3 unavailable"))

	url, err := facade.Upload(context.Background(), path)
	assert.EqualError(t, err, "s3 unavailable")
	assert.Empty(t, url)

	_, statErr := os.Stat(path)
	assert.True(t, errors.Is(statErr, os.ErrNotExist), "temp file must be removed on failure")
}

func TestMediaS3Facade_Upload_NoFile(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	facade := NewMediaS3Facade(NewMockS3PutObjectAPI(ctrl), "media", "http://cdn.local")

	_, err := facade.Upload(context.Background(), "")
	assert.ErrorIs(t, err, ErrNoFile)

	_, err = facade.Upload(context.Background(), filepath.Join(t.TempDir(), "missing.png"))
	assert.Error(t, err)
}
