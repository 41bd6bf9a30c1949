package services

import (
	"context"
	"encoding/json"
	"errors"
	"testing"

	"github.com/golang/mock/gomock"
	"github.com/google/uuid"
	"github.com/sbilibin2017/gw-user-service/internal/models"
	"github.com/segmentio/kafka-go"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestEventPublisher_Publish(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	writer := NewMockKafkaWriter(ctrl)
	userID := uuid.New()

	writer.EXPECT().
		WriteMessages(gomock.Any(), gomock.Any()).
		DoAndReturn(func(_ context.Context, msgs ...kafka.Message) error {
			require.Len(t, msgs, 1)
			assert.Equal(t, userID.String(), string(msgs[0].Key))

			var event models.UserEvent
			require.NoError(t, json.Unmarshal(msgs[0].Value, &event))
			assert.Equal(t, models.EventUserRegistered, event.Type)
			assert.Equal(t, userID.String(), event.UserID)
			assert.Equal(t, "alice", event.Username)
			assert.NotEmpty(t, event.EventID)
			assert.NotZero(t, event.Timestamp)
			return nil
		})

	eventPublisher{writer: writer}.publish(context.Background(), models.EventUserRegistered, userID, "alice")
}

func TestEventPublisher_WriterErrorIsSwallowed(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	writer := NewMockKafkaWriter(ctrl)
	writer.EXPECT().WriteMessages(gomock.Any(), gomock.Any()).Return(errors.New("broker down"))

	assert.NotPanics(t, func() {
		eventPublisher{writer: writer}.publish(context.Background(), models.EventUserLoggedOut, uuid.New(), "")
	})
}

func TestEventPublisher_NilWriter(t *testing.T) {
	assert.NotPanics(t, func() {
		eventPublisher{}.publish(context.Background(), models.EventUserLoggedIn, uuid.New(), "alice")
	})
}
