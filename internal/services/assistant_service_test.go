// internal/services/assistant_service_test.go
package services

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/isonexus/iso-nexus-backend/internal/config"
	"github.com/isonexus/iso-nexus-backend/internal/models"
)

type stubChat struct {
	replies []string
	errs    []error
	calls   int
}

func (s *stubChat) send(ctx context.Context, text string) (string, error) {
	i := s.calls
	s.calls++
	var reply string
	var err error
	if i < len(s.replies) {
		reply = s.replies[i]
	}
	if i < len(s.errs) {
		err = s.errs[i]
	}
	return reply, err
}

func newAssistantFixture(t *testing.T, chat *stubChat) *AssistantService {
	t.Helper()
	svc := NewAssistantService(config.AssistantConfig{Model: "gemini-2.5-flash", Temperature: 0.7}, testLogger())
	svc.newChat = func(ctx context.Context) (chatModel, error) {
		return chat, nil
	}
	return svc
}

func TestCreateSessionSeedsGreeting(t *testing.T) {
	svc := newAssistantFixture(t, &stubChat{})

	id, messages, err := svc.CreateSession(context.Background())
	require.NoError(t, err)
	assert.NotEmpty(t, id)
	require.Len(t, messages, 1)
	assert.Equal(t, models.ChatRoleAssistant, messages[0].Role)
	assert.False(t, messages[0].IsError)
}

func TestSendAppendsInOrder(t *testing.T) {
	chat := &stubChat{replies: []string{"ISO 9001 covers quality management."}}
	svc := newAssistantFixture(t, chat)

	id, _, err := svc.CreateSession(context.Background())
	require.NoError(t, err)

	reply, err := svc.Send(context.Background(), id, "What is ISO 9001?")
	require.NoError(t, err)
	assert.Equal(t, "ISO 9001 covers quality management.", reply.Text)
	assert.False(t, reply.IsError)

	transcript, err := svc.Transcript(id)
	require.NoError(t, err)
	require.Len(t, transcript, 3)
	assert.Equal(t, models.ChatRoleUser, transcript[1].Role)
	assert.Equal(t, "What is ISO 9001?", transcript[1].Text)
	assert.Equal(t, models.ChatRoleAssistant, transcript[2].Role)
}

func TestSendEmptyReplyFallsBack(t *testing.T) {
	svc := newAssistantFixture(t, &stubChat{replies: []string{""}})

	id, _, err := svc.CreateSession(context.Background())
	require.NoError(t, err)

	reply, err := svc.Send(context.Background(), id, "hello")
	require.NoError(t, err)
	assert.Equal(t, fallbackReply, reply.Text)
	assert.False(t, reply.IsError)
}

func TestSendFailureFlagsMessageAndKeepsSessionUsable(t *testing.T) {
	chat := &stubChat{
		replies: []string{"", "Recovered."},
		errs:    []error{errors.New("network down"), nil},
	}
	svc := newAssistantFixture(t, chat)

	id, _, err := svc.CreateSession(context.Background())
	require.NoError(t, err)

	reply, err := svc.Send(context.Background(), id, "first")
	require.NoError(t, err, "service failure must not propagate")
	assert.True(t, reply.IsError)
	assert.Equal(t, errorReply, reply.Text)

	reply, err = svc.Send(context.Background(), id, "second")
	require.NoError(t, err)
	assert.False(t, reply.IsError)
	assert.Equal(t, "Recovered.", reply.Text)

	transcript, err := svc.Transcript(id)
	require.NoError(t, err)
	assert.Len(t, transcript, 5)
}

func TestSendValidations(t *testing.T) {
	svc := newAssistantFixture(t, &stubChat{})

	_, err := svc.Send(context.Background(), "missing", "hi")
	assert.ErrorIs(t, err, ErrSessionNotFound)

	id, _, err := svc.CreateSession(context.Background())
	require.NoError(t, err)
	_, err = svc.Send(context.Background(), id, "   ")
	assert.ErrorIs(t, err, ErrEmptyMessage)
}

func TestCreateSessionWithoutCredentialFails(t *testing.T) {
	svc := NewAssistantService(config.AssistantConfig{Model: "gemini-2.5-flash"}, testLogger())

	_, _, err := svc.CreateSession(context.Background())
	require.Error(t, err)

	// The guard is per-creation: nothing was registered.
	_, err = svc.Transcript("anything")
	assert.ErrorIs(t, err, ErrSessionNotFound)
}
