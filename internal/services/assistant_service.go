// internal/services/assistant_service.go
package services

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"sync"

	"github.com/google/generative-ai-go/genai"
	"github.com/google/uuid"
	"github.com/sirupsen/logrus"
	"google.golang.org/api/option"

	"github.com/isonexus/iso-nexus-backend/internal/config"
	"github.com/isonexus/iso-nexus-backend/internal/models"
)

var (
	ErrSessionNotFound = errors.New("chat session not found")
	ErrEmptyMessage    = errors.New("message text is required")
)

const systemInstruction = `You are an expert ISO Consultant for "ISO Nexus".
Your goal is to assist users in understanding International Standards (like ISO 9001, 27001, 14001).
Be professional, concise, and helpful.
If asked about documents, refer to the "Documents" section of this website.
If asked about implementation, provide high-level steps.
Do not provide full copyrighted standard text, but explain the clauses and requirements clearly.`

const (
	assistantGreeting = "Hello! I am your ISO Nexus assistant. Ask me anything about ISO standards, document implementation, or how to use this website."
	fallbackReply     = "I apologize, but I couldn't generate a response at this time."
	errorReply        = "I'm having trouble connecting to the server. Please try again later."
)

// chatModel is one ongoing conversation with the external assistant service.
type chatModel interface {
	send(ctx context.Context, text string) (string, error)
}

type geminiChat struct {
	chat *genai.ChatSession
}

func (g *geminiChat) send(ctx context.Context, text string) (string, error) {
	resp, err := g.chat.SendMessage(ctx, genai.Text(text))
	if err != nil {
		return "", fmt.Errorf("gemini send: %w", err)
	}
	if len(resp.Candidates) == 0 || resp.Candidates[0].Content == nil {
		return "", nil
	}

	var b strings.Builder
	for _, p := range resp.Candidates[0].Content.Parts {
		if t, ok := p.(genai.Text); ok {
			b.WriteString(string(t))
		}
	}
	return b.String(), nil
}

type assistantSession struct {
	model    chatModel
	messages []models.ChatMessage
}

// AssistantService bridges chat-widget sessions to the Gemini API. The genai
// client is built lazily on the first session so a missing credential is a
// recoverable session-creation failure, not a startup crash. Each send is a
// single attempt with no retry.
type AssistantService struct {
	cfg    config.AssistantConfig
	logger *logrus.Logger

	mu       sync.Mutex
	client   *genai.Client
	sessions map[string]*assistantSession
	newChat  func(ctx context.Context) (chatModel, error)
}

func NewAssistantService(cfg config.AssistantConfig, logger *logrus.Logger) *AssistantService {
	s := &AssistantService{
		cfg:      cfg,
		logger:   logger,
		sessions: make(map[string]*assistantSession),
	}
	s.newChat = s.newGeminiChat
	return s
}

// CreateSession starts one ongoing conversation and returns its handle and
// the seeded transcript.
func (s *AssistantService) CreateSession(ctx context.Context) (string, []models.ChatMessage, error) {
	model, err := s.newChat(ctx)
	if err != nil {
		s.logger.WithError(err).Error("Failed to create assistant session")
		return "", nil, err
	}

	sessionID := uuid.NewString()
	session := &assistantSession{
		model:    model,
		messages: []models.ChatMessage{{Role: models.ChatRoleAssistant, Text: assistantGreeting}},
	}

	s.mu.Lock()
	s.sessions[sessionID] = session
	s.mu.Unlock()

	s.logger.WithField("chat_session", sessionID).Info("Assistant session created")
	return sessionID, session.messages, nil
}

// Send forwards one user message and appends the reply. A service failure is
// absorbed into an error-flagged assistant message; the session stays usable
// and the method only errors for an unknown session or empty text.
func (s *AssistantService) Send(ctx context.Context, sessionID, text string) (models.ChatMessage, error) {
	text = strings.TrimSpace(text)
	if text == "" {
		return models.ChatMessage{}, ErrEmptyMessage
	}

	s.mu.Lock()
	session, ok := s.sessions[sessionID]
	if !ok {
		s.mu.Unlock()
		return models.ChatMessage{}, ErrSessionNotFound
	}
	session.messages = append(session.messages, models.ChatMessage{Role: models.ChatRoleUser, Text: text})
	model := session.model
	s.mu.Unlock()

	replyText, err := model.send(ctx, text)

	reply := models.ChatMessage{Role: models.ChatRoleAssistant, Text: replyText}
	if err != nil {
		s.logger.WithError(err).WithField("chat_session", sessionID).Error("Assistant request failed")
		reply.Text = errorReply
		reply.IsError = true
	} else if reply.Text == "" {
		reply.Text = fallbackReply
	}

	s.mu.Lock()
	session.messages = append(session.messages, reply)
	s.mu.Unlock()

	return reply, nil
}

// Transcript returns a copy of the session's append-only message sequence.
func (s *AssistantService) Transcript(sessionID string) ([]models.ChatMessage, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	session, ok := s.sessions[sessionID]
	if !ok {
		return nil, ErrSessionNotFound
	}

	messages := make([]models.ChatMessage, len(session.messages))
	copy(messages, session.messages)
	return messages, nil
}

func (s *AssistantService) Close() error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.client != nil {
		return s.client.Close()
	}
	return nil
}

func (s *AssistantService) newGeminiChat(ctx context.Context) (chatModel, error) {
	client, err := s.ensureClient(ctx)
	if err != nil {
		return nil, err
	}

	m := client.GenerativeModel(s.cfg.Model)
	m.SystemInstruction = &genai.Content{
		Parts: []genai.Part{genai.Text(systemInstruction)},
	}
	m.SetTemperature(float32(s.cfg.Temperature))

	return &geminiChat{chat: m.StartChat()}, nil
}

func (s *AssistantService) ensureClient(ctx context.Context) (*genai.Client, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.client != nil {
		return s.client, nil
	}
	if s.cfg.APIKey == "" {
		return nil, errors.New("assistant credential is not configured")
	}

	client, err := genai.NewClient(ctx, option.WithAPIKey(s.cfg.APIKey))
	if err != nil {
		return nil, fmt.Errorf("failed to create gemini client: %w", err)
	}

	s.client = client
	return client, nil
}
