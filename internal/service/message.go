package service

import (
	"context"

	"github.com/gnwofoke/portfolio-api/internal/core"
	"github.com/gnwofoke/portfolio-api/internal/domain/model"
)

// MessageServiceOptions groups dependencies for MessageService.
type MessageServiceOptions struct {
	Messages core.MessageRepository
}

// MessageService handles contact form submissions and the admin inbox.
type MessageService struct {
	messages core.MessageRepository
}

// NewMessageService constructs a new MessageService.
func NewMessageService(opts MessageServiceOptions) *MessageService {
	return &MessageService{messages: opts.Messages}
}

// Submit stores a contact form submission. Messages always start unread.
func (s *MessageService) Submit(ctx context.Context, req *model.CreateMessageRequest) (*model.Message, error) {
	return s.messages.Create(ctx, req)
}

// List returns all messages, newest first.
func (s *MessageService) List(ctx context.Context) ([]*model.Message, error) {
	return s.messages.List(ctx)
}

// MarkRead flags a message as read and returns the updated record.
// Marking an already-read message is a no-op that still succeeds.
func (s *MessageService) MarkRead(ctx context.Context, id string) (*model.Message, error) {
	return s.messages.MarkRead(ctx, id)
}

// Delete deletes a message.
func (s *MessageService) Delete(ctx context.Context, id string) (bool, error) {
	return s.messages.Delete(ctx, id)
}
