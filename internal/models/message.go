package models

import (
	"fmt"
	"strings"
	"time"

	"github.com/gitchking/EcoTube-FreeYoutubeMP3Downloader/internal/shared"
)

// Message is a contact-form submission persisted independently of the
// conversion flow.
type Message struct {
	id        string
	sequence  int
	name      string
	email     string
	message   string
	createdAt time.Time
	updatedAt time.Time
	deletedAt *time.Time
}

// NewMessage creates a Message with timestamps set to now. The ID is
// assigned by the repository on Create.
func NewMessage(sequence int, name, email, body string) *Message {
	now := time.Now()
	return &Message{
		sequence:  sequence,
		name:      name,
		email:     email,
		message:   body,
		createdAt: now,
		updatedAt: now,
	}
}

func (m *Message) ID() string            { return m.id }
func (m *Message) Sequence() int         { return m.sequence }
func (m *Message) Name() string          { return m.name }
func (m *Message) Email() string         { return m.email }
func (m *Message) Body() string          { return m.message }
func (m *Message) CreatedAt() time.Time  { return m.createdAt }
func (m *Message) UpdatedAt() time.Time  { return m.updatedAt }
func (m *Message) DeletedAt() *time.Time { return m.deletedAt }

func (m *Message) SetID(id string)           { m.id = id }
func (m *Message) SetUpdatedAt(t time.Time)  { m.updatedAt = t }
func (m *Message) SetCreatedAt(t time.Time)  { m.createdAt = t }
func (m *Message) SetDeletedAt(t *time.Time) { m.deletedAt = t }

// Validate checks required fields and a minimal email shape.
func (m *Message) Validate() error {
	if strings.TrimSpace(m.name) == "" {
		return fmt.Errorf("%w: name is required", shared.ErrInvalidInput)
	}
	if strings.TrimSpace(m.message) == "" {
		return fmt.Errorf("%w: message is required", shared.ErrInvalidInput)
	}
	at := strings.Index(m.email, "@")
	if at <= 0 || at == len(m.email)-1 || strings.ContainsAny(m.email, " \t") {
		return fmt.Errorf("%w: %q is not a valid email address", shared.ErrInvalidInput, m.email)
	}
	return nil
}
