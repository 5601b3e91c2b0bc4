// Package inquiry accepts contact and collaboration form submissions.
// Submissions are validated, logged and kept in a bounded in-memory inbox. Nothing is sent anywhere.
package inquiry

import (
	"context"
	"fmt"
	"log/slog"
	"slices"
	"sync"
	"time"

	catalogerrors "github.com/abgdnv/missil/internal/errors"
	"github.com/go-playground/validator/v10"
	"github.com/google/uuid"
)

type Kind string

const (
	KindContact       Kind = "contact"
	KindCollaboration Kind = "collaboration"
)

const (
	ContactAck       = "Dziękujemy za kontakt. Odpowiemy najszybciej jak to możliwe."
	CollaborationAck = "Dziękujemy za zainteresowanie współpracą. Skontaktujemy się wkrótce."
)

type ContactForm struct {
	Name    string `json:"name"    validate:"required,max=200"`
	Email   string `json:"email"   validate:"required,email"`
	Subject string `json:"subject" validate:"required,max=200"`
	Message string `json:"message" validate:"required,max=5000"`
}

type CollaborationForm struct {
	CompanyName       string `json:"companyName"       validate:"required,max=200"`
	ContactPerson     string `json:"contactPerson"     validate:"required,max=200"`
	Email             string `json:"email"             validate:"required,email"`
	Phone             string `json:"phone"             validate:"omitempty,max=32"`
	CollaborationType string `json:"collaborationType" validate:"required,oneof=butik concept media other"`
	Message           string `json:"message"           validate:"required,max=5000"`
}

// Inquiry is one accepted submission. Exactly one of Contact and Collaboration is set.
type Inquiry struct {
	ID            string             `json:"id"`
	Kind          Kind               `json:"kind"`
	ReceivedAt    time.Time          `json:"receivedAt"`
	Contact       *ContactForm       `json:"contact,omitempty"`
	Collaboration *CollaborationForm `json:"collaboration,omitempty"`
}

// Service keeps the most recent submissions, dropping the oldest beyond capacity.
type Service struct {
	mu       sync.Mutex
	inbox    []Inquiry
	capacity int
	validate *validator.Validate
	now      func() time.Time
	logger   *slog.Logger
}

func NewService(capacity int, logger *slog.Logger) *Service {
	if capacity < 1 {
		capacity = 1
	}
	return &Service{
		capacity: capacity,
		validate: validator.New(validator.WithRequiredStructEnabled()),
		now:      time.Now,
		logger:   logger.With("component", "inquiry"),
	}
}

func (s *Service) SubmitContact(ctx context.Context, f ContactForm) (Inquiry, error) {
	if err := s.validate.Struct(f); err != nil {
		return Inquiry{}, fmt.Errorf("%w: %w", catalogerrors.ErrValidation, err)
	}
	return s.accept(ctx, Inquiry{Kind: KindContact, Contact: &f}), nil
}

func (s *Service) SubmitCollaboration(ctx context.Context, f CollaborationForm) (Inquiry, error) {
	if err := s.validate.Struct(f); err != nil {
		return Inquiry{}, fmt.Errorf("%w: %w", catalogerrors.ErrValidation, err)
	}
	return s.accept(ctx, Inquiry{Kind: KindCollaboration, Collaboration: &f}), nil
}

func (s *Service) accept(ctx context.Context, in Inquiry) Inquiry {
	in.ID = uuid.NewString()
	in.ReceivedAt = s.now().UTC()

	s.mu.Lock()
	s.inbox = append(s.inbox, in)
	if over := len(s.inbox) - s.capacity; over > 0 {
		s.inbox = slices.Delete(s.inbox, 0, over)
	}
	s.mu.Unlock()

	s.logger.InfoContext(ctx, "Inquiry received", "id", in.ID, "kind", in.Kind)
	return in
}

// Recent returns the kept submissions, oldest first.
func (s *Service) Recent() []Inquiry {
	s.mu.Lock()
	defer s.mu.Unlock()
	return slices.Clone(s.inbox)
}
