package contact

import (
	"context"
	"regexp"
	"strings"

	"go.uber.org/zap"
)

// DefaultMaxSubmissions caps the persisted collection; the oldest
// entries beyond the cap are evicted on write.
const DefaultMaxSubmissions = 1000

// emailPattern is deliberately loose: one @, no whitespace, a dot in
// the domain part.
var emailPattern = regexp.MustCompile(`^[^\s@]+@[^\s@]+\.[^\s@]+$`)

// IntakeRequest is the raw contact-form payload.
type IntakeRequest struct {
	Name    string `json:"name"`
	Email   string `json:"email"`
	Company string `json:"company"`
	Phone   string `json:"phone"`
	Message string `json:"message"`
}

// Intake validates incoming submissions and persists them.
type Intake struct {
	store  Store
	idGen  IDGenerator
	clock  Clock
	max    int
	logger *zap.Logger
}

// NewIntake constructs an Intake service. maxSubmissions <= 0 selects
// DefaultMaxSubmissions.
func NewIntake(store Store, idGen IDGenerator, clock Clock, maxSubmissions int, logger *zap.Logger) *Intake {
	if maxSubmissions <= 0 {
		maxSubmissions = DefaultMaxSubmissions
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Intake{
		store:  store,
		idGen:  idGen,
		clock:  clock,
		max:    maxSubmissions,
		logger: logger,
	}
}

// Submit validates and persists one lead. Validation failures return a
// *ValidationError before any storage access; storage failures wrap
// ErrStorageUnavailable.
func (s *Intake) Submit(ctx context.Context, req IntakeRequest) (Submission, error) {
	name := strings.TrimSpace(req.Name)
	email := strings.TrimSpace(req.Email)
	message := strings.TrimSpace(req.Message)

	if name == "" || email == "" || message == "" {
		return Submission{}, &ValidationError{Msg: "name, email, and message are required"}
	}
	if !emailPattern.MatchString(email) {
		return Submission{}, &ValidationError{Msg: "invalid email address"}
	}

	now := s.clock.Now()
	sub := Submission{
		ID:          s.idGen.NewID(now),
		Name:        name,
		Email:       email,
		Company:     strings.TrimSpace(req.Company),
		Phone:       strings.TrimSpace(req.Phone),
		Message:     message,
		SubmittedAt: now,
		Read:        false,
	}

	submissions, err := s.store.ReadSubmissions(ctx)
	if err != nil {
		return Submission{}, storageErr("read submissions", err)
	}

	// Most-recent-first by convention; the cap evicts from the tail.
	submissions = append([]Submission{sub}, submissions...)
	if len(submissions) > s.max {
		submissions = submissions[:s.max]
	}

	if err := s.store.WriteSubmissions(ctx, submissions); err != nil {
		return Submission{}, storageErr("write submissions", err)
	}

	s.logger.Info("submission accepted",
		zap.String("id", sub.ID),
		zap.Int("collection_size", len(submissions)),
	)
	return sub, nil
}
