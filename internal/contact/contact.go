// Package contact holds the landing page's contact form. Submissions are not
// delivered anywhere yet; the LogSink records them so a real backend can be
// attached behind the Sink interface later.
package contact

import (
	"context"
	"fmt"
	"net/mail"
	"net/url"
	"strings"
	"time"

	"github.com/oklog/ulid/v2"
	"go.uber.org/zap"
)

// Field names used by the HTML form.
const (
	FieldName      = "name"
	FieldEmail     = "email"
	FieldMessage   = "message"
	FieldSubscribe = "subscribe"
)

// Submission is one filled-in contact form.
type Submission struct {
	ID         string
	Name       string
	Email      string
	Message    string
	Subscribe  bool
	Lang       string
	ReceivedAt time.Time
}

// FromForm builds a submission from posted form values.
func FromForm(values url.Values) Submission {
	return Submission{
		Name:      strings.TrimSpace(values.Get(FieldName)),
		Email:     strings.TrimSpace(values.Get(FieldEmail)),
		Message:   strings.TrimSpace(values.Get(FieldMessage)),
		Subscribe: parseCheckbox(values.Get(FieldSubscribe)),
	}
}

// ValidationError lists the form fields that failed validation.
type ValidationError struct {
	Fields []string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("contact: invalid fields [%s]", strings.Join(e.Fields, ", "))
}

// Has reports whether field failed validation.
func (e *ValidationError) Has(field string) bool {
	if e == nil {
		return false
	}
	for _, f := range e.Fields {
		if f == field {
			return true
		}
	}
	return false
}

// Validate enforces the same rules as the form's markup: name and email are
// required and email must be an address. The message is optional.
func (s Submission) Validate() error {
	var fields []string
	if s.Name == "" {
		fields = append(fields, FieldName)
	}
	if !validEmail(s.Email) {
		fields = append(fields, FieldEmail)
	}
	if len(fields) > 0 {
		return &ValidationError{Fields: fields}
	}
	return nil
}

// Sink receives validated submissions.
type Sink interface {
	Submit(ctx context.Context, s Submission) error
}

// LogSink writes submissions to the debug log and nothing else.
type LogSink struct {
	logger *zap.Logger
}

// NewLogSink returns a sink writing to logger.
func NewLogSink(logger *zap.Logger) *LogSink {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &LogSink{logger: logger}
}

// Submit logs s.
func (l *LogSink) Submit(_ context.Context, s Submission) error {
	l.logger.Debug("contact form submitted",
		zap.String("submission_id", s.ID),
		zap.String("name", s.Name),
		zap.String("email", s.Email),
		zap.String("message", s.Message),
		zap.Bool("subscribe", s.Subscribe),
		zap.String("lang", s.Lang),
		zap.Time("received_at", s.ReceivedAt),
	)
	return nil
}

// Accept stamps s with an id and receive time, validates it and hands it to sink.
func Accept(ctx context.Context, sink Sink, s Submission, now time.Time) (Submission, error) {
	if err := s.Validate(); err != nil {
		return s, err
	}
	s.ID = ulid.Make().String()
	s.ReceivedAt = now.UTC()
	if err := sink.Submit(ctx, s); err != nil {
		return s, fmt.Errorf("contact: submit %s: %w", s.ID, err)
	}
	return s, nil
}

func validEmail(v string) bool {
	if v == "" || strings.ContainsAny(v, " \t\r\n") {
		return false
	}
	addr, err := mail.ParseAddress(v)
	if err != nil || addr.Address != v {
		return false
	}
	at := strings.LastIndexByte(v, '@')
	return at > 0 && at < len(v)-1
}

func parseCheckbox(v string) bool {
	switch strings.ToLower(strings.TrimSpace(v)) {
	case "on", "true", "1", "yes":
		return true
	default:
		return false
	}
}
