package controllers

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"sync"

	validation "github.com/go-ozzo/ozzo-validation/v4"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/finhr/backoffice/internal/apperrors"
	"github.com/finhr/backoffice/internal/core/domain"
	"github.com/finhr/backoffice/internal/core/ports"
	"github.com/finhr/backoffice/internal/utils/accounting"
)

// LineField names one editable field of a detail line draft.
type LineField string

const (
	LineAccountID   LineField = "accountID"
	LineDebit       LineField = "debit"
	LineCredit      LineField = "credit"
	LineDescription LineField = "description"
)

// LineDraft holds one detail line as typed by the user. Amounts stay raw
// strings so a blank field keeps its empty display value; blanks count as
// zero when totals are computed.
type LineDraft struct {
	AccountID   string
	Debit       string
	Credit      string
	Description string
}

// Totals are the advisory sums displayed under a multi-line form. They are
// recomputed on every line change and do not gate submission.
type Totals struct {
	Debit      decimal.Decimal
	Credit     decimal.Decimal
	Difference decimal.Decimal
}

// FileSelection is one file picked by the user for attachment.
type FileSelection struct {
	Name        string
	ContentType string
	Content     []byte
}

// Previewer produces a preview handle for a newly-attached file.
type Previewer func(attachmentID, fileName string, content []byte) *domain.PreviewHandle

// Validator performs the record type's client-side pre-submit checks.
type Validator func(fields map[string]any, lines []domain.DetailLine) error

// RecordFormSession owns the lifecycle of one create/edit form: scalar
// fields, a variable-length detail line collection and optional file
// attachments, and serializes them for submission. The payload is multipart
// exactly when at least one attachment is staged at build time, because the
// collaborator expects multipart encoding only when binary content is
// present.
type RecordFormSession struct {
	mu sync.Mutex

	fields      map[string]any
	lines       []LineDraft
	attachments []domain.AttachmentDraft
	totals      Totals

	recordID      string // empty for create
	listRoute     string
	minLines      int
	inlineDetails bool
	submitting    bool
	discarded     bool

	writer    ports.RecordWriter
	bridge    *AsyncNotificationBridge
	validate  Validator
	previewer Previewer
	newID     func() string
	logger    *slog.Logger
}

// FormOption customizes a RecordFormSession.
type FormOption func(*RecordFormSession)

// WithRecordID switches the session to edit mode for the given record.
func WithRecordID(id string) FormOption {
	return func(s *RecordFormSession) { s.recordID = id }
}

// WithMinLines requires at least n detail lines at submission time. Removal
// below n is still allowed; the check runs before dispatch, not before
// removal.
func WithMinLines(n int) FormOption {
	return func(s *RecordFormSession) { s.minLines = n }
}

// WithInlineDetails inlines the line collection as a JSON array on the plain
// payload path instead of JSON-encoding it into a string field. Record types
// whose collaborator contract expects the encoded form leave this off.
func WithInlineDetails() FormOption {
	return func(s *RecordFormSession) { s.inlineDetails = true }
}

// WithValidator installs the record type's pre-submit validation.
func WithValidator(v Validator) FormOption {
	return func(s *RecordFormSession) { s.validate = v }
}

// WithPreviewer overrides how attachment previews are produced.
func WithPreviewer(p Previewer) FormOption {
	return func(s *RecordFormSession) { s.previewer = p }
}

// NewRecordFormSession creates a form session for one record type.
// listRoute is where a successful submission redirects to.
func NewRecordFormSession(writer ports.RecordWriter, bridge *AsyncNotificationBridge, listRoute string, logger *slog.Logger, opts ...FormOption) *RecordFormSession {
	if logger == nil {
		logger = slog.Default()
	}
	s := &RecordFormSession{
		fields:    make(map[string]any),
		listRoute: listRoute,
		writer:    writer,
		bridge:    bridge,
		newID:     uuid.NewString,
		logger:    logger,
		previewer: func(attachmentID, fileName string, _ []byte) *domain.PreviewHandle {
			return domain.NewPreviewHandle("preview://"+attachmentID+"/"+fileName, nil)
		},
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// SetField sets one scalar field of the record.
func (s *RecordFormSession) SetField(name string, value any) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.fields[name] = value
}

// Field returns one scalar field value.
func (s *RecordFormSession) Field(name string) any {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.fields[name]
}

// AddLine appends an empty detail line.
func (s *RecordFormSession) AddLine() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.lines = append(s.lines, LineDraft{})
	s.recomputeTotals()
}

// RemoveLine removes the line at index. Removal may leave the collection
// below the required minimum; the minimum is enforced at submission.
func (s *RecordFormSession) RemoveLine(index int) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if index < 0 || index >= len(s.lines) {
		return fmt.Errorf("%w: line index %d out of range", apperrors.ErrValidation, index)
	}
	s.lines = append(s.lines[:index], s.lines[index+1:]...)
	s.recomputeTotals()
	return nil
}

// UpdateLine replaces one field of one line, producing a new collection and
// preserving the order and identity of all other lines.
func (s *RecordFormSession) UpdateLine(index int, field LineField, value string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if index < 0 || index >= len(s.lines) {
		return fmt.Errorf("%w: line index %d out of range", apperrors.ErrValidation, index)
	}
	next := make([]LineDraft, len(s.lines))
	copy(next, s.lines)
	switch field {
	case LineAccountID:
		next[index].AccountID = value
	case LineDebit:
		next[index].Debit = value
	case LineCredit:
		next[index].Credit = value
	case LineDescription:
		next[index].Description = value
	default:
		return fmt.Errorf("%w: unknown line field %q", apperrors.ErrValidation, field)
	}
	s.lines = next
	s.recomputeTotals()
	return nil
}

// Lines returns a snapshot of the current line drafts.
func (s *RecordFormSession) Lines() []LineDraft {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := make([]LineDraft, len(s.lines))
	copy(out, s.lines)
	return out
}

// LineTotals returns the advisory debit/credit/difference sums.
func (s *RecordFormSession) LineTotals() Totals {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.totals
}

// AttachFiles stages the selected files as attachment drafts, each with a
// generated unique id and a preview handle. An empty selection is a no-op.
// The selection is consumed by value, so the same file can be picked again
// later.
func (s *RecordFormSession) AttachFiles(files []FileSelection) {
	if len(files) == 0 {
		return
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.discarded {
		return
	}
	for _, f := range files {
		id := s.newID()
		s.attachments = append(s.attachments, domain.AttachmentDraft{
			AttachmentID: id,
			FileName:     f.Name,
			ContentType:  f.ContentType,
			SizeBytes:    int64(len(f.Content)),
			Content:      f.Content,
			Preview:      s.previewer(id, f.Name, f.Content),
		})
	}
}

// RemoveAttachment drops the draft with the given id and releases its
// preview handle. Unknown ids are a no-op.
func (s *RecordFormSession) RemoveAttachment(id string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	for i, a := range s.attachments {
		if a.AttachmentID == id {
			a.Preview.Release()
			s.attachments = append(s.attachments[:i], s.attachments[i+1:]...)
			return
		}
	}
}

// Attachments returns a snapshot of the staged drafts.
func (s *RecordFormSession) Attachments() []domain.AttachmentDraft {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := make([]domain.AttachmentDraft, len(s.attachments))
	copy(out, s.attachments)
	return out
}

// Discard tears the form down, releasing every staged preview handle exactly
// once. Called when the user navigates away without submitting.
func (s *RecordFormSession) Discard() {
	s.mu.Lock()
	defer s.mu.Unlock()
	for _, a := range s.attachments {
		a.Preview.Release()
	}
	s.attachments = nil
	s.discarded = true
}

// DetailLines parses the line drafts into domain lines, treating blank
// amounts as zero. Unparseable amounts fail validation.
func (s *RecordFormSession) DetailLines() ([]domain.DetailLine, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return parseLines(s.lines)
}

// BuildSubmissionPayload serializes the form. Multipart iff at least one
// attachment is staged at call time.
func (s *RecordFormSession) BuildSubmissionPayload() (ports.Payload, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.buildPayloadLocked()
}

func (s *RecordFormSession) buildPayloadLocked() (ports.Payload, error) {
	lines, err := parseLines(s.lines)
	if err != nil {
		return ports.Payload{}, err
	}

	fields := make(map[string]any, len(s.fields)+1)
	for k, v := range s.fields {
		fields[k] = v
	}

	if len(s.attachments) == 0 {
		if len(s.lines) > 0 {
			if s.inlineDetails {
				fields["details"] = lines
			} else {
				encoded, err := json.Marshal(lines)
				if err != nil {
					return ports.Payload{}, fmt.Errorf("failed to encode detail lines: %w", err)
				}
				fields["details"] = string(encoded)
			}
		}
		return ports.Payload{Fields: fields}, nil
	}

	// Binary content present: multipart, lines always JSON-encoded.
	if len(s.lines) > 0 {
		encoded, err := json.Marshal(lines)
		if err != nil {
			return ports.Payload{}, fmt.Errorf("failed to encode detail lines: %w", err)
		}
		fields["details"] = string(encoded)
	}
	files := make([]ports.FilePart, len(s.attachments))
	for i, a := range s.attachments {
		files[i] = ports.FilePart{
			FieldName:   fmt.Sprintf("attachments[%d]", i),
			FileName:    a.FileName,
			ContentType: a.ContentType,
			Content:     a.Content,
		}
	}
	return ports.Payload{Multipart: true, Fields: fields, Files: files}, nil
}

// Submit validates the form, builds the payload and dispatches it to the
// collaborator. The outcome lands on the signal bus: success carries the
// list route for redirect, errors carry the display message. No field-level
// rollback or retry is performed; on error the form state is left unchanged
// so the user can correct and resubmit.
func (s *RecordFormSession) Submit(ctx context.Context) error {
	s.mu.Lock()
	if s.submitting {
		s.mu.Unlock()
		return nil // submit control is disabled while in flight
	}

	lines, err := parseLines(s.lines)
	if err == nil && len(lines) < s.minLines {
		err = fmt.Errorf("%w: record requires at least %d detail line(s)", apperrors.ErrValidation, s.minLines)
	}
	if err == nil && s.validate != nil {
		err = s.validate(s.fields, lines)
	}
	if err != nil {
		s.mu.Unlock()
		s.logger.Warn("form validation failed", slog.String("error", err.Error()))
		s.bridge.Bus().PublishError(err.Error())
		return err
	}

	payload, err := s.buildPayloadLocked()
	if err != nil {
		s.mu.Unlock()
		s.bridge.Bus().PublishError(err.Error())
		return err
	}
	recordID := s.recordID
	s.submitting = true
	s.mu.Unlock()

	defer func() {
		s.mu.Lock()
		s.submitting = false
		s.mu.Unlock()
	}()

	var message string
	if recordID == "" {
		message, err = s.writer.Create(ctx, payload)
	} else {
		message, err = s.writer.Update(ctx, recordID, payload)
	}
	if err != nil {
		s.logger.Warn("form submission rejected", slog.String("error", err.Error()))
		s.bridge.Bus().PublishError(err.Error())
		return fmt.Errorf("%w: %s", apperrors.ErrMutationRejected, err.Error())
	}

	s.bridge.Bus().PublishSuccess(message, s.listRoute)
	return nil
}

// IsSubmitting reports whether a submission is in flight.
func (s *RecordFormSession) IsSubmitting() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.submitting
}

func (s *RecordFormSession) recomputeTotals() {
	lines := make([]domain.DetailLine, len(s.lines))
	for i, l := range s.lines {
		lines[i] = domain.DetailLine{
			Debit:  amountOrZero(l.Debit),
			Credit: amountOrZero(l.Credit),
		}
	}
	debit, credit, difference := accounting.LineTotals(lines)
	s.totals = Totals{Debit: debit, Credit: credit, Difference: difference}
}

// amountOrZero treats blank or malformed input as zero for display totals.
func amountOrZero(raw string) decimal.Decimal {
	if raw == "" {
		return decimal.Zero
	}
	d, err := decimal.NewFromString(raw)
	if err != nil {
		return decimal.Zero
	}
	return d
}

func parseLines(drafts []LineDraft) ([]domain.DetailLine, error) {
	lines := make([]domain.DetailLine, 0, len(drafts))
	for i, d := range drafts {
		debit, err := parseAmount(d.Debit)
		if err != nil {
			return nil, fmt.Errorf("%w: line %d debit: %s", apperrors.ErrValidation, i+1, err.Error())
		}
		credit, err := parseAmount(d.Credit)
		if err != nil {
			return nil, fmt.Errorf("%w: line %d credit: %s", apperrors.ErrValidation, i+1, err.Error())
		}
		lines = append(lines, domain.DetailLine{
			AccountID:   d.AccountID,
			Debit:       debit,
			Credit:      credit,
			Description: d.Description,
		})
	}
	return lines, nil
}

func parseAmount(raw string) (decimal.Decimal, error) {
	if raw == "" {
		return decimal.Zero, nil
	}
	return decimal.NewFromString(raw)
}

// RequireLineAccounts is a Validator building block: every line that carries
// an amount must name a posting account.
func RequireLineAccounts(fields map[string]any, lines []domain.DetailLine) error {
	for i, l := range lines {
		if l.Debit.IsZero() && l.Credit.IsZero() {
			continue
		}
		if err := validation.Validate(l.AccountID, validation.Required); err != nil {
			return fmt.Errorf("%w: line %d: account is required", apperrors.ErrValidation, i+1)
		}
	}
	return nil
}
