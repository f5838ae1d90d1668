package controllers_test

import (
	"context"
	"encoding/json"
	"sync/atomic"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/suite"

	"github.com/finhr/backoffice/internal/apperrors"
	"github.com/finhr/backoffice/internal/core/controllers"
	"github.com/finhr/backoffice/internal/core/domain"
	"github.com/finhr/backoffice/internal/core/ports"
)

// --- Mock RecordWriter ---
type MockRecordWriter struct {
	mock.Mock
}

func (m *MockRecordWriter) Create(ctx context.Context, p ports.Payload) (string, error) {
	args := m.Called(ctx, p)
	return args.String(0), args.Error(1)
}

func (m *MockRecordWriter) Update(ctx context.Context, recordID string, p ports.Payload) (string, error) {
	args := m.Called(ctx, recordID, p)
	return args.String(0), args.Error(1)
}

type FormSessionTestSuite struct {
	suite.Suite
	writer *MockRecordWriter
	bridge *controllers.AsyncNotificationBridge
	toasts *recordingToasts
}

func (s *FormSessionTestSuite) SetupTest() {
	s.writer = new(MockRecordWriter)
	s.toasts = &recordingToasts{}
	s.bridge = controllers.NewAsyncNotificationBridge(controllers.NewSignalBus(), s.toasts, nil, nil)
}

func (s *FormSessionTestSuite) newSession(opts ...controllers.FormOption) *controllers.RecordFormSession {
	return controllers.NewRecordFormSession(s.writer, s.bridge, "/journal-entries", nil, opts...)
}

func (s *FormSessionTestSuite) TestTotalsTreatBlanksAsZero() {
	form := s.newSession()
	form.AddLine()
	form.AddLine()

	s.Require().NoError(form.UpdateLine(0, controllers.LineDebit, "100"))
	s.Require().NoError(form.UpdateLine(1, controllers.LineCredit, "100"))

	totals := form.LineTotals()
	s.Equal("100.00", totals.Debit.StringFixed(2))
	s.Equal("100.00", totals.Credit.StringFixed(2))
	s.Equal("0.00", totals.Difference.StringFixed(2))

	// The blank credit on line 0 keeps its empty display value.
	s.Equal("", form.Lines()[0].Credit)
}

func (s *FormSessionTestSuite) TestUpdateLinePreservesOtherLines() {
	form := s.newSession()
	form.AddLine()
	form.AddLine()
	s.Require().NoError(form.UpdateLine(0, controllers.LineAccountID, "acc-1"))

	before := form.Lines()
	s.Require().NoError(form.UpdateLine(1, controllers.LineDebit, "50"))

	// The snapshot taken before the update is untouched.
	s.Equal("", before[1].Debit)

	after := form.Lines()
	s.Equal("acc-1", after[0].AccountID)
	s.Equal("50", after[1].Debit)
}

func (s *FormSessionTestSuite) TestRemoveLine() {
	form := s.newSession()
	form.AddLine()
	form.AddLine()
	s.Require().NoError(form.UpdateLine(1, controllers.LineDescription, "keep me"))

	s.Require().NoError(form.RemoveLine(0))
	lines := form.Lines()
	s.Require().Len(lines, 1)
	s.Equal("keep me", lines[0].Description)

	s.ErrorIs(form.RemoveLine(5), apperrors.ErrValidation)
}

func (s *FormSessionTestSuite) TestPayloadIsMultipartIffAttachmentsPresent() {
	form := s.newSession()
	form.SetField("description", "march rent")
	form.AddLine()
	s.Require().NoError(form.UpdateLine(0, controllers.LineDebit, "100"))

	payload, err := form.BuildSubmissionPayload()
	s.Require().NoError(err)
	s.False(payload.Multipart)
	s.Empty(payload.Files)

	form.AttachFiles([]controllers.FileSelection{
		{Name: "receipt.pdf", ContentType: "application/pdf", Content: []byte("%PDF")},
	})

	payload, err = form.BuildSubmissionPayload()
	s.Require().NoError(err)
	s.True(payload.Multipart)
	s.Require().Len(payload.Files, 1)
	s.Equal("attachments[0]", payload.Files[0].FieldName)
	s.Equal("receipt.pdf", payload.Files[0].FileName)

	// The detail lines travel JSON-encoded on the multipart path.
	encoded, ok := payload.Fields["details"].(string)
	s.Require().True(ok)
	var lines []domain.DetailLine
	s.Require().NoError(json.Unmarshal([]byte(encoded), &lines))
	s.Require().Len(lines, 1)
	s.Equal("100", lines[0].Debit.String())
}

func (s *FormSessionTestSuite) TestAttachThenRemoveYieldsPlainPayload() {
	form := s.newSession()
	form.AttachFiles([]controllers.FileSelection{{Name: "a.png", Content: []byte{1}}})

	drafts := form.Attachments()
	s.Require().Len(drafts, 1)
	form.RemoveAttachment(drafts[0].AttachmentID)

	payload, err := form.BuildSubmissionPayload()
	s.Require().NoError(err)
	s.False(payload.Multipart)
}

func (s *FormSessionTestSuite) TestAttachZeroFilesIsNoOp() {
	form := s.newSession()
	form.AttachFiles(nil)
	s.Empty(form.Attachments())
}

func (s *FormSessionTestSuite) TestPreviewReleasedExactlyOnceOnRemoval() {
	var released atomic.Int32
	form := s.newSession(controllers.WithPreviewer(
		func(attachmentID, fileName string, _ []byte) *domain.PreviewHandle {
			return domain.NewPreviewHandle("preview://"+attachmentID, func() { released.Add(1) })
		}))

	form.AttachFiles([]controllers.FileSelection{{Name: "a.png", Content: []byte{1}}})
	id := form.Attachments()[0].AttachmentID

	form.RemoveAttachment(id)
	s.Equal(int32(1), released.Load())
	s.Empty(form.Attachments())

	// Unknown id and repeat removal are no-ops.
	form.RemoveAttachment(id)
	s.Equal(int32(1), released.Load())
}

func (s *FormSessionTestSuite) TestDiscardReleasesEveryPreviewOnce() {
	var released atomic.Int32
	form := s.newSession(controllers.WithPreviewer(
		func(attachmentID, fileName string, _ []byte) *domain.PreviewHandle {
			return domain.NewPreviewHandle("preview://"+attachmentID, func() { released.Add(1) })
		}))

	form.AttachFiles([]controllers.FileSelection{
		{Name: "a.png", Content: []byte{1}},
		{Name: "b.png", Content: []byte{2}},
	})

	form.Discard()
	s.Equal(int32(2), released.Load())

	form.Discard()
	s.Equal(int32(2), released.Load())
}

func (s *FormSessionTestSuite) TestSubmitBelowMinLinesFailsValidationWithoutDispatch() {
	form := s.newSession(controllers.WithMinLines(2))
	form.AddLine()

	err := form.Submit(context.Background())
	s.ErrorIs(err, apperrors.ErrValidation)

	s.writer.AssertNotCalled(s.T(), "Create", mock.Anything, mock.Anything)
	sig := s.bridge.Bus().Peek(controllers.SignalError)
	s.Require().NotNil(sig)
	s.Contains(sig.Message, "at least 2")
}

func (s *FormSessionTestSuite) TestSubmitRunsInstalledValidator() {
	form := s.newSession(controllers.WithValidator(controllers.RequireLineAccounts))
	form.AddLine()
	s.Require().NoError(form.UpdateLine(0, controllers.LineDebit, "10"))

	err := form.Submit(context.Background())
	s.ErrorIs(err, apperrors.ErrValidation)
	s.writer.AssertNotCalled(s.T(), "Create", mock.Anything, mock.Anything)
}

func (s *FormSessionTestSuite) TestSubmitCreateSuccessPublishesRedirectSignal() {
	s.writer.On("Create", mock.Anything, mock.MatchedBy(func(p ports.Payload) bool {
		return !p.Multipart
	})).Return("journal entry created", nil).Once()

	form := s.newSession()
	form.SetField("description", "opening balance")
	s.Require().NoError(form.Submit(context.Background()))

	sig := s.bridge.Bus().Peek(controllers.SignalSuccess)
	s.Require().NotNil(sig)
	s.Equal("journal entry created", sig.Message)
	s.Equal("/journal-entries", sig.Route)
	s.writer.AssertExpectations(s.T())
}

func (s *FormSessionTestSuite) TestSubmitUpdateUsesRecordID() {
	s.writer.On("Update", mock.Anything, "rec-9", mock.Anything).Return("record updated", nil).Once()

	form := s.newSession(controllers.WithRecordID("rec-9"))
	form.SetField("name", "edited")
	s.Require().NoError(form.Submit(context.Background()))

	s.writer.AssertExpectations(s.T())
}

func (s *FormSessionTestSuite) TestSubmitFailurePublishesErrorAndKeepsState() {
	s.writer.On("Create", mock.Anything, mock.Anything).Return("", assert.AnError).Once()

	form := s.newSession()
	form.SetField("name", "will fail")
	err := form.Submit(context.Background())
	s.ErrorIs(err, apperrors.ErrMutationRejected)

	// Form state is unchanged so the user can correct and resubmit.
	s.Equal("will fail", form.Field("name"))
	sig := s.bridge.Bus().Peek(controllers.SignalError)
	s.Require().NotNil(sig)
	s.False(form.IsSubmitting())
}

func TestFormSessionTestSuite(t *testing.T) {
	suite.Run(t, new(FormSessionTestSuite))
}
