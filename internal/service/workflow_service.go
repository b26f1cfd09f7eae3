package service

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/mail"
	"path/filepath"
	"strings"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"docmap/internal/config"
	"docmap/internal/domain"
	"docmap/internal/export"
	"docmap/internal/extraction"
	"docmap/internal/mapping"
	"docmap/internal/port"
	"docmap/internal/review"
	"docmap/internal/ruleset"
	"docmap/internal/trigger"
)

// StartInput is the DTO for opening a review session. File is optional; a
// session can also start from a free-text hint alone.
type StartInput struct {
	File     io.ReadSeeker
	FileName string
	Size     int64
	Hint     string
}

// ParseInput selects the extraction source for a parse. A non-empty
// Extraction holds a structured extraction document; otherwise values are
// generated deterministically from Seed (defaulting to the session id).
type ParseInput struct {
	Seed       string
	Extraction []byte
}

// TriggerInput is the DTO for requesting a downstream action.
type TriggerInput struct {
	Action string
	Config domain.TriggerConfig
}

// TemplateSuggestion is the suggested template plus the templates it was chosen from.
type TemplateSuggestion struct {
	TemplateID string            `json:"template_id"`
	Templates  []domain.Template `json:"templates"`
}

// ExportFile is a rendered export ready to be served.
type ExportFile struct {
	FileName    string
	ContentType string
	Data        []byte
}

// TriggerQueue accepts trigger jobs for background dispatch.
type TriggerQueue interface {
	Submit(ctx context.Context, job trigger.Job) error
}

// WorkflowService defines the review wizard contract: upload, partner,
// template, rule set, parse, review, export and trigger.
type WorkflowService interface {
	Start(ctx context.Context, input StartInput) (*Session, error)
	Get(ctx context.Context, id uuid.UUID) (*Session, error)
	Reset(ctx context.Context, id uuid.UUID) (*Session, error)
	Discard(ctx context.Context, id uuid.UUID) error

	IdentifyPartner(ctx context.Context, id uuid.UUID) (*Session, error)
	SetPartner(ctx context.Context, id uuid.UUID, partner domain.Partner) (*Session, error)

	Templates(ctx context.Context, id uuid.UUID) ([]domain.Template, error)
	SuggestTemplate(ctx context.Context, id uuid.UUID) (*TemplateSuggestion, error)
	SearchTemplates(ctx context.Context, description string, partner *domain.Partner) ([]string, error)
	SelectTemplate(ctx context.Context, id uuid.UUID, templateID string) (*Session, error)
	SelectRuleSet(ctx context.Context, id uuid.UUID, ruleSetID string) (*Session, error)

	Parse(ctx context.Context, id uuid.UUID, input ParseInput) (*Session, error)

	EditHeader(ctx context.Context, id uuid.UUID, fieldID, value string) (*Session, error)
	ConfirmHeader(ctx context.Context, id uuid.UUID, fieldID string) (*Session, error)
	EditItem(ctx context.Context, id uuid.UUID, row int, fieldID, value string) (*Session, error)
	ConfirmItem(ctx context.Context, id uuid.UUID, row int, fieldID string) (*Session, error)

	ExportCSV(ctx context.Context, id uuid.UUID) (*ExportFile, error)
	ExportXLSX(ctx context.Context, id uuid.UUID) (*ExportFile, error)
	EmailExport(ctx context.Context, id uuid.UUID, to string) error

	Trigger(ctx context.Context, id uuid.UUID, input TriggerInput) (*domain.TriggerRecord, error)
	ListTriggers(ctx context.Context, id uuid.UUID) ([]domain.TriggerRecord, error)

	AuditTrail(ctx context.Context, id uuid.UUID, offset, limit int) ([]domain.ReviewAuditEntry, int, error)
}

// WorkflowDeps bundles the collaborators of the workflow service. Storage and
// Audit may be nil, which disables document upload and the audit trail.
type WorkflowDeps struct {
	Sessions   *SessionRegistry
	Store      *ruleset.Store
	Index      *ruleset.Index
	Executor   *mapping.Executor
	Review     *review.Machine
	Identifier port.PartnerIdentifier
	Suggester  port.TemplateSuggester
	Searcher   port.TemplateSearcher
	Storage    port.DocumentStorage
	S3         *config.S3Config
	Email      port.EmailSender
	Triggers   TriggerQueue
	Audit      port.ReviewAuditRepository
	Logger     *zap.Logger
	Now        func() time.Time
}

type workflowService struct {
	WorkflowDeps
	logger *zap.Logger
}

// NewWorkflowService creates a new WorkflowService implementation.
func NewWorkflowService(deps WorkflowDeps) WorkflowService {
	if deps.Now == nil {
		deps.Now = time.Now
	}
	if deps.S3 == nil {
		deps.S3 = &config.S3Config{}
	}
	return &workflowService{
		WorkflowDeps: deps,
		logger:       deps.Logger.Named("workflow"),
	}
}

func (s *workflowService) Start(ctx context.Context, input StartInput) (*Session, error) {
	var doc *domain.SourceDocument
	viewURL := ""
	if input.File != nil {
		var err error
		doc, err = s.inspect(input)
		if err != nil {
			return nil, err
		}
		if s.Storage != nil {
			viewURL, err = s.upload(ctx, input.File, doc)
			if err != nil {
				return nil, err
			}
		}
	} else if input.Hint != "" {
		doc = &domain.SourceDocument{Hint: input.Hint}
	}

	sess := s.Sessions.Create(doc, viewURL)
	s.logger.Info("session started",
		zap.String("session_id", sess.ID.String()),
		zap.Bool("has_document", doc != nil && doc.FileName != ""))
	s.audit(ctx, sess.ID, domain.AuditSessionStarted, map[string]interface{}{"document": doc})
	return sess, nil
}

// inspect validates the uploaded file by extension, size and magic bytes.
func (s *workflowService) inspect(input StartInput) (*domain.SourceDocument, error) {
	ext := strings.ToLower(strings.TrimPrefix(filepath.Ext(input.FileName), "."))
	fileType, ok := domain.AllowedExtensions[ext]
	if !ok {
		return nil, domain.ErrUnsupportedFileType
	}
	if maxBytes := s.S3.MaxFileSizeMB * 1024 * 1024; maxBytes > 0 && input.Size > maxBytes {
		return nil, domain.ErrFileTooLarge
	}

	buf := make([]byte, 512)
	n, err := input.File.Read(buf)
	if err != nil && err != io.EOF {
		return nil, fmt.Errorf("reading file header: %w", err)
	}
	contentType := http.DetectContentType(buf[:n])
	if _, ok := domain.AllowedContentTypes[contentType]; !ok {
		return nil, domain.ErrUnsupportedFileType
	}
	if _, err := input.File.Seek(0, io.SeekStart); err != nil {
		return nil, fmt.Errorf("seeking file: %w", err)
	}

	return &domain.SourceDocument{
		FileName:    input.FileName,
		ContentType: contentType,
		FileType:    fileType,
		Size:        input.Size,
		Hint:        input.Hint,
	}, nil
}

func (s *workflowService) upload(ctx context.Context, body io.Reader, doc *domain.SourceDocument) (string, error) {
	doc.Bucket = s.S3.Bucket
	doc.Key = fmt.Sprintf("documents/%s/%s", uuid.New(), export.SanitizeFilename(strings.TrimSuffix(doc.FileName, filepath.Ext(doc.FileName)))+"."+string(doc.FileType))

	ref := port.ObjectRef{Bucket: doc.Bucket, Key: doc.Key}
	_, err := s.Storage.Upload(ctx, port.UploadInput{
		Ref:         ref,
		Body:        body,
		ContentType: doc.ContentType,
		Size:        doc.Size,
		FileName:    doc.FileName,
		Metadata:    map[string]string{"original-name": doc.FileName},
	})
	if err != nil {
		s.logger.Error("document upload failed", zap.String("key", doc.Key), zap.Error(err))
		return "", domain.ErrUploadFailed
	}

	expiry := s.S3.PresignExpiry
	if expiry <= 0 {
		expiry = 3600
	}
	url, err := s.Storage.PresignView(ctx, ref, doc.FileName, time.Duration(expiry)*time.Second)
	if err != nil {
		// The document is stored; only the viewer link is missing.
		s.logger.Warn("presigning document failed", zap.String("key", doc.Key), zap.Error(err))
		return "", nil
	}
	return url, nil
}

func (s *workflowService) Get(_ context.Context, id uuid.UUID) (*Session, error) {
	return s.Sessions.Get(id)
}

func (s *workflowService) Reset(ctx context.Context, id uuid.UUID) (*Session, error) {
	sess, err := s.Sessions.Update(id, func(sess *Session) error {
		sess.Partner = nil
		sess.PartnerIdentified = false
		sess.clearTemplate()
		sess.Triggers = []domain.TriggerRecord{}
		return nil
	})
	if err != nil {
		return nil, err
	}
	s.audit(ctx, id, domain.AuditSessionReset, nil)
	return sess, nil
}

// Discard removes the session. The stored source document is deleted on a
// best-effort basis once the session is gone.
func (s *workflowService) Discard(ctx context.Context, id uuid.UUID) error {
	sess, err := s.Sessions.Get(id)
	if err != nil {
		return err
	}
	if err := s.Sessions.Delete(id); err != nil {
		return err
	}
	if doc := sess.Document; s.Storage != nil && doc != nil && doc.Key != "" {
		if err := s.Storage.Delete(context.WithoutCancel(ctx), port.ObjectRef{Bucket: doc.Bucket, Key: doc.Key}); err != nil {
			s.logger.Warn("deleting source document failed",
				zap.String("session_id", id.String()),
				zap.String("key", doc.Key),
				zap.Error(err))
		}
	}
	s.logger.Info("session discarded", zap.String("session_id", id.String()))
	s.audit(ctx, id, domain.AuditSessionDiscarded, nil)
	return nil
}

func (s *workflowService) IdentifyPartner(ctx context.Context, id uuid.UUID) (*Session, error) {
	current, err := s.Sessions.Get(id)
	if err != nil {
		return nil, err
	}
	var doc domain.SourceDocument
	if current.Document != nil {
		doc = *current.Document
	}

	partner, err := s.Identifier.Identify(ctx, doc)
	if err != nil {
		return nil, fmt.Errorf("identifying partner: %w", err)
	}
	if partner == nil {
		// Manual entry required; the session is left as it is.
		return current, nil
	}

	sess, err := s.Sessions.Update(id, func(sess *Session) error {
		if sess.Partner == nil || *sess.Partner != *partner {
			sess.clearTemplate()
		}
		p := *partner
		sess.Partner = &p
		sess.PartnerIdentified = true
		return nil
	})
	if err != nil {
		return nil, err
	}
	s.audit(ctx, id, domain.AuditPartnerSet, map[string]interface{}{"partner": partner, "identified": true})
	return sess, nil
}

func (s *workflowService) SetPartner(ctx context.Context, id uuid.UUID, partner domain.Partner) (*Session, error) {
	partner.Name = strings.TrimSpace(partner.Name)
	if partner.Name == "" || !domain.ValidPartnerTypes[partner.Type] {
		return nil, domain.ErrInvalidPartner
	}
	sess, err := s.Sessions.Update(id, func(sess *Session) error {
		if sess.Partner == nil || *sess.Partner != partner {
			sess.clearTemplate()
		}
		p := partner
		sess.Partner = &p
		sess.PartnerIdentified = false
		return nil
	})
	if err != nil {
		return nil, err
	}
	s.audit(ctx, id, domain.AuditPartnerSet, map[string]interface{}{"partner": partner, "identified": false})
	return sess, nil
}

func (s *workflowService) Templates(_ context.Context, id uuid.UUID) ([]domain.Template, error) {
	sess, err := s.Sessions.Get(id)
	if err != nil {
		return nil, err
	}
	if sess.Partner == nil {
		return nil, domain.ErrPartnerRequired
	}
	return s.Index.VisibleTemplates(*sess.Partner), nil
}

func (s *workflowService) SuggestTemplate(ctx context.Context, id uuid.UUID) (*TemplateSuggestion, error) {
	sess, err := s.Sessions.Get(id)
	if err != nil {
		return nil, err
	}
	if sess.Partner == nil {
		return nil, domain.ErrPartnerRequired
	}
	templates := s.Index.VisibleTemplates(*sess.Partner)

	suggested, err := s.Suggester.Suggest(ctx, *sess.Partner, templates)
	if err != nil {
		if ctx.Err() != nil {
			return nil, ctx.Err()
		}
		s.logger.Warn("template suggestion failed", zap.Error(err))
		suggested = ""
	}
	if suggested == "" && len(templates) > 0 {
		suggested = templates[0].ID
	}
	return &TemplateSuggestion{TemplateID: suggested, Templates: templates}, nil
}

func (s *workflowService) SearchTemplates(ctx context.Context, description string, partner *domain.Partner) ([]string, error) {
	templates := s.Index.Templates()
	if partner != nil {
		templates = s.Index.VisibleTemplates(*partner)
	}
	if len(templates) == 0 {
		return []string{}, nil
	}
	names, err := s.Searcher.Search(ctx, description, templates)
	if err != nil {
		return nil, fmt.Errorf("searching templates: %w", err)
	}
	return names, nil
}

func (s *workflowService) SelectTemplate(ctx context.Context, id uuid.UUID, templateID string) (*Session, error) {
	tmpl, err := s.Index.Template(templateID)
	if err != nil {
		return nil, err
	}
	sess, err := s.Sessions.Update(id, func(sess *Session) error {
		if sess.Partner == nil {
			return domain.ErrPartnerRequired
		}
		if !tmpl.VisibleTo(*sess.Partner) {
			return domain.ErrTemplateNotFound
		}
		defaultRuleSet, err := s.Index.DefaultRuleSet(tmpl.ID)
		if err != nil {
			return err
		}
		sess.clearTemplate()
		sess.TemplateID = tmpl.ID
		sess.RuleSetID = defaultRuleSet
		return nil
	})
	if err != nil {
		return nil, err
	}
	s.audit(ctx, id, domain.AuditTemplateSelected, map[string]interface{}{
		"template_id": sess.TemplateID,
		"rule_set_id": sess.RuleSetID,
	})
	return sess, nil
}

func (s *workflowService) SelectRuleSet(ctx context.Context, id uuid.UUID, ruleSetID string) (*Session, error) {
	if !s.Store.Has(ruleSetID) {
		return nil, domain.ErrRuleSetNotFound
	}
	sess, err := s.Sessions.Update(id, func(sess *Session) error {
		if sess.TemplateID == "" {
			return domain.ErrTemplateRequired
		}
		if !s.Index.IsCompatible(sess.TemplateID, ruleSetID) {
			return domain.ErrIncompatibleRuleSet
		}
		if sess.RuleSetID != ruleSetID {
			sess.clearRuleSet()
			sess.RuleSetID = ruleSetID
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	s.audit(ctx, id, domain.AuditTemplateSelected, map[string]interface{}{
		"template_id": sess.TemplateID,
		"rule_set_id": sess.RuleSetID,
	})
	return sess, nil
}

// Parse runs the selected rule set. The session lock is held for the whole
// run, and the previous output survives a failed run.
func (s *workflowService) Parse(ctx context.Context, id uuid.UUID, input ParseInput) (*Session, error) {
	var source port.ExtractionSource
	if len(input.Extraction) > 0 {
		structured, err := extraction.ParseStructured(input.Extraction)
		if err != nil {
			return nil, fmt.Errorf("%w: %v", domain.ErrInvalidExtraction, err)
		}
		source = structured
	}

	sess, err := s.Sessions.Update(id, func(sess *Session) error {
		if sess.Partner == nil {
			return domain.ErrPartnerRequired
		}
		if sess.TemplateID == "" {
			return domain.ErrTemplateRequired
		}
		if sess.RuleSetID == "" {
			return domain.ErrRuleSetRequired
		}
		rs, err := s.Store.Get(sess.RuleSetID)
		if err != nil {
			return err
		}

		src := source
		if src == nil {
			seed := input.Seed
			if seed == "" {
				seed = sess.ID.String()
			}
			src = extraction.NewSample(seed)
		}

		out, err := s.Executor.Execute(ctx, *sess.Partner, rs, src)
		if err != nil {
			return err
		}
		sess.Output = out
		return nil
	})
	if err != nil {
		return nil, err
	}

	s.audit(ctx, id, domain.AuditOutputParsed, map[string]interface{}{
		"rule_set_id": sess.RuleSetID,
		"summary":     review.Summarize(*sess.Output),
	})
	return sess, nil
}

func (s *workflowService) EditHeader(ctx context.Context, id uuid.UUID, fieldID, value string) (*Session, error) {
	return s.transition(ctx, id, domain.AuditFieldEdited, func(out domain.ParsedOutput) (review.Result, error) {
		return s.Review.Edit(out, review.HeaderRef(fieldID), value)
	})
}

func (s *workflowService) ConfirmHeader(ctx context.Context, id uuid.UUID, fieldID string) (*Session, error) {
	return s.transition(ctx, id, domain.AuditFieldConfirmed, func(out domain.ParsedOutput) (review.Result, error) {
		return s.Review.Confirm(out, review.HeaderRef(fieldID))
	})
}

func (s *workflowService) EditItem(ctx context.Context, id uuid.UUID, row int, fieldID, value string) (*Session, error) {
	return s.transition(ctx, id, domain.AuditFieldEdited, func(out domain.ParsedOutput) (review.Result, error) {
		return s.Review.Edit(out, itemRef(out, row, fieldID), value)
	})
}

func (s *workflowService) ConfirmItem(ctx context.Context, id uuid.UUID, row int, fieldID string) (*Session, error) {
	return s.transition(ctx, id, domain.AuditFieldConfirmed, func(out domain.ParsedOutput) (review.Result, error) {
		return s.Review.Confirm(out, itemRef(out, row, fieldID))
	})
}

// itemRef resolves an item field id. Routes address item fields by id only;
// an unknown id yields a reference that matches nothing, so the review
// machine applies its strictness rule uniformly.
func itemRef(out domain.ParsedOutput, row int, fieldID string) review.FieldRef {
	if ref, ok := review.ItemRefByID(out, row, fieldID); ok {
		return ref
	}
	return review.UnresolvedItemRef(row, fieldID)
}

func (s *workflowService) transition(ctx context.Context, id uuid.UUID, action domain.AuditAction, fn func(domain.ParsedOutput) (review.Result, error)) (*Session, error) {
	var res review.Result
	sess, err := s.Sessions.Update(id, func(sess *Session) error {
		if sess.Output == nil {
			return domain.ErrNotParsed
		}
		var err error
		res, err = fn(*sess.Output)
		if err != nil {
			return err
		}
		if res.Changed {
			out := res.Output
			sess.Output = &out
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	if res.Changed {
		s.audit(ctx, id, action, map[string]interface{}{
			"field_id": res.After.ID,
			"field":    res.After.Field,
			"before":   res.Before,
			"after":    res.After,
		})
	}
	return sess, nil
}

func (s *workflowService) parsed(id uuid.UUID) (*Session, error) {
	sess, err := s.Sessions.Get(id)
	if err != nil {
		return nil, err
	}
	if sess.Output == nil {
		return nil, domain.ErrNotParsed
	}
	return sess, nil
}

func exportName(sess *Session) string {
	if sess.Partner != nil {
		return sess.Partner.Name
	}
	return "export"
}

func (s *workflowService) ExportCSV(_ context.Context, id uuid.UUID) (*ExportFile, error) {
	sess, err := s.parsed(id)
	if err != nil {
		return nil, err
	}
	var buf bytes.Buffer
	if err := export.WriteCSV(&buf, *sess.Output); err != nil {
		return nil, fmt.Errorf("exporting csv: %w", err)
	}
	return &ExportFile{
		FileName:    export.BuildFilename(exportName(sess), "csv", s.Now()),
		ContentType: "text/csv; charset=utf-8",
		Data:        buf.Bytes(),
	}, nil
}

func (s *workflowService) ExportXLSX(_ context.Context, id uuid.UUID) (*ExportFile, error) {
	sess, err := s.parsed(id)
	if err != nil {
		return nil, err
	}
	var buf bytes.Buffer
	if err := export.WriteXLSX(&buf, *sess.Output); err != nil {
		return nil, fmt.Errorf("exporting xlsx: %w", err)
	}
	return &ExportFile{
		FileName:    export.BuildFilename(exportName(sess), "xlsx", s.Now()),
		ContentType: export.ContentTypeXLSX,
		Data:        buf.Bytes(),
	}, nil
}

func (s *workflowService) EmailExport(ctx context.Context, id uuid.UUID, to string) error {
	addr, err := mail.ParseAddress(to)
	if err != nil {
		return domain.ErrInvalidRecipient
	}
	sess, err := s.parsed(id)
	if err != nil {
		return err
	}
	msg, err := export.BuildEmail(export.EmailInput{
		To:        addr.Address,
		Name:      exportName(sess),
		Partner:   *sess.Partner,
		RuleSetID: sess.RuleSetID,
		Output:    *sess.Output,
		Now:       s.Now(),
	})
	if err != nil {
		return err
	}
	if err := s.Email.SendExport(ctx, msg); err != nil {
		return fmt.Errorf("sending export email: %w", err)
	}
	s.logger.Info("export emailed",
		zap.String("session_id", id.String()),
		zap.String("to", addr.Address))
	return nil
}

// Trigger queues a downstream action with a snapshot of the current output.
// The returned record is pending; its outcome is recorded on the session when
// the dispatch completes.
func (s *workflowService) Trigger(ctx context.Context, id uuid.UUID, input TriggerInput) (*domain.TriggerRecord, error) {
	if !domain.ValidActions[input.Action] {
		return nil, domain.ErrUnknownAction
	}
	if err := trigger.ValidateConfig(input.Config); err != nil {
		return nil, err
	}

	record := domain.TriggerRecord{
		ID:          uuid.New(),
		ActionName:  input.Action,
		Config:      input.Config,
		Status:      domain.TriggerStatusPending,
		RequestedAt: s.Now().UTC(),
	}

	_, err := s.Sessions.Update(id, func(sess *Session) error {
		if sess.Output == nil {
			return domain.ErrNotParsed
		}
		req := port.TriggerRequest{
			ID:         record.ID,
			SessionID:  sess.ID,
			ActionName: input.Action,
			Config:     input.Config,
			Partner:    *sess.Partner,
			RuleSetID:  sess.RuleSetID,
			Output:     sess.Output.Clone(),
		}
		job := trigger.Job{
			Request: req,
			Done: func(receipt *port.TriggerReceipt, err error) {
				s.completeTrigger(id, record.ID, receipt, err)
			},
		}
		if err := s.Triggers.Submit(ctx, job); err != nil {
			return fmt.Errorf("queueing trigger %s: %w", input.Action, err)
		}
		sess.Triggers = append(sess.Triggers, record)
		return nil
	})
	if err != nil {
		return nil, err
	}

	s.audit(ctx, id, domain.AuditTriggerRequested, map[string]interface{}{
		"trigger_id": record.ID,
		"action":     record.ActionName,
		"config":     record.Config,
	})
	return &record, nil
}

func (s *workflowService) completeTrigger(sessionID, triggerID uuid.UUID, receipt *port.TriggerReceipt, dispatchErr error) {
	completed := s.Now().UTC()
	var final domain.TriggerRecord
	_, err := s.Sessions.Update(sessionID, func(sess *Session) error {
		for i := range sess.Triggers {
			if sess.Triggers[i].ID != triggerID {
				continue
			}
			rec := &sess.Triggers[i]
			rec.CompletedAt = &completed
			if dispatchErr != nil {
				rec.Status = domain.TriggerStatusFailed
				rec.Error = dispatchErr.Error()
			} else {
				rec.Status = domain.TriggerStatusSucceeded
				if receipt != nil {
					rec.TrackingLink = receipt.TrackingLink
				}
			}
			final = *rec
			return nil
		}
		// Reset since the request; nothing to record.
		return domain.ErrNotFound
	})
	if err != nil {
		if !errors.Is(err, domain.ErrNotFound) && !errors.Is(err, domain.ErrSessionNotFound) {
			s.logger.Warn("recording trigger outcome failed", zap.Error(err))
		}
		return
	}
	s.audit(context.Background(), sessionID, domain.AuditTriggerCompleted, map[string]interface{}{
		"trigger_id":    final.ID,
		"status":        final.Status,
		"tracking_link": final.TrackingLink,
		"error":         final.Error,
	})
}

func (s *workflowService) ListTriggers(_ context.Context, id uuid.UUID) ([]domain.TriggerRecord, error) {
	sess, err := s.Sessions.Get(id)
	if err != nil {
		return nil, err
	}
	return sess.Triggers, nil
}

func (s *workflowService) AuditTrail(ctx context.Context, id uuid.UUID, offset, limit int) ([]domain.ReviewAuditEntry, int, error) {
	if _, err := s.Sessions.Get(id); err != nil {
		return nil, 0, err
	}
	if s.Audit == nil {
		return []domain.ReviewAuditEntry{}, 0, nil
	}
	return s.Audit.ListBySession(ctx, id, offset, limit)
}
