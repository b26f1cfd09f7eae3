package domain

import (
	"errors"
	"fmt"
)

var (
	ErrNotFound            = errors.New("resource not found")
	ErrInvalidTargetField  = errors.New("invalid target field")
	ErrUnknownBizModel     = errors.New("unknown business model")
	ErrEmptyExtraction     = errors.New("extraction yielded no item rows")
	ErrMissingFieldValue   = errors.New("extraction could not supply a value")
	ErrRuleSetNotFound     = errors.New("rule set not found")
	ErrDuplicateRuleSet    = errors.New("rule set id already exists")
	ErrDuplicateRuleID     = errors.New("rule id already exists in this rule list")
	ErrMissingSourceField  = errors.New("rule source field is required")
	ErrRuleNotFound        = errors.New("rule not found")
	ErrItemGroupNotFound   = errors.New("item rule group not found")
	ErrTemplateNotFound    = errors.New("template not found")
	ErrIncompatibleRuleSet = errors.New("rule set is not compatible with the selected template")
	ErrFieldNotFound       = errors.New("parsed field not found")
	ErrSessionNotFound     = errors.New("review session not found")
	ErrPartnerRequired     = errors.New("partner must be identified or entered first")
	ErrTemplateRequired    = errors.New("template must be selected first")
	ErrRuleSetRequired     = errors.New("rule set must be selected first")
	ErrNotParsed           = errors.New("document has not been parsed yet")
	ErrInvalidTrigger      = errors.New("trigger configuration is incomplete")
	ErrUnknownAction       = errors.New("unknown trigger action")
	ErrInvalidPartner      = errors.New("partner name and type are required")
	ErrUnsupportedFileType = errors.New("unsupported file type")
	ErrUploadFailed        = errors.New("file upload to storage failed")
	ErrFileTooLarge        = errors.New("file exceeds maximum allowed size")
	ErrInvalidRecipient    = errors.New("recipient email address is invalid")
	ErrInvalidExtraction   = errors.New("extraction document is malformed")
)

// Scope names used by InvalidTargetFieldError for header rules.
const ScopeHeader = "header"

// InvalidTargetFieldError reports a rule write whose target is not a resolvable path.
type InvalidTargetFieldError struct {
	Path  string
	Scope string // "header" or the item array name
}

func (e *InvalidTargetFieldError) Error() string {
	return fmt.Sprintf("invalid target field %q for %s rules", e.Path, e.Scope)
}

func (e *InvalidTargetFieldError) Unwrap() error {
	return ErrInvalidTargetField
}
