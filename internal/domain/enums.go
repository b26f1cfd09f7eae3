package domain

// FileType represents the allowed source document types for upload.
type FileType string

const (
	FileTypePDF FileType = "pdf"
	FileTypeJPG FileType = "jpg"
	FileTypePNG FileType = "png"
)

// AllowedContentTypes maps MIME content types to FileType.
var AllowedContentTypes = map[string]FileType{
	"application/pdf": FileTypePDF,
	"image/jpeg":      FileTypeJPG,
	"image/png":       FileTypePNG,
}

// AllowedExtensions maps file extensions (without dot) to FileType.
var AllowedExtensions = map[string]FileType{
	"pdf":  FileTypePDF,
	"jpg":  FileTypeJPG,
	"jpeg": FileTypeJPG,
	"png":  FileTypePNG,
}

// PartnerType distinguishes vendors from customers.
type PartnerType string

const (
	PartnerTypeVendor   PartnerType = "Vendor"
	PartnerTypeCustomer PartnerType = "Customer"
)

// ValidPartnerTypes is the set of accepted partner types.
var ValidPartnerTypes = map[PartnerType]bool{
	PartnerTypeVendor:   true,
	PartnerTypeCustomer: true,
}

// ReviewStatus is the two-state review status of a mapped field.
type ReviewStatus string

const (
	ReviewStatusNeedsReview ReviewStatus = "Needs Review"
	ReviewStatusConfirmed   ReviewStatus = "Confirmed"
)

// TriggerEnvironment is the target environment of a downstream action.
type TriggerEnvironment string

const (
	TriggerEnvDEV TriggerEnvironment = "DEV"
	TriggerEnvUAT TriggerEnvironment = "UAT"
)

// ValidTriggerEnvironments is the set of accepted trigger environments.
var ValidTriggerEnvironments = map[TriggerEnvironment]bool{
	TriggerEnvDEV: true,
	TriggerEnvUAT: true,
}

// TriggerStatus is the lifecycle of a dispatched action.
type TriggerStatus string

const (
	TriggerStatusPending   TriggerStatus = "pending"
	TriggerStatusSucceeded TriggerStatus = "succeeded"
	TriggerStatusFailed    TriggerStatus = "failed"
)

// Downstream actions that may be triggered with a reviewed output.
const (
	ActionAutoQuote   = "AutoQuote"
	ActionAutoVouch   = "AutoVouch"
	ActionAutoBilling = "AutoBilling"
	ActionAutoSPA     = "AutoSPA"
)

// ValidActions is the set of downstream actions.
var ValidActions = map[string]bool{
	ActionAutoQuote:   true,
	ActionAutoVouch:   true,
	ActionAutoBilling: true,
	ActionAutoSPA:     true,
}

// AuditAction names an entry in the review audit trail.
type AuditAction string

const (
	AuditSessionStarted   AuditAction = "session.started"
	AuditPartnerSet       AuditAction = "session.partner_set"
	AuditTemplateSelected AuditAction = "session.template_selected"
	AuditOutputParsed     AuditAction = "output.parsed"
	AuditFieldEdited      AuditAction = "field.edited"
	AuditFieldConfirmed   AuditAction = "field.confirmed"
	AuditTriggerRequested AuditAction = "trigger.requested"
	AuditTriggerCompleted AuditAction = "trigger.completed"
	AuditSessionReset     AuditAction = "session.reset"
	AuditSessionDiscarded AuditAction = "session.discarded"
)
