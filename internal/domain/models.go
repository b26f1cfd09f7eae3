package domain

import (
	"encoding/json"
	"time"

	"github.com/google/uuid"

	"docmap/internal/schema"
)

// Partner is the trading partner a document was received from.
type Partner struct {
	Name string      `json:"name" yaml:"name"`
	Type PartnerType `json:"type" yaml:"type"`
}

// Template describes the extractable source fields of a document layout.
type Template struct {
	ID                   string   `json:"id" yaml:"id"`
	Name                 string   `json:"name" yaml:"name"`
	Fields               []string `json:"fields" yaml:"fields"`
	CompatibleRuleSetIDs []string `json:"compatible_rule_set_ids" yaml:"compatible_rule_set_ids"`
	PartnerName          string   `json:"partner_name,omitempty" yaml:"partner_name"`
}

// VisibleTo reports whether the template may be offered for the given partner.
func (t *Template) VisibleTo(p Partner) bool {
	return t.PartnerName == "" || t.PartnerName == p.Name
}

// HasField reports whether name is one of the template's source fields.
func (t *Template) HasField(name string) bool {
	for _, f := range t.Fields {
		if f == name {
			return true
		}
	}
	return false
}

// BizModel is a canonical target schema for a business document.
type BizModel struct {
	ID          string          `json:"id" yaml:"id"`
	Name        string          `json:"name" yaml:"name"`
	Description string          `json:"description" yaml:"description"`
	Schema      *schema.Node    `json:"schema" yaml:"schema"`
	Sample      json.RawMessage `json:"sample,omitempty" yaml:"-"`
}

// MappingRule binds one template source field to one target path.
type MappingRule struct {
	ID          string `json:"id" yaml:"id"`
	SourceField string `json:"source_field" yaml:"source_field"`
	TargetField string `json:"target_field" yaml:"target_field"`
}

// ItemRuleSet groups the rules that populate one repeating array of the model.
type ItemRuleSet struct {
	TargetArray string        `json:"target_array" yaml:"target_array"`
	Rules       []MappingRule `json:"rules" yaml:"rules"`
}

// MappingRuleSet is the configured set of source-to-target bindings for one BizModel.
type MappingRuleSet struct {
	ID          string        `json:"id" yaml:"id"`
	Name        string        `json:"name" yaml:"name"`
	BizModelID  string        `json:"biz_model_id" yaml:"biz_model_id"`
	HeaderRules []MappingRule `json:"header_rules" yaml:"header_rules"`
	ItemRules   []ItemRuleSet `json:"item_rules" yaml:"item_rules"`
}

// Clone returns a deep copy of the rule set.
func (rs *MappingRuleSet) Clone() *MappingRuleSet {
	if rs == nil {
		return nil
	}
	out := &MappingRuleSet{
		ID:          rs.ID,
		Name:        rs.Name,
		BizModelID:  rs.BizModelID,
		HeaderRules: append([]MappingRule{}, rs.HeaderRules...),
		ItemRules:   make([]ItemRuleSet, len(rs.ItemRules)),
	}
	for i, group := range rs.ItemRules {
		out.ItemRules[i] = ItemRuleSet{
			TargetArray: group.TargetArray,
			Rules:       append([]MappingRule{}, group.Rules...),
		}
	}
	return out
}

// ParsedDataField is one mapped value together with its confidence and review status.
type ParsedDataField struct {
	ID         string       `json:"id"`
	Field      string       `json:"field"`
	Value      string       `json:"value"`
	Confidence float64      `json:"confidence"`
	Status     ReviewStatus `json:"status"`
}

// ItemRow is one line-item row keyed by target field path.
type ItemRow map[string]ParsedDataField

// ParsedOutput is the result of running a rule set against an extraction source.
type ParsedOutput struct {
	HeaderData []ParsedDataField `json:"header_data"`
	Items      []ItemRow         `json:"items"`
}

// Clone returns a deep copy of the output.
func (o *ParsedOutput) Clone() ParsedOutput {
	out := ParsedOutput{
		HeaderData: append([]ParsedDataField{}, o.HeaderData...),
		Items:      make([]ItemRow, len(o.Items)),
	}
	for i, row := range o.Items {
		cp := make(ItemRow, len(row))
		for k, v := range row {
			cp[k] = v
		}
		out.Items[i] = cp
	}
	return out
}

// TriggerConfig routes a downstream action onto the message bus.
type TriggerConfig struct {
	Environment  TriggerEnvironment `json:"environment"`
	ExchangeName string             `json:"exchange_name"`
	RoutingKey   string             `json:"routing_key"`
}

// TriggerRecord tracks one asynchronous downstream action dispatch.
type TriggerRecord struct {
	ID           uuid.UUID     `json:"id"`
	ActionName   string        `json:"action_name"`
	Config       TriggerConfig `json:"config"`
	Status       TriggerStatus `json:"status"`
	TrackingLink string        `json:"tracking_link,omitempty"`
	Error        string        `json:"error,omitempty"`
	RequestedAt  time.Time     `json:"requested_at"`
	CompletedAt  *time.Time    `json:"completed_at,omitempty"`
}

// SourceDocument references the uploaded document a session works on.
type SourceDocument struct {
	FileName    string   `json:"file_name"`
	ContentType string   `json:"content_type"`
	FileType    FileType `json:"file_type"`
	Size        int64    `json:"size"`
	Bucket      string   `json:"bucket,omitempty"`
	Key         string   `json:"key,omitempty"`
	Hint        string   `json:"hint,omitempty"`
}

// ReviewAuditEntry is one row of the review audit trail.
type ReviewAuditEntry struct {
	ID        uuid.UUID       `db:"id" json:"id"`
	SessionID uuid.UUID       `db:"session_id" json:"session_id"`
	Action    string          `db:"action" json:"action"`
	Changes   json.RawMessage `db:"changes" json:"changes"`
	CreatedAt time.Time       `db:"created_at" json:"created_at"`
}
