package handler

import (
	"net/http"
	"strconv"
	"strings"

	"github.com/gin-gonic/gin"

	"docmap/internal/domain"
	"docmap/internal/service"
)

// CatalogHandler serves business models, templates and rule set configuration.
type CatalogHandler struct {
	catalog  service.CatalogService
	workflow service.WorkflowService
}

// NewCatalogHandler creates a new CatalogHandler.
func NewCatalogHandler(catalog service.CatalogService, workflow service.WorkflowService) *CatalogHandler {
	return &CatalogHandler{catalog: catalog, workflow: workflow}
}

// ListBizModels handles GET /api/v1/biz-models
// @Summary List business models
// @Tags catalog
// @Produce json
// @Success 200 {object} Response{data=[]domain.BizModel}
// @Router /biz-models [get]
func (h *CatalogHandler) ListBizModels(c *gin.Context) {
	RespondOK(c, h.catalog.BizModels(c.Request.Context()))
}

// GetBizModel handles GET /api/v1/biz-models/:id
// @Summary Get a business model
// @Tags catalog
// @Produce json
// @Param id path string true "Business model ID"
// @Success 200 {object} Response{data=domain.BizModel}
// @Failure 404 {object} ErrorResponseBody
// @Router /biz-models/{id} [get]
func (h *CatalogHandler) GetBizModel(c *gin.Context) {
	bm, err := h.catalog.BizModel(c.Request.Context(), c.Param("id"))
	if err != nil {
		HandleError(c, err)
		return
	}
	RespondOK(c, bm)
}

// TargetPaths handles GET /api/v1/biz-models/:id/target-paths
// @Summary List the target field paths of a business model
// @Tags catalog
// @Produce json
// @Param id path string true "Business model ID"
// @Success 200 {object} Response{data=schema.TargetPaths}
// @Failure 404 {object} ErrorResponseBody
// @Router /biz-models/{id}/target-paths [get]
func (h *CatalogHandler) TargetPaths(c *gin.Context) {
	paths, err := h.catalog.TargetPaths(c.Request.Context(), c.Param("id"))
	if err != nil {
		HandleError(c, err)
		return
	}
	RespondOK(c, paths)
}

// ListTemplates handles GET /api/v1/templates
// @Summary List document templates
// @Description Without partner_name every template is returned; with it, only those visible to the partner.
// @Tags catalog
// @Produce json
// @Param partner_name query string false "Partner name"
// @Param partner_type query string false "Partner type (Vendor or Customer)"
// @Success 200 {object} Response{data=[]domain.Template}
// @Router /templates [get]
func (h *CatalogHandler) ListTemplates(c *gin.Context) {
	var partner *domain.Partner
	if name := strings.TrimSpace(c.Query("partner_name")); name != "" {
		partner = &domain.Partner{Name: name, Type: domain.PartnerType(c.Query("partner_type"))}
	}
	RespondOK(c, h.catalog.Templates(c.Request.Context(), partner))
}

// SearchTemplates handles POST /api/v1/templates/search
// @Summary Suggest templates from a free-text description
// @Tags catalog
// @Accept json
// @Produce json
// @Param body body SearchTemplatesRequest true "Search request"
// @Success 200 {object} Response{data=SearchTemplatesResponse}
// @Failure 400 {object} ErrorResponseBody
// @Router /templates/search [post]
func (h *CatalogHandler) SearchTemplates(c *gin.Context) {
	var req SearchTemplatesRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		RespondError(c, http.StatusBadRequest, "INVALID_REQUEST", "description is required")
		return
	}
	var partner *domain.Partner
	if req.PartnerName != "" {
		partner = &domain.Partner{Name: req.PartnerName, Type: req.PartnerType}
	}
	names, err := h.workflow.SearchTemplates(c.Request.Context(), req.Description, partner)
	if err != nil {
		HandleError(c, err)
		return
	}
	RespondOK(c, SearchTemplatesResponse{Suggestions: names})
}

// ListRuleSets handles GET /api/v1/rule-sets
// @Summary List mapping rule sets
// @Tags rule-sets
// @Produce json
// @Success 200 {object} Response{data=[]domain.MappingRuleSet}
// @Router /rule-sets [get]
func (h *CatalogHandler) ListRuleSets(c *gin.Context) {
	RespondOK(c, h.catalog.ListRuleSets(c.Request.Context()))
}

// GetRuleSet handles GET /api/v1/rule-sets/:id
// @Summary Get a mapping rule set
// @Tags rule-sets
// @Produce json
// @Param id path string true "Rule set ID"
// @Success 200 {object} Response{data=domain.MappingRuleSet}
// @Failure 404 {object} ErrorResponseBody
// @Router /rule-sets/{id} [get]
func (h *CatalogHandler) GetRuleSet(c *gin.Context) {
	rs, err := h.catalog.GetRuleSet(c.Request.Context(), c.Param("id"))
	if err != nil {
		HandleError(c, err)
		return
	}
	RespondOK(c, rs)
}

// ReplaceRuleSet handles PUT /api/v1/rule-sets/:id
// @Summary Replace a mapping rule set
// @Description Every target field is validated against the business model schema; a rejected write leaves the rule set unchanged.
// @Tags rule-sets
// @Accept json
// @Produce json
// @Param id path string true "Rule set ID"
// @Param body body domain.MappingRuleSet true "Rule set"
// @Success 200 {object} Response{data=domain.MappingRuleSet}
// @Failure 400 {object} ErrorResponseBody
// @Failure 404 {object} ErrorResponseBody
// @Failure 409 {object} ErrorResponseBody "Duplicate rule id"
// @Failure 422 {object} ErrorResponseBody "Invalid target field"
// @Router /rule-sets/{id} [put]
func (h *CatalogHandler) ReplaceRuleSet(c *gin.Context) {
	var rs domain.MappingRuleSet
	if err := c.ShouldBindJSON(&rs); err != nil {
		RespondError(c, http.StatusBadRequest, "INVALID_REQUEST", "invalid rule set body")
		return
	}
	rs.ID = c.Param("id")
	if rs.BizModelID == "" {
		RespondError(c, http.StatusBadRequest, "INVALID_REQUEST", "biz_model_id is required")
		return
	}
	got, err := h.catalog.ReplaceRuleSet(c.Request.Context(), &rs)
	if err != nil {
		HandleError(c, err)
		return
	}
	RespondOK(c, got)
}

// UpsertHeaderRule handles POST /api/v1/rule-sets/:id/header-rules
// @Summary Add or update a header rule
// @Tags rule-sets
// @Accept json
// @Produce json
// @Param id path string true "Rule set ID"
// @Param body body domain.MappingRule true "Rule"
// @Success 200 {object} Response{data=domain.MappingRuleSet}
// @Failure 400 {object} ErrorResponseBody
// @Failure 404 {object} ErrorResponseBody
// @Failure 422 {object} ErrorResponseBody "Invalid target field"
// @Router /rule-sets/{id}/header-rules [post]
func (h *CatalogHandler) UpsertHeaderRule(c *gin.Context) {
	rule, ok := bindRule(c)
	if !ok {
		return
	}
	rs, err := h.catalog.UpsertHeaderRule(c.Request.Context(), c.Param("id"), rule)
	if err != nil {
		HandleError(c, err)
		return
	}
	RespondOK(c, rs)
}

// UpsertItemRule handles POST /api/v1/rule-sets/:id/item-rules/:group
// @Summary Add or update an item rule
// @Tags rule-sets
// @Accept json
// @Produce json
// @Param id path string true "Rule set ID"
// @Param group path int true "Item rule group index"
// @Param body body domain.MappingRule true "Rule"
// @Success 200 {object} Response{data=domain.MappingRuleSet}
// @Failure 400 {object} ErrorResponseBody
// @Failure 404 {object} ErrorResponseBody
// @Failure 422 {object} ErrorResponseBody "Invalid target field"
// @Router /rule-sets/{id}/item-rules/{group} [post]
func (h *CatalogHandler) UpsertItemRule(c *gin.Context) {
	group, ok := groupParam(c)
	if !ok {
		return
	}
	rule, ok := bindRule(c)
	if !ok {
		return
	}
	rs, err := h.catalog.UpsertItemRule(c.Request.Context(), c.Param("id"), group, rule)
	if err != nil {
		HandleError(c, err)
		return
	}
	RespondOK(c, rs)
}

// DeleteHeaderRule handles DELETE /api/v1/rule-sets/:id/header-rules/:ruleId
// @Summary Delete a header rule
// @Tags rule-sets
// @Produce json
// @Param id path string true "Rule set ID"
// @Param ruleId path string true "Rule ID"
// @Success 200 {object} Response{data=domain.MappingRuleSet}
// @Failure 404 {object} ErrorResponseBody
// @Router /rule-sets/{id}/header-rules/{ruleId} [delete]
func (h *CatalogHandler) DeleteHeaderRule(c *gin.Context) {
	rs, err := h.catalog.DeleteHeaderRule(c.Request.Context(), c.Param("id"), c.Param("ruleId"))
	if err != nil {
		HandleError(c, err)
		return
	}
	RespondOK(c, rs)
}

// DeleteItemRule handles DELETE /api/v1/rule-sets/:id/item-rules/:group/:ruleId
// @Summary Delete an item rule
// @Tags rule-sets
// @Produce json
// @Param id path string true "Rule set ID"
// @Param group path int true "Item rule group index"
// @Param ruleId path string true "Rule ID"
// @Success 200 {object} Response{data=domain.MappingRuleSet}
// @Failure 404 {object} ErrorResponseBody
// @Router /rule-sets/{id}/item-rules/{group}/{ruleId} [delete]
func (h *CatalogHandler) DeleteItemRule(c *gin.Context) {
	group, ok := groupParam(c)
	if !ok {
		return
	}
	rs, err := h.catalog.DeleteItemRule(c.Request.Context(), c.Param("id"), group, c.Param("ruleId"))
	if err != nil {
		HandleError(c, err)
		return
	}
	RespondOK(c, rs)
}

func bindRule(c *gin.Context) (domain.MappingRule, bool) {
	var rule domain.MappingRule
	if err := c.ShouldBindJSON(&rule); err != nil || rule.ID == "" || rule.SourceField == "" || rule.TargetField == "" {
		RespondError(c, http.StatusBadRequest, "INVALID_REQUEST", "id, source_field and target_field are required")
		return domain.MappingRule{}, false
	}
	return rule, true
}

func groupParam(c *gin.Context) (int, bool) {
	group, err := strconv.Atoi(c.Param("group"))
	if err != nil {
		RespondError(c, http.StatusBadRequest, "INVALID_REQUEST", "group must be an integer index")
		return 0, false
	}
	return group, true
}
