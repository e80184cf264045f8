package api

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/gcbaptista/go-vector-search/services"
)

// SearchRequest defines the structure for search queries.
type SearchRequest struct {
	Query string `json:"query"`
	Limit int    `json:"limit,omitempty"`
}

// MultiSearchRequest represents the JSON request for multi-search
type MultiSearchRequest struct {
	Queries []NamedSearchRequest `json:"queries" binding:"required"`
	Limit   int                  `json:"limit,omitempty"`
}

// NamedSearchRequest represents a single named search query in the request
type NamedSearchRequest struct {
	Name  string `json:"name" binding:"required"`
	Query string `json:"query"`
	Limit int    `json:"limit,omitempty"`
}

// SearchHandler handles POST /api/search.
func (api *API) SearchHandler(c *gin.Context) {
	var req SearchRequest

	// Bind JSON directly with error handling
	if err := c.ShouldBindJSON(&req); err != nil {
		SendError(c, http.StatusBadRequest, ErrorCodeInvalidQuery, "Invalid request body: "+err.Error())
		return
	}

	api.search(c, req)
}

// SearchGetHandler handles GET /api/search?q=...&limit=...
func (api *API) SearchGetHandler(c *gin.Context) {
	limit, result := ParseLimit(c.Query("limit"))
	if result.HasErrors() {
		SendValidationError(c, result)
		return
	}
	api.search(c, SearchRequest{Query: c.Query("q"), Limit: limit})
}

func (api *API) search(c *gin.Context, req SearchRequest) {
	if result := ValidateSearchRequest(req.Query, req.Limit); result.HasErrors() {
		SendValidationError(c, result)
		return
	}

	results := api.engine.Search(services.SearchQuery{
		QueryString: req.Query,
		Limit:       req.Limit,
	})

	c.JSON(http.StatusOK, results)
}

// MultiSearchHandler handles POST /api/multi-search.
func (api *API) MultiSearchHandler(c *gin.Context) {
	var req MultiSearchRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		SendError(c, http.StatusBadRequest, ErrorCodeInvalidQuery, "Invalid request body: "+err.Error())
		return
	}

	validation := &ValidationResult{Valid: true}
	if len(req.Queries) == 0 {
		validation.AddError("queries", "At least one query is required")
	}
	queries := make([]services.NamedSearchQuery, len(req.Queries))
	names := make(map[string]struct{}, len(req.Queries))
	for i, nq := range req.Queries {
		if nq.Name == "" {
			validation.AddError("queries", "Each query must have a non-empty name")
		} else if _, dup := names[nq.Name]; dup {
			validation.AddError("queries", "Duplicate query name '"+nq.Name+"'")
		}
		names[nq.Name] = struct{}{}
		for _, e := range ValidateSearchRequest(nq.Query, nq.Limit).Errors {
			validation.AddError("queries["+nq.Name+"]."+e.Field, e.Message)
		}
		queries[i] = services.NamedSearchQuery{Name: nq.Name, Query: nq.Query, Limit: nq.Limit}
	}
	if req.Limit < 0 {
		validation.AddError("limit", "Limit cannot be negative")
	}
	if validation.HasErrors() {
		SendValidationError(c, validation)
		return
	}

	results, err := api.engine.MultiSearch(c.Request.Context(), services.MultiSearchQuery{
		Queries: queries,
		Limit:   req.Limit,
	})
	if err != nil {
		SendSearchError(c, err)
		return
	}

	c.JSON(http.StatusOK, results)
}
