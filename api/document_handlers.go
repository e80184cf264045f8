package api

import (
	"errors"
	"fmt"
	"net/http"

	"github.com/gin-gonic/gin"

	internalErrors "github.com/gcbaptista/go-vector-search/internal/errors"
	"github.com/gcbaptista/go-vector-search/model"
)

// AddDocumentRequest is the body of POST /api/documents.
type AddDocumentRequest struct {
	Text string `json:"text"`
}

// AddDocumentHandler adds a document. The index is rebuilt before the
// response is sent.
func (api *API) AddDocumentHandler(c *gin.Context) {
	var req AddDocumentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		SendInvalidJSONError(c, err)
		return
	}

	if result := ValidateDocumentText(req.Text); result.HasErrors() {
		SendValidationError(c, result)
		return
	}

	doc, ok := api.engine.AddDocument(req.Text)
	if !ok {
		// Only blank text is rejected, which validation already caught.
		SendError(c, http.StatusBadRequest, ErrorCodeInvalidRequest, "Document was not added")
		return
	}

	c.JSON(http.StatusCreated, gin.H{
		"message":  fmt.Sprintf("Document %d added", doc.ID),
		"document": doc,
	})
}

// ListDocumentsHandler returns every document in insertion order.
func (api *API) ListDocumentsHandler(c *gin.Context) {
	docs := api.engine.ListDocuments()
	if docs == nil {
		docs = []model.Document{}
	}
	c.JSON(http.StatusOK, gin.H{
		"documents": docs,
		"total":     len(docs),
	})
}

// GetDocumentHandler returns a single document.
func (api *API) GetDocumentHandler(c *gin.Context) {
	id, result := ValidateDocumentID(c.Param("documentId"))
	if result.HasErrors() {
		SendValidationError(c, result)
		return
	}

	doc, err := api.engine.GetDocument(id)
	if err != nil {
		if errors.Is(err, internalErrors.ErrDocumentNotFound) {
			SendDocumentNotFoundError(c, id)
			return
		}
		SendInternalError(c, "get document", err)
		return
	}

	c.JSON(http.StatusOK, doc)
}

// DeleteDocumentHandler removes a document. Deleting an id that does not
// exist changes nothing and returns 404.
func (api *API) DeleteDocumentHandler(c *gin.Context) {
	id, result := ValidateDocumentID(c.Param("documentId"))
	if result.HasErrors() {
		SendValidationError(c, result)
		return
	}

	if !api.engine.RemoveDocument(id) {
		SendDocumentNotFoundError(c, id)
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": fmt.Sprintf("Document %d deleted", id)})
}
