package api

import (
	"embed"
	"html/template"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/gcbaptista/go-vector-search/model"
	"github.com/gcbaptista/go-vector-search/services"
)

//go:embed templates/index.html
var templateFS embed.FS

const indexTemplate = "index.html"

var pageTemplates = template.Must(template.New("").Funcs(template.FuncMap{
	"inc": func(i int) int { return i + 1 },
}).ParseFS(templateFS, "templates/"+indexTemplate))

// indexPage is the data rendered by the HTML page.
type indexPage struct {
	Documents  []model.Document
	Results    []services.HitResult
	Query      string
	Suggestion string
	Searched   bool
}

func setupWebRoutes(router *gin.Engine, api *API) {
	router.SetHTMLTemplate(pageTemplates)

	router.GET("/", api.IndexPageHandler)
	router.POST("/", api.IndexPageHandler)
	router.POST("/add", api.AddDocumentFormHandler)
	router.GET("/delete/:documentId", api.DeleteDocumentFormHandler)
	router.POST("/delete/:documentId", api.DeleteDocumentFormHandler)
}

// IndexPageHandler renders the document list and, for a POST carrying
// search_query, the ranked results.
func (api *API) IndexPageHandler(c *gin.Context) {
	page := indexPage{Results: []services.HitResult{}}

	if c.Request.Method == http.MethodPost {
		if query, ok := c.GetPostForm("search_query"); ok {
			page.Query = query
			if !model.IsBlank(query) {
				page.Searched = true
				result := api.engine.Search(services.SearchQuery{QueryString: query})
				page.Results = result.Hits
				page.Suggestion = result.Suggestion
			}
		}
	}

	page.Documents = api.engine.ListDocuments()
	c.HTML(http.StatusOK, indexTemplate, page)
}

// AddDocumentFormHandler adds new_doc_text and redirects to the page. Blank
// text is ignored.
func (api *API) AddDocumentFormHandler(c *gin.Context) {
	if doc, ok := api.engine.AddDocument(c.PostForm("new_doc_text")); ok {
		api.logger.WithField("document_id", doc.ID).Debug("Document added from form")
	}
	c.Redirect(http.StatusFound, "/")
}

// DeleteDocumentFormHandler removes a document and redirects to the page.
// Unknown or malformed ids are ignored.
func (api *API) DeleteDocumentFormHandler(c *gin.Context) {
	if id, result := ValidateDocumentID(c.Param("documentId")); !result.HasErrors() {
		api.engine.RemoveDocument(id)
	}
	c.Redirect(http.StatusFound, "/")
}
