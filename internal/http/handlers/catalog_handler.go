// Catalog HTTP handlers.
//
// GET /catalog/search proxies a title query to the remote catalog so the
// client can pick a result and POST its id to /movies.
package handlers

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/tbourn/go-movie-collection/internal/catalog"
)

// SearchResponse lists catalog candidates in remote order.
type SearchResponse struct {
	Results []catalog.SearchResult `json:"results"`
}

// SearchCatalog godoc
// @ID          searchCatalog
// @Summary     Search the movie catalog
// @Description Returns every catalog candidate on the first result page for a title
// @Description query, in the catalog's order and without filtering.
// @Tags        Catalog
// @Produce     json
//
// @Param       query  query  string  true  "Title to search for"  example(alien)
//
// @Success     200  {object}  handlers.SearchResponse
// @Failure     400  {object}  handlers.ErrorResponse  "Empty query"
// @Failure     502  {object}  handlers.ErrorResponse  "Catalog unavailable or malformed"
// @Failure     503  {object}  handlers.ErrorResponse  "Catalog not configured"
// @Router      /catalog/search [get]
func (h *Handlers) SearchCatalog(c *gin.Context) {
	q := strings.TrimSpace(c.Query("query"))
	if q == "" {
		fail(c, http.StatusBadRequest, ErrCodeBadRequest, "query required")
		return
	}

	results, err := h.selSvc.Search(c.Request.Context(), q)
	if err != nil {
		failErr(c, err)
		return
	}
	if results == nil {
		results = []catalog.SearchResult{}
	}
	ok(c, http.StatusOK, SearchResponse{Results: results})
}
