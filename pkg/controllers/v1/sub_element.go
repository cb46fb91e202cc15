package v1

import (
	"net/http"
	"time"

	"github.com/contract-ledger/backend/pkg/httputil"
	"github.com/contract-ledger/backend/pkg/models"
	"github.com/gin-gonic/gin"
	"golang.org/x/exp/slices"
)

// RegisterSubElementRoutes registers the routes for sub-elements with
// the RouterGroup that is passed.
func (co Controller) RegisterSubElementRoutes(r *gin.RouterGroup) {
	// Root group
	{
		r.OPTIONS("", co.OptionsSubElementList)
		r.GET("", co.GetSubElements)
		r.POST("", co.CreateSubElements)
	}

	// Sub-element with ID
	{
		r.OPTIONS("/:id", co.OptionsSubElementDetail)
		r.GET("/:id", co.GetSubElement)
		r.PATCH("/:id", co.UpdateSubElement)
	}
}

// @Summary		Allowed HTTP verbs
// @Description	Returns an empty response with the HTTP Header "allow" set to the allowed HTTP verbs
// @Tags			Sub-elements
// @Success		204
// @Router			/v1/sub-elements [options]
func (co Controller) OptionsSubElementList(c *gin.Context) {
	httputil.OptionsGetPost(c)
}

// @Summary		Allowed HTTP verbs
// @Description	Returns an empty response with the HTTP Header "allow" set to the allowed HTTP verbs
// @Tags			Sub-elements
// @Success		204
// @Failure		400	{object}	httpError
// @Failure		404	{object}	httpError
// @Failure		500	{object}	httpError
// @Param			id	path		URIID	true	"ignored, but needed: https://github.com/swaggo/swag/issues/1014"
// @Router			/v1/sub-elements/{id} [options]
func (co Controller) OptionsSubElementDetail(c *gin.Context) {
	var uri URIID
	err := c.ShouldBindUri(&uri)
	if err != nil {
		c.JSON(status(err), httpError{
			Error: err.Error(),
		})
		return
	}

	err = co.DB.First(&models.SubElement{}, uri.ID).Error
	if err != nil {
		c.JSON(status(err), httpError{
			Error: err.Error(),
		})
		return
	}

	httputil.OptionsGetPatch(c)
}

// @Summary		Post sub-elements
// @Description	Posts new sub-elements. Each sub-element is posted in its own transaction together with the change
// @Description	of the contract value or measured value it causes. The response contains the contract as committed.
// @Tags			Sub-elements
// @Produce		json
// @Success		201			{object}	SubElementCreateResponse
// @Failure		400			{object}	SubElementCreateResponse
// @Failure		404			{object}	SubElementCreateResponse
// @Failure		409			{object}	SubElementCreateResponse
// @Failure		500			{object}	SubElementCreateResponse
// @Param			subElements	body		[]SubElementEditable	true	"Sub-elements"
// @Router			/v1/sub-elements [post]
func (co Controller) CreateSubElements(c *gin.Context) {
	var editables []SubElementEditable

	// Bind data and return error if not possible
	err := httputil.BindData(c, &editables)
	if err != nil {
		e := err.Error()
		c.JSON(status(err), SubElementCreateResponse{
			Error: &e,
		})
		return
	}

	// The final http status. Will be modified when errors occur
	status := http.StatusCreated
	r := SubElementCreateResponse{}

	for _, editable := range editables {
		contract, posted, err := co.Ledger.PostSubElement(c.Request.Context(), editable.model())
		if err != nil {
			status = r.appendError(err, status)
			continue
		}

		data := newSubElement(c, posted)
		contractData := newContract(c, contract)
		r.Data = append(r.Data, SubElementPostingResponse{Data: &data, Contract: &contractData})
	}

	co.invalidate(c)
	c.JSON(status, r)
}

// @Summary		List sub-elements
// @Description	Returns a list of sub-elements, ordered by date
// @Tags			Sub-elements
// @Produce		json
// @Success		200	{object}	SubElementListResponse
// @Failure		400	{object}	SubElementListResponse
// @Failure		500	{object}	SubElementListResponse
// @Router			/v1/sub-elements [get]
// @Param			contract	query	uint	false	"Filter by contract ID"
// @Param			tipo		query	string	false	"Filter by kind"
// @Param			status		query	string	false	"Filter by status"
// @Param			fromDate	query	string	false	"Sub-elements at and after this date"
// @Param			untilDate	query	string	false	"Sub-elements before and at this date"
// @Param			offset		query	uint	false	"The offset of the first sub-element returned. Defaults to 0."
// @Param			limit		query	int		false	"Maximum number of sub-elements to return. Defaults to 50."
func (co Controller) GetSubElements(c *gin.Context) {
	var filter SubElementQueryFilter
	if err := c.Bind(&filter); err != nil {
		s := err.Error()
		c.JSON(http.StatusBadRequest, SubElementListResponse{
			Error: &s,
		})
		return
	}

	// Get the set parameters in the query string
	queryFields, setFields := httputil.GetURLFields(c.Request.URL, filter)
	model := filter.model()

	q := co.DB.
		Order("data ASC, id ASC").
		Where(&model, queryFields...)

	if !filter.FromDate.IsZero() {
		q = q.Where("data >= ?", filter.FromDate.In(time.UTC))
	}

	if !filter.UntilDate.IsZero() {
		q = q.Where("data <= ?", filter.UntilDate.In(time.UTC))
	}

	q = q.Offset(int(filter.Offset))

	limit := defaultLimit
	if slices.Contains(setFields, "Limit") {
		limit = filter.Limit
	}
	q = q.Limit(limit)

	var subElements []models.SubElement
	err := q.Find(&subElements).Error
	if err != nil {
		s := err.Error()
		c.JSON(status(err), SubElementListResponse{
			Error: &s,
		})
		return
	}

	var count int64
	err = q.Limit(-1).Offset(-1).Count(&count).Error
	if err != nil {
		s := err.Error()
		c.JSON(status(err), SubElementListResponse{
			Error: &s,
		})
		return
	}

	data := make([]SubElement, 0)
	for _, subElement := range subElements {
		data = append(data, newSubElement(c, subElement))
	}

	c.JSON(http.StatusOK, SubElementListResponse{
		Data: data,
		Pagination: &Pagination{
			Count:  len(data),
			Total:  count,
			Offset: filter.Offset,
			Limit:  limit,
		},
	})
}

// @Summary		Get sub-element
// @Description	Returns a specific sub-element
// @Tags			Sub-elements
// @Produce		json
// @Success		200	{object}	SubElementResponse
// @Failure		400	{object}	SubElementResponse
// @Failure		404	{object}	SubElementResponse
// @Failure		500	{object}	SubElementResponse
// @Param			id	path		URIID	true	"ignored, but needed: https://github.com/swaggo/swag/issues/1014"
// @Router			/v1/sub-elements/{id} [get]
func (co Controller) GetSubElement(c *gin.Context) {
	var uri URIID
	err := c.ShouldBindUri(&uri)
	if err != nil {
		s := err.Error()
		c.JSON(status(err), SubElementResponse{
			Error: &s,
		})
		return
	}

	var subElement models.SubElement
	err = co.DB.First(&subElement, uri.ID).Error
	if err != nil {
		s := err.Error()
		c.JSON(status(err), SubElementResponse{
			Error: &s,
		})
		return
	}

	data := newSubElement(c, subElement)
	c.JSON(http.StatusOK, SubElementResponse{Data: &data})
}

// @Summary		Update sub-element
// @Description	Updates a sub-element. Only values to be updated need to be specified.
// @Description	The contract, the kind and the amount cannot be changed since they determine the effect on the contract.
// @Description	Post a compensating sub-element to correct a posting.
// @Tags			Sub-elements
// @Produce		json
// @Success		200			{object}	SubElementResponse
// @Failure		400			{object}	SubElementResponse
// @Failure		404			{object}	SubElementResponse
// @Failure		500			{object}	SubElementResponse
// @Param			id			path		URIID				true	"ignored, but needed: https://github.com/swaggo/swag/issues/1014"
// @Param			subElement	body		SubElementEditable	true	"Sub-element"
// @Router			/v1/sub-elements/{id} [patch]
func (co Controller) UpdateSubElement(c *gin.Context) {
	var uri URIID
	err := c.ShouldBindUri(&uri)
	if err != nil {
		s := err.Error()
		c.JSON(status(err), SubElementResponse{
			Error: &s,
		})
		return
	}

	updateFields, err := httputil.GetBodyFields(c, SubElementEditable{})
	if err != nil {
		s := err.Error()
		c.JSON(status(err), SubElementResponse{
			Error: &s,
		})
		return
	}

	var data SubElementEditable
	err = httputil.BindData(c, &data)
	if err != nil {
		s := err.Error()
		c.JSON(status(err), SubElementResponse{
			Error: &s,
		})
		return
	}

	subElement, err := co.Ledger.UpdateSubElement(c.Request.Context(), uri.ID, updateFields, data.model())
	if err != nil {
		s := err.Error()
		c.JSON(status(err), SubElementResponse{
			Error: &s,
		})
		return
	}

	apiResource := newSubElement(c, subElement)
	c.JSON(http.StatusOK, SubElementResponse{Data: &apiResource})
}
