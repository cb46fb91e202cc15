package v1

import (
	"fmt"
	"net/http"
	"strings"

	"github.com/contract-ledger/backend/internal/export"
	"github.com/contract-ledger/backend/pkg/httperrors"
	"github.com/contract-ledger/backend/pkg/httputil"
	"github.com/contract-ledger/backend/pkg/models"
	"github.com/gin-contrib/requestid"
	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog/log"
	"golang.org/x/exp/slices"
	"gorm.io/gorm"
)

const mimeXLSX = "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet"

// RegisterContractRoutes registers the routes for contracts with
// the RouterGroup that is passed.
func (co Controller) RegisterContractRoutes(r *gin.RouterGroup) {
	// Root group
	{
		r.OPTIONS("", co.OptionsContractList)
		r.GET("", co.GetContracts)
		r.POST("", co.CreateContracts)
		r.GET("/export", co.ExportContracts)
	}

	// Contract with ID
	{
		r.OPTIONS("/:id", co.OptionsContractDetail)
		r.GET("/:id", co.GetContract)
		r.GET("/:id/statement", co.GetContractStatement)
		r.PATCH("/:id", co.UpdateContract)
		r.DELETE("/:id", co.DeleteContract)
	}
}

// @Summary		Allowed HTTP verbs
// @Description	Returns an empty response with the HTTP Header "allow" set to the allowed HTTP verbs
// @Tags			Contracts
// @Success		204
// @Router			/v1/contracts [options]
func (co Controller) OptionsContractList(c *gin.Context) {
	httputil.OptionsGetPost(c)
}

// @Summary		Allowed HTTP verbs
// @Description	Returns an empty response with the HTTP Header "allow" set to the allowed HTTP verbs
// @Tags			Contracts
// @Success		204
// @Failure		400	{object}	httpError
// @Failure		404	{object}	httpError
// @Failure		500	{object}	httpError
// @Param			id	path		URIID	true	"ignored, but needed: https://github.com/swaggo/swag/issues/1014"
// @Router			/v1/contracts/{id} [options]
func (co Controller) OptionsContractDetail(c *gin.Context) {
	var uri URIID
	err := c.ShouldBindUri(&uri)
	if err != nil {
		c.JSON(status(err), httpError{
			Error: err.Error(),
		})
		return
	}

	err = co.DB.First(&models.Contract{}, uri.ID).Error
	if err != nil {
		c.JSON(status(err), httpError{
			Error: err.Error(),
		})
		return
	}

	httputil.OptionsGetPatchDelete(c)
}

// @Summary		Create contracts
// @Description	Creates new contracts. The measured value of new contracts is always 0.
// @Tags			Contracts
// @Produce		json
// @Success		201			{object}	ContractCreateResponse
// @Failure		400			{object}	ContractCreateResponse
// @Failure		500			{object}	ContractCreateResponse
// @Param			contracts	body		[]ContractCreate	true	"Contracts"
// @Router			/v1/contracts [post]
func (co Controller) CreateContracts(c *gin.Context) {
	var creates []ContractCreate

	// Bind data and return error if not possible
	err := httputil.BindData(c, &creates)
	if err != nil {
		e := err.Error()
		c.JSON(status(err), ContractCreateResponse{
			Error: &e,
		})
		return
	}

	// The final http status. Will be modified when errors occur
	status := http.StatusCreated
	r := ContractCreateResponse{}

	for _, create := range creates {
		contract := create.model()
		err = co.DB.Create(&contract).Error
		if err != nil {
			status = r.appendError(err, status)
			continue
		}

		data := newContract(c, contract)
		r.Data = append(r.Data, ContractResponse{Data: &data})
	}

	co.invalidate(c)
	c.JSON(status, r)
}

// contractQuery returns the query for all contracts matching the filter.
func (co Controller) contractQuery(c *gin.Context, filter ContractQueryFilter) *gorm.DB {
	queryFields, _ := httputil.GetURLFields(c.Request.URL, filter)
	model := filter.model()

	q := co.DB.
		Order("numero_contrato ASC, id ASC").
		Where(&model, queryFields...)

	if filter.ContractingParty != "" {
		q = q.Where("LOWER(contratante) LIKE ?", like(filter.ContractingParty))
	}

	if filter.Search != "" {
		s := like(filter.Search)
		q = q.Where("(LOWER(numero_contrato) LIKE ? OR LOWER(contratada) LIKE ? OR LOWER(objeto) LIKE ?)", s, s, s)
	}

	return q
}

// like returns a case insensitive LIKE pattern matching s anywhere.
func like(s string) string {
	return fmt.Sprintf("%%%s%%", strings.ToLower(strings.TrimSpace(s)))
}

// @Summary		List contracts
// @Description	Returns a list of contracts
// @Tags			Contracts
// @Produce		json
// @Success		200	{object}	ContractListResponse
// @Failure		400	{object}	ContractListResponse
// @Failure		500	{object}	ContractListResponse
// @Router			/v1/contracts [get]
// @Param			status		query	string	false	"Filter by status"
// @Param			contratante	query	string	false	"Filter by contracting party, matches any part of the name"
// @Param			ano			query	string	false	"Filter by year"
// @Param			uf			query	string	false	"Filter by federal state"
// @Param			numero		query	string	false	"Filter by contract number"
// @Param			search		query	string	false	"Search for this text in number, contracted party and scope"
// @Param			offset		query	uint	false	"The offset of the first contract returned. Defaults to 0."
// @Param			limit		query	int		false	"Maximum number of contracts to return. Defaults to 50."
func (co Controller) GetContracts(c *gin.Context) {
	var filter ContractQueryFilter
	if err := c.Bind(&filter); err != nil {
		s := err.Error()
		c.JSON(http.StatusBadRequest, ContractListResponse{
			Error: &s,
		})
		return
	}

	_, setFields := httputil.GetURLFields(c.Request.URL, filter)
	q := co.contractQuery(c, filter)

	// Set the offset. Does not need checking since the default is 0
	q = q.Offset(int(filter.Offset))

	limit := defaultLimit
	if slices.Contains(setFields, "Limit") {
		limit = filter.Limit
	}
	q = q.Limit(limit)

	var contracts []models.Contract
	err := q.Find(&contracts).Error
	if err != nil {
		s := err.Error()
		c.JSON(status(err), ContractListResponse{
			Error: &s,
		})
		return
	}

	var count int64
	err = q.Limit(-1).Offset(-1).Count(&count).Error
	if err != nil {
		e := err.Error()
		c.JSON(status(err), ContractListResponse{
			Error: &e,
		})
		return
	}

	// When there are no resources, we want an empty list, not null
	data := make([]Contract, 0)
	for _, contract := range contracts {
		data = append(data, newContract(c, contract))
	}

	c.JSON(http.StatusOK, ContractListResponse{
		Data: data,
		Pagination: &Pagination{
			Count:  len(data),
			Total:  count,
			Offset: filter.Offset,
			Limit:  limit,
		},
	})
}

// @Summary		Export contracts
// @Description	Returns all contracts matching the filter as Excel workbook
// @Tags			Contracts
// @Produce		application/vnd.openxmlformats-officedocument.spreadsheetml.sheet
// @Success		200
// @Failure		400			{object}	httperrors.HTTPError
// @Failure		500			{object}	httperrors.HTTPError
// @Router			/v1/contracts/export [get]
// @Param			status		query	string	false	"Filter by status"
// @Param			contratante	query	string	false	"Filter by contracting party, matches any part of the name"
// @Param			ano			query	string	false	"Filter by year"
// @Param			uf			query	string	false	"Filter by federal state"
// @Param			numero		query	string	false	"Filter by contract number"
// @Param			search		query	string	false	"Search for this text in number, contracted party and scope"
func (co Controller) ExportContracts(c *gin.Context) {
	var filter ContractQueryFilter
	if err := c.Bind(&filter); err != nil {
		httperrors.New(c, http.StatusBadRequest, err.Error())
		return
	}

	var contracts []models.Contract
	err := co.contractQuery(c, filter).Find(&contracts).Error
	if err != nil {
		httperrors.Handler(c, err)
		return
	}

	b, err := export.ContractWorkbook(contracts)
	if err != nil {
		log.Error().Str("request-id", requestid.Get(c)).Err(err).Msg("contract export failed")
		httperrors.New(c, http.StatusInternalServerError, models.ErrGeneral.Error())
		return
	}

	c.Header("Content-Disposition", `attachment; filename="contratos.xlsx"`)
	c.Data(http.StatusOK, mimeXLSX, b)
}

// @Summary		Get contract
// @Description	Returns a specific contract
// @Tags			Contracts
// @Produce		json
// @Success		200	{object}	ContractResponse
// @Failure		400	{object}	ContractResponse
// @Failure		404	{object}	ContractResponse
// @Failure		500	{object}	ContractResponse
// @Param			id	path		URIID	true	"ignored, but needed: https://github.com/swaggo/swag/issues/1014"
// @Router			/v1/contracts/{id} [get]
func (co Controller) GetContract(c *gin.Context) {
	var uri URIID
	err := c.ShouldBindUri(&uri)
	if err != nil {
		s := err.Error()
		c.JSON(status(err), ContractResponse{
			Error: &s,
		})
		return
	}

	var contract models.Contract
	err = co.DB.First(&contract, uri.ID).Error
	if err != nil {
		s := err.Error()
		c.JSON(status(err), ContractResponse{
			Error: &s,
		})
		return
	}

	data := newContract(c, contract)
	c.JSON(http.StatusOK, ContractResponse{Data: &data})
}

// @Summary		Get contract statement
// @Description	Returns a PDF with the contract data and all sub-elements posted against it
// @Tags			Contracts
// @Produce		application/pdf
// @Success		200
// @Failure		400	{object}	httperrors.HTTPError
// @Failure		404	{object}	httperrors.HTTPError
// @Failure		500	{object}	httperrors.HTTPError
// @Param			id	path		URIID	true	"ignored, but needed: https://github.com/swaggo/swag/issues/1014"
// @Router			/v1/contracts/{id}/statement [get]
func (co Controller) GetContractStatement(c *gin.Context) {
	var uri URIID
	err := c.ShouldBindUri(&uri)
	if err != nil {
		httperrors.Handler(c, err)
		return
	}

	var contract models.Contract
	err = co.DB.First(&contract, uri.ID).Error
	if err != nil {
		httperrors.Handler(c, err)
		return
	}

	var subElements []models.SubElement
	err = co.DB.
		Where(&models.SubElement{ContractID: contract.ID}).
		Order("data ASC, id ASC").
		Find(&subElements).Error
	if err != nil {
		httperrors.Handler(c, err)
		return
	}

	b, err := export.ContractStatement(contract, subElements)
	if err != nil {
		log.Error().Str("request-id", requestid.Get(c)).Err(err).Msg("contract statement failed")
		httperrors.New(c, http.StatusInternalServerError, models.ErrGeneral.Error())
		return
	}

	c.Header("Content-Disposition", fmt.Sprintf(`inline; filename="contrato-%d.pdf"`, contract.ID))
	c.Data(http.StatusOK, "application/pdf", b)
}

// @Summary		Update contract
// @Description	Updates a contract. Only values to be updated need to be specified. The contract value and the measured value cannot be updated, post sub-elements instead.
// @Tags			Contracts
// @Produce		json
// @Success		200			{object}	ContractResponse
// @Failure		400			{object}	ContractResponse
// @Failure		404			{object}	ContractResponse
// @Failure		500			{object}	ContractResponse
// @Param			id			path		URIID				true	"ignored, but needed: https://github.com/swaggo/swag/issues/1014"
// @Param			contract	body		ContractEditable	true	"Contract"
// @Router			/v1/contracts/{id} [patch]
func (co Controller) UpdateContract(c *gin.Context) {
	var uri URIID
	err := c.ShouldBindUri(&uri)
	if err != nil {
		s := err.Error()
		c.JSON(status(err), ContractResponse{
			Error: &s,
		})
		return
	}

	var contract models.Contract
	err = co.DB.First(&contract, uri.ID).Error
	if err != nil {
		s := err.Error()
		c.JSON(status(err), ContractResponse{
			Error: &s,
		})
		return
	}

	allFields, err := httputil.GetBodyFields(c, Contract{})
	if err != nil {
		s := err.Error()
		c.JSON(status(err), ContractResponse{
			Error: &s,
		})
		return
	}

	if slices.Contains(allFields, any("ContractValue")) || slices.Contains(allFields, any("MeasuredValue")) {
		s := errLedgerField.Error()
		c.JSON(http.StatusBadRequest, ContractResponse{
			Error: &s,
		})
		return
	}

	updateFields, err := httputil.GetBodyFields(c, ContractEditable{})
	if err != nil {
		s := err.Error()
		c.JSON(status(err), ContractResponse{
			Error: &s,
		})
		return
	}

	var data ContractEditable
	err = httputil.BindData(c, &data)
	if err != nil {
		s := err.Error()
		c.JSON(status(err), ContractResponse{
			Error: &s,
		})
		return
	}

	if len(updateFields) > 0 {
		merge(&contract, data.model(), updateFields)

		err = co.DB.Model(&contract).Select("", updateFields...).Updates(&contract).Error
		if err != nil {
			s := err.Error()
			c.JSON(status(err), ContractResponse{
				Error: &s,
			})
			return
		}

		co.invalidate(c)
	}

	apiResource := newContract(c, contract)
	c.JSON(http.StatusOK, ContractResponse{Data: &apiResource})
}

// @Summary		Delete contract
// @Description	Deletes a contract together with its sub-elements and alerts
// @Tags			Contracts
// @Produce		json
// @Success		204
// @Failure		400	{object}	httpError
// @Failure		404	{object}	httpError
// @Failure		500	{object}	httpError
// @Param			id	path		URIID	true	"ignored, but needed: https://github.com/swaggo/swag/issues/1014"
// @Router			/v1/contracts/{id} [delete]
func (co Controller) DeleteContract(c *gin.Context) {
	var uri URIID
	err := c.ShouldBindUri(&uri)
	if err != nil {
		c.JSON(status(err), httpError{
			Error: err.Error(),
		})
		return
	}

	var contract models.Contract
	err = co.DB.First(&contract, uri.ID).Error
	if err != nil {
		c.JSON(status(err), httpError{
			Error: err.Error(),
		})
		return
	}

	err = co.DB.Delete(&contract).Error
	if err != nil {
		c.JSON(status(err), httpError{
			Error: err.Error(),
		})
		return
	}

	co.invalidate(c)
	c.JSON(http.StatusNoContent, nil)
}
