package v1

import (
	"net/http"
	"strings"

	"github.com/contract-ledger/backend/pkg/httputil"
	"github.com/contract-ledger/backend/pkg/models"
	"github.com/gin-gonic/gin"
	"golang.org/x/exp/slices"
)

// RegisterUserRoutes registers the routes for users with
// the RouterGroup that is passed.
func (co Controller) RegisterUserRoutes(r *gin.RouterGroup) {
	// Root group
	{
		r.OPTIONS("", co.OptionsUserList)
		r.GET("", co.GetUsers)
		r.POST("", co.CreateUsers)
	}

	// User with ID
	{
		r.OPTIONS("/:id", co.OptionsUserDetail)
		r.GET("/:id", co.GetUser)
		r.PATCH("/:id", co.UpdateUser)
		r.DELETE("/:id", co.DeleteUser)
	}
}

// @Summary		Allowed HTTP verbs
// @Description	Returns an empty response with the HTTP Header "allow" set to the allowed HTTP verbs
// @Tags			Users
// @Success		204
// @Router			/v1/users [options]
func (co Controller) OptionsUserList(c *gin.Context) {
	httputil.OptionsGetPost(c)
}

// @Summary		Allowed HTTP verbs
// @Description	Returns an empty response with the HTTP Header "allow" set to the allowed HTTP verbs
// @Tags			Users
// @Success		204
// @Failure		400	{object}	httpError
// @Failure		404	{object}	httpError
// @Failure		500	{object}	httpError
// @Param			id	path		URIID	true	"ignored, but needed: https://github.com/swaggo/swag/issues/1014"
// @Router			/v1/users/{id} [options]
func (co Controller) OptionsUserDetail(c *gin.Context) {
	var uri URIID
	err := c.ShouldBindUri(&uri)
	if err != nil {
		c.JSON(status(err), httpError{
			Error: err.Error(),
		})
		return
	}

	err = co.DB.First(&models.User{}, uri.ID).Error
	if err != nil {
		c.JSON(status(err), httpError{
			Error: err.Error(),
		})
		return
	}

	httputil.OptionsGetPatchDelete(c)
}

// @Summary		Create users
// @Description	Creates new users
// @Tags			Users
// @Produce		json
// @Success		201		{object}	UserCreateResponse
// @Failure		400		{object}	UserCreateResponse
// @Failure		500		{object}	UserCreateResponse
// @Param			users	body		[]UserCreate	true	"Users"
// @Router			/v1/users [post]
func (co Controller) CreateUsers(c *gin.Context) {
	var creates []UserCreate

	// Bind data and return error if not possible
	err := httputil.BindData(c, &creates)
	if err != nil {
		e := err.Error()
		c.JSON(status(err), UserCreateResponse{
			Error: &e,
		})
		return
	}

	// The final http status. Will be modified when errors occur
	status := http.StatusCreated
	r := UserCreateResponse{}

	for _, create := range creates {
		user, err := co.createUser(create)
		if err != nil {
			status = r.appendError(err, status)
			continue
		}

		data := newUser(c, user)
		r.Data = append(r.Data, UserResponse{Data: &data})
	}

	c.JSON(status, r)
}

func (co Controller) createUser(create UserCreate) (models.User, error) {
	if strings.TrimSpace(create.Password) == "" {
		return models.User{}, errUserCredentialEmpty
	}

	user := create.model()
	err := user.SetCredential(create.Password)
	if err != nil {
		return models.User{}, err
	}

	// false is the zero value and would be replaced by the column default
	active := user.Active

	err = co.DB.Create(&user).Error
	if err != nil {
		return models.User{}, err
	}

	if !active {
		err = co.DB.Model(&user).Update("Active", false).Error
		if err != nil {
			return models.User{}, err
		}
	}

	return user, nil
}

// @Summary		List users
// @Description	Returns a list of users
// @Tags			Users
// @Produce		json
// @Success		200	{object}	UserListResponse
// @Failure		400	{object}	UserListResponse
// @Failure		500	{object}	UserListResponse
// @Router			/v1/users [get]
// @Param			nome	query	string	false	"Filter by name, matches any part of the name"
// @Param			email	query	string	false	"Filter by email address"
// @Param			ativo	query	bool	false	"Is the user active?"
// @Param			offset	query	uint	false	"The offset of the first user returned. Defaults to 0."
// @Param			limit	query	int		false	"Maximum number of users to return. Defaults to 50."
func (co Controller) GetUsers(c *gin.Context) {
	var filter UserQueryFilter
	if err := c.Bind(&filter); err != nil {
		s := err.Error()
		c.JSON(http.StatusBadRequest, UserListResponse{
			Error: &s,
		})
		return
	}

	queryFields, setFields := httputil.GetURLFields(c.Request.URL, filter)
	model := filter.model()

	q := co.DB.
		Order("nome ASC, id ASC").
		Where(&model, queryFields...)

	if filter.Name != "" {
		q = q.Where("LOWER(nome) LIKE ?", like(filter.Name))
	}

	q = q.Offset(int(filter.Offset))

	limit := defaultLimit
	if slices.Contains(setFields, "Limit") {
		limit = filter.Limit
	}
	q = q.Limit(limit)

	var users []models.User
	err := q.Find(&users).Error
	if err != nil {
		s := err.Error()
		c.JSON(status(err), UserListResponse{
			Error: &s,
		})
		return
	}

	var count int64
	err = q.Limit(-1).Offset(-1).Count(&count).Error
	if err != nil {
		s := err.Error()
		c.JSON(status(err), UserListResponse{
			Error: &s,
		})
		return
	}

	data := make([]User, 0)
	for _, user := range users {
		data = append(data, newUser(c, user))
	}

	c.JSON(http.StatusOK, UserListResponse{
		Data: data,
		Pagination: &Pagination{
			Count:  len(data),
			Total:  count,
			Offset: filter.Offset,
			Limit:  limit,
		},
	})
}

// @Summary		Get user
// @Description	Returns a specific user
// @Tags			Users
// @Produce		json
// @Success		200	{object}	UserResponse
// @Failure		400	{object}	UserResponse
// @Failure		404	{object}	UserResponse
// @Failure		500	{object}	UserResponse
// @Param			id	path		URIID	true	"ignored, but needed: https://github.com/swaggo/swag/issues/1014"
// @Router			/v1/users/{id} [get]
func (co Controller) GetUser(c *gin.Context) {
	var uri URIID
	err := c.ShouldBindUri(&uri)
	if err != nil {
		s := err.Error()
		c.JSON(status(err), UserResponse{
			Error: &s,
		})
		return
	}

	var user models.User
	err = co.DB.First(&user, uri.ID).Error
	if err != nil {
		s := err.Error()
		c.JSON(status(err), UserResponse{
			Error: &s,
		})
		return
	}

	data := newUser(c, user)
	c.JSON(http.StatusOK, UserResponse{Data: &data})
}

// @Summary		Update user
// @Description	Updates a user. Only values to be updated need to be specified.
// @Tags			Users
// @Produce		json
// @Success		200		{object}	UserResponse
// @Failure		400		{object}	UserResponse
// @Failure		404		{object}	UserResponse
// @Failure		500		{object}	UserResponse
// @Param			id		path		URIID		true	"ignored, but needed: https://github.com/swaggo/swag/issues/1014"
// @Param			user	body		UserCreate	true	"User"
// @Router			/v1/users/{id} [patch]
func (co Controller) UpdateUser(c *gin.Context) {
	var uri URIID
	err := c.ShouldBindUri(&uri)
	if err != nil {
		s := err.Error()
		c.JSON(status(err), UserResponse{
			Error: &s,
		})
		return
	}

	var user models.User
	err = co.DB.First(&user, uri.ID).Error
	if err != nil {
		s := err.Error()
		c.JSON(status(err), UserResponse{
			Error: &s,
		})
		return
	}

	bodyFields, err := httputil.GetBodyFields(c, UserCreate{})
	if err != nil {
		s := err.Error()
		c.JSON(status(err), UserResponse{
			Error: &s,
		})
		return
	}

	var data UserCreate
	err = httputil.BindData(c, &data)
	if err != nil {
		s := err.Error()
		c.JSON(status(err), UserResponse{
			Error: &s,
		})
		return
	}

	var updateFields []any
	for _, field := range bodyFields {
		if field != "Password" {
			updateFields = append(updateFields, field)
		}
	}
	merge(&user, data.model(), updateFields)

	if slices.Contains(bodyFields, any("Password")) {
		if strings.TrimSpace(data.Password) == "" {
			s := errUserCredentialEmpty.Error()
			c.JSON(http.StatusBadRequest, UserResponse{
				Error: &s,
			})
			return
		}

		err = user.SetCredential(data.Password)
		if err != nil {
			s := err.Error()
			c.JSON(status(err), UserResponse{
				Error: &s,
			})
			return
		}
		updateFields = append(updateFields, "Credential")
	}

	if len(updateFields) > 0 {
		err = co.DB.Model(&user).Select("", updateFields...).Updates(&user).Error
		if err != nil {
			s := err.Error()
			c.JSON(status(err), UserResponse{
				Error: &s,
			})
			return
		}
	}

	apiResource := newUser(c, user)
	c.JSON(http.StatusOK, UserResponse{Data: &apiResource})
}

// @Summary		Delete user
// @Description	Deletes a user. Alerts assigned to the user are kept without assignment.
// @Tags			Users
// @Produce		json
// @Success		204
// @Failure		400	{object}	httpError
// @Failure		404	{object}	httpError
// @Failure		500	{object}	httpError
// @Param			id	path		URIID	true	"ignored, but needed: https://github.com/swaggo/swag/issues/1014"
// @Router			/v1/users/{id} [delete]
func (co Controller) DeleteUser(c *gin.Context) {
	var uri URIID
	err := c.ShouldBindUri(&uri)
	if err != nil {
		c.JSON(status(err), httpError{
			Error: err.Error(),
		})
		return
	}

	var user models.User
	err = co.DB.First(&user, uri.ID).Error
	if err != nil {
		c.JSON(status(err), httpError{
			Error: err.Error(),
		})
		return
	}

	err = co.DB.Delete(&user).Error
	if err != nil {
		c.JSON(status(err), httpError{
			Error: err.Error(),
		})
		return
	}

	c.JSON(http.StatusNoContent, nil)
}
