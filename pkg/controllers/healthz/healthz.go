package healthz

import (
	"net/http"

	"github.com/contract-ledger/backend/pkg/httperrors"
	"github.com/contract-ledger/backend/pkg/httputil"
	"github.com/contract-ledger/backend/pkg/models"
	"github.com/gin-gonic/gin"
	"gorm.io/gorm"
)

type controller struct {
	db *gorm.DB
}

func RegisterRoutes(r *gin.RouterGroup, db *gorm.DB) {
	co := controller{db: db}

	r.OPTIONS("", Options)
	r.GET("", co.Get)
}

// @Summary		Allowed HTTP verbs
// @Description	Returns an empty response with the HTTP Header "allow" set to the allowed HTTP verbs
// @Tags			General
// @Success		204
// @Router			/healthz [options]
func Options(c *gin.Context) {
	httputil.OptionsGet(c)
}

// @Summary		Get health
// @Description	Returns the application health and, if not healthy, an error
// @Tags			General
// @Produce		json
// @Success		204
// @Failure		500	{object} httperrors.HTTPError
// @Router			/healthz [get]
func (co controller) Get(c *gin.Context) {
	sqlDB, err := co.db.DB()
	if err != nil {
		httperrors.Handler(c, models.TranslateError(err))
		return
	}

	err = sqlDB.PingContext(c.Request.Context())
	if err != nil {
		httperrors.Handler(c, models.TranslateError(err))
		return
	}

	c.Status(http.StatusNoContent)
}
