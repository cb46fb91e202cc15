package version

import (
	"net/http"
	"runtime/debug"

	"github.com/contract-ledger/backend/pkg/httputil"
	"github.com/gin-gonic/gin"
)

// Version of the API
//
// This is set at build time, see main.go.
var apiVersion = "0.0.0"

type Response struct {
	Data Object `json:"data"` // Data object for the version endpoint
}

type Object struct {
	Version string `json:"version" example:"1.1.0"`                                   // the running version of the contract ledger backend
	Commit  string `json:"commit" example:"5b0e1c7d9e1f2a4b6c8d0e2f4a6b8c0d2e4f6a8b"` // the VCS revision the binary was built from, if known
}

func RegisterRoutes(r *gin.RouterGroup, version string) {
	// set the API version so that responses are correct
	apiVersion = version

	r.GET("", Get)
	r.OPTIONS("", Options)
}

// commit returns the VCS revision embedded by the go toolchain.
func commit() string {
	info, ok := debug.ReadBuildInfo()
	if !ok {
		return ""
	}

	for _, s := range info.Settings {
		if s.Key == "vcs.revision" {
			return s.Value
		}
	}

	return ""
}

// @Summary		Allowed HTTP verbs
// @Description	Returns an empty response with the HTTP Header "allow" set to the allowed HTTP verbs
// @Tags			General
// @Success		204
// @Router			/version [options]
func Options(c *gin.Context) {
	httputil.OptionsGet(c)
}

// @Summary		API version
// @Description	Returns the software version of the API
// @Tags			General
// @Success		200	{object}	Response
// @Router			/version [get]
func Get(c *gin.Context) {
	c.JSON(http.StatusOK, Response{
		Data: Object{
			Version: apiVersion,
			Commit:  commit(),
		},
	})
}
