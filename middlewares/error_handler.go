package middlewares

import (
	"fmt"
	"net/http"
	"runtime/debug"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"
	"github.com/yeremiapane/table-reservation/utils"
)

const unexpectedErrorMessage = "An unexpected error occurred"

// ErrorHandler is the last line for failures a controller did not classify: errors attached with
// c.Error and panics both become a 500 envelope. Details go to the log, and to the client only
// in development.
func ErrorHandler(development bool) gin.HandlerFunc {
	return func(c *gin.Context) {
		defer func() {
			if rec := recover(); rec != nil {
				err := fmt.Errorf("panic: %v", rec)
				utils.ErrorLogger.WithFields(logrus.Fields{
					"method": c.Request.Method,
					"path":   c.Request.URL.Path,
				}).Errorf("%v\n%s", err, debug.Stack())
				respondUnexpected(c, development, err)
			}
		}()

		c.Next()

		if len(c.Errors) == 0 {
			return
		}
		err := c.Errors.Last().Err
		utils.ErrorLogger.WithFields(logrus.Fields{
			"method": c.Request.Method,
			"path":   c.Request.URL.Path,
		}).Error(err)

		if c.Writer.Written() {
			return
		}
		respondUnexpected(c, development, err)
	}
}

func respondUnexpected(c *gin.Context, development bool, err error) {
	var data interface{}
	if development {
		data = gin.H{"error": err.Error()}
	}
	c.AbortWithStatusJSON(http.StatusInternalServerError, utils.FormatResponse(false, unexpectedErrorMessage, data, nil))
}
