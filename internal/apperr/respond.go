package apperr

import (
	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"
)

// Respond aborts the request with {"message": ...}. Internal causes are
// logged and never sent to the client.
func Respond(c *gin.Context, err error) {
	e := logged(c, err)
	c.AbortWithStatusJSON(e.Status(), gin.H{"message": e.Message})
}

// RespondEnvelope is Respond for endpoints that answer with {"success": ...}.
func RespondEnvelope(c *gin.Context, err error) {
	e := logged(c, err)
	c.AbortWithStatusJSON(e.Status(), gin.H{"success": false, "message": e.Message})
}

func logged(c *gin.Context, err error) *Error {
	e := From(err)
	if e.Kind == KindInternal {
		logrus.WithError(e.Err).WithFields(logrus.Fields{
			"method": c.Request.Method,
			"path":   c.FullPath(),
		}).Error(e.Message)
	}
	return e
}
