package middleware

import (
	"errors"

	apperrors "homeinsight-listings/internal/errors"
	"homeinsight-listings/internal/utils"

	"github.com/gin-gonic/gin"
)

// ErrorHandler catches errors and returns standardized responses.
func ErrorHandler() gin.HandlerFunc {
	return func(c *gin.Context) {
		c.Next()

		if len(c.Errors) == 0 {
			return
		}
		err := c.Errors.Last().Err
		if isTextFailure(err) {
			utils.RecordParseFailure(err)
		}

		// Log technical details
		appErr := utils.LogAndMapError(err, c.Request.Method+" "+c.Request.URL.Path,
			"client_ip", c.ClientIP(),
			"request_id", c.GetString(RequestIDKey))

		c.JSON(appErr.HTTPStatus, gin.H{
			"error": gin.H{
				"message": appErr.UserMessage,
				"code":    appErr.Code,
			},
		})
	}
}

// Bad request bodies are not parse failures.
func isTextFailure(err error) bool {
	var (
		parseErr    *apperrors.ParseError
		taxonomyErr *apperrors.TaxonomyError
	)
	return errors.As(err, &parseErr) || errors.As(err, &taxonomyErr)
}
