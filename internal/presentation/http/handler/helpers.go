package handler

import (
	"bytes"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/sangkips/backoffice-api/internal/presentation/http/dto/response"
	"github.com/sangkips/backoffice-api/internal/presentation/http/middleware"
	"github.com/sangkips/backoffice-api/pkg/apperror"
	"github.com/sangkips/backoffice-api/pkg/export"
	"github.com/sangkips/backoffice-api/pkg/pagination"
	"github.com/sangkips/backoffice-api/pkg/timeutil"
)

// GetUserID extracts the user ID from the Gin context
func GetUserID(c *gin.Context) *uuid.UUID {
	userIDVal, exists := c.Get("user_id")
	if !exists {
		return nil
	}
	userID, ok := userIDVal.(uuid.UUID)
	if !ok {
		return nil
	}
	return &userID
}

// GetUserEmail extracts the user email from the Gin context
func GetUserEmail(c *gin.Context) string {
	email, exists := c.Get("user_email")
	if !exists {
		return ""
	}
	s, _ := email.(string)
	return s
}

// actor names the caller in audit entries: the email when the token carries
// one, otherwise the user ID.
func actor(c *gin.Context) string {
	if email := GetUserEmail(c); email != "" {
		return email
	}
	if id := GetUserID(c); id != nil {
		return id.String()
	}
	return ""
}

// bindJSON binds the request body, replying 422 for validation failures and
// 400 for malformed JSON.
func bindJSON(c *gin.Context, req interface{}) bool {
	if err := c.ShouldBindJSON(req); err != nil {
		bindError(c, err, "Invalid request body: ")
		return false
	}
	return true
}

// bindQuery binds query parameters the same way bindJSON binds bodies.
func bindQuery(c *gin.Context, req interface{}) bool {
	if err := c.ShouldBindQuery(req); err != nil {
		bindError(c, err, "Invalid query parameters: ")
		return false
	}
	return true
}

func bindError(c *gin.Context, err error, prefix string) {
	if fieldErrs := middleware.FieldErrors(err); len(fieldErrs) > 0 {
		response.ValidationError(c, fieldErrs)
		return
	}
	response.BadRequest(c, prefix+err.Error())
}

// paramUUID parses a UUID path parameter, replying 400 when it is malformed.
func paramUUID(c *gin.Context, name string) (uuid.UUID, bool) {
	id, err := uuid.Parse(c.Param(name))
	if err != nil {
		response.BadRequest(c, "Invalid "+name)
		return uuid.Nil, false
	}
	return id, true
}

func pageParams(page, perPage int) *pagination.PaginationParams {
	return pagination.New(page, perPage)
}

// dateField parses an optional YYYY-MM-DD field. The validator has already
// checked the layout, so a failure here is reported against the field.
func dateField(field, value string, errs *[]apperror.FieldError) *time.Time {
	t, err := timeutil.ParseOptionalDate(value)
	if err != nil {
		*errs = append(*errs, apperror.FieldError{Field: field, Message: err.Error()})
		return nil
	}
	return t
}

// sendTable streams table in the format named by the "format" query value.
func sendTable(c *gin.Context, format string, table *export.Table) {
	f, err := export.ParseFormat(format)
	if err != nil {
		response.BadRequest(c, err.Error())
		return
	}

	var buf bytes.Buffer
	if err := table.Write(&buf, f); err != nil {
		response.Error(c, err)
		return
	}
	response.Download(c, table.Filename(f), f.ContentType(), buf.Bytes())
}
