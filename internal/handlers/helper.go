package handlers

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

// ParseUUIDParam parses a path parameter as a UUID, responding 400 itself
// when the value is malformed. Callers return on uuid.Nil.
func ParseUUIDParam(c *gin.Context, param string) uuid.UUID {
	id, err := uuid.Parse(c.Param(param))
	if err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{
			Message: "Invalid " + param,
			Details: "must be a valid UUID",
		})
		return uuid.Nil
	}
	return id
}

// CurrentStudentID extracts the authenticated student's ID from the request
// context, responding 401 when absent.
func CurrentStudentID(c *gin.Context) (uuid.UUID, bool) {
	value, exists := c.Get("user_id")
	if !exists {
		c.JSON(http.StatusUnauthorized, ErrorResponse{
			Message: "User not authenticated",
		})
		return uuid.Nil, false
	}

	id, ok := value.(uuid.UUID)
	if !ok {
		c.JSON(http.StatusUnauthorized, ErrorResponse{
			Message: "User not authenticated",
		})
		return uuid.Nil, false
	}
	return id, true
}

func parseIntQuery(c *gin.Context, name string, defaultValue int) (int, error) {
	raw := c.Query(name)
	if raw == "" {
		return defaultValue, nil
	}
	value, err := strconv.Atoi(raw)
	if err != nil || value < 0 {
		c.JSON(http.StatusBadRequest, ErrorResponse{
			Message: "Invalid " + name,
			Details: "must be a non-negative integer",
		})
		return 0, errInvalidQuery
	}
	return value, nil
}

var errInvalidQuery = errors.New("invalid query parameter")
