package middleware

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"

	"github.com/smartbill/backend/internal/interfaces/http/dto"
)

type validatedRequest struct {
	Name     string `json:"name" binding:"required,min=2"`
	Unit     string `json:"unit" binding:"omitempty,unit"`
	BillType string `json:"bill_type" binding:"omitempty,billtype"`
}

func validationRouter() *gin.Engine {
	SetupValidator()
	router := gin.New()
	router.POST("/validate", func(c *gin.Context) {
		var req validatedRequest
		if err := c.ShouldBindJSON(&req); err != nil {
			HandleValidationError(c, err)
			return
		}
		c.Status(http.StatusOK)
	})
	return router
}

func postJSON(router *gin.Engine, body string) *httptest.ResponseRecorder {
	req := httptest.NewRequest("POST", "/validate", bytes.NewBufferString(body))
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)
	return w
}

func TestValidation_ValidRequest(t *testing.T) {
	router := validationRouter()
	w := postJSON(router, `{"name":"Pen","unit":"piece","bill_type":"retail"}`)
	assert.Equal(t, http.StatusOK, w.Code)
}

func TestValidation_MissingRequiredField(t *testing.T) {
	router := validationRouter()
	w := postJSON(router, `{"unit":"piece"}`)

	assert.Equal(t, http.StatusBadRequest, w.Code)

	var response dto.Response
	assert.NoError(t, json.Unmarshal(w.Body.Bytes(), &response))
	assert.False(t, response.Success)
	assert.NotNil(t, response.Error)
	assert.Equal(t, dto.ErrCodeValidation, response.Error.Code)
	// field names come from json tags
	assert.Equal(t, "name", response.Error.Details[0].Field)
	assert.Equal(t, "This field is required", response.Error.Details[0].Message)
}

func TestValidation_InvalidUnit(t *testing.T) {
	router := validationRouter()
	w := postJSON(router, `{"name":"Pen","unit":"dozen"}`)

	assert.Equal(t, http.StatusBadRequest, w.Code)

	var response dto.Response
	assert.NoError(t, json.Unmarshal(w.Body.Bytes(), &response))
	assert.Equal(t, "unit", response.Error.Details[0].Field)
	assert.Equal(t, "Must be one of: piece, box, pack", response.Error.Details[0].Message)
}

func TestValidation_InvalidBillType(t *testing.T) {
	router := validationRouter()
	w := postJSON(router, `{"name":"Pen","bill_type":"credit"}`)

	assert.Equal(t, http.StatusBadRequest, w.Code)

	var response dto.Response
	assert.NoError(t, json.Unmarshal(w.Body.Bytes(), &response))
	assert.Equal(t, "bill_type", response.Error.Details[0].Field)
	assert.Equal(t, "Must be one of: retail, wholesale", response.Error.Details[0].Message)
}

func TestValidation_TooShort(t *testing.T) {
	router := validationRouter()
	w := postJSON(router, `{"name":"P"}`)

	assert.Equal(t, http.StatusBadRequest, w.Code)

	var response dto.Response
	assert.NoError(t, json.Unmarshal(w.Body.Bytes(), &response))
	assert.Equal(t, "Must be at least 2 characters", response.Error.Details[0].Message)
}
