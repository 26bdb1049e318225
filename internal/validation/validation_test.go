package validation

import (
	"bytes"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type situationRequest struct {
	Name       string `json:"name" binding:"required"`
	Email      string `json:"email" binding:"omitempty,email"`
	Status     *int   `json:"status" binding:"required,situation_status"`
	ProjectID  uint   `json:"project_id" binding:"required"`
	Categories []uint `json:"categories" binding:"omitempty,min=1"`
}

func bind(t *testing.T, body string) error {
	t.Helper()
	gin.SetMode(gin.TestMode)
	Setup()

	w := httptest.NewRecorder()
	ctx, _ := gin.CreateTestContext(w)
	ctx.Request = httptest.NewRequest("POST", "/", bytes.NewBufferString(body))
	ctx.Request.Header.Set("Content-Type", "application/json")

	var req situationRequest
	return ctx.ShouldBindJSON(&req)
}

func TestMessage(t *testing.T) {
	tests := []struct {
		name string
		body string
		want string
	}{
		{"missing name", `{"status":0,"project_id":1}`, "The name field is required."},
		{"missing status", `{"name":"a","project_id":1}`, "The status field is required."},
		{"status out of range", `{"name":"a","status":123,"project_id":1}`, "The selected status is invalid."},
		{"negative status", `{"name":"a","status":-1,"project_id":1}`, "The selected status is invalid."},
		{"bad email", `{"name":"a","status":1,"project_id":1,"email":"nope"}`, "The email field must be a valid email address."},
		{"status as string", `{"name":"a","status":"one","project_id":1}`, "The status field must be an integer."},
		{"categories not array", `{"name":"a","status":1,"project_id":1,"categories":"1"}`, "The categories field must be an array."},
		{"malformed", `{"name":`, "The request body is malformed."},
		{"missing project", `{"name":"a","status":2}`, "The project id field is required."},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := bind(t, tt.body)
			require.Error(t, err)
			assert.Equal(t, tt.want, Message(err))
		})
	}
}

func TestStatusZeroIsAccepted(t *testing.T) {
	assert.NoError(t, bind(t, `{"name":"a","status":0,"project_id":1}`))
	assert.NoError(t, bind(t, `{"name":"a","status":2,"project_id":1}`))
}
