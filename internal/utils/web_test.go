package utils

import (
	"bytes"
	"fmt"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ctchan-dev/ctchan/internal/errors"
)

func TestDecodeValidate(t *testing.T) {
	type TestStruct struct {
		Field1 string `json:"field1" validate:"required"`
		Field2 int    `json:"field2"`
	}

	tests := []struct {
		name        string
		requestBody string
		expectedErr *errors.ErrorWithStatusCode
	}{
		{
			name:        "Valid JSON and Validation",
			requestBody: `{"field1": "value", "field2": 123}`,
			expectedErr: nil,
		},
		{
			name:        "Valid JSON, optional field omitted",
			requestBody: `{"field1": "value"}`,
			expectedErr: nil,
		},
		{
			name:        "Invalid JSON",
			requestBody: `{"field1": "value", "field2": 123`, // Missing closing brace
			expectedErr: &errors.ErrorWithStatusCode{Message: "Body is invalid json", StatusCode: 400},
		},
		{
			name:        "Missing Required Field",
			requestBody: `{"field2": 123}`,
			expectedErr: &errors.ErrorWithStatusCode{Message: "Required fields missing", StatusCode: 400},
		},
		{
			name:        "Empty Body",
			requestBody: "",
			expectedErr: &errors.ErrorWithStatusCode{Message: "Body is invalid json", StatusCode: 400},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := DecodeValidate(bytes.NewReader([]byte(tt.requestBody)), &TestStruct{})

			if tt.expectedErr == nil {
				assert.NoError(t, err)
			} else {
				e, ok := err.(*errors.ErrorWithStatusCode)
				require.True(t, ok, "Error should be ErrorWithStatusCode")
				assert.Equal(t, tt.expectedErr.Message, e.Message)
				assert.Equal(t, tt.expectedErr.StatusCode, e.StatusCode)
			}
		})
	}
}

func TestWriteErrorAndStatusCode(t *testing.T) {
	t.Run("typed error keeps its status code", func(t *testing.T) {
		rr := httptest.NewRecorder()
		WriteErrorAndStatusCode(rr, errors.NotFound("Thread not found"))

		assert.Equal(t, 404, rr.Code)
		assert.Equal(t, "Thread not found\n", rr.Body.String())
	})

	t.Run("unreachable store becomes 503", func(t *testing.T) {
		rr := httptest.NewRecorder()
		WriteErrorAndStatusCode(rr, fmt.Errorf("%w: dial tcp: connection refused", errors.StoreUnavailable))

		assert.Equal(t, 503, rr.Code)
		assert.Equal(t, "Service unavailable\n", rr.Body.String())
	})

	t.Run("unknown error becomes 500 without leaking details", func(t *testing.T) {
		rr := httptest.NewRecorder()
		WriteErrorAndStatusCode(rr, assert.AnError)

		assert.Equal(t, 500, rr.Code)
		assert.Equal(t, "Internal server error\n", rr.Body.String())
	})
}

func TestWriteJSON(t *testing.T) {
	rr := httptest.NewRecorder()
	WriteJSON(rr, map[string]int{"count": 3})

	assert.Equal(t, 200, rr.Code)
	assert.Equal(t, "application/json", rr.Header().Get("Content-Type"))
	assert.JSONEq(t, `{"count": 3}`, rr.Body.String())
}

func TestWriteJSONStatus(t *testing.T) {
	rr := httptest.NewRecorder()
	WriteJSONStatus(rr, 201, map[string]string{"status": "created"})

	assert.Equal(t, 201, rr.Code)
	assert.Equal(t, "application/json", rr.Header().Get("Content-Type"))
	assert.JSONEq(t, `{"status": "created"}`, rr.Body.String())
}
