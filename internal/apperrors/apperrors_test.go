package apperrors

import (
	"context"
	"errors"
	"fmt"
	"net"
	"strings"
	"testing"

	"github.com/gofiber/fiber/v2"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/stretchr/testify/assert"
	"gorm.io/gorm"
)

func TestClassify_RecordNotFound(t *testing.T) {
	status, msg := Classify(gorm.ErrRecordNotFound)
	assert.Equal(t, fiber.StatusNotFound, status)
	assert.Equal(t, MsgNotFound, msg)
}

func TestClassify_PostgresCodes(t *testing.T) {
	tests := []struct {
		code       string
		wantStatus int
		wantMsg    string
	}{
		{"23505", fiber.StatusConflict, MsgDuplicate},
		{"23503", fiber.StatusConflict, MsgReferenced},
		{"23502", fiber.StatusBadRequest, MsgMissingField},
		{"42501", fiber.StatusForbidden, MsgNoPermission},
	}

	for _, tt := range tests {
		t.Run(tt.code, func(t *testing.T) {
			err := &pgconn.PgError{
				Code:    tt.code,
				Message: `duplicate key value violates unique constraint "menu_items_name_key"`,
			}
			status, msg := Classify(fmt.Errorf("create failed: %w", err))
			assert.Equal(t, tt.wantStatus, status)
			assert.Equal(t, tt.wantMsg, msg)
		})
	}
}

func TestClassify_NeverLeaksBackendText(t *testing.T) {
	raw := `duplicate key value violates unique constraint "menu_items_name_key"`
	_, msg := Classify(&pgconn.PgError{Code: "23505", Message: raw})
	assert.False(t, strings.Contains(msg, "menu_items"))
	assert.False(t, strings.Contains(msg, "constraint"))
}

func TestClassify_Connectivity(t *testing.T) {
	var err error = &net.OpError{Op: "dial", Net: "tcp", Err: errors.New("connection refused")}
	status, msg := Classify(err)
	assert.Equal(t, fiber.StatusServiceUnavailable, status)
	assert.Equal(t, MsgConnection, msg)

	status, msg = Classify(context.DeadlineExceeded)
	assert.Equal(t, fiber.StatusServiceUnavailable, status)
	assert.Equal(t, MsgConnection, msg)
}

func TestClassify_Fallback(t *testing.T) {
	status, msg := Classify(errors.New("pq: some internal detail about schema xyz"))
	assert.Equal(t, fiber.StatusInternalServerError, status)
	assert.Equal(t, MsgFallback, msg)
	assert.False(t, strings.Contains(msg, "schema"))
}

func TestClassify_UnknownPgCodeFallsThrough(t *testing.T) {
	status, msg := Classify(&pgconn.PgError{Code: "40001", Message: "serialization failure"})
	assert.Equal(t, fiber.StatusInternalServerError, status)
	assert.Equal(t, MsgFallback, msg)
}
