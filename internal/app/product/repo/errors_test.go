package repo

import (
	"context"
	"errors"
	"fmt"
	"testing"

	"github.com/lib/pq"
	"github.com/stretchr/testify/assert"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"
)

func TestErrorCode(t *testing.T) {
	tests := []struct {
		name string
		err  error
		want string
	}{
		{"nil", nil, ""},
		{"plain", errors.New("boom"), ""},
		{"postgres", fmt.Errorf("failed to query products: %w", &pq.Error{Code: "42P01"}), "42P01"},
		{"deadline", fmt.Errorf("failed to count products: %w", context.DeadlineExceeded), "DeadlineExceeded"},
		{"canceled", context.Canceled, "Canceled"},
		{"grpc status", status.Error(codes.Unavailable, "connection refused"), "Unavailable"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, ErrorCode(tt.err))
		})
	}
}
