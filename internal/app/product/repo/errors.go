package repo

import (
	"context"
	"errors"

	"cloud.google.com/go/spanner"
	"github.com/lib/pq"
	"google.golang.org/grpc/codes"
)

// ErrorCode extracts the store error code from err for logging: the
// SQLSTATE of a PostgreSQL error or the gRPC code of a Spanner error.
// It returns "" when err carries no code.
func ErrorCode(err error) string {
	if err == nil {
		return ""
	}

	var pqErr *pq.Error
	if errors.As(err, &pqErr) {
		return string(pqErr.Code)
	}

	switch {
	case errors.Is(err, context.DeadlineExceeded):
		return codes.DeadlineExceeded.String()
	case errors.Is(err, context.Canceled):
		return codes.Canceled.String()
	}

	if code := spanner.ErrCode(err); code != codes.OK && code != codes.Unknown {
		return code.String()
	}
	return ""
}
