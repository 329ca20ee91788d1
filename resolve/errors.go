package resolve

import (
	"fmt"

	"github.com/pkg/errors"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"
)

var (
	// ErrContractNotFound indicates that no metadata exists for the contract address.
	ErrContractNotFound = errors.New("No contract info found")

	// ErrQueryRejected indicates that the metadata service refused the query, e.g. malformed address.
	ErrQueryRejected = errors.New("Contract info query rejected")

	// ErrTransport indicates that the query failed on the wire.
	ErrTransport = errors.New("Contract info query failed")

	// ErrConnection indicates that the metadata service could not be connected for a whole batch.
	ErrConnection = errors.New("Failed to connect to metadata service")
)

// kindError tags a resolution failure with one of the error kinds above, and keeps the cause.
type kindError struct {
	kind  error
	cause error
}

func tagError(kind, cause error) error {
	return &kindError{kind: kind, cause: cause}
}

func (e *kindError) Error() string {
	return fmt.Sprintf("%v: %v", e.kind, e.cause)
}

// Unwrap returns the cause, e.g. a gRPC status error or context error.
func (e *kindError) Unwrap() error {
	return e.cause
}

// Is matches the tagged kind.
func (e *kindError) Is(target error) bool {
	return target == e.kind
}

// classify tags the given query error with one of the error kinds above.
func classify(err error) error {
	if err == nil {
		return nil
	}

	switch status.Code(err) {
	case codes.NotFound:
		return tagError(ErrContractNotFound, err)
	case codes.InvalidArgument, codes.FailedPrecondition, codes.PermissionDenied,
		codes.Unauthenticated, codes.Unimplemented, codes.OutOfRange:
		return tagError(ErrQueryRejected, err)
	default:
		return tagError(ErrTransport, err)
	}
}

// Kind returns a short name of the error kind, which is used in logs and metrics.
func Kind(err error) string {
	switch {
	case err == nil:
		return "success"
	case errors.Is(err, ErrContractNotFound):
		return "notFound"
	case errors.Is(err, ErrQueryRejected):
		return "rejected"
	case errors.Is(err, ErrConnection):
		return "connection"
	default:
		return "transport"
	}
}
