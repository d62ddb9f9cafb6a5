package transport

import (
	"errors"

	"crm-platform/internal/service"

	"go.uber.org/zap"
)

// mutationError exposes a service validation failure as a GraphQL error with
// the taxonomy kind in the error extensions, so clients can branch on
// `extensions.kind` instead of matching message strings.
type mutationError struct {
	*service.ValidationError
}

// Extensions implements gqlerrors.ExtendedError
func (e mutationError) Extensions() map[string]interface{} {
	return map[string]interface{}{
		"kind": string(e.Kind),
	}
}

var errInternal = errors.New("internal server error")

// resolverError converts err into the error returned to the client.
// Validation failures pass through with their kind; anything else is logged
// and replaced with a generic message.
func (r *Resolver) resolverError(op string, err error) error {
	if verr, ok := service.AsValidationError(err); ok {
		return mutationError{verr}
	}

	r.logger.Error("Resolver failed",
		zap.String("operation", op),
		zap.Error(err),
	)
	return errInternal
}
