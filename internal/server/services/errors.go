package services

import (
	"context"
	"errors"

	"github.com/dmitrijs2005/jobboard/internal/common"
	"github.com/dmitrijs2005/jobboard/internal/logging"
)

// isMissing reports lookups that found nothing, including malformed ids the
// store refused to parse.
func isMissing(err error) bool {
	return errors.Is(err, common.ErrorNotFound) || errors.Is(err, common.ErrorInvalidTextRepresentation)
}

// internalError logs err with operator detail and returns an Internal error
// whose client-facing text is msg only.
func internalError(ctx context.Context, l logging.Logger, msg string, err error, args ...any) error {
	l.Error(ctx, msg, append(args, "error", err)...)
	return common.NewError(common.ErrorInternal, msg).Wrap(err)
}
