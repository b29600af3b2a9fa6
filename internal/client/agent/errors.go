package agent

import (
	"errors"
	"fmt"

	"github.com/dmitrijs2005/cvboard/internal/common"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"
)

func (a *Agent) mapError(err error) error {
	if err == nil {
		return nil
	}
	if errors.Is(err, common.ErrUntrusted) {
		return err
	}
	st, _ := status.FromError(err)
	switch st.Code() {
	case codes.Unauthenticated, codes.PermissionDenied:
		return common.ErrUnauthorized
	case codes.Unavailable, codes.DeadlineExceeded:
		return common.ErrUnavailable
	default:
		return fmt.Errorf("rpc error: %w", err)
	}
}
