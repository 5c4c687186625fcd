package mongo

import (
	"context"
	"errors"
	"fmt"

	"github.com/baechuer/devevent-service/internal/domain"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/x/mongo/driver/topology"
)

// classify turns driver failures into connectivity errors where the server
// could not be reached, and wraps everything else with the operation name.
func classify(op string, err error) error {
	if err == nil {
		return nil
	}
	var ae *domain.AppError
	if errors.As(err, &ae) {
		return err
	}
	if mongo.IsNetworkError(err) || mongo.IsTimeout(err) || errors.Is(err, context.DeadlineExceeded) {
		return domain.ErrUnavailable("database unavailable", err)
	}
	var sse topology.ServerSelectionError
	if errors.As(err, &sse) {
		return domain.ErrUnavailable("database unavailable", err)
	}
	return fmt.Errorf("mongo %s: %w", op, err)
}
