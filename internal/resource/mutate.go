package resource

import (
	"context"
	"fmt"

	"go.uber.org/zap"
)

// Creator creates one record from payload P.
type Creator[P, T any] interface {
	Create(ctx context.Context, payload P) (T, error)
}

// CreatorFunc adapts a function to Creator.
type CreatorFunc[P, T any] func(ctx context.Context, payload P) (T, error)

func (f CreatorFunc[P, T]) Create(ctx context.Context, payload P) (T, error) {
	return f(ctx, payload)
}

type validator interface {
	Validate() error
}

// Create validates payload when it knows how to and only then calls the creator.
func Create[P, T any](ctx context.Context, creator Creator[P, T], payload P) (T, error) {
	if v, ok := any(payload).(validator); ok {
		if err := v.Validate(); err != nil {
			var zero T
			return zero, err
		}
	}

	return creator.Create(ctx, payload)
}

// Confirmer asks the user to approve a destructive action.
type Confirmer interface {
	Confirm(ctx context.Context, message string) (bool, error)
}

type ConfirmFunc func(ctx context.Context, message string) (bool, error)

func (f ConfirmFunc) Confirm(ctx context.Context, message string) (bool, error) {
	return f(ctx, message)
}

// AlwaysConfirm approves every prompt. Used by --yes.
var AlwaysConfirm = ConfirmFunc(func(context.Context, string) (bool, error) { return true, nil })

// Remove deletes id after the confirmer approves message. It returns false
// without issuing a request when the prompt is declined or fails.
// The local items are left as they are; callers refetch.
func (c *Collection[T]) Remove(ctx context.Context, id, message string, confirmer Confirmer) (bool, error) {
	if confirmer == nil {
		return false, fmt.Errorf("%s: no confirmation available for delete", c.name)
	}

	ok, err := confirmer.Confirm(ctx, message)
	if err != nil {
		return false, fmt.Errorf("confirm delete: %w", err)
	}
	if !ok {
		c.logger.Debug("delete cancelled", zap.String("id", id))
		return false, nil
	}

	if err := c.source.Delete(ctx, id); err != nil {
		c.logger.Warn("failed to delete record", zap.String("id", id), zap.Error(err))
		return false, err
	}

	c.logger.Info("record deleted", zap.String("id", id))

	return true, nil
}
