package repositories

import (
	"context"

	"github.com/Rakhulsr/go-admin-dashboard/app/gateway"
)

// crud holds the create/update/delete calls every editable table shares.
type crud[T any] struct {
	gw *gateway.DB
}

func (c crud[T]) Create(ctx context.Context, record *T) error {
	return c.gw.Insert(ctx, record)
}

func (c crud[T]) Update(ctx context.Context, id int64, patch map[string]interface{}) (*T, error) {
	var record T
	if err := c.gw.Update(ctx, &record, id, patch); err != nil {
		return nil, err
	}
	return &record, nil
}

func (c crud[T]) Delete(ctx context.Context, id int64) error {
	var record T
	return c.gw.Delete(ctx, &record, id)
}
