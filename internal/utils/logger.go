package utils

import (
	"context"
	"time"

	"go.mongodb.org/mongo-driver/mongo"

	"github.com/abdul-muhaimin-toha/library-management/internal/models"
)

// Logger records catalog and borrow activity in an audit collection.
type Logger struct {
	Collection *mongo.Collection
}

func (l *Logger) Log(ctx context.Context, entity, action string, data any) error {
	if l.Collection == nil {
		return nil
	}
	entry := models.AuditLog{
		Timestamp:   time.Now(),
		Entity:      entity,
		Action:      action,
		PerformedBy: "api",
		Data:        data,
	}
	_, err := l.Collection.InsertOne(ctx, entry)
	return err
}
