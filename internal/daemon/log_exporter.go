package daemon

import (
	"context"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"

	"github.com/abdul-muhaimin-toha/library-management/internal/models"
	"github.com/abdul-muhaimin-toha/library-management/internal/utils"
)

// LogExporter ships unexported audit entries out of the audit collection
// on a fixed interval.
type LogExporter struct {
	Coll     *mongo.Collection
	Interval time.Duration
	stop     chan struct{}
}

func NewLogExporter(coll *mongo.Collection, interval time.Duration) *LogExporter {
	if interval <= 0 {
		interval = 30 * time.Second
	}
	return &LogExporter{Coll: coll, Interval: interval, stop: make(chan struct{})}
}

func (l *LogExporter) Start() {
	go func() {
		ticker := time.NewTicker(l.Interval)
		defer ticker.Stop()
		for {
			select {
			case <-ticker.C:
				l.exportPending()
			case <-l.stop:
				return
			}
		}
	}()
}

func (l *LogExporter) Stop() {
	close(l.stop)
}

func (l *LogExporter) exportPending() {
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	cursor, err := l.Coll.Find(ctx, bson.M{"exported": false})
	if err != nil {
		return
	}

	var logs []models.AuditLog
	if err := cursor.All(ctx, &logs); err != nil || len(logs) == 0 {
		return
	}

	if err := utils.ExportData(logs); err != nil {
		return
	}

	exportedIDs := make([]primitive.ObjectID, 0, len(logs))
	for _, entry := range logs {
		exportedIDs = append(exportedIDs, entry.ID)
	}

	l.Coll.UpdateMany(ctx,
		bson.M{"_id": bson.M{"$in": exportedIDs}},
		bson.M{"$set": bson.M{"exported": true}},
	)
}
