package mongo

import (
	"context"
	"fmt"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"food-delivery/internal/domain"
)

type OrderStatusAuditRepository struct {
	collection *mongo.Collection
}

func NewOrderStatusAuditRepository(db *mongo.Database) *OrderStatusAuditRepository {
	return &OrderStatusAuditRepository{collection: db.Collection(collectionOrderStatusAudit)}
}

func (r *OrderStatusAuditRepository) Create(ctx context.Context, audit *domain.OrderStatusAudit) error {
	ctx, cancel := context.WithTimeout(ctx, 10*time.Second)
	defer cancel()

	if audit.ID.IsZero() {
		audit.ID = primitive.NewObjectID()
	}
	if audit.Timestamp.IsZero() {
		audit.Timestamp = time.Now()
	}
	if _, err := r.collection.InsertOne(ctx, audit); err != nil {
		return fmt.Errorf("insert order status audit: %w", err)
	}
	return nil
}

// ListByOrder returns the newest entries first.
func (r *OrderStatusAuditRepository) ListByOrder(ctx context.Context, companyID, orderID string, limit int) ([]domain.OrderStatusAudit, error) {
	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	if limit <= 0 {
		limit = 50
	}
	filter := bson.M{"company_id": companyID, "order_id": orderID}
	opts := options.Find().SetSort(bson.D{{Key: "timestamp", Value: -1}}).SetLimit(int64(limit))

	cursor, err := r.collection.Find(ctx, filter, opts)
	if err != nil {
		return nil, fmt.Errorf("find order status audits: %w", err)
	}
	defer cursor.Close(ctx)

	audits := []domain.OrderStatusAudit{}
	if err := cursor.All(ctx, &audits); err != nil {
		return nil, fmt.Errorf("decode order status audits: %w", err)
	}
	return audits, nil
}
