package waterusage

import (
	"context"
	"fmt"
	"time"

	"github.com/dmitrijs2005/smartirrigation/internal/server/models"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

const CollectionName = "waterusages"

type waterUsageDocument struct {
	ID         primitive.ObjectID  `bson:"_id,omitempty"`
	Field      string              `bson:"field"`
	LitersUsed float64             `bson:"litersUsed"`
	Status     string              `bson:"status"`
	UserID     *primitive.ObjectID `bson:"userId,omitempty"`
	CreatedAt  time.Time           `bson:"createdAt"`
	UpdatedAt  time.Time           `bson:"updatedAt"`
}

func toDocument(w *models.WaterUsage) waterUsageDocument {
	doc := waterUsageDocument{
		Field:      w.Field,
		LitersUsed: w.LitersUsed,
		Status:     string(w.Status),
		CreatedAt:  w.CreatedAt,
		UpdatedAt:  w.CreatedAt,
	}
	if oid, err := primitive.ObjectIDFromHex(w.UserID); err == nil {
		doc.UserID = &oid
	}
	return doc
}

func (d waterUsageDocument) toModel() models.WaterUsage {
	w := models.WaterUsage{
		ID:         d.ID.Hex(),
		Field:      d.Field,
		LitersUsed: d.LitersUsed,
		Status:     models.WaterUsageStatus(d.Status),
		CreatedAt:  d.CreatedAt,
	}
	if d.UserID != nil {
		w.UserID = d.UserID.Hex()
	}
	return w
}

type MongoRepository struct {
	coll *mongo.Collection
}

func NewMongoRepository(db *mongo.Database) *MongoRepository {
	return &MongoRepository{coll: db.Collection(CollectionName)}
}

func (r *MongoRepository) Create(ctx context.Context, w *models.WaterUsage) (*models.WaterUsage, error) {
	created := *w
	if created.CreatedAt.IsZero() {
		created.CreatedAt = time.Now().UTC().Truncate(time.Millisecond)
	}

	res, err := r.coll.InsertOne(ctx, toDocument(&created))
	if err != nil {
		return nil, fmt.Errorf("mongo error: %w", err)
	}

	oid, ok := res.InsertedID.(primitive.ObjectID)
	if !ok {
		return nil, fmt.Errorf("mongo error: unexpected id type %T", res.InsertedID)
	}
	created.ID = oid.Hex()

	return &created, nil
}

func (r *MongoRepository) List(ctx context.Context) ([]models.WaterUsage, error) {
	opts := options.Find().SetSort(bson.D{{Key: "createdAt", Value: -1}, {Key: "_id", Value: -1}})
	cur, err := r.coll.Find(ctx, bson.D{}, opts)
	if err != nil {
		return nil, fmt.Errorf("mongo error: %w", err)
	}

	var docs []waterUsageDocument
	if err := cur.All(ctx, &docs); err != nil {
		return nil, fmt.Errorf("mongo error: %w", err)
	}

	result := make([]models.WaterUsage, 0, len(docs))
	for _, d := range docs {
		result = append(result, d.toModel())
	}
	return result, nil
}
