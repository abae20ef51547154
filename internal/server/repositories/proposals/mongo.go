package proposals

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/dmitrijs2005/smartirrigation/internal/common"
	"github.com/dmitrijs2005/smartirrigation/internal/server/models"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
)

const (
	CollectionName      = "proposals"
	usersCollectionName = "users"
)

type proposalDocument struct {
	ID          primitive.ObjectID `bson:"_id,omitempty"`
	Title       string             `bson:"title"`
	Description string             `bson:"description"`
	Price       float64            `bson:"price"`
	TargetCrops []string           `bson:"targetCrops"`
	Proposer    primitive.ObjectID `bson:"proposer"`
	Status      string             `bson:"status"`
	CreatedAt   time.Time          `bson:"createdAt"`
	UpdatedAt   time.Time          `bson:"updatedAt"`
}

type proposerDocument struct {
	ID    primitive.ObjectID `bson:"_id"`
	Name  string             `bson:"name"`
	Email string             `bson:"email"`
}

// proposalView is a proposal joined with its owner by ListActive.
type proposalView struct {
	Proposal  proposalDocument   `bson:",inline"`
	Proposers []proposerDocument `bson:"proposers"`
}

func (v proposalView) toModel() models.Proposal {
	d := v.Proposal
	p := models.Proposal{
		ID:          d.ID.Hex(),
		Title:       d.Title,
		Description: d.Description,
		Price:       d.Price,
		TargetCrops: append([]string{}, d.TargetCrops...),
		Proposer:    models.Proposer{ID: d.Proposer.Hex()},
		Status:      models.ProposalStatus(d.Status),
		CreatedAt:   d.CreatedAt,
	}
	if len(v.Proposers) > 0 {
		p.Proposer.Name = v.Proposers[0].Name
		p.Proposer.Email = v.Proposers[0].Email
	}
	return p
}

type MongoRepository struct {
	coll *mongo.Collection
}

func NewMongoRepository(db *mongo.Database) *MongoRepository {
	return &MongoRepository{coll: db.Collection(CollectionName)}
}

func (r *MongoRepository) Create(ctx context.Context, p *models.Proposal) (*models.Proposal, error) {
	owner, err := primitive.ObjectIDFromHex(p.Proposer.ID)
	if err != nil {
		return nil, fmt.Errorf("proposer %q: %w", p.Proposer.ID, common.ErrorNotFound)
	}

	created := clone(*p)
	if created.CreatedAt.IsZero() {
		created.CreatedAt = time.Now().UTC().Truncate(time.Millisecond)
	}

	doc := proposalDocument{
		Title:       created.Title,
		Description: created.Description,
		Price:       created.Price,
		TargetCrops: created.TargetCrops,
		Proposer:    owner,
		Status:      string(created.Status),
		CreatedAt:   created.CreatedAt,
		UpdatedAt:   created.CreatedAt,
	}

	res, err := r.coll.InsertOne(ctx, doc)
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

// activePipeline filters active proposals, newest first, and joins the owner.
func activePipeline() mongo.Pipeline {
	return mongo.Pipeline{
		{{Key: "$match", Value: bson.D{{Key: "status", Value: string(models.ProposalActive)}}}},
		{{Key: "$sort", Value: bson.D{{Key: "createdAt", Value: -1}, {Key: "_id", Value: -1}}}},
		{{Key: "$lookup", Value: bson.D{
			{Key: "from", Value: usersCollectionName},
			{Key: "localField", Value: "proposer"},
			{Key: "foreignField", Value: "_id"},
			{Key: "as", Value: "proposers"},
		}}},
		{{Key: "$project", Value: bson.D{
			{Key: "proposers.password", Value: 0},
		}}},
	}
}

func (r *MongoRepository) ListActive(ctx context.Context) ([]models.Proposal, error) {
	cur, err := r.coll.Aggregate(ctx, activePipeline())
	if err != nil {
		return nil, fmt.Errorf("mongo error: %w", err)
	}

	var views []proposalView
	if err := cur.All(ctx, &views); err != nil {
		return nil, fmt.Errorf("mongo error: %w", err)
	}

	result := make([]models.Proposal, 0, len(views))
	for _, v := range views {
		result = append(result, v.toModel())
	}
	return result, nil
}

func (r *MongoRepository) DeleteOwned(ctx context.Context, id, ownerID string) error {
	oid, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return common.ErrorNotFound
	}

	var doc proposalDocument
	if err := r.coll.FindOne(ctx, bson.M{"_id": oid}).Decode(&doc); err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return common.ErrorNotFound
		}
		return fmt.Errorf("mongo error: %w", err)
	}

	if doc.Proposer.Hex() != ownerID {
		return common.ErrorForbidden
	}

	// the owner filter keeps the delete conditional on the check above
	res, err := r.coll.DeleteOne(ctx, bson.M{"_id": oid, "proposer": doc.Proposer})
	if err != nil {
		return fmt.Errorf("mongo error: %w", err)
	}
	if res.DeletedCount == 0 {
		return common.ErrorNotFound
	}

	return nil
}
