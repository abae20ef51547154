package repomanager

import (
	"context"
	"fmt"

	"github.com/dmitrijs2005/smartirrigation/internal/server/repositories/proposals"
	"github.com/dmitrijs2005/smartirrigation/internal/server/repositories/users"
	"github.com/dmitrijs2005/smartirrigation/internal/server/repositories/waterusage"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
	"go.mongodb.org/mongo-driver/mongo/readpref"
	"go.mongodb.org/mongo-driver/x/mongo/driver/connstring"
)

// DefaultMongoDatabase is used when the URI names no database.
const DefaultMongoDatabase = "smart-irrigation"

// MongoRepositoryManager vends MongoDB-backed repositories sharing one client.
type MongoRepositoryManager struct {
	client     *mongo.Client
	users      *users.MongoRepository
	proposals  *proposals.MongoRepository
	waterUsage *waterusage.MongoRepository
}

// mongoDatabaseName returns the database named in uri's path.
func mongoDatabaseName(uri string) (string, error) {
	cs, err := connstring.ParseAndValidate(uri)
	if err != nil {
		return "", err
	}
	if cs.Database == "" {
		return DefaultMongoDatabase, nil
	}
	return cs.Database, nil
}

// NewMongoRepositoryManager connects to uri, pings the primary and ensures
// the unique email index exists.
func NewMongoRepositoryManager(ctx context.Context, uri string) (*MongoRepositoryManager, error) {
	dbName, err := mongoDatabaseName(uri)
	if err != nil {
		return nil, fmt.Errorf("mongo uri: %w", err)
	}

	client, err := mongo.Connect(ctx, options.Client().ApplyURI(uri))
	if err != nil {
		return nil, fmt.Errorf("mongo connect: %w", err)
	}

	if err := client.Ping(ctx, readpref.Primary()); err != nil {
		_ = client.Disconnect(context.Background())
		return nil, fmt.Errorf("mongo ping: %w", err)
	}

	db := client.Database(dbName)
	m := &MongoRepositoryManager{
		client:     client,
		users:      users.NewMongoRepository(db),
		proposals:  proposals.NewMongoRepository(db),
		waterUsage: waterusage.NewMongoRepository(db),
	}

	if err := m.users.EnsureIndexes(ctx); err != nil {
		_ = client.Disconnect(context.Background())
		return nil, err
	}

	return m, nil
}

func (m *MongoRepositoryManager) Users() users.Repository           { return m.users }
func (m *MongoRepositoryManager) Proposals() proposals.Repository   { return m.proposals }
func (m *MongoRepositoryManager) WaterUsage() waterusage.Repository { return m.waterUsage }
func (m *MongoRepositoryManager) Available() bool                   { return true }
func (m *MongoRepositoryManager) Name() string                      { return "mongodb" }

func (m *MongoRepositoryManager) Close(ctx context.Context) error {
	return m.client.Disconnect(ctx)
}
