package repository

import (
	"botlist-service/internal/config"
	"botlist-service/internal/repository/model"
	"context"
	"fmt"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
	"go.uber.org/zap"
	"sync"
	"time"
)

const (
	userCollectionName    = "users"
	botCollectionName     = "bots"
	partnerCollectionName = "partners"

	queryTimeout = 5 * time.Second
)

type mongoRepository struct {
	database *mongo.Database

	userCollection    *mongo.Collection
	botCollection     *mongo.Collection
	partnerCollection *mongo.Collection
}

func NewMongoRepository(ctx context.Context, logger *zap.SugaredLogger, wg *sync.WaitGroup, cfg config.MongoDBConfig) (Repository, error) {
	client, err := mongo.Connect(ctx, options.Client().ApplyURI(cfg.URI))
	if err != nil {
		return nil, fmt.Errorf("failed to connect to mongo: %w", err)
	}

	pingCtx, cancel := context.WithTimeout(ctx, queryTimeout)
	defer cancel()
	if err := client.Ping(pingCtx, nil); err != nil {
		return nil, fmt.Errorf("failed to ping mongo: %w", err)
	}

	repo := newMongoRepository(client.Database(cfg.Database))
	if err := repo.createIndexes(ctx); err != nil {
		return nil, fmt.Errorf("failed to create indexes: %w", err)
	}

	wg.Add(1)
	go func() {
		defer wg.Done()
		<-ctx.Done()
		logger.Info("shutting down mongo client")

		disconnectCtx, cancel := context.WithTimeout(context.Background(), queryTimeout)
		defer cancel()
		if err := client.Disconnect(disconnectCtx); err != nil {
			logger.Errorw("failed to disconnect from mongo", "error", err)
		}
	}()

	return repo, nil
}

func newMongoRepository(database *mongo.Database) *mongoRepository {
	return &mongoRepository{
		database:          database,
		userCollection:    database.Collection(userCollectionName),
		botCollection:     database.Collection(botCollectionName),
		partnerCollection: database.Collection(partnerCollectionName),
	}
}

func (m *mongoRepository) createIndexes(ctx context.Context) error {
	ctx, cancel := context.WithTimeout(ctx, queryTimeout)
	defer cancel()

	_, err := m.userCollection.Indexes().CreateOne(ctx, mongo.IndexModel{
		Keys:    bson.D{{Key: "discordId", Value: 1}},
		Options: options.Index().SetUnique(true),
	})
	if err != nil {
		return err
	}

	_, err = m.botCollection.Indexes().CreateMany(ctx, []mongo.IndexModel{
		{Keys: bson.D{{Key: "clientId", Value: 1}}, Options: options.Index().SetUnique(true)},
		{Keys: bson.D{{Key: "status", Value: 1}, {Key: "createdAt", Value: -1}}},
		{Keys: bson.D{{Key: "tags", Value: 1}}},
	})
	if err != nil {
		return err
	}

	_, err = m.partnerCollection.Indexes().CreateOne(ctx, mongo.IndexModel{
		Keys: bson.D{{Key: "createdAt", Value: -1}},
	})
	return err
}

func (m *mongoRepository) GetUser(ctx context.Context, discordId string) (*model.User, error) {
	ctx, cancel := context.WithTimeout(ctx, queryTimeout)
	defer cancel()

	var user model.User
	if err := m.userCollection.FindOne(ctx, bson.M{"discordId": discordId}).Decode(&user); err != nil {
		return nil, err
	}

	return &user, nil
}

func (m *mongoRepository) CreateBot(ctx context.Context, bot *model.Bot) error {
	ctx, cancel := context.WithTimeout(ctx, queryTimeout)
	defer cancel()

	_, err := m.botCollection.InsertOne(ctx, bot)
	return err
}

func (m *mongoRepository) GetBot(ctx context.Context, clientId string) (*model.Bot, error) {
	ctx, cancel := context.WithTimeout(ctx, queryTimeout)
	defer cancel()

	var bot model.Bot
	if err := m.botCollection.FindOne(ctx, bson.M{"clientId": clientId}).Decode(&bot); err != nil {
		return nil, err
	}

	return &bot, nil
}

func (m *mongoRepository) UpdateBot(ctx context.Context, clientId string, update model.BotUpdate) error {
	return m.updateBot(ctx, clientId, update.Bson())
}

func (m *mongoRepository) SetBotStatus(ctx context.Context, clientId string, status model.BotStatus) error {
	return m.updateBot(ctx, clientId, bson.M{"$set": bson.M{"status": status}})
}

func (m *mongoRepository) SetBotFeatured(ctx context.Context, clientId string, featured bool) error {
	return m.updateBot(ctx, clientId, bson.M{"$set": bson.M{"featured": featured}})
}

func (m *mongoRepository) updateBot(ctx context.Context, clientId string, update interface{}) error {
	ctx, cancel := context.WithTimeout(ctx, queryTimeout)
	defer cancel()

	result, err := m.botCollection.UpdateOne(ctx, bson.M{"clientId": clientId}, update)
	if err != nil {
		return err
	}

	if result.MatchedCount == 0 {
		return mongo.ErrNoDocuments
	}

	return nil
}

func (m *mongoRepository) DeleteBot(ctx context.Context, clientId string) error {
	ctx, cancel := context.WithTimeout(ctx, queryTimeout)
	defer cancel()

	result, err := m.botCollection.DeleteOne(ctx, bson.M{"clientId": clientId})
	if err != nil {
		return err
	}

	if result.DeletedCount == 0 {
		return mongo.ErrNoDocuments
	}

	return nil
}

func (m *mongoRepository) ListBots(ctx context.Context, filter model.BotFilter, sort model.SortOrder, skip int64, limit int64) ([]*model.Bot, error) {
	ctx, cancel := context.WithTimeout(ctx, queryTimeout)
	defer cancel()

	opts := options.Find().SetSort(sort.Bson())
	if skip > 0 {
		opts.SetSkip(skip)
	}
	if limit > 0 {
		opts.SetLimit(limit)
	}

	cursor, err := m.botCollection.Find(ctx, filter.Bson(), opts)
	if err != nil {
		return nil, err
	}

	var mongoResult []model.Bot
	if err := cursor.All(ctx, &mongoResult); err != nil {
		return nil, err
	}

	slice := make([]*model.Bot, len(mongoResult))
	for i := range mongoResult {
		slice[i] = &mongoResult[i]
	}

	return slice, nil
}

func (m *mongoRepository) CountBots(ctx context.Context, filter model.BotFilter) (int64, error) {
	ctx, cancel := context.WithTimeout(ctx, queryTimeout)
	defer cancel()

	return m.botCollection.CountDocuments(ctx, filter.Bson())
}

func (m *mongoRepository) CreatePartner(ctx context.Context, partner *model.Partner) error {
	ctx, cancel := context.WithTimeout(ctx, queryTimeout)
	defer cancel()

	result, err := m.partnerCollection.InsertOne(ctx, partner)
	if err != nil {
		return err
	}

	if id, ok := result.InsertedID.(primitive.ObjectID); ok {
		partner.Id = id
	}

	return nil
}

func (m *mongoRepository) GetPartners(ctx context.Context) ([]*model.Partner, error) {
	ctx, cancel := context.WithTimeout(ctx, queryTimeout)
	defer cancel()

	cursor, err := m.partnerCollection.Find(ctx, bson.D{}, options.Find().SetSort(bson.D{{Key: "createdAt", Value: -1}}))
	if err != nil {
		return nil, err
	}

	var mongoResult []model.Partner
	if err := cursor.All(ctx, &mongoResult); err != nil {
		return nil, err
	}

	slice := make([]*model.Partner, len(mongoResult))
	for i := range mongoResult {
		slice[i] = &mongoResult[i]
	}

	return slice, nil
}
