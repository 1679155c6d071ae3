package cart

import (
	"context"
	"errors"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

var (
	ErrNotFound      = errors.New("cart: not found")
	ErrAlreadyExists = errors.New("cart: already exists for user")
)

// Repository is the persistence contract for cart documents.
type Repository interface {
	FindByUser(ctx context.Context, userID primitive.ObjectID) (*Cart, error)
	Insert(ctx context.Context, c *Cart) error
	SaveItems(ctx context.Context, userID primitive.ObjectID, items []Item) (*Cart, error)
	EmptyUpsert(ctx context.Context, userID primitive.ObjectID) error
}

type MongoRepository struct {
	col *mongo.Collection
}

func NewMongoRepository(db *mongo.Database) *MongoRepository {
	return &MongoRepository{col: db.Collection("carts")}
}

// EnsureIndexes creates the unique userId index the lazy-create race in
// Service.GetOrCreate relies on.
func (r *MongoRepository) EnsureIndexes(ctx context.Context) error {
	_, err := r.col.Indexes().CreateOne(ctx, mongo.IndexModel{
		Keys:    bson.D{{Key: "userId", Value: 1}},
		Options: options.Index().SetUnique(true),
	})
	return err
}

func (r *MongoRepository) FindByUser(ctx context.Context, userID primitive.ObjectID) (*Cart, error) {
	var c Cart
	err := r.col.FindOne(ctx, bson.M{"userId": userID}).Decode(&c)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	return &c, nil
}

func (r *MongoRepository) Insert(ctx context.Context, c *Cart) error {
	now := time.Now().UTC()
	c.CreatedAt = now
	c.UpdatedAt = now
	if c.Items == nil {
		c.Items = []Item{}
	}
	res, err := r.col.InsertOne(ctx, c)
	if err != nil {
		if mongo.IsDuplicateKeyError(err) {
			return ErrAlreadyExists
		}
		return err
	}
	c.ID = res.InsertedID.(primitive.ObjectID)
	return nil
}

// SaveItems replaces the whole item list for a user's cart and returns the
// updated document. Last write wins when two requests for the same user
// race; acceptable for a single user editing their own cart.
func (r *MongoRepository) SaveItems(ctx context.Context, userID primitive.ObjectID, items []Item) (*Cart, error) {
	if items == nil {
		items = []Item{}
	}
	var c Cart
	err := r.col.FindOneAndUpdate(ctx,
		bson.M{"userId": userID},
		bson.M{"$set": bson.M{"items": items, "updatedAt": time.Now().UTC()}},
		options.FindOneAndUpdate().SetReturnDocument(options.After),
	).Decode(&c)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	return &c, nil
}

func (r *MongoRepository) EmptyUpsert(ctx context.Context, userID primitive.ObjectID) error {
	now := time.Now().UTC()
	_, err := r.col.UpdateOne(ctx,
		bson.M{"userId": userID},
		bson.M{
			"$set":         bson.M{"items": []Item{}, "updatedAt": now},
			"$setOnInsert": bson.M{"createdAt": now},
		},
		options.Update().SetUpsert(true),
	)
	return err
}
