package catalog

import (
	"context"
	"errors"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

var ErrNotFound = errors.New("catalog: product not found")

// Repository is the persistence contract for mirrored products.
type Repository interface {
	Find(ctx context.Context, q Query) ([]Product, error)
	FindByProductID(ctx context.Context, productID int) (*Product, error)
	Categories(ctx context.Context) ([]string, error)
	InsertIfAbsent(ctx context.Context, p *Product) (bool, error)
}

type MongoRepository struct {
	col *mongo.Collection
}

func NewMongoRepository(db *mongo.Database) *MongoRepository {
	return &MongoRepository{col: db.Collection("products")}
}

func (r *MongoRepository) EnsureIndexes(ctx context.Context) error {
	_, err := r.col.Indexes().CreateOne(ctx, mongo.IndexModel{
		Keys:    bson.D{{Key: "productId", Value: 1}},
		Options: options.Index().SetUnique(true),
	})
	return err
}

func (r *MongoRepository) Find(ctx context.Context, q Query) ([]Product, error) {
	filter := bson.M{}
	if q.Category != "" {
		filter["category"] = q.Category
	}
	if q.MinPrice > 0 || q.MaxPrice > 0 {
		price := bson.M{}
		if q.MinPrice > 0 {
			price["$gte"] = q.MinPrice
		}
		if q.MaxPrice > 0 {
			price["$lte"] = q.MaxPrice
		}
		filter["price"] = price
	}
	if q.Text != "" {
		filter["title"] = bson.M{"$regex": primitive.Regex{Pattern: q.Text, Options: "i"}}
	}

	limit := q.Limit
	if limit <= 0 {
		limit = 20
	}
	opts := options.Find().SetLimit(limit).SetSkip(q.Skip)
	switch q.Sort {
	case "price_asc":
		opts.SetSort(bson.D{{Key: "price", Value: 1}})
	case "price_desc":
		opts.SetSort(bson.D{{Key: "price", Value: -1}})
	case "latest":
		opts.SetSort(bson.D{{Key: "_id", Value: -1}})
	}

	cur, err := r.col.Find(ctx, filter, opts)
	if err != nil {
		return nil, err
	}
	products := []Product{}
	if err := cur.All(ctx, &products); err != nil {
		return nil, err
	}
	return products, nil
}

func (r *MongoRepository) FindByProductID(ctx context.Context, productID int) (*Product, error) {
	var p Product
	err := r.col.FindOne(ctx, bson.M{"productId": productID}).Decode(&p)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	return &p, nil
}

func (r *MongoRepository) Categories(ctx context.Context) ([]string, error) {
	raw, err := r.col.Distinct(ctx, "category", bson.M{})
	if err != nil {
		return nil, err
	}
	categories := make([]string, 0, len(raw))
	for _, v := range raw {
		if s, ok := v.(string); ok {
			categories = append(categories, s)
		}
	}
	return categories, nil
}

// InsertIfAbsent inserts p unless a product with the same productId is
// already mirrored. Reports whether an insert happened.
func (r *MongoRepository) InsertIfAbsent(ctx context.Context, p *Product) (bool, error) {
	_, err := r.col.InsertOne(ctx, p)
	if err != nil {
		if mongo.IsDuplicateKeyError(err) {
			return false, nil
		}
		return false, err
	}
	return true, nil
}
