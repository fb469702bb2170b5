package repositories

import (
	"context"
	"errors"
	"time"

	"projectdesk/models"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
)

// UserRepository persists User aggregates. Save always writes the whole
// document back, last write wins across concurrent field updates.
type UserRepository interface {
	FindByID(ctx context.Context, id primitive.ObjectID) (*models.User, error)
	FindByEmail(ctx context.Context, email string) (*models.User, error)
	Insert(ctx context.Context, user *models.User) (primitive.ObjectID, error)
	Save(ctx context.Context, user *models.User) error
	DeleteExpiredUnverified(ctx context.Context, now time.Time) (int64, error)
}

type MongoUserRepo struct {
	collection *mongo.Collection
}

func NewMongoUserRepo(collection *mongo.Collection) *MongoUserRepo {
	return &MongoUserRepo{collection: collection}
}

func (r *MongoUserRepo) FindByID(ctx context.Context, id primitive.ObjectID) (*models.User, error) {
	var user models.User
	err := r.collection.FindOne(ctx, bson.M{"_id": id}).Decode(&user)
	if errors.Is(err, mongo.ErrNoDocuments) {
		return nil, models.NewNotFoundError("user")
	}
	if err != nil {
		return nil, err
	}
	return &user, nil
}

func (r *MongoUserRepo) FindByEmail(ctx context.Context, email string) (*models.User, error) {
	var user models.User
	err := r.collection.FindOne(ctx, bson.M{"email": email}).Decode(&user)
	if errors.Is(err, mongo.ErrNoDocuments) {
		return nil, models.NewNotFoundError("user")
	}
	if err != nil {
		return nil, err
	}
	return &user, nil
}

func (r *MongoUserRepo) Insert(ctx context.Context, user *models.User) (primitive.ObjectID, error) {
	if user.ID.IsZero() {
		user.ID = primitive.NewObjectID()
	}
	if _, err := r.collection.InsertOne(ctx, user); err != nil {
		return primitive.NilObjectID, err
	}
	return user.ID, nil
}

func (r *MongoUserRepo) Save(ctx context.Context, user *models.User) error {
	_, err := r.collection.ReplaceOne(ctx, bson.M{"_id": user.ID}, user)
	return err
}

// DeleteExpiredUnverified removes accounts that never completed email
// verification within their window.
func (r *MongoUserRepo) DeleteExpiredUnverified(ctx context.Context, now time.Time) (int64, error) {
	filter := bson.M{
		"verified":           false,
		"verificationExpiry": bson.M{"$lt": now},
	}
	res, err := r.collection.DeleteMany(ctx, filter)
	if err != nil {
		return 0, err
	}
	return res.DeletedCount, nil
}
