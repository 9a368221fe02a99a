package repositories

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"
	"go.mongodb.org/mongo-driver/v2/bson"
	"go.mongodb.org/mongo-driver/v2/mongo"
	"go.mongodb.org/mongo-driver/v2/mongo/options"

	"github.com/fandressouza/indicacoes/domain"
)

// MongoUser is the users collection document
type MongoUser struct {
	ID           string    `bson:"_id"`
	Email        string    `bson:"email"`
	Name         string    `bson:"name"`
	PasswordHash string    `bson:"password"`
	IsAdmin      bool      `bson:"is_admin"`
	IsBanned     bool      `bson:"is_banned"`
	CreatedAt    time.Time `bson:"created_at"`
	UpdatedAt    time.Time `bson:"updated_at"`
}

// MongoUserRepository implements domain.UserRepository on a MongoDB collection
type MongoUserRepository struct {
	coll *mongo.Collection
}

// NewMongoUserRepository creates the repository and ensures the unique email index
func NewMongoUserRepository(ctx context.Context, db *mongo.Database) (domain.UserRepository, error) {
	coll := db.Collection("users")
	_, err := coll.Indexes().CreateOne(ctx, mongo.IndexModel{
		Keys:    bson.D{{Key: "email", Value: 1}},
		Options: options.Index().SetUnique(true),
	})
	if err != nil {
		return nil, domain.StorageError("create users index", err)
	}
	return &MongoUserRepository{coll: coll}, nil
}

// Create implements domain.UserRepository
func (r *MongoUserRepository) Create(ctx context.Context, user *domain.User) error {
	now := time.Now().UTC()
	doc := MongoUser{
		ID:           user.ID,
		Email:        user.Email,
		Name:         user.Name,
		PasswordHash: user.PasswordHash,
		IsAdmin:      user.IsAdmin,
		IsBanned:     user.IsBanned,
		CreatedAt:    now,
		UpdatedAt:    now,
	}
	if doc.ID == "" {
		doc.ID = uuid.NewString()
	}

	if _, err := r.coll.InsertOne(ctx, doc); err != nil {
		if mongo.IsDuplicateKeyError(err) {
			return domain.ErrDuplicateEmail
		}
		return domain.StorageError("create user", err)
	}
	user.ID = doc.ID
	user.CreatedAt = doc.CreatedAt
	user.UpdatedAt = doc.UpdatedAt
	return nil
}

// FindByEmail implements domain.UserRepository
func (r *MongoUserRepository) FindByEmail(ctx context.Context, email string) (*domain.User, error) {
	return r.findOne(ctx, "find user by email", bson.D{{Key: "email", Value: email}})
}

// FindByID implements domain.UserRepository
func (r *MongoUserRepository) FindByID(ctx context.Context, id string) (*domain.User, error) {
	return r.findOne(ctx, "find user by id", bson.D{{Key: "_id", Value: id}})
}

// SetBanned implements domain.UserRepository
func (r *MongoUserRepository) SetBanned(ctx context.Context, id string, banned bool) error {
	return r.setFlag(ctx, "set banned", id, "is_banned", banned)
}

// SetAdmin implements domain.UserRepository
func (r *MongoUserRepository) SetAdmin(ctx context.Context, id string, admin bool) error {
	return r.setFlag(ctx, "set admin", id, "is_admin", admin)
}

func (r *MongoUserRepository) findOne(ctx context.Context, op string, filter bson.D) (*domain.User, error) {
	var doc MongoUser
	if err := r.coll.FindOne(ctx, filter).Decode(&doc); err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, domain.ErrNoSuchUser
		}
		return nil, domain.StorageError(op, err)
	}
	return &domain.User{
		ID:           doc.ID,
		Email:        doc.Email,
		Name:         doc.Name,
		PasswordHash: doc.PasswordHash,
		IsAdmin:      doc.IsAdmin,
		IsBanned:     doc.IsBanned,
		CreatedAt:    doc.CreatedAt,
		UpdatedAt:    doc.UpdatedAt,
	}, nil
}

func (r *MongoUserRepository) setFlag(ctx context.Context, op, id, field string, value bool) error {
	res, err := r.coll.UpdateOne(ctx,
		bson.D{{Key: "_id", Value: id}},
		bson.D{{Key: "$set", Value: bson.D{
			{Key: field, Value: value},
			{Key: "updated_at", Value: time.Now().UTC()},
		}}},
	)
	if err != nil {
		return domain.StorageError(op, err)
	}
	if res.MatchedCount == 0 {
		return domain.ErrNoSuchUser
	}
	return nil
}
