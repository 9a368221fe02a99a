package repositories

import (
	"context"
	"errors"
	"iter"
	"time"

	"github.com/google/uuid"
	"go.mongodb.org/mongo-driver/v2/bson"
	"go.mongodb.org/mongo-driver/v2/mongo"
	"go.mongodb.org/mongo-driver/v2/mongo/options"

	"github.com/fandressouza/indicacoes/domain"
)

// MongoListing is the ads collection document
type MongoListing struct {
	ID                string    `bson:"_id"`
	OwnerID           string    `bson:"owner_id"`
	OwnerName         string    `bson:"owner_name"`
	Offer             string    `bson:"offer"`
	Phone             string    `bson:"phone"`
	HouseNumber       string    `bson:"house_number"`
	PrimaryCategory   string    `bson:"primary_category"`
	SecondaryCategory string    `bson:"secondary_category"`
	Description       string    `bson:"description"`
	Price             int64     `bson:"price"`
	Delivery          bool      `bson:"delivery"`
	ImageRef          string    `bson:"image"`
	Date              string    `bson:"date"`
	IsApproved        bool      `bson:"is_approved"`
	IsSponsored       bool      `bson:"is_sponsored"`
	IsRejected        bool      `bson:"is_rejected"`
	RejectionReason   string    `bson:"rejection_reason,omitempty"`
	CreatedAt         time.Time `bson:"created_at"`
	UpdatedAt         time.Time `bson:"updated_at"`
}

// MongoListingRepository implements domain.ListingRepository on a MongoDB collection
type MongoListingRepository struct {
	coll *mongo.Collection
}

// NewMongoListingRepository creates the repository and its query indexes
func NewMongoListingRepository(ctx context.Context, db *mongo.Database) (domain.ListingRepository, error) {
	coll := db.Collection("ads")
	_, err := coll.Indexes().CreateMany(ctx, []mongo.IndexModel{
		{Keys: bson.D{{Key: "is_approved", Value: 1}, {Key: "is_rejected", Value: 1}}},
		{Keys: bson.D{{Key: "primary_category", Value: 1}}},
		{Keys: bson.D{{Key: "secondary_category", Value: 1}}},
	})
	if err != nil {
		return nil, domain.StorageError("create ads indexes", err)
	}
	return &MongoListingRepository{coll: coll}, nil
}

// Insert implements domain.ListingRepository
func (r *MongoListingRepository) Insert(ctx context.Context, listing *domain.Listing) (string, error) {
	now := time.Now().UTC()
	doc := MongoListing{
		ID:                uuid.NewString(),
		OwnerID:           listing.OwnerID,
		OwnerName:         listing.OwnerName,
		Offer:             listing.Offer,
		Phone:             listing.Phone,
		HouseNumber:       listing.HouseNumber,
		PrimaryCategory:   listing.Category.Primary,
		SecondaryCategory: listing.Category.Secondary,
		Description:       listing.Description,
		Price:             listing.Price,
		Delivery:          listing.Delivery,
		ImageRef:          listing.ImageRef,
		Date:              listing.Date,
		IsApproved:        listing.IsApproved,
		IsSponsored:       listing.IsSponsored,
		IsRejected:        listing.IsRejected,
		RejectionReason:   listing.RejectionReason,
		CreatedAt:         now,
		UpdatedAt:         now,
	}
	if _, err := r.coll.InsertOne(ctx, doc); err != nil {
		return "", domain.StorageError("insert listing", err)
	}
	listing.ID = doc.ID
	listing.CreatedAt = now
	listing.UpdatedAt = now
	return doc.ID, nil
}

// FindByID implements domain.ListingRepository
func (r *MongoListingRepository) FindByID(ctx context.Context, id string) (*domain.Listing, error) {
	var doc MongoListing
	if err := r.coll.FindOne(ctx, bson.D{{Key: "_id", Value: id}}).Decode(&doc); err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, domain.ErrNotFound
		}
		return nil, domain.StorageError("find listing", err)
	}
	return doc.toDomain(), nil
}

// FindByCategory implements domain.ListingRepository
func (r *MongoListingRepository) FindByCategory(ctx context.Context, filter domain.ListingFilter) iter.Seq2[*domain.Listing, error] {
	query := statusFilter(filter.Status)
	if filter.Category != "" {
		query = append(query, bson.E{Key: "$or", Value: bson.A{
			bson.D{{Key: "primary_category", Value: filter.Category}},
			bson.D{{Key: "secondary_category", Value: filter.Category}},
		}})
	}
	return r.find(ctx, query)
}

// FindPending implements domain.ListingRepository
func (r *MongoListingRepository) FindPending(ctx context.Context) iter.Seq2[*domain.Listing, error] {
	return r.find(ctx, statusFilter(domain.StatusPending))
}

// SetApproved implements domain.ListingRepository
func (r *MongoListingRepository) SetApproved(ctx context.Context, id string) error {
	return r.transition(ctx, "approve listing", id, bson.D{{Key: "is_approved", Value: true}})
}

// SetRejected implements domain.ListingRepository
func (r *MongoListingRepository) SetRejected(ctx context.Context, id, reason string) error {
	return r.transition(ctx, "reject listing", id, bson.D{
		{Key: "is_rejected", Value: true},
		{Key: "rejection_reason", Value: reason},
	})
}

func (r *MongoListingRepository) transition(ctx context.Context, op, id string, set bson.D) error {
	set = append(set, bson.E{Key: "updated_at", Value: time.Now().UTC()})
	res, err := r.coll.UpdateOne(ctx,
		bson.D{{Key: "_id", Value: id}, {Key: "is_approved", Value: false}, {Key: "is_rejected", Value: false}},
		bson.D{{Key: "$set", Value: set}},
	)
	if err != nil {
		return domain.StorageError(op, err)
	}
	if res.MatchedCount > 0 {
		return nil
	}

	current, err := r.FindByID(ctx, id)
	if err != nil {
		return err
	}
	return classifyTransitionMiss(op, current)
}

func (r *MongoListingRepository) find(ctx context.Context, query bson.D) iter.Seq2[*domain.Listing, error] {
	return func(yield func(*domain.Listing, error) bool) {
		opts := options.Find().SetSort(bson.D{{Key: "created_at", Value: -1}, {Key: "_id", Value: 1}})
		cursor, err := r.coll.Find(ctx, query, opts)
		if err != nil {
			yield(nil, domain.StorageError("query listings", err))
			return
		}
		defer cursor.Close(ctx)

		for cursor.Next(ctx) {
			var doc MongoListing
			if err := cursor.Decode(&doc); err != nil {
				yield(nil, domain.StorageError("decode listing", err))
				return
			}
			if !yield(doc.toDomain(), nil) {
				return
			}
		}
		if err := cursor.Err(); err != nil {
			yield(nil, domain.StorageError("iterate listings", err))
		}
	}
}

func statusFilter(status domain.ListingStatus) bson.D {
	switch status {
	case domain.StatusApproved:
		return bson.D{{Key: "is_approved", Value: true}}
	case domain.StatusRejected:
		return bson.D{{Key: "is_rejected", Value: true}}
	case domain.StatusPending:
		return bson.D{{Key: "is_approved", Value: false}, {Key: "is_rejected", Value: false}}
	default:
		return bson.D{}
	}
}

func (d *MongoListing) toDomain() *domain.Listing {
	return &domain.Listing{
		ID:          d.ID,
		OwnerID:     d.OwnerID,
		OwnerName:   d.OwnerName,
		Offer:       d.Offer,
		Phone:       d.Phone,
		HouseNumber: d.HouseNumber,
		Category: domain.CategoryPair{
			Primary:   d.PrimaryCategory,
			Secondary: d.SecondaryCategory,
		},
		Description:     d.Description,
		Price:           d.Price,
		Delivery:        d.Delivery,
		ImageRef:        d.ImageRef,
		Date:            d.Date,
		IsApproved:      d.IsApproved,
		IsSponsored:     d.IsSponsored,
		IsRejected:      d.IsRejected,
		RejectionReason: d.RejectionReason,
		CreatedAt:       d.CreatedAt,
		UpdatedAt:       d.UpdatedAt,
	}
}
