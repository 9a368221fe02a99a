package repositories

import (
	"context"
	"errors"
	"iter"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/fandressouza/indicacoes/domain"
)

// ListingRepositoryImpl implements domain.ListingRepository using GORM
type ListingRepositoryImpl struct {
	db *gorm.DB
}

// DBListing is the ads table row
type DBListing struct {
	ID                string `gorm:"primaryKey;size:36"`
	OwnerID           string `gorm:"index;size:36"`
	OwnerName         string `gorm:"size:255"`
	Offer             string `gorm:"size:255"`
	Phone             string `gorm:"size:64"`
	HouseNumber       string `gorm:"size:32"`
	PrimaryCategory   string `gorm:"index;size:64"`
	SecondaryCategory string `gorm:"index;size:64"`
	Description       string
	Price             int64
	Delivery          bool
	ImageRef          string
	Date              string `gorm:"size:10"`
	IsApproved        bool   `gorm:"index"`
	IsSponsored       bool
	IsRejected        bool `gorm:"index"`
	RejectionReason   string
	CreatedAt         time.Time `gorm:"index"`
	UpdatedAt         time.Time
}

// TableName returns the table name for GORM
func (DBListing) TableName() string {
	return "ads"
}

// NewListingRepository creates a new listing repository
func NewListingRepository(db *gorm.DB) domain.ListingRepository {
	return &ListingRepositoryImpl{db: db}
}

// Insert implements domain.ListingRepository
func (r *ListingRepositoryImpl) Insert(ctx context.Context, listing *domain.Listing) (string, error) {
	row := listingToDB(listing)
	row.ID = uuid.NewString()
	if err := r.db.WithContext(ctx).Create(row).Error; err != nil {
		return "", domain.StorageError("insert listing", err)
	}
	listing.ID = row.ID
	listing.CreatedAt = row.CreatedAt
	listing.UpdatedAt = row.UpdatedAt
	return row.ID, nil
}

// FindByID implements domain.ListingRepository
func (r *ListingRepositoryImpl) FindByID(ctx context.Context, id string) (*domain.Listing, error) {
	var row DBListing
	if err := r.db.WithContext(ctx).Where("id = ?", id).First(&row).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, domain.ErrNotFound
		}
		return nil, domain.StorageError("find listing", err)
	}
	return listingToDomain(&row), nil
}

// FindByCategory implements domain.ListingRepository
func (r *ListingRepositoryImpl) FindByCategory(ctx context.Context, filter domain.ListingFilter) iter.Seq2[*domain.Listing, error] {
	return r.scan(ctx, func(q *gorm.DB) *gorm.DB {
		if filter.Category != "" {
			q = q.Where("(primary_category = ? OR secondary_category = ?)", filter.Category, filter.Category)
		}
		return withStatus(q, filter.Status)
	})
}

// FindPending implements domain.ListingRepository
func (r *ListingRepositoryImpl) FindPending(ctx context.Context) iter.Seq2[*domain.Listing, error] {
	return r.scan(ctx, func(q *gorm.DB) *gorm.DB {
		return withStatus(q, domain.StatusPending)
	})
}

// SetApproved implements domain.ListingRepository
func (r *ListingRepositoryImpl) SetApproved(ctx context.Context, id string) error {
	return r.transition(ctx, "approve listing", id, map[string]any{"is_approved": true})
}

// SetRejected implements domain.ListingRepository
func (r *ListingRepositoryImpl) SetRejected(ctx context.Context, id, reason string) error {
	return r.transition(ctx, "reject listing", id, map[string]any{
		"is_rejected":      true,
		"rejection_reason": reason,
	})
}

// transition applies updates only while the listing is pending. The state check and the
// write are one statement, so concurrent moderators cannot both succeed.
func (r *ListingRepositoryImpl) transition(ctx context.Context, op, id string, updates map[string]any) error {
	res := r.db.WithContext(ctx).Model(&DBListing{}).
		Where("id = ? AND is_approved = ? AND is_rejected = ?", id, false, false).
		Updates(updates)
	if res.Error != nil {
		return domain.StorageError(op, res.Error)
	}
	if res.RowsAffected > 0 {
		return nil
	}

	current, err := r.FindByID(ctx, id)
	if err != nil {
		return err
	}
	return classifyTransitionMiss(op, current)
}

func (r *ListingRepositoryImpl) scan(ctx context.Context, scope func(*gorm.DB) *gorm.DB) iter.Seq2[*domain.Listing, error] {
	return func(yield func(*domain.Listing, error) bool) {
		q := scope(r.db.WithContext(ctx).Model(&DBListing{}))
		rows, err := q.Order("created_at DESC").Order("id").Rows()
		if err != nil {
			yield(nil, domain.StorageError("query listings", err))
			return
		}
		defer rows.Close()

		for rows.Next() {
			var row DBListing
			if err := r.db.ScanRows(rows, &row); err != nil {
				yield(nil, domain.StorageError("scan listing", err))
				return
			}
			if !yield(listingToDomain(&row), nil) {
				return
			}
		}
		if err := rows.Err(); err != nil {
			yield(nil, domain.StorageError("iterate listings", err))
		}
	}
}

func withStatus(q *gorm.DB, status domain.ListingStatus) *gorm.DB {
	switch status {
	case domain.StatusApproved:
		return q.Where("is_approved = ?", true)
	case domain.StatusRejected:
		return q.Where("is_rejected = ?", true)
	case domain.StatusPending:
		return q.Where("is_approved = ? AND is_rejected = ?", false, false)
	default:
		return q
	}
}

// classifyTransitionMiss explains why a pending-only update matched nothing
func classifyTransitionMiss(op string, current *domain.Listing) error {
	switch current.Status() {
	case domain.StatusApproved:
		return domain.ErrAlreadyApproved
	case domain.StatusRejected:
		return domain.ErrAlreadyRejected
	default:
		return domain.StorageError(op, errors.New("conditional update matched no rows"))
	}
}

func listingToDB(l *domain.Listing) *DBListing {
	return &DBListing{
		ID:                l.ID,
		OwnerID:           l.OwnerID,
		OwnerName:         l.OwnerName,
		Offer:             l.Offer,
		Phone:             l.Phone,
		HouseNumber:       l.HouseNumber,
		PrimaryCategory:   l.Category.Primary,
		SecondaryCategory: l.Category.Secondary,
		Description:       l.Description,
		Price:             l.Price,
		Delivery:          l.Delivery,
		ImageRef:          l.ImageRef,
		Date:              l.Date,
		IsApproved:        l.IsApproved,
		IsSponsored:       l.IsSponsored,
		IsRejected:        l.IsRejected,
		RejectionReason:   l.RejectionReason,
	}
}

func listingToDomain(row *DBListing) *domain.Listing {
	return &domain.Listing{
		ID:          row.ID,
		OwnerID:     row.OwnerID,
		OwnerName:   row.OwnerName,
		Offer:       row.Offer,
		Phone:       row.Phone,
		HouseNumber: row.HouseNumber,
		Category: domain.CategoryPair{
			Primary:   row.PrimaryCategory,
			Secondary: row.SecondaryCategory,
		},
		Description:     row.Description,
		Price:           row.Price,
		Delivery:        row.Delivery,
		ImageRef:        row.ImageRef,
		Date:            row.Date,
		IsApproved:      row.IsApproved,
		IsSponsored:     row.IsSponsored,
		IsRejected:      row.IsRejected,
		RejectionReason: row.RejectionReason,
		CreatedAt:       row.CreatedAt,
		UpdatedAt:       row.UpdatedAt,
	}
}
