package repositories

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/fandressouza/indicacoes/domain"
)

// UserRepositoryImpl implements domain.UserRepository using GORM
type UserRepositoryImpl struct {
	db *gorm.DB
}

// DBUser represents the database model for User (with GORM tags)
type DBUser struct {
	ID           string    `gorm:"primaryKey;size:36"`
	Email        string    `gorm:"uniqueIndex;size:255;not null"`
	Name         string    `gorm:"size:255"`
	PasswordHash string    `gorm:"column:password;not null"`
	IsAdmin      bool      `gorm:"index"`
	IsBanned     bool      `gorm:"index"`
	CreatedAt    time.Time `gorm:"index"`
	UpdatedAt    time.Time
}

// TableName returns the table name for GORM
func (DBUser) TableName() string {
	return "users"
}

// NewUserRepository creates a new user repository
func NewUserRepository(db *gorm.DB) domain.UserRepository {
	return &UserRepositoryImpl{db: db}
}

// Create implements domain.UserRepository
func (r *UserRepositoryImpl) Create(ctx context.Context, user *domain.User) error {
	dbUser := r.domainToDB(user)
	if dbUser.ID == "" {
		dbUser.ID = uuid.NewString()
	}
	if err := r.db.WithContext(ctx).Create(dbUser).Error; err != nil {
		if isDuplicateKey(err) {
			return domain.ErrDuplicateEmail
		}
		return domain.StorageError("create user", err)
	}
	user.ID = dbUser.ID
	user.CreatedAt = dbUser.CreatedAt
	user.UpdatedAt = dbUser.UpdatedAt
	return nil
}

// FindByEmail implements domain.UserRepository
func (r *UserRepositoryImpl) FindByEmail(ctx context.Context, email string) (*domain.User, error) {
	return r.first(ctx, "find user by email", "email = ?", email)
}

// FindByID implements domain.UserRepository
func (r *UserRepositoryImpl) FindByID(ctx context.Context, id string) (*domain.User, error) {
	return r.first(ctx, "find user by id", "id = ?", id)
}

// SetBanned implements domain.UserRepository
func (r *UserRepositoryImpl) SetBanned(ctx context.Context, id string, banned bool) error {
	return r.setFlag(ctx, "set banned", id, "is_banned", banned)
}

// SetAdmin implements domain.UserRepository
func (r *UserRepositoryImpl) SetAdmin(ctx context.Context, id string, admin bool) error {
	return r.setFlag(ctx, "set admin", id, "is_admin", admin)
}

func (r *UserRepositoryImpl) first(ctx context.Context, op, query string, arg any) (*domain.User, error) {
	var dbUser DBUser
	err := r.db.WithContext(ctx).Where(query, arg).First(&dbUser).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, domain.ErrNoSuchUser
		}
		return nil, domain.StorageError(op, err)
	}
	return r.dbToDomain(&dbUser), nil
}

func (r *UserRepositoryImpl) setFlag(ctx context.Context, op, id, column string, value bool) error {
	res := r.db.WithContext(ctx).Model(&DBUser{}).Where("id = ?", id).Update(column, value)
	if res.Error != nil {
		return domain.StorageError(op, res.Error)
	}
	if res.RowsAffected == 0 {
		return domain.ErrNoSuchUser
	}
	return nil
}

// domainToDB converts domain user to database user
func (r *UserRepositoryImpl) domainToDB(user *domain.User) *DBUser {
	return &DBUser{
		ID:           user.ID,
		Email:        user.Email,
		Name:         user.Name,
		PasswordHash: user.PasswordHash,
		IsAdmin:      user.IsAdmin,
		IsBanned:     user.IsBanned,
	}
}

// dbToDomain converts database user to domain user
func (r *UserRepositoryImpl) dbToDomain(dbUser *DBUser) *domain.User {
	return &domain.User{
		ID:           dbUser.ID,
		Email:        dbUser.Email,
		Name:         dbUser.Name,
		PasswordHash: dbUser.PasswordHash,
		IsAdmin:      dbUser.IsAdmin,
		IsBanned:     dbUser.IsBanned,
		CreatedAt:    dbUser.CreatedAt,
		UpdatedAt:    dbUser.UpdatedAt,
	}
}
