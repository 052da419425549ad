package store

import (
	"context"
	"errors"
	"fmt"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/sealjuli/Library/pkg/models"
)

// UserRepository reads and writes users and their checkouts.
type UserRepository struct {
	db *gorm.DB
}

// NewUserRepository creates a UserRepository over db.
func NewUserRepository(db *gorm.DB) *UserRepository {
	return &UserRepository{db: db}
}

// Create inserts user unless the email is already taken, in which case it
// returns ErrDuplicateEmail. The check and the insert are one statement, so
// concurrent creations with the same email cannot both succeed.
func (r *UserRepository) Create(ctx context.Context, user *models.User) (*models.User, error) {
	res := r.db.WithContext(ctx).
		Clauses(clause.OnConflict{
			Columns:   []clause.Column{{Name: "email"}},
			DoNothing: true,
		}).
		Create(user)
	if err := res.Error; err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return nil, ErrDuplicateEmail
		}
		return nil, fmt.Errorf("create user: %w", err)
	}
	if res.RowsAffected == 0 {
		return nil, ErrDuplicateEmail
	}
	return user, nil
}

// FindByID returns ErrNotFound when no user has the id.
func (r *UserRepository) FindByID(ctx context.Context, id string) (*models.User, error) {
	var user models.User
	if err := r.db.WithContext(ctx).Where("id = ?", id).First(&user).Error; err != nil {
		return nil, notFound(err)
	}
	return &user, nil
}

// FindByEmail returns ErrNotFound when no user has the email.
func (r *UserRepository) FindByEmail(ctx context.Context, email string) (*models.User, error) {
	var user models.User
	if err := r.db.WithContext(ctx).Where("email = ?", email).First(&user).Error; err != nil {
		return nil, notFound(err)
	}
	return &user, nil
}

// List returns every user, or one window of them when page is set.
func (r *UserRepository) List(ctx context.Context, page int) ([]models.User, error) {
	var users []models.User
	err := r.db.WithContext(ctx).
		Scopes(creationOrder, Paginate(page)).
		Find(&users).Error
	if err != nil {
		return nil, fmt.Errorf("list users: %w", err)
	}
	if users == nil {
		users = []models.User{}
	}
	return users, nil
}

// Count returns the number of users.
func (r *UserRepository) Count(ctx context.Context) (int64, error) {
	var n int64
	if err := r.db.WithContext(ctx).Model(&models.User{}).Count(&n).Error; err != nil {
		return 0, fmt.Errorf("count users: %w", err)
	}
	return n, nil
}

// UpdateName sets the name of the user with id.
func (r *UserRepository) UpdateName(ctx context.Context, id, name string) error {
	err := r.db.WithContext(ctx).Model(&models.User{}).
		Where("id = ?", id).
		Update("name", name).Error
	if err != nil {
		return fmt.Errorf("update user name: %w", err)
	}
	return nil
}

// Delete removes the user with id.
func (r *UserRepository) Delete(ctx context.Context, id string) error {
	if err := r.db.WithContext(ctx).Where("id = ?", id).Delete(&models.User{}).Error; err != nil {
		return fmt.Errorf("delete user: %w", err)
	}
	return nil
}

// CreateCheckout records that userID took bookID. Neither id is looked up
// first and repeated checkouts are allowed; a foreign key rejected by the
// database yields ErrUnknownReference.
func (r *UserRepository) CreateCheckout(ctx context.Context, userID, bookID string) (*models.UserBook, error) {
	checkout := &models.UserBook{UserID: userID, BookID: bookID}
	if err := r.db.WithContext(ctx).Omit(clause.Associations).Create(checkout).Error; err != nil {
		if errors.Is(err, gorm.ErrForeignKeyViolated) {
			return nil, ErrUnknownReference
		}
		return nil, fmt.Errorf("create checkout: %w", err)
	}
	return checkout, nil
}
