package repository

import (
	"errors"
	"fmt"
	"log"

	"codebot-backend/apperrors"
	"codebot-backend/models"

	"gorm.io/gorm"
)

// UserRepository is the account store. Resolve* calls are
// lookup-or-create on the external identity and report whether a new
// account was inserted.
type UserRepository interface {
	FindByID(id uint) (*models.User, error)
	FindByEmail(email string) (*models.User, error)
	Create(user *models.User) error
	ResolveByTelegramID(telegramID int64, username string) (*models.User, bool, error)
	ResolveByEmail(email string, username string) (*models.User, bool, error)
	UpgradeToPremium(id uint) (*models.User, error)
	ListAll() ([]models.User, error)
}

type userRepository struct {
	db        *gorm.DB
	freeLimit int
}

// NewUserRepository creates a gorm-backed UserRepository. freeLimit is
// the quota assigned to accounts created on first contact.
func NewUserRepository(db *gorm.DB, freeLimit int) UserRepository {
	return &userRepository{db: db, freeLimit: freeLimit}
}

func (r *userRepository) FindByID(id uint) (*models.User, error) {
	var user models.User
	if err := r.db.First(&user, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, fmt.Errorf("user %d: %w", id, apperrors.ErrNotFound)
		}
		return nil, fmt.Errorf("%w: fetch user %d: %v", apperrors.ErrStorage, id, err)
	}
	return &user, nil
}

func (r *userRepository) FindByEmail(email string) (*models.User, error) {
	var user models.User
	if err := r.db.Where("email = ?", email).First(&user).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, fmt.Errorf("user %s: %w", email, apperrors.ErrNotFound)
		}
		return nil, fmt.Errorf("%w: fetch user by email: %v", apperrors.ErrStorage, err)
	}
	return &user, nil
}

func (r *userRepository) Create(user *models.User) error {
	if user.FreeRequestsLimit == 0 {
		user.FreeRequestsLimit = r.freeLimit
	}
	if user.Role == "" {
		user.Role = "user"
	}
	if err := r.db.Create(user).Error; err != nil {
		return fmt.Errorf("%w: create user: %v", apperrors.ErrStorage, err)
	}
	return nil
}

func (r *userRepository) ResolveByTelegramID(telegramID int64, username string) (*models.User, bool, error) {
	return r.resolve("telegram_id = ?", telegramID, func() *models.User {
		id := telegramID
		return &models.User{TelegramID: &id, Username: username}
	})
}

func (r *userRepository) ResolveByEmail(email string, username string) (*models.User, bool, error) {
	return r.resolve("email = ?", email, func() *models.User {
		addr := email
		return &models.User{Email: &addr, Username: username}
	})
}

// resolve looks up an account by its external identity and inserts one
// on first contact. A lost insert race is resolved by re-reading: the
// unique index on the identity column rejects the duplicate, and the
// winner's row is returned instead.
func (r *userRepository) resolve(cond string, identity interface{}, newUser func() *models.User) (*models.User, bool, error) {
	var user models.User
	err := r.db.Where(cond, identity).First(&user).Error
	if err == nil {
		return &user, false, nil
	}
	if !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, false, fmt.Errorf("%w: lookup account: %v", apperrors.ErrStorage, err)
	}

	created := newUser()
	created.Role = "user"
	created.FreeRequestsLimit = r.freeLimit
	if err := r.db.Create(created).Error; err != nil {
		log.Printf("INFO: [UserRepository] Insert for identity %v lost a race, re-reading: %v", identity, err)
		if rerr := r.db.Where(cond, identity).First(&user).Error; rerr != nil {
			return nil, false, fmt.Errorf("%w: create account: %v", apperrors.ErrStorage, err)
		}
		return &user, false, nil
	}
	return created, true, nil
}

// UpgradeToPremium flips is_premium unconditionally for an existing
// account. Unknown ids are a NotFound, never a silent no-op.
func (r *userRepository) UpgradeToPremium(id uint) (*models.User, error) {
	res := r.db.Model(&models.User{}).Where("id = ?", id).Update("is_premium", true)
	if res.Error != nil {
		return nil, fmt.Errorf("%w: upgrade user %d: %v", apperrors.ErrStorage, id, res.Error)
	}
	if res.RowsAffected == 0 {
		return nil, fmt.Errorf("user %d: %w", id, apperrors.ErrNotFound)
	}
	return r.FindByID(id)
}

func (r *userRepository) ListAll() ([]models.User, error) {
	var users []models.User
	if err := r.db.Order("created_at desc").Find(&users).Error; err != nil {
		return nil, fmt.Errorf("%w: list users: %v", apperrors.ErrStorage, err)
	}
	return users, nil
}
