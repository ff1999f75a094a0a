package repository

import (
	"errors"
	"time"

	"foodnow-api/models"

	"gorm.io/gorm"
)

type UserRepository struct{ DB *gorm.DB }

func NewUserRepository(db *gorm.DB) *UserRepository { return &UserRepository{DB: db} }

// WithTx returns a copy bound to the given transaction
func (r *UserRepository) WithTx(tx *gorm.DB) *UserRepository { return &UserRepository{DB: tx} }

func (r *UserRepository) Create(u *models.User) error {
	return r.DB.Create(u).Error
}

func (r *UserRepository) FindByID(id uint) (*models.User, error) {
	var u models.User
	if err := r.DB.First(&u, id).Error; err != nil {
		return nil, err
	}
	return &u, nil
}

func (r *UserRepository) FindByEmail(email string) (*models.User, error) {
	var u models.User
	if err := r.DB.Where("email = ?", email).First(&u).Error; err != nil {
		return nil, err
	}
	return &u, nil
}

func (r *UserRepository) ExistsByEmail(email string) (bool, error) {
	var count int64
	err := r.DB.Model(&models.User{}).Where("email = ?", email).Count(&count).Error
	return count > 0, err
}

// FindByIDs loads users keyed by id, used to project names onto lists
func (r *UserRepository) FindByIDs(ids []uint) (map[uint]models.User, error) {
	out := make(map[uint]models.User, len(ids))
	if len(ids) == 0 {
		return out, nil
	}
	var users []models.User
	if err := r.DB.Where("id IN ?", ids).Find(&users).Error; err != nil {
		return nil, err
	}
	for _, u := range users {
		out[u.ID] = u
	}
	return out, nil
}

func (r *UserRepository) List() ([]models.User, error) {
	var users []models.User
	err := r.DB.Order("id asc").Find(&users).Error
	return users, err
}

func (r *UserRepository) ListByRole(role models.UserRole) ([]models.User, error) {
	var users []models.User
	err := r.DB.Where("role = ?", role).Order("id asc").Find(&users).Error
	return users, err
}

func (r *UserRepository) UpdateRole(id uint, role models.UserRole) error {
	return r.DB.Model(&models.User{}).Where("id = ?", id).Update("role", role).Error
}

func (r *UserRepository) UpdatePassword(id uint, hash string) error {
	return r.DB.Model(&models.User{}).Where("id = ?", id).Update("password_hash", hash).Error
}

func (r *UserRepository) UpdateProfile(id uint, name, phone string) error {
	return r.DB.Model(&models.User{}).Where("id = ?", id).
		Updates(map[string]interface{}{"name": name, "phone": phone}).Error
}

func (r *UserRepository) UpdateDeliveryStatus(id uint, status models.DeliveryStatus) error {
	return r.DB.Model(&models.User{}).Where("id = ?", id).Update("delivery_status", status).Error
}

// ── Password reset tokens ──

type TokenRepository struct{ DB *gorm.DB }

func NewTokenRepository(db *gorm.DB) *TokenRepository { return &TokenRepository{DB: db} }

func (r *TokenRepository) WithTx(tx *gorm.DB) *TokenRepository { return &TokenRepository{DB: tx} }

// Replace drops any previous token of the user and stores a new one
func (r *TokenRepository) Replace(userID uint, token string, expiresAt time.Time) (*models.PasswordResetToken, error) {
	if err := r.DeleteByUser(userID); err != nil {
		return nil, err
	}
	t := models.PasswordResetToken{Token: token, UserID: userID, ExpiresAt: expiresAt}
	if err := r.DB.Create(&t).Error; err != nil {
		return nil, err
	}
	return &t, nil
}

func (r *TokenRepository) FindByToken(token string) (*models.PasswordResetToken, error) {
	var t models.PasswordResetToken
	if err := r.DB.Where("token = ?", token).First(&t).Error; err != nil {
		return nil, err
	}
	return &t, nil
}

func (r *TokenRepository) Delete(id uint) error {
	return r.DB.Delete(&models.PasswordResetToken{}, id).Error
}

func (r *TokenRepository) DeleteByUser(userID uint) error {
	return r.DB.Where("user_id = ?", userID).Delete(&models.PasswordResetToken{}).Error
}

// IsNotFound reports whether err is gorm's missing-row error
func IsNotFound(err error) bool {
	return errors.Is(err, gorm.ErrRecordNotFound)
}
