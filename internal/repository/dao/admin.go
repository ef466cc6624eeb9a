package dao

import (
	"context"
	"errors"
	"time"

	"gorm.io/gorm"
)

var (
	ErrAdminUsernameExists = errors.New("admin username already exists")
	ErrAdminNotFound       = errors.New("admin not found")
)

type Admin struct {
	ID uint `gorm:"primaryKey"`

	Username     string `gorm:"size:64;uniqueIndex;not null"`
	PasswordHash string `gorm:"not null"`

	CreatedAt time.Time `gorm:"not null"`
	UpdatedAt time.Time `gorm:"not null"`
}

type AdminDAO struct {
	db *gorm.DB
}

func NewAdminDAO(db *gorm.DB) *AdminDAO {
	return &AdminDAO{
		db: db,
	}
}

func (d *AdminDAO) Insert(ctx context.Context, admin Admin) (Admin, error) {
	result := d.db.WithContext(ctx).Create(&admin)
	if result.Error != nil {
		if isUniqueViolation(result.Error) {
			return Admin{}, ErrAdminUsernameExists
		}

		return Admin{}, result.Error
	}

	return admin, nil
}

func (d *AdminDAO) FindByID(ctx context.Context, id uint) (Admin, error) {
	var admin Admin

	result := d.db.WithContext(ctx).First(&admin, id)
	if result.Error != nil {
		if errors.Is(result.Error, gorm.ErrRecordNotFound) {
			return Admin{}, ErrAdminNotFound
		}

		return Admin{}, result.Error
	}

	return admin, nil
}

func (d *AdminDAO) FindByUsername(ctx context.Context, username string) (Admin, error) {
	var admin Admin

	result := d.db.WithContext(ctx).Where("username = ?", username).First(&admin)
	if result.Error != nil {
		if errors.Is(result.Error, gorm.ErrRecordNotFound) {
			return Admin{}, ErrAdminNotFound
		}

		return Admin{}, result.Error
	}

	return admin, nil
}

func (d *AdminDAO) UpdatePassword(ctx context.Context, id uint, hash string) error {
	result := d.db.WithContext(ctx).Model(&Admin{}).Where("id = ?", id).Update("password_hash", hash)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return ErrAdminNotFound
	}

	return nil
}
