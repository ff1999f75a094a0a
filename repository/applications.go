package repository

import (
	"foodnow-api/models"

	"gorm.io/gorm"
)

type ApplicationRepository struct{ DB *gorm.DB }

func NewApplicationRepository(db *gorm.DB) *ApplicationRepository {
	return &ApplicationRepository{DB: db}
}

func (r *ApplicationRepository) WithTx(tx *gorm.DB) *ApplicationRepository {
	return &ApplicationRepository{DB: tx}
}

func (r *ApplicationRepository) Create(app *models.RestaurantApplication) error {
	return r.DB.Create(app).Error
}

func (r *ApplicationRepository) Save(app *models.RestaurantApplication) error {
	return r.DB.Save(app).Error
}

func (r *ApplicationRepository) FindByID(id uint) (*models.RestaurantApplication, error) {
	var app models.RestaurantApplication
	if err := r.DB.First(&app, id).Error; err != nil {
		return nil, err
	}
	return &app, nil
}

func (r *ApplicationRepository) ExistsForApplicant(userID uint) (bool, error) {
	var count int64
	err := r.DB.Model(&models.RestaurantApplication{}).Where("applicant_id = ?", userID).Count(&count).Error
	return count > 0, err
}

func (r *ApplicationRepository) FindByStatus(status models.ApplicationStatus) ([]models.RestaurantApplication, error) {
	var apps []models.RestaurantApplication
	err := r.DB.Where("status = ?", status).Order("created_at asc, id asc").Find(&apps).Error
	return apps, err
}
