package repository

import (
	"cartroyal/internal/models"

	"gorm.io/gorm"
)

type ProductRepository struct {
	db *gorm.DB
}

func NewProductRepository(db *gorm.DB) *ProductRepository {
	return &ProductRepository{db: db}
}

func (r *ProductRepository) Create(p *models.Product) error {
	return r.db.Create(p).Error
}

func (r *ProductRepository) GetByUUID(uuid string) (*models.Product, error) {
	var p models.Product
	err := r.db.Where("uuid = ?", uuid).First(&p).Error
	if err != nil {
		return nil, err
	}
	return &p, nil
}

func (r *ProductRepository) Update(p *models.Product) error {
	return r.db.Save(p).Error
}

func (r *ProductRepository) List(limit, offset int) ([]models.Product, int64, error) {
	var products []models.Product
	var count int64
	q := r.db.Model(&models.Product{}).Where("is_archived = ?", false)
	if err := q.Count(&count).Error; err != nil {
		return nil, 0, err
	}
	err := q.Order("created_at DESC").Limit(limit).Offset(offset).Find(&products).Error
	return products, count, err
}
