package repository

import (
	"cartroyal/internal/domain"
	"cartroyal/internal/models"

	"gorm.io/gorm"
)

type OrderRepository struct {
	db *gorm.DB
}

func NewOrderRepository(db *gorm.DB) *OrderRepository {
	return &OrderRepository{db: db}
}

func (r *OrderRepository) Create(o *models.Order) error {
	return r.db.Create(o).Error
}

func (r *OrderRepository) GetByUUID(uuid string) (*models.Order, error) {
	var o models.Order
	err := r.db.Where("uuid = ?", uuid).First(&o).Error
	if err != nil {
		return nil, err
	}
	return &o, nil
}

func (r *OrderRepository) GetByUUIDAndUser(uuid, userID string) (*models.Order, error) {
	var o models.Order
	err := r.db.Where("uuid = ? AND user_id = ?", uuid, userID).First(&o).Error
	if err != nil {
		return nil, err
	}
	return &o, nil
}

// AdvanceStatus moves an order to the next status only while its current
// status is one of from. Transitions are forward-only; re-applying a step is
// a no-op and the caller learns it lost via the false return.
func (r *OrderRepository) AdvanceStatus(uuid string, to domain.OrderStatus, from ...domain.OrderStatus) (bool, error) {
	res := r.db.Model(&models.Order{}).
		Where("uuid = ? AND status IN ?", uuid, from).
		Update("status", to)
	if res.Error != nil {
		return false, res.Error
	}
	return res.RowsAffected > 0, nil
}

func (r *OrderRepository) List(limit, offset int) ([]models.Order, int64, error) {
	var orders []models.Order
	var count int64
	if err := r.db.Model(&models.Order{}).Count(&count).Error; err != nil {
		return nil, 0, err
	}
	err := r.db.Order("created_at DESC").Limit(limit).Offset(offset).Find(&orders).Error
	return orders, count, err
}

func (r *OrderRepository) ListByUser(userID string, limit, offset int) ([]models.Order, int64, error) {
	var orders []models.Order
	var count int64
	q := r.db.Model(&models.Order{}).Where("user_id = ?", userID)
	if err := q.Count(&count).Error; err != nil {
		return nil, 0, err
	}
	err := q.Order("created_at DESC").Limit(limit).Offset(offset).Find(&orders).Error
	return orders, count, err
}
