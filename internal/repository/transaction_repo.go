package repository

import (
	"cartroyal/internal/domain"
	"cartroyal/internal/models"

	"gorm.io/gorm"
)

type TransactionRepository struct {
	db *gorm.DB
}

func NewTransactionRepository(db *gorm.DB) *TransactionRepository {
	return &TransactionRepository{db: db}
}

func (r *TransactionRepository) Create(t *models.Transaction) error {
	return r.db.Create(t).Error
}

func (r *TransactionRepository) GetByRef(ref string) (*models.Transaction, error) {
	var t models.Transaction
	err := r.db.Where("ref = ?", ref).First(&t).Error
	if err != nil {
		return nil, err
	}
	return &t, nil
}

func (r *TransactionRepository) GetByTransactionID(id string) (*models.Transaction, error) {
	var t models.Transaction
	err := r.db.Where("transaction_id = ?", id).First(&t).Error
	if err != nil {
		return nil, err
	}
	return &t, nil
}

func (r *TransactionRepository) Update(t *models.Transaction) error {
	return r.db.Save(t).Error
}

// VerifiedFields are the gateway-confirmed values committed on reconciliation.
type VerifiedFields struct {
	TransactionID string
	Status        domain.PaymentStatus
	Amount        float64
	Fee           float64
	AmountSettled float64
	IP            string
}

// MarkVerified commits verified fields only while the row has not already
// been settled. The conditional write makes racing reconciliations of the
// same ref resolve to a single winner; it reports whether this call won.
func (r *TransactionRepository) MarkVerified(ref string, f VerifiedFields) (bool, error) {
	res := r.db.Model(&models.Transaction{}).
		Where("ref = ? AND status <> ?", ref, domain.PaymentSuccessful).
		Updates(map[string]interface{}{
			"transaction_id": f.TransactionID,
			"status":         f.Status,
			"amount":         f.Amount,
			"fee":            f.Fee,
			"amount_settled": f.AmountSettled,
			"ip":             f.IP,
		})
	if res.Error != nil {
		return false, res.Error
	}
	return res.RowsAffected > 0, nil
}
