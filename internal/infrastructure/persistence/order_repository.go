package persistence

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/talalabbas84/spledid-beauty-sub000/internal/domain/shared"
	"github.com/talalabbas84/spledid-beauty-sub000/internal/domain/trade"
	"github.com/talalabbas84/spledid-beauty-sub000/internal/infrastructure/persistence/models"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// OrderNumberPrefix prefixes every marketplace order number
const OrderNumberPrefix = "MO"

// GormOrderRepository implements OrderRepository using GORM
type GormOrderRepository struct {
	db  *gorm.DB
	now func() time.Time
}

// NewGormOrderRepository creates a new GormOrderRepository
func NewGormOrderRepository(db *gorm.DB) *GormOrderRepository {
	return &GormOrderRepository{db: db, now: time.Now}
}

// FindByID finds an order by its ID
func (r *GormOrderRepository) FindByID(ctx context.Context, id uuid.UUID) (*trade.Order, error) {
	var model models.OrderModel
	if err := r.db.WithContext(ctx).First(&model, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, shared.ErrNotFound
		}
		return nil, err
	}
	return model.ToDomain(), nil
}

// FindByIDForUpdate loads an order and holds its row lock until the
// surrounding transaction ends. SQLite has no row locks and serializes writers.
func (r *GormOrderRepository) FindByIDForUpdate(ctx context.Context, id uuid.UUID) (*trade.Order, error) {
	var model models.OrderModel
	if err := r.db.WithContext(ctx).
		Clauses(clause.Locking{Strength: "UPDATE"}).
		First(&model, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, shared.ErrNotFound
		}
		return nil, err
	}
	return model.ToDomain(), nil
}

// FindByCustomer lists a customer's orders, newest first by default
func (r *GormOrderRepository) FindByCustomer(ctx context.Context, customerID uuid.UUID, filter shared.Filter) ([]trade.Order, error) {
	var orderModels []models.OrderModel
	query := r.customerScope(r.db.WithContext(ctx).Model(&models.OrderModel{}), customerID, filter)
	query = paginate(query, filter, OrderSortFields, "created_at")

	if err := query.Find(&orderModels).Error; err != nil {
		return nil, err
	}
	orders := make([]trade.Order, len(orderModels))
	for i := range orderModels {
		orders[i] = *orderModels[i].ToDomain()
	}
	return orders, nil
}

// CountByCustomer counts a customer's orders matching the filter
func (r *GormOrderRepository) CountByCustomer(ctx context.Context, customerID uuid.UUID, filter shared.Filter) (int64, error) {
	var count int64
	query := r.customerScope(r.db.WithContext(ctx).Model(&models.OrderModel{}), customerID, filter)
	if err := query.Count(&count).Error; err != nil {
		return 0, err
	}
	return count, nil
}

func (r *GormOrderRepository) customerScope(query *gorm.DB, customerID uuid.UUID, filter shared.Filter) *gorm.DB {
	query = query.Where("customer_id = ?", customerID)
	if status, ok := filter.Filters["status"]; ok {
		query = query.Where("status = ?", status)
	}
	if filter.Search != "" {
		query = query.Where("order_number LIKE ?", "%"+filter.Search+"%")
	}
	return query
}

// Save inserts a new order
func (r *GormOrderRepository) Save(ctx context.Context, order *trade.Order) error {
	model := &models.OrderModel{}
	model.FromDomain(order)
	return r.db.WithContext(ctx).Create(model).Error
}

// UpdateStatus persists the roll-up status. Callers load the order with
// FindByIDForUpdate in the same transaction, which serializes sibling
// vendor orders recomputing the same parent.
func (r *GormOrderRepository) UpdateStatus(ctx context.Context, order *trade.Order) error {
	result := r.db.WithContext(ctx).
		Model(&models.OrderModel{}).
		Where("id = ?", order.ID).
		Updates(map[string]interface{}{
			"status":     order.Status,
			"version":    order.Version,
			"updated_at": order.UpdatedAt,
		})
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return shared.ErrNotFound
	}
	return nil
}

// GenerateOrderNumber allocates the next order number for today from the
// per-day counter row. Concurrent checkouts serialize on that row, so two
// callers never receive the same number.
// Format: MO-YYYYMMDD-NNNNN (e.g., MO-20260315-00001)
func (r *GormOrderRepository) GenerateOrderNumber(ctx context.Context) (string, error) {
	seq := models.OrderNumberSequenceModel{
		Day:       r.now().UTC().Format("20060102"),
		LastValue: 1,
	}
	err := r.db.WithContext(ctx).
		Clauses(
			clause.OnConflict{
				Columns: []clause.Column{{Name: "day"}},
				DoUpdates: clause.Assignments(map[string]interface{}{
					"last_value": gorm.Expr("order_number_sequences.last_value + 1"),
				}),
			},
			clause.Returning{Columns: []clause.Column{{Name: "last_value"}}},
		).
		Create(&seq).Error
	if err != nil {
		return "", err
	}

	return fmt.Sprintf("%s-%s-%05d", OrderNumberPrefix, seq.Day, seq.LastValue), nil
}

// Ensure GormOrderRepository implements OrderRepository
var _ trade.OrderRepository = (*GormOrderRepository)(nil)
