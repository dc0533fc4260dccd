package postgres

import (
	"context"
	"errors"
	"strings"
	"time"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/isaacnngt/pedido-unijovem/internal/domains/orders/domain"
	"github.com/isaacnngt/pedido-unijovem/internal/domains/orders/ports"
	"github.com/isaacnngt/pedido-unijovem/internal/shared/optional"
)

var _ ports.Repository = (*Repository)(nil)

// Repository persists orders through GORM. Queries stay portable so the same
// adapter serves PostgreSQL in production and SQLite for local runs.
type Repository struct {
	db *gorm.DB
}

// NewRepository wires a GORM-backed repository. Caller manages DB lifecycle and
// applies the schema through migrations.Run.
func NewRepository(db *gorm.DB) *Repository {
	return &Repository{db: db}
}

// OrderRecord maps the order aggregate to the pedidos table.
type OrderRecord struct {
	ID            int64     `gorm:"primaryKey;autoIncrement;column:id"`
	PersonName    string    `gorm:"column:nome_pessoa;not null"`
	SearchName    string    `gorm:"column:nome_busca;not null;index"`
	Quantity      int32     `gorm:"column:quantidade;not null"`
	PaymentMethod string    `gorm:"column:forma_pagamento"`
	Delivered     bool      `gorm:"column:entregue;not null;index"`
	OrderDate     time.Time `gorm:"column:data_pedido;not null;index"`
	CreatedAt     time.Time `gorm:"column:created_at"`
	UpdatedAt     time.Time `gorm:"column:updated_at"`
}

func (OrderRecord) TableName() string { return "pedidos" }

var likeEscaper = strings.NewReplacer(`\`, `\\`, `%`, `\%`, `_`, `\_`)

// Save inserts a new order or updates an existing one.
func (r *Repository) Save(ctx context.Context, order *domain.Order) (*domain.Order, error) {
	if err := r.ensureDB(); err != nil {
		return nil, err
	}
	if order == nil {
		return nil, errors.New("order is nil")
	}
	if err := order.Validate(); err != nil {
		return nil, err
	}
	record := toRecord(order)
	if err := r.db.WithContext(ctx).
		Clauses(clause.OnConflict{
			Columns: []clause.Column{{Name: "id"}},
			DoUpdates: clause.Assignments(map[string]any{
				"nome_pessoa":     record.PersonName,
				"nome_busca":      record.SearchName,
				"quantidade":      record.Quantity,
				"forma_pagamento": record.PaymentMethod,
				"entregue":        record.Delivered,
				"data_pedido":     record.OrderDate,
				"updated_at":      gorm.Expr("CURRENT_TIMESTAMP"),
			}),
		}).Create(&record).Error; err != nil {
		return nil, err
	}
	found, err := r.FindByID(ctx, record.ID)
	if err != nil {
		return nil, err
	}
	saved, ok := found.Get()
	if !ok {
		return nil, ports.ErrNotFound
	}
	return saved, nil
}

// FindByID fetches an order by identifier.
func (r *Repository) FindByID(ctx context.Context, id int64) (optional.Optional[*domain.Order], error) {
	if err := r.ensureDB(); err != nil {
		return optional.Empty[*domain.Order](), err
	}
	var record OrderRecord
	if err := r.db.WithContext(ctx).First(&record, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return optional.Empty[*domain.Order](), nil
		}
		return optional.Empty[*domain.Order](), err
	}
	return optional.Of(record.toDomain()), nil
}

// FindAll returns every order by ascending id.
func (r *Repository) FindAll(ctx context.Context) ([]*domain.Order, error) {
	return r.find(ctx, func(tx *gorm.DB) *gorm.DB { return tx.Order("id") })
}

// FindAllOrderedByDateDesc returns newest orders first.
func (r *Repository) FindAllOrderedByDateDesc(ctx context.Context) ([]*domain.Order, error) {
	return r.find(ctx, func(tx *gorm.DB) *gorm.DB {
		return tx.Order("data_pedido DESC").Order("id DESC")
	})
}

func (r *Repository) FindByDelivered(ctx context.Context, delivered bool) ([]*domain.Order, error) {
	return r.find(ctx, func(tx *gorm.DB) *gorm.DB {
		return tx.Where("entregue = ?", delivered).Order("id")
	})
}

// FindByNameContaining matches against the case-folded name column.
func (r *Repository) FindByNameContaining(ctx context.Context, fragment string) ([]*domain.Order, error) {
	pattern := "%" + likeEscaper.Replace(domain.FoldName(fragment)) + "%"
	return r.find(ctx, func(tx *gorm.DB) *gorm.DB {
		return tx.Where(`nome_busca LIKE ? ESCAPE '\'`, pattern).Order("id")
	})
}

func (r *Repository) CountByDelivered(ctx context.Context, delivered bool) (int64, error) {
	return r.count(ctx, func(tx *gorm.DB) *gorm.DB { return tx.Where("entregue = ?", delivered) })
}

func (r *Repository) Count(ctx context.Context) (int64, error) {
	return r.count(ctx, func(tx *gorm.DB) *gorm.DB { return tx })
}

func (r *Repository) ExistsByID(ctx context.Context, id int64) (bool, error) {
	n, err := r.count(ctx, func(tx *gorm.DB) *gorm.DB { return tx.Where("id = ?", id) })
	if err != nil {
		return false, err
	}
	return n > 0, nil
}

// DeleteByID removes an order. Deleting an absent id is not an error.
func (r *Repository) DeleteByID(ctx context.Context, id int64) error {
	if err := r.ensureDB(); err != nil {
		return err
	}
	return r.db.WithContext(ctx).Delete(&OrderRecord{}, id).Error
}

func (r *Repository) find(ctx context.Context, scope func(*gorm.DB) *gorm.DB) ([]*domain.Order, error) {
	if err := r.ensureDB(); err != nil {
		return nil, err
	}
	var records []OrderRecord
	if err := r.db.WithContext(ctx).Scopes(scope).Find(&records).Error; err != nil {
		return nil, err
	}
	orders := make([]*domain.Order, 0, len(records))
	for i := range records {
		orders = append(orders, records[i].toDomain())
	}
	return orders, nil
}

func (r *Repository) count(ctx context.Context, scope func(*gorm.DB) *gorm.DB) (int64, error) {
	if err := r.ensureDB(); err != nil {
		return 0, err
	}
	var n int64
	if err := r.db.WithContext(ctx).Model(&OrderRecord{}).Scopes(scope).Count(&n).Error; err != nil {
		return 0, err
	}
	return n, nil
}

func (r *Repository) ensureDB() error {
	if r == nil || r.db == nil {
		return errors.New("order repository not configured")
	}
	return nil
}

func toRecord(order *domain.Order) OrderRecord {
	return OrderRecord{
		ID:            order.ID,
		PersonName:    order.PersonName,
		SearchName:    order.SearchKey(),
		Quantity:      order.Quantity,
		PaymentMethod: order.PaymentMethod,
		Delivered:     order.Delivered,
		OrderDate:     order.OrderDate,
	}
}

func (r OrderRecord) toDomain() *domain.Order {
	return &domain.Order{
		ID:            r.ID,
		PersonName:    r.PersonName,
		Quantity:      r.Quantity,
		PaymentMethod: r.PaymentMethod,
		Delivered:     r.Delivered,
		OrderDate:     r.OrderDate.UTC(),
	}
}
