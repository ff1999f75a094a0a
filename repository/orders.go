package repository

import (
	"foodnow-api/models"

	"gorm.io/gorm"
)

type OrderRepository struct{ DB *gorm.DB }

func NewOrderRepository(db *gorm.DB) *OrderRepository { return &OrderRepository{DB: db} }

func (r *OrderRepository) WithTx(tx *gorm.DB) *OrderRepository { return &OrderRepository{DB: tx} }

// Create stores the order and its items
func (r *OrderRepository) Create(o *models.Order) error {
	if err := r.DB.Create(o).Error; err != nil {
		return err
	}
	for i := range o.Items {
		o.Items[i].OrderID = o.ID
	}
	if len(o.Items) == 0 {
		return nil
	}
	return r.DB.Create(&o.Items).Error
}

func (r *OrderRepository) FindByID(id uint) (*models.Order, error) {
	var o models.Order
	if err := r.DB.First(&o, id).Error; err != nil {
		return nil, err
	}
	return &o, nil
}

func (r *OrderRepository) FindForCustomer(id, customerID uint) (*models.Order, error) {
	var o models.Order
	if err := r.DB.Where("id = ? AND customer_id = ?", id, customerID).First(&o).Error; err != nil {
		return nil, err
	}
	return &o, nil
}

// OrderFilter narrows List; zero values are ignored
type OrderFilter struct {
	CustomerID          uint
	RestaurantID        uint
	DeliveryPersonnelID uint
	Status              models.OrderStatus
	Unassigned          bool
}

func (r *OrderRepository) List(f OrderFilter) ([]models.Order, error) {
	q := r.DB.Model(&models.Order{})
	if f.CustomerID != 0 {
		q = q.Where("customer_id = ?", f.CustomerID)
	}
	if f.RestaurantID != 0 {
		q = q.Where("restaurant_id = ?", f.RestaurantID)
	}
	if f.DeliveryPersonnelID != 0 {
		q = q.Where("delivery_personnel_id = ?", f.DeliveryPersonnelID)
	}
	if f.Status != "" {
		q = q.Where("status = ?", f.Status)
	}
	if f.Unassigned {
		q = q.Where("delivery_personnel_id IS NULL")
	}

	var orders []models.Order
	if err := q.Order("order_time desc, id desc").Find(&orders).Error; err != nil {
		return nil, err
	}
	return orders, r.attachItems(orders)
}

// LoadItems fills o.Items
func (r *OrderRepository) LoadItems(o *models.Order) error {
	return r.DB.Where("order_id = ?", o.ID).Order("id asc").Find(&o.Items).Error
}

func (r *OrderRepository) attachItems(orders []models.Order) error {
	if len(orders) == 0 {
		return nil
	}
	ids := make([]uint, len(orders))
	for i, o := range orders {
		ids[i] = o.ID
	}
	var items []models.OrderItem
	if err := r.DB.Where("order_id IN ?", ids).Order("id asc").Find(&items).Error; err != nil {
		return err
	}
	byOrder := map[uint][]models.OrderItem{}
	for _, it := range items {
		byOrder[it.OrderID] = append(byOrder[it.OrderID], it)
	}
	for i := range orders {
		orders[i].Items = byOrder[orders[i].ID]
	}
	return nil
}

func (r *OrderRepository) UpdateStatus(id uint, status models.OrderStatus) error {
	return r.DB.Model(&models.Order{}).Where("id = ?", id).Update("status", status).Error
}

// ClaimForDelivery assigns the courier only if nobody has claimed the order yet.
// It returns false when the guarded update matched no row.
func (r *OrderRepository) ClaimForDelivery(id, courierID uint) (bool, error) {
	res := r.DB.Model(&models.Order{}).
		Where("id = ? AND status = ? AND delivery_personnel_id IS NULL", id, models.StatusReadyForPickup).
		Updates(map[string]interface{}{
			"delivery_personnel_id": courierID,
			"status":                models.StatusOutForDelivery,
		})
	return res.RowsAffected == 1, res.Error
}

func (r *OrderRepository) AddHistory(h *models.OrderStatusHistory) error {
	return r.DB.Create(h).Error
}

func (r *OrderRepository) History(orderID uint) ([]models.OrderStatusHistory, error) {
	var hist []models.OrderStatusHistory
	err := r.DB.Where("order_id = ?", orderID).Order("id asc").Find(&hist).Error
	return hist, err
}

// StatusCounts groups a restaurant's orders by status
func (r *OrderRepository) StatusCounts(restaurantID uint) (map[models.OrderStatus]int64, error) {
	var rows []struct {
		Status models.OrderStatus
		Count  int64
	}
	err := r.DB.Model(&models.Order{}).
		Select("status, COUNT(*) AS count").
		Where("restaurant_id = ?", restaurantID).
		Group("status").
		Scan(&rows).Error
	if err != nil {
		return nil, err
	}
	out := map[models.OrderStatus]int64{}
	for _, row := range rows {
		out[row.Status] = row.Count
	}
	return out, nil
}

// Revenue sums delivered order totals for a restaurant
func (r *OrderRepository) Revenue(restaurantID uint) (float64, error) {
	var total float64
	err := r.DB.Model(&models.Order{}).
		Select("COALESCE(SUM(total_price), 0)").
		Where("restaurant_id = ? AND status = ?", restaurantID, models.StatusDelivered).
		Scan(&total).Error
	return total, err
}

// ── Payments ──

type PaymentRepository struct{ DB *gorm.DB }

func NewPaymentRepository(db *gorm.DB) *PaymentRepository { return &PaymentRepository{DB: db} }

func (r *PaymentRepository) WithTx(tx *gorm.DB) *PaymentRepository {
	return &PaymentRepository{DB: tx}
}

func (r *PaymentRepository) Create(p *models.Payment) error {
	return r.DB.Create(p).Error
}

// LatestSuccessful returns the most recent SUCCESSFUL payment of an order
func (r *PaymentRepository) LatestSuccessful(orderID uint) (*models.Payment, error) {
	var p models.Payment
	err := r.DB.Where("order_id = ? AND status = ?", orderID, models.PaymentSuccessful).
		Order("payment_time desc, id desc").
		First(&p).Error
	if err != nil {
		return nil, err
	}
	return &p, nil
}

func (r *PaymentRepository) UpdateStatus(id uint, status models.PaymentStatus) error {
	return r.DB.Model(&models.Payment{}).Where("id = ?", id).Update("status", status).Error
}

func (r *PaymentRepository) ListByOrder(orderID uint) ([]models.Payment, error) {
	var ps []models.Payment
	err := r.DB.Where("order_id = ?", orderID).Order("payment_time asc, id asc").Find(&ps).Error
	return ps, err
}
