package memory

import (
	"context"
	"sort"
	"sync"
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"

	"bookstore-backend/internal/model"
	"bookstore-backend/internal/repository"
)

type OrderRepository struct {
	mu     sync.RWMutex
	orders map[primitive.ObjectID]model.Order
}

func NewOrderRepository() *OrderRepository {
	return &OrderRepository{orders: make(map[primitive.ObjectID]model.Order)}
}

func (r *OrderRepository) Create(_ context.Context, order *model.Order) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if order.ID.IsZero() {
		order.ID = primitive.NewObjectID()
	}
	stored := *order
	stored.Items = append([]model.LineItem(nil), order.Items...)
	r.orders[order.ID] = stored
	return nil
}

func (r *OrderRepository) GetByID(_ context.Context, id string) (model.Order, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	oid, err := parseID(id)
	if err != nil {
		return model.Order{}, err
	}
	o, ok := r.orders[oid]
	if !ok {
		return model.Order{}, repository.ErrNotFound
	}
	return o, nil
}

func (r *OrderRepository) ListByEmail(_ context.Context, email string) ([]model.Order, error) {
	return r.filter(func(o model.Order) bool { return o.Email == email }), nil
}

func (r *OrderRepository) List(_ context.Context) ([]model.Order, error) {
	return r.filter(func(model.Order) bool { return true }), nil
}

func (r *OrderRepository) Recent(_ context.Context, limit int) ([]model.Order, error) {
	all := r.filter(func(model.Order) bool { return true })
	if len(all) > limit {
		all = all[:limit]
	}
	return all, nil
}

func (r *OrderRepository) UpdateStatus(_ context.Context, id string, upd repository.OrderStatusUpdate) (model.Order, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	oid, err := parseID(id)
	if err != nil {
		return model.Order{}, err
	}
	o, ok := r.orders[oid]
	if !ok {
		return model.Order{}, repository.ErrNotFound
	}
	assign(&o.Status, upd.Status)
	assign(&o.ShippingStatus, upd.ShippingStatus)
	o.UpdatedAt = upd.UpdatedAt
	r.orders[oid] = o
	return o, nil
}

func (r *OrderRepository) Count(_ context.Context) (int64, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return int64(len(r.orders)), nil
}

func (r *OrderRepository) CountByStatus(_ context.Context, status string) (int64, error) {
	return int64(len(r.filter(func(o model.Order) bool { return o.Status == status }))), nil
}

func (r *OrderRepository) TotalSales(_ context.Context) (float64, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	var total float64
	for _, o := range r.orders {
		total += o.TotalPrice
	}
	return total, nil
}

func (r *OrderRepository) SalesByMonth(_ context.Context) ([]model.MonthlySales, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	byMonth := make(map[string]*model.MonthlySales)
	for _, o := range r.orders {
		month := o.CreatedAt.UTC().Format("2006-01")
		m, ok := byMonth[month]
		if !ok {
			m = &model.MonthlySales{Month: month}
			byMonth[month] = m
		}
		m.TotalSales += o.TotalPrice
		m.OrderCount++
	}

	out := make([]model.MonthlySales, 0, len(byMonth))
	for _, m := range byMonth {
		out = append(out, *m)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Month < out[j].Month })
	return out, nil
}

func (r *OrderRepository) TopProducts(_ context.Context, from, to time.Time, limit int) ([]model.ProductSales, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	sold := make(map[string]int)
	for _, o := range r.orders {
		if o.CreatedAt.Before(from) || !o.CreatedAt.Before(to) {
			continue
		}
		for _, it := range o.Items {
			sold[it.ProductID] += it.Quantity
		}
	}

	out := make([]model.ProductSales, 0, len(sold))
	for id, n := range sold {
		out = append(out, model.ProductSales{ProductID: id, TotalSold: n})
	}
	sort.Slice(out, func(i, j int) bool {
		if out[i].TotalSold != out[j].TotalSold {
			return out[i].TotalSold > out[j].TotalSold
		}
		return out[i].ProductID < out[j].ProductID
	})
	if len(out) > limit {
		out = out[:limit]
	}
	return out, nil
}

func (r *OrderRepository) filter(keep func(model.Order) bool) []model.Order {
	r.mu.RLock()
	defer r.mu.RUnlock()
	out := []model.Order{}
	for _, o := range r.orders {
		if keep(o) {
			out = append(out, o)
		}
	}
	sortNewestFirst(out, func(o model.Order) (int64, primitive.ObjectID) { return o.CreatedAt.UnixNano(), o.ID })
	return out
}
