package service

import (
	"context"

	"go.uber.org/zap"

	"bookstore-backend/internal/apperr"
	"bookstore-backend/internal/model"
	"bookstore-backend/internal/repository"
	"bookstore-backend/internal/validation"
)

type OrderItemInput struct {
	ProductID  string  `json:"productId" validate:"required"`
	Title      string  `json:"title"`
	CoverImage string  `json:"coverImage"`
	Price      float64 `json:"price" validate:"gte=0"`
	Quantity   int     `json:"quantity" validate:"gte=1"`
}

type OrderInput struct {
	// UserID is the purchaser's external identity id; when present the cart is cleared after checkout.
	UserID     string                `json:"userId"`
	Name       string                `json:"name" validate:"required"`
	Email      string                `json:"email" validate:"required,email"`
	Phone      string                `json:"phone"`
	Address    model.ShippingAddress `json:"address"`
	Items      []OrderItemInput      `json:"items" validate:"required,min=1,dive"`
	TotalPrice float64               `json:"totalPrice" validate:"gte=0"`
}

type OrderStatusInput struct {
	Status         *string `json:"status" validate:"omitnil,min=1"`
	ShippingStatus *string `json:"shippingStatus" validate:"omitnil,min=1"`
}

// OrderItemDetail is a line item with the referenced book, when it still exists.
type OrderItemDetail struct {
	model.LineItem
	Product *model.Book `json:"product,omitempty"`
}

// OrderDetail is an order whose items carry their resolved books.
type OrderDetail struct {
	model.Order
	Items []OrderItemDetail `json:"items"`
}

type OrderService struct {
	orders   repository.OrderRepository
	books    repository.BookRepository
	carts    repository.CartRepository
	validate *validation.Validator
	logger   *zap.Logger
	now      Clock
}

func NewOrderService(
	orders repository.OrderRepository,
	books repository.BookRepository,
	carts repository.CartRepository,
	v *validation.Validator,
	logger *zap.Logger,
) *OrderService {
	return &OrderService{orders: orders, books: books, carts: carts, validate: v, logger: logger, now: utcNow}
}

// Create stores the order and then decrements the stock of every referenced
// book by the item quantity. The decrements are neither transactional with the
// insert nor bounded by the current stock; a failed decrement is logged and
// the order stands.
func (s *OrderService) Create(ctx context.Context, in OrderInput) (model.Order, error) {
	for i := range in.Items {
		if in.Items[i].Quantity == 0 {
			in.Items[i].Quantity = 1
		}
	}
	if err := s.validate.Validate(in); err != nil {
		return model.Order{}, err
	}

	now := s.now()
	order := model.Order{
		UserID:         in.UserID,
		Name:           in.Name,
		Email:          in.Email,
		Phone:          in.Phone,
		Address:        in.Address,
		Items:          make([]model.LineItem, 0, len(in.Items)),
		TotalPrice:     in.TotalPrice,
		Status:         model.OrderStatusPending,
		ShippingStatus: model.ShippingStatusProcessing,
		CreatedAt:      now,
		UpdatedAt:      now,
	}
	for _, it := range in.Items {
		order.Items = append(order.Items, model.LineItem{
			ProductID:  it.ProductID,
			Title:      it.Title,
			CoverImage: it.CoverImage,
			Price:      it.Price,
			Quantity:   it.Quantity,
		})
	}

	if err := s.orders.Create(ctx, &order); err != nil {
		return model.Order{}, apperr.Internal(err, "failed to create order")
	}
	s.logger.Info("Order created",
		zap.String("order_id", order.ID.Hex()),
		zap.String("email", order.Email),
		zap.Int("items", len(order.Items)))

	for _, it := range order.Items {
		if err := s.books.DecrementStock(ctx, it.ProductID, it.Quantity); err != nil {
			s.logger.Warn("Stock decrement failed",
				zap.String("order_id", order.ID.Hex()),
				zap.String("product_id", it.ProductID),
				zap.Int("quantity", it.Quantity),
				zap.Error(err))
		}
	}

	if order.UserID != "" {
		cart := model.Cart{UserID: order.UserID, Items: []model.LineItem{}, CreatedAt: now, UpdatedAt: now}
		if err := s.carts.Save(ctx, &cart); err != nil {
			s.logger.Warn("Cart clear after checkout failed", zap.String("user_id", order.UserID), zap.Error(err))
		}
	}

	return order, nil
}

// ListByEmail returns the purchaser's orders newest first with product
// references expanded. No orders is reported as not found.
func (s *OrderService) ListByEmail(ctx context.Context, email string) ([]OrderDetail, error) {
	orders, err := s.orders.ListByEmail(ctx, email)
	if err != nil {
		return nil, apperr.Internal(err, "failed to fetch orders")
	}
	if len(orders) == 0 {
		return nil, apperr.NotFound("no orders found for this email")
	}
	return s.expand(ctx, orders)
}

// List returns every order, newest first.
func (s *OrderService) List(ctx context.Context) ([]model.Order, error) {
	orders, err := s.orders.List(ctx)
	if err != nil {
		return nil, apperr.Internal(err, "failed to fetch orders")
	}
	return orders, nil
}

func (s *OrderService) Get(ctx context.Context, id string) (OrderDetail, error) {
	order, err := s.orders.GetByID(ctx, id)
	if err != nil {
		return OrderDetail{}, lookupErr(err, "order not found", "failed to fetch order")
	}
	details, err := s.expand(ctx, []model.Order{order})
	if err != nil {
		return OrderDetail{}, err
	}
	return details[0], nil
}

// UpdateStatus overwrites status and/or shippingStatus. Values are free text.
func (s *OrderService) UpdateStatus(ctx context.Context, id string, in OrderStatusInput) (model.Order, error) {
	if err := s.validate.Validate(in); err != nil {
		return model.Order{}, err
	}
	if in.Status == nil && in.ShippingStatus == nil {
		return model.Order{}, apperr.Validation("status or shippingStatus is required")
	}
	order, err := s.orders.UpdateStatus(ctx, id, repository.OrderStatusUpdate{
		Status:         in.Status,
		ShippingStatus: in.ShippingStatus,
		UpdatedAt:      s.now(),
	})
	if err != nil {
		return model.Order{}, lookupErr(err, "order not found", "failed to update order status")
	}
	s.logger.Info("Order status updated",
		zap.String("order_id", id),
		zap.String("status", order.Status),
		zap.String("shipping_status", order.ShippingStatus))
	return order, nil
}

func (s *OrderService) expand(ctx context.Context, orders []model.Order) ([]OrderDetail, error) {
	seen := make(map[string]struct{})
	var ids []string
	for _, o := range orders {
		for _, it := range o.Items {
			if _, ok := seen[it.ProductID]; !ok {
				seen[it.ProductID] = struct{}{}
				ids = append(ids, it.ProductID)
			}
		}
	}

	books, err := s.books.GetByIDs(ctx, ids)
	if err != nil {
		return nil, apperr.Internal(err, "failed to fetch ordered books")
	}
	byID := make(map[string]model.Book, len(books))
	for _, b := range books {
		byID[b.ID.Hex()] = b
	}

	out := make([]OrderDetail, 0, len(orders))
	for _, o := range orders {
		d := OrderDetail{Order: o, Items: make([]OrderItemDetail, 0, len(o.Items))}
		for _, it := range o.Items {
			item := OrderItemDetail{LineItem: it}
			if b, ok := byID[it.ProductID]; ok {
				item.Product = &b
			}
			d.Items = append(d.Items, item)
		}
		out = append(out, d)
	}
	return out, nil
}

