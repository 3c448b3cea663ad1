package service

import (
	"context"
	"time"

	"bookstore-backend/internal/apperr"
	"bookstore-backend/internal/model"
	"bookstore-backend/internal/repository"
)

const (
	recentOrdersLimit = 5
	bestSellersLimit  = 5
)

// bestSellerWindow is the sales period ranked by BestSellers.
var bestSellerWindow = struct{ from, to time.Time }{
	from: time.Date(2025, time.January, 1, 0, 0, 0, 0, time.UTC),
	to:   time.Date(2025, time.February, 1, 0, 0, 0, 0, time.UTC),
}

type Overview struct {
	TotalOrders   int64                `json:"totalOrders"`
	TotalSales    float64              `json:"totalSales"`
	PendingOrders int64                `json:"pendingOrders"`
	TotalBooks    int64                `json:"totalBooks"`
	TrendingBooks int64                `json:"trendingBooks"`
	RecentOrders  []model.Order        `json:"recentOrders"`
	MonthlySales  []model.MonthlySales `json:"monthlySales"`
}

type BestSeller struct {
	model.Book
	TotalSold int `json:"totalSold"`
}

type DashboardService struct {
	orders repository.OrderRepository
	books  repository.BookRepository
	users  repository.UserRepository
}

func NewDashboardService(orders repository.OrderRepository, books repository.BookRepository, users repository.UserRepository) *DashboardService {
	return &DashboardService{orders: orders, books: books, users: users}
}

func (s *DashboardService) Overview(ctx context.Context) (Overview, error) {
	var (
		ov  Overview
		err error
	)
	if ov.TotalOrders, err = s.orders.Count(ctx); err != nil {
		return Overview{}, apperr.Internal(err, "failed to count orders")
	}
	if ov.TotalSales, err = s.orders.TotalSales(ctx); err != nil {
		return Overview{}, apperr.Internal(err, "failed to sum sales")
	}
	if ov.PendingOrders, err = s.orders.CountByStatus(ctx, model.OrderStatusPending); err != nil {
		return Overview{}, apperr.Internal(err, "failed to count pending orders")
	}
	if ov.TotalBooks, err = s.books.Count(ctx); err != nil {
		return Overview{}, apperr.Internal(err, "failed to count books")
	}
	if ov.TrendingBooks, err = s.books.CountTrending(ctx); err != nil {
		return Overview{}, apperr.Internal(err, "failed to count trending books")
	}
	if ov.RecentOrders, err = s.orders.Recent(ctx, recentOrdersLimit); err != nil {
		return Overview{}, apperr.Internal(err, "failed to fetch recent orders")
	}
	if ov.MonthlySales, err = s.orders.SalesByMonth(ctx); err != nil {
		return Overview{}, apperr.Internal(err, "failed to aggregate monthly sales")
	}
	return ov, nil
}

// BestSellers ranks books by quantity sold inside bestSellerWindow.
// Products that no longer exist in the catalog are skipped.
func (s *DashboardService) BestSellers(ctx context.Context) ([]BestSeller, error) {
	top, err := s.orders.TopProducts(ctx, bestSellerWindow.from, bestSellerWindow.to, bestSellersLimit)
	if err != nil {
		return nil, apperr.Internal(err, "failed to aggregate best sellers")
	}
	ids := make([]string, 0, len(top))
	for _, p := range top {
		ids = append(ids, p.ProductID)
	}
	books, err := s.books.GetByIDs(ctx, ids)
	if err != nil {
		return nil, apperr.Internal(err, "failed to fetch best sellers")
	}
	byID := make(map[string]model.Book, len(books))
	for _, b := range books {
		byID[b.ID.Hex()] = b
	}

	out := make([]BestSeller, 0, len(top))
	for _, p := range top {
		if b, ok := byID[p.ProductID]; ok {
			out = append(out, BestSeller{Book: b, TotalSold: p.TotalSold})
		}
	}
	return out, nil
}

func (s *DashboardService) LastSeen(ctx context.Context, adminID string) (int, error) {
	u, err := s.users.GetByID(ctx, adminID)
	if err != nil {
		return 0, lookupErr(err, "admin not found", "failed to fetch admin")
	}
	return u.LastSeenOrderCount, nil
}

func (s *DashboardService) SetLastSeen(ctx context.Context, adminID string, count int) error {
	if count < 0 {
		return apperr.ValidationWithDetails("validation failed", map[string]string{"count": "must be 0 or greater"})
	}
	if err := s.users.SetLastSeenOrderCount(ctx, adminID, count); err != nil {
		return lookupErr(err, "admin not found", "failed to update last seen count")
	}
	return nil
}
