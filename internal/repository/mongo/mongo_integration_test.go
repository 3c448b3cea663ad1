//go:build integration

package mongo_test

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/testcontainers/testcontainers-go"
	"github.com/testcontainers/testcontainers-go/modules/mongodb"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"bookstore-backend/internal/model"
	"bookstore-backend/internal/repository"
	mongorepo "bookstore-backend/internal/repository/mongo"
)

func setupDB(t *testing.T) (context.Context, *mongo.Database) {
	t.Helper()
	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Minute)
	t.Cleanup(cancel)

	container, err := mongodb.Run(ctx, "mongo:6")
	testcontainers.CleanupContainer(t, container)
	require.NoError(t, err)

	uri, err := container.ConnectionString(ctx)
	require.NoError(t, err)

	client, err := mongo.Connect(ctx, options.Client().ApplyURI(uri))
	require.NoError(t, err)
	t.Cleanup(func() { _ = client.Disconnect(context.Background()) })
	require.NoError(t, client.Ping(ctx, nil))

	db := client.Database("bookstore_test")
	require.NoError(t, mongorepo.EnsureIndexes(ctx, db))
	return ctx, db
}

func TestMongoRepositories(t *testing.T) {
	ctx, db := setupDB(t)
	repos := mongorepo.NewSet(db)

	t.Run("books", func(t *testing.T) {
		now := time.Now().UTC().Truncate(time.Millisecond)
		dune := model.Book{Title: "Dune", Author: "Frank Herbert", Stock: 10, Trending: true, CreatedAt: now}
		emma := model.Book{Title: "Emma (annotated)", Author: "Jane Austen", Stock: 5, CreatedAt: now.Add(time.Second)}
		require.NoError(t, repos.Books.Create(ctx, &dune))
		require.NoError(t, repos.Books.Create(ctx, &emma))

		all, err := repos.Books.List(ctx, "")
		require.NoError(t, err)
		require.Len(t, all, 2)
		assert.Equal(t, emma.ID, all[0].ID, "newest first")

		byAuthor, err := repos.Books.List(ctx, "austen")
		require.NoError(t, err)
		require.Len(t, byAuthor, 1)

		literal, err := repos.Books.List(ctx, "(annotated)")
		require.NoError(t, err)
		assert.Len(t, literal, 1)

		none, err := repos.Books.List(ctx, ".*")
		require.NoError(t, err)
		assert.NotNil(t, none)
		assert.Empty(t, none)

		require.NoError(t, repos.Books.DecrementStock(ctx, dune.ID.Hex(), 12))
		got, err := repos.Books.GetByID(ctx, dune.ID.Hex())
		require.NoError(t, err)
		assert.Equal(t, -2, got.Stock)

		assert.ErrorIs(t, repos.Books.DecrementStock(ctx, primitive.NewObjectID().Hex(), 1), repository.ErrNotFound)
		_, err = repos.Books.GetByID(ctx, "nope")
		assert.ErrorIs(t, err, repository.ErrNotFound)

		title := "Dune Messiah"
		updated, err := repos.Books.Update(ctx, dune.ID.Hex(), repository.BookUpdate{Title: &title, UpdatedAt: now})
		require.NoError(t, err)
		assert.Equal(t, title, updated.Title)
		assert.Equal(t, "Frank Herbert", updated.Author)

		trending, err := repos.Books.CountTrending(ctx)
		require.NoError(t, err)
		assert.EqualValues(t, 1, trending)
	})

	t.Run("orders", func(t *testing.T) {
		at := func(m time.Month, d int) time.Time { return time.Date(2025, m, d, 10, 0, 0, 0, time.UTC) }
		orders := []model.Order{
			{Email: "a@x.io", TotalPrice: 10, Status: model.OrderStatusPending, CreatedAt: at(time.January, 2),
				Items: []model.LineItem{{ProductID: "p1", Quantity: 2}, {ProductID: "p2", Quantity: 1}}},
			{Email: "a@x.io", TotalPrice: 20, Status: "completed", CreatedAt: at(time.January, 15),
				Items: []model.LineItem{{ProductID: "p2", Quantity: 4}}},
			{Email: "b@x.io", TotalPrice: 5, Status: model.OrderStatusPending, CreatedAt: at(time.February, 1),
				Items: []model.LineItem{{ProductID: "p1", Quantity: 100}}},
		}
		for i := range orders {
			require.NoError(t, repos.Orders.Create(ctx, &orders[i]))
		}

		mine, err := repos.Orders.ListByEmail(ctx, "a@x.io")
		require.NoError(t, err)
		require.Len(t, mine, 2)
		assert.Equal(t, orders[1].ID, mine[0].ID)

		total, err := repos.Orders.TotalSales(ctx)
		require.NoError(t, err)
		assert.InDelta(t, 35.0, total, 1e-9)

		pending, err := repos.Orders.CountByStatus(ctx, model.OrderStatusPending)
		require.NoError(t, err)
		assert.EqualValues(t, 2, pending)

		months, err := repos.Orders.SalesByMonth(ctx)
		require.NoError(t, err)
		assert.Equal(t, []model.MonthlySales{
			{Month: "2025-01", TotalSales: 30, OrderCount: 2},
			{Month: "2025-02", TotalSales: 5, OrderCount: 1},
		}, months)

		top, err := repos.Orders.TopProducts(ctx, at(time.January, 1), time.Date(2025, time.February, 1, 0, 0, 0, 0, time.UTC), 5)
		require.NoError(t, err)
		assert.Equal(t, []model.ProductSales{
			{ProductID: "p2", TotalSold: 5},
			{ProductID: "p1", TotalSold: 2},
		}, top)

		shipped := "shipped"
		updated, err := repos.Orders.UpdateStatus(ctx, orders[0].ID.Hex(), repository.OrderStatusUpdate{ShippingStatus: &shipped})
		require.NoError(t, err)
		assert.Equal(t, shipped, updated.ShippingStatus)
		assert.Equal(t, model.OrderStatusPending, updated.Status)
	})

	t.Run("carts", func(t *testing.T) {
		_, err := repos.Carts.GetByUser(ctx, "u1")
		assert.ErrorIs(t, err, repository.ErrNotFound)

		cart := model.Cart{UserID: "u1", Items: []model.LineItem{}, CreatedAt: time.Now().UTC()}
		require.NoError(t, repos.Carts.Save(ctx, &cart))
		assert.False(t, cart.ID.IsZero())

		cart.Items = append(cart.Items, model.LineItem{ProductID: "b1", Quantity: 2})
		require.NoError(t, repos.Carts.Save(ctx, &cart))

		stored, err := repos.Carts.GetByUser(ctx, "u1")
		require.NoError(t, err)
		assert.Equal(t, cart.ID, stored.ID)
		require.Len(t, stored.Items, 1)
		assert.Equal(t, 2, stored.Items[0].Quantity)
	})

	t.Run("addresses", func(t *testing.T) {
		a1 := model.Address{UserID: "u1", FullName: "Ada", IsDefault: true}
		a2 := model.Address{UserID: "u1", FullName: "Ada work", IsDefault: true}
		require.NoError(t, repos.Addresses.Create(ctx, &a1))
		require.NoError(t, repos.Addresses.Create(ctx, &a2))
		require.NoError(t, repos.Addresses.ClearDefault(ctx, "u1", a2.ID.Hex()))

		list, err := repos.Addresses.ListByUser(ctx, "u1")
		require.NoError(t, err)
		for _, a := range list {
			assert.Equal(t, a.ID == a2.ID, a.IsDefault)
		}

		assert.ErrorIs(t, repos.Addresses.Delete(ctx, "u2", a1.ID.Hex()), repository.ErrNotFound)
		require.NoError(t, repos.Addresses.Delete(ctx, "u1", a1.ID.Hex()))
	})

	t.Run("favorites", func(t *testing.T) {
		_, err := repos.Favorites.GetByUser(ctx, "u1")
		assert.ErrorIs(t, err, repository.ErrNotFound)

		fav := model.Favorite{UserID: "u1", Items: []model.FavoriteItem{{ProductID: "b1", Title: "Dune", Price: 9.5}}, CreatedAt: time.Now().UTC()}
		require.NoError(t, repos.Favorites.Save(ctx, &fav))
		assert.False(t, fav.ID.IsZero())

		fav.Items = fav.Items[:0]
		require.NoError(t, repos.Favorites.Save(ctx, &fav))

		stored, err := repos.Favorites.GetByUser(ctx, "u1")
		require.NoError(t, err)
		assert.Equal(t, fav.ID, stored.ID)
		assert.Empty(t, stored.Items)
	})

	t.Run("payment methods", func(t *testing.T) {
		pm := model.PaymentMethod{UserID: "u1", CardHolder: "Ada", Brand: "visa", Last4: "4242", ExpiryMonth: 1, ExpiryYear: 2030, IsDefault: true}
		other := model.PaymentMethod{UserID: "u1", CardHolder: "Ada", Brand: "amex", Last4: "0005", ExpiryMonth: 2, ExpiryYear: 2031}
		require.NoError(t, repos.PaymentMethods.Create(ctx, &pm))
		require.NoError(t, repos.PaymentMethods.Create(ctx, &other))

		kept, err := repos.PaymentMethods.Update(ctx, "u1", pm.ID.Hex(), model.PaymentMethod{CardHolder: "Ada L", Brand: "visa", ExpiryMonth: 3, ExpiryYear: 2032, IsDefault: true})
		require.NoError(t, err)
		assert.Equal(t, "Ada L", kept.CardHolder)
		assert.Equal(t, "4242", kept.Last4, "blank last4 leaves the stored digits")

		replaced, err := repos.PaymentMethods.Update(ctx, "u1", pm.ID.Hex(), model.PaymentMethod{CardHolder: "Ada L", Brand: "visa", Last4: "1111", ExpiryMonth: 3, ExpiryYear: 2032, IsDefault: true})
		require.NoError(t, err)
		assert.Equal(t, "1111", replaced.Last4)

		_, err = repos.PaymentMethods.Update(ctx, "u2", pm.ID.Hex(), model.PaymentMethod{CardHolder: "Eve"})
		assert.ErrorIs(t, err, repository.ErrNotFound)

		_, err = repos.PaymentMethods.Update(ctx, "u1", other.ID.Hex(), model.PaymentMethod{CardHolder: "Ada", Brand: "amex", ExpiryMonth: 2, ExpiryYear: 2031, IsDefault: true})
		require.NoError(t, err)
		require.NoError(t, repos.PaymentMethods.ClearDefault(ctx, "u1", other.ID.Hex()))
		list, err := repos.PaymentMethods.ListByUser(ctx, "u1")
		require.NoError(t, err)
		require.Len(t, list, 2)
		for _, p := range list {
			assert.Equal(t, p.ID == other.ID, p.IsDefault)
		}

		assert.ErrorIs(t, repos.PaymentMethods.Delete(ctx, "u2", pm.ID.Hex()), repository.ErrNotFound)
		require.NoError(t, repos.PaymentMethods.Delete(ctx, "u1", pm.ID.Hex()))
	})

	t.Run("reviews", func(t *testing.T) {
		r1 := model.Review{BookID: "b1", UserID: "u1", Rating: 5, CreatedAt: time.Now().UTC()}
		r2 := model.Review{BookID: "b1", UserID: "u2", Rating: 3, CreatedAt: time.Now().UTC().Add(time.Second)}
		require.NoError(t, repos.Reviews.Create(ctx, &r1))
		require.NoError(t, repos.Reviews.Create(ctx, &r2))

		byBook, err := repos.Reviews.ListByBook(ctx, "b1")
		require.NoError(t, err)
		require.Len(t, byBook, 2)
		assert.Equal(t, r2.ID, byBook[0].ID)

		require.NoError(t, repos.Reviews.Delete(ctx, r1.ID.Hex()))
		assert.ErrorIs(t, repos.Reviews.Delete(ctx, r1.ID.Hex()), repository.ErrNotFound)
		assert.ErrorIs(t, repos.Reviews.Delete(ctx, "nope"), repository.ErrNotFound)

		byUser, err := repos.Reviews.ListByUser(ctx, "u1")
		require.NoError(t, err)
		assert.Empty(t, byUser)
	})

	t.Run("accounts and users", func(t *testing.T) {
		first, err := repos.Accounts.Upsert(ctx, repository.AccountSync{UID: "uid-1", Email: "a@x.io", DisplayName: "Ada", At: time.Now().UTC()})
		require.NoError(t, err)
		second, err := repos.Accounts.Upsert(ctx, repository.AccountSync{UID: "uid-1", Email: "a@x.io", At: time.Now().UTC()})
		require.NoError(t, err)
		assert.Equal(t, first.ID, second.ID)
		assert.Equal(t, "Ada", second.DisplayName)

		admin := model.User{Username: "admin", Password: "hash", Role: model.RoleAdmin}
		require.NoError(t, repos.Users.Create(ctx, &admin))
		dup := model.User{Username: "admin", Password: "hash", Role: model.RoleAdmin}
		assert.True(t, mongo.IsDuplicateKeyError(repos.Users.Create(ctx, &dup)))

		require.NoError(t, repos.Users.SetLastSeenOrderCount(ctx, admin.ID.Hex(), 7))
		got, err := repos.Users.GetByID(ctx, admin.ID.Hex())
		require.NoError(t, err)
		assert.Equal(t, 7, got.LastSeenOrderCount)
	})
}
