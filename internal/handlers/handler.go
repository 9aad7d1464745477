package handlers

import (
	"luxe_back_end/internal/cart"
	"luxe_back_end/internal/catalog"
	"luxe_back_end/internal/orders"
	"luxe_back_end/internal/reviews"
	"luxe_back_end/internal/users"
	"luxe_back_end/internal/wishlist"
)

// Handler regroupe les services injectés dans les routes HTTP.
type Handler struct {
	Catalog   *catalog.Store
	Carts     *cart.Ledger
	Wishlists *wishlist.Set
	Orders    *orders.Recorder
	Reviews   *reviews.Book
	Users     *users.Registry
}

func New(c *catalog.Store, carts *cart.Ledger, w *wishlist.Set, o *orders.Recorder, rv *reviews.Book, u *users.Registry) *Handler {
	return &Handler{
		Catalog:   c,
		Carts:     carts,
		Wishlists: w,
		Orders:    o,
		Reviews:   rv,
		Users:     u,
	}
}
