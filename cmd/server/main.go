package main

import (
	"context"
	"log"
	"os"

	"github.com/gin-gonic/gin"

	"luxe_back_end/internal/cart"
	"luxe_back_end/internal/catalog"
	"luxe_back_end/internal/config"
	"luxe_back_end/internal/handlers"
	"luxe_back_end/internal/orders"
	"luxe_back_end/internal/reviews"
	"luxe_back_end/internal/routes"
	"luxe_back_end/internal/storage"
	"luxe_back_end/internal/users"
	"luxe_back_end/internal/utils"
	"luxe_back_end/internal/wishlist"
)

func main() {
	config.Load()

	store := initStorage()

	catalogPath := os.Getenv("CATALOG_FILE")
	if catalogPath == "" {
		catalogPath = "data/products.json"
	}
	cat := catalog.NewStore(catalogPath)
	products, err := cat.Load()
	if err != nil {
		log.Fatalf("❌ Impossible de charger le catalogue : %v", err)
	}
	log.Printf("✅ Catalogue chargé (%d produits)", len(products))

	ledger := cart.NewLedger(store)
	h := handlers.New(
		cat,
		ledger,
		wishlist.NewSet(store),
		orders.NewRecorder(store, ledger),
		reviews.NewBook(store),
		users.NewRegistry(store),
	)

	utils.WarnIfNoSMTP()

	r := gin.Default()
	routes.RegisterRoutes(r, h)

	port := os.Getenv("PORT")
	if port == "" {
		port = "8080"
	}
	log.Println("🚀 Serveur Luxe lancé sur le port", port)
	r.Run(":" + port)
}

// initStorage choisit le backend de persistance : Redis par défaut, mémoire
// pour la démo sans infrastructure (STORAGE_BACKEND=memory).
func initStorage() storage.Store {
	if os.Getenv("STORAGE_BACKEND") == "memory" {
		log.Println("⚠️  Stockage en mémoire : les données seront perdues à l'arrêt")
		return storage.NewMemoryStore()
	}

	store, err := storage.NewRedisStore(context.Background(),
		os.Getenv("REDIS_HOST"), os.Getenv("REDIS_PASSWORD"))
	if err != nil {
		log.Fatalf("❌ Échec initialisation Redis: %v", err)
	}
	return store
}
