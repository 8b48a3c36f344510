package main

import (
	"context"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gorilla/csrf"
	"github.com/gorilla/sessions"

	"github.com/hotiphone/storefront/internal/auth"
	"github.com/hotiphone/storefront/internal/catalog"
	"github.com/hotiphone/storefront/internal/config"
	"github.com/hotiphone/storefront/internal/events"
	"github.com/hotiphone/storefront/internal/handlers"
	"github.com/hotiphone/storefront/internal/storage"
	"github.com/hotiphone/storefront/internal/store"
)

func main() {
	// Configure slog to output DEBUG level messages
	// This should be done as early as possible in main
	handlerOpts := &slog.HandlerOptions{
		Level: slog.LevelDebug,
	}
	// Using TextHandler for console readability; for production JSONHandler might be preferred.
	logger := slog.New(slog.NewTextHandler(os.Stdout, handlerOpts))
	slog.SetDefault(logger)

	// 1. Load Configuration
	cfg, err := config.LoadConfig()
	if err != nil {
		slog.Error("Failed to load configuration", "error", err)
		os.Exit(1)
	}

	// 2. Init DB
	db, err := store.NewStore(cfg.DBPath)
	if err != nil {
		slog.Error("Failed to initialize store", "error", err)
		os.Exit(1)
	}
	if err := db.Migrate(); err != nil {
		slog.Error("Failed to run migrations", "error", err)
		os.Exit(1)
	}

	// 3. Session Setup
	sessionStore := sessions.NewCookieStore(cfg.SessionKey)
	sessionStore.Options.HttpOnly = true
	sessionStore.Options.Secure = cfg.CookieSecure // Configurable for production
	sessionStore.Options.SameSite = http.SameSiteLaxMode
	sessionStore.Options.Path = "/"
	if cfg.CookieDomain != "" {
		sessionStore.Options.Domain = cfg.CookieDomain
	}

	// 4. Object storage for product images
	disk, err := storage.New(cfg)
	if err != nil {
		slog.Error("Failed to initialize object storage", "error", err, "driver", cfg.StorageDriver)
		os.Exit(1)
	}

	// 5. Catalog: one fetch at startup, refreshed by admin mutations
	productCatalog := catalog.NewAccessor(db)
	if err := productCatalog.Refresh(); err != nil {
		slog.Error("Failed to fetch product catalog", "error", err)
		os.Exit(1)
	}

	// 6. Optional order-event publisher
	var publisher *events.Publisher
	if cfg.AMQPURL != "" {
		publisher, err = events.Connect(cfg.AMQPURL)
		if err != nil {
			slog.Warn("Order events disabled: broker unreachable", "error", err)
		} else {
			defer publisher.Close()
		}
	}

	// 7. Templates
	templates := handlers.NewTemplateCache()
	if err := templates.Load("templates"); err != nil {
		slog.Error("Failed to load templates", "error", err)
		os.Exit(1)
	}

	// 8. Handlers
	sessionAuth := &auth.SessionAuth{Store: db, Sessions: sessionStore}
	siteHandler := &handlers.SiteHandler{
		Store:     db,
		Catalog:   productCatalog,
		Auth:      sessionAuth,
		Sessions:  sessionStore,
		Templates: templates,
		Events:    publisher,
	}
	adminHandler := &handlers.AdminHandler{
		Store:     db,
		Catalog:   productCatalog,
		Auth:      sessionAuth,
		Sessions:  sessionStore,
		Templates: templates,
		Disk:      disk,
	}

	mux := http.NewServeMux()

	// Static Files (local uploads are served from here too)
	fileServer := http.FileServer(http.Dir("./static"))
	mux.Handle("/static/", http.StripPrefix("/static", fileServer))

	// Rate limiter for public mutation endpoints
	rateLimiter := handlers.NewRateLimiter(10 * time.Second)

	// Storefront
	mux.HandleFunc("/{$}", siteHandler.Index)
	mux.HandleFunc("/product", siteHandler.ProductPage)
	mux.HandleFunc("/cart", siteHandler.CartPage)
	mux.HandleFunc("POST /cart/add", siteHandler.AddToCart)
	mux.HandleFunc("POST /cart/update", siteHandler.UpdateCart)
	mux.HandleFunc("POST /cart/remove", siteHandler.RemoveFromCart)
	mux.HandleFunc("/checkout", siteHandler.CheckoutPage)
	mux.HandleFunc("POST /checkout", rateLimiter.Middleware(siteHandler.PlaceOrder))
	mux.HandleFunc("/account", siteHandler.AccountPage)
	mux.HandleFunc("/members", siteHandler.MembersPage)
	mux.HandleFunc("/members/upgrade", siteHandler.MembersUpgradePage)

	// Auth
	mux.HandleFunc("/auth", siteHandler.AuthPage)
	mux.HandleFunc("POST /auth/login", rateLimiter.Middleware(siteHandler.Login))
	mux.HandleFunc("POST /auth/register", rateLimiter.Middleware(siteHandler.Register))
	mux.HandleFunc("POST /logout", siteHandler.Logout)

	// Back office (role admin)
	mux.HandleFunc("/admin", adminHandler.RequireAdmin(adminHandler.Dashboard))
	mux.HandleFunc("/admin/products", adminHandler.RequireAdmin(adminHandler.ListProducts))
	mux.HandleFunc("/admin/products/new", adminHandler.RequireAdmin(adminHandler.ProductForm))
	mux.HandleFunc("/admin/products/edit", adminHandler.RequireAdmin(adminHandler.ProductForm))
	mux.HandleFunc("POST /admin/products", adminHandler.RequireAdmin(adminHandler.SaveProduct))
	mux.HandleFunc("/admin/products/delete", adminHandler.RequireAdmin(adminHandler.DeleteProductConfirm))
	mux.HandleFunc("POST /admin/products/delete", adminHandler.RequireAdmin(adminHandler.DeleteProduct))
	mux.HandleFunc("/admin/orders", adminHandler.RequireAdmin(adminHandler.ListOrders))
	mux.HandleFunc("/admin/orders/details", adminHandler.RequireAdmin(adminHandler.OrderDetails))
	mux.HandleFunc("POST /admin/orders/tracking", adminHandler.RequireAdmin(adminHandler.UpdateTracking))
	mux.HandleFunc("/admin/customers", adminHandler.RequireAdmin(adminHandler.ListCustomers))
	mux.HandleFunc("/admin/customers/export", adminHandler.RequireAdmin(adminHandler.ExportCustomers))

	// 9. Middleware Setup
	CSRF := csrf.Protect(
		cfg.CSRFKey,
		csrf.Secure(cfg.CookieSecure), // Configurable for production
		csrf.TrustedOrigins([]string{"localhost:" + cfg.Port, "127.0.0.1:" + cfg.Port, "localhost", "127.0.0.1"}),
	)

	// Chain: Logger -> Security Headers -> CSRF -> Mux
	handler := handlers.LoggingMiddleware(
		handlers.SecurityHeadersMiddleware(
			CSRF(mux),
		),
	)

	// 10. Start Server with Graceful Shutdown
	server := &http.Server{
		Addr:    ":" + cfg.Port,
		Handler: handler,
	}

	stop := make(chan os.Signal, 1)
	signal.Notify(stop, syscall.SIGINT, syscall.SIGTERM)

	go func() {
		slog.Info("Server starting", "port", cfg.Port)
		if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			slog.Error("Server failed to listen and serve", "error", err)
			os.Exit(1)
		}
	}()

	<-stop

	slog.Info("Shutting down server gracefully...")

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := server.Shutdown(ctx); err != nil {
		slog.Error("Server shutdown failed", "error", err)
		os.Exit(1)
	}

	slog.Info("Server exited gracefully.")
}
