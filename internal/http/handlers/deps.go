package handlers

import (
	"festivo/internal/config"
	"festivo/internal/repos"
	"festivo/internal/services"

	"github.com/jmoiron/sqlx"
)

type Deps struct {
	AuthHandler         *AuthHandler
	CatalogHandler      *CatalogHandler
	SearchHandler       *SearchHandler
	CartHandler         *CartHandler
	FavoritesHandler    *FavoritesHandler
	AvailabilityHandler *AvailabilityHandler
	PricingHandler      *PricingHandler
	NotificationHandler *NotificationHandler
	ReviewHandler       *ReviewHandler
	QuoteHandler        *QuoteHandler
	DashboardHandler    *DashboardHandler
}

func NewDeps(db *sqlx.DB, cfg config.Config, auth *services.AuthService) *Deps {
	svcRepo := repos.NewServiceRepo(db)
	cartRepo := repos.NewCartRepo(db)
	favRepo := repos.NewFavoritesRepo(db)
	availRepo := repos.NewAvailabilityRepo(db)
	priceRepo := repos.NewPricingRepo(db)
	notifRepo := repos.NewNotificationRepo(db)
	reviewRepo := repos.NewReviewRepo(db)
	quoteRepo := repos.NewQuoteRepo(db)

	notifSvc := services.NewNotificationService(notifRepo)
	pricingSvc := services.NewPricingService(priceRepo)
	pricingSvc.Notify = notifSvc
	catalogSvc := services.NewCatalogService(svcRepo)
	cartSvc := services.NewCartService(cartRepo, svcRepo, pricingSvc)
	cartSvc.Notify = notifSvc
	favSvc := services.NewFavoritesService(favRepo)
	availSvc := services.NewAvailabilityService(availRepo)
	reviewSvc := services.NewReviewService(reviewRepo)
	quoteSvc := services.NewQuoteService(quoteRepo)

	// Seed numeric base prices from the formatted catalog once per start.
	if catalog, err := catalogSvc.ListAll(); err == nil {
		_ = pricingSvc.SeedFromCatalog(catalog)
	}

	return &Deps{
		AuthHandler:         &AuthHandler{Auth: auth},
		CatalogHandler:      &CatalogHandler{Catalog: catalogSvc, Pricing: pricingSvc},
		SearchHandler:       &SearchHandler{Catalog: catalogSvc},
		CartHandler:         &CartHandler{Cart: cartSvc},
		FavoritesHandler:    &FavoritesHandler{Fav: favSvc},
		AvailabilityHandler: &AvailabilityHandler{Avail: availSvc, Catalog: catalogSvc},
		PricingHandler:      &PricingHandler{Pricing: pricingSvc, Catalog: catalogSvc},
		NotificationHandler: &NotificationHandler{Notif: notifSvc},
		ReviewHandler:       &ReviewHandler{Reviews: reviewSvc, Catalog: catalogSvc},
		QuoteHandler:        &QuoteHandler{Quotes: quoteSvc},
		DashboardHandler:    &DashboardHandler{Fav: favSvc, Notif: notifSvc, Quotes: quoteSvc, Avail: availSvc},
	}
}
