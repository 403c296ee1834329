package di

import (
	"time"

	"gorm.io/gorm"

	"auction_backend/internal/app/router"
	auctionadapters "auction_backend/internal/feature/auction/adapters"
	auctionhandler "auction_backend/internal/feature/auction/transport/handler"
	auctionusecase "auction_backend/internal/feature/auction/usecase"
	authadapters "auction_backend/internal/feature/auth/adapters"
	authhandler "auction_backend/internal/feature/auth/transport/handler"
	authusecase "auction_backend/internal/feature/auth/usecase"
	"auction_backend/internal/feature/encyclopedia/adapters/markdown"
	wikihandler "auction_backend/internal/feature/encyclopedia/transport/handler"
	wikiusecase "auction_backend/internal/feature/encyclopedia/usecase"
)

// Deps are the infrastructure pieces the handlers are built on.
type Deps struct {
	DB           *gorm.DB
	Sessions     authusecase.SessionRepository
	Entries      wikiusecase.EntryStorage
	Tokens       authusecase.JWTGenerator
	RefreshTTL   time.Duration
	SecureCookie bool
}

// NewHandlers wires repositories, usecases and handlers for every feature.
func NewHandlers(d Deps) router.Handlers {
	users := authadapters.NewUserGorm(d.DB)

	authUC := authusecase.NewAuthUsecase(users, d.Sessions, d.Tokens, d.RefreshTTL)
	wikiUC := wikiusecase.NewEncyclopediaUsecase(d.Entries, markdown.NewRenderer())
	auctionUC := auctionusecase.NewAuctionUsecase(auctionadapters.NewStore(d.DB), users)

	return router.Handlers{
		Auth:         authhandler.NewAuthHandler(authUC, d.SecureCookie),
		Encyclopedia: wikihandler.NewEncyclopediaHandler(wikiUC),
		Auction:      auctionhandler.NewAuctionHandler(auctionUC),
	}
}
