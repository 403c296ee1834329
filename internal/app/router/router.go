// Package router mounts every feature's handlers on one gin engine.
package router

import (
	"log/slog"

	"github.com/gin-gonic/gin"

	auctionhandler "auction_backend/internal/feature/auction/transport/handler"
	authhandler "auction_backend/internal/feature/auth/transport/handler"
	wikihandler "auction_backend/internal/feature/encyclopedia/transport/handler"
	"auction_backend/internal/platform/http/handler"
	"auction_backend/internal/platform/http/middleware"
	jwtmw "auction_backend/internal/platform/jwt"
)

// Handlers groups the feature handlers served by the router.
type Handlers struct {
	Auth         *authhandler.AuthHandler
	Encyclopedia *wikihandler.EncyclopediaHandler
	Auction      *auctionhandler.AuctionHandler
}

// NewRouter builds the engine. Every request gets a request id, an access
// log line and an identity; routes that change auction state additionally
// require a signed-in user.
func NewRouter(logger *slog.Logger, tokens jwtmw.TokenParser, checks map[string]handler.Pinger, h Handlers) *gin.Engine {
	r := gin.New()
	r.Use(gin.Recovery(), middleware.RequestID(), middleware.RequestLogger(logger), jwtmw.Authenticate(tokens))

	r.GET("/healthz", handler.Health(checks))

	r.POST("/register", h.Auth.Register)
	r.POST("/login", h.Auth.Login)
	r.POST("/refresh", h.Auth.Refresh)
	r.POST("/logout", h.Auth.Logout)

	r.GET("/wiki", h.Encyclopedia.List)
	r.GET("/wiki/:title", h.Encyclopedia.Get)
	r.POST("/wiki", h.Encyclopedia.Create)
	r.PUT("/wiki/:title", h.Encyclopedia.Edit)
	r.GET("/search", h.Encyclopedia.Search)
	r.GET("/random", h.Encyclopedia.Random)

	r.GET("/listings", h.Auction.ListActive)
	r.GET("/listings/:id", h.Auction.GetListing)
	r.GET("/listings/:id/bids", h.Auction.ListBids)
	r.GET("/categories", h.Auction.ListCategories)
	r.GET("/categories/:category", h.Auction.ListByCategory)

	auth := r.Group("/")
	auth.Use(jwtmw.RequireAuth())
	{
		auth.POST("/listings", h.Auction.CreateListing)
		auth.DELETE("/listings/:id", h.Auction.DeleteListing)
		auth.POST("/listings/:id/bids", h.Auction.PlaceBid)
		auth.POST("/listings/:id/comments", h.Auction.AddComment)
		auth.POST("/listings/:id/close", h.Auction.CloseListing)
		auth.GET("/watchlist", h.Auction.Watchlist)
		auth.POST("/watchlist/:id", h.Auction.AddToWatchlist)
		auth.DELETE("/watchlist/:id", h.Auction.RemoveFromWatchlist)
	}

	return r
}
