package di

import (
	auctionadapters "auction_backend/internal/feature/auction/adapters"
	auctionusecase "auction_backend/internal/feature/auction/usecase"
	authadapters "auction_backend/internal/feature/auth/adapters"
	authentity "auction_backend/internal/feature/auth/domain/entity"
)

// The auth user adapter doubles as the auction's username lookup.
var _ auctionusecase.UserDirectory = authadapters.NewUserGorm(nil)

// Models returns every GORM model the server migrates.
func Models() []any {
	return append([]any{&authentity.User{}, &authadapters.SessionModel{}}, auctionadapters.Models()...)
}
