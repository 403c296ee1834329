package entity

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestListing_Predicates(t *testing.T) {
	tests := []struct {
		name      string
		listing   Listing
		user      uint
		hasWinner bool
		owned     bool
		won       bool
	}{
		{"open listing, owner", Listing{OwnerID: 1, Active: true, WinnerID: NoWinner}, 1, false, true, false},
		{"closed without bids", Listing{OwnerID: 1, Active: false, WinnerID: NoWinner}, 2, false, false, false},
		{"closed, viewer won", Listing{OwnerID: 1, Active: false, WinnerID: 2}, 2, true, false, true},
		{"closed, someone else won", Listing{OwnerID: 1, Active: false, WinnerID: 3}, 2, true, false, false},
		{"anonymous viewer", Listing{OwnerID: 1, Active: false, WinnerID: 2}, 0, true, false, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.hasWinner, tt.listing.HasWinner())
			assert.Equal(t, tt.owned, tt.listing.IsOwnedBy(tt.user))
			assert.Equal(t, tt.won, tt.listing.IsWonBy(tt.user))
		})
	}
}
