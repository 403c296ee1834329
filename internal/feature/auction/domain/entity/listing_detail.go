package entity

// CommentView is a comment with its author's username.
type CommentView struct {
	Comment
	Author string
}

// ListingDetail is everything the listing page shows, from the viewer's perspective.
type ListingDetail struct {
	Listing       Listing
	OwnerUsername string
	Comments      []CommentView

	// HighestBid is the latest bid, nil when nobody has bid yet.
	HighestBid *Bid
	BidCount   int64

	// OnWatchlist is nil for anonymous viewers.
	OnWatchlist *bool

	StartedByViewer bool
	WonByViewer     bool
}
