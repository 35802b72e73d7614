package model

import "time"

// RawRecord is one source API record staged as fetched.
type RawRecord struct {
	ID         string
	Kind       string // products, customers, discounts, cashback
	ExternalID string
	Payload    []byte
	FetchedAt  time.Time
}

// CatalogMatch is an accepted product correspondence kept for review.
type CatalogMatch struct {
	ShopifyID    string
	BagyID       string
	ShopifyTitle string
	BagyName     string
	Similarity   float64
	ShopifyURL   string
	BagyURL      string
	MatchedAt    time.Time
}
