package domain

import "time"

type ProductStatus string

// ProductStatusPublished is the only status the lab writes; listings filter on it.
const ProductStatusPublished ProductStatus = "published"

// Product is a prototype published in the wakuwaku lab. InitialPromptLog and
// SealedAt are written once at creation.
type Product struct {
	ID               int64
	CreatorID        int64
	Title            string
	URL              *string
	InitialPromptLog string
	DevObsession     *string
	Status           ProductStatus
	SealedAt         time.Time
	CreatedAt        time.Time
	UpdatedAt        time.Time
	CreatorUserHash  string
}

// ProductEdit carries the only fields an owner may change after creation.
type ProductEdit struct {
	Title        string
	URL          *string
	DevObsession *string
}
