package service

import "komarabo/internal/domain"

// Capability names an action guarded by Authorize.
type Capability int

const (
	CapDeleteIssue Capability = iota
	CapEditProduct
	CapDeleteProduct
	CapAdmin
)

func (c Capability) String() string {
	switch c {
	case CapDeleteIssue:
		return "delete-issue"
	case CapEditProduct:
		return "edit-product"
	case CapDeleteProduct:
		return "delete-product"
	case CapAdmin:
		return "admin"
	default:
		return "unknown"
	}
}

// Authorize decides whether actor may exercise cap on a resource owned by ownerID.
// ownerID is ignored for CapAdmin. A nil actor is never authorized.
func Authorize(actor *domain.User, cap Capability, ownerID int64) error {
	if actor == nil {
		return ErrForbidden
	}
	switch cap {
	case CapAdmin:
		if actor.IsAdmin {
			return nil
		}
	case CapDeleteIssue, CapEditProduct, CapDeleteProduct:
		if actor.ID == ownerID {
			return nil
		}
	}
	return ErrForbidden
}
