// Package authz centralizes the authorization rules as a single pure
// decision function, so the rule set is defined once and testable without
// any transport or storage concern.
package authz

// Principal is the authenticated identity making a request.
// A nil *Principal means the request is anonymous.
type Principal struct {
	ID      string
	IsAdmin bool
}

// Action is the verb being attempted on a resource.
type Action int

const (
	ActionCreate Action = iota
	ActionRead
	ActionUpdate
	ActionDelete
)

// ResourceKind identifies the entity type a decision applies to.
type ResourceKind int

const (
	ResourceUser ResourceKind = iota
	ResourceAmenity
	ResourcePlace
	ResourceReview
)

// Resource describes the target of a decision. OwnerID is the id of the
// user the resource is attributed to: the place owner, the review author,
// or the user record itself. It is empty for create actions and for
// amenities, which have no owner.
type Resource struct {
	Kind    ResourceKind
	OwnerID string
}

// Allow decides whether principal may perform action on res.
//
// Rules:
//   - reads are open to anyone, authenticated or not
//   - amenity create/update/delete and user creation require an admin
//   - place and review creation require any authenticated principal
//   - place/review update/delete require the owner/author or an admin
//   - a user record may be updated by itself or by an admin
func Allow(p *Principal, action Action, res Resource) bool {
	if action == ActionRead {
		return true
	}

	// Every mutation requires an authenticated principal.
	if p == nil {
		return false
	}
	if p.IsAdmin {
		return true
	}

	switch res.Kind {
	case ResourceAmenity:
		// Non-admin mutations on the shared catalog are never allowed.
		return false
	case ResourceUser:
		if action == ActionCreate {
			// Account creation through the managed path is admin-only;
			// self-registration bypasses the policy entirely.
			return false
		}
		return res.OwnerID == p.ID
	case ResourcePlace, ResourceReview:
		if action == ActionCreate {
			return true
		}
		return res.OwnerID == p.ID
	}
	return false
}
