package authz

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

var (
	admin     = &Principal{ID: "admin-1", IsAdmin: true}
	owner     = &Principal{ID: "user-1"}
	stranger  = &Principal{ID: "user-2"}
	anonymous *Principal
)

func TestAllow_Reads(t *testing.T) {
	// Reads are open regardless of who asks.
	for _, kind := range []ResourceKind{ResourceUser, ResourceAmenity, ResourcePlace, ResourceReview} {
		assert.True(t, Allow(anonymous, ActionRead, Resource{Kind: kind}))
		assert.True(t, Allow(stranger, ActionRead, Resource{Kind: kind, OwnerID: "user-1"}))
	}
}

func TestAllow_Amenity(t *testing.T) {
	tests := []struct {
		name   string
		p      *Principal
		action Action
		want   bool
	}{
		{"admin creates", admin, ActionCreate, true},
		{"admin updates", admin, ActionUpdate, true},
		{"regular user creates", stranger, ActionCreate, false},
		{"regular user updates", stranger, ActionUpdate, false},
		{"anonymous creates", anonymous, ActionCreate, false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, Allow(tt.p, tt.action, Resource{Kind: ResourceAmenity}))
		})
	}
}

func TestAllow_Place(t *testing.T) {
	place := Resource{Kind: ResourcePlace, OwnerID: "user-1"}

	tests := []struct {
		name   string
		p      *Principal
		action Action
		res    Resource
		want   bool
	}{
		{"authenticated user creates", stranger, ActionCreate, Resource{Kind: ResourcePlace}, true},
		{"anonymous creates", anonymous, ActionCreate, Resource{Kind: ResourcePlace}, false},
		{"owner updates", owner, ActionUpdate, place, true},
		{"owner deletes", owner, ActionDelete, place, true},
		{"non-owner updates", stranger, ActionUpdate, place, false},
		{"non-owner deletes", stranger, ActionDelete, place, false},
		{"admin updates someone else's", admin, ActionUpdate, place, true},
		{"admin deletes someone else's", admin, ActionDelete, place, true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, Allow(tt.p, tt.action, tt.res))
		})
	}
}

func TestAllow_Review(t *testing.T) {
	review := Resource{Kind: ResourceReview, OwnerID: "user-1"}

	assert.True(t, Allow(stranger, ActionCreate, Resource{Kind: ResourceReview}))
	assert.False(t, Allow(anonymous, ActionCreate, Resource{Kind: ResourceReview}))
	assert.True(t, Allow(owner, ActionUpdate, review))
	assert.True(t, Allow(owner, ActionDelete, review))
	assert.False(t, Allow(stranger, ActionDelete, review))
	assert.True(t, Allow(admin, ActionDelete, review))
}

func TestAllow_User(t *testing.T) {
	self := Resource{Kind: ResourceUser, OwnerID: "user-1"}

	assert.True(t, Allow(owner, ActionUpdate, self), "a user may update their own record")
	assert.False(t, Allow(stranger, ActionUpdate, self), "a user may not update another's record")
	assert.True(t, Allow(admin, ActionUpdate, self), "an admin may update anyone")
	assert.False(t, Allow(stranger, ActionCreate, Resource{Kind: ResourceUser}), "managed account creation is admin-only")
	assert.True(t, Allow(admin, ActionCreate, Resource{Kind: ResourceUser}))
}
