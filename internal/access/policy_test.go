package access

import "testing"

func TestItemVisibility(t *testing.T) {
	owner := Identity{UserID: 1}
	other := Identity{UserID: 2}
	admin := Identity{UserID: 3, IsAdmin: true}

	if !CanReadItem(owner, 1) || !CanWriteItem(owner, 1) {
		t.Error("owner must read and write own items")
	}
	if CanReadItem(other, 1) || CanWriteItem(other, 1) {
		t.Error("non-owner must not see foreign items")
	}
	if !CanReadItem(admin, 1) || !CanWriteItem(admin, 1) {
		t.Error("admin must read and write any item")
	}
}

func TestCategoryAndUserWrites(t *testing.T) {
	user := Identity{UserID: 1}
	admin := Identity{UserID: 2, IsAdmin: true}

	if CanWriteCategory(user) || CanWriteUser(user) {
		t.Error("non-admin must not manage categories or users")
	}
	if !CanWriteCategory(admin) || !CanWriteUser(admin) {
		t.Error("admin must manage categories and users")
	}
}

func TestOwnerScope(t *testing.T) {
	if scope := OwnerScope(Identity{UserID: 7}); scope == nil || *scope != 7 {
		t.Errorf("expected scope 7 for non-admin, got %v", scope)
	}
	if scope := OwnerScope(Identity{UserID: 7, IsAdmin: true}); scope != nil {
		t.Errorf("expected unrestricted scope for admin, got %d", *scope)
	}
}
