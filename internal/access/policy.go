// Package access holds the named access policies applied per resource type.
// The acting identity is always passed in explicitly; nothing here reads
// request-scoped or global state.
package access

// Identity is the authenticated caller, as extracted from the JWT.
type Identity struct {
	UserID  int
	IsAdmin bool
}

// CanReadItem reports whether the identity may see an item (or anything that
// inherits its visibility, such as its change logs).
func CanReadItem(id Identity, ownerID int) bool {
	return id.IsAdmin || id.UserID == ownerID
}

// CanWriteItem reports whether the identity may update or delete an item.
// Same rule as reads: owner or admin.
func CanWriteItem(id Identity, ownerID int) bool {
	return CanReadItem(id, ownerID)
}

// CanWriteCategory gates category create/update/delete. Reads are open to any
// authenticated identity.
func CanWriteCategory(id Identity) bool {
	return id.IsAdmin
}

// CanWriteUser gates user management. Reads are open to any authenticated
// identity.
func CanWriteUser(id Identity) bool {
	return id.IsAdmin
}

// OwnerScope returns the owner filter for list queries: nil for admins (all
// rows) or the caller's own ID. Listing endpoints must pre-filter with this so
// a foreign row is never returned, rather than filtering after the fact.
func OwnerScope(id Identity) *int {
	if id.IsAdmin {
		return nil
	}
	owner := id.UserID
	return &owner
}
