package perm

import "issuedeck-cli/internal/model"

// CanMutate reports whether the principal may update or delete a resource
// owned by authorID. Admins may mutate anything; everyone else only their
// own resources. A nil principal can mutate nothing.
//
// This is a client-side gate only; the server re-validates every mutation.
func CanMutate(p *model.Principal, authorID int) bool {
	if p == nil {
		return false
	}
	if p.IsAdmin() {
		return true
	}
	return p.ID != 0 && p.ID == authorID
}

// CanAdminister reports whether the principal may manage shared taxonomies.
func CanAdminister(p *model.Principal) bool {
	return p != nil && p.IsAdmin()
}
