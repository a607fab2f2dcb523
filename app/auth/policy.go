// Package auth carries the caller identity through the application and decides
// what an identity may do. Identity is always passed explicitly into core
// operations; nothing in the core reads ambient session state.
package auth

import "starlog/app/models"

// Identity is the resolved caller: who they are and what capability they hold.
// The zero value is the anonymous reader.
type Identity struct {
	ID       string
	Username string
	Role     models.Role
}

// Anonymous reports whether this is an unauthenticated identity.
func (i Identity) Anonymous() bool { return i.ID == "" }

// IsAdmin reports whether the identity holds the admin capability.
func (i Identity) IsAdmin() bool { return i.Role == models.RoleAdmin }

// CanCreatePost: any authenticated identity may author posts.
func (i Identity) CanCreatePost() bool { return !i.Anonymous() }

// CanModifyPost: the owning author, or an admin, may edit or delete a post.
func (i Identity) CanModifyPost(post *models.Post) bool {
	return i.IsAdmin() || post.Owner(i.ID)
}

// CanModerate: approving posts and listing the pending queue require admin.
func (i Identity) CanModerate() bool { return i.IsAdmin() }
