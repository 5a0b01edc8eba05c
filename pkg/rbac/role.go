package rbac

import "strings"

// Role is a canonical role name in the dashboard's privilege hierarchy.
type Role string

const (
	RoleCustomer   Role = "customer"
	RoleManager    Role = "manager"
	RoleAdmin      Role = "admin"
	RoleSuperAdmin Role = "super_admin"
)

// Ranks for the strict total order customer < manager < admin < super_admin.
const (
	RankCustomer   = 1
	RankManager    = 2
	RankAdmin      = 3
	RankSuperAdmin = 4
)

// Normalize maps an arbitrary role string to one of the four canonical roles.
// Input is lower-cased and split on whitespace, hyphens, and underscores,
// then matched against known role words in specificity order: "super admin"
// resolves to super_admin before the lone "admin" word can match. Matching is
// on whole words, not substrings, so "superadmin" is not silently classified
// as admin. Anything that does not match falls back to customer, the
// least-privileged role.
func Normalize(input string) Role {
	s := strings.ToLower(strings.TrimSpace(input))
	s = strings.ReplaceAll(s, "-", " ")
	s = strings.ReplaceAll(s, "_", " ")
	words := strings.Fields(s)

	has := func(word string) bool {
		for _, w := range words {
			if w == word {
				return true
			}
		}
		return false
	}

	switch {
	case has("super") && has("admin"):
		return RoleSuperAdmin
	case has("admin"):
		return RoleAdmin
	case has("manager"):
		return RoleManager
	default:
		return RoleCustomer
	}
}

// Rank returns the position of a canonical role in the privilege order.
// Non-canonical values rank as customer.
func Rank(role Role) int {
	switch role {
	case RoleSuperAdmin:
		return RankSuperAdmin
	case RoleAdmin:
		return RankAdmin
	case RoleManager:
		return RankManager
	default:
		return RankCustomer
	}
}

// HasAtLeast reports whether role is at or above minRole in the hierarchy.
// Both arguments are normalized first, so raw claim values can be passed in.
func HasAtLeast(role, minRole string) bool {
	return Rank(Normalize(role)) >= Rank(Normalize(minRole))
}

// IsPrivileged reports whether the role is manager or above.
func IsPrivileged(role string) bool {
	return HasAtLeast(role, string(RoleManager))
}

// CanImpersonate reports whether an actor with actorRole may impersonate a
// principal with targetRole. The actor must rank strictly higher than the
// target: a peer or superior, including another principal of the identical
// role, is never an eligible target.
func CanImpersonate(actorRole, targetRole string) bool {
	return Rank(Normalize(actorRole)) > Rank(Normalize(targetRole))
}
