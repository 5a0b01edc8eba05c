// Package rbac defines the dashboard's role hierarchy: normalization of
// heterogeneous role strings into four canonical roles, integer ranking,
// and the privilege and impersonation-eligibility predicates built on that
// ranking. All functions are pure and total; unrecognized input always
// resolves to the least-privileged role.
package rbac
