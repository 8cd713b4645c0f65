// Package authz holds the static role/capability table. Every workflow
// operation declares the set of roles allowed to invoke it; services call
// Require with the acting user and never compare role strings themselves.
package authz

import (
	"github.com/google/uuid"

	"github.com/Strife-cyber/agro/internal/apierror"
)

// Role is the tagged role type carried by every authenticated actor.
type Role string

const (
	RoleAdmin             Role = "admin"
	RoleSupplier          Role = "supplier"
	RoleBusinessDeveloper Role = "business_developer"
	RoleStockManager      Role = "stock_manager"
	RoleClient            Role = "client"
	RoleDriver            Role = "driver"
)

// Valid reports whether r is one of the known roles.
func (r Role) Valid() bool {
	switch r {
	case RoleAdmin, RoleSupplier, RoleBusinessDeveloper, RoleStockManager, RoleClient, RoleDriver:
		return true
	}
	return false
}

// Operation identifies a capability-checked workflow entry point.
type Operation string

const (
	OpApproCreate      Operation = "approvisionnement.create"
	OpApproValidateBD  Operation = "approvisionnement.validate_bd"
	OpApproRejectBD    Operation = "approvisionnement.reject_bd"
	OpApproReceive     Operation = "approvisionnement.receive_stock"
	OpApproRejectStock Operation = "approvisionnement.reject_stock"
	OpOrderProcess     Operation = "order.process"
	OpStockAdjust      Operation = "stock.adjust"
	OpStockTransfer    Operation = "stock.transfer"
	OpStockReport      Operation = "stock.report"
	OpStockAlert       Operation = "stock.alert"
)

// capabilities is the single source of truth for who may do what.
// Admin is listed explicitly rather than special-cased in Allowed so the
// table reads as the full policy.
var capabilities = map[Operation][]Role{
	OpApproCreate:      {RoleSupplier, RoleAdmin},
	OpApproValidateBD:  {RoleBusinessDeveloper, RoleAdmin},
	OpApproRejectBD:    {RoleBusinessDeveloper, RoleAdmin},
	OpApproReceive:     {RoleStockManager, RoleAdmin},
	OpApproRejectStock: {RoleStockManager, RoleAdmin},
	OpOrderProcess:     {RoleClient, RoleAdmin},
	OpStockAdjust:      {RoleStockManager, RoleAdmin},
	OpStockTransfer:    {RoleStockManager, RoleAdmin},
	OpStockReport:      {RoleStockManager, RoleAdmin},
	OpStockAlert:       {RoleStockManager, RoleAdmin},
}

// Allowed is a pure function over (role, operation).
func Allowed(role Role, op Operation) bool {
	for _, r := range capabilities[op] {
		if r == role {
			return true
		}
	}
	return false
}

// Actor is the identity the middleware resolves for each request. The
// core trusts it and only checks role membership.
type Actor struct {
	ID   uuid.UUID
	Role Role
}

// Require returns a permission error when the actor's role is not in the
// operation's allow-list.
func Require(actor Actor, op Operation) error {
	if !Allowed(actor.Role, op) {
		return apierror.Forbidden(string(op))
	}
	return nil
}
