package domain

type Role string

const (
	RoleUser    Role = "user"
	RoleAdmin   Role = "admin"
	RoleSales   Role = "sales"
	RoleShipper Role = "shipper"
)

// KnownRole reports whether r is one of the closed role set.
func KnownRole(r Role) bool {
	switch r {
	case RoleUser, RoleAdmin, RoleSales, RoleShipper:
		return true
	}
	return false
}

// Actor is the authenticated caller as established by the upstream identity
// provider. Authentication itself happens outside this core.
type Actor struct {
	Email string
	Role  Role
}

type Operation string

const (
	OpSubmitOrder  Operation = "submit_order"
	OpResolveOrder Operation = "resolve_order"
	OpRestock      Operation = "restock"
	OpRemoveStock  Operation = "remove_stock"
	OpListStock    Operation = "list_stock"
	OpListOrders   Operation = "list_orders"
)

// permissions is the single authorization table: adding a role or opening an
// operation to one is an edit here, not a code-path audit.
var permissions = map[Operation]map[Role]bool{
	OpSubmitOrder:  {RoleUser: true, RoleAdmin: true, RoleSales: true},
	OpResolveOrder: {RoleAdmin: true},
	OpRestock:      {RoleAdmin: true},
	OpRemoveStock:  {RoleAdmin: true},
	OpListStock:    {RoleUser: true, RoleAdmin: true, RoleSales: true, RoleShipper: true},
	OpListOrders:   {RoleUser: true, RoleAdmin: true, RoleSales: true, RoleShipper: true},
}

// Can reports whether the actor's role permits op.
func (a Actor) Can(op Operation) bool {
	return permissions[op][a.Role]
}
