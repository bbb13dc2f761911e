package apperr

import (
	"errors"
	"fmt"
)

// Kind classifies a domain failure. Every kind maps 1:1 to a stable,
// documented condition so API clients never have to parse message text.
type Kind string

const (
	KindNotFound          Kind = "NOT_FOUND"
	KindAlreadyExists     Kind = "ALREADY_EXISTS"
	KindInvalidInput      Kind = "INVALID_INPUT"
	KindStateConflict     Kind = "STATE_CONFLICT"
	KindCapacityExceeded  Kind = "CAPACITY_EXCEEDED"
	KindInsufficientStock Kind = "INSUFFICIENT_STOCK"
	KindAccessDenied      Kind = "ACCESS_DENIED"
)

// Error is the typed failure every service operation returns. Entity and
// Ref identify what the failure is about (e.g. "product", "screws-m4").
type Error struct {
	Kind   Kind   `json:"kind"`
	Entity string `json:"entity,omitempty"`
	Ref    string `json:"ref,omitempty"`
	Msg    string `json:"message"`
}

func (e *Error) Error() string {
	if e.Ref != "" {
		return fmt.Sprintf("%s: %s (%s %q)", e.Kind, e.Msg, e.Entity, e.Ref)
	}
	return fmt.Sprintf("%s: %s", e.Kind, e.Msg)
}

// KindOf returns the Kind of err, or "" when err is not a domain error.
func KindOf(err error) Kind {
	var e *Error
	if errors.As(err, &e) {
		return e.Kind
	}
	return ""
}

// IsKind reports whether err is a domain error of the given kind.
func IsKind(err error, kind Kind) bool {
	return KindOf(err) == kind
}

func NotFound(entity, ref string) *Error {
	return &Error{Kind: KindNotFound, Entity: entity, Ref: ref, Msg: entity + " does not exist"}
}

func AlreadyExists(entity, ref string) *Error {
	return &Error{Kind: KindAlreadyExists, Entity: entity, Ref: ref, Msg: entity + " already exists"}
}

func EmptyData() *Error {
	return &Error{Kind: KindInvalidInput, Msg: "required data is empty"}
}

func InvalidInput(msg string) *Error {
	return &Error{Kind: KindInvalidInput, Msg: msg}
}

func StateConflict(entity, ref, msg string) *Error {
	return &Error{Kind: KindStateConflict, Entity: entity, Ref: ref, Msg: msg}
}

func ProductNotFound(name string) *Error  { return NotFound("product", name) }
func StockNotFound(ref string) *Error     { return NotFound("stock", ref) }
func EmployeeNotFound(ref string) *Error  { return NotFound("employee", ref) }
func WarehouseNotFound(id uint) *Error    { return NotFound("warehouse", fmt.Sprintf("%d", id)) }
func TaskNotFound(id uint) *Error         { return NotFound("warehouse task", fmt.Sprintf("%d", id)) }
func ProductAlreadyExists(name string) *Error   { return AlreadyExists("product", name) }
func WarehouseAlreadyExists(name string) *Error { return AlreadyExists("warehouse", name) }
func UsernameAlreadyExists(u string) *Error     { return AlreadyExists("username", u) }
func EmailAlreadyExists(e string) *Error        { return AlreadyExists("email", e) }

func InvalidSize(size string) *Error {
	return &Error{Kind: KindInvalidInput, Entity: "product size", Ref: size, Msg: "size of the product is incorrect"}
}

func IncorrectStatus(status string) *Error {
	return &Error{Kind: KindInvalidInput, Entity: "task status", Ref: status, Msg: "task status must be RECEPTION_AREA or RELEASE_AREA"}
}

func IllegalCapacity(min, max int64) *Error {
	return &Error{
		Kind:   KindInvalidInput,
		Entity: "warehouse capacity",
		Msg:    fmt.Sprintf("warehouse must be able to store between 500 and 2500 pallets (range %d - %d)", min, max),
	}
}

func OccupiedAreaInvalid(value int64) *Error {
	return &Error{
		Kind:   KindStateConflict,
		Entity: "occupied area",
		Ref:    fmt.Sprintf("%d", value),
		Msg:    "occupied area must stay between -1 and the warehouse capacity",
	}
}

func NonZeroStock(productName string) *Error {
	return StateConflict("product", productName, "product still has stock on hand")
}

func TaskNotApproved(id uint) *Error {
	return StateConflict("warehouse task", fmt.Sprintf("%d", id), "task has not been approved")
}

func TaskAlreadyCompleted(id uint) *Error {
	return StateConflict("warehouse task", fmt.Sprintf("%d", id), "task has already been completed")
}

func CapacityExceeded(warehouseID uint) *Error {
	return &Error{
		Kind:   KindCapacityExceeded,
		Entity: "warehouse",
		Ref:    fmt.Sprintf("%d", warehouseID),
		Msg:    "warehouse capacity exceeded",
	}
}

func InsufficientStock(productID uint) *Error {
	return &Error{
		Kind:   KindInsufficientStock,
		Entity: "stock",
		Ref:    fmt.Sprintf("%d", productID),
		Msg:    "not enough stock on hand",
	}
}

func AccessDenied(role, operation, resource string) *Error {
	return &Error{
		Kind:   KindAccessDenied,
		Entity: "role",
		Ref:    role,
		Msg:    fmt.Sprintf("role %s may not perform %s on %s", role, operation, resource),
	}
}

func InactiveEmployee(username string) *Error {
	return StateConflict("employee", username, "employee account is not activated")
}

func WrongCredentials() *Error {
	return &Error{Kind: KindAccessDenied, Msg: "wrong username or password"}
}
