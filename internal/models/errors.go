package models

import "errors"

// ErrNotFound is the explicit negative result for a missing order, table or
// menu item. Handlers map it to 404; it is never wrapped in a generic 500.
var ErrNotFound = errors.New("not found")

// ErrEmptyCart signals a checkout attempted against an empty cart
var ErrEmptyCart = errors.New("cart is empty")
