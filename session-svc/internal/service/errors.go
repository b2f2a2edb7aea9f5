package service

import "errors"

var (
	ErrDeadlinePassed  = errors.New("order deadline has passed")
	ErrDuplicateOrder  = errors.New("order already exists for this user in the session")
	ErrForbidden       = errors.New("you do not have permission to do this")
	ErrInvalidMenuItem = errors.New("menu item does not belong to the session restaurant")
	ErrNotFound        = errors.New("not found")
	ErrValidation      = errors.New("validation failed")
)
