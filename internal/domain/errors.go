// Package domain contains room and member meta-data without transport or lifecycle logic.
package domain

import "errors"

// Admission errors. Their text is returned to rejected clients as is.
var (
	ErrRoomNotFound = errors.New("room does not exist")
	ErrNameTaken    = errors.New("username already taken")
)
