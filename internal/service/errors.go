package service

import "errors"

// Validation errors are caught before any command reaches the store.
var (
	ErrEmptyField      = errors.New("required field is empty")
	ErrNegativeAmount  = errors.New("amount must not be negative")
	ErrEndBeforeStart  = errors.New("phase end precedes its start")
	ErrPhaseOverlap    = errors.New("phase starts before the previous phase ends")
	ErrInvalidPayer    = errors.New("unknown payer")
	ErrNotProjectOwner = errors.New("only the project creator may do this")
	ErrNotMember       = errors.New("not a member of this project")
	ErrAlreadyMember   = errors.New("already a member of this project")
	ErrProjectExists   = errors.New("member already owns a project")
	ErrRemoveCreator   = errors.New("the project creator cannot be removed")
)
