package shared

import "fmt"

// DomainError is the base error type for all domain errors
type DomainError struct {
	Message string
}

func (e *DomainError) Error() string {
	return e.Message
}

func NewDomainError(message string) *DomainError {
	return &DomainError{Message: message}
}

// Catalog errors

// UnknownDefinitionError is returned when the catalog has no definition for an id
type UnknownDefinitionError struct {
	*DomainError
	DefinitionID string
}

func NewUnknownDefinitionError(definitionID string) *UnknownDefinitionError {
	return &UnknownDefinitionError{
		DomainError:  NewDomainError(fmt.Sprintf("unknown definition: %s", definitionID)),
		DefinitionID: definitionID,
	}
}

// NotPlantableError is returned when a definition exists but cannot be planted
type NotPlantableError struct {
	*DomainError
	DefinitionID string
}

func NewNotPlantableError(definitionID string) *NotPlantableError {
	return &NotPlantableError{
		DomainError:  NewDomainError(fmt.Sprintf("item %s is not plantable", definitionID)),
		DefinitionID: definitionID,
	}
}

// Inventory errors

// InsufficientQuantityError is returned when an inventory stack is missing or short
type InsufficientQuantityError struct {
	*DomainError
	ItemID    string
	Required  int
	Available int
}

func NewInsufficientQuantityError(itemID string, required, available int) *InsufficientQuantityError {
	return &InsufficientQuantityError{
		DomainError: NewDomainError(fmt.Sprintf("insufficient quantity of %s: need %d, have %d", itemID, required, available)),
		ItemID:      itemID,
		Required:    required,
		Available:   available,
	}
}

// NotOwnedError is returned when a player tries to use an item they do not hold
type NotOwnedError struct {
	*DomainError
	ItemID string
	cause  error
}

func NewNotOwnedError(itemID string, cause error) *NotOwnedError {
	return &NotOwnedError{
		DomainError: NewDomainError(fmt.Sprintf("item %s is not owned", itemID)),
		ItemID:      itemID,
		cause:       cause,
	}
}

func (e *NotOwnedError) Unwrap() error {
	return e.cause
}

// Currency errors

// InsufficientFundsError is returned when a debit exceeds the player's currency
type InsufficientFundsError struct {
	*DomainError
	Required  int
	Available int
}

func NewInsufficientFundsError(required, available int) *InsufficientFundsError {
	return &InsufficientFundsError{
		DomainError: NewDomainError(fmt.Sprintf("insufficient funds: need %d, have %d", required, available)),
		Required:    required,
		Available:   available,
	}
}

// Ownership errors

// GrowableNotFoundError is returned when a harvest targets a growable the player does not own
type GrowableNotFoundError struct {
	*DomainError
	GrowableID string
}

func NewGrowableNotFoundError(growableID string) *GrowableNotFoundError {
	return &GrowableNotFoundError{
		DomainError: NewDomainError(fmt.Sprintf("planted growable not found: %s", growableID)),
		GrowableID:  growableID,
	}
}

// UnknownMemberError is returned when a guild member id does not resolve to an owned member
type UnknownMemberError struct {
	*DomainError
	MemberID string
}

func NewUnknownMemberError(memberID string) *UnknownMemberError {
	return &UnknownMemberError{
		DomainError: NewDomainError(fmt.Sprintf("guild member not found: %s", memberID)),
		MemberID:    memberID,
	}
}

// Expedition errors

// MemberBusyError is returned when a member is already away on another expedition
type MemberBusyError struct {
	*DomainError
	MemberID string
}

func NewMemberBusyError(memberID string) *MemberBusyError {
	return &MemberBusyError{
		DomainError: NewDomainError(fmt.Sprintf("guild member %s is already on an expedition", memberID)),
		MemberID:    memberID,
	}
}

// EmptyPartyError is returned when an expedition would launch without any member
type EmptyPartyError struct {
	*DomainError
	DefinitionID string
}

func NewEmptyPartyError(definitionID string) *EmptyPartyError {
	return &EmptyPartyError{
		DomainError:  NewDomainError(fmt.Sprintf("expedition %s needs at least one available member", definitionID)),
		DefinitionID: definitionID,
	}
}

// Persistence errors

// TransactionFailedError wraps a collaborator failure that rolled an operation back
type TransactionFailedError struct {
	*DomainError
	Operation string
	cause     error
}

func NewTransactionFailedError(operation string, cause error) *TransactionFailedError {
	return &TransactionFailedError{
		DomainError: NewDomainError(fmt.Sprintf("transaction failed during %s: %v", operation, cause)),
		Operation:   operation,
		cause:       cause,
	}
}

func (e *TransactionFailedError) Unwrap() error {
	return e.cause
}

// Validation error

type ValidationError struct {
	Field   string
	Message string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("%s: %s", e.Field, e.Message)
}

func NewValidationError(field, message string) *ValidationError {
	return &ValidationError{Field: field, Message: message}
}
