package domain

import "fmt"

type Entity string

const (
	EntityOrder   Entity = "order"
	EntityItem    Entity = "item"
	EntityAccount Entity = "account"
)

type InvalidStateReason string

const (
	ReasonOrderNotPayable     InvalidStateReason = "order_not_payable"
	ReasonOrderNotShippable   InvalidStateReason = "order_not_shippable"
	ReasonOrderNotCompletable InvalidStateReason = "order_not_completable"
	ReasonOrderNotCancellable InvalidStateReason = "order_not_cancellable"
	ReasonOrderStatusConflict InvalidStateReason = "order_status_conflict"
	ReasonItemStatusConflict  InvalidStateReason = "item_status_conflict"
	ReasonItemNotAvailable    InvalidStateReason = "item_not_available"
	ReasonIllegalTransition   InvalidStateReason = "illegal_transition"
)

//region NotFoundError

// NotFoundError matches any NotFoundError target with an empty Entity, or one naming the same entity.
type NotFoundError struct {
	Entity Entity
	Msg    string
}

func NewNotFoundError(entity Entity, id int64) *NotFoundError {
	return &NotFoundError{Entity: entity, Msg: fmt.Sprintf("%s with id %d not found", entity, id)}
}

func (e *NotFoundError) Error() string {
	return e.Msg
}

func (e *NotFoundError) Is(target error) bool {
	t, ok := target.(*NotFoundError)
	if !ok {
		return false
	}

	return t.Entity == "" || t.Entity == e.Entity
}

//endregion

//region ForbiddenError

type ForbiddenError struct {
	Msg string
}

func (e *ForbiddenError) Error() string {
	return e.Msg
}

func (e *ForbiddenError) Is(target error) bool {
	_, ok := target.(*ForbiddenError)
	return ok
}

//endregion

//region InvalidStateError

// InvalidStateError matches any InvalidStateError target with an empty Reason, or one with the same reason.
type InvalidStateError struct {
	Reason InvalidStateReason
	Msg    string
}

func (e *InvalidStateError) Error() string {
	return e.Msg
}

func (e *InvalidStateError) Is(target error) bool {
	t, ok := target.(*InvalidStateError)
	if !ok {
		return false
	}

	return t.Reason == "" || t.Reason == e.Reason
}

//endregion

//region InsufficientFundsError

type InsufficientFundsError struct {
	Msg string
}

func (e *InsufficientFundsError) Error() string {
	return e.Msg
}

func (e *InsufficientFundsError) Is(target error) bool {
	_, ok := target.(*InsufficientFundsError)
	return ok
}

//endregion

//region SelfPurchaseForbiddenError

type SelfPurchaseForbiddenError struct {
	Msg string
}

func (e *SelfPurchaseForbiddenError) Error() string {
	return e.Msg
}

func (e *SelfPurchaseForbiddenError) Is(target error) bool {
	_, ok := target.(*SelfPurchaseForbiddenError)
	return ok
}

//endregion

//region InvalidPriceError

type InvalidPriceError struct {
	Msg string
}

func (e *InvalidPriceError) Error() string {
	return e.Msg
}

func (e *InvalidPriceError) Is(target error) bool {
	_, ok := target.(*InvalidPriceError)
	return ok
}

//endregion

//region InvalidArgumentsError

type InvalidArgumentsError struct {
	Msg string
}

func (e *InvalidArgumentsError) Error() string {
	return e.Msg
}

func (e *InvalidArgumentsError) Is(target error) bool {
	_, ok := target.(*InvalidArgumentsError)
	return ok
}

//endregion

//region BusyError

// BusyError reports that a unit of work gave up waiting for row locks. The operation had no effect
// and may be retried.
type BusyError struct {
	Msg string
	Err error
}

func (e *BusyError) Error() string {
	return e.Msg
}

func (e *BusyError) Unwrap() error {
	return e.Err
}

func (e *BusyError) Is(target error) bool {
	_, ok := target.(*BusyError)
	return ok
}

//endregion
