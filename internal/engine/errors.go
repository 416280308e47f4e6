package engine

import (
	"errors"
	"fmt"

	"github.com/benbeisheim/chessrules/internal/model"
)

// ErrIllegalMove matches every *RejectedError via errors.Is.
var ErrIllegalMove = errors.New("illegal move")

// Rejection reasons, listed in the order the legality filter checks them.
var (
	ErrMalformedSquare  = errors.New("malformed square")
	ErrNoPiece          = errors.New("no piece at from square")
	ErrWrongTurn        = errors.New("not your turn")
	ErrOwnPiece         = errors.New("destination holds own piece")
	ErrUnreachable      = errors.New("piece cannot reach destination")
	ErrKingExposed      = errors.New("move leaves own king in check")
	ErrInvalidPromotion = errors.New("invalid promotion piece")
)

// RejectedError reports the first rule a proposed move violated.
// Move is nil when the input could not be parsed into a request.
type RejectedError struct {
	Move   *model.MoveRequest
	Reason error
}

func (e *RejectedError) Error() string {
	if e.Move != nil && e.Move.From.Valid() && e.Move.To.Valid() {
		return fmt.Sprintf("%s: %s: %v", ErrIllegalMove, e.Move.UCI(), e.Reason)
	}
	return fmt.Sprintf("%s: %v", ErrIllegalMove, e.Reason)
}

func (e *RejectedError) Unwrap() error {
	return e.Reason
}

func (e *RejectedError) Is(target error) bool {
	return target == ErrIllegalMove
}

func reject(req model.MoveRequest, reason error) error {
	return &RejectedError{Move: &req, Reason: reason}
}

func rejectInput(reason error) error {
	return &RejectedError{Reason: reason}
}
