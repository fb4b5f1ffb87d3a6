package game

import "errors"

// Validation errors. Their text is shown to the requesting player.
var (
	ErrRoomNotFound  = errors.New("Room not found")
	ErrWrongPassword = errors.New("Incorrect password")
	ErrRoomFull      = errors.New("Room is full")
	ErrAlreadyInRoom = errors.New("Already in this room")
)

var errRoomIdExhausted = errors.New("could not allocate a unique room id")

// PublicMessage maps an engine error to the text sent back over the wire.
// Anything that is not a validation error is reported generically.
func PublicMessage(err error) string {
	for _, known := range []error{ErrRoomNotFound, ErrWrongPassword, ErrRoomFull, ErrAlreadyInRoom} {
		if errors.Is(err, known) {
			return known.Error()
		}
	}
	return "Something went wrong"
}
