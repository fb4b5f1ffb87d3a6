package utils

import (
	"crypto/rand"
	"math/big"
)

const (
	RoomCodeLength   = 6
	roomCodeAlphabet = "0123456789ABCDEFGHIJKLMNOPQRSTUVWXYZ"
)

// GenerateRoomCode returns a short uppercase base36 code used as a room id.
func GenerateRoomCode() string {
	return GenerateCode(RoomCodeLength)
}

// GenerateCode returns n characters drawn uniformly from the room code alphabet.
func GenerateCode(n int) string {
	base := big.NewInt(int64(len(roomCodeAlphabet)))
	b := make([]byte, n)
	for i := range b {
		idx, err := rand.Int(rand.Reader, base)
		if err != nil {
			// crypto/rand does not fail on supported platforms
			panic(err)
		}
		b[i] = roomCodeAlphabet[idx.Int64()]
	}
	return string(b)
}
