package entity

const (
	PlayerOne = "P1"
	PlayerTwo = "P2"

	EmptyCell = ""
)

// Opponent - returns the mark of the other player.
func Opponent(mark string) string {
	if mark == PlayerOne {
		return PlayerTwo
	}
	return PlayerOne
}
