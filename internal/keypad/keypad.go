// Package keypad defines the boundary types of the keypad collaborator.
// The driver scans the physical 3x4 matrix and debounces contacts; this
// package only names what it produces.
package keypad

// Key is one key of the 3x4 matrix:
//
//	1 2 3
//	4 5 6
//	7 8 9
//	* 0 #
type Key rune

// Non-digit keys
const (
	KeyEnter  Key = '#'
	KeyCancel Key = '*'
)

// Digit returns the key's digit value if it is a digit key.
func (k Key) Digit() (int, bool) {
	if k >= '0' && k <= '9' {
		return int(k - '0'), true
	}
	return 0, false
}

// String returns the key's label.
func (k Key) String() string {
	return string(rune(k))
}

// Edge is the direction of a key state change.
type Edge int

// Key state changes
const (
	EdgeDown Edge = iota // key pressed
	EdgeUp               // key released
)

// Event is one debounced key state change.
type Event struct {
	Key  Key
	Edge Edge
}
