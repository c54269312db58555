package input

// Key is an abstract game key. Front ends map their device codes onto these.
type Key uint8

const (
	KeyUp Key = iota
	KeyDown
	KeyLeft
	KeyRight
	KeyThrust
	KeyBrake
	KeyYawLeft
	KeyYawRight
	KeyRollLeft
	KeyRollRight
	KeyFire
	KeyGrow
	KeyPause
	KeyQuit
	keyCount
)

var keyNames = [keyCount]string{
	"up", "down", "left", "right",
	"thrust", "brake", "yaw_left", "yaw_right", "roll_left", "roll_right",
	"fire", "grow", "pause", "quit",
}

func (k Key) String() string {
	if k >= keyCount {
		return "unknown"
	}
	return keyNames[k]
}
