package component

// Fruit is a pickup the chain head grows on. Phase drives its pulse animation.
type Fruit struct {
	Phase float32
}
