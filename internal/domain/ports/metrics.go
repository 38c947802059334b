package ports

import "time"

// Metrics records delivery outcomes.
type Metrics interface {
	ObserveDelivery(trigger, outcome string, elapsed time.Duration)
}
