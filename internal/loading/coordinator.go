package loading

import "sync"

// SubscriberFunc receives the number of outstanding network operations each
// time it changes. Subscribers are expected to be idempotent.
type SubscriberFunc func(outstandingCount int)

// Coordinator is a process-wide reference counter for in-flight network
// operations. Every operation brackets itself with Start and Stop; any number
// of subscribers observe the resulting count to drive a global activity
// indicator.
//
// Deliveries are serialized under a dedicated delivery mutex acquired before
// the state mutex is released, so subscribers observe count transitions in
// the order they happened and the final delivery always matches Count().
// Subscribers must not call back into the Coordinator.
type Coordinator struct {
	mutex            sync.Mutex
	deliveryMutex    sync.Mutex
	outstandingCount int
	nextSubscriberID int64
	subscribers      map[int64]SubscriberFunc
}

// NewCoordinator constructs a Coordinator with no outstanding operations.
func NewCoordinator() *Coordinator {
	return &Coordinator{
		subscribers: make(map[int64]SubscriberFunc),
	}
}

// Start records the dispatch of one network operation and notifies every
// subscriber with the new count.
func (coordinator *Coordinator) Start() {
	coordinator.mutex.Lock()
	coordinator.outstandingCount++
	notifications := coordinator.snapshotLocked()
	currentCount := coordinator.outstandingCount
	coordinator.deliveryMutex.Lock()
	coordinator.mutex.Unlock()

	deliver(notifications, currentCount)
	coordinator.deliveryMutex.Unlock()
}

// Stop records the settlement of one network operation and notifies every
// subscriber. The count is clamped at zero so an unmatched Stop never
// underflows.
func (coordinator *Coordinator) Stop() {
	coordinator.mutex.Lock()
	if coordinator.outstandingCount > 0 {
		coordinator.outstandingCount--
	}
	notifications := coordinator.snapshotLocked()
	currentCount := coordinator.outstandingCount
	coordinator.deliveryMutex.Lock()
	coordinator.mutex.Unlock()

	deliver(notifications, currentCount)
	coordinator.deliveryMutex.Unlock()
}

// Subscribe registers the callback and immediately invokes it with the
// current count so late subscribers observe correct state. The returned
// function removes the subscription; calling it more than once is a no-op.
func (coordinator *Coordinator) Subscribe(subscriber SubscriberFunc) func() {
	coordinator.mutex.Lock()
	subscriberID := coordinator.nextSubscriberID
	coordinator.nextSubscriberID++
	coordinator.subscribers[subscriberID] = subscriber
	currentCount := coordinator.outstandingCount
	coordinator.deliveryMutex.Lock()
	coordinator.mutex.Unlock()

	subscriber(currentCount)
	coordinator.deliveryMutex.Unlock()

	var once sync.Once
	return func() {
		once.Do(func() {
			coordinator.mutex.Lock()
			delete(coordinator.subscribers, subscriberID)
			coordinator.mutex.Unlock()
		})
	}
}

// Count reports the current number of outstanding operations.
func (coordinator *Coordinator) Count() int {
	coordinator.mutex.Lock()
	defer coordinator.mutex.Unlock()
	return coordinator.outstandingCount
}

func (coordinator *Coordinator) snapshotLocked() []SubscriberFunc {
	if len(coordinator.subscribers) == 0 {
		return nil
	}
	notifications := make([]SubscriberFunc, 0, len(coordinator.subscribers))
	for _, subscriber := range coordinator.subscribers {
		notifications = append(notifications, subscriber)
	}
	return notifications
}

func deliver(notifications []SubscriberFunc, currentCount int) {
	for _, subscriber := range notifications {
		subscriber(currentCount)
	}
}
