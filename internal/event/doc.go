// Package event provides a pub-sub event bus for decoupled communication
// between the step sequencer and whatever presents it.
//
// # Main Types
//
//   - [Event]: Interface that all events must implement, providing EventType() and Timestamp()
//   - [Bus]: Synchronous pub-sub event dispatcher with thread-safe operations
//   - [Handler]: Function type for event handlers (func(Event))
//
// # Event Categories
//
// Run lifecycle:
//   - [RunStartedEvent], [RunFinishedEvent]
//
// Board:
//   - [BoardClearedEvent], [StepChangedEvent], [ArrowAnimatedEvent],
//     [ProgressEvent], [StepPulsedEvent]
//
// Info panel:
//   - [InfoShownEvent], [InfoHiddenEvent]
//
// # Thread Safety
//
// Subscribe, Unsubscribe and Publish may be called concurrently. Handlers
// run synchronously on the publishing goroutine, so they must be fast and
// must not publish back into the same sequencer.
//
// # Usage
//
//	bus := event.NewBus(logger)
//	bus.Subscribe(event.TypeStepChanged, func(e event.Event) {
//	    sc := e.(event.StepChangedEvent)
//	    fmt.Println(sc.Index, sc.State)
//	})
package event
