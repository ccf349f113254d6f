package stream

import "io"

// EventReader provides events, returning io.EOF after the last one.
type EventReader interface {
	ReadEvent() (*Event, error)
}

// EventSink receives events (builder, encoder, etc.).
type EventSink interface {
	WriteEvent(*Event) error
}

// EventRecorder is an EventSink which keeps the events it receives.
type EventRecorder struct {
	Events []*Event
}

func (r *EventRecorder) WriteEvent(ev *Event) error {
	r.Events = append(r.Events, ev)
	return nil
}

// Reader replays the recorded events.
func (r *EventRecorder) Reader() EventReader {
	return &SliceEventReader{Events: r.Events}
}

// SliceEventReader reads events from a slice.
type SliceEventReader struct {
	Events []*Event
	i      int
}

func (r *SliceEventReader) ReadEvent() (*Event, error) {
	if r.i >= len(r.Events) {
		return nil, io.EOF
	}
	ev := r.Events[r.i]
	r.i++
	return ev, nil
}

// Copy writes all events of r to sink.
func Copy(sink EventSink, r EventReader) error {
	for {
		ev, err := r.ReadEvent()
		if err == io.EOF {
			return nil
		}
		if err != nil {
			return err
		}
		if err := sink.WriteEvent(ev); err != nil {
			return err
		}
	}
}

// FuncSink adapts a function to an EventSink.
type FuncSink func(*Event) error

func (f FuncSink) WriteEvent(ev *Event) error {
	return f(ev)
}
