package dom

// Event types dispatched by the document.
const (
	EventClick   = "click"
	EventKeyDown = "keydown"
)

// Key codes, matching the physical key identifiers browsers report.
const (
	KeyArrowLeft  = "ArrowLeft"
	KeyArrowRight = "ArrowRight"
	KeyArrowUp    = "ArrowUp"
	KeyArrowDown  = "ArrowDown"
	KeyHome       = "Home"
	KeyEnd        = "End"
	KeyEnter      = "Enter"
	KeySpace      = "Space"
	KeyTab        = "Tab"
	KeyEscape     = "Escape"
)

// KeyEvent describes a key press.
type KeyEvent struct {
	Code  string
	Meta  bool
	Alt   bool
	Ctrl  bool
	Shift bool
}

// Event is passed to listeners during dispatch.
type Event struct {
	Type string
	// Target is the element the event was dispatched to.
	Target *Element
	// CurrentTarget is the element whose listener is running.
	CurrentTarget *Element
	// Key is set for keydown events.
	Key KeyEvent

	stopped bool
}

// StopPropagation prevents the event from reaching further ancestors.
func (ev *Event) StopPropagation() {
	ev.stopped = true
}

// PropagationStopped reports whether StopPropagation was called.
func (ev *Event) PropagationStopped() bool {
	return ev.stopped
}

// Listener handles a dispatched event.
type Listener func(ev *Event)

// AddEventListener registers fn for events of the given type on e.
func (e *Element) AddEventListener(typ string, fn Listener) {
	if fn == nil {
		return
	}
	if e.listeners == nil {
		e.listeners = make(map[string][]Listener)
	}
	e.listeners[typ] = append(e.listeners[typ], fn)
}

// Dispatch delivers ev to e and then to each ancestor until propagation is
// stopped. Listeners run synchronously in registration order.
func (e *Element) Dispatch(ev *Event) {
	if ev.Target == nil {
		ev.Target = e
	}
	for cur := e; cur != nil; cur = cur.Parent() {
		ls := cur.listeners[ev.Type]
		if len(ls) == 0 {
			continue
		}
		ev.CurrentTarget = cur
		// Copy so listeners registered during dispatch wait for the next event.
		for _, fn := range append([]Listener(nil), ls...) {
			fn(ev)
		}
		if ev.stopped {
			return
		}
	}
}

// Click simulates pointer activation of el. Natively focusable elements
// take focus first, as they do in a browser; the click event then bubbles.
func (d *Document) Click(el *Element) {
	if el == nil || el.disabled() {
		return
	}
	if el.nativelyFocusable() {
		el.Focus()
	}
	el.Dispatch(&Event{Type: EventClick, Target: el})
}

// KeyDown dispatches a keydown event to the focused element, or to the
// body when nothing has focus. It returns the event after dispatch.
func (d *Document) KeyDown(key KeyEvent) *Event {
	ev := &Event{Type: EventKeyDown, Key: key}
	target := d.active
	if target == nil {
		target = d.Body()
	}
	if target == nil {
		return ev
	}
	ev.Target = target
	target.Dispatch(ev)
	return ev
}

// SequentialFocusOrder returns the elements tab navigation visits, in
// document order.
func (d *Document) SequentialFocusOrder() []*Element {
	var out []*Element
	for _, el := range d.elementsInOrder() {
		if el.InSequentialFocusOrder() {
			out = append(out, el)
		}
	}
	return out
}

// FocusNext moves focus to the next element in sequential focus order,
// wrapping at the end, and returns it. It returns nil when no element is
// focusable.
func (d *Document) FocusNext() *Element {
	return d.moveFocus(1)
}

// FocusPrevious moves focus to the previous element in sequential focus
// order, wrapping at the start, and returns it.
func (d *Document) FocusPrevious() *Element {
	return d.moveFocus(-1)
}

func (d *Document) moveFocus(delta int) *Element {
	order := d.SequentialFocusOrder()
	if len(order) == 0 {
		return nil
	}

	// An active element outside the order (tabindex -1) continues from
	// its position in the document.
	pos := -1
	if d.active != nil {
		for i, el := range order {
			if el == d.active {
				pos = i
				break
			}
		}
		if pos < 0 {
			pos = d.insertionPoint(order, delta)
		}
	}

	var next int
	switch {
	case pos < 0 && delta > 0:
		next = 0
	case pos < 0:
		next = len(order) - 1
	default:
		next = (pos + delta + len(order)) % len(order)
	}
	order[next].Focus()
	return order[next]
}

// insertionPoint returns the index in order that the active element sits
// just after (delta > 0) or just before (delta < 0), so that moving by delta
// lands on its real neighbour.
func (d *Document) insertionPoint(order []*Element, delta int) int {
	all := d.elementsInOrder()
	index := make(map[*Element]int, len(all))
	for i, el := range all {
		index[el] = i
	}
	at := index[d.active]
	if delta > 0 {
		pos := -1
		for i, el := range order {
			if index[el] < at {
				pos = i
			}
		}
		return pos
	}
	for i, el := range order {
		if index[el] > at {
			return i
		}
	}
	return len(order)
}
