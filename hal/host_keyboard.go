package hal

type hostKeyboard struct {
	ch chan KeyEvent
}

func newHostKeyboard() *hostKeyboard {
	return &hostKeyboard{ch: make(chan KeyEvent, 64)}
}

func (k *hostKeyboard) Events() <-chan KeyEvent { return k.ch }

// push queues ev, dropping it if the queue is full.
func (k *hostKeyboard) push(ev KeyEvent) bool {
	select {
	case k.ch <- ev:
		return true
	default:
		return false
	}
}

type hostDrops struct {
	ch chan Drop
}

func newHostDrops() *hostDrops {
	return &hostDrops{ch: make(chan Drop, 8)}
}

func (d *hostDrops) Files() <-chan Drop { return d.ch }

func (d *hostDrops) push(f Drop) bool {
	select {
	case d.ch <- f:
		return true
	default:
		return false
	}
}
