package acm

import "sync"

// Pipe is an in-memory Connection used by tests and host-side loopbacks.
// NewPipe returns both endpoints of a connected pair; closing either end
// surfaces ErrDisconnected on both.
type Pipe struct {
	out  chan<- []byte
	in   <-chan []byte
	done chan struct{}
	once *sync.Once
}

// NewPipe creates a connected pair of packet endpoints.
func NewPipe() (*Pipe, *Pipe) {
	aToB := make(chan []byte, 16)
	bToA := make(chan []byte, 16)
	done := make(chan struct{})
	once := &sync.Once{}

	a := &Pipe{out: aToB, in: bToA, done: done, once: once}
	b := &Pipe{out: bToA, in: aToB, done: done, once: once}
	return a, b
}

// WaitConnection returns immediately: an in-memory pair is connected from
// construction. After Close it blocks forever, mirroring a host that never
// comes back.
func (p *Pipe) WaitConnection() {
	select {
	case <-p.done:
		select {} // closed pipes do not reconnect
	default:
	}
}

// SendPacket queues one packet for the peer.
func (p *Pipe) SendPacket(data []byte) error {
	if len(data) > MaxPacketSize {
		panic("acm: packet exceeds MaxPacketSize")
	}

	packet := make([]byte, len(data))
	copy(packet, data)

	select {
	case <-p.done:
		return ErrDisconnected
	case p.out <- packet:
		return nil
	}
}

// ReceivePacket blocks for the next packet from the peer.
func (p *Pipe) ReceivePacket(buffer []byte) (int, error) {
	select {
	case <-p.done:
		return 0, ErrDisconnected
	case packet := <-p.in:
		if len(packet) > len(buffer) {
			panic("acm: receive buffer smaller than incoming packet")
		}
		return copy(buffer, packet), nil
	}
}

// Close disconnects both endpoints. Packets still in flight are dropped.
func (p *Pipe) Close() {
	p.once.Do(func() { close(p.done) })
}
