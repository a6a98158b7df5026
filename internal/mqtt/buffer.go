package mqtt

import "log"

// message is a serialized MQTT publish kept for replay after reconnection.
type message struct {
	topic    string
	payload  []byte
	qos      byte
	retained bool
}

// ringBuffer is a fixed-capacity FIFO of messages published while offline.
// Not safe for concurrent use; RealPublisher holds its mutex around it.
type ringBuffer struct {
	buf      []message
	head     int // next write position
	count    int
	dropped  uint64 // total messages overwritten since creation
	overflow bool   // a message was dropped since the last drain
}

func newRingBuffer(capacity int) *ringBuffer {
	return &ringBuffer{buf: make([]message, capacity)}
}

// push appends msg, overwriting the oldest entry when full.
func (r *ringBuffer) push(msg message) {
	n := len(r.buf)
	if r.count == n {
		if !r.overflow {
			log.Printf("mqtt: offline buffer full (%d messages), dropping oldest", n)
			r.overflow = true
		}
		r.dropped++
	} else {
		r.count++
	}
	r.buf[r.head] = msg
	r.head = (r.head + 1) % n
}

// drain returns the buffered messages oldest first and empties the buffer.
func (r *ringBuffer) drain() []message {
	if r.count == 0 {
		return nil
	}
	n := len(r.buf)
	out := make([]message, r.count)
	start := (r.head - r.count + n) % n
	for i := range out {
		out[i] = r.buf[(start+i)%n]
		r.buf[(start+i)%n] = message{}
	}
	r.count = 0
	r.head = 0
	r.overflow = false
	return out
}

func (r *ringBuffer) len() int {
	return r.count
}
