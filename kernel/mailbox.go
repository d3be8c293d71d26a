package kernel

import (
	"runtime"
	"sync/atomic"
)

// Message is a completion envelope posted by a background producer.
type Message struct {
	Kind uint8
	Err  error
	Fn   func()
}

const (
	MsgDone uint8 = iota + 1
)

const mailboxSlots = 16

type slot struct {
	// seq is stored relative to the slot index so the zero Mailbox is ready to use.
	seq atomic.Uint32
	msg Message
}

// Mailbox is a fixed-size multi-producer, single-consumer queue.
// Producers never allocate; a full mailbox busy-waits with Gosched().
type Mailbox struct {
	_     [0]func() // prevent accidental copying.
	head  atomic.Uint32
	tail  atomic.Uint32
	slots [mailboxSlots]slot
}

func (mb *Mailbox) seqAt(pos uint32) uint32 {
	i := pos % mailboxSlots
	return mb.slots[i].seq.Load() + i
}

func (mb *Mailbox) setSeq(pos, seq uint32) {
	i := pos % mailboxSlots
	mb.slots[i].seq.Store(seq - i)
}

// TrySend attempts to enqueue a message, returning false if the mailbox is full.
func (mb *Mailbox) TrySend(msg Message) bool {
	for {
		head := mb.head.Load()
		seq := mb.seqAt(head)
		switch diff := int32(seq - head); {
		case diff == 0:
			// Reserve the slot, then publish it by bumping its sequence.
			if !mb.head.CompareAndSwap(head, head+1) {
				continue
			}
			mb.slots[head%mailboxSlots].msg = msg
			mb.setSeq(head, head+1)
			return true
		case diff < 0:
			return false
		default:
			runtime.Gosched()
		}
	}
}

// Send enqueues a message, blocking until it succeeds.
func (mb *Mailbox) Send(msg Message) {
	for !mb.TrySend(msg) {
		runtime.Gosched()
	}
}

// TryRecv attempts to dequeue one message, returning false if empty.
// Only one goroutine may receive.
func (mb *Mailbox) TryRecv() (Message, bool) {
	tail := mb.tail.Load()
	if int32(mb.seqAt(tail)-(tail+1)) < 0 {
		return Message{}, false
	}

	s := &mb.slots[tail%mailboxSlots]
	msg := s.msg
	s.msg = Message{}
	mb.setSeq(tail, tail+mailboxSlots)
	mb.tail.Store(tail + 1)
	return msg, true
}

// Recv blocks until one message is available.
func (mb *Mailbox) Recv() Message {
	for {
		msg, ok := mb.TryRecv()
		if ok {
			return msg
		}
		runtime.Gosched()
	}
}
