package kernel

import (
	"runtime"
	"sync"
	"testing"
)

func TestMailboxTryRecvEmpty(t *testing.T) {
	var mb Mailbox

	_, ok := mb.TryRecv()
	if ok {
		t.Fatalf("TryRecv() ok = true, want false")
	}
}

func TestMailboxTrySendFull(t *testing.T) {
	var mb Mailbox
	var msg Message

	for round := 0; round < 3; round++ {
		for i := 0; i < mailboxSlots; i++ {
			if ok := mb.TrySend(msg); !ok {
				t.Fatalf("round %d: TrySend() ok = false at slot %d, want true", round, i)
			}
		}
		if ok := mb.TrySend(msg); ok {
			t.Fatalf("round %d: TrySend() ok = true when full, want false", round)
		}

		for i := 0; i < mailboxSlots; i++ {
			if _, ok := mb.TryRecv(); !ok {
				t.Fatalf("round %d: TryRecv() ok = false at slot %d, want true", round, i)
			}
		}
		if _, ok := mb.TryRecv(); ok {
			t.Fatalf("round %d: TryRecv() ok = true after draining", round)
		}
	}
}

func TestMailboxPreservesOrder(t *testing.T) {
	var mb Mailbox
	for i := 0; i < 5; i++ {
		mb.Send(Message{Kind: uint8(i)})
	}
	for i := 0; i < 5; i++ {
		msg := mb.Recv()
		if int(msg.Kind) != i {
			t.Fatalf("Recv() kind = %d, want %d", msg.Kind, i)
		}
	}
}

func TestMailboxConcurrentProducers(t *testing.T) {
	oldProcs := runtime.GOMAXPROCS(1)
	defer runtime.GOMAXPROCS(oldProcs)

	const (
		producers = 4
		perProd   = 5_000
		total     = producers * perProd
	)

	var mb Mailbox

	start := make(chan struct{})
	var wg sync.WaitGroup
	wg.Add(producers)
	for producerID := 0; producerID < producers; producerID++ {
		go func(producerID int) {
			defer wg.Done()
			<-start
			for i := 0; i < perProd; i++ {
				id := producerID*perProd + i
				mb.Send(Message{Kind: MsgDone, Fn: func() { _ = id }, Err: idErr(id)})
			}
		}(producerID)
	}
	close(start)

	seen := make([]bool, total)
	for i := 0; i < total; i++ {
		msg := mb.Recv()
		id := int(msg.Err.(idErr))
		if id >= total {
			t.Fatalf("Recv() id = %d, want < %d", id, total)
		}
		if seen[id] {
			t.Fatalf("Recv() duplicate id %d", id)
		}
		seen[id] = true
	}

	wg.Wait()
}

type idErr int

func (e idErr) Error() string { return "id" }
