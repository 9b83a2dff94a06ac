package core

import (
	"fmt"
	"testing"
)

func benchmarkRoomFanout(b *testing.B, recipients int) {
	room := NewRoom("bench")

	sender := NewClient("sender")
	room.Join(sender)

	clients := make([]*Client, 0, recipients)
	for i := 0; i < recipients; i++ {
		c := NewClient(fmt.Sprintf("c%d", i))
		room.Join(c)
		clients = append(clients, c)
	}

	// Drain events for all but the first recipient to avoid channel backpressure.
	target := clients[0]
	for _, c := range clients[1:] {
		go func(cl *Client) {
			for range cl.Events {
			}
		}(c)
	}
	go func() {
		for range sender.Events {
		}
	}()

	payload := []byte("ciphertext")

	b.ReportAllocs()
	b.ResetTimer()

	for i := 0; i < b.N; i++ {
		room.Relay(Message{Sender: HumanSender("sender"), Ciphertext: payload})
		<-target.Events
	}
}

func BenchmarkRoomFanout_10(b *testing.B)  { benchmarkRoomFanout(b, 10) }
func BenchmarkRoomFanout_100(b *testing.B) { benchmarkRoomFanout(b, 100) }
func BenchmarkRoomFanout_500(b *testing.B) { benchmarkRoomFanout(b, 500) }
