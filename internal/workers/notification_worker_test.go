package workers

import (
	"testing"

	"carrier-dispatch-service/internal/ports"
)

func TestMessageBody(t *testing.T) {
	event := ports.AssignmentCommitted{
		LoadID:   "load-77",
		DriverID: "drv-3",
	}

	got := MessageBody("https://dispatch.example.com", event)
	want := "You have a new assignment!\n\nView Load: https://dispatch.example.com/l/load-77?did=drv-3"

	if got != want {
		t.Fatalf("message body = %q, want %q", got, want)
	}
}
