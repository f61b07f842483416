package cli

import (
	"encoding/json"
	"fmt"
	"os"
	"time"
)

// Output handles formatting output based on the configured format
type Output struct {
	format string
}

// NewOutput creates a new Output formatter
func NewOutput(format string) *Output {
	return &Output{format: format}
}

// Print outputs data in the configured format
func (o *Output) Print(data any) {
	if o.format == "json" {
		o.printJSON(data)
	} else {
		o.printText(data)
	}
}

// PrintMessage outputs a simple message
func (o *Output) PrintMessage(msg string) {
	if o.format == "json" {
		data, _ := json.Marshal(map[string]string{"message": msg})
		fmt.Println(string(data))
	} else {
		fmt.Println(msg)
	}
}

// PrintError outputs an error
func (o *Output) PrintError(err error) {
	if o.format == "json" {
		errData := map[string]any{
			"error": map[string]string{
				"message": err.Error(),
			},
		}
		data, _ := json.Marshal(errData)
		fmt.Fprintln(os.Stderr, string(data))
	} else {
		fmt.Fprintf(os.Stderr, "Error: %s\n", err)
	}
}

func (o *Output) printJSON(data any) {
	enc := json.NewEncoder(os.Stdout)
	enc.SetIndent("", "  ")
	_ = enc.Encode(data)
}

func (o *Output) printText(data any) {
	switch v := data.(type) {
	case Room:
		o.printRoom(v)
	case RoomDetail:
		o.printRoomDetail(v)
	case Player:
		o.printPlayer(v)
	case HealthResult:
		o.printHealthResult(v)
	default:
		// Fallback to JSON for unknown types
		o.printJSON(data)
	}
}

// Room response type (matches API)
type Room struct {
	Code       string    `json:"code"`
	MaxPlayers int       `json:"max_players"`
	Status     string    `json:"status"`
	CreatedAt  time.Time `json:"created_at"`
}

// Player response type
type Player struct {
	ID          string   `json:"id"`
	DisplayName string   `json:"display_name"`
	Submitted   bool     `json:"submitted"`
	AllocationA *int     `json:"allocation_a"`
	AllocationB *int     `json:"allocation_b"`
	Payout      *float64 `json:"payout"`
}

// RoomDetail response type
type RoomDetail struct {
	Room
	Players []Player `json:"players"`
}

// HealthResult response type
type HealthResult struct {
	Status string `json:"status"`
}

func (o *Output) printRoom(r Room) {
	fmt.Printf("Room: %s\n", r.Code)
	fmt.Printf("Status: %s\n", r.Status)
	fmt.Printf("Max Players: %d\n", r.MaxPlayers)
}

func (o *Output) printRoomDetail(d RoomDetail) {
	o.printRoom(d.Room)
	fmt.Printf("Players (%d):\n", len(d.Players))
	for _, p := range d.Players {
		line := fmt.Sprintf("  - %s (%s)", p.DisplayName, p.ID)
		if p.Submitted {
			line += " [submitted]"
		}
		if p.Payout != nil {
			line += fmt.Sprintf(" payout=%.2f", *p.Payout)
		}
		fmt.Println(line)
	}
}

func (o *Output) printPlayer(p Player) {
	fmt.Printf("Player: %s (%s)\n", p.DisplayName, p.ID)
	if p.AllocationA != nil && p.AllocationB != nil {
		fmt.Printf("Allocation: A=%d B=%d\n", *p.AllocationA, *p.AllocationB)
	}
	if p.Payout != nil {
		fmt.Printf("Payout: %.2f\n", *p.Payout)
	}
}

func (o *Output) printHealthResult(h HealthResult) {
	fmt.Printf("Status: %s\n", h.Status)
}
