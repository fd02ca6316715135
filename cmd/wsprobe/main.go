// wsprobe is an operator tool: it dials the gateway, authenticates, optionally
// emits typing frames, and pretty-prints every event pushed back. On exit it
// prints a per-event-type delivery summary.
package main

import (
	"chat-gateway/domain"
	"context"
	"encoding/json"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gookit/color"
	"github.com/gorilla/websocket"
	"github.com/joho/godotenv"
	"github.com/kelseyhightower/envconfig"
	"github.com/olekukonko/tablewriter"
)

type Config struct {
	GatewayURL     string        `envconfig:"GATEWAY_URL" default:"ws://localhost:8080/socket"`
	Token          string        `envconfig:"PROBE_TOKEN" required:"true"`
	ConversationID string        `envconfig:"PROBE_CONVERSATION"`
	UserID         string        `envconfig:"PROBE_USER"`
	TypingInterval time.Duration `envconfig:"PROBE_TYPING_INTERVAL"`
	Colours        bool          `envconfig:"PROBE_COLOURS" default:"true"`
}

func main() {
	if err := run(); err != nil {
		fmt.Fprintf(os.Stderr, "Fatal error: %v\n", err)
		os.Exit(1)
	}
}

func run() error {
	_ = godotenv.Load()
	var config Config
	if err := envconfig.Process("", &config); err != nil {
		return fmt.Errorf("config error: %w", err)
	}

	conn, _, err := websocket.DefaultDialer.Dial(config.GatewayURL, nil)
	if err != nil {
		return fmt.Errorf("dial %s failed: %w", config.GatewayURL, err)
	}
	defer conn.Close()

	// The handshake is the first frame; the gateway stays silent on failure,
	// so a bad token just means no events ever arrive.
	if err := conn.WriteJSON(domain.Frame{Type: domain.FrameAuth, Token: config.Token}); err != nil {
		return fmt.Errorf("auth frame failed: %w", err)
	}
	fmt.Printf("Connected to %s, waiting for events (Ctrl-C to stop)\n", config.GatewayURL)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if config.TypingInterval > 0 && config.ConversationID != "" {
		go typingLoop(ctx, conn, config)
	}

	// Unblock the read loop on Ctrl-C by closing the connection.
	go func() {
		<-ctx.Done()
		_ = conn.Close()
	}()

	counts := make(map[string]int)
	for {
		var event struct {
			Type string          `json:"type"`
			Data json.RawMessage `json:"data"`
		}
		if err := conn.ReadJSON(&event); err != nil {
			break
		}
		counts[event.Type]++
		printEvent(config.Colours, event.Type, event.Data)
	}

	printSummary(counts)
	return nil
}

// typingLoop alternates TYPING and NO_TYPING frames; handy for watching the
// fan-out filter from a second probe in the same conversation.
func typingLoop(ctx context.Context, conn *websocket.Conn, config Config) {
	ticker := time.NewTicker(config.TypingInterval)
	defer ticker.Stop()

	typing := true
	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			frameType := domain.FrameTyping
			if !typing {
				frameType = domain.FrameNoTyping
			}
			data, _ := json.Marshal(domain.TypingPayload{
				ConversationID: config.ConversationID,
				UserID:         config.UserID,
			})
			if err := conn.WriteJSON(domain.Frame{Type: frameType, Data: data}); err != nil {
				return
			}
			typing = !typing
		}
	}
}

func printEvent(colours bool, eventType string, data []byte) {
	line := fmt.Sprintf("%s %s %s", time.Now().Format("15:04:05"), eventType, string(data))
	if colours {
		switch eventType {
		case domain.EventTyping, domain.EventNoTyping:
			line = color.New(color.FgYellow).Render(line)
		case domain.EventMessage:
			line = color.New(color.FgGreen).Render(line)
		case domain.EventNotification:
			line = color.New(color.FgCyan).Render(line)
		}
	}
	fmt.Println(line)
}

func printSummary(counts map[string]int) {
	table := tablewriter.NewWriter(os.Stdout)
	table.SetHeader([]string{"Event", "Received"})
	table.SetHeaderAlignment(tablewriter.ALIGN_LEFT)
	table.SetAlignment(tablewriter.ALIGN_LEFT)
	table.SetCenterSeparator("")
	table.SetColumnSeparator("")
	table.SetRowSeparator("")
	table.SetHeaderLine(false)
	table.SetBorder(false)
	table.SetTablePadding("\t")

	for eventType, count := range counts {
		table.Append([]string{eventType, fmt.Sprintf("%d", count)})
	}
	fmt.Println()
	table.Render()
}
