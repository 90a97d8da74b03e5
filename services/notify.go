package services

import (
	"bytes"
	"encoding/json"
	"fmt"
	"log"
	"net/http"
	"time"
)

// Notifier pings the fulfiller's webhook when a new order lands.
// Strictly fire-and-forget: a failure is logged, never surfaced to the
// caller, and never rolls back the order.
type Notifier struct {
	webhookURL string
	client     *http.Client
}

func NewNotifier(webhookURL string) *Notifier {
	return &Notifier{
		webhookURL: webhookURL,
		client:     &http.Client{Timeout: 10 * time.Second},
	}
}

type orderPlacedPayload struct {
	Message   string  `json:"message"`
	DishCount int     `json:"dish_count"`
	Note      *string `json:"note,omitempty"`
}

// OrderPlaced notifies about a freshly created order in the background.
func (n *Notifier) OrderPlaced(dishCount int, note *string) {
	message := fmt.Sprintf("🍜 New household order! %d dish(es) waiting", dishCount)
	if n.webhookURL == "" {
		log.Println("Notifier not configured. Would send:", message)
		return
	}

	go func() {
		payload := orderPlacedPayload{Message: message, DishCount: dishCount, Note: note}
		body, err := json.Marshal(payload)
		if err != nil {
			log.Println("Notify marshal failed:", err)
			return
		}
		resp, err := n.client.Post(n.webhookURL, "application/json", bytes.NewBuffer(body))
		if err != nil {
			log.Println("Notify failed:", err)
			return
		}
		defer resp.Body.Close()
		if resp.StatusCode >= 400 {
			log.Printf("Notify webhook returned status %d", resp.StatusCode)
		}
	}()
}
