// Package alert sends low-stock notifications over SMTP. Every event is also
// buffered in Redis so a daily summary can be mailed in one piece.
package alert

import (
	"encoding/json"
	"fmt"
	"log"
	"net/smtp"
	"strings"
	"time"

	"github.com/rogerio-castellano/inventory-audit/internal/config"
	"github.com/rogerio-castellano/inventory-audit/internal/models"
	"github.com/rogerio-castellano/inventory-audit/internal/redissvc"
)

var (
	cfg config.AlertConfig
	rds *redissvc.RedisService
)

func Configure(c config.AlertConfig, rs *redissvc.RedisService) {
	cfg = c
	rds = rs
}

func enabled() bool {
	return cfg.SMTPServer != "" && cfg.To != ""
}

type lowStockEvent struct {
	ItemID   int       `json:"item_id"`
	ItemName string    `json:"item_name"`
	Quantity int       `json:"quantity"`
	Time     time.Time `json:"time"`
}

const dailyLowStockKey = "alert:lowstock:daily"

func send(subject, contentType, body string) {
	msg := strings.Join([]string{
		"From: " + cfg.From,
		"To: " + cfg.To,
		"Subject: " + subject,
		"MIME-Version: 1.0",
		"Content-Type: " + contentType,
		"",
		body,
	}, "\r\n")

	addr := fmt.Sprintf("%s:%s", cfg.SMTPServer, cfg.SMTPPort)
	auth := smtp.PlainAuth("", cfg.SMTPUser, cfg.SMTPPassword, cfg.SMTPServer)
	if cfg.AuthDisabled {
		auth = nil
	}

	go func() {
		if err := smtp.SendMail(addr, auth, cfg.From, []string{cfg.To}, []byte(msg)); err != nil {
			log.Printf("failed to send alert email: %v", err)
		}
	}()
}

// LowStock records a low-stock event and mails an immediate alert. Callers
// fire it after a mutation leaves an item below the stock threshold.
func LowStock(item models.InventoryItem, threshold int) {
	log.Printf("ALERT: item %d (%s) is low on stock: qty=%d threshold=%d",
		item.ID, item.Name, item.Quantity, threshold)

	if rds != nil {
		_ = rds.PushJSON(dailyLowStockKey, lowStockEvent{
			ItemID:   item.ID,
			ItemName: item.Name,
			Quantity: item.Quantity,
			Time:     time.Now(),
		})
	}

	if !enabled() {
		return
	}

	subject := fmt.Sprintf("Low stock: %s", item.Name)
	body := fmt.Sprintf("Item: %s (id %d)\nQuantity: %d\nThreshold: %d\nTime: %s",
		item.Name, item.ID, item.Quantity, threshold, time.Now().Format(time.RFC3339))
	send(subject, `text/plain; charset="UTF-8"`, body)
}

// StartDailySummary mails the buffered low-stock events once a day.
func StartDailySummary() {
	for {
		now := time.Now()
		next := time.Date(now.Year(), now.Month(), now.Day(), 23, 59, 0, 0, now.Location())
		if now.After(next) {
			next = next.Add(24 * time.Hour)
		}
		time.Sleep(time.Until(next))
		SendDailySummary()
	}
}

func SendDailySummary() {
	if rds == nil {
		return
	}
	entries, err := rds.Drain(dailyLowStockKey)
	if err != nil || len(entries) == 0 {
		return
	}

	perItem := make(map[string]int)
	var events []lowStockEvent
	for _, raw := range entries {
		var ev lowStockEvent
		if err := json.Unmarshal([]byte(raw), &ev); err == nil {
			events = append(events, ev)
			perItem[ev.ItemName]++
		}
	}

	var sb strings.Builder
	sb.WriteString("<h2>Daily Low-Stock Summary</h2>")
	sb.WriteString(fmt.Sprintf("<p>Total events: <strong>%d</strong></p>", len(events)))

	sb.WriteString("<h3>By Item</h3><ul>")
	for name, count := range perItem {
		sb.WriteString(fmt.Sprintf("<li>%s: %d</li>", name, count))
	}
	sb.WriteString("</ul>")

	sb.WriteString("<h3>Full Log</h3><ul>")
	for _, ev := range events {
		sb.WriteString(fmt.Sprintf("<li><b>%s</b> down to %d at %s</li>",
			ev.ItemName, ev.Quantity, ev.Time.Format(time.RFC822)))
	}
	sb.WriteString("</ul>")

	if !enabled() {
		return
	}
	send("Daily Low-Stock Report", `text/html; charset="UTF-8"`, sb.String())
}
