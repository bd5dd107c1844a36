// Package notify delivers invite notifications over Web Push and email.
// Every delivery is best effort: failures are logged and never surface to
// the request that triggered them.
package notify

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log"
	"net/http"

	"zerowaste/internal/models"

	webpush "github.com/SherClockHolmes/webpush-go"
)

// PushPayload is the notification body the service worker receives.
type PushPayload struct {
	Title string         `json:"title"`
	Body  string         `json:"body"`
	Icon  string         `json:"icon,omitempty"`
	Badge string         `json:"badge,omitempty"`
	Tag   string         `json:"tag,omitempty"`
	Data  map[string]any `json:"data,omitempty"`
}

// SubscriptionStore is where push subscriptions live.
type SubscriptionStore interface {
	ListPushSubscriptions(ctx context.Context, userID int) ([]models.PushSubscription, error)
	DeletePushEndpoint(ctx context.Context, endpoint string) error
}

type sendFunc func(message []byte, s *webpush.Subscription, options *webpush.Options) (*http.Response, error)

// Pusher sends Web Push notifications signed with the server's VAPID keys.
type Pusher struct {
	subs    SubscriptionStore
	options webpush.Options
	send    sendFunc
}

// NewPusher returns nil when any VAPID setting is missing; a nil Pusher
// sends nothing.
func NewPusher(subs SubscriptionStore, publicKey, privateKey, subject string) *Pusher {
	if publicKey == "" || privateKey == "" || subject == "" {
		return nil
	}
	return &Pusher{
		subs: subs,
		options: webpush.Options{
			Subscriber:      subject,
			VAPIDPublicKey:  publicKey,
			VAPIDPrivateKey: privateKey,
			TTL:             30,
		},
		send: webpush.SendNotification,
	}
}

func (p *Pusher) PublicKey() string {
	if p == nil {
		return ""
	}
	return p.options.VAPIDPublicKey
}

// SendToUser pushes payload to every subscription of userID. Subscriptions
// the push service reports as gone (404, 410) or signed with other keys
// (403) are deleted so the client subscribes again.
func (p *Pusher) SendToUser(ctx context.Context, userID int, payload PushPayload) error {
	if p == nil {
		return nil
	}
	subs, err := p.subs.ListPushSubscriptions(ctx, userID)
	if err != nil {
		return fmt.Errorf("failed to fetch subscriptions: %w", err)
	}
	if len(subs) == 0 {
		return nil
	}
	body, err := json.Marshal(payload)
	if err != nil {
		return fmt.Errorf("failed to marshal payload: %w", err)
	}

	sent, failed := 0, 0
	for _, s := range subs {
		resp, err := p.send(body, &webpush.Subscription{
			Endpoint: s.Endpoint,
			Keys:     webpush.Keys{P256dh: s.P256dh, Auth: s.Auth},
		}, &p.options)
		status := 0
		if resp != nil {
			status = resp.StatusCode
			if status >= 400 {
				msg, _ := io.ReadAll(resp.Body)
				log.Printf("[PUSH] push service returned %d for user %d: %s", status, userID, msg)
			}
			resp.Body.Close()
		}
		switch {
		case status == http.StatusNotFound || status == http.StatusGone || status == http.StatusForbidden:
			if derr := p.subs.DeletePushEndpoint(ctx, s.Endpoint); derr != nil {
				log.Printf("[PUSH] failed to remove stale subscription: %v", derr)
			}
			failed++
		case err != nil:
			log.Printf("[PUSH] failed to send to user %d: %v", userID, err)
			failed++
		case status >= 400:
			failed++
		default:
			sent++
		}
	}

	if sent == 0 && failed > 0 {
		return fmt.Errorf("failed to send any push notifications (attempted %d)", failed)
	}
	return nil
}
