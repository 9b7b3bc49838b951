package service

import (
	"context"
	"net/http"

	webpush "github.com/SherClockHolmes/webpush-go"
	"github.com/tanomu-app/tanomu/internal/config"
	"github.com/tanomu-app/tanomu/internal/push/domain"
)

const pushTTLSeconds = 60

type webpushSender struct {
	cfg config.PushConfig
}

func NewWebpushSender(cfg config.Config) domain.Sender {
	return &webpushSender{cfg: cfg.Push}
}

func (s *webpushSender) Send(ctx context.Context, sub domain.Subscription, message string) (bool, error) {
	resp, err := webpush.SendNotificationWithContext(ctx, []byte(message), &webpush.Subscription{
		Endpoint: sub.Endpoint,
		Keys: webpush.Keys{
			P256dh: sub.P256dh,
			Auth:   sub.Auth,
		},
	}, &webpush.Options{
		Subscriber:      s.cfg.VAPIDSubject,
		VAPIDPublicKey:  s.cfg.VAPIDPublicKey,
		VAPIDPrivateKey: s.cfg.VAPIDPrivateKey,
		TTL:             pushTTLSeconds,
		Urgency:         webpush.UrgencyNormal,
	})
	if err != nil {
		return false, err
	}
	defer resp.Body.Close()

	expired := resp.StatusCode == http.StatusNotFound || resp.StatusCode == http.StatusGone
	return expired, nil
}
