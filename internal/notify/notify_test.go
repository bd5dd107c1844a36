package notify

import (
	"context"
	"errors"
	"io"
	"net/http"
	"strings"
	"testing"

	"zerowaste/internal/groups"
	"zerowaste/internal/models"

	webpush "github.com/SherClockHolmes/webpush-go"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type memSubs struct {
	subs    []models.PushSubscription
	deleted []string
}

func (m *memSubs) ListPushSubscriptions(_ context.Context, userID int) ([]models.PushSubscription, error) {
	var out []models.PushSubscription
	for _, s := range m.subs {
		if s.UserID == userID {
			out = append(out, s)
		}
	}
	return out, nil
}

func (m *memSubs) DeletePushEndpoint(_ context.Context, endpoint string) error {
	m.deleted = append(m.deleted, endpoint)
	return nil
}

func response(code int) *http.Response {
	return &http.Response{StatusCode: code, Body: io.NopCloser(strings.NewReader(""))}
}

func TestNewPusherRequiresKeys(t *testing.T) {
	assert.Nil(t, NewPusher(&memSubs{}, "pub", "", "mailto:a@b.c"))
	var p *Pusher
	assert.NoError(t, p.SendToUser(context.Background(), 1, PushPayload{}))
	assert.Equal(t, "", p.PublicKey())
}

func TestSendToUserRemovesStaleSubscriptions(t *testing.T) {
	subs := &memSubs{subs: []models.PushSubscription{
		{UserID: 1, Endpoint: "https://push/ok"},
		{UserID: 1, Endpoint: "https://push/gone"},
		{UserID: 1, Endpoint: "https://push/forbidden"},
		{UserID: 2, Endpoint: "https://push/other"},
	}}
	p := NewPusher(subs, "pub", "priv", "mailto:a@b.c")
	var endpoints []string
	p.send = func(msg []byte, s *webpush.Subscription, o *webpush.Options) (*http.Response, error) {
		endpoints = append(endpoints, s.Endpoint)
		assert.Contains(t, string(msg), `"title":"hi"`)
		assert.Equal(t, 30, o.TTL)
		switch s.Endpoint {
		case "https://push/gone":
			return response(http.StatusGone), nil
		case "https://push/forbidden":
			return response(http.StatusForbidden), nil
		}
		return response(http.StatusCreated), nil
	}

	require.NoError(t, p.SendToUser(context.Background(), 1, PushPayload{Title: "hi"}))
	assert.Len(t, endpoints, 3)
	assert.Equal(t, []string{"https://push/gone", "https://push/forbidden"}, subs.deleted)
}

func TestSendToUserAllFailed(t *testing.T) {
	subs := &memSubs{subs: []models.PushSubscription{{UserID: 1, Endpoint: "https://push/x"}}}
	p := NewPusher(subs, "pub", "priv", "mailto:a@b.c")
	p.send = func([]byte, *webpush.Subscription, *webpush.Options) (*http.Response, error) {
		return nil, errors.New("network down")
	}
	assert.Error(t, p.SendToUser(context.Background(), 1, PushPayload{}))
	assert.Empty(t, subs.deleted)
}

func TestBuildMessage(t *testing.T) {
	msg := string(buildMessage("from@x.io", "to@x.io", "초대", "<p>hi</p>"))
	assert.Contains(t, msg, "From: from@x.io\r\n")
	assert.Contains(t, msg, "To: to@x.io\r\n")
	assert.Contains(t, msg, "Subject: =?utf-8?q?")
	assert.Contains(t, msg, "Content-Type: text/html; charset=UTF-8")
	assert.Contains(t, msg, "<p>hi</p>")
	assert.True(t, strings.HasSuffix(msg, "--"+boundary+"--\r\n"))
}

func TestRenderInviteEmailEscapes(t *testing.T) {
	body, err := RenderInviteEmail(InviteEmailData{
		RecipientName: "민지",
		SenderName:    "<b>x</b>",
		GroupName:     "텀블러 챌린지",
		AppURL:        "https://app.example.com",
		Year:          2025,
	})
	require.NoError(t, err)
	assert.Contains(t, body, "민지님")
	assert.Contains(t, body, "텀블러 챌린지")
	assert.Contains(t, body, "&lt;b&gt;x&lt;/b&gt;")
	assert.Contains(t, body, "2025")
}

func TestNewMailerDisabledWithoutHost(t *testing.T) {
	assert.Nil(t, NewMailer(SMTPConfig{}))
	var m *Mailer
	assert.NoError(t, m.Send("a@b.c", "s", "b"))
}

func TestInviteCreatedSendsBoth(t *testing.T) {
	subs := &memSubs{subs: []models.PushSubscription{{UserID: 2, Endpoint: "https://push/ok"}}}
	p := NewPusher(subs, "pub", "priv", "mailto:a@b.c")
	pushed := 0
	p.send = func([]byte, *webpush.Subscription, *webpush.Options) (*http.Response, error) {
		pushed++
		return response(http.StatusCreated), nil
	}

	m := NewMailer(SMTPConfig{Host: "smtp.example.com", From: "noreply@example.com"})
	assert.Equal(t, 587, m.cfg.Port)
	var mailedTo string
	m.send = func(cfg SMTPConfig, to string, msg []byte) error {
		mailedTo = to
		assert.Contains(t, string(msg), "텀블러")
		return errors.New("smtp down")
	}

	n := New(p, m, "https://app.example.com")
	n.InviteCreated(context.Background(), groups.InviteNotice{
		Invite: models.Invite{ID: 7},
		Group:  models.GroupMission{ID: 3, Name: "텀블러"},
		From:   models.User{ID: 1, Name: "A"},
		To:     models.User{ID: 2, Name: "B", Email: "b@example.com"},
	})
	assert.Equal(t, 1, pushed)
	assert.Equal(t, "b@example.com", mailedTo)
}

func TestInviteCreatedWithoutChannels(t *testing.T) {
	n := New(nil, nil, "")
	assert.NotPanics(t, func() {
		n.InviteCreated(context.Background(), groups.InviteNotice{To: models.User{ID: 2, Email: "b@example.com"}})
	})
}
