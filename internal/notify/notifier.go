package notify

import (
	"context"
	"fmt"
	"log"

	"zerowaste/internal/groups"
)

// Notifier tells invitees about new group invites by push and by email.
type Notifier struct {
	pusher *Pusher
	mailer *Mailer
	appURL string
}

// New builds a Notifier. Either channel may be nil.
func New(p *Pusher, m *Mailer, appURL string) *Notifier {
	return &Notifier{pusher: p, mailer: m, appURL: appURL}
}

var _ groups.Notifier = (*Notifier)(nil)

func (n *Notifier) InviteCreated(ctx context.Context, notice groups.InviteNotice) {
	payload := PushPayload{
		Title: "그룹 미션 초대",
		Body:  fmt.Sprintf("%s님이 '%s' 그룹에 초대했어요", notice.From.Name, notice.Group.Name),
		Icon:  "/icons/icon-192.png",
		Tag:   fmt.Sprintf("invite-%d", notice.Invite.ID),
		Data: map[string]any{
			"type":      "invite",
			"invite_id": notice.Invite.ID,
			"group_id":  notice.Group.ID,
		},
	}
	if err := n.pusher.SendToUser(ctx, notice.To.ID, payload); err != nil {
		log.Printf("[PUSH] invite %d to user %d: %v", notice.Invite.ID, notice.To.ID, err)
	}

	if n.mailer == nil || notice.To.Email == "" {
		return
	}
	body, err := RenderInviteEmail(InviteEmailData{
		RecipientName: notice.To.Name,
		SenderName:    notice.From.Name,
		GroupName:     notice.Group.Name,
		AppURL:        n.appURL,
	})
	if err != nil {
		log.Printf("[EMAIL] %v", err)
		return
	}
	subject := fmt.Sprintf("%s님이 그룹 미션에 초대했어요", notice.From.Name)
	if err := n.mailer.Send(notice.To.Email, subject, body); err != nil {
		log.Printf("[EMAIL] failed to send invite %d to %s: %v", notice.Invite.ID, notice.To.Email, err)
		return
	}
	log.Printf("[EMAIL] invite %d sent to %s", notice.Invite.ID, notice.To.Email)
}
