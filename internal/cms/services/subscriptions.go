package services

import (
	"bytes"
	"context"
	"database/sql"
	"fmt"
	"html/template"
	"net/url"
	"strings"

	"github.com/dmitrijs2005/labelshop/internal/cms/mail"
	"github.com/dmitrijs2005/labelshop/internal/cms/models"
	"github.com/dmitrijs2005/labelshop/internal/cms/repositories/repomanager"
	"github.com/dmitrijs2005/labelshop/internal/common"
	"github.com/dmitrijs2005/labelshop/internal/logging"
)

type SubscriptionService struct {
	db          *sql.DB
	repomanager repomanager.RepositoryManager
}

func NewSubscriptionService(db *sql.DB, m repomanager.RepositoryManager) *SubscriptionService {
	return &SubscriptionService{db: db, repomanager: m}
}

func (s *SubscriptionService) Subscribe(ctx context.Context, email string) (*models.FeedSubscriber, error) {
	email, err := normalizeEmail(email)
	if err != nil {
		return nil, err
	}
	token, err := common.MakeRandHexString(24)
	if err != nil {
		return nil, common.ErrorInternal
	}
	sub, err := s.repomanager.Subscribers(s.db).Subscribe(ctx, email, token)
	if err != nil {
		return nil, fmt.Errorf("subscribe: %w", err)
	}
	return sub, nil
}

func (s *SubscriptionService) Unsubscribe(ctx context.Context, token string) error {
	if strings.TrimSpace(token) == "" {
		return invalid("token is required")
	}
	return s.repomanager.Subscribers(s.db).Unsubscribe(ctx, token)
}

var notificationHTML = template.Must(template.New("notification").Parse(
	`<h1>{{.Title}}</h1>
{{if .Excerpt}}<p>{{.Excerpt}}</p>{{end}}
<p><a href="{{.Link}}">Read more</a></p>
<p style="font-size:small"><a href="{{.Unsubscribe}}">Unsubscribe</a></p>`))

// FeedNotifier emails every active subscriber, one after another.
type FeedNotifier struct {
	db          *sql.DB
	repomanager repomanager.RepositoryManager
	sender      mail.Sender
	siteURL     string
	log         logging.Logger
}

func NewFeedNotifier(db *sql.DB, m repomanager.RepositoryManager, sender mail.Sender, siteURL string, log logging.Logger) *FeedNotifier {
	return &FeedNotifier{
		db:          db,
		repomanager: m,
		sender:      sender,
		siteURL:     strings.TrimRight(siteURL, "/"),
		log:         log.With("module", "feed-notifications"),
	}
}

func (n *FeedNotifier) NotifyPublished(ctx context.Context, e *models.NewsEntry) {
	subs, err := n.repomanager.Subscribers(n.db).ListActive(ctx)
	if err != nil {
		n.log.Error(ctx, "listing subscribers failed", "error", err.Error())
		return
	}

	link := n.siteURL + "/news/" + url.PathEscape(e.Slug)
	sent := 0
	for _, sub := range subs {
		unsubscribe := n.siteURL + "/unsubscribe?token=" + url.QueryEscape(sub.UnsubscribeToken)

		var html bytes.Buffer
		if err := notificationHTML.Execute(&html, map[string]string{
			"Title": e.Title, "Excerpt": e.Excerpt, "Link": link, "Unsubscribe": unsubscribe,
		}); err != nil {
			n.log.Error(ctx, "render notification failed", "error", err.Error())
			return
		}

		text := e.Title + "\n\n"
		if e.Excerpt != "" {
			text += e.Excerpt + "\n\n"
		}
		text += "Read more: " + link + "\n\nUnsubscribe: " + unsubscribe + "\n"

		if err := n.sender.Send(ctx, mail.Message{
			To:      sub.Email,
			Subject: e.Title,
			Text:    text,
			HTML:    html.String(),
		}); err != nil {
			n.log.Warn(ctx, "notification not delivered", "subscriber", sub.ID, "error", err.Error())
			continue
		}
		sent++
	}
	n.log.Info(ctx, "feed notification finished", "entry", e.ID, "sent", sent, "subscribers", len(subs))
}
