// Package httpapi exposes the CMS over REST: public store routes for the
// storefront and JWT-protected admin routes for operators.
package httpapi

import (
	"context"

	"github.com/dmitrijs2005/labelshop/internal/cms/models"
	"github.com/dmitrijs2005/labelshop/internal/cms/services"
	"github.com/dmitrijs2005/labelshop/internal/httpx"
	"github.com/dmitrijs2005/labelshop/internal/logging"
)

const (
	defaultPageLimit = 20
	feedTitle        = "Label news"
	feedDescription  = "News from the label"
)

var page = httpx.Page{DefaultLimit: defaultPageLimit, MaxLimit: services.MaxPageLimit}

type NewsService interface {
	ListPublished(ctx context.Context, limit, offset int, tag string) ([]*models.NewsEntry, int, error)
	GetPublished(ctx context.Context, slug string) (*models.NewsEntry, error)
	List(ctx context.Context, q models.ListQuery) ([]*models.NewsEntry, int, error)
	Get(ctx context.Context, id string) (*models.NewsEntry, error)
	Create(ctx context.Context, in services.NewsInput) (*models.NewsEntry, error)
	Update(ctx context.Context, id string, in services.NewsInput) (*models.NewsEntry, error)
	Delete(ctx context.Context, id string) error
	Publish(ctx context.Context, id string) (*models.NewsEntry, error)
	Archive(ctx context.Context, id string) (*models.NewsEntry, error)
}

type DiscographyService interface {
	ListPublished(ctx context.Context, limit, offset int, tag string) ([]*models.DiscographyEntry, int, error)
	GetPublished(ctx context.Context, slug string) (*models.DiscographyEntry, error)
	List(ctx context.Context, q models.ListQuery) ([]*models.DiscographyEntry, int, error)
	Get(ctx context.Context, id string) (*models.DiscographyEntry, error)
	Create(ctx context.Context, in services.DiscographyInput) (*models.DiscographyEntry, error)
	Update(ctx context.Context, id string, in services.DiscographyInput) (*models.DiscographyEntry, error)
	Delete(ctx context.Context, id string) error
}

type OperatorService interface {
	Login(ctx context.Context, email, password string) (*services.TokenPair, error)
	RefreshToken(ctx context.Context, refreshToken string) (*services.TokenPair, error)
	Authenticate(accessToken string) (string, error)
}

type SubscriptionService interface {
	Subscribe(ctx context.Context, email string) (*models.FeedSubscriber, error)
	Unsubscribe(ctx context.Context, token string) error
}

type UploadService interface {
	CreateUpload(ctx context.Context, filename, contentType string) (*services.Upload, error)
}

// Pinger is satisfied by *sql.DB.
type Pinger interface {
	PingContext(ctx context.Context) error
}

// Options carries the plain settings the handlers need.
type Options struct {
	PublishableAPIKey string
	CORSOrigins       []string
	SiteURL           string
}

type Handler struct {
	news          NewsService
	discography   DiscographyService
	operators     OperatorService
	subscriptions SubscriptionService
	uploads       UploadService
	db            Pinger
	opts          Options
	log           logging.Logger
}

func NewHandler(
	news NewsService,
	discography DiscographyService,
	operators OperatorService,
	subscriptions SubscriptionService,
	uploads UploadService,
	db Pinger,
	opts Options,
	log logging.Logger,
) *Handler {
	return &Handler{
		news:          news,
		discography:   discography,
		operators:     operators,
		subscriptions: subscriptions,
		uploads:       uploads,
		db:            db,
		opts:          opts,
		log:           log.With("module", "cms_http"),
	}
}
