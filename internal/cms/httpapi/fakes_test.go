package httpapi

import (
	"context"
	"errors"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/dmitrijs2005/labelshop/internal/cms/models"
	"github.com/dmitrijs2005/labelshop/internal/cms/services"
	"github.com/dmitrijs2005/labelshop/internal/common"
	"github.com/dmitrijs2005/labelshop/internal/logging"
)

type fakeNews struct {
	NewsService

	entries   []*models.NewsEntry
	total     int
	bySlug    map[string]*models.NewsEntry
	listCalls int
	lastLimit int
	lastOff   int
	lastTag   string
	lastQuery models.ListQuery
	createIn  services.NewsInput
	createErr error
	entry     *models.NewsEntry
}

func (f *fakeNews) ListPublished(ctx context.Context, limit, offset int, tag string) ([]*models.NewsEntry, int, error) {
	f.listCalls++
	f.lastLimit, f.lastOff, f.lastTag = limit, offset, tag
	return f.entries, f.total, nil
}

func (f *fakeNews) GetPublished(ctx context.Context, slug string) (*models.NewsEntry, error) {
	if e, ok := f.bySlug[slug]; ok {
		return e, nil
	}
	return nil, common.ErrorNotFound
}

func (f *fakeNews) List(ctx context.Context, q models.ListQuery) ([]*models.NewsEntry, int, error) {
	f.lastQuery = q
	return f.entries, f.total, nil
}

func (f *fakeNews) Create(ctx context.Context, in services.NewsInput) (*models.NewsEntry, error) {
	f.createIn = in
	if f.createErr != nil {
		return nil, f.createErr
	}
	return f.entry, nil
}

func (f *fakeNews) Publish(ctx context.Context, id string) (*models.NewsEntry, error) {
	if f.entry == nil || f.entry.ID != id {
		return nil, common.ErrorNotFound
	}
	return f.entry, nil
}

func (f *fakeNews) Delete(ctx context.Context, id string) error {
	if f.entry == nil || f.entry.ID != id {
		return common.ErrorNotFound
	}
	return nil
}

type fakeDiscography struct {
	DiscographyService

	entries []*models.DiscographyEntry
	total   int
	bySlug  map[string]*models.DiscographyEntry
}

func (f *fakeDiscography) ListPublished(ctx context.Context, limit, offset int, tag string) ([]*models.DiscographyEntry, int, error) {
	return f.entries, f.total, nil
}

func (f *fakeDiscography) GetPublished(ctx context.Context, slug string) (*models.DiscographyEntry, error) {
	if e, ok := f.bySlug[slug]; ok {
		return e, nil
	}
	return nil, common.ErrorNotFound
}

type fakeOperators struct {
	validToken string
	pair       *services.TokenPair
	loginErr   error
}

func (f *fakeOperators) Login(ctx context.Context, email, password string) (*services.TokenPair, error) {
	return f.pair, f.loginErr
}

func (f *fakeOperators) RefreshToken(ctx context.Context, refreshToken string) (*services.TokenPair, error) {
	if refreshToken == "" {
		return nil, common.ErrorValidation
	}
	return f.pair, nil
}

func (f *fakeOperators) Authenticate(accessToken string) (string, error) {
	if accessToken == f.validToken {
		return "op1", nil
	}
	return "", common.ErrInvalidToken
}

type fakeSubscriptions struct {
	tokens map[string]bool
}

func (f *fakeSubscriptions) Subscribe(ctx context.Context, email string) (*models.FeedSubscriber, error) {
	if !strings.Contains(email, "@") {
		return nil, common.ErrorValidation
	}
	return &models.FeedSubscriber{ID: "s1", Email: email, UnsubscribeToken: "secret-token"}, nil
}

func (f *fakeSubscriptions) Unsubscribe(ctx context.Context, token string) error {
	if !f.tokens[token] {
		return common.ErrorNotFound
	}
	return nil
}

type fakeUploads struct{}

func (fakeUploads) CreateUpload(ctx context.Context, filename, contentType string) (*services.Upload, error) {
	if contentType != "image/png" {
		return nil, common.ErrorValidation
	}
	return &services.Upload{URL: "http://s3.test/put", Method: "PUT", Key: "covers/k.png"}, nil
}

type fakePinger struct{ err error }

func (p fakePinger) PingContext(context.Context) error { return p.err }

type testDeps struct {
	news        *fakeNews
	discography *fakeDiscography
	operators   *fakeOperators
	subs        *fakeSubscriptions
	db          fakePinger
	opts        Options
}

func newTestDeps() *testDeps {
	return &testDeps{
		news:        &fakeNews{},
		discography: &fakeDiscography{},
		operators:   &fakeOperators{validToken: "good"},
		subs:        &fakeSubscriptions{tokens: map[string]bool{}},
		opts:        Options{SiteURL: "https://label.test", CORSOrigins: []string{"https://label.test"}},
	}
}

func (d *testDeps) router() http.Handler {
	return NewHandler(d.news, d.discography, d.operators, d.subs, fakeUploads{}, d.db, d.opts, logging.Nop()).Router()
}

func do(t *testing.T, h http.Handler, method, target, body string, header ...string) *httptest.ResponseRecorder {
	t.Helper()
	var rd io.Reader
	if body != "" {
		rd = strings.NewReader(body)
	}
	req := httptest.NewRequest(method, target, rd)
	for i := 0; i+1 < len(header); i += 2 {
		req.Header.Set(header[i], header[i+1])
	}
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, req)
	return rec
}

var errBoom = errors.New("boom")
