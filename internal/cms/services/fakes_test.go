package services

import (
	"context"
	"database/sql"
	"sync"
	"time"

	"github.com/dmitrijs2005/labelshop/internal/cms/mail"
	"github.com/dmitrijs2005/labelshop/internal/cms/models"
	"github.com/dmitrijs2005/labelshop/internal/cms/repositories/discography"
	"github.com/dmitrijs2005/labelshop/internal/cms/repositories/news"
	"github.com/dmitrijs2005/labelshop/internal/cms/repositories/operators"
	"github.com/dmitrijs2005/labelshop/internal/cms/repositories/refreshtokens"
	"github.com/dmitrijs2005/labelshop/internal/cms/repositories/subscribers"
	"github.com/dmitrijs2005/labelshop/internal/common"
	"github.com/dmitrijs2005/labelshop/internal/dbx"
)

// --- news ---

type fakeNewsRepo struct {
	news.Repository

	created     *models.NewsEntry
	createErr   error
	published   *models.NewsEntry
	publishErr  error
	markResult  bool
	markErr     error
	markCalls   int
	listQuery   models.ListQuery
	listOut     []*models.NewsEntry
	listTotal   int
	getBySlug   map[string]*models.NewsEntry
	updatedWith *models.NewsEntry
}

func (f *fakeNewsRepo) Create(ctx context.Context, e *models.NewsEntry) (*models.NewsEntry, error) {
	if f.createErr != nil {
		return nil, f.createErr
	}
	cp := *e
	cp.ID = "n1"
	f.created = &cp
	return &cp, nil
}

func (f *fakeNewsRepo) Update(ctx context.Context, e *models.NewsEntry) (*models.NewsEntry, error) {
	cp := *e
	f.updatedWith = &cp
	return &cp, nil
}

func (f *fakeNewsRepo) Publish(ctx context.Context, id string, at time.Time) (*models.NewsEntry, error) {
	if f.publishErr != nil {
		return nil, f.publishErr
	}
	return f.published, nil
}

func (f *fakeNewsRepo) Archive(ctx context.Context, id string) (*models.NewsEntry, error) {
	return &models.NewsEntry{ID: id, Status: models.StatusArchived}, nil
}

func (f *fakeNewsRepo) MarkNotified(ctx context.Context, id string, at time.Time) (bool, error) {
	f.markCalls++
	return f.markResult, f.markErr
}

func (f *fakeNewsRepo) List(ctx context.Context, q models.ListQuery) ([]*models.NewsEntry, int, error) {
	f.listQuery = q
	return f.listOut, f.listTotal, nil
}

func (f *fakeNewsRepo) GetPublishedBySlug(ctx context.Context, slug string) (*models.NewsEntry, error) {
	if e, ok := f.getBySlug[slug]; ok {
		return e, nil
	}
	return nil, common.ErrorNotFound
}

// --- discography ---

type fakeDiscographyRepo struct {
	discography.Repository

	created   *models.DiscographyEntry
	createErr error
}

func (f *fakeDiscographyRepo) Create(ctx context.Context, e *models.DiscographyEntry) (*models.DiscographyEntry, error) {
	if f.createErr != nil {
		return nil, f.createErr
	}
	cp := *e
	cp.ID = "d1"
	f.created = &cp
	return &cp, nil
}

// --- operators / tokens ---

type fakeOperatorsRepo struct {
	byEmail   map[string]*models.Operator
	getErr    error
	createErr error
	created   []string
}

func (f *fakeOperatorsRepo) Create(ctx context.Context, email, hash string) (*models.Operator, error) {
	if f.createErr != nil {
		return nil, f.createErr
	}
	f.created = append(f.created, email)
	op := &models.Operator{ID: "op-new", Email: email, PasswordHash: hash}
	if f.byEmail == nil {
		f.byEmail = map[string]*models.Operator{}
	}
	f.byEmail[email] = op
	return op, nil
}

func (f *fakeOperatorsRepo) GetByEmail(ctx context.Context, email string) (*models.Operator, error) {
	if f.getErr != nil {
		return nil, f.getErr
	}
	if op, ok := f.byEmail[email]; ok {
		return op, nil
	}
	return nil, common.ErrorNotFound
}

type fakeRefreshRepo struct {
	findOut   *models.RefreshToken
	findErr   error
	delErr    error
	createErr error
	created   []string
	deleted   []string
}

func (f *fakeRefreshRepo) Create(ctx context.Context, operatorID string, token string, validity time.Duration) error {
	if f.createErr != nil {
		return f.createErr
	}
	f.created = append(f.created, operatorID)
	return nil
}

func (f *fakeRefreshRepo) Find(ctx context.Context, token string) (*models.RefreshToken, error) {
	if f.findErr != nil {
		return nil, f.findErr
	}
	return f.findOut, nil
}

func (f *fakeRefreshRepo) Delete(ctx context.Context, token string) error {
	f.deleted = append(f.deleted, token)
	return f.delErr
}

// --- subscribers ---

type fakeSubscribersRepo struct {
	active       []*models.FeedSubscriber
	listErr      error
	subscribed   []string
	unsubscribed []string
}

func (f *fakeSubscribersRepo) Subscribe(ctx context.Context, email, token string) (*models.FeedSubscriber, error) {
	f.subscribed = append(f.subscribed, email)
	return &models.FeedSubscriber{ID: "s1", Email: email, UnsubscribeToken: token}, nil
}

func (f *fakeSubscribersRepo) Unsubscribe(ctx context.Context, token string) error {
	f.unsubscribed = append(f.unsubscribed, token)
	return nil
}

func (f *fakeSubscribersRepo) ListActive(ctx context.Context) ([]*models.FeedSubscriber, error) {
	return f.active, f.listErr
}

// --- manager ---

type fakeRepoManager struct {
	news        *fakeNewsRepo
	discography *fakeDiscographyRepo
	operators   *fakeOperatorsRepo
	refresh     *fakeRefreshRepo
	subscribers *fakeSubscribersRepo
}

func (m *fakeRepoManager) RunMigrations(context.Context, *sql.DB) error { return nil }
func (m *fakeRepoManager) News(dbx.DBTX) news.Repository               { return m.news }
func (m *fakeRepoManager) Discography(dbx.DBTX) discography.Repository { return m.discography }
func (m *fakeRepoManager) Operators(dbx.DBTX) operators.Repository     { return m.operators }
func (m *fakeRepoManager) RefreshTokens(dbx.DBTX) refreshtokens.Repository {
	return m.refresh
}
func (m *fakeRepoManager) Subscribers(dbx.DBTX) subscribers.Repository { return m.subscribers }

// --- notifier / mail ---

type recordingNotifier struct {
	mu      sync.Mutex
	entries []string
	ctxErrs []error
}

func (n *recordingNotifier) NotifyPublished(ctx context.Context, e *models.NewsEntry) {
	n.mu.Lock()
	defer n.mu.Unlock()
	n.entries = append(n.entries, e.ID)
	n.ctxErrs = append(n.ctxErrs, ctx.Err())
}

type recordingSender struct {
	failFor map[string]error
	sent    []mail.Message
}

func (s *recordingSender) Send(ctx context.Context, m mail.Message) error {
	if err := s.failFor[m.To]; err != nil {
		return err
	}
	s.sent = append(s.sent, m)
	return nil
}
