package service

import (
	"context"
	"database/sql"
	"sync"
	"testing"

	"github.com/sirupsen/logrus"
	"github.com/sirupsen/logrus/hooks/test"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"

	"komarabo/internal/domain"
	"komarabo/internal/repository"
	"komarabo/internal/repository/sqlite"
	"komarabo/internal/storage"
)

type fixture struct {
	db       *sql.DB
	userRepo repository.UserRepository
	issues   repository.IssueRepository
	comments repository.CommentRepository
	products repository.ProductRepository
	configs  repository.SiteConfigRepository

	users    UserService
	issueSvc IssueService
	product  ProductService
	admin    AdminService
	archive  *fakeArchiver
	logHook  *test.Hook
}

func newFixture(t *testing.T) *fixture {
	t.Helper()
	db, err := sqlite.Open(":memory:")
	require.NoError(t, err)
	t.Cleanup(func() { _ = db.Close() })
	require.NoError(t, sqlite.Migrate(context.Background(), db, nil))

	f := &fixture{
		db:       db,
		userRepo: sqlite.NewUserRepository(db),
		issues:   sqlite.NewIssueRepository(db),
		comments: sqlite.NewCommentRepository(db),
		products: sqlite.NewProductRepository(db),
		configs:  sqlite.NewSiteConfigRepository(db),
		archive:  &fakeArchiver{},
	}
	f.users = &userService{users: f.userRepo, bcryptCost: bcrypt.MinCost}
	f.issueSvc = NewIssueService(f.users, f.issues, f.comments)

	logger, hook := test.NewNullLogger()
	logger.SetLevel(logrus.DebugLevel)
	f.logHook = hook
	f.product = NewProductService(f.users, f.products, f.configs, f.archive, logger)
	f.admin = NewAdminService(f.users, f.userRepo, f.issues, f.comments, f.products, f.configs)
	return f
}

func (f *fixture) user(t *testing.T, hash string) *domain.User {
	t.Helper()
	res, err := f.users.Login(context.Background(), hash, "pw-"+hash)
	require.NoError(t, err)
	return res.User
}

func (f *fixture) adminUser(t *testing.T, hash string) *domain.User {
	t.Helper()
	u := f.user(t, hash)
	require.NoError(t, f.users.SetAdmin(context.Background(), hash, true))
	u.IsAdmin = true
	return u
}

type fakeArchiver struct {
	mu   sync.Mutex
	logs []storage.SealedLog
	err  error
}

func (a *fakeArchiver) ArchiveSealedLog(_ context.Context, log storage.SealedLog) (string, error) {
	a.mu.Lock()
	defer a.mu.Unlock()
	if a.err != nil {
		return "", a.err
	}
	a.logs = append(a.logs, log)
	return "s3://bucket/key", nil
}
