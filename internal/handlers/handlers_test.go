package handlers

import (
	"fmt"
	"net/http"
	"net/http/httptest"
	"net/url"
	"regexp"
	"strings"
	"testing"
	"time"

	"github.com/gin-contrib/sessions"
	"github.com/gin-contrib/sessions/cookie"
	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/require"

	"github.com/streamflix/streamflix/internal/cache"
	"github.com/streamflix/streamflix/internal/config"
	"github.com/streamflix/streamflix/internal/database"
	"github.com/streamflix/streamflix/internal/models"
	"github.com/streamflix/streamflix/internal/otp"
	"github.com/streamflix/streamflix/internal/services"
	"github.com/streamflix/streamflix/pkg/logger"
)

// fakeDB is an in-memory Database for handler tests.
type fakeDB struct {
	users  map[uint]*models.User
	nextID uint
}

func newFakeDB() *fakeDB {
	return &fakeDB{users: make(map[uint]*models.User), nextID: 1}
}

func (f *fakeDB) FindUserByEmail(email string) (*models.User, error) {
	for _, u := range f.users {
		if u.Email == email {
			copy := *u
			return &copy, nil
		}
	}
	return nil, nil
}

func (f *fakeDB) FindUserByID(id uint) (*models.User, error) {
	u, ok := f.users[id]
	if !ok {
		return nil, nil
	}
	copy := *u
	return &copy, nil
}

func (f *fakeDB) CreateUser(user *models.User) error {
	if existing, _ := f.FindUserByEmail(user.Email); existing != nil {
		return database.ErrDuplicateEmail
	}
	user.ID = f.nextID
	f.nextID++
	user.CreatedAt = time.Now()
	stored := *user
	f.users[user.ID] = &stored
	return nil
}

func (f *fakeDB) SaveUser(user *models.User) error {
	stored := *user
	f.users[user.ID] = &stored
	return nil
}

func (f *fakeDB) UpdatePassword(id uint, hash string) error {
	u, ok := f.users[id]
	if !ok {
		return fmt.Errorf("user %d not found", id)
	}
	u.Password = hash
	return nil
}

func (f *fakeDB) Close() error { return nil }

// fakeProgress is an in-memory ProgressStore.
type fakeProgress struct {
	records map[string]models.WatchProgress
}

func newFakeProgress() *fakeProgress {
	return &fakeProgress{records: make(map[string]models.WatchProgress)}
}

func progressKey(userID uint, itemID string) string {
	return fmt.Sprintf("%d/%s", userID, itemID)
}

func (f *fakeProgress) SaveProgress(p *models.WatchProgress) error {
	p.UpdatedAt = time.Now()
	f.records[progressKey(p.UserID, p.ItemID)] = *p
	return nil
}

func (f *fakeProgress) ListProgress(userID uint) ([]models.WatchProgress, error) {
	var out []models.WatchProgress
	for key, p := range f.records {
		if strings.HasPrefix(key, fmt.Sprintf("%d/", userID)) {
			out = append(out, p)
		}
	}
	return out, nil
}

func (f *fakeProgress) DeleteProgress(userID uint, itemID string) error {
	delete(f.records, progressKey(userID, itemID))
	return nil
}

func (f *fakeProgress) Close() error { return nil }

// recordingMailer captures sent messages.
type recordingMailer struct {
	body []string
}

func (m *recordingMailer) Send(to, subject, body string) error {
	m.body = append(m.body, body)
	return nil
}

var codePattern = regexp.MustCompile(`\b(\d{6})\b`)

func (m *recordingMailer) lastCode(t *testing.T) string {
	t.Helper()
	require.NotEmpty(t, m.body)
	match := codePattern.FindStringSubmatch(m.body[len(m.body)-1])
	require.NotNil(t, match)
	return match[1]
}

type fixture struct {
	router   *gin.Engine
	db       *fakeDB
	progress *fakeProgress
	mailer   *recordingMailer
	dataDir  string
}

func setupTestRouter(t *testing.T) *fixture {
	t.Helper()
	gin.SetMode(gin.TestMode)

	log := logger.NewWithLevel(logger.LevelError)
	db := newFakeDB()
	mailer := &recordingMailer{}
	ledger := otp.NewLedger(10 * time.Minute)

	cfg := &config.Config{
		SecretKey:        "test-secret",
		DataDir:          t.TempDir(),
		UploadDir:        t.TempDir(),
		OTPExpiryMinutes: 10,
	}

	progress := newFakeProgress()
	container := &services.Container{
		DB:       db,
		Progress: progress,
		Ledger:   ledger,
		Mailer:   mailer,
		Catalog:  services.NewCatalog(cfg.DataDir, cache.New(10, time.Minute), log),
		Reset:    services.NewReset(db, ledger, mailer, cfg.OTPExpiryMinutes, log),
		Logger:   log,
	}

	r := gin.New()
	r.Use(sessions.Sessions("streamflix_session", cookie.NewStore([]byte(cfg.SecretKey))))
	r.LoadHTMLGlob("../../web/templates/*.html")
	New(container, cfg).RegisterRoutes(r)

	return &fixture{router: r, db: db, progress: progress, mailer: mailer, dataDir: cfg.DataDir}
}

// client carries session cookies across requests.
type client struct {
	router  *gin.Engine
	cookies []*http.Cookie
}

func (c *client) do(t *testing.T, method, path string, form url.Values) *httptest.ResponseRecorder {
	t.Helper()
	var req *http.Request
	if form != nil {
		req = httptest.NewRequest(method, path, strings.NewReader(form.Encode()))
		req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	} else {
		req = httptest.NewRequest(method, path, nil)
	}
	for _, ck := range c.cookies {
		req.AddCookie(ck)
	}

	w := httptest.NewRecorder()
	c.router.ServeHTTP(w, req)

	if set := w.Result().Cookies(); len(set) > 0 {
		c.cookies = set
	}
	return w
}

func seedUser(t *testing.T, db *fakeDB, email, password string) *models.User {
	t.Helper()
	hash, err := services.HashPassword(password)
	require.NoError(t, err)
	user := &models.User{Name: "Ada", Email: email, Password: hash}
	require.NoError(t, db.CreateUser(user))
	return user
}
