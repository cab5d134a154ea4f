package application

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"io"
	"sort"
	"strings"
	"sync"
	"time"

	"github.com/rabnifoundation/rabni-api/internal/domain/entity"
	repo "github.com/rabnifoundation/rabni-api/internal/domain/repository"
)

var errBoom = errors.New("boom")

type fakeUsers struct {
	byEmail map[string]*entity.User
}

func (f *fakeUsers) Create(ctx context.Context, u *entity.User) error { return nil }

func (f *fakeUsers) GetByID(ctx context.Context, id string) (*entity.User, error) {
	for _, u := range f.byEmail {
		if u.ID == id {
			return u, nil
		}
	}
	return nil, repo.ErrNotFound
}

func (f *fakeUsers) GetByEmail(ctx context.Context, email string) (*entity.User, error) {
	if u, ok := f.byEmail[email]; ok {
		return u, nil
	}
	return nil, repo.ErrNotFound
}

type memStore struct {
	mu   sync.Mutex
	data map[string]map[string]string
}

func newMemStore() *memStore { return &memStore{data: map[string]map[string]string{}} }

func (m *memStore) Get(ctx context.Context, id string) (map[string]string, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	out := map[string]string{}
	for k, v := range m.data[id] {
		out[k] = v
	}
	return out, nil
}

func (m *memStore) Save(ctx context.Context, id string, fields map[string]any, ttl time.Duration) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	h, ok := m.data[id]
	if !ok {
		h = map[string]string{}
		m.data[id] = h
	}
	for k, v := range fields {
		h[k] = fmt.Sprint(v)
	}
	return nil
}

func (m *memStore) Delete(ctx context.Context, id string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	delete(m.data, id)
	return nil
}

type fakeRoles map[string]string

func (f fakeRoles) RoleOf(ctx context.Context, subjectID string) entity.Role {
	return entity.ParseRole(f[subjectID])
}

type fakeAudit struct {
	mu      sync.Mutex
	entries []repo.AuditEntry
}

func (f *fakeAudit) Insert(ctx context.Context, e repo.AuditEntry) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.entries = append(f.entries, e)
	return nil
}

func (f *fakeAudit) actions() []string {
	f.mu.Lock()
	defer f.mu.Unlock()
	out := make([]string, 0, len(f.entries))
	for _, e := range f.entries {
		out = append(out, e.Action)
	}
	return out
}

type fakeObjects struct {
	uploads map[string]string
	deleted []string
	fail    bool
}

func newFakeObjects() *fakeObjects { return &fakeObjects{uploads: map[string]string{}} }

func (f *fakeObjects) Upload(ctx context.Context, objectPath, contentType string, r io.Reader) (string, error) {
	if f.fail {
		return "", errBoom
	}
	b, _ := io.ReadAll(r)
	url := "https://storage.googleapis.com/test-bucket/" + objectPath
	f.uploads[url] = string(b)
	return url, nil
}

func (f *fakeObjects) Delete(ctx context.Context, url string) error {
	f.deleted = append(f.deleted, url)
	return nil
}

func upload(name, body string) *Upload {
	return &Upload{Filename: name, ContentType: "application/octet-stream", Body: bytes.NewBufferString(body)}
}

type fakeBlog struct {
	posts    map[string]*entity.BlogPost
	seq      int
	listHits int
}

func newFakeBlog() *fakeBlog { return &fakeBlog{posts: map[string]*entity.BlogPost{}} }

func (f *fakeBlog) List(ctx context.Context) ([]entity.BlogPost, error) {
	f.listHits++
	out := make([]entity.BlogPost, 0, len(f.posts))
	for _, p := range f.posts {
		out = append(out, *p)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].PublishedAt.After(out[j].PublishedAt) })
	return out, nil
}

func (f *fakeBlog) Search(ctx context.Context, q string, limit int) ([]entity.BlogPost, error) {
	var out []entity.BlogPost
	for _, p := range f.posts {
		if strings.Contains(strings.ToLower(p.Title+" "+p.Content), strings.ToLower(q)) {
			out = append(out, *p)
		}
	}
	return out, nil
}

func (f *fakeBlog) GetByID(ctx context.Context, id string) (*entity.BlogPost, error) {
	p, ok := f.posts[id]
	if !ok {
		return nil, repo.ErrNotFound
	}
	cp := *p
	return &cp, nil
}

func (f *fakeBlog) Create(ctx context.Context, p *entity.BlogPost) error {
	f.seq++
	p.ID = fmt.Sprintf("post-%d", f.seq)
	cp := *p
	f.posts[p.ID] = &cp
	return nil
}

func (f *fakeBlog) Update(ctx context.Context, p *entity.BlogPost) error {
	if _, ok := f.posts[p.ID]; !ok {
		return repo.ErrNotFound
	}
	cp := *p
	f.posts[p.ID] = &cp
	return nil
}

func (f *fakeBlog) Delete(ctx context.Context, id string) error {
	if _, ok := f.posts[id]; !ok {
		return repo.ErrNotFound
	}
	delete(f.posts, id)
	return nil
}

type fakeIndex struct {
	indexed map[string]entity.BlogPost
	removed []string
	fail    bool
}

func newFakeIndex() *fakeIndex { return &fakeIndex{indexed: map[string]entity.BlogPost{}} }

func (f *fakeIndex) Index(ctx context.Context, p entity.BlogPost) error {
	f.indexed[p.ID] = p
	return nil
}

func (f *fakeIndex) Remove(ctx context.Context, id string) error {
	f.removed = append(f.removed, id)
	delete(f.indexed, id)
	return nil
}

func (f *fakeIndex) Search(ctx context.Context, q string, size int) ([]entity.BlogPost, error) {
	if f.fail {
		return nil, errBoom
	}
	var out []entity.BlogPost
	for _, p := range f.indexed {
		if strings.Contains(p.Title, q) {
			out = append(out, p)
		}
	}
	return out, nil
}

type fakeCache struct {
	posts       []entity.BlogPost
	ok          bool
	invalidated int
}

func (f *fakeCache) Get(ctx context.Context) ([]entity.BlogPost, bool) { return f.posts, f.ok }
func (f *fakeCache) Set(ctx context.Context, posts []entity.BlogPost)  { f.posts, f.ok = posts, true }
func (f *fakeCache) Invalidate(ctx context.Context) {
	f.posts, f.ok = nil, false
	f.invalidated++
}

type fakeGallery struct {
	items map[string]*entity.GalleryItem
	seq   int
	fail  bool
}

func newFakeGallery() *fakeGallery { return &fakeGallery{items: map[string]*entity.GalleryItem{}} }

func (f *fakeGallery) List(ctx context.Context, category string) ([]entity.GalleryItem, error) {
	var out []entity.GalleryItem
	for _, g := range f.items {
		if category == "" || g.Category == category {
			out = append(out, *g)
		}
	}
	return out, nil
}

func (f *fakeGallery) GetByID(ctx context.Context, id string) (*entity.GalleryItem, error) {
	g, ok := f.items[id]
	if !ok {
		return nil, repo.ErrNotFound
	}
	cp := *g
	return &cp, nil
}

func (f *fakeGallery) Create(ctx context.Context, g *entity.GalleryItem) error {
	if f.fail {
		return errBoom
	}
	f.seq++
	g.ID = fmt.Sprintf("g-%d", f.seq)
	cp := *g
	f.items[g.ID] = &cp
	return nil
}

func (f *fakeGallery) Update(ctx context.Context, g *entity.GalleryItem) error {
	cp := *g
	f.items[g.ID] = &cp
	return nil
}

func (f *fakeGallery) Delete(ctx context.Context, id string) error {
	delete(f.items, id)
	return nil
}

type fakeReports struct {
	items map[string]*entity.Report
	seq   int
}

func newFakeReports() *fakeReports { return &fakeReports{items: map[string]*entity.Report{}} }

func (f *fakeReports) List(ctx context.Context) ([]entity.Report, error) {
	var out []entity.Report
	for _, r := range f.items {
		out = append(out, *r)
	}
	return out, nil
}

func (f *fakeReports) GetByID(ctx context.Context, id string) (*entity.Report, error) {
	r, ok := f.items[id]
	if !ok {
		return nil, repo.ErrNotFound
	}
	cp := *r
	return &cp, nil
}

func (f *fakeReports) Create(ctx context.Context, r *entity.Report) error {
	f.seq++
	r.ID = fmt.Sprintf("r-%d", f.seq)
	cp := *r
	f.items[r.ID] = &cp
	return nil
}

func (f *fakeReports) Update(ctx context.Context, r *entity.Report) error {
	cp := *r
	f.items[r.ID] = &cp
	return nil
}

func (f *fakeReports) Delete(ctx context.Context, id string) error {
	delete(f.items, id)
	return nil
}

type fakeContacts struct {
	msgs []entity.ContactMessage
	read map[string]bool
	fail bool
}

func (f *fakeContacts) Create(ctx context.Context, m *entity.ContactMessage) error {
	if f.fail {
		return errBoom
	}
	m.ID = fmt.Sprintf("c-%d", len(f.msgs)+1)
	m.CreatedAt = time.Now()
	f.msgs = append(f.msgs, *m)
	return nil
}

func (f *fakeContacts) List(ctx context.Context, limit int) ([]entity.ContactMessage, error) {
	if limit > 0 && limit < len(f.msgs) {
		return f.msgs[:limit], nil
	}
	return f.msgs, nil
}

func (f *fakeContacts) MarkRead(ctx context.Context, id string) error {
	for _, m := range f.msgs {
		if m.ID == id {
			if f.read == nil {
				f.read = map[string]bool{}
			}
			f.read[id] = true
			return nil
		}
	}
	return repo.ErrNotFound
}

type fakeVolunteers struct {
	apps []entity.VolunteerApplication
	fail bool
}

func (f *fakeVolunteers) Create(ctx context.Context, v *entity.VolunteerApplication) error {
	if f.fail {
		return errBoom
	}
	v.ID = fmt.Sprintf("v-%d", len(f.apps)+1)
	f.apps = append(f.apps, *v)
	return nil
}

func (f *fakeVolunteers) List(ctx context.Context, limit int) ([]entity.VolunteerApplication, error) {
	if limit > 0 && limit < len(f.apps) {
		return f.apps[:limit], nil
	}
	return f.apps, nil
}

type fakePublisher struct {
	jobs []any
	fail bool
}

func (f *fakePublisher) PublishJSON(ctx context.Context, body any) error {
	if f.fail {
		return errBoom
	}
	f.jobs = append(f.jobs, body)
	return nil
}

type fakeStats struct {
	stats entity.DashboardStats
	err   error
}

func (f fakeStats) Counts(ctx context.Context) (entity.DashboardStats, error) { return f.stats, f.err }
