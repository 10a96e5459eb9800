package usecase

import (
	"context"
	"sort"
	"strings"
	"sync"
	"time"

	"artdb/internal/data/entity"
	"artdb/internal/data/repository"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgconn"
)

// uniqueViolation mimics what pgx surfaces when an insert trips a unique
// constraint, so services exercise the same detection path as in production.
func uniqueViolation(constraint string) error {
	return &pgconn.PgError{Code: "23505", ConstraintName: constraint}
}

func copyUser(u *entity.User) *entity.User {
	c := *u
	return &c
}

type fakeUserRepo struct {
	mu    sync.Mutex
	users map[uuid.UUID]*entity.User
}

func newFakeUserRepo() *fakeUserRepo {
	return &fakeUserRepo{users: map[uuid.UUID]*entity.User{}}
}

func (f *fakeUserRepo) Create(ctx context.Context, user *entity.User) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	for _, u := range f.users {
		if u.Username == user.Username || u.Email == user.Email {
			return uniqueViolation("users_username_key")
		}
	}
	f.users[user.ID] = copyUser(user)
	return nil
}

func (f *fakeUserRepo) FindByID(ctx context.Context, id uuid.UUID) (*entity.User, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if u, ok := f.users[id]; ok {
		return copyUser(u), nil
	}
	return nil, nil
}

func (f *fakeUserRepo) FindByUsername(ctx context.Context, username string) (*entity.User, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	for _, u := range f.users {
		if u.Username == username {
			return copyUser(u), nil
		}
	}
	return nil, nil
}

func (f *fakeUserRepo) FindByUsernameAndEmail(ctx context.Context, username, email string) (*entity.User, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	for _, u := range f.users {
		if u.Username == username && u.Email == email {
			return copyUser(u), nil
		}
	}
	return nil, nil
}

func (f *fakeUserRepo) FindByIDs(ctx context.Context, ids []uuid.UUID) (map[uuid.UUID]*entity.User, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	out := map[uuid.UUID]*entity.User{}
	for _, id := range ids {
		if u, ok := f.users[id]; ok {
			out[id] = copyUser(u)
		}
	}
	return out, nil
}

func (f *fakeUserRepo) FindAll(ctx context.Context, search string, limit, offset int) ([]*entity.User, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	var all []*entity.User
	for _, u := range f.users {
		if search == "" || strings.Contains(strings.ToLower(u.Username), strings.ToLower(search)) {
			all = append(all, copyUser(u))
		}
	}
	sort.Slice(all, func(i, j int) bool { return all[i].Username < all[j].Username })
	return paginate(all, limit, offset), nil
}

func (f *fakeUserRepo) CountAll(ctx context.Context, search string) (int64, error) {
	all, _ := f.FindAll(ctx, search, 1<<30, 0)
	return int64(len(all)), nil
}

func (f *fakeUserRepo) Update(ctx context.Context, user *entity.User) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	for id, u := range f.users {
		if id == user.ID {
			continue
		}
		if u.Username == user.Username || u.Email == user.Email {
			return uniqueViolation("users_username_key")
		}
	}
	f.users[user.ID] = copyUser(user)
	return nil
}

func (f *fakeUserRepo) Delete(ctx context.Context, id uuid.UUID) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	delete(f.users, id)
	return nil
}

type fakeConfirmationRepo struct {
	mu    sync.Mutex
	items []*entity.Confirmation
}

func (f *fakeConfirmationRepo) Create(ctx context.Context, c *entity.Confirmation) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	cc := *c
	f.items = append(f.items, &cc)
	return nil
}

func (f *fakeConfirmationRepo) FindLatestActive(ctx context.Context, userID uuid.UUID) (*entity.Confirmation, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	var latest *entity.Confirmation
	for _, c := range f.items {
		if c.UserID != userID || c.Used || c.ExpiresAt.Before(time.Now()) {
			continue
		}
		if latest == nil || c.CreatedAt.After(latest.CreatedAt) {
			latest = c
		}
	}
	if latest == nil {
		return nil, nil
	}
	cc := *latest
	return &cc, nil
}

func (f *fakeConfirmationRepo) MarkUsed(ctx context.Context, id uuid.UUID) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	for _, c := range f.items {
		if c.ID == id {
			c.Used = true
			return nil
		}
	}
	return nil
}

type fakeCategoryRepo struct {
	mu     sync.Mutex
	items  map[uuid.UUID]*entity.Category
	titles *fakeTitleRepo
}

func newFakeCategoryRepo(titles *fakeTitleRepo) *fakeCategoryRepo {
	return &fakeCategoryRepo{items: map[uuid.UUID]*entity.Category{}, titles: titles}
}

func (f *fakeCategoryRepo) Create(ctx context.Context, c *entity.Category) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	for _, existing := range f.items {
		if existing.Slug == c.Slug {
			return uniqueViolation("categories_slug_key")
		}
	}
	cc := *c
	f.items[c.ID] = &cc
	return nil
}

func (f *fakeCategoryRepo) FindBySlug(ctx context.Context, slug string) (*entity.Category, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	for _, c := range f.items {
		if c.Slug == slug {
			cc := *c
			return &cc, nil
		}
	}
	return nil, nil
}

func (f *fakeCategoryRepo) FindByIDs(ctx context.Context, ids []uuid.UUID) (map[uuid.UUID]*entity.Category, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	out := map[uuid.UUID]*entity.Category{}
	for _, id := range ids {
		if c, ok := f.items[id]; ok {
			cc := *c
			out[id] = &cc
		}
	}
	return out, nil
}

func (f *fakeCategoryRepo) FindAll(ctx context.Context, search string, limit, offset int) ([]*entity.Category, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	var all []*entity.Category
	for _, c := range f.items {
		if search == "" || strings.Contains(strings.ToLower(c.Name), strings.ToLower(search)) {
			cc := *c
			all = append(all, &cc)
		}
	}
	sort.Slice(all, func(i, j int) bool { return all[i].Slug < all[j].Slug })
	return paginate(all, limit, offset), nil
}

func (f *fakeCategoryRepo) CountAll(ctx context.Context, search string) (int64, error) {
	all, _ := f.FindAll(ctx, search, 1<<30, 0)
	return int64(len(all)), nil
}

func (f *fakeCategoryRepo) DeleteBySlug(ctx context.Context, slug string) (bool, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	for id, c := range f.items {
		if c.Slug == slug {
			delete(f.items, id)
			// Mirror the schema's ON DELETE SET NULL on titles.category_id.
			f.titles.clearCategory(id)
			return true, nil
		}
	}
	return false, nil
}

type fakeGenreRepo struct {
	mu    sync.Mutex
	items map[uuid.UUID]*entity.Genre
	links *fakeTitleGenreRepo
}

func newFakeGenreRepo(links *fakeTitleGenreRepo) *fakeGenreRepo {
	return &fakeGenreRepo{items: map[uuid.UUID]*entity.Genre{}, links: links}
}

func (f *fakeGenreRepo) Create(ctx context.Context, g *entity.Genre) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	for _, existing := range f.items {
		if existing.Slug == g.Slug {
			return uniqueViolation("genres_slug_key")
		}
	}
	gg := *g
	f.items[g.ID] = &gg
	return nil
}

func (f *fakeGenreRepo) FindBySlugs(ctx context.Context, slugs []string) ([]*entity.Genre, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	var out []*entity.Genre
	for _, slug := range slugs {
		for _, g := range f.items {
			if g.Slug == slug {
				gg := *g
				out = append(out, &gg)
			}
		}
	}
	return out, nil
}

func (f *fakeGenreRepo) FindByTitleID(ctx context.Context, titleID uuid.UUID) ([]*entity.Genre, error) {
	byTitle, err := f.FindByTitleIDs(ctx, []uuid.UUID{titleID})
	if err != nil {
		return nil, err
	}
	return byTitle[titleID], nil
}

func (f *fakeGenreRepo) FindByTitleIDs(ctx context.Context, titleIDs []uuid.UUID) (map[uuid.UUID][]*entity.Genre, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	out := map[uuid.UUID][]*entity.Genre{}
	for _, titleID := range titleIDs {
		for _, link := range f.links.byTitle(titleID) {
			if g, ok := f.items[link.GenreID]; ok {
				gg := *g
				out[titleID] = append(out[titleID], &gg)
			}
		}
	}
	return out, nil
}

func (f *fakeGenreRepo) FindAll(ctx context.Context, search string, limit, offset int) ([]*entity.Genre, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	var all []*entity.Genre
	for _, g := range f.items {
		if search == "" || strings.Contains(strings.ToLower(g.Name), strings.ToLower(search)) {
			gg := *g
			all = append(all, &gg)
		}
	}
	sort.Slice(all, func(i, j int) bool { return all[i].Slug < all[j].Slug })
	return paginate(all, limit, offset), nil
}

func (f *fakeGenreRepo) CountAll(ctx context.Context, search string) (int64, error) {
	all, _ := f.FindAll(ctx, search, 1<<30, 0)
	return int64(len(all)), nil
}

func (f *fakeGenreRepo) DeleteBySlug(ctx context.Context, slug string) (bool, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	for id, g := range f.items {
		if g.Slug == slug {
			delete(f.items, id)
			return true, nil
		}
	}
	return false, nil
}

type fakeTitleGenreRepo struct {
	mu    sync.Mutex
	links []*entity.TitleGenre
}

func (f *fakeTitleGenreRepo) CreateBatch(ctx context.Context, titleGenres []*entity.TitleGenre) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	for _, tg := range titleGenres {
		cc := *tg
		f.links = append(f.links, &cc)
	}
	return nil
}

func (f *fakeTitleGenreRepo) DeleteByTitleID(ctx context.Context, titleID uuid.UUID) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	var kept []*entity.TitleGenre
	for _, link := range f.links {
		if link.TitleID != titleID {
			kept = append(kept, link)
		}
	}
	f.links = kept
	return nil
}

func (f *fakeTitleGenreRepo) byTitle(titleID uuid.UUID) []*entity.TitleGenre {
	f.mu.Lock()
	defer f.mu.Unlock()
	var out []*entity.TitleGenre
	for _, link := range f.links {
		if link.TitleID == titleID {
			out = append(out, link)
		}
	}
	return out
}

type fakeTitleRepo struct {
	mu    sync.Mutex
	items map[uuid.UUID]*entity.Title
}

func newFakeTitleRepo() *fakeTitleRepo {
	return &fakeTitleRepo{items: map[uuid.UUID]*entity.Title{}}
}

func (f *fakeTitleRepo) Create(ctx context.Context, t *entity.Title) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	tt := *t
	f.items[t.ID] = &tt
	return nil
}

func (f *fakeTitleRepo) FindByID(ctx context.Context, id uuid.UUID) (*entity.Title, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if t, ok := f.items[id]; ok {
		tt := *t
		return &tt, nil
	}
	return nil, nil
}

func (f *fakeTitleRepo) FindAll(ctx context.Context, filter repository.TitleFilter, limit, offset int) ([]*entity.Title, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	var all []*entity.Title
	for _, t := range f.items {
		if filter.Name != "" && !strings.Contains(strings.ToLower(t.Name), strings.ToLower(filter.Name)) {
			continue
		}
		if filter.Year != nil && t.Year != *filter.Year {
			continue
		}
		tt := *t
		all = append(all, &tt)
	}
	sort.Slice(all, func(i, j int) bool { return all[i].Name < all[j].Name })
	return paginate(all, limit, offset), nil
}

func (f *fakeTitleRepo) CountAll(ctx context.Context, filter repository.TitleFilter) (int64, error) {
	all, _ := f.FindAll(ctx, filter, 1<<30, 0)
	return int64(len(all)), nil
}

func (f *fakeTitleRepo) Update(ctx context.Context, t *entity.Title) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	tt := *t
	f.items[t.ID] = &tt
	return nil
}

func (f *fakeTitleRepo) Delete(ctx context.Context, id uuid.UUID) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	delete(f.items, id)
	return nil
}

func (f *fakeTitleRepo) clearCategory(categoryID uuid.UUID) {
	f.mu.Lock()
	defer f.mu.Unlock()
	for _, t := range f.items {
		if t.CategoryID != nil && *t.CategoryID == categoryID {
			t.CategoryID = nil
		}
	}
}

type fakeReviewRepo struct {
	mu    sync.Mutex
	items map[uuid.UUID]*entity.Review
}

func newFakeReviewRepo() *fakeReviewRepo {
	return &fakeReviewRepo{items: map[uuid.UUID]*entity.Review{}}
}

func (f *fakeReviewRepo) Create(ctx context.Context, r *entity.Review) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	for _, existing := range f.items {
		if existing.TitleID == r.TitleID && existing.AuthorID == r.AuthorID {
			return uniqueViolation("reviews_title_id_author_id_key")
		}
	}
	rr := *r
	f.items[r.ID] = &rr
	return nil
}

func (f *fakeReviewRepo) FindByIDAndTitle(ctx context.Context, id, titleID uuid.UUID) (*entity.Review, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if r, ok := f.items[id]; ok && r.TitleID == titleID {
		rr := *r
		return &rr, nil
	}
	return nil, nil
}

func (f *fakeReviewRepo) FindByTitleID(ctx context.Context, titleID uuid.UUID, limit, offset int) ([]*entity.Review, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	var all []*entity.Review
	for _, r := range f.items {
		if r.TitleID == titleID {
			rr := *r
			all = append(all, &rr)
		}
	}
	sort.Slice(all, func(i, j int) bool { return all[i].CreatedAt.After(all[j].CreatedAt) })
	return paginate(all, limit, offset), nil
}

func (f *fakeReviewRepo) CountByTitleID(ctx context.Context, titleID uuid.UUID) (int64, error) {
	all, _ := f.FindByTitleID(ctx, titleID, 1<<30, 0)
	return int64(len(all)), nil
}

func (f *fakeReviewRepo) Update(ctx context.Context, r *entity.Review) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	rr := *r
	f.items[r.ID] = &rr
	return nil
}

func (f *fakeReviewRepo) Delete(ctx context.Context, id uuid.UUID) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	delete(f.items, id)
	return nil
}

func (f *fakeReviewRepo) AverageByTitleID(ctx context.Context, titleID uuid.UUID) (*float64, error) {
	averages, err := f.AverageByTitleIDs(ctx, []uuid.UUID{titleID})
	if err != nil {
		return nil, err
	}
	if avg, ok := averages[titleID]; ok {
		return &avg, nil
	}
	return nil, nil
}

func (f *fakeReviewRepo) AverageByTitleIDs(ctx context.Context, titleIDs []uuid.UUID) (map[uuid.UUID]float64, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	sums := map[uuid.UUID]int{}
	counts := map[uuid.UUID]int{}
	for _, r := range f.items {
		sums[r.TitleID] += r.Score
		counts[r.TitleID]++
	}
	out := map[uuid.UUID]float64{}
	for _, id := range titleIDs {
		if counts[id] > 0 {
			out[id] = float64(sums[id]) / float64(counts[id])
		}
	}
	return out, nil
}

type fakeCommentRepo struct {
	mu    sync.Mutex
	items map[uuid.UUID]*entity.Comment
}

func newFakeCommentRepo() *fakeCommentRepo {
	return &fakeCommentRepo{items: map[uuid.UUID]*entity.Comment{}}
}

func (f *fakeCommentRepo) Create(ctx context.Context, c *entity.Comment) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	cc := *c
	f.items[c.ID] = &cc
	return nil
}

func (f *fakeCommentRepo) FindByIDAndReview(ctx context.Context, id, reviewID uuid.UUID) (*entity.Comment, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if c, ok := f.items[id]; ok && c.ReviewID == reviewID {
		cc := *c
		return &cc, nil
	}
	return nil, nil
}

func (f *fakeCommentRepo) FindByReviewID(ctx context.Context, reviewID uuid.UUID, limit, offset int) ([]*entity.Comment, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	var all []*entity.Comment
	for _, c := range f.items {
		if c.ReviewID == reviewID {
			cc := *c
			all = append(all, &cc)
		}
	}
	sort.Slice(all, func(i, j int) bool { return all[i].CreatedAt.After(all[j].CreatedAt) })
	return paginate(all, limit, offset), nil
}

func (f *fakeCommentRepo) CountByReviewID(ctx context.Context, reviewID uuid.UUID) (int64, error) {
	all, _ := f.FindByReviewID(ctx, reviewID, 1<<30, 0)
	return int64(len(all)), nil
}

func (f *fakeCommentRepo) Update(ctx context.Context, c *entity.Comment) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	cc := *c
	f.items[c.ID] = &cc
	return nil
}

func (f *fakeCommentRepo) Delete(ctx context.Context, id uuid.UUID) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	delete(f.items, id)
	return nil
}

func paginate[T any](all []T, limit, offset int) []T {
	if offset >= len(all) {
		return nil
	}
	all = all[offset:]
	if limit < len(all) {
		all = all[:limit]
	}
	return all
}

// fakeMailer records the codes that would have been mailed out.
type fakeMailer struct {
	mu   sync.Mutex
	sent []sentMail
	fail bool
}

type sentMail struct {
	To   string
	Code string
}

func (f *fakeMailer) Send(ctx context.Context, to, code string) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.fail {
		return context.DeadlineExceeded
	}
	f.sent = append(f.sent, sentMail{To: to, Code: code})
	return nil
}

func (f *fakeMailer) lastCode() string {
	f.mu.Lock()
	defer f.mu.Unlock()
	if len(f.sent) == 0 {
		return ""
	}
	return f.sent[len(f.sent)-1].Code
}

func newTestRepository() *repository.Repository {
	links := &fakeTitleGenreRepo{}
	titles := newFakeTitleRepo()
	return &repository.Repository{
		User:         newFakeUserRepo(),
		Category:     newFakeCategoryRepo(titles),
		Genre:        newFakeGenreRepo(links),
		Title:        titles,
		TitleGenre:   links,
		Review:       newFakeReviewRepo(),
		Comment:      newFakeCommentRepo(),
		Confirmation: &fakeConfirmationRepo{},
	}
}
