package services

import (
	"context"
	"fmt"
	"strconv"
	"sync"
	"time"

	"eventhorizon/internal/domain"
)

// In-memory fakes backing the service tests. They keep documents in maps
// guarded by a mutex so the detached recompute goroutines can touch them
// safely.

type fakeUserRepo struct {
	mu     sync.Mutex
	users  map[string]*domain.User
	nextID int
	err    error
}

func newFakeUserRepo() *fakeUserRepo {
	return &fakeUserRepo{users: map[string]*domain.User{}}
}

func (f *fakeUserRepo) Create(_ context.Context, user *domain.User) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.err != nil {
		return f.err
	}
	for _, u := range f.users {
		if u.Email == user.Email {
			return fmt.Errorf("%w: email already registered", domain.ErrConflict)
		}
	}
	f.nextID++
	user.ID = "user-" + strconv.Itoa(f.nextID)
	cp := *user
	f.users[user.ID] = &cp
	return nil
}

func (f *fakeUserRepo) GetByEmail(_ context.Context, email string) (*domain.User, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	for _, u := range f.users {
		if u.Email == email {
			cp := *u
			return &cp, nil
		}
	}
	return nil, domain.ErrNotFound
}

func (f *fakeUserRepo) GetByID(_ context.Context, id string) (*domain.User, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	u, ok := f.users[id]
	if !ok {
		return nil, domain.ErrNotFound
	}
	cp := *u
	return &cp, nil
}

func (f *fakeUserRepo) List(_ context.Context, _ domain.PaginationParams) ([]*domain.User, int, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	out := make([]*domain.User, 0, len(f.users))
	for _, u := range f.users {
		cp := *u
		out = append(out, &cp)
	}
	return out, len(out), nil
}

func (f *fakeUserRepo) Update(_ context.Context, user *domain.User) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if _, ok := f.users[user.ID]; !ok {
		return domain.ErrNotFound
	}
	cp := *user
	f.users[user.ID] = &cp
	return nil
}

func (f *fakeUserRepo) Delete(_ context.Context, id string) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if _, ok := f.users[id]; !ok {
		return domain.ErrNotFound
	}
	delete(f.users, id)
	return nil
}

type fakeEventRepo struct {
	mu        sync.Mutex
	events    map[string]*domain.Event
	nextID    int
	setSumErr error
	setAvgErr error
	sumWrites map[string]float64
	avgWrites map[string]float64
}

func newFakeEventRepo() *fakeEventRepo {
	return &fakeEventRepo{
		events:    map[string]*domain.Event{},
		sumWrites: map[string]float64{},
		avgWrites: map[string]float64{},
	}
}

func (f *fakeEventRepo) add(event *domain.Event) *domain.Event {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.nextID++
	if event.ID == "" {
		event.ID = "event-" + strconv.Itoa(f.nextID)
	}
	cp := *event
	f.events[event.ID] = &cp
	return event
}

func (f *fakeEventRepo) Create(_ context.Context, event *domain.Event) error {
	f.add(event)
	return nil
}

func (f *fakeEventRepo) GetByID(_ context.Context, id string) (*domain.Event, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	e, ok := f.events[id]
	if !ok {
		return nil, domain.ErrNotFound
	}
	cp := *e
	return &cp, nil
}

func (f *fakeEventRepo) List(_ context.Context, filter domain.EventFilter, _ domain.PaginationParams) ([]*domain.Event, int, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	var out []*domain.Event
	for _, e := range f.events {
		if filter.MaxCost != nil && e.Cost > *filter.MaxCost {
			continue
		}
		if filter.OwnerID != "" && e.UserID != filter.OwnerID {
			continue
		}
		cp := *e
		out = append(out, &cp)
	}
	return out, len(out), nil
}

func (f *fakeEventRepo) Update(_ context.Context, event *domain.Event) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if _, ok := f.events[event.ID]; !ok {
		return domain.ErrNotFound
	}
	cp := *event
	f.events[event.ID] = &cp
	return nil
}

func (f *fakeEventRepo) Delete(_ context.Context, id string) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if _, ok := f.events[id]; !ok {
		return domain.ErrNotFound
	}
	delete(f.events, id)
	return nil
}

func (f *fakeEventRepo) SetSumLength(_ context.Context, id string, sum float64) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.setSumErr != nil {
		return f.setSumErr
	}
	f.sumWrites[id] = sum
	if e, ok := f.events[id]; ok {
		e.SumLength = sum
	}
	return nil
}

func (f *fakeEventRepo) SetAvgRating(_ context.Context, id string, avg float64) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.setAvgErr != nil {
		return f.setAvgErr
	}
	f.avgWrites[id] = avg
	if e, ok := f.events[id]; ok {
		e.AvgRating = avg
	}
	return nil
}

func (f *fakeEventRepo) sumWrite(id string) (float64, bool) {
	f.mu.Lock()
	defer f.mu.Unlock()
	v, ok := f.sumWrites[id]
	return v, ok
}

func (f *fakeEventRepo) avgWrite(id string) (float64, bool) {
	f.mu.Lock()
	defer f.mu.Unlock()
	v, ok := f.avgWrites[id]
	return v, ok
}

type fakeLectureRepo struct {
	mu        sync.Mutex
	lectures  map[string]*domain.Lecture
	nextID    int
	sumErr    error
	avgWrites map[string]float64
}

func newFakeLectureRepo() *fakeLectureRepo {
	return &fakeLectureRepo{
		lectures:  map[string]*domain.Lecture{},
		avgWrites: map[string]float64{},
	}
}

func (f *fakeLectureRepo) add(lecture *domain.Lecture) *domain.Lecture {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.nextID++
	if lecture.ID == "" {
		lecture.ID = "lecture-" + strconv.Itoa(f.nextID)
	}
	cp := *lecture
	f.lectures[lecture.ID] = &cp
	return lecture
}

func (f *fakeLectureRepo) Create(_ context.Context, lecture *domain.Lecture) error {
	f.add(lecture)
	return nil
}

func (f *fakeLectureRepo) GetByID(_ context.Context, id string) (*domain.Lecture, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	l, ok := f.lectures[id]
	if !ok {
		return nil, domain.ErrNotFound
	}
	cp := *l
	return &cp, nil
}

func (f *fakeLectureRepo) List(_ context.Context, _ domain.PaginationParams) ([]*domain.Lecture, int, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	out := make([]*domain.Lecture, 0, len(f.lectures))
	for _, l := range f.lectures {
		cp := *l
		out = append(out, &cp)
	}
	return out, len(out), nil
}

func (f *fakeLectureRepo) ListByEventID(_ context.Context, eventID string) ([]*domain.Lecture, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	var out []*domain.Lecture
	for _, l := range f.lectures {
		if l.EventID == eventID {
			cp := *l
			out = append(out, &cp)
		}
	}
	return out, nil
}

func (f *fakeLectureRepo) Update(_ context.Context, lecture *domain.Lecture) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if _, ok := f.lectures[lecture.ID]; !ok {
		return domain.ErrNotFound
	}
	cp := *lecture
	f.lectures[lecture.ID] = &cp
	return nil
}

func (f *fakeLectureRepo) Delete(_ context.Context, id string) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if _, ok := f.lectures[id]; !ok {
		return domain.ErrNotFound
	}
	delete(f.lectures, id)
	return nil
}

func (f *fakeLectureRepo) DeleteByEventID(_ context.Context, eventID string) (int, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	n := 0
	for id, l := range f.lectures {
		if l.EventID == eventID {
			delete(f.lectures, id)
			n++
		}
	}
	return n, nil
}

func (f *fakeLectureRepo) SumLengthByEventID(_ context.Context, eventID string) (float64, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.sumErr != nil {
		return 0, f.sumErr
	}
	var sum float64
	for _, l := range f.lectures {
		if l.EventID == eventID {
			sum += l.Length
		}
	}
	return sum, nil
}

func (f *fakeLectureRepo) SetAvgRating(_ context.Context, id string, avg float64) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.avgWrites[id] = avg
	if l, ok := f.lectures[id]; ok {
		l.AvgRating = avg
	}
	return nil
}

func (f *fakeLectureRepo) avgWrite(id string) (float64, bool) {
	f.mu.Lock()
	defer f.mu.Unlock()
	v, ok := f.avgWrites[id]
	return v, ok
}

func (f *fakeLectureRepo) count() int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return len(f.lectures)
}

type fakeRatingRepo struct {
	mu      sync.Mutex
	ratings map[string]*domain.Rating
	nextID  int
	avgErr  error
}

func newFakeRatingRepo() *fakeRatingRepo {
	return &fakeRatingRepo{ratings: map[string]*domain.Rating{}}
}

func (f *fakeRatingRepo) Create(_ context.Context, rating *domain.Rating) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	for _, r := range f.ratings {
		if r.Target == rating.Target && r.UserID == rating.UserID {
			return fmt.Errorf("%w: already rated", domain.ErrConflict)
		}
	}
	f.nextID++
	rating.ID = "rating-" + strconv.Itoa(f.nextID)
	cp := *rating
	f.ratings[rating.ID] = &cp
	return nil
}

func (f *fakeRatingRepo) GetByID(_ context.Context, id string) (*domain.Rating, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	r, ok := f.ratings[id]
	if !ok {
		return nil, domain.ErrNotFound
	}
	cp := *r
	return &cp, nil
}

func (f *fakeRatingRepo) ListByTarget(_ context.Context, target domain.RatingTarget) ([]*domain.Rating, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	var out []*domain.Rating
	for _, r := range f.ratings {
		if r.Target == target {
			cp := *r
			out = append(out, &cp)
		}
	}
	return out, nil
}

func (f *fakeRatingRepo) Delete(_ context.Context, id string) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if _, ok := f.ratings[id]; !ok {
		return domain.ErrNotFound
	}
	delete(f.ratings, id)
	return nil
}

func (f *fakeRatingRepo) AvgByTarget(_ context.Context, target domain.RatingTarget) (float64, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.avgErr != nil {
		return 0, f.avgErr
	}
	var sum float64
	n := 0
	for _, r := range f.ratings {
		if r.Target == target {
			sum += r.Rate
			n++
		}
	}
	if n == 0 {
		return 0, nil
	}
	return sum / float64(n), nil
}

// fakeMaintainer records recompute invocations so tests can assert when and
// with what arguments the services trigger them.
type fakeMaintainer struct {
	mu         sync.Mutex
	sumCalls   []string
	ratingCall []domain.RatingTarget
}

func (f *fakeMaintainer) RecomputeSumLength(_ context.Context, eventID string) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.sumCalls = append(f.sumCalls, eventID)
}

func (f *fakeMaintainer) RecomputeAvgRating(_ context.Context, target domain.RatingTarget) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.ratingCall = append(f.ratingCall, target)
}

func (f *fakeMaintainer) sumCallCount() int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return len(f.sumCalls)
}

func (f *fakeMaintainer) ratingCalls() []domain.RatingTarget {
	f.mu.Lock()
	defer f.mu.Unlock()
	return append([]domain.RatingTarget(nil), f.ratingCall...)
}

type fakeGeocoder struct {
	candidates []domain.GeocodeCandidate
	err        error
	lastQuery  string
}

func (f *fakeGeocoder) Geocode(_ context.Context, address string) ([]domain.GeocodeCandidate, error) {
	f.lastQuery = address
	return f.candidates, f.err
}

type fakeHasher struct{}

func (fakeHasher) Hash(password string) (string, error) { return "hashed:" + password, nil }

func (fakeHasher) Compare(hash, password string) error {
	if hash != "hashed:"+password {
		return fmt.Errorf("mismatch")
	}
	return nil
}

type fakeIssuer struct{ err error }

func (f fakeIssuer) Issue(userID string, _ time.Duration) (string, error) {
	if f.err != nil {
		return "", f.err
	}
	return "token-" + userID, nil
}

type fakeEmailService struct {
	mu   sync.Mutex
	sent []string
}

func (f *fakeEmailService) SendWelcome(_ context.Context, user *domain.User) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.sent = append(f.sent, user.Email)
	return nil
}

func (f *fakeEmailService) sentCount() int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return len(f.sent)
}
