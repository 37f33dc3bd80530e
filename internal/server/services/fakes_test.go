package services

import (
	"context"
	"database/sql"
	"fmt"
	"io"
	"sort"
	"sync"
	"sync/atomic"
	"time"

	"github.com/dmitrijs2005/jobboard/internal/common"
	"github.com/dmitrijs2005/jobboard/internal/dbx"
	"github.com/dmitrijs2005/jobboard/internal/logging"
	"github.com/dmitrijs2005/jobboard/internal/server/models"
	"github.com/dmitrijs2005/jobboard/internal/server/repositories/applications"
	"github.com/dmitrijs2005/jobboard/internal/server/repositories/jobs"
	"github.com/dmitrijs2005/jobboard/internal/server/repositories/users"
)

func discardLogger() logging.Logger {
	return logging.New(logging.FormatJSON, io.Discard)
}

// --- repository manager ---

type fakeRepoMgr struct {
	users *fakeUsers
	jobs  *fakeJobs
	apps  *fakeApps
}

func newFakeRepoMgr() *fakeRepoMgr {
	return &fakeRepoMgr{
		users: &fakeUsers{byID: map[string]*models.User{}},
		jobs:  &fakeJobs{byID: map[string]*models.Job{}},
		apps:  &fakeApps{byID: map[string]*models.Application{}, byPair: map[string]string{}},
	}
}

func (m *fakeRepoMgr) RunMigrations(context.Context, *sql.DB) error { return nil }
func (m *fakeRepoMgr) Users(dbx.DBTX) users.Repository { return m.users }
func (m *fakeRepoMgr) Jobs(dbx.DBTX) jobs.Repository { return m.jobs }
func (m *fakeRepoMgr) Applications(dbx.DBTX) applications.Repository { return m.apps }

// --- users ---

type fakeUsers struct {
	mu     sync.Mutex
	byID   map[string]*models.User
	seq    int
	calls  int
	getErr error
	// createErr is returned once, then cleared.
	createErr error
	// onCreateConflict is stored before createErr is returned, simulating a
	// concurrent insert of the same email.
	onCreateConflict *models.User
}

func (f *fakeUsers) add(u *models.User) *models.User {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.byID[u.ID] = u
	return u
}

func (f *fakeUsers) Create(ctx context.Context, u *models.User) (*models.User, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.calls++
	if f.createErr != nil {
		err := f.createErr
		f.createErr = nil
		if f.onCreateConflict != nil {
			f.byID[f.onCreateConflict.ID] = f.onCreateConflict
		}
		return nil, err
	}
	for _, existing := range f.byID {
		if existing.Email == u.Email {
			return nil, common.ErrorUniqueViolation
		}
	}
	f.seq++
	cp := *u
	cp.ID = fmt.Sprintf("u-%d", f.seq)
	cp.CreatedAt, cp.UpdatedAt = time.Now(), time.Now()
	f.byID[cp.ID] = &cp
	return &cp, nil
}

func (f *fakeUsers) GetByID(ctx context.Context, id string) (*models.User, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.calls++
	if f.getErr != nil {
		return nil, f.getErr
	}
	u, ok := f.byID[id]
	if !ok {
		return nil, common.ErrorNotFound
	}
	return u, nil
}

func (f *fakeUsers) GetByEmail(ctx context.Context, email string) (*models.User, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.calls++
	if f.getErr != nil {
		return nil, f.getErr
	}
	for _, u := range f.byID {
		if u.Email == email {
			return u, nil
		}
	}
	return nil, common.ErrorNotFound
}

func (f *fakeUsers) UpdateName(ctx context.Context, id, name string) (*models.User, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.calls++
	u, ok := f.byID[id]
	if !ok {
		return nil, common.ErrorNotFound
	}
	u.Name = name
	u.UpdatedAt = time.Now()
	return u, nil
}

func (f *fakeUsers) SetGoogleID(ctx context.Context, id, googleID string) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.calls++
	u, ok := f.byID[id]
	if !ok {
		return common.ErrorNotFound
	}
	u.GoogleID = &googleID
	return nil
}

func (f *fakeUsers) SetAdmin(ctx context.Context, id string) (*models.User, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.calls++
	u, ok := f.byID[id]
	if !ok {
		return nil, common.ErrorNotFound
	}
	u.IsAdmin = true
	return u, nil
}

func (f *fakeUsers) List(ctx context.Context) ([]*models.User, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.calls++
	if f.getErr != nil {
		return nil, f.getErr
	}
	out := make([]*models.User, 0, len(f.byID))
	for _, u := range f.byID {
		out = append(out, u)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out, nil
}

func (f *fakeUsers) Count(ctx context.Context) (int, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.calls++
	if f.getErr != nil {
		return 0, f.getErr
	}
	return len(f.byID), nil
}

// --- jobs ---

type fakeJobs struct {
	mu    sync.Mutex
	byID  map[string]*models.Job
	seq   int
	calls int
	err   error
}

func (f *fakeJobs) add(j *models.Job) *models.Job {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.byID[j.ID] = j
	return j
}

func (f *fakeJobs) Create(ctx context.Context, j *models.Job) (*models.Job, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.calls++
	if f.err != nil {
		return nil, f.err
	}
	f.seq++
	cp := *j
	cp.ID = fmt.Sprintf("00000000-0000-0000-0000-%012d", f.seq)
	cp.CreatedAt, cp.UpdatedAt = time.Now(), time.Now()
	f.byID[cp.ID] = &cp
	return &cp, nil
}

func (f *fakeJobs) GetByID(ctx context.Context, id string) (*models.Job, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.calls++
	if f.err != nil {
		return nil, f.err
	}
	j, ok := f.byID[id]
	if !ok {
		return nil, common.ErrorNotFound
	}
	return j, nil
}

func (f *fakeJobs) list(activeOnly bool) []*models.Job {
	out := []*models.Job{}
	for _, j := range f.byID {
		if !activeOnly || j.IsActive {
			out = append(out, j)
		}
	}
	sort.Slice(out, func(i, k int) bool { return out[i].CreatedAt.After(out[k].CreatedAt) })
	return out
}

func (f *fakeJobs) ListActive(ctx context.Context) ([]*models.Job, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.calls++
	if f.err != nil {
		return nil, f.err
	}
	return f.list(true), nil
}

func (f *fakeJobs) ListAll(ctx context.Context) ([]*models.Job, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.calls++
	if f.err != nil {
		return nil, f.err
	}
	return f.list(false), nil
}

func (f *fakeJobs) Update(ctx context.Context, p *models.JobPatch) (*models.Job, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.calls++
	if f.err != nil {
		return nil, f.err
	}
	cur, ok := f.byID[p.ID]
	if !ok {
		return nil, common.ErrorNotFound
	}
	cp := *cur
	cp.Title, cp.Description, cp.UpdatedAt = p.Title, p.Description, time.Now()
	keep := func(dst *string, v *string) {
		if v != nil {
			*dst = *v
		}
	}
	keep(&cp.Requirements, p.Requirements)
	keep(&cp.Location, p.Location)
	keep(&cp.SalaryRange, p.SalaryRange)
	keep(&cp.Company, p.Company)
	f.byID[p.ID] = &cp
	return &cp, nil
}

func (f *fakeJobs) SetActive(ctx context.Context, id string, active bool) (*models.Job, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.calls++
	if f.err != nil {
		return nil, f.err
	}
	j, ok := f.byID[id]
	if !ok {
		return nil, common.ErrorNotFound
	}
	j.IsActive = active
	j.UpdatedAt = time.Now()
	return j, nil
}

func (f *fakeJobs) Delete(ctx context.Context, id string) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.calls++
	if f.err != nil {
		return f.err
	}
	if _, ok := f.byID[id]; !ok {
		return common.ErrorNotFound
	}
	delete(f.byID, id)
	return nil
}

// --- applications ---

// barrier holds the first parties callers until all of them have arrived.
type barrier struct {
	wg      sync.WaitGroup
	n       atomic.Int32
	parties int32
}

func newBarrier(parties int) *barrier {
	b := &barrier{parties: int32(parties)}
	b.wg.Add(parties)
	return b
}

func (b *barrier) wait() {
	if b.n.Add(1) <= b.parties {
		b.wg.Done()
		b.wg.Wait()
	}
}

type fakeApps struct {
	mu     sync.Mutex
	byID   map[string]*models.Application
	byPair map[string]string
	seq    int
	calls  int

	findErr   error
	createErr error
	err       error

	// afterFind runs outside the lock after every FindByJobAndUser lookup.
	afterFind *barrier
}

func pairKey(jobID, userID string) string { return jobID + "|" + userID }

func (f *fakeApps) Create(ctx context.Context, a *models.Application) (*models.Application, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.calls++
	if f.createErr != nil {
		return nil, f.createErr
	}
	if _, dup := f.byPair[pairKey(a.JobID, a.UserID)]; dup {
		return nil, fmt.Errorf("insert: %w", common.ErrorUniqueViolation)
	}
	f.seq++
	cp := *a
	cp.ID = fmt.Sprintf("a-%d", f.seq)
	cp.AppliedAt = time.Now()
	f.byID[cp.ID] = &cp
	f.byPair[pairKey(a.JobID, a.UserID)] = cp.ID
	return &cp, nil
}

func (f *fakeApps) GetByID(ctx context.Context, id string) (*models.Application, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.calls++
	if f.err != nil {
		return nil, f.err
	}
	a, ok := f.byID[id]
	if !ok {
		return nil, common.ErrorNotFound
	}
	return a, nil
}

func (f *fakeApps) FindByJobAndUser(ctx context.Context, jobID, userID string) (*models.Application, error) {
	a, err := f.find(jobID, userID)
	if f.afterFind != nil {
		f.afterFind.wait()
	}
	return a, err
}

func (f *fakeApps) find(jobID, userID string) (*models.Application, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.calls++
	if f.findErr != nil {
		return nil, f.findErr
	}
	id, ok := f.byPair[pairKey(jobID, userID)]
	if !ok {
		return nil, common.ErrorNotFound
	}
	return f.byID[id], nil
}

func (f *fakeApps) ListByUser(ctx context.Context, userID string) ([]*models.ApplicationWithJob, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.calls++
	if f.err != nil {
		return nil, f.err
	}
	out := []*models.ApplicationWithJob{}
	for _, a := range f.byID {
		if a.UserID == userID {
			out = append(out, &models.ApplicationWithJob{Application: *a, Job: &models.Job{ID: a.JobID}})
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID > out[j].ID })
	return out, nil
}

func (f *fakeApps) ListAll(ctx context.Context) ([]*models.AdminApplication, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.calls++
	if f.err != nil {
		return nil, f.err
	}
	out := []*models.AdminApplication{}
	for _, a := range f.byID {
		out = append(out, &models.AdminApplication{Application: *a})
	}
	return out, nil
}

func (f *fakeApps) UpdateStatus(ctx context.Context, id string, status models.ApplicationStatus) (*models.Application, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.calls++
	if f.err != nil {
		return nil, f.err
	}
	a, ok := f.byID[id]
	if !ok {
		return nil, common.ErrorNotFound
	}
	a.Status = status
	return a, nil
}

func (f *fakeApps) Count(ctx context.Context) (int, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.calls++
	if f.err != nil {
		return 0, f.err
	}
	return len(f.byID), nil
}

func (f *fakeApps) CountPerJob(ctx context.Context) ([]*models.JobApplicationCount, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.calls++
	if f.err != nil {
		return nil, f.err
	}
	per := map[string]int{}
	for _, a := range f.byID {
		per[a.JobID]++
	}
	out := []*models.JobApplicationCount{}
	for id, n := range per {
		out = append(out, &models.JobApplicationCount{ID: id, Applications: n})
	}
	return out, nil
}

// --- blob store ---

type fakeStore struct {
	mu      sync.Mutex
	blobs   map[string][]byte
	deleted []string
	calls   int

	putErr      error
	downloadErr error
}

func newFakeStore() *fakeStore { return &fakeStore{blobs: map[string][]byte{}} }

func (s *fakeStore) Put(ctx context.Context, key string, r io.Reader, size int64, contentType string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.calls++
	if s.putErr != nil {
		return s.putErr
	}
	b, err := io.ReadAll(r)
	if err != nil {
		return err
	}
	s.blobs[key] = b
	return nil
}

func (s *fakeStore) URL(key string) string { return "https://blobs.example.com/" + key }

func (s *fakeStore) DownloadURL(ctx context.Context, key string) (string, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.calls++
	if s.downloadErr != nil {
		return "", s.downloadErr
	}
	return "https://signed.example.com/" + key, nil
}

func (s *fakeStore) Delete(ctx context.Context, key string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.calls++
	delete(s.blobs, key)
	s.deleted = append(s.deleted, key)
	return nil
}

func (s *fakeStore) count() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.blobs)
}
