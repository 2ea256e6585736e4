// Package inmem provides an in-memory implementation of the storage
// interfaces. It backs tests and local fixtures; business logic never knows
// which implementation it talks to, per the capability-abstraction design.
package inmem

import (
	"context"
	"maps"
	"sync"
	"time"

	"portal/pkg/domain"
	"portal/pkg/storage"
)

// InMem implements storage.Storage over mutex-guarded maps.
//
// Transactions are serialized with a coarse lock: WithTx holds the write lock
// for the whole callback, which trivially satisfies the atomicity the cap
// check needs. Rollback restores a snapshot of the application collection
// taken at Begin; the catalog collections are read-only to the core and need
// no snapshotting.
type InMem struct {
	// mu is shared by pointer between the root handle and transactional
	// shallow copies, so a copy never duplicates lock state.
	mu *sync.Mutex

	applications map[domain.ApplicationID]domain.Application

	courses      map[domain.CourseID]domain.Course
	institutions map[domain.InstitutionID]domain.Institution
	students     map[domain.StudentID]domain.Student
	jobs         map[domain.JobID]domain.Job
	userCount    int64

	// now returns the current time; replaceable in tests.
	now func() time.Time

	// inTx marks a transactional handle. Locking is skipped inside a
	// transaction because the lock is already held for its whole extent.
	inTx     bool
	snapshot map[domain.ApplicationID]domain.Application
}

// New creates an empty in-memory storage.
func New() *InMem {
	return &InMem{
		mu:           &sync.Mutex{},
		applications: map[domain.ApplicationID]domain.Application{},
		courses:      map[domain.CourseID]domain.Course{},
		institutions: map[domain.InstitutionID]domain.Institution{},
		students:     map[domain.StudentID]domain.Student{},
		jobs:         map[domain.JobID]domain.Job{},
		now:          time.Now,
	}
}

// SetNow replaces the clock used for applied_at/updated_at stamping.
func (m *InMem) SetNow(now func() time.Time) { m.now = now }

// Fixture loaders. They write the catalog collections the core itself never
// mutates, so tests can stage courses, institutions, students and jobs.

func (m *InMem) AddCourse(c domain.Course) {
	m.lock()
	defer m.unlock()
	m.courses[c.ID] = c
}

func (m *InMem) AddInstitution(i domain.Institution) {
	m.lock()
	defer m.unlock()
	m.institutions[i.ID] = i
}

func (m *InMem) AddStudent(s domain.Student) {
	m.lock()
	defer m.unlock()
	m.students[s.ID] = s
}

func (m *InMem) AddJob(j domain.Job) {
	m.lock()
	defer m.unlock()
	m.jobs[j.ID] = j
}

// SetUserCount sets the total account count reported by CountUsers.
func (m *InMem) SetUserCount(n int64) {
	m.lock()
	defer m.unlock()
	m.userCount = n
}

func (m *InMem) lock() {
	if !m.inTx {
		m.mu.Lock()
	}
}

func (m *InMem) unlock() {
	if !m.inTx {
		m.mu.Unlock()
	}
}

// Close implements storage.Storage. It has nothing to release.
func (m *InMem) Close() error { return nil }

// tx is a transactional view of InMem. It shares the underlying maps and
// keeps the parent's lock held until Commit or Rollback.
type tx struct {
	*InMem

	parent *InMem
}

// Begin locks the storage and returns a transactional handle.
// If called on a transactional handle, ErrAlreadyInTx is returned.
func (m *InMem) Begin(_ context.Context) (storage.TxStorage, error) {
	if m.inTx {
		return nil, storage.ErrAlreadyInTx
	}

	m.mu.Lock()

	shadow := *m
	shadow.inTx = true
	shadow.snapshot = maps.Clone(m.applications)

	return &tx{InMem: &shadow, parent: m}, nil
}

// Commit releases the transaction lock, keeping all changes.
func (t *tx) Commit() error {
	if !t.inTx {
		return storage.ErrNotInTx
	}
	t.inTx = false
	t.parent.mu.Unlock()

	return nil
}

// Rollback restores the application collection snapshot and releases the lock.
func (t *tx) Rollback() error {
	if !t.inTx {
		return storage.ErrNotInTx
	}
	t.parent.applications = t.snapshot
	t.inTx = false
	t.parent.mu.Unlock()

	return nil
}

// WithTx runs cb inside a transaction, committing on success and rolling back
// on error.
func (m *InMem) WithTx(ctx context.Context, cb func(storage storage.AllStorage) error) error {
	txn, err := m.Begin(ctx)
	if err != nil {
		return err
	}

	if err := cb(txn); err != nil {
		_ = txn.Rollback()

		return err
	}

	return txn.Commit()
}
