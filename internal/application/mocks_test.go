package application_test

import (
	"context"
	"errors"
	"fmt"
	"sync"

	"github.com/stretchr/testify/mock"

	"localesync/internal/domain"
	"localesync/internal/domain/entities"
	"localesync/internal/ports/output"
)

var errDiskFull = errors.New("disk full")

// memStore is an in-memory DocumentStore. Saves for codes in failSave fail.
type memStore struct {
	mu       sync.Mutex
	docs     map[string]*entities.Node
	failSave map[string]bool
	failLoad map[string]error
}

func newMemStore() *memStore {
	return &memStore{
		docs:     map[string]*entities.Node{},
		failSave: map[string]bool{},
		failLoad: map[string]error{},
	}
}

func (s *memStore) Load(_ context.Context, code string) (*entities.Node, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if err, ok := s.failLoad[code]; ok {
		return nil, err
	}
	d, ok := s.docs[code]
	if !ok {
		return nil, fmt.Errorf("%w: %s", domain.ErrWorkingDocNotFound, code)
	}
	return d.Clone(), nil
}

func (s *memStore) Save(_ context.Context, code string, doc *entities.Node) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.failSave[code] {
		return errDiskFull
	}
	s.docs[code] = doc.Clone()
	return nil
}

func (s *memStore) get(code string) *entities.Node {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.docs[code]
}

// mapOverrides serves fixed override batches by locale code.
type mapOverrides map[string]*entities.Node

func (m mapOverrides) Overrides(_ context.Context, code string) (*entities.Node, error) {
	if n, ok := m[code]; ok {
		return n, nil
	}
	return entities.NewNode(), nil
}

// MockReporter is a testify mock for output.Reporter.
type MockReporter struct {
	mock.Mock
}

var _ output.Reporter = (*MockReporter)(nil)

func (m *MockReporter) LocaleStarted(loc entities.Locale) { m.Called(loc) }
func (m *MockReporter) LocaleDone(res output.LocaleResult) { m.Called(res) }
func (m *MockReporter) LocaleFailed(loc entities.Locale, err error) { m.Called(loc, err) }
func (m *MockReporter) Coverage(c entities.Coverage) { m.Called(c) }
func (m *MockReporter) Finished(s output.RunSummary) { m.Called(s) }

// MockRepository is a testify mock for output.OverrideRepository.
type MockRepository struct {
	mock.Mock
}

var _ output.OverrideRepository = (*MockRepository)(nil)

func (m *MockRepository) Overrides(ctx context.Context, code string) (*entities.Node, error) {
	args := m.Called(ctx, code)
	n, _ := args.Get(0).(*entities.Node)
	return n, args.Error(1)
}

func (m *MockRepository) Import(ctx context.Context, code string, batch *entities.Node) (int, error) {
	args := m.Called(ctx, code, batch)
	return args.Int(0), args.Error(1)
}

// stubVerifier reports fixed unresolved paths.
type stubVerifier struct {
	unresolved []entities.Path
	err        error
}

func (v stubVerifier) Unresolved(string, *entities.Node, []entities.Path) ([]entities.Path, error) {
	return v.unresolved, v.err
}
