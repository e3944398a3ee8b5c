package memory

import (
	"context"
	"sort"
	"sync"

	"github.com/pkg/errors"
)

// ChartStore implements ports.ChartStore by keeping images in a map.
type ChartStore struct {
	mu      sync.Mutex
	charts  map[string][]byte
	failOn  map[string]error
	prepErr error
}

// NewChartStore creates an empty ChartStore.
func NewChartStore() *ChartStore {
	return &ChartStore{
		charts: make(map[string][]byte),
		failOn: make(map[string]error),
	}
}

// FailPrepare makes every Prepare call return err.
func (s *ChartStore) FailPrepare(err error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.prepErr = err
}

// FailSave makes Save of name return err.
func (s *ChartStore) FailSave(name string, err error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.failOn[name] = err
}

func (s *ChartStore) Prepare(ctx context.Context) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.prepErr
}

func (s *ChartStore) Save(ctx context.Context, name string, data []byte) (string, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if err, ok := s.failOn[name]; ok {
		return "", errors.Wrapf(err, "save %s", name)
	}
	s.charts[name] = append([]byte(nil), data...)
	return "memory://" + name, nil
}

// Get returns the stored image for name.
func (s *ChartStore) Get(name string) ([]byte, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	data, ok := s.charts[name]
	return data, ok
}

// Names lists stored images in ascending order.
func (s *ChartStore) Names() []string {
	s.mu.Lock()
	defer s.mu.Unlock()
	names := make([]string, 0, len(s.charts))
	for name := range s.charts {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}
