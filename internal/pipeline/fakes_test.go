package pipeline

import (
	"context"
	"errors"
	"sync"

	"github.com/nao1215/antenna/internal/model"
)

// fakeFetcher returns a fixed page or error.
type fakeFetcher struct {
	page  string
	err   error
	calls int
}

func (f *fakeFetcher) Fetch(_ context.Context, _ string) (string, error) {
	f.calls++
	return f.page, f.err
}

// fakeStore is an in-memory store with injectable failures.
type fakeStore struct {
	mu        sync.Mutex
	bodies    map[string]model.UpdateRecord
	lookups   int
	inserts   []model.UpdateRecord
	lookupErr map[string]error
	insertErr map[string]error
}

func newFakeStore(seen ...string) *fakeStore {
	s := &fakeStore{
		bodies:    make(map[string]model.UpdateRecord),
		lookupErr: make(map[string]error),
		insertErr: make(map[string]error),
	}
	for _, b := range seen {
		s.bodies[b] = model.UpdateRecord{Body: b}
	}
	return s
}

func (s *fakeStore) Lookup(_ context.Context, body string) (bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.lookups++
	if err := s.lookupErr[body]; err != nil {
		return false, err
	}
	_, ok := s.bodies[body]
	return ok, nil
}

func (s *fakeStore) Insert(_ context.Context, record model.UpdateRecord) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.inserts = append(s.inserts, record)
	if err := s.insertErr[record.Body]; err != nil {
		return err
	}
	if _, ok := s.bodies[record.Body]; !ok {
		s.bodies[record.Body] = record
	}
	return nil
}

func (s *fakeStore) lookupCount() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.lookups
}

func (s *fakeStore) insertedBodies() []string {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := make([]string, len(s.inserts))
	for i, r := range s.inserts {
		out[i] = r.Body
	}
	return out
}

// fakeNotifier records deliveries and fails on configured bodies.
type fakeNotifier struct {
	mu     sync.Mutex
	sent   []model.UpdateRecord
	failOn map[string]bool
}

var errDelivery = errors.New("webhook unavailable")

func newFakeNotifier(failOn ...string) *fakeNotifier {
	n := &fakeNotifier{failOn: make(map[string]bool)}
	for _, b := range failOn {
		n.failOn[b] = true
	}
	return n
}

func (n *fakeNotifier) Notify(_ context.Context, record model.UpdateRecord) error {
	n.mu.Lock()
	defer n.mu.Unlock()
	if n.failOn[record.Body] {
		return model.TransportError("notify", errDelivery)
	}
	n.sent = append(n.sent, record)
	return nil
}

func (n *fakeNotifier) sentBodies() []string {
	n.mu.Lock()
	defer n.mu.Unlock()
	out := make([]string, len(n.sent))
	for i, r := range n.sent {
		out[i] = r.Body
	}
	return out
}

// staticExtractor returns fixed records, ignoring the page.
type staticExtractor struct {
	records []model.UpdateRecord
	err     error
}

func (e *staticExtractor) Extract(_ string) ([]model.UpdateRecord, error) {
	return e.records, e.err
}

func records(bodies ...string) []model.UpdateRecord {
	out := make([]model.UpdateRecord, len(bodies))
	for i, b := range bodies {
		out[i] = model.UpdateRecord{Title: "t-" + b, Body: b}
	}
	return out
}

func equalStrings(a, b []string) bool {
	if len(a) != len(b) {
		return false
	}
	for i := range a {
		if a[i] != b[i] {
			return false
		}
	}
	return true
}
