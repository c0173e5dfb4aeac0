package store

import "sync"

// Store は State を保持し、Dispatch されたアクションを Reducer に通して購読者に通知します。
type Store struct {
	mu          sync.Mutex
	state       State
	reducer     func(State, Action) State
	subscribers map[int]func(State)
	nextID      int
}

// New は初期状態と Reducer でストアを作成します。
func New(initial State) *Store {
	return &Store{
		state:       initial,
		reducer:     Reducer,
		subscribers: make(map[int]func(State)),
	}
}

// State は現在の状態を返します。
func (s *Store) State() State {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.state
}

// Dispatch はアクションを適用し、購読者に新しい状態を渡します。
// 通知はロックを外してから行うので、購読者の中から Dispatch してもよい。
func (s *Store) Dispatch(action Action) State {
	s.mu.Lock()
	s.state = s.reducer(s.state, action)
	next := s.state
	subs := make([]func(State), 0, len(s.subscribers))
	for id := 0; id < s.nextID; id++ {
		if fn, ok := s.subscribers[id]; ok {
			subs = append(subs, fn)
		}
	}
	s.mu.Unlock()

	for _, fn := range subs {
		fn(next)
	}
	return next
}

// Subscribe は状態が変わるたびに fn を呼びます。戻り値の関数で購読を解除します。
func (s *Store) Subscribe(fn func(State)) (unsubscribe func()) {
	s.mu.Lock()
	id := s.nextID
	s.nextID++
	s.subscribers[id] = fn
	s.mu.Unlock()

	var once sync.Once
	return func() {
		once.Do(func() {
			s.mu.Lock()
			delete(s.subscribers, id)
			s.mu.Unlock()
		})
	}
}
