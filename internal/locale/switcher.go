package locale

import (
	"sync"

	"go.uber.org/zap"
)

// Switcher holds the session language and tells subscribers when it changes.
type Switcher struct {
	mu          sync.RWMutex
	current     string
	translator  *Translator
	subscribers map[uint64]func(lang string)
	next        uint64
	logger      *zap.Logger
}

func NewSwitcher(t *Translator, logger ...*zap.Logger) *Switcher {
	l := zap.L().Named("locale.switcher")
	if len(logger) > 0 && logger[0] != nil {
		l = logger[0].Named("locale.switcher")
	}
	return &Switcher{
		current:     t.Default(),
		translator:  t,
		subscribers: make(map[uint64]func(string)),
		logger:      l,
	}
}

func (s *Switcher) Current() string {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.current
}

// Change switches the session language. It reports false, and keeps the
// current language, when lang is not supported.
func (s *Switcher) Change(lang string) bool {
	if !s.translator.IsSupported(lang) {
		return false
	}

	s.mu.Lock()
	s.current = lang
	subs := make([]func(string), 0, len(s.subscribers))
	for _, fn := range s.subscribers {
		subs = append(subs, fn)
	}
	s.mu.Unlock()

	s.logger.Info("language changed", zap.String("lang", lang))
	for _, fn := range subs {
		fn(lang)
	}
	return true
}

// Subscribe registers fn for language changes and returns its remover.
func (s *Switcher) Subscribe(fn func(lang string)) (unsubscribe func()) {
	s.mu.Lock()
	token := s.next
	s.next++
	s.subscribers[token] = fn
	s.mu.Unlock()

	var once sync.Once
	return func() {
		once.Do(func() {
			s.mu.Lock()
			delete(s.subscribers, token)
			s.mu.Unlock()
		})
	}
}
