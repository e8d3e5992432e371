// Package apitest - поддельный REST API проектов и задач для тестов.
//
// Server поднимает httptest.Server с in-memory хранилищем и тем же
// контрактом, что у настоящего API. Умеет записывать входящие запросы и
// отвечать заданной ошибкой на ближайший подходящий запрос.
package apitest

import (
	"bytes"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"sync"
	"testing"
	"time"
)

// Request - записанный запрос к поддельному API.
type Request struct {
	Method string
	Path   string
	Header http.Header
	Body   []byte
}

type failure struct {
	method  string
	path    string
	status  int
	message string
}

// Server - поддельный API.
type Server struct {
	*httptest.Server

	store *Store

	mu       sync.Mutex
	requests []Request
	failures []failure
}

// NewServer запускает поддельный API и закрывает его по окончании теста.
func NewServer(tb testing.TB) *Server {
	return NewServerWithClock(tb, time.Now)
}

// NewServerWithClock - NewServer с заданными часами для дат создания.
func NewServerWithClock(tb testing.TB, now func() time.Time) *Server {
	tb.Helper()

	s := &Server{store: NewStore(now)}
	s.Server = httptest.NewServer(s.intercept(NewHandler(s.store).Router()))
	tb.Cleanup(s.Close)
	return s
}

// Store возвращает хранилище для подготовки данных и проверок.
func (s *Server) Store() *Store {
	return s.store
}

// FailNext заставляет следующий запрос method path ответить status
// с {"message": message}. Пустой message - тело не JSON.
func (s *Server) FailNext(method, path string, status int, message string) {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.failures = append(s.failures, failure{method: method, path: path, status: status, message: message})
}

// Requests возвращает копию списка принятых запросов.
func (s *Server) Requests() []Request {
	s.mu.Lock()
	defer s.mu.Unlock()

	out := make([]Request, len(s.requests))
	copy(out, s.requests)
	return out
}

// RequestsTo возвращает запросы с указанными методом и путём.
func (s *Server) RequestsTo(method, path string) []Request {
	var out []Request
	for _, r := range s.Requests() {
		if r.Method == method && r.Path == path {
			out = append(out, r)
		}
	}
	return out
}

// intercept записывает запрос и, если для него задана ошибка, отвечает ей.
func (s *Server) intercept(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		body, _ := io.ReadAll(r.Body)
		r.Body = io.NopCloser(bytes.NewReader(body))

		s.mu.Lock()
		s.requests = append(s.requests, Request{
			Method: r.Method,
			Path:   r.URL.Path,
			Header: r.Header.Clone(),
			Body:   body,
		})
		f, ok := s.popFailure(r.Method, r.URL.Path)
		s.mu.Unlock()

		if !ok {
			next.ServeHTTP(w, r)
			return
		}
		if f.message == "" {
			w.WriteHeader(f.status)
			return
		}
		w.Header().Set("Content-Type", "application/json; charset=utf-8")
		w.WriteHeader(f.status)
		_ = json.NewEncoder(w).Encode(map[string]string{"message": f.message})
	})
}

// popFailure вызывается под s.mu.
func (s *Server) popFailure(method, path string) (failure, bool) {
	for i, f := range s.failures {
		if f.method == method && f.path == path {
			s.failures = append(s.failures[:i], s.failures[i+1:]...)
			return f, true
		}
	}
	return failure{}, false
}
