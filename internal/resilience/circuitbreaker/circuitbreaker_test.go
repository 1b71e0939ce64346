package circuitbreaker

import (
	"context"
	"errors"
	"fmt"
	"testing"
	"time"

	"dinas-portal/internal/domain/entity"

	"github.com/sony/gobreaker"
)

func testConfig() Config {
	return Config{
		Name:             "test-circuit",
		MaxRequests:      1,
		Interval:         10 * time.Second,
		Timeout:          50 * time.Millisecond,
		FailureThreshold: 0.6,
		MinRequests:      3,
	}
}

func persistenceErr() error {
	return &entity.PersistenceError{Op: "news.List", Err: errors.New("connection refused")}
}

func TestNew(t *testing.T) {
	cb := New(testConfig())

	if cb.Name() != "test-circuit" {
		t.Errorf("expected name='test-circuit', got %q", cb.Name())
	}
	if cb.State() != gobreaker.StateClosed {
		t.Errorf("expected initial state=Closed, got %v", cb.State())
	}
}

func TestCircuitBreaker_Execute_Success(t *testing.T) {
	cb := New(testConfig())

	result, err := cb.Execute(func() (interface{}, error) {
		return "success", nil
	})

	if err != nil {
		t.Errorf("expected no error, got %v", err)
	}
	if result != "success" {
		t.Errorf("expected result='success', got %v", result)
	}
}

func TestCircuitBreaker_TripsOnPersistenceErrors(t *testing.T) {
	cb := New(testConfig())

	for i := 0; i < 3; i++ {
		_, _ = cb.Execute(func() (interface{}, error) { return nil, persistenceErr() })
	}

	if !cb.IsOpen() {
		t.Fatalf("expected state=Open after repeated persistence failures, got %v", cb.State())
	}

	_, err := cb.Execute(func() (interface{}, error) { return "unreachable", nil })
	if !IsRejection(err) {
		t.Errorf("expected rejection while open, got %v", err)
	}
}

func TestCircuitBreaker_IgnoresDomainErrors(t *testing.T) {
	tests := []struct {
		name string
		err  error
	}{
		{name: "not found", err: &entity.NotFoundError{Kind: "news", ID: 1}},
		{name: "validation", err: &entity.ValidationError{Field: "title", Message: "is required"}},
		{name: "client canceled", err: &entity.PersistenceError{Op: "news.Get", Err: context.Canceled}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cb := New(testConfig())
			for i := 0; i < 10; i++ {
				_, _ = cb.Execute(func() (interface{}, error) { return nil, tt.err })
			}
			if cb.State() != gobreaker.StateClosed {
				t.Errorf("expected state=Closed, got %v", cb.State())
			}
		})
	}
}

func TestCircuitBreaker_HalfOpenRecovers(t *testing.T) {
	cb := New(testConfig())
	for i := 0; i < 3; i++ {
		_, _ = cb.Execute(func() (interface{}, error) { return nil, persistenceErr() })
	}
	if !cb.IsOpen() {
		t.Fatal("expected open breaker")
	}

	time.Sleep(80 * time.Millisecond)
	if cb.State() != gobreaker.StateHalfOpen {
		t.Fatalf("expected state=HalfOpen after timeout, got %v", cb.State())
	}

	if _, err := cb.Execute(func() (interface{}, error) { return "ok", nil }); err != nil {
		t.Fatalf("expected success in half-open, got %v", err)
	}
	if cb.State() != gobreaker.StateClosed {
		t.Errorf("expected state=Closed after successful probe, got %v", cb.State())
	}
}

func TestCircuitBreaker_MinRequests(t *testing.T) {
	cb := New(testConfig())
	for i := 0; i < 2; i++ {
		_, _ = cb.Execute(func() (interface{}, error) { return nil, persistenceErr() })
	}
	if cb.IsOpen() {
		t.Error("breaker should stay closed below MinRequests")
	}
}

func TestConfigs(t *testing.T) {
	d := DefaultConfig("x")
	if d.Name != "x" || d.MinRequests != 5 || d.FailureThreshold != 0.6 {
		t.Errorf("unexpected default config: %+v", d)
	}
	db := DBConfig("news-store")
	if db.Name != "news-store" || db.FailureThreshold != 1.0 || db.Timeout != 30*time.Second {
		t.Errorf("unexpected db config: %+v", db)
	}
}

func TestIsSuccessful(t *testing.T) {
	cases := map[string]struct {
		err  error
		want bool
	}{
		"nil":         {nil, true},
		"not found":   {&entity.NotFoundError{Kind: "news", ID: 2}, true},
		"persistence": {persistenceErr(), false},
		"wrapped":     {fmt.Errorf("list: %w", persistenceErr()), false},
		"canceled":    {context.Canceled, true},
	}
	for name, c := range cases {
		if got := isSuccessful(c.err); got != c.want {
			t.Errorf("%s: isSuccessful = %v, want %v", name, got, c.want)
		}
	}
}
