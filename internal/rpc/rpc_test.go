package rpc

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"sync/atomic"
	"testing"
)

func TestClientCallSuccess(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/rpc" {
			t.Errorf("unexpected path %q", r.URL.Path)
		}
		w.Write([]byte(`{"result": {"unlocked": true}}`))
	}))
	defer srv.Close()

	c := NewClient(srv.URL, srv.Client())

	var result struct {
		Unlocked bool `json:"unlocked"`
	}
	if err := c.Call(context.Background(), CmdUnlock, map[string]string{"password": "x"}, &result); err != nil {
		t.Fatalf("Call() unexpected error: %v", err)
	}
	if !result.Unlocked {
		t.Error("expected unlocked result")
	}
}

func TestClientCallStructuredError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`{"error": {"code": "invalid_password", "message": "wrong master password"}}`))
	}))
	defer srv.Close()

	c := NewClient(srv.URL, srv.Client())

	err := c.Call(context.Background(), CmdUnlock, nil, nil)

	var rpcErr *Error
	if !errors.As(err, &rpcErr) {
		t.Fatalf("expected *Error, got %v", err)
	}
	if rpcErr.Code != "invalid_password" {
		t.Errorf("Code = %q, want %q", rpcErr.Code, "invalid_password")
	}
}

type fakeBridge struct {
	calls atomic.Int32
	errs  []error
}

func (f *fakeBridge) Call(ctx context.Context, method string, args, result any) error {
	n := int(f.calls.Add(1)) - 1
	if n < len(f.errs) {
		return f.errs[n]
	}
	return nil
}

func TestRetryTransientError(t *testing.T) {
	fake := &fakeBridge{errs: []error{
		&Error{Code: "busy", Message: "database is busy"},
		&Error{Code: "busy", Message: "database is busy"},
		nil,
	}}

	b := &retryBridge{next: fake, maxAttempts: 3, baseDelay: 0}
	if err := b.Call(context.Background(), CmdUnlock, nil, nil); err != nil {
		t.Fatalf("Call() unexpected error: %v", err)
	}
	if got := fake.calls.Load(); got != 3 {
		t.Errorf("call count = %d, want 3", got)
	}
}

func TestRetryGivesUpOnPermanentError(t *testing.T) {
	permanent := &Error{Code: "invalid_password", Message: "wrong master password"}
	fake := &fakeBridge{errs: []error{permanent, permanent, permanent}}

	b := &retryBridge{next: fake, maxAttempts: 3, baseDelay: 0}
	if err := b.Call(context.Background(), CmdUnlock, nil, nil); err == nil {
		t.Fatal("expected error for permanent failure")
	}
	if got := fake.calls.Load(); got != 1 {
		t.Errorf("call count = %d, want 1 (no retry for permanent errors)", got)
	}
}

func TestProbeErrorsAreSuppressed(t *testing.T) {
	permanent := &Error{Code: "io_error", Message: "cannot read file"}
	fake := &fakeBridge{errs: []error{permanent, permanent, permanent}}

	b := &retryBridge{next: fake, maxAttempts: 3, baseDelay: 0}
	if err := b.Call(context.Background(), CmdCheckFileExists, nil, nil); err != nil {
		t.Errorf("probe command error should be suppressed, got %v", err)
	}
}

func TestCancelledErrorsAreSuppressed(t *testing.T) {
	fake := &fakeBridge{errs: []error{&Error{Code: CodeCancelled, Message: "user cancelled"}}}

	b := &retryBridge{next: fake, maxAttempts: 3, baseDelay: 0}
	if err := b.Call(context.Background(), CmdPickOpenFile, nil, nil); err != nil {
		t.Errorf("cancellation should be suppressed, got %v", err)
	}
}

func TestIsTransient(t *testing.T) {
	tests := []struct {
		err  error
		want bool
	}{
		{&Error{Code: "x", Message: "database is busy"}, true},
		{&Error{Code: "x", Message: "request timeout"}, true},
		{&Error{Code: "x", Message: "vault is locked"}, true},
		{&Error{Code: "x", Message: "wrong master password"}, false},
		{errors.New("connection refused"), false},
	}

	for _, tt := range tests {
		if got := isTransient(tt.err); got != tt.want {
			t.Errorf("isTransient(%v) = %v, want %v", tt.err, got, tt.want)
		}
	}
}
