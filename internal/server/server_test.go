package server

import (
	"context"
	"errors"
	"net"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

type fakeStore struct {
	err error
}

func (f fakeStore) Ping(ctx context.Context) error {
	return f.err
}

func TestHealth(t *testing.T) {
	tests := []struct {
		name       string
		store      HealthChecker
		wantStatus int
		wantBody   string
	}{
		{name: "no store", store: nil, wantStatus: http.StatusOK, wantBody: `{"status":"healthy"}`},
		{name: "store up", store: fakeStore{}, wantStatus: http.StatusOK, wantBody: `{"status":"healthy","database":"connected"}`},
		{name: "store down", store: fakeStore{err: errors.New("refused")}, wantStatus: http.StatusServiceUnavailable, wantBody: `{"status":"unhealthy","error":"database unreachable"}`},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			s := New(":0", tt.store, "release")

			resp := httptest.NewRecorder()
			s.Engine.ServeHTTP(resp, httptest.NewRequest(http.MethodGet, "/health", nil))

			require.Equal(t, tt.wantStatus, resp.Code)
			require.JSONEq(t, tt.wantBody, resp.Body.String())
		})
	}
}

func TestRun_StopsOnCancel(t *testing.T) {
	ln, err := net.Listen("tcp", "127.0.0.1:0")
	require.NoError(t, err)
	addr := ln.Addr().String()
	require.NoError(t, ln.Close())

	s := New(addr, nil, "release")
	ctx, cancel := context.WithCancel(context.Background())

	done := make(chan error, 1)
	go func() { done <- s.Run(ctx) }()

	require.Eventually(t, func() bool {
		resp, err := http.Get("http://" + addr + "/health")
		if err != nil {
			return false
		}
		resp.Body.Close()
		return resp.StatusCode == http.StatusOK
	}, 2*time.Second, 20*time.Millisecond)

	cancel()
	select {
	case err := <-done:
		require.NoError(t, err)
	case <-time.After(6 * time.Second):
		t.Fatal("server did not stop")
	}
}
