package session_test

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/vornexz/pay/internal/client/api"
	"github.com/vornexz/pay/internal/client/session"
)

func TestProtectedGuard(t *testing.T) {
	tests := []struct {
		name string
		snap session.Snapshot
		want session.Decision
	}{
		{
			name: "authenticated renders",
			snap: session.Snapshot{State: session.Authenticated, User: &api.User{}},
			want: session.Decision{Action: session.Render},
		},
		{
			name: "initializing holds a placeholder",
			snap: session.Snapshot{State: session.Initializing},
			want: session.Decision{Action: session.Placeholder},
		},
		{
			name: "unauthenticated redirects to login",
			snap: session.Snapshot{State: session.Unauthenticated},
			want: session.Decision{Action: session.Redirect, Target: "/login"},
		},
		{
			name: "stale user during initialization never redirects",
			snap: session.Snapshot{State: session.Initializing, User: &api.User{Email: "stale@vornexz.com"}},
			want: session.Decision{Action: session.Placeholder},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, session.Protected(tt.snap, "/login"))
		})
	}
}

func TestPublicGuard(t *testing.T) {
	tests := []struct {
		name string
		snap session.Snapshot
		want session.Decision
	}{
		{
			name: "authenticated redirects home",
			snap: session.Snapshot{State: session.Authenticated, User: &api.User{}},
			want: session.Decision{Action: session.Redirect, Target: "/home"},
		},
		{
			name: "initializing holds a placeholder",
			snap: session.Snapshot{State: session.Initializing},
			want: session.Decision{Action: session.Placeholder},
		},
		{
			name: "unauthenticated renders",
			snap: session.Snapshot{State: session.Unauthenticated},
			want: session.Decision{Action: session.Render},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, session.Public(tt.snap, "/home"))
		})
	}
}
