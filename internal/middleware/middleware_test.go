package middleware

import (
	"context"
	"net"
	"testing"
	"time"

	"google.golang.org/grpc"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/metadata"
	"google.golang.org/grpc/peer"
	"google.golang.org/grpc/status"

	bookingv1 "training-booking-api/api/booking/v1"
	"training-booking-api/internal/auth"
)

const secret = "test-secret"

func echoUser(ctx context.Context, _ any) (any, error) {
	uid, _ := UserID(ctx)
	return uid, nil
}

func withToken(tok string) context.Context {
	md := metadata.New(map[string]string{"authorization": "Bearer " + tok})
	return metadata.NewIncomingContext(context.Background(), md)
}

func TestAuth(t *testing.T) {
	issuer := auth.NewIssuer(secret, auth.Options{})
	good, _ := issuer.AccessToken("user_1")
	forged, _ := auth.NewIssuer("other-secret", auth.Options{}).AccessToken("user_1")
	mine := &grpc.UnaryServerInfo{FullMethod: bookingv1.FullMethod("MyBookings")}
	public := &grpc.UnaryServerInfo{FullMethod: bookingv1.FullMethod("Login")}

	tests := []struct {
		name    string
		ctx     context.Context
		info    *grpc.UnaryServerInfo
		wantUID string
		code    codes.Code
	}{
		{"public without token", context.Background(), public, "", codes.OK},
		{"no metadata", context.Background(), mine, "", codes.Unauthenticated},
		{"empty token", withToken(""), mine, "", codes.Unauthenticated},
		{"forged token", withToken(forged), mine, "", codes.Unauthenticated},
		{"valid token", withToken(good), mine, "user_1", codes.OK},
	}
	interceptor := Auth(issuer)
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := interceptor(tt.ctx, nil, tt.info, echoUser)
			if status.Code(err) != tt.code {
				t.Fatalf("code = %v, want %v", status.Code(err), tt.code)
			}
			if err == nil && got.(string) != tt.wantUID {
				t.Errorf("uid = %q, want %q", got, tt.wantUID)
			}
		})
	}
}

func TestUserID(t *testing.T) {
	if _, ok := UserID(context.Background()); ok {
		t.Error("empty context has a user")
	}
	if _, ok := UserID(WithUserID(context.Background(), "")); ok {
		t.Error("blank uid counts as a user")
	}
	if uid, ok := UserID(WithUserID(context.Background(), "user_9")); !ok || uid != "user_9" {
		t.Errorf("uid = %q, %v", uid, ok)
	}
}

func TestRateLimiterBurst(t *testing.T) {
	rl := NewRateLimiter(0.001, 3)
	for i := 0; i < 3; i++ {
		if !rl.Allow("10.0.0.1") {
			t.Fatalf("call %d rejected inside burst", i)
		}
	}
	if rl.Allow("10.0.0.1") {
		t.Error("call past burst allowed")
	}
	if !rl.Allow("10.0.0.2") {
		t.Error("second peer shares the first peer's bucket")
	}
}

func TestRateLimiterEvict(t *testing.T) {
	rl := NewRateLimiter(1, 1)
	rl.Allow("a")
	rl.Allow("b")

	rl.evict(time.Now(), time.Hour)
	if len(rl.clients) != 2 {
		t.Fatalf("fresh peers evicted: %d left", len(rl.clients))
	}
	rl.evict(time.Now().Add(2*time.Hour), time.Hour)
	if len(rl.clients) != 0 {
		t.Errorf("%d idle peers kept", len(rl.clients))
	}
}

func TestRateLimitInterceptor(t *testing.T) {
	rl := NewRateLimiter(0.001, 1)
	interceptor := RateLimit(rl)
	ctx := peer.NewContext(context.Background(), &peer.Peer{
		Addr: &net.TCPAddr{IP: net.ParseIP("192.0.2.7"), Port: 4321},
	})
	ok := func(context.Context, any) (any, error) { return "ok", nil }

	login := &grpc.UnaryServerInfo{FullMethod: bookingv1.FullMethod("Login")}
	if _, err := interceptor(ctx, nil, login, ok); err != nil {
		t.Fatalf("first login: %v", err)
	}
	if _, err := interceptor(ctx, nil, login, ok); status.Code(err) != codes.ResourceExhausted {
		t.Fatalf("second login code = %v, want ResourceExhausted", status.Code(err))
	}

	// other ports on the same host share the bucket
	other := peer.NewContext(context.Background(), &peer.Peer{
		Addr: &net.TCPAddr{IP: net.ParseIP("192.0.2.7"), Port: 9999},
	})
	if _, err := interceptor(other, nil, login, ok); status.Code(err) != codes.ResourceExhausted {
		t.Errorf("new port code = %v, want ResourceExhausted", status.Code(err))
	}

	reads := &grpc.UnaryServerInfo{FullMethod: bookingv1.FullMethod("GetSlots")}
	for i := 0; i < 5; i++ {
		if _, err := interceptor(ctx, nil, reads, ok); err != nil {
			t.Fatalf("unlimited call %d: %v", i, err)
		}
	}
}
