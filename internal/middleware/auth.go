package middleware

import (
	"context"
	"strings"

	"google.golang.org/grpc"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/metadata"
	"google.golang.org/grpc/status"

	bookingv1 "training-booking-api/api/booking/v1"
	"training-booking-api/internal/auth"
)

type ctxKey string

const UserIDKey ctxKey = "uid"

// Public lists the calls that need no access token.
var Public = map[string]bool{
	bookingv1.FullMethod("Register"):     true,
	bookingv1.FullMethod("Login"):        true,
	bookingv1.FullMethod("Refresh"):      true,
	bookingv1.FullMethod("ListPackages"): true,
	bookingv1.FullMethod("GetSettings"):  true,
}

// UserID returns the authenticated caller, if any.
func UserID(ctx context.Context) (string, bool) {
	uid, ok := ctx.Value(UserIDKey).(string)
	return uid, ok && uid != ""
}

// WithUserID is what Auth stores; handlers and tests read it back via UserID.
func WithUserID(ctx context.Context, uid string) context.Context {
	return context.WithValue(ctx, UserIDKey, uid)
}

// Verifier checks an access token; *auth.Issuer implements it.
type Verifier interface {
	Verify(raw string) (*auth.Claims, error)
}

func Auth(v Verifier) grpc.UnaryServerInterceptor {
	return func(ctx context.Context, req any, info *grpc.UnaryServerInfo, next grpc.UnaryHandler) (any, error) {
		if Public[info.FullMethod] {
			return next(ctx, req)
		}

		md, ok := metadata.FromIncomingContext(ctx)
		if !ok {
			return nil, status.Error(codes.Unauthenticated, "missing metadata")
		}

		// Authorization: Bearer <jwt>
		raw := ""
		if vals := md.Get("authorization"); len(vals) > 0 {
			raw = strings.TrimSpace(strings.TrimPrefix(vals[0], "Bearer "))
		}
		if raw == "" {
			return nil, status.Error(codes.Unauthenticated, "no token")
		}

		claims, err := v.Verify(raw)
		if err != nil {
			return nil, status.Error(codes.Unauthenticated, "bad token")
		}
		return next(WithUserID(ctx, claims.UserID), req)
	}
}
