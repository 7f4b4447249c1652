package ctxutil

import "context"

type clientKey struct{}

// WithClientKey stores the caller's browser/client identifier.
func WithClientKey(ctx context.Context, key string) context.Context {
	return context.WithValue(ctx, clientKey{}, key)
}

func ClientKey(ctx context.Context) string {
	if ctx == nil {
		return ""
	}
	v, _ := ctx.Value(clientKey{}).(string)
	return v
}
