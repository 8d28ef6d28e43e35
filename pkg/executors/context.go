package executors

import "context"

type contextKey struct{}

// With
// 把 Executors 关联到 context.Context
func With(ctx context.Context, exec Executors) context.Context {
	return context.WithValue(ctx, contextKey{}, exec)
}

// TryFrom
// 从 context.Context 获取 Executors
func TryFrom(ctx context.Context) (Executors, bool) {
	exec, ok := ctx.Value(contextKey{}).(Executors)
	return exec, ok && exec != nil
}
