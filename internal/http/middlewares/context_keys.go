package middlewares

const (
	// email of the authenticated user, set by RequireAuth
	CtxEmail = "auth.email"
)
