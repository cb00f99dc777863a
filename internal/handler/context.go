package handler

type ContextKey string

var (
	RoleCtxKey  ContextKey = "role"
	SettingsCtx ContextKey = "settings"
)
