package contextkeys

// contextKey is unexported to avoid collisions with keys from other packages.
type contextKey string

// DBContextKey is the key under which the request-scoped *gorm.DB is stored.
const DBContextKey = contextKey("db")
