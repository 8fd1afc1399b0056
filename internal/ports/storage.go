package ports

// KVStore is the client-side persistence capability used by the override
// store and the orchestrator. Get reports false when the key is absent.
// Persistence is best effort: implementations return errors for I/O
// failures, and callers decide whether those are fatal.
type KVStore interface {
	Get(key string) (string, bool, error)
	Set(key, value string) error
	Remove(key string) error
}
