package snapshot

import (
	"fmt"
	"os"
	"sync"

	"github.com/keydevs/keygraph/internal/contract"
	"github.com/keydevs/keygraph/schema"
)

// Global Manager instance for main logic.
var (
	Manager   = &SnapshotStoreManagerImpl{}
	initOnce  sync.Once
	closeOnce sync.Once
)

// SnapshotStoreManagerImpl hands out the configured snapshot store.
type SnapshotStoreManagerImpl struct {
	sync.Mutex
	store contract.SnapshotStore
}

var _ contract.SnapshotManager = &SnapshotStoreManagerImpl{} // Compile-time check

// GetSnapshotStore implements the SnapshotManager interface. It returns nil
// when no store has been initialized.
func (m *SnapshotStoreManagerImpl) GetSnapshotStore() contract.SnapshotStore {
	m.Lock()
	defer m.Unlock()
	return m.store
}

// InitStore initializes the global snapshot manager. The none backend still
// produces a store; every call on it is a no-op.
func InitStore(backend schema.StoreBackend, connStr string) error {
	var initErr error

	initOnce.Do(func() {
		store, err := NewSnapshotStore(backend, connStr)
		if err != nil {
			initErr = fmt.Errorf("failed to initialize snapshot store: %w", err)
			return
		}
		Manager.Lock()
		Manager.store = store
		Manager.Unlock()
	})

	return initErr
}

// CloseStore should be called on application shutdown.
func CloseStore() { // called in main defer
	closeOnce.Do(func() {
		Manager.Lock()
		defer Manager.Unlock()
		if Manager.store != nil {
			_ = Manager.store.Close()
		}
	})
}

// ClearStore removes stored run data for the specified backend. For SQLite
// it deletes the database file; for server backends it deletes the rows.
func ClearStore(backend schema.StoreBackend, connStr string) error {
	switch backend {
	case schema.SQLiteBackend:
		dbPath := connStr
		if dbPath == "" {
			dbPath = contract.GetSnapshotDBFilePath()
		}
		if err := os.Remove(dbPath); err != nil && !os.IsNotExist(err) {
			return fmt.Errorf("failed to remove SQLite database file %s: %w", dbPath, err)
		}
		return nil

	case schema.MySQLBackend, schema.PostgreSQLBackend:
		store, err := NewSnapshotStore(backend, connStr)
		if err != nil {
			return err
		}
		defer func() { _ = store.Close() }()
		return store.Clear()

	case schema.NoneBackend:
		return nil

	default:
		return fmt.Errorf("unsupported snapshot backend for clearing: %s", backend)
	}
}
