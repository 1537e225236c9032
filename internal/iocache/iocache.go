// Package iocache persists diff reports and run history.
package iocache

import (
	"sync"

	"github.com/branflake2267/docs-sub001/internal/contract"
)

// CacheStoreManager manages the report cache and the run history store.
type CacheStoreManager struct {
	sync.RWMutex // Protects the store pointers during initialization
	report       contract.CacheStore
	history      contract.HistoryStore
}

var _ contract.CacheManager = &CacheStoreManager{} // Compile-time check

// GetReportStore returns the report CacheStore.
func (mgr *CacheStoreManager) GetReportStore() contract.CacheStore {
	mgr.RLock()
	defer mgr.RUnlock()
	return mgr.report
}

// GetHistoryStore returns the run HistoryStore.
func (mgr *CacheStoreManager) GetHistoryStore() contract.HistoryStore {
	mgr.RLock()
	defer mgr.RUnlock()
	return mgr.history
}
