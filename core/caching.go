package core

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
	"fmt"
	"strings"
	"time"

	"github.com/branflake2267/docs-sub001/internal/contract"
	"github.com/branflake2267/docs-sub001/schema"
)

// currentCacheVersion defines the version of the cache schema
const currentCacheVersion = 1

// CacheFormatVersion is the version stamped on cached reports.
const CacheFormatVersion = currentCacheVersion

// cacheTTL is how long a cached report is served
const cacheTTL = 7 * 24 * time.Hour

// cachedDiff returns the change model for two documents, served from the
// report cache when an entry for the same inputs and options exists.
func cachedDiff(ctx context.Context, cfg *contract.Config, opts Options, store contract.CacheStore, oldData, newData []byte) (schema.ChangeReport, error) {
	if store == nil {
		// Fallback to direct computation
		return diffDocuments(ctx, cfg, opts, oldData, newData)
	}

	key := generateCacheKey(cfg, oldData, newData)

	// Check for cache hit
	if result := checkCacheHit(store, key); result != nil {
		opts.Logger.Debug("report served from cache", "key", key)
		// Warnings of the cached run are logged again
		for _, w := range result.Warnings {
			logWarning(opts.Logger, w)
		}
		return *result, nil
	}

	// Cache miss: compute and store
	return computeAndStore(ctx, cfg, opts, store, key, oldData, newData)
}

// checkCacheHit attempts to retrieve and validate a cached result
func checkCacheHit(store contract.CacheStore, key string) *schema.ChangeReport {
	data, version, ts, err := store.Get(key)
	if err != nil {
		return nil // Cache miss
	}

	// Validate version and staleness
	if version == currentCacheVersion {
		entryTimestamp := time.Unix(ts, 0)
		if time.Since(entryTimestamp) <= cacheTTL {
			var result schema.ChangeReport
			if err := json.Unmarshal(data, &result); err == nil {
				return &result // Cache hit
			}
		}
	}

	return nil // Cache miss (stale or version mismatch)
}

// computeAndStore computes the result and stores it in cache
func computeAndStore(ctx context.Context, cfg *contract.Config, opts Options, store contract.CacheStore, key string, oldData, newData []byte) (schema.ChangeReport, error) {
	result, err := diffDocuments(ctx, cfg, opts, oldData, newData)
	if err != nil {
		return schema.ChangeReport{}, err
	}

	// Store in cache
	if data, err := json.Marshal(result); err == nil {
		if err := store.Set(key, data, currentCacheVersion, time.Now().Unix()); err != nil {
			contract.LogWarn("Failed to store report in cache", err)
		}
	}

	return result, nil
}

// diffDocuments parses both documents and diffs them.
func diffDocuments(ctx context.Context, cfg *contract.Config, opts Options, oldData, newData []byte) (schema.ChangeReport, error) {
	oldClasses, err := ParseCorpus(oldData, cfg.OldPath)
	if err != nil {
		return schema.ChangeReport{}, err
	}
	newClasses, err := ParseCorpus(newData, cfg.NewPath)
	if err != nil {
		return schema.ChangeReport{}, err
	}
	return Diff(ctx, oldClasses, newClasses, opts)
}

// generateCacheKey creates a unique key from both documents and every option
// that shapes the change model. Output options are not part of the key.
func generateCacheKey(cfg *contract.Config, oldData, newData []byte) string {
	buckets := make([]string, len(cfg.Buckets))
	for i, b := range cfg.Buckets {
		buckets[i] = string(b)
	}
	options := fmt.Sprintf("%s|%s|%s|%t|%t|%s|%s",
		strings.Join(cfg.Categories, ","),
		strings.Join(cfg.MemberProps, ","),
		strings.Join(cfg.ClassProps, ","),
		cfg.ClassDetails,
		cfg.AllProps,
		strings.Join(buckets, ","),
		strings.Join(cfg.Excludes, ","),
	)

	h := sha256.New()
	for _, part := range [][]byte{oldData, newData, []byte(options)} {
		sum := sha256.Sum256(part)
		h.Write(sum[:])
	}
	return hex.EncodeToString(h.Sum(nil))
}
