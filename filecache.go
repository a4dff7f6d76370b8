package gmsec

import (
	"context"
	"os"
	"sync"

	"github.com/golang/groupcache"
)

// fileCacheBytes bounds the process-wide schema file cache. A full GMSEC
// schema directory (header + per-message XSDs across every level) is a few
// hundred KiB at most, so this leaves generous headroom.
const fileCacheBytes = 64 << 20

var (
	fileGroupOnce  sync.Once
	fileGroup      *groupcache.Group
	peerPickerOnce sync.Once
)

// fileCache returns the process-wide groupcache.Group backing every on-disk
// schema/directory file read the loader performs. Specification.Construct
// calls racing on the same schema path therefore read each file from disk
// at most once (spec.md §5 "concurrency"): this package runs as a single
// node with no peers, so groupcache.Get resolves entirely through its local
// hot/main cache and the getter below, never over the wire.
func fileCache() *groupcache.Group {
	peerPickerOnce.Do(func() {
		groupcache.RegisterPeerPicker(func() groupcache.PeerPicker {
			return groupcache.NoPeers{}
		})
	})
	fileGroupOnce.Do(func() {
		fileGroup = groupcache.NewGroup("gmsec-schema-files", fileCacheBytes, groupcache.GetterFunc(
			func(ctx context.Context, key string, dest groupcache.Sink) error {
				data, err := os.ReadFile(key)
				if err != nil {
					return err
				}
				return dest.SetBytes(data)
			}))
	})
	return fileGroup
}

// readCachedFile reads path through the process-wide file cache.
func readCachedFile(path string) ([]byte, error) {
	var data []byte
	if err := fileCache().Get(context.Background(), path, groupcache.AllocatingByteSliceSink(&data)); err != nil {
		return nil, err
	}
	return data, nil
}
