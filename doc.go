// Package chunkio provides read access to long-running, multi-device
// experiment recordings stored as time-chunked files on disk.
//
// Each device stream writes one file per fixed-duration time window
// ("chunk", one hour by default); a dataset is the union of many such
// sequences across devices, possibly spread over several prioritized
// storage roots. Given a stream reader and either a time range or a list
// of timestamps, Load locates the right chunk files, decodes them and
// returns a time-indexed frame, handling chunk boundaries, root priority
// and occasional out-of-order timestamps from independent recording
// clocks.
//
// # Quick Start
//
//	ctx := context.Background()
//	encoder := reader.NewEncoder("Patch2_90_*", decoder)
//
//	// Range query over two prioritized roots; the later root wins on
//	// conflicting chunks.
//	data, _ := chunkio.Load(ctx, store.Locals("/ceph/raw", "/ceph/overrides"), encoder,
//	    chunkio.WithStart(start), chunkio.WithEnd(end))
//
//	// Point-in-time query with a match tolerance.
//	data, _ = chunkio.Load(ctx, store.Locals(root), encoder,
//	    chunkio.WithTimes(stamps...), chunkio.WithTolerance(time.Second))
//
// Remote datasets work the same way through store.S3Root or
// store.MinIORoot, which sync matching chunk files into a local cache.
//
// The chunk index is rebuilt from the filesystem on every call and never
// cached, so concurrent callers reading the same files are safe.
package chunkio
