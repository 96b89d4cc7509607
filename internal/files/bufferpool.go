package files

import "sync"

// ChunkSize is the size of every read in a file transfer
const ChunkSize = 4096

var chunkPool = sync.Pool{
	New: func() interface{} {
		buf := make([]byte, ChunkSize)
		return &buf
	},
}

// getChunk returns a ChunkSize buffer from the pool
func getChunk() *[]byte {
	return chunkPool.Get().(*[]byte)
}

// putChunk returns a buffer to the pool
func putChunk(buf *[]byte) {
	if cap(*buf) != ChunkSize {
		// Non-standard size, let GC handle it
		return
	}
	*buf = (*buf)[:ChunkSize]
	chunkPool.Put(buf)
}
