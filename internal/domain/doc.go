// Package domain holds the shared types of mxtool: fixed-size key arrays,
// the wire structures of the key-backup API, the error taxonomy, and the
// interfaces that decouple the recovery pipeline from the homeserver client
// and the local store.
//
// Key material types are fixed-size arrays to avoid accidental reallocation;
// callers wipe them through their Slice() view once they are done.
package domain
