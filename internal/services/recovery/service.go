package recovery

import (
	"context"
	"fmt"
	"sort"

	"golang.org/x/sync/errgroup"
	"gopkg.in/op/go-logging.v1"

	"mxtool/internal/crypto"
	"mxtool/internal/domain"
	"mxtool/internal/log"
	"mxtool/internal/protocol/keybackup"
	"mxtool/internal/protocol/ssss"
	"mxtool/internal/util/memzero"
)

// DefaultWorkers bounds the session-decryption pool when no count is given.
const DefaultWorkers = 8

// Credential is the user-presented recovery material. Exactly one field
// should be set.
type Credential struct {
	RecoveryKey string
	Passphrase  string
}

// Options tune a restore run.
type Options struct {
	// CachePassphrase seals the validated backup key into the local store
	// (and unseals it on later runs). Empty disables caching.
	CachePassphrase string

	// Workers bounds the concurrent session decryptions; <= 0 means
	// DefaultWorkers.
	Workers int
}

// Result is the outcome of a restore: every recovered session plus a tally
// of entries that failed. A failed entry never aborts the run.
type Result struct {
	Version   string
	Imported  int
	Failed    int
	FromCache bool
	Sessions  []domain.DecryptedSession
	Failures  []domain.SessionFailure
}

// Service drives the backup-key recovery and session-decryption pipeline.
// Credential resolution, envelope decryption and key validation run once,
// sequentially; only then does per-session work fan out.
type Service struct {
	client domain.KeyBackupClient
	store  domain.BackupKeyStore
	log    *logging.Logger
}

// New returns a recovery service. store may be nil when caching is unused.
func New(client domain.KeyBackupClient, store domain.BackupKeyStore, backend *log.Backend) *Service {
	if backend == nil {
		backend = log.Discard()
	}
	return &Service{
		client: client,
		store:  store,
		log:    backend.GetLogger("recovery"),
	}
}

// Status returns the backup descriptor plus room and session counts.
func (s *Service) Status(ctx context.Context) (domain.BackupInfo, int, int, error) {
	info, err := s.client.BackupVersion(ctx)
	if err != nil {
		return info, 0, 0, err
	}
	keys, err := s.client.RoomKeys(ctx, info.Version)
	if err != nil {
		return info, 0, 0, err
	}
	sessions := 0
	for _, room := range keys.Rooms {
		sessions += len(room.Sessions)
	}
	return info, len(keys.Rooms), sessions, nil
}

// Restore recovers the backup private key from cred (or the local cache),
// validates it against the server's declared public key, and decrypts every
// backed-up session. Cancelling ctx abandons the remaining entries; sessions
// already decrypted stay in the returned result.
func (s *Service) Restore(ctx context.Context, cred Credential, opts Options) (*Result, error) {
	info, err := s.client.BackupVersion(ctx)
	if err != nil {
		return nil, fmt.Errorf("fetch backup version: %w", err)
	}
	if info.Algorithm != keybackup.Algorithm {
		return nil, fmt.Errorf("%w: backup algorithm %q", domain.ErrUnsupportedAlgorithm, info.Algorithm)
	}

	declared, err := decodePublicKey(info.AuthData.PublicKey)
	if err != nil {
		return nil, err
	}

	priv, fromCache, err := s.obtainBackupKey(ctx, cred, opts, info)
	if err != nil {
		return nil, err
	}
	defer memzero.Zero(priv.Slice())

	// The recovered key is unusable until its public half matches the
	// server's; the deferred wipe discards a rejected key.
	if err := keybackup.ValidateKey(priv, declared); err != nil {
		return nil, err
	}
	s.log.Noticef("backup key validated against version %s", info.Version)

	if opts.CachePassphrase != "" && !fromCache && s.store != nil {
		cached := domain.CachedBackupKey{
			Key:       crypto.B64(priv.Slice()),
			Version:   info.Version,
			Algorithm: info.Algorithm,
		}
		if err := s.store.SaveBackupKey(opts.CachePassphrase, cached); err != nil {
			return nil, fmt.Errorf("cache backup key: %w", err)
		}
		s.log.Debugf("backup key cached for version %s", info.Version)
	}

	keys, err := s.client.RoomKeys(ctx, info.Version)
	if err != nil {
		return nil, fmt.Errorf("fetch room keys: %w", err)
	}

	result := &Result{Version: info.Version, FromCache: fromCache}
	s.decryptAll(ctx, priv, keys, opts.Workers, result)

	if err := ctx.Err(); err != nil {
		return result, err
	}
	return result, nil
}

type entry struct {
	roomID    string
	sessionID string
	data      domain.SessionData
}

// decryptAll fans the entries out over a bounded worker pool. Entries are
// independent; a failure is tallied and the pool keeps going.
func (s *Service) decryptAll(ctx context.Context, priv domain.X25519Private, keys domain.RoomKeys, workers int, result *Result) {
	var entries []entry
	for roomID, room := range keys.Rooms {
		for sessionID, e := range room.Sessions {
			entries = append(entries, entry{roomID, sessionID, e.SessionData})
		}
	}
	sort.Slice(entries, func(i, j int) bool {
		if entries[i].roomID != entries[j].roomID {
			return entries[i].roomID < entries[j].roomID
		}
		return entries[i].sessionID < entries[j].sessionID
	})

	if workers <= 0 {
		workers = DefaultWorkers
	}

	type slot struct {
		session domain.DecryptedSession
		failure *domain.SessionFailure
		done    bool
	}
	slots := make([]slot, len(entries))

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(workers)
	for i := range entries {
		g.Go(func() error {
			if err := gctx.Err(); err != nil {
				return err
			}
			e := entries[i]
			record, err := keybackup.DecryptSession(priv, e.data)
			if err != nil {
				slots[i] = slot{
					failure: &domain.SessionFailure{RoomID: e.roomID, SessionID: e.sessionID, Err: err.Error()},
					done:    true,
				}
				return nil
			}
			slots[i] = slot{
				session: domain.DecryptedSession{RoomID: e.roomID, SessionID: e.sessionID, Data: record},
				done:    true,
			}
			return nil
		})
	}
	// The only error a worker returns is cancellation; per-entry failures
	// are recorded in their slot.
	_ = g.Wait()

	for _, sl := range slots {
		switch {
		case !sl.done:
		case sl.failure != nil:
			result.Failed++
			result.Failures = append(result.Failures, *sl.failure)
			s.log.Warningf("session %s/%s: %s", sl.failure.RoomID, sl.failure.SessionID, sl.failure.Err)
		default:
			result.Imported++
			result.Sessions = append(result.Sessions, sl.session)
		}
	}
	s.log.Noticef("decrypted %d sessions, %d failed", result.Imported, result.Failed)
}

// obtainBackupKey produces the backup private key either from the local
// cache or by resolving the credential and opening the SSSS envelope.
func (s *Service) obtainBackupKey(ctx context.Context, cred Credential, opts Options, info domain.BackupInfo) (domain.X25519Private, bool, error) {
	var priv domain.X25519Private

	if opts.CachePassphrase != "" && s.store != nil {
		cached, ok, err := s.store.LoadBackupKey(opts.CachePassphrase)
		switch {
		case err != nil:
			s.log.Warningf("backup key cache unusable, falling back to credential: %v", err)
		case ok && cached.Version == info.Version:
			raw, err := crypto.DecodeUnpaddedB64(cached.Key)
			if err != nil || len(raw) != len(priv) {
				s.log.Warningf("backup key cache holds a malformed key, ignoring it")
				break
			}
			copy(priv[:], raw)
			memzero.Zero(raw)
			s.log.Debugf("using cached backup key for version %s", info.Version)
			return priv, true, nil
		case ok:
			s.log.Debugf("cached backup key is for version %s, want %s", cached.Version, info.Version)
		}
	}

	if cred.RecoveryKey == "" && cred.Passphrase == "" {
		return priv, false, fmt.Errorf("%w: no credential supplied", domain.ErrInvalidRecoveryKey)
	}

	keyID, err := s.client.DefaultSSSSKeyID(ctx)
	if err != nil {
		return priv, false, fmt.Errorf("fetch default secret-storage key: %w", err)
	}

	var secret domain.RootSecret
	if cred.RecoveryKey != "" {
		secret, err = ssss.ResolveRecoveryKey(cred.RecoveryKey)
	} else {
		var keyInfo domain.SSSSKeyInfo
		keyInfo, err = s.client.SSSSKeyInfo(ctx, keyID)
		if err != nil {
			return priv, false, fmt.Errorf("fetch secret-storage key info: %w", err)
		}
		if keyInfo.Passphrase == nil {
			return priv, false, fmt.Errorf("%w: key %s has no passphrase parameters", domain.ErrUnsupportedAlgorithm, keyID)
		}
		secret, err = ssss.ResolvePassphrase(cred.Passphrase, *keyInfo.Passphrase)
	}
	if err != nil {
		return priv, false, err
	}
	defer memzero.Zero(secret.Slice())

	env, err := s.client.BackupKeyEnvelope(ctx, keyID)
	if err != nil {
		return priv, false, fmt.Errorf("fetch encrypted backup key: %w", err)
	}

	raw, err := ssss.DecryptEnvelope(secret, env)
	if err != nil {
		return priv, false, err
	}
	defer memzero.Zero(raw)

	if len(raw) != len(priv) {
		return priv, false, fmt.Errorf("%w: recovered %d key bytes", domain.ErrDecryptionFailed, len(raw))
	}
	copy(priv[:], raw)
	return priv, false, nil
}

func decodePublicKey(b64 string) (domain.X25519Public, error) {
	var pub domain.X25519Public
	raw, err := crypto.DecodeUnpaddedB64(b64)
	if err != nil {
		return pub, fmt.Errorf("%w: declared public key: %v", domain.ErrUnsupportedAlgorithm, err)
	}
	if len(raw) != len(pub) {
		return pub, fmt.Errorf("%w: %d-byte declared public key", domain.ErrUnsupportedAlgorithm, len(raw))
	}
	copy(pub[:], raw)
	return pub, nil
}
