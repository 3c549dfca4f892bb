// Copyright (c) 2026 The VoteTrackerPlus Developers.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package workspace

import (
	"crypto/rand"
	"encoding/hex"
	"errors"
	"fmt"
	"os"
	"path/filepath"
)

// ErrUnknownSession reports a guid that was never issued by this
// deployment. It is only ever returned in live mode - mock mode
// bypasses resolution entirely.
var ErrUnknownSession = errors.New("unknown session")

// Guids are 40 hex characters (20 random bytes), sharded into
// <root>/guids/<first two chars>/<remaining 38> on disk so no single
// directory accumulates every workspace.
const (
	guidLen   = 40
	guidBytes = 20
	shardLen  = 2
	guidsDir  = "guids"
)

// Directory maps session guids to their isolated workspace locations
// under a single ElectionData root.
type Directory struct {
	root string
}

// NewDirectory prepares the ElectionData root for guid workspaces.
func NewDirectory(root string) (*Directory, error) {
	if root == "" {
		return nil, errors.New("ElectionData root directory is required")
	}
	if err := os.MkdirAll(filepath.Join(root, guidsDir), 0o755); err != nil {
		return nil, fmt.Errorf("failed to prepare ElectionData root: %w", err)
	}
	return &Directory{root: root}, nil
}

// Root returns the ElectionData root directory.
func (d *Directory) Root() string {
	return d.root
}

// Provision creates a fresh, empty workspace and returns its guid and
// path. Every call creates a new workspace - guids are never reused.
func (d *Directory) Provision() (guid, path string, err error) {
	guid, err = newGUID()
	if err != nil {
		return "", "", err
	}

	path = d.guidPath(guid)
	if err := os.MkdirAll(path, 0o755); err != nil {
		return "", "", fmt.Errorf("failed to provision workspace %s: %w", guid, err)
	}
	return guid, path, nil
}

// Resolve maps a guid to its workspace path. A guid that was never
// issued resolves to nothing and fails with ErrUnknownSession.
func (d *Directory) Resolve(guid string) (string, error) {
	if !validGUID(guid) {
		return "", fmt.Errorf("%w: %q is not a guid", ErrUnknownSession, guid)
	}

	path := d.guidPath(guid)
	info, err := os.Stat(path)
	if err != nil || !info.IsDir() {
		return "", fmt.Errorf("%w: %s", ErrUnknownSession, guid)
	}
	return path, nil
}

// List enumerates all known guid workspaces. A workspace provisioned
// while the listing is in flight may or may not appear.
func (d *Directory) List() ([]string, error) {
	shards, err := os.ReadDir(filepath.Join(d.root, guidsDir))
	if err != nil {
		return nil, fmt.Errorf("failed to read guid directory: %w", err)
	}

	guids := []string{}
	for _, shard := range shards {
		if !shard.IsDir() || len(shard.Name()) != shardLen {
			continue
		}
		rest, err := os.ReadDir(filepath.Join(d.root, guidsDir, shard.Name()))
		if err != nil {
			// Shard vanished mid-listing; skip it rather than fail
			// the whole enumeration.
			continue
		}
		for _, entry := range rest {
			if !entry.IsDir() {
				continue
			}
			guid := shard.Name() + entry.Name()
			if validGUID(guid) {
				guids = append(guids, guid)
			}
		}
	}
	return guids, nil
}

func (d *Directory) guidPath(guid string) string {
	return filepath.Join(d.root, guidsDir, guid[:shardLen], guid[shardLen:])
}

// newGUID creates a random 40-character hex token
func newGUID() (string, error) {
	b := make([]byte, guidBytes)
	if _, err := rand.Read(b); err != nil {
		return "", fmt.Errorf("failed to generate guid: %w", err)
	}
	return hex.EncodeToString(b), nil
}

func validGUID(guid string) bool {
	if len(guid) != guidLen {
		return false
	}
	for _, c := range guid {
		if (c < '0' || c > '9') && (c < 'a' || c > 'f') {
			return false
		}
	}
	return true
}
