package services

import (
	"context"

	"github.com/pkg/errors"

	"github.com/vvka-141/tsqlx/internal/files/filesystem"
	"github.com/vvka-141/tsqlx/pkg/tsqlx"
)

// RefreshService extracts every object collection of one database and
// synchronizes it into the script tree.
// Thread-Safety: NOT safe for concurrent Refresh() calls on the same instance.
type RefreshService struct {
	fsys   filesystem.FileSystemProvider
	logger tsqlx.Logger
	opener tsqlx.SessionOpener
}

// NewRefreshService creates a RefreshService. Nil dependencies are
// programmer errors and panic.
func NewRefreshService(fsys filesystem.FileSystemProvider, logger tsqlx.Logger, opener tsqlx.SessionOpener) *RefreshService {
	if fsys == nil {
		panic("fsys cannot be nil")
	}
	if logger == nil {
		panic("logger cannot be nil")
	}
	if opener == nil {
		panic("opener cannot be nil")
	}
	return &RefreshService{fsys: fsys, logger: logger, opener: opener}
}

// Refresh validates config, opens one session and syncs Tables, Views,
// Stored Procedures and Functions in that order. The first failure stops
// the run. The session is always closed.
func (s *RefreshService) Refresh(ctx context.Context, config *tsqlx.RefreshConfig) (err error) {
	if err := config.Validate(); err != nil {
		return err
	}
	if !filesystem.IsDir(s.fsys, config.ScriptPath) {
		return errors.Wrapf(tsqlx.ErrDirectoryNotFound, "script path %s", config.ScriptPath)
	}

	s.logger.Verbose("Connecting to %s (%s)", config.Connection.Server, config.Connection.AuthMethod)
	session, err := s.opener.Open(ctx, &config.Connection)
	if err != nil {
		return err
	}
	defer func() {
		closeErr := session.Close()
		switch {
		case closeErr == nil:
		case err == nil:
			err = closeErr
		default:
			s.logger.Error("closing the connection: %v", closeErr)
		}
	}()

	database := session.Database()
	for _, set := range tsqlx.ObjectSets() {
		s.logger.Verbose("Scripting %s", set.Label)
		objects, err := set.Fetch(ctx, session)
		if err != nil {
			return err
		}
		target := tsqlx.NewSyncTarget(config.ScriptPath, database, set)
		if err := SyncScripts(s.fsys, s.logger, target, database, objects); err != nil {
			return err
		}
	}
	return nil
}
