package services

import (
	"path/filepath"
	"sort"
	"strings"

	"github.com/pkg/errors"

	"github.com/vvka-141/tsqlx/internal/ddl"
	"github.com/vvka-141/tsqlx/internal/files/filesystem"
	"github.com/vvka-141/tsqlx/pkg/tsqlx"
)

// DeletedScriptsHeader introduces the list of scripts with no matching object.
const DeletedScriptsHeader = "---- DELETED SCRIPTS -----"

// SyncScripts makes target.Directory mirror objects.
//
// Every object is announced on the logger. Objects excluded by the "_"
// prefix have their script removed; all others are normalized for database
// and written over any existing file. Scripts left in the directory that no
// object produced are listed after DeletedScriptsHeader but never removed.
func SyncScripts(
	fsys filesystem.FileSystemProvider,
	logger tsqlx.Logger,
	target tsqlx.SyncTarget,
	database string,
	objects []tsqlx.SchemaObject,
) error {
	if err := fsys.MkdirAll(target.Directory); err != nil {
		return errors.Wrapf(err, "while creating %s", target.Directory)
	}

	written := make(map[string]tsqlx.SchemaObject, len(objects))
	for _, obj := range objects {
		logger.Info("Writing %s: %s", target.Label, obj.Name)
		path := target.PathFor(obj)
		if !target.Contains(path) {
			logger.Error("Skipping %s: script %s is outside %s", obj.QualifiedName(), path, target.Directory)
			continue
		}

		if obj.IsExcluded() {
			if err := removeIfExists(fsys, path); err != nil {
				return err
			}
			continue
		}

		if prev, ok := written[path]; ok {
			logger.Error("%s and %s map to the same script %s; keeping %s",
				prev.QualifiedName(), obj.QualifiedName(), path, obj.QualifiedName())
		}

		logger.Verbose("Saving %s", path)
		if err := fsys.WriteFile(path, []byte(ddl.Normalize(database, obj))); err != nil {
			return errors.Wrapf(err, "while writing %s", path)
		}
		written[path] = obj
	}

	stale, err := staleScripts(fsys, target.Directory, written)
	if err != nil {
		return err
	}
	if len(stale) > 0 {
		logger.Info(DeletedScriptsHeader)
		for _, path := range stale {
			logger.Info("%s", path)
		}
	}
	return nil
}

func removeIfExists(fsys filesystem.FileSystemProvider, path string) error {
	exists, err := filesystem.Exists(fsys, path)
	if err != nil {
		return errors.Wrapf(err, "while checking %s", path)
	}
	if !exists {
		return nil
	}
	if err := fsys.Remove(path); err != nil {
		return errors.Wrapf(err, "while deleting %s", path)
	}
	return nil
}

// staleScripts lists the .sql files of dir that are not in written, sorted.
func staleScripts(fsys filesystem.FileSystemProvider, dir string, written map[string]tsqlx.SchemaObject) ([]string, error) {
	entries, err := fsys.ReadDir(dir)
	if err != nil {
		return nil, errors.Wrapf(err, "while listing %s", dir)
	}

	var stale []string
	for _, e := range entries {
		if e.IsDir() || !strings.EqualFold(filepath.Ext(e.Name()), tsqlx.ScriptExtension) {
			continue
		}
		path := filepath.Join(dir, e.Name())
		if _, ok := written[path]; !ok {
			stale = append(stale, path)
		}
	}
	sort.Strings(stale)
	return stale, nil
}
