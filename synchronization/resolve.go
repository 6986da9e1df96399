package synchronization

import (
	"context"

	"github.com/pkg/errors"
	"github.com/svetlyi/gdrivepath/contracts"
)

// CheckExistence reports whether every segment of drivePath resolves.
//
// Segments are resolved left to right. A cached prefix is trusted without
// asking the remote. Otherwise the children of the current parent are listed
// and the first child with the segment's name wins and gets cached. When a
// segment is not found the walk goes on with the same parent, so the next
// segment is looked up one level higher than its place in the path (unless
// the synchronizer is strict). Everything resolved on the way stays cached
// whatever the result is.
func (s *Synchronizer) CheckExistence(ctx context.Context, drivePath string) (bool, error) {
	parentID, names, err := splitPath(drivePath)
	if err != nil {
		return false, err
	}

	key := parentID
	resolved := 0
	for _, name := range names {
		key += "/" + name
		if id, ok := s.cache.Lookup(key); ok {
			parentID = id
			resolved++
			continue
		}

		children, err := s.remote.ListChildren(ctx, parentID)
		if err != nil {
			return false, errors.Wrapf(err, "could not list children of %s while resolving %s", parentID, key)
		}
		if child, found := firstByName(children, name); found {
			s.cache.Insert(key, child.ID)
			parentID = child.ID
			resolved++
			continue
		}
		s.log.Debug("segment not found", struct {
			path     string
			parentId string
		}{key, parentID})
		if s.strict {
			break
		}
	}

	return resolved == len(names), nil
}

// CreateFoldersFromPath creates every folder of folderPath that is not
// cached after CheckExistence, one by one from the left. Nothing is rolled
// back on failure: folders created before the failing one stay created and
// cached.
func (s *Synchronizer) CreateFoldersFromPath(ctx context.Context, folderPath string) error {
	exists, err := s.CheckExistence(ctx, folderPath)
	if err != nil {
		return err
	}
	if exists {
		return nil
	}

	parentID, names, err := splitPath(folderPath)
	if err != nil {
		return err
	}
	key := parentID
	for _, name := range names {
		key += "/" + name
		if id, ok := s.cache.Lookup(key); ok {
			parentID = id
			continue
		}
		id, err := s.CreateOneFolder(ctx, name, parentID)
		if err != nil {
			return errors.Wrapf(err, "could not create folder %s", key)
		}
		s.cache.Insert(key, id)
		parentID = id

		s.log.Info("created folder", key)
		s.report(contracts.Event{
			Action:     contracts.ActionFolderCreated,
			RemotePath: key,
			FileID:     id,
		})
	}
	return nil
}

// CreateOneFolder creates a folder named name in parentID and returns its id.
// The path cache is not touched.
func (s *Synchronizer) CreateOneFolder(ctx context.Context, name string, parentID string) (string, error) {
	folder, err := s.remote.CreateFolder(ctx, name, parentID)
	if err != nil {
		return "", errors.Wrapf(err, "could not create folder %s in %s", name, parentID)
	}
	return folder.ID, nil
}

// resolvedID returns the id of an already resolved path. A path without
// names is the starting parent id itself.
func (s *Synchronizer) resolvedID(path string) (string, error) {
	parentID, names, err := splitPath(path)
	if err != nil {
		return "", err
	}
	if len(names) == 0 {
		return parentID, nil
	}
	id, ok := s.cache.Lookup(CheckPath(path))
	if !ok {
		return "", errors.Wrapf(contracts.ErrNotFound, "%s is not resolved", path)
	}
	return id, nil
}

func firstByName(objects []contracts.RemoteObject, name string) (contracts.RemoteObject, bool) {
	for _, o := range objects {
		if o.Name == name {
			return o, true
		}
	}
	return contracts.RemoteObject{}, false
}
