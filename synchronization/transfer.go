package synchronization

import (
	"context"
	"path"
	"path/filepath"

	"github.com/pkg/errors"
	"github.com/svetlyi/gdrivepath/contracts"
	"github.com/svetlyi/gdrivepath/ldrive/hash"
)

// UploadFile uploads localPath into the remote folder remoteDirPath under
// the same base name. If the remote file already exists it is either
// overwritten in place (same id, new content) or left alone, depending on
// overwrite. Otherwise the missing folders are created and a new file is
// created in the last one. Exactly one of the three happens.
func (s *Synchronizer) UploadFile(ctx context.Context, localPath string, remoteDirPath string, overwrite bool) (contracts.Action, error) {
	localPath = CheckPath(localPath)
	remoteDirPath = CheckPath(remoteDirPath)
	name := filepath.Base(localPath)
	remoteFilePath := remoteDirPath + "/" + name

	exists, err := s.CheckExistence(ctx, remoteFilePath)
	if err != nil {
		return "", err
	}

	if exists && !overwrite {
		s.log.Info("file already exists, skipping", remoteFilePath)
		s.report(contracts.Event{
			Action:     contracts.ActionSkipped,
			RemotePath: remoteFilePath,
			LocalPath:  localPath,
		})
		return contracts.ActionSkipped, nil
	}

	content, err := s.local.ReadFile(localPath)
	if err != nil {
		return "", errors.Wrapf(err, "could not read %s", localPath)
	}

	if exists {
		fileID, err := s.resolvedID(remoteFilePath)
		if err != nil {
			return "", err
		}
		if _, err = s.remote.ReplaceContent(ctx, fileID, content); err != nil {
			return "", errors.Wrapf(err, "could not overwrite %s", remoteFilePath)
		}
		s.log.Info("file already exists, overwritten", remoteFilePath)
		s.report(contracts.Event{
			Action:     contracts.ActionOverwritten,
			RemotePath: remoteFilePath,
			FileID:     fileID,
			LocalPath:  localPath,
			Hash:       hash.Bytes(content),
		})
		return contracts.ActionOverwritten, nil
	}

	fileID, err := s.createFile(ctx, remoteDirPath, name, content)
	if err != nil {
		return "", err
	}
	s.log.Info("uploaded", remoteFilePath)
	s.report(contracts.Event{
		Action:     contracts.ActionCreated,
		RemotePath: remoteFilePath,
		FileID:     fileID,
		LocalPath:  localPath,
		Hash:       hash.Bytes(content),
	})
	return contracts.ActionCreated, nil
}

// UploadFileTo uploads localPath as remoteFilePath, creating the folders
// on the way. A new remote file is created every time, even when one with
// the same name exists.
func (s *Synchronizer) UploadFileTo(ctx context.Context, localPath string, remoteFilePath string) error {
	localPath = CheckPath(localPath)
	remoteFilePath = CheckPath(remoteFilePath)
	remoteDirPath, name := path.Split(remoteFilePath)
	remoteDirPath = CheckPath(remoteDirPath)
	if remoteDirPath == "" || name == "" {
		return errors.Wrapf(contracts.ErrInvalidPath, "%s has no folder or no file name", remoteFilePath)
	}

	content, err := s.local.ReadFile(localPath)
	if err != nil {
		return errors.Wrapf(err, "could not read %s", localPath)
	}
	fileID, err := s.createFile(ctx, remoteDirPath, name, content)
	if err != nil {
		return err
	}
	s.log.Info("uploaded", remoteFilePath)
	s.report(contracts.Event{
		Action:     contracts.ActionCreated,
		RemotePath: remoteFilePath,
		FileID:     fileID,
		LocalPath:  localPath,
		Hash:       hash.Bytes(content),
	})
	return nil
}

func (s *Synchronizer) createFile(ctx context.Context, remoteDirPath string, name string, content []byte) (string, error) {
	if err := s.CreateFoldersFromPath(ctx, remoteDirPath); err != nil {
		return "", err
	}
	dirID, err := s.resolvedID(remoteDirPath)
	if err != nil {
		return "", err
	}
	f, err := s.remote.CreateFile(ctx, dirID, name, content)
	if err != nil {
		return "", errors.Wrapf(err, "could not create file %s in %s", name, remoteDirPath)
	}
	return f.ID, nil
}

// DownloadFile downloads remoteFilePath into localDir and returns the local
// path. The local file is named after the remote object, which is the first
// sibling that matched the last segment.
func (s *Synchronizer) DownloadFile(ctx context.Context, localDir string, remoteFilePath string) (string, error) {
	remoteFilePath = CheckPath(remoteFilePath)
	exists, err := s.CheckExistence(ctx, remoteFilePath)
	if err != nil {
		return "", err
	}
	if !exists {
		return "", errors.Wrapf(contracts.ErrNotFound, "remote file %s", remoteFilePath)
	}
	fileID, err := s.resolvedID(remoteFilePath)
	if err != nil {
		return "", err
	}

	if err = s.local.MkdirAll(localDir); err != nil {
		return "", errors.Wrapf(err, "could not create local dir %s", localDir)
	}
	content, name, err := s.remote.Download(ctx, fileID)
	if err != nil {
		return "", errors.Wrapf(err, "could not download %s", remoteFilePath)
	}
	localPath := filepath.Join(localDir, name)
	if err = s.local.WriteFile(localPath, content); err != nil {
		return "", errors.Wrapf(err, "could not write %s", localPath)
	}

	s.log.Info("downloaded", remoteFilePath, "to", localPath)
	s.report(contracts.Event{
		Action:     contracts.ActionDownloaded,
		RemotePath: remoteFilePath,
		FileID:     fileID,
		LocalPath:  localPath,
		Hash:       hash.Bytes(content),
	})
	return localPath, nil
}
