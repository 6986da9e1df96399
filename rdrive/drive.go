// Package rdrive is the remote side: Google Drive accessed through the v3 API.
package rdrive

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"strings"
	"time"

	"github.com/pkg/errors"
	"github.com/svetlyi/gdrivepath/contracts"
	"github.com/svetlyi/gdrivepath/rdrive/specification"
	"google.golang.org/api/drive/v3"
	"google.golang.org/api/googleapi"
)

var fileFieldsSet = "id, name, mimeType, parents, size, modifiedTime, md5Checksum"

type Drive struct {
	filesService *drive.FilesService
	pageSize     int64
	log          contracts.Logger
}

var _ contracts.RemoteStore = (*Drive)(nil)

func New(srv *drive.Service, pageSize int64, log contracts.Logger) *Drive {
	return &Drive{
		filesService: srv.Files,
		pageSize:     pageSize,
		log:          log,
	}
}

// ListChildren returns all not trashed children of parentID, all pages
// concatenated in the order the server returned them. Trashed objects are
// never listed, so they never win a lookup by name.
func (d *Drive) ListChildren(ctx context.Context, parentID string) ([]contracts.RemoteObject, error) {
	q := fmt.Sprintf("'%s' in parents and trashed = false", escapeQuery(parentID))
	var (
		nextPageToken = ""
		children      []contracts.RemoteObject
	)
	for {
		filesListCall := d.filesService.List().
			Q(q).
			PageSize(d.pageSize).
			Fields(googleapi.Field(fmt.Sprintf("nextPageToken, files(%s)", fileFieldsSet))).
			Context(ctx)
		if "" != nextPageToken {
			filesListCall.PageToken(nextPageToken)
		}
		fileList, err := filesListCall.Do()
		if err != nil {
			return nil, errors.Wrapf(err, "could not list files in %s", parentID)
		}
		for _, gfile := range fileList.Files {
			children = append(children, newRemoteObject(gfile))
		}

		nextPageToken = fileList.NextPageToken
		if "" == nextPageToken {
			break
		}
	}
	d.log.Debug("listed children", struct {
		parentId string
		count    int
	}{parentID, len(children)})

	return children, nil
}

func (d *Drive) CreateFolder(ctx context.Context, name string, parentID string) (contracts.RemoteObject, error) {
	f, err := d.filesService.Create(&drive.File{
		Name:     name,
		MimeType: specification.GetFolderMime(),
		Parents:  []string{parentID},
	}).
		Fields(googleapi.Field(fileFieldsSet)).
		Context(ctx).
		Do()
	if err != nil {
		return contracts.RemoteObject{}, errors.Wrapf(err, "could not create folder %s in %s", name, parentID)
	}
	return newRemoteObject(f), nil
}

func (d *Drive) CreateFile(ctx context.Context, parentID string, name string, content []byte) (contracts.RemoteObject, error) {
	f, err := d.filesService.Create(&drive.File{
		Name:    name,
		Parents: []string{parentID},
	}).
		Media(bytes.NewReader(content)).
		Fields(googleapi.Field(fileFieldsSet)).
		Context(ctx).
		Do()
	if err != nil {
		return contracts.RemoteObject{}, errors.Wrapf(err, "could not create file %s in %s", name, parentID)
	}
	return newRemoteObject(f), nil
}

func (d *Drive) ReplaceContent(ctx context.Context, fileID string, content []byte) (contracts.RemoteObject, error) {
	f, err := d.filesService.Update(fileID, &drive.File{}).
		Media(bytes.NewReader(content)).
		Fields(googleapi.Field(fileFieldsSet)).
		Context(ctx).
		Do()
	if err != nil {
		return contracts.RemoteObject{}, errors.Wrapf(err, "could not update file %s remotely", fileID)
	}
	return newRemoteObject(f), nil
}

// Download returns the content of fileID and the name the drive has for it.
func (d *Drive) Download(ctx context.Context, fileID string) (content []byte, name string, err error) {
	f, err := d.filesService.Get(fileID).
		Fields(googleapi.Field(fileFieldsSet)).
		Context(ctx).
		Do()
	if err != nil {
		return nil, "", errors.Wrapf(err, "could not get file %s", fileID)
	}
	o := newRemoteObject(f)
	if !specification.CanDownloadFile(o) {
		return nil, "", errors.Wrapf(contracts.ErrNotDownloadable, "%s has mime type %s", o.Name, o.MimeType)
	}

	resp, err := d.filesService.Get(fileID).Context(ctx).Download()
	if err != nil {
		return nil, "", errors.Wrapf(err, "unable to retrieve file %s", fileID)
	}
	defer resp.Body.Close()

	content, err = io.ReadAll(resp.Body)
	if err != nil {
		return nil, "", errors.Wrapf(err, "unable to download file %s", fileID)
	}
	return content, o.Name, nil
}

func newRemoteObject(f *drive.File) contracts.RemoteObject {
	modTime, _ := time.Parse(time.RFC3339, f.ModifiedTime)
	return contracts.RemoteObject{
		ID:           f.Id,
		Name:         f.Name,
		MimeType:     f.MimeType,
		Parents:      f.Parents,
		Size:         f.Size,
		ModifiedTime: modTime,
		Md5Checksum:  f.Md5Checksum,
	}
}

func escapeQuery(s string) string {
	s = strings.ReplaceAll(s, `\`, `\\`)
	s = strings.ReplaceAll(s, "'", `\'`)
	return s
}
