package contracts

import (
	"context"
	"time"

	"github.com/pkg/errors"
)

// RootID is the id of "My Drive". Paths conventionally start with it.
const RootID = "root"

const FolderMimeType = "application/vnd.google-apps.folder"

var (
	ErrNotFound        = errors.New("not found")
	ErrNotDownloadable = errors.New("not downloadable")
	ErrInvalidPath     = errors.New("invalid path")
)

// RemoteObject is a file or a folder in the remote drive.
// Names are not unique among siblings.
type RemoteObject struct {
	ID           string
	Name         string
	MimeType     string
	Parents      []string
	Size         int64
	ModifiedTime time.Time
	Md5Checksum  string
}

func (o RemoteObject) IsFolder() bool {
	return o.MimeType == FolderMimeType
}

// RemoteStore is the id-addressed remote drive.
type RemoteStore interface {
	// ListChildren returns the children of parentID in the order the
	// remote returns them.
	ListChildren(ctx context.Context, parentID string) ([]RemoteObject, error)
	CreateFolder(ctx context.Context, name string, parentID string) (RemoteObject, error)
	CreateFile(ctx context.Context, parentID string, name string, content []byte) (RemoteObject, error)
	// ReplaceContent uploads new content into an existing file keeping its id.
	ReplaceContent(ctx context.Context, fileID string, content []byte) (RemoteObject, error)
	// Download returns the content of the file and its name as reported by the remote.
	Download(ctx context.Context, fileID string) (content []byte, name string, err error)
}
