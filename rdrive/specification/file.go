// Package specification describes rules and specifications
// of the remote files, such as if it can be downloaded or which mime type a folder has.
package specification

import (
	"strings"

	"github.com/svetlyi/gdrivepath/contracts"
)

const googleAppsMimePrefix = "application/vnd.google-apps."

func GetFolderMime() string {
	return contracts.FolderMimeType
}

// CanDownloadFile reports whether the content can be downloaded as is.
// Folders and google documents (which need exporting) can't.
func CanDownloadFile(o contracts.RemoteObject) bool {
	return !strings.HasPrefix(o.MimeType, googleAppsMimePrefix)
}
