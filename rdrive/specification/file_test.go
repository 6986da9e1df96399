package specification

import (
	"testing"

	"github.com/svetlyi/gdrivepath/contracts"
)

func TestRules(t *testing.T) {
	cases := []struct {
		mime        string
		folder      bool
		downloadble bool
	}{
		{"application/vnd.google-apps.folder", true, false},
		{"application/vnd.google-apps.document", false, false},
		{"text/plain", false, true},
		{"", false, true},
	}
	for _, c := range cases {
		o := contracts.RemoteObject{MimeType: c.mime}
		if o.IsFolder() != c.folder {
			t.Errorf("IsFolder(%q) = %v, want %v", c.mime, !c.folder, c.folder)
		}
		if CanDownloadFile(o) != c.downloadble {
			t.Errorf("CanDownloadFile(%q) = %v, want %v", c.mime, !c.downloadble, c.downloadble)
		}
	}
}
