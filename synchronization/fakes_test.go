package synchronization

import (
	"bytes"
	"context"
	"fmt"
	"os"

	"github.com/pkg/errors"
	"github.com/svetlyi/gdrivepath/contracts"
	"github.com/svetlyi/gdrivepath/logger"
)

// fakeRemote is an in-memory drive counting the calls made to it.
type fakeRemote struct {
	children map[string][]contracts.RemoteObject
	content  map[string][]byte
	nextID   int

	listCalls    []string
	createFolder []string
	createFile   []string
	replaced     []string
	downloaded   []string

	// failCreateFolderAfter makes CreateFolder fail once that many folders were created
	failCreateFolderAfter int
	failList              bool
}

var errRemote = errors.New("remote is down")

func newFakeRemote() *fakeRemote {
	return &fakeRemote{
		children:              make(map[string][]contracts.RemoteObject),
		content:               make(map[string][]byte),
		failCreateFolderAfter: -1,
	}
}

func (r *fakeRemote) add(parentID string, name string, folder bool) contracts.RemoteObject {
	r.nextID++
	o := contracts.RemoteObject{
		ID:      fmt.Sprintf("%s-%d", name, r.nextID),
		Name:    name,
		Parents: []string{parentID},
	}
	if folder {
		o.MimeType = contracts.FolderMimeType
	}
	r.children[parentID] = append(r.children[parentID], o)
	return o
}

func (r *fakeRemote) ListChildren(_ context.Context, parentID string) ([]contracts.RemoteObject, error) {
	r.listCalls = append(r.listCalls, parentID)
	if r.failList {
		return nil, errRemote
	}
	return append([]contracts.RemoteObject(nil), r.children[parentID]...), nil
}

func (r *fakeRemote) CreateFolder(_ context.Context, name string, parentID string) (contracts.RemoteObject, error) {
	if r.failCreateFolderAfter == len(r.createFolder) {
		return contracts.RemoteObject{}, errRemote
	}
	r.createFolder = append(r.createFolder, parentID+"/"+name)
	return r.add(parentID, name, true), nil
}

func (r *fakeRemote) CreateFile(_ context.Context, parentID string, name string, content []byte) (contracts.RemoteObject, error) {
	r.createFile = append(r.createFile, parentID+"/"+name)
	o := r.add(parentID, name, false)
	r.content[o.ID] = content
	return o, nil
}

func (r *fakeRemote) ReplaceContent(_ context.Context, fileID string, content []byte) (contracts.RemoteObject, error) {
	r.replaced = append(r.replaced, fileID)
	r.content[fileID] = content
	return contracts.RemoteObject{ID: fileID}, nil
}

func (r *fakeRemote) Download(_ context.Context, fileID string) ([]byte, string, error) {
	r.downloaded = append(r.downloaded, fileID)
	for _, children := range r.children {
		for _, c := range children {
			if c.ID == fileID {
				return r.content[fileID], c.Name, nil
			}
		}
	}
	return nil, "", errors.Wrap(contracts.ErrNotFound, fileID)
}

func (r *fakeRemote) remoteCalls() int {
	return len(r.createFolder) + len(r.createFile) + len(r.replaced) + len(r.downloaded)
}

// fakeLocal is an in-memory local file system.
type fakeLocal struct {
	files  map[string][]byte
	reads  int
	mkdirs []string
	writes []string
}

func newFakeLocal() *fakeLocal {
	return &fakeLocal{files: make(map[string][]byte)}
}

func (l *fakeLocal) ReadFile(path string) ([]byte, error) {
	l.reads++
	data, ok := l.files[path]
	if !ok {
		return nil, os.ErrNotExist
	}
	return data, nil
}

func (l *fakeLocal) MkdirAll(dir string) error {
	l.mkdirs = append(l.mkdirs, dir)
	return nil
}

func (l *fakeLocal) WriteFile(path string, data []byte) error {
	l.writes = append(l.writes, path)
	l.files[path] = data
	return nil
}

type memoryReporter struct {
	events []contracts.Event
}

func (m *memoryReporter) Report(e contracts.Event) error {
	m.events = append(m.events, e)
	return nil
}

func setup(opts ...Option) (*Synchronizer, *fakeRemote, *fakeLocal) {
	remote := newFakeRemote()
	local := newFakeLocal()
	l := logger.NewWriter(&bytes.Buffer{}, contracts.LogDebugLevel)
	return New(remote, local, l, opts...), remote, local
}
