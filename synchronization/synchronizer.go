// Package synchronization lets callers address remote files by slash paths
// like "root/photos/2020/a.jpg" instead of ids.
//
// The first segment of every path is the id of the folder the walk starts
// from, usually contracts.RootID. Every other segment is a name looked up
// among the children of the previous one. Resolved prefixes are remembered
// in a pathcache.Cache that lives as long as the Synchronizer.
package synchronization

import (
	"context"
	"strings"
	"time"

	"github.com/pkg/errors"
	"github.com/svetlyi/gdrivepath/contracts"
	"github.com/svetlyi/gdrivepath/pathcache"
	"github.com/svetlyi/gdrivepath/structures"
)

type Synchronizer struct {
	remote   contracts.RemoteStore
	local    contracts.LocalStore
	log      contracts.Logger
	reporter contracts.Reporter
	cache    *pathcache.Cache

	// strict stops resolution at the first segment that is not found
	strict bool
}

type Option func(s *Synchronizer)

// WithStrict makes CheckExistence stop at the first missing segment
// instead of checking the rest of the path against the last found parent.
func WithStrict(strict bool) Option {
	return func(s *Synchronizer) {
		s.strict = strict
	}
}

func WithReporter(r contracts.Reporter) Option {
	return func(s *Synchronizer) {
		s.reporter = r
	}
}

// New creates a session. Each session has its own empty path cache.
func New(remote contracts.RemoteStore, local contracts.LocalStore, log contracts.Logger, opts ...Option) *Synchronizer {
	s := &Synchronizer{
		remote: remote,
		local:  local,
		log:    log,
		cache:  pathcache.New(),
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

func (s *Synchronizer) Cache() *pathcache.Cache {
	return s.cache
}

// CheckPath strips exactly one trailing slash. Nothing else is normalized.
func CheckPath(path string) string {
	if strings.HasSuffix(path, "/") {
		return path[:len(path)-1]
	}
	return path
}

// splitPath returns the starting parent id and the names to resolve.
func splitPath(path string) (string, []string, error) {
	path = CheckPath(path)
	if path == "" {
		return "", nil, errors.Wrap(contracts.ErrInvalidPath, "empty path")
	}
	parts := strings.Split(path, "/")
	return parts[0], parts[1:], nil
}

// GetFileList lists the children of parentID. An empty parentID means the root.
func (s *Synchronizer) GetFileList(ctx context.Context, parentID string) ([]contracts.RemoteObject, error) {
	if parentID == "" {
		parentID = contracts.RootID
	}
	children, err := s.remote.ListChildren(ctx, parentID)
	if err != nil {
		return nil, errors.Wrapf(err, "could not list children of %s", parentID)
	}
	return children, nil
}

// Tree walks the remote tree under parentID depth first and calls fn for
// every object with its slash path starting at parentID. Siblings come in
// the order the remote lists them.
func (s *Synchronizer) Tree(ctx context.Context, parentID string, fn func(path string, o contracts.RemoteObject) error) error {
	if parentID == "" {
		parentID = contracts.RootID
	}
	var (
		ids     structures.StringStack
		paths   structures.StringStack
		objects = make(map[string]contracts.RemoteObject)
	)
	push := func(parentPath string, children []contracts.RemoteObject) {
		for i := len(children) - 1; i >= 0; i-- {
			objects[children[i].ID] = children[i]
			ids.Push(children[i].ID)
			paths.Push(parentPath + "/" + children[i].Name)
		}
	}

	children, err := s.GetFileList(ctx, parentID)
	if err != nil {
		return err
	}
	push(parentID, children)

	for ids.Len() > 0 {
		id, err := ids.Pop()
		if err != nil {
			return err
		}
		path, err := paths.Pop()
		if err != nil {
			return err
		}
		o := objects[id]
		if err = fn(path, o); err != nil {
			return err
		}
		if !o.IsFolder() {
			continue
		}
		if children, err = s.GetFileList(ctx, id); err != nil {
			return err
		}
		push(path, children)
	}
	return nil
}

func (s *Synchronizer) report(e contracts.Event) {
	if s.reporter == nil {
		return
	}
	e.Time = time.Now()
	if err := s.reporter.Report(e); err != nil {
		s.log.Warning("could not report event", e.Action, e.RemotePath, err)
	}
}
