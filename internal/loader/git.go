package loader

import (
	"context"
	"fmt"
	"io"
	"net/url"
	"strings"

	git "github.com/go-git/go-git/v5"
	"github.com/go-git/go-git/v5/plumbing"
	"github.com/go-git/go-git/v5/storage/memory"

	themeerrors "github.com/alexisbeaulieu97/themer/pkg/errors"
)

const gitSchemePrefix = "git+"

// gitSource is a token document inside a git repository, written as
// git+<repository url>?path=<file>[&ref=<revision>].
type gitSource struct {
	repo string
	path string
	ref  string
}

func parseGitSource(source string) (gitSource, error) {
	u, err := url.Parse(strings.TrimPrefix(source, gitSchemePrefix))
	if err != nil {
		return gitSource{}, err
	}
	q := u.Query()
	path := strings.TrimPrefix(q.Get("path"), "/")
	if path == "" {
		return gitSource{}, fmt.Errorf("missing path query parameter")
	}
	u.RawQuery = ""
	u.Fragment = ""
	return gitSource{repo: u.String(), path: path, ref: q.Get("ref")}, nil
}

func isGitSource(scheme string) bool {
	return strings.HasPrefix(strings.ToLower(scheme), gitSchemePrefix)
}

// fetchGit reads one file from a repository revision. Local repositories
// are opened in place; remote ones are cloned shallowly into memory.
func (l *Loader) fetchGit(ctx context.Context, source string) (document, error) {
	gs, err := parseGitSource(source)
	if err != nil {
		return document{}, themeerrors.NewSourceError(source, 0, err)
	}

	repo, err := openRepository(ctx, gs)
	if err != nil {
		return document{}, themeerrors.NewSourceError(source, 0, err)
	}

	rev := gs.ref
	if rev == "" {
		rev = "HEAD"
	}
	hash, err := repo.ResolveRevision(plumbing.Revision(rev))
	if err != nil {
		return document{}, themeerrors.NewSourceError(source, 0, fmt.Errorf("resolve %s: %w", rev, err))
	}
	commit, err := repo.CommitObject(*hash)
	if err != nil {
		return document{}, themeerrors.NewSourceError(source, 0, err)
	}
	file, err := commit.File(gs.path)
	if err != nil {
		return document{}, themeerrors.NewSourceError(source, 0, fmt.Errorf("%s at %s: %w", gs.path, rev, err))
	}

	reader, err := file.Reader()
	if err != nil {
		return document{}, themeerrors.NewSourceError(source, 0, err)
	}
	defer reader.Close()

	data, err := io.ReadAll(io.LimitReader(reader, maxDocumentSize))
	if err != nil {
		return document{}, themeerrors.NewSourceError(source, 0, err)
	}
	return document{data: data, format: formatFromPath(gs.path)}, nil
}

func openRepository(ctx context.Context, gs gitSource) (*git.Repository, error) {
	if u, err := url.Parse(gs.repo); err == nil && strings.EqualFold(u.Scheme, "file") {
		return git.PlainOpenWithOptions(u.Path, &git.PlainOpenOptions{DetectDotGit: true})
	}

	opts := &git.CloneOptions{
		URL:          gs.repo,
		Depth:        1,
		SingleBranch: true,
		Tags:         git.NoTags,
	}
	if gs.ref != "" {
		opts.ReferenceName = plumbing.NewBranchReferenceName(gs.ref)
	}
	return git.CloneContext(ctx, memory.NewStorage(), nil, opts)
}
