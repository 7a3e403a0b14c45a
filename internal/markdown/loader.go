package markdown

import (
	"context"
	"crypto/sha256"
	"fmt"
	"io/fs"
	"path"
	"sort"
)

// LoadFile parses one method file from fsys.
func LoadFile(fsys fs.FS, name string) (*Document, error) {
	data, err := fs.ReadFile(fsys, name)
	if err != nil {
		return nil, fmt.Errorf("markdown: read %s: %w", name, err)
	}
	doc, err := ParseMethod(SlugFromPath(name), data)
	if err != nil {
		return nil, fmt.Errorf("markdown: %s: %w", name, err)
	}
	sum := sha256.Sum256(data)
	doc.Path = name
	doc.Checksum = sum[:]
	return doc, nil
}

// LoadDirectory parses every *.md file under root, ordered by path.
func LoadDirectory(ctx context.Context, fsys fs.FS, root string) ([]*Document, error) {
	if root == "" {
		root = "."
	}
	var names []string
	err := fs.WalkDir(fsys, root, func(p string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if ctxErr := ctx.Err(); ctxErr != nil {
			return ctxErr
		}
		if d.IsDir() {
			return nil
		}
		if ok, _ := path.Match("*.md", path.Base(p)); ok {
			names = append(names, p)
		}
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("markdown: walk %s: %w", root, err)
	}
	sort.Strings(names)

	docs := make([]*Document, 0, len(names))
	for _, name := range names {
		doc, err := LoadFile(fsys, name)
		if err != nil {
			return nil, err
		}
		docs = append(docs, doc)
	}
	return docs, nil
}
