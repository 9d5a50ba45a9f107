// Package assets supprime les fichiers (images) référencés par les posts.
package assets

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
)

// LocalStore supprime des fichiers sous un répertoire racine (ex: "./public").
type LocalStore struct {
	root string
}

func NewLocalStore(root string) *LocalStore {
	return &LocalStore{root: root}
}

// Delete supprime le fichier référencé. La référence est ramenée sous la racine : "../" ne permet pas d'en sortir.
func (s *LocalStore) Delete(_ context.Context, ref string) error {
	path, err := s.resolve(ref)
	if err != nil {
		return err
	}
	if err := os.Remove(path); err != nil {
		return fmt.Errorf("remove asset %q: %w", ref, err)
	}
	return nil
}

func (s *LocalStore) resolve(ref string) (string, error) {
	ref = strings.TrimSpace(ref)
	if ref == "" {
		return "", errors.New("empty asset reference")
	}
	clean := filepath.Clean(string(filepath.Separator) + filepath.FromSlash(ref))
	return filepath.Join(s.root, clean), nil
}

// Noop ne supprime rien (backend désactivé).
type Noop struct{}

func (Noop) Delete(context.Context, string) error { return nil }
