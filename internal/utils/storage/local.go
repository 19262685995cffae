package storage

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"foodgram/internal/utils"
)

type localStorage struct {
	dir     string
	baseURL string
}

// NewLocalStorage writes media under MEDIA_DIR, served by the app at /media.
func NewLocalStorage() (Storage, error) {
	dir := utils.GetConfig("MEDIA_DIR")
	if err := os.MkdirAll(dir, os.ModePerm); err != nil {
		return nil, fmt.Errorf("create media dir: %w", err)
	}
	return &localStorage{
		dir:     dir,
		baseURL: strings.TrimRight(utils.GetConfig("APP_URL"), "/") + "/media",
	}, nil
}

func (s *localStorage) UploadFile(ctx context.Context, key string, contentType string, body []byte) (string, error) {
	path := filepath.Join(s.dir, filepath.FromSlash(key))
	if err := os.MkdirAll(filepath.Dir(path), os.ModePerm); err != nil {
		return "", err
	}
	if err := os.WriteFile(path, body, 0o644); err != nil {
		return "", err
	}
	return s.baseURL + "/" + key, nil
}

func (s *localStorage) DeleteFile(ctx context.Context, key string) error {
	err := os.Remove(filepath.Join(s.dir, filepath.FromSlash(key)))
	if err != nil && !os.IsNotExist(err) {
		return err
	}
	return nil
}
