package service

import (
	"context"
	"gradebook_backend/internal/config"
	"gradebook_backend/internal/util"
	"io"
	"os"
	"path/filepath"

	"github.com/minio/minio-go/v7"
	"github.com/minio/minio-go/v7/pkg/credentials"
)

// ReportStore 报告产物的通用存储接口
type ReportStore interface {
	Save(ctx context.Context, name string, reader io.Reader, size int64, contentType string) (string, error)
	Delete(ctx context.Context, name string) error
}

// LocalReportStore 本地磁盘实现，产物落在 Reports.Dir 下
type LocalReportStore struct {
	Cfg *config.ReportsConfig
}

func (p *LocalReportStore) Save(ctx context.Context, name string, reader io.Reader, size int64, contentType string) (string, error) {
	if !util.SafeRelPath(name) {
		return "", util.ErrInvalidReportPath
	}

	dst := filepath.Join(p.Cfg.Dir, name)
	dir := filepath.Dir(dst)
	if _, err := os.Stat(dir); os.IsNotExist(err) {
		if err := os.MkdirAll(dir, 0755); err != nil {
			return "", err
		}
	}

	out, err := os.Create(dst)
	if err != nil {
		return "", err
	}
	defer out.Close()

	if _, err := io.Copy(out, reader); err != nil {
		return "", err
	}
	return name, nil
}

func (p *LocalReportStore) Delete(ctx context.Context, name string) error {
	if !util.SafeRelPath(name) {
		return util.ErrInvalidReportPath
	}
	return os.Remove(filepath.Join(p.Cfg.Dir, name))
}

// MinioReportStore MinIO 对象存储实现
type MinioReportStore struct {
	Cfg    *config.ReportsConfig
	Client *minio.Client
}

func NewMinioReportStore(cfg *config.ReportsConfig) (*MinioReportStore, error) {
	client, err := minio.New(cfg.MinioEndpoint, &minio.Options{
		Creds:  credentials.NewStaticV4(cfg.MinioAccessID, cfg.MinioSecret, ""),
		Secure: false,
	})
	if err != nil {
		return nil, err
	}
	return &MinioReportStore{Cfg: cfg, Client: client}, nil
}

func (p *MinioReportStore) Save(ctx context.Context, name string, reader io.Reader, size int64, contentType string) (string, error) {
	_, err := p.Client.PutObject(ctx, p.Cfg.MinioBucket, name, reader, size, minio.PutObjectOptions{
		ContentType: contentType,
	})
	if err != nil {
		return "", err
	}
	return name, nil
}

func (p *MinioReportStore) Delete(ctx context.Context, name string) error {
	return p.Client.RemoveObject(ctx, p.Cfg.MinioBucket, name, minio.RemoveObjectOptions{})
}

// StorageService 按配置选择报告产物的存储实现
type StorageService struct {
	Provider ReportStore
	Cfg      *config.Config
}

func NewStorageService(cfg *config.Config) (*StorageService, error) {
	var provider ReportStore
	switch cfg.Reports.Type {
	case util.StorageMinio:
		p, err := NewMinioReportStore(&cfg.Reports)
		if err != nil {
			return nil, err
		}
		provider = p
	default:
		provider = &LocalReportStore{Cfg: &cfg.Reports}
	}
	return &StorageService{Provider: provider, Cfg: cfg}, nil
}

func (s *StorageService) Save(ctx context.Context, name string, reader io.Reader, size int64, contentType string) (string, error) {
	return s.Provider.Save(ctx, name, reader, size, contentType)
}
