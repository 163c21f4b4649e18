package service

import (
	"archive/zip"
	"fmt"
	"gradebook_backend/internal/config"
	"gradebook_backend/internal/repository"
	"gradebook_backend/internal/util"
	"gradebook_backend/pkg/monitoring"
	"io"
	"os"
	"path/filepath"

	"github.com/google/uuid"
)

// ReportService 把多份评分报告打包成单个可下载的归档。
// 归档名随机生成，并发打包互不干扰。
type ReportService struct {
	SubmissionRepo *repository.SubmissionRepository
	Cfg            *config.Config
}

func NewReportService(submissionRepo *repository.SubmissionRepository, cfg *config.Config) *ReportService {
	return &ReportService{
		SubmissionRepo: submissionRepo,
		Cfg:            cfg,
	}
}

// ZipAllReports 打包给定的报告路径（相对 Reports.Dir）。
// 只有一条路径时原样返回；多条时写入新的 <uuid>.zip 并返回其相对路径。
// 先写临时文件、成功后改名，失败时删除临时文件，最终路径上不会出现半成品。
func (s *ReportService) ZipAllReports(paths []string) (string, error) {
	if len(paths) == 0 {
		return "", util.ErrNoReports
	}
	for _, p := range paths {
		if !util.SafeRelPath(p) {
			return "", fmt.Errorf("bundle report %s: %w", p, util.ErrInvalidReportPath)
		}
	}
	if len(paths) == 1 {
		return paths[0], nil
	}

	dir := s.Cfg.Reports.Dir
	tmp, err := os.CreateTemp(dir, "bundle-*.zip.tmp")
	if err != nil {
		return "", fmt.Errorf("create report bundle: %w", err)
	}
	tmpName := tmp.Name()

	if err := writeArchive(tmp, dir, paths); err != nil {
		tmp.Close()
		os.Remove(tmpName)
		return "", err
	}
	if err := tmp.Close(); err != nil {
		os.Remove(tmpName)
		return "", fmt.Errorf("close report bundle: %w", err)
	}

	name := uuid.New().String() + ".zip"
	if err := os.Rename(tmpName, filepath.Join(dir, name)); err != nil {
		os.Remove(tmpName)
		return "", fmt.Errorf("publish report bundle: %w", err)
	}

	monitoring.ReportBundleCounter.Inc()
	return name, nil
}

// writeArchive 每份输入以其原始相对名写入归档
func writeArchive(w io.Writer, dir string, paths []string) error {
	zw := zip.NewWriter(w)
	for _, p := range paths {
		src, err := os.Open(filepath.Join(dir, p))
		if err != nil {
			zw.Close()
			return fmt.Errorf("read report %s: %w", p, err)
		}

		entry, err := zw.Create(p)
		if err == nil {
			_, err = io.Copy(entry, src)
		}
		src.Close()
		if err != nil {
			zw.Close()
			return fmt.Errorf("archive report %s: %w", p, err)
		}
	}
	return zw.Close()
}

// BundleStudentReports 汇总某学生在某次作业下的全部报告并打包
func (s *ReportService) BundleStudentReports(assignmentID, studentID uint) (string, error) {
	paths, err := s.SubmissionRepo.ReportPaths(assignmentID, studentID)
	if err != nil {
		return "", err
	}
	return s.ZipAllReports(paths)
}

// ResolvePath 相对报告路径在磁盘上的绝对位置
func (s *ReportService) ResolvePath(name string) string {
	return filepath.Join(s.Cfg.Reports.Dir, name)
}
