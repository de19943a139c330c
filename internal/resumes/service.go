package resumes

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"time"

	"github.com/google/uuid"

	"resume-generator/internal/accounts"
	"resume-generator/internal/shared/metrics"
	"resume-generator/internal/shared/storage/artifact"
	"resume-generator/internal/shared/telemetry"
	"resume-generator/internal/shared/util"
	"resume-generator/resume/content"
	"resume-generator/resume/render"
)

// Service orchestrates the resume artifact lifecycle: finalize, list,
// delete, download, and the per-developer template operations. It is the
// only writer to the artifact directories; the ledger decides which
// artifacts exist and the files on disk are a derived cache.
type Service struct {
	Repo      Repo
	Graph     *accounts.Graph
	Layout    *artifact.Layout
	Templates *artifact.TemplateStore
	Now       func() time.Time
}

func NewService(repo Repo, graph *accounts.Graph, layout *artifact.Layout, templates *artifact.TemplateStore) *Service {
	return &Service{
		Repo:      repo,
		Graph:     graph,
		Layout:    layout,
		Templates: templates,
		Now:       time.Now,
	}
}

// Finalize renders the content against the owner's supervising developer's
// template and records the result in the ledger. The artifact name is
// derived from the content's role title and company; a second finalize for
// the same derived name returns ErrConflict rather than overwriting.
//
// The ledger row is written last. If it fails after the files landed, the
// files are orphaned on disk; that is logged, not rolled back.
func (s *Service) Finalize(ctx context.Context, actor accounts.Actor, ownerID string, c content.ResumeContent, jobDescription, jdURL string) (GeneratedResume, error) {
	if err := s.Graph.Authorize(ctx, actor, ownerID); err != nil {
		return GeneratedResume{}, err
	}
	if c.RoleTitle == "" || c.CompanyName == "" {
		return GeneratedResume{}, fmt.Errorf("%w: role title and company name are required", ErrInvalidInput)
	}

	name := DeriveName(c.RoleTitle, c.CompanyName)
	bucketDate := s.Now().Format("2006-01-02")

	// Resolve paths up front so a hostile name fails before any I/O.
	docPath, err := s.Layout.Resolve(ownerID, bucketDate, name, DocExt)
	if err != nil {
		return GeneratedResume{}, mapLayoutErr(err)
	}
	textPath, err := s.Layout.Resolve(ownerID, bucketDate, name, TextExt)
	if err != nil {
		return GeneratedResume{}, mapLayoutErr(err)
	}

	// Pre-check is an optimization; the ledger's uniqueness constraint is
	// the final arbiter under concurrent finalizes.
	if _, err := s.Repo.FindByOwnerAndName(ctx, ownerID, name); err == nil {
		return GeneratedResume{}, ErrConflict
	} else if !errors.Is(err, ErrNotFound) {
		return GeneratedResume{}, err
	}

	developer, err := s.Graph.SupervisorOf(ctx, ownerID)
	if err != nil {
		if errors.Is(err, accounts.ErrNotFound) {
			return GeneratedResume{}, ErrMissingTemplate
		}
		return GeneratedResume{}, err
	}
	templateBytes, _, err := s.Templates.Read(developer.ID)
	if err != nil {
		if errors.Is(err, artifact.ErrNoTemplate) {
			return GeneratedResume{}, ErrMissingTemplate
		}
		return GeneratedResume{}, err
	}

	start := time.Now()
	rendered, err := render.Render(templateBytes, c)
	metrics.ObserveRenderDuration(time.Since(start).Seconds())
	if err != nil {
		return GeneratedResume{}, err
	}

	if _, err := s.Layout.EnsureBucket(ownerID, bucketDate); err != nil {
		return GeneratedResume{}, err
	}
	if err := os.WriteFile(docPath, rendered, 0o644); err != nil {
		return GeneratedResume{}, fmt.Errorf("write document: %w", err)
	}
	if err := os.WriteFile(textPath, []byte(jobDescription), 0o644); err != nil {
		return GeneratedResume{}, fmt.Errorf("write description: %w", err)
	}

	resume := GeneratedResume{
		ID:         uuid.NewString(),
		OwnerID:    ownerID,
		BucketDate: bucketDate,
		Name:       name,
		JDURL:      jdURL,
		CreatedAt:  s.Now().UTC(),
	}
	if err := s.Repo.Create(ctx, resume); err != nil {
		telemetry.Error("resume.finalize.orphaned_files", map[string]any{
			"ownerId": ownerID,
			"name":    name,
			"docPath": docPath,
			"error":   err.Error(),
		})
		return GeneratedResume{}, err
	}

	metrics.IncResumeFinalized()
	telemetry.Info("resume.finalized", map[string]any{
		"ownerId": ownerID,
		"name":    name,
		"date":    bucketDate,
	})
	return resume, nil
}

// List returns one page of the owner's artifacts, newest bucket first,
// plus per-date counts. It never touches the filesystem.
func (s *Service) List(ctx context.Context, actor accounts.Actor, ownerID string, page, pageSize int) (ListResult, error) {
	if err := s.Graph.Authorize(ctx, actor, ownerID); err != nil {
		return ListResult{}, err
	}
	if page < 1 {
		page = 1
	}
	if pageSize < 1 {
		pageSize = 10
	}

	rows, total, err := s.Repo.ListByOwner(ctx, ownerID, pageSize, (page-1)*pageSize)
	if err != nil {
		return ListResult{}, err
	}
	counts, err := s.Repo.CountByDate(ctx, ownerID)
	if err != nil {
		return ListResult{}, err
	}

	files := make([]FileEntry, 0, len(rows))
	for _, row := range rows {
		files = append(files, FileEntry{
			Name:       row.Name,
			JDURL:      row.JDURL,
			BucketDate: row.BucketDate,
			Path:       row.OwnerID + "/" + row.BucketDate + "/" + row.Name + DocExt,
		})
	}

	totalPages := (total + pageSize - 1) / pageSize
	return ListResult{
		Files:      files,
		Total:      total,
		Page:       page,
		TotalPages: totalPages,
		DateCounts: counts,
	}, nil
}

// Delete removes the artifact's ledger row and best-effort removes its two
// sibling files. Missing files are logged and swallowed; a second delete
// for the same name returns ErrNotFound.
func (s *Service) Delete(ctx context.Context, actor accounts.Actor, ownerID, name string) error {
	if err := s.Graph.Authorize(ctx, actor, ownerID); err != nil {
		return err
	}
	resume, err := s.Repo.FindByOwnerAndName(ctx, ownerID, name)
	if err != nil {
		return err
	}

	for _, ext := range []string{DocExt, TextExt} {
		path, err := s.Layout.Resolve(resume.OwnerID, resume.BucketDate, resume.Name, ext)
		if err != nil {
			telemetry.Warn("resume.delete.resolve_failed", map[string]any{
				"ownerId": ownerID, "name": name, "error": err.Error(),
			})
			continue
		}
		if err := os.Remove(path); err != nil && !os.IsNotExist(err) {
			telemetry.Warn("resume.delete.remove_failed", map[string]any{
				"path": path, "error": err.Error(),
			})
		}
	}

	if err := s.Repo.Delete(ctx, resume.ID); err != nil {
		return err
	}
	metrics.IncResumeDeleted()
	return nil
}

// Download describes a single artifact file ready to stream.
type Download struct {
	Path     string
	FileName string
}

// DownloadOne resolves the on-disk path of one artifact variant. A ledger
// row whose file is missing on disk is a storage inconsistency: it is
// logged and surfaced as ErrNotFound.
func (s *Service) DownloadOne(ctx context.Context, actor accounts.Actor, ownerID, name string, variant Variant) (Download, error) {
	if err := s.Graph.Authorize(ctx, actor, ownerID); err != nil {
		return Download{}, err
	}
	resume, err := s.Repo.FindByOwnerAndName(ctx, ownerID, name)
	if err != nil {
		return Download{}, err
	}
	path, err := s.Layout.Resolve(resume.OwnerID, resume.BucketDate, resume.Name, variant.Ext())
	if err != nil {
		return Download{}, mapLayoutErr(err)
	}
	if _, err := os.Stat(path); err != nil {
		if os.IsNotExist(err) {
			telemetry.Error("resume.download.file_missing", map[string]any{
				"ownerId": ownerID, "name": name, "path": path,
			})
			return Download{}, ErrNotFound
		}
		return Download{}, fmt.Errorf("stat artifact: %w", err)
	}
	return Download{Path: path, FileName: resume.Name + variant.Ext()}, nil
}

// BucketArchive describes a bucket directory ready to stream as a zip.
type BucketArchive struct {
	Dir      string
	FileName string
}

// DownloadBucket resolves an owner's bucket directory for bulk download.
// The suggested archive name depends on who is asking: owners get
// "<date>-resumes.zip", supervisors get "<ownerUsername>-<date>.zip".
func (s *Service) DownloadBucket(ctx context.Context, actor accounts.Actor, ownerID, bucketDate string) (BucketArchive, error) {
	if err := s.Graph.Authorize(ctx, actor, ownerID); err != nil {
		return BucketArchive{}, err
	}
	dir, err := s.Layout.BucketDir(ownerID, bucketDate)
	if err != nil {
		return BucketArchive{}, mapLayoutErr(err)
	}
	info, err := os.Stat(dir)
	if err != nil {
		if os.IsNotExist(err) {
			return BucketArchive{}, ErrNotFound
		}
		return BucketArchive{}, fmt.Errorf("stat bucket: %w", err)
	}
	if !info.IsDir() {
		return BucketArchive{}, ErrNotFound
	}

	fileName := bucketDate + "-resumes.zip"
	if actor.ID != ownerID {
		owner, err := s.Graph.Repo.GetByID(ctx, ownerID)
		if err != nil {
			return BucketArchive{}, err
		}
		fileName = owner.Username + "-" + bucketDate + ".zip"
	}
	return BucketArchive{Dir: dir, FileName: fileName}, nil
}

// UploadTemplate stores the developer's template, replacing any previous
// one. Only the developer themselves may manage their template.
func (s *Service) UploadTemplate(ctx context.Context, actor accounts.Actor, fileName string, r io.Reader) (string, error) {
	if err := requireTemplateOwner(actor); err != nil {
		return "", err
	}
	stored, err := s.Templates.Put(actor.ID, fileName, r)
	if err != nil {
		if errors.Is(err, artifact.ErrInvalidComponent) || errors.Is(err, util.ErrUnsafeFileName) {
			return "", fmt.Errorf("%w: %v", ErrInvalidInput, err)
		}
		return "", err
	}
	telemetry.Info("template.stored", map[string]any{
		"developerId": actor.ID,
		"file":        stored,
	})
	return stored, nil
}

// FetchTemplate returns the developer's stored template file for download.
func (s *Service) FetchTemplate(ctx context.Context, actor accounts.Actor) (Download, error) {
	if err := requireTemplateOwner(actor); err != nil {
		return Download{}, err
	}
	path, err := s.Templates.Find(actor.ID)
	if err != nil {
		if errors.Is(err, artifact.ErrNoTemplate) {
			return Download{}, ErrMissingTemplate
		}
		return Download{}, err
	}
	return Download{Path: path, FileName: filepath.Base(path)}, nil
}

// DeleteTemplate removes the developer's stored template.
func (s *Service) DeleteTemplate(ctx context.Context, actor accounts.Actor) error {
	if err := requireTemplateOwner(actor); err != nil {
		return err
	}
	if err := s.Templates.Delete(actor.ID); err != nil {
		if errors.Is(err, artifact.ErrNoTemplate) {
			return ErrMissingTemplate
		}
		return err
	}
	return nil
}

func requireTemplateOwner(actor accounts.Actor) error {
	if actor.Role != accounts.RoleDeveloper || actor.ID == "" {
		return accounts.ErrUnauthorized
	}
	return nil
}

func mapLayoutErr(err error) error {
	if errors.Is(err, artifact.ErrInvalidComponent) {
		return fmt.Errorf("%w: %v", ErrInvalidInput, err)
	}
	return err
}
