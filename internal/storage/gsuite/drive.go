package gsuite

import (
	"context"
	"fmt"
	"io"
	"os"
	"strings"

	"go.uber.org/zap"
	"google.golang.org/api/drive/v3"
	"google.golang.org/api/option"

	"partybot/internal/retry"
	"partybot/internal/storage"
)

// DriveStore backs up flat files to Google Drive by file name
type DriveStore struct {
	service  *drive.Service
	folderID string
	logger   *zap.Logger
}

// NewDriveStore opens the Drive service. folderID may be empty.
func NewDriveStore(ctx context.Context, folderID string, logger *zap.Logger, opts ...option.ClientOption) (*DriveStore, error) {
	srv, err := drive.NewService(ctx, opts...)
	if err != nil {
		return nil, fmt.Errorf("unable to retrieve Drive client: %w", err)
	}
	return &DriveStore{service: srv, folderID: folderID, logger: logger}, nil
}

// Download fetches the named file into localPath
func (d *DriveStore) Download(ctx context.Context, name, localPath string) (bool, error) {
	var id string
	err := retry.Do(ctx, d.logger, "drive.find", func() error {
		found, err := d.find(ctx, name)
		id = found
		return classify(err)
	})
	if err != nil {
		return false, fmt.Errorf("unable to find %s: %w", name, err)
	}
	if id == "" {
		return false, nil
	}

	err = retry.Do(ctx, d.logger, "drive.download", func() error {
		return classify(d.download(ctx, id, localPath))
	})
	if err != nil {
		return false, fmt.Errorf("unable to download %s: %w", name, err)
	}

	d.logger.Info("File downloaded from Drive", zap.String("file_name", name))
	return true, nil
}

// Upload updates the named file if it exists, otherwise creates it
func (d *DriveStore) Upload(ctx context.Context, localPath, name string) error {
	var id string
	err := retry.Do(ctx, d.logger, "drive.find", func() error {
		found, err := d.find(ctx, name)
		id = found
		return classify(err)
	})
	if err != nil {
		return fmt.Errorf("unable to find %s: %w", name, err)
	}

	err = retry.Do(ctx, d.logger, "drive.upload", func() error {
		f, err := os.Open(localPath)
		if err != nil {
			return retry.Permanent(err)
		}
		defer f.Close()

		if id != "" {
			_, err = d.service.Files.Update(id, &drive.File{}).Media(f).Context(ctx).Do()
			return classify(err)
		}

		meta := &drive.File{Name: name}
		if d.folderID != "" {
			meta.Parents = []string{d.folderID}
		}
		created, err := d.service.Files.Create(meta).Media(f).Fields("id").Context(ctx).Do()
		if err == nil {
			id = created.Id
		}
		return classify(err)
	})
	if err != nil {
		return fmt.Errorf("unable to upload %s: %w", name, err)
	}

	d.logger.Info("File uploaded to Drive",
		zap.String("file_name", name),
		zap.String("file_id", id),
	)
	return nil
}

// find returns the id of the first non-trashed file named name, or ""
func (d *DriveStore) find(ctx context.Context, name string) (string, error) {
	q := fmt.Sprintf("name='%s' and trashed=false", strings.ReplaceAll(name, "'", `\'`))
	list, err := d.service.Files.List().
		Q(q).
		Spaces("drive").
		Fields("files(id, name)").
		Context(ctx).
		Do()
	if err != nil {
		return "", err
	}
	if len(list.Files) == 0 {
		return "", nil
	}
	return list.Files[0].Id, nil
}

func (d *DriveStore) download(ctx context.Context, id, localPath string) error {
	resp, err := d.service.Files.Get(id).Context(ctx).Download()
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	out, err := os.Create(localPath)
	if err != nil {
		return retry.Permanent(err)
	}
	if _, err := io.Copy(out, resp.Body); err != nil {
		out.Close()
		return err
	}
	return out.Close()
}

var _ storage.RemoteFileStore = (*DriveStore)(nil)
